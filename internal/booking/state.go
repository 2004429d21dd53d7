package booking

// allowedTransitions is the booking state machine as a directed graph.
// Cancellation is a transition to a terminal status, never a deletion.
// APPROVED -> ON_TRIP is the quick-start path where assignment and trip
// start happen as one atomic step.
var allowedTransitions = map[Status][]Status{
	StatusRequested: {StatusApproved, StatusCancelled},
	StatusApproved:  {StatusConfirmed, StatusOnTrip, StatusCancelled},
	StatusConfirmed: {StatusOnTrip, StatusCancelled},
	StatusOnTrip:    {StatusCompleted, StatusCancelled},
	StatusCompleted: {},
	StatusCancelled: {},
}

// CanTransition reports whether from -> to is a legal status transition.
func CanTransition(from, to Status) bool {
	for _, s := range allowedTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transitions are permitted.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Engaged reports whether the status ties the assigned vehicle and driver to
// the booking. Engagement is exclusive: at most one booking may hold a given
// resource in an engaged status.
func (s Status) Engaged() bool {
	return s == StatusConfirmed || s == StatusOnTrip
}

// Reschedulable reports whether the booking's time window may still be moved.
func (s Status) Reschedulable() bool {
	return s == StatusApproved || s == StatusConfirmed || s == StatusOnTrip
}
