package booking

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/hospitalops/transport-booking-backend/internal/dispatch"
	"github.com/hospitalops/transport-booking-backend/internal/driver"
	"github.com/hospitalops/transport-booking-backend/internal/user"
	"github.com/hospitalops/transport-booking-backend/internal/vehicle"
)

// CreateRequest carries the fields a requester submits for a new booking.
type CreateRequest struct {
	RequesterID          string
	Purpose              string
	PickupLocation       string
	DropLocation         string
	StartTime            time.Time
	EndTime              time.Time
	Passengers           int
	HasEquipment         bool
	EquipmentDescription string
	PreferredVehicleType string
	Priority             Priority
}

// Stats aggregates booking counts over the caller's visible set, plus the
// hospital-wide count of available vehicles.
type Stats struct {
	TotalBookings     int
	PendingApprovals  int
	ActiveTrips       int
	AvailableVehicles int
}

// Service is the booking lifecycle controller. Every status change goes
// through one of its named operations; there is no generic status update.
type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Booking, error)
	Get(ctx context.Context, callerID, id string) (*Booking, error)
	List(ctx context.Context, callerID string, filter Filter) ([]*Booking, int, error)

	Approve(ctx context.Context, callerID, id string) (*Booking, error)
	Reject(ctx context.Context, callerID, id string) (*Booking, error)
	Assign(ctx context.Context, id, vehicleID, driverID string) (*Booking, error)
	Start(ctx context.Context, id string) (*Booking, error)
	QuickStart(ctx context.Context, id, vehicleID, driverID string) (*Booking, error)
	Complete(ctx context.Context, id string) (*Booking, error)
	Cancel(ctx context.Context, id, reason string) (*Booking, error)
	Reschedule(ctx context.Context, id string, start, end time.Time) (*Booking, error)

	Stats(ctx context.Context, callerID string) (*Stats, error)
}

type service struct {
	// mu serializes every transition that checks and then claims resource
	// engagement, so two bookings cannot race for the same vehicle or driver.
	mu sync.Mutex

	repo        Repository
	userService user.Service
	vehService  vehicle.Service
	drvService  driver.Service
	dispatcher  *dispatch.Coordinator
}

func NewService(
	repo Repository,
	userService user.Service,
	vehService vehicle.Service,
	drvService driver.Service,
	dispatcher *dispatch.Coordinator,
) Service {
	return &service{
		repo:        repo,
		userService: userService,
		vehService:  vehService,
		drvService:  drvService,
		dispatcher:  dispatcher,
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Booking, error) {
	if strings.TrimSpace(req.Purpose) == "" {
		return nil, ErrPurposeRequired
	}
	if strings.TrimSpace(req.PickupLocation) == "" {
		return nil, ErrPickupRequired
	}
	if strings.TrimSpace(req.DropLocation) == "" {
		return nil, ErrDropRequired
	}
	if req.StartTime.IsZero() || req.EndTime.IsZero() {
		return nil, ErrTimesRequired
	}

	priority := req.Priority
	if priority == "" {
		priority = PriorityNormal
	}
	if !priority.Valid() {
		return nil, ErrInvalidPriority
	}

	if req.PreferredVehicleType != "" && !vehicle.Type(req.PreferredVehicleType).Valid() {
		return nil, ErrInvalidVehicleType
	}

	requester, err := s.userService.GetByID(ctx, req.RequesterID)
	if err != nil {
		return nil, err
	}

	passengers := req.Passengers
	if passengers < 1 {
		passengers = 1
	}

	// A department head's own request needs no separate authorization step:
	// it is born APPROVED instead of REQUESTED.
	status := StatusRequested
	if requester.Role == user.RoleDeptHead {
		status = StatusApproved
	}

	b := &Booking{
		RequesterID:          requester.ID,
		DepartmentID:         requester.DepartmentID, // fixed for the booking's lifetime
		Purpose:              strings.TrimSpace(req.Purpose),
		PickupLocation:       strings.TrimSpace(req.PickupLocation),
		DropLocation:         strings.TrimSpace(req.DropLocation),
		StartTime:            req.StartTime,
		EndTime:              req.EndTime,
		Passengers:           passengers,
		HasEquipment:         req.HasEquipment,
		EquipmentDescription: req.EquipmentDescription,
		PreferredVehicleType: req.PreferredVehicleType,
		Priority:             priority,
		Status:               status,
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) Get(ctx context.Context, callerID, id string) (*Booking, error) {
	caller, err := s.userService.GetByID(ctx, callerID)
	if err != nil {
		return nil, err
	}

	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !CanView(caller, b) {
		return nil, ErrPermissionDenied
	}
	return b, nil
}

func (s *service) List(ctx context.Context, callerID string, filter Filter) ([]*Booking, int, error) {
	caller, err := s.userService.GetByID(ctx, callerID)
	if err != nil {
		return nil, 0, err
	}
	return s.repo.List(ctx, ScopeFilter(caller, filter))
}

// moderate implements approve and reject, which share the authorization rule
// and the REQUESTED precondition.
func (s *service) moderate(ctx context.Context, callerID, id string, to Status) (*Booking, error) {
	caller, err := s.userService.GetByID(ctx, callerID)
	if err != nil {
		return nil, err
	}

	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !CanModerate(caller, b) {
		return nil, ErrPermissionDenied
	}
	if b.Status != StatusRequested {
		return nil, ErrInvalidTransition
	}

	b.Status = to
	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) Approve(ctx context.Context, callerID, id string) (*Booking, error) {
	return s.moderate(ctx, callerID, id, StatusApproved)
}

func (s *service) Reject(ctx context.Context, callerID, id string) (*Booking, error) {
	return s.moderate(ctx, callerID, id, StatusCancelled)
}

// checkAssignable validates that both resources exist, are serviceable, and
// are not held by another active booking. Caller must hold s.mu.
func (s *service) checkAssignable(ctx context.Context, bookingID, vehicleID, driverID string) error {
	v, err := s.vehService.GetByID(ctx, vehicleID)
	if err != nil {
		return err
	}
	if v.Status == vehicle.StatusMaintenance {
		return ErrVehicleUnavailable
	}

	d, err := s.drvService.GetByID(ctx, driverID)
	if err != nil {
		return err
	}
	if d.Status == driver.StatusOffDuty {
		return ErrDriverUnavailable
	}

	conflict, err := s.repo.HasActiveConflict(ctx, vehicleID, driverID, bookingID)
	if err != nil {
		return err
	}
	if conflict {
		return ErrResourceConflict
	}
	return nil
}

func (s *service) Assign(ctx context.Context, id, vehicleID, driverID string) (*Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.Status != StatusApproved {
		return nil, ErrInvalidTransition
	}

	if err := s.checkAssignable(ctx, b.ID, vehicleID, driverID); err != nil {
		return nil, err
	}

	// Assignment reserves the pair (no other booking can confirm them) but
	// the vehicle/driver status stays AVAILABLE until the trip starts.
	b.AssignedVehicleID = &vehicleID
	b.AssignedDriverID = &driverID
	b.Status = StatusConfirmed

	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) Start(ctx context.Context, id string) (*Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.Status != StatusConfirmed {
		return nil, ErrInvalidTransition
	}
	if !b.Assigned() {
		return nil, ErrResourcesNotAssigned
	}

	if err := s.dispatcher.Engage(ctx, *b.AssignedVehicleID, *b.AssignedDriverID); err != nil {
		return nil, err
	}

	b.Status = StatusOnTrip
	if err := s.repo.Update(ctx, b); err != nil {
		_ = s.dispatcher.Release(ctx, *b.AssignedVehicleID, *b.AssignedDriverID)
		return nil, err
	}
	return b, nil
}

// QuickStart assigns the resources and starts the trip as one atomic step,
// taking an APPROVED booking straight to ON_TRIP.
func (s *service) QuickStart(ctx context.Context, id, vehicleID, driverID string) (*Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.Status != StatusApproved {
		return nil, ErrInvalidTransition
	}

	if err := s.checkAssignable(ctx, b.ID, vehicleID, driverID); err != nil {
		return nil, err
	}

	if err := s.dispatcher.Engage(ctx, vehicleID, driverID); err != nil {
		return nil, err
	}

	b.AssignedVehicleID = &vehicleID
	b.AssignedDriverID = &driverID
	b.Status = StatusOnTrip

	if err := s.repo.Update(ctx, b); err != nil {
		_ = s.dispatcher.Release(ctx, vehicleID, driverID)
		return nil, err
	}
	return b, nil
}

func (s *service) Complete(ctx context.Context, id string) (*Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.Status != StatusOnTrip {
		return nil, ErrInvalidTransition
	}

	if b.Assigned() {
		if err := s.dispatcher.Release(ctx, *b.AssignedVehicleID, *b.AssignedDriverID); err != nil {
			return nil, err
		}
	}

	// The assigned ids stay on the record for history; only the resource
	// status is released.
	b.Status = StatusCompleted
	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) Cancel(ctx context.Context, id, reason string) (*Booking, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, ErrCancelReasonRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.Status.Terminal() {
		return nil, ErrInvalidTransition
	}

	if b.Status.Engaged() && b.Assigned() {
		if err := s.dispatcher.Release(ctx, *b.AssignedVehicleID, *b.AssignedDriverID); err != nil {
			return nil, err
		}
	}

	b.Status = StatusCancelled
	b.CancelReason = strings.TrimSpace(reason)

	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) Reschedule(ctx context.Context, id string, start, end time.Time) (*Booking, error) {
	if start.IsZero() || end.IsZero() {
		return nil, ErrTimesRequired
	}

	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !b.Status.Reschedulable() {
		return nil, ErrInvalidTransition
	}

	b.StartTime = start
	b.EndTime = end

	// Audit trail for the time change. Time-window conflicts are not checked.
	note := "Rescheduled by transport office on " + time.Now().UTC().Format(time.RFC3339)
	if b.Notes != "" {
		b.Notes += "\n"
	}
	b.Notes += note

	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) Stats(ctx context.Context, callerID string) (*Stats, error) {
	caller, err := s.userService.GetByID(ctx, callerID)
	if err != nil {
		return nil, err
	}

	total, counts, err := s.repo.StatusCounts(ctx, ScopeFilter(caller, Filter{}))
	if err != nil {
		return nil, err
	}

	// Vehicle availability is hospital-wide, independent of booking scoping.
	available, err := s.vehService.CountAvailable(ctx)
	if err != nil {
		return nil, err
	}

	return &Stats{
		TotalBookings:     total,
		PendingApprovals:  counts[StatusRequested],
		ActiveTrips:       counts[StatusOnTrip],
		AvailableVehicles: available,
	}, nil
}
