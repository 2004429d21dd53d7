package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from    Status
		to      Status
		allowed bool
	}{
		{StatusRequested, StatusApproved, true},
		{StatusRequested, StatusCancelled, true},
		{StatusRequested, StatusConfirmed, false},
		{StatusRequested, StatusOnTrip, false},
		{StatusApproved, StatusConfirmed, true},
		{StatusApproved, StatusOnTrip, true}, // quick-start
		{StatusApproved, StatusCancelled, true},
		{StatusApproved, StatusCompleted, false},
		{StatusConfirmed, StatusOnTrip, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusConfirmed, StatusApproved, false},
		{StatusOnTrip, StatusCompleted, true},
		{StatusOnTrip, StatusCancelled, true},
		{StatusOnTrip, StatusConfirmed, false},
		{StatusCompleted, StatusCancelled, false},
		{StatusCancelled, StatusRequested, false},
		{StatusCancelled, StatusApproved, false},
	}

	for _, c := range cases {
		assert.Equalf(t, c.allowed, CanTransition(c.from, c.to),
			"%s -> %s", c.from, c.to)
	}
}

func TestStatusPredicates(t *testing.T) {
	assert.True(t, StatusCompleted.Terminal())
	assert.True(t, StatusCancelled.Terminal())
	assert.False(t, StatusOnTrip.Terminal())

	assert.True(t, StatusConfirmed.Engaged())
	assert.True(t, StatusOnTrip.Engaged())
	assert.False(t, StatusApproved.Engaged())
	assert.False(t, StatusRequested.Engaged())

	assert.True(t, StatusApproved.Reschedulable())
	assert.True(t, StatusConfirmed.Reschedulable())
	assert.True(t, StatusOnTrip.Reschedulable())
	assert.False(t, StatusRequested.Reschedulable())
	assert.False(t, StatusCompleted.Reschedulable())
	assert.False(t, StatusCancelled.Reschedulable())
}
