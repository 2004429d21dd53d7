package booking

import (
	"net/http"
	"time"

	"github.com/hospitalops/transport-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound             = apperror.New(http.StatusNotFound, "booking not found")
	ErrPurposeRequired      = apperror.New(http.StatusBadRequest, "purpose is required")
	ErrPickupRequired       = apperror.New(http.StatusBadRequest, "pickup_location is required")
	ErrDropRequired         = apperror.New(http.StatusBadRequest, "drop_location is required")
	ErrTimesRequired        = apperror.New(http.StatusBadRequest, "start_time and end_time are required")
	ErrCancelReasonRequired = apperror.New(http.StatusBadRequest, "cancel reason is required")
	ErrInvalidPriority      = apperror.New(http.StatusBadRequest, "invalid priority")
	ErrInvalidVehicleType   = apperror.New(http.StatusBadRequest, "invalid preferred vehicle type")
	ErrPermissionDenied     = apperror.New(http.StatusForbidden, "permission denied")
	ErrInvalidTransition    = apperror.New(http.StatusConflict, "operation not allowed in the booking's current status")
	ErrResourcesNotAssigned = apperror.New(http.StatusConflict, "booking has no assigned vehicle and driver")
	ErrResourceConflict     = apperror.New(http.StatusConflict, "vehicle or driver is already engaged by another active booking")
	ErrVehicleUnavailable   = apperror.New(http.StatusConflict, "vehicle is not available for assignment")
	ErrDriverUnavailable    = apperror.New(http.StatusConflict, "driver is not available for assignment")
)

// Status is the booking's position in its lifecycle.
type Status string

const (
	StatusRequested Status = "REQUESTED"
	StatusApproved  Status = "APPROVED"
	StatusConfirmed Status = "CONFIRMED"
	StatusOnTrip    Status = "ON_TRIP"
	StatusCompleted Status = "COMPLETED"
	StatusCancelled Status = "CANCELLED"
)

// Priority orders bookings in the dispatch queue.
type Priority string

const (
	PriorityNormal    Priority = "NORMAL"
	PriorityEmergency Priority = "EMERGENCY"
)

// Valid reports whether the priority is one of the known values.
func (p Priority) Valid() bool {
	return p == PriorityNormal || p == PriorityEmergency
}

// Booking is a ground-transport request. DepartmentID is copied from the
// requester at creation and never changes afterwards. AssignedVehicleID and
// AssignedDriverID are set together by assignment and are never cleared, even
// on cancellation; resource release happens on status, not on the ids.
type Booking struct {
	ID                   string
	RequesterID          string
	DepartmentID         string
	Purpose              string
	PickupLocation       string
	DropLocation         string
	StartTime            time.Time
	EndTime              time.Time
	Passengers           int
	HasEquipment         bool
	EquipmentDescription string
	PreferredVehicleType string
	AssignedVehicleID    *string
	AssignedDriverID     *string
	Priority             Priority
	Status               Status
	CreatedAt            time.Time
	UpdatedAt            time.Time
	Notes                string
	CancelReason         string
}

// Assigned reports whether both resources are attached to the booking.
func (b *Booking) Assigned() bool {
	return b.AssignedVehicleID != nil && b.AssignedDriverID != nil
}

// Filter defines parameters for listing bookings. RequesterID and
// DepartmentID are set by the visibility scope, not by callers directly.
type Filter struct {
	RequesterID  string
	DepartmentID string
	Status       string
	Priority     string
	Page         int
	PageSize     int
}
