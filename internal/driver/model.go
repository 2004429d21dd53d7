package driver

import (
	"net/http"
	"time"

	"github.com/hospitalops/transport-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound           = apperror.New(http.StatusNotFound, "driver not found")
	ErrLicenseAlreadyUsed = apperror.New(http.StatusConflict, "license number already registered")
	ErrNameRequired       = apperror.New(http.StatusBadRequest, "name is required")
	ErrLicenseRequired    = apperror.New(http.StatusBadRequest, "license_number is required")
	ErrInvalidShift       = apperror.New(http.StatusBadRequest, "invalid shift")
	ErrInvalidStatus      = apperror.New(http.StatusBadRequest, "invalid driver status")
)

// Status reflects whether the driver can be engaged by a trip.
type Status string

const (
	StatusAvailable Status = "AVAILABLE"
	StatusOnDuty    Status = "ON_DUTY"
	StatusOffDuty   Status = "OFF_DUTY"
)

// Valid reports whether the status is one of the known values.
func (s Status) Valid() bool {
	return s == StatusAvailable || s == StatusOnDuty || s == StatusOffDuty
}

// Shift is the driver's rostered working window.
type Shift string

const (
	ShiftMorning Shift = "MORNING"
	ShiftEvening Shift = "EVENING"
	ShiftNight   Shift = "NIGHT"
)

// Valid reports whether the shift is one of the known values.
func (s Shift) Valid() bool {
	return s == ShiftMorning || s == ShiftEvening || s == ShiftNight
}

// Driver is a member of the transport pool. Status is owned by the dispatch
// coordinator: ON_DUTY while engaged by an active trip, AVAILABLE once
// released. OFF_DUTY is set by personnel management.
type Driver struct {
	ID            string
	Name          string
	LicenseNumber string
	Status        Status
	Shift         Shift
	Phone         string
	CreatedAt     time.Time
}

// Filter defines parameters for listing drivers.
type Filter struct {
	Status   string
	Shift    string
	Page     int
	PageSize int
}
