package vehicle

import (
	"net/http"
	"time"

	"github.com/hospitalops/transport-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "vehicle not found")
	ErrPlateAlreadyUsed = apperror.New(http.StatusConflict, "plate number already registered")
	ErrInvalidType      = apperror.New(http.StatusBadRequest, "invalid vehicle type")
	ErrInvalidStatus    = apperror.New(http.StatusBadRequest, "invalid vehicle status")
	ErrPlateRequired    = apperror.New(http.StatusBadRequest, "plate_number is required")
)

// Type classifies a vehicle in the hospital fleet.
type Type string

const (
	TypeAmbulance Type = "AMBULANCE"
	TypeCar       Type = "CAR"
	TypeVan       Type = "VAN"
	TypeBus       Type = "BUS"
	TypePickup    Type = "PICKUP"
)

// ValidTypes lists every accepted vehicle type.
var ValidTypes = []Type{TypeAmbulance, TypeCar, TypeVan, TypeBus, TypePickup}

// Valid reports whether the type is one of the known values.
func (t Type) Valid() bool {
	for _, v := range ValidTypes {
		if t == v {
			return true
		}
	}
	return false
}

// Status reflects whether the vehicle can be engaged by a trip.
type Status string

const (
	StatusAvailable   Status = "AVAILABLE"
	StatusBusy        Status = "BUSY"
	StatusMaintenance Status = "MAINTENANCE"
)

// Valid reports whether the status is one of the known values.
func (s Status) Valid() bool {
	return s == StatusAvailable || s == StatusBusy || s == StatusMaintenance
}

// Vehicle is a bookable unit of the hospital fleet. Its status is owned by
// the dispatch coordinator: BUSY while engaged by an active trip, AVAILABLE
// once released. MAINTENANCE is set by fleet management and keeps the vehicle
// out of assignment.
type Vehicle struct {
	ID              string
	Type            Type
	PlateNumber     string
	Capacity        int // seating capacity
	EquipmentLoad   int // in kg
	Status          Status
	LastServiceDate time.Time
	CreatedAt       time.Time
}

// Filter defines parameters for listing vehicles.
type Filter struct {
	Type     string
	Status   string
	Page     int
	PageSize int
}
