package http

import (
	"time"

	"github.com/hospitalops/transport-booking-backend/internal/booking"
)

// CreateBookingBody defines the JSON body for creating a booking.
type CreateBookingBody struct {
	Purpose              string    `json:"purpose" binding:"required"`
	PickupLocation       string    `json:"pickup_location" binding:"required"`
	DropLocation         string    `json:"drop_location" binding:"required"`
	StartTime            time.Time `json:"start_time" binding:"required"`
	EndTime              time.Time `json:"end_time" binding:"required"`
	Passengers           int       `json:"passengers"`
	HasEquipment         bool      `json:"has_equipment"`
	EquipmentDescription string    `json:"equipment_description"`
	PreferredVehicleType string    `json:"preferred_vehicle_type" binding:"omitempty,oneof=AMBULANCE CAR VAN BUS PICKUP"`
	Priority             string    `json:"priority" binding:"omitempty,oneof=NORMAL EMERGENCY"`
}

// AssignBody defines the JSON body for assigning a vehicle and driver.
type AssignBody struct {
	VehicleID string `json:"vehicle_id" binding:"required,uuid"`
	DriverID  string `json:"driver_id" binding:"required,uuid"`
}

// CancelBody defines the JSON body for cancelling a booking.
type CancelBody struct {
	Reason string `json:"reason" binding:"required"`
}

// RescheduleBody defines the JSON body for moving a booking's time window.
type RescheduleBody struct {
	StartTime time.Time `json:"start_time" binding:"required"`
	EndTime   time.Time `json:"end_time" binding:"required"`
}

// BookingResponse is the JSON shape of a booking.
type BookingResponse struct {
	ID                   string    `json:"id"`
	RequesterID          string    `json:"requester_id"`
	DepartmentID         string    `json:"department_id"`
	Purpose              string    `json:"purpose"`
	PickupLocation       string    `json:"pickup_location"`
	DropLocation         string    `json:"drop_location"`
	StartTime            time.Time `json:"start_time"`
	EndTime              time.Time `json:"end_time"`
	Passengers           int       `json:"passengers"`
	HasEquipment         bool      `json:"has_equipment"`
	EquipmentDescription string    `json:"equipment_description,omitempty"`
	PreferredVehicleType string    `json:"preferred_vehicle_type,omitempty"`
	AssignedVehicleID    *string   `json:"assigned_vehicle_id,omitempty"`
	AssignedDriverID     *string   `json:"assigned_driver_id,omitempty"`
	Priority             string    `json:"priority"`
	Status               string    `json:"status"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
	Notes                string    `json:"notes,omitempty"`
	CancelReason         string    `json:"cancel_reason,omitempty"`
}

func NewBookingResponse(b *booking.Booking) BookingResponse {
	return BookingResponse{
		ID:                   b.ID,
		RequesterID:          b.RequesterID,
		DepartmentID:         b.DepartmentID,
		Purpose:              b.Purpose,
		PickupLocation:       b.PickupLocation,
		DropLocation:         b.DropLocation,
		StartTime:            b.StartTime,
		EndTime:              b.EndTime,
		Passengers:           b.Passengers,
		HasEquipment:         b.HasEquipment,
		EquipmentDescription: b.EquipmentDescription,
		PreferredVehicleType: b.PreferredVehicleType,
		AssignedVehicleID:    b.AssignedVehicleID,
		AssignedDriverID:     b.AssignedDriverID,
		Priority:             string(b.Priority),
		Status:               string(b.Status),
		CreatedAt:            b.CreatedAt,
		UpdatedAt:            b.UpdatedAt,
		Notes:                b.Notes,
		CancelReason:         b.CancelReason,
	}
}

// StatsResponse is the JSON shape of the dashboard counters.
type StatsResponse struct {
	TotalBookings     int `json:"total_bookings"`
	PendingApprovals  int `json:"pending_approvals"`
	ActiveTrips       int `json:"active_trips"`
	AvailableVehicles int `json:"available_vehicles"`
}
