package http

import (
	"time"

	"github.com/hospitalops/transport-booking-backend/internal/vehicle"
)

type CreateBody struct {
	Type            string    `json:"type" binding:"required,oneof=AMBULANCE CAR VAN BUS PICKUP"`
	PlateNumber     string    `json:"plate_number" binding:"required"`
	Capacity        int       `json:"capacity" binding:"required,min=1"`
	EquipmentLoad   int       `json:"equipment_load" binding:"min=0"`
	LastServiceDate time.Time `json:"last_service_date"`
}

type UpdateBody struct {
	Type            *string    `json:"type" binding:"omitempty,oneof=AMBULANCE CAR VAN BUS PICKUP"`
	PlateNumber     *string    `json:"plate_number"`
	Capacity        *int       `json:"capacity" binding:"omitempty,min=1"`
	EquipmentLoad   *int       `json:"equipment_load" binding:"omitempty,min=0"`
	Status          *string    `json:"status" binding:"omitempty,oneof=AVAILABLE MAINTENANCE"`
	LastServiceDate *time.Time `json:"last_service_date"`
}

type Response struct {
	ID              string    `json:"id"`
	Type            string    `json:"type"`
	PlateNumber     string    `json:"plate_number"`
	Capacity        int       `json:"capacity"`
	EquipmentLoad   int       `json:"equipment_load"`
	Status          string    `json:"status"`
	LastServiceDate time.Time `json:"last_service_date"`
	CreatedAt       time.Time `json:"created_at"`
}

func NewResponse(v *vehicle.Vehicle) Response {
	return Response{
		ID:              v.ID,
		Type:            string(v.Type),
		PlateNumber:     v.PlateNumber,
		Capacity:        v.Capacity,
		EquipmentLoad:   v.EquipmentLoad,
		Status:          string(v.Status),
		LastServiceDate: v.LastServiceDate,
		CreatedAt:       v.CreatedAt,
	}
}
