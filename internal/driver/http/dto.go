package http

import (
	"time"

	"github.com/hospitalops/transport-booking-backend/internal/driver"
)

type CreateBody struct {
	Name          string `json:"name" binding:"required"`
	LicenseNumber string `json:"license_number" binding:"required"`
	Shift         string `json:"shift" binding:"required,oneof=MORNING EVENING NIGHT"`
	Phone         string `json:"phone"`
}

type UpdateBody struct {
	Name          *string `json:"name"`
	LicenseNumber *string `json:"license_number"`
	Status        *string `json:"status" binding:"omitempty,oneof=AVAILABLE OFF_DUTY"`
	Shift         *string `json:"shift" binding:"omitempty,oneof=MORNING EVENING NIGHT"`
	Phone         *string `json:"phone"`
}

type Response struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	LicenseNumber string    `json:"license_number"`
	Status        string    `json:"status"`
	Shift         string    `json:"shift"`
	Phone         string    `json:"phone"`
	CreatedAt     time.Time `json:"created_at"`
}

func NewResponse(d *driver.Driver) Response {
	return Response{
		ID:            d.ID,
		Name:          d.Name,
		LicenseNumber: d.LicenseNumber,
		Status:        string(d.Status),
		Shift:         string(d.Shift),
		Phone:         d.Phone,
		CreatedAt:     d.CreatedAt,
	}
}
