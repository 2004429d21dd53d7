package http

import (
	"time"

	"github.com/hospitalops/transport-booking-backend/internal/department"
)

type CreateBody struct {
	Name   string `json:"name" binding:"required"`
	HeadID string `json:"head_id" binding:"omitempty,uuid"`
}

type UpdateBody struct {
	Name   *string `json:"name"`
	HeadID *string `json:"head_id" binding:"omitempty,uuid"`
}

type Response struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	HeadID    string    `json:"head_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func NewResponse(d *department.Department) Response {
	return Response{
		ID:        d.ID,
		Name:      d.Name,
		HeadID:    d.HeadID,
		CreatedAt: d.CreatedAt,
	}
}
