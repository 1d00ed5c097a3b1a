package http

import (
	"time"

	"github.com/firmdesk/scheduling-backend/internal/offering"
)

type ServiceResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	DurationMin    int       `json:"duration_minutes"`
	BufferMin      int       `json:"buffer_minutes"`
	DefaultStaffID *string   `json:"default_staff_id,omitempty"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
}

func NewServiceResponse(o *offering.Offering) ServiceResponse {
	return ServiceResponse{
		ID:             o.ID,
		Name:           o.Name,
		Description:    o.Description,
		DurationMin:    o.DurationMin,
		BufferMin:      o.BufferMin,
		DefaultStaffID: o.DefaultStaffID,
		IsActive:       o.IsActive,
		CreatedAt:      o.CreatedAt,
	}
}

type CreateServiceRequest struct {
	Name           string  `json:"name" binding:"required"`
	Description    string  `json:"description"`
	DurationMin    int     `json:"duration_minutes" binding:"required,min=1"`
	BufferMin      int     `json:"buffer_minutes" binding:"omitempty,min=0"`
	DefaultStaffID *string `json:"default_staff_id" binding:"omitempty,uuid"`
}

type UpdateServiceRequest struct {
	Name           *string `json:"name"`
	Description    *string `json:"description"`
	DurationMin    *int    `json:"duration_minutes" binding:"omitempty,min=1"`
	BufferMin      *int    `json:"buffer_minutes" binding:"omitempty,min=0"`
	DefaultStaffID *string `json:"default_staff_id" binding:"omitempty,uuid"`
	IsActive       *bool   `json:"is_active"`
}
