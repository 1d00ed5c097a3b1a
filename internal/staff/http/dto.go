package http

import (
	"time"

	"github.com/firmdesk/scheduling-backend/internal/staff"
)

type StaffResponse struct {
	ID          string    `json:"id"`
	DisplayName string    `json:"display_name"`
	Email       string    `json:"email"`
	Title       string    `json:"title"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewStaffResponse(m *staff.Member) StaffResponse {
	return StaffResponse{
		ID:          m.ID,
		DisplayName: m.DisplayName,
		Email:       m.Email,
		Title:       m.Title,
		IsActive:    m.IsActive,
		CreatedAt:   m.CreatedAt,
	}
}

type CreateStaffRequest struct {
	DisplayName string `json:"display_name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Title       string `json:"title"`
}

type UpdateStaffRequest struct {
	DisplayName *string `json:"display_name"`
	Email       *string `json:"email" binding:"omitempty,email"`
	Title       *string `json:"title"`
	IsActive    *bool   `json:"is_active"`
}
