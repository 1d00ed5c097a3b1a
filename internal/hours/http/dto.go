package http

import (
	"github.com/firmdesk/scheduling-backend/internal/hours"
)

type WindowResponse struct {
	ID        string `json:"id"`
	ServiceID string `json:"service_id"`
	Weekday   int    `json:"weekday"`
	OpenMin   int    `json:"open_min"`
	CloseMin  int    `json:"close_min"`
}

func NewWindowResponse(w *hours.Window) WindowResponse {
	return WindowResponse{
		ID:        w.ID,
		ServiceID: w.ServiceID,
		Weekday:   int(w.Weekday),
		OpenMin:   w.OpenMin,
		CloseMin:  w.CloseMin,
	}
}

type ByServiceRequest struct {
	ServiceID string `uri:"id" binding:"required,uuid"`
}

type UpsertWindowRequest struct {
	Weekday  int `json:"weekday" binding:"min=0,max=6"`
	OpenMin  int `json:"open_min" binding:"min=0"`
	CloseMin int `json:"close_min" binding:"required,max=1440"`
}

type DeleteWindowRequest struct {
	ServiceID string `uri:"id" binding:"required,uuid"`
	Weekday   int    `uri:"weekday" binding:"min=0,max=6"`
}
