package http

import (
	"time"

	"github.com/firmdesk/scheduling-backend/internal/booking"
	"github.com/firmdesk/scheduling-backend/internal/planner"
	"github.com/firmdesk/scheduling-backend/internal/recurrence"
)

// Tag types are the minimal representations of related entities embedded
// in booking responses.
type ServiceTag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type StaffTag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type UserTag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type BookingResponse struct {
	ID        string     `json:"id"`
	Service   ServiceTag `json:"service"`
	Staff     *StaffTag  `json:"staff"`
	Client    UserTag    `json:"client"`
	SeriesID  *string    `json:"series_id"`
	StartTime time.Time  `json:"start_time"`
	EndTime   time.Time  `json:"end_time"`
	Status    string     `json:"status"`
	Notes     string     `json:"notes"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func NewBookingResponse(b *booking.Booking) BookingResponse {
	resp := BookingResponse{
		ID:        b.ID,
		Service:   ServiceTag{ID: b.ServiceID, Name: b.ServiceName},
		Client:    UserTag{ID: b.ClientID, Name: b.ClientName},
		SeriesID:  b.SeriesID,
		StartTime: b.StartTime,
		EndTime:   b.EndTime,
		Status:    string(b.Status),
		Notes:     b.Notes,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
	if b.StaffID != nil {
		tag := StaffTag{ID: *b.StaffID}
		if b.StaffName != nil {
			tag.Name = *b.StaffName
		}
		resp.Staff = &tag
	}
	return resp
}

type ListBookingsRequest struct {
	ClientID  string     `form:"client_id" binding:"omitempty,uuid"`
	ServiceID string     `form:"service_id" binding:"omitempty,uuid"`
	StaffID   string     `form:"staff_id" binding:"omitempty,uuid"`
	SeriesID  string     `form:"series_id" binding:"omitempty,uuid"`
	Status    string     `form:"status" binding:"omitempty,oneof=pending confirmed cancelled"`
	From      *time.Time `form:"from" time_format:"2006-01-02T15:04:05Z07:00"`
	To        *time.Time `form:"to" time_format:"2006-01-02T15:04:05Z07:00"`
	Page      int        `form:"page,default=1" binding:"omitempty,min=1"`
	PageSize  int        `form:"page_size,default=20" binding:"omitempty,min=1,max=100"`
	SortBy    string     `form:"sort_by" binding:"omitempty,oneof=start_time created_at"`
	SortOrder string     `form:"sort_order" binding:"omitempty,oneof=asc desc"`
}

type CreateBookingRequest struct {
	ClientID  string    `json:"client_id" binding:"omitempty,uuid"` // admin only
	ServiceID string    `json:"service_id" binding:"required,uuid"`
	StaffID   *string   `json:"staff_id" binding:"omitempty,uuid"`
	StartTime time.Time `json:"start_time" binding:"required"`
	EndTime   time.Time `json:"end_time" binding:"required"`
	Notes     string    `json:"notes"`
}

type UpdateBookingRequest struct {
	StartTime *time.Time `json:"start_time"`
	EndTime   *time.Time `json:"end_time"`
	Status    *string    `json:"status" binding:"omitempty,oneof=pending confirmed cancelled"`
	Notes     *string    `json:"notes"`
}

// RecurringPatternBody mirrors recurrence.Pattern on the wire. Interval
// defaults to 1 when omitted.
type RecurringPatternBody struct {
	Frequency string     `json:"frequency" binding:"required,oneof=daily weekly monthly"`
	Interval  int        `json:"interval" binding:"omitempty,min=1"`
	Count     *int       `json:"count" binding:"omitempty,min=1"`
	Until     *time.Time `json:"until"`
	ByWeekday []int      `json:"by_weekday" binding:"omitempty,dive,min=0,max=6"`
}

func (b RecurringPatternBody) toPattern() recurrence.Pattern {
	p := recurrence.Pattern{
		Frequency: recurrence.Frequency(b.Frequency),
		Interval:  b.Interval,
		Count:     b.Count,
		Until:     b.Until,
	}
	if p.Interval == 0 {
		p.Interval = 1
	}
	for _, wd := range b.ByWeekday {
		p.ByWeekday = append(p.ByWeekday, time.Weekday(wd))
	}
	return p
}

type RecurringBookingRequest struct {
	ClientID         string               `json:"client_id" binding:"omitempty,uuid"` // admin only
	ServiceID        string               `json:"service_id" binding:"required,uuid"`
	StaffID          *string              `json:"staff_id" binding:"omitempty,uuid"`
	Start            time.Time            `json:"start" binding:"required"`
	DurationMinutes  int                  `json:"duration_minutes" binding:"required,min=1"`
	RecurringPattern RecurringPatternBody `json:"recurring_pattern" binding:"required"`
	Notes            string               `json:"notes"`
}

type PlanItemResponse struct {
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	Conflict bool      `json:"conflict"`
	Reason   string    `json:"reason,omitempty"`
}

type SummaryResponse struct {
	Total     int  `json:"total"`
	Created   int  `json:"created"`
	Conflicts int  `json:"conflicts"`
	Truncated bool `json:"truncated"`
}

type RecurringPlanResponse struct {
	Plan    []PlanItemResponse `json:"plan"`
	Summary SummaryResponse    `json:"summary"`
	RRule   string             `json:"rrule"`
}

type RecurringCreatedResponse struct {
	Plan     []PlanItemResponse `json:"plan"`
	Summary  SummaryResponse    `json:"summary"`
	RRule    string             `json:"rrule"`
	SeriesID *string            `json:"series_id"`
	Bookings []BookingResponse  `json:"bookings"`
}

func newPlanItems(p *planner.Plan) []PlanItemResponse {
	items := make([]PlanItemResponse, len(p.Items))
	for i, it := range p.Items {
		items[i] = PlanItemResponse{
			Start:    it.Start,
			End:      it.End,
			Conflict: it.Conflict,
			Reason:   string(it.Reason),
		}
	}
	return items
}

func newSummary(p *planner.Plan) SummaryResponse {
	return SummaryResponse{
		Total:     p.Summary.Total,
		Created:   p.Summary.Created,
		Conflicts: p.Summary.Conflicts,
		Truncated: p.Summary.Truncated,
	}
}

func NewRecurringPlanResponse(r *booking.RecurringResult) RecurringPlanResponse {
	return RecurringPlanResponse{
		Plan:    newPlanItems(r.Plan),
		Summary: newSummary(r.Plan),
		RRule:   r.RRule,
	}
}

func NewRecurringCreatedResponse(r *booking.RecurringResult) RecurringCreatedResponse {
	resp := RecurringCreatedResponse{
		Plan:    newPlanItems(r.Plan),
		Summary: newSummary(r.Plan),
		RRule:   r.RRule,
	}
	resp.Bookings = make([]BookingResponse, len(r.Bookings))
	for i, b := range r.Bookings {
		resp.Bookings[i] = NewBookingResponse(b)
	}
	if len(r.Bookings) > 0 {
		resp.SeriesID = r.Bookings[0].SeriesID
	}
	return resp
}
