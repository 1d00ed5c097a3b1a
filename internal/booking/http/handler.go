package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/firmdesk/scheduling-backend/internal/auth"
	"github.com/firmdesk/scheduling-backend/internal/booking"
	"github.com/firmdesk/scheduling-backend/internal/offering"
	"github.com/firmdesk/scheduling-backend/internal/planner"
	"github.com/firmdesk/scheduling-backend/internal/pkg/request"
	"github.com/firmdesk/scheduling-backend/internal/pkg/response"
	"github.com/firmdesk/scheduling-backend/internal/recurrence"
)

type Handler struct {
	bookings  booking.Service
	offerings offering.Service
}

func NewHandler(bookings booking.Service, offerings offering.Service) *Handler {
	return &Handler{bookings: bookings, offerings: offerings}
}

// --- List ---

func (h *Handler) ListAdmin(c *gin.Context)  { h.list(c, true) }
func (h *Handler) ListPortal(c *gin.Context) { h.list(c, false) }

func (h *Handler) list(c *gin.Context, isStaff bool) {
	var q ListBookingsRequest
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	filter := booking.Filter{
		ClientID:  q.ClientID,
		ServiceID: q.ServiceID,
		StaffID:   q.StaffID,
		SeriesID:  q.SeriesID,
		Status:    q.Status,
		StartTime: q.From,
		EndTime:   q.To,
		Page:      q.Page,
		PageSize:  q.PageSize,
		SortBy:    q.SortBy,
		SortOrder: q.SortOrder,
	}

	// Portal callers only ever see their own bookings.
	if !isStaff {
		filter.ClientID = auth.GetUserID(c)
	}

	bookings, total, err := h.bookings.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		items[i] = NewBookingResponse(b)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, filter.Page, filter.PageSize, total))
}

// --- Get ---

func (h *Handler) GetAdmin(c *gin.Context)  { h.get(c, true) }
func (h *Handler) GetPortal(c *gin.Context) { h.get(c, false) }

func (h *Handler) get(c *gin.Context, isStaff bool) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	b, err := h.bookings.GetByID(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	// Do not reveal other clients' bookings through the portal.
	if !isStaff && b.ClientID != auth.GetUserID(c) {
		response.Error(c, booking.ErrNotFound)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

// --- Create ---

func (h *Handler) CreateAdmin(c *gin.Context)  { h.create(c, true) }
func (h *Handler) CreatePortal(c *gin.Context) { h.create(c, false) }

func (h *Handler) create(c *gin.Context, isStaff bool) {
	var body CreateBookingRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	req := booking.CreateRequest{
		ClientID:  body.ClientID,
		ServiceID: body.ServiceID,
		StaffID:   body.StaffID,
		StartTime: body.StartTime,
		EndTime:   body.EndTime,
		Notes:     body.Notes,
	}

	if !isStaff {
		req.ClientID = auth.GetUserID(c)
		staffID, err := h.portalStaffID(c, body.ServiceID)
		if err != nil {
			return // response already written
		}
		req.StaffID = staffID
	} else if req.ClientID == "" {
		req.ClientID = auth.GetUserID(c)
	}

	b, err := h.bookings.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewBookingResponse(b))
}

// --- Update / Delete ---

func (h *Handler) UpdateAdmin(c *gin.Context)  { h.update(c, true) }
func (h *Handler) UpdatePortal(c *gin.Context) { h.update(c, false) }

func (h *Handler) update(c *gin.Context, isStaff bool) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	var body UpdateBookingRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	b, err := h.bookings.Update(c.Request.Context(), uri.ID, booking.UpdateRequest{
		StartTime: body.StartTime,
		EndTime:   body.EndTime,
		Status:    body.Status,
		Notes:     body.Notes,
	}, auth.GetUserID(c), isStaff)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) DeleteAdmin(c *gin.Context)  { h.delete(c, true) }
func (h *Handler) DeletePortal(c *gin.Context) { h.delete(c, false) }

func (h *Handler) delete(c *gin.Context, isStaff bool) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	if err := h.bookings.Delete(c.Request.Context(), uri.ID, auth.GetUserID(c), isStaff); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// --- Recurring preview and creation ---

func (h *Handler) PreviewRecurringAdmin(c *gin.Context)  { h.previewRecurring(c, true) }
func (h *Handler) PreviewRecurringPortal(c *gin.Context) { h.previewRecurring(c, false) }

func (h *Handler) previewRecurring(c *gin.Context, isStaff bool) {
	req, ok := h.bindRecurring(c, isStaff)
	if !ok {
		return
	}

	result, err := h.bookings.PlanRecurring(c.Request.Context(), req)
	if err != nil {
		h.recurringError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.NewDataResponse(NewRecurringPlanResponse(result)))
}

func (h *Handler) CreateRecurringAdmin(c *gin.Context)  { h.createRecurring(c, true) }
func (h *Handler) CreateRecurringPortal(c *gin.Context) { h.createRecurring(c, false) }

func (h *Handler) createRecurring(c *gin.Context, isStaff bool) {
	req, ok := h.bindRecurring(c, isStaff)
	if !ok {
		return
	}

	result, err := h.bookings.CreateRecurring(c.Request.Context(), req)
	if err != nil {
		h.recurringError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.NewDataResponse(NewRecurringCreatedResponse(result)))
}

// bindRecurring parses and scopes a recurring request. On failure the
// response has already been written and ok is false.
func (h *Handler) bindRecurring(c *gin.Context, isStaff bool) (booking.RecurringRequest, bool) {
	var body RecurringBookingRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return booking.RecurringRequest{}, false
	}

	req := booking.RecurringRequest{
		ClientID:        body.ClientID,
		ServiceID:       body.ServiceID,
		StaffID:         body.StaffID,
		Anchor:          body.Start,
		DurationMinutes: body.DurationMinutes,
		Pattern:         body.RecurringPattern.toPattern(),
		Notes:           body.Notes,
	}

	if !isStaff {
		req.ClientID = auth.GetUserID(c)
		staffID, err := h.portalStaffID(c, body.ServiceID)
		if err != nil {
			return booking.RecurringRequest{}, false
		}
		req.StaffID = staffID
	} else if req.ClientID == "" {
		req.ClientID = auth.GetUserID(c)
	}

	return req, true
}

// portalStaffID resolves the staff member a portal client is scoped to.
// Portal callers cannot choose staff; the service's default applies.
func (h *Handler) portalStaffID(c *gin.Context, serviceID string) (*string, error) {
	o, err := h.offerings.GetByID(c.Request.Context(), serviceID)
	if err != nil {
		if errors.Is(err, offering.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "service not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to resolve service"})
		}
		return nil, err
	}
	return o.DefaultStaffID, nil
}

func (h *Handler) recurringError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, recurrence.ErrInvalidPattern), errors.Is(err, planner.ErrInvalidDuration):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, planner.ErrCheckFailed):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "could not verify availability, try again"})
	default:
		response.Error(c, err)
	}
}
