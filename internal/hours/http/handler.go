package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/firmdesk/scheduling-backend/internal/hours"
)

type Handler struct {
	service hours.Service
}

func NewHandler(service hours.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) ListByService(c *gin.Context) {
	var uri ByServiceRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	windows, err := h.service.ListByService(c.Request.Context(), uri.ServiceID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list business hours"})
		return
	}

	items := make([]WindowResponse, len(windows))
	for i, w := range windows {
		items[i] = NewWindowResponse(w)
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *Handler) Upsert(c *gin.Context) {
	var uri ByServiceRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	var body UpsertWindowRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	w, err := h.service.Upsert(c.Request.Context(), hours.UpsertRequest{
		ServiceID: uri.ServiceID,
		Weekday:   body.Weekday,
		OpenMin:   body.OpenMin,
		CloseMin:  body.CloseMin,
	})
	if err != nil {
		switch {
		case errors.Is(err, hours.ErrInvalidDay), errors.Is(err, hours.ErrInvalidWindow):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save business hours"})
		}
		return
	}

	c.JSON(http.StatusOK, NewWindowResponse(w))
}

func (h *Handler) Delete(c *gin.Context) {
	var uri DeleteWindowRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	if err := h.service.Delete(c.Request.Context(), uri.ServiceID, uri.Weekday); err != nil {
		switch {
		case errors.Is(err, hours.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "business hours window not found"})
		case errors.Is(err, hours.ErrInvalidDay):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete business hours"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}
