package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/firmdesk/scheduling-backend/internal/offering"
	"github.com/firmdesk/scheduling-backend/internal/pkg/request"
	"github.com/firmdesk/scheduling-backend/internal/pkg/response"
)

type Handler struct {
	service offering.Service
}

func NewHandler(service offering.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	filter := offering.Filter{Page: page, PageSize: pageSize}
	if v := c.Query("is_active"); v != "" {
		active := v == "true"
		filter.IsActive = &active
	}

	offerings, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list services"})
		return
	}

	items := make([]ServiceResponse, len(offerings))
	for i, o := range offerings {
		items[i] = NewServiceResponse(o)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, page, pageSize, total))
}

func (h *Handler) Get(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	o, err := h.service.GetByID(c.Request.Context(), req.ID)
	if err != nil {
		if errors.Is(err, offering.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "service not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get service"})
		return
	}

	c.JSON(http.StatusOK, NewServiceResponse(o))
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateServiceRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	o, err := h.service.Create(c.Request.Context(), offering.CreateRequest{
		Name:           body.Name,
		Description:    body.Description,
		DurationMin:    body.DurationMin,
		BufferMin:      body.BufferMin,
		DefaultStaffID: body.DefaultStaffID,
	})
	if err != nil {
		switch {
		case errors.Is(err, offering.ErrEmptyName),
			errors.Is(err, offering.ErrInvalidDuration),
			errors.Is(err, offering.ErrInvalidBuffer),
			errors.Is(err, offering.ErrInvalidStaff):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create service"})
		}
		return
	}

	c.JSON(http.StatusCreated, NewServiceResponse(o))
}

func (h *Handler) Update(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	var body UpdateServiceRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	o, err := h.service.Update(c.Request.Context(), uri.ID, offering.UpdateRequest{
		Name:           body.Name,
		Description:    body.Description,
		DurationMin:    body.DurationMin,
		BufferMin:      body.BufferMin,
		DefaultStaffID: body.DefaultStaffID,
		IsActive:       body.IsActive,
	})
	if err != nil {
		switch {
		case errors.Is(err, offering.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "service not found"})
		case errors.Is(err, offering.ErrEmptyName),
			errors.Is(err, offering.ErrInvalidDuration),
			errors.Is(err, offering.ErrInvalidBuffer),
			errors.Is(err, offering.ErrInvalidStaff):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update service"})
		}
		return
	}

	c.JSON(http.StatusOK, NewServiceResponse(o))
}

func (h *Handler) Delete(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	if err := h.service.Delete(c.Request.Context(), req.ID); err != nil {
		if errors.Is(err, offering.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "service not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete service"})
		return
	}

	c.Status(http.StatusNoContent)
}
