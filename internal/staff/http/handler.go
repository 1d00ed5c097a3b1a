package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/firmdesk/scheduling-backend/internal/pkg/request"
	"github.com/firmdesk/scheduling-backend/internal/pkg/response"
	"github.com/firmdesk/scheduling-backend/internal/staff"
)

type Handler struct {
	service staff.Service
}

func NewHandler(service staff.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	filter := staff.Filter{Page: page, PageSize: pageSize}
	if v := c.Query("is_active"); v != "" {
		active := v == "true"
		filter.IsActive = &active
	}

	members, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list staff"})
		return
	}

	items := make([]StaffResponse, len(members))
	for i, m := range members {
		items[i] = NewStaffResponse(m)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, page, pageSize, total))
}

func (h *Handler) Get(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	m, err := h.service.GetByID(c.Request.Context(), req.ID)
	if err != nil {
		if errors.Is(err, staff.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "staff member not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get staff member"})
		return
	}

	c.JSON(http.StatusOK, NewStaffResponse(m))
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateStaffRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	m, err := h.service.Create(c.Request.Context(), staff.CreateRequest{
		DisplayName: body.DisplayName,
		Email:       body.Email,
		Title:       body.Title,
	})
	if err != nil {
		switch {
		case errors.Is(err, staff.ErrEmptyName):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, staff.ErrEmailAlreadyUsed):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create staff member"})
		}
		return
	}

	c.JSON(http.StatusCreated, NewStaffResponse(m))
}

func (h *Handler) Update(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	var body UpdateStaffRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	m, err := h.service.Update(c.Request.Context(), uri.ID, staff.UpdateRequest{
		DisplayName: body.DisplayName,
		Email:       body.Email,
		Title:       body.Title,
		IsActive:    body.IsActive,
	})
	if err != nil {
		switch {
		case errors.Is(err, staff.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "staff member not found"})
		case errors.Is(err, staff.ErrEmptyName):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, staff.ErrEmailAlreadyUsed):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update staff member"})
		}
		return
	}

	c.JSON(http.StatusOK, NewStaffResponse(m))
}

func (h *Handler) Delete(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	if err := h.service.Delete(c.Request.Context(), req.ID); err != nil {
		if errors.Is(err, staff.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "staff member not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete staff member"})
		return
	}

	c.Status(http.StatusNoContent)
}
