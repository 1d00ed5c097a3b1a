package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/firmdesk/scheduling-backend/internal/auth"
	"github.com/firmdesk/scheduling-backend/internal/calendar"
)

type Handler struct {
	feed *calendar.Feed
}

func NewHandler(feed *calendar.Feed) *Handler {
	return &Handler{feed: feed}
}

// GetFeed serves the caller's bookings as an ICS document.
func (h *Handler) GetFeed(c *gin.Context) {
	userID := auth.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	ics, err := h.feed.Render(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to render calendar feed"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="bookings.ics"`)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", ics)
}
