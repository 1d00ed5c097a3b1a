package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	portal := g.Group("/portal")
	portal.Use(authMiddleware)
	{
		portal.GET("/calendar.ics", h.GetFeed)
	}
}
