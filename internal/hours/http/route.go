package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, staffMiddleware gin.HandlerFunc) {
	// Nested under the same :id segment the services routes use; gin
	// requires one param name per position.
	group := g.Group("/services/:id/hours")

	group.Use(authMiddleware)
	{
		group.GET("", h.ListByService)
	}

	admin := group.Group("")
	admin.Use(staffMiddleware)
	{
		admin.PUT("", h.Upsert)
		admin.DELETE("/:weekday", h.Delete)
	}
}
