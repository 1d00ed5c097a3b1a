package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires the two booking surfaces. The admin surface is for
// firm staff and accepts arbitrary clients and staff; the portal surface
// is scoped to the authenticated client.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, staffMiddleware gin.HandlerFunc) {
	admin := g.Group("/admin/bookings")
	admin.Use(authMiddleware, staffMiddleware)
	{
		admin.GET("", h.ListAdmin)
		admin.GET("/:id", h.GetAdmin)
		admin.POST("", h.CreateAdmin)
		admin.PATCH("/:id", h.UpdateAdmin)
		admin.DELETE("/:id", h.DeleteAdmin)

		admin.POST("/recurring/preview", h.PreviewRecurringAdmin)
		admin.POST("/recurring", h.CreateRecurringAdmin)
	}

	portal := g.Group("/portal/bookings")
	portal.Use(authMiddleware)
	{
		portal.GET("", h.ListPortal)
		portal.GET("/:id", h.GetPortal)
		portal.POST("", h.CreatePortal)
		portal.PATCH("/:id", h.UpdatePortal)
		portal.DELETE("/:id", h.DeletePortal)

		portal.POST("/recurring/preview", h.PreviewRecurringPortal)
		portal.POST("/recurring", h.CreateRecurringPortal)
	}
}
