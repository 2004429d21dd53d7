package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires the driver-pool endpoints. Reads are open to any
// authenticated user; writes are restricted to fleet-operations roles.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, fleetOpsMiddleware gin.HandlerFunc) {
	group := g.Group("/drivers")
	group.Use(authMiddleware)
	{
		group.GET("", h.List)
		group.GET("/:id", h.Get)
	}

	manage := group.Group("")
	manage.Use(fleetOpsMiddleware)
	{
		manage.POST("", h.Create)
		manage.PATCH("/:id", h.Update)
		manage.DELETE("/:id", h.Delete)
	}
}
