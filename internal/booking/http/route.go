package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires the booking endpoints. Dispatch actions (assign,
// start, complete, cancel, reschedule) are restricted to fleet-operations
// roles; approve/reject authorization is department-scoped and enforced in
// the service.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, fleetOpsMiddleware gin.HandlerFunc) {
	group := g.Group("/bookings")
	group.Use(authMiddleware)
	{
		group.GET("", h.List)
		group.GET("/:id", h.Get)
		group.POST("", h.Create)
		group.POST("/:id/approve", h.Approve)
		group.POST("/:id/reject", h.Reject)
	}

	dispatch := group.Group("")
	dispatch.Use(fleetOpsMiddleware)
	{
		dispatch.POST("/:id/assign", h.Assign)
		dispatch.POST("/:id/start", h.Start)
		dispatch.POST("/:id/quick-start", h.QuickStart)
		dispatch.POST("/:id/complete", h.Complete)
		dispatch.POST("/:id/cancel", h.Cancel)
		dispatch.POST("/:id/reschedule", h.Reschedule)
	}

	g.GET("/stats", authMiddleware, h.Stats)
}
