package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires the user-directory endpoints. Account creation is an
// admin concern.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, adminMiddleware gin.HandlerFunc) {
	group := g.Group("/users")
	group.Use(authMiddleware)
	{
		group.GET("", h.List)
		group.GET("/:id", h.Get)
	}

	manage := group.Group("")
	manage.Use(adminMiddleware)
	{
		manage.POST("", h.Create)
	}
}
