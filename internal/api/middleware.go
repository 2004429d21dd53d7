package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hospitalops/transport-booking-backend/internal/auth"
	"github.com/hospitalops/transport-booking-backend/internal/user"
)

// RequireFleetOps ensures the authenticated user holds a fleet-operations
// role (operator, transport head or admin).
// It MUST be used after auth.AuthRequired middleware.
func RequireFleetOps(userService user.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := auth.GetUserID(c)
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		u, err := userService.GetByID(c.Request.Context(), userID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
			return
		}

		if !u.Role.IsFleetOps() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden: transport office access required"})
			return
		}

		c.Next()
	}
}

// RequireAdmin ensures the authenticated user is an admin.
// It MUST be used after auth.AuthRequired middleware.
func RequireAdmin(userService user.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := auth.GetUserID(c)
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		u, err := userService.GetByID(c.Request.Context(), userID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
			return
		}

		if u.Role != user.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden: admin access required"})
			return
		}

		c.Next()
	}
}
