package api

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/hospitalops/transport-booking-backend/internal/auth"
	"github.com/hospitalops/transport-booking-backend/internal/booking"
	bookingHttp "github.com/hospitalops/transport-booking-backend/internal/booking/http"
	"github.com/hospitalops/transport-booking-backend/internal/department"
	deptHttp "github.com/hospitalops/transport-booking-backend/internal/department/http"
	"github.com/hospitalops/transport-booking-backend/internal/driver"
	driverHttp "github.com/hospitalops/transport-booking-backend/internal/driver/http"
	"github.com/hospitalops/transport-booking-backend/internal/user"
	userHttp "github.com/hospitalops/transport-booking-backend/internal/user/http"
	"github.com/hospitalops/transport-booking-backend/internal/vehicle"
	vehicleHttp "github.com/hospitalops/transport-booking-backend/internal/vehicle/http"
)

// Config holds the services and settings the router needs.
type Config struct {
	IsProduction bool
	ProdOrigins  string // comma-separated list of allowed origins in production

	UserService    user.Service
	DeptService    department.Service
	VehicleService vehicle.Service
	DriverService  driver.Service
	BookingService booking.Service

	JWTManager *auth.JWTManager
}

// NewRouter initializes the HTTP router engine.
// It is responsible for assembling middleware (CORS, Logger, Auth) and registering routes for various modules.
func NewRouter(cfg Config) *gin.Engine {
	r := gin.New()

	// Global Middleware:
	// - Logger: Logs request information to the console.
	// - Recovery: Captures panics to prevent server crashes and returns a 500 error.
	r.Use(gin.Logger(), gin.Recovery())

	// Configure CORS (Cross-Origin Resource Sharing).
	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction {
		corsConfig.AllowOrigins = splitOrigins(cfg.ProdOrigins)
	} else {
		corsConfig.AllowOrigins = []string{
			"http://localhost:3000", // local frontend
			"http://localhost:8081", // Swagger
		}
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	// authMiddleware: Validates if the request contains a valid JWT.
	authMiddleware := auth.AuthRequired(cfg.JWTManager)
	// fleetOpsMiddleware: Further checks if the user belongs to the transport office.
	fleetOpsMiddleware := RequireFleetOps(cfg.UserService)
	// adminMiddleware: Further checks if the user is an admin.
	adminMiddleware := RequireAdmin(cfg.UserService)

	// Initialize HTTP Handlers for each module (injecting Service dependencies).
	authHandler := NewAuthHandler(cfg.UserService, cfg.JWTManager)
	userHandler := userHttp.NewHandler(cfg.UserService)
	deptHandler := deptHttp.NewHandler(cfg.DeptService)
	vehicleHandler := vehicleHttp.NewHandler(cfg.VehicleService)
	driverHandler := driverHttp.NewHandler(cfg.DriverService)
	bookingHandler := bookingHttp.NewHandler(cfg.BookingService)

	// Register API routes under /v1
	v1 := r.Group("/v1")
	{
		v1.POST("/auth/login", authHandler.Login)
		v1.GET("/auth/me", authMiddleware, authHandler.Me)

		userHttp.RegisterRoutes(v1, userHandler, authMiddleware, adminMiddleware)
		deptHttp.RegisterRoutes(v1, deptHandler, authMiddleware, adminMiddleware)
		vehicleHttp.RegisterRoutes(v1, vehicleHandler, authMiddleware, fleetOpsMiddleware)
		driverHttp.RegisterRoutes(v1, driverHandler, authMiddleware, fleetOpsMiddleware)
		bookingHttp.RegisterRoutes(v1, bookingHandler, authMiddleware, fleetOpsMiddleware)
	}

	return r
}

func splitOrigins(origins string) []string {
	parts := strings.Split(origins, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
