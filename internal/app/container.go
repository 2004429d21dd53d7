package app

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hospitalops/transport-booking-backend/internal/api"
	"github.com/hospitalops/transport-booking-backend/internal/auth"
	"github.com/hospitalops/transport-booking-backend/internal/booking"
	"github.com/hospitalops/transport-booking-backend/internal/department"
	"github.com/hospitalops/transport-booking-backend/internal/dispatch"
	"github.com/hospitalops/transport-booking-backend/internal/driver"
	"github.com/hospitalops/transport-booking-backend/internal/user"
	"github.com/hospitalops/transport-booking-backend/internal/vehicle"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repos groups one repository per module so the application can run against
// either Postgres or the in-memory backend.
type Repos struct {
	Users       user.Repository
	Departments department.Repository
	Vehicles    vehicle.Repository
	Drivers     driver.Repository
	Bookings    booking.Repository
}

// NewPgxRepos builds the production repository set on a pgx pool.
func NewPgxRepos(pool *pgxpool.Pool) Repos {
	return Repos{
		Users:       user.NewPgxRepository(pool),
		Departments: department.NewPgxRepository(pool),
		Vehicles:    vehicle.NewPgxRepository(pool),
		Drivers:     driver.NewPgxRepository(pool),
		Bookings:    booking.NewPgxRepository(pool),
	}
}

// NewMemoryRepos builds the in-memory repository set used by tests and
// local demos.
func NewMemoryRepos() Repos {
	return Repos{
		Users:       user.NewMemoryRepository(),
		Departments: department.NewMemoryRepository(),
		Vehicles:    vehicle.NewMemoryRepository(),
		Drivers:     driver.NewMemoryRepository(),
		Bookings:    booking.NewMemoryRepository(),
	}
}

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	Repos        Repos
	JWTSecret    string
	JWTTTL       time.Duration
	BcryptCost   int
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router     *gin.Engine
	JWTManager *auth.JWTManager

	UserService       user.Service
	DepartmentService department.Service
	VehicleService    vehicle.Service
	DriverService     driver.Service
	BookingService    booking.Service
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) *Container {
	// Init Components
	passwordHasher := auth.NewBcryptPasswordHasherWithCost(cfg.BcryptCost)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)

	// User Module
	userService := user.NewService(cfg.Repos.Users, passwordHasher)

	// Department Module
	deptService := department.NewService(cfg.Repos.Departments)

	// Vehicle Module
	vehicleService := vehicle.NewService(cfg.Repos.Vehicles)

	// Driver Module
	driverService := driver.NewService(cfg.Repos.Drivers)

	// Dispatch Coordinator (sole writer of vehicle/driver engagement status)
	coordinator := dispatch.NewCoordinator(cfg.Repos.Vehicles, cfg.Repos.Drivers)

	// Booking Module
	bookingService := booking.NewService(cfg.Repos.Bookings, userService, vehicleService, driverService, coordinator)

	// API Router Config
	routerParams := api.Config{
		IsProduction:   cfg.IsProduction,
		ProdOrigins:    cfg.ProdOrigins,
		UserService:    userService,
		DeptService:    deptService,
		VehicleService: vehicleService,
		DriverService:  driverService,
		BookingService: bookingService,
		JWTManager:     jwtManager,
	}

	// Router
	router := api.NewRouter(routerParams)

	return &Container{
		Router:            router,
		JWTManager:        jwtManager,
		UserService:       userService,
		DepartmentService: deptService,
		VehicleService:    vehicleService,
		DriverService:     driverService,
		BookingService:    bookingService,
	}
}
