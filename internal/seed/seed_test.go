package seed

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hospitalops/transport-booking-backend/internal/app"
	"github.com/hospitalops/transport-booking-backend/internal/booking"
	"github.com/hospitalops/transport-booking-backend/internal/driver"
	"github.com/hospitalops/transport-booking-backend/internal/user"
)

func TestRun(t *testing.T) {
	ctx := context.Background()
	repos := app.NewMemoryRepos()
	container := app.NewContainer(app.Config{
		Repos:      repos,
		JWTSecret:  "test-secret",
		JWTTTL:     time.Minute,
		BcryptCost: 4,
	})

	require.NoError(t, Run(ctx, container, repos.Users))

	t.Run("demo accounts usable", func(t *testing.T) {
		admin, err := container.UserService.Login(ctx, "admin@hospital.com", DemoPassword)
		require.NoError(t, err)
		assert.Equal(t, user.RoleAdmin, admin.Role)
	})

	t.Run("departments have heads", func(t *testing.T) {
		depts, err := container.DepartmentService.List(ctx)
		require.NoError(t, err)
		require.Len(t, depts, 3)

		withHead := 0
		for _, d := range depts {
			if d.HeadID != "" {
				withHead++
			}
		}
		assert.Equal(t, 2, withHead)
	})

	t.Run("fleet seeded", func(t *testing.T) {
		n, err := container.VehicleService.CountAvailable(ctx)
		require.NoError(t, err)
		assert.Equal(t, 4, n)

		_, total, err := container.DriverService.List(ctx, driver.Filter{})
		require.NoError(t, err)
		assert.Equal(t, 3, total)
	})

	t.Run("one open request", func(t *testing.T) {
		admin, err := container.UserService.Login(ctx, "admin@hospital.com", DemoPassword)
		require.NoError(t, err)

		list, total, err := container.BookingService.List(ctx, admin.ID, booking.Filter{})
		require.NoError(t, err)
		require.Equal(t, 1, total)
		assert.Equal(t, booking.StatusRequested, list[0].Status)
	})

	t.Run("second run is a no-op", func(t *testing.T) {
		require.NoError(t, Run(ctx, container, repos.Users))

		n, err := repos.Users.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 5, n)
	})
}
