package dispatch

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hospitalops/transport-booking-backend/internal/driver"
	"github.com/hospitalops/transport-booking-backend/internal/vehicle"
)

func setup(t *testing.T) (*Coordinator, *vehicle.Vehicle, *driver.Driver, vehicle.Repository, driver.Repository) {
	t.Helper()
	ctx := context.Background()

	vehicles := vehicle.NewMemoryRepository()
	drivers := driver.NewMemoryRepository()

	v := &vehicle.Vehicle{
		Type:        vehicle.TypeAmbulance,
		PlateNumber: "AMB-101",
		Status:      vehicle.StatusAvailable,
	}
	require.NoError(t, vehicles.Create(ctx, v))

	d := &driver.Driver{
		Name:          "Robert Driver",
		LicenseNumber: "L-001",
		Status:        driver.StatusAvailable,
		Shift:         driver.ShiftMorning,
	}
	require.NoError(t, drivers.Create(ctx, d))

	return NewCoordinator(vehicles, drivers), v, d, vehicles, drivers
}

func TestEngage(t *testing.T) {
	ctx := context.Background()
	c, v, d, vehicles, drivers := setup(t)

	require.NoError(t, c.Engage(ctx, v.ID, d.ID))

	got, err := vehicles.GetByID(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, vehicle.StatusBusy, got.Status)

	gd, err := drivers.GetByID(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, driver.StatusOnDuty, gd.Status)
}

func TestEngageConflicts(t *testing.T) {
	ctx := context.Background()
	c, v, d, vehicles, drivers := setup(t)

	v2 := &vehicle.Vehicle{Type: vehicle.TypeCar, PlateNumber: "CAR-501", Status: vehicle.StatusAvailable}
	require.NoError(t, vehicles.Create(ctx, v2))
	d2 := &driver.Driver{Name: "Susan Wheel", LicenseNumber: "L-003", Status: driver.StatusAvailable, Shift: driver.ShiftEvening}
	require.NoError(t, drivers.Create(ctx, d2))

	require.NoError(t, c.Engage(ctx, v.ID, d.ID))

	t.Run("busy vehicle", func(t *testing.T) {
		err := c.Engage(ctx, v.ID, d2.ID)
		assert.ErrorIs(t, err, ErrVehicleEngaged)

		// The free driver must not be half-claimed by the failed engage.
		gd, err := drivers.GetByID(ctx, d2.ID)
		require.NoError(t, err)
		assert.Equal(t, driver.StatusAvailable, gd.Status)
	})

	t.Run("on duty driver", func(t *testing.T) {
		err := c.Engage(ctx, v2.ID, d.ID)
		assert.ErrorIs(t, err, ErrDriverEngaged)

		gv, err := vehicles.GetByID(ctx, v2.ID)
		require.NoError(t, err)
		assert.Equal(t, vehicle.StatusAvailable, gv.Status)
	})
}

func TestReleaseIdempotent(t *testing.T) {
	ctx := context.Background()
	c, v, d, vehicles, drivers := setup(t)

	require.NoError(t, c.Engage(ctx, v.ID, d.ID))
	require.NoError(t, c.Release(ctx, v.ID, d.ID))
	// Releasing an already-available pair is a no-op.
	require.NoError(t, c.Release(ctx, v.ID, d.ID))

	gv, err := vehicles.GetByID(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, vehicle.StatusAvailable, gv.Status)

	gd, err := drivers.GetByID(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, driver.StatusAvailable, gd.Status)
}

func TestEngageConcurrent(t *testing.T) {
	ctx := context.Background()
	c, v, d, _, _ := setup(t)

	const workers = 16
	var wg sync.WaitGroup
	wins := make(chan struct{}, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := c.Engage(ctx, v.ID, d.ID); err == nil {
				wins <- struct{}{}
			}
		}()
	}
	wg.Wait()
	close(wins)

	// Exactly one goroutine may claim the pair.
	assert.Len(t, wins, 1)
}
