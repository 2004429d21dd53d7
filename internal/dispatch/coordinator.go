package dispatch

import (
	"context"
	"net/http"
	"sync"

	"github.com/hospitalops/transport-booking-backend/internal/driver"
	"github.com/hospitalops/transport-booking-backend/internal/pkg/apperror"
	"github.com/hospitalops/transport-booking-backend/internal/vehicle"
)

var (
	ErrVehicleEngaged = apperror.New(http.StatusConflict, "vehicle is already engaged by another trip")
	ErrDriverEngaged  = apperror.New(http.StatusConflict, "driver is already engaged by another trip")
)

// Coordinator keeps vehicle and driver status in sync with the trips that
// engage them. It is the sole writer of the BUSY/ON_DUTY/AVAILABLE flips and
// serializes concurrent engage calls so two trips cannot claim the same
// resource.
//
// The coordinator knows nothing about bookings; the booking service calls
// Engage on trip start and Release on completion or cancellation.
type Coordinator struct {
	mu       sync.Mutex
	vehicles vehicle.Repository
	drivers  driver.Repository
}

// NewCoordinator creates a Coordinator over the given fleet repositories.
func NewCoordinator(vehicles vehicle.Repository, drivers driver.Repository) *Coordinator {
	return &Coordinator{
		vehicles: vehicles,
		drivers:  drivers,
	}
}

// Engage marks the vehicle BUSY and the driver ON_DUTY as one atomic
// check-then-set. It fails with a conflict error if either resource is
// already engaged, leaving both untouched.
func (c *Coordinator) Engage(ctx context.Context, vehicleID, driverID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	v, err := c.vehicles.GetByID(ctx, vehicleID)
	if err != nil {
		return err
	}
	d, err := c.drivers.GetByID(ctx, driverID)
	if err != nil {
		return err
	}

	if v.Status == vehicle.StatusBusy {
		return ErrVehicleEngaged
	}
	if d.Status == driver.StatusOnDuty {
		return ErrDriverEngaged
	}

	if err := c.vehicles.SetStatus(ctx, vehicleID, vehicle.StatusBusy); err != nil {
		return err
	}
	if err := c.drivers.SetStatus(ctx, driverID, driver.StatusOnDuty); err != nil {
		// Roll the vehicle back so a failed engage leaves no half-claimed pair.
		_ = c.vehicles.SetStatus(ctx, vehicleID, v.Status)
		return err
	}

	return nil
}

// Release marks both resources AVAILABLE. It is idempotent: releasing an
// already-available pair is a no-op, not an error.
func (c *Coordinator) Release(ctx context.Context, vehicleID, driverID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.vehicles.SetStatus(ctx, vehicleID, vehicle.StatusAvailable); err != nil {
		return err
	}
	if err := c.drivers.SetStatus(ctx, driverID, driver.StatusAvailable); err != nil {
		return err
	}
	return nil
}
