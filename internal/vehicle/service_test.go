package vehicle

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVehicleService(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	t.Run("new vehicles start AVAILABLE", func(t *testing.T) {
		v, err := svc.Create(ctx, CreateRequest{Type: TypeAmbulance, PlateNumber: "AMB-101", Capacity: 2})
		require.NoError(t, err)
		assert.Equal(t, StatusAvailable, v.Status)
		assert.NotEmpty(t, v.ID)
	})

	t.Run("duplicate plate rejected", func(t *testing.T) {
		_, err := svc.Create(ctx, CreateRequest{Type: TypeCar, PlateNumber: "AMB-101", Capacity: 4})
		assert.ErrorIs(t, err, ErrPlateAlreadyUsed)
	})

	t.Run("invalid type rejected", func(t *testing.T) {
		_, err := svc.Create(ctx, CreateRequest{Type: "HELICOPTER", PlateNumber: "HEL-001", Capacity: 4})
		assert.ErrorIs(t, err, ErrInvalidType)
	})

	t.Run("maintenance toggle allowed, BUSY is not", func(t *testing.T) {
		v, err := svc.Create(ctx, CreateRequest{Type: TypeVan, PlateNumber: "VAN-201", Capacity: 8})
		require.NoError(t, err)

		maint := StatusMaintenance
		updated, err := svc.Update(ctx, v.ID, UpdateRequest{Status: &maint})
		require.NoError(t, err)
		assert.Equal(t, StatusMaintenance, updated.Status)

		busy := StatusBusy
		_, err = svc.Update(ctx, v.ID, UpdateRequest{Status: &busy})
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})

	t.Run("count available", func(t *testing.T) {
		n, err := svc.CountAvailable(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, n) // AMB-101 only; VAN-201 is in maintenance
	})

	t.Run("delete", func(t *testing.T) {
		v, err := svc.Create(ctx, CreateRequest{Type: TypeCar, PlateNumber: "CAR-501", Capacity: 4})
		require.NoError(t, err)

		require.NoError(t, svc.Delete(ctx, v.ID))
		_, err = svc.GetByID(ctx, v.ID)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
