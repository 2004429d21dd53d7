package driver

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDriverService(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	t.Run("new drivers start AVAILABLE", func(t *testing.T) {
		d, err := svc.Create(ctx, CreateRequest{Name: "Robert Driver", LicenseNumber: "L-001", Shift: ShiftMorning})
		require.NoError(t, err)
		assert.Equal(t, StatusAvailable, d.Status)
	})

	t.Run("duplicate license rejected", func(t *testing.T) {
		_, err := svc.Create(ctx, CreateRequest{Name: "Clone", LicenseNumber: "L-001", Shift: ShiftEvening})
		assert.ErrorIs(t, err, ErrLicenseAlreadyUsed)
	})

	t.Run("invalid shift rejected", func(t *testing.T) {
		_, err := svc.Create(ctx, CreateRequest{Name: "X", LicenseNumber: "L-002", Shift: "AFTERNOON"})
		assert.ErrorIs(t, err, ErrInvalidShift)
	})

	t.Run("rostering OFF_DUTY allowed, ON_DUTY is not", func(t *testing.T) {
		d, err := svc.Create(ctx, CreateRequest{Name: "Susan Wheel", LicenseNumber: "L-003", Shift: ShiftEvening})
		require.NoError(t, err)

		off := StatusOffDuty
		updated, err := svc.Update(ctx, d.ID, UpdateRequest{Status: &off})
		require.NoError(t, err)
		assert.Equal(t, StatusOffDuty, updated.Status)

		on := StatusOnDuty
		_, err = svc.Update(ctx, d.ID, UpdateRequest{Status: &on})
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})

	t.Run("list filters by shift", func(t *testing.T) {
		_, total, err := svc.List(ctx, Filter{Shift: string(ShiftMorning)})
		require.NoError(t, err)
		assert.Equal(t, 1, total)
	})
}
