package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hospitalops/transport-booking-backend/internal/auth"
)

func newTestService() Service {
	return NewService(NewMemoryRepository(), auth.NewBcryptPasswordHasherWithCost(4))
}

func TestCreateUser(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	t.Run("creates with hashed password", func(t *testing.T) {
		u, err := svc.Create(ctx, CreateRequest{
			Name:         "John Staff",
			Email:        "John@Hospital.com ",
			Password:     "password123",
			Role:         RoleStaff,
			DepartmentID: "dept-1",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, u.ID)
		assert.Equal(t, "john@hospital.com", u.Email) // normalized
		assert.NotEqual(t, "password123", u.PasswordHash)
	})

	t.Run("duplicate email rejected", func(t *testing.T) {
		_, err := svc.Create(ctx, CreateRequest{
			Name:         "Other",
			Email:        "john@hospital.com",
			Password:     "password123",
			Role:         RoleStaff,
			DepartmentID: "dept-1",
		})
		assert.ErrorIs(t, err, ErrEmailAlreadyUsed)
	})

	t.Run("validations", func(t *testing.T) {
		base := CreateRequest{
			Name:         "X",
			Email:        "x@hospital.com",
			Password:     "password123",
			Role:         RoleStaff,
			DepartmentID: "dept-1",
		}

		r := base
		r.Email = "  "
		_, err := svc.Create(ctx, r)
		assert.ErrorIs(t, err, ErrEmailRequired)

		r = base
		r.Password = "short"
		_, err = svc.Create(ctx, r)
		assert.ErrorIs(t, err, ErrPasswordTooShort)

		r = base
		r.Role = "SUPERVISOR"
		_, err = svc.Create(ctx, r)
		assert.ErrorIs(t, err, ErrInvalidRole)

		r = base
		r.DepartmentID = ""
		_, err = svc.Create(ctx, r)
		assert.ErrorIs(t, err, ErrDepartmentRequired)
	})
}

func TestLogin(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateRequest{
		Name:         "John Staff",
		Email:        "john@hospital.com",
		Password:     "password123",
		Role:         RoleStaff,
		DepartmentID: "dept-1",
	})
	require.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		u, err := svc.Login(ctx, "John@Hospital.com", "password123")
		require.NoError(t, err)
		assert.Equal(t, created.ID, u.ID)

		// last_login_at is stamped on success.
		fresh, err := svc.GetByID(ctx, u.ID)
		require.NoError(t, err)
		assert.NotNil(t, fresh.LastLoginAt)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, "john@hospital.com", "nope-nope")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login(ctx, "ghost@hospital.com", "password123")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}
