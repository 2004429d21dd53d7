package user

import (
	"net/http"
	"time"

	"github.com/hospitalops/transport-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound           = apperror.New(http.StatusNotFound, "user not found")
	ErrEmailAlreadyUsed   = apperror.New(http.StatusConflict, "email already used")
	ErrInvalidCredentials = apperror.New(http.StatusUnauthorized, "invalid email or password")
	ErrEmailRequired      = apperror.New(http.StatusBadRequest, "email is required")
	ErrNameRequired       = apperror.New(http.StatusBadRequest, "name is required")
	ErrPasswordTooShort   = apperror.New(http.StatusBadRequest, "password is too short")
	ErrInvalidRole        = apperror.New(http.StatusBadRequest, "invalid role")
	ErrDepartmentRequired = apperror.New(http.StatusBadRequest, "department_id is required")
)

// Role determines what a user may see and do across the system.
type Role string

const (
	RoleStaff         Role = "STAFF"
	RoleDeptHead      Role = "DEPT_HEAD"
	RoleOperator      Role = "OPERATOR"
	RoleTransportHead Role = "TRANSPORT_HEAD"
	RoleAdmin         Role = "ADMIN"
)

// ValidRoles lists every accepted role value.
var ValidRoles = []Role{RoleStaff, RoleDeptHead, RoleOperator, RoleTransportHead, RoleAdmin}

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	for _, v := range ValidRoles {
		if r == v {
			return true
		}
	}
	return false
}

// IsFleetOps reports whether the role has hospital-wide visibility over
// bookings and the fleet (transport-operations roles plus admin).
func (r Role) IsFleetOps() bool {
	return r == RoleOperator || r == RoleTransportHead || r == RoleAdmin
}

// User represents a hospital staff member. Every user belongs to exactly one
// department.
type User struct {
	ID           string // UUID
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	DepartmentID string
	CreatedAt    time.Time
	LastLoginAt  *time.Time
}

// Filter defines filter options for listing users.
type Filter struct {
	DepartmentID string
	Role         string
	Page         int
	PageSize     int
}
