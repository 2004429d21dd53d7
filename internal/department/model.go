package department

import (
	"net/http"
	"time"

	"github.com/hospitalops/transport-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound     = apperror.New(http.StatusNotFound, "department not found")
	ErrNameRequired = apperror.New(http.StatusBadRequest, "name is required")
)

// Department groups hospital staff under a single head. Booking approvals are
// scoped by department.
type Department struct {
	ID        string
	Name      string
	HeadID    string // User with role DEPT_HEAD; intended 1:1
	CreatedAt time.Time
}
