package booking

import (
	"github.com/hospitalops/transport-booking-backend/internal/user"
)

// Visibility rules, single source of truth for every read path:
//   - ADMIN, OPERATOR, TRANSPORT_HEAD see every booking.
//   - DEPT_HEAD sees bookings of their own department, regardless of requester.
//   - STAFF see only their own requests.

// ScopeFilter narrows a list filter to what the caller is allowed to see.
func ScopeFilter(caller *user.User, f Filter) Filter {
	switch {
	case caller.Role.IsFleetOps():
		// Hospital-wide visibility; the filter passes through untouched.
	case caller.Role == user.RoleDeptHead:
		f.DepartmentID = caller.DepartmentID
		f.RequesterID = ""
	default:
		f.RequesterID = caller.ID
		f.DepartmentID = ""
	}
	return f
}

// CanView reports whether the caller may read a single booking. It must stay
// consistent with ScopeFilter.
func CanView(caller *user.User, b *Booking) bool {
	if caller.Role.IsFleetOps() {
		return true
	}
	if caller.Role == user.RoleDeptHead {
		return b.DepartmentID == caller.DepartmentID
	}
	return b.RequesterID == caller.ID
}

// CanModerate reports whether the caller may approve or reject the booking:
// the head of the booking's department, or an admin with global authority.
func CanModerate(caller *user.User, b *Booking) bool {
	if caller.Role == user.RoleAdmin {
		return true
	}
	return caller.Role == user.RoleDeptHead && caller.DepartmentID == b.DepartmentID
}
