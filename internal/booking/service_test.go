package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hospitalops/transport-booking-backend/internal/auth"
	"github.com/hospitalops/transport-booking-backend/internal/dispatch"
	"github.com/hospitalops/transport-booking-backend/internal/driver"
	"github.com/hospitalops/transport-booking-backend/internal/user"
	"github.com/hospitalops/transport-booking-backend/internal/vehicle"
)

type testEnv struct {
	users    user.Service
	vehicles vehicle.Service
	drivers  driver.Service
	bookings Service
}

func newTestEnv() *testEnv {
	userRepo := user.NewMemoryRepository()
	vehicleRepo := vehicle.NewMemoryRepository()
	driverRepo := driver.NewMemoryRepository()
	bookingRepo := NewMemoryRepository()

	userService := user.NewService(userRepo, auth.NewBcryptPasswordHasherWithCost(4))
	vehicleService := vehicle.NewService(vehicleRepo)
	driverService := driver.NewService(driverRepo)
	coordinator := dispatch.NewCoordinator(vehicleRepo, driverRepo)

	return &testEnv{
		users:    userService,
		vehicles: vehicleService,
		drivers:  driverService,
		bookings: NewService(bookingRepo, userService, vehicleService, driverService, coordinator),
	}
}

func (e *testEnv) createUser(t *testing.T, name string, role user.Role, deptID string) *user.User {
	t.Helper()
	u, err := e.users.Create(context.Background(), user.CreateRequest{
		Name:         name,
		Email:        name + "@hospital.test",
		Password:     "password123",
		Role:         role,
		DepartmentID: deptID,
	})
	require.NoError(t, err)
	return u
}

func (e *testEnv) createVehicle(t *testing.T, plate string) *vehicle.Vehicle {
	t.Helper()
	v, err := e.vehicles.Create(context.Background(), vehicle.CreateRequest{
		Type:        vehicle.TypeAmbulance,
		PlateNumber: plate,
		Capacity:    2,
	})
	require.NoError(t, err)
	return v
}

func (e *testEnv) createDriver(t *testing.T, license string) *driver.Driver {
	t.Helper()
	d, err := e.drivers.Create(context.Background(), driver.CreateRequest{
		Name:          "Driver " + license,
		LicenseNumber: license,
		Shift:         driver.ShiftMorning,
	})
	require.NoError(t, err)
	return d
}

func (e *testEnv) createBooking(t *testing.T, requesterID string) *Booking {
	t.Helper()
	now := time.Now().UTC()
	b, err := e.bookings.Create(context.Background(), CreateRequest{
		RequesterID:    requesterID,
		Purpose:        "Patient transfer",
		PickupLocation: "Ward 3",
		DropLocation:   "Imaging Center",
		StartTime:      now.Add(time.Hour),
		EndTime:        now.Add(2 * time.Hour),
	})
	require.NoError(t, err)
	return b
}

func TestCreateBooking(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	staff := env.createUser(t, "staff", user.RoleStaff, "dept-a")
	head := env.createUser(t, "head", user.RoleDeptHead, "dept-a")

	t.Run("staff request starts as REQUESTED", func(t *testing.T) {
		b := env.createBooking(t, staff.ID)
		assert.Equal(t, StatusRequested, b.Status)
		assert.Equal(t, staff.DepartmentID, b.DepartmentID)
		assert.Equal(t, PriorityNormal, b.Priority)
		assert.Equal(t, 1, b.Passengers) // defaults to one passenger
	})

	t.Run("dept head request is born APPROVED", func(t *testing.T) {
		b := env.createBooking(t, head.ID)
		assert.Equal(t, StatusApproved, b.Status)
	})

	t.Run("missing purpose rejected", func(t *testing.T) {
		_, err := env.bookings.Create(ctx, CreateRequest{
			RequesterID:    staff.ID,
			PickupLocation: "A",
			DropLocation:   "B",
			StartTime:      time.Now(),
			EndTime:        time.Now().Add(time.Hour),
		})
		assert.ErrorIs(t, err, ErrPurposeRequired)
	})

	t.Run("invalid priority rejected", func(t *testing.T) {
		_, err := env.bookings.Create(ctx, CreateRequest{
			RequesterID:    staff.ID,
			Purpose:        "x",
			PickupLocation: "A",
			DropLocation:   "B",
			StartTime:      time.Now(),
			EndTime:        time.Now().Add(time.Hour),
			Priority:       "URGENT",
		})
		assert.ErrorIs(t, err, ErrInvalidPriority)
	})

	t.Run("invalid preferred vehicle type rejected", func(t *testing.T) {
		_, err := env.bookings.Create(ctx, CreateRequest{
			RequesterID:          staff.ID,
			Purpose:              "x",
			PickupLocation:       "A",
			DropLocation:         "B",
			StartTime:            time.Now(),
			EndTime:              time.Now().Add(time.Hour),
			PreferredVehicleType: "HELICOPTER",
		})
		assert.ErrorIs(t, err, ErrInvalidVehicleType)
	})
}

func TestApproveReject(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	staff := env.createUser(t, "staff", user.RoleStaff, "dept-a")
	headA := env.createUser(t, "head-a", user.RoleDeptHead, "dept-a")
	headB := env.createUser(t, "head-b", user.RoleDeptHead, "dept-b")
	operator := env.createUser(t, "operator", user.RoleOperator, "dept-a")
	admin := env.createUser(t, "admin", user.RoleAdmin, "dept-b")

	t.Run("own dept head approves", func(t *testing.T) {
		b := env.createBooking(t, staff.ID)
		approved, err := env.bookings.Approve(ctx, headA.ID, b.ID)
		require.NoError(t, err)
		assert.Equal(t, StatusApproved, approved.Status)
	})

	t.Run("foreign dept head denied", func(t *testing.T) {
		b := env.createBooking(t, staff.ID)
		_, err := env.bookings.Approve(ctx, headB.ID, b.ID)
		assert.ErrorIs(t, err, ErrPermissionDenied)

		// Booking untouched.
		got, err := env.bookings.Get(ctx, staff.ID, b.ID)
		require.NoError(t, err)
		assert.Equal(t, StatusRequested, got.Status)
	})

	t.Run("operator cannot moderate", func(t *testing.T) {
		b := env.createBooking(t, staff.ID)
		_, err := env.bookings.Approve(ctx, operator.ID, b.ID)
		assert.ErrorIs(t, err, ErrPermissionDenied)
	})

	t.Run("admin approves any department", func(t *testing.T) {
		b := env.createBooking(t, staff.ID)
		approved, err := env.bookings.Approve(ctx, admin.ID, b.ID)
		require.NoError(t, err)
		assert.Equal(t, StatusApproved, approved.Status)
	})

	t.Run("reject cancels the request", func(t *testing.T) {
		b := env.createBooking(t, staff.ID)
		rejected, err := env.bookings.Reject(ctx, headA.ID, b.ID)
		require.NoError(t, err)
		assert.Equal(t, StatusCancelled, rejected.Status)
	})

	t.Run("approve is only valid from REQUESTED", func(t *testing.T) {
		b := env.createBooking(t, staff.ID)
		_, err := env.bookings.Approve(ctx, headA.ID, b.ID)
		require.NoError(t, err)

		_, err = env.bookings.Approve(ctx, headA.ID, b.ID)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})
}

func TestAssignStartCompleteLifecycle(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	head := env.createUser(t, "head", user.RoleDeptHead, "dept-a")
	veh := env.createVehicle(t, "AMB-101")
	drv := env.createDriver(t, "L-001")

	b := env.createBooking(t, head.ID) // born APPROVED

	t.Run("assign confirms without engaging", func(t *testing.T) {
		confirmed, err := env.bookings.Assign(ctx, b.ID, veh.ID, drv.ID)
		require.NoError(t, err)
		assert.Equal(t, StatusConfirmed, confirmed.Status)
		require.NotNil(t, confirmed.AssignedVehicleID)
		assert.Equal(t, veh.ID, *confirmed.AssignedVehicleID)

		// Resources stay AVAILABLE until the trip starts.
		v, err := env.vehicles.GetByID(ctx, veh.ID)
		require.NoError(t, err)
		assert.Equal(t, vehicle.StatusAvailable, v.Status)

		d, err := env.drivers.GetByID(ctx, drv.ID)
		require.NoError(t, err)
		assert.Equal(t, driver.StatusAvailable, d.Status)
	})

	t.Run("start engages both resources", func(t *testing.T) {
		started, err := env.bookings.Start(ctx, b.ID)
		require.NoError(t, err)
		assert.Equal(t, StatusOnTrip, started.Status)

		v, err := env.vehicles.GetByID(ctx, veh.ID)
		require.NoError(t, err)
		assert.Equal(t, vehicle.StatusBusy, v.Status)

		d, err := env.drivers.GetByID(ctx, drv.ID)
		require.NoError(t, err)
		assert.Equal(t, driver.StatusOnDuty, d.Status)
	})

	t.Run("complete releases both resources", func(t *testing.T) {
		done, err := env.bookings.Complete(ctx, b.ID)
		require.NoError(t, err)
		assert.Equal(t, StatusCompleted, done.Status)

		// Assignment ids are kept for history.
		require.NotNil(t, done.AssignedVehicleID)
		require.NotNil(t, done.AssignedDriverID)

		v, err := env.vehicles.GetByID(ctx, veh.ID)
		require.NoError(t, err)
		assert.Equal(t, vehicle.StatusAvailable, v.Status)

		d, err := env.drivers.GetByID(ctx, drv.ID)
		require.NoError(t, err)
		assert.Equal(t, driver.StatusAvailable, d.Status)
	})

	t.Run("completed booking is terminal", func(t *testing.T) {
		_, err := env.bookings.Complete(ctx, b.ID)
		assert.ErrorIs(t, err, ErrInvalidTransition)

		_, err = env.bookings.Cancel(ctx, b.ID, "too late")
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})
}

func TestAssignConflicts(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	head := env.createUser(t, "head", user.RoleDeptHead, "dept-a")
	veh := env.createVehicle(t, "AMB-101")
	veh2 := env.createVehicle(t, "AMB-102")
	drv := env.createDriver(t, "L-001")
	drv2 := env.createDriver(t, "L-002")

	first := env.createBooking(t, head.ID)
	_, err := env.bookings.Assign(ctx, first.ID, veh.ID, drv.ID)
	require.NoError(t, err)

	t.Run("confirmed booking holds the pair", func(t *testing.T) {
		second := env.createBooking(t, head.ID)
		_, err := env.bookings.Assign(ctx, second.ID, veh.ID, drv2.ID)
		assert.ErrorIs(t, err, ErrResourceConflict)

		_, err = env.bookings.Assign(ctx, second.ID, veh2.ID, drv.ID)
		assert.ErrorIs(t, err, ErrResourceConflict)

		// Failed assignment leaves the booking APPROVED and unassigned.
		got, err := env.bookings.Get(ctx, head.ID, second.ID)
		require.NoError(t, err)
		assert.Equal(t, StatusApproved, got.Status)
		assert.Nil(t, got.AssignedVehicleID)
	})

	t.Run("free pair still assignable", func(t *testing.T) {
		second := env.createBooking(t, head.ID)
		confirmed, err := env.bookings.Assign(ctx, second.ID, veh2.ID, drv2.ID)
		require.NoError(t, err)
		assert.Equal(t, StatusConfirmed, confirmed.Status)
	})

	t.Run("maintenance vehicle not assignable", func(t *testing.T) {
		parked := env.createVehicle(t, "VAN-999")
		maint := vehicle.StatusMaintenance
		_, err := env.vehicles.Update(ctx, parked.ID, vehicle.UpdateRequest{Status: &maint})
		require.NoError(t, err)

		drv3 := env.createDriver(t, "L-003")
		b := env.createBooking(t, head.ID)
		_, err = env.bookings.Assign(ctx, b.ID, parked.ID, drv3.ID)
		assert.ErrorIs(t, err, ErrVehicleUnavailable)
	})

	t.Run("off duty driver not assignable", func(t *testing.T) {
		veh3 := env.createVehicle(t, "CAR-501")
		resting := env.createDriver(t, "L-004")
		off := driver.StatusOffDuty
		_, err := env.drivers.Update(ctx, resting.ID, driver.UpdateRequest{Status: &off})
		require.NoError(t, err)

		b := env.createBooking(t, head.ID)
		_, err = env.bookings.Assign(ctx, b.ID, veh3.ID, resting.ID)
		assert.ErrorIs(t, err, ErrDriverUnavailable)
	})

	t.Run("assign requires APPROVED", func(t *testing.T) {
		staff := env.createUser(t, "staff", user.RoleStaff, "dept-a")
		b := env.createBooking(t, staff.ID) // REQUESTED
		_, err := env.bookings.Assign(ctx, b.ID, veh2.ID, drv2.ID)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})
}

func TestStartRequiresAssignment(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	head := env.createUser(t, "head", user.RoleDeptHead, "dept-a")
	b := env.createBooking(t, head.ID)

	_, err := env.bookings.Start(ctx, b.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition) // APPROVED, not CONFIRMED
}

func TestQuickStart(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	head := env.createUser(t, "head", user.RoleDeptHead, "dept-a")
	veh := env.createVehicle(t, "AMB-101")
	drv := env.createDriver(t, "L-001")

	t.Run("approved straight to on trip", func(t *testing.T) {
		b := env.createBooking(t, head.ID)
		started, err := env.bookings.QuickStart(ctx, b.ID, veh.ID, drv.ID)
		require.NoError(t, err)
		assert.Equal(t, StatusOnTrip, started.Status)
		require.NotNil(t, started.AssignedDriverID)
		assert.Equal(t, drv.ID, *started.AssignedDriverID)

		v, err := env.vehicles.GetByID(ctx, veh.ID)
		require.NoError(t, err)
		assert.Equal(t, vehicle.StatusBusy, v.Status)
	})

	t.Run("engaged pair blocks another quick start", func(t *testing.T) {
		b := env.createBooking(t, head.ID)
		_, err := env.bookings.QuickStart(ctx, b.ID, veh.ID, drv.ID)
		assert.ErrorIs(t, err, ErrResourceConflict)
	})
}

func TestCancel(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	staff := env.createUser(t, "staff", user.RoleStaff, "dept-a")
	head := env.createUser(t, "head", user.RoleDeptHead, "dept-a")
	veh := env.createVehicle(t, "AMB-101")
	drv := env.createDriver(t, "L-001")

	t.Run("reason is mandatory", func(t *testing.T) {
		b := env.createBooking(t, staff.ID)
		_, err := env.bookings.Cancel(ctx, b.ID, "  ")
		assert.ErrorIs(t, err, ErrCancelReasonRequired)
	})

	t.Run("cancel requested booking", func(t *testing.T) {
		b := env.createBooking(t, staff.ID)
		cancelled, err := env.bookings.Cancel(ctx, b.ID, "patient discharged")
		require.NoError(t, err)
		assert.Equal(t, StatusCancelled, cancelled.Status)
		assert.Equal(t, "patient discharged", cancelled.CancelReason)
	})

	t.Run("cancel on trip releases resources and keeps assignment", func(t *testing.T) {
		b := env.createBooking(t, head.ID)
		_, err := env.bookings.QuickStart(ctx, b.ID, veh.ID, drv.ID)
		require.NoError(t, err)

		cancelled, err := env.bookings.Cancel(ctx, b.ID, "vehicle breakdown")
		require.NoError(t, err)
		assert.Equal(t, StatusCancelled, cancelled.Status)
		require.NotNil(t, cancelled.AssignedVehicleID)

		v, err := env.vehicles.GetByID(ctx, veh.ID)
		require.NoError(t, err)
		assert.Equal(t, vehicle.StatusAvailable, v.Status)

		d, err := env.drivers.GetByID(ctx, drv.ID)
		require.NoError(t, err)
		assert.Equal(t, driver.StatusAvailable, d.Status)
	})
}

func TestReschedule(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	staff := env.createUser(t, "staff", user.RoleStaff, "dept-a")
	head := env.createUser(t, "head", user.RoleDeptHead, "dept-a")

	t.Run("approved booking reschedules with audit note", func(t *testing.T) {
		b := env.createBooking(t, head.ID)
		start := time.Now().UTC().Add(24 * time.Hour)
		end := start.Add(time.Hour)

		moved, err := env.bookings.Reschedule(ctx, b.ID, start, end)
		require.NoError(t, err)
		assert.True(t, moved.StartTime.Equal(start))
		assert.True(t, moved.EndTime.Equal(end))
		assert.Contains(t, moved.Notes, "Rescheduled by transport office")
	})

	t.Run("requested booking cannot be rescheduled", func(t *testing.T) {
		b := env.createBooking(t, staff.ID)
		_, err := env.bookings.Reschedule(ctx, b.ID, time.Now(), time.Now().Add(time.Hour))
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})
}

func TestListVisibility(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	staffA := env.createUser(t, "staff-a", user.RoleStaff, "dept-a")
	staffA2 := env.createUser(t, "staff-a2", user.RoleStaff, "dept-a")
	staffB := env.createUser(t, "staff-b", user.RoleStaff, "dept-b")
	headA := env.createUser(t, "head-a", user.RoleDeptHead, "dept-a")
	operator := env.createUser(t, "operator", user.RoleOperator, "dept-b")

	env.createBooking(t, staffA.ID)
	env.createBooking(t, staffA2.ID)
	env.createBooking(t, staffB.ID)

	t.Run("staff see only their own", func(t *testing.T) {
		_, total, err := env.bookings.List(ctx, staffA.ID, Filter{})
		require.NoError(t, err)
		assert.Equal(t, 1, total)
	})

	t.Run("dept head sees whole department", func(t *testing.T) {
		_, total, err := env.bookings.List(ctx, headA.ID, Filter{})
		require.NoError(t, err)
		assert.Equal(t, 2, total)
	})

	t.Run("operator sees everything", func(t *testing.T) {
		_, total, err := env.bookings.List(ctx, operator.ID, Filter{})
		require.NoError(t, err)
		assert.Equal(t, 3, total)
	})

	t.Run("get enforces the same rule", func(t *testing.T) {
		b := env.createBooking(t, staffB.ID)

		_, err := env.bookings.Get(ctx, staffA.ID, b.ID)
		assert.ErrorIs(t, err, ErrPermissionDenied)

		got, err := env.bookings.Get(ctx, operator.ID, b.ID)
		require.NoError(t, err)
		assert.Equal(t, b.ID, got.ID)
	})
}

func TestListOrdering(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	operator := env.createUser(t, "operator", user.RoleOperator, "dept-a")
	staff := env.createUser(t, "staff", user.RoleStaff, "dept-a")

	now := time.Now().UTC()
	mk := func(priority Priority, start time.Time) *Booking {
		b, err := env.bookings.Create(ctx, CreateRequest{
			RequesterID:    staff.ID,
			Purpose:        "transfer",
			PickupLocation: "A",
			DropLocation:   "B",
			StartTime:      start,
			EndTime:        start.Add(time.Hour),
			Priority:       priority,
		})
		require.NoError(t, err)
		return b
	}

	late := mk(PriorityNormal, now.Add(3*time.Hour))
	early := mk(PriorityNormal, now.Add(time.Hour))
	urgent := mk(PriorityEmergency, now.Add(5*time.Hour))

	list, _, err := env.bookings.List(ctx, operator.ID, Filter{})
	require.NoError(t, err)
	require.Len(t, list, 3)

	// Emergencies jump the queue; the rest order by start time.
	assert.Equal(t, urgent.ID, list[0].ID)
	assert.Equal(t, early.ID, list[1].ID)
	assert.Equal(t, late.ID, list[2].ID)
}

func TestStats(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	staffA := env.createUser(t, "staff-a", user.RoleStaff, "dept-a")
	staffB := env.createUser(t, "staff-b", user.RoleStaff, "dept-b")
	headA := env.createUser(t, "head-a", user.RoleDeptHead, "dept-a")
	operator := env.createUser(t, "operator", user.RoleOperator, "dept-b")

	veh := env.createVehicle(t, "AMB-101")
	env.createVehicle(t, "CAR-501")
	drv := env.createDriver(t, "L-001")

	env.createBooking(t, staffA.ID)                // REQUESTED, dept-a
	env.createBooking(t, staffB.ID)                // REQUESTED, dept-b
	onTrip := env.createBooking(t, headA.ID)       // APPROVED, dept-a
	_, err := env.bookings.QuickStart(ctx, onTrip.ID, veh.ID, drv.ID)
	require.NoError(t, err)

	t.Run("operator sees hospital wide", func(t *testing.T) {
		stats, err := env.bookings.Stats(ctx, operator.ID)
		require.NoError(t, err)
		assert.Equal(t, 3, stats.TotalBookings)
		assert.Equal(t, 2, stats.PendingApprovals)
		assert.Equal(t, 1, stats.ActiveTrips)
		assert.Equal(t, 1, stats.AvailableVehicles) // AMB-101 is on a trip
	})

	t.Run("dept head scoped to department, vehicles hospital wide", func(t *testing.T) {
		stats, err := env.bookings.Stats(ctx, headA.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, stats.TotalBookings)
		assert.Equal(t, 1, stats.PendingApprovals)
		assert.Equal(t, 1, stats.ActiveTrips)
		assert.Equal(t, 1, stats.AvailableVehicles)
	})

	t.Run("staff scoped to own requests", func(t *testing.T) {
		stats, err := env.bookings.Stats(ctx, staffA.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, stats.TotalBookings)
		assert.Equal(t, 1, stats.PendingApprovals)
		assert.Equal(t, 0, stats.ActiveTrips)
	})
}
