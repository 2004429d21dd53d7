// Package seed bootstraps demo data on an empty database so the API is
// usable right after first start. It is a no-op once any user exists.
package seed

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/hospitalops/transport-booking-backend/internal/app"
	"github.com/hospitalops/transport-booking-backend/internal/booking"
	"github.com/hospitalops/transport-booking-backend/internal/department"
	"github.com/hospitalops/transport-booking-backend/internal/driver"
	"github.com/hospitalops/transport-booking-backend/internal/user"
	"github.com/hospitalops/transport-booking-backend/internal/vehicle"
)

// DemoPassword is the password of every seeded demo account.
const DemoPassword = "hospital123"

// Run populates demo departments, users, fleet and one open booking request.
// It checks the user directory first and returns without writing anything if
// accounts already exist.
func Run(ctx context.Context, c *app.Container, users user.Repository) error {
	n, err := users.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to check existing users: %w", err)
	}
	if n > 0 {
		return nil
	}

	log.Println("seeding demo data")

	// Departments first; heads are linked after the users exist.
	deptNames := []string{"Emergency Services", "Cardiology", "Radiology"}
	depts := make([]*department.Department, 0, len(deptNames))
	for _, name := range deptNames {
		d, err := c.DepartmentService.Create(ctx, department.CreateRequest{Name: name})
		if err != nil {
			return fmt.Errorf("failed to seed department %q: %w", name, err)
		}
		depts = append(depts, d)
	}

	accounts := []struct {
		name  string
		email string
		role  user.Role
		dept  int
	}{
		{"John Staff", "john@hospital.com", user.RoleStaff, 0},
		{"Dr. Smith", "smith@hospital.com", user.RoleDeptHead, 0},
		{"Dr. Alice", "alice@hospital.com", user.RoleDeptHead, 1},
		{"Admin One", "admin@hospital.com", user.RoleAdmin, 0},
		{"Mark Operator", "mark@hospital.com", user.RoleOperator, 0},
	}
	seeded := make([]*user.User, 0, len(accounts))
	for _, a := range accounts {
		u, err := c.UserService.Create(ctx, user.CreateRequest{
			Name:         a.name,
			Email:        a.email,
			Password:     DemoPassword,
			Role:         a.role,
			DepartmentID: depts[a.dept].ID,
		})
		if err != nil {
			return fmt.Errorf("failed to seed user %q: %w", a.email, err)
		}
		seeded = append(seeded, u)
	}

	// Link department heads.
	heads := map[int]string{0: seeded[1].ID, 1: seeded[2].ID}
	for deptIdx, headID := range heads {
		id := headID
		if _, err := c.DepartmentService.Update(ctx, depts[deptIdx].ID, department.UpdateRequest{HeadID: &id}); err != nil {
			return fmt.Errorf("failed to link department head: %w", err)
		}
	}

	vehicles := []vehicle.CreateRequest{
		{Type: vehicle.TypeAmbulance, PlateNumber: "AMB-101", Capacity: 2, EquipmentLoad: 500, LastServiceDate: date(2025, 10, 1)},
		{Type: vehicle.TypeAmbulance, PlateNumber: "AMB-102", Capacity: 2, EquipmentLoad: 500, LastServiceDate: date(2025, 11, 15)},
		{Type: vehicle.TypeCar, PlateNumber: "CAR-501", Capacity: 4, EquipmentLoad: 100, LastServiceDate: date(2025, 9, 20)},
		{Type: vehicle.TypeVan, PlateNumber: "VAN-201", Capacity: 8, EquipmentLoad: 300, LastServiceDate: date(2025, 12, 5)},
	}
	for _, v := range vehicles {
		if _, err := c.VehicleService.Create(ctx, v); err != nil {
			return fmt.Errorf("failed to seed vehicle %q: %w", v.PlateNumber, err)
		}
	}

	drivers := []driver.CreateRequest{
		{Name: "Robert Driver", LicenseNumber: "L-001", Shift: driver.ShiftMorning, Phone: "+1234567890"},
		{Name: "James Speed", LicenseNumber: "L-002", Shift: driver.ShiftMorning, Phone: "+1234567891"},
		{Name: "Susan Wheel", LicenseNumber: "L-003", Shift: driver.ShiftEvening, Phone: "+1234567892"},
	}
	for _, d := range drivers {
		if _, err := c.DriverService.Create(ctx, d); err != nil {
			return fmt.Errorf("failed to seed driver %q: %w", d.LicenseNumber, err)
		}
	}

	// One open request so the approval queue is not empty on first login.
	now := time.Now().UTC()
	_, err = c.BookingService.Create(ctx, booking.CreateRequest{
		RequesterID:          seeded[0].ID,
		Purpose:              "Patient transfer to Diagnostic Center",
		PickupLocation:       "Main Wing A",
		DropLocation:         "Diagnostic Center",
		StartTime:            now.Add(2 * time.Hour),
		EndTime:              now.Add(3 * time.Hour),
		Passengers:           2,
		HasEquipment:         true,
		EquipmentDescription: "Oxygen cylinders",
		PreferredVehicleType: string(vehicle.TypeAmbulance),
		Priority:             booking.PriorityNormal,
	})
	if err != nil {
		return fmt.Errorf("failed to seed booking: %w", err)
	}

	log.Println("demo data seeded")
	return nil
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
