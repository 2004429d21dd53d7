package booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository defines storage access for bookings.
type Repository interface {
	Create(ctx context.Context, b *Booking) error
	GetByID(ctx context.Context, id string) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)
	Update(ctx context.Context, b *Booking) error

	// HasActiveConflict checks whether another booking in an engaged status
	// (CONFIRMED or ON_TRIP) already holds the vehicle or the driver.
	// excludeBookingID ignores the booking being acted on.
	HasActiveConflict(ctx context.Context, vehicleID, driverID, excludeBookingID string) (bool, error)

	// StatusCounts returns the total number of bookings matching the filter
	// plus a per-status breakdown, ignoring pagination.
	StatusCounts(ctx context.Context, filter Filter) (int, map[Status]int, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var bookingColumns = []string{
	"id", "requester_id", "department_id", "purpose",
	"pickup_location", "drop_location", "start_time", "end_time",
	"passengers", "has_equipment", "equipment_description", "preferred_vehicle_type",
	"assigned_vehicle_id", "assigned_driver_id", "priority", "status",
	"created_at", "updated_at", "notes", "cancel_reason",
}

func scanBooking(row pgx.Row) (*Booking, error) {
	var b Booking
	if err := row.Scan(
		&b.ID, &b.RequesterID, &b.DepartmentID, &b.Purpose,
		&b.PickupLocation, &b.DropLocation, &b.StartTime, &b.EndTime,
		&b.Passengers, &b.HasEquipment, &b.EquipmentDescription, &b.PreferredVehicleType,
		&b.AssignedVehicleID, &b.AssignedDriverID, &b.Priority, &b.Status,
		&b.CreatedAt, &b.UpdatedAt, &b.Notes, &b.CancelReason,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan booking failed: %w", err)
	}
	return &b, nil
}

func (r *pgxRepository) Create(ctx context.Context, b *Booking) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.bookings").
		Columns(
			"requester_id", "department_id", "purpose",
			"pickup_location", "drop_location", "start_time", "end_time",
			"passengers", "has_equipment", "equipment_description", "preferred_vehicle_type",
			"priority", "status", "notes",
		).
		Values(
			b.RequesterID, b.DepartmentID, b.Purpose,
			b.PickupLocation, b.DropLocation, b.StartTime, b.EndTime,
			b.Passengers, b.HasEquipment, b.EquipmentDescription, b.PreferredVehicleType,
			b.Priority, b.Status, b.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create booking query failed: %w", err)
	}

	return r.pool.QueryRow(ctx, query, args...).
		Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Booking, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(bookingColumns...).
		From("public.bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get booking query failed: %w", err)
	}

	return scanBooking(r.pool.QueryRow(ctx, query, args...))
}

func applyFilter(query squirrel.SelectBuilder, filter Filter) squirrel.SelectBuilder {
	if filter.RequesterID != "" {
		query = query.Where(squirrel.Eq{"requester_id": filter.RequesterID})
	}
	if filter.DepartmentID != "" {
		query = query.Where(squirrel.Eq{"department_id": filter.DepartmentID})
	}
	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"status": filter.Status})
	}
	if filter.Priority != "" {
		query = query.Where(squirrel.Eq{"priority": filter.Priority})
	}
	return query
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	cols := append(append([]string{}, bookingColumns...), "count(*) OVER() as total_count")
	query := applyFilter(psql.Select(cols...).From("public.bookings"), filter)

	// Dispatch queue ordering: emergencies first, then earliest start, then
	// creation order.
	query = query.OrderBy(
		"CASE WHEN priority = 'EMERGENCY' THEN 0 ELSE 1 END",
		"start_time ASC",
		"created_at ASC",
	)

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize
	query = query.Limit(uint64(filter.PageSize)).Offset(uint64(offset))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list bookings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	var total int

	for rows.Next() {
		var b Booking
		if err := rows.Scan(
			&b.ID, &b.RequesterID, &b.DepartmentID, &b.Purpose,
			&b.PickupLocation, &b.DropLocation, &b.StartTime, &b.EndTime,
			&b.Passengers, &b.HasEquipment, &b.EquipmentDescription, &b.PreferredVehicleType,
			&b.AssignedVehicleID, &b.AssignedDriverID, &b.Priority, &b.Status,
			&b.CreatedAt, &b.UpdatedAt, &b.Notes, &b.CancelReason, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, &b)
	}

	return bookings, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, b *Booking) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.bookings").
		Set("start_time", b.StartTime).
		Set("end_time", b.EndTime).
		Set("assigned_vehicle_id", b.AssignedVehicleID).
		Set("assigned_driver_id", b.AssignedDriverID).
		Set("priority", b.Priority).
		Set("status", b.Status).
		Set("notes", b.Notes).
		Set("cancel_reason", b.CancelReason).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": b.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update booking query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update booking failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) HasActiveConflict(ctx context.Context, vehicleID, driverID, excludeBookingID string) (bool, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	subQuery := psql.Select("1").
		From("public.bookings").
		Where(squirrel.Eq{"status": []string{string(StatusConfirmed), string(StatusOnTrip)}}).
		Where(squirrel.Or{
			squirrel.Eq{"assigned_vehicle_id": vehicleID},
			squirrel.Eq{"assigned_driver_id": driverID},
		})

	if excludeBookingID != "" {
		subQuery = subQuery.Where(squirrel.NotEq{"id": excludeBookingID})
	}

	sql, args, err := subQuery.ToSql()
	if err != nil {
		return false, fmt.Errorf("build conflict check query failed: %w", err)
	}

	query := "SELECT EXISTS (" + sql + ")"

	var exists bool
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("conflict check failed: %w", err)
	}
	return exists, nil
}

func (r *pgxRepository) StatusCounts(ctx context.Context, filter Filter) (int, map[Status]int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := applyFilter(psql.Select("status", "count(*)").From("public.bookings"), filter).
		GroupBy("status")

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, nil, fmt.Errorf("build status counts query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return 0, nil, fmt.Errorf("status counts failed: %w", err)
	}
	defer rows.Close()

	total := 0
	counts := make(map[Status]int)
	for rows.Next() {
		var status Status
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return 0, nil, fmt.Errorf("scan status count failed: %w", err)
		}
		counts[status] = count
		total += count
	}
	return total, counts, nil
}
