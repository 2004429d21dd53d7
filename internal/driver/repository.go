package driver

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository defines storage access for drivers.
type Repository interface {
	Create(ctx context.Context, d *Driver) error
	GetByID(ctx context.Context, id string) (*Driver, error)
	List(ctx context.Context, filter Filter) ([]*Driver, int, error)
	Update(ctx context.Context, d *Driver) error
	Delete(ctx context.Context, id string) error

	// SetStatus updates only the status column. The dispatch coordinator is
	// the sole caller for ON_DUTY/AVAILABLE flips.
	SetStatus(ctx context.Context, id string, status Status) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, d *Driver) error {
	const query = `
		INSERT INTO public.drivers (name, license_number, status, shift, phone)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	if err := r.pool.QueryRow(
		ctx,
		query,
		d.Name,
		d.LicenseNumber,
		d.Status,
		d.Shift,
		d.Phone,
	).Scan(&d.ID, &d.CreatedAt); err != nil {
		var e *pgconn.PgError
		if errors.As(err, &e) && e.Code == pgerrcode.UniqueViolation {
			return ErrLicenseAlreadyUsed
		}
		return fmt.Errorf("create driver failed: %w", err)
	}

	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Driver, error) {
	const query = `
		SELECT id, name, license_number, status, shift, phone, created_at
		FROM public.drivers
		WHERE id = $1
	`

	var d Driver
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&d.ID, &d.Name, &d.LicenseNumber, &d.Status, &d.Shift, &d.Phone, &d.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get driver failed: %w", err)
	}
	return &d, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Driver, int, error) {
	query := `
		SELECT id, name, license_number, status, shift, phone, created_at,
			count(*) OVER() AS total_count
		FROM public.drivers
		WHERE 1=1
	`
	var args []any

	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filter.Shift != "" {
		args = append(args, filter.Shift)
		query += fmt.Sprintf(" AND shift = $%d", len(args))
	}

	query += " ORDER BY name ASC"

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize

	args = append(args, filter.PageSize, offset)
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list drivers failed: %w", err)
	}
	defer rows.Close()

	var drivers []*Driver
	var total int

	for rows.Next() {
		var d Driver
		if err := rows.Scan(
			&d.ID, &d.Name, &d.LicenseNumber, &d.Status, &d.Shift, &d.Phone, &d.CreatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan driver failed: %w", err)
		}
		drivers = append(drivers, &d)
	}

	return drivers, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, d *Driver) error {
	const query = `
		UPDATE public.drivers
		SET name = $1, license_number = $2, status = $3, shift = $4, phone = $5
		WHERE id = $6
	`

	ct, err := r.pool.Exec(ctx, query, d.Name, d.LicenseNumber, d.Status, d.Shift, d.Phone, d.ID)
	if err != nil {
		var e *pgconn.PgError
		if errors.As(err, &e) && e.Code == pgerrcode.UniqueViolation {
			return ErrLicenseAlreadyUsed
		}
		return fmt.Errorf("update driver failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM public.drivers WHERE id = $1`

	ct, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete driver failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) SetStatus(ctx context.Context, id string, status Status) error {
	const query = `UPDATE public.drivers SET status = $1 WHERE id = $2`

	ct, err := r.pool.Exec(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("set driver status failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
