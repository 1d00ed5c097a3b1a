package offering

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, o *Offering) error
	GetByID(ctx context.Context, id string) (*Offering, error)
	List(ctx context.Context, filter Filter) ([]*Offering, int, error)
	Update(ctx context.Context, o *Offering) error
	Delete(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, o *Offering) error {
	const query = `
		INSERT INTO public.services (name, description, duration_minutes, buffer_minutes, default_staff_id, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`
	err := r.pool.QueryRow(ctx, query,
		o.Name, o.Description, o.DurationMin, o.BufferMin, o.DefaultStaffID, o.IsActive).
		Scan(&o.ID, &o.CreatedAt)
	if err != nil {
		return fmt.Errorf("create service failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Offering, error) {
	const query = `
		SELECT id, name, description, duration_minutes, buffer_minutes, default_staff_id, is_active, created_at
		FROM public.services
		WHERE id = $1
	`
	row := r.pool.QueryRow(ctx, query, id)

	var o Offering
	if err := row.Scan(&o.ID, &o.Name, &o.Description, &o.DurationMin, &o.BufferMin, &o.DefaultStaffID, &o.IsActive, &o.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get service failed: %w", err)
	}
	return &o, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Offering, int, error) {
	var args []interface{}
	queryBase := `
		SELECT id, name, description, duration_minutes, buffer_minutes, default_staff_id, is_active, created_at, count(*) OVER() as total_count
		FROM public.services
		WHERE 1=1
	`
	paramIndex := 1

	if filter.IsActive != nil {
		queryBase += fmt.Sprintf(" AND is_active = $%d", paramIndex)
		args = append(args, *filter.IsActive)
		paramIndex++
	}

	queryBase += " ORDER BY name ASC"

	// Pagination
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize

	queryBase += fmt.Sprintf(" LIMIT $%d OFFSET $%d", paramIndex, paramIndex+1)
	args = append(args, filter.PageSize, offset)

	rows, err := r.pool.Query(ctx, queryBase, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list services failed: %w", err)
	}
	defer rows.Close()

	var result []*Offering
	var total int

	for rows.Next() {
		var o Offering
		if err := rows.Scan(
			&o.ID, &o.Name, &o.Description, &o.DurationMin, &o.BufferMin, &o.DefaultStaffID, &o.IsActive, &o.CreatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan service failed: %w", err)
		}
		result = append(result, &o)
	}

	return result, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, o *Offering) error {
	const query = `
		UPDATE public.services
		SET name = $1, description = $2, duration_minutes = $3, buffer_minutes = $4, default_staff_id = $5, is_active = $6
		WHERE id = $7
	`
	ct, err := r.pool.Exec(ctx, query,
		o.Name, o.Description, o.DurationMin, o.BufferMin, o.DefaultStaffID, o.IsActive, o.ID)
	if err != nil {
		return fmt.Errorf("update service failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM public.services WHERE id = $1`
	ct, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete service failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
