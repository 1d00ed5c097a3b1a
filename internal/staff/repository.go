package staff

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, m *Member) error
	GetByID(ctx context.Context, id string) (*Member, error)
	List(ctx context.Context, filter Filter) ([]*Member, int, error)
	Update(ctx context.Context, m *Member) error
	Delete(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, m *Member) error {
	const query = `
		INSERT INTO public.staff (display_name, email, title, is_active)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	err := r.pool.QueryRow(ctx, query, m.DisplayName, m.Email, m.Title, m.IsActive).
		Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrEmailAlreadyUsed
		}
		return fmt.Errorf("create staff member failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Member, error) {
	const query = `
		SELECT id, display_name, email, title, is_active, created_at
		FROM public.staff
		WHERE id = $1
	`
	row := r.pool.QueryRow(ctx, query, id)

	var m Member
	if err := row.Scan(&m.ID, &m.DisplayName, &m.Email, &m.Title, &m.IsActive, &m.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get staff member failed: %w", err)
	}
	return &m, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Member, int, error) {
	var args []interface{}
	queryBase := `
		SELECT id, display_name, email, title, is_active, created_at, count(*) OVER() as total_count
		FROM public.staff
		WHERE 1=1
	`
	paramIndex := 1

	if filter.IsActive != nil {
		queryBase += fmt.Sprintf(" AND is_active = $%d", paramIndex)
		args = append(args, *filter.IsActive)
		paramIndex++
	}

	queryBase += " ORDER BY display_name ASC"

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
		return nil, 0, fmt.Errorf("list staff failed: %w", err)
	}
	defer rows.Close()

	var result []*Member
	var total int

	for rows.Next() {
		var m Member
		if err := rows.Scan(&m.ID, &m.DisplayName, &m.Email, &m.Title, &m.IsActive, &m.CreatedAt, &total); err != nil {
			return nil, 0, fmt.Errorf("scan staff member failed: %w", err)
		}
		result = append(result, &m)
	}

	return result, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, m *Member) error {
	const query = `
		UPDATE public.staff
		SET display_name = $1, email = $2, title = $3, is_active = $4
		WHERE id = $5
	`
	ct, err := r.pool.Exec(ctx, query, m.DisplayName, m.Email, m.Title, m.IsActive, m.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrEmailAlreadyUsed
		}
		return fmt.Errorf("update staff member failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM public.staff WHERE id = $1`
	ct, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete staff member failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
