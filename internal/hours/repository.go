package hours

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	ListByService(ctx context.Context, serviceID string) ([]*Window, error)
	// Upsert inserts or replaces the window for (service, weekday).
	Upsert(ctx context.Context, w *Window) error
	Delete(ctx context.Context, serviceID string, weekday int) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) ListByService(ctx context.Context, serviceID string) ([]*Window, error) {
	const query = `
		SELECT id, service_id, weekday, open_minutes, close_minutes, created_at
		FROM public.business_hours
		WHERE service_id = $1
		ORDER BY weekday ASC, open_minutes ASC
	`
	rows, err := r.pool.Query(ctx, query, serviceID)
	if err != nil {
		return nil, fmt.Errorf("list business hours failed: %w", err)
	}
	defer rows.Close()

	var windows []*Window
	for rows.Next() {
		var w Window
		if err := rows.Scan(&w.ID, &w.ServiceID, &w.Weekday, &w.OpenMin, &w.CloseMin, &w.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan business hours failed: %w", err)
		}
		windows = append(windows, &w)
	}

	return windows, nil
}

func (r *pgxRepository) Upsert(ctx context.Context, w *Window) error {
	const query = `
		INSERT INTO public.business_hours (service_id, weekday, open_minutes, close_minutes)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (service_id, weekday)
		DO UPDATE SET open_minutes = EXCLUDED.open_minutes, close_minutes = EXCLUDED.close_minutes
		RETURNING id, created_at
	`
	err := r.pool.QueryRow(ctx, query, w.ServiceID, w.Weekday, w.OpenMin, w.CloseMin).
		Scan(&w.ID, &w.CreatedAt)
	if err != nil {
		return fmt.Errorf("upsert business hours failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, serviceID string, weekday int) error {
	const query = `DELETE FROM public.business_hours WHERE service_id = $1 AND weekday = $2`
	ct, err := r.pool.Exec(ctx, query, serviceID, weekday)
	if err != nil {
		return fmt.Errorf("delete business hours failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
