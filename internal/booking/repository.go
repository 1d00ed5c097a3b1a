package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/firmdesk/scheduling-backend/internal/planner"
)

type Repository interface {
	Create(ctx context.Context, booking *Booking) error
	// CreateBatch inserts the bookings in one transaction; either all rows
	// are committed or none.
	CreateBatch(ctx context.Context, bookings []*Booking) error
	GetByID(ctx context.Context, id string) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)
	Update(ctx context.Context, booking *Booking) error
	Delete(ctx context.Context, id string) error

	// FindOverlapping implements the planner's overlap lookup: it returns
	// the committed, non-cancelled intervals intersecting [start, end) for
	// the scope. When scope.StaffID is set, only that staff member's
	// bookings count; otherwise the whole service is checked.
	FindOverlapping(ctx context.Context, scope planner.Scope, start, end time.Time) ([]planner.Interval, error)

	// HasOverlap reports whether any non-cancelled booking in the scope
	// intersects [start, end). excludeBookingID, when non-empty, leaves
	// that booking out so a reschedule does not collide with itself.
	HasOverlap(ctx context.Context, scope planner.Scope, start, end time.Time, excludeBookingID string) (bool, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, b *Booking) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.bookings").
		Columns("service_id", "staff_id", "client_id", "series_id", "start_time", "end_time", "status", "notes").
		Values(b.ServiceID, b.StaffID, b.ClientID, b.SeriesID, b.StartTime, b.EndTime, b.Status, b.Notes).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create booking query failed: %w", err)
	}

	return r.pool.QueryRow(ctx, query, args...).
		Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
}

func (r *pgxRepository) CreateBatch(ctx context.Context, bookings []*Booking) error {
	if len(bookings) == 0 {
		return nil
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin create batch failed: %w", err)
	}
	defer tx.Rollback(ctx)

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	for _, b := range bookings {
		query, args, err := psql.Insert("public.bookings").
			Columns("service_id", "staff_id", "client_id", "series_id", "start_time", "end_time", "status", "notes").
			Values(b.ServiceID, b.StaffID, b.ClientID, b.SeriesID, b.StartTime, b.EndTime, b.Status, b.Notes).
			Suffix("RETURNING id, created_at, updated_at").
			ToSql()
		if err != nil {
			return fmt.Errorf("build batch insert query failed: %w", err)
		}
		if err := tx.QueryRow(ctx, query, args...).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return fmt.Errorf("batch insert booking failed: %w", err)
		}
	}

	return tx.Commit(ctx)
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Booking, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(
		"b.id", "b.service_id", "s.name", "b.staff_id", "st.display_name",
		"b.client_id", "u.display_name",
		"b.series_id", "b.start_time", "b.end_time", "b.status", "b.notes",
		"b.created_at", "b.updated_at",
	).
		From("public.bookings b").
		Join("public.services s ON b.service_id = s.id").
		Join("public.users u ON b.client_id = u.id").
		LeftJoin("public.staff st ON b.staff_id = st.id").
		Where(squirrel.Eq{"b.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get booking query failed: %w", err)
	}

	row := r.pool.QueryRow(ctx, query, args...)

	var b Booking
	if err := row.Scan(
		&b.ID, &b.ServiceID, &b.ServiceName, &b.StaffID, &b.StaffName,
		&b.ClientID, &b.ClientName,
		&b.SeriesID, &b.StartTime, &b.EndTime, &b.Status, &b.Notes,
		&b.CreatedAt, &b.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking failed: %w", err)
	}
	return &b, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"b.id", "b.service_id", "s.name", "b.staff_id", "st.display_name",
		"b.client_id", "u.display_name",
		"b.series_id", "b.start_time", "b.end_time", "b.status", "b.notes",
		"b.created_at", "b.updated_at",
		"count(*) OVER() as total_count",
	).
		From("public.bookings b").
		Join("public.services s ON b.service_id = s.id").
		Join("public.users u ON b.client_id = u.id").
		LeftJoin("public.staff st ON b.staff_id = st.id")

	if filter.ClientID != "" {
		query = query.Where(squirrel.Eq{"b.client_id": filter.ClientID})
	}
	if filter.ServiceID != "" {
		query = query.Where(squirrel.Eq{"b.service_id": filter.ServiceID})
	}
	if filter.StaffID != "" {
		query = query.Where(squirrel.Eq{"b.staff_id": filter.StaffID})
	}
	if filter.SeriesID != "" {
		query = query.Where(squirrel.Eq{"b.series_id": filter.SeriesID})
	}
	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"b.status": filter.Status})
	}
	if filter.ExcludeCancelled {
		query = query.Where(squirrel.NotEq{"b.status": StatusCancelled})
	}
	// Date range filtering (intersection logic)
	if filter.StartTime != nil {
		query = query.Where(squirrel.GtOrEq{"b.end_time": filter.StartTime})
	}
	if filter.EndTime != nil {
		query = query.Where(squirrel.LtOrEq{"b.start_time": filter.EndTime})
	}

	// Sorting
	orderBy := "b.start_time"
	if filter.SortBy != "" {
		orderBy = "b." + filter.SortBy
	}

	orderDir := "DESC"
	if filter.SortOrder != "" {
		orderDir = filter.SortOrder
	}

	query = query.OrderBy(orderBy + " " + orderDir)

	// Pagination
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
			&b.ID, &b.ServiceID, &b.ServiceName, &b.StaffID, &b.StaffName,
			&b.ClientID, &b.ClientName,
			&b.SeriesID, &b.StartTime, &b.EndTime, &b.Status, &b.Notes,
			&b.CreatedAt, &b.UpdatedAt, &total,
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
		Set("status", b.Status).
		Set("notes", b.Notes).
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

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete booking query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete booking failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) FindOverlapping(ctx context.Context, scope planner.Scope, start, end time.Time) ([]planner.Interval, error) {
	// Half-open overlap: existing.start < end AND existing.end > start.
	// Cancelled bookings never block a slot.
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select("start_time", "end_time").
		From("public.bookings").
		Where(squirrel.Eq{"service_id": scope.ServiceID}).
		Where(squirrel.NotEq{"status": StatusCancelled}).
		Where(squirrel.Lt{"start_time": end}).
		Where(squirrel.Gt{"end_time": start}).
		OrderBy("start_time ASC")

	if scope.StaffID != "" {
		query = query.Where(squirrel.Eq{"staff_id": scope.StaffID})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build find overlapping query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("find overlapping failed: %w", err)
	}
	defer rows.Close()

	var intervals []planner.Interval
	for rows.Next() {
		var iv planner.Interval
		if err := rows.Scan(&iv.Start, &iv.End); err != nil {
			return nil, fmt.Errorf("scan overlapping interval failed: %w", err)
		}
		intervals = append(intervals, iv)
	}

	return intervals, nil
}

func (r *pgxRepository) HasOverlap(ctx context.Context, scope planner.Scope, start, end time.Time, excludeBookingID string) (bool, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select("1").
		From("public.bookings").
		Where(squirrel.Eq{"service_id": scope.ServiceID}).
		Where(squirrel.NotEq{"status": StatusCancelled}).
		Where(squirrel.Lt{"start_time": end}).
		Where(squirrel.Gt{"end_time": start}).
		Limit(1)

	if scope.StaffID != "" {
		query = query.Where(squirrel.Eq{"staff_id": scope.StaffID})
	}
	if excludeBookingID != "" {
		query = query.Where(squirrel.NotEq{"id": excludeBookingID})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return false, fmt.Errorf("build has overlap query failed: %w", err)
	}

	var one int
	if err := r.pool.QueryRow(ctx, sql, args...).Scan(&one); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("has overlap failed: %w", err)
	}
	return true, nil
}
