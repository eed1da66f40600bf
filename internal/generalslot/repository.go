package generalslot

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, g *GeneralTimeSlot) error
	GetByID(ctx context.Context, id int64) (*GeneralTimeSlot, error)
	ListBySystem(ctx context.Context, systemID int64) ([]*GeneralTimeSlot, error)
	// ListBySystemWeekday returns the rules the overlap check runs against.
	ListBySystemWeekday(ctx context.Context, systemID int64, weekday int) ([]*GeneralTimeSlot, error)
	// ListByWeekday feeds the daily horizon advance across all systems.
	ListByWeekday(ctx context.Context, weekday int) ([]*GeneralTimeSlot, error)
	Update(ctx context.Context, g *GeneralTimeSlot) error
	Delete(ctx context.Context, id int64) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

const gtsColumns = `id, booking_system_id, weekday, start_time::text, end_time::text,
	interval_minutes, max_people, max_tables, min_per_booking, max_per_booking, created_at`

func scanGTS(row pgx.Row) (*GeneralTimeSlot, error) {
	var g GeneralTimeSlot
	err := row.Scan(
		&g.ID, &g.BookingSystemID, &g.Weekday, &g.StartTime, &g.EndTime,
		&g.IntervalMinutes, &g.MaxPeople, &g.MaxTables, &g.MinPerBooking, &g.MaxPerBooking,
		&g.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan general time slot failed: %w", err)
	}
	return &g, nil
}

func (r *pgxRepository) Create(ctx context.Context, g *GeneralTimeSlot) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.general_time_slots").
		Columns(
			"booking_system_id", "weekday", "start_time", "end_time",
			"interval_minutes", "max_people", "max_tables", "min_per_booking", "max_per_booking",
		).
		Values(
			g.BookingSystemID, g.Weekday, g.StartTime, g.EndTime,
			g.IntervalMinutes, g.MaxPeople, g.MaxTables, g.MinPerBooking, g.MaxPerBooking,
		).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create general time slot query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&g.ID, &g.CreatedAt); err != nil {
		return fmt.Errorf("create general time slot failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id int64) (*GeneralTimeSlot, error) {
	query := fmt.Sprintf("SELECT %s FROM public.general_time_slots WHERE id = $1", gtsColumns)
	return scanGTS(r.pool.QueryRow(ctx, query, id))
}

func (r *pgxRepository) list(ctx context.Context, query string, args ...any) ([]*GeneralTimeSlot, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list general time slots failed: %w", err)
	}
	defer rows.Close()

	var slots []*GeneralTimeSlot
	for rows.Next() {
		var g GeneralTimeSlot
		if err := rows.Scan(
			&g.ID, &g.BookingSystemID, &g.Weekday, &g.StartTime, &g.EndTime,
			&g.IntervalMinutes, &g.MaxPeople, &g.MaxTables, &g.MinPerBooking, &g.MaxPerBooking,
			&g.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan general time slot failed: %w", err)
		}
		slots = append(slots, &g)
	}
	return slots, rows.Err()
}

func (r *pgxRepository) ListBySystem(ctx context.Context, systemID int64) ([]*GeneralTimeSlot, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM public.general_time_slots WHERE booking_system_id = $1 ORDER BY weekday, start_time",
		gtsColumns)
	return r.list(ctx, query, systemID)
}

func (r *pgxRepository) ListBySystemWeekday(ctx context.Context, systemID int64, weekday int) ([]*GeneralTimeSlot, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM public.general_time_slots WHERE booking_system_id = $1 AND weekday = $2 ORDER BY start_time",
		gtsColumns)
	return r.list(ctx, query, systemID, weekday)
}

func (r *pgxRepository) ListByWeekday(ctx context.Context, weekday int) ([]*GeneralTimeSlot, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM public.general_time_slots WHERE weekday = $1 ORDER BY booking_system_id, start_time",
		gtsColumns)
	return r.list(ctx, query, weekday)
}

func (r *pgxRepository) Update(ctx context.Context, g *GeneralTimeSlot) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.general_time_slots").
		Set("weekday", g.Weekday).
		Set("start_time", g.StartTime).
		Set("end_time", g.EndTime).
		Set("interval_minutes", g.IntervalMinutes).
		Set("max_people", g.MaxPeople).
		Set("max_tables", g.MaxTables).
		Set("min_per_booking", g.MinPerBooking).
		Set("max_per_booking", g.MaxPerBooking).
		Where(squirrel.Eq{"id": g.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update general time slot query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update general time slot failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id int64) error {
	ct, err := r.pool.Exec(ctx, "DELETE FROM public.general_time_slots WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete general time slot failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
