package timeslot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/meishi-app/meishi-backend/internal/db"
	"github.com/meishi-app/meishi-backend/internal/pkg/daytime"
)

// Repository accesses time slot rows. Methods that the generator runs inside
// a reconciliation transaction take an explicit db.Querier-compatible q.
type Repository interface {
	GetByID(ctx context.Context, id int64) (*TimeSlot, error)
	// GetByIDForUpdate locks the slot row. Booking writes serialize on it.
	GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id int64) (*TimeSlot, error)
	ListBySystem(ctx context.Context, systemID int64, date *time.Time) ([]*TimeSlot, error)
	Update(ctx context.Context, ts *TimeSlot) error
	Delete(ctx context.Context, id int64) error
	CountBookings(ctx context.Context, slotID int64) (int, error)
	// ExistsInRange reports whether any slot of the system on the date has a
	// time in [start, end]. Guards ad hoc batch creation.
	ExistsInRange(ctx context.Context, systemID int64, date time.Time, start, end daytime.Time) (bool, error)

	// Generator-facing methods.
	ListStatesByRule(ctx context.Context, q db.Querier, ruleID int64) ([]State, error)
	MapSystemHorizon(ctx context.Context, q db.Querier, systemID int64, from, to time.Time) (map[Key]int64, error)
	ListTimesByDate(ctx context.Context, date time.Time) (map[int64]map[daytime.Time]bool, error)
	DeleteByIDs(ctx context.Context, q db.Querier, ids []int64) error
	CloseByIDs(ctx context.Context, q db.Querier, ids []int64) error
	AttachToRule(ctx context.Context, q db.Querier, ruleID int64, ids []int64) error
	BulkInsert(ctx context.Context, q db.Querier, slots []*TimeSlot) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

const slotColumns = `id, booking_system_id, general_slot_id, slot_date, slot_time::text, is_open,
	max_people, max_tables, min_per_booking, max_per_booking, created_at`

func scanSlot(row pgx.Row) (*TimeSlot, error) {
	var ts TimeSlot
	err := row.Scan(
		&ts.ID, &ts.BookingSystemID, &ts.GeneralSlotID, &ts.Date, &ts.Time, &ts.IsOpen,
		&ts.MaxPeople, &ts.MaxTables, &ts.MinPerBooking, &ts.MaxPerBooking, &ts.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan time slot failed: %w", err)
	}
	return &ts, nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id int64) (*TimeSlot, error) {
	query := fmt.Sprintf("SELECT %s FROM public.time_slots WHERE id = $1", slotColumns)
	return scanSlot(r.pool.QueryRow(ctx, query, id))
}

func (r *pgxRepository) GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id int64) (*TimeSlot, error) {
	query := fmt.Sprintf("SELECT %s FROM public.time_slots WHERE id = $1 FOR UPDATE", slotColumns)
	return scanSlot(tx.QueryRow(ctx, query, id))
}

func (r *pgxRepository) ListBySystem(ctx context.Context, systemID int64, date *time.Time) ([]*TimeSlot, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	builder := psql.Select(slotColumns).
		From("public.time_slots").
		Where(squirrel.Eq{"booking_system_id": systemID}).
		OrderBy("slot_date", "slot_time")

	if date != nil {
		builder = builder.Where(squirrel.Eq{"slot_date": daytime.DateOf(*date)})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list time slots query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list time slots failed: %w", err)
	}
	defer rows.Close()

	return collectSlots(rows)
}

func collectSlots(rows pgx.Rows) ([]*TimeSlot, error) {
	var slots []*TimeSlot
	for rows.Next() {
		var ts TimeSlot
		if err := rows.Scan(
			&ts.ID, &ts.BookingSystemID, &ts.GeneralSlotID, &ts.Date, &ts.Time, &ts.IsOpen,
			&ts.MaxPeople, &ts.MaxTables, &ts.MinPerBooking, &ts.MaxPerBooking, &ts.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan time slot failed: %w", err)
		}
		slots = append(slots, &ts)
	}
	return slots, rows.Err()
}

func (r *pgxRepository) Update(ctx context.Context, ts *TimeSlot) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.time_slots").
		Set("is_open", ts.IsOpen).
		Set("max_people", ts.MaxPeople).
		Set("max_tables", ts.MaxTables).
		Set("min_per_booking", ts.MinPerBooking).
		Set("max_per_booking", ts.MaxPerBooking).
		Where(squirrel.Eq{"id": ts.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update time slot query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update time slot failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id int64) error {
	ct, err := r.pool.Exec(ctx, "DELETE FROM public.time_slots WHERE id = $1", id)
	if err != nil {
		var pgErr *pgconn.PgError
		// RESTRICT on bookings.time_slot_id backs the delete guard.
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
			return ErrHasBookings
		}
		return fmt.Errorf("delete time slot failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) CountBookings(ctx context.Context, slotID int64) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		"SELECT count(*) FROM public.bookings WHERE time_slot_id = $1", slotID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count slot bookings failed: %w", err)
	}
	return count, nil
}

func (r *pgxRepository) ExistsInRange(ctx context.Context, systemID int64, date time.Time, start, end daytime.Time) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1 FROM public.time_slots
			WHERE booking_system_id = $1 AND slot_date = $2
			  AND slot_time >= $3 AND slot_time <= $4
		)
	`

	var exists bool
	err := r.pool.QueryRow(ctx, query, systemID, daytime.DateOf(date), start, end).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check slots in range failed: %w", err)
	}
	return exists, nil
}

func (r *pgxRepository) ListStatesByRule(ctx context.Context, q db.Querier, ruleID int64) ([]State, error) {
	const query = `
		SELECT t.id, t.slot_date, t.slot_time::text,
		       EXISTS (SELECT 1 FROM public.bookings b WHERE b.time_slot_id = t.id) AS has_bookings
		FROM public.time_slots t
		WHERE t.general_slot_id = $1
	`

	rows, err := q.Query(ctx, query, ruleID)
	if err != nil {
		return nil, fmt.Errorf("list slot states by rule failed: %w", err)
	}
	defer rows.Close()

	var states []State
	for rows.Next() {
		var s State
		if err := rows.Scan(&s.ID, &s.Key.Date, &s.Key.Time, &s.HasBookings); err != nil {
			return nil, fmt.Errorf("scan slot state failed: %w", err)
		}
		s.Key.Date = daytime.DateOf(s.Key.Date)
		states = append(states, s)
	}
	return states, rows.Err()
}

func (r *pgxRepository) MapSystemHorizon(ctx context.Context, q db.Querier, systemID int64, from, to time.Time) (map[Key]int64, error) {
	const query = `
		SELECT id, slot_date, slot_time::text
		FROM public.time_slots
		WHERE booking_system_id = $1 AND slot_date >= $2 AND slot_date < $3
	`

	rows, err := q.Query(ctx, query, systemID, daytime.DateOf(from), daytime.DateOf(to))
	if err != nil {
		return nil, fmt.Errorf("map system horizon failed: %w", err)
	}
	defer rows.Close()

	existing := make(map[Key]int64)
	for rows.Next() {
		var id int64
		var key Key
		if err := rows.Scan(&id, &key.Date, &key.Time); err != nil {
			return nil, fmt.Errorf("scan slot key failed: %w", err)
		}
		key.Date = daytime.DateOf(key.Date)
		existing[key] = id
	}
	return existing, rows.Err()
}

func (r *pgxRepository) ListTimesByDate(ctx context.Context, date time.Time) (map[int64]map[daytime.Time]bool, error) {
	const query = `
		SELECT booking_system_id, slot_time::text
		FROM public.time_slots
		WHERE slot_date = $1
	`

	rows, err := r.pool.Query(ctx, query, daytime.DateOf(date))
	if err != nil {
		return nil, fmt.Errorf("list slot times by date failed: %w", err)
	}
	defer rows.Close()

	taken := make(map[int64]map[daytime.Time]bool)
	for rows.Next() {
		var systemID int64
		var t daytime.Time
		if err := rows.Scan(&systemID, &t); err != nil {
			return nil, fmt.Errorf("scan slot time failed: %w", err)
		}
		if taken[systemID] == nil {
			taken[systemID] = make(map[daytime.Time]bool)
		}
		taken[systemID][t] = true
	}
	return taken, rows.Err()
}

func (r *pgxRepository) DeleteByIDs(ctx context.Context, q db.Querier, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	if _, err := q.Exec(ctx, "DELETE FROM public.time_slots WHERE id = ANY($1)", ids); err != nil {
		return fmt.Errorf("delete time slots failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) CloseByIDs(ctx context.Context, q db.Querier, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	if _, err := q.Exec(ctx, "UPDATE public.time_slots SET is_open = FALSE WHERE id = ANY($1)", ids); err != nil {
		return fmt.Errorf("close time slots failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) AttachToRule(ctx context.Context, q db.Querier, ruleID int64, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := q.Exec(ctx,
		"UPDATE public.time_slots SET general_slot_id = $1, is_open = TRUE WHERE id = ANY($2)",
		ruleID, ids)
	if err != nil {
		return fmt.Errorf("attach time slots to rule failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) BulkInsert(ctx context.Context, q db.Querier, slots []*TimeSlot) error {
	if len(slots) == 0 {
		return nil
	}

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	builder := psql.Insert("public.time_slots").
		Columns(
			"booking_system_id", "general_slot_id", "slot_date", "slot_time", "is_open",
			"max_people", "max_tables", "min_per_booking", "max_per_booking",
		)
	for _, ts := range slots {
		builder = builder.Values(
			ts.BookingSystemID, ts.GeneralSlotID, daytime.DateOf(ts.Date), ts.Time, ts.IsOpen,
			ts.MaxPeople, ts.MaxTables, ts.MinPerBooking, ts.MaxPerBooking,
		)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("build bulk insert time slots query failed: %w", err)
	}

	if _, err := q.Exec(ctx, query, args...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrDuplicateSlot
		}
		return fmt.Errorf("bulk insert time slots failed: %w", err)
	}
	return nil
}
