package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/meishi-app/meishi-backend/internal/db"
	"github.com/meishi-app/meishi-backend/internal/pkg/daytime"
)

// ListFilter narrows an owner's booking list.
type ListFilter struct {
	BookingSystemID *int64
	Date            *time.Time
	Status          *Status
}

type Repository interface {
	Create(ctx context.Context, q db.Querier, b *Booking) error
	GetByID(ctx context.Context, id int64) (*Booking, error)
	// GetByCode fetches a guest booking by its code. Bookings tied to an
	// account are not addressable this way.
	GetByCode(ctx context.Context, code string) (*Booking, error)
	// UsageForSlot sums the live people and tables of a slot, skipping
	// canceled bookings and, when excludeID is nonzero, the booking itself.
	UsageForSlot(ctx context.Context, q db.Querier, slotID, excludeID int64) (SlotUsage, error)
	ListByUser(ctx context.Context, userID string) ([]*Booking, error)
	ListForOwner(ctx context.Context, ownerID string, filter ListFilter) ([]*Booking, error)
	Update(ctx context.Context, q db.Querier, b *Booking) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

const bookingColumns = `id, time_slot_id, user_id, booking_code, booking_type, first_name, last_name,
	people, phone, email, notes, status, created_at, updated_at`

func scanBooking(row pgx.Row) (*Booking, error) {
	var b Booking
	err := row.Scan(
		&b.ID, &b.TimeSlotID, &b.UserID, &b.BookingCode, &b.BookingType, &b.FirstName, &b.LastName,
		&b.People, &b.Phone, &b.Email, &b.Notes, &b.Status, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan booking failed: %w", err)
	}
	return &b, nil
}

func (r *pgxRepository) Create(ctx context.Context, q db.Querier, b *Booking) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.bookings").
		Columns(
			"time_slot_id", "user_id", "booking_type", "first_name", "last_name",
			"people", "phone", "email", "notes", "status",
		).
		Values(
			b.TimeSlotID, b.UserID, b.BookingType, b.FirstName, b.LastName,
			b.People, b.Phone, b.Email, b.Notes, b.Status,
		).
		Suffix("RETURNING id, booking_code, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create booking query failed: %w", err)
	}

	err = q.QueryRow(ctx, query, args...).Scan(&b.ID, &b.BookingCode, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create booking failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id int64) (*Booking, error) {
	query := fmt.Sprintf("SELECT %s FROM public.bookings WHERE id = $1", bookingColumns)
	return scanBooking(r.pool.QueryRow(ctx, query, id))
}

func (r *pgxRepository) GetByCode(ctx context.Context, code string) (*Booking, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM public.bookings WHERE booking_code = $1 AND user_id IS NULL", bookingColumns)
	return scanBooking(r.pool.QueryRow(ctx, query, code))
}

func (r *pgxRepository) UsageForSlot(ctx context.Context, q db.Querier, slotID, excludeID int64) (SlotUsage, error) {
	const query = `
		SELECT COALESCE(SUM(people), 0), COUNT(*)
		FROM public.bookings
		WHERE time_slot_id = $1 AND status <> 'canceled' AND id <> $2
	`

	var usage SlotUsage
	if err := q.QueryRow(ctx, query, slotID, excludeID).Scan(&usage.People, &usage.Tables); err != nil {
		return SlotUsage{}, fmt.Errorf("aggregate slot usage failed: %w", err)
	}
	return usage, nil
}

func collectBookings(rows pgx.Rows) ([]*Booking, error) {
	var bookings []*Booking
	for rows.Next() {
		var b Booking
		if err := rows.Scan(
			&b.ID, &b.TimeSlotID, &b.UserID, &b.BookingCode, &b.BookingType, &b.FirstName, &b.LastName,
			&b.People, &b.Phone, &b.Email, &b.Notes, &b.Status, &b.CreatedAt, &b.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, &b)
	}
	return bookings, rows.Err()
}

func (r *pgxRepository) ListByUser(ctx context.Context, userID string) ([]*Booking, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM public.bookings WHERE user_id = $1 ORDER BY created_at DESC", bookingColumns)

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list bookings by user failed: %w", err)
	}
	defer rows.Close()

	return collectBookings(rows)
}

func (r *pgxRepository) ListForOwner(ctx context.Context, ownerID string, filter ListFilter) ([]*Booking, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	builder := psql.Select(
		"b.id", "b.time_slot_id", "b.user_id", "b.booking_code", "b.booking_type",
		"b.first_name", "b.last_name", "b.people", "b.phone", "b.email", "b.notes",
		"b.status", "b.created_at", "b.updated_at",
	).
		From("public.bookings b").
		Join("public.time_slots t ON t.id = b.time_slot_id").
		Join("public.booking_systems s ON s.id = t.booking_system_id").
		Join("public.restaurants r ON r.id = s.restaurant_id").
		Where(squirrel.Eq{"r.owner_id": ownerID}).
		OrderBy("t.slot_date", "t.slot_time", "b.created_at")

	if filter.BookingSystemID != nil {
		builder = builder.Where(squirrel.Eq{"s.id": *filter.BookingSystemID})
	}
	if filter.Date != nil {
		builder = builder.Where(squirrel.Eq{"t.slot_date": daytime.DateOf(*filter.Date)})
	}
	if filter.Status != nil {
		builder = builder.Where(squirrel.Eq{"b.status": *filter.Status})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list bookings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list bookings for owner failed: %w", err)
	}
	defer rows.Close()

	return collectBookings(rows)
}

func (r *pgxRepository) Update(ctx context.Context, q db.Querier, b *Booking) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.bookings").
		Set("booking_type", b.BookingType).
		Set("first_name", b.FirstName).
		Set("last_name", b.LastName).
		Set("people", b.People).
		Set("phone", b.Phone).
		Set("email", b.Email).
		Set("notes", b.Notes).
		Set("status", b.Status).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": b.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build update booking query failed: %w", err)
	}

	if err := q.QueryRow(ctx, query, args...).Scan(&b.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("update booking failed: %w", err)
	}
	return nil
}
