package availability

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/meishi-app/meishi-backend/internal/pkg/daytime"
)

type Repository interface {
	// ScanRestaurantDate computes remaining capacity for every open slot of
	// the restaurant's non-paused systems on the date, in one pass.
	ScanRestaurantDate(ctx context.Context, restaurantID int64, date time.Time) ([]Option, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) ScanRestaurantDate(ctx context.Context, restaurantID int64, date time.Time) ([]Option, error) {
	const query = `
		SELECT s.id, s.meal_type, t.id, t.slot_date, t.slot_time::text,
		       t.max_people - COALESCE(SUM(b.people) FILTER (WHERE b.status <> 'canceled'), 0),
		       t.max_tables - COUNT(b.id) FILTER (WHERE b.status <> 'canceled'),
		       t.min_per_booking, t.max_per_booking
		FROM public.booking_systems s
		JOIN public.time_slots t ON t.booking_system_id = s.id
		LEFT JOIN public.bookings b ON b.time_slot_id = t.id
		WHERE s.restaurant_id = $1
		  AND s.is_paused = FALSE
		  AND t.is_open = TRUE
		  AND t.slot_date = $2
		GROUP BY s.id, s.meal_type, t.id
		ORDER BY t.slot_time, s.meal_type
	`

	rows, err := r.pool.Query(ctx, query, restaurantID, daytime.DateOf(date))
	if err != nil {
		return nil, fmt.Errorf("scan availability failed: %w", err)
	}
	defer rows.Close()

	var options []Option
	for rows.Next() {
		var opt Option
		if err := rows.Scan(
			&opt.BookingSystemID, &opt.MealType, &opt.TimeSlotID, &opt.Date, &opt.Time,
			&opt.AvailablePeople, &opt.AvailableTables,
			&opt.MinPerBooking, &opt.MaxPerBooking,
		); err != nil {
			return nil, fmt.Errorf("scan availability row failed: %w", err)
		}
		opt.Date = daytime.DateOf(opt.Date)
		options = append(options, opt)
	}
	return options, rows.Err()
}
