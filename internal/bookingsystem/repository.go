package bookingsystem

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, bs *BookingSystem) error
	GetByID(ctx context.Context, id int64) (*BookingSystem, error)
	ListByRestaurant(ctx context.Context, restaurantID int64) ([]*BookingSystem, error)
	SetPaused(ctx context.Context, id int64, paused bool) error
	Delete(ctx context.Context, id int64) error

	CreateType(ctx context.Context, bt *BookingType) error
	GetTypeByID(ctx context.Context, id int64) (*BookingType, error)
	ListTypes(ctx context.Context, systemID int64) ([]*BookingType, error)
	DeleteType(ctx context.Context, id int64) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, bs *BookingSystem) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.booking_systems").
		Columns("restaurant_id", "meal_type", "is_paused").
		Values(bs.RestaurantID, bs.MealType, bs.IsPaused).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create booking system query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&bs.ID, &bs.CreatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrDuplicateMealType
		}
		return fmt.Errorf("create booking system failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id int64) (*BookingSystem, error) {
	const query = `
		SELECT id, restaurant_id, meal_type, is_paused, created_at
		FROM public.booking_systems
		WHERE id = $1
	`

	var bs BookingSystem
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&bs.ID, &bs.RestaurantID, &bs.MealType, &bs.IsPaused, &bs.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking system failed: %w", err)
	}
	return &bs, nil
}

func (r *pgxRepository) ListByRestaurant(ctx context.Context, restaurantID int64) ([]*BookingSystem, error) {
	const query = `
		SELECT id, restaurant_id, meal_type, is_paused, created_at
		FROM public.booking_systems
		WHERE restaurant_id = $1
		ORDER BY created_at
	`

	rows, err := r.pool.Query(ctx, query, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("list booking systems failed: %w", err)
	}
	defer rows.Close()

	var systems []*BookingSystem
	for rows.Next() {
		var bs BookingSystem
		if err := rows.Scan(&bs.ID, &bs.RestaurantID, &bs.MealType, &bs.IsPaused, &bs.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan booking system failed: %w", err)
		}
		systems = append(systems, &bs)
	}
	return systems, rows.Err()
}

func (r *pgxRepository) SetPaused(ctx context.Context, id int64, paused bool) error {
	ct, err := r.pool.Exec(ctx,
		"UPDATE public.booking_systems SET is_paused = $1 WHERE id = $2", paused, id)
	if err != nil {
		return fmt.Errorf("set booking system paused failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id int64) error {
	ct, err := r.pool.Exec(ctx, "DELETE FROM public.booking_systems WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete booking system failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) CreateType(ctx context.Context, bt *BookingType) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.booking_types").
		Columns("booking_system_id", "name").
		Values(bt.BookingSystemID, bt.Name).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create booking type query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&bt.ID); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrDuplicateTypeName
		}
		return fmt.Errorf("create booking type failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetTypeByID(ctx context.Context, id int64) (*BookingType, error) {
	const query = `SELECT id, booking_system_id, name FROM public.booking_types WHERE id = $1`

	var bt BookingType
	if err := r.pool.QueryRow(ctx, query, id).Scan(&bt.ID, &bt.BookingSystemID, &bt.Name); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTypeNotFound
		}
		return nil, fmt.Errorf("get booking type failed: %w", err)
	}
	return &bt, nil
}

func (r *pgxRepository) ListTypes(ctx context.Context, systemID int64) ([]*BookingType, error) {
	const query = `
		SELECT id, booking_system_id, name
		FROM public.booking_types
		WHERE booking_system_id = $1
		ORDER BY name
	`

	rows, err := r.pool.Query(ctx, query, systemID)
	if err != nil {
		return nil, fmt.Errorf("list booking types failed: %w", err)
	}
	defer rows.Close()

	var types []*BookingType
	for rows.Next() {
		var bt BookingType
		if err := rows.Scan(&bt.ID, &bt.BookingSystemID, &bt.Name); err != nil {
			return nil, fmt.Errorf("scan booking type failed: %w", err)
		}
		types = append(types, &bt)
	}
	return types, rows.Err()
}

func (r *pgxRepository) DeleteType(ctx context.Context, id int64) error {
	ct, err := r.pool.Exec(ctx, "DELETE FROM public.booking_types WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete booking type failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrTypeNotFound
	}
	return nil
}
