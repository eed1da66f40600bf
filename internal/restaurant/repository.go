package restaurant

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, r *Restaurant) error
	GetByID(ctx context.Context, id int64) (*Restaurant, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*Restaurant, error)
	Update(ctx context.Context, r *Restaurant) error
	Delete(ctx context.Context, id int64) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, rest *Restaurant) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.restaurants").
		Columns("owner_id", "name", "address", "cuisine").
		Values(rest.OwnerID, rest.Name, rest.Address, rest.Cuisine).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create restaurant query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&rest.ID, &rest.CreatedAt); err != nil {
		return fmt.Errorf("create restaurant failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id int64) (*Restaurant, error) {
	const query = `
		SELECT id, owner_id, name, address, cuisine, created_at
		FROM public.restaurants
		WHERE id = $1
	`

	var rest Restaurant
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&rest.ID, &rest.OwnerID, &rest.Name, &rest.Address, &rest.Cuisine, &rest.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get restaurant failed: %w", err)
	}
	return &rest, nil
}

func (r *pgxRepository) ListByOwner(ctx context.Context, ownerID string) ([]*Restaurant, error) {
	const query = `
		SELECT id, owner_id, name, address, cuisine, created_at
		FROM public.restaurants
		WHERE owner_id = $1
		ORDER BY created_at
	`

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list restaurants failed: %w", err)
	}
	defer rows.Close()

	var restaurants []*Restaurant
	for rows.Next() {
		var rest Restaurant
		if err := rows.Scan(
			&rest.ID, &rest.OwnerID, &rest.Name, &rest.Address, &rest.Cuisine, &rest.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan restaurant failed: %w", err)
		}
		restaurants = append(restaurants, &rest)
	}
	return restaurants, rows.Err()
}

func (r *pgxRepository) Update(ctx context.Context, rest *Restaurant) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.restaurants").
		Set("name", rest.Name).
		Set("address", rest.Address).
		Set("cuisine", rest.Cuisine).
		Where(squirrel.Eq{"id": rest.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update restaurant query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update restaurant failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id int64) error {
	ct, err := r.pool.Exec(ctx, "DELETE FROM public.restaurants WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete restaurant failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
