package category

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dellmdq/OT109-Server/internal/types"
)

var _ CategoryRepo = (*PostgresCategoryRepo)(nil)

// CategoryRepo is the category persistence contract. Soft-deleted rows are
// invisible to every method.
type CategoryRepo interface {
	List(ctx context.Context) ([]types.Category, error)
	GetByID(ctx context.Context, id uuid.UUID) (*types.Category, error)
	Create(ctx context.Context, c *types.Category) error
	Update(ctx context.Context, c *types.Category) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

type PostgresCategoryRepo struct {
	logger *slog.Logger
	pgpool *pgxpool.Pool
}

func NewPostgresCategoryRepo(pgpool *pgxpool.Pool, logger *slog.Logger) *PostgresCategoryRepo {
	return &PostgresCategoryRepo{logger: logger, pgpool: pgpool}
}

func (r *PostgresCategoryRepo) List(ctx context.Context) ([]types.Category, error) {
	rows, err := r.pgpool.Query(ctx,
		`SELECT id, name, description, image, created_at, updated_at
		 FROM categories WHERE deleted_at IS NULL ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	var out []types.Category
	for rows.Next() {
		var c types.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.Image, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *PostgresCategoryRepo) GetByID(ctx context.Context, id uuid.UUID) (*types.Category, error) {
	var c types.Category
	err := r.pgpool.QueryRow(ctx,
		`SELECT id, name, description, image, created_at, updated_at
		 FROM categories WHERE id = $1 AND deleted_at IS NULL`, id).
		Scan(&c.ID, &c.Name, &c.Description, &c.Image, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch category: %w", err)
	}
	return &c, nil
}

func (r *PostgresCategoryRepo) Create(ctx context.Context, c *types.Category) error {
	_, err := r.pgpool.Exec(ctx,
		`INSERT INTO categories (id, name, description, image, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $5)`,
		c.ID, c.Name, c.Description, c.Image, c.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert category: %w", err)
	}
	return nil
}

func (r *PostgresCategoryRepo) Update(ctx context.Context, c *types.Category) error {
	tag, err := r.pgpool.Exec(ctx,
		`UPDATE categories SET name = $2, description = $3, image = $4, updated_at = $5
		 WHERE id = $1 AND deleted_at IS NULL`,
		c.ID, c.Name, c.Description, c.Image, time.Now())
	if err != nil {
		return fmt.Errorf("failed to update category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return types.ErrNotFound
	}
	return nil
}

func (r *PostgresCategoryRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pgpool.Exec(ctx,
		`UPDATE categories SET deleted_at = $2 WHERE id = $1 AND deleted_at IS NULL`,
		id, time.Now())
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return types.ErrNotFound
	}
	return nil
}
