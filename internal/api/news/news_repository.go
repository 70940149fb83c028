package news

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

var _ NewsRepo = (*PostgresNewsRepo)(nil)

type NewsRepo interface {
	List(ctx context.Context, limit, offset int) ([]types.News, int, error)
	GetByID(ctx context.Context, id uuid.UUID) (*types.News, error)
	Create(ctx context.Context, n *types.News) error
	Update(ctx context.Context, n *types.News) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

type PostgresNewsRepo struct {
	logger *slog.Logger
	pgpool *pgxpool.Pool
}

func NewPostgresNewsRepo(pgpool *pgxpool.Pool, logger *slog.Logger) *PostgresNewsRepo {
	return &PostgresNewsRepo{logger: logger, pgpool: pgpool}
}

func (r *PostgresNewsRepo) List(ctx context.Context, limit, offset int) ([]types.News, int, error) {
	var total int
	if err := r.pgpool.QueryRow(ctx,
		`SELECT count(*) FROM news WHERE deleted_at IS NULL`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count news: %w", err)
	}

	rows, err := r.pgpool.Query(ctx,
		`SELECT id, name, content, image, category_id, created_at, updated_at
		 FROM news WHERE deleted_at IS NULL
		 ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list news: %w", err)
	}
	defer rows.Close()

	var out []types.News
	for rows.Next() {
		var n types.News
		if err := rows.Scan(&n.ID, &n.Name, &n.Content, &n.Image, &n.CategoryID, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan news: %w", err)
		}
		out = append(out, n)
	}
	return out, total, rows.Err()
}

func (r *PostgresNewsRepo) GetByID(ctx context.Context, id uuid.UUID) (*types.News, error) {
	var n types.News
	err := r.pgpool.QueryRow(ctx,
		`SELECT id, name, content, image, category_id, created_at, updated_at
		 FROM news WHERE id = $1 AND deleted_at IS NULL`, id).
		Scan(&n.ID, &n.Name, &n.Content, &n.Image, &n.CategoryID, &n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch news: %w", err)
	}
	return &n, nil
}

func (r *PostgresNewsRepo) Create(ctx context.Context, n *types.News) error {
	_, err := r.pgpool.Exec(ctx,
		`INSERT INTO news (id, name, content, image, category_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $6)`,
		n.ID, n.Name, n.Content, n.Image, n.CategoryID, n.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert news: %w", err)
	}
	return nil
}

func (r *PostgresNewsRepo) Update(ctx context.Context, n *types.News) error {
	tag, err := r.pgpool.Exec(ctx,
		`UPDATE news SET name = $2, content = $3, image = $4, category_id = $5, updated_at = $6
		 WHERE id = $1 AND deleted_at IS NULL`,
		n.ID, n.Name, n.Content, n.Image, n.CategoryID, time.Now())
	if err != nil {
		return fmt.Errorf("failed to update news: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return types.ErrNotFound
	}
	return nil
}

func (r *PostgresNewsRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pgpool.Exec(ctx,
		`UPDATE news SET deleted_at = $2 WHERE id = $1 AND deleted_at IS NULL`,
		id, time.Now())
	if err != nil {
		return fmt.Errorf("failed to delete news: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return types.ErrNotFound
	}
	return nil
}
