package testimonial

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

var _ TestimonialRepo = (*PostgresTestimonialRepo)(nil)

type TestimonialRepo interface {
	List(ctx context.Context, limit, offset int) ([]types.Testimonial, int, error)
	GetByID(ctx context.Context, id uuid.UUID) (*types.Testimonial, error)
	Create(ctx context.Context, t *types.Testimonial) error
	Update(ctx context.Context, t *types.Testimonial) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

type PostgresTestimonialRepo struct {
	logger *slog.Logger
	pgpool *pgxpool.Pool
}

func NewPostgresTestimonialRepo(pgpool *pgxpool.Pool, logger *slog.Logger) *PostgresTestimonialRepo {
	return &PostgresTestimonialRepo{logger: logger, pgpool: pgpool}
}

func (r *PostgresTestimonialRepo) List(ctx context.Context, limit, offset int) ([]types.Testimonial, int, error) {
	var total int
	if err := r.pgpool.QueryRow(ctx,
		`SELECT count(*) FROM testimonials WHERE deleted_at IS NULL`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count testimonials: %w", err)
	}

	rows, err := r.pgpool.Query(ctx,
		`SELECT id, name, content, image, created_at, updated_at
		 FROM testimonials WHERE deleted_at IS NULL
		 ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list testimonials: %w", err)
	}
	defer rows.Close()

	var out []types.Testimonial
	for rows.Next() {
		var t types.Testimonial
		if err := rows.Scan(&t.ID, &t.Name, &t.Content, &t.Image, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan testimonial: %w", err)
		}
		out = append(out, t)
	}
	return out, total, rows.Err()
}

func (r *PostgresTestimonialRepo) GetByID(ctx context.Context, id uuid.UUID) (*types.Testimonial, error) {
	var t types.Testimonial
	err := r.pgpool.QueryRow(ctx,
		`SELECT id, name, content, image, created_at, updated_at
		 FROM testimonials WHERE id = $1 AND deleted_at IS NULL`, id).
		Scan(&t.ID, &t.Name, &t.Content, &t.Image, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch testimonial: %w", err)
	}
	return &t, nil
}

func (r *PostgresTestimonialRepo) Create(ctx context.Context, t *types.Testimonial) error {
	_, err := r.pgpool.Exec(ctx,
		`INSERT INTO testimonials (id, name, content, image, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $5)`,
		t.ID, t.Name, t.Content, t.Image, t.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert testimonial: %w", err)
	}
	return nil
}

func (r *PostgresTestimonialRepo) Update(ctx context.Context, t *types.Testimonial) error {
	tag, err := r.pgpool.Exec(ctx,
		`UPDATE testimonials SET name = $2, content = $3, image = $4, updated_at = $5
		 WHERE id = $1 AND deleted_at IS NULL`,
		t.ID, t.Name, t.Content, t.Image, time.Now())
	if err != nil {
		return fmt.Errorf("failed to update testimonial: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return types.ErrNotFound
	}
	return nil
}

func (r *PostgresTestimonialRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pgpool.Exec(ctx,
		`UPDATE testimonials SET deleted_at = $2 WHERE id = $1 AND deleted_at IS NULL`,
		id, time.Now())
	if err != nil {
		return fmt.Errorf("failed to delete testimonial: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return types.ErrNotFound
	}
	return nil
}
