package comment

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

var _ CommentRepo = (*PostgresCommentRepo)(nil)

type CommentRepo interface {
	List(ctx context.Context) ([]types.Comment, error)
	ListByNews(ctx context.Context, newsID uuid.UUID) ([]types.Comment, error)
	GetByID(ctx context.Context, id uuid.UUID) (*types.Comment, error)
	// OwnerEmail returns the email of the active user who wrote the comment.
	OwnerEmail(ctx context.Context, commentID uuid.UUID) (string, error)
	Create(ctx context.Context, c *types.Comment) error
	Update(ctx context.Context, c *types.Comment) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

type PostgresCommentRepo struct {
	logger *slog.Logger
	pgpool *pgxpool.Pool
}

func NewPostgresCommentRepo(pgpool *pgxpool.Pool, logger *slog.Logger) *PostgresCommentRepo {
	return &PostgresCommentRepo{logger: logger, pgpool: pgpool}
}

const commentColumns = `id, body, user_id, news_id, created_at, updated_at`

func scanComment(row pgx.Row) (*types.Comment, error) {
	var c types.Comment
	err := row.Scan(&c.ID, &c.Body, &c.UserID, &c.NewsID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan comment: %w", err)
	}
	return &c, nil
}

func (r *PostgresCommentRepo) List(ctx context.Context) ([]types.Comment, error) {
	rows, err := r.pgpool.Query(ctx,
		`SELECT `+commentColumns+` FROM comments
		 WHERE deleted_at IS NULL ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer rows.Close()
	return collect(rows)
}

func (r *PostgresCommentRepo) ListByNews(ctx context.Context, newsID uuid.UUID) ([]types.Comment, error) {
	rows, err := r.pgpool.Query(ctx,
		`SELECT `+commentColumns+` FROM comments
		 WHERE news_id = $1 AND deleted_at IS NULL ORDER BY created_at`, newsID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments for news: %w", err)
	}
	defer rows.Close()
	return collect(rows)
}

func collect(rows pgx.Rows) ([]types.Comment, error) {
	var out []types.Comment
	for rows.Next() {
		var c types.Comment
		if err := rows.Scan(&c.ID, &c.Body, &c.UserID, &c.NewsID, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *PostgresCommentRepo) GetByID(ctx context.Context, id uuid.UUID) (*types.Comment, error) {
	row := r.pgpool.QueryRow(ctx,
		`SELECT `+commentColumns+` FROM comments
		 WHERE id = $1 AND deleted_at IS NULL`, id)
	return scanComment(row)
}

func (r *PostgresCommentRepo) OwnerEmail(ctx context.Context, commentID uuid.UUID) (string, error) {
	var email string
	err := r.pgpool.QueryRow(ctx,
		`SELECT u.email FROM comments c
		 JOIN users u ON u.id = c.user_id AND u.deleted_at IS NULL
		 WHERE c.id = $1 AND c.deleted_at IS NULL`, commentID).Scan(&email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", types.ErrNotFound
		}
		return "", fmt.Errorf("failed to fetch comment owner: %w", err)
	}
	return email, nil
}

func (r *PostgresCommentRepo) Create(ctx context.Context, c *types.Comment) error {
	_, err := r.pgpool.Exec(ctx,
		`INSERT INTO comments (id, body, user_id, news_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $5)`,
		c.ID, c.Body, c.UserID, c.NewsID, c.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert comment: %w", err)
	}
	return nil
}

func (r *PostgresCommentRepo) Update(ctx context.Context, c *types.Comment) error {
	tag, err := r.pgpool.Exec(ctx,
		`UPDATE comments SET body = $2, updated_at = $3
		 WHERE id = $1 AND deleted_at IS NULL`,
		c.ID, c.Body, time.Now())
	if err != nil {
		return fmt.Errorf("failed to update comment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return types.ErrNotFound
	}
	return nil
}

func (r *PostgresCommentRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pgpool.Exec(ctx,
		`UPDATE comments SET deleted_at = $2 WHERE id = $1 AND deleted_at IS NULL`,
		id, time.Now())
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return types.ErrNotFound
	}
	return nil
}
