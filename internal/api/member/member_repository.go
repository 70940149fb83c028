package member

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

var _ MemberRepo = (*PostgresMemberRepo)(nil)

type MemberRepo interface {
	List(ctx context.Context, limit, offset int) ([]types.Member, int, error)
	GetByID(ctx context.Context, id uuid.UUID) (*types.Member, error)
	Create(ctx context.Context, m *types.Member) error
	Update(ctx context.Context, m *types.Member) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

type PostgresMemberRepo struct {
	logger *slog.Logger
	pgpool *pgxpool.Pool
}

func NewPostgresMemberRepo(pgpool *pgxpool.Pool, logger *slog.Logger) *PostgresMemberRepo {
	return &PostgresMemberRepo{logger: logger, pgpool: pgpool}
}

const memberColumns = `id, name, facebook_url, instagram_url, linkedin_url, image, description, created_at, updated_at`

func scanMember(row pgx.Row) (*types.Member, error) {
	var m types.Member
	err := row.Scan(&m.ID, &m.Name, &m.FacebookURL, &m.InstagramURL, &m.LinkedinURL,
		&m.Image, &m.Description, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *PostgresMemberRepo) List(ctx context.Context, limit, offset int) ([]types.Member, int, error) {
	var total int
	if err := r.pgpool.QueryRow(ctx,
		`SELECT count(*) FROM members WHERE deleted_at IS NULL`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count members: %w", err)
	}

	rows, err := r.pgpool.Query(ctx,
		`SELECT `+memberColumns+` FROM members WHERE deleted_at IS NULL
		 ORDER BY name LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list members: %w", err)
	}
	defer rows.Close()

	var out []types.Member
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan member: %w", err)
		}
		out = append(out, *m)
	}
	return out, total, rows.Err()
}

func (r *PostgresMemberRepo) GetByID(ctx context.Context, id uuid.UUID) (*types.Member, error) {
	m, err := scanMember(r.pgpool.QueryRow(ctx,
		`SELECT `+memberColumns+` FROM members WHERE id = $1 AND deleted_at IS NULL`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch member: %w", err)
	}
	return m, nil
}

func (r *PostgresMemberRepo) Create(ctx context.Context, m *types.Member) error {
	_, err := r.pgpool.Exec(ctx,
		`INSERT INTO members (id, name, facebook_url, instagram_url, linkedin_url, image, description, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)`,
		m.ID, m.Name, m.FacebookURL, m.InstagramURL, m.LinkedinURL, m.Image, m.Description, m.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert member: %w", err)
	}
	return nil
}

func (r *PostgresMemberRepo) Update(ctx context.Context, m *types.Member) error {
	tag, err := r.pgpool.Exec(ctx,
		`UPDATE members SET name = $2, facebook_url = $3, instagram_url = $4, linkedin_url = $5,
		        image = $6, description = $7, updated_at = $8
		 WHERE id = $1 AND deleted_at IS NULL`,
		m.ID, m.Name, m.FacebookURL, m.InstagramURL, m.LinkedinURL, m.Image, m.Description, time.Now())
	if err != nil {
		return fmt.Errorf("failed to update member: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return types.ErrNotFound
	}
	return nil
}

func (r *PostgresMemberRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pgpool.Exec(ctx,
		`UPDATE members SET deleted_at = $2 WHERE id = $1 AND deleted_at IS NULL`,
		id, time.Now())
	if err != nil {
		return fmt.Errorf("failed to delete member: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return types.ErrNotFound
	}
	return nil
}
