package user

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

var _ UserRepo = (*PostgresUserRepo)(nil)

type UserRepo interface {
	List(ctx context.Context) ([]types.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*types.User, error)
	Update(ctx context.Context, u *types.User) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

type PostgresUserRepo struct {
	logger *slog.Logger
	pgpool *pgxpool.Pool
}

func NewPostgresUserRepo(pgpool *pgxpool.Pool, logger *slog.Logger) *PostgresUserRepo {
	return &PostgresUserRepo{logger: logger, pgpool: pgpool}
}

const userColumns = `u.id, u.first_name, u.last_name, u.email, u.password, u.photo,
	r.id, r.name, u.created_at, u.updated_at`

func scanUser(row pgx.Row) (*types.User, error) {
	var u types.User
	err := row.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.Password, &u.Photo,
		&u.Role.ID, &u.Role.Name, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *PostgresUserRepo) List(ctx context.Context) ([]types.User, error) {
	rows, err := r.pgpool.Query(ctx,
		`SELECT `+userColumns+`
		 FROM users u JOIN roles r ON r.id = u.role_id
		 WHERE u.deleted_at IS NULL
		 ORDER BY u.created_at`)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var out []types.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		out = append(out, *u)
	}
	return out, rows.Err()
}

func (r *PostgresUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*types.User, error) {
	u, err := scanUser(r.pgpool.QueryRow(ctx,
		`SELECT `+userColumns+`
		 FROM users u JOIN roles r ON r.id = u.role_id
		 WHERE u.id = $1 AND u.deleted_at IS NULL`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	return u, nil
}

func (r *PostgresUserRepo) Update(ctx context.Context, u *types.User) error {
	tag, err := r.pgpool.Exec(ctx,
		`UPDATE users SET first_name = $2, last_name = $3, photo = $4, updated_at = $5
		 WHERE id = $1 AND deleted_at IS NULL`,
		u.ID, u.FirstName, u.LastName, u.Photo, time.Now())
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return types.ErrNotFound
	}
	return nil
}

func (r *PostgresUserRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pgpool.Exec(ctx,
		`UPDATE users SET deleted_at = $2 WHERE id = $1 AND deleted_at IS NULL`,
		id, time.Now())
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return types.ErrNotFound
	}
	return nil
}
