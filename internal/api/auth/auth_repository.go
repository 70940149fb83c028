package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	gocache "github.com/patrickmn/go-cache"

	"github.com/dellmdq/OT109-Server/internal/types"
)

var _ AuthRepo = (*PostgresAuthRepo)(nil)

// AuthRepo is the principal storage contract for the authentication core.
// Every lookup applies the active-only predicate: soft-deleted users are
// invisible, full stop.
type AuthRepo interface {
	// GetUserByEmail returns the active user bound to email, role included.
	// Returns types.ErrNotFound when no active user has that email.
	GetUserByEmail(ctx context.Context, email string) (*types.User, error)

	// GetUserByID returns an active user by ID.
	GetUserByID(ctx context.Context, userID uuid.UUID) (*types.User, error)

	// EmailExists reports whether an active user is already bound to email.
	EmailExists(ctx context.Context, email string) (bool, error)

	// GetRoleByName returns a role from the fixed role set.
	GetRoleByName(ctx context.Context, name string) (*types.Role, error)

	// CreateUser persists a new user. A duplicate active email comes back
	// as types.ErrConflict.
	CreateUser(ctx context.Context, user *types.User) error
}

// PGXPool is the subset of pgxpool.Pool the repo needs; tests substitute a
// pgxmock pool.
type PGXPool interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

const (
	userColumns = `u.id, u.first_name, u.last_name, u.email, u.password, u.photo,
	       r.id, r.name, u.created_at, u.updated_at`

	// Principals are read on every authenticated request; a short cache TTL
	// keeps the role join off the hot path without hiding soft-deletes for
	// longer than the window.
	principalCacheTTL = 30 * time.Second
)

// PostgresAuthRepo implements AuthRepo on pgxpool with a short-lived
// principal cache keyed by email.
type PostgresAuthRepo struct {
	logger *slog.Logger
	pgpool PGXPool
	cache  *gocache.Cache
}

func NewPostgresAuthRepo(pgpool PGXPool, logger *slog.Logger) *PostgresAuthRepo {
	return &PostgresAuthRepo{
		logger: logger,
		pgpool: pgpool,
		cache:  gocache.New(principalCacheTTL, 2*principalCacheTTL),
	}
}

func scanUser(row pgx.Row) (*types.User, error) {
	var u types.User
	err := row.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.Password, &u.Photo,
		&u.Role.ID, &u.Role.Name, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}
	return &u, nil
}

func (r *PostgresAuthRepo) GetUserByEmail(ctx context.Context, email string) (*types.User, error) {
	if cached, ok := r.cache.Get(email); ok {
		return cached.(*types.User), nil
	}

	row := r.pgpool.QueryRow(ctx,
		`SELECT `+userColumns+`
		 FROM users u JOIN roles r ON r.id = u.role_id
		 WHERE u.email = $1 AND u.deleted_at IS NULL`, email)
	user, err := scanUser(row)
	if err != nil {
		return nil, err
	}

	r.cache.Set(email, user, gocache.DefaultExpiration)
	return user, nil
}

func (r *PostgresAuthRepo) GetUserByID(ctx context.Context, userID uuid.UUID) (*types.User, error) {
	row := r.pgpool.QueryRow(ctx,
		`SELECT `+userColumns+`
		 FROM users u JOIN roles r ON r.id = u.role_id
		 WHERE u.id = $1 AND u.deleted_at IS NULL`, userID)
	return scanUser(row)
}

func (r *PostgresAuthRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.pgpool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE email = $1 AND deleted_at IS NULL)`,
		email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check email existence: %w", err)
	}
	return exists, nil
}

func (r *PostgresAuthRepo) GetRoleByName(ctx context.Context, name string) (*types.Role, error) {
	var role types.Role
	err := r.pgpool.QueryRow(ctx,
		`SELECT id, name FROM roles WHERE name = $1`, name).Scan(&role.ID, &role.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch role %q: %w", name, err)
	}
	return &role, nil
}

func (r *PostgresAuthRepo) CreateUser(ctx context.Context, user *types.User) error {
	_, err := r.pgpool.Exec(ctx,
		`INSERT INTO users (id, first_name, last_name, email, password, photo, role_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)`,
		user.ID, user.FirstName, user.LastName, user.Email, user.Password, user.Photo,
		user.Role.ID, user.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("email %s already registered: %w", user.Email, types.ErrConflict)
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}

	r.cache.Delete(user.Email)
	return nil
}

// InvalidatePrincipal drops the cached principal for email. Admin-side user
// mutations call this so a soft-deleted or updated account cannot keep
// authenticating off a stale cache entry for the rest of the TTL.
func (r *PostgresAuthRepo) InvalidatePrincipal(email string) {
	r.cache.Delete(email)
}
