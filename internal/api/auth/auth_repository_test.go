package auth

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dellmdq/OT109-Server/internal/types"
)

func testAuthRepo(t *testing.T) (*PostgresAuthRepo, pgxmock.PgxPoolIface) {
	t.Helper()
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mockPool.Close)

	repo := NewPostgresAuthRepo(mockPool, slog.New(slog.NewTextHandler(io.Discard, nil)))
	return repo, mockPool
}

func userRows(u *types.User) *pgxmock.Rows {
	return pgxmock.NewRows([]string{
		"id", "first_name", "last_name", "email", "password", "photo",
		"role_id", "role_name", "created_at", "updated_at",
	}).AddRow(u.ID, u.FirstName, u.LastName, u.Email, u.Password, u.Photo,
		u.Role.ID, u.Role.Name, u.CreatedAt, u.UpdatedAt)
}

func TestPostgresAuthRepo_GetUserByEmail(t *testing.T) {
	repo, mockPool := testAuthRepo(t)

	want := &types.User{
		ID:        uuid.New(),
		FirstName: "Jane",
		LastName:  "Doe",
		Email:     "jane@example.com",
		Password:  "$2a$10$digest",
		Role:      types.Role{ID: uuid.New(), Name: types.RoleUser},
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	mockPool.ExpectQuery(`SELECT .+ FROM users u JOIN roles r`).
		WithArgs("jane@example.com").
		WillReturnRows(userRows(want))

	got, err := repo.GetUserByEmail(context.Background(), "jane@example.com")
	require.NoError(t, err)
	assert.Equal(t, want.Email, got.Email)
	assert.Equal(t, types.RoleUser, got.Role.Name)
	require.NoError(t, mockPool.ExpectationsWereMet())
}

func TestPostgresAuthRepo_GetUserByEmail_Cached(t *testing.T) {
	repo, mockPool := testAuthRepo(t)

	want := &types.User{
		ID:    uuid.New(),
		Email: "jane@example.com",
		Role:  types.Role{ID: uuid.New(), Name: types.RoleUser},
	}
	// One expectation only: the second call must be served from the cache.
	mockPool.ExpectQuery(`SELECT .+ FROM users u JOIN roles r`).
		WithArgs("jane@example.com").
		WillReturnRows(userRows(want))

	first, err := repo.GetUserByEmail(context.Background(), "jane@example.com")
	require.NoError(t, err)
	second, err := repo.GetUserByEmail(context.Background(), "jane@example.com")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	require.NoError(t, mockPool.ExpectationsWereMet())
}

func TestPostgresAuthRepo_GetUserByEmail_NotFound(t *testing.T) {
	repo, mockPool := testAuthRepo(t)

	mockPool.ExpectQuery(`SELECT .+ FROM users u JOIN roles r`).
		WithArgs("ghost@example.com").
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "first_name", "last_name", "email", "password", "photo",
			"role_id", "role_name", "created_at", "updated_at",
		}))

	_, err := repo.GetUserByEmail(context.Background(), "ghost@example.com")
	assert.ErrorIs(t, err, types.ErrNotFound)
	require.NoError(t, mockPool.ExpectationsWereMet())
}

func TestPostgresAuthRepo_EmailExists(t *testing.T) {
	repo, mockPool := testAuthRepo(t)

	mockPool.ExpectQuery(`SELECT EXISTS`).
		WithArgs("taken@example.com").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.EmailExists(context.Background(), "taken@example.com")
	require.NoError(t, err)
	assert.True(t, exists)
	require.NoError(t, mockPool.ExpectationsWereMet())
}

func TestPostgresAuthRepo_GetRoleByName_NotFound(t *testing.T) {
	repo, mockPool := testAuthRepo(t)

	mockPool.ExpectQuery(`SELECT id, name FROM roles`).
		WithArgs("AUDITOR").
		WillReturnRows(pgxmock.NewRows([]string{"id", "name"}))

	_, err := repo.GetRoleByName(context.Background(), "AUDITOR")
	assert.ErrorIs(t, err, types.ErrNotFound)
	require.NoError(t, mockPool.ExpectationsWereMet())
}

func TestPostgresAuthRepo_CreateUser_DuplicateEmail(t *testing.T) {
	repo, mockPool := testAuthRepo(t)

	user := &types.User{
		ID:        uuid.New(),
		Email:     "taken@example.com",
		Role:      types.Role{ID: uuid.New(), Name: types.RoleUser},
		CreatedAt: time.Now(),
	}
	mockPool.ExpectExec(`INSERT INTO users`).
		WithArgs(user.ID, user.FirstName, user.LastName, user.Email, user.Password,
			user.Photo, user.Role.ID, user.CreatedAt).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

	err := repo.CreateUser(context.Background(), user)
	assert.ErrorIs(t, err, types.ErrConflict)
	require.NoError(t, mockPool.ExpectationsWereMet())
}

func TestPostgresAuthRepo_CreateUser_InvalidatesCache(t *testing.T) {
	repo, mockPool := testAuthRepo(t)

	stale := &types.User{
		ID:    uuid.New(),
		Email: "jane@example.com",
		Role:  types.Role{ID: uuid.New(), Name: types.RoleUser},
	}
	mockPool.ExpectQuery(`SELECT .+ FROM users u JOIN roles r`).
		WithArgs("jane@example.com").
		WillReturnRows(userRows(stale))

	_, err := repo.GetUserByEmail(context.Background(), "jane@example.com")
	require.NoError(t, err)

	fresh := &types.User{
		ID:        uuid.New(),
		Email:     "jane@example.com",
		Role:      types.Role{ID: uuid.New(), Name: types.RoleUser},
		CreatedAt: time.Now(),
	}
	mockPool.ExpectExec(`INSERT INTO users`).
		WithArgs(fresh.ID, fresh.FirstName, fresh.LastName, fresh.Email, fresh.Password,
			fresh.Photo, fresh.Role.ID, fresh.CreatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	require.NoError(t, repo.CreateUser(context.Background(), fresh))

	// The cache entry was dropped, so the next read hits the database again.
	mockPool.ExpectQuery(`SELECT .+ FROM users u JOIN roles r`).
		WithArgs("jane@example.com").
		WillReturnRows(userRows(fresh))

	got, err := repo.GetUserByEmail(context.Background(), "jane@example.com")
	require.NoError(t, err)
	assert.Equal(t, fresh.ID, got.ID)
	require.NoError(t, mockPool.ExpectationsWereMet())
}
