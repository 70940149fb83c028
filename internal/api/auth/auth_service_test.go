package auth

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dellmdq/OT109-Server/internal/types"
)

// MockAuthRepo is a mock implementation of the AuthRepo interface
type MockAuthRepo struct {
	mock.Mock
}

func (m *MockAuthRepo) GetUserByEmail(ctx context.Context, email string) (*types.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.User), args.Error(1)
}

func (m *MockAuthRepo) GetUserByID(ctx context.Context, userID uuid.UUID) (*types.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.User), args.Error(1)
}

func (m *MockAuthRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockAuthRepo) GetRoleByName(ctx context.Context, name string) (*types.Role, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Role), args.Error(1)
}

func (m *MockAuthRepo) CreateUser(ctx context.Context, user *types.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// stubNotifier records the welcome call so tests can wait on the detached
// goroutine instead of racing it.
type stubNotifier struct {
	sent chan string
}

func newStubNotifier() *stubNotifier {
	return &stubNotifier{sent: make(chan string, 1)}
}

func (s *stubNotifier) SendWelcome(_ context.Context, _, email string) bool {
	s.sent <- email
	return true
}

func testAuthService(t *testing.T, repo AuthRepo, notifier *stubNotifier) *AuthServiceImpl {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tokens := newTestTokenService(t, time.Hour)
	return NewAuthService(repo, tokens, notifier, logger)
}

func TestAuthService_Register(t *testing.T) {
	repo := new(MockAuthRepo)
	notifier := newStubNotifier()
	svc := testAuthService(t, repo, notifier)

	userRole := &types.Role{ID: uuid.New(), Name: types.RoleUser}
	repo.On("EmailExists", mock.Anything, "new@example.com").Return(false, nil)
	repo.On("GetRoleByName", mock.Anything, types.RoleUser).Return(userRole, nil)
	repo.On("CreateUser", mock.Anything, mock.MatchedBy(func(u *types.User) bool {
		return u.Email == "new@example.com" &&
			u.Role.Name == types.RoleUser &&
			u.Password != "plaintext-pass" &&
			VerifyPassword("plaintext-pass", u.Password)
	})).Return(nil)

	profile, err := svc.Register(context.Background(), RegisterRequest{
		FirstName: "New",
		LastName:  "User",
		Email:     "new@example.com",
		Password:  "plaintext-pass",
	})
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", profile.Email)
	assert.Equal(t, types.RoleUser, profile.Role)

	select {
	case email := <-notifier.sent:
		assert.Equal(t, "new@example.com", email)
	case <-time.After(2 * time.Second):
		t.Fatal("welcome notification was never sent")
	}
	repo.AssertExpectations(t)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	repo := new(MockAuthRepo)
	notifier := newStubNotifier()
	svc := testAuthService(t, repo, notifier)

	repo.On("EmailExists", mock.Anything, "taken@example.com").Return(true, nil)

	_, err := svc.Register(context.Background(), RegisterRequest{
		FirstName: "Dup",
		LastName:  "User",
		Email:     "taken@example.com",
		Password:  "plaintext-pass",
	})
	require.ErrorIs(t, err, types.ErrConflict)

	select {
	case <-notifier.sent:
		t.Fatal("no notification expected on failed registration")
	case <-time.After(50 * time.Millisecond):
	}
	repo.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
}

func TestAuthService_Login(t *testing.T) {
	repo := new(MockAuthRepo)
	svc := testAuthService(t, repo, newStubNotifier())

	digest, err := HashPassword("right-password")
	require.NoError(t, err)
	user := &types.User{
		ID:        uuid.New(),
		FirstName: "Jane",
		Email:     "jane@example.com",
		Password:  digest,
		Role:      types.Role{ID: uuid.New(), Name: types.RoleAdmin},
	}
	repo.On("GetUserByEmail", mock.Anything, "jane@example.com").Return(user, nil)

	resp, err := svc.Login(context.Background(), "jane@example.com", "right-password")
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "Jane", resp.FirstName)
	assert.Equal(t, types.RoleAdmin, resp.Role)

	claims, err := svc.tokens.Validate(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", claims.Subject)
}

func TestAuthService_Login_UserNotFound(t *testing.T) {
	repo := new(MockAuthRepo)
	svc := testAuthService(t, repo, newStubNotifier())

	repo.On("GetUserByEmail", mock.Anything, "ghost@example.com").Return(nil, types.ErrNotFound)

	_, err := svc.Login(context.Background(), "ghost@example.com", "whatever")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	repo := new(MockAuthRepo)
	svc := testAuthService(t, repo, newStubNotifier())

	digest, err := HashPassword("right-password")
	require.NoError(t, err)
	user := &types.User{
		ID:       uuid.New(),
		Email:    "jane@example.com",
		Password: digest,
		Role:     types.Role{Name: types.RoleUser},
	}
	repo.On("GetUserByEmail", mock.Anything, "jane@example.com").Return(user, nil)

	_, err = svc.Login(context.Background(), "jane@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Login_RepoError(t *testing.T) {
	repo := new(MockAuthRepo)
	svc := testAuthService(t, repo, newStubNotifier())

	repo.On("GetUserByEmail", mock.Anything, "jane@example.com").Return(nil, errors.New("connection refused"))

	_, err := svc.Login(context.Background(), "jane@example.com", "whatever")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUserNotFound)
}

func TestAuthService_GetProfile_HidesPassword(t *testing.T) {
	repo := new(MockAuthRepo)
	svc := testAuthService(t, repo, newStubNotifier())

	user := &types.User{
		ID:        uuid.New(),
		FirstName: "Jane",
		LastName:  "Doe",
		Email:     "jane@example.com",
		Password:  "$2a$10$digest",
		Role:      types.Role{Name: types.RoleUser},
	}
	repo.On("GetUserByEmail", mock.Anything, "jane@example.com").Return(user, nil)

	profile, err := svc.GetProfile(context.Background(), "jane@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, profile.ID)
	assert.Equal(t, "Jane", profile.FirstName)
	assert.Equal(t, types.RoleUser, profile.Role)
}
