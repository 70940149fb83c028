package auth

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dellmdq/OT109-Server/internal/types"
)

// MockAuthService is a mock implementation of the AuthService interface
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, req RegisterRequest) (*types.UserProfile, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.UserProfile), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*LoginResponse), args.Error(1)
}

func (m *MockAuthService) GetProfile(ctx context.Context, email string) (*types.UserProfile, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.UserProfile), args.Error(1)
}

func (m *MockAuthService) ResolvePrincipal(ctx context.Context, email string) (*types.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.User), args.Error(1)
}

func testPrincipal(role string) *types.User {
	return &types.User{
		ID:        uuid.New(),
		FirstName: "Jane",
		Email:     "jane@example.com",
		Role:      types.Role{ID: uuid.New(), Name: role},
	}
}

type capturedContext struct {
	called bool
	id     string
	email  string
	role   string
}

func captureHandler(c *capturedContext) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c.called = true
		c.id, _ = GetUserIDFromContext(r.Context())
		c.email, _ = GetUserEmailFromContext(r.Context())
		c.role, _ = GetUserRoleFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func middlewareFixture(t *testing.T, svc AuthService) (func(http.Handler) http.Handler, *TokenService) {
	t.Helper()
	tokens := newTestTokenService(t, time.Hour)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return Authenticate(logger, tokens, svc, DefaultPolicy()), tokens
}

func TestAuthenticate_PublicPathAnonymous(t *testing.T) {
	svc := new(MockAuthService)
	mw, _ := middlewareFixture(t, svc)

	var captured capturedContext
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	mw(captureHandler(&captured)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, captured.called)
	assert.Empty(t, captured.email)
	svc.AssertNotCalled(t, "ResolvePrincipal", mock.Anything, mock.Anything)
}

func TestAuthenticate_PublicPathInvalidTokenIgnored(t *testing.T) {
	svc := new(MockAuthService)
	mw, _ := middlewareFixture(t, svc)

	var captured capturedContext
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/register", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	mw(captureHandler(&captured)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, captured.called)
	assert.Empty(t, captured.email)
}

func TestAuthenticate_PublicPathValidTokenPopulatesContext(t *testing.T) {
	principal := testPrincipal(types.RoleUser)
	svc := new(MockAuthService)
	svc.On("ResolvePrincipal", mock.Anything, principal.Email).Return(principal, nil)
	mw, tokens := middlewareFixture(t, svc)

	signed, err := tokens.Issue(principal.Email)
	require.NoError(t, err)

	var captured capturedContext
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	mw(captureHandler(&captured)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, captured.called)
	assert.Equal(t, principal.Email, captured.email)
	assert.Equal(t, types.RoleUser, captured.role)
	assert.Equal(t, principal.ID.String(), captured.id)
}

func TestAuthenticate_ProtectedPathMissingToken(t *testing.T) {
	svc := new(MockAuthService)
	mw, _ := middlewareFixture(t, svc)

	var captured capturedContext
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	mw(captureHandler(&captured)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, captured.called)
}

func TestAuthenticate_ProtectedPathMalformedHeader(t *testing.T) {
	svc := new(MockAuthService)
	mw, _ := middlewareFixture(t, svc)

	for _, header := range []string{"Bearer", "Basic abc", "Bearer "} {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/users", nil)
		req.Header.Set("Authorization", header)
		mw(captureHandler(&capturedContext{})).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "header %q", header)
	}
}

func TestAuthenticate_ProtectedPathExpiredToken(t *testing.T) {
	svc := new(MockAuthService)
	tokens := newTestTokenService(t, -time.Minute)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	mw := Authenticate(logger, newTestTokenService(t, time.Hour), svc, DefaultPolicy())

	signed, err := tokens.Issue("jane@example.com")
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	mw(captureHandler(&capturedContext{})).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Token has expired")
}

func TestAuthenticate_ProtectedPathUnknownPrincipal(t *testing.T) {
	svc := new(MockAuthService)
	svc.On("ResolvePrincipal", mock.Anything, "ghost@example.com").Return(nil, types.ErrNotFound)
	mw, tokens := middlewareFixture(t, svc)

	signed, err := tokens.Issue("ghost@example.com")
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	mw(captureHandler(&capturedContext{})).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticate_ProtectedPathPolicyDeny(t *testing.T) {
	principal := testPrincipal(types.RoleUser)
	svc := new(MockAuthService)
	svc.On("ResolvePrincipal", mock.Anything, principal.Email).Return(principal, nil)
	mw, tokens := middlewareFixture(t, svc)

	signed, err := tokens.Issue(principal.Email)
	require.NoError(t, err)

	var captured capturedContext
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/members", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	mw(captureHandler(&captured)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, captured.called)
}

func TestAuthenticate_ProtectedPathAllow(t *testing.T) {
	principal := testPrincipal(types.RoleAdmin)
	svc := new(MockAuthService)
	svc.On("ResolvePrincipal", mock.Anything, principal.Email).Return(principal, nil)
	mw, tokens := middlewareFixture(t, svc)

	signed, err := tokens.Issue(principal.Email)
	require.NoError(t, err)

	var captured capturedContext
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/members", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	mw(captureHandler(&captured)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, captured.called)
	assert.Equal(t, types.RoleAdmin, captured.role)
}
