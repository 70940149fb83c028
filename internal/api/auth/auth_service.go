package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dellmdq/OT109-Server/internal/api/notify"
	"github.com/dellmdq/OT109-Server/internal/types"
)

var _ AuthService = (*AuthServiceImpl)(nil)

// AuthService orchestrates register, login and profile fetch on top of the
// password hasher, the token service and principal storage.
type AuthService interface {
	// Register creates a new USER-role account. A duplicate active email
	// returns types.ErrConflict. A welcome notification is fired from a
	// detached goroutine; its failure never fails registration.
	Register(ctx context.Context, req RegisterRequest) (*types.UserProfile, error)

	// Login verifies credentials and issues a token. Absent user and wrong
	// password are distinct errors (ErrUserNotFound, ErrInvalidCredentials).
	Login(ctx context.Context, email, password string) (*LoginResponse, error)

	// GetProfile returns the public projection of the active user bound to
	// email.
	GetProfile(ctx context.Context, email string) (*types.UserProfile, error)

	// ResolvePrincipal loads the active user for a token subject. Used by
	// the authentication middleware.
	ResolvePrincipal(ctx context.Context, email string) (*types.User, error)
}

// AuthServiceImpl implements AuthService.
type AuthServiceImpl struct {
	logger   *slog.Logger
	repo     AuthRepo
	tokens   *TokenService
	notifier notify.Notifier
}

func NewAuthService(repo AuthRepo, tokens *TokenService, notifier notify.Notifier, logger *slog.Logger) *AuthServiceImpl {
	return &AuthServiceImpl{
		logger:   logger,
		repo:     repo,
		tokens:   tokens,
		notifier: notifier,
	}
}

func (s *AuthServiceImpl) Register(ctx context.Context, req RegisterRequest) (*types.UserProfile, error) {
	l := s.logger.With(slog.String("method", "Register"), slog.String("email", req.Email))

	exists, err := s.repo.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("error checking email: %w", err)
	}
	if exists {
		l.WarnContext(ctx, "Registration rejected, email already taken")
		return nil, fmt.Errorf("email %s already exists: %w", req.Email, types.ErrConflict)
	}

	digest, err := HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	role, err := s.repo.GetRoleByName(ctx, types.RoleUser)
	if err != nil {
		return nil, fmt.Errorf("error loading default role: %w", err)
	}

	user := &types.User{
		ID:        uuid.New(),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  digest,
		Photo:     req.Photo,
		Role:      *role,
		CreatedAt: time.Now(),
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	l.InfoContext(ctx, "User registered", slog.String("userID", user.ID.String()))

	// Fire-and-forget: the registration response never waits on mail. The
	// goroutine gets its own deadline detached from the request context.
	go func() {
		mailCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 15*time.Second)
		defer cancel()
		sent := s.notifier.SendWelcome(mailCtx, user.FirstName, user.Email)
		l.InfoContext(mailCtx, "Welcome notification finished", slog.Bool("sent", sent))
	}()

	return user.Profile(), nil
}

func (s *AuthServiceImpl) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	l := s.logger.With(slog.String("method", "Login"), slog.String("email", email))

	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			l.WarnContext(ctx, "Login failed, user not found")
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("error loading user: %w", err)
	}

	if !VerifyPassword(password, user.Password) {
		l.WarnContext(ctx, "Login failed, password mismatch")
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.Email)
	if err != nil {
		return nil, fmt.Errorf("error issuing token: %w", err)
	}

	l.InfoContext(ctx, "Login successful", slog.String("role", user.Role.Name))
	return &LoginResponse{
		Token:     token,
		FirstName: user.FirstName,
		Email:     user.Email,
		Role:      user.Role.Name,
	}, nil
}

func (s *AuthServiceImpl) GetProfile(ctx context.Context, email string) (*types.UserProfile, error) {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return user.Profile(), nil
}

func (s *AuthServiceImpl) ResolvePrincipal(ctx context.Context, email string) (*types.User, error) {
	return s.repo.GetUserByEmail(ctx, email)
}
