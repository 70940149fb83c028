package user

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/dellmdq/OT109-Server/internal/types"
)

var _ UserService = (*UserServiceImpl)(nil)

type UserService interface {
	List(ctx context.Context) ([]*types.UserProfile, error)
	Update(ctx context.Context, id uuid.UUID, params types.UpdateUserParams) (*types.UserProfile, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// PrincipalInvalidator drops a cached principal after an account mutation.
// The authentication repository caches principals by email; mutations made
// here would otherwise stay invisible to it until the cache TTL runs out.
type PrincipalInvalidator interface {
	InvalidatePrincipal(email string)
}

type UserServiceImpl struct {
	logger      *slog.Logger
	repo        UserRepo
	invalidator PrincipalInvalidator
}

func NewUserService(repo UserRepo, invalidator PrincipalInvalidator, logger *slog.Logger) *UserServiceImpl {
	return &UserServiceImpl{logger: logger, repo: repo, invalidator: invalidator}
}

func (s *UserServiceImpl) List(ctx context.Context) ([]*types.UserProfile, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*types.UserProfile, 0, len(users))
	for i := range users {
		out = append(out, users[i].Profile())
	}
	return out, nil
}

func (s *UserServiceImpl) Update(ctx context.Context, id uuid.UUID, params types.UpdateUserParams) (*types.UserProfile, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if params.FirstName != nil {
		u.FirstName = *params.FirstName
	}
	if params.LastName != nil {
		u.LastName = *params.LastName
	}
	if params.Photo != nil {
		u.Photo = params.Photo
	}
	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	s.invalidator.InvalidatePrincipal(u.Email)
	return u.Profile(), nil
}

func (s *UserServiceImpl) Delete(ctx context.Context, id uuid.UUID) error {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return err
	}
	s.invalidator.InvalidatePrincipal(u.Email)
	s.logger.InfoContext(ctx, "User deleted", slog.String("id", id.String()))
	return nil
}
