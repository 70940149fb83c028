package contact

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dellmdq/OT109-Server/internal/types"
)

var _ ContactService = (*ContactServiceImpl)(nil)

type ContactService interface {
	List(ctx context.Context) ([]types.Contact, error)
	Create(ctx context.Context, params ContactParams) (*types.Contact, error)
}

type ContactParams struct {
	Name    string  `json:"name" validate:"required"`
	Phone   *string `json:"phone,omitempty"`
	Email   string  `json:"email" validate:"required,email"`
	Message *string `json:"message,omitempty"`
}

type ContactServiceImpl struct {
	logger *slog.Logger
	repo   ContactRepo
}

func NewContactService(repo ContactRepo, logger *slog.Logger) *ContactServiceImpl {
	return &ContactServiceImpl{logger: logger, repo: repo}
}

func (s *ContactServiceImpl) List(ctx context.Context) ([]types.Contact, error) {
	return s.repo.List(ctx)
}

func (s *ContactServiceImpl) Create(ctx context.Context, params ContactParams) (*types.Contact, error) {
	c := &types.Contact{
		ID:        uuid.New(),
		Name:      params.Name,
		Phone:     params.Phone,
		Email:     params.Email,
		Message:   params.Message,
		CreatedAt: time.Now(),
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "Contact received", slog.String("id", c.ID.String()))
	return c, nil
}
