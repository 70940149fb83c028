package category

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dellmdq/OT109-Server/internal/types"
)

var _ CategoryService = (*CategoryServiceImpl)(nil)

type CategoryService interface {
	List(ctx context.Context) ([]types.Category, error)
	GetByID(ctx context.Context, id uuid.UUID) (*types.Category, error)
	Create(ctx context.Context, params CreateCategoryParams) (*types.Category, error)
	Update(ctx context.Context, id uuid.UUID, params CreateCategoryParams) (*types.Category, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type CreateCategoryParams struct {
	Name        string  `json:"name" validate:"required"`
	Description *string `json:"description,omitempty"`
	Image       *string `json:"image,omitempty" validate:"omitempty,url"`
}

type CategoryServiceImpl struct {
	logger *slog.Logger
	repo   CategoryRepo
}

func NewCategoryService(repo CategoryRepo, logger *slog.Logger) *CategoryServiceImpl {
	return &CategoryServiceImpl{logger: logger, repo: repo}
}

func (s *CategoryServiceImpl) List(ctx context.Context) ([]types.Category, error) {
	return s.repo.List(ctx)
}

func (s *CategoryServiceImpl) GetByID(ctx context.Context, id uuid.UUID) (*types.Category, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *CategoryServiceImpl) Create(ctx context.Context, params CreateCategoryParams) (*types.Category, error) {
	c := &types.Category{
		ID:          uuid.New(),
		Name:        params.Name,
		Description: params.Description,
		Image:       params.Image,
		CreatedAt:   time.Now(),
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "Category created", slog.String("id", c.ID.String()))
	return c, nil
}

func (s *CategoryServiceImpl) Update(ctx context.Context, id uuid.UUID, params CreateCategoryParams) (*types.Category, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c.Name = params.Name
	c.Description = params.Description
	c.Image = params.Image
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CategoryServiceImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.SoftDelete(ctx, id)
}
