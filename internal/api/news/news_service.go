package news

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dellmdq/OT109-Server/internal/types"
)

var _ NewsService = (*NewsServiceImpl)(nil)

type NewsService interface {
	List(ctx context.Context, page, size int) (*types.Page[types.News], error)
	GetByID(ctx context.Context, id uuid.UUID) (*types.News, error)
	Create(ctx context.Context, params NewsParams) (*types.News, error)
	Update(ctx context.Context, id uuid.UUID, params NewsParams) (*types.News, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type NewsParams struct {
	Name       string     `json:"name" validate:"required"`
	Content    string     `json:"content" validate:"required"`
	Image      *string    `json:"image,omitempty" validate:"omitempty,url"`
	CategoryID *uuid.UUID `json:"category_id,omitempty"`
}

const defaultPageSize = 10

type NewsServiceImpl struct {
	logger *slog.Logger
	repo   NewsRepo
}

func NewNewsService(repo NewsRepo, logger *slog.Logger) *NewsServiceImpl {
	return &NewsServiceImpl{logger: logger, repo: repo}
}

func (s *NewsServiceImpl) List(ctx context.Context, page, size int) (*types.Page[types.News], error) {
	if page < 1 {
		page = 1
	}
	if size < 1 || size > 100 {
		size = defaultPageSize
	}
	items, total, err := s.repo.List(ctx, size, (page-1)*size)
	if err != nil {
		return nil, err
	}
	return &types.Page[types.News]{Items: items, Page: page, Size: size, Total: total}, nil
}

func (s *NewsServiceImpl) GetByID(ctx context.Context, id uuid.UUID) (*types.News, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *NewsServiceImpl) Create(ctx context.Context, params NewsParams) (*types.News, error) {
	n := &types.News{
		ID:         uuid.New(),
		Name:       params.Name,
		Content:    params.Content,
		Image:      params.Image,
		CategoryID: params.CategoryID,
		CreatedAt:  time.Now(),
	}
	if err := s.repo.Create(ctx, n); err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "News created", slog.String("id", n.ID.String()))
	return n, nil
}

func (s *NewsServiceImpl) Update(ctx context.Context, id uuid.UUID, params NewsParams) (*types.News, error) {
	n, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	n.Name = params.Name
	n.Content = params.Content
	n.Image = params.Image
	n.CategoryID = params.CategoryID
	if err := s.repo.Update(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

func (s *NewsServiceImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.SoftDelete(ctx, id)
}
