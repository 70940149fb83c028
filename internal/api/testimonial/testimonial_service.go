package testimonial

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dellmdq/OT109-Server/internal/types"
)

var _ TestimonialService = (*TestimonialServiceImpl)(nil)

type TestimonialService interface {
	List(ctx context.Context, page, size int) (*types.Page[types.Testimonial], error)
	Create(ctx context.Context, params TestimonialParams) (*types.Testimonial, error)
	Update(ctx context.Context, id uuid.UUID, params TestimonialParams) (*types.Testimonial, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type TestimonialParams struct {
	Name    string  `json:"name" validate:"required"`
	Content string  `json:"content" validate:"required"`
	Image   *string `json:"image,omitempty" validate:"omitempty,url"`
}

const defaultPageSize = 10

type TestimonialServiceImpl struct {
	logger *slog.Logger
	repo   TestimonialRepo
}

func NewTestimonialService(repo TestimonialRepo, logger *slog.Logger) *TestimonialServiceImpl {
	return &TestimonialServiceImpl{logger: logger, repo: repo}
}

func (s *TestimonialServiceImpl) List(ctx context.Context, page, size int) (*types.Page[types.Testimonial], error) {
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
	return &types.Page[types.Testimonial]{Items: items, Page: page, Size: size, Total: total}, nil
}

func (s *TestimonialServiceImpl) Create(ctx context.Context, params TestimonialParams) (*types.Testimonial, error) {
	t := &types.Testimonial{
		ID:        uuid.New(),
		Name:      params.Name,
		Content:   params.Content,
		Image:     params.Image,
		CreatedAt: time.Now(),
	}
	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "Testimonial created", slog.String("id", t.ID.String()))
	return t, nil
}

func (s *TestimonialServiceImpl) Update(ctx context.Context, id uuid.UUID, params TestimonialParams) (*types.Testimonial, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	t.Name = params.Name
	t.Content = params.Content
	t.Image = params.Image
	if err := s.repo.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TestimonialServiceImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.SoftDelete(ctx, id)
}
