package member

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dellmdq/OT109-Server/internal/types"
)

var _ MemberService = (*MemberServiceImpl)(nil)

type MemberService interface {
	List(ctx context.Context, page, size int) (*types.Page[types.Member], error)
	Create(ctx context.Context, params MemberParams) (*types.Member, error)
	Update(ctx context.Context, id uuid.UUID, params MemberParams) (*types.Member, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type MemberParams struct {
	Name         string  `json:"name" validate:"required"`
	FacebookURL  *string `json:"facebook_url,omitempty" validate:"omitempty,url"`
	InstagramURL *string `json:"instagram_url,omitempty" validate:"omitempty,url"`
	LinkedinURL  *string `json:"linkedin_url,omitempty" validate:"omitempty,url"`
	Image        *string `json:"image,omitempty" validate:"omitempty,url"`
	Description  *string `json:"description,omitempty"`
}

const defaultPageSize = 10

type MemberServiceImpl struct {
	logger *slog.Logger
	repo   MemberRepo
}

func NewMemberService(repo MemberRepo, logger *slog.Logger) *MemberServiceImpl {
	return &MemberServiceImpl{logger: logger, repo: repo}
}

func (s *MemberServiceImpl) List(ctx context.Context, page, size int) (*types.Page[types.Member], error) {
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
	return &types.Page[types.Member]{Items: items, Page: page, Size: size, Total: total}, nil
}

func (s *MemberServiceImpl) Create(ctx context.Context, params MemberParams) (*types.Member, error) {
	m := &types.Member{
		ID:           uuid.New(),
		Name:         params.Name,
		FacebookURL:  params.FacebookURL,
		InstagramURL: params.InstagramURL,
		LinkedinURL:  params.LinkedinURL,
		Image:        params.Image,
		Description:  params.Description,
		CreatedAt:    time.Now(),
	}
	if err := s.repo.Create(ctx, m); err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "Member created", slog.String("id", m.ID.String()))
	return m, nil
}

func (s *MemberServiceImpl) Update(ctx context.Context, id uuid.UUID, params MemberParams) (*types.Member, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	m.Name = params.Name
	m.FacebookURL = params.FacebookURL
	m.InstagramURL = params.InstagramURL
	m.LinkedinURL = params.LinkedinURL
	m.Image = params.Image
	m.Description = params.Description
	if err := s.repo.Update(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *MemberServiceImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.SoftDelete(ctx, id)
}
