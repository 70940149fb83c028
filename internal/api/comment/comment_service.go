package comment

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dellmdq/OT109-Server/internal/types"
)

var _ CommentService = (*CommentServiceImpl)(nil)

// Caller identifies the authenticated principal performing a mutation.
type Caller struct {
	UserID uuid.UUID
	Email  string
	Role   string
}

type CommentService interface {
	List(ctx context.Context) ([]types.Comment, error)
	ListByNews(ctx context.Context, newsID uuid.UUID) ([]types.Comment, error)
	Create(ctx context.Context, caller Caller, params CreateCommentParams) (*types.Comment, error)
	// Update and Delete enforce the ownership rule: USER may only touch
	// their own comments, ADMIN any. Violations return types.ErrForbidden.
	Update(ctx context.Context, caller Caller, id uuid.UUID, body string) (*types.Comment, error)
	Delete(ctx context.Context, caller Caller, id uuid.UUID) error
}

type CreateCommentParams struct {
	Body   string    `json:"body" validate:"required"`
	NewsID uuid.UUID `json:"news_id" validate:"required"`
}

type CommentServiceImpl struct {
	logger *slog.Logger
	repo   CommentRepo
}

func NewCommentService(repo CommentRepo, logger *slog.Logger) *CommentServiceImpl {
	return &CommentServiceImpl{logger: logger, repo: repo}
}

func (s *CommentServiceImpl) List(ctx context.Context) ([]types.Comment, error) {
	return s.repo.List(ctx)
}

func (s *CommentServiceImpl) ListByNews(ctx context.Context, newsID uuid.UUID) ([]types.Comment, error) {
	return s.repo.ListByNews(ctx, newsID)
}

func (s *CommentServiceImpl) Create(ctx context.Context, caller Caller, params CreateCommentParams) (*types.Comment, error) {
	c := &types.Comment{
		ID:        uuid.New(),
		Body:      params.Body,
		UserID:    caller.UserID,
		NewsID:    params.NewsID,
		CreatedAt: time.Now(),
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// mayMutate checks the ownership rule for an existing comment.
func (s *CommentServiceImpl) mayMutate(ctx context.Context, caller Caller, id uuid.UUID) error {
	if caller.Role == types.RoleAdmin {
		return nil
	}
	owner, err := s.repo.OwnerEmail(ctx, id)
	if err != nil {
		return err
	}
	if owner != caller.Email {
		s.logger.WarnContext(ctx, "Comment mutation rejected, not the owner",
			slog.String("comment_id", id.String()), slog.String("caller", caller.Email))
		return fmt.Errorf("comment belongs to another user: %w", types.ErrForbidden)
	}
	return nil
}

func (s *CommentServiceImpl) Update(ctx context.Context, caller Caller, id uuid.UUID, body string) (*types.Comment, error) {
	if err := s.mayMutate(ctx, caller, id); err != nil {
		return nil, err
	}
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c.Body = body
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CommentServiceImpl) Delete(ctx context.Context, caller Caller, id uuid.UUID) error {
	if err := s.mayMutate(ctx, caller, id); err != nil {
		return err
	}
	return s.repo.SoftDelete(ctx, id)
}
