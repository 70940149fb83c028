package comment

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dellmdq/OT109-Server/internal/types"
)

// MockCommentRepo is a mock implementation of the CommentRepo interface
type MockCommentRepo struct {
	mock.Mock
}

func (m *MockCommentRepo) List(ctx context.Context) ([]types.Comment, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.Comment), args.Error(1)
}

func (m *MockCommentRepo) ListByNews(ctx context.Context, newsID uuid.UUID) ([]types.Comment, error) {
	args := m.Called(ctx, newsID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.Comment), args.Error(1)
}

func (m *MockCommentRepo) GetByID(ctx context.Context, id uuid.UUID) (*types.Comment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Comment), args.Error(1)
}

func (m *MockCommentRepo) OwnerEmail(ctx context.Context, commentID uuid.UUID) (string, error) {
	args := m.Called(ctx, commentID)
	return args.String(0), args.Error(1)
}

func (m *MockCommentRepo) Create(ctx context.Context, c *types.Comment) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCommentRepo) Update(ctx context.Context, c *types.Comment) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCommentRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func testCommentService(repo CommentRepo) *CommentServiceImpl {
	return NewCommentService(repo, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestCommentService_Create_BindsCaller(t *testing.T) {
	repo := new(MockCommentRepo)
	svc := testCommentService(repo)

	caller := Caller{UserID: uuid.New(), Email: "jane@example.com", Role: types.RoleUser}
	newsID := uuid.New()
	repo.On("Create", mock.Anything, mock.MatchedBy(func(c *types.Comment) bool {
		return c.UserID == caller.UserID && c.NewsID == newsID && c.Body == "nice read"
	})).Return(nil)

	c, err := svc.Create(context.Background(), caller, CreateCommentParams{Body: "nice read", NewsID: newsID})
	require.NoError(t, err)
	assert.Equal(t, caller.UserID, c.UserID)
	repo.AssertExpectations(t)
}

func TestCommentService_Update_OwnerAllowed(t *testing.T) {
	repo := new(MockCommentRepo)
	svc := testCommentService(repo)

	id := uuid.New()
	caller := Caller{UserID: uuid.New(), Email: "owner@example.com", Role: types.RoleUser}
	repo.On("OwnerEmail", mock.Anything, id).Return("owner@example.com", nil)
	repo.On("GetByID", mock.Anything, id).Return(&types.Comment{ID: id, Body: "old"}, nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(c *types.Comment) bool {
		return c.ID == id && c.Body == "new body"
	})).Return(nil)

	c, err := svc.Update(context.Background(), caller, id, "new body")
	require.NoError(t, err)
	assert.Equal(t, "new body", c.Body)
	repo.AssertExpectations(t)
}

func TestCommentService_Update_StrangerForbidden(t *testing.T) {
	repo := new(MockCommentRepo)
	svc := testCommentService(repo)

	id := uuid.New()
	caller := Caller{UserID: uuid.New(), Email: "stranger@example.com", Role: types.RoleUser}
	repo.On("OwnerEmail", mock.Anything, id).Return("owner@example.com", nil)

	_, err := svc.Update(context.Background(), caller, id, "new body")
	assert.ErrorIs(t, err, types.ErrForbidden)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestCommentService_Update_AdminBypassesOwnership(t *testing.T) {
	repo := new(MockCommentRepo)
	svc := testCommentService(repo)

	id := uuid.New()
	caller := Caller{UserID: uuid.New(), Email: "admin@example.com", Role: types.RoleAdmin}
	repo.On("GetByID", mock.Anything, id).Return(&types.Comment{ID: id, Body: "old"}, nil)
	repo.On("Update", mock.Anything, mock.Anything).Return(nil)

	_, err := svc.Update(context.Background(), caller, id, "moderated")
	require.NoError(t, err)
	repo.AssertNotCalled(t, "OwnerEmail", mock.Anything, mock.Anything)
}

func TestCommentService_Delete_OwnershipRule(t *testing.T) {
	id := uuid.New()

	t.Run("owner deletes", func(t *testing.T) {
		repo := new(MockCommentRepo)
		svc := testCommentService(repo)
		repo.On("OwnerEmail", mock.Anything, id).Return("owner@example.com", nil)
		repo.On("SoftDelete", mock.Anything, id).Return(nil)

		err := svc.Delete(context.Background(), Caller{Email: "owner@example.com", Role: types.RoleUser}, id)
		require.NoError(t, err)
	})

	t.Run("stranger denied", func(t *testing.T) {
		repo := new(MockCommentRepo)
		svc := testCommentService(repo)
		repo.On("OwnerEmail", mock.Anything, id).Return("owner@example.com", nil)

		err := svc.Delete(context.Background(), Caller{Email: "stranger@example.com", Role: types.RoleUser}, id)
		assert.ErrorIs(t, err, types.ErrForbidden)
		repo.AssertNotCalled(t, "SoftDelete", mock.Anything, mock.Anything)
	})

	t.Run("missing comment", func(t *testing.T) {
		repo := new(MockCommentRepo)
		svc := testCommentService(repo)
		repo.On("OwnerEmail", mock.Anything, id).Return("", types.ErrNotFound)

		err := svc.Delete(context.Background(), Caller{Email: "owner@example.com", Role: types.RoleUser}, id)
		assert.ErrorIs(t, err, types.ErrNotFound)
	})
}
