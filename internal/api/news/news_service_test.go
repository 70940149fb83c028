package news

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

// MockNewsRepo is a mock implementation of the NewsRepo interface
type MockNewsRepo struct {
	mock.Mock
}

func (m *MockNewsRepo) List(ctx context.Context, limit, offset int) ([]types.News, int, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]types.News), args.Int(1), args.Error(2)
}

func (m *MockNewsRepo) GetByID(ctx context.Context, id uuid.UUID) (*types.News, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.News), args.Error(1)
}

func (m *MockNewsRepo) Create(ctx context.Context, n *types.News) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *MockNewsRepo) Update(ctx context.Context, n *types.News) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *MockNewsRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func testNewsService(repo NewsRepo) *NewsServiceImpl {
	return NewNewsService(repo, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestNewsService_List_Pagination(t *testing.T) {
	tests := []struct {
		name       string
		page, size int
		wantLimit  int
		wantOffset int
		wantPage   int
	}{
		{"defaults", 0, 0, defaultPageSize, 0, 1},
		{"negative page", -3, 5, 5, 0, 1},
		{"second page", 2, 10, 10, 10, 2},
		{"oversized page", 1, 500, defaultPageSize, 0, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockNewsRepo)
			repo.On("List", mock.Anything, tt.wantLimit, tt.wantOffset).
				Return([]types.News{{ID: uuid.New(), Name: "headline"}}, 42, nil)

			page, err := testNewsService(repo).List(context.Background(), tt.page, tt.size)
			require.NoError(t, err)
			assert.Equal(t, tt.wantPage, page.Page)
			assert.Equal(t, 42, page.Total)
			assert.Len(t, page.Items, 1)
			repo.AssertExpectations(t)
		})
	}
}

func TestNewsService_Update_NotFound(t *testing.T) {
	repo := new(MockNewsRepo)
	id := uuid.New()
	repo.On("GetByID", mock.Anything, id).Return(nil, types.ErrNotFound)

	_, err := testNewsService(repo).Update(context.Background(), id, NewsParams{Name: "x", Content: "y"})
	assert.ErrorIs(t, err, types.ErrNotFound)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}
