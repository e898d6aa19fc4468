package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/htmw/2025Su-ByteSquad/internal/domain"
	apperrors "github.com/htmw/2025Su-ByteSquad/pkg/errors"
)

// --- Mock Supplement Repository ---

type mockSupplementRepository struct {
	mock.Mock
}

func (m *mockSupplementRepository) List(ctx context.Context, category string) ([]domain.Supplement, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Supplement), args.Error(1)
}

func (m *mockSupplementRepository) GetByID(ctx context.Context, id string) (*domain.Supplement, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Supplement), args.Error(1)
}

func testSupplement() domain.Supplement {
	now := time.Now().UTC()
	return domain.Supplement{
		ID:            "sup-1",
		Name:          "Whey Protein",
		Description:   "Fast-absorbing protein powder",
		Price:         2999,
		PriceRef:      "price_whey",
		Category:      "protein",
		Brand:         "FitStore",
		StockQuantity: 120,
		IsAvailable:   true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func TestSupplementList_All(t *testing.T) {
	repo := new(mockSupplementRepository)
	svc := NewSupplementService(repo, newTestLogger())
	ctx := context.Background()

	repo.On("List", ctx, "").Return([]domain.Supplement{testSupplement()}, nil)

	supplements, err := svc.List(ctx, "")

	require.NoError(t, err)
	require.Len(t, supplements, 1)
	assert.Equal(t, "Whey Protein", supplements[0].Name)
	repo.AssertExpectations(t)
}

func TestSupplementList_ByCategory(t *testing.T) {
	repo := new(mockSupplementRepository)
	svc := NewSupplementService(repo, newTestLogger())
	ctx := context.Background()

	repo.On("List", ctx, "protein").Return([]domain.Supplement{testSupplement()}, nil)

	supplements, err := svc.List(ctx, "protein")

	require.NoError(t, err)
	assert.Len(t, supplements, 1)
	repo.AssertExpectations(t)
}

func TestSupplementList_Empty(t *testing.T) {
	repo := new(mockSupplementRepository)
	svc := NewSupplementService(repo, newTestLogger())
	ctx := context.Background()

	repo.On("List", ctx, "vitamins").Return([]domain.Supplement{}, nil)

	supplements, err := svc.List(ctx, "vitamins")

	require.NoError(t, err)
	assert.Empty(t, supplements)
}

func TestSupplementGetByID_Success(t *testing.T) {
	repo := new(mockSupplementRepository)
	svc := NewSupplementService(repo, newTestLogger())
	ctx := context.Background()

	sup := testSupplement()
	repo.On("GetByID", ctx, "sup-1").Return(&sup, nil)

	got, err := svc.GetByID(ctx, "sup-1")

	require.NoError(t, err)
	assert.Equal(t, "sup-1", got.ID)
}

func TestSupplementGetByID_NotFound(t *testing.T) {
	repo := new(mockSupplementRepository)
	svc := NewSupplementService(repo, newTestLogger())
	ctx := context.Background()

	repo.On("GetByID", ctx, "ghost").Return(nil, apperrors.NotFound("supplement", "ghost"))

	got, err := svc.GetByID(ctx, "ghost")

	assert.Nil(t, got)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestSupplementGetByID_MissingID(t *testing.T) {
	repo := new(mockSupplementRepository)
	svc := NewSupplementService(repo, newTestLogger())

	got, err := svc.GetByID(context.Background(), "")

	assert.Nil(t, got)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	repo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}
