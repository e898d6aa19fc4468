package service

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/htmw/2025Su-ByteSquad/internal/domain"
	"github.com/htmw/2025Su-ByteSquad/internal/event"
	apperrors "github.com/htmw/2025Su-ByteSquad/pkg/errors"
	pkgkafka "github.com/htmw/2025Su-ByteSquad/pkg/kafka"
)

// --- Mock Cart Repository ---

type mockCartRepository struct {
	mock.Mock
}

func (m *mockCartRepository) Get(ctx context.Context, userID string) (*domain.Cart, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Cart), args.Error(1)
}

func (m *mockCartRepository) Save(ctx context.Context, cart *domain.Cart) error {
	args := m.Called(ctx, cart)
	return args.Error(0)
}

func (m *mockCartRepository) Delete(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// --- Test Helpers ---

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newTestEventProducer() *event.Producer {
	logger := newTestLogger()
	kafkaCfg := pkgkafka.DefaultProducerConfig([]string{"localhost:9092"})
	kafkaProducer := pkgkafka.NewProducer(kafkaCfg, logger)
	return event.NewProducer(kafkaProducer, logger)
}

func newTestCartService(repo *mockCartRepository) *CartService {
	return NewCartService(repo, newTestEventProducer(), newTestLogger(), 24*time.Hour)
}

func testCart(userID string, lines ...domain.CartLine) *domain.Cart {
	now := time.Now().UTC()
	return &domain.Cart{
		ID:        "cart-1",
		UserID:    userID,
		Lines:     lines,
		Currency:  "USD",
		CreatedAt: now,
		UpdatedAt: now,
		ExpiresAt: now.Add(24 * time.Hour),
	}
}

// --- GetCart Tests ---

func TestGetCart_Existing(t *testing.T) {
	repo := new(mockCartRepository)
	svc := newTestCartService(repo)
	ctx := context.Background()

	stored := testCart("user-1", domain.CartLine{ProductID: "p1", Name: "Whey Protein", UnitPrice: 2999, Quantity: 2, Selected: true})
	repo.On("Get", ctx, "user-1").Return(stored, nil)

	cart, err := svc.GetCart(ctx, "user-1")

	require.NoError(t, err)
	assert.Equal(t, "user-1", cart.UserID)
	assert.Len(t, cart.Lines, 1)
	repo.AssertExpectations(t)
}

func TestGetCart_NotFoundReturnsEmptyCart(t *testing.T) {
	repo := new(mockCartRepository)
	svc := newTestCartService(repo)
	ctx := context.Background()

	repo.On("Get", ctx, "user-1").Return(nil, apperrors.NotFound("cart", "user-1"))

	cart, err := svc.GetCart(ctx, "user-1")

	require.NoError(t, err)
	assert.Equal(t, "user-1", cart.UserID)
	assert.Empty(t, cart.Lines)
	assert.NotEmpty(t, cart.ID)
	assert.Equal(t, "USD", cart.Currency)
}

func TestGetCart_MissingUserID(t *testing.T) {
	repo := new(mockCartRepository)
	svc := newTestCartService(repo)

	cart, err := svc.GetCart(context.Background(), "")

	assert.Nil(t, cart)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

// --- AddLine Tests ---

func TestAddLine_NewLineStartsSelected(t *testing.T) {
	repo := new(mockCartRepository)
	svc := newTestCartService(repo)
	ctx := context.Background()

	repo.On("Get", ctx, "user-1").Return(nil, apperrors.NotFound("cart", "user-1"))
	repo.On("Save", ctx, mock.AnythingOfType("*domain.Cart")).Return(nil)

	cart, err := svc.AddLine(ctx, "user-1", AddLineInput{
		ProductID: "p1",
		Name:      "Creatine",
		UnitPrice: 1999,
		Quantity:  1,
	})

	require.NoError(t, err)
	require.Len(t, cart.Lines, 1)
	assert.True(t, cart.Lines[0].Selected)
	assert.Equal(t, 1, cart.Lines[0].Quantity)
	repo.AssertExpectations(t)
}

func TestAddLine_MergesByProductID(t *testing.T) {
	repo := new(mockCartRepository)
	svc := newTestCartService(repo)
	ctx := context.Background()

	stored := testCart("user-1", domain.CartLine{ProductID: "p1", Name: "Creatine", UnitPrice: 1999, Quantity: 2, Selected: true})
	repo.On("Get", ctx, "user-1").Return(stored, nil)
	repo.On("Save", ctx, mock.AnythingOfType("*domain.Cart")).Return(nil)

	cart, err := svc.AddLine(ctx, "user-1", AddLineInput{
		ProductID: "p1",
		Name:      "Creatine",
		UnitPrice: 2099,
		Quantity:  3,
	})

	require.NoError(t, err)
	require.Len(t, cart.Lines, 1)
	assert.Equal(t, 5, cart.Lines[0].Quantity)
	assert.Equal(t, int64(2099), cart.Lines[0].UnitPrice)
	repo.AssertExpectations(t)
}

func TestAddLine_InvalidQuantity(t *testing.T) {
	repo := new(mockCartRepository)
	svc := newTestCartService(repo)

	cart, err := svc.AddLine(context.Background(), "user-1", AddLineInput{
		ProductID: "p1",
		Name:      "Creatine",
		UnitPrice: 1999,
		Quantity:  0,
	})

	assert.Nil(t, cart)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestAddLine_QuantityCapExceeded(t *testing.T) {
	repo := new(mockCartRepository)
	svc := newTestCartService(repo)
	ctx := context.Background()

	stored := testCart("user-1", domain.CartLine{ProductID: "p1", Quantity: 99, Selected: true})
	repo.On("Get", ctx, "user-1").Return(stored, nil)

	cart, err := svc.AddLine(ctx, "user-1", AddLineInput{
		ProductID: "p1",
		Name:      "Creatine",
		Quantity:  2,
	})

	assert.Nil(t, cart)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestAddLine_LineCapExceeded(t *testing.T) {
	repo := new(mockCartRepository)
	svc := newTestCartService(repo)
	ctx := context.Background()

	lines := make([]domain.CartLine, MaxLinesPerCart)
	for i := range lines {
		lines[i] = domain.CartLine{ProductID: string(rune('a' + i)), Quantity: 1}
	}
	repo.On("Get", ctx, "user-1").Return(testCart("user-1", lines...), nil)

	cart, err := svc.AddLine(ctx, "user-1", AddLineInput{
		ProductID: "brand-new",
		Name:      "BCAA",
		Quantity:  1,
	})

	assert.Nil(t, cart)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestAddLine_SaveFailure(t *testing.T) {
	repo := new(mockCartRepository)
	svc := newTestCartService(repo)
	ctx := context.Background()

	repo.On("Get", ctx, "user-1").Return(nil, apperrors.NotFound("cart", "user-1"))
	repo.On("Save", ctx, mock.AnythingOfType("*domain.Cart")).Return(errors.New("redis down"))

	cart, err := svc.AddLine(ctx, "user-1", AddLineInput{
		ProductID: "p1",
		Name:      "Creatine",
		Quantity:  1,
	})

	assert.Nil(t, cart)
	assert.Error(t, err)
	repo.AssertExpectations(t)
}

// --- SetQuantity Tests ---

func TestSetQuantity_Updates(t *testing.T) {
	repo := new(mockCartRepository)
	svc := newTestCartService(repo)
	ctx := context.Background()

	stored := testCart("user-1", domain.CartLine{ProductID: "p1", Quantity: 2, Selected: true})
	repo.On("Get", ctx, "user-1").Return(stored, nil)
	repo.On("Save", ctx, mock.AnythingOfType("*domain.Cart")).Return(nil)

	cart, err := svc.SetQuantity(ctx, "user-1", "p1", 7)

	require.NoError(t, err)
	assert.Equal(t, 7, cart.Lines[0].Quantity)
	repo.AssertExpectations(t)
}

func TestSetQuantity_ClampsBelowOne(t *testing.T) {
	repo := new(mockCartRepository)
	svc := newTestCartService(repo)
	ctx := context.Background()

	stored := testCart("user-1", domain.CartLine{ProductID: "p1", Quantity: 5, Selected: true})
	repo.On("Get", ctx, "user-1").Return(stored, nil)
	repo.On("Save", ctx, mock.AnythingOfType("*domain.Cart")).Return(nil)

	cart, err := svc.SetQuantity(ctx, "user-1", "p1", 0)

	require.NoError(t, err)
	assert.Equal(t, 1, cart.Lines[0].Quantity)

	cart, err = svc.SetQuantity(ctx, "user-1", "p1", -3)

	require.NoError(t, err)
	assert.Equal(t, 1, cart.Lines[0].Quantity)
}

func TestSetQuantity_UnknownProduct(t *testing.T) {
	repo := new(mockCartRepository)
	svc := newTestCartService(repo)
	ctx := context.Background()

	stored := testCart("user-1", domain.CartLine{ProductID: "p1", Quantity: 2, Selected: true})
	repo.On("Get", ctx, "user-1").Return(stored, nil)

	cart, err := svc.SetQuantity(ctx, "user-1", "nope", 3)

	assert.Nil(t, cart)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestSetQuantity_NoCart(t *testing.T) {
	repo := new(mockCartRepository)
	svc := newTestCartService(repo)
	ctx := context.Background()

	repo.On("Get", ctx, "user-1").Return(nil, apperrors.NotFound("cart", "user-1"))

	cart, err := svc.SetQuantity(ctx, "user-1", "p1", 3)

	assert.Nil(t, cart)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

// --- RemoveLine Tests ---

func TestRemoveLine_Removes(t *testing.T) {
	repo := new(mockCartRepository)
	svc := newTestCartService(repo)
	ctx := context.Background()

	stored := testCart("user-1",
		domain.CartLine{ProductID: "p1", Quantity: 1, Selected: true},
		domain.CartLine{ProductID: "p2", Quantity: 2, Selected: true},
	)
	repo.On("Get", ctx, "user-1").Return(stored, nil)
	repo.On("Save", ctx, mock.AnythingOfType("*domain.Cart")).Return(nil)

	cart, err := svc.RemoveLine(ctx, "user-1", "p1")

	require.NoError(t, err)
	require.Len(t, cart.Lines, 1)
	assert.Equal(t, "p2", cart.Lines[0].ProductID)
	repo.AssertExpectations(t)
}

func TestRemoveLine_AbsentLineIsIdempotent(t *testing.T) {
	repo := new(mockCartRepository)
	svc := newTestCartService(repo)
	ctx := context.Background()

	stored := testCart("user-1", domain.CartLine{ProductID: "p1", Quantity: 1, Selected: true})
	repo.On("Get", ctx, "user-1").Return(stored, nil)

	cart, err := svc.RemoveLine(ctx, "user-1", "nope")

	require.NoError(t, err)
	assert.Len(t, cart.Lines, 1)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestRemoveLine_NoCartReturnsEmpty(t *testing.T) {
	repo := new(mockCartRepository)
	svc := newTestCartService(repo)
	ctx := context.Background()

	repo.On("Get", ctx, "user-1").Return(nil, apperrors.NotFound("cart", "user-1"))

	cart, err := svc.RemoveLine(ctx, "user-1", "p1")

	require.NoError(t, err)
	assert.Empty(t, cart.Lines)
}

// --- SetSelected Tests ---

func TestSetSelected_Deselects(t *testing.T) {
	repo := new(mockCartRepository)
	svc := newTestCartService(repo)
	ctx := context.Background()

	stored := testCart("user-1", domain.CartLine{ProductID: "p1", UnitPrice: 1000, Quantity: 2, Selected: true})
	repo.On("Get", ctx, "user-1").Return(stored, nil)
	repo.On("Save", ctx, mock.AnythingOfType("*domain.Cart")).Return(nil)

	cart, err := svc.SetSelected(ctx, "user-1", "p1", false)

	require.NoError(t, err)
	assert.False(t, cart.Lines[0].Selected)
	assert.Equal(t, int64(0), cart.Subtotal())
	assert.Equal(t, 2, cart.ItemCount())
	repo.AssertExpectations(t)
}

func TestSetSelected_UnknownProduct(t *testing.T) {
	repo := new(mockCartRepository)
	svc := newTestCartService(repo)
	ctx := context.Background()

	repo.On("Get", ctx, "user-1").Return(testCart("user-1"), nil)

	cart, err := svc.SetSelected(ctx, "user-1", "nope", true)

	assert.Nil(t, cart)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

// --- ClearCart Tests ---

func TestClearCart_Deletes(t *testing.T) {
	repo := new(mockCartRepository)
	svc := newTestCartService(repo)
	ctx := context.Background()

	repo.On("Delete", ctx, "user-1").Return(nil)

	err := svc.ClearCart(ctx, "user-1")

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestClearCart_DeleteFailure(t *testing.T) {
	repo := new(mockCartRepository)
	svc := newTestCartService(repo)
	ctx := context.Background()

	repo.On("Delete", ctx, "user-1").Return(errors.New("redis down"))

	err := svc.ClearCart(ctx, "user-1")

	assert.Error(t, err)
}
