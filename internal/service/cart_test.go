package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/zeel68/YouliteBackend/internal/domain"
	apperrors "github.com/zeel68/YouliteBackend/pkg/errors"
)

func newTestCartService(cartRepo *mockCartRepository, productRepo *mockProductRepository) *CartService {
	return NewCartService(cartRepo, productRepo, newTestLogger())
}

func storeProduct() *domain.Product {
	return &domain.Product{
		ID:        "p-1",
		StoreID:   "s-1",
		Name:      "Ceramic Mug",
		Price:     1200,
		StockQty:  10,
		ImageURLs: []string{"https://cdn.example.com/mug.jpg"},
		IsActive:  true,
	}
}

func TestGetCart_MissingCartIsEmpty(t *testing.T) {
	cartRepo := new(mockCartRepository)
	svc := newTestCartService(cartRepo, new(mockProductRepository))
	ctx := context.Background()

	cartRepo.On("Get", ctx, "u-1", "s-1").Return(nil, apperrors.ErrNotFound)

	cart, err := svc.GetCart(ctx, "u-1", "s-1")

	require.NoError(t, err)
	assert.Empty(t, cart.Items)
	assert.Equal(t, "u-1", cart.UserID)
	assert.Equal(t, "s-1", cart.StoreID)
}

func TestAddItem_NewLine(t *testing.T) {
	cartRepo := new(mockCartRepository)
	productRepo := new(mockProductRepository)
	svc := newTestCartService(cartRepo, productRepo)
	ctx := context.Background()

	productRepo.On("GetByID", ctx, "p-1").Return(storeProduct(), nil)
	cartRepo.On("Get", ctx, "u-1", "s-1").Return(nil, apperrors.ErrNotFound)
	cartRepo.On("Save", ctx, mock.AnythingOfType("*domain.Cart")).Return(nil)

	cart, err := svc.AddItem(ctx, "u-1", "s-1", "p-1", 2)

	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)
	assert.Equal(t, int64(1200), cart.Items[0].Price)
	assert.Equal(t, int64(2400), cart.TotalAmount())
	cartRepo.AssertExpectations(t)
}

func TestAddItem_MergesExistingLine(t *testing.T) {
	cartRepo := new(mockCartRepository)
	productRepo := new(mockProductRepository)
	svc := newTestCartService(cartRepo, productRepo)
	ctx := context.Background()

	existing := &domain.Cart{
		UserID:  "u-1",
		StoreID: "s-1",
		Items:   []domain.CartItem{{ProductID: "p-1", Name: "Ceramic Mug", Price: 1200, Quantity: 1}},
	}
	productRepo.On("GetByID", ctx, "p-1").Return(storeProduct(), nil)
	cartRepo.On("Get", ctx, "u-1", "s-1").Return(existing, nil)
	cartRepo.On("Save", ctx, mock.AnythingOfType("*domain.Cart")).Return(nil)

	cart, err := svc.AddItem(ctx, "u-1", "s-1", "p-1", 3)

	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 4, cart.Items[0].Quantity)
}

func TestAddItem_WrongStore(t *testing.T) {
	cartRepo := new(mockCartRepository)
	productRepo := new(mockProductRepository)
	svc := newTestCartService(cartRepo, productRepo)
	ctx := context.Background()

	productRepo.On("GetByID", ctx, "p-1").Return(storeProduct(), nil)

	_, err := svc.AddItem(ctx, "u-1", "other-store", "p-1", 1)

	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	cartRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestAddItem_OutOfStock(t *testing.T) {
	cartRepo := new(mockCartRepository)
	productRepo := new(mockProductRepository)
	svc := newTestCartService(cartRepo, productRepo)
	ctx := context.Background()

	p := storeProduct()
	p.StockQty = 0
	productRepo.On("GetByID", ctx, "p-1").Return(p, nil)

	_, err := svc.AddItem(ctx, "u-1", "s-1", "p-1", 1)

	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestUpdateItemQuantity_ZeroRemovesLine(t *testing.T) {
	cartRepo := new(mockCartRepository)
	svc := newTestCartService(cartRepo, new(mockProductRepository))
	ctx := context.Background()

	existing := &domain.Cart{
		UserID:  "u-1",
		StoreID: "s-1",
		Items:   []domain.CartItem{{ProductID: "p-1", Price: 1200, Quantity: 2}},
	}
	cartRepo.On("Get", ctx, "u-1", "s-1").Return(existing, nil)
	cartRepo.On("Save", ctx, mock.AnythingOfType("*domain.Cart")).Return(nil)

	cart, err := svc.UpdateItemQuantity(ctx, "u-1", "s-1", "p-1", 0)

	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestUpdateItemQuantity_UnknownLine(t *testing.T) {
	cartRepo := new(mockCartRepository)
	svc := newTestCartService(cartRepo, new(mockProductRepository))
	ctx := context.Background()

	cartRepo.On("Get", ctx, "u-1", "s-1").Return(nil, apperrors.ErrNotFound)

	_, err := svc.UpdateItemQuantity(ctx, "u-1", "s-1", "p-404", 1)

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
