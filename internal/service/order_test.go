package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/zeel68/YouliteBackend/internal/domain"
	apperrors "github.com/zeel68/YouliteBackend/pkg/errors"
	"github.com/zeel68/YouliteBackend/pkg/pagination"
)

type orderTestFixture struct {
	orderRepo   *mockOrderRepository
	cartRepo    *mockCartRepository
	productRepo *mockProductRepository
	svc         *OrderService
}

func newOrderTestFixture() *orderTestFixture {
	orderRepo := new(mockOrderRepository)
	cartRepo := new(mockCartRepository)
	productRepo := new(mockProductRepository)

	logger := newTestLogger()
	producer := newTestEventProducer()
	cartSvc := NewCartService(cartRepo, productRepo, logger)
	productSvc := NewProductService(productRepo, producer, logger)

	return &orderTestFixture{
		orderRepo:   orderRepo,
		cartRepo:    cartRepo,
		productRepo: productRepo,
		svc:         NewOrderService(orderRepo, cartSvc, productSvc, producer, logger),
	}
}

func healthyProduct(id string) *domain.Product {
	return &domain.Product{ID: id, StoreID: "s-1", Name: "Product " + id, Price: 1000, StockQty: 50, IsActive: true}
}

func shippingAddress() *domain.Address {
	return &domain.Address{
		FullName:    "Dana Ray",
		AddressLine: "1 Main St",
		City:        "Springfield",
		PostalCode:  "12345",
		Country:     "US",
	}
}

func TestPlaceOrder_Success(t *testing.T) {
	f := newOrderTestFixture()
	ctx := context.Background()

	cart := &domain.Cart{
		UserID:  "u-1",
		StoreID: "s-1",
		Items: []domain.CartItem{
			{ProductID: "p-1", Name: "Ceramic Mug", Price: 1200, Quantity: 2},
			{ProductID: "p-2", Name: "Tea Towel", Price: 800, Quantity: 1},
		},
	}
	f.cartRepo.On("Get", ctx, "u-1", "s-1").Return(cart, nil)
	f.productRepo.On("AdjustStock", ctx, "p-1", -2).Return(nil)
	f.productRepo.On("AdjustStock", ctx, "p-2", -1).Return(nil)
	f.productRepo.On("GetByID", ctx, "p-1").Return(healthyProduct("p-1"), nil)
	f.productRepo.On("GetByID", ctx, "p-2").Return(healthyProduct("p-2"), nil)

	var created *domain.Order
	f.orderRepo.On("Create", ctx, mock.AnythingOfType("*domain.Order")).
		Run(func(args mock.Arguments) { created = args.Get(1).(*domain.Order) }).
		Return(nil)
	f.cartRepo.On("Delete", ctx, "u-1", "s-1").Return(nil)

	order, err := f.svc.PlaceOrder(ctx, "u-1", "s-1", PlaceOrderInput{
		ShippingAddress: shippingAddress(),
		ShippingAmount:  500,
	})

	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, domain.OrderStatusPending, order.Status)
	assert.Equal(t, int64(3200), order.SubtotalAmount)
	assert.Equal(t, int64(3700), order.TotalAmount)
	assert.Equal(t, "USD", order.Currency)
	assert.True(t, strings.HasPrefix(order.OrderNumber, "ORD-"))
	assert.Len(t, order.Items, 2)
	f.orderRepo.AssertExpectations(t)
	f.cartRepo.AssertExpectations(t)
}

func TestPlaceOrder_EmptyCart(t *testing.T) {
	f := newOrderTestFixture()
	ctx := context.Background()

	f.cartRepo.On("Get", ctx, "u-1", "s-1").Return(nil, apperrors.ErrNotFound)

	_, err := f.svc.PlaceOrder(ctx, "u-1", "s-1", PlaceOrderInput{ShippingAddress: shippingAddress()})

	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	f.orderRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestPlaceOrder_MissingShippingAddress(t *testing.T) {
	f := newOrderTestFixture()
	ctx := context.Background()

	cart := &domain.Cart{
		UserID:  "u-1",
		StoreID: "s-1",
		Items:   []domain.CartItem{{ProductID: "p-1", Price: 1200, Quantity: 1}},
	}
	f.cartRepo.On("Get", ctx, "u-1", "s-1").Return(cart, nil)

	_, err := f.svc.PlaceOrder(ctx, "u-1", "s-1", PlaceOrderInput{})

	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestPlaceOrder_ReleasesStockWhenLaterLineFails(t *testing.T) {
	f := newOrderTestFixture()
	ctx := context.Background()

	cart := &domain.Cart{
		UserID:  "u-1",
		StoreID: "s-1",
		Items: []domain.CartItem{
			{ProductID: "p-1", Price: 1200, Quantity: 2},
			{ProductID: "p-2", Price: 800, Quantity: 5},
		},
	}
	f.cartRepo.On("Get", ctx, "u-1", "s-1").Return(cart, nil)
	f.productRepo.On("AdjustStock", ctx, "p-1", -2).Return(nil)
	f.productRepo.On("GetByID", ctx, "p-1").Return(healthyProduct("p-1"), nil)
	f.productRepo.On("AdjustStock", ctx, "p-2", -5).Return(apperrors.InvalidInput("insufficient stock"))
	f.productRepo.On("AdjustStock", ctx, "p-1", 2).Return(nil)

	_, err := f.svc.PlaceOrder(ctx, "u-1", "s-1", PlaceOrderInput{ShippingAddress: shippingAddress()})

	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	f.productRepo.AssertCalled(t, "AdjustStock", ctx, "p-1", 2)
	f.orderRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestGetOrder_OwnerOnlyHidesForeignOrders(t *testing.T) {
	f := newOrderTestFixture()
	ctx := context.Background()

	order := &domain.Order{ID: "o-1", UserID: "u-1", StoreID: "s-1", Status: domain.OrderStatusPending}
	f.orderRepo.On("GetByID", ctx, "o-1").Return(order, nil)

	_, err := f.svc.GetOrder(ctx, "o-1", "u-2", true)

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestUpdateOrderStatus_ValidTransition(t *testing.T) {
	f := newOrderTestFixture()
	ctx := context.Background()

	order := &domain.Order{ID: "o-1", UserID: "u-1", StoreID: "s-1", Status: domain.OrderStatusPending}
	f.orderRepo.On("GetByID", ctx, "o-1").Return(order, nil)
	f.orderRepo.On("UpdateStatus", ctx, "o-1", domain.OrderStatusConfirmed, "").Return(nil)

	updated, err := f.svc.UpdateOrderStatus(ctx, "o-1", domain.OrderStatusConfirmed, "")

	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusConfirmed, updated.Status)
	f.productRepo.AssertNotCalled(t, "AdjustStock", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateOrderStatus_InvalidTransition(t *testing.T) {
	f := newOrderTestFixture()
	ctx := context.Background()

	order := &domain.Order{ID: "o-1", Status: domain.OrderStatusDelivered}
	f.orderRepo.On("GetByID", ctx, "o-1").Return(order, nil)

	_, err := f.svc.UpdateOrderStatus(ctx, "o-1", domain.OrderStatusShipped, "")

	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	f.orderRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateOrderStatus_UnknownStatus(t *testing.T) {
	f := newOrderTestFixture()

	_, err := f.svc.UpdateOrderStatus(context.Background(), "o-1", "archived", "")

	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestUpdateOrderStatus_CancelReleasesStock(t *testing.T) {
	f := newOrderTestFixture()
	ctx := context.Background()

	order := &domain.Order{
		ID:      "o-1",
		Status:  domain.OrderStatusPending,
		Items:   []domain.OrderItem{{ProductID: "p-1", Quantity: 2}, {ProductID: "p-2", Quantity: 1}},
		StoreID: "s-1",
	}
	f.orderRepo.On("GetByID", ctx, "o-1").Return(order, nil)
	f.orderRepo.On("UpdateStatus", ctx, "o-1", domain.OrderStatusCanceled, "customer request").Return(nil)
	f.productRepo.On("AdjustStock", ctx, "p-1", 2).Return(nil)
	f.productRepo.On("AdjustStock", ctx, "p-2", 1).Return(nil)

	updated, err := f.svc.UpdateOrderStatus(ctx, "o-1", domain.OrderStatusCanceled, "customer request")

	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusCanceled, updated.Status)
	assert.Equal(t, "customer request", updated.CanceledReason)
	f.productRepo.AssertExpectations(t)
}

func TestListStoreOrders_StatusFilter(t *testing.T) {
	f := newOrderTestFixture()
	params := pagination.DefaultParams()

	f.orderRepo.On("ListByStore", mock.Anything, "s-1", domain.OrderStatusShipped, params).
		Return([]domain.Order{{ID: "o-1", StoreID: "s-1", Status: domain.OrderStatusShipped}}, 1, nil)

	result, err := f.svc.ListStoreOrders(context.Background(), "s-1", domain.OrderStatusShipped, params)
	require.NoError(t, err)
	assert.Equal(t, 1, result.TotalCount)
	assert.Len(t, result.Data, 1)
}

func TestListStoreOrders_UnknownStatusRejected(t *testing.T) {
	f := newOrderTestFixture()

	_, err := f.svc.ListStoreOrders(context.Background(), "s-1", "teleported", pagination.DefaultParams())
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	f.orderRepo.AssertNotCalled(t, "ListByStore", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestListAllOrders_CrossStore(t *testing.T) {
	f := newOrderTestFixture()
	params := pagination.DefaultParams()

	f.orderRepo.On("ListAll", mock.Anything, "", params).
		Return([]domain.Order{
			{ID: "o-1", StoreID: "s-1"},
			{ID: "o-2", StoreID: "s-2"},
		}, 2, nil)

	result, err := f.svc.ListAllOrders(context.Background(), "", params)
	require.NoError(t, err)
	assert.Equal(t, 2, result.TotalCount)
}
