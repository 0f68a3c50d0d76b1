package service

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/zeel68/YouliteBackend/internal/domain"
	"github.com/zeel68/YouliteBackend/internal/event"
	"github.com/zeel68/YouliteBackend/internal/repository"
	apperrors "github.com/zeel68/YouliteBackend/pkg/errors"
	"github.com/zeel68/YouliteBackend/pkg/pagination"
)

// OrderService implements the business logic for order placement and
// lifecycle management.
type OrderService struct {
	orderRepo  repository.OrderRepository
	cartSvc    *CartService
	productSvc *ProductService
	producer   *event.Producer
	logger     *slog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(
	orderRepo repository.OrderRepository,
	cartSvc *CartService,
	productSvc *ProductService,
	producer *event.Producer,
	logger *slog.Logger,
) *OrderService {
	return &OrderService{
		orderRepo:  orderRepo,
		cartSvc:    cartSvc,
		productSvc: productSvc,
		producer:   producer,
		logger:     logger,
	}
}

// PlaceOrderInput holds the parameters for placing an order from the cart.
type PlaceOrderInput struct {
	ShippingAddress *domain.Address
	ShippingAmount  int64
	Notes           string
}

// PlaceOrder converts the user's cart into a pending order, reserving stock
// for each line and clearing the cart.
func (s *OrderService) PlaceOrder(ctx context.Context, userID, storeID string, input PlaceOrderInput) (*domain.Order, error) {
	cart, err := s.cartSvc.GetCart(ctx, userID, storeID)
	if err != nil {
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, apperrors.InvalidInput("cart is empty")
	}
	if input.ShippingAddress == nil {
		return nil, apperrors.InvalidInput("shipping address is required")
	}

	// Reserve stock line by line, releasing on partial failure.
	var reserved []domain.CartItem
	for _, item := range cart.Items {
		if err := s.productSvc.ReserveStock(ctx, item.ProductID, item.Quantity); err != nil {
			for _, r := range reserved {
				if relErr := s.productSvc.ReleaseStock(ctx, r.ProductID, r.Quantity); relErr != nil {
					s.logger.ErrorContext(ctx, "failed to release stock after order failure",
						slog.String("product_id", r.ProductID),
						slog.String("error", relErr.Error()),
					)
				}
			}
			return nil, err
		}
		reserved = append(reserved, item)
	}

	now := time.Now().UTC()
	items := make([]domain.OrderItem, 0, len(cart.Items))
	for _, it := range cart.Items {
		items = append(items, domain.OrderItem{
			ProductID: it.ProductID,
			Name:      it.Name,
			Price:     it.Price,
			Quantity:  it.Quantity,
		})
	}

	subtotal := cart.TotalAmount()
	order := &domain.Order{
		ID:              uuid.New().String(),
		OrderNumber:     generateOrderNumber(now),
		UserID:          userID,
		StoreID:         storeID,
		Status:          domain.OrderStatusPending,
		Items:           items,
		SubtotalAmount:  subtotal,
		ShippingAmount:  input.ShippingAmount,
		TotalAmount:     subtotal + input.ShippingAmount,
		Currency:        cart.Currency,
		ShippingAddress: input.ShippingAddress,
		Notes:           input.Notes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if order.Currency == "" {
		order.Currency = "USD"
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		for _, r := range reserved {
			if relErr := s.productSvc.ReleaseStock(ctx, r.ProductID, r.Quantity); relErr != nil {
				s.logger.ErrorContext(ctx, "failed to release stock after order failure",
					slog.String("product_id", r.ProductID),
					slog.String("error", relErr.Error()),
				)
			}
		}
		return nil, fmt.Errorf("create order: %w", err)
	}

	if err := s.cartSvc.ClearCart(ctx, userID, storeID); err != nil {
		s.logger.ErrorContext(ctx, "failed to clear cart after order",
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
	}

	// Publish order placed event (non-blocking on failure).
	if err := s.producer.PublishOrderPlaced(ctx, order); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish order.placed event",
			slog.String("order_id", order.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "order placed",
		slog.String("order_id", order.ID),
		slog.String("order_number", order.OrderNumber),
		slog.Int64("total", order.TotalAmount),
	)

	return order, nil
}

// GetOrder retrieves an order, restricted to its owner unless ownerOnly is
// false (store staff paths).
func (s *OrderService) GetOrder(ctx context.Context, orderID, userID string, ownerOnly bool) (*domain.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	if ownerOnly && order.UserID != userID {
		return nil, apperrors.ErrNotFound
	}
	return order, nil
}

// ListUserOrders returns a user's orders page by page.
func (s *OrderService) ListUserOrders(ctx context.Context, userID string, params pagination.Params) (*pagination.Result[domain.Order], error) {
	orders, total, err := s.orderRepo.ListByUser(ctx, userID, params)
	if err != nil {
		return nil, fmt.Errorf("list user orders: %w", err)
	}
	return pagination.NewResult(orders, total, params), nil
}

// ListStoreOrders returns a store's orders page by page. An empty status
// means all statuses.
func (s *OrderService) ListStoreOrders(ctx context.Context, storeID, status string, params pagination.Params) (*pagination.Result[domain.Order], error) {
	if status != "" && !domain.IsValidOrderStatus(status) {
		return nil, apperrors.InvalidInput(fmt.Sprintf("unknown order status %q", status))
	}

	orders, total, err := s.orderRepo.ListByStore(ctx, storeID, status, params)
	if err != nil {
		return nil, fmt.Errorf("list store orders: %w", err)
	}
	return pagination.NewResult(orders, total, params), nil
}

// ListAllOrders returns orders across all stores page by page. An empty
// status means all statuses.
func (s *OrderService) ListAllOrders(ctx context.Context, status string, params pagination.Params) (*pagination.Result[domain.Order], error) {
	if status != "" && !domain.IsValidOrderStatus(status) {
		return nil, apperrors.InvalidInput(fmt.Sprintf("unknown order status %q", status))
	}

	orders, total, err := s.orderRepo.ListAll(ctx, status, params)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return pagination.NewResult(orders, total, params), nil
}

// UpdateOrderStatus moves an order along its lifecycle, enforcing the
// transition table. Canceling releases reserved stock.
func (s *OrderService) UpdateOrderStatus(ctx context.Context, orderID, status, reason string) (*domain.Order, error) {
	if !domain.IsValidOrderStatus(status) {
		return nil, apperrors.InvalidInput(fmt.Sprintf("unknown order status %q", status))
	}

	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("get order for status update: %w", err)
	}

	if !order.CanTransitionTo(status) {
		return nil, apperrors.InvalidInput(fmt.Sprintf("cannot transition order from %q to %q", order.Status, status))
	}

	if err := s.orderRepo.UpdateStatus(ctx, orderID, status, reason); err != nil {
		return nil, fmt.Errorf("update order status: %w", err)
	}

	if status == domain.OrderStatusCanceled {
		for _, item := range order.Items {
			if err := s.productSvc.ReleaseStock(ctx, item.ProductID, item.Quantity); err != nil {
				s.logger.ErrorContext(ctx, "failed to release stock after cancel",
					slog.String("product_id", item.ProductID),
					slog.String("error", err.Error()),
				)
			}
		}
	}

	order.Status = status
	order.CanceledReason = reason

	// Publish status event (non-blocking on failure).
	if err := s.producer.PublishOrderStatusChanged(ctx, orderID, status, reason); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish order.status_changed event",
			slog.String("order_id", orderID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "order status updated",
		slog.String("order_id", orderID),
		slog.String("status", status),
	)

	return order, nil
}

// generateOrderNumber builds a human-readable order number: date plus a
// random suffix. Collisions are caught by the unique index.
func generateOrderNumber(now time.Time) string {
	return fmt.Sprintf("ORD-%s-%06d", now.Format("20060102"), rand.Intn(1000000))
}
