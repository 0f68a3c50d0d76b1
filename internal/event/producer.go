package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/zeel68/YouliteBackend/internal/domain"
	pkgkafka "github.com/zeel68/YouliteBackend/pkg/kafka"
)

// Kafka topic constants for domain events.
const (
	TopicUserRegistered = "youlite.user.registered"
	TopicOrderPlaced    = "youlite.order.placed"
	TopicOrderStatus    = "youlite.order.status_changed"
	TopicPaymentSettled = "youlite.payment.settled"
	TopicLowStockAlert  = "youlite.inventory.low_stock"
)

// Aggregate type constants.
const (
	AggregateTypeUser    = "user"
	AggregateTypeOrder   = "order"
	AggregateTypePayment = "payment"
	AggregateTypeProduct = "product"
)

// Source identifier for events originating from this backend.
const Source = "youlite-backend"

// UserRegisteredData is the payload for a user.registered event.
type UserRegisteredData struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// OrderPlacedData is the payload for an order.placed event.
type OrderPlacedData struct {
	ID          string `json:"id"`
	OrderNumber string `json:"order_number"`
	UserID      string `json:"user_id"`
	StoreID     string `json:"store_id"`
	TotalAmount int64  `json:"total_amount"`
	Currency    string `json:"currency"`
	ItemCount   int    `json:"item_count"`
}

// OrderStatusData is the payload for an order.status_changed event.
type OrderStatusData struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
}

// PaymentSettledData is the payload for a payment.settled event, covering
// both successful and failed outcomes.
type PaymentSettledData struct {
	ID            string `json:"id"`
	OrderID       string `json:"order_id"`
	Amount        int64  `json:"amount"`
	Currency      string `json:"currency"`
	Status        string `json:"status"`
	FailureReason string `json:"failure_reason,omitempty"`
}

// LowStockData is the payload for an inventory.low_stock event.
type LowStockData struct {
	ProductID string `json:"product_id"`
	StoreID   string `json:"store_id"`
	StockQty  int    `json:"stock_quantity"`
}

// Producer publishes domain events to Kafka. Publish failures are logged by
// callers and never fail the originating request.
type Producer struct {
	kafka  *pkgkafka.Producer
	logger *slog.Logger
}

// NewProducer creates a new event producer.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

// PublishUserRegistered publishes a user.registered event.
func (p *Producer) PublishUserRegistered(ctx context.Context, user *domain.User) error {
	data := UserRegisteredData{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
	}

	return p.publish(ctx, TopicUserRegistered, user.ID, AggregateTypeUser, data)
}

// PublishOrderPlaced publishes an order.placed event.
func (p *Producer) PublishOrderPlaced(ctx context.Context, order *domain.Order) error {
	data := OrderPlacedData{
		ID:          order.ID,
		OrderNumber: order.OrderNumber,
		UserID:      order.UserID,
		StoreID:     order.StoreID,
		TotalAmount: order.TotalAmount,
		Currency:    order.Currency,
		ItemCount:   len(order.Items),
	}

	return p.publish(ctx, TopicOrderPlaced, order.ID, AggregateTypeOrder, data)
}

// PublishOrderStatusChanged publishes an order.status_changed event.
func (p *Producer) PublishOrderStatusChanged(ctx context.Context, orderID, status, reason string) error {
	data := OrderStatusData{ID: orderID, Status: status, Reason: reason}

	return p.publish(ctx, TopicOrderStatus, orderID, AggregateTypeOrder, data)
}

// PublishPaymentSettled publishes a payment.settled event.
func (p *Producer) PublishPaymentSettled(ctx context.Context, payment *domain.Payment) error {
	data := PaymentSettledData{
		ID:            payment.ID,
		OrderID:       payment.OrderID,
		Amount:        payment.Amount,
		Currency:      payment.Currency,
		Status:        payment.Status,
		FailureReason: payment.FailureReason,
	}

	return p.publish(ctx, TopicPaymentSettled, payment.ID, AggregateTypePayment, data)
}

// PublishLowStock publishes an inventory.low_stock event.
func (p *Producer) PublishLowStock(ctx context.Context, product *domain.Product) error {
	data := LowStockData{
		ProductID: product.ID,
		StoreID:   product.StoreID,
		StockQty:  product.StockQty,
	}

	return p.publish(ctx, TopicLowStockAlert, product.ID, AggregateTypeProduct, data)
}

func (p *Producer) publish(ctx context.Context, topic, aggregateID, aggregateType string, data any) error {
	event, err := pkgkafka.NewEvent(topic, aggregateID, aggregateType, Source, data)
	if err != nil {
		return fmt.Errorf("create %s event: %w", topic, err)
	}

	if err := p.kafka.Publish(ctx, topic, event); err != nil {
		return fmt.Errorf("publish %s event: %w", topic, err)
	}

	p.logger.DebugContext(ctx, "published event",
		slog.String("topic", topic),
		slog.String("aggregate_id", aggregateID),
	)

	return nil
}
