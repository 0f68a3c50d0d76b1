package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/zeel68/YouliteBackend/internal/domain"
	"github.com/zeel68/YouliteBackend/internal/event"
	"github.com/zeel68/YouliteBackend/internal/provider"
	"github.com/zeel68/YouliteBackend/internal/repository"
	apperrors "github.com/zeel68/YouliteBackend/pkg/errors"
)

// PaymentService implements the business logic for charging and refunding
// orders through a payment provider.
type PaymentService struct {
	paymentRepo repository.PaymentRepository
	orderRepo   repository.OrderRepository
	provider    provider.Provider
	producer    *event.Producer
	logger      *slog.Logger
}

// NewPaymentService creates a new payment service.
func NewPaymentService(
	paymentRepo repository.PaymentRepository,
	orderRepo repository.OrderRepository,
	prov provider.Provider,
	producer *event.Producer,
	logger *slog.Logger,
) *PaymentService {
	return &PaymentService{
		paymentRepo: paymentRepo,
		orderRepo:   orderRepo,
		provider:    prov,
		producer:    producer,
		logger:      logger,
	}
}

// ChargeOrder charges a pending order for its full amount. On success the
// order is confirmed; on provider failure the payment is recorded as failed
// and an error is returned.
func (s *PaymentService) ChargeOrder(ctx context.Context, orderID, userID string) (*domain.Payment, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("get order for payment: %w", err)
	}
	if order.UserID != userID {
		return nil, apperrors.ErrNotFound
	}
	if order.Status != domain.OrderStatusPending {
		return nil, apperrors.InvalidInput(fmt.Sprintf("order in status %q cannot be charged", order.Status))
	}

	// One payment per order.
	if existing, err := s.paymentRepo.GetByOrderID(ctx, orderID); err == nil {
		if existing.Status == domain.PaymentStatusSucceeded {
			return nil, apperrors.InvalidInput("order is already paid")
		}
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("check existing payment: %w", err)
	}

	now := time.Now().UTC()
	payment := &domain.Payment{
		ID:           uuid.New().String(),
		OrderID:      order.ID,
		UserID:       order.UserID,
		StoreID:      order.StoreID,
		Amount:       order.TotalAmount,
		Currency:     order.Currency,
		Status:       domain.PaymentStatusPending,
		ProviderName: s.provider.Name(),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, fmt.Errorf("create payment: %w", err)
	}

	result, err := s.provider.Charge(ctx, &provider.ChargeInput{
		Amount:      payment.Amount,
		Currency:    payment.Currency,
		Description: "order " + order.OrderNumber,
		Metadata:    map[string]any{"order_id": order.ID},
	})
	if err != nil {
		s.settle(ctx, payment, domain.PaymentStatusFailed, "", err.Error())
		return nil, apperrors.PaymentFailed("payment provider unavailable")
	}

	if result.Status != "succeeded" {
		s.settle(ctx, payment, domain.PaymentStatusFailed, result.ProviderPaymentID, result.FailureReason)
		return payment, apperrors.PaymentFailed(result.FailureReason)
	}

	s.settle(ctx, payment, domain.PaymentStatusSucceeded, result.ProviderPaymentID, "")

	if err := s.orderRepo.UpdateStatus(ctx, order.ID, domain.OrderStatusConfirmed, ""); err != nil {
		s.logger.ErrorContext(ctx, "failed to confirm order after payment",
			slog.String("order_id", order.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "order charged",
		slog.String("payment_id", payment.ID),
		slog.String("order_id", order.ID),
		slog.Int64("amount", payment.Amount),
	)

	return payment, nil
}

// RefundPayment refunds a succeeded payment in full.
func (s *PaymentService) RefundPayment(ctx context.Context, paymentID, reason string) (*domain.Payment, error) {
	payment, err := s.paymentRepo.GetByID(ctx, paymentID)
	if err != nil {
		return nil, fmt.Errorf("get payment for refund: %w", err)
	}

	if !payment.CanTransitionTo(domain.PaymentStatusRefunded) {
		return nil, apperrors.InvalidInput(fmt.Sprintf("payment in status %q cannot be refunded", payment.Status))
	}

	result, err := s.provider.Refund(ctx, &provider.RefundInput{
		ProviderPaymentID: payment.ProviderPayID,
		Amount:            payment.Amount,
		Currency:          payment.Currency,
		Reason:            reason,
	})
	if err != nil {
		return nil, apperrors.PaymentFailed("refund provider unavailable")
	}
	if result.Status != "succeeded" {
		return nil, apperrors.PaymentFailed(result.FailureReason)
	}

	s.settle(ctx, payment, domain.PaymentStatusRefunded, payment.ProviderPayID, "")

	if err := s.orderRepo.UpdateStatus(ctx, payment.OrderID, domain.OrderStatusRefunded, reason); err != nil {
		s.logger.ErrorContext(ctx, "failed to mark order refunded",
			slog.String("order_id", payment.OrderID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "payment refunded",
		slog.String("payment_id", payment.ID),
	)

	return payment, nil
}

// GetPayment retrieves a payment by ID.
func (s *PaymentService) GetPayment(ctx context.Context, id string) (*domain.Payment, error) {
	payment, err := s.paymentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get payment: %w", err)
	}
	return payment, nil
}

// GetOrderPayment retrieves the payment for an order.
func (s *PaymentService) GetOrderPayment(ctx context.Context, orderID string) (*domain.Payment, error) {
	payment, err := s.paymentRepo.GetByOrderID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("get order payment: %w", err)
	}
	return payment, nil
}

// settle records the payment outcome and publishes the settled event.
func (s *PaymentService) settle(ctx context.Context, payment *domain.Payment, status, providerPayID, failureReason string) {
	if err := s.paymentRepo.UpdateStatus(ctx, payment.ID, status, providerPayID, failureReason); err != nil {
		s.logger.ErrorContext(ctx, "failed to update payment status",
			slog.String("payment_id", payment.ID),
			slog.String("status", status),
			slog.String("error", err.Error()),
		)
	}

	payment.Status = status
	payment.ProviderPayID = providerPayID
	payment.FailureReason = failureReason

	if err := s.producer.PublishPaymentSettled(ctx, payment); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish payment.settled event",
			slog.String("payment_id", payment.ID),
			slog.String("error", err.Error()),
		)
	}
}
