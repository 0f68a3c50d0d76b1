package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/zeel68/YouliteBackend/internal/domain"
	"github.com/zeel68/YouliteBackend/internal/provider"
	apperrors "github.com/zeel68/YouliteBackend/pkg/errors"
)

type paymentTestFixture struct {
	paymentRepo *mockPaymentRepository
	orderRepo   *mockOrderRepository
	provider    *scriptedProvider
	svc         *PaymentService
}

func newPaymentTestFixture(prov *scriptedProvider) *paymentTestFixture {
	paymentRepo := new(mockPaymentRepository)
	orderRepo := new(mockOrderRepository)
	return &paymentTestFixture{
		paymentRepo: paymentRepo,
		orderRepo:   orderRepo,
		provider:    prov,
		svc:         NewPaymentService(paymentRepo, orderRepo, prov, newTestEventProducer(), newTestLogger()),
	}
}

func pendingOrder() *domain.Order {
	return &domain.Order{
		ID:          "o-1",
		OrderNumber: "ORD-20260828-000001",
		UserID:      "u-1",
		StoreID:     "s-1",
		Status:      domain.OrderStatusPending,
		TotalAmount: 3700,
		Currency:    "USD",
	}
}

func TestChargeOrder_SuccessConfirmsOrder(t *testing.T) {
	f := newPaymentTestFixture(&scriptedProvider{
		chargeResult: &provider.ChargeResult{Status: "succeeded", ProviderPaymentID: "pay_123"},
	})
	ctx := context.Background()

	f.orderRepo.On("GetByID", ctx, "o-1").Return(pendingOrder(), nil)
	f.paymentRepo.On("GetByOrderID", ctx, "o-1").Return(nil, apperrors.ErrNotFound)
	f.paymentRepo.On("Create", ctx, mock.AnythingOfType("*domain.Payment")).Return(nil)
	f.paymentRepo.On("UpdateStatus", ctx, mock.AnythingOfType("string"), domain.PaymentStatusSucceeded, "pay_123", "").Return(nil)
	f.orderRepo.On("UpdateStatus", ctx, "o-1", domain.OrderStatusConfirmed, "").Return(nil)

	payment, err := f.svc.ChargeOrder(ctx, "o-1", "u-1")

	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusSucceeded, payment.Status)
	assert.Equal(t, "pay_123", payment.ProviderPayID)
	assert.Equal(t, int64(3700), payment.Amount)
	f.paymentRepo.AssertExpectations(t)
	f.orderRepo.AssertExpectations(t)
}

func TestChargeOrder_ProviderDecline(t *testing.T) {
	f := newPaymentTestFixture(&scriptedProvider{
		chargeResult: &provider.ChargeResult{Status: "failed", FailureReason: "card declined"},
	})
	ctx := context.Background()

	f.orderRepo.On("GetByID", ctx, "o-1").Return(pendingOrder(), nil)
	f.paymentRepo.On("GetByOrderID", ctx, "o-1").Return(nil, apperrors.ErrNotFound)
	f.paymentRepo.On("Create", ctx, mock.AnythingOfType("*domain.Payment")).Return(nil)
	f.paymentRepo.On("UpdateStatus", ctx, mock.AnythingOfType("string"), domain.PaymentStatusFailed, "", "card declined").Return(nil)

	payment, err := f.svc.ChargeOrder(ctx, "o-1", "u-1")

	assert.ErrorIs(t, err, apperrors.ErrPaymentFailed)
	require.NotNil(t, payment)
	assert.Equal(t, domain.PaymentStatusFailed, payment.Status)
	assert.Equal(t, "card declined", payment.FailureReason)
	f.orderRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestChargeOrder_ProviderUnavailable(t *testing.T) {
	f := newPaymentTestFixture(&scriptedProvider{chargeErr: errors.New("connection refused")})
	ctx := context.Background()

	f.orderRepo.On("GetByID", ctx, "o-1").Return(pendingOrder(), nil)
	f.paymentRepo.On("GetByOrderID", ctx, "o-1").Return(nil, apperrors.ErrNotFound)
	f.paymentRepo.On("Create", ctx, mock.AnythingOfType("*domain.Payment")).Return(nil)
	f.paymentRepo.On("UpdateStatus", ctx, mock.AnythingOfType("string"), domain.PaymentStatusFailed, "", "connection refused").Return(nil)

	_, err := f.svc.ChargeOrder(ctx, "o-1", "u-1")

	assert.ErrorIs(t, err, apperrors.ErrPaymentFailed)
}

func TestChargeOrder_NotOwner(t *testing.T) {
	f := newPaymentTestFixture(&scriptedProvider{})
	ctx := context.Background()

	f.orderRepo.On("GetByID", ctx, "o-1").Return(pendingOrder(), nil)

	_, err := f.svc.ChargeOrder(ctx, "o-1", "u-2")

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	f.paymentRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestChargeOrder_NonPendingOrder(t *testing.T) {
	f := newPaymentTestFixture(&scriptedProvider{})
	ctx := context.Background()

	order := pendingOrder()
	order.Status = domain.OrderStatusConfirmed
	f.orderRepo.On("GetByID", ctx, "o-1").Return(order, nil)

	_, err := f.svc.ChargeOrder(ctx, "o-1", "u-1")

	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestChargeOrder_AlreadyPaid(t *testing.T) {
	f := newPaymentTestFixture(&scriptedProvider{})
	ctx := context.Background()

	f.orderRepo.On("GetByID", ctx, "o-1").Return(pendingOrder(), nil)
	f.paymentRepo.On("GetByOrderID", ctx, "o-1").Return(&domain.Payment{
		ID: "pm-1", OrderID: "o-1", Status: domain.PaymentStatusSucceeded,
	}, nil)

	_, err := f.svc.ChargeOrder(ctx, "o-1", "u-1")

	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	f.paymentRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestChargeOrder_RetryAfterFailedAttempt(t *testing.T) {
	f := newPaymentTestFixture(&scriptedProvider{
		chargeResult: &provider.ChargeResult{Status: "succeeded", ProviderPaymentID: "pay_456"},
	})
	ctx := context.Background()

	f.orderRepo.On("GetByID", ctx, "o-1").Return(pendingOrder(), nil)
	f.paymentRepo.On("GetByOrderID", ctx, "o-1").Return(&domain.Payment{
		ID: "pm-1", OrderID: "o-1", Status: domain.PaymentStatusFailed,
	}, nil)
	f.paymentRepo.On("Create", ctx, mock.AnythingOfType("*domain.Payment")).Return(nil)
	f.paymentRepo.On("UpdateStatus", ctx, mock.AnythingOfType("string"), domain.PaymentStatusSucceeded, "pay_456", "").Return(nil)
	f.orderRepo.On("UpdateStatus", ctx, "o-1", domain.OrderStatusConfirmed, "").Return(nil)

	payment, err := f.svc.ChargeOrder(ctx, "o-1", "u-1")

	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusSucceeded, payment.Status)
}

func TestRefundPayment_Success(t *testing.T) {
	f := newPaymentTestFixture(&scriptedProvider{
		refundResult: &provider.RefundResult{Status: "succeeded", ProviderRefundID: "ref_123"},
	})
	ctx := context.Background()

	payment := &domain.Payment{
		ID:            "pm-1",
		OrderID:       "o-1",
		Status:        domain.PaymentStatusSucceeded,
		ProviderPayID: "pay_123",
		Amount:        3700,
		Currency:      "USD",
	}
	f.paymentRepo.On("GetByID", ctx, "pm-1").Return(payment, nil)
	f.paymentRepo.On("UpdateStatus", ctx, "pm-1", domain.PaymentStatusRefunded, "pay_123", "").Return(nil)
	f.orderRepo.On("UpdateStatus", ctx, "o-1", domain.OrderStatusRefunded, "damaged item").Return(nil)

	refunded, err := f.svc.RefundPayment(ctx, "pm-1", "damaged item")

	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusRefunded, refunded.Status)
	f.orderRepo.AssertExpectations(t)
}

func TestRefundPayment_OnlyFromSucceeded(t *testing.T) {
	f := newPaymentTestFixture(&scriptedProvider{})
	ctx := context.Background()

	for _, status := range []string{domain.PaymentStatusPending, domain.PaymentStatusFailed, domain.PaymentStatusRefunded} {
		paymentRepo := new(mockPaymentRepository)
		svc := NewPaymentService(paymentRepo, f.orderRepo, f.provider, newTestEventProducer(), newTestLogger())
		paymentRepo.On("GetByID", ctx, "pm-1").Return(&domain.Payment{ID: "pm-1", Status: status}, nil)

		_, err := svc.RefundPayment(ctx, "pm-1", "reason")

		assert.ErrorIs(t, err, apperrors.ErrInvalidInput, "status %s", status)
	}
}
