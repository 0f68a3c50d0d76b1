package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/zeel68/YouliteBackend/internal/domain"
	apperrors "github.com/zeel68/YouliteBackend/pkg/errors"
)

// PaymentRepository implements repository.PaymentRepository using PostgreSQL.
type PaymentRepository struct {
	db DB
}

// NewPaymentRepository creates a new PostgreSQL-backed payment repository.
func NewPaymentRepository(db DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

const paymentColumns = `id, order_id, user_id, store_id, amount, currency, status, provider_name, provider_payment_id, failure_reason, created_at, updated_at`

// Create inserts a new payment record.
func (r *PaymentRepository) Create(ctx context.Context, p *domain.Payment) error {
	query := `
		INSERT INTO payments (id, order_id, user_id, store_id, amount, currency, status, provider_name, provider_payment_id, failure_reason, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := r.db.Exec(ctx, query,
		p.ID,
		p.OrderID,
		p.UserID,
		p.StoreID,
		p.Amount,
		p.Currency,
		p.Status,
		p.ProviderName,
		p.ProviderPayID,
		p.FailureReason,
		p.CreatedAt,
		p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.AlreadyExists("payment", "order_id", p.OrderID)
		}
		return fmt.Errorf("insert payment: %w", err)
	}

	return nil
}

// GetByID retrieves a payment by its ID.
func (r *PaymentRepository) GetByID(ctx context.Context, id string) (*domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1`

	return scanPaymentRow(r.db.QueryRow(ctx, query, id))
}

// GetByOrderID retrieves the latest payment attempt for an order. Failed
// attempts may leave earlier rows behind.
func (r *PaymentRepository) GetByOrderID(ctx context.Context, orderID string) (*domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE order_id = $1 ORDER BY created_at DESC LIMIT 1`

	return scanPaymentRow(r.db.QueryRow(ctx, query, orderID))
}

// UpdateStatus sets the payment status along with provider reference and
// failure reason.
func (r *PaymentRepository) UpdateStatus(ctx context.Context, id, status, providerPayID, failureReason string) error {
	query := `
		UPDATE payments
		SET status = $1, provider_payment_id = $2, failure_reason = $3, updated_at = $4
		WHERE id = $5`

	ct, err := r.db.Exec(ctx, query, status, providerPayID, failureReason, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("update payment status: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("payment", id)
	}

	return nil
}

func scanPaymentRow(row rowScanner) (*domain.Payment, error) {
	var p domain.Payment

	err := row.Scan(
		&p.ID,
		&p.OrderID,
		&p.UserID,
		&p.StoreID,
		&p.Amount,
		&p.Currency,
		&p.Status,
		&p.ProviderName,
		&p.ProviderPayID,
		&p.FailureReason,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("scan payment: %w", err)
	}

	return &p, nil
}
