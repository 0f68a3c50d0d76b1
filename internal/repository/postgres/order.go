package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/zeel68/YouliteBackend/internal/domain"
	apperrors "github.com/zeel68/YouliteBackend/pkg/errors"
	"github.com/zeel68/YouliteBackend/pkg/pagination"
)

// OrderRepository implements repository.OrderRepository using PostgreSQL.
// Items and the shipping address are JSONB documents on the orders row; line
// items are immutable once the order is placed.
type OrderRepository struct {
	db DB
}

// NewOrderRepository creates a new PostgreSQL-backed order repository.
func NewOrderRepository(db DB) *OrderRepository {
	return &OrderRepository{db: db}
}

const orderColumns = `id, order_number, user_id, store_id, status, items, subtotal_amount, shipping_amount, total_amount, currency, shipping_address, notes, canceled_reason, created_at, updated_at`

// Create inserts a new order with its items.
func (r *OrderRepository) Create(ctx context.Context, o *domain.Order) error {
	items, err := json.Marshal(o.Items)
	if err != nil {
		return fmt.Errorf("marshal order items: %w", err)
	}

	var address []byte
	if o.ShippingAddress != nil {
		if address, err = json.Marshal(o.ShippingAddress); err != nil {
			return fmt.Errorf("marshal shipping address: %w", err)
		}
	}

	query := `
		INSERT INTO orders (id, order_number, user_id, store_id, status, items, subtotal_amount, shipping_amount, total_amount, currency, shipping_address, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	_, err = r.db.Exec(ctx, query,
		o.ID,
		o.OrderNumber,
		o.UserID,
		o.StoreID,
		o.Status,
		items,
		o.SubtotalAmount,
		o.ShippingAmount,
		o.TotalAmount,
		o.Currency,
		address,
		o.Notes,
		o.CreatedAt,
		o.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.AlreadyExists("order", "order_number", o.OrderNumber)
		}
		return fmt.Errorf("insert order: %w", err)
	}

	return nil
}

// GetByID retrieves an order by its ID.
func (r *OrderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	return scanOrderRow(r.db.QueryRow(ctx, query, id))
}

// ListByUser returns a user's orders page by page, newest first.
func (r *OrderRepository) ListByUser(ctx context.Context, userID string, params pagination.Params) ([]domain.Order, int, error) {
	return r.list(ctx, `user_id = $1`, userID, "", params)
}

// ListByStore returns a store's orders page by page, newest first. Empty
// status means all statuses.
func (r *OrderRepository) ListByStore(ctx context.Context, storeID, status string, params pagination.Params) ([]domain.Order, int, error) {
	return r.list(ctx, `store_id = $1`, storeID, status, params)
}

// ListAll returns orders across all stores page by page, newest first.
func (r *OrderRepository) ListAll(ctx context.Context, status string, params pagination.Params) ([]domain.Order, int, error) {
	return r.list(ctx, `($1 = '' OR store_id = $1)`, "", status, params)
}

func (r *OrderRepository) list(ctx context.Context, cond, value, status string, params pagination.Params) ([]domain.Order, int, error) {
	where := `WHERE ` + cond + ` AND ($2 = '' OR status = $2)`

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM orders `+where, value, status).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count orders: %w", err)
	}

	query := `SELECT ` + orderColumns + ` FROM orders ` + where + ` ORDER BY created_at DESC LIMIT $3 OFFSET $4`

	rows, err := r.db.Query(ctx, query, value, status, params.PerPage, params.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		o, err := scanOrderRow(rows)
		if err != nil {
			return nil, 0, err
		}
		orders = append(orders, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate orders: %w", err)
	}

	return orders, total, nil
}

// UpdateStatus sets the order status, with an optional cancel reason.
func (r *OrderRepository) UpdateStatus(ctx context.Context, id, status, reason string) error {
	query := `UPDATE orders SET status = $1, canceled_reason = $2, updated_at = $3 WHERE id = $4`

	ct, err := r.db.Exec(ctx, query, status, reason, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("order", id)
	}

	return nil
}

func scanOrderRow(row rowScanner) (*domain.Order, error) {
	var (
		o       domain.Order
		items   []byte
		address []byte
	)

	err := row.Scan(
		&o.ID,
		&o.OrderNumber,
		&o.UserID,
		&o.StoreID,
		&o.Status,
		&items,
		&o.SubtotalAmount,
		&o.ShippingAmount,
		&o.TotalAmount,
		&o.Currency,
		&address,
		&o.Notes,
		&o.CanceledReason,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("scan order: %w", err)
	}

	if err := json.Unmarshal(items, &o.Items); err != nil {
		return nil, fmt.Errorf("unmarshal order items: %w", err)
	}
	if len(address) > 0 {
		o.ShippingAddress = &domain.Address{}
		if err := json.Unmarshal(address, o.ShippingAddress); err != nil {
			return nil, fmt.Errorf("unmarshal shipping address: %w", err)
		}
	}

	return &o, nil
}
