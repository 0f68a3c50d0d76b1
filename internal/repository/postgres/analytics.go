package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/zeel68/YouliteBackend/internal/domain"
)

// AnalyticsRepository implements repository.AnalyticsRepository with read-only
// aggregate queries over orders, users, and products.
type AnalyticsRepository struct {
	db DB
}

// NewAnalyticsRepository creates a new PostgreSQL-backed analytics repository.
func NewAnalyticsRepository(db DB) *AnalyticsRepository {
	return &AnalyticsRepository{db: db}
}

// TotalSales sums order totals and counts orders over a window. Zero times
// leave that side of the window open; empty storeID means platform-wide.
func (r *AnalyticsRepository) TotalSales(ctx context.Context, storeID string, start, end time.Time) (*domain.SalesTotal, error) {
	query := `
		SELECT COALESCE(SUM(total_amount), 0), COUNT(*)
		FROM orders
		WHERE ($1 = '' OR store_id = $1)
		  AND ($2::timestamptz IS NULL OR created_at >= $2)
		  AND ($3::timestamptz IS NULL OR created_at <= $3)`

	var result domain.SalesTotal
	if err := r.db.QueryRow(ctx, query, storeID, nullIfZeroTime(start), nullIfZeroTime(end)).Scan(&result.Total, &result.Count); err != nil {
		return nil, fmt.Errorf("total sales: %w", err)
	}

	return &result, nil
}

// SalesTrend returns per-day sales for the last N days. Days without orders
// are omitted.
func (r *AnalyticsRepository) SalesTrend(ctx context.Context, storeID string, days int) ([]domain.SalesTrendPoint, error) {
	query := `
		SELECT TO_CHAR(created_at, 'YYYY-MM-DD') AS day, COALESCE(SUM(total_amount), 0), COUNT(*)
		FROM orders
		WHERE ($1 = '' OR store_id = $1)
		  AND created_at >= NOW() - ($2 * INTERVAL '1 day')
		GROUP BY day
		ORDER BY day`

	rows, err := r.db.Query(ctx, query, storeID, days)
	if err != nil {
		return nil, fmt.Errorf("sales trend: %w", err)
	}
	defer rows.Close()

	var points []domain.SalesTrendPoint
	for rows.Next() {
		var p domain.SalesTrendPoint
		if err := rows.Scan(&p.Date, &p.Total, &p.Count); err != nil {
			return nil, fmt.Errorf("scan sales trend point: %w", err)
		}
		points = append(points, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sales trend: %w", err)
	}

	return points, nil
}

// TopProducts ranks products by units sold across order line items.
func (r *AnalyticsRepository) TopProducts(ctx context.Context, storeID string, limit int) ([]domain.TopProduct, error) {
	query := `
		SELECT item->>'product_id', COALESCE(MAX(item->>'name'), ''), SUM((item->>'quantity')::int) AS sold
		FROM orders, jsonb_array_elements(items) AS item
		WHERE ($1 = '' OR store_id = $1)
		GROUP BY item->>'product_id'
		ORDER BY sold DESC
		LIMIT $2`

	rows, err := r.db.Query(ctx, query, storeID, limit)
	if err != nil {
		return nil, fmt.Errorf("top products: %w", err)
	}
	defer rows.Close()

	var products []domain.TopProduct
	for rows.Next() {
		var p domain.TopProduct
		if err := rows.Scan(&p.ProductID, &p.Name, &p.Sold); err != nil {
			return nil, fmt.Errorf("scan top product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate top products: %w", err)
	}

	return products, nil
}

// UserGrowth returns per-day signup counts for the last N days.
func (r *AnalyticsRepository) UserGrowth(ctx context.Context, days int) ([]domain.UserGrowthPoint, error) {
	query := `
		SELECT TO_CHAR(created_at, 'YYYY-MM-DD') AS day, COUNT(*)
		FROM users
		WHERE created_at >= NOW() - ($1 * INTERVAL '1 day')
		GROUP BY day
		ORDER BY day`

	rows, err := r.db.Query(ctx, query, days)
	if err != nil {
		return nil, fmt.Errorf("user growth: %w", err)
	}
	defer rows.Close()

	var points []domain.UserGrowthPoint
	for rows.Next() {
		var p domain.UserGrowthPoint
		if err := rows.Scan(&p.Date, &p.Count); err != nil {
			return nil, fmt.Errorf("scan user growth point: %w", err)
		}
		points = append(points, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate user growth: %w", err)
	}

	return points, nil
}

// InventoryStatus lists the store's low-stock and out-of-stock products.
func (r *AnalyticsRepository) InventoryStatus(ctx context.Context, storeID string) (*domain.InventoryStatus, error) {
	query := `SELECT ` + productColumns + `
		FROM products
		WHERE ($1 = '' OR store_id = $1) AND stock_quantity <= $2
		ORDER BY stock_quantity`

	rows, err := r.db.Query(ctx, query, storeID, domain.LowStockThreshold)
	if err != nil {
		return nil, fmt.Errorf("inventory status: %w", err)
	}
	defer rows.Close()

	status := &domain.InventoryStatus{}
	for rows.Next() {
		p, err := scanProductRow(rows)
		if err != nil {
			return nil, err
		}
		if p.StockQty <= 0 {
			status.OutOfStock = append(status.OutOfStock, *p)
		} else {
			status.LowStock = append(status.LowStock, *p)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate inventory status: %w", err)
	}

	return status, nil
}

// nullIfZeroTime maps the zero time to NULL for open-ended windows.
func nullIfZeroTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
