package domain

import "time"

// LowStockThreshold is the stock quantity at or below which a product is
// reported as low stock.
const LowStockThreshold = 5

// Product represents a product listed in a store. Prices are stored in the
// smallest currency unit (cents).
type Product struct {
	ID           string    `json:"id"`
	StoreID      string    `json:"store_id"`
	Name         string    `json:"name"`
	Slug         string    `json:"slug"`
	Description  string    `json:"description,omitempty"`
	Price        int64     `json:"price"`
	ComparePrice int64     `json:"compare_price,omitempty"`
	StockQty     int       `json:"stock_quantity"`
	ImageURLs    []string  `json:"image_urls,omitempty"`
	TagIDs       []string  `json:"tag_ids,omitempty"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// InStock reports whether the product has any sellable stock.
func (p *Product) InStock() bool {
	return p.StockQty > 0
}

// IsLowStock reports whether the product is in stock but at or below the
// low-stock threshold.
func (p *Product) IsLowStock() bool {
	return p.StockQty > 0 && p.StockQty <= LowStockThreshold
}
