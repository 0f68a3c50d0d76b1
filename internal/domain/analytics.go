package domain

// SalesTotal is the aggregate of order totals over a window.
type SalesTotal struct {
	Total int64 `json:"total"`
	Count int   `json:"count"`
}

// SalesTrendPoint is one day's worth of sales.
type SalesTrendPoint struct {
	Date  string `json:"date"`
	Total int64  `json:"total"`
	Count int    `json:"count"`
}

// TopProduct is a product ranked by units sold.
type TopProduct struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Sold      int    `json:"sold"`
}

// UserGrowthPoint is the number of signups on one day.
type UserGrowthPoint struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// InventoryStatus groups products by stock condition.
type InventoryStatus struct {
	LowStock   []Product `json:"low_stock"`
	OutOfStock []Product `json:"out_of_stock"`
}
