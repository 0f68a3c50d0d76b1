package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/zeel68/YouliteBackend/internal/domain"
	"github.com/zeel68/YouliteBackend/internal/repository"
)

// Defaults for analytics windows.
const (
	defaultTrendDays   = 30
	defaultTopProducts = 5
	maxTrendDays       = 365
)

// AnalyticsService implements read-side reporting over orders, users, and
// inventory.
type AnalyticsService struct {
	analyticsRepo repository.AnalyticsRepository
	logger        *slog.Logger
}

// NewAnalyticsService creates a new analytics service.
func NewAnalyticsService(analyticsRepo repository.AnalyticsRepository, logger *slog.Logger) *AnalyticsService {
	return &AnalyticsService{
		analyticsRepo: analyticsRepo,
		logger:        logger,
	}
}

// TotalSales sums order totals over an optional window.
func (s *AnalyticsService) TotalSales(ctx context.Context, storeID string, start, end time.Time) (*domain.SalesTotal, error) {
	total, err := s.analyticsRepo.TotalSales(ctx, storeID, start, end)
	if err != nil {
		return nil, fmt.Errorf("total sales: %w", err)
	}
	return total, nil
}

// SalesTrend returns per-day sales for the last N days.
func (s *AnalyticsService) SalesTrend(ctx context.Context, storeID string, days int) ([]domain.SalesTrendPoint, error) {
	days = clampDays(days)

	points, err := s.analyticsRepo.SalesTrend(ctx, storeID, days)
	if err != nil {
		return nil, fmt.Errorf("sales trend: %w", err)
	}
	if points == nil {
		points = []domain.SalesTrendPoint{}
	}
	return points, nil
}

// TopProducts ranks products by units sold.
func (s *AnalyticsService) TopProducts(ctx context.Context, storeID string, limit int) ([]domain.TopProduct, error) {
	if limit <= 0 {
		limit = defaultTopProducts
	}

	products, err := s.analyticsRepo.TopProducts(ctx, storeID, limit)
	if err != nil {
		return nil, fmt.Errorf("top products: %w", err)
	}
	if products == nil {
		products = []domain.TopProduct{}
	}
	return products, nil
}

// UserGrowth returns per-day signup counts for the last N days.
func (s *AnalyticsService) UserGrowth(ctx context.Context, days int) ([]domain.UserGrowthPoint, error) {
	days = clampDays(days)

	points, err := s.analyticsRepo.UserGrowth(ctx, days)
	if err != nil {
		return nil, fmt.Errorf("user growth: %w", err)
	}
	if points == nil {
		points = []domain.UserGrowthPoint{}
	}
	return points, nil
}

// InventoryStatus lists low-stock and out-of-stock products.
func (s *AnalyticsService) InventoryStatus(ctx context.Context, storeID string) (*domain.InventoryStatus, error) {
	status, err := s.analyticsRepo.InventoryStatus(ctx, storeID)
	if err != nil {
		return nil, fmt.Errorf("inventory status: %w", err)
	}
	if status.LowStock == nil {
		status.LowStock = []domain.Product{}
	}
	if status.OutOfStock == nil {
		status.OutOfStock = []domain.Product{}
	}
	return status, nil
}

func clampDays(days int) int {
	if days <= 0 {
		return defaultTrendDays
	}
	if days > maxTrendDays {
		return maxTrendDays
	}
	return days
}
