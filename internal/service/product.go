package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/zeel68/YouliteBackend/internal/domain"
	"github.com/zeel68/YouliteBackend/internal/event"
	"github.com/zeel68/YouliteBackend/internal/repository"
	apperrors "github.com/zeel68/YouliteBackend/pkg/errors"
	"github.com/zeel68/YouliteBackend/pkg/pagination"
	"github.com/zeel68/YouliteBackend/pkg/slug"
)

// ProductService implements the business logic for store product management.
type ProductService struct {
	productRepo repository.ProductRepository
	producer    *event.Producer
	logger      *slog.Logger
}

// NewProductService creates a new product service.
func NewProductService(
	productRepo repository.ProductRepository,
	producer *event.Producer,
	logger *slog.Logger,
) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		producer:    producer,
		logger:      logger,
	}
}

// CreateProductInput holds the parameters for creating a product.
type CreateProductInput struct {
	Name         string
	Description  string
	Price        int64
	ComparePrice int64
	StockQty     int
	ImageURLs    []string
	TagIDs       []string
}

// UpdateProductInput holds the parameters for updating a product.
type UpdateProductInput struct {
	Name         *string
	Description  *string
	Price        *int64
	ComparePrice *int64
	StockQty     *int
	ImageURLs    []string
	TagIDs       []string
	IsActive     *bool
}

// CreateProduct creates a product in the given store with a generated slug.
func (s *ProductService) CreateProduct(ctx context.Context, storeID string, input CreateProductInput) (*domain.Product, error) {
	if input.Name == "" {
		return nil, apperrors.InvalidInput("product name is required")
	}
	if input.Price <= 0 {
		return nil, apperrors.InvalidInput("product price must be positive")
	}
	if input.StockQty < 0 {
		return nil, apperrors.InvalidInput("stock quantity must not be negative")
	}

	now := time.Now().UTC()
	product := &domain.Product{
		ID:           uuid.New().String(),
		StoreID:      storeID,
		Name:         input.Name,
		Slug:         slug.Generate(input.Name),
		Description:  input.Description,
		Price:        input.Price,
		ComparePrice: input.ComparePrice,
		StockQty:     input.StockQty,
		ImageURLs:    input.ImageURLs,
		TagIDs:       input.TagIDs,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	s.logger.InfoContext(ctx, "product created",
		slog.String("product_id", product.ID),
		slog.String("store_id", storeID),
	)

	return product, nil
}

// GetProduct retrieves a product by ID.
func (s *ProductService) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	return product, nil
}

// ListProducts returns a store's products page by page.
func (s *ProductService) ListProducts(ctx context.Context, storeID string, filter repository.ProductFilter, params pagination.Params) (*pagination.Result[domain.Product], error) {
	products, total, err := s.productRepo.ListByStore(ctx, storeID, filter, params)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return pagination.NewResult(products, total, params), nil
}

// UpdateProduct updates product fields. Renaming regenerates the slug.
func (s *ProductService) UpdateProduct(ctx context.Context, id string, input UpdateProductInput) (*domain.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get product for update: %w", err)
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, apperrors.InvalidInput("product name must not be empty")
		}
		product.Name = *input.Name
		product.Slug = slug.Generate(*input.Name)
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.Price != nil {
		if *input.Price <= 0 {
			return nil, apperrors.InvalidInput("product price must be positive")
		}
		product.Price = *input.Price
	}
	if input.ComparePrice != nil {
		product.ComparePrice = *input.ComparePrice
	}
	if input.StockQty != nil {
		if *input.StockQty < 0 {
			return nil, apperrors.InvalidInput("stock quantity must not be negative")
		}
		product.StockQty = *input.StockQty
	}
	if input.ImageURLs != nil {
		product.ImageURLs = input.ImageURLs
	}
	if input.TagIDs != nil {
		product.TagIDs = input.TagIDs
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}

	s.logger.InfoContext(ctx, "product updated",
		slog.String("product_id", product.ID),
	)

	return product, nil
}

// ReserveStock decrements stock for an order line and raises a low-stock
// event when the product crosses the threshold.
func (s *ProductService) ReserveStock(ctx context.Context, productID string, quantity int) error {
	if quantity <= 0 {
		return apperrors.InvalidInput("quantity must be positive")
	}

	if err := s.productRepo.AdjustStock(ctx, productID, -quantity); err != nil {
		return err
	}

	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return fmt.Errorf("get product after stock adjust: %w", err)
	}

	if product.IsLowStock() || !product.InStock() {
		if err := s.producer.PublishLowStock(ctx, product); err != nil {
			s.logger.ErrorContext(ctx, "failed to publish inventory.low_stock event",
				slog.String("product_id", product.ID),
				slog.String("error", err.Error()),
			)
		}
	}

	return nil
}

// ReleaseStock returns reserved stock after a canceled or failed order.
func (s *ProductService) ReleaseStock(ctx context.Context, productID string, quantity int) error {
	if quantity <= 0 {
		return apperrors.InvalidInput("quantity must be positive")
	}
	return s.productRepo.AdjustStock(ctx, productID, quantity)
}

// DeleteProduct removes a product.
func (s *ProductService) DeleteProduct(ctx context.Context, id string) error {
	if err := s.productRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}

	s.logger.InfoContext(ctx, "product deleted",
		slog.String("product_id", id),
	)

	return nil
}
