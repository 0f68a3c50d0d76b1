package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/zeel68/YouliteBackend/internal/domain"
	"github.com/zeel68/YouliteBackend/internal/repository"
	apperrors "github.com/zeel68/YouliteBackend/pkg/errors"
	"github.com/zeel68/YouliteBackend/pkg/pagination"
)

// ProductRepository implements repository.ProductRepository using PostgreSQL.
type ProductRepository struct {
	db DB
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(db DB) *ProductRepository {
	return &ProductRepository{db: db}
}

const productColumns = `id, store_id, name, slug, description, price, compare_price, stock_quantity, image_urls, tag_ids, is_active, created_at, updated_at`

// Create inserts a new product.
func (r *ProductRepository) Create(ctx context.Context, p *domain.Product) error {
	query := `
		INSERT INTO products (id, store_id, name, slug, description, price, compare_price, stock_quantity, image_urls, tag_ids, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	_, err := r.db.Exec(ctx, query,
		p.ID,
		p.StoreID,
		p.Name,
		p.Slug,
		p.Description,
		p.Price,
		p.ComparePrice,
		p.StockQty,
		p.ImageURLs,
		p.TagIDs,
		p.IsActive,
		p.CreatedAt,
		p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.AlreadyExists("product", "slug", p.Slug)
		}
		return fmt.Errorf("insert product: %w", err)
	}

	return nil
}

// GetByID retrieves a product by its ID.
func (r *ProductRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	return r.scanProduct(ctx, query, id)
}

// GetBySlug retrieves a product by store and slug.
func (r *ProductRepository) GetBySlug(ctx context.Context, storeID, slug string) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE store_id = $1 AND slug = $2`

	return r.scanProduct(ctx, query, storeID, slug)
}

// ListByStore returns the store's products page by page, applying the filter.
// An empty storeID lists across all stores.
func (r *ProductRepository) ListByStore(ctx context.Context, storeID string, filter repository.ProductFilter, params pagination.Params) ([]domain.Product, int, error) {
	where := `WHERE ($1 = '' OR store_id = $1)`
	args := []any{storeID}

	if filter.ActiveOnly {
		where += ` AND is_active = TRUE`
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		where += fmt.Sprintf(` AND name ILIKE $%d`, len(args))
	}
	if filter.TagID != "" {
		args = append(args, filter.TagID)
		where += fmt.Sprintf(` AND $%d = ANY(tag_ids)`, len(args))
	}
	if filter.MinPrice > 0 {
		args = append(args, filter.MinPrice)
		where += fmt.Sprintf(` AND price >= $%d`, len(args))
	}
	if filter.MaxPrice > 0 {
		args = append(args, filter.MaxPrice)
		where += fmt.Sprintf(` AND price <= $%d`, len(args))
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM products `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	args = append(args, params.PerPage, params.Offset())
	query := fmt.Sprintf(
		`SELECT %s FROM products %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		productColumns, where, len(args)-1, len(args),
	)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		p, err := scanProductRow(rows)
		if err != nil {
			return nil, 0, err
		}
		products = append(products, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate products: %w", err)
	}

	return products, total, nil
}

// Update modifies an existing product.
func (r *ProductRepository) Update(ctx context.Context, p *domain.Product) error {
	p.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE products
		SET name = $1, slug = $2, description = $3, price = $4, compare_price = $5,
		    stock_quantity = $6, image_urls = $7, tag_ids = $8, is_active = $9, updated_at = $10
		WHERE id = $11`

	ct, err := r.db.Exec(ctx, query,
		p.Name,
		p.Slug,
		p.Description,
		p.Price,
		p.ComparePrice,
		p.StockQty,
		p.ImageURLs,
		p.TagIDs,
		p.IsActive,
		p.UpdatedAt,
		p.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.AlreadyExists("product", "slug", p.Slug)
		}
		return fmt.Errorf("update product: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("product", p.ID)
	}

	return nil
}

// AdjustStock atomically changes stock by delta. The WHERE guard keeps stock
// from going negative under concurrent checkouts.
func (r *ProductRepository) AdjustStock(ctx context.Context, id string, delta int) error {
	query := `
		UPDATE products
		SET stock_quantity = stock_quantity + $1, updated_at = $2
		WHERE id = $3 AND stock_quantity + $1 >= 0`

	ct, err := r.db.Exec(ctx, query, delta, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("adjust stock: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.InvalidInput("insufficient stock")
	}

	return nil
}

// Delete removes a product by its ID.
func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	ct, err := r.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("product", id)
	}

	return nil
}

func (r *ProductRepository) scanProduct(ctx context.Context, query string, args ...any) (*domain.Product, error) {
	return scanProductRow(r.db.QueryRow(ctx, query, args...))
}

func scanProductRow(row rowScanner) (*domain.Product, error) {
	var p domain.Product

	err := row.Scan(
		&p.ID,
		&p.StoreID,
		&p.Name,
		&p.Slug,
		&p.Description,
		&p.Price,
		&p.ComparePrice,
		&p.StockQty,
		&p.ImageURLs,
		&p.TagIDs,
		&p.IsActive,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("scan product: %w", err)
	}

	return &p, nil
}
