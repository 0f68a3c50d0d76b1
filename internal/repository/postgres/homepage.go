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

// HomepageRepository implements repository.HomepageRepository using PostgreSQL.
// Replace* operations run delete-then-insert in one transaction so readers
// never see a half-written set.
type HomepageRepository struct {
	db DB
}

// NewHomepageRepository creates a new PostgreSQL-backed homepage repository.
func NewHomepageRepository(db DB) *HomepageRepository {
	return &HomepageRepository{db: db}
}

// GetHero retrieves the store's hero section.
func (r *HomepageRepository) GetHero(ctx context.Context, storeID string) (*domain.HeroSection, error) {
	var h domain.HeroSection

	err := r.db.QueryRow(ctx,
		`SELECT id, store_id, title, subtitle, image_url, cta_text, cta_link, updated_at
		 FROM hero_sections WHERE store_id = $1`, storeID,
	).Scan(&h.ID, &h.StoreID, &h.Title, &h.Subtitle, &h.ImageURL, &h.CTAText, &h.CTALink, &h.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("scan hero section: %w", err)
	}

	return &h, nil
}

// UpsertHero creates or replaces the store's hero section.
func (r *HomepageRepository) UpsertHero(ctx context.Context, h *domain.HeroSection) error {
	h.UpdatedAt = time.Now().UTC()

	query := `
		INSERT INTO hero_sections (id, store_id, title, subtitle, image_url, cta_text, cta_link, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (store_id) DO UPDATE
		SET title = EXCLUDED.title, subtitle = EXCLUDED.subtitle, image_url = EXCLUDED.image_url,
		    cta_text = EXCLUDED.cta_text, cta_link = EXCLUDED.cta_link, updated_at = EXCLUDED.updated_at`

	_, err := r.db.Exec(ctx, query,
		h.ID, h.StoreID, h.Title, h.Subtitle, h.ImageURL, h.CTAText, h.CTALink, h.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert hero section: %w", err)
	}

	return nil
}

// ListSlides returns the store's active hero slides in display order.
func (r *HomepageRepository) ListSlides(ctx context.Context, storeID string) ([]domain.HeroSlide, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, store_id, image_url, title, subtitle, link, display_order, is_active, created_at
		 FROM hero_slides WHERE store_id = $1 AND is_active = TRUE ORDER BY display_order`, storeID,
	)
	if err != nil {
		return nil, fmt.Errorf("list hero slides: %w", err)
	}
	defer rows.Close()

	var slides []domain.HeroSlide
	for rows.Next() {
		var s domain.HeroSlide
		if err := rows.Scan(&s.ID, &s.StoreID, &s.ImageURL, &s.Title, &s.Subtitle, &s.Link, &s.DisplayOrder, &s.IsActive, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan hero slide: %w", err)
		}
		slides = append(slides, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate hero slides: %w", err)
	}

	return slides, nil
}

// ReplaceSlides swaps the store's slide set atomically.
func (r *HomepageRepository) ReplaceSlides(ctx context.Context, storeID string, slides []domain.HeroSlide) error {
	return r.inTx(ctx, "replace hero slides", func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM hero_slides WHERE store_id = $1`, storeID); err != nil {
			return fmt.Errorf("delete hero slides: %w", err)
		}
		for _, s := range slides {
			_, err := tx.Exec(ctx,
				`INSERT INTO hero_slides (id, store_id, image_url, title, subtitle, link, display_order, is_active, created_at)
				 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
				s.ID, storeID, s.ImageURL, s.Title, s.Subtitle, s.Link, s.DisplayOrder, s.IsActive, s.CreatedAt,
			)
			if err != nil {
				return fmt.Errorf("insert hero slide: %w", err)
			}
		}
		return nil
	})
}

// ListTrendingCategories returns the store's pinned categories in display
// order, joined with the category row.
func (r *HomepageRepository) ListTrendingCategories(ctx context.Context, storeID string) ([]domain.TrendingCategory, error) {
	rows, err := r.db.Query(ctx,
		`SELECT tc.id, tc.store_id, tc.category_id, tc.display_order,
		        c.id, c.name, c.slug, c.image_url, c.description, c.is_active, c.created_at, c.updated_at
		 FROM trending_categories tc
		 JOIN categories c ON c.id = tc.category_id
		 WHERE tc.store_id = $1 ORDER BY tc.display_order`, storeID,
	)
	if err != nil {
		return nil, fmt.Errorf("list trending categories: %w", err)
	}
	defer rows.Close()

	var items []domain.TrendingCategory
	for rows.Next() {
		var (
			tc domain.TrendingCategory
			c  domain.Category
		)
		err := rows.Scan(
			&tc.ID, &tc.StoreID, &tc.CategoryID, &tc.DisplayOrder,
			&c.ID, &c.Name, &c.Slug, &c.ImageURL, &c.Description, &c.IsActive, &c.CreatedAt, &c.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan trending category: %w", err)
		}
		tc.Category = &c
		items = append(items, tc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate trending categories: %w", err)
	}

	return items, nil
}

// ReplaceTrendingCategories swaps the store's pinned category set atomically.
func (r *HomepageRepository) ReplaceTrendingCategories(ctx context.Context, storeID string, items []domain.TrendingCategory) error {
	return r.inTx(ctx, "replace trending categories", func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM trending_categories WHERE store_id = $1`, storeID); err != nil {
			return fmt.Errorf("delete trending categories: %w", err)
		}
		for _, it := range items {
			_, err := tx.Exec(ctx,
				`INSERT INTO trending_categories (id, store_id, category_id, display_order) VALUES ($1, $2, $3, $4)`,
				it.ID, storeID, it.CategoryID, it.DisplayOrder,
			)
			if err != nil {
				return fmt.Errorf("insert trending category: %w", err)
			}
		}
		return nil
	})
}

// ListTrendingProducts returns the store's pinned products in display order,
// joined with the product row.
func (r *HomepageRepository) ListTrendingProducts(ctx context.Context, storeID string) ([]domain.TrendingProduct, error) {
	rows, err := r.db.Query(ctx,
		`SELECT tp.id, tp.store_id, tp.product_id, tp.display_order,
		        p.id, p.store_id, p.name, p.slug, p.description, p.price, p.compare_price, p.stock_quantity, p.image_urls, p.tag_ids, p.is_active, p.created_at, p.updated_at
		 FROM trending_products tp
		 JOIN products p ON p.id = tp.product_id
		 WHERE tp.store_id = $1 ORDER BY tp.display_order`, storeID,
	)
	if err != nil {
		return nil, fmt.Errorf("list trending products: %w", err)
	}
	defer rows.Close()

	var items []domain.TrendingProduct
	for rows.Next() {
		var (
			tp domain.TrendingProduct
			p  domain.Product
		)
		err := rows.Scan(
			&tp.ID, &tp.StoreID, &tp.ProductID, &tp.DisplayOrder,
			&p.ID, &p.StoreID, &p.Name, &p.Slug, &p.Description, &p.Price, &p.ComparePrice, &p.StockQty, &p.ImageURLs, &p.TagIDs, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan trending product: %w", err)
		}
		tp.Product = &p
		items = append(items, tp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate trending products: %w", err)
	}

	return items, nil
}

// ReplaceTrendingProducts swaps the store's pinned product set atomically.
func (r *HomepageRepository) ReplaceTrendingProducts(ctx context.Context, storeID string, items []domain.TrendingProduct) error {
	return r.inTx(ctx, "replace trending products", func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM trending_products WHERE store_id = $1`, storeID); err != nil {
			return fmt.Errorf("delete trending products: %w", err)
		}
		for _, it := range items {
			_, err := tx.Exec(ctx,
				`INSERT INTO trending_products (id, store_id, product_id, display_order) VALUES ($1, $2, $3, $4)`,
				it.ID, storeID, it.ProductID, it.DisplayOrder,
			)
			if err != nil {
				return fmt.Errorf("insert trending product: %w", err)
			}
		}
		return nil
	})
}

// ListTestimonials returns the store's testimonials, newest first.
func (r *HomepageRepository) ListTestimonials(ctx context.Context, storeID string) ([]domain.Testimonial, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, store_id, author, quote, rating, avatar_url, created_at
		 FROM testimonials WHERE store_id = $1 ORDER BY created_at DESC`, storeID,
	)
	if err != nil {
		return nil, fmt.Errorf("list testimonials: %w", err)
	}
	defer rows.Close()

	var items []domain.Testimonial
	for rows.Next() {
		var t domain.Testimonial
		if err := rows.Scan(&t.ID, &t.StoreID, &t.Author, &t.Quote, &t.Rating, &t.AvatarURL, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan testimonial: %w", err)
		}
		items = append(items, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate testimonials: %w", err)
	}

	return items, nil
}

// AddTestimonial inserts a testimonial.
func (r *HomepageRepository) AddTestimonial(ctx context.Context, t *domain.Testimonial) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO testimonials (id, store_id, author, quote, rating, avatar_url, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		t.ID, t.StoreID, t.Author, t.Quote, t.Rating, t.AvatarURL, t.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert testimonial: %w", err)
	}

	return nil
}

// DeleteTestimonial removes a testimonial by its ID.
func (r *HomepageRepository) DeleteTestimonial(ctx context.Context, id string) error {
	ct, err := r.db.Exec(ctx, `DELETE FROM testimonials WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete testimonial: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("testimonial", id)
	}

	return nil
}

func (r *HomepageRepository) inTx(ctx context.Context, op string, fn func(tx pgx.Tx) error) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%s: begin tx: %w", op, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%s: commit tx: %w", op, err)
	}

	return nil
}
