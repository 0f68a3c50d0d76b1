package repository

import (
	"context"
	"time"

	"github.com/zeel68/YouliteBackend/internal/domain"
	"github.com/zeel68/YouliteBackend/pkg/pagination"
)

// UserRepository defines the interface for user persistence operations.
type UserRepository interface {
	// Create inserts a new user.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their unique identifier.
	GetByID(ctx context.Context, id string) (*domain.User, error)

	// GetByIdentity retrieves a user by email or phone number. Either
	// argument may be empty; at least one must be set.
	GetByIdentity(ctx context.Context, email, phone string) (*domain.User, error)

	// Update modifies an existing user.
	Update(ctx context.Context, user *domain.User) error

	// SetRefreshTokenHash stores the hash of the user's current refresh
	// token. An empty hash clears it, ending the session.
	SetRefreshTokenHash(ctx context.Context, userID, tokenHash string) error

	// List returns users page by page, newest first.
	List(ctx context.Context, params pagination.Params) ([]domain.User, int, error)

	// Delete removes a user by their identifier.
	Delete(ctx context.Context, id string) error
}

// RoleRepository defines the interface for role lookups. Roles are seeded at
// migration time and read-only at runtime.
type RoleRepository interface {
	// GetByName retrieves a role by its name.
	GetByName(ctx context.Context, name string) (*domain.Role, error)

	// List returns all roles.
	List(ctx context.Context) ([]domain.Role, error)
}

// StoreRepository defines the interface for store persistence operations.
type StoreRepository interface {
	// Create inserts a new store.
	Create(ctx context.Context, store *domain.Store) error

	// GetByID retrieves a store by its unique identifier.
	GetByID(ctx context.Context, id string) (*domain.Store, error)

	// GetByDomain retrieves a store by its unique domain name.
	GetByDomain(ctx context.Context, storeDomain string) (*domain.Store, error)

	// List returns stores page by page.
	List(ctx context.Context, params pagination.Params) ([]domain.Store, int, error)

	// Update modifies an existing store.
	Update(ctx context.Context, store *domain.Store) error

	// UpdateConfig replaces the store's config document.
	UpdateConfig(ctx context.Context, storeID string, cfg domain.StoreConfig) error

	// Delete removes a store by its identifier.
	Delete(ctx context.Context, id string) error
}

// CategoryRepository defines the interface for category persistence operations.
type CategoryRepository interface {
	// Create inserts a new category.
	Create(ctx context.Context, category *domain.Category) error

	// GetByID retrieves a category by its unique identifier.
	GetByID(ctx context.Context, id string) (*domain.Category, error)

	// GetBySlug retrieves a category by its slug.
	GetBySlug(ctx context.Context, slug string) (*domain.Category, error)

	// List returns categories ordered by name. A non-empty search narrows
	// by name match.
	List(ctx context.Context, search string) ([]domain.Category, error)

	// Update modifies an existing category.
	Update(ctx context.Context, category *domain.Category) error

	// Delete removes a category by its identifier.
	Delete(ctx context.Context, id string) error
}

// TagRepository defines the interface for tag persistence operations.
type TagRepository interface {
	// Create inserts a new tag.
	Create(ctx context.Context, tag *domain.Tag) error

	// GetByID retrieves a tag by its unique identifier.
	GetByID(ctx context.Context, id string) (*domain.Tag, error)

	// ListByCategory returns all tags under the given category.
	ListByCategory(ctx context.Context, categoryID string) ([]domain.Tag, error)

	// Update modifies an existing tag.
	Update(ctx context.Context, tag *domain.Tag) error

	// Delete removes a tag by its identifier.
	Delete(ctx context.Context, id string) error
}

// ProductFilter narrows product listings.
type ProductFilter struct {
	Search   string
	TagID    string
	MinPrice int64
	MaxPrice int64
	// ActiveOnly hides inactive products from storefront listings.
	ActiveOnly bool
}

// ProductRepository defines the interface for product persistence operations.
type ProductRepository interface {
	// Create inserts a new product.
	Create(ctx context.Context, product *domain.Product) error

	// GetByID retrieves a product by its unique identifier.
	GetByID(ctx context.Context, id string) (*domain.Product, error)

	// GetBySlug retrieves a product by store and slug.
	GetBySlug(ctx context.Context, storeID, slug string) (*domain.Product, error)

	// ListByStore returns the store's products page by page. An empty
	// storeID lists across all stores.
	ListByStore(ctx context.Context, storeID string, filter ProductFilter, params pagination.Params) ([]domain.Product, int, error)

	// Update modifies an existing product.
	Update(ctx context.Context, product *domain.Product) error

	// AdjustStock atomically changes stock by delta, failing if the result
	// would go negative.
	AdjustStock(ctx context.Context, id string, delta int) error

	// Delete removes a product by its identifier.
	Delete(ctx context.Context, id string) error
}

// OrderRepository defines the interface for order persistence operations.
type OrderRepository interface {
	// Create inserts a new order with its items.
	Create(ctx context.Context, order *domain.Order) error

	// GetByID retrieves an order by its unique identifier.
	GetByID(ctx context.Context, id string) (*domain.Order, error)

	// ListByUser returns a user's orders page by page, newest first.
	ListByUser(ctx context.Context, userID string, params pagination.Params) ([]domain.Order, int, error)

	// ListByStore returns a store's orders page by page, newest first. A
	// non-empty status narrows to that status.
	ListByStore(ctx context.Context, storeID, status string, params pagination.Params) ([]domain.Order, int, error)

	// ListAll returns orders across all stores page by page, newest first.
	// A non-empty status narrows to that status.
	ListAll(ctx context.Context, status string, params pagination.Params) ([]domain.Order, int, error)

	// UpdateStatus sets the order status, with an optional cancel reason.
	UpdateStatus(ctx context.Context, id, status, reason string) error
}

// PaymentRepository defines the interface for payment persistence operations.
type PaymentRepository interface {
	// Create inserts a new payment record.
	Create(ctx context.Context, payment *domain.Payment) error

	// GetByID retrieves a payment by its unique identifier.
	GetByID(ctx context.Context, id string) (*domain.Payment, error)

	// GetByOrderID retrieves the payment for an order.
	GetByOrderID(ctx context.Context, orderID string) (*domain.Payment, error)

	// UpdateStatus sets the payment status, provider reference, and failure
	// reason.
	UpdateStatus(ctx context.Context, id, status, providerPayID, failureReason string) error
}

// HomepageRepository defines the interface for homepage content persistence.
type HomepageRepository interface {
	// GetHero retrieves the store's hero section.
	GetHero(ctx context.Context, storeID string) (*domain.HeroSection, error)

	// UpsertHero creates or replaces the store's hero section.
	UpsertHero(ctx context.Context, hero *domain.HeroSection) error

	// ListSlides returns the store's active hero slides in display order.
	ListSlides(ctx context.Context, storeID string) ([]domain.HeroSlide, error)

	// ReplaceSlides swaps the store's slide set atomically.
	ReplaceSlides(ctx context.Context, storeID string, slides []domain.HeroSlide) error

	// ListTrendingCategories returns the store's pinned categories in display order.
	ListTrendingCategories(ctx context.Context, storeID string) ([]domain.TrendingCategory, error)

	// ReplaceTrendingCategories swaps the store's pinned category set atomically.
	ReplaceTrendingCategories(ctx context.Context, storeID string, items []domain.TrendingCategory) error

	// ListTrendingProducts returns the store's pinned products in display order.
	ListTrendingProducts(ctx context.Context, storeID string) ([]domain.TrendingProduct, error)

	// ReplaceTrendingProducts swaps the store's pinned product set atomically.
	ReplaceTrendingProducts(ctx context.Context, storeID string, items []domain.TrendingProduct) error

	// ListTestimonials returns the store's testimonials, newest first.
	ListTestimonials(ctx context.Context, storeID string) ([]domain.Testimonial, error)

	// AddTestimonial inserts a testimonial.
	AddTestimonial(ctx context.Context, t *domain.Testimonial) error

	// DeleteTestimonial removes a testimonial by its identifier.
	DeleteTestimonial(ctx context.Context, id string) error
}

// AnalyticsRepository defines read-side aggregate queries for reporting.
// StoreID narrows results to one store; empty means platform-wide.
type AnalyticsRepository interface {
	// TotalSales sums order totals and counts orders over a window.
	TotalSales(ctx context.Context, storeID string, start, end time.Time) (*domain.SalesTotal, error)

	// SalesTrend returns per-day sales for the last N days.
	SalesTrend(ctx context.Context, storeID string, days int) ([]domain.SalesTrendPoint, error)

	// TopProducts ranks products by units sold.
	TopProducts(ctx context.Context, storeID string, limit int) ([]domain.TopProduct, error)

	// UserGrowth returns per-day signup counts for the last N days.
	UserGrowth(ctx context.Context, days int) ([]domain.UserGrowthPoint, error)

	// InventoryStatus lists the store's low-stock and out-of-stock products.
	InventoryStatus(ctx context.Context, storeID string) (*domain.InventoryStatus, error)
}

// CartRepository defines the interface for cart persistence operations.
type CartRepository interface {
	// Get retrieves a cart by user and store.
	Get(ctx context.Context, userID, storeID string) (*domain.Cart, error)

	// Save persists a cart, overwriting any existing cart for the user and store.
	Save(ctx context.Context, cart *domain.Cart) error

	// Delete removes a cart by user and store.
	Delete(ctx context.Context, userID, storeID string) error
}
