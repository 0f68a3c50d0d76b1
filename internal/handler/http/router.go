package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/zeel68/YouliteBackend/internal/auth"
	"github.com/zeel68/YouliteBackend/internal/domain"
	"github.com/zeel68/YouliteBackend/internal/service"
	"github.com/zeel68/YouliteBackend/pkg/health"
	"github.com/zeel68/YouliteBackend/pkg/middleware"
)

// Services bundles everything the router needs from the service layer.
type Services struct {
	User      *service.UserService
	Role      *service.RoleService
	Store     *service.StoreService
	Catalog   *service.CatalogService
	Product   *service.ProductService
	Cart      *service.CartService
	Order     *service.OrderService
	Payment   *service.PaymentService
	Homepage  *service.HomepageService
	Analytics *service.AnalyticsService
}

// NewRouter creates a chi router with all routes registered.
func NewRouter(
	svcs Services,
	jwtManager *auth.JWTManager,
	healthHandler *health.Handler,
	logger *slog.Logger,
	corsConfig middleware.CORSConfig,
	serviceName string,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.PrometheusMetrics(serviceName))
	r.Use(middleware.Tracing(serviceName))
	r.Use(middleware.CORS(corsConfig))

	// Health and metrics
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	authHandler := NewAuthHandler(svcs.User, jwtManager, logger)
	userHandler := NewUserHandler(svcs.User, logger)
	roleHandler := NewRoleHandler(svcs.Role, logger)
	storeHandler := NewStoreHandler(svcs.Store, logger)
	catalogHandler := NewCatalogHandler(svcs.Catalog, logger)
	productHandler := NewProductHandler(svcs.Product, logger)
	cartHandler := NewCartHandler(svcs.Cart, logger)
	orderHandler := NewOrderHandler(svcs.Order, logger)
	paymentHandler := NewPaymentHandler(svcs.Payment, logger)
	homepageHandler := NewHomepageHandler(svcs.Homepage, logger)
	analyticsHandler := NewAnalyticsHandler(svcs.Analytics, logger)

	authenticate := Authenticate(jwtManager, svcs.User)
	staffOnly := RequireRole(domain.RoleStoreOwner, domain.RoleSuperAdmin)
	superadminOnly := RequireRole(domain.RoleSuperAdmin)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		// Auth (public)
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.Refresh)

			r.Group(func(r chi.Router) {
				r.Use(authenticate)
				r.Post("/logout", authHandler.Logout)
				r.Post("/change-password", authHandler.ChangePassword)
			})
		})

		// Profile
		r.Route("/users", func(r chi.Router) {
			r.Use(authenticate)
			r.Get("/me", userHandler.Me)
			r.Put("/me", userHandler.UpdateProfile)
		})

		// Platform catalog (categories and tags are platform-level; writes are
		// superadmin-only)
		r.Route("/categories", func(r chi.Router) {
			r.Get("/", catalogHandler.ListCategories)
			r.Get("/{id}", catalogHandler.GetCategory)

			r.Group(func(r chi.Router) {
				r.Use(authenticate, superadminOnly)
				r.Post("/", catalogHandler.CreateCategory)
				r.Put("/{id}", catalogHandler.UpdateCategory)
				r.Delete("/{id}", catalogHandler.DeleteCategory)
			})
		})
		r.Route("/tags", func(r chi.Router) {
			r.Get("/", catalogHandler.ListTags)

			r.Group(func(r chi.Router) {
				r.Use(authenticate, superadminOnly)
				r.Post("/", catalogHandler.CreateTag)
				r.Put("/{id}", catalogHandler.UpdateTag)
				r.Delete("/{id}", catalogHandler.DeleteTag)
			})
		})

		// Stores
		r.Route("/stores", func(r chi.Router) {
			r.Get("/", storeHandler.List)
			r.Get("/domain/{domain}", storeHandler.GetByDomain)

			r.Group(func(r chi.Router) {
				r.Use(authenticate, superadminOnly)
				r.Post("/", storeHandler.Create)
			})

			r.Route("/{storeID}", func(r chi.Router) {
				r.Get("/", storeHandler.Get)
				r.Get("/config", storeHandler.GetConfig)
				r.Get("/homepage", homepageHandler.GetContent)
				r.Get("/products", productHandler.List)
				r.Get("/products/{id}", productHandler.Get)

				// Tenant-scoped writes
				r.Group(func(r chi.Router) {
					r.Use(authenticate, staffOnly, RequireStoreAccess)

					r.Put("/", storeHandler.Update)
					r.Put("/config", storeHandler.UpdateConfig)

					r.Post("/products", productHandler.Create)
					r.Put("/products/{id}", productHandler.Update)
					r.Delete("/products/{id}", productHandler.Delete)

					r.Put("/homepage/hero", homepageHandler.UpdateHero)
					r.Put("/homepage/slides", homepageHandler.ReplaceSlides)
					r.Put("/homepage/trending-categories", homepageHandler.ReplaceTrendingCategories)
					r.Put("/homepage/trending-products", homepageHandler.ReplaceTrendingProducts)
					r.Post("/homepage/testimonials", homepageHandler.AddTestimonial)
					r.Delete("/homepage/testimonials/{id}", homepageHandler.DeleteTestimonial)

					r.Get("/orders", orderHandler.ListForStore)
					r.Patch("/orders/{id}/status", orderHandler.UpdateStatus)

					r.Get("/analytics/sales", analyticsHandler.TotalSales)
					r.Get("/analytics/sales-trend", analyticsHandler.SalesTrend)
					r.Get("/analytics/top-products", analyticsHandler.TopProducts)
					r.Get("/analytics/inventory", analyticsHandler.InventoryStatus)
				})

				r.Group(func(r chi.Router) {
					r.Use(authenticate, superadminOnly)
					r.Delete("/", storeHandler.Delete)
				})

				// Customer cart and checkout
				r.Group(func(r chi.Router) {
					r.Use(authenticate)

					r.Get("/cart", cartHandler.Get)
					r.Delete("/cart", cartHandler.Clear)
					r.Post("/cart/items", cartHandler.AddItem)
					r.Put("/cart/items/{productID}", cartHandler.UpdateItem)
					r.Delete("/cart/items/{productID}", cartHandler.RemoveItem)

					r.Post("/orders", orderHandler.Place)
				})
			})
		})

		// Orders and payments (customer-facing)
		r.Group(func(r chi.Router) {
			r.Use(authenticate)

			r.Get("/orders", orderHandler.ListMine)
			r.Get("/orders/{id}", orderHandler.Get)
			r.Post("/orders/{id}/cancel", orderHandler.Cancel)
			r.Post("/orders/{id}/pay", paymentHandler.Charge)
			r.Get("/orders/{id}/payment", paymentHandler.GetForOrder)
		})

		// Payments (staff)
		r.Group(func(r chi.Router) {
			r.Use(authenticate, staffOnly)
			r.Get("/payments/{id}", paymentHandler.Get)
			r.Post("/payments/{id}/refund", paymentHandler.Refund)
		})

		// Admin (cross-tenant)
		r.Route("/admin", func(r chi.Router) {
			r.Use(authenticate, superadminOnly)

			r.Get("/users", userHandler.List)
			r.Delete("/users/{id}", userHandler.Delete)
			r.Get("/roles", roleHandler.List)
			r.Get("/roles/{name}", roleHandler.Get)
			r.Get("/stores", storeHandler.List)
			r.Get("/orders", orderHandler.ListAll)
			r.Get("/products", productHandler.ListAll)
			r.Get("/analytics/user-growth", analyticsHandler.UserGrowth)
			r.Get("/analytics/sales", analyticsHandler.TotalSales)
			r.Get("/analytics/sales-trend", analyticsHandler.SalesTrend)
		})
	})

	return r
}
