package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aquasur/aquasur-backend/api/controllers"
	"github.com/aquasur/aquasur-backend/api/middleware"
	"github.com/aquasur/aquasur-backend/internal/addons"
	authsvc "github.com/aquasur/aquasur-backend/internal/auth"
	"github.com/aquasur/aquasur-backend/internal/cart"
	"github.com/aquasur/aquasur-backend/internal/catalog"
	"github.com/aquasur/aquasur-backend/internal/content"
	"github.com/aquasur/aquasur-backend/internal/quotes"
	"github.com/aquasur/aquasur-backend/pkg/config"
	"github.com/aquasur/aquasur-backend/pkg/db"
	"github.com/aquasur/aquasur-backend/pkg/logger"
	"github.com/aquasur/aquasur-backend/pkg/redis"
)

// Services bundles everything the router mounts.
type Services struct {
	Auth    authsvc.Service
	Catalog catalog.Service
	Addons  addons.Service
	Cart    cart.Service
	Content content.Service
	Quotes  quotes.Service
}

// NewRouter assembles the public storefront API and the admin API behind the
// JWT guard.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbClient db.Pinger,
	redisClient *redis.Client,
	metricsRegistry *prometheus.Registry,
	svcs Services,
) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbClient, redisClient))
	})

	if metricsRegistry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(metricsRegistry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/categories", controllers.ListCategories(svcs.Catalog, logg))
		r.Get("/products", controllers.ListProducts(svcs.Catalog, logg))
		r.Get("/products/{productId}", controllers.GetProduct(svcs.Catalog, logg))
		r.Get("/content/{key}", controllers.GetContent(svcs.Content, logg))

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartGet(svcs.Cart, logg))
			r.Post("/items", controllers.CartAddItem(svcs.Cart, logg))
			r.Patch("/items/{lineId}", controllers.CartUpdateLine(svcs.Cart, logg))
			r.Delete("/items/{lineId}", controllers.CartRemoveLine(svcs.Cart, logg))
			r.Delete("/", controllers.CartClear(svcs.Cart, logg))
		})

		r.Post("/quotes", controllers.SubmitQuote(svcs.Quotes, logg))
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, redisClient, logg)).
			Post("/auth/login", controllers.AdminAuthLogin(svcs.Auth, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, logg))

			r.Route("/categories", func(r chi.Router) {
				r.Post("/", controllers.AdminCreateCategory(svcs.Catalog, logg))
				r.Put("/{categoryId}", controllers.AdminUpdateCategory(svcs.Catalog, logg))
				r.Delete("/{categoryId}", controllers.AdminDeleteCategory(svcs.Catalog, logg))
			})

			r.Route("/products", func(r chi.Router) {
				r.Get("/", controllers.AdminListProducts(svcs.Catalog, logg))
				r.Post("/", controllers.AdminCreateProduct(svcs.Catalog, logg))
				r.Get("/{productId}", controllers.AdminGetProduct(svcs.Catalog, logg))
				r.Put("/{productId}", controllers.AdminUpdateProduct(svcs.Catalog, logg))
				r.Delete("/{productId}", controllers.AdminDeleteProduct(svcs.Catalog, logg))
			})

			r.Route("/addons", func(r chi.Router) {
				r.Get("/", controllers.AdminListAddons(svcs.Addons, logg))
				r.Post("/", controllers.AdminCreateAddon(svcs.Addons, logg))
				r.Put("/{addonId}", controllers.AdminUpdateAddon(svcs.Addons, logg))
				r.Delete("/{addonId}", controllers.AdminDeleteAddon(svcs.Addons, logg))
			})

			r.Route("/content", func(r chi.Router) {
				r.Get("/", controllers.AdminListContent(svcs.Content, logg))
				r.Post("/", controllers.AdminCreateContent(svcs.Content, logg))
				r.Put("/{entryId}", controllers.AdminUpdateContent(svcs.Content, logg))
				r.Delete("/{entryId}", controllers.AdminDeleteContent(svcs.Content, logg))
			})

			r.Route("/settings", func(r chi.Router) {
				r.Get("/", controllers.AdminListSettings(svcs.Content, logg))
				r.Put("/", controllers.AdminPutSetting(svcs.Content, logg))
				r.Delete("/{key}", controllers.AdminDeleteSetting(svcs.Content, logg))
			})

			r.Route("/quotes", func(r chi.Router) {
				r.Get("/", controllers.AdminListQuotes(svcs.Quotes, logg))
				r.Get("/{quoteId}", controllers.AdminGetQuote(svcs.Quotes, logg))
				r.Patch("/{quoteId}/status", controllers.AdminUpdateQuoteStatus(svcs.Quotes, logg))
			})
		})
	})

	return r
}
