package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/aquasur/aquasur-backend/api/routes"
	"github.com/aquasur/aquasur-backend/internal/addons"
	authsvc "github.com/aquasur/aquasur-backend/internal/auth"
	"github.com/aquasur/aquasur-backend/internal/cart"
	"github.com/aquasur/aquasur-backend/internal/catalog"
	"github.com/aquasur/aquasur-backend/internal/content"
	"github.com/aquasur/aquasur-backend/internal/quotes"
	"github.com/aquasur/aquasur-backend/pkg/config"
	"github.com/aquasur/aquasur-backend/pkg/db"
	"github.com/aquasur/aquasur-backend/pkg/logger"
	"github.com/aquasur/aquasur-backend/pkg/metrics"
	"github.com/aquasur/aquasur-backend/pkg/migrate"
	"github.com/aquasur/aquasur-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	quoteMetrics := metrics.NewQuoteMetrics(registry)

	addonRepo := addons.NewRepo(dbClient.DB())
	catalogRepo := catalog.NewRepo(dbClient.DB())
	contentRepo := content.NewRepo(dbClient.DB())
	authRepo := authsvc.NewRepo(dbClient.DB())
	quoteRepo := quotes.NewRepo(dbClient.DB())

	addonService, err := addons.NewService(addonRepo, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create addon service", err)
		os.Exit(1)
	}

	catalogService, err := catalog.NewService(catalogRepo, addonRepo, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	contentService, err := content.NewService(contentRepo, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create content service", err)
		os.Exit(1)
	}

	authService, err := authsvc.NewService(authRepo, cfg.JWT, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	cartStore, err := cart.NewStore(redisClient, cfg.Cart.TTL)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart store", err)
		os.Exit(1)
	}

	cartService, err := cart.NewService(cartStore, catalogRepo, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	numberGen, err := quotes.NewNumberGenerator(redisClient, cfg.Quotes.NumberPrefix)
	if err != nil {
		logg.Error(context.Background(), "failed to create quote number generator", err)
		os.Exit(1)
	}

	quoteService, err := quotes.NewService(quoteRepo, cartStore, numberGen, nil, quoteMetrics, cfg.Quotes, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create quote service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(cfg, logg, dbClient, redisClient, registry, routes.Services{
			Auth:    authService,
			Catalog: catalogService,
			Addons:  addonService,
			Cart:    cartService,
			Content: contentService,
			Quotes:  quoteService,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
