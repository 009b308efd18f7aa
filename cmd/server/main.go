// Package main is the entrypoint for the CropSense API server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/agrolytics/cropsense/internal/advisor"
	"github.com/agrolytics/cropsense/internal/api"
	"github.com/agrolytics/cropsense/internal/api/handler"
	mw "github.com/agrolytics/cropsense/internal/api/middleware"
	"github.com/agrolytics/cropsense/internal/api/response"
	"github.com/agrolytics/cropsense/internal/cache"
	"github.com/agrolytics/cropsense/internal/catalog"
	"github.com/agrolytics/cropsense/internal/config"
	"github.com/agrolytics/cropsense/internal/geo"
	"github.com/agrolytics/cropsense/internal/scheduler"
	"github.com/agrolytics/cropsense/internal/source"
	"github.com/agrolytics/cropsense/internal/source/sim"
)

const shutdownTimeout = 30 * time.Second

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := run(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load config — fail fast on invalid config
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	slog.Info("config loaded", "env", cfg.Server.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Create cache — Redis when configured, in-memory otherwise
	var reportCache cache.Cache
	if cfg.Redis.URL != "" {
		redisCache, err := cache.NewRedisCache(cfg.Redis.URL)
		if err != nil {
			return fmt.Errorf("create redis cache: %w", err)
		}
		defer redisCache.Close()

		if err := redisCache.Ping(ctx); err != nil {
			return fmt.Errorf("ping redis: %w", err)
		}
		slog.Info("redis connected")
		reportCache = redisCache
	} else {
		slog.Info("no REDIS_URL set, using in-memory cache")
		reportCache = cache.NewMemoryCache()
	}

	// 3. Load crop catalog
	cat := catalog.Default()
	if cfg.Catalog.Path != "" {
		cat, err = catalog.LoadFile(cfg.Catalog.Path)
		if err != nil {
			return fmt.Errorf("load crop catalog: %w", err)
		}
	}
	slog.Info("crop catalog loaded", "crops", cat.Len())

	// 4. Create data sources with fallback wrappers
	simEnv := sim.NewEnvironment(cfg.Source.Seed)
	simMarket := sim.NewMarket(cfg.Source.Seed)

	env := source.NewFallbackEnvironment(simEnv, cfg.Source.Timeout, slog.Default())
	market := source.NewFallbackMarket(simMarket, cfg.Source.Timeout, slog.Default())

	// 5. Create geocoder-backed locator
	locator := geo.NewLocator(cfg.Geocoder.APIKey)

	// 6. Create advisor service
	svc := advisor.New(cat, env, market, reportCache, locator, cfg.Cache.ReportTTL, slog.Default())

	// 7. Start periodic market refresh
	sched := scheduler.New([]source.Refresher{simMarket}, cfg.Scheduler.MarketRefreshInterval, slog.Default())
	if err := sched.Start(); err != nil {
		return fmt.Errorf("start scheduler: %w", err)
	}
	defer sched.Stop()

	// 8. Build router with dependencies
	deps := api.Dependencies{
		RateLimit: mw.NewRateLimit(reportCache, 60),

		HealthHandler:        healthHandler(reportCache),
		RecommendHandler:     handler.NewRecommendHandler(svc),
		ListCropsHandler:     handler.NewListCropsHandler(cat),
		GetCropHandler:       handler.NewGetCropHandler(cat),
		ProfitabilityHandler: handler.NewProfitabilityHandler(svc),
		PricesHandler:        handler.NewPricesHandler(market, cat),
		ForecastHandler:      handler.NewForecastHandler(market, cat, reportCache, cfg.Cache.ReportTTL),
		OutletsHandler:       handler.NewOutletsHandler(market, cat),
		HistoryHandler:       handler.NewHistoryHandler(market, cat),
	}

	router := api.NewRouter(deps)

	// 9. Start HTTP server
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in background
	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// Wait for shutdown signal or server error
	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		slog.Info("shutdown signal received, draining connections...")
	}

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped gracefully")
	return nil
}

// healthHandler checks cache connectivity.
func healthHandler(c cache.Cache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := map[string]string{
			"cache": "ok",
		}

		if err := c.Ping(r.Context()); err != nil {
			checks["cache"] = "degraded"
		}

		if checks["cache"] != "ok" {
			response.Error(w, http.StatusServiceUnavailable, "DEGRADED",
				"One or more services degraded", checks)
			return
		}

		response.JSON(w, map[string]any{
			"status":   "ok",
			"services": checks,
		})
	}
}
