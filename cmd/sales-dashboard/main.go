// Package main boots the Sales Dashboard HTTP server.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/fairyhunter13/sales-dashboard-service/internal/cache"
	"github.com/fairyhunter13/sales-dashboard-service/internal/carts"
	"github.com/fairyhunter13/sales-dashboard-service/internal/catalog"
	"github.com/fairyhunter13/sales-dashboard-service/internal/config"
	"github.com/fairyhunter13/sales-dashboard-service/internal/dashboard"
	httpapi "github.com/fairyhunter13/sales-dashboard-service/internal/http"
	"github.com/fairyhunter13/sales-dashboard-service/internal/obs"
	"github.com/fairyhunter13/sales-dashboard-service/internal/sales"
)

const serviceName = "sales-dashboard"

func main() {
	cfg, err := config.Load()
	if err != nil {
		obs.Logger.Error("config_invalid", "error", err)
		os.Exit(1)
	}
	obs.InitLogger(cfg.LogLevel)
	obs.Logger.Info("service_starting", "addr", cfg.HTTPAddr, "carts_base_url", cfg.CartsBaseURL)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shutdownTracing, err := obs.SetupTracing(ctx, serviceName, cfg.OTelEndpoint)
	if err != nil {
		obs.Logger.Error("tracing_setup_failed", "error", err)
		os.Exit(1)
	}

	cat := catalog.New()
	if cfg.SeedProducts {
		seeded := cat.Seed(catalog.DefaultSeed)
		obs.Logger.Info("products_seeded", "count", len(seeded))
	}

	var cc cache.CartCache = cache.Noop{}
	var rdb *redis.Client
	if cfg.RedisAddr != "" && !cfg.CacheEnabled() {
		obs.Logger.Warn("carts_cache_disabled", "reason", "non-positive CARTS_CACHE_TTL")
	}
	if cfg.CacheEnabled() {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		pingCtx, pingCancel := context.WithTimeout(ctx, 3*time.Second)
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			obs.Logger.Warn("redis_unavailable", "addr", cfg.RedisAddr, "error", err)
		} else {
			obs.Logger.Info("redis_connected", "addr", cfg.RedisAddr)
		}
		pingCancel()
		cc = cache.NewRedisCache(rdb, cfg.CartsCacheTTL)
	}

	client := carts.New(cfg.CartsBaseURL,
		carts.WithTimeout(cfg.CartsTimeout),
		carts.WithCache(cc),
		carts.WithBreaker(carts.BreakerSettings{
			MaxFailures: cfg.BreakerMaxFailures,
			OpenTimeout: cfg.BreakerOpenTimeout,
		}),
	)

	format, err := sales.NewFormatter(cfg.DisplayLocale, cfg.DisplayCurrency)
	if err != nil {
		obs.Logger.Error("display_format_invalid", "error", err)
		os.Exit(1)
	}
	dash := dashboard.New(client, cfg.CartsLimit, format, time.Now)

	app := httpapi.NewApp(cfg, cat, dash, client)
	mux := httpapi.NewRouter(app)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		obs.Logger.Info("http_listen", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			obs.Logger.Error("http_server_error", "error", err)
			os.Exit(1)
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	s := <-sigc
	obs.Logger.Info("shutdown_signal", "signal", s.String())

	app.StartShutdown()

	ctxSrv, cancelSrv := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancelSrv()
	if err := srv.Shutdown(ctxSrv); err != nil {
		obs.Logger.Error("http_shutdown_error", "error", err)
	}
	if rdb != nil {
		if err := rdb.Close(); err != nil {
			obs.Logger.Warn("redis_close_error", "error", err)
		}
	}
	if err := shutdownTracing(ctxSrv); err != nil {
		obs.Logger.Warn("tracing_shutdown_error", "error", err)
	}
	obs.Logger.Info("service_stopped", "products", cat.Len(), "carts_fetches", client.Stats().Fetches)
}
