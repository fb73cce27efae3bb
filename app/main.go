package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/julienmatondotezolo/ada-stock/internal/cache"
	"github.com/julienmatondotezolo/ada-stock/internal/client"
	"github.com/julienmatondotezolo/ada-stock/internal/config"
	"github.com/julienmatondotezolo/ada-stock/internal/http/ratelimit"
	"github.com/julienmatondotezolo/ada-stock/internal/http/web"
	"github.com/julienmatondotezolo/ada-stock/internal/i18n"
	"github.com/julienmatondotezolo/ada-stock/internal/logger"
	"github.com/julienmatondotezolo/ada-stock/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("❌ Could not load config", "error", err)
		os.Exit(1)
	}
	log := logger.Setup(cfg.App.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	baseURL := client.ResolveBaseURL(cfg.API.URL, cfg.App.Hostname)
	api := client.New(baseURL,
		client.WithToken(cfg.API.Token),
		client.WithHTTPClient(&http.Client{Timeout: 10 * time.Second}),
	)
	log.Info("using inventory API", "base_url", baseURL)

	var snapshots cache.SnapshotStore = cache.NewMemory()
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Warn("⚠️ Redis unreachable, keeping snapshots in memory", "addr", cfg.Redis.Addr, "error", err)
		} else {
			snapshots = cache.NewRedis(rdb, cfg.Redis.SnapshotTTL)
		}
	}

	st := store.New(api, store.WithSnapshots(snapshots), store.WithLogger(log))
	if err := st.Load(ctx); err != nil {
		log.Warn("⚠️ Initial load failed, serving fallback data", "error", err)
	}

	catalog, err := i18n.Load()
	if err != nil {
		log.Error("❌ Could not load translations", "error", err)
		os.Exit(1)
	}
	defaultLocale, ok := i18n.ParseLocale(cfg.App.DefaultLocale)
	if !ok {
		defaultLocale = i18n.DefaultLocale
	}

	limiter := ratelimit.New(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	go limiter.StartCleanupLoop(ctx)

	srv, err := web.NewServer(st, catalog,
		web.WithDefaultLocale(defaultLocale),
		web.WithLogger(log),
		web.WithRateLimit(limiter),
	)
	if err != nil {
		log.Error("❌ Could not build web server", "error", err)
		os.Exit(1)
	}

	httpSrv := &http.Server{
		Addr:              cfg.App.Addr,
		Handler:           srv.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpSrv.Shutdown(shutdownCtx)
	}()

	log.Info("✅ AdaStock running on " + cfg.App.Addr)
	if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
