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

	"github.com/julienmatondotezolo/ada-stock/internal/auth"
	"github.com/julienmatondotezolo/ada-stock/internal/config"
	"github.com/julienmatondotezolo/ada-stock/internal/db"
	"github.com/julienmatondotezolo/ada-stock/internal/http/apiv1"
	"github.com/julienmatondotezolo/ada-stock/internal/http/ratelimit"
	"github.com/julienmatondotezolo/ada-stock/internal/i18n"
	"github.com/julienmatondotezolo/ada-stock/internal/logger"
	"github.com/julienmatondotezolo/ada-stock/internal/repo"
)

// @title AdaStock API
// @version 1.0
// @description Inventory backend for the AdaStock kitchen app: products, categories, stock transactions and dashboard figures.
// @host localhost:3055
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("❌ Could not load config", "error", err)
		os.Exit(1)
	}
	log := logger.Setup(cfg.App.Env)

	// `api token <subject>` prints a bearer token for a device or operator.
	if len(os.Args) > 2 && os.Args[1] == "token" {
		if err := printToken(cfg.Auth.JWTSecret, os.Args[2]); err != nil {
			log.Error("❌ Could not create token", "error", err)
			os.Exit(1)
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var categories repo.CategoryRepository
	if cfg.Backend.DatabaseURL != "" {
		database, err := db.Connect(ctx, cfg.Backend.DatabaseURL)
		if err != nil {
			log.Error("❌ Could not connect to database", "error", err)
			os.Exit(1)
		}
		defer database.Close()
		if err := db.Migrate(ctx, database); err != nil {
			log.Error("❌ Could not migrate database", "error", err)
			os.Exit(1)
		}

		categories = repo.NewPostgresCategoryRepository(database)
		apiv1.SetProductRepo(repo.NewPostgresProductRepository(database))
		apiv1.SetCategoryRepo(categories)
		apiv1.SetTransactionRepo(repo.NewPostgresTransactionRepository(database))
		apiv1.SetDashboardRepo(repo.NewPostgresDashboardRepository(database))
	} else {
		log.Warn("⚠️ No database configured, data lives in memory only")
		_, cats, _ := apiv1.UseMemory()
		categories = cats
	}

	if n, err := repo.SeedCategories(ctx, categories, i18n.MustLoad()); err != nil {
		log.Error("❌ Could not seed categories", "error", err)
		os.Exit(1)
	} else if n > 0 {
		log.Info("seeded categories", "count", n)
	}

	if cfg.Auth.JWTSecret != "" {
		apiv1.SetTokenParser(auth.NewSigner(cfg.Auth.JWTSecret, auth.DefaultTTL))
	} else {
		log.Warn("⚠️ No JWT secret configured, write routes are open")
	}

	limiter := ratelimit.New(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	go limiter.StartCleanupLoop(ctx)
	apiv1.SetLimiter(limiter)

	srv := &http.Server{
		Addr:              cfg.Backend.Addr,
		Handler:           apiv1.NewRouter(log),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info("✅ Server running on " + cfg.Backend.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func printToken(secret, subject string) error {
	if secret == "" {
		return errors.New("auth.jwt_secret is not set")
	}
	token, err := auth.NewSigner(secret, auth.DefaultTTL).GenerateToken(subject, "device")
	if err != nil {
		return err
	}
	fmt.Println(token)
	return nil
}
