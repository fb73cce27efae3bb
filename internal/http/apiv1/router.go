package apiv1

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/julienmatondotezolo/ada-stock/docs"
	"github.com/julienmatondotezolo/ada-stock/internal/http/middleware"
)

// NewRouter mounts the REST contract under /api/v1, plus /health and the
// Swagger UI.
func NewRouter(logger *slog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logging(logger))
	r.Use(chimw.Recoverer)

	r.Get("/health", HealthHandler)
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", HealthHandler)

		r.Get("/categories", GetCategoriesHandler)
		r.Get("/categories/{id}", GetCategoryByIDHandler)
		r.Get("/products", GetProductsHandler)
		r.Get("/products/{id}", GetProductByIDHandler)
		r.Get("/products/{id}/transactions", GetProductTransactionsHandler)

		r.Get("/dashboard/summary", GetDashboardSummaryHandler)
		r.Get("/dashboard/categories", GetDashboardCategoriesHandler)
		r.Get("/dashboard/recent-activity", GetRecentActivityHandler)
		r.Get("/dashboard/stock-status", GetStockStatusHandler)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireToken(tokenParser, unauthorized))
			if limiter != nil {
				r.Use(middleware.RateLimit(limiter, tooManyRequests))
			}

			r.Post("/categories", CreateCategoryHandler)
			r.Put("/categories/{id}", UpdateCategoryHandler)
			r.Delete("/categories/{id}", DeleteCategoryHandler)

			r.Post("/products", CreateProductHandler)
			r.Put("/products/{id}", UpdateProductHandler)
			r.Delete("/products/{id}", DeleteProductHandler)
			r.Post("/products/{id}/quantity", SetQuantityHandler)
			r.Post("/products/{id}/adjust", AdjustQuantityHandler)

			r.Post("/transactions", CreateTransactionHandler)
			r.Post("/transactions/stock-in", StockInHandler)
			r.Post("/transactions/stock-out", StockOutHandler)
		})
	})

	return r
}
