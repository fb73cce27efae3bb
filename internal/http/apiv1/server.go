// Package apiv1 serves the AdaStock REST backend under /api/v1.
package apiv1

import (
	"time"

	"github.com/julienmatondotezolo/ada-stock/internal/http/middleware"
	"github.com/julienmatondotezolo/ada-stock/internal/http/ratelimit"
	"github.com/julienmatondotezolo/ada-stock/internal/repo"
)

const (
	ServiceName = "ada-stock-api"
	Version     = "1.0.0"
)

var (
	productRepo     repo.ProductRepository
	categoryRepo    repo.CategoryRepository
	transactionRepo repo.TransactionRepository
	dashboardRepo   repo.DashboardRepository

	tokenParser middleware.TokenParser
	limiter     *ratelimit.Limiter

	now = time.Now
)

func SetProductRepo(r repo.ProductRepository) {
	productRepo = r
}

func SetCategoryRepo(r repo.CategoryRepository) {
	categoryRepo = r
}

func SetTransactionRepo(r repo.TransactionRepository) {
	transactionRepo = r
}

func SetDashboardRepo(r repo.DashboardRepository) {
	dashboardRepo = r
}

// SetTokenParser enables bearer auth on write routes. Pass nil to disable it.
func SetTokenParser(p middleware.TokenParser) {
	tokenParser = p
}

// SetLimiter enables per-client rate limiting on write routes.
func SetLimiter(l *ratelimit.Limiter) {
	limiter = l
}

// UseMemory wires fresh in-memory repositories and returns them.
func UseMemory() (*repo.InMemoryProductRepository, *repo.InMemoryCategoryRepository, *repo.InMemoryTransactionRepository) {
	products := repo.NewInMemoryProductRepository()
	categories := repo.NewInMemoryCategoryRepository()
	transactions := repo.NewInMemoryTransactionRepository()
	dashboard := repo.NewInMemoryDashboardRepository()
	dashboard.SetRepositories(products, categories, transactions)

	SetProductRepo(products)
	SetCategoryRepo(categories)
	SetTransactionRepo(transactions)
	SetDashboardRepo(dashboard)
	return products, categories, transactions
}
