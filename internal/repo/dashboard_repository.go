package repo

import (
	"context"

	"github.com/julienmatondotezolo/ada-stock/internal/models"
)

// DashboardRepository aggregates the inventory for the dashboard endpoints.
type DashboardRepository interface {
	Summary(ctx context.Context, today string) (models.DashboardSummary, error)
	Categories(ctx context.Context) ([]models.CategorySummary, error)
	RecentActivity(ctx context.Context, limit int) ([]models.ActivityEntry, error)
	StockStatus(ctx context.Context) (models.StockStatusReport, error)
}
