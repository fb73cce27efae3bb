package client

import (
	"context"
	"net/http"
	"strconv"

	"github.com/julienmatondotezolo/ada-stock/internal/models"
)

// DefaultActivityLimit is used when RecentActivity is called with limit <= 0.
const DefaultActivityLimit = 10

func (c *Client) DashboardSummary(ctx context.Context) (models.DashboardSummary, error) {
	return do[models.DashboardSummary](ctx, c, http.MethodGet, "/dashboard/summary", nil)
}

func (c *Client) CategorySummaries(ctx context.Context) ([]models.CategorySummary, error) {
	return do[[]models.CategorySummary](ctx, c, http.MethodGet, "/dashboard/categories", nil)
}

func (c *Client) RecentActivity(ctx context.Context, limit int) ([]models.ActivityEntry, error) {
	if limit <= 0 {
		limit = DefaultActivityLimit
	}
	return do[[]models.ActivityEntry](ctx, c, http.MethodGet, "/dashboard/recent-activity?limit="+strconv.Itoa(limit), nil)
}

func (c *Client) StockStatus(ctx context.Context) (models.StockStatusReport, error) {
	return do[models.StockStatusReport](ctx, c, http.MethodGet, "/dashboard/stock-status", nil)
}
