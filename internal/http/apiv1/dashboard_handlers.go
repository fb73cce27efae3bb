package apiv1

import (
	"log/slog"
	"net/http"

	"github.com/julienmatondotezolo/ada-stock/internal/stock"
)

const (
	defaultActivityLimit = 10
	maxActivityLimit     = 100
)

// GetDashboardSummaryHandler godoc
// @Summary Inventory totals
// @Tags dashboard
// @Produce json
// @Success 200 {object} Response{data=models.DashboardSummary}
// @Failure 500 {object} Response
// @Router /dashboard/summary [get]
func GetDashboardSummaryHandler(w http.ResponseWriter, r *http.Request) {
	summary, err := dashboardRepo.Summary(r.Context(), stock.Today(now()))
	if err != nil {
		slog.Error("could not compute dashboard summary", "error", err)
		fail(w, http.StatusInternalServerError, "could not compute summary")
		return
	}
	respond(w, http.StatusOK, summary, "")
}

// GetDashboardCategoriesHandler godoc
// @Summary Per-category stock breakdown
// @Tags dashboard
// @Produce json
// @Success 200 {object} Response{data=[]models.CategorySummary}
// @Failure 500 {object} Response
// @Router /dashboard/categories [get]
func GetDashboardCategoriesHandler(w http.ResponseWriter, r *http.Request) {
	categories, err := dashboardRepo.Categories(r.Context())
	if err != nil {
		slog.Error("could not compute category breakdown", "error", err)
		fail(w, http.StatusInternalServerError, "could not compute categories")
		return
	}
	respond(w, http.StatusOK, categories, "")
}

// GetRecentActivityHandler godoc
// @Summary Latest stock transactions
// @Tags dashboard
// @Produce json
// @Param limit query int false "Number of entries (default 10, max 100)"
// @Success 200 {object} Response{data=[]models.ActivityEntry}
// @Failure 400 {object} Response
// @Failure 500 {object} Response
// @Router /dashboard/recent-activity [get]
func GetRecentActivityHandler(w http.ResponseWriter, r *http.Request) {
	limit := defaultActivityLimit
	v, err := queryInt(r, "limit")
	if err != nil {
		fail(w, http.StatusBadRequest, err.Error())
		return
	}
	if v != nil {
		if *v <= 0 {
			fail(w, http.StatusBadRequest, "limit must be greater than zero")
			return
		}
		limit = min(*v, maxActivityLimit)
	}

	activity, err := dashboardRepo.RecentActivity(r.Context(), limit)
	if err != nil {
		slog.Error("could not fetch recent activity", "error", err)
		fail(w, http.StatusInternalServerError, "could not fetch recent activity")
		return
	}
	respond(w, http.StatusOK, activity, "")
}

// GetStockStatusHandler godoc
// @Summary Products needing attention
// @Tags dashboard
// @Produce json
// @Success 200 {object} Response{data=models.StockStatusReport}
// @Failure 500 {object} Response
// @Router /dashboard/stock-status [get]
func GetStockStatusHandler(w http.ResponseWriter, r *http.Request) {
	report, err := dashboardRepo.StockStatus(r.Context())
	if err != nil {
		slog.Error("could not compute stock status", "error", err)
		fail(w, http.StatusInternalServerError, "could not compute stock status")
		return
	}
	respond(w, http.StatusOK, report, "")
}
