package apiv1

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/julienmatondotezolo/ada-stock/internal/models"
)

// HealthHandler godoc
// @Summary Health check
// @Description Unenveloped liveness probe
// @Tags health
// @Produce json
// @Success 200 {object} models.Health
// @Router /health [get]
func HealthHandler(w http.ResponseWriter, r *http.Request) {
	body := models.Health{
		Status:    "ok",
		Service:   ServiceName,
		Timestamp: now().UTC().Format(time.RFC3339),
		Version:   Version,
	}
	if err := writeJSON(w, http.StatusOK, body); err != nil {
		slog.Error("could not write health response", "error", err)
	}
}
