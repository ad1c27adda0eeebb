package handlers

import (
	"net/http"

	"wardrobe-backend/internal/health"
	"wardrobe-backend/internal/monitoring"
	"wardrobe-backend/pkg/utils"
)

type HealthHandler struct {
	Checker   *health.HealthChecker
	Collector *monitoring.Collector
}

func NewHealthHandler(checker *health.HealthChecker, collector *monitoring.Collector) *HealthHandler {
	return &HealthHandler{
		Checker:   checker,
		Collector: collector,
	}
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	status := h.Checker.CheckBasic()

	code := http.StatusOK
	if status.Status != "healthy" {
		code = http.StatusServiceUnavailable
	}
	utils.JSON(w, code, status)
}

// Stats exposes host and database metrics for the ops dashboard
func (h *HealthHandler) Stats(w http.ResponseWriter, r *http.Request) {
	utils.JSON(w, http.StatusOK, h.Collector.Collect(r.Context()))
}
