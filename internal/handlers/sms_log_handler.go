package handlers

import (
	"context"
	"net/http"
	"strconv"

	"wardrobe-backend/internal/models"
	"wardrobe-backend/pkg/utils"
)

// SMSLogStore is the read surface for the delivery audit trail.
// Implemented by repositories.SMSLogRepository.
type SMSLogStore interface {
	List(ctx context.Context, limit, offset int) ([]models.SMSLog, error)
}

type SMSLogHandler struct {
	SMSLogRepo SMSLogStore
}

func NewSMSLogHandler(smsLogRepo SMSLogStore) *SMSLogHandler {
	return &SMSLogHandler{SMSLogRepo: smsLogRepo}
}

// List returns paginated SMS delivery logs for ops inspection
func (h *SMSLogHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	if offset < 0 {
		offset = 0
	}

	logs, err := h.SMSLogRepo.List(r.Context(), limit, offset)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to fetch SMS logs")
		return
	}

	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"logs":   logs,
		"limit":  limit,
		"offset": offset,
	})
}
