package handlers

import (
	"net/http"

	"wardrobe-backend/internal/middleware"
	"wardrobe-backend/internal/realtime"
	"wardrobe-backend/pkg/utils"
)

type RealtimeHandler struct {
	Hub *realtime.Hub
}

func NewRealtimeHandler(hub *realtime.Hub) *RealtimeHandler {
	return &RealtimeHandler{Hub: hub}
}

// Events upgrades the connection and streams the user's change events
func (h *RealtimeHandler) Events(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	h.Hub.ServeWS(w, r, userID)
}
