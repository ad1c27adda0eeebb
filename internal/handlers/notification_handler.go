package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"wardrobe-backend/internal/middleware"
	"wardrobe-backend/internal/models"
	"wardrobe-backend/internal/realtime"
	"wardrobe-backend/internal/repositories"
	"wardrobe-backend/pkg/utils"
)

type NotificationHandler struct {
	NotificationRepo *repositories.NotificationRepository
	Hub              *realtime.Hub
}

func NewNotificationHandler(notificationRepo *repositories.NotificationRepository, hub *realtime.Hub) *NotificationHandler {
	return &NotificationHandler{
		NotificationRepo: notificationRepo,
		Hub:              hub,
	}
}

func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	notifications, err := h.NotificationRepo.ListByUser(r.Context(), userID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to fetch notifications")
		return
	}

	utils.JSON(w, http.StatusOK, notifications)
}

func (h *NotificationHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	var notification models.Notification
	if err := json.NewDecoder(r.Body).Decode(&notification); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if notification.Title == "" {
		utils.Error(w, http.StatusBadRequest, "Title is required")
		return
	}
	if notification.Type == "" {
		notification.Type = models.NotificationTypeSystem
	}
	notification.UserID = userID

	if err := h.NotificationRepo.Create(r.Context(), &notification); err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to create notification")
		return
	}

	if h.Hub != nil {
		h.Hub.Publish(realtime.Event{
			Type:    realtime.EventNotificationCreated,
			UserID:  userID,
			Payload: notification,
		})
	}

	utils.JSON(w, http.StatusCreated, notification)
}

func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	notificationID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid notification ID")
		return
	}

	if err := h.NotificationRepo.MarkRead(r.Context(), userID, notificationID); err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to update notification")
		return
	}

	utils.JSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

func (h *NotificationHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	if err := h.NotificationRepo.MarkAllRead(r.Context(), userID); err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to update notifications")
		return
	}

	utils.JSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

func (h *NotificationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	notificationID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid notification ID")
		return
	}

	if err := h.NotificationRepo.Delete(r.Context(), userID, notificationID); err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to delete notification")
		return
	}

	utils.JSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

func (h *NotificationHandler) ClearAll(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	if err := h.NotificationRepo.ClearAll(r.Context(), userID); err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to clear notifications")
		return
	}

	utils.JSON(w, http.StatusOK, map[string]interface{}{"success": true})
}
