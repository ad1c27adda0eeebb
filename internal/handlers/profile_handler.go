package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"path"
	"strings"

	"wardrobe-backend/internal/middleware"
	"wardrobe-backend/internal/models"
	"wardrobe-backend/internal/realtime"
	"wardrobe-backend/internal/repositories"
	"wardrobe-backend/internal/storage"
	"wardrobe-backend/pkg/utils"
)

// maxUploadSize caps image uploads at 10 MB
const maxUploadSize = 10 << 20

type ProfileHandler struct {
	ProfileRepo *repositories.ProfileRepository
	Uploader    *storage.Uploader
	Hub         *realtime.Hub
}

func NewProfileHandler(profileRepo *repositories.ProfileRepository, uploader *storage.Uploader, hub *realtime.Hub) *ProfileHandler {
	return &ProfileHandler{
		ProfileRepo: profileRepo,
		Uploader:    uploader,
		Hub:         hub,
	}
}

func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	profile, err := h.ProfileRepo.GetByUserID(r.Context(), userID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to fetch profile")
		return
	}
	if profile == nil {
		utils.Error(w, http.StatusNotFound, "Profile not found")
		return
	}

	utils.JSON(w, http.StatusOK, profile)
}

func (h *ProfileHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	var profile models.UserProfile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	profile.UserID = userID

	if err := h.ProfileRepo.Create(r.Context(), &profile); err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to create profile")
		return
	}

	h.publishUpdate(userID, &profile)
	utils.JSON(w, http.StatusCreated, profile)
}

// Upsert inserts or updates the profile, mirroring the client's
// save-as-you-go setup flow.
func (h *ProfileHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	var profile models.UserProfile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	profile.UserID = userID

	if err := h.ProfileRepo.Upsert(r.Context(), &profile); err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to save profile")
		return
	}

	h.publishUpdate(userID, &profile)
	utils.JSON(w, http.StatusOK, profile)
}

func (h *ProfileHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	if err := h.ProfileRepo.Delete(r.Context(), userID); err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to delete profile")
		return
	}

	h.publishUpdate(userID, nil)
	utils.JSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

// Complete reports whether the profile setup flow can finish
func (h *ProfileHandler) Complete(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	profile, err := h.ProfileRepo.GetByUserID(r.Context(), userID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to fetch profile")
		return
	}

	complete := profile != nil && profile.IsComplete()
	utils.JSON(w, http.StatusOK, map[string]interface{}{"complete": complete})
}

// UploadPicture accepts a multipart image, stores it in object storage
// and records the public URL on the profile.
func (h *ProfileHandler) UploadPicture(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	if h.Uploader == nil {
		utils.Error(w, http.StatusServiceUnavailable, "Image uploads are not configured")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	file, header, err := r.FormFile("image")
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Image file is required")
		return
	}
	defer file.Close()

	ext := strings.TrimPrefix(path.Ext(header.Filename), ".")
	if ext == "" {
		ext = "jpg"
	}
	contentType := fmt.Sprintf("image/%s", ext)

	url, err := h.Uploader.UploadProfilePicture(r.Context(), userID, ext, contentType, file)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to upload profile picture")
		return
	}

	if err := h.ProfileRepo.SetProfilePicture(r.Context(), userID, url); err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to save profile picture")
		return
	}

	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"url":     url,
	})
}

func (h *ProfileHandler) publishUpdate(userID int, profile *models.UserProfile) {
	if h.Hub == nil {
		return
	}
	h.Hub.Publish(realtime.Event{
		Type:    realtime.EventProfileUpdated,
		UserID:  userID,
		Payload: profile,
	})
}
