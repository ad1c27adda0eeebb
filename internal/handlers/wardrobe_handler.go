package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"path"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"wardrobe-backend/internal/middleware"
	"wardrobe-backend/internal/models"
	"wardrobe-backend/internal/repositories"
	"wardrobe-backend/internal/storage"
	"wardrobe-backend/pkg/utils"
)

type WardrobeHandler struct {
	WardrobeRepo *repositories.WardrobeRepository
	Uploader     *storage.Uploader
}

func NewWardrobeHandler(wardrobeRepo *repositories.WardrobeRepository, uploader *storage.Uploader) *WardrobeHandler {
	return &WardrobeHandler{
		WardrobeRepo: wardrobeRepo,
		Uploader:     uploader,
	}
}

// ListItems returns the user's wardrobe, optionally filtered by category
// (?category=Tops) or sub-category (?subCategory=T-Shirts).
func (h *WardrobeHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	category := r.URL.Query().Get("category")
	if category != "" && !models.ValidCategory(category) {
		utils.Error(w, http.StatusBadRequest, "Invalid category")
		return
	}

	if sub := r.URL.Query().Get("subCategory"); sub != "" {
		items, err := h.WardrobeRepo.ListItemsBySubCategory(r.Context(), userID, sub)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "Failed to fetch wardrobe items")
			return
		}
		utils.JSON(w, http.StatusOK, items)
		return
	}

	items, err := h.WardrobeRepo.ListItems(r.Context(), userID, category)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to fetch wardrobe items")
		return
	}

	utils.JSON(w, http.StatusOK, items)
}

func (h *WardrobeHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	var item models.WardrobeItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if !models.ValidCategory(item.Category) {
		utils.Error(w, http.StatusBadRequest, "Invalid category")
		return
	}
	item.UserID = userID

	if err := h.WardrobeRepo.CreateItem(r.Context(), &item); err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to add wardrobe item")
		return
	}

	utils.JSON(w, http.StatusCreated, item)
}

func (h *WardrobeHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	itemID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid item ID")
		return
	}

	if err := h.WardrobeRepo.DeleteItem(r.Context(), userID, itemID); err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to delete wardrobe item")
		return
	}

	utils.JSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

// UploadItemImage stores a wardrobe item photo and returns its public URL.
// The client calls this before CreateItem and sends the URL in the item body.
func (h *WardrobeHandler) UploadItemImage(w http.ResponseWriter, r *http.Request) {
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

	url, err := h.Uploader.UploadWardrobeImage(r.Context(), userID, ext, fmt.Sprintf("image/%s", ext), file)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to upload image")
		return
	}

	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"url":     url,
	})
}

// RecentOutfits returns the most recently worn outfits for the home screen
func (h *WardrobeHandler) RecentOutfits(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	limit := 10
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 50 {
			limit = n
		}
	}

	outfits, err := h.WardrobeRepo.RecentOutfits(r.Context(), userID, limit)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to fetch recent outfits")
		return
	}

	utils.JSON(w, http.StatusOK, outfits)
}

func (h *WardrobeHandler) ListOutfits(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	outfits, err := h.WardrobeRepo.ListOutfits(r.Context(), userID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to fetch outfits")
		return
	}

	utils.JSON(w, http.StatusOK, outfits)
}

func (h *WardrobeHandler) CreateOutfit(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	var outfit models.Outfit
	if err := json.NewDecoder(r.Body).Decode(&outfit); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(outfit.Items) == 0 {
		utils.Error(w, http.StatusBadRequest, "Outfit must contain at least one item")
		return
	}
	outfit.UserID = userID

	if err := h.WardrobeRepo.CreateOutfit(r.Context(), &outfit); err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to create outfit")
		return
	}

	utils.JSON(w, http.StatusCreated, outfit)
}

// MarkOutfitTried records that the outfit was worn now
func (h *WardrobeHandler) MarkOutfitTried(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	outfitID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid outfit ID")
		return
	}

	if err := h.WardrobeRepo.MarkOutfitTried(r.Context(), userID, outfitID); err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to update outfit")
		return
	}

	utils.JSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

func (h *WardrobeHandler) SetOutfitFavorite(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	outfitID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid outfit ID")
		return
	}

	var req struct {
		Favorite bool `json:"favorite"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.WardrobeRepo.SetOutfitFavorite(r.Context(), userID, outfitID, req.Favorite); err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to update outfit")
		return
	}

	utils.JSON(w, http.StatusOK, map[string]interface{}{"success": true})
}
