package handlers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"wardrobe-backend/internal/services"
	"wardrobe-backend/pkg/utils"
)

type OfferHandler struct {
	OfferService *services.OfferService
}

func NewOfferHandler(offerService *services.OfferService) *OfferHandler {
	return &OfferHandler{OfferService: offerService}
}

func (h *OfferHandler) List(w http.ResponseWriter, r *http.Request) {
	// ActiveOffers returns pre-serialized JSON so cached responses skip
	// a decode/encode round trip
	offers, err := h.OfferService.ActiveOffers(r.Context())
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to fetch offers")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(offers)
}

// Refresh drops the offers cache after out-of-band offer changes
func (h *OfferHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	h.OfferService.RefreshCache(r.Context())
	utils.JSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

func (h *OfferHandler) Get(w http.ResponseWriter, r *http.Request) {
	offerID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid offer ID")
		return
	}

	offer, err := h.OfferService.Offer(r.Context(), offerID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to fetch offer")
		return
	}
	if offer == nil {
		utils.Error(w, http.StatusNotFound, "Offer not found")
		return
	}

	utils.JSON(w, http.StatusOK, offer)
}
