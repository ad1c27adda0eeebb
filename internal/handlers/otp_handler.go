package handlers

import (
	"encoding/json"
	"net/http"

	"wardrobe-backend/internal/metrics"
	"wardrobe-backend/internal/models"
	"wardrobe-backend/internal/services"
	"wardrobe-backend/pkg/utils"
)

type OTPHandler struct {
	OTPService *services.OTPService
}

func NewOTPHandler(otpService *services.OTPService) *OTPHandler {
	return &OTPHandler{OTPService: otpService}
}

// Send handles POST /api/otp/send: issues a fresh code for the phone
// number, superseding any outstanding one.
func (h *OTPHandler) Send(w http.ResponseWriter, r *http.Request) {
	var req models.SendOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.PhoneNumber == "" || req.CountryCode == "" {
		utils.Error(w, http.StatusBadRequest, "Phone number and country code are required")
		return
	}

	otp, err := h.OTPService.Send(r.Context(), req.PhoneNumber, req.CountryCode)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to generate OTP")
		return
	}

	metrics.OTPIssuedTotal.Inc()

	resp := models.SendOTPResponse{
		Success: true,
		Message: "OTP sent successfully",
	}
	if h.OTPService.ExposeCode {
		resp.OTPForTesting = otp.Code
	}

	utils.JSON(w, http.StatusOK, resp)
}

// Validate handles POST /api/otp/validate: one verification attempt
// against the most recent outstanding code.
func (h *OTPHandler) Validate(w http.ResponseWriter, r *http.Request) {
	var req models.ValidateOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.JSON(w, http.StatusBadRequest, models.ValidateOTPResponse{
			Success: false,
			Message: "Invalid request body",
		})
		return
	}

	if req.PhoneNumber == "" || req.CountryCode == "" || req.OTP == "" {
		utils.JSON(w, http.StatusBadRequest, models.ValidateOTPResponse{
			Success: false,
			Message: "Phone number, country code, and OTP are required",
		})
		return
	}

	status, err := h.OTPService.Validate(r.Context(), req.PhoneNumber, req.CountryCode, req.OTP)
	if err != nil {
		metrics.OTPValidationsTotal.WithLabelValues("error").Inc()
		utils.JSON(w, http.StatusInternalServerError, models.ValidateOTPResponse{
			Success: false,
			Message: "Internal server error",
		})
		return
	}

	metrics.OTPValidationsTotal.WithLabelValues(outcomeLabel(status)).Inc()

	if status == services.ValidationOK {
		utils.JSON(w, http.StatusOK, models.ValidateOTPResponse{
			Success: true,
			Message: status.Message(),
			Valid:   true,
		})
		return
	}

	httpStatus := http.StatusBadRequest
	if status == services.ValidationNotFound {
		httpStatus = http.StatusNotFound
	}

	utils.JSON(w, httpStatus, models.ValidateOTPResponse{
		Success: false,
		Message: status.Message(),
	})
}

func outcomeLabel(status services.ValidationStatus) string {
	switch status {
	case services.ValidationOK:
		return "ok"
	case services.ValidationBadFormat:
		return "bad_format"
	case services.ValidationNotFound:
		return "not_found"
	case services.ValidationExpired:
		return "expired"
	case services.ValidationLocked:
		return "locked"
	case services.ValidationMismatch:
		return "mismatch"
	}
	return "unknown"
}
