package handlers

import (
	"encoding/json"
	"net/http"

	"wardrobe-backend/internal/middleware"
	"wardrobe-backend/internal/models"
	"wardrobe-backend/internal/services"
	"wardrobe-backend/pkg/utils"
)

type AuthHandler struct {
	UserService *services.UserService
	OTPService  *services.OTPService
}

func NewAuthHandler(userService *services.UserService, otpService *services.OTPService) *AuthHandler {
	return &AuthHandler{
		UserService: userService,
		OTPService:  otpService,
	}
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req models.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Name == "" || req.Email == "" || req.Password == "" {
		utils.Error(w, http.StatusBadRequest, "Name, email and password are required")
		return
	}
	if len(req.Password) < 8 {
		utils.Error(w, http.StatusBadRequest, "Password must be at least 8 characters long")
		return
	}

	resp, err := h.UserService.Signup(r.Context(), &req)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	utils.JSON(w, http.StatusCreated, resp)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Email == "" || req.Password == "" {
		utils.Error(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	resp, err := h.UserService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	utils.JSON(w, http.StatusOK, resp)
}

// PhoneLogin validates the submitted OTP and, on success, issues a token
// for the account registered with that phone number.
func (h *AuthHandler) PhoneLogin(w http.ResponseWriter, r *http.Request) {
	var req models.PhoneLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.PhoneNumber == "" || req.CountryCode == "" || req.OTP == "" {
		utils.Error(w, http.StatusBadRequest, "Phone number, country code, and OTP are required")
		return
	}

	status, err := h.OTPService.Validate(r.Context(), req.PhoneNumber, req.CountryCode, req.OTP)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if status != services.ValidationOK {
		httpStatus := http.StatusBadRequest
		if status == services.ValidationNotFound {
			httpStatus = http.StatusNotFound
		}
		utils.Error(w, httpStatus, status.Message())
		return
	}

	resp, err := h.UserService.LoginByPhone(r.Context(), req.CountryCode, req.PhoneNumber)
	if err != nil {
		utils.Error(w, http.StatusNotFound, err.Error())
		return
	}

	utils.JSON(w, http.StatusOK, resp)
}

func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	var req models.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.CurrentPassword == "" || req.NewPassword == "" {
		utils.Error(w, http.StatusBadRequest, "Current and new password are required")
		return
	}
	if len(req.NewPassword) < 8 {
		utils.Error(w, http.StatusBadRequest, "Password must be at least 8 characters long")
		return
	}

	if err := h.UserService.ChangePassword(r.Context(), userID, req.CurrentPassword, req.NewPassword); err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Password updated",
	})
}

// Me returns the authenticated user
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	user, err := h.UserService.UserRepo.Get(r.Context(), userID)
	if err != nil {
		utils.Error(w, http.StatusNotFound, "User not found")
		return
	}

	utils.JSON(w, http.StatusOK, user)
}
