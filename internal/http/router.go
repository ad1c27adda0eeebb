package http

import (
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"wardrobe-backend/internal/handlers"
	"wardrobe-backend/internal/middleware"
)

// NewRouter builds the API route table. Public routes cover OTP issuance,
// verification and login; everything under /api (except OTP) requires a
// bearer token.
func NewRouter(
	otpHandler *handlers.OTPHandler,
	authHandler *handlers.AuthHandler,
	profileHandler *handlers.ProfileHandler,
	wardrobeHandler *handlers.WardrobeHandler,
	notificationHandler *handlers.NotificationHandler,
	offerHandler *handlers.OfferHandler,
	smsLogHandler *handlers.SMSLogHandler,
	realtimeHandler *handlers.RealtimeHandler,
	healthHandler *handlers.HealthHandler,
	authMiddleware *middleware.AuthMiddleware,
) *mux.Router {
	r := mux.NewRouter()

	// Public API - OTP issuance and verification
	r.HandleFunc("/api/otp/send", otpHandler.Send).Methods("POST")
	r.HandleFunc("/api/otp/validate", otpHandler.Validate).Methods("POST")

	// Public API - account creation and login
	r.HandleFunc("/api/auth/signup", authHandler.Signup).Methods("POST")
	r.HandleFunc("/api/auth/login", authHandler.Login).Methods("POST")
	r.HandleFunc("/api/auth/phone-login", authHandler.PhoneLogin).Methods("POST")

	// Protected API routes (requires JWT)
	api := r.PathPrefix("/api").Subrouter()
	api.Use(authMiddleware.Authenticate)

	api.HandleFunc("/auth/me", authHandler.Me).Methods("GET")
	api.HandleFunc("/auth/change-password", authHandler.ChangePassword).Methods("POST")

	api.HandleFunc("/profile", profileHandler.Get).Methods("GET")
	api.HandleFunc("/profile", profileHandler.Create).Methods("POST")
	api.HandleFunc("/profile", profileHandler.Upsert).Methods("PUT")
	api.HandleFunc("/profile", profileHandler.Delete).Methods("DELETE")
	api.HandleFunc("/profile/complete", profileHandler.Complete).Methods("GET")
	api.HandleFunc("/profile/picture", profileHandler.UploadPicture).Methods("POST")

	api.HandleFunc("/wardrobe/items", wardrobeHandler.ListItems).Methods("GET")
	api.HandleFunc("/wardrobe/items", wardrobeHandler.CreateItem).Methods("POST")
	api.HandleFunc("/wardrobe/items/{id}", wardrobeHandler.DeleteItem).Methods("DELETE")
	api.HandleFunc("/wardrobe/items/image", wardrobeHandler.UploadItemImage).Methods("POST")
	api.HandleFunc("/wardrobe/outfits", wardrobeHandler.ListOutfits).Methods("GET")
	api.HandleFunc("/wardrobe/outfits", wardrobeHandler.CreateOutfit).Methods("POST")
	api.HandleFunc("/wardrobe/outfits/recent", wardrobeHandler.RecentOutfits).Methods("GET")
	api.HandleFunc("/wardrobe/outfits/{id}/tried", wardrobeHandler.MarkOutfitTried).Methods("POST")
	api.HandleFunc("/wardrobe/outfits/{id}/favorite", wardrobeHandler.SetOutfitFavorite).Methods("PUT")

	api.HandleFunc("/notifications", notificationHandler.List).Methods("GET")
	api.HandleFunc("/notifications", notificationHandler.Create).Methods("POST")
	api.HandleFunc("/notifications/read-all", notificationHandler.MarkAllRead).Methods("POST")
	api.HandleFunc("/notifications/clear", notificationHandler.ClearAll).Methods("DELETE")
	api.HandleFunc("/notifications/{id}/read", notificationHandler.MarkRead).Methods("POST")
	api.HandleFunc("/notifications/{id}", notificationHandler.Delete).Methods("DELETE")

	api.HandleFunc("/offers", offerHandler.List).Methods("GET")
	api.HandleFunc("/offers/refresh", offerHandler.Refresh).Methods("POST")
	api.HandleFunc("/offers/{id}", offerHandler.Get).Methods("GET")

	// Admin: delivery log for the SMS gateway
	api.HandleFunc("/admin/sms-logs", smsLogHandler.List).Methods("GET")

	// Websocket event stream for the mobile client
	api.HandleFunc("/events", realtimeHandler.Events).Methods("GET")

	// Health endpoints (no auth required - for Kubernetes probes)
	r.HandleFunc("/health", healthHandler.Health).Methods("GET")
	r.HandleFunc("/health/stats", healthHandler.Stats).Methods("GET")

	// Metrics endpoint (Prometheus format)
	r.Handle("/metrics", promhttp.Handler())

	return r
}
