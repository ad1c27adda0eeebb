package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"wardrobe-backend/internal/auth"
	"wardrobe-backend/internal/cache"
	"wardrobe-backend/internal/config"
	"wardrobe-backend/internal/database"
	"wardrobe-backend/internal/db"
	"wardrobe-backend/internal/handlers"
	"wardrobe-backend/internal/health"
	h "wardrobe-backend/internal/http"
	"wardrobe-backend/internal/middleware"
	"wardrobe-backend/internal/monitoring"
	"wardrobe-backend/internal/realtime"
	"wardrobe-backend/internal/repositories"
	"wardrobe-backend/internal/services"
	"wardrobe-backend/internal/sms"
	"wardrobe-backend/internal/storage"
)

func main() {
	cfg := config.Load()

	pool := db.Connect(cfg)
	defer pool.Close()

	// Run pending migrations before serving traffic
	migrator := database.NewMigrator(pool)
	if err := migrator.RunMigrations(context.Background()); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	// Redis is optional; offer caching degrades to DB reads without it
	if err := cache.Init(); err != nil {
		log.Printf("[Cache] Redis unavailable, continuing without cache: %v", err)
	}

	jwtManager := auth.NewJWTManager(cfg)

	// Repositories
	userRepo := repositories.NewUserRepository(pool)
	otpRepo := repositories.NewOTPRepository(pool)
	profileRepo := repositories.NewProfileRepository(pool)
	wardrobeRepo := repositories.NewWardrobeRepository(pool)
	notificationRepo := repositories.NewNotificationRepository(pool)
	offerRepo := repositories.NewOfferRepository(pool)
	smsLogRepo := repositories.NewSMSLogRepository(pool)

	// Use Fast2SMS for production, fallback to MockSMS if API key not set
	fast2smsAPIKey := os.Getenv("FAST2SMS_API_KEY")
	var smsService sms.SMSProvider
	if fast2smsAPIKey != "" {
		log.Println("Using Fast2SMS for OTP delivery")
		smsService = sms.NewFast2SMSService(fast2smsAPIKey)
	} else {
		log.Println("WARNING: FAST2SMS_API_KEY not set, using MockSMS (OTP will only print to logs)")
		smsService = sms.NewMockSMSService()
	}
	smsService.SetLogRepository(smsLogRepo)

	// Services
	otpService := services.NewOTPService(otpRepo, smsService)
	if cfg.OTP.ExpiryMinutes > 0 {
		otpService.ExpiryMinutes = cfg.OTP.ExpiryMinutes
	}
	if cfg.OTP.MaxAttempts > 0 {
		otpService.MaxAttempts = cfg.OTP.MaxAttempts
	}
	if fast2smsAPIKey == "" {
		// Without a real SMS channel the code has to come back in the
		// response for the client to be usable
		otpService.ExposeCode = true
	}
	userService := services.NewUserService(userRepo, jwtManager)
	offerService := services.NewOfferService(offerRepo)

	// Object storage for profile and wardrobe images (optional)
	var uploader *storage.Uploader
	if cfg.Storage.Bucket != "" {
		var err error
		uploader, err = storage.NewUploader(cfg)
		if err != nil {
			log.Printf("[Storage] uploader init failed, image uploads disabled: %v", err)
		}
	} else {
		log.Println("[Storage] no bucket configured, image uploads disabled")
	}

	// Realtime event hub for connected mobile clients
	hub := realtime.NewHub()
	go hub.Run()

	healthChecker := health.NewHealthChecker(pool)
	statsCollector := monitoring.NewCollector(pool)

	// Handlers
	otpHandler := handlers.NewOTPHandler(otpService)
	authHandler := handlers.NewAuthHandler(userService, otpService)
	profileHandler := handlers.NewProfileHandler(profileRepo, uploader, hub)
	wardrobeHandler := handlers.NewWardrobeHandler(wardrobeRepo, uploader)
	notificationHandler := handlers.NewNotificationHandler(notificationRepo, hub)
	offerHandler := handlers.NewOfferHandler(offerService)
	smsLogHandler := handlers.NewSMSLogHandler(smsLogRepo)
	realtimeHandler := handlers.NewRealtimeHandler(hub)
	healthHandler := handlers.NewHealthHandler(healthChecker, statsCollector)

	authMiddleware := middleware.NewAuthMiddleware(jwtManager, userRepo)
	corsMiddleware := middleware.NewCORS(cfg)

	router := h.NewRouter(
		otpHandler,
		authHandler,
		profileHandler,
		wardrobeHandler,
		notificationHandler,
		offerHandler,
		smsLogHandler,
		realtimeHandler,
		healthHandler,
		authMiddleware,
	)

	// Expired OTP rows older than a day have no audit value
	go func() {
		ticker := time.NewTicker(6 * time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			if err := otpRepo.CleanupExpired(ctx); err != nil {
				log.Printf("[OTP] cleanup failed: %v", err)
			}
			cancel()
		}
	}()

	handler := middleware.PanicRecovery(middleware.MetricsMiddleware(corsMiddleware(router)))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Server running on %s", addr)

	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
