// cmd/api/main.go
// Main entry point for the application
// Bootstraps all components and starts the server

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nkrishnan/sambandh-backend/internal/admin"
	"github.com/nkrishnan/sambandh-backend/internal/auth"
	"github.com/nkrishnan/sambandh-backend/internal/chat"
	"github.com/nkrishnan/sambandh-backend/internal/common/database"
	"github.com/nkrishnan/sambandh-backend/internal/common/storage"
	"github.com/nkrishnan/sambandh-backend/internal/config"
	"github.com/nkrishnan/sambandh-backend/internal/horoscope"
	"github.com/nkrishnan/sambandh-backend/internal/match"
	"github.com/nkrishnan/sambandh-backend/internal/notification"
	"github.com/nkrishnan/sambandh-backend/internal/payment"
	"github.com/nkrishnan/sambandh-backend/internal/profile"
)

var startTime = time.Now()

func main() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	log.Println("========================================")
	log.Println("🚀 Starting Sambandh Matrimony API")
	log.Println("========================================")

	// 1. Load environment variables
	log.Println("📁 Step 1: Loading .env file...")
	if err := godotenv.Load(); err != nil {
		log.Printf("⚠️  No .env file found (%v), using environment variables", err)
	} else {
		log.Println("✅ .env file loaded")
	}

	// 2. Load and validate configuration
	log.Println("\n📋 Step 2: Loading configuration...")
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal("❌ Configuration validation failed: ", err)
	}
	log.Println("✅ Configuration loaded and valid")

	// 3. Connect to PostgreSQL
	log.Println("\n🗄️  Step 3: Connecting to PostgreSQL...")
	db, err := database.NewPostgresDBFromURL(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("❌ Failed to connect to PostgreSQL: ", err)
	}
	defer db.Close()
	log.Println("✅ Connected to PostgreSQL")

	// 4. Connect to Redis (optional)
	log.Println("\n📮 Step 4: Connecting to Redis...")
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = database.NewRedisClientFromURL(cfg.RedisURL)
		if err != nil {
			log.Printf("⚠️  Redis unavailable (%v), continuing without cache", err)
			redisClient = nil
		} else {
			defer redisClient.Close()
			log.Println("✅ Connected to Redis")
		}
	} else {
		log.Println("⚠️  Redis URL not configured, caching disabled")
	}

	// 5. Run database migrations
	log.Println("\n🔨 Step 5: Running database migrations...")
	if err := runMigrations(db); err != nil {
		log.Fatal("❌ Migrations failed: ", err)
	}
	log.Println("✅ Database migrations completed")

	// 6. Initialize upload storage
	log.Println("\n📦 Step 6: Initializing upload storage...")
	var uploadService storage.UploadService
	if cfg.UseS3 {
		uploadService, err = storage.NewS3UploadService(cfg.S3BucketName, cfg.AWSRegion)
		if err != nil {
			log.Printf("⚠️  S3 init failed (%v), falling back to local storage", err)
			uploadService = storage.NewLocalUploadService(cfg.LocalUploadDir, cfg.BaseURL+"/uploads")
		} else {
			log.Println("   ✅ Using S3 for uploads")
		}
	} else {
		uploadService = storage.NewLocalUploadService(cfg.LocalUploadDir, cfg.BaseURL+"/uploads")
		log.Println("   ✅ Using local storage for uploads")
	}

	// 7. Initialize auth
	log.Println("\n🔐 Step 7: Initializing authentication...")
	authRepo := auth.NewPostgresRepository(db)
	authService := auth.NewService(authRepo, redisClient, &auth.Config{
		JWTSecret:          cfg.JWTSecret,
		AccessTokenExpiry:  cfg.AccessTokenExpiry,
		RefreshTokenExpiry: cfg.RefreshTokenExpiry,
		BCryptCost:         cfg.BCryptCost,
		GoogleClientID:     cfg.GoogleClientID,
	})
	authHandler := auth.NewHandler(authService)
	authMiddleware := auth.NewMiddleware(authService)
	log.Println("✅ Authentication initialized")

	// 8. Initialize notifications
	log.Println("\n🔔 Step 8: Initializing notifications...")
	notificationRepo := notification.NewPostgresRepository(db)

	var emailSender notification.EmailSender
	if cfg.EnableEmailNotifications {
		switch cfg.EmailProvider {
		case "sendgrid":
			emailSender, err = notification.NewSendGridEmailSender(cfg.SendGridAPIKey, cfg.EmailFrom, "Sambandh")
			if err != nil {
				log.Printf("⚠️  SendGrid init failed (%v), using mock", err)
				emailSender = notification.NewMockEmailSender()
			} else {
				log.Println("   ✅ Using SendGrid for email")
			}
		case "smtp":
			emailSender, err = notification.NewSMTPEmailSender(
				cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.EmailFrom, "Sambandh")
			if err != nil {
				log.Printf("⚠️  SMTP init failed (%v), using mock", err)
				emailSender = notification.NewMockEmailSender()
			} else {
				log.Println("   ✅ Using SMTP for email")
			}
		default:
			emailSender = notification.NewMockEmailSender()
			log.Println("   📝 Using mock email sender (development mode)")
		}
	} else {
		emailSender = notification.NewMockEmailSender()
		log.Println("   📝 Email notifications disabled, using mock sender")
	}

	var smsSender notification.SMSSender
	if cfg.EnableSMSNotifications && cfg.SMSProvider == "twilio" {
		smsSender, err = notification.NewTwilioSMSSender(
			cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioFromNumber)
		if err != nil {
			log.Printf("⚠️  Twilio init failed (%v), using mock", err)
			smsSender = notification.NewMockSMSSender()
		} else {
			log.Println("   ✅ Using Twilio for SMS")
		}
	} else {
		smsSender = notification.NewMockSMSSender()
		log.Println("   📝 Using mock SMS sender")
	}

	notificationService := notification.NewService(notificationRepo, emailSender, smsSender, cfg.BaseURL)
	notificationHandler := notification.NewHandler(notificationService)
	authService.SetWelcomer(notificationService)
	go startNotificationCleanup(notificationService)
	log.Println("✅ Notifications initialized")

	// 9. Initialize profiles
	log.Println("\n👤 Step 9: Initializing profiles...")
	profileRepo := profile.NewPostgresRepository(db)
	profileService := profile.NewService(profileRepo, uploadService, authService)
	profileHandler := profile.NewHandler(profileService)
	log.Println("✅ Profiles initialized")

	// 10. Initialize horoscopes
	log.Println("\n🌙 Step 10: Initializing horoscopes...")
	horoscopeRepo := horoscope.NewPostgresRepository(db)
	horoscopeService := horoscope.NewService(horoscopeRepo)
	horoscopeHandler := horoscope.NewHandler(horoscopeService, uploadService)
	log.Println("✅ Horoscopes initialized")

	// 11. Initialize matching
	log.Println("\n💝 Step 11: Initializing matching...")
	matchRepo := match.NewPostgresRepository(db)
	matchService := match.NewService(matchRepo, redisClient, notificationService, nil)
	matchHandler := match.NewHandler(matchService)
	log.Println("✅ Matching initialized")

	// 12. Initialize chat
	log.Println("\n💬 Step 12: Initializing chat...")
	chatHub := chat.NewHub()
	go chatHub.Run()

	chatRepo := chat.NewPostgresRepository(db)
	chatService := chat.NewService(chatRepo, matchService, chatHub)
	chatHandler := chat.NewHandler(chatService, chatHub)

	// The chat service checks mutual matches, so it is wired back in
	// after construction
	matchService.SetConversationOpener(chatService)
	log.Println("✅ Chat initialized, websocket hub running")

	// 13. Initialize payments
	log.Println("\n💳 Step 13: Initializing payments...")
	paymentRepo := payment.NewPostgresRepository(db)

	var gateway payment.Gateway
	if cfg.PaymentKeyID != "" && cfg.PaymentKeySecret != "" {
		gateway = payment.NewRazorpayGateway(cfg.PaymentKeyID, cfg.PaymentKeySecret)
		log.Println("   ✅ Using Razorpay gateway")
	} else {
		gateway = payment.NewMockGateway()
		log.Println("   📝 Using mock payment gateway (development mode)")
	}

	paymentService := payment.NewService(paymentRepo, gateway, redisClient, cfg.PaymentKeySecret, notificationService)
	paymentHandler := payment.NewHandler(paymentService)
	log.Println("✅ Payments initialized")

	// 14. Initialize admin
	log.Println("\n🛡️  Step 14: Initializing admin...")
	adminRepo := admin.NewPostgresRepository(db)
	adminService := admin.NewService(adminRepo, redisClient)
	adminHandler := admin.NewHandler(adminService)
	log.Println("✅ Admin initialized")

	// 15. Set up routes
	log.Println("\n🛣️  Step 15: Setting up routes...")
	router := mux.NewRouter()

	if !cfg.UseS3 {
		router.PathPrefix("/uploads/").Handler(
			http.StripPrefix("/uploads/",
				http.FileServer(http.Dir(cfg.LocalUploadDir))))
	}

	router.HandleFunc("/health", healthCheck).Methods("GET")
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	auth.RegisterRoutes(router, authHandler, authMiddleware)
	horoscope.RegisterRoutes(router, horoscopeHandler, authMiddleware)
	match.RegisterRoutes(router, matchHandler, authMiddleware)
	chat.RegisterRoutes(router, chatHandler, authMiddleware)
	notification.RegisterRoutes(router, notificationHandler, authMiddleware)
	payment.RegisterRoutes(router, paymentHandler, authMiddleware)
	admin.RegisterRoutes(router, adminHandler, authMiddleware)

	// Profile routes use chi; mounted as the mux fallback
	chiRouter := chi.NewRouter()
	profile.RegisterRoutes(chiRouter, profileHandler, authMiddleware)
	router.PathPrefix("/").Handler(chiRouter)

	router.Use(loggingMiddleware)
	router.Use(corsMiddleware)
	log.Println("✅ Routes registered")

	// 16. Start the HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Println("\n========================================")
		log.Printf("🚀 Server listening on http://localhost%s", srv.Addr)
		log.Printf("🌍 Environment: %s", cfg.Environment)
		log.Println("========================================")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("❌ Failed to start server: ", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("\n⚠️  Shutdown signal received...")
	chatHub.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("❌ Server forced to shutdown: ", err)
	}

	log.Println("✅ Server exited gracefully")
}

func startNotificationCleanup(service notification.Service) {
	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		if err := service.CleanupOldNotifications(ctx); err != nil {
			log.Printf("notification cleanup: %v", err)
		}
		cancel()
	}
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"uptime":    time.Since(startTime).String(),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)
}

// loggingMiddleware logs every request with its status and duration
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapped, r)

		log.Printf("%s %s [%d] %v", r.Method, r.RequestURI, wrapped.statusCode, time.Since(start))
	})
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
