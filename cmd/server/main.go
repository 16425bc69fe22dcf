package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/personeltakip/backend/docs"
	"github.com/personeltakip/backend/internal/audit"
	"github.com/personeltakip/backend/internal/config"
	"github.com/personeltakip/backend/internal/database"
	"github.com/personeltakip/backend/internal/handlers"
	mW "github.com/personeltakip/backend/internal/middleware"
	"github.com/personeltakip/backend/internal/models"
	"github.com/personeltakip/backend/internal/repository"
	"github.com/personeltakip/backend/internal/services"
	"github.com/personeltakip/backend/internal/sms"
	"github.com/spf13/viper"
	httpSwagger "github.com/swaggo/http-swagger"
)

// @title Personel Takip API
// @version 1.0
// @description Staff attendance, shift and leave management with SMS two-factor login
// @host localhost:5000
// @BasePath /api
// @schemes http https

func main() {
	// Initialize config
	viper.SetConfigFile(".env") // explicitly point to .env file
	viper.AutomaticEnv()        // allow environment variables to override .env
	config.BindEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Config file not found, using defaults: %v", err)
	}

	authCfg := config.LoadAuthConfig()
	sessionCfg := config.LoadSessionConfig()
	smsCfg := config.LoadSMSConfig()
	serverCfg := config.LoadServerConfig()

	// Initialize Swagger docs
	docs.SwaggerInfo.Title = "Personel Takip API"
	docs.SwaggerInfo.Description = "Staff attendance, shift and leave management with SMS two-factor login"
	docs.SwaggerInfo.Version = "1.0"
	docs.SwaggerInfo.Host = "localhost:" + serverCfg.Port
	docs.SwaggerInfo.BasePath = "/api"
	docs.SwaggerInfo.Schemes = []string{"http", "https"}

	db := database.InitDatabase()
	defer db.Close()

	redisClient := database.InitRedis()
	if redisClient != nil {
		defer redisClient.Close()
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	branchRepo := repository.NewBranchRepository(db)
	shiftRepo := repository.NewShiftRepository(db)
	employeeRepo := repository.NewEmployeeRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)
	leaveRepo := repository.NewLeaveRepository(db)
	holidayRepo := repository.NewHolidayRepository(db)

	// Authentication
	auditLogger := audit.NewLogger()
	sender := sms.NewSender(smsCfg)

	sessions, err := services.NewSessionManager(sessionRepo, userRepo, sessionCfg)
	if err != nil {
		log.Fatalf("Failed to initialize sessions: %v", err)
	}
	limiter := services.NewAttemptLimiter(redisClient, config.LoadRateLimitConfig())
	authService := services.NewAuthService(userRepo, sessions, sender, limiter, auditLogger, authCfg, smsCfg)

	// Domain services
	qrService := services.NewQRService(redisClient, config.LoadQRConfig())
	location := serverCfg.LoadLocation()

	branchHandler := handlers.NewBranchHandler(services.NewBranchService(branchRepo, qrService))
	shiftHandler := handlers.NewShiftHandler(services.NewShiftService(shiftRepo))
	employeeHandler := handlers.NewEmployeeHandler(services.NewEmployeeService(employeeRepo, shiftRepo))
	attendanceHandler := handlers.NewAttendanceHandler(
		services.NewAttendanceService(attendanceRepo, employeeRepo, shiftRepo, qrService, location))
	leaveHandler := handlers.NewLeaveHandler(
		services.NewLeaveService(leaveRepo, employeeRepo, holidayRepo, auditLogger))
	holidayHandler := handlers.NewHolidayHandler(services.NewHolidayService(holidayRepo))

	pruneCtx, stopPruning := context.WithCancel(context.Background())
	defer stopPruning()
	go sessions.StartPruning(pruneCtx, sessionCfg.PruneInterval)

	// Setup router
	r := chi.NewRouter()

	// Middleware
	r.Use(mW.SecurityHeaders)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(60 * time.Second))

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   serverCfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "healthy"})
	})

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	r.Route("/api", func(r chi.Router) {
		// Public endpoints (no auth required)
		r.Post("/register", authService.Register)
		r.Post("/login", authService.Login)
		r.Post("/verify-2fa", authService.Verify2FA)
		r.Post("/logout", authService.Logout)

		// Protected endpoints (auth required)
		r.Group(func(r chi.Router) {
			r.Use(mW.RequireAuth(sessions))

			r.Get("/user", authService.CurrentUser)

			r.Route("/branches", func(r chi.Router) {
				r.Get("/", branchHandler.List)
				r.Get("/{id}", branchHandler.Get)
				r.Get("/{id}/qr", branchHandler.CheckInQR)
				r.With(mW.RequireRole(models.RoleAdmin, models.RoleSuperAdmin)).Post("/", branchHandler.Create)
				r.With(mW.RequireRole(models.RoleAdmin, models.RoleSuperAdmin)).Put("/{id}", branchHandler.Update)
				r.With(mW.RequireRole(models.RoleSuperAdmin)).Delete("/{id}", branchHandler.Delete)
			})

			r.Route("/shifts", func(r chi.Router) {
				r.Get("/", shiftHandler.List)
				r.Post("/", shiftHandler.Create)
				r.Put("/{id}", shiftHandler.Update)
				r.Delete("/{id}", shiftHandler.Delete)
			})

			r.Route("/employees", func(r chi.Router) {
				r.Get("/", employeeHandler.List)
				r.Post("/", employeeHandler.Create)
				r.Get("/{id}", employeeHandler.Get)
				r.Put("/{id}", employeeHandler.Update)
				r.Delete("/{id}", employeeHandler.Delete)
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Get("/", attendanceHandler.List)
				r.Post("/check-in", attendanceHandler.CheckIn)
				r.Post("/check-out", attendanceHandler.CheckOut)
			})

			r.Route("/leaves", func(r chi.Router) {
				r.Get("/", leaveHandler.List)
				r.Post("/", leaveHandler.Create)
				r.Put("/{id}/status", leaveHandler.UpdateStatus)
				r.Delete("/{id}", leaveHandler.Delete)
			})

			r.Route("/holidays", func(r chi.Router) {
				r.Get("/", holidayHandler.List)
				r.With(mW.RequireRole(models.RoleAdmin, models.RoleSuperAdmin)).Post("/", holidayHandler.Create)
				r.With(mW.RequireRole(models.RoleAdmin, models.RoleSuperAdmin)).Delete("/{id}", holidayHandler.Delete)
			})
		})
	})

	// Start server
	server := &http.Server{
		Addr:         ":" + serverCfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on :%s", serverCfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")
	stopPruning()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server stopped")
}
