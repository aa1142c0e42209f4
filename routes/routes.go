package routes

import (
	"CluCare/cache"
	"CluCare/config"
	"CluCare/controllers"
	"CluCare/handlers"
	"CluCare/middlewares"
	"CluCare/repositories"
	"CluCare/services"
	"CluCare/utils"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRoutes initializes the routes and middleware for the server.
func SetupRoutes(cache *cache.Cache, cfg *config.AppConfig, db *gorm.DB, issuer *utils.TokenIssuer) http.Handler {
	gin.SetMode(gin.ReleaseMode)
	router := gin.Default()

	corsConfig := &middlewares.CorsConfig{
		AllowedOrigins:   []string{"http://localhost:3000", "http://localhost:5173"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}
	router.Use(middlewares.CorsMiddleware(corsConfig))

	router.Use(middlewares.NewRateLimiterMiddleware(middlewares.RateLimiterConfig{
		RequestsPerSecond: 15,
		Burst:             30,
	}))

	router.Use(middlewares.LoggingMiddleware())

	// Repositories
	identityRepo := repositories.NewIdentityRepository(db)
	patientRepo := repositories.NewPatientRepository(db, cache)
	staffRepo := repositories.NewStaffRepository(db, cache)
	admissionRepo := repositories.NewAdmissionRepository(db)
	appointmentRepo := repositories.NewAppointmentRepository(db)
	recordRepo := repositories.NewRecordRepository(db)
	emergencyRepo := repositories.NewEmergencyRepository(db)
	wardRepo := repositories.NewWardRepository(db, cache)
	stockRepo := repositories.NewStockRepository(db)

	// Services
	authService := services.NewAuthService(identityRepo, admissionRepo, issuer, cfg)
	patientService := services.NewPatientService(patientRepo, admissionRepo, appointmentRepo, identityRepo)
	staffService := services.NewStaffService(staffRepo)
	appointmentService := services.NewAppointmentService(appointmentRepo, patientRepo, identityRepo)
	recordService := services.NewRecordService(recordRepo, patientRepo, identityRepo, cfg.GetUploadDir())
	emergencyService := services.NewEmergencyService(emergencyRepo, admissionRepo, identityRepo)
	wardService := services.NewWardService(wardRepo, admissionRepo, patientRepo, identityRepo)
	dashboardService := services.NewDashboardService(patientRepo, staffRepo, admissionRepo, wardRepo, stockRepo, emergencyRepo)
	stockService := services.NewStockService(stockRepo)
	chatbotService := services.NewChatbotService()

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	careController := &controllers.CareController{
		Patients:     handlers.NewPatientHandler(patientService),
		Staff:        handlers.NewStaffHandler(staffService),
		Appointments: handlers.NewAppointmentHandler(appointmentService),
		Records:      handlers.NewRecordHandler(recordService),
		Emergencies:  handlers.NewEmergencyHandler(emergencyService),
		Wards:        handlers.NewWardHandler(wardService, dashboardService),
		Stock:        handlers.NewStockHandler(stockService),
		Chatbot:      handlers.NewChatbotHandler(chatbotService),
	}

	// Routes
	controllers.SetupRootRoutes(router)
	controllers.NewAuthController(authHandler).RegisterRoutes(router)
	careController.RegisterRoutes(router, issuer, identityRepo)

	// Uploaded lab report files are served by their virtual path.
	router.Static("/uploads", cfg.GetUploadDir())

	return router
}
