package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	echoSwagger "github.com/swaggo/echo-swagger"

	"rentora/internal/caching"
	"rentora/internal/config"
	"rentora/internal/handlers"
	"rentora/internal/jobs/background"
	"rentora/internal/middleware"
	"rentora/internal/models"
	"rentora/internal/repositories"
	"rentora/internal/services"
	"rentora/pkg/database"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Database connection pool
	pool, err := database.NewPool(context.Background(), cfg.DatabaseURL, int32(cfg.DBMaxConns))
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	// Redis client, shared between the cache service and health checks
	redisClient := redis.NewClient(&redis.Options{
		Addr:     strings.TrimPrefix(strings.TrimPrefix(cfg.RedisAddr, "redis://"), "rediss://"),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	cacheSvc := caching.NewRedisCacheServiceWithClient(redisClient)

	// Object storage
	storageSvc, err := services.NewMinioStorageService(cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioUseSSL)
	if err != nil {
		log.Fatalf("Failed to initialize object storage: %v", err)
	}
	if err := storageSvc.EnsureBucketExists(context.Background(), cfg.MinioBucket); err != nil {
		log.Printf("WARN: could not ensure bucket %s exists: %v", cfg.MinioBucket, err)
	}

	// Repositories
	userRepo := repositories.NewUserRepository(pool)
	propertyRepo := repositories.NewPropertyRepository(pool)
	unitRepo := repositories.NewUnitRepository(pool)
	leaseRepo := repositories.NewLeaseRepository(pool)
	ratingRepo := repositories.NewRatingRepository(pool)
	paymentRepo := repositories.NewPaymentRepository(pool)
	maintenanceRepo := repositories.NewMaintenanceRepository(pool)
	activityRepo := repositories.NewActivityLogRepository(pool)

	// Services
	notifier := services.NewConsoleNotificationService(activityRepo, cfg.ContactRecipient)
	darajaSvc := services.NewDarajaService(cfg.DarajaConsumerKey, cfg.DarajaConsumerSecret,
		cfg.DarajaShortCode, cfg.DarajaCallbackURL)
	authSvc := services.NewAuthService(userRepo, activityRepo, cacheSvc, cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	userSvc := services.NewUserService(userRepo, activityRepo, storageSvc, cfg.MinioBucket, notifier)
	propertySvc := services.NewPropertyService(pool, propertyRepo, unitRepo, leaseRepo, ratingRepo,
		maintenanceRepo, userRepo, activityRepo, cacheSvc)
	tenancySvc := services.NewTenancyService(pool, propertyRepo, unitRepo, leaseRepo, userRepo,
		activityRepo, cacheSvc, notifier, cfg.InviteLinkBase)
	leaseSvc := services.NewLeaseService(pool, leaseRepo, unitRepo, userRepo, notifier)
	ratingSvc := services.NewRatingService(ratingRepo, leaseRepo, activityRepo, cacheSvc)
	paymentSvc := services.NewPaymentService(paymentRepo, leaseRepo, userRepo, activityRepo, darajaSvc, notifier)
	maintenanceSvc := services.NewMaintenanceService(maintenanceRepo, leaseRepo, propertyRepo, activityRepo)

	// Handlers
	authHandlers := handlers.NewAuthHandlers(authSvc)
	userHandlers := handlers.NewUserHandlers(userSvc)
	propertyHandlers := handlers.NewPropertyHandlers(propertySvc, tenancySvc, ratingSvc)
	tenantHandlers := handlers.NewTenantHandlers(leaseSvc, tenancySvc, ratingSvc, paymentSvc)
	adminHandlers := handlers.NewAdminHandlers(propertySvc, userSvc)
	maintenanceHandlers := handlers.NewMaintenanceHandlers(maintenanceSvc)
	contactHandlers := handlers.NewContactHandlers(notifier)
	webhookHandlers := handlers.NewWebhookHandlers(paymentSvc)
	healthHandlers := handlers.NewHealthHandlers(pool, redisClient)

	// Background jobs
	scheduler := background.NewJobScheduler(leaseSvc, ratingSvc, authSvc, propertyRepo)
	if err := scheduler.Start(); err != nil {
		log.Printf("Failed to start job scheduler: %v", err)
	}
	defer scheduler.Stop()

	// Echo instance
	e := echo.New()
	e.HideBanner = true

	// Global middleware
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(echoMiddleware.RemoveTrailingSlash())

	// Health and docs (no auth required)
	e.GET("/health", healthHandlers.HealthCheck)
	e.GET("/health/live", healthHandlers.LivenessCheck)
	e.GET("/health/ready", healthHandlers.HealthCheck)
	e.GET("/health/detailed", healthHandlers.HealthCheck)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	auth := api.Group("/auth")
	auth.Use(middleware.RateLimit(cacheSvc, 20, time.Minute))
	auth.POST("/register", authHandlers.Register)
	auth.POST("/login", authHandlers.Login)
	auth.POST("/refresh", authHandlers.Refresh)
	auth.POST("/logout", authHandlers.Logout)

	api.POST("/contact", contactHandlers.Submit, middleware.RateLimit(cacheSvc, 10, time.Minute))
	api.POST("/webhooks/daraja", webhookHandlers.DarajaCallback)
	api.GET("/properties/:id/ratings", propertyHandlers.PropertyRatings)

	// Authenticated routes
	protected := api.Group("")
	protected.Use(middleware.JWTMiddleware(cfg.JWTSecret))

	protected.GET("/users/me", userHandlers.Me)
	protected.PUT("/users/me", userHandlers.UpdateProfile)
	protected.POST("/users/me/verification", userHandlers.SubmitVerificationDoc)
	protected.GET("/users/me/verification/url", userHandlers.VerificationDocURL)

	// Landlord routes
	landlord := protected.Group("", middleware.RequireRole(models.RoleLandlord, models.RoleAdmin))
	landlord.POST("/properties", propertyHandlers.CreateProperty)
	landlord.GET("/properties", propertyHandlers.ListMyProperties)
	landlord.GET("/properties/:id", propertyHandlers.GetProperty)
	landlord.PUT("/properties/:id", propertyHandlers.UpdateProperty)
	landlord.DELETE("/properties/:id", propertyHandlers.DeleteProperty)
	landlord.POST("/properties/:id/units", propertyHandlers.AddUnit)
	landlord.PATCH("/properties/:id/units/:unitId/status", propertyHandlers.SetUnitStatus)
	landlord.POST("/properties/:id/units/:unitId/assign", propertyHandlers.AssignTenant)
	landlord.POST("/properties/:id/units/:unitId/invite", propertyHandlers.GenerateInvite)
	landlord.GET("/landlord/maintenance", maintenanceHandlers.LandlordRequests)
	landlord.PATCH("/landlord/maintenance/:id/status", maintenanceHandlers.UpdateStatus)

	// Tenant routes
	tenant := protected.Group("/tenant", middleware.RequireRole(models.RoleTenant))
	tenant.GET("/lease", tenantHandlers.MyLease)
	tenant.GET("/leases", tenantHandlers.MyLeases)
	tenant.POST("/invites/redeem", tenantHandlers.RedeemInvite)
	tenant.POST("/ratings", tenantHandlers.CreateRating)
	tenant.GET("/ratings", tenantHandlers.MyRatings)
	tenant.GET("/ratings/available", tenantHandlers.RateableProperties)
	tenant.POST("/payments", tenantHandlers.PayRent)
	tenant.GET("/payments", tenantHandlers.MyPayments)
	tenant.POST("/maintenance", maintenanceHandlers.CreateRequest)
	tenant.GET("/maintenance", maintenanceHandlers.MyRequests)

	// Admin routes
	admin := protected.Group("/admin", middleware.RequireRole(models.RoleAdmin))
	admin.GET("/properties", adminHandlers.AllProperties)
	admin.GET("/properties/pending", adminHandlers.PendingProperties)
	admin.PATCH("/properties/:id/status", adminHandlers.ReviewProperty)
	admin.GET("/stats", adminHandlers.Stats)
	admin.GET("/users", adminHandlers.ListUsers)
	admin.POST("/users", adminHandlers.CreateUser)
	admin.PUT("/users/:id", adminHandlers.UpdateUser)
	admin.PATCH("/users/:id/verification", adminHandlers.ReviewVerification)
	admin.PATCH("/users/:id/status", adminHandlers.SetUserStatus)
	admin.DELETE("/users/:id", adminHandlers.DeleteUser)

	// Graceful shutdown
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := e.Shutdown(ctx); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
	}()

	log.Printf("Rentora server v%s starting on port %d", version, cfg.Port)
	if err := e.Start(fmt.Sprintf(":%d", cfg.Port)); err != nil {
		log.Printf("Server stopped: %v", err)
	}
}
