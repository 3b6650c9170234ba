package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/noah-isme/ncc-parade-api/api/swagger"
	"github.com/noah-isme/ncc-parade-api/internal/handler"
	"github.com/noah-isme/ncc-parade-api/internal/middleware"
	"github.com/noah-isme/ncc-parade-api/internal/models"
	"github.com/noah-isme/ncc-parade-api/internal/repository"
	"github.com/noah-isme/ncc-parade-api/internal/service"
	"github.com/noah-isme/ncc-parade-api/pkg/cache"
	"github.com/noah-isme/ncc-parade-api/pkg/config"
	"github.com/noah-isme/ncc-parade-api/pkg/database"
	"github.com/noah-isme/ncc-parade-api/pkg/jobs"
	"github.com/noah-isme/ncc-parade-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/ncc-parade-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/ncc-parade-api/pkg/middleware/requestid"
)

// @title NCC Parade API
// @version 0.1.0
// @description Parade roll-call and attendance engine
// @BasePath /
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		// The engine degrades gracefully without redis: summaries recompute.
		logr.Sugar().Warnw("redis unavailable, summary caching disabled", "error", err)
		redisClient = nil
	} else {
		defer redisClient.Close()
	}

	validate := validator.New()

	// Repositories.
	paradeRepo := repository.NewParadeRepository(db)
	cadetRepo := repository.NewCadetRepository(db)
	permissionRepo := repository.NewPermissionRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)
	reportRepo := repository.NewParadeReportRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	userRepo := repository.NewUserRepository(db)

	var summaryCache *repository.CacheRepository
	if redisClient != nil {
		summaryCache = repository.NewCacheRepository(redisClient, logr)
	}

	// Services.
	authService := service.NewAuthService(userRepo, validate, logr, service.AuthConfig{
		TokenSecret: cfg.JWT.Secret,
		TokenExpiry: cfg.JWT.Expiration,
		Issuer:      cfg.JWT.Issuer,
	})
	paradeService := service.NewParadeService(paradeRepo, validate, logr)
	cadetService := service.NewCadetService(cadetRepo, logr)
	permissionService := service.NewPermissionService(permissionRepo, paradeRepo, validate, logr)

	var summaryService *service.SummaryService
	if summaryCache != nil {
		summaryService = service.NewSummaryService(paradeRepo, cadetRepo, attendanceRepo, summaryCache, cfg.Summary.CacheTTL, logr)
	} else {
		summaryService = service.NewSummaryService(paradeRepo, cadetRepo, attendanceRepo, nil, cfg.Summary.CacheTTL, logr)
	}

	attendanceService := service.NewAttendanceService(attendanceRepo, cadetRepo, permissionRepo, paradeRepo, summaryService, validate, logr)
	reportService := service.NewReportService(reportRepo, paradeRepo, validate, logr)

	var notificationService *service.NotificationService
	notificationQueue := jobs.NewQueue("notifications", func(ctx context.Context, job jobs.Job) error {
		return notificationService.HandleDispatchJob(ctx, job)
	}, jobs.QueueConfig{
		Workers:    cfg.Notifications.Workers,
		BufferSize: cfg.Notifications.BufferSize,
		MaxRetries: cfg.Notifications.MaxRetries,
		RetryDelay: cfg.Notifications.RetryDelay,
		Logger:     logr,
	})
	notificationService = service.NewNotificationService(notificationRepo, notificationQueue, logr)

	exportService := service.NewExportService(paradeService, summaryService, logr)
	metricsService := service.NewMetricsService()

	// Handlers.
	authHandler := handler.NewAuthHandler(authService)
	paradeHandler := handler.NewParadeHandler(paradeService)
	cadetHandler := handler.NewCadetHandler(cadetService)
	permissionHandler := handler.NewPermissionHandler(permissionService)
	attendanceHandler := handler.NewAttendanceHandler(attendanceService)
	reviewHandler := handler.NewReviewHandler(summaryService, notificationService, exportService)
	reportHandler := handler.NewReportHandler(reportService)
	notificationHandler := handler.NewNotificationHandler(notificationService)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsService))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "database unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(metricsService.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.POST("/auth/login", authHandler.Login)

	authed := api.Group("", middleware.JWT(authService))

	anoOnly := middleware.RequireRoles(models.RoleAno)
	seniorOnly := middleware.RequireRoles(models.RoleSenior)

	authed.GET("/cadets", cadetHandler.List)

	parades := authed.Group("/parades")
	{
		parades.POST("", anoOnly, paradeHandler.Create)
		parades.GET("/open", paradeHandler.GetOpen)
		parades.GET("/last-type-map", anoOnly, paradeHandler.LastTypeMap)
		parades.GET("/:id", paradeHandler.Get)
		parades.PUT("/:id/remarks", anoOnly, paradeHandler.UpdateRemarks)
		parades.POST("/:id/close", anoOnly, paradeHandler.Close)

		parades.GET("/:id/permissions", anoOnly, permissionHandler.List)
		parades.GET("/:id/permissions/:cadetId", anoOnly, permissionHandler.Get)
		parades.PUT("/:id/permissions/:cadetId", anoOnly, permissionHandler.Upsert)
		parades.DELETE("/:id/permissions/:cadetId", anoOnly, permissionHandler.Remove)

		parades.POST("/:id/attendance", seniorOnly, attendanceHandler.Submit)
		parades.GET("/:id/attendance", attendanceHandler.List)

		parades.GET("/:id/summary/ranks", anoOnly, reviewHandler.RankSummary)
		parades.GET("/:id/summary/status", anoOnly, reviewHandler.StatusBreakdown)
		parades.GET("/:id/pending-slots", anoOnly, reviewHandler.PendingSlots)
		parades.POST("/:id/notifications/pending", anoOnly, reviewHandler.NotifyPending)
		parades.GET("/:id/export", anoOnly, reviewHandler.Export)

		parades.GET("/:id/notifications", notificationHandler.List)

		parades.GET("/:id/reports", reportHandler.List)
		parades.GET("/:id/reports/:category", reportHandler.Get)
		parades.GET("/:id/reports/:category/template", seniorOnly, reportHandler.Template)
		parades.PUT("/:id/reports/:category", seniorOnly, reportHandler.Upsert)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	notificationQueue.Start(ctx)
	defer notificationQueue.Stop()

	addr := fmt.Sprintf(":%d", cfg.Port)
	server := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Sugar().Infow("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Errorw("graceful shutdown failed", "error", err)
	}
}
