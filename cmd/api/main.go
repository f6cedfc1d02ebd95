package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/yunboheater/piano-studio-api/api/swagger"
	"github.com/yunboheater/piano-studio-api/internal/handler"
	"github.com/yunboheater/piano-studio-api/internal/middleware"
	"github.com/yunboheater/piano-studio-api/internal/repository"
	"github.com/yunboheater/piano-studio-api/internal/service"
	"github.com/yunboheater/piano-studio-api/pkg/cache"
	"github.com/yunboheater/piano-studio-api/pkg/config"
	"github.com/yunboheater/piano-studio-api/pkg/database"
	"github.com/yunboheater/piano-studio-api/pkg/logger"
	corsmiddleware "github.com/yunboheater/piano-studio-api/pkg/middleware/cors"
	reqidmiddleware "github.com/yunboheater/piano-studio-api/pkg/middleware/requestid"
	"github.com/yunboheater/piano-studio-api/pkg/storage"
)

// @title Piano Studio API
// @version 1.0.0
// @description Scheduling, enrollment and pricing backend for the studio's signup site and teacher console
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

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
	defer db.Close() //nolint:errcheck

	metricsSvc := service.NewMetricsService()

	cacheSvc := service.NewCacheService(nil, metricsSvc, cfg.Cache.TTL, logr, false)
	if cfg.Cache.Enabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, caching disabled", "error", err)
		} else {
			defer redisClient.Close() //nolint:errcheck
			cacheRepo := repository.NewCacheRepository(redisClient, cfg.Cache.KeySpace)
			cacheSvc = service.NewCacheService(cacheRepo, metricsSvc, cfg.Cache.TTL, logr, true)
		}
	}

	studentRepo := repository.NewStudentRepository(db)
	hoursRepo := repository.NewWorkingHoursRepository(db)
	configRepo := repository.NewConfigurationRepository(db)
	pricingRepo := repository.NewPricingRepository(db)
	userRepo := repository.NewUserRepository(db)

	policy := service.StudentPolicy{
		MinAge:           cfg.Studio.MinStudentAge,
		MaxAge:           cfg.Studio.MaxStudentAge,
		LessonWindowFrom: cfg.Studio.LessonWindowFrom,
		LessonWindowTo:   cfg.Studio.LessonWindowTo,
	}

	enrollmentSvc := service.NewEnrollmentService(studentRepo, configRepo, cacheSvc, policy, nil, logr)
	availabilitySvc := service.NewAvailabilityService(hoursRepo, studentRepo, cacheSvc, service.AvailabilityConfig{
		Limit: cfg.Studio.SuggestionLimit,
		Floor: cfg.Studio.SuggestionFloor,
	}, logr)
	pricingSvc := service.NewPricingService(pricingRepo, configRepo, cacheSvc, logr)
	hoursSvc := service.NewWorkingHoursService(hoursRepo, cacheSvc, nil, logr)
	configSvc := service.NewConfigurationService(configRepo, cacheSvc, nil, logr)
	authSvc := service.NewAuthService(userRepo, cfg.JWT, nil, logr)

	exportStore, err := storage.NewLocalStorage(cfg.Export.Dir)
	if err != nil {
		logr.Sugar().Fatalw("failed to prepare export storage", "error", err)
	}
	signer := storage.NewSigner(cfg.JWT.Secret, cfg.Export.FileTTL)
	scheduleExport := service.NewScheduleExportService(studentRepo, cfg.Studio.DisplayName, logr)
	exportSvc := service.NewExportJobService(scheduleExport, exportStore, signer, cfg.Export.FileTTL, logr)

	rootCtx, cancel := context.WithCancel(context.Background())
	defer cancel()
	exportSvc.Start(rootCtx)
	defer exportSvc.Stop()

	authHandler := handler.NewAuthHandler(authSvc)
	signupHandler := handler.NewSignupHandler(enrollmentSvc)
	availabilityHandler := handler.NewAvailabilityHandler(availabilitySvc)
	pricingHandler := handler.NewPricingHandler(pricingSvc)
	studentHandler := handler.NewStudentHandler(enrollmentSvc)
	hoursHandler := handler.NewWorkingHoursHandler(hoursSvc)
	configHandler := handler.NewConfigurationHandler(configSvc)
	exportHandler := handler.NewExportHandler(exportSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/ready", func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)

	public := api.Group("/piano")
	{
		public.POST("/signup", signupHandler.Signup)
		public.POST("/waiting-list", signupHandler.JoinWaitingList)
		public.POST("/waiting-list/position", signupHandler.Position)
		public.GET("/availability", signupHandler.Availability)
		public.GET("/suggestions", availabilityHandler.Suggest)
		public.GET("/pricing", pricingHandler.Tiers)
		public.GET("/downloads", exportHandler.Download)
	}

	teacher := api.Group("/teacher")
	teacher.POST("/auth/login", authHandler.Login)
	protected := teacher.Group("")
	protected.Use(middleware.JWT(authSvc))
	{
		protected.POST("/auth/logout", authHandler.Logout)
		protected.GET("/auth/me", authHandler.Me)
		protected.GET("/students", studentHandler.List)
		protected.POST("/students", studentHandler.Create)
		protected.GET("/students/:id", studentHandler.Get)
		protected.PUT("/students/:id", studentHandler.Update)
		protected.DELETE("/students/:id", studentHandler.Delete)
		protected.POST("/students/:id/promote", studentHandler.Promote)
		protected.POST("/students/:id/move", studentHandler.Move)
		protected.POST("/suggest-time", availabilityHandler.SuggestTime)
		protected.GET("/working-hours", hoursHandler.List)
		protected.PUT("/working-hours", hoursHandler.Set)
		protected.DELETE("/working-hours/:id", hoursHandler.Delete)
		protected.GET("/configuration", configHandler.List)
		protected.PUT("/configuration", configHandler.Update)
		protected.POST("/schedule/exports", exportHandler.Request)
		protected.GET("/schedule/exports/:id", exportHandler.Status)
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logr.Sugar().Infow("server shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Errorw("shutdown failed", "error", err)
	}
}
