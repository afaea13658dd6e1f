package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/akademix/records-api/api/swagger"
	"github.com/akademix/records-api/internal/handler"
	"github.com/akademix/records-api/internal/middleware"
	"github.com/akademix/records-api/internal/repository"
	"github.com/akademix/records-api/internal/service"
	"github.com/akademix/records-api/pkg/cache"
	"github.com/akademix/records-api/pkg/config"
	"github.com/akademix/records-api/pkg/database"
	"github.com/akademix/records-api/pkg/logger"
	corsmiddleware "github.com/akademix/records-api/pkg/middleware/cors"
	reqidmiddleware "github.com/akademix/records-api/pkg/middleware/requestid"
)

// @title Akademix Records API
// @version 1.0.0
// @description Reporting, dashboard, and export backend for academic records
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

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("postgres connection failed", "error", err)
	}
	defer db.Close()

	metricsSvc := service.NewMetricsService()

	// Redis is optional: without it the dashboard simply recomputes on
	// every request.
	var cacheSvc *service.CacheService
	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Warn("redis unavailable, dashboard caching disabled")
	} else {
		defer redisClient.Close()
		cacheRepo := repository.NewCacheRepository(redisClient, logr)
		cacheSvc = service.NewCacheService(cacheRepo, metricsSvc, cfg.Dashboard.CacheTTL, logr, true)
	}

	validate := validator.New()
	reportRepo := repository.NewReportRepository(db)
	dashboardRepo := repository.NewDashboardRepository(db)

	reportSvc := service.NewReportService(reportRepo, validate, logr)
	exportSvc := service.NewExportService(reportSvc, logr, service.ExportServiceConfig{
		MaxRows: cfg.Exports.MaxRows,
		Timeout: cfg.Exports.Timeout,
	})
	dashboardSvc := service.NewDashboardService(dashboardRepo, cacheSvc, metricsSvc, logr, service.DashboardServiceConfig{
		CacheTTL: cfg.Dashboard.CacheTTL,
	})

	reportHandler := handler.NewReportHandler(reportSvc)
	exportHandler := handler.NewExportHandler(exportSvc)
	dashboardHandler := handler.NewDashboardHandler(dashboardSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		if redisClient != nil {
			if err := redisClient.Ping(c.Request.Context()).Err(); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.Use(middleware.Auth(cfg.JWT.Secret))
	api.Use(middleware.WithResponseMeta())
	{
		api.GET("/dashboard", dashboardHandler.Overview)

		reports := api.Group("/reports")
		reports.Use(middleware.Audit(logr, "report.view", "reports"))
		{
			reports.GET("/enrollments", reportHandler.Enrollments)
			reports.POST("/enrollments", reportHandler.Enrollments)
			reports.GET("/grades", reportHandler.Grades)
			reports.POST("/grades", reportHandler.Grades)
			reports.GET("/teachers", reportHandler.Teachers)
			reports.POST("/teachers", reportHandler.Teachers)
		}

		api.POST("/export", middleware.Audit(logr, "report.export", "exports"), exportHandler.Export)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
