package main

import (
	"fmt"
	"log"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/exam-notify-api/api/swagger"
	"github.com/noah-isme/exam-notify-api/internal/handler"
	"github.com/noah-isme/exam-notify-api/internal/middleware"
	"github.com/noah-isme/exam-notify-api/internal/models"
	"github.com/noah-isme/exam-notify-api/internal/repository"
	"github.com/noah-isme/exam-notify-api/internal/service"
	"github.com/noah-isme/exam-notify-api/internal/transport"
	"github.com/noah-isme/exam-notify-api/pkg/cache"
	"github.com/noah-isme/exam-notify-api/pkg/config"
	"github.com/noah-isme/exam-notify-api/pkg/database"
	"github.com/noah-isme/exam-notify-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/exam-notify-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/exam-notify-api/pkg/middleware/requestid"
	"github.com/noah-isme/exam-notify-api/pkg/storage"
)

// @title Exam Notify API
// @version 0.1.0
// @description SMS notification service for exam results
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
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	store, err := storage.NewLocalStorage(cfg.Stores.DataDir)
	if err != nil {
		logr.Sugar().Fatalw("failed to init data dir", "error", err)
	}

	metrics := service.NewMetricsService()

	var cacheSvc *service.CacheService
	if cfg.Cache.Enabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, continuing without cache", "error", err)
		} else {
			defer redisClient.Close()
			cacheRepo := repository.NewCacheRepository(redisClient, logr)
			cacheSvc = service.NewCacheService(cacheRepo, metrics, cfg.Cache.TTL, logr, true)
		}
	}

	examRepo := repository.NewExamRepository(db)
	tableRepo := repository.NewScoreTableRepository(filepath.Join(cfg.Stores.DataDir, cfg.Stores.ScoreTableDir))
	contactRepo := repository.NewContactRepository(store, cfg.Stores.ContactsFile)
	providerRepo := repository.NewProviderConfigRepository(store, cfg.Stores.ProviderConfigFile)
	auditRepo := repository.NewAuditLogRepository(store, cfg.Stores.SendLogFile, cfg.Stores.BackupDir)

	httpClient := &http.Client{Timeout: cfg.SMS.HTTPTimeout}
	factory := func(pcfg models.ProviderConfig) transport.Transport {
		if cfg.SMS.DefaultTestMode {
			pcfg.TestMode = true
		}
		return transport.New(pcfg, httpClient, logr)
	}

	examSvc := service.NewExamService(examRepo, tableRepo, cacheSvc, logr)
	contactSvc := service.NewContactService(contactRepo, cacheSvc, nil, logr)
	preparerSvc := service.NewPreparerService(tableRepo, examRepo, contactRepo, cacheSvc, nil, logr)
	senderSvc := service.NewSenderService(contactRepo, auditRepo, providerRepo, tableRepo, examRepo, factory, metrics, nil, logr)
	auditSvc := service.NewAuditLogService(auditRepo, logr)
	providerSvc := service.NewProviderConfigService(providerRepo, nil, logr)
	exportSvc := service.NewExportService()

	examHandler := handler.NewExamHandler(examSvc)
	contactHandler := handler.NewContactHandler(contactSvc)
	messageHandler := handler.NewMessageHandler(preparerSvc, senderSvc, exportSvc)
	auditHandler := handler.NewAuditLogHandler(auditSvc, exportSvc)
	providerHandler := handler.NewProviderConfigHandler(providerSvc)
	metricsHandler := handler.NewMetricsHandler(metrics)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))
	r.Use(middleware.WithResponseMeta())

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Health)
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	{
		api.GET("/exams", examHandler.List)
		api.GET("/exams/:id/columns", examHandler.Columns)

		api.GET("/contacts", contactHandler.List)
		api.POST("/contacts", contactHandler.Upsert)
		api.PUT("/contacts", contactHandler.Replace)

		api.POST("/messages/prepare", messageHandler.Prepare)
		api.GET("/messages/preview", messageHandler.Preview)
		api.POST("/messages/send", messageHandler.Send)
		api.POST("/messages/unmatched/export", messageHandler.ExportUnmatched)

		api.GET("/audit-log", auditHandler.List)
		api.POST("/audit-log/clear", auditHandler.Clear)
		api.GET("/audit-log/export", auditHandler.Export)

		api.GET("/provider-config", providerHandler.Get)
		api.PUT("/provider-config", providerHandler.Update)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Info("server starting", zap.String("addr", addr), zap.String("env", cfg.Env))
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
