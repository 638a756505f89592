package main

import (
	"fmt"
	"log"

	_ "github.com/roboreach/site-api/api/swagger"
	"github.com/roboreach/site-api/internal/content"
	"github.com/roboreach/site-api/internal/handler"
	"github.com/roboreach/site-api/internal/middleware"
	"github.com/roboreach/site-api/internal/repository"
	"github.com/roboreach/site-api/internal/resource"
	"github.com/roboreach/site-api/internal/router"
	"github.com/roboreach/site-api/internal/service"
	"github.com/roboreach/site-api/pkg/cache"
	"github.com/roboreach/site-api/pkg/config"
	"github.com/roboreach/site-api/pkg/database"
	"github.com/roboreach/site-api/pkg/logger"
	"github.com/roboreach/site-api/pkg/storage"
)

// @title RoboReach Site API
// @version 1.0.0
// @description Marketing and donations API for a robotics education nonprofit
// @BasePath /
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
		logr.Sugar().Fatalw("failed to connect to database", "error", err)
	}
	defer db.Close()

	fileStore, err := storage.NewLocalStorage(cfg.Storage.TemplatesDir)
	if err != nil {
		logr.Sugar().Fatalw("failed to init template storage", "error", err)
	}

	var cacheRepo *repository.CacheRepository
	if cfg.Cache.Enabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, continuing without cache", "error", err)
		} else {
			defer redisClient.Close()
			cacheRepo = repository.NewCacheRepository(redisClient, logr)
		}
	}

	validate := resource.NewValidator()

	adminRepo := repository.NewAdminRepository(db)
	proposalRepo := repository.NewProposalRepository(db)
	templateRepo := repository.NewTemplateRepository(db)
	donationRepo := repository.NewDonationRepository(db)
	settingRepo := repository.NewSettingRepository(db)
	statsRepo := repository.NewStatsRepository(db)

	var metricsSvc *service.MetricsService
	if cfg.Metrics.Enabled {
		metricsSvc = service.NewMetricsService()
	}

	authSvc := service.NewAuthService(adminRepo, validate, logr, service.AuthConfig{
		Secret:     cfg.JWT.Secret,
		Expiration: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	var statsCache service.StatsCache
	if cacheRepo != nil {
		statsCache = cacheRepo
	}
	statsSvc := service.NewStatsService(statsRepo, proposalRepo, statsCache, cfg.Cache.StatsTTL, metricsSvc, logr)

	proposalSvc := service.NewProposalService(proposalRepo, statsSvc, validate, logr)
	templateSvc := service.NewTemplateService(templateRepo, fileStore, validate, logr, cfg.Storage.AllowedUploads)
	donationSvc := service.NewDonationService(donationRepo, validate, logr)
	settingSvc := service.NewSettingService(settingRepo, logr)

	registry := content.NewRegistry(db, validate, logr)
	registry.OnStatsWrite(statsSvc.Invalidate)

	engine := router.New(router.Deps{
		Config:    cfg,
		Logger:    logr,
		DB:        db,
		Metrics:   metricsSvc,
		Content:   registry,
		Auth:      handler.NewAuthHandler(authSvc),
		Proposals: handler.NewProposalHandler(proposalSvc),
		Templates: handler.NewTemplateHandler(templateSvc, metricsSvc, cfg.Storage.MaxUploadBytes),
		Donations: handler.NewDonationHandler(donationSvc),
		Stats:     handler.NewStatsHandler(statsSvc),
		Settings:  handler.NewSettingHandler(settingSvc),
		AuthGate:  middleware.Auth(authSvc),
		Observe:   middleware.Metrics(metricsSvc),
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := engine.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
