package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/edu-portal-api/api/swagger"
	"github.com/noah-isme/edu-portal-api/internal/handler"
	"github.com/noah-isme/edu-portal-api/internal/middleware"
	"github.com/noah-isme/edu-portal-api/internal/repository"
	"github.com/noah-isme/edu-portal-api/internal/service"
	"github.com/noah-isme/edu-portal-api/pkg/cache"
	"github.com/noah-isme/edu-portal-api/pkg/config"
	"github.com/noah-isme/edu-portal-api/pkg/database"
	"github.com/noah-isme/edu-portal-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/edu-portal-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/edu-portal-api/pkg/middleware/requestid"
	"github.com/noah-isme/edu-portal-api/pkg/validation"
)

// @title Education Portal API
// @version 1.0.0
// @description Scholarships, study destinations and editorial content with an administrator console
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

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect database", zap.Error(err))
	}
	defer db.Close()

	var cacheStore service.CacheRepository
	if cfg.Cache.Enabled {
		client, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, caching disabled", zap.Error(err))
		} else {
			defer client.Close()
			cacheStore = repository.NewCacheRepository(client, "edu:", logr)
		}
	}

	application := buildApp(cfg, logr, db, cacheStore)
	auditSvc := application.audit

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	auditSvc.Start(ctx)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: application.router,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
	auditSvc.Stop()
	logr.Info("server stopped")
}

// app is the HTTP router plus the background workers its handlers feed.
type app struct {
	router *gin.Engine
	audit  *service.AuditService
}

// buildApp wires repositories, services and handlers onto a gin engine.
// A nil cacheStore disables caching.
func buildApp(cfg *config.Config, logr *zap.Logger, db *sqlx.DB, cacheStore service.CacheRepository) *app {
	metrics := service.NewMetricsService()
	validate := validation.New()
	cacheSvc := service.NewCacheService(cacheStore, metrics, cfg.Cache.ContentTTL, logr, cacheStore != nil)

	scholarshipRepo := repository.NewScholarshipRepository(db)
	articleRepo := repository.NewArticleRepository(db)
	countryRepo := repository.NewCountryRepository(db)
	universityRepo := repository.NewUniversityRepository(db)
	newsRepo := repository.NewNewsRepository(db)
	menuRepo := repository.NewMenuRepository(db)
	userRepo := repository.NewUserRepository(db)

	auditSvc := service.NewAuditService(repository.NewAuditRepository(db), metrics, logr, service.AuditConfig{
		Workers:    cfg.Audit.Workers,
		BufferSize: cfg.Audit.BufferSize,
		Retries:    cfg.Audit.Retries,
	})

	authSvc := service.NewAuthService(userRepo, auditSvc, validate, logr, service.AuthConfig{
		AccessTokenSecret:  cfg.JWT.Secret,
		AccessTokenExpiry:  cfg.JWT.Expiration,
		RefreshTokenExpiry: cfg.JWT.RefreshExpiration,
		Issuer:             cfg.JWT.Issuer,
	})

	deps := service.ContentDeps{
		Auth:      authSvc,
		Validator: validate,
		Cache:     cacheSvc,
		Audit:     auditSvc,
		Metrics:   metrics,
		Logger:    logr,
		ListTTL:   cfg.Cache.ContentTTL,
	}
	sources := service.SearchSources{
		Scholarships: scholarshipRepo,
		Articles:     articleRepo,
		Countries:    countryRepo,
		Universities: universityRepo,
		News:         newsRepo,
	}

	handlers := handler.Handlers{
		Scholarships: handler.NewScholarshipHandler(service.NewScholarshipService(scholarshipRepo, deps)),
		Articles:     handler.NewArticleHandler(service.NewArticleService(articleRepo, deps)),
		Countries:    handler.NewCountryHandler(service.NewCountryService(countryRepo, universityRepo, scholarshipRepo, deps)),
		Universities: handler.NewUniversityHandler(service.NewUniversityService(universityRepo, deps)),
		News:         handler.NewNewsHandler(service.NewNewsService(newsRepo, deps)),
		Menu:         handler.NewMenuHandler(service.NewMenuService(menuRepo, deps)),
		Search:       handler.NewSearchHandler(service.NewSearchService(sources, cacheSvc, metrics, logr, cfg.Cache.SearchTTL)),
		Auth:         handler.NewAuthHandler(authSvc),
		Users:        handler.NewUserHandler(service.NewUserService(userRepo, authSvc, auditSvc, validate, logr)),
		Export:       handler.NewExportHandler(service.NewExportService(service.ExportSources{SearchSources: sources, Menu: menuRepo}, authSvc, auditSvc, logr)),
		System:       handler.NewSystemHandler(db, metrics.Handler()),
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS))
	r.Use(middleware.Metrics(metrics))

	handler.RegisterRoutes(r, cfg.APIPrefix, handlers, handler.Guards{Tokens: authSvc, Admin: authSvc})

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return &app{router: r, audit: auditSvc}
}
