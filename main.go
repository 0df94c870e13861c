package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	controller "github.com/Itish41/InsightBoard/controller"
	"github.com/Itish41/InsightBoard/initializers"
	middleware "github.com/Itish41/InsightBoard/middleware"
	service "github.com/Itish41/InsightBoard/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	if _, err := initializers.LoadEnv(); err != nil {
		log.Fatalf("[CRITICAL] Failed to load env: %s", err)
	}
	cfg, err := initializers.LoadConfig()
	if err != nil {
		log.Fatalf("[CRITICAL] Failed to load config: %s", err)
	}
	logger, err := initializers.NewLogger(cfg.LogLevel, cfg.Environment)
	if err != nil {
		log.Fatalf("[CRITICAL] Failed to build logger: %s", err)
	}
	defer logger.Sync()

	var (
		db         *gorm.DB
		connectErr error
	)
	if cfg.StoreBackend == initializers.BackendPostgres {
		db, connectErr = initializers.ConnectDB(cfg.DirectURL, cfg.IsDevelopment(), logger)
		if connectErr != nil {
			logger.Error("failed to initialize database connection", zap.Error(connectErr))
		} else if cfg.RunMigrations {
			if err := initializers.Migrate(db, initializers.DefaultMigrationsSource, logger); err != nil {
				logger.Fatal("failed to run database migrations", zap.Error(err))
			}
		}
	}

	transcripts := service.NewTranscriptService(service.TranscriptDeps{
		Engine:      initializers.BuildEngine(cfg, logger),
		Store:       initializers.BuildStore(cfg, db, connectErr, logger),
		Index:       initializers.BuildSearchIndex(cfg, logger),
		Archive:     initializers.BuildArchive(cfg, logger),
		Environment: cfg.Environment,
		Logger:      logger,
	})
	insightController := controller.NewInsightController(transcripts, logger)

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.CORSMiddleware(cfg.AllowedOrigins()))

	// Global rate limiter for most routes
	globalLimiter := middleware.NewRateLimiter(cfg.RateLimitPerMinute)
	defer globalLimiter.Stop()
	router.Use(globalLimiter.Limit())

	// LLM-backed analysis gets the stricter limit
	analyzeLimiter := middleware.NewRateLimiter(cfg.AnalyzeRateLimitPerMinute)
	defer analyzeLimiter.Stop()
	controller.RegisterRoutes(router, insightController, analyzeLimiter.Limit())
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("starting InsightBoard API", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}
