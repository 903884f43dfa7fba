package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pvpk06/quiz-analysis-service/internal/cache"
	"github.com/pvpk06/quiz-analysis-service/internal/config"
	"github.com/pvpk06/quiz-analysis-service/internal/events"
	"github.com/pvpk06/quiz-analysis-service/internal/handlers"
	"github.com/pvpk06/quiz-analysis-service/internal/repositories/postgres"
	"github.com/pvpk06/quiz-analysis-service/internal/services"
	"github.com/pvpk06/quiz-analysis-service/internal/utils"
	"github.com/pvpk06/quiz-analysis-service/pkg"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	var logger utils.Logger
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
		logger = utils.NewDefaultLogger()
	} else {
		logger = utils.NewDevelopmentLogger()
	}
	slogger := utils.ToSlogLogger(logger)

	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		logger.Error("failed to init database", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := pkg.CloseDatabase(db); err != nil {
			logger.Warn("failed to close database", "error", err)
		}
	}()

	redisClient, err := pkg.NewRedisClient(cfg)
	if err != nil {
		logger.Error("failed to init redis", "error", err)
		os.Exit(1)
	}
	defer redisClient.Close()

	var publisher events.EventPublisher = events.NoopEventPublisher{}
	if len(cfg.KafkaBrokers) > 0 {
		kafkaPublisher, err := events.NewKafkaEventPublisher(events.PublisherConfig{
			KafkaBrokers: cfg.KafkaBrokers,
			TopicName:    cfg.AnalysisTopic,
			Logger:       slogger,
		})
		if err != nil {
			logger.Error("failed to init event publisher", "error", err)
			os.Exit(1)
		}
		publisher = kafkaPublisher
	}
	defer publisher.Close()

	repo := postgres.NewRepository(db)
	cacheService := cache.NewRedisCache(redisClient, slogger)
	validator := utils.NewValidator()

	gradingService := services.NewGradingService(slogger)
	analysisService := services.NewAnalysisService(repo, cacheService, publisher, slogger, cfg.CacheTTL)
	exportService := services.NewExportService(repo, gradingService, publisher, slogger)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.LoggerMiddleware(logger))

	handlerManager := handlers.NewHandlerManager(analysisService, exportService, validator, logger)
	handlerManager.SetupRoutes(router)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		logger.Info("starting quiz analysis service", "port", cfg.Port, "environment", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", "error", err)
	}
}
