package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpAdapter "github.com/iho/gostatement/internal/adapter/http"
	"github.com/iho/gostatement/internal/adapter/http/handler"
	"github.com/iho/gostatement/internal/adapter/http/middleware"
	redisRepo "github.com/iho/gostatement/internal/adapter/repository/redis"
	"github.com/iho/gostatement/internal/engine"
	"github.com/iho/gostatement/internal/infrastructure/config"
	"github.com/iho/gostatement/internal/infrastructure/logger"
	"github.com/iho/gostatement/internal/infrastructure/metrics"
	"github.com/iho/gostatement/internal/infrastructure/redis"
	"github.com/iho/gostatement/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Setup logger
	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	ctx := context.Background()

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	// Initialize metrics
	m := metrics.New()

	// Initialize the processing engine
	engineCfg := engine.DefaultConfig()
	engineCfg.DayFirst = cfg.DateDayFirst
	engineCfg.MaxDateAgeYears = cfg.MaxDateAgeYears
	engineCfg.TopN = cfg.TopTransactions
	eng := engine.New(engineCfg, log)

	// Initialize repositories
	retrier := redisRepo.NewRetrier(log)
	resultStore := redisRepo.NewResultStore(redisClient, retrier, m)
	idGen := redisRepo.NewULIDGenerator()

	// Initialize use cases
	statementUC := usecase.NewStatementUseCase(eng, resultStore, idGen, m, log, cfg.ResultTTL)

	// Initialize handlers
	statementHandler := handler.NewStatementHandler(statementUC)
	healthHandler := handler.NewHealthHandler(redisClient)

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		StatementHandler:  statementHandler,
		HealthHandler:     healthHandler,
		MetricsMiddleware: middleware.NewMetricsMiddleware(m),
		Logger:            log,
	})

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
