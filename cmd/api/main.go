package main

// @title Bikeshare Loader API
// @version 1.0.0
// @description Read API over the bike-share ride store: derived stations, nearest-station search, ride statistics and pipeline progress.

// @contact.name API Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	_ "github.com/bikeshare-loader/docs/swagger"
	"github.com/bikeshare-loader/internal/config"
	httpDelivery "github.com/bikeshare-loader/internal/delivery/http"
	"github.com/bikeshare-loader/internal/delivery/http/handler"
	"github.com/bikeshare-loader/internal/domain/repository"
	"github.com/bikeshare-loader/internal/pkg/logger"
	"github.com/bikeshare-loader/internal/repository/cache"
	"github.com/bikeshare-loader/internal/repository/postgres"
	"github.com/bikeshare-loader/internal/usecase"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Bikeshare Loader API")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
	)

	// 3. Connect to PostgreSQL
	db, err := postgres.New(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close PostgreSQL connection", zap.Error(err))
		}
	}()
	log.Info("PostgreSQL connected")

	// 4. Connect to Redis (optional)
	var redisClient *cache.Redis
	if cfg.Redis.Enabled {
		redisClient, err = cache.NewRedis(&cfg.Redis, log)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Error("Failed to close Redis connection", zap.Error(err))
			}
		}()
		log.Info("Redis connected")
	} else {
		log.Info("Redis disabled, statistics are not cached")
	}

	// 5. Health checks
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.Health(ctx); err != nil {
		log.Fatal("PostgreSQL health check failed", zap.Error(err))
	}
	if redisClient != nil {
		if err := redisClient.Health(ctx); err != nil {
			log.Fatal("Redis health check failed", zap.Error(err))
		}
	}

	log.Info("All connections healthy")

	// 6. Initialize Repositories
	rideRepo := postgres.NewRideRepository(db)
	stationRepo := postgres.NewStationRepository(db)
	statsRepo := postgres.NewStatsRepository(db, log)
	checkpointRepo := postgres.NewCheckpointRepository(db)
	integrityRepo := postgres.NewIntegrityRepository(db)

	var cacheRepo repository.CacheRepository
	if redisClient != nil {
		cacheRepo = cache.NewCacheRepository(redisClient)
	}

	log.Info("Repositories initialized")

	// 7. Initialize Use Cases
	stationUC := usecase.NewStationUseCase(stationRepo, log)
	statsUC := usecase.NewStatsUseCase(statsRepo, cacheRepo, cfg.Cache.StatsCacheTTL, log)

	// The API only reads pipeline status; stages are run by the loader CLI
	pipelineUC := usecase.NewPipelineUseCase(
		usecase.NewNormalizeUseCase(cfg.Pipeline.Sources, cfg.Pipeline.OutputDir, cfg.Pipeline.Workers, log),
		usecase.NewLoadUseCase(rideRepo, cfg.Pipeline.OutputDir, log),
		rideRepo,
		stationRepo,
		integrityRepo,
		checkpointRepo,
		log,
	)

	log.Info("Use cases initialized")

	// 8. Initialize HTTP Handlers
	checks := map[string]handler.HealthChecker{"postgres": db}
	if redisClient != nil {
		checks["redis"] = redisClient
	} else {
		checks["redis"] = nil
	}

	healthHandler := handler.NewHealthHandler(checks)
	stationHandler := handler.NewStationHandler(stationUC, log)
	statsHandler := handler.NewStatsHandler(statsUC, log)
	pipelineHandler := handler.NewPipelineHandler(pipelineUC, log)

	log.Info("HTTP handlers initialized")

	// 9. Initialize HTTP Server
	server := httpDelivery.NewServer(
		cfg,
		log,
		healthHandler,
		stationHandler,
		statsHandler,
		pipelineHandler,
	)

	log.Info("HTTP server initialized")

	// 10. Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 11. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	ctx, cancel = context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	log.Info("Server stopped")
}
