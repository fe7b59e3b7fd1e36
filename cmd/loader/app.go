package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/bikeshare-loader/internal/config"
	"github.com/bikeshare-loader/internal/domain/repository"
	"github.com/bikeshare-loader/internal/pkg/errors"
	"github.com/bikeshare-loader/internal/pkg/logger"
	"github.com/bikeshare-loader/internal/repository/cache"
	"github.com/bikeshare-loader/internal/repository/postgres"
	redisRepo "github.com/bikeshare-loader/internal/repository/redis"
	"github.com/bikeshare-loader/internal/usecase"
)

// app holds what a command needs; connections are opened on demand
type app struct {
	cfg   *config.Config
	log   *zap.Logger
	db    *postgres.DB
	redis *cache.Redis
}

func newApp(opts *globalOptions) (*app, error) {
	cfg, err := config.LoadFile(opts.EnvFile)
	if err != nil {
		return nil, errors.Wrap(errors.ErrConfig, err, map[string]interface{}{"env_file": opts.EnvFile})
	}
	if opts.LogLevel != "" {
		cfg.Log.Level = opts.LogLevel
	}

	// stdout is left for command output
	log, err := logger.New(cfg.Log.Level, logger.WithOutput("stderr"))
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	return &app{cfg: cfg, log: log}, nil
}

func (a *app) openDB() (*postgres.DB, error) {
	if a.db != nil {
		return a.db, nil
	}
	db, err := postgres.New(&a.cfg.Database, a.log)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabaseError, err, map[string]interface{}{
			"host":     a.cfg.Database.Host,
			"database": a.cfg.Database.DBName,
		})
	}
	a.db = db
	return db, nil
}

// openRedis connects when Redis is enabled. A failed connection disables
// events and caching for this run rather than failing it.
func (a *app) openRedis() *cache.Redis {
	if a.redis != nil || !a.cfg.Redis.Enabled {
		return a.redis
	}
	r, err := cache.NewRedis(&a.cfg.Redis, a.log)
	if err != nil {
		a.log.Warn("Redis unavailable, stage events and cache invalidation disabled", zap.Error(err))
		return nil
	}
	a.redis = r
	return r
}

func (a *app) pipeline() (*usecase.PipelineUseCase, error) {
	db, err := a.openDB()
	if err != nil {
		return nil, err
	}

	rides := postgres.NewRideRepository(db)
	normalizeUC := usecase.NewNormalizeUseCase(
		a.cfg.Pipeline.Sources,
		a.cfg.Pipeline.OutputDir,
		a.cfg.Pipeline.Workers,
		a.log,
	)
	loadUC := usecase.NewLoadUseCase(rides, a.cfg.Pipeline.OutputDir, a.log)

	uc := usecase.NewPipelineUseCase(
		normalizeUC,
		loadUC,
		rides,
		postgres.NewStationRepository(db),
		postgres.NewIntegrityRepository(db),
		postgres.NewCheckpointRepository(db),
		a.log,
	)

	if r := a.openRedis(); r != nil {
		var stream repository.StreamRepository = redisRepo.NewStreamRepository(r.Client(), a.log)
		uc.WithEvents(stream, a.cfg.Pipeline.EventsStream).
			WithStatsCache(cache.NewCacheRepository(r))
	}

	return uc, nil
}

func (a *app) schema() (repository.SchemaRepository, error) {
	db, err := a.openDB()
	if err != nil {
		return nil, err
	}
	return postgres.NewSchemaRepository(db)
}

func (a *app) close() {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.log.Error("Failed to close PostgreSQL connection", zap.Error(err))
		}
	}
	_ = a.log.Sync()
}

// withApp runs fn with a fully configured app and releases it afterwards
func withApp(opts *globalOptions, fn func(ctx context.Context, a *app) error) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		a, err := newApp(opts)
		if err != nil {
			return err
		}
		defer a.close()
		return fn(ctx, a)
	}
}
