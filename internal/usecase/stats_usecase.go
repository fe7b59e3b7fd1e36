package usecase

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/bikeshare-loader/internal/domain"
	"github.com/bikeshare-loader/internal/domain/repository"
)

// StatsUseCase serves store statistics, through the cache when one is configured
type StatsUseCase struct {
	statsRepo repository.StatsRepository
	cacheRepo repository.CacheRepository
	ttl       time.Duration
	logger    *zap.Logger
}

// NewStatsUseCase creates a StatsUseCase; cacheRepo may be nil
func NewStatsUseCase(
	statsRepo repository.StatsRepository,
	cacheRepo repository.CacheRepository,
	ttl time.Duration,
	logger *zap.Logger,
) *StatsUseCase {
	return &StatsUseCase{
		statsRepo: statsRepo,
		cacheRepo: cacheRepo,
		ttl:       ttl,
		logger:    logger,
	}
}

// GetStatistics returns the statistics and whether they came from the cache
func (uc *StatsUseCase) GetStatistics(ctx context.Context) (*domain.Statistics, bool, error) {
	if uc.cacheRepo != nil {
		cached, err := uc.cacheRepo.GetStats(ctx)
		if err == nil && cached != nil {
			uc.logger.Debug("Statistics fetched from cache")
			return cached, true, nil
		}
		if err != nil {
			uc.logger.Warn("Failed to get stats from cache", zap.Error(err))
		}
	}

	uc.logger.Debug("Fetching statistics from database")
	stats, err := uc.statsRepo.GetStatistics(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("get statistics from db: %w", err)
	}

	uc.store(ctx, stats)
	return stats, false, nil
}

// RefreshStatistics recomputes the statistics and replaces the cached copy
func (uc *StatsUseCase) RefreshStatistics(ctx context.Context) (*domain.Statistics, error) {
	uc.logger.Info("Refreshing statistics")

	stats, err := uc.statsRepo.GetStatistics(ctx)
	if err != nil {
		return nil, fmt.Errorf("refresh statistics: %w", err)
	}

	uc.store(ctx, stats)
	return stats, nil
}

func (uc *StatsUseCase) store(ctx context.Context, stats *domain.Statistics) {
	if uc.cacheRepo == nil {
		return
	}
	// a cache failure never fails the request
	if err := uc.cacheRepo.SetStats(ctx, stats, uc.ttl); err != nil {
		uc.logger.Warn("Failed to cache stats", zap.Error(err))
	}
}
