package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bikeshare-loader/internal/domain"
	"github.com/bikeshare-loader/internal/usecase"
)

func TestStatsUseCase_GetStatistics(t *testing.T) {
	ctx := context.Background()
	stats := &domain.Statistics{Rides: domain.RideStats{TotalRides: 42}}

	t.Run("cache hit", func(t *testing.T) {
		statsRepo := &MockStatsRepository{}
		cache := &MockCacheRepository{}
		cache.On("GetStats", ctx).Return(stats, nil).Once()

		uc := usecase.NewStatsUseCase(statsRepo, cache, time.Minute, zap.NewNop())
		got, cached, err := uc.GetStatistics(ctx)

		require.NoError(t, err)
		assert.True(t, cached)
		assert.Equal(t, int64(42), got.Rides.TotalRides)
		statsRepo.AssertNotCalled(t, "GetStatistics", mock.Anything)
	})

	t.Run("cache miss stores with ttl", func(t *testing.T) {
		statsRepo := &MockStatsRepository{}
		cache := &MockCacheRepository{}
		cache.On("GetStats", ctx).Return(nil, nil).Once()
		statsRepo.On("GetStatistics", ctx).Return(stats, nil).Once()
		cache.On("SetStats", ctx, stats, 2*time.Minute).Return(nil).Once()

		uc := usecase.NewStatsUseCase(statsRepo, cache, 2*time.Minute, zap.NewNop())
		got, cached, err := uc.GetStatistics(ctx)

		require.NoError(t, err)
		assert.False(t, cached)
		assert.Same(t, stats, got)
		cache.AssertExpectations(t)
		statsRepo.AssertExpectations(t)
	})

	t.Run("cache errors fall through to db", func(t *testing.T) {
		statsRepo := &MockStatsRepository{}
		cache := &MockCacheRepository{}
		cache.On("GetStats", ctx).Return(nil, errors.New("redis down")).Once()
		statsRepo.On("GetStatistics", ctx).Return(stats, nil).Once()
		cache.On("SetStats", ctx, stats, time.Minute).Return(errors.New("redis down")).Once()

		uc := usecase.NewStatsUseCase(statsRepo, cache, time.Minute, zap.NewNop())
		got, _, err := uc.GetStatistics(ctx)

		require.NoError(t, err)
		assert.Same(t, stats, got)
	})

	t.Run("no cache configured", func(t *testing.T) {
		statsRepo := &MockStatsRepository{}
		statsRepo.On("GetStatistics", ctx).Return(stats, nil).Once()

		uc := usecase.NewStatsUseCase(statsRepo, nil, time.Minute, zap.NewNop())
		_, cached, err := uc.GetStatistics(ctx)

		require.NoError(t, err)
		assert.False(t, cached)
	})

	t.Run("db error", func(t *testing.T) {
		statsRepo := &MockStatsRepository{}
		statsRepo.On("GetStatistics", ctx).Return(nil, errors.New("connection refused")).Once()

		uc := usecase.NewStatsUseCase(statsRepo, nil, time.Minute, zap.NewNop())
		got, _, err := uc.GetStatistics(ctx)

		assert.Error(t, err)
		assert.Nil(t, got)
	})
}

func TestStatsUseCase_RefreshStatistics(t *testing.T) {
	ctx := context.Background()
	stats := &domain.Statistics{Stations: domain.StationStats{TotalStations: 7}}

	statsRepo := &MockStatsRepository{}
	cache := &MockCacheRepository{}
	statsRepo.On("GetStatistics", ctx).Return(stats, nil).Once()
	cache.On("SetStats", ctx, stats, time.Hour).Return(nil).Once()

	uc := usecase.NewStatsUseCase(statsRepo, cache, time.Hour, zap.NewNop())
	got, err := uc.RefreshStatistics(ctx)

	require.NoError(t, err)
	assert.Equal(t, int64(7), got.Stations.TotalStations)
	cache.AssertNotCalled(t, "GetStats", mock.Anything)
	cache.AssertExpectations(t)
}
