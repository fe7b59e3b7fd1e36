package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/bikeshare-loader/internal/domain"
	"github.com/bikeshare-loader/internal/domain/repository"
)

// StatsKey holds the cached aggregate statistics
const StatsKey = "bikeshare:stats:current"

type statsCache struct {
	client *redis.Client
	key    string
	logger *zap.Logger
}

func NewCacheRepository(r *Redis) repository.CacheRepository {
	return &statsCache{
		client: r.Client(),
		key:    StatsKey,
		logger: r.logger,
	}
}

func (c *statsCache) GetStats(ctx context.Context) (*domain.Statistics, error) {
	data, err := c.client.Get(ctx, c.key).Bytes()
	if errors.Is(err, redis.Nil) {
		c.logger.Debug("Stats cache miss", zap.String("key", c.key))
		return nil, nil
	}
	if err != nil {
		c.logger.Error("Failed to read stats cache", zap.String("key", c.key), zap.Error(err))
		return nil, fmt.Errorf("read stats cache: %w", err)
	}

	var stats domain.Statistics
	if err := json.Unmarshal(data, &stats); err != nil {
		// A payload from an older layout is treated as a miss and dropped
		c.logger.Warn("Discarding unreadable stats cache entry", zap.Error(err))
		_ = c.client.Del(ctx, c.key).Err()
		return nil, nil
	}

	return &stats, nil
}

func (c *statsCache) SetStats(ctx context.Context, stats *domain.Statistics, ttl time.Duration) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("marshal stats: %w", err)
	}

	if err := c.client.Set(ctx, c.key, data, ttl).Err(); err != nil {
		c.logger.Error("Failed to write stats cache", zap.String("key", c.key), zap.Error(err))
		return fmt.Errorf("write stats cache: %w", err)
	}

	c.logger.Debug("Stats cached",
		zap.Int64("rides", stats.Rides.TotalRides),
		zap.Duration("ttl", ttl))
	return nil
}

// InvalidateStats drops cached statistics after the ride store changes
func (c *statsCache) InvalidateStats(ctx context.Context) error {
	n, err := c.client.Del(ctx, c.key).Result()
	if err != nil {
		return fmt.Errorf("invalidate stats cache: %w", err)
	}
	c.logger.Debug("Stats cache invalidated", zap.Bool("was_cached", n > 0))
	return nil
}
