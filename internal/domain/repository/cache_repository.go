package repository

import (
	"context"
	"time"

	"github.com/bikeshare-loader/internal/domain"
)

// CacheRepository caches the aggregate statistics served by the read API.
// The loader invalidates the entry whenever a run changes the ride store.
type CacheRepository interface {
	// GetStats returns nil, nil on a miss
	GetStats(ctx context.Context) (*domain.Statistics, error)
	SetStats(ctx context.Context, stats *domain.Statistics, ttl time.Duration) error
	InvalidateStats(ctx context.Context) error
}
