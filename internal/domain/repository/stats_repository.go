package repository

import (
	"context"

	"github.com/bikeshare-loader/internal/domain"
)

type StatsRepository interface {
	// GetStatistics aggregates over the rides and stations tables
	GetStatistics(ctx context.Context) (*domain.Statistics, error)
}
