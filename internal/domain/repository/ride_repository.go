package repository

import (
	"context"

	"github.com/bikeshare-loader/internal/domain"
)

// RideRepository covers the rides table from bulk load through deduplication
type RideRepository interface {
	// CopyFile bulk-loads one normalized file and records it as loaded, atomically.
	// Returns the number of rows copied.
	CopyFile(ctx context.Context, path string) (int64, error)

	// LoadedFiles lists files already committed, oldest first
	LoadedFiles(ctx context.Context) ([]domain.LoadedFile, error)

	// Deduplicate keeps the earliest ride per ride_id and makes ride_id the primary key
	Deduplicate(ctx context.Context) (*domain.DedupResult, error)
}
