package repository

import (
	"context"

	"github.com/bikeshare-loader/internal/domain"
)

// IntegrityRepository installs the constraints and indexes that finish a load
type IntegrityRepository interface {
	// Enforce nulls sentinel station ids and adds the station foreign keys
	Enforce(ctx context.Context) (*domain.IntegrityResult, error)

	// CreateIndexes builds the secondary ride indexes
	CreateIndexes(ctx context.Context) error
}
