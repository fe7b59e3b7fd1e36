package repository

import (
	"context"

	"github.com/bikeshare-loader/internal/domain"
)

type CheckpointRepository interface {
	List(ctx context.Context) ([]domain.Checkpoint, error)
	IsDone(ctx context.Context, stage domain.Stage) (bool, error)
	Mark(ctx context.Context, stage domain.Stage, details interface{}) error

	// Reset forgets the given stages, or all of them when none are passed
	Reset(ctx context.Context, stages ...domain.Stage) error
}
