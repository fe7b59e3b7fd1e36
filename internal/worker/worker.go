package worker

import (
	"context"
)

// Worker is one independent unit of batch work
type Worker interface {
	// Run does the work; it must not share mutable state with other workers
	Run(ctx context.Context) error

	// Name identifies the worker in logs and errors
	Name() string
}
