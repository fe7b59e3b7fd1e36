package worker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// WorkerManager runs registered workers on a bounded pool.
// A failing worker does not stop the others; every failure is reported.
type WorkerManager struct {
	workers []Worker
	limit   int
	logger  *zap.Logger
	mu      sync.Mutex
}

// NewWorkerManager creates a manager running at most limit workers at once
func NewWorkerManager(limit int, logger *zap.Logger) *WorkerManager {
	if limit < 1 {
		limit = 1
	}
	return &WorkerManager{
		workers: make([]Worker, 0),
		limit:   limit,
		logger:  logger,
	}
}

func (m *WorkerManager) Register(w Worker) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.workers = append(m.workers, w)
	m.logger.Debug("Worker registered", zap.String("name", w.Name()))
}

// Run starts every registered worker and waits for all of them. The returned
// error joins each worker's failure in registration order.
func (m *WorkerManager) Run(ctx context.Context) error {
	m.mu.Lock()
	workers := make([]Worker, len(m.workers))
	copy(workers, m.workers)
	m.mu.Unlock()

	if len(workers) == 0 {
		return nil
	}

	m.logger.Info("Starting workers",
		zap.Int("count", len(workers)),
		zap.Int("limit", m.limit))
	start := time.Now()

	errs := make([]error, len(workers))
	var g errgroup.Group
	g.SetLimit(m.limit)

	for i, w := range workers {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				errs[i] = fmt.Errorf("%s: %w", w.Name(), err)
				return nil
			}
			if err := w.Run(ctx); err != nil {
				m.logger.Error("Worker failed",
					zap.String("name", w.Name()),
					zap.Error(err))
				errs[i] = fmt.Errorf("%s: %w", w.Name(), err)
			}
			return nil
		})
	}
	_ = g.Wait()

	err := errors.Join(errs...)
	m.logger.Info("Workers finished",
		zap.Int("count", len(workers)),
		zap.Bool("failed", err != nil),
		zap.Duration("duration", time.Since(start)))

	return err
}
