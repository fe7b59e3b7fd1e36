package worker

import (
	"go.uber.org/zap"
)

// BaseWorker carries the name and a logger scoped to it
type BaseWorker struct {
	name   string
	logger *zap.Logger
}

func NewBaseWorker(name string, logger *zap.Logger) *BaseWorker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BaseWorker{
		name:   name,
		logger: logger.With(zap.String("worker", name)),
	}
}

func (w *BaseWorker) Name() string {
	return w.name
}

func (w *BaseWorker) Logger() *zap.Logger {
	return w.logger
}
