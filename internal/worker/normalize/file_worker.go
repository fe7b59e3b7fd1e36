package normalize

import (
	"context"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"github.com/bikeshare-loader/internal/domain"
	"github.com/bikeshare-loader/internal/normalizer"
	"github.com/bikeshare-loader/internal/worker"
)

// FileWorker normalizes a single raw file into the output directory
type FileWorker struct {
	*worker.BaseWorker
	normalizer *normalizer.Normalizer
	src        string
	dstDir     string
	overwrite  bool

	mu     sync.Mutex
	result *domain.FileResult
}

func NewFileWorker(
	n *normalizer.Normalizer,
	src, dstDir string,
	overwrite bool,
	logger *zap.Logger,
) *FileWorker {
	return &FileWorker{
		BaseWorker: worker.NewBaseWorker(filepath.Base(src), logger),
		normalizer: n,
		src:        src,
		dstDir:     dstDir,
		overwrite:  overwrite,
	}
}

func (w *FileWorker) Run(ctx context.Context) error {
	w.Logger().Debug("Normalizing file",
		zap.String("source", w.src),
		zap.String("city", w.normalizer.City()))

	result, err := w.normalizer.NormalizeFile(ctx, w.src, w.dstDir, w.overwrite)
	if err != nil {
		return err
	}

	w.mu.Lock()
	w.result = result
	w.mu.Unlock()
	return nil
}

// Source returns the raw file path
func (w *FileWorker) Source() string {
	return w.src
}

// Result returns the outcome of a successful Run, or nil
func (w *FileWorker) Result() *domain.FileResult {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.result
}
