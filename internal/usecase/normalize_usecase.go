package usecase

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/bikeshare-loader/internal/domain"
	"github.com/bikeshare-loader/internal/normalizer"
	apperrors "github.com/bikeshare-loader/internal/pkg/errors"
	"github.com/bikeshare-loader/internal/worker"
	"github.com/bikeshare-loader/internal/worker/normalize"
)

// PlannedFile - raw file scheduled for normalization
type PlannedFile struct {
	Source string
	City   string
	Output string
}

// NormalizeUseCase turns the raw source directories into normalized files
type NormalizeUseCase struct {
	sources   []domain.Source
	outputDir string
	workers   int
	logger    *zap.Logger
}

func NewNormalizeUseCase(
	sources []domain.Source,
	outputDir string,
	workers int,
	logger *zap.Logger,
) *NormalizeUseCase {
	return &NormalizeUseCase{
		sources:   sources,
		outputDir: outputDir,
		workers:   workers,
		logger:    logger,
	}
}

// OutputDir is where normalized files are written
func (uc *NormalizeUseCase) OutputDir() string {
	return uc.outputDir
}

// Plan lists the raw *.csv files of every source, each source in lexical
// order. Two raw files that would produce the same output name are rejected.
func (uc *NormalizeUseCase) Plan() ([]PlannedFile, error) {
	var planned []PlannedFile
	outputs := make(map[string]string)

	for _, src := range uc.sources {
		info, err := os.Stat(src.Dir)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrConfig, err, map[string]interface{}{"dir": src.Dir})
		}
		if !info.IsDir() {
			return nil, apperrors.Wrap(apperrors.ErrConfig,
				fmt.Errorf("%s is not a directory", src.Dir),
				map[string]interface{}{"dir": src.Dir})
		}

		// Glob returns matches in lexical order
		files, err := filepath.Glob(filepath.Join(src.Dir, "*.csv"))
		if err != nil {
			return nil, fmt.Errorf("list %s: %w", src.Dir, err)
		}

		for _, f := range files {
			out := normalizer.OutputPath(f, uc.outputDir)
			if prev, ok := outputs[out]; ok {
				return nil, apperrors.Wrap(apperrors.ErrConfig,
					fmt.Errorf("%s and %s both normalize to %s", prev, f, filepath.Base(out)),
					map[string]interface{}{"file": filepath.Base(f)})
			}
			outputs[out] = f
			planned = append(planned, PlannedFile{Source: f, City: src.City, Output: out})
		}
	}

	return planned, nil
}

// Run normalizes every planned file on the worker pool. All files are
// attempted; the error joins every per-file failure.
func (uc *NormalizeUseCase) Run(ctx context.Context, overwrite bool) (*domain.NormalizeResult, error) {
	planned, err := uc.Plan()
	if err != nil {
		return nil, err
	}
	if len(planned) == 0 {
		uc.logger.Warn("No raw files found", zap.Int("sources", len(uc.sources)))
		return &domain.NormalizeResult{}, nil
	}

	uc.logger.Info("Normalizing raw files",
		zap.Int("files", len(planned)),
		zap.String("output_dir", uc.outputDir),
		zap.Int("workers", uc.workers))

	normalizers := make(map[string]*normalizer.Normalizer, len(uc.sources))
	manager := worker.NewWorkerManager(uc.workers, uc.logger)
	fileWorkers := make([]*normalize.FileWorker, 0, len(planned))

	for _, p := range planned {
		n, ok := normalizers[p.City]
		if !ok {
			n = normalizer.New(p.City, uc.logger)
			normalizers[p.City] = n
		}
		w := normalize.NewFileWorker(n, p.Source, uc.outputDir, overwrite, uc.logger)
		fileWorkers = append(fileWorkers, w)
		manager.Register(w)
	}

	runErr := manager.Run(ctx)

	result := &domain.NormalizeResult{}
	for _, w := range fileWorkers {
		r := w.Result()
		if r == nil {
			continue
		}
		result.Files++
		result.Rows += r.Rows
		if r.Skipped {
			result.Skipped++
		}
	}

	if runErr != nil {
		return result, runErr
	}

	uc.logger.Info("Normalization complete",
		zap.Int("files", result.Files),
		zap.Int("skipped", result.Skipped),
		zap.Int64("rows", result.Rows))

	return result, nil
}
