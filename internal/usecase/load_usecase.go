package usecase

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/bikeshare-loader/internal/domain"
	"github.com/bikeshare-loader/internal/domain/repository"
	"github.com/bikeshare-loader/internal/normalizer"
	apperrors "github.com/bikeshare-loader/internal/pkg/errors"
)

// LoadUseCase bulk-loads normalized files, one committed file at a time
type LoadUseCase struct {
	rides    repository.RideRepository
	inputDir string
	logger   *zap.Logger
}

func NewLoadUseCase(rides repository.RideRepository, inputDir string, logger *zap.Logger) *LoadUseCase {
	return &LoadUseCase{
		rides:    rides,
		inputDir: inputDir,
		logger:   logger,
	}
}

// Pending returns the normalized files not yet loaded, in lexical order
func (uc *LoadUseCase) Pending(ctx context.Context) ([]string, int, error) {
	if _, err := os.Stat(uc.inputDir); err != nil {
		return nil, 0, apperrors.Wrap(apperrors.ErrConfig, err, map[string]interface{}{"dir": uc.inputDir})
	}

	files, err := filepath.Glob(filepath.Join(uc.inputDir, normalizer.OutputPrefix+"*.csv"))
	if err != nil {
		return nil, 0, fmt.Errorf("list %s: %w", uc.inputDir, err)
	}

	loaded, err := uc.rides.LoadedFiles(ctx)
	if err != nil {
		return nil, 0, err
	}
	done := make(map[string]struct{}, len(loaded))
	for _, f := range loaded {
		done[f.FileName] = struct{}{}
	}

	pending := make([]string, 0, len(files))
	skipped := 0
	for _, f := range files {
		if _, ok := done[filepath.Base(f)]; ok {
			skipped++
			continue
		}
		pending = append(pending, f)
	}
	return pending, skipped, nil
}

// Run loads every pending file. The first failure stops the stage; files
// committed before it stay loaded and are skipped on the next run.
func (uc *LoadUseCase) Run(ctx context.Context) (*domain.LoadResult, error) {
	pending, skipped, err := uc.Pending(ctx)
	if err != nil {
		return nil, err
	}

	result := &domain.LoadResult{Skipped: skipped}
	if len(pending) == 0 {
		uc.logger.Info("Nothing to load", zap.Int("already_loaded", skipped))
		return result, nil
	}

	uc.logger.Info("Loading normalized files",
		zap.Int("files", len(pending)),
		zap.Int("already_loaded", skipped))

	for _, path := range pending {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		rows, err := uc.rides.CopyFile(ctx, path)
		if err != nil {
			return result, fmt.Errorf("load %s: %w", filepath.Base(path), err)
		}
		result.Files++
		result.Rows += rows
	}

	uc.logger.Info("Load complete",
		zap.Int("files", result.Files),
		zap.Int64("rows", result.Rows))

	return result, nil
}
