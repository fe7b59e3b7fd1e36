package normalizer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/bikeshare-loader/internal/domain"
	apperrors "github.com/bikeshare-loader/internal/pkg/errors"
	"go.uber.org/zap"
)

// OutputPrefix is prepended to the raw file name to name the normalized file
const OutputPrefix = "preprocessed_"

const ctxCheckEvery = 4096

// OutputPath returns where the normalized copy of src is written
func OutputPath(src, dstDir string) string {
	return filepath.Join(dstDir, OutputPrefix+filepath.Base(src))
}

// NormalizeFile streams one raw file into its normalized copy under dstDir.
// The copy appears atomically: rows go to a temp file that is renamed only
// after the last row is written. With overwrite=false an existing copy is
// kept and reported as skipped.
func (n *Normalizer) NormalizeFile(ctx context.Context, src, dstDir string, overwrite bool) (*domain.FileResult, error) {
	started := time.Now()
	variant := domain.DetectVariant(src)
	dst := OutputPath(src, dstDir)

	result := &domain.FileResult{
		Source:  src,
		Output:  dst,
		Variant: variant.String(),
		City:    n.city,
	}

	if !overwrite {
		if _, err := os.Stat(dst); err == nil {
			result.Skipped = true
			n.logger.Info("Normalized file already present, skipping",
				zap.String("source", src),
				zap.String("output", dst))
			return result, nil
		}
	}

	in, err := os.Open(src)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", src, err)
	}
	defer in.Close()

	if err := os.MkdirAll(dstDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	tmp, err := os.CreateTemp(dstDir, "."+OutputPrefix+"*.tmp")
	if err != nil {
		return nil, fmt.Errorf("create temp output: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	rows, err := n.normalizeStream(ctx, in, tmp, variant)
	if err != nil {
		return nil, fmt.Errorf("normalize %s: %w", src, err)
	}

	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("close temp output: %w", err)
	}
	if err := os.Rename(tmp.Name(), dst); err != nil {
		return nil, fmt.Errorf("publish %s: %w", dst, err)
	}
	committed = true

	result.Rows = rows
	result.Duration = time.Since(started)

	n.logger.Info("File normalized",
		zap.String("source", src),
		zap.String("variant", result.Variant),
		zap.String("city", n.city),
		zap.Int64("rows", rows),
		zap.Duration("duration", result.Duration))

	return result, nil
}

// normalizeStream copies rows from r to w, skipping the source header
func (n *Normalizer) normalizeStream(ctx context.Context, r io.Reader, w io.Writer, variant domain.Variant) (int64, error) {
	mapping := domain.MappingFor(variant)
	reader := newCSVReader(r)
	writer := NewWriter(w)

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return 0, apperrors.Wrap(apperrors.ErrFormat, fmt.Errorf("missing header"), nil)
	}
	if err != nil {
		return 0, apperrors.Wrap(apperrors.ErrFormat, err, map[string]interface{}{"line": 1})
	}
	if len(header) != mapping.Width() {
		return 0, apperrors.Wrap(apperrors.ErrFormat,
			fmt.Errorf("header has %d columns, %s layout v%d expects %d", len(header), variant, mapping.Version, mapping.Width()),
			map[string]interface{}{"line": 1, "variant": variant.String()})
	}

	if err := writer.WriteHeader(domain.RideColumns); err != nil {
		return 0, err
	}

	var rows int64
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return rows, apperrors.Wrap(apperrors.ErrFormat, err, nil)
		}
		line, _ := reader.FieldPos(0)

		ride, err := n.Normalize(variant, record)
		if err != nil {
			return rows, withLine(err, line)
		}
		if err := writer.Write(rideCells(ride)); err != nil {
			return rows, err
		}

		rows++
		if rows%ctxCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return rows, err
			}
		}
	}

	if err := writer.Flush(); err != nil {
		return rows, err
	}
	return rows, nil
}

func withLine(err error, line int) error {
	var appErr *apperrors.AppError
	if apperrors.As(err, &appErr) {
		details := make(map[string]interface{}, len(appErr.Details)+1)
		for k, v := range appErr.Details {
			details[k] = v
		}
		details["line"] = line
		return appErr.WithDetails(details)
	}
	return fmt.Errorf("line %d: %w", line, err)
}
