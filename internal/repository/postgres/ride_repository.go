package postgres

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/bikeshare-loader/internal/domain"
	"github.com/bikeshare-loader/internal/domain/repository"
	apperrors "github.com/bikeshare-loader/internal/pkg/errors"
)

// copyRidesSQL loads the normalized CSV format: header row, unquoted NULL for null cells
var copyRidesSQL = fmt.Sprintf(
	"COPY rides (%s) FROM STDIN WITH (FORMAT csv, HEADER true, NULL '%s')",
	strings.Join(domain.RideColumns, ", "),
	domain.NullToken,
)

// dedupRidesSQL keeps the earliest ride per ride_id; on equal started_at the
// row loaded first (lowest surrogate id) wins
const dedupRidesSQL = `
	WITH ranked_rides AS (
		SELECT
			id,
			ROW_NUMBER() OVER (PARTITION BY ride_id ORDER BY started_at, id) AS rn
		FROM rides
	)
	DELETE FROM rides
	WHERE id IN (SELECT id FROM ranked_rides WHERE rn > 1)`

type rideRepository struct {
	db *DB
}

func NewRideRepository(db *DB) repository.RideRepository {
	return &rideRepository{db: db}
}

// CopyFile streams the file through COPY on a dedicated connection. The copy
// and the pipeline_loaded_files row commit together, so a file is either
// fully loaded and recorded or not loaded at all.
func (r *rideRepository) CopyFile(ctx context.Context, path string) (int64, error) {
	name := filepath.Base(path)
	details := map[string]interface{}{"file": name}

	f, err := os.Open(path)
	if err != nil {
		return 0, apperrors.Wrap(apperrors.ErrLoad, err, details)
	}
	defer f.Close()

	conn, err := r.db.Conn(ctx)
	if err != nil {
		return 0, apperrors.Wrap(apperrors.ErrLoad, fmt.Errorf("acquire connection: %w", err), details)
	}
	defer conn.Close()

	start := time.Now()
	var rows int64

	err = conn.Raw(func(driverConn any) error {
		sc, ok := driverConn.(*stdlib.Conn)
		if !ok {
			return fmt.Errorf("bulk load requires the %s driver, got %T", DriverName, driverConn)
		}
		pgxConn := sc.Conn()

		tx, err := pgxConn.Begin(ctx)
		if err != nil {
			return fmt.Errorf("begin tx: %w", err)
		}
		defer func() { _ = tx.Rollback(ctx) }()

		tag, err := tx.Conn().PgConn().CopyFrom(ctx, f, copyRidesSQL)
		if err != nil {
			return fmt.Errorf("copy: %w", err)
		}
		rows = tag.RowsAffected()

		if _, err := tx.Exec(ctx,
			`INSERT INTO pipeline_loaded_files (file_name, row_count) VALUES ($1, $2)`,
			name, rows); err != nil {
			return fmt.Errorf("record loaded file: %w", err)
		}

		return tx.Commit(ctx)
	})
	if err != nil {
		r.db.logger.Error("Bulk load failed",
			zap.String("file", name),
			zap.Error(err))
		return 0, apperrors.Wrap(apperrors.ErrLoad, err, pgDetails(err, details))
	}

	r.db.logger.Info("File loaded",
		zap.String("file", name),
		zap.Int64("rows", rows),
		zap.Duration("duration", time.Since(start)))

	return rows, nil
}

func (r *rideRepository) LoadedFiles(ctx context.Context) ([]domain.LoadedFile, error) {
	var files []domain.LoadedFile
	err := r.db.SelectContext(ctx, &files, `
		SELECT file_name, row_count, loaded_at
		FROM pipeline_loaded_files
		ORDER BY loaded_at, file_name`)
	if err != nil {
		return nil, fmt.Errorf("list loaded files: %w", err)
	}
	return files, nil
}

// Deduplicate removes duplicate ride_ids, swaps the surrogate primary key for
// ride_id and drops the surrogate column, all in one transaction. Once the
// surrogate column is gone the primary key already guarantees uniqueness and
// only the checkpoint is rewritten.
func (r *rideRepository) Deduplicate(ctx context.Context) (*domain.DedupResult, error) {
	result := &domain.DedupResult{}

	err := r.db.inTx(ctx, func(tx *sqlx.Tx) error {
		hasSurrogate, err := columnExists(ctx, tx, "rides", "id")
		if err != nil {
			return err
		}

		if hasSurrogate {
			res, err := tx.ExecContext(ctx, dedupRidesSQL)
			if err != nil {
				return fmt.Errorf("delete duplicates: %w", err)
			}
			result.Removed, _ = res.RowsAffected()

			steps := []struct {
				name  string
				query string
			}{
				{"drop surrogate key", `ALTER TABLE rides DROP CONSTRAINT IF EXISTS rides_pkey`},
				{"add ride_id key", `ALTER TABLE rides ADD CONSTRAINT rides_pkey PRIMARY KEY (ride_id)`},
				{"drop surrogate column", `ALTER TABLE rides DROP COLUMN id`},
			}
			for _, step := range steps {
				if _, err := tx.ExecContext(ctx, step.query); err != nil {
					return fmt.Errorf("%s: %w", step.name, err)
				}
			}
		}

		return markStage(ctx, tx, domain.StageDeduplicate, result)
	})
	if err != nil {
		return nil, err
	}

	r.db.logger.Info("Rides deduplicated", zap.Int64("removed", result.Removed))
	return result, nil
}
