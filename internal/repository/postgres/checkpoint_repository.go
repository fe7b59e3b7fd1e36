package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/bikeshare-loader/internal/domain"
	"github.com/bikeshare-loader/internal/domain/repository"
)

type checkpointRepository struct {
	db *DB
}

func NewCheckpointRepository(db *DB) repository.CheckpointRepository {
	return &checkpointRepository{db: db}
}

type checkpointRow struct {
	Stage       string    `db:"stage"`
	CompletedAt time.Time `db:"completed_at"`
	Details     []byte    `db:"details"`
}

func (r *checkpointRepository) List(ctx context.Context) ([]domain.Checkpoint, error) {
	var rows []checkpointRow
	err := r.db.SelectContext(ctx, &rows, `
		SELECT stage, completed_at, details
		FROM pipeline_checkpoints
		ORDER BY completed_at, stage`)
	if err != nil {
		if pgErr, ok := pgError(err); ok && pgErr.Code == pgUndefinedTable {
			return nil, fmt.Errorf("schema not initialized, run schema up: %w", err)
		}
		return nil, fmt.Errorf("list checkpoints: %w", err)
	}

	checkpoints := make([]domain.Checkpoint, len(rows))
	for i, row := range rows {
		checkpoints[i] = domain.Checkpoint{
			Stage:       domain.Stage(row.Stage),
			CompletedAt: row.CompletedAt,
			Details:     json.RawMessage(row.Details),
		}
	}
	return checkpoints, nil
}

func (r *checkpointRepository) IsDone(ctx context.Context, stage domain.Stage) (bool, error) {
	var done bool
	err := r.db.GetContext(ctx, &done,
		`SELECT EXISTS (SELECT 1 FROM pipeline_checkpoints WHERE stage = $1)`, string(stage))
	if err != nil {
		return false, fmt.Errorf("check checkpoint %s: %w", stage, err)
	}
	return done, nil
}

func (r *checkpointRepository) Mark(ctx context.Context, stage domain.Stage, details interface{}) error {
	return markStage(ctx, r.db, stage, details)
}

func (r *checkpointRepository) Reset(ctx context.Context, stages ...domain.Stage) error {
	if len(stages) == 0 {
		if _, err := r.db.ExecContext(ctx, `DELETE FROM pipeline_checkpoints`); err != nil {
			return fmt.Errorf("reset checkpoints: %w", err)
		}
		r.db.logger.Info("All checkpoints reset")
		return nil
	}

	names := make([]string, len(stages))
	for i, s := range stages {
		names[i] = string(s)
	}
	query, args, err := sqlx.In(`DELETE FROM pipeline_checkpoints WHERE stage IN (?)`, names)
	if err != nil {
		return fmt.Errorf("build reset query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, r.db.Rebind(query), args...); err != nil {
		return fmt.Errorf("reset checkpoints: %w", err)
	}
	r.db.logger.Info("Checkpoints reset", zap.Strings("stages", names))
	return nil
}

// markStage upserts a checkpoint. Database stages call it with their own
// transaction so the checkpoint commits together with the stage.
func markStage(ctx context.Context, exec sqlx.ExecerContext, stage domain.Stage, details interface{}) error {
	payload := []byte("{}")
	if details != nil {
		b, err := json.Marshal(details)
		if err != nil {
			return fmt.Errorf("marshal checkpoint details: %w", err)
		}
		payload = b
	}

	_, err := exec.ExecContext(ctx, `
		INSERT INTO pipeline_checkpoints (stage, completed_at, details)
		VALUES ($1, NOW(), $2::jsonb)
		ON CONFLICT (stage) DO UPDATE
		SET completed_at = EXCLUDED.completed_at,
			details = EXCLUDED.details`,
		string(stage), string(payload))
	if err != nil {
		return fmt.Errorf("mark checkpoint %s: %w", stage, err)
	}
	return nil
}
