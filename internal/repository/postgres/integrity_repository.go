package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/bikeshare-loader/internal/domain"
	"github.com/bikeshare-loader/internal/domain/repository"
)

// rideIndexes are the secondary indexes built once the ride store is final
var rideIndexes = []struct {
	name   string
	column string
}{
	{"idx_rides_started_at", "started_at"},
	{"idx_rides_ended_at", "ended_at"},
	{"idx_rides_start_station_id", "start_station_id"},
	{"idx_rides_end_station_id", "end_station_id"},
	{"idx_rides_member_casual", "member_casual"},
}

// stationForeignKeys link both ride endpoints to the catalog. Deleting a
// station nulls the reference instead of deleting rides.
var stationForeignKeys = []struct {
	name   string
	column string
}{
	{"fk_start_station", "start_station_id"},
	{"fk_end_station", "end_station_id"},
}

type integrityRepository struct {
	db *DB
}

func NewIntegrityRepository(db *DB) repository.IntegrityRepository {
	return &integrityRepository{db: db}
}

// Enforce rewrites the sentinel station id to NULL on both endpoints and then
// installs the foreign keys. Any remaining dangling reference aborts the
// transaction with ErrConstraint.
func (r *integrityRepository) Enforce(ctx context.Context) (*domain.IntegrityResult, error) {
	result := &domain.IntegrityResult{}

	err := r.db.inTx(ctx, func(tx *sqlx.Tx) error {
		for _, fk := range stationForeignKeys {
			res, err := tx.ExecContext(ctx,
				fmt.Sprintf(`UPDATE rides SET %[1]s = NULL WHERE %[1]s = $1`, fk.column),
				domain.StationIDSentinel)
			if err != nil {
				return fmt.Errorf("null sentinel %s: %w", fk.column, err)
			}
			n, _ := res.RowsAffected()
			if fk.column == domain.ColStartStationID {
				result.StartNulled = n
			} else {
				result.EndNulled = n
			}
		}

		for _, fk := range stationForeignKeys {
			if _, err := tx.ExecContext(ctx,
				fmt.Sprintf(`ALTER TABLE rides DROP CONSTRAINT IF EXISTS %s`, fk.name)); err != nil {
				return fmt.Errorf("drop %s: %w", fk.name, err)
			}
			_, err := tx.ExecContext(ctx, fmt.Sprintf(`
				ALTER TABLE rides
				ADD CONSTRAINT %s
				FOREIGN KEY (%s)
				REFERENCES stations (station_id)
				ON DELETE SET NULL`, fk.name, fk.column))
			if err != nil {
				return constraintError("add "+fk.name, err)
			}
		}

		return markStage(ctx, tx, domain.StageEnforceIntegrity, result)
	})
	if err != nil {
		return nil, err
	}

	r.db.logger.Info("Referential integrity enforced",
		zap.Int64("start_nulled", result.StartNulled),
		zap.Int64("end_nulled", result.EndNulled))
	return result, nil
}

func (r *integrityRepository) CreateIndexes(ctx context.Context) error {
	err := r.db.inTx(ctx, func(tx *sqlx.Tx) error {
		for _, idx := range rideIndexes {
			_, err := tx.ExecContext(ctx, fmt.Sprintf(
				`CREATE INDEX IF NOT EXISTS %s ON rides USING BTREE (%s)`, idx.name, idx.column))
			if err != nil {
				return fmt.Errorf("create %s: %w", idx.name, err)
			}
		}

		names := make([]string, len(rideIndexes))
		for i, idx := range rideIndexes {
			names[i] = idx.name
		}
		return markStage(ctx, tx, domain.StageCreateIndexes, map[string]interface{}{"indexes": names})
	})
	if err != nil {
		return err
	}

	r.db.logger.Info("Ride indexes created", zap.Int("count", len(rideIndexes)))
	return nil
}
