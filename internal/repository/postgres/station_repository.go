package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/bikeshare-loader/internal/domain"
	"github.com/bikeshare-loader/internal/domain/repository"
	apperrors "github.com/bikeshare-loader/internal/pkg/errors"
)

// deriveStationsSQL collects every (id, name, lat, lng) tuple seen at either
// end of a ride and inserts them in order of first sighting. ON CONFLICT keeps
// the first tuple inserted for an id; later sightings are discarded.
const deriveStationsSQL = `
	INSERT INTO stations (station_id, station_name, latitude, longitude)
	SELECT station_id, station_name, lat, lng
	FROM (
		SELECT start_station_id AS station_id, start_station_name AS station_name,
			start_lat AS lat, start_lng AS lng, started_at
		FROM rides
		WHERE start_station_id IS NOT NULL
			AND start_station_name IS NOT NULL
			AND start_station_id <> $1
		UNION ALL
		SELECT end_station_id, end_station_name, end_lat, end_lng, started_at
		FROM rides
		WHERE end_station_id IS NOT NULL
			AND end_station_name IS NOT NULL
			AND end_station_id <> $1
	) endpoints
	GROUP BY station_id, station_name, lat, lng
	ORDER BY MIN(started_at), station_id, station_name
	ON CONFLICT (station_id) DO NOTHING`

type stationRepository struct {
	db *DB
}

func NewStationRepository(db *DB) repository.StationRepository {
	return &stationRepository{db: db}
}

func (r *stationRepository) DeriveStations(ctx context.Context) (*domain.DeriveResult, error) {
	result := &domain.DeriveResult{}

	err := r.db.inTx(ctx, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, deriveStationsSQL, domain.StationIDSentinel)
		if err != nil {
			return fmt.Errorf("derive stations: %w", err)
		}
		result.Inserted, _ = res.RowsAffected()

		return markStage(ctx, tx, domain.StageDeriveStations, result)
	})
	if err != nil {
		return nil, err
	}

	r.db.logger.Info("Stations derived", zap.Int64("inserted", result.Inserted))
	return result, nil
}

func (r *stationRepository) GetByID(ctx context.Context, id string) (*domain.Station, error) {
	var station domain.Station
	err := r.db.GetContext(ctx, &station, `
		SELECT station_id, station_name, latitude, longitude
		FROM stations
		WHERE station_id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.Wrap(apperrors.ErrStationNotFound, err, map[string]interface{}{"station_id": id})
	}
	if err != nil {
		return nil, fmt.Errorf("get station %s: %w", id, err)
	}
	return &station, nil
}

func (r *stationRepository) List(ctx context.Context, offset, limit int) ([]*domain.Station, int, error) {
	limit = clampLimit(limit)
	if offset < 0 {
		offset = 0
	}

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM stations`); err != nil {
		return nil, 0, fmt.Errorf("count stations: %w", err)
	}

	stations := make([]*domain.Station, 0, limit)
	err := r.db.SelectContext(ctx, &stations, `
		SELECT station_id, station_name, latitude, longitude
		FROM stations
		ORDER BY station_id
		LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list stations: %w", err)
	}
	return stations, total, nil
}

// GetInBoundingBox returns the stations inside box, closest to the box center first
func (r *stationRepository) GetInBoundingBox(ctx context.Context, box domain.BoundingBox, limit int) ([]*domain.Station, error) {
	limit = clampLimit(limit)
	centerLat := (box.MinLat + box.MaxLat) / 2
	centerLon := (box.MinLon + box.MaxLon) / 2
	lonScale := math.Cos(centerLat * math.Pi / 180)

	stations := make([]*domain.Station, 0)
	err := r.db.SelectContext(ctx, &stations, `
		SELECT station_id, station_name, latitude, longitude
		FROM stations
		WHERE latitude BETWEEN $1 AND $2
			AND longitude BETWEEN $3 AND $4
		ORDER BY power(latitude - $5, 2) + power((longitude - $6) * $7, 2), station_id
		LIMIT $8`,
		box.MinLat, box.MaxLat, box.MinLon, box.MaxLon, centerLat, centerLon, lonScale, limit)
	if err != nil {
		return nil, fmt.Errorf("stations in bbox: %w", err)
	}
	return stations, nil
}
