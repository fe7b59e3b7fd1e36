package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/bikeshare-loader/internal/domain"
	"github.com/bikeshare-loader/internal/domain/repository"
)

type statsRepository struct {
	db     *DB
	logger *zap.Logger
}

func NewStatsRepository(db *DB, logger *zap.Logger) repository.StatsRepository {
	return &statsRepository{
		db:     db,
		logger: logger,
	}
}

// GetStatistics aggregates over rides and stations
func (r *statsRepository) GetStatistics(ctx context.Context) (*domain.Statistics, error) {
	stats := &domain.Statistics{
		LastUpdated: time.Now().UTC(),
	}

	rideStats, err := r.getRideStats(ctx)
	if err != nil {
		r.logger.Error("failed to get ride stats", zap.Error(err))
		return nil, fmt.Errorf("get ride stats: %w", err)
	}
	stats.Rides = *rideStats

	stationStats, err := r.getStationStats(ctx)
	if err != nil {
		r.logger.Error("failed to get station stats", zap.Error(err))
		return nil, fmt.Errorf("get station stats: %w", err)
	}
	stats.Stations = *stationStats

	return stats, nil
}

func (r *statsRepository) getRideStats(ctx context.Context) (*domain.RideStats, error) {
	stats := &domain.RideStats{
		ByCity:       make(map[string]int64),
		ByMemberType: make(map[string]int64),
	}

	var totals struct {
		Total     int64        `db:"total"`
		First     sql.NullTime `db:"first_started_at"`
		Last      sql.NullTime `db:"last_started_at"`
		NullStart int64        `db:"null_start"`
		NullEnd   int64        `db:"null_end"`
	}
	err := r.db.GetContext(ctx, &totals, `
		SELECT
			COUNT(*) AS total,
			MIN(started_at) AS first_started_at,
			MAX(started_at) AS last_started_at,
			COUNT(*) FILTER (WHERE start_station_id IS NULL) AS null_start,
			COUNT(*) FILTER (WHERE end_station_id IS NULL) AS null_end
		FROM rides`)
	if err != nil {
		return nil, fmt.Errorf("query ride totals: %w", err)
	}

	stats.TotalRides = totals.Total
	stats.NullStartRefs = totals.NullStart
	stats.NullEndRefs = totals.NullEnd
	if totals.First.Valid {
		stats.FirstStartedAt = &totals.First.Time
	}
	if totals.Last.Valid {
		stats.LastStartedAt = &totals.Last.Time
	}

	if err := r.countBy(ctx, "data_source_city", stats.ByCity); err != nil {
		return nil, err
	}
	if err := r.countBy(ctx, "member_casual", stats.ByMemberType); err != nil {
		return nil, err
	}

	return stats, nil
}

// countBy groups rides by column; NULL groups are reported as "unknown"
func (r *statsRepository) countBy(ctx context.Context, column string, dst map[string]int64) error {
	query := fmt.Sprintf(`
		SELECT COALESCE(%[1]s, 'unknown') AS key, COUNT(*) AS count
		FROM rides
		GROUP BY 1
		ORDER BY 1`, column)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return fmt.Errorf("query rides by %s: %w", column, err)
	}
	defer rows.Close()

	for rows.Next() {
		var key string
		var count int64
		if err := rows.Scan(&key, &count); err != nil {
			return fmt.Errorf("scan rides by %s: %w", column, err)
		}
		dst[key] = count
	}

	return rows.Err()
}

func (r *statsRepository) getStationStats(ctx context.Context) (*domain.StationStats, error) {
	var row struct {
		Total  int64           `db:"total"`
		Coords int64           `db:"with_coordinates"`
		MinLat sql.NullFloat64 `db:"min_lat"`
		MinLon sql.NullFloat64 `db:"min_lon"`
		MaxLat sql.NullFloat64 `db:"max_lat"`
		MaxLon sql.NullFloat64 `db:"max_lon"`
	}
	err := r.db.GetContext(ctx, &row, `
		SELECT
			COUNT(*) AS total,
			COUNT(*) FILTER (WHERE latitude IS NOT NULL AND longitude IS NOT NULL) AS with_coordinates,
			MIN(latitude)::float8 AS min_lat,
			MIN(longitude)::float8 AS min_lon,
			MAX(latitude)::float8 AS max_lat,
			MAX(longitude)::float8 AS max_lon
		FROM stations`)
	if err != nil {
		return nil, fmt.Errorf("query station stats: %w", err)
	}

	return &domain.StationStats{
		TotalStations:   row.Total,
		WithCoordinates: row.Coords,
		Coverage: domain.BoundingBox{
			MinLat: row.MinLat.Float64,
			MinLon: row.MinLon.Float64,
			MaxLat: row.MaxLat.Float64,
			MaxLon: row.MaxLon.Float64,
		},
	}, nil
}
