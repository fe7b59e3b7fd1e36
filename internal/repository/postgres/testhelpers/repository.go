package testhelpers

import (
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/bikeshare-loader/internal/domain/repository"
	"github.com/bikeshare-loader/internal/repository/postgres"
)

// NewDBForTest creates a postgres.DB with test database and logger
func NewDBForTest(db *sqlx.DB, logger *zap.Logger) *postgres.DB {
	return postgres.NewDBForTest(db, logger)
}

// Repositories bundles every store repository over one test database
type Repositories struct {
	Rides       repository.RideRepository
	Stations    repository.StationRepository
	Integrity   repository.IntegrityRepository
	Checkpoints repository.CheckpointRepository
	Stats       repository.StatsRepository
}

// NewRepositoriesForTest wires all repositories to the test database
func NewRepositoriesForTest(tdb *TestDB) *Repositories {
	pgDB := NewDBForTest(tdb.DB, tdb.Logger)
	return &Repositories{
		Rides:       postgres.NewRideRepository(pgDB),
		Stations:    postgres.NewStationRepository(pgDB),
		Integrity:   postgres.NewIntegrityRepository(pgDB),
		Checkpoints: postgres.NewCheckpointRepository(pgDB),
		Stats:       postgres.NewStatsRepository(pgDB, tdb.Logger),
	}
}
