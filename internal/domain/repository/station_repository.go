package repository

import (
	"context"

	"github.com/bikeshare-loader/internal/domain"
)

type StationRepository interface {
	// DeriveStations inserts every station referenced by a ride, first sighting wins
	DeriveStations(ctx context.Context) (*domain.DeriveResult, error)

	GetByID(ctx context.Context, id string) (*domain.Station, error)

	// List returns a page ordered by station_id and the total count
	List(ctx context.Context, offset, limit int) ([]*domain.Station, int, error)

	// GetInBoundingBox returns stations with coordinates inside box
	GetInBoundingBox(ctx context.Context, box domain.BoundingBox, limit int) ([]*domain.Station, error)
}
