package domain

import "time"

type Point struct {
	Lat float64 `json:"lat" db:"lat"`
	Lon float64 `json:"lon" db:"lon"`
}

type BoundingBox struct {
	MinLat float64 `json:"min_lat" db:"min_lat"`
	MinLon float64 `json:"min_lon" db:"min_lon"`
	MaxLat float64 `json:"max_lat" db:"max_lat"`
	MaxLon float64 `json:"max_lon" db:"max_lon"`
}

// Statistics - aggregate view over the loaded ride store
type Statistics struct {
	Rides       RideStats    `json:"rides"`
	Stations    StationStats `json:"stations"`
	LastUpdated time.Time    `json:"last_updated"`
}

// RideStats - ride counts and ranges
type RideStats struct {
	TotalRides     int64            `json:"total_rides"`
	ByCity         map[string]int64 `json:"by_city"`
	ByMemberType   map[string]int64 `json:"by_member_type"`
	FirstStartedAt *time.Time       `json:"first_started_at,omitempty"`
	LastStartedAt  *time.Time       `json:"last_started_at,omitempty"`
	NullStartRefs  int64            `json:"null_start_station_refs"`
	NullEndRefs    int64            `json:"null_end_station_refs"`
}

// StationStats - station catalog summary
type StationStats struct {
	TotalStations   int64       `json:"total_stations"`
	WithCoordinates int64       `json:"with_coordinates"`
	Coverage        BoundingBox `json:"coverage"`
}
