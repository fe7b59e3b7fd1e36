package domain

import "time"

// Canonical ride columns
const (
	ColRideID              = "ride_id"
	ColRideableType        = "rideable_type"
	ColStartedAt           = "started_at"
	ColEndedAt             = "ended_at"
	ColStartStationName    = "start_station_name"
	ColStartStationID      = "start_station_id"
	ColEndStationName      = "end_station_name"
	ColEndStationID        = "end_station_id"
	ColStartLat            = "start_lat"
	ColStartLng            = "start_lng"
	ColEndLat              = "end_lat"
	ColEndLng              = "end_lng"
	ColMemberCasual        = "member_casual"
	ColTripDurationSeconds = "trip_duration_seconds"
	ColBikeID              = "bike_id"
	ColGender              = "gender"
	ColBirthYear           = "birth_year"
	ColDataSourceCity      = "data_source_city"
)

// RideColumns - canonical column order, shared by the normalized files and the COPY statement
var RideColumns = []string{
	ColRideID,
	ColRideableType,
	ColStartedAt,
	ColEndedAt,
	ColStartStationName,
	ColStartStationID,
	ColEndStationName,
	ColEndStationID,
	ColStartLat,
	ColStartLng,
	ColEndLat,
	ColEndLng,
	ColMemberCasual,
	ColTripDurationSeconds,
	ColBikeID,
	ColGender,
	ColBirthYear,
	ColDataSourceCity,
}

const (
	// NullToken is written for null cells in normalized files
	NullToken = "NULL"

	// StationIDSentinel is the "not a number" placeholder some sources carry in station id columns
	StationIDSentinel = "nan"

	CityNYC        = "NYC"
	CityJerseyCity = "Jersey City"
)

// Ride - canonical trip record
type Ride struct {
	RideID              string     `json:"ride_id" db:"ride_id"`
	RideableType        *string    `json:"rideable_type,omitempty" db:"rideable_type"`
	StartedAt           time.Time  `json:"started_at" db:"started_at"`
	EndedAt             *time.Time `json:"ended_at,omitempty" db:"ended_at"`
	StartStationName    *string    `json:"start_station_name,omitempty" db:"start_station_name"`
	StartStationID      *string    `json:"start_station_id,omitempty" db:"start_station_id"`
	EndStationName      *string    `json:"end_station_name,omitempty" db:"end_station_name"`
	EndStationID        *string    `json:"end_station_id,omitempty" db:"end_station_id"`
	StartLat            *float64   `json:"start_lat,omitempty" db:"start_lat"`
	StartLng            *float64   `json:"start_lng,omitempty" db:"start_lng"`
	EndLat              *float64   `json:"end_lat,omitempty" db:"end_lat"`
	EndLng              *float64   `json:"end_lng,omitempty" db:"end_lng"`
	MemberCasual        *string    `json:"member_casual,omitempty" db:"member_casual"`
	TripDurationSeconds *int64     `json:"trip_duration_seconds,omitempty" db:"trip_duration_seconds"`
	BikeID              *string    `json:"bike_id,omitempty" db:"bike_id"`
	Gender              *int64     `json:"gender,omitempty" db:"gender"`
	BirthYear           *int64     `json:"birth_year,omitempty" db:"birth_year"`
	DataSourceCity      string     `json:"data_source_city" db:"data_source_city"`
}
