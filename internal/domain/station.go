package domain

import "github.com/shopspring/decimal"

// Station - catalog entry derived from ride endpoints
type Station struct {
	StationID   string              `json:"station_id" db:"station_id"`
	StationName string              `json:"station_name" db:"station_name"`
	Latitude    decimal.NullDecimal `json:"latitude" db:"latitude"`
	Longitude   decimal.NullDecimal `json:"longitude" db:"longitude"`
}

// HasCoordinates reports whether both coordinates are known
func (s *Station) HasCoordinates() bool {
	return s.Latitude.Valid && s.Longitude.Valid
}

// NearbyStation - station with its distance from a query point
type NearbyStation struct {
	Station
	DistanceKm float64 `json:"distance_km"`
}
