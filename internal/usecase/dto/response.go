package dto

import (
	"time"

	"github.com/bikeshare-loader/internal/domain"
)

// StationResponse - station with plain float coordinates
type StationResponse struct {
	StationID   string   `json:"station_id"`
	StationName string   `json:"station_name"`
	Lat         *float64 `json:"lat"`
	Lon         *float64 `json:"lon"`
	DistanceKm  *float64 `json:"distance_km,omitempty"`
}

// StationListResponse - one page of the catalog
type StationListResponse struct {
	Stations []StationResponse `json:"stations"`
	Total    int               `json:"total"`
	Offset   int               `json:"offset"`
	Limit    int               `json:"limit"`
}

// NearestStationsResponse - stations ordered by distance
type NearestStationsResponse struct {
	Stations []StationResponse `json:"stations"`
	RadiusKm float64           `json:"radius_km"`
}

// HealthResponse - dependency health
type HealthResponse struct {
	Status   string            `json:"status"`
	Services map[string]string `json:"services"`
	Time     time.Time         `json:"time"`
}

// NewStationResponse converts a catalog entry
func NewStationResponse(s *domain.Station) StationResponse {
	resp := StationResponse{
		StationID:   s.StationID,
		StationName: s.StationName,
	}
	if s.Latitude.Valid {
		lat := s.Latitude.Decimal.InexactFloat64()
		resp.Lat = &lat
	}
	if s.Longitude.Valid {
		lon := s.Longitude.Decimal.InexactFloat64()
		resp.Lon = &lon
	}
	return resp
}
