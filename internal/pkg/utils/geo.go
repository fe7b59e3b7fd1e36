package utils

import (
	"math"

	"github.com/bikeshare-loader/internal/domain"
)

const earthRadiusKm = 6371.0

// kmPerDegreeLat is the length of one degree of latitude
const kmPerDegreeLat = 111.32

// HaversineDistance returns the great-circle distance between two points in km
func HaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180.0
	dLon := (lon2 - lon1) * math.Pi / 180.0

	lat1Rad := lat1 * math.Pi / 180.0
	lat2Rad := lat2 * math.Pi / 180.0

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1Rad)*math.Cos(lat2Rad)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

// BoundingBoxAround returns a box enclosing the circle of radiusKm around (lat, lon).
// It over-covers near the corners; callers filter by HaversineDistance.
func BoundingBoxAround(lat, lon, radiusKm float64) domain.BoundingBox {
	dLat := radiusKm / kmPerDegreeLat
	cos := math.Cos(lat * math.Pi / 180.0)
	dLon := 180.0
	if cos > 1e-9 {
		dLon = math.Min(radiusKm/(kmPerDegreeLat*cos), 180.0)
	}
	return domain.BoundingBox{
		MinLat: math.Max(lat-dLat, -90),
		MinLon: math.Max(lon-dLon, -180),
		MaxLat: math.Min(lat+dLat, 90),
		MaxLon: math.Min(lon+dLon, 180),
	}
}

// ValidateCoordinates reports whether lat/lon are within WGS84 ranges
func ValidateCoordinates(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

// ValidateRadius accepts 0.1 to 50 km
func ValidateRadius(radiusKm float64) bool {
	return radiusKm >= 0.1 && radiusKm <= 50
}
