package dto

// ListStationsRequest - page through the station catalog
type ListStationsRequest struct {
	Offset int `query:"offset" json:"offset" validate:"min=0"`
	Limit  int `query:"limit" json:"limit" validate:"omitempty,min=1,max=1000"`
}

// NearestStationsRequest - stations within a radius of a point
type NearestStationsRequest struct {
	Lat      float64 `query:"lat" json:"lat" validate:"min=-90,max=90"`
	Lon      float64 `query:"lon" json:"lon" validate:"min=-180,max=180"`
	RadiusKm float64 `query:"radius_km" json:"radius_km" validate:"omitempty,min=0.1,max=50"`
	Limit    int     `query:"limit" json:"limit" validate:"omitempty,min=1,max=100"`
}
