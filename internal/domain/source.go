package domain

// Source - one raw input directory and the region label stamped on its rides
type Source struct {
	Dir  string `json:"dir" validate:"required"`
	City string `json:"city" validate:"required"`
}
