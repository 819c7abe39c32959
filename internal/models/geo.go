package models

// GeoCoordinate точка в градусах WGS 84
type GeoCoordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}
