package domain

import "math"

// Immutable geographic coordinates (latitude, longitude) in WGS84 degrees.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Valid reports whether c is a usable routing coordinate.
// The (0, 0) point is rejected because upstream catalogs use it as "unknown".
func (c Coordinates) Valid() bool {
	if math.IsNaN(c.Lat) || math.IsNaN(c.Lon) || math.IsInf(c.Lat, 0) || math.IsInf(c.Lon, 0) {
		return false
	}
	if c.Lat < -90 || c.Lat > 90 || c.Lon < -180 || c.Lon > 180 {
		return false
	}
	return !(c.Lat == 0 && c.Lon == 0)
}
