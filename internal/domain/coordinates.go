package domain

import "strconv"

// Immutable geographic coordinates (latitude, longitude).
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// LonLat renders the "lon,lat" pair used in road-service request paths.
func (c Coordinates) LonLat() string {
	return strconv.FormatFloat(c.Lon, 'f', -1, 64) + "," + strconv.FormatFloat(c.Lat, 'f', -1, 64)
}

// Location is a point in the matrix index space.
type Location struct {
	Index int         `json:"index"`
	Coord Coordinates `json:"coord"`
}
