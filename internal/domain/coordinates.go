package domain

import "math"

const earthRadiusKm = 6371.0

// Immutable geographic coordinates (longitude, latitude).
type Coordinates struct {
	Lon float64
	Lat float64
}

// DistanceKm returns the great-circle distance to o using the haversine formula.
func (c Coordinates) DistanceKm(o Coordinates) float64 {
	dLat := (o.Lat - c.Lat) * math.Pi / 180
	dLon := (o.Lon - c.Lon) * math.Pi / 180
	lat1 := c.Lat * math.Pi / 180
	lat2 := o.Lat * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}
