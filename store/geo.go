package store

import (
	"math"

	"github.com/treenow/treenowbackend/models"
)

const earthRadiusMeters = 6378100.0

// DistanceMeters is the haversine distance between two points, using the
// same earth radius MongoDB uses for 2dsphere queries.
func DistanceMeters(a, b models.Coordinates) float64 {
	lat1 := a.Latitude * math.Pi / 180
	lat2 := b.Latitude * math.Pi / 180
	dLat := lat2 - lat1
	dLng := (b.Longitude - a.Longitude) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusMeters * math.Asin(math.Min(1, math.Sqrt(h)))
}
