package geo

import (
	"math"

	"github.com/golang/geo/s2"
)

// EarthRadiusMeters is the mean earth radius used for great-circle distances.
const EarthRadiusMeters = 6371000.0

// Haversine returns the great-circle distance in meters between two
// coordinates given in degrees. NaN inputs propagate to a NaN result,
// so comparisons against a missing coordinate are always false.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	p1 := s2.LatLngFromDegrees(lat1, lon1)
	p2 := s2.LatLngFromDegrees(lat2, lon2)
	return p1.Distance(p2).Radians() * EarthRadiusMeters
}

// HasCoord reports whether both coordinate components are present.
func HasCoord(lat, lon float64) bool {
	return !math.IsNaN(lat) && !math.IsNaN(lon)
}
