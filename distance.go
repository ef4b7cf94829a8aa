package citycore

import (
	"math"

	"github.com/golang/geo/s2"
)

// earthRadiusMiles is the mean radius of the WGS-84 ellipsoid in miles,
// used to convert the unit-sphere angle s2 reports into miles. Great-circle
// distance on a sphere of this radius stays within ~0.5% of Vincenty's
// ellipsoidal inverse formula across the globe.
const earthRadiusMiles = 3958.7613

// DistanceFunc computes the distance, in miles, between two WGS-84
// coordinates. GeoGrid takes one as a dependency so tests can substitute a
// planar metric for deterministic geometry assertions.
type DistanceFunc func(lat1, lon1, lat2, lon2 float64) (float64, error)

// VincentyMiles is the default DistanceFunc: great-circle distance via
// golang/geo's s2.LatLng.Distance, which returns the central angle between
// two points on the unit sphere; multiplying by earthRadiusMiles gives
// miles.
func VincentyMiles(lat1, lon1, lat2, lon2 float64) (float64, error) {
	if !finite(lat1) || !finite(lon1) || !finite(lat2) || !finite(lon2) {
		return 0, wrapStructural("non-finite coordinate in distance(%v,%v,%v,%v)", lat1, lon1, lat2, lon2)
	}
	a := s2.LatLngFromDegrees(lat1, lon1)
	b := s2.LatLngFromDegrees(lat2, lon2)
	angle := a.Distance(b)
	miles := float64(angle) * earthRadiusMiles
	if math.IsNaN(miles) || math.IsInf(miles, 0) {
		return 0, wrapStructural("distance computation produced non-finite result for (%v,%v)-(%v,%v)", lat1, lon1, lat2, lon2)
	}
	return miles, nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
