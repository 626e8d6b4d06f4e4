package common

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// KmPerDegree approximates kilometers per degree of latitude.
const KmPerDegree = 111.0

// DistanceDegrees is the planar degree-distance between two points.
// Deliberately cheap; not great-circle. Fine at inter-city scale.
func DistanceDegrees(a, b orb.Point) float64 {
	return planar.Distance(a, b)
}

// SpeedKmH derives km/h from a degree-distance covered in some seconds.
func SpeedKmH(distanceDegrees float64, seconds float64) float64 {
	if seconds <= 0 {
		return math.Inf(1)
	}
	return distanceDegrees * KmPerDegree / (seconds / 3600)
}

// CoordsNear reports near-equality of two coordinates within tolerance,
// component-wise. Time is no part of it.
func CoordsNear(a, b orb.Point, tolerance float64) bool {
	return math.Abs(a.Lat()-b.Lat()) < tolerance &&
		math.Abs(a.Lon()-b.Lon()) < tolerance
}
