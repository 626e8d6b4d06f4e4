package travel

import (
	"math"

	"github.com/wandermap/traveld/params"
)

// TravelModeRange is an operator-authored override. Any transition whose
// time interval falls fully inside the range takes Mode regardless of the
// computed heuristic.
type TravelModeRange struct {
	StartTime float64 `json:"startTime"`
	EndTime   float64 `json:"endTime"`
	Mode      Mode    `json:"mode"`
}

// Contains reports whether [start, end] falls fully inside the range.
func (r TravelModeRange) Contains(start, end float64) bool {
	return r.StartTime <= start && end <= r.EndTime
}

// FilterConfig is the operator override bundle, persisted as JSON and
// edited through the debug tool.
//
// Excluded points are matched by near-equality of lat/lon
// (params.CoordTolerance), never by timestamp, so a superset of
// historically-excluded points keeps working across data regenerations.
// Inserted points are keyed by trip name and appended before sorting.
type FilterConfig struct {
	ExcludedPoints []Location            `json:"excludedPoints"`
	TravelModes    []TravelModeRange     `json:"travelModes"`
	InsertedPoints map[string][]Location `json:"insertedPoints"`
}

// Excludes reports whether the location matches any excluded point.
// A config referencing points that no longer exist is a no-op, not
// an error.
func (fc *FilterConfig) Excludes(l Location) bool {
	if fc == nil {
		return false
	}
	for _, ex := range fc.ExcludedPoints {
		if math.Abs(ex.Lat-l.Lat) < params.CoordTolerance &&
			math.Abs(ex.Lon-l.Lon) < params.CoordTolerance {
			return true
		}
	}
	return false
}

// ModeFor resolves a manual override for the transition [start, end].
// First matching range in list order wins; overlapping ranges are not
// an error.
func (fc *FilterConfig) ModeFor(start, end float64) (Mode, bool) {
	if fc == nil {
		return ModeUnknown, false
	}
	for _, r := range fc.TravelModes {
		if r.Contains(start, end) {
			return r.Mode, true
		}
	}
	return ModeUnknown, false
}

// Inserted returns the operator-inserted points for a trip.
func (fc *FilterConfig) Inserted(tripName string) []Location {
	if fc == nil {
		return nil
	}
	return fc.InsertedPoints[tripName]
}

// IsZero is useful for dealing with zero-value configs.
func (fc *FilterConfig) IsZero() bool {
	return fc == nil ||
		(len(fc.ExcludedPoints) == 0 && len(fc.TravelModes) == 0 && len(fc.InsertedPoints) == 0)
}
