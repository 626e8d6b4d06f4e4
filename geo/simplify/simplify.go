// Package simplify thins route points for rendering efficiency.
// It never alters segment boundaries or modes.
package simplify

import (
	"github.com/wandermap/traveld/common"
	"github.com/wandermap/traveld/types/travel"
)

// Route thins every segment with a minimum-distance threshold, in degrees.
// Pure: input segments are never mutated.
func Route(segments []travel.RouteSegment, minDistance float64) []travel.RouteSegment {
	out := make([]travel.RouteSegment, len(segments))
	for i, seg := range segments {
		out[i] = travel.RouteSegment{
			Points:    Points(seg.Points, minDistance),
			Mode:      seg.Mode,
			DebugInfo: seg.DebugInfo,
		}
	}
	return out
}

// Points keeps the first point, then only points at least minDistance from
// the last kept point, and always the final point. Two points or fewer
// pass through unchanged.
func Points(points []travel.Location, minDistance float64) []travel.Location {
	if len(points) <= 2 {
		return append([]travel.Location{}, points...)
	}

	kept := []travel.Location{points[0]}
	last := points[0]
	for _, p := range points[1:] {
		if common.DistanceDegrees(p.Point(), last.Point()) >= minDistance {
			kept = append(kept, p)
			last = p
		}
	}

	final := points[len(points)-1]
	if kept[len(kept)-1] != final {
		kept = append(kept, final)
	}
	return kept
}
