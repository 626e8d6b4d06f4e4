// Package travel holds the shapes the route pipeline trades in:
// raw GPS locations, named stops, mode-tagged route segments, and the
// per-trip and whole-log aggregates the map consumes.
package travel

import (
	"time"

	"github.com/paulmach/orb"
)

// Location is a single GPS sample. Immutable once recorded.
// Time is unix seconds, matching the raw Polarsteps export.
type Location struct {
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
	Time float64 `json:"time"`
}

// Point returns the location as an orb point (x=lon, y=lat).
func (l Location) Point() orb.Point {
	return orb.Point{l.Lon, l.Lat}
}

func (l Location) Timestamp() time.Time {
	return time.Unix(int64(l.Time), 0)
}

// StopLocation is where a named stop is pinned.
type StopLocation struct {
	Lat    float64 `json:"lat"`
	Lon    float64 `json:"lon"`
	Name   string  `json:"name"`
	Detail string  `json:"detail"`
}

// TripStop is a named waypoint, one per Polarsteps "step".
// Never mutated after load.
type TripStop struct {
	Name        string       `json:"name"`
	DisplayName string       `json:"displayName"`
	StartTime   float64      `json:"startTime"`
	Location    StopLocation `json:"location"`
}

// SegmentDebug is optional telemetry attached to a segment when the
// debug tool asks for it.
type SegmentDebug struct {
	StartTime       float64 `json:"startTime"`
	EndTime         float64 `json:"endTime"`
	SpeedKmH        float64 `json:"speedKmH"`
	DistanceDegrees float64 `json:"distanceDegrees"`
	// MedianPointSpeedKmH summarizes the per-transition speeds inside
	// the segment. Zero for collapsed flight segments.
	MedianPointSpeedKmH float64 `json:"medianPointSpeedKmH,omitempty"`
}

// RouteSegment is a maximal run of points sharing one travel mode.
// Produced only by the segmenter and immutable thereafter; the
// simplifier builds new segments rather than mutating.
type RouteSegment struct {
	Points    []Location    `json:"points"`
	Mode      Mode          `json:"mode"`
	DebugInfo *SegmentDebug `json:"debugInfo,omitempty"`
}

// FirstTime is the time of the segment's first point.
// Zero points is a segment that should not exist.
func (s RouteSegment) FirstTime() float64 {
	return s.Points[0].Time
}

func (s RouteSegment) LastTime() float64 {
	return s.Points[len(s.Points)-1].Time
}

// LineString returns the draw-order path of the segment.
func (s RouteSegment) LineString() orb.LineString {
	ls := make(orb.LineString, len(s.Points))
	for i, p := range s.Points {
		ls[i] = p.Point()
	}
	return ls
}

// Bounds is a lat/lon bounding box.
// North >= South; East is the max longitude, West the min.
type Bounds struct {
	North float64 `json:"north"`
	South float64 `json:"south"`
	East  float64 `json:"east"`
	West  float64 `json:"west"`
}

// NewBounds returns bounds primed with inverted extremes,
// ready for Extend.
func NewBounds() Bounds {
	return Bounds{
		North: -90,
		South: 90,
		East:  -180,
		West:  180,
	}
}

// Extend grows the bounds to include the location.
func (b *Bounds) Extend(l Location) {
	if l.Lat > b.North {
		b.North = l.Lat
	}
	if l.Lat < b.South {
		b.South = l.Lat
	}
	if l.Lon > b.East {
		b.East = l.Lon
	}
	if l.Lon < b.West {
		b.West = l.Lon
	}
}

// Union grows the bounds to include another bounds.
func (b *Bounds) Union(other Bounds) {
	if other.North > b.North {
		b.North = other.North
	}
	if other.South < b.South {
		b.South = other.South
	}
	if other.East > b.East {
		b.East = other.East
	}
	if other.West < b.West {
		b.West = other.West
	}
}

// IsEmpty is true for bounds never extended.
func (b Bounds) IsEmpty() bool {
	return b.North < b.South
}

// Bound returns the orb equivalent, for geometry interop.
func (b Bounds) Bound() orb.Bound {
	return orb.Bound{
		Min: orb.Point{b.West, b.South},
		Max: orb.Point{b.East, b.North},
	}
}

// TripPart is one independent trip's worth of parsed route.
type TripPart struct {
	Name          string         `json:"name"`
	StartDate     float64        `json:"startDate"`
	EndDate       float64        `json:"endDate"`
	TotalKm       float64        `json:"totalKm"`
	RouteSegments []RouteSegment `json:"routeSegments"`
	Stops         []TripStop     `json:"stops"`
	Bounds        Bounds         `json:"bounds"`
}

// TravelData aggregates all trip parts with a global bounding box,
// total distance, and date range.
type TravelData struct {
	TripParts []TripPart `json:"tripParts"`
	Bounds    Bounds     `json:"bounds"`
	TotalKm   float64    `json:"totalKm"`
	StartDate float64    `json:"startDate"`
	EndDate   float64    `json:"endDate"`
}

// Aggregate recomputes the whole-log rollups from the trip parts.
func (td *TravelData) Aggregate() {
	bounds := NewBounds()
	td.TotalKm = 0
	td.StartDate = 0
	td.EndDate = 0
	for _, part := range td.TripParts {
		bounds.Union(part.Bounds)
		td.TotalKm += part.TotalKm
		if td.StartDate == 0 || part.StartDate < td.StartDate {
			td.StartDate = part.StartDate
		}
		if part.EndDate > td.EndDate {
			td.EndDate = part.EndDate
		}
	}
	td.Bounds = bounds
}
