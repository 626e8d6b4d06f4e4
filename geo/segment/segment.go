// Package segment turns one trip's raw locations into bounded,
// mode-tagged route segments plus a stop list.
package segment

import (
	"errors"
	"fmt"
	"slices"

	"github.com/montanaflynn/stats"
	"github.com/wandermap/traveld/common"
	"github.com/wandermap/traveld/params"
	"github.com/wandermap/traveld/trip"
	"github.com/wandermap/traveld/types/travel"
)

// ErrNoLocations rejects a trip with zero retained locations.
// The first-point arithmetic below has no meaning without one.
var ErrNoLocations = errors.New("segment: no locations")

type Options struct {
	DebugInfo bool
	Filter    *travel.FilterConfig
	Config    params.SegmenterConfig
}

func DefaultOptions() Options {
	return Options{Config: params.DefaultSegmenterConfig}
}

// Parse converts raw locations and trip metadata into a TripPart.
//
// The walk is pairwise over time-sorted points. Each transition gets a
// planar degree-distance and a km/h speed; a transition is a flight when
// BOTH the distance and speed thresholds are exceeded. An operator
// TravelModeRange fully containing the transition interval wins over the
// heuristic, first matching range in list order. Segments close when the
// resolved mode changes; closed flight segments collapse to their first
// and last point.
func Parse(rawLocs trip.RawLocations, rawTrip trip.RawTrip, tripName string, opts Options) (*travel.TripPart, error) {
	locs := retained(rawLocs.Locations, tripName, opts.Filter)
	if len(locs) == 0 {
		return nil, fmt.Errorf("%w: trip %q", ErrNoLocations, tripName)
	}

	slices.SortFunc(locs, func(a, b travel.Location) int {
		if a.Time < b.Time {
			return -1
		} else if a.Time > b.Time {
			return 1
		}
		return 0
	})

	part := &travel.TripPart{
		Name:      rawTrip.Name,
		StartDate: rawTrip.StartDate,
		EndDate:   rawTrip.EndDate,
		TotalKm:   rawTrip.TotalKm,
		Bounds:    travel.NewBounds(),
	}
	if part.Name == "" {
		part.Name = tripName
	}

	w := newWalker(locs[0], opts)
	for i := 0; i < len(locs); i++ {
		part.Bounds.Extend(locs[i])
		if i == len(locs)-1 {
			break
		}
		w.transition(locs[i], locs[i+1])
	}
	part.RouteSegments = w.finish()

	part.Stops = make([]travel.TripStop, 0, len(rawTrip.AllSteps))
	for _, step := range rawTrip.AllSteps {
		part.Stops = append(part.Stops, stepToStop(step))
	}
	return part, nil
}

// retained applies the exclusion filter and appends inserted points.
// Exclusion matches lat/lon within tolerance and ignores timestamps, so a
// config can carry a superset of historical exclusions; unmatched entries
// are a no-op.
func retained(locs []travel.Location, tripName string, fc *travel.FilterConfig) []travel.Location {
	out := make([]travel.Location, 0, len(locs))
	for _, l := range locs {
		if fc.Excludes(l) {
			continue
		}
		out = append(out, l)
	}
	return append(out, fc.Inserted(tripName)...)
}

// walker is the segmentation state machine.
type walker struct {
	opts Options
	done []travel.RouteSegment

	open        travel.RouteSegment
	modeSet     bool
	cumDistance float64
	pointSpeeds []float64
}

func newWalker(first travel.Location, opts Options) *walker {
	w := &walker{opts: opts}
	w.openAt(first)
	return w
}

func (w *walker) openAt(pts ...travel.Location) {
	w.open = travel.RouteSegment{Points: pts, Mode: travel.ModeGround}
	w.modeSet = false
	w.cumDistance = 0
	w.pointSpeeds = w.pointSpeeds[:0]
}

func (w *walker) transition(cur, next travel.Location) {
	distance := common.DistanceDegrees(cur.Point(), next.Point())
	speed := common.SpeedKmH(distance, next.Time-cur.Time)

	mode := travel.ModeGround
	if distance > w.opts.Config.FlightDistanceThreshold &&
		speed > w.opts.Config.FlightSpeedThreshold {
		mode = travel.ModeFlight
	}
	if override, ok := w.opts.Filter.ModeFor(cur.Time, next.Time); ok {
		mode = override
	}

	if !w.modeSet {
		w.open.Mode = mode
		w.modeSet = true
	} else if mode != w.open.Mode {
		w.close()
		w.openAt(cur, next)
		w.open.Mode = mode
		w.modeSet = true
		w.cumDistance = distance
		w.pointSpeeds = append(w.pointSpeeds, speed)
		return
	}
	w.open.Points = append(w.open.Points, next)
	w.cumDistance += distance
	w.pointSpeeds = append(w.pointSpeeds, speed)
}

// close finalizes the open segment. Flight segments keep exactly their
// first and last point; a straight-line hop needs no intermediate fidelity.
func (w *walker) close() {
	seg := w.open
	if seg.Mode == travel.ModeFlight && len(seg.Points) > 2 {
		seg.Points = []travel.Location{seg.Points[0], seg.Points[len(seg.Points)-1]}
	}
	if w.opts.DebugInfo {
		seg.DebugInfo = w.debugInfo(seg)
	}
	w.done = append(w.done, seg)
}

func (w *walker) debugInfo(seg travel.RouteSegment) *travel.SegmentDebug {
	di := &travel.SegmentDebug{
		StartTime:       seg.FirstTime(),
		EndTime:         seg.LastTime(),
		DistanceDegrees: w.cumDistance,
	}
	elapsed := di.EndTime - di.StartTime
	if elapsed > 0 {
		di.SpeedKmH = common.SpeedKmH(w.cumDistance, elapsed)
	}
	if len(w.pointSpeeds) > 0 {
		if median, err := stats.Median(w.pointSpeeds); err == nil {
			di.MedianPointSpeedKmH = median
		}
	}
	return di
}

func (w *walker) finish() []travel.RouteSegment {
	w.close()
	return w.done
}

func stepToStop(step trip.RawStep) travel.TripStop {
	name, displayName := step.Name, step.DisplayName
	if name == "" {
		name = step.DisplayName
	}
	if displayName == "" {
		displayName = step.Name
	}
	return travel.TripStop{
		Name:        name,
		DisplayName: displayName,
		StartTime:   step.StartTime,
		Location: travel.StopLocation{
			Lat:    step.Location.Lat,
			Lon:    step.Location.Lon,
			Name:   step.Location.Name,
			Detail: step.Location.Detail,
		},
	}
}
