package simplify

import (
	"testing"

	"github.com/wandermap/traveld/types/travel"
)

func loc(lat, lon, time float64) travel.Location {
	return travel.Location{Lat: lat, Lon: lon, Time: time}
}

func TestPointsThinning(t *testing.T) {
	points := []travel.Location{
		loc(10, 20, 0),
		loc(10.001, 20, 10),  // too close, dropped
		loc(10.02, 20, 20),   // kept
		loc(10.021, 20, 30),  // too close, dropped
		loc(10.0215, 20, 40), // final, always kept
	}
	got := Points(points, 0.01)
	if len(got) != 3 {
		t.Fatalf("expected 3 points, got %d: %v", len(got), got)
	}
	if got[0] != points[0] {
		t.Error("first point not preserved")
	}
	if got[len(got)-1] != points[len(points)-1] {
		t.Error("final point not preserved")
	}
}

func TestPointsIdempotent(t *testing.T) {
	points := []travel.Location{
		loc(10, 20, 0),
		loc(10.005, 20, 10),
		loc(10.02, 20, 20),
		loc(10.04, 20, 30),
		loc(10.041, 20, 40),
	}
	once := Points(points, 0.01)
	twice := Points(once, 0.01)
	if len(once) != len(twice) {
		t.Fatalf("not idempotent: %d then %d points", len(once), len(twice))
	}
	for i := range once {
		if once[i] != twice[i] {
			t.Errorf("point %d changed on second pass", i)
		}
	}
}

func TestPointsShortPassThrough(t *testing.T) {
	two := []travel.Location{loc(10, 20, 0), loc(10.0001, 20, 10)}
	got := Points(two, 0.01)
	if len(got) != 2 {
		t.Errorf("expected pass-through, got %v", got)
	}
	one := []travel.Location{loc(10, 20, 0)}
	if got := Points(one, 0.01); len(got) != 1 {
		t.Errorf("expected pass-through, got %v", got)
	}
}

func TestRouteIsPure(t *testing.T) {
	segs := []travel.RouteSegment{
		{
			Mode: travel.ModeGround,
			Points: []travel.Location{
				loc(10, 20, 0),
				loc(10.001, 20, 10),
				loc(10.02, 20, 20),
				loc(10.021, 20, 30),
			},
			DebugInfo: &travel.SegmentDebug{StartTime: 0, EndTime: 30},
		},
		{
			Mode:   travel.ModeFlight,
			Points: []travel.Location{loc(10, 20, 0), loc(11, 20, 60)},
		},
	}
	got := Route(segs, 0.01)

	if len(segs[0].Points) != 4 {
		t.Error("input segment mutated")
	}
	if len(got[0].Points) != 3 {
		t.Errorf("expected thinned segment, got %d points", len(got[0].Points))
	}
	if got[0].Mode != travel.ModeGround || got[0].DebugInfo != segs[0].DebugInfo {
		t.Error("mode/debugInfo not carried")
	}
	if len(got[1].Points) != 2 {
		t.Error("flight segment should pass through")
	}
}
