package travel

import "testing"

func TestFilterConfigExcludes(t *testing.T) {
	fc := &FilterConfig{
		ExcludedPoints: []Location{
			{Lat: 10.0, Lon: 20.0, Time: 1000},
		},
	}

	// Near-match within tolerance, at a completely different time.
	if !fc.Excludes(Location{Lat: 10.0000001, Lon: 20.0000001, Time: 99999}) {
		t.Error("expected near-match exclusion, time ignored")
	}
	if fc.Excludes(Location{Lat: 10.001, Lon: 20.0, Time: 1000}) {
		t.Error("point outside tolerance should not be excluded")
	}

	// A config referencing nonexistent points is a no-op.
	var nilConfig *FilterConfig
	if nilConfig.Excludes(Location{Lat: 10, Lon: 20}) {
		t.Error("nil config excludes nothing")
	}
}

func TestFilterConfigModeFor(t *testing.T) {
	fc := &FilterConfig{
		TravelModes: []TravelModeRange{
			{StartTime: 0, EndTime: 100, Mode: ModeBoat},
			{StartTime: 50, EndTime: 150, Mode: ModeTrain},
		},
	}

	// First matching range in list order wins.
	if mode, ok := fc.ModeFor(60, 90); !ok || mode != ModeBoat {
		t.Errorf("expected boat (first match), got %v ok=%v", mode, ok)
	}
	if mode, ok := fc.ModeFor(110, 140); !ok || mode != ModeTrain {
		t.Errorf("expected train, got %v ok=%v", mode, ok)
	}
	// The range must fully contain the transition interval.
	if _, ok := fc.ModeFor(90, 160); ok {
		t.Error("partially covered transition should not match")
	}
	if _, ok := fc.ModeFor(200, 300); ok {
		t.Error("uncovered transition should not match")
	}
}
