package trip

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/dustin/go-humanize"
)

// RawData is everything the loader produces: per-trip merged locations
// and merged trip metadata.
type RawData struct {
	Locations map[string]RawLocations
	Trips     map[string]RawTrip
}

// Load reads and merges every trip in the manifest.
// Any missing or malformed file fails the whole load; see ErrDataIntegrity.
func Load(m *Manifest) (*RawData, error) {
	raw := &RawData{
		Locations: make(map[string]RawLocations, len(m.Sources)),
		Trips:     make(map[string]RawTrip, len(m.Sources)),
	}
	for _, src := range m.Sources {
		locFiles := make([]RawLocations, 0, len(src.LocationFiles))
		for _, path := range src.LocationFiles {
			var rl RawLocations
			if err := readJSON(path, &rl); err != nil {
				return nil, err
			}
			locFiles = append(locFiles, rl)
		}
		merged := MergeLocations(locFiles)
		if len(merged.Locations) == 0 {
			return nil, fmt.Errorf("%w: trip %q has zero locations", ErrDataIntegrity, src.Name)
		}

		var rt RawTrip
		if err := readJSON(src.TripFile, &rt); err != nil {
			return nil, err
		}

		raw.Locations[src.Name] = merged
		raw.Trips[src.Name] = rt

		slog.Debug("Loaded trip", "trip", src.Name,
			"locations", humanize.Comma(int64(len(merged.Locations))),
			"steps", len(rt.AllSteps),
			"km", humanize.CommafWithDigits(rt.TotalKm, 1))
	}
	return raw, nil
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDataIntegrity, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrDataIntegrity, path, err)
	}
	return nil
}
