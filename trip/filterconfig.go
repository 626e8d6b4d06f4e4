package trip

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/tidwall/gjson"
	"github.com/wandermap/traveld/types/travel"
)

// Time layouts accepted in filter-config travelModes entries.
// Operators write these by hand; epoch numbers also pass.
var filterConfigTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// LoadFilterConfig reads filter-config.json. Human-readable timestamps in
// travelModes are converted to epoch seconds here, once, at load time.
// A missing file is an empty config, not an error; the overrides are
// optional by design.
func LoadFilterConfig(path string) (*travel.FilterConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			slog.Debug("No filter config", "path", path)
			return &travel.FilterConfig{}, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrDataIntegrity, err)
	}
	return DecodeFilterConfig(data)
}

// DecodeFilterConfig parses filter-config JSON leniently.
// Unknown travel modes and unparseable timestamps are integrity errors;
// everything else missing just decodes to empty.
func DecodeFilterConfig(data []byte) (*travel.FilterConfig, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: filter config is not valid JSON", ErrDataIntegrity)
	}
	fc := &travel.FilterConfig{}
	parsed := gjson.ParseBytes(data)

	for _, el := range parsed.Get("excludedPoints").Array() {
		fc.ExcludedPoints = append(fc.ExcludedPoints, travel.Location{
			Lat:  el.Get("lat").Float(),
			Lon:  el.Get("lon").Float(),
			Time: el.Get("time").Float(),
		})
	}

	for _, el := range parsed.Get("travelModes").Array() {
		start, err := epochSeconds(el.Get("startTime"))
		if err != nil {
			return nil, err
		}
		end, err := epochSeconds(el.Get("endTime"))
		if err != nil {
			return nil, err
		}
		mode := travel.ParseMode(el.Get("mode").String())
		if !mode.IsKnown() {
			return nil, fmt.Errorf("%w: unknown travel mode %q", ErrDataIntegrity, el.Get("mode").String())
		}
		fc.TravelModes = append(fc.TravelModes, travel.TravelModeRange{
			StartTime: start,
			EndTime:   end,
			Mode:      mode,
		})
	}

	inserted := parsed.Get("insertedPoints")
	if inserted.IsObject() {
		fc.InsertedPoints = map[string][]travel.Location{}
		inserted.ForEach(func(key, value gjson.Result) bool {
			for _, el := range value.Array() {
				fc.InsertedPoints[key.String()] = append(fc.InsertedPoints[key.String()], travel.Location{
					Lat:  el.Get("lat").Float(),
					Lon:  el.Get("lon").Float(),
					Time: el.Get("time").Float(),
				})
			}
			return true
		})
	}
	return fc, nil
}

func epochSeconds(res gjson.Result) (float64, error) {
	switch res.Type {
	case gjson.Number:
		return res.Float(), nil
	case gjson.String:
		for _, layout := range filterConfigTimeLayouts {
			if t, err := time.Parse(layout, res.String()); err == nil {
				return float64(t.Unix()), nil
			}
		}
	}
	return 0, fmt.Errorf("%w: unparseable timestamp %q", ErrDataIntegrity, res.String())
}
