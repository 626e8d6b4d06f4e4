package webd

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/paulmach/orb/geojson"
	"github.com/wandermap/traveld/params"
	"github.com/wandermap/traveld/provider"
	"github.com/wandermap/traveld/stream"
	"github.com/wandermap/traveld/trip"
	"github.com/wandermap/traveld/types/travel"
)

func pingPong(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("pong"))
}

type webDaemonStatus struct {
	StartedAt  time.Time               `json:"started_at"`
	Uptime     string                  `json:"uptime"`
	Trips      []string                `json:"trips"`
	TotalKm    string                  `json:"total_km"`
	ParseCalls int64                   `json:"parse_calls"`
	WSConns    int                     `json:"ws_conns"`
	Config     *params.WebDaemonConfig `json:"config"`
}

func (s *WebDaemon) handleStatus(w http.ResponseWriter, r *http.Request) {
	data, _, err := s.provider.LoadTravelData(r.Context(), s.defaultOpts())
	if err != nil {
		s.logger.Error("Failed to load travel data", "error", err)
		http.Error(w, "Failed to load travel data", http.StatusInternalServerError)
		return
	}
	st := webDaemonStatus{
		StartedAt:  s.started,
		Uptime:     time.Since(s.started).Round(time.Second).String(),
		Trips:      s.provider.TripNames(),
		TotalKm:    humanize.CommafWithDigits(data.TotalKm, 1),
		ParseCalls: s.provider.ParseCalls(),
		WSConns:    s.melodyInstance.Len(),
		Config:     s.Config,
	}
	j, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		http.Error(w, "Failed to marshal status", http.StatusInternalServerError)
		return
	}
	_, _ = w.Write(j)
}

func (s *WebDaemon) handleGetTravelData(w http.ResponseWriter, r *http.Request) {
	opts, err := s.opts(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	data, _, err := s.provider.LoadTravelData(r.Context(), opts)
	if err != nil {
		s.logger.Error("Failed to load travel data", "error", err)
		http.Error(w, "Failed to load travel data", http.StatusInternalServerError)
		return
	}
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Warn("Failed to write response", "error", err)
	}
}

// handleGetTravelGeoJSON renders route segments as LineString features
// and stops as Point features, the shapes the map component draws.
// ?mode=flight filters segment features by travel mode.
func (s *WebDaemon) handleGetTravelGeoJSON(w http.ResponseWriter, r *http.Request) {
	opts, err := s.opts(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	data, _, err := s.provider.LoadTravelData(r.Context(), opts)
	if err != nil {
		s.logger.Error("Failed to load travel data", "error", err)
		http.Error(w, "Failed to load travel data", http.StatusInternalServerError)
		return
	}

	modeFilter := travel.ModeUnknown
	if v := r.URL.Query().Get("mode"); v != "" {
		modeFilter = travel.ParseMode(v)
		if !modeFilter.IsKnown() {
			http.Error(w, "unknown mode", http.StatusBadRequest)
			return
		}
	}

	fc := geojson.NewFeatureCollection()
	for _, part := range data.TripParts {
		segs := stream.Collect(r.Context(),
			stream.Filter(r.Context(), func(seg travel.RouteSegment) bool {
				return modeFilter == travel.ModeUnknown || seg.Mode == modeFilter
			}, stream.Slice(r.Context(), part.RouteSegments)))
		for _, seg := range segs {
			f := geojson.NewFeature(seg.LineString())
			f.Properties["trip"] = part.Name
			f.Properties["mode"] = seg.Mode.String()
			if seg.DebugInfo != nil {
				f.Properties["speedKmH"] = seg.DebugInfo.SpeedKmH
				f.Properties["distanceDegrees"] = seg.DebugInfo.DistanceDegrees
			}
			fc.Append(f)
		}
		if modeFilter != travel.ModeUnknown {
			continue
		}
		for _, stop := range part.Stops {
			f := geojson.NewFeature(travel.Location{Lat: stop.Location.Lat, Lon: stop.Location.Lon}.Point())
			f.Properties["trip"] = part.Name
			f.Properties["name"] = stop.Name
			f.Properties["displayName"] = stop.DisplayName
			f.Properties["startTime"] = stop.StartTime
			fc.Append(f)
		}
	}
	if err := json.NewEncoder(w).Encode(fc); err != nil {
		s.logger.Warn("Failed to write response", "error", err)
	}
}

func (s *WebDaemon) handleGetFilterConfig(w http.ResponseWriter, r *http.Request) {
	fc := s.provider.ActiveFilterConfig()
	if fc == nil {
		fc = &travel.FilterConfig{}
	}
	if err := json.NewEncoder(w).Encode(fc); err != nil {
		s.logger.Warn("Failed to write response", "error", err)
	}
}

// handleExportFilterConfig downloads the active config as an attachment;
// the operator re-commits it as the new static source.
func (s *WebDaemon) handleExportFilterConfig(w http.ResponseWriter, r *http.Request) {
	fc := s.provider.ActiveFilterConfig()
	if fc == nil {
		fc = &travel.FilterConfig{}
	}
	w.Header().Set("Content-Disposition", `attachment; filename="filter-config.json"`)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(fc); err != nil {
		s.logger.Warn("Failed to write response", "error", err)
	}
}

func (s *WebDaemon) handleUpdateFilterConfig(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read body", http.StatusBadRequest)
		return
	}
	fc, err := trip.DecodeFilterConfig(body)
	if err != nil {
		if errors.Is(err, trip.ErrDataIntegrity) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, "Failed to decode filter config", http.StatusInternalServerError)
		return
	}
	opts, err := s.opts(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	data, err := s.provider.UpdateFilterConfig(r.Context(), fc, opts)
	if err != nil {
		s.logger.Error("Failed to update filter config", "error", err)
		http.Error(w, "Failed to update filter config", http.StatusInternalServerError)
		return
	}
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Warn("Failed to write response", "error", err)
	}
}

func (s *WebDaemon) defaultOpts() provider.Options {
	return provider.Options{
		SimplifyThreshold: s.Config.SimplifyThreshold,
		DebugInfo:         s.Config.DebugInfo,
	}
}
