package webd

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tidwall/gjson"
	"github.com/wandermap/traveld/params"
	"github.com/wandermap/traveld/provider"
)

func newTestDaemon(t *testing.T) *WebDaemon {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"trip-asia.json":        `{"name":"Asia","start_date":100,"end_date":2000,"total_km":10,"all_steps":[{"name":"kyoto","display_name":"Kyoto","start_time":100,"location":{"lat":35,"lon":135,"name":"Kyoto","detail":"Japan"}}]}`,
		"locations-asia.json":   `{"locations":[{"lat":10,"lon":20,"time":0},{"lat":10.001,"lon":20,"time":1000},{"lat":10.6,"lon":20,"time":1060}]}`,
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	p := provider.New(dir, params.DefaultConfig(), nil)
	return NewWebDaemon(params.DefaultTestWebDaemonConfig(), p)
}

func get(t *testing.T, server *httptest.Server, path string) []byte {
	t.Helper()
	resp, err := http.Get(server.URL + path)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET %s: %d", path, resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return body
}

func TestPing(t *testing.T) {
	s := newTestDaemon(t)
	server := httptest.NewServer(s.NewRouter())
	defer server.Close()

	if body := get(t, server, "/ping"); string(body) != "pong" {
		t.Errorf("expected pong, got %s", body)
	}
}

func TestGetTravelData(t *testing.T) {
	s := newTestDaemon(t)
	server := httptest.NewServer(s.NewRouter())
	defer server.Close()

	body := get(t, server, "/travel")
	if n := gjson.GetBytes(body, "tripParts.#").Int(); n != 1 {
		t.Fatalf("expected 1 trip part, got %d: %s", n, body)
	}
	// A ground crawl then a jump: two segments, the second a flight.
	segs := gjson.GetBytes(body, "tripParts.0.routeSegments")
	if n := segs.Get("#").Int(); n != 2 {
		t.Fatalf("expected 2 segments, got %d: %s", n, segs.Raw)
	}
	if mode := segs.Get("1.mode").String(); mode != "flight" {
		t.Errorf("expected flight, got %q", mode)
	}
	if name := gjson.GetBytes(body, "tripParts.0.stops.0.displayName").String(); name != "Kyoto" {
		t.Errorf("stop name: %q", name)
	}

	// Debug telemetry only when requested.
	if gjson.GetBytes(body, "tripParts.0.routeSegments.0.debugInfo").Exists() != s.Config.DebugInfo {
		t.Error("debugInfo presence should follow config")
	}
	body = get(t, server, "/travel?debug=false")
	if gjson.GetBytes(body, "tripParts.0.routeSegments.0.debugInfo").Exists() {
		t.Error("unexpected debugInfo")
	}
}

func TestGetTravelGeoJSON(t *testing.T) {
	s := newTestDaemon(t)
	server := httptest.NewServer(s.NewRouter())
	defer server.Close()

	body := get(t, server, "/travel/geojson")
	if typ := gjson.GetBytes(body, "type").String(); typ != "FeatureCollection" {
		t.Fatalf("type: %q", typ)
	}
	// 2 segments + 1 stop.
	if n := gjson.GetBytes(body, "features.#").Int(); n != 3 {
		t.Errorf("expected 3 features, got %d: %s", n, body)
	}

	body = get(t, server, "/travel/geojson?mode=flight")
	features := gjson.GetBytes(body, "features")
	if n := features.Get("#").Int(); n != 1 {
		t.Fatalf("expected 1 flight feature, got %d", n)
	}
	if mode := features.Get("0.properties.mode").String(); mode != "flight" {
		t.Errorf("mode: %q", mode)
	}
	if typ := features.Get("0.geometry.type").String(); typ != "LineString" {
		t.Errorf("geometry type: %q", typ)
	}
}

func TestUpdateFilterConfigRoundtrip(t *testing.T) {
	s := newTestDaemon(t)
	server := httptest.NewServer(s.NewRouter())
	defer server.Close()

	// Force the jump to boat via an override.
	update := `{"travelModes":[{"startTime":1000,"endTime":1060,"mode":"boat"}]}`
	resp, err := http.Post(server.URL+"/filter", "application/json", strings.NewReader(update))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("POST /filter: %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	if mode := gjson.GetBytes(body, "tripParts.0.routeSegments.1.mode").String(); mode != "boat" {
		t.Errorf("expected boat after override, got %q: %s", mode, body)
	}

	// The active config is served back and exported as an attachment.
	body = get(t, server, "/filter")
	if n := gjson.GetBytes(body, "travelModes.#").Int(); n != 1 {
		t.Errorf("active config: %s", body)
	}

	req, _ := http.NewRequest(http.MethodGet, server.URL+"/filter/export", nil)
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer res.Body.Close()
	if cd := res.Header.Get("Content-Disposition"); !strings.Contains(cd, "filter-config.json") {
		t.Errorf("content-disposition: %q", cd)
	}
}

func TestUpdateFilterConfigRejectsGarbage(t *testing.T) {
	s := newTestDaemon(t)
	server := httptest.NewServer(s.NewRouter())
	defer server.Close()

	resp, err := http.Post(server.URL+"/filter", "application/json", strings.NewReader(`{"travelModes":[{"mode":"teleport"}]}`))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", resp.StatusCode)
	}
}

func TestStatus(t *testing.T) {
	s := newTestDaemon(t)
	server := httptest.NewServer(s.NewRouter())
	defer server.Close()

	body := get(t, server, "/status")
	if n := gjson.GetBytes(body, "trips.#").Int(); n != 1 {
		t.Errorf("trips: %s", body)
	}
	if calls := gjson.GetBytes(body, "parse_calls").Int(); calls < 1 {
		t.Errorf("parse calls: %d", calls)
	}
}
