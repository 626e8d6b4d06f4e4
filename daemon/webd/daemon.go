// Package webd serves derived travel data and the debug-tool API
// over HTTP and websocket.
package webd

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/jellydator/ttlcache/v3"
	"github.com/olahol/melody"
	"github.com/wandermap/traveld/params"
	"github.com/wandermap/traveld/provider"
	"github.com/wandermap/traveld/types/travel"
)

type WebDaemon struct {
	Config *params.WebDaemonConfig

	provider       *provider.Provider
	logger         *slog.Logger
	melodyInstance *melody.Melody
	started        time.Time

	// lastComputed replays the most recent derived data to websocket
	// clients as they connect, so the debug tool paints immediately.
	lastComputed *ttlcache.Cache[string, *travel.TravelData]
}

func NewWebDaemon(config *params.WebDaemonConfig, p *provider.Provider) *WebDaemon {
	if config == nil {
		config = params.DefaultWebDaemonConfig()
	}
	return &WebDaemon{
		Config:   config,
		provider: p,
		logger:   slog.With("d", "web"),
		started:  time.Now(),
		lastComputed: ttlcache.New[string, *travel.TravelData](
			ttlcache.WithTTL[string, *travel.TravelData](params.CacheLastComputedTTL)),
	}
}

// Run starts the HTTP server and blocks on it.
func (s *WebDaemon) Run() error {
	router := s.NewRouter()
	s.logger.Info("Starting web daemon", "address", s.Config.Address)
	server := &http.Server{
		Addr:    s.Config.Address,
		Handler: router,
	}
	return server.ListenAndServe()
}

func (s *WebDaemon) NewRouter() *mux.Router {
	s.initMelody()

	router := mux.NewRouter().StrictSlash(false)
	router.Use(loggingMiddleware)

	router.Path("/sotravel").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = s.melodyInstance.HandleRequest(w, r)
	})

	apiRoutes := router.NewRoute().Subrouter()
	apiRoutes.Use(permissiveCorsMiddleware)

	apiRoutes.Path("/ping").HandlerFunc(pingPong)

	apiJSONRoutes := apiRoutes.NewRoute().Subrouter()
	apiJSONRoutes.Use(contentTypeMiddlewareFunc("application/json"))

	apiJSONRoutes.Path("/status").HandlerFunc(s.handleStatus).Methods(http.MethodGet)
	apiJSONRoutes.Path("/travel").HandlerFunc(s.handleGetTravelData).Methods(http.MethodGet)
	apiJSONRoutes.Path("/travel/geojson").HandlerFunc(s.handleGetTravelGeoJSON).Methods(http.MethodGet)
	apiJSONRoutes.Path("/filter").HandlerFunc(s.handleGetFilterConfig).Methods(http.MethodGet)
	apiJSONRoutes.Path("/filter/export").HandlerFunc(s.handleExportFilterConfig).Methods(http.MethodGet)

	authenticatedRoutes := apiJSONRoutes.NewRoute().Subrouter()
	authenticatedRoutes.Use(tokenAuthenticationMiddleware)
	authenticatedRoutes.Path("/filter").HandlerFunc(s.handleUpdateFilterConfig).Methods(http.MethodPost)

	return router
}

// opts derives provider options from daemon config and query overrides
// (?debug=true, ?threshold=0.005).
func (s *WebDaemon) opts(r *http.Request) (provider.Options, error) {
	opts := provider.Options{
		SimplifyThreshold: s.Config.SimplifyThreshold,
		DebugInfo:         s.Config.DebugInfo,
	}
	q := r.URL.Query()
	if v := q.Get("debug"); v != "" {
		opts.DebugInfo = v == "true" || v == "1"
	}
	if v := q.Get("threshold"); v != "" {
		var threshold float64
		if _, err := fmt.Sscanf(v, "%f", &threshold); err != nil || threshold < 0 {
			return opts, fmt.Errorf("bad threshold: %q", v)
		}
		opts.SimplifyThreshold = threshold
	}
	return opts, nil
}
