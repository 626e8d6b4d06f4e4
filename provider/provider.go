// Package provider is the coordination point of the pipeline:
// load raw data once, load the filter config once, serve derived
// TravelData memoized by filter-config identity.
package provider

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/golang/groupcache/lru"
	"github.com/mitchellh/hashstructure/v2"
	"github.com/wandermap/traveld/events"
	"github.com/wandermap/traveld/geo/segment"
	"github.com/wandermap/traveld/geo/simplify"
	"github.com/wandermap/traveld/params"
	"github.com/wandermap/traveld/state"
	"github.com/wandermap/traveld/stream"
	"github.com/wandermap/traveld/trip"
	"github.com/wandermap/traveld/types/travel"
)

// Options select the derived shape of the data.
// Different options are different cache entries.
type Options struct {
	SimplifyThreshold float64
	DebugInfo         bool
}

func DefaultOptions() Options {
	return Options{SimplifyThreshold: params.DefaultSimplifyConfig.MinDistance}
}

// memoSize bounds derived-result variants held at once. The working set
// is one filter config x a couple of option shapes.
const memoSize = 8

// Provider owns the loader -> segmenter -> simplifier pipeline and its
// cache. Construct one per process (or per test); there is no implicit
// singleton. All mutation goes through UpdateFilterConfig, serialized by
// a mutex so overlapping updates cannot interleave their cache writes.
type Provider struct {
	mu      sync.Mutex
	dataDir string
	config  *params.Config
	st      *state.State // optional snapshot store

	manifest *trip.Manifest
	raw      *trip.RawData
	filter   *travel.FilterConfig

	memo       *lru.Cache
	parseCalls atomic.Int64

	logger *slog.Logger
}

// New constructs a provider over a trip-data directory.
// st may be nil; with a state store the provider snapshots the active
// filter config and last derived data across restarts.
func New(dataDir string, config *params.Config, st *state.State) *Provider {
	if config == nil {
		config = params.DefaultConfig()
	}
	return &Provider{
		dataDir: dataDir,
		config:  config,
		st:      st,
		memo:    lru.New(memoSize),
		logger:  slog.With("d", "provider"),
	}
}

// LoadRawData discovers the manifest and loads every trip's files.
// Idempotent: subsequent calls reuse in-memory state.
func (p *Provider) LoadRawData() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loadRawLocked()
}

func (p *Provider) loadRawLocked() error {
	if p.raw != nil {
		return nil
	}
	manifest, err := trip.Discover(p.dataDir)
	if err != nil {
		return err
	}
	raw, err := trip.Load(manifest)
	if err != nil {
		return err
	}
	p.manifest = manifest
	p.raw = raw
	return nil
}

func (p *Provider) loadFilterLocked() error {
	if p.filter != nil {
		return nil
	}
	if p.st != nil {
		fc := &travel.FilterConfig{}
		err := p.st.ReadKVUnmarshalJSON(params.StateKey_FilterConfig, fc)
		if err == nil {
			p.filter = fc
			return nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			p.logger.Warn("Failed to read filter config snapshot", "error", err)
		}
	}
	fc, err := trip.LoadFilterConfig(filepath.Join(p.dataDir, params.FilterConfigFileName))
	if err != nil {
		return err
	}
	p.filter = fc
	return nil
}

// LoadTravelData returns derived travel data and the active filter config.
// Raw data and filter config load on first call; a memoized result for
// the active config and options is returned without recomputation.
func (p *Provider) LoadTravelData(ctx context.Context, opts Options) (*travel.TravelData, *travel.FilterConfig, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.loadRawLocked(); err != nil {
		return nil, nil, err
	}
	if err := p.loadFilterLocked(); err != nil {
		return nil, nil, err
	}

	key, err := cacheKey(p.filter, opts)
	if err != nil {
		return nil, nil, err
	}
	if cached, ok := p.memo.Get(key); ok {
		return cached.(*travel.TravelData), p.filter, nil
	}

	data, err := p.computeLocked(ctx, opts)
	if err != nil {
		return nil, nil, err
	}
	p.memo.Add(key, data)
	p.snapshotLocked(data)
	events.TravelDataUpdated.Send(data)
	return data, p.filter, nil
}

// UpdateFilterConfig replaces the active filter configuration,
// clears the derived cache, and recomputes. This is the only mutation
// path; the cache is never partially invalidated.
func (p *Provider) UpdateFilterConfig(ctx context.Context, fc *travel.FilterConfig, opts Options) (*travel.TravelData, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.loadRawLocked(); err != nil {
		return nil, err
	}
	if fc == nil {
		fc = &travel.FilterConfig{}
	}
	p.filter = fc
	p.memo.Clear()

	data, err := p.computeLocked(ctx, opts)
	if err != nil {
		return nil, err
	}
	key, err := cacheKey(p.filter, opts)
	if err != nil {
		return nil, err
	}
	p.memo.Add(key, data)
	p.snapshotLocked(data)
	events.FilterConfigUpdated.Send(fc)
	events.TravelDataUpdated.Send(data)
	return data, nil
}

// ActiveFilterConfig returns the active config, which may be nil before
// the first load.
func (p *Provider) ActiveFilterConfig() *travel.FilterConfig {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.filter
}

// ParseCalls counts segmenter invocations, one per trip per recompute.
func (p *Provider) ParseCalls() int64 {
	return p.parseCalls.Load()
}

// TripNames lists loaded trips; empty before the first load.
func (p *Provider) TripNames() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.manifest == nil {
		return nil
	}
	return p.manifest.TripNames()
}

type parsed struct {
	part *travel.TripPart
	err  error
}

// computeLocked runs the full pipeline over every trip, sequentially.
// All CPU work happens here, atomically under the provider lock; no
// caller can observe a partially built TravelData.
func (p *Provider) computeLocked(ctx context.Context, opts Options) (*travel.TravelData, error) {
	segOpts := segment.Options{
		DebugInfo: opts.DebugInfo,
		Filter:    p.filter,
		Config:    p.config.SegmenterConfig,
	}
	threshold := opts.SimplifyThreshold
	if threshold == 0 {
		threshold = p.config.SimplifyConfig.MinDistance
	}

	names := p.manifest.TripNames()
	results := stream.Collect(ctx, stream.Transform(ctx, func(name string) parsed {
		p.parseCalls.Add(1)
		part, err := segment.Parse(p.raw.Locations[name], p.raw.Trips[name], name, segOpts)
		if err != nil {
			return parsed{err: err}
		}
		part.RouteSegments = simplify.Route(part.RouteSegments, threshold)
		return parsed{part: part}
	}, stream.Slice(ctx, names)))

	if len(results) != len(names) {
		return nil, fmt.Errorf("provider: compute canceled: %w", ctx.Err())
	}

	data := &travel.TravelData{}
	for _, res := range results {
		if res.err != nil {
			return nil, res.err
		}
		data.TripParts = append(data.TripParts, *res.part)
	}
	data.Aggregate()
	return data, nil
}

func (p *Provider) snapshotLocked(data *travel.TravelData) {
	if p.st == nil {
		return
	}
	if err := p.st.StoreKVMarshalJSON(params.StateKey_FilterConfig, p.filter); err != nil {
		p.logger.Warn("Failed to snapshot filter config", "error", err)
	}
	if err := p.st.StoreKVMarshalJSON(params.StateKey_TravelData, data); err != nil {
		p.logger.Warn("Failed to snapshot travel data", "error", err)
	}
}

func cacheKey(fc *travel.FilterConfig, opts Options) (uint64, error) {
	hash, err := hashstructure.Hash(struct {
		FC   *travel.FilterConfig
		Opts Options
	}{fc, opts}, hashstructure.FormatV2, nil)
	if err != nil {
		return 0, fmt.Errorf("provider: cache key: %w", err)
	}
	return hash, nil
}
