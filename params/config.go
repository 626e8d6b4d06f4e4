package params

import "time"

type Config struct {
	SegmenterConfig
	SimplifyConfig
}

// SegmenterConfig tunes the flight heuristic.
// Distances are planar degrees, speeds km/h. At inter-city scale a degree
// of latitude is close enough to 111 km that nothing fancier is warranted.
type SegmenterConfig struct {
	FlightDistanceThreshold float64
	FlightSpeedThreshold    float64
}

var DefaultSegmenterConfig = SegmenterConfig{
	FlightDistanceThreshold: 0.5, // ~55 km
	FlightSpeedThreshold:    100,
}

type SimplifyConfig struct {
	MinDistance float64
}

var DefaultSimplifyConfig = SimplifyConfig{
	MinDistance: 0.01,
}

func DefaultConfig() *Config {
	return &Config{
		SegmenterConfig: DefaultSegmenterConfig,
		SimplifyConfig:  DefaultSimplifyConfig,
	}
}

// CoordTolerance is the near-equality tolerance for matching excluded
// points against raw locations. Matching ignores timestamps so exclusions
// survive data regenerations with slightly shifted timing.
const CoordTolerance = 1e-7

var CacheLastComputedTTL = 7 * 24 * time.Hour
