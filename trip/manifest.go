package trip

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Source names one trip's backing files.
type Source struct {
	Name          string
	LocationFiles []string
	TripFile      string
}

// Manifest is the explicit list of trips and their files.
// It replaces the bundler-reflection directory scan the site used;
// discovery by filename convention is still offered, but the result is
// always a concrete, inspectable manifest.
type Manifest struct {
	Sources []Source
}

const (
	locationsFilePrefix = "locations-"
	tripFilePrefix      = "trip-"
)

// Discover builds a manifest from a directory by filename convention:
// trip-<name>.json declares a trip, locations-<name>*.json files back it.
// Every trip must have at least one locations file.
func Discover(dir string) (*Manifest, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataIntegrity, err)
	}

	var locations []string
	sources := map[string]*Source{}
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		base := strings.TrimSuffix(name, ".json")
		switch {
		case strings.HasPrefix(base, tripFilePrefix):
			tripName := strings.TrimPrefix(base, tripFilePrefix)
			sources[tripName] = &Source{
				Name:     tripName,
				TripFile: filepath.Join(dir, name),
			}
		case strings.HasPrefix(base, locationsFilePrefix):
			locations = append(locations, name)
		}
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("%w: no trip-*.json files in %s", ErrDataIntegrity, dir)
	}

	// Longest trip name wins, so "japan-2" files don't land on "japan".
	names := make([]string, 0, len(sources))
	for n := range sources {
		names = append(names, n)
	}
	sort.Slice(names, func(i, j int) bool { return len(names[i]) > len(names[j]) })

	for _, locFile := range locations {
		base := strings.TrimSuffix(strings.TrimPrefix(locFile, locationsFilePrefix), ".json")
		matched := false
		for _, n := range names {
			if base == n || strings.HasPrefix(base, n+"-") {
				src := sources[n]
				src.LocationFiles = append(src.LocationFiles, filepath.Join(dir, locFile))
				matched = true
				break
			}
		}
		if !matched {
			return nil, fmt.Errorf("%w: locations file %s matches no trip", ErrDataIntegrity, locFile)
		}
	}

	m := &Manifest{}
	for _, n := range names {
		src := sources[n]
		if len(src.LocationFiles) == 0 {
			return nil, fmt.Errorf("%w: trip %q has no locations files", ErrDataIntegrity, n)
		}
		sort.Strings(src.LocationFiles)
		m.Sources = append(m.Sources, *src)
	}
	sort.Slice(m.Sources, func(i, j int) bool { return m.Sources[i].Name < m.Sources[j].Name })
	return m, nil
}

// TripNames lists the manifest's trips in order.
func (m *Manifest) TripNames() []string {
	out := make([]string, len(m.Sources))
	for i, s := range m.Sources {
		out[i] = s.Name
	}
	return out
}
