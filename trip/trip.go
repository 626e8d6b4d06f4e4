// Package trip assembles raw trip data from static JSON exports.
// A trip is backed by one-or-more locations files (split for size) and
// exactly one trip-metadata file; both are plain Polarsteps-style exports
// committed alongside the site. No network calls, ever.
package trip

import (
	"errors"

	"github.com/wandermap/traveld/types/travel"
)

// ErrDataIntegrity marks fatal load-time problems: missing files,
// empty location lists, unreadable JSON. The pipeline does not degrade
// gracefully; the data is fixed and under the author's control.
var ErrDataIntegrity = errors.New("trip data integrity")

// RawLocations is one locations-<trip>.json payload.
type RawLocations struct {
	Locations []travel.Location `json:"locations"`
}

// RawStep is one Polarsteps "step" as exported.
type RawStep struct {
	Name        string          `json:"name"`
	DisplayName string          `json:"display_name"`
	StartTime   float64         `json:"start_time"`
	Location    RawStepLocation `json:"location"`
}

type RawStepLocation struct {
	Lat    float64 `json:"lat"`
	Lon    float64 `json:"lon"`
	Name   string  `json:"name"`
	Detail string  `json:"detail"`
}

// RawTrip is one trip-<trip>.json payload.
type RawTrip struct {
	Name      string    `json:"name"`
	StartDate float64   `json:"start_date"`
	EndDate   float64   `json:"end_date"`
	TotalKm   float64   `json:"total_km"`
	AllSteps  []RawStep `json:"all_steps"`
}

// MergeLocations concatenates the location arrays of a split trip.
func MergeLocations(files []RawLocations) RawLocations {
	out := RawLocations{Locations: []travel.Location{}}
	for _, f := range files {
		out.Locations = append(out.Locations, f.Locations...)
	}
	return out
}

// MergeTrips folds split trip metadata: first non-empty name,
// min start_date, max end_date, summed total_km, concatenated steps.
func MergeTrips(files []RawTrip) RawTrip {
	out := RawTrip{AllSteps: []RawStep{}}
	for _, f := range files {
		if out.Name == "" {
			out.Name = f.Name
		}
		if out.StartDate == 0 || (f.StartDate != 0 && f.StartDate < out.StartDate) {
			out.StartDate = f.StartDate
		}
		if f.EndDate > out.EndDate {
			out.EndDate = f.EndDate
		}
		out.TotalKm += f.TotalKm
		out.AllSteps = append(out.AllSteps, f.AllSteps...)
	}
	return out
}
