package params

import (
	"os"
	"path/filepath"

	homedir "github.com/mitchellh/go-homedir"
)

var DefaultDatadirRoot = func() string {
	home, err := homedir.Dir()
	if err != nil {
		panic(err)
	}
	return filepath.Join(home, ".traveld")
}()

// TripDataSubdir holds the raw Polarsteps-style exports:
// locations-<trip>*.json and trip-<trip>.json pairs,
// plus one filter-config.json.
const TripDataSubdir = "trip-data"

const FilterConfigFileName = "filter-config.json"

const StateDBName = "state.db"

var StateBucket = []byte("state")

var (
	StateKey_FilterConfig = []byte("filterconfig")
	StateKey_TravelData   = []byte("traveldata")
)

var (
	INFLUXDB_URL    = os.Getenv("INFLUXDB_URL")
	INFLUXDB_TOKEN  = os.Getenv("INFLUXDB_TOKEN")
	INFLUXDB_ORG    = os.Getenv("INFLUXDB_ORG")
	INFLUXDB_BUCKET = os.Getenv("INFLUXDB_BUCKET")
)
