package influxdb

import (
	"log/slog"
	"sync"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/wandermap/traveld/params"
	"github.com/wandermap/traveld/types/travel"
)

// ExportTripSummary posts one point per stop to an InfluxDB Write API,
// plus a per-trip rollup. A no-op unless INFLUXDB_URL is configured.
// The last error encountered is returned.
func ExportTripSummary(data *travel.TravelData) error {
	if params.INFLUXDB_URL == "" {
		slog.Debug("InfluxDB not configured, skipping export")
		return nil
	}

	opts := influxdb2.DefaultOptions()
	opts.SetPrecision(time.Second)
	client := influxdb2.NewClientWithOptions(params.INFLUXDB_URL, params.INFLUXDB_TOKEN, opts)
	writeAPI := client.WriteAPI(params.INFLUXDB_ORG, params.INFLUXDB_BUCKET)

	// The error chan is unbuffered and must be drained or the writer blocks.
	errorsCh := writeAPI.Errors()
	var err error
	wait := sync.WaitGroup{}
	wait.Add(1)
	go func() {
		defer wait.Done()
		for e := range errorsCh {
			if e != nil {
				err = e
			}
		}
	}()

	for _, part := range data.TripParts {
		p := influxdb2.NewPointWithMeasurement("trip").
			SetTime(time.Unix(int64(part.StartDate), 0)).
			AddTag("trip", part.Name).
			AddField("total_km", part.TotalKm).
			AddField("segments", len(part.RouteSegments)).
			AddField("stops", len(part.Stops))
		writeAPI.WritePoint(p)

		for _, stop := range part.Stops {
			p := influxdb2.NewPointWithMeasurement("travelstop").
				SetTime(time.Unix(int64(stop.StartTime), 0)).
				AddTag("trip", part.Name).
				AddTag("name", stop.Name).
				AddField("latitude", stop.Location.Lat).
				AddField("longitude", stop.Location.Lon)
			writeAPI.WritePoint(p)
		}
	}

	writeAPI.Flush()
	client.Close()
	wait.Wait()
	return err
}
