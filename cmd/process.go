/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"encoding/json"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/wandermap/traveld/metrics/influxdb"
	"github.com/wandermap/traveld/params"
	"github.com/wandermap/traveld/provider"
)

var optOutFile string
var optProcessDebugInfo bool
var optProcessThreshold float64
var optExportInflux bool

// processCmd runs the pipeline once and writes the derived travels.json,
// the artifact the static site consumes.
var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Process raw trip data into travels.json",
	Run: func(cmd *cobra.Command, args []string) {
		setDefaultSlog(cmd, args)
		slog.Info("process.Run")

		dataDir := viper.GetString("datadir")
		p := provider.New(filepath.Join(dataDir, params.TripDataSubdir), params.DefaultConfig(), nil)

		data, _, err := p.LoadTravelData(context.Background(), provider.Options{
			SimplifyThreshold: optProcessThreshold,
			DebugInfo:         optProcessDebugInfo,
		})
		if err != nil {
			log.Fatalln(err)
		}

		points := 0
		for _, part := range data.TripParts {
			for _, seg := range part.RouteSegments {
				points += len(seg.Points)
			}
		}
		slog.Info("Processed trips",
			"trips", len(data.TripParts),
			"points", humanize.Comma(int64(points)),
			"km", humanize.CommafWithDigits(data.TotalKm, 1))

		out := os.Stdout
		if optOutFile != "-" {
			f, err := os.Create(optOutFile)
			if err != nil {
				log.Fatalln(err)
			}
			defer f.Close()
			out = f
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(data); err != nil {
			log.Fatalln(err)
		}

		if optExportInflux {
			if err := influxdb.ExportTripSummary(data); err != nil {
				log.Fatalln(err)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(processCmd)

	pFlags := processCmd.PersistentFlags()
	pFlags.StringVar(&optOutFile, "out", "-", "Output file; - for stdout")
	pFlags.BoolVar(&optProcessDebugInfo, "debug-info", false, "Attach segment telemetry")
	pFlags.Float64Var(&optProcessThreshold, "threshold", params.DefaultSimplifyConfig.MinDistance, "Simplification threshold, degrees")
	pFlags.BoolVar(&optExportInflux, "influxdb", false, "Export trip summary to InfluxDB (env-configured)")
}
