/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"log"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/wandermap/traveld/daemon/webd"
	"github.com/wandermap/traveld/params"
	"github.com/wandermap/traveld/provider"
	"github.com/wandermap/traveld/state"
)

var optHTTPAddr string
var optDebugInfo bool
var optThreshold float64

// serveCmd starts the web daemon.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve travel data and the debug-tool API over HTTP",
	Run: func(cmd *cobra.Command, args []string) {
		setDefaultSlog(cmd, args)
		slog.Info("serve.Run")

		dataDir := viper.GetString("datadir")
		st, err := state.Open(dataDir)
		if err != nil {
			log.Fatalln(err)
		}
		defer st.Close()

		p := provider.New(filepath.Join(dataDir, params.TripDataSubdir), params.DefaultConfig(), st)
		server := webd.NewWebDaemon(&params.WebDaemonConfig{
			ListenerConfig: params.ListenerConfig{
				Network: "tcp",
				Address: optHTTPAddr,
			},
			DataDir:           dataDir,
			SimplifyThreshold: optThreshold,
			DebugInfo:         optDebugInfo,
		}, p)

		if err := server.Run(); err != nil {
			log.Fatalln(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	defaults := params.DefaultWebDaemonConfig()
	pFlags := serveCmd.PersistentFlags()
	pFlags.StringVar(&optHTTPAddr, "address", defaults.Address, "HTTP address to listen on")
	pFlags.BoolVar(&optDebugInfo, "debug-info", false, "Attach segment telemetry to served data")
	pFlags.Float64Var(&optThreshold, "threshold", defaults.SimplifyThreshold, "Simplification threshold, degrees")
}
