/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/wandermap/traveld/params"
)

var optDataDir string
var optVerbose bool

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "traveld",
	Short: "Travel route processing daemon",
	Long: `traveld turns raw Polarsteps-style trip exports into
mode-tagged, simplified route segments for the travel map,
and serves them (plus the debug-tool API) over HTTP.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	pFlags := rootCmd.PersistentFlags()
	pFlags.StringVar(&optDataDir, "datadir", params.DefaultDatadirRoot, "Root data directory")
	pFlags.BoolVarP(&optVerbose, "verbose", "v", false, "Debug logging")

	viper.SetEnvPrefix("TRAVELD")
	viper.AutomaticEnv()
	_ = viper.BindPFlag("datadir", pFlags.Lookup("datadir"))
	_ = viper.BindPFlag("verbose", pFlags.Lookup("verbose"))
}

func setDefaultSlog(cmd *cobra.Command, args []string) {
	level := slog.LevelInfo
	if viper.GetBool("verbose") {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})))
}
