package main

import (
	"errors"
	"os"

	"cp-valuation/internal/config"
	"cp-valuation/internal/logger"

	"github.com/spf13/cobra"
)

var errMissingConfig = errors.New("--config is required")

var (
	cfgPath  string
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:   "cli",
	Short: "Coincident-peak cost injection and attribution",
	Long: `Coincident-peak (CP) value stream tooling.

Examples:
  cli parse "2025-06-23:18,2025-06-24:18"
  cli calendar 2025 pjm
  cli objective --config examples/config.yaml
  cli report --config examples/config.yaml --results results/timeseries_results.csv --out results/cp`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "Path to YAML config")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Override log level (debug|info|warn|error)")
}

// loadConfig loads --config and builds the logger it describes.
func loadConfig() (*config.Config, *logger.Logger, error) {
	if cfgPath == "" {
		return nil, nil, errMissingConfig
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, nil, err
	}
	level := cfg.LogLevel
	if logLevel != "" {
		level = logLevel
	}
	format := cfg.LogFormat
	if format == "" {
		format = "console"
	}
	return cfg, logger.New(level, format, os.Stderr), nil
}
