package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"arbiter-hq/arbiter/pkg/config"
	"arbiter-hq/arbiter/pkg/telemetry/logging"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "arbiter",
	Short: "Arbiter - deterministic, auditable rule evaluation",
	Long: `Arbiter evaluates decision contexts against declarative YAML rulesets,
combines evaluator proposals with a configurable scoring strategy, and
produces decisions with full explainability and a deterministic audit hash
that makes every decision replayable and verifiable.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// loadConfig loads the configured file, or defaults when no file is given.
func loadConfig() (*config.Config, error) {
	if cfgFile == "" {
		return config.Default(), nil
	}
	return config.Load(cfgFile)
}

// buildLogger builds the process logger from config plus the verbose flag.
func buildLogger(cfg *config.Config) (*slog.Logger, error) {
	level := cfg.Telemetry.LogLevel
	if verbose {
		level = "debug"
	}
	return logging.New(logging.Config{
		Level:  level,
		Format: cfg.Telemetry.LogFormat,
		Writer: os.Stderr,
	})
}
