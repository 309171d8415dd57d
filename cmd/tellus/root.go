package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"tellus-hq/tellus/pkg/config"
	"tellus-hq/tellus/pkg/telemetry/logging"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "tellus",
	Short: "Tellus - soil interpretation engine",
	Long: `Tellus evaluates soil property data against interpretation rule trees.

Each interpretation is a tree of fuzzy membership curves combined with
operators and hedges. Evaluating a property-data record yields a rating in
[0,1] and an ordinal class (slight, moderate, severe, very severe), with
missing or out-of-domain data degrading to "not rated" instead of failing.

Rulesets are YAML files in a catalog directory and reload on change when
watching is enabled.`,
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
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "config.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// loadConfig loads the configuration file with environment overrides, falling
// back to defaults when the default config file does not exist. It also
// installs the configured logger as the process default.
func loadConfig() (*config.Config, error) {
	var cfg *config.Config
	var err error

	if _, statErr := os.Stat(cfgFile); os.IsNotExist(statErr) && !rootCmd.PersistentFlags().Changed("config") {
		cfg = config.DefaultConfig()
	} else {
		cfg, err = config.LoadConfigWithEnvOverrides(cfgFile)
		if err != nil {
			return nil, err
		}
	}

	if verbose {
		cfg.Logging.Level = "debug"
	}

	logger, err := logging.New(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		AddSource: cfg.Logging.AddSource,
	})
	if err != nil {
		return nil, err
	}
	slog.SetDefault(logger.Slog())

	return cfg, nil
}
