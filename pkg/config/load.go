package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads configuration from a YAML file at the specified path,
// applies defaults, and validates the result.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// LoadConfigWithEnvOverrides loads configuration from a YAML file and applies
// environment variable overrides. Variables follow the naming convention
// TELLUS_SECTION_FIELD (e.g. TELLUS_CATALOG_PATH) and always take precedence
// over file-based configuration.
//
// The loading sequence is:
//  1. Load YAML from file (applies defaults)
//  2. Apply environment variable overrides
//  3. Re-validate the final configuration
func LoadConfigWithEnvOverrides(path string) (*Config, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after environment overrides: %w", err)
	}

	return cfg, nil
}

// DefaultConfig returns a configuration with all defaults applied, for use
// when no configuration file exists.
func DefaultConfig() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

// applyEnvOverrides applies TELLUS_* environment variable overrides.
func applyEnvOverrides(cfg *Config) {
	if val := os.Getenv("TELLUS_LOGGING_LEVEL"); val != "" {
		cfg.Logging.Level = val
	}
	if val := os.Getenv("TELLUS_LOGGING_FORMAT"); val != "" {
		cfg.Logging.Format = val
	}

	if val := os.Getenv("TELLUS_METRICS_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Metrics.Enabled = b
		}
	}
	if val := os.Getenv("TELLUS_METRICS_LISTEN_ADDRESS"); val != "" {
		cfg.Metrics.ListenAddress = val
	}

	if val := os.Getenv("TELLUS_CATALOG_PATH"); val != "" {
		cfg.Catalog.Path = val
	}
	if val := os.Getenv("TELLUS_CATALOG_WATCH"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Catalog.Watch = b
		}
	}
	if val := os.Getenv("TELLUS_CATALOG_DEBOUNCE_INTERVAL"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Catalog.DebounceInterval = d
		}
	}

	if val := os.Getenv("TELLUS_ENGINE_MAX_DEPTH"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Engine.MaxDepth = i
		}
	}
	if val := os.Getenv("TELLUS_ENGINE_WORKERS"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Engine.Workers = i
		}
	}
	if val := os.Getenv("TELLUS_ENGINE_BOUNDED_SPLINE"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Engine.BoundedSpline = b
		}
	}

	if val := os.Getenv("TELLUS_RESULTS_BACKEND"); val != "" {
		cfg.Results.Backend = val
	}
	if val := os.Getenv("TELLUS_RESULTS_DRIVER"); val != "" {
		cfg.Results.Driver = val
	}
	if val := os.Getenv("TELLUS_RESULTS_PATH"); val != "" {
		cfg.Results.Path = val
	}
	if val := os.Getenv("TELLUS_RESULTS_CACHE_TTL"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Results.CacheTTL = d
		}
	}
	if val := os.Getenv("TELLUS_RESULTS_RETENTION_DAYS"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Results.RetentionDays = i
		}
	}
	if val := os.Getenv("TELLUS_RESULTS_MAX_RECORDS"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Results.MaxRecords = i
		}
	}
	if val := os.Getenv("TELLUS_RESULTS_PRUNE_SCHEDULE"); val != "" {
		cfg.Results.PruneSchedule = val
	}
}
