package config

import (
	"fmt"

	"github.com/robfig/cron/v3"
)

// Validate checks the configuration for consistency. It is called after
// defaults (and any environment overrides) are applied, so every field is
// expected to hold its final value.
func Validate(cfg *Config) error {
	switch cfg.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level: unknown level %q", cfg.Logging.Level)
	}

	switch cfg.Logging.Format {
	case "json", "text":
	default:
		return fmt.Errorf("logging.format: unknown format %q", cfg.Logging.Format)
	}

	if cfg.Catalog.Path == "" {
		return fmt.Errorf("catalog.path: must not be empty")
	}
	if cfg.Catalog.DebounceInterval <= 0 {
		return fmt.Errorf("catalog.debounce_interval: must be positive, got %v", cfg.Catalog.DebounceInterval)
	}

	if cfg.Engine.MaxDepth <= 0 {
		return fmt.Errorf("engine.max_depth: must be positive, got %d", cfg.Engine.MaxDepth)
	}
	if cfg.Engine.Workers < 0 {
		return fmt.Errorf("engine.workers: must not be negative, got %d", cfg.Engine.Workers)
	}

	switch cfg.Results.Backend {
	case "memory", "sqlite":
	default:
		return fmt.Errorf("results.backend: unknown backend %q", cfg.Results.Backend)
	}

	switch cfg.Results.Driver {
	case "sqlite3", "sqlite":
	default:
		return fmt.Errorf("results.driver: unknown driver %q", cfg.Results.Driver)
	}

	if cfg.Results.Backend == "sqlite" && cfg.Results.Path == "" {
		return fmt.Errorf("results.path: must not be empty for the sqlite backend")
	}
	if cfg.Results.RetentionDays < 0 {
		return fmt.Errorf("results.retention_days: must not be negative, got %d", cfg.Results.RetentionDays)
	}
	if cfg.Results.MaxRecords < 0 {
		return fmt.Errorf("results.max_records: must not be negative, got %d", cfg.Results.MaxRecords)
	}

	if cfg.Results.PruneSchedule != "" {
		if _, err := cron.ParseStandard(cfg.Results.PruneSchedule); err != nil {
			return fmt.Errorf("results.prune_schedule: invalid cron expression %q: %w", cfg.Results.PruneSchedule, err)
		}
	}

	return nil
}
