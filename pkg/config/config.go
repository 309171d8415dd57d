package config

import "time"

// Config is the root Tellus configuration.
type Config struct {
	// Logging configures structured logging.
	Logging LoggingConfig `yaml:"logging"`

	// Metrics configures Prometheus instrumentation.
	Metrics MetricsConfig `yaml:"metrics"`

	// Catalog configures the ruleset catalog source.
	Catalog CatalogConfig `yaml:"catalog"`

	// Engine configures the evaluation engine.
	Engine EngineConfig `yaml:"engine"`

	// Results configures result storage, caching, and retention.
	Results ResultsConfig `yaml:"results"`
}

// LoggingConfig configures structured logging.
type LoggingConfig struct {
	// Level is the minimum log level ("debug", "info", "warn", "error").
	Level string `yaml:"level"`

	// Format is the output format ("json", "text").
	Format string `yaml:"format"`

	// AddSource includes file and line number in log entries.
	AddSource bool `yaml:"add_source"`
}

// MetricsConfig configures Prometheus instrumentation.
type MetricsConfig struct {
	// Enabled turns metric collection on.
	Enabled bool `yaml:"enabled"`

	// ListenAddress is the address the metrics endpoint binds to.
	ListenAddress string `yaml:"listen_address"`

	// Namespace is the metric name prefix.
	Namespace string `yaml:"namespace"`

	// Subsystem is the metric name subsystem segment.
	Subsystem string `yaml:"subsystem"`
}

// CatalogConfig configures the ruleset catalog source.
type CatalogConfig struct {
	// Path is the directory holding ruleset YAML files.
	Path string `yaml:"path"`

	// Watch enables hot reload on ruleset file changes.
	Watch bool `yaml:"watch"`

	// DebounceInterval is the quiet period after a file change before the
	// catalog reloads.
	DebounceInterval time.Duration `yaml:"debounce_interval"`
}

// EngineConfig configures the evaluation engine.
type EngineConfig struct {
	// MaxDepth bounds the recursive descent over a rule tree.
	MaxDepth int `yaml:"max_depth"`

	// Workers is the batch evaluation fan-out width. Zero means one worker
	// per CPU.
	Workers int `yaml:"workers"`

	// BoundedSpline clamps spline interpolation output into [0,1].
	BoundedSpline bool `yaml:"bounded_spline"`
}

// ResultsConfig configures result storage, caching, and retention.
type ResultsConfig struct {
	// Backend selects the store: "memory" or "sqlite".
	Backend string `yaml:"backend"`

	// Driver selects the SQLite driver: "sqlite3" (cgo) or "sqlite"
	// (pure Go).
	Driver string `yaml:"driver"`

	// Path is the SQLite database file path.
	Path string `yaml:"path"`

	// CacheTTL is how long a stored result satisfies a repeated request
	// for the same interpretation and property data. Zero disables the
	// cache.
	CacheTTL time.Duration `yaml:"cache_ttl"`

	// RetentionDays is the maximum record age before pruning. Zero keeps
	// records indefinitely.
	RetentionDays int `yaml:"retention_days"`

	// MaxRecords caps the number of stored records. Zero means no cap.
	MaxRecords int `yaml:"max_records"`

	// PruneSchedule is the cron expression for scheduled pruning, e.g.
	// "0 3 * * *" for daily at 3 AM. Empty disables scheduled pruning.
	PruneSchedule string `yaml:"prune_schedule"`
}
