package config

import "time"

// Default values applied to unset configuration fields.
const (
	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"

	DefaultMetricsListenAddress = "127.0.0.1:9190"
	DefaultMetricsNamespace     = "tellus"
	DefaultMetricsSubsystem     = "interp"

	DefaultCatalogPath      = "rulesets"
	DefaultDebounceInterval = 100 * time.Millisecond

	DefaultMaxDepth = 64

	DefaultResultsBackend = "memory"
	DefaultResultsDriver  = "sqlite3"
	DefaultResultsPath    = "data/results.db"
	DefaultCacheTTL       = time.Hour
)

// ApplyDefaults fills unset fields with default values. Booleans keep their
// zero value; BoundedSpline defaults are handled by the engine package itself
// when config is absent.
func ApplyDefaults(cfg *Config) {
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = DefaultLogLevel
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = DefaultLogFormat
	}

	if cfg.Metrics.ListenAddress == "" {
		cfg.Metrics.ListenAddress = DefaultMetricsListenAddress
	}
	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = DefaultMetricsNamespace
	}
	if cfg.Metrics.Subsystem == "" {
		cfg.Metrics.Subsystem = DefaultMetricsSubsystem
	}

	if cfg.Catalog.Path == "" {
		cfg.Catalog.Path = DefaultCatalogPath
	}
	if cfg.Catalog.DebounceInterval <= 0 {
		cfg.Catalog.DebounceInterval = DefaultDebounceInterval
	}

	if cfg.Engine.MaxDepth <= 0 {
		cfg.Engine.MaxDepth = DefaultMaxDepth
	}

	if cfg.Results.Backend == "" {
		cfg.Results.Backend = DefaultResultsBackend
	}
	if cfg.Results.Driver == "" {
		cfg.Results.Driver = DefaultResultsDriver
	}
	if cfg.Results.Path == "" {
		cfg.Results.Path = DefaultResultsPath
	}
	if cfg.Results.CacheTTL < 0 {
		cfg.Results.CacheTTL = DefaultCacheTTL
	}
}
