package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

// TestDefaultConfig tests the zero-file defaults
func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Logging.Level != "info" || cfg.Logging.Format != "json" {
		t.Errorf("logging defaults = %q/%q", cfg.Logging.Level, cfg.Logging.Format)
	}
	if cfg.Catalog.Path != "rulesets" {
		t.Errorf("catalog path = %q", cfg.Catalog.Path)
	}
	if cfg.Catalog.DebounceInterval != 100*time.Millisecond {
		t.Errorf("debounce = %v", cfg.Catalog.DebounceInterval)
	}
	if cfg.Engine.MaxDepth != 64 {
		t.Errorf("max depth = %d", cfg.Engine.MaxDepth)
	}
	if cfg.Results.Backend != "memory" || cfg.Results.Driver != "sqlite3" {
		t.Errorf("results defaults = %q/%q", cfg.Results.Backend, cfg.Results.Driver)
	}

	if err := Validate(cfg); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

// TestLoadConfig tests file loading with defaults filled in
func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
logging:
  level: "debug"

catalog:
  path: "my-rulesets"
  watch: true

engine:
  workers: 8
  bounded_spline: true

results:
  backend: "sqlite"
  path: "out/results.db"
  cache_ttl: 30m
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("level = %q", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("format default not applied: %q", cfg.Logging.Format)
	}
	if cfg.Catalog.Path != "my-rulesets" || !cfg.Catalog.Watch {
		t.Errorf("catalog = %+v", cfg.Catalog)
	}
	if cfg.Engine.Workers != 8 || !cfg.Engine.BoundedSpline {
		t.Errorf("engine = %+v", cfg.Engine)
	}
	if cfg.Results.CacheTTL != 30*time.Minute {
		t.Errorf("cache ttl = %v", cfg.Results.CacheTTL)
	}
}

// TestLoadConfig_Invalid tests validation failures
func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "unknown log level",
			content: "logging:\n  level: \"loud\"\n",
		},
		{
			name:    "unknown results backend",
			content: "results:\n  backend: \"postgres\"\n",
		},
		{
			name:    "negative workers",
			content: "engine:\n  workers: -2\n",
		},
		{
			name:    "bad cron expression",
			content: "results:\n  prune_schedule: \"every day at noon\"\n",
		},
		{
			name:    "unparsable yaml",
			content: "logging: [",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.content)
			if _, err := LoadConfig(path); err == nil {
				t.Error("expected error")
			}
		})
	}
}

// TestLoadConfig_MissingFile tests the unreadable-file error
func TestLoadConfig_MissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

// TestLoadConfigWithEnvOverrides tests the TELLUS_* precedence
func TestLoadConfigWithEnvOverrides(t *testing.T) {
	path := writeConfig(t, `
catalog:
  path: "from-file"

results:
  retention_days: 30
`)

	t.Setenv("TELLUS_CATALOG_PATH", "from-env")
	t.Setenv("TELLUS_RESULTS_RETENTION_DAYS", "7")
	t.Setenv("TELLUS_ENGINE_WORKERS", "3")

	cfg, err := LoadConfigWithEnvOverrides(path)
	if err != nil {
		t.Fatalf("LoadConfigWithEnvOverrides failed: %v", err)
	}

	if cfg.Catalog.Path != "from-env" {
		t.Errorf("catalog path = %q, want env override", cfg.Catalog.Path)
	}
	if cfg.Results.RetentionDays != 7 {
		t.Errorf("retention days = %d, want 7", cfg.Results.RetentionDays)
	}
	if cfg.Engine.Workers != 3 {
		t.Errorf("workers = %d, want 3", cfg.Engine.Workers)
	}
}

// TestLoadConfigWithEnvOverrides_InvalidResult tests re-validation after
// overrides
func TestLoadConfigWithEnvOverrides_InvalidResult(t *testing.T) {
	path := writeConfig(t, "")

	t.Setenv("TELLUS_RESULTS_BACKEND", "postgres")
	if _, err := LoadConfigWithEnvOverrides(path); err == nil {
		t.Fatal("expected validation error after override")
	}
}
