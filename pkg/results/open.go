package results

import (
	"fmt"

	"tellus-hq/tellus/pkg/config"
)

// OpenStore creates the store named by the configuration backend.
func OpenStore(cfg config.ResultsConfig) (Store, error) {
	switch cfg.Backend {
	case "memory":
		return NewMemoryStore(), nil
	case "sqlite":
		return NewSQLiteStore(cfg.Driver, cfg.Path)
	default:
		return nil, fmt.Errorf("unknown results backend %q", cfg.Backend)
	}
}
