package results

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"tellus-hq/tellus/pkg/config"
	"tellus-hq/tellus/pkg/telemetry/metrics"
)

// Pruner enforces retention limits on stored result records.
type Pruner struct {
	store   Store
	cfg     config.ResultsConfig
	logger  *slog.Logger
	metrics *metrics.CacheMetrics
}

// NewPruner creates a pruner over a store. The metrics argument may be nil.
func NewPruner(store Store, cfg config.ResultsConfig, m *metrics.CacheMetrics) *Pruner {
	return &Pruner{
		store:   store,
		cfg:     cfg,
		logger:  slog.Default().With("component", "results.retention"),
		metrics: m,
	}
}

// Prune deletes records past the retention period, then trims the store to
// the maximum record count. Either limit set to zero skips its phase.
// Returns the total number of records deleted.
func (p *Pruner) Prune(ctx context.Context) (int64, error) {
	var totalDeleted int64

	if p.cfg.RetentionDays > 0 {
		cutoff := time.Now().UTC().AddDate(0, 0, -p.cfg.RetentionDays)
		deleted, err := p.store.DeleteOlderThan(ctx, cutoff)
		if err != nil {
			return totalDeleted, fmt.Errorf("prune by age failed: %w", err)
		}
		totalDeleted += deleted
		if deleted > 0 {
			p.logger.Info("pruned records by age",
				"deleted_count", deleted,
				"retention_days", p.cfg.RetentionDays,
			)
		}
	}

	if p.cfg.MaxRecords > 0 {
		deleted, err := p.store.DeleteExcess(ctx, p.cfg.MaxRecords)
		if err != nil {
			return totalDeleted, fmt.Errorf("prune by count failed: %w", err)
		}
		totalDeleted += deleted
		if deleted > 0 {
			p.logger.Info("pruned records by count",
				"deleted_count", deleted,
				"max_records", p.cfg.MaxRecords,
			)
		}
	}

	if p.metrics != nil && totalDeleted > 0 {
		p.metrics.RecordPruned(totalDeleted)
	}
	return totalDeleted, nil
}
