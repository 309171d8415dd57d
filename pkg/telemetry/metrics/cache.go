package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"tellus-hq/tellus/pkg/config"
)

// CacheMetrics tracks result-cache effectiveness.
//
// Metrics:
//   - tellus_interp_cache_hits_total: Result cache hits
//   - tellus_interp_cache_misses_total: Result cache misses
//   - tellus_interp_results_pruned_total: Result records removed by retention
type CacheMetrics struct {
	hitsTotal   prometheus.Counter
	missesTotal prometheus.Counter
	prunedTotal prometheus.Counter
}

// NewCacheMetrics creates and registers cache metrics with the provided
// registry.
func NewCacheMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *CacheMetrics {
	cm := &CacheMetrics{
		hitsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "cache_hits_total",
			Help:      "Total number of result cache hits",
		}),

		missesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "cache_misses_total",
			Help:      "Total number of result cache misses",
		}),

		prunedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "results_pruned_total",
			Help:      "Total number of result records removed by retention",
		}),
	}

	registry.MustRegister(cm.hitsTotal, cm.missesTotal, cm.prunedTotal)
	return cm
}

// RecordHit records a result cache hit.
func (cm *CacheMetrics) RecordHit() {
	cm.hitsTotal.Inc()
}

// RecordMiss records a result cache miss.
func (cm *CacheMetrics) RecordMiss() {
	cm.missesTotal.Inc()
}

// RecordPruned records result records removed by retention.
func (cm *CacheMetrics) RecordPruned(count int64) {
	cm.prunedTotal.Add(float64(count))
}
