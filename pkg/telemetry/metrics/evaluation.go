package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"tellus-hq/tellus/pkg/config"
)

// EvaluationMetrics tracks metrics related to interpretation evaluation.
//
// Metrics:
//   - tellus_interp_evaluations_total: Total evaluations by interpretation and class
//   - tellus_interp_evaluation_duration_seconds: Evaluation duration
//   - tellus_interp_not_rated_total: Evaluations that produced no rating
//   - tellus_interp_catalog_reloads_total: Catalog reloads
type EvaluationMetrics struct {
	evaluationsTotal   *prometheus.CounterVec
	evaluationDuration *prometheus.HistogramVec
	notRatedTotal      *prometheus.CounterVec
	catalogReloads     prometheus.Counter
}

// NewEvaluationMetrics creates and registers evaluation metrics with the
// provided registry.
func NewEvaluationMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *EvaluationMetrics {
	em := &EvaluationMetrics{
		evaluationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "evaluations_total",
				Help:      "Total number of interpretation evaluations",
			},
			[]string{"interpretation", "class"},
		),

		evaluationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "evaluation_duration_seconds",
				Help:      "Duration of a single interpretation evaluation in seconds",
				// A single tree descent is CPU-bound and fast (< 1ms)
				Buckets: prometheus.ExponentialBuckets(0.000001, 2, 15), // 1µs to 16ms
			},
			[]string{"interpretation"},
		),

		notRatedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "not_rated_total",
				Help:      "Total number of evaluations that produced no rating",
			},
			[]string{"interpretation"},
		),

		catalogReloads: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "catalog_reloads_total",
				Help:      "Total number of catalog reloads",
			},
		),
	}

	registry.MustRegister(
		em.evaluationsTotal,
		em.evaluationDuration,
		em.notRatedTotal,
		em.catalogReloads,
	)

	return em
}

// RecordEvaluation records a completed evaluation.
func (em *EvaluationMetrics) RecordEvaluation(interpretation, class string, duration time.Duration) {
	em.evaluationsTotal.WithLabelValues(interpretation, class).Inc()
	em.evaluationDuration.WithLabelValues(interpretation).Observe(duration.Seconds())
}

// RecordNotRated records an evaluation that produced the not-rated sentinel.
func (em *EvaluationMetrics) RecordNotRated(interpretation string) {
	em.notRatedTotal.WithLabelValues(interpretation).Inc()
}

// RecordReload records a catalog reload.
func (em *EvaluationMetrics) RecordReload() {
	em.catalogReloads.Inc()
}
