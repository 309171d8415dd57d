// Package metrics provides Prometheus instrumentation for the interpretation
// engine: evaluation counts and latency, not-rated outcomes, catalog reloads,
// and result-cache effectiveness, plus an HTTP handler for scraping.
package metrics
