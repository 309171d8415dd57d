package main

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"

	"tellus-hq/tellus/pkg/config"
	"tellus-hq/tellus/pkg/telemetry/metrics"
)

// startMetrics serves a metrics endpoint for the duration of the run when
// metrics are enabled. The registry is nil and the stop function a no-op
// when they are not.
func startMetrics(cfg *config.Config) (*prometheus.Registry, func()) {
	if !cfg.Metrics.Enabled {
		return nil, func() {}
	}

	registry := prometheus.NewRegistry()
	server := &http.Server{
		Addr:    cfg.Metrics.ListenAddress,
		Handler: metrics.Handler(registry),
	}
	go server.ListenAndServe()
	return registry, func() { server.Close() }
}
