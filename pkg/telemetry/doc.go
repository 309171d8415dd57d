// Package telemetry provides observability for the Tellus interpretation
// engine.
//
// # Components
//
//   - logging: Structured logging built on log/slog
//   - metrics: Prometheus metrics collection
//
// Both components are wired explicitly: the CLI constructs a Logger and a
// metrics registry from configuration and passes them down; no package-level
// state beyond slog's own default logger is involved.
package telemetry
