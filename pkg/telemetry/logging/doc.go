// Package logging provides structured logging for the interpretation engine,
// built on log/slog. It adds level and format parsing from configuration,
// component-scoped child loggers, and extraction of evaluation-scoped context
// fields (interpretation name, batch id) into log attributes.
package logging
