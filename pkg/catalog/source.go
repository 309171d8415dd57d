package catalog

import (
	"context"
	"log/slog"

	"tellus-hq/tellus/pkg/config"
	"tellus-hq/tellus/pkg/interp/ast"
	"tellus-hq/tellus/pkg/interp/engine"
)

// FileSource serves interpretations from a directory of ruleset YAML files.
// It implements engine.CatalogSource.
type FileSource struct {
	cfg    config.CatalogConfig
	loader *Loader
	logger *slog.Logger
}

// NewFileSource creates a file-backed catalog source.
func NewFileSource(cfg config.CatalogConfig, logger *slog.Logger) *FileSource {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileSource{
		cfg:    cfg,
		loader: NewLoader(logger),
		logger: logger.With("component", "catalog.source"),
	}
}

// Load materializes every ruleset file in the configured directory.
func (s *FileSource) Load(ctx context.Context) ([]*ast.Interpretation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result, err := s.loader.LoadDir(s.cfg.Path)
	if err != nil {
		return nil, err
	}
	return result.Interpretations, nil
}

// Watch emits a debounced event for each ruleset file change. When watching
// is disabled it returns a nil channel, which the engine treats as "no hot
// reload".
func (s *FileSource) Watch(ctx context.Context) (<-chan engine.CatalogEvent, error) {
	if !s.cfg.Watch {
		return nil, nil
	}

	watcher, err := newFileWatcher(s.cfg.Path, s.cfg.DebounceInterval, s.logger)
	if err != nil {
		return nil, err
	}

	events := make(chan engine.CatalogEvent)
	go watcher.run(ctx, events)
	return events, nil
}
