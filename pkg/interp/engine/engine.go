package engine

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"tellus-hq/tellus/pkg/interp/ast"
	"tellus-hq/tellus/pkg/telemetry/metrics"
)

// CatalogSource provides materialized interpretations to the engine.
type CatalogSource interface {
	// Load loads all interpretations from the source.
	Load(ctx context.Context) ([]*ast.Interpretation, error)

	// Watch watches for catalog changes and sends events on the returned
	// channel. The channel is closed when the context is cancelled.
	Watch(ctx context.Context) (<-chan CatalogEvent, error)
}

// CatalogEvent represents a catalog change event.
type CatalogEvent struct {
	// Type is the event type ("created", "modified", "deleted").
	Type CatalogEventType

	// Path is the file path that changed.
	Path string

	// Err is any error that occurred while processing the event.
	Err error
}

// CatalogEventType represents the type of catalog change event.
type CatalogEventType string

const (
	CatalogEventCreated  CatalogEventType = "created"
	CatalogEventModified CatalogEventType = "modified"
	CatalogEventDeleted  CatalogEventType = "deleted"
)

// Engine serves named interpretations: it holds the materialized catalog
// behind a read lock, evaluates property-data records against it, and swaps
// the catalog atomically on reload. There is no process-wide instance;
// callers construct an Engine per catalog and pass it explicitly.
type Engine struct {
	// interps maps interpretation name to its materialized bundle.
	interps map[string]*ast.Interpretation

	// mu protects interps for concurrent evaluation and reload.
	mu sync.RWMutex

	evaluator *Evaluator
	config    *Config
	logger    *slog.Logger
	source    CatalogSource
	metrics   *metrics.EvaluationMetrics

	stopCh      chan struct{}
	watchCancel context.CancelFunc
	wg          sync.WaitGroup
}

// New creates an engine, loads the initial catalog from the source, and
// starts watching for catalog changes.
func New(config *Config, source CatalogSource, logger *slog.Logger) (*Engine, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if source == nil {
		return nil, fmt.Errorf("catalog source cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	watchCtx, watchCancel := context.WithCancel(context.Background())
	e := &Engine{
		config:      config,
		logger:      logger.With("component", "interp.engine"),
		source:      source,
		evaluator:   NewEvaluator(config, logger),
		stopCh:      make(chan struct{}),
		watchCancel: watchCancel,
	}

	if err := e.Reload(context.Background()); err != nil {
		watchCancel()
		return nil, err
	}

	e.startWatching(watchCtx)
	return e, nil
}

// SetMetrics attaches evaluation metrics. Safe to call before serving
// evaluations; a nil engine metrics field simply records nothing.
func (e *Engine) SetMetrics(m *metrics.EvaluationMetrics) {
	e.metrics = m
}

// Evaluate evaluates one property-data record against a named
// interpretation. A request for an unknown interpretation or an empty tree
// fails outright; everything else succeeds with a result whose rating may be
// the not-rated sentinel.
func (e *Engine) Evaluate(ctx context.Context, name string, data ast.PropertyData) (*InterpretationResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	interp, err := e.lookup(name)
	if err != nil {
		return nil, err
	}

	return e.evaluateRecord(interp, data)
}

// evaluateRecord runs the evaluator and classifier for one record.
func (e *Engine) evaluateRecord(interp *ast.Interpretation, data ast.PropertyData) (*InterpretationResult, error) {
	start := time.Now()

	evalCtx := NewEvaluationContext(interp, data)
	tree, err := e.evaluator.EvaluateTree(interp.Root, evalCtx)
	if err != nil {
		return nil, err
	}

	class := ClassifyRating(tree.Rating, interp.Name)
	result := &InterpretationResult{
		ID:                uuid.NewString(),
		Interpretation:    interp.Name,
		Rating:            tree.Rating,
		Class:             class,
		PropertyValues:    tree.PropertyValues,
		EvaluationRatings: tree.EvaluationRatings,
		Timestamp:         time.Now().UTC(),
	}

	if e.metrics != nil {
		e.metrics.RecordEvaluation(interp.Name, string(class), time.Since(start))
		if IsNotRated(tree.Rating) {
			e.metrics.RecordNotRated(interp.Name)
		}
	}

	e.logger.Debug("interpretation evaluated",
		"interpretation", interp.Name,
		"class", class,
		"duration", time.Since(start),
	)

	return result, nil
}

// lookup resolves an interpretation by name and rejects empty trees. An
// empty catalog is distinguished from a bad name so operators can tell a typo
// from a misconfigured catalog directory.
func (e *Engine) lookup(name string) (*ast.Interpretation, error) {
	e.mu.RLock()
	interp, ok := e.interps[name]
	empty := len(e.interps) == 0
	e.mu.RUnlock()

	if empty {
		return nil, ErrNoCatalogLoaded
	}
	if !ok {
		return nil, &InterpretationNotFoundError{Name: name}
	}
	if interp.Root == nil {
		return nil, &EmptyTreeError{Name: name}
	}
	return interp, nil
}

// Interpretations returns the loaded interpretation names.
func (e *Engine) Interpretations() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()

	names := make([]string, 0, len(e.interps))
	for name := range e.interps {
		names = append(names, name)
	}
	return names
}

// Reload loads the catalog from the source and swaps it in atomically.
// Running evaluations keep the snapshot they started with.
func (e *Engine) Reload(ctx context.Context) error {
	interps, err := e.source.Load(ctx)
	if err != nil {
		return &ReloadError{Cause: err}
	}

	byName := make(map[string]*ast.Interpretation, len(interps))
	for _, interp := range interps {
		byName[interp.Name] = interp
	}

	e.mu.Lock()
	e.interps = byName
	e.mu.Unlock()

	if e.metrics != nil {
		e.metrics.RecordReload()
	}

	e.logger.Info("catalog loaded",
		"interpretation_count", len(byName),
	)
	return nil
}

// startWatching subscribes to catalog change events and reloads on each. The
// context is cancelled by Close, which tears down the source's watcher.
func (e *Engine) startWatching(ctx context.Context) {
	e.wg.Add(1)
	go func() {
		defer e.wg.Done()

		eventCh, err := e.source.Watch(ctx)
		if err != nil {
			e.logger.Error("failed to start catalog watcher", "error", err)
			return
		}
		if eventCh == nil {
			return
		}

		for {
			select {
			case <-e.stopCh:
				return
			case event, ok := <-eventCh:
				if !ok {
					return
				}
				e.handleCatalogEvent(event)
			}
		}
	}()
}

func (e *Engine) handleCatalogEvent(event CatalogEvent) {
	if event.Err != nil {
		e.logger.Error("catalog watch error", "error", event.Err, "path", event.Path)
		return
	}

	e.logger.Info("catalog changed",
		"type", event.Type,
		"path", event.Path,
	)

	if err := e.Reload(context.Background()); err != nil {
		e.logger.Error("failed to reload catalog after change",
			"error", err,
			"path", event.Path,
		)
	}
}

// Close cancels the watch context, which shuts down the source's watcher,
// and waits for the event goroutine to drain.
func (e *Engine) Close() error {
	e.watchCancel()
	close(e.stopCh)
	e.wg.Wait()
	return nil
}
