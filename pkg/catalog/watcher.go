package catalog

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"tellus-hq/tellus/pkg/interp/engine"
)

// fileWatcher watches a ruleset directory and forwards debounced change
// events. Debouncing prevents reload storms while an editor or sync tool
// rewrites files.
type fileWatcher struct {
	watcher  *fsnotify.Watcher
	debounce *Debouncer
	logger   *slog.Logger
}

func newFileWatcher(path string, debounceInterval time.Duration, logger *slog.Logger) (*fileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(path); err != nil {
		watcher.Close()
		return nil, err
	}

	return &fileWatcher{
		watcher:  watcher,
		debounce: NewDebouncer(debounceInterval),
		logger:   logger.With("component", "catalog.watcher"),
	}, nil
}

// run forwards events until the context is cancelled. The output channel is
// closed on return.
func (w *fileWatcher) run(ctx context.Context, events chan<- engine.CatalogEvent) {
	defer close(events)
	defer w.watcher.Close()
	defer w.debounce.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !isRulesetFile(event.Name) {
				continue
			}

			w.logger.Debug("ruleset file event",
				"path", event.Name,
				"op", event.Op.String(),
			)

			catalogEvent := engine.CatalogEvent{
				Type: eventType(event.Op),
				Path: event.Name,
			}
			w.debounce.Trigger(func() {
				select {
				case events <- catalogEvent:
				case <-ctx.Done():
				}
			})

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("ruleset watch error", "error", err)
			select {
			case events <- engine.CatalogEvent{Err: err}:
			case <-ctx.Done():
				return
			}
		}
	}
}

func eventType(op fsnotify.Op) engine.CatalogEventType {
	switch {
	case op.Has(fsnotify.Create):
		return engine.CatalogEventCreated
	case op.Has(fsnotify.Remove), op.Has(fsnotify.Rename):
		return engine.CatalogEventDeleted
	default:
		return engine.CatalogEventModified
	}
}

// Debouncer coalesces bursts of triggers into one callback after a quiet
// interval. Only the last callback of a burst runs.
type Debouncer struct {
	interval time.Duration
	mu       sync.Mutex
	timer    *time.Timer
}

// NewDebouncer creates a debouncer with the given quiet interval.
func NewDebouncer(interval time.Duration) *Debouncer {
	return &Debouncer{interval: interval}
}

// Trigger schedules fn after the quiet interval, replacing any pending
// callback.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.interval, fn)
}

// Stop cancels any pending callback.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
