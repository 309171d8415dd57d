package engine

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"tellus-hq/tellus/pkg/interp/ast"
)

// EvaluateBatch evaluates one interpretation against many property-data
// records. Records are independent, so the batch fans out across a bounded
// worker pool with no synchronization beyond read-only sharing of the tree
// and lookup tables; results are identical to sequential evaluation and keep
// the input order.
func (e *Engine) EvaluateBatch(ctx context.Context, name string, records []ast.PropertyData) ([]*InterpretationResult, error) {
	return e.EvaluateBatchProgress(ctx, name, records, nil)
}

// EvaluateBatchProgress is EvaluateBatch with per-record completion
// reporting: after each record finishes, onRecord receives the running
// completion count. Workers call it concurrently, so onRecord must be safe
// for concurrent use. A nil onRecord reports nothing.
func (e *Engine) EvaluateBatchProgress(ctx context.Context, name string, records []ast.PropertyData, onRecord func(completed int64)) ([]*InterpretationResult, error) {
	interp, err := e.lookup(name)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	results := make([]*InterpretationResult, len(records))

	workers := e.config.Workers
	if workers > len(records) {
		workers = len(records)
	}
	if workers < 1 {
		workers = 1
	}

	var completed int64
	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				// evaluateRecord only errors on an empty tree, which
				// lookup already rejected.
				results[idx], _ = e.evaluateRecord(interp, records[idx])
				if onRecord != nil {
					onRecord(atomic.AddInt64(&completed, 1))
				}
			}
		}()
	}

	var cancelled error
dispatch:
	for idx := range records {
		select {
		case <-ctx.Done():
			cancelled = ctx.Err()
			break dispatch
		case jobs <- idx:
		}
	}
	close(jobs)
	wg.Wait()

	if cancelled != nil {
		return nil, cancelled
	}

	e.logger.Info("batch evaluated",
		"interpretation", name,
		"records", len(records),
		"workers", workers,
		"duration", time.Since(start),
	)
	return results, nil
}
