package results

import (
	"context"
	"errors"
	"time"

	"tellus-hq/tellus/pkg/interp/ast"
	"tellus-hq/tellus/pkg/interp/engine"
	"tellus-hq/tellus/pkg/telemetry/metrics"
)

// Cache serves recent interpretation results keyed by the canonical hash of
// the property data they were computed from. A record counts as a hit only
// while it is younger than the TTL; a TTL of zero disables lookups and turns
// the cache into a write-through recorder.
type Cache struct {
	store   Store
	ttl     time.Duration
	metrics *metrics.CacheMetrics
	now     func() time.Time
}

// NewCache wraps a store with TTL semantics. The metrics argument may be nil.
func NewCache(store Store, ttl time.Duration, m *metrics.CacheMetrics) *Cache {
	return &Cache{
		store:   store,
		ttl:     ttl,
		metrics: m,
		now:     time.Now,
	}
}

// Get returns a cached result for the interpretation and data, or nil when no
// fresh record exists.
func (c *Cache) Get(ctx context.Context, interpretation string, data ast.PropertyData) (*engine.InterpretationResult, error) {
	if c.ttl <= 0 {
		return nil, nil
	}

	hash := HashPropertyData(interpretation, data)
	record, err := c.store.FindLatest(ctx, interpretation, hash)
	if errors.Is(err, ErrNotFound) {
		c.recordMiss()
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if c.now().Sub(record.CreatedAt) > c.ttl {
		c.recordMiss()
		return nil, nil
	}

	c.recordHit()
	return record.Result(), nil
}

// Put persists a result for later lookups.
func (c *Cache) Put(ctx context.Context, result *engine.InterpretationResult, data ast.PropertyData) error {
	hash := HashPropertyData(result.Interpretation, data)
	return c.store.Save(ctx, NewRecord(result, hash))
}

func (c *Cache) recordHit() {
	if c.metrics != nil {
		c.metrics.RecordHit()
	}
}

func (c *Cache) recordMiss() {
	if c.metrics != nil {
		c.metrics.RecordMiss()
	}
}
