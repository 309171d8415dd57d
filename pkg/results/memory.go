package results

import (
	"context"
	"sort"
	"sync"
	"time"

	"tellus-hq/tellus/pkg/interp/ast"
)

// MemoryStore is an in-memory Store for tests and short-lived runs. Records
// are copied on the way in and out, so callers cannot mutate stored state.
type MemoryStore struct {
	mu      sync.RWMutex
	records []*Record
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Save persists a record.
func (s *MemoryStore) Save(ctx context.Context, record *Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = append(s.records, cloneRecord(record))
	return nil
}

// cloneRecord copies a record including its maps, so stored state and caller
// state cannot alias each other.
func cloneRecord(record *Record) *Record {
	clone := *record
	if record.PropertyValues != nil {
		clone.PropertyValues = make(map[string]ast.PropertyValue, len(record.PropertyValues))
		for name, value := range record.PropertyValues {
			clone.PropertyValues[name] = value
		}
	}
	if record.EvaluationRatings != nil {
		clone.EvaluationRatings = make(map[string]float64, len(record.EvaluationRatings))
		for label, rating := range record.EvaluationRatings {
			clone.EvaluationRatings[label] = rating
		}
	}
	return &clone
}

// FindLatest returns the most recent record for an interpretation and data
// hash, or ErrNotFound.
func (s *MemoryStore) FindLatest(ctx context.Context, interpretation, dataHash string) (*Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var latest *Record
	for _, record := range s.records {
		if record.Interpretation != interpretation || record.DataHash != dataHash {
			continue
		}
		if latest == nil || record.CreatedAt.After(latest.CreatedAt) {
			latest = record
		}
	}
	if latest == nil {
		return nil, ErrNotFound
	}
	return cloneRecord(latest), nil
}

// DeleteOlderThan removes records created before the cutoff.
func (s *MemoryStore) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.records[:0]
	var deleted int64
	for _, record := range s.records {
		if record.CreatedAt.Before(cutoff) {
			deleted++
			continue
		}
		kept = append(kept, record)
	}
	s.records = kept
	return deleted, nil
}

// DeleteExcess keeps only the newest max records.
func (s *MemoryStore) DeleteExcess(ctx context.Context, max int) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if max < 0 || len(s.records) <= max {
		return 0, nil
	}

	sort.Slice(s.records, func(i, j int) bool {
		return s.records[i].CreatedAt.After(s.records[j].CreatedAt)
	})

	deleted := int64(len(s.records) - max)
	s.records = s.records[:max]
	return deleted, nil
}

// Count returns the number of stored records.
func (s *MemoryStore) Count(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.records)), nil
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close() error {
	return nil
}
