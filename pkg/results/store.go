package results

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrNotFound indicates no record matched the lookup.
var ErrNotFound = errors.New("result not found")

// Store persists interpretation result records.
type Store interface {
	// Save persists a record.
	Save(ctx context.Context, record *Record) error

	// FindLatest returns the most recent record for an interpretation and
	// data hash, or ErrNotFound.
	FindLatest(ctx context.Context, interpretation, dataHash string) (*Record, error)

	// DeleteOlderThan removes records created before the cutoff and
	// returns how many were removed.
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)

	// DeleteExcess keeps only the newest max records and returns how many
	// were removed.
	DeleteExcess(ctx context.Context, max int) (int64, error)

	// Count returns the number of stored records.
	Count(ctx context.Context) (int64, error)

	// Close releases store resources.
	Close() error
}

// StorageError wraps a backend failure with its operation.
type StorageError struct {
	Backend   string
	Operation string
	Cause     error
}

// Error returns the error message.
func (e *StorageError) Error() string {
	return fmt.Sprintf("%s storage: %s: %v", e.Backend, e.Operation, e.Cause)
}

// Unwrap returns the underlying cause.
func (e *StorageError) Unwrap() error {
	return e.Cause
}
