package engine

import (
	"fmt"
	"runtime"
)

// Config contains evaluation engine configuration.
type Config struct {
	// MaxDepth bounds the recursive descent. A tree deeper than this is
	// treated as malformed: the subtree past the limit rates as not rated
	// with a logged warning. Depth is not otherwise validated, so the guard
	// protects against cyclic or degenerate input.
	MaxDepth int

	// Workers is the batch fan-out width.
	Workers int

	// BoundedSpline clamps spline interpolation output into [0,1].
	BoundedSpline bool
}

// DefaultConfig returns the default engine configuration.
func DefaultConfig() *Config {
	return &Config{
		MaxDepth:      64,
		Workers:       runtime.GOMAXPROCS(0),
		BoundedSpline: true,
	}
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	if c.MaxDepth <= 0 {
		return fmt.Errorf("%w: max depth must be positive, got %d", ErrInvalidConfig, c.MaxDepth)
	}
	if c.Workers <= 0 {
		return fmt.Errorf("%w: workers must be positive, got %d", ErrInvalidConfig, c.Workers)
	}
	return nil
}
