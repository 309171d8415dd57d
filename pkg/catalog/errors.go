package catalog

import "fmt"

// LoadError indicates a ruleset file could not be read or parsed.
type LoadError struct {
	Path  string
	Cause error
}

// Error returns the error message.
func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load ruleset %q: %v", e.Path, e.Cause)
}

// Unwrap returns the underlying cause.
func (e *LoadError) Unwrap() error {
	return e.Cause
}

// DuplicateInterpretationError indicates two ruleset files define the same
// interpretation name.
type DuplicateInterpretationError struct {
	Name  string
	Path  string
	First string
}

// Error returns the error message.
func (e *DuplicateInterpretationError) Error() string {
	return fmt.Sprintf("interpretation %q in %q already defined in %q", e.Name, e.Path, e.First)
}
