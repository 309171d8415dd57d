package engine

import (
	"errors"
	"fmt"

	"tellus-hq/tellus/pkg/interp/ast"
)

// Common sentinel errors
var (
	// ErrNoCatalogLoaded indicates the engine has no interpretations loaded.
	ErrNoCatalogLoaded = errors.New("no interpretations loaded")

	// ErrInvalidConfig indicates invalid engine configuration.
	ErrInvalidConfig = errors.New("invalid engine configuration")
)

// InterpretationNotFoundError indicates an evaluation request named an
// interpretation the catalog does not contain. This is a configuration
// defect and surfaces as a hard error, unlike data-level problems.
type InterpretationNotFoundError struct {
	Name string
}

// Error returns the error message.
func (e *InterpretationNotFoundError) Error() string {
	return fmt.Sprintf("interpretation not found: %q", e.Name)
}

// EmptyTreeError indicates an interpretation exists but carries no rule tree.
type EmptyTreeError struct {
	Name string
}

// Error returns the error message.
func (e *EmptyTreeError) Error() string {
	return fmt.Sprintf("interpretation %q has an empty rule tree", e.Name)
}

// ReloadError indicates a catalog reload failure.
type ReloadError struct {
	Cause error
}

// Error returns the error message.
func (e *ReloadError) Error() string {
	return fmt.Sprintf("catalog reload failed: %v", e.Cause)
}

// Unwrap returns the underlying cause.
func (e *ReloadError) Unwrap() error {
	return e.Cause
}

// UnknownOperatorError indicates an operator node carries a kind outside the
// known combinator set. The evaluator logs it and falls back to AND.
type UnknownOperatorError struct {
	Kind ast.OperatorKind
}

// Error returns the error message.
func (e *UnknownOperatorError) Error() string {
	return fmt.Sprintf("unknown operator kind: %q", e.Kind)
}

// UnknownHedgeError indicates a hedge node carries a kind outside the known
// modifier set. The evaluator logs it and yields not rated.
type UnknownHedgeError struct {
	Kind ast.HedgeKind
}

// Error returns the error message.
func (e *UnknownHedgeError) Error() string {
	return fmt.Sprintf("unknown hedge kind: %q", e.Kind)
}
