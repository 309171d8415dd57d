package logging

import (
	"context"
)

// Context keys for evaluation-scoped log fields.
type contextKey string

const (
	// InterpretationKey is the context key for interpretation names.
	InterpretationKey contextKey = "interpretation"

	// BatchIDKey is the context key for batch identifiers.
	BatchIDKey contextKey = "batch_id"

	// ResultIDKey is the context key for result identifiers.
	ResultIDKey contextKey = "result_id"
)

// WithInterpretation returns a context carrying an interpretation name.
func WithInterpretation(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, InterpretationKey, name)
}

// WithBatchID returns a context carrying a batch identifier.
func WithBatchID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, BatchIDKey, id)
}

// WithResultID returns a context carrying a result identifier.
func WithResultID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ResultIDKey, id)
}

// extractContextFields collects the known context keys into slog args.
func extractContextFields(ctx context.Context) []any {
	var args []any
	for _, key := range []contextKey{InterpretationKey, BatchIDKey, ResultIDKey} {
		if val, ok := ctx.Value(key).(string); ok && val != "" {
			args = append(args, string(key), val)
		}
	}
	return args
}
