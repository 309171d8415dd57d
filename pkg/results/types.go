package results

import (
	"time"

	"tellus-hq/tellus/pkg/interp/ast"
	"tellus-hq/tellus/pkg/interp/engine"
)

// Record is one persisted interpretation result.
type Record struct {
	// ID is the evaluation's unique id.
	ID string

	// Interpretation is the interpretation display name.
	Interpretation string

	// DataHash is the canonical hash of the property data evaluated.
	DataHash string

	// Rating is the final rating; the not-rated sentinel persists as NULL.
	Rating float64

	// Class is the ordinal rating class.
	Class string

	// PropertyValues maps property name to the value used.
	PropertyValues map[string]ast.PropertyValue

	// EvaluationRatings maps sub-evaluation label to its rating.
	EvaluationRatings map[string]float64

	// CreatedAt is the evaluation time (UTC).
	CreatedAt time.Time
}

// NewRecord builds a record from an interpretation result and the canonical
// hash of the data it was evaluated against.
func NewRecord(result *engine.InterpretationResult, dataHash string) *Record {
	return &Record{
		ID:                result.ID,
		Interpretation:    result.Interpretation,
		DataHash:          dataHash,
		Rating:            result.Rating,
		Class:             string(result.Class),
		PropertyValues:    result.PropertyValues,
		EvaluationRatings: result.EvaluationRatings,
		CreatedAt:         result.Timestamp,
	}
}

// Result converts the record back into an interpretation result.
func (r *Record) Result() *engine.InterpretationResult {
	return &engine.InterpretationResult{
		ID:                r.ID,
		Interpretation:    r.Interpretation,
		Rating:            r.Rating,
		Class:             engine.RatingClass(r.Class),
		PropertyValues:    r.PropertyValues,
		EvaluationRatings: r.EvaluationRatings,
		Timestamp:         r.CreatedAt,
	}
}
