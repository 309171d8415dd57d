package engine

import (
	"encoding/json"
	"time"

	"tellus-hq/tellus/pkg/interp/ast"
)

// EvaluationContext is the immutable bundle a single evaluation runs against:
// the per-record property data plus the interpretation's lookup tables. The
// evaluator only reads it.
type EvaluationContext struct {
	// Data is the property-value record under evaluation.
	Data ast.PropertyData

	// Evaluations maps reference id to evaluation definition.
	Evaluations map[int]*ast.EvaluationDefinition

	// Properties maps property name to property definition.
	Properties map[string]*ast.PropertyDefinition
}

// NewEvaluationContext builds an evaluation context for one property-data
// record against an interpretation's lookup tables.
func NewEvaluationContext(interp *ast.Interpretation, data ast.PropertyData) *EvaluationContext {
	return &EvaluationContext{
		Data:        data,
		Evaluations: interp.Evaluations,
		Properties:  interp.Properties,
	}
}

// TreeResult is the raw outcome of evaluating one rule tree: the root rating
// plus the side-channel maps collected during traversal.
type TreeResult struct {
	// Rating is the root's fuzzy rating, or the not-rated sentinel.
	Rating float64

	// PropertyValues records the property values actually consulted.
	PropertyValues map[string]ast.PropertyValue

	// EvaluationRatings records sub-evaluation ratings keyed by display
	// label and by numeric reference id.
	EvaluationRatings map[string]float64
}

// InterpretationResult is the final product returned to callers: the
// classified rating with its provenance maps.
type InterpretationResult struct {
	// ID uniquely identifies this evaluation.
	ID string

	// Interpretation is the interpretation display name.
	Interpretation string

	// Rating is the final rating in [0,1], or the not-rated sentinel.
	Rating float64

	// Class is the ordinal rating class.
	Class RatingClass

	// PropertyValues maps property name to the value used.
	PropertyValues map[string]ast.PropertyValue

	// EvaluationRatings maps sub-evaluation label to its rating.
	EvaluationRatings map[string]float64

	// Timestamp is the evaluation time (UTC).
	Timestamp time.Time
}

// interpretationResultJSON is the wire shape of InterpretationResult.
// Not-rated sentinels encode as null, which encoding/json cannot do for a
// bare NaN float.
type interpretationResultJSON struct {
	ID                string                       `json:"id"`
	Interpretation    string                       `json:"interpretation"`
	Rating            *float64                     `json:"rating"`
	Class             RatingClass                  `json:"class"`
	PropertyValues    map[string]ast.PropertyValue `json:"property_values,omitempty"`
	EvaluationRatings map[string]*float64          `json:"evaluation_ratings,omitempty"`
	Timestamp         time.Time                    `json:"timestamp"`
}

// MarshalJSON encodes the result with NaN ratings as null.
func (r InterpretationResult) MarshalJSON() ([]byte, error) {
	out := interpretationResultJSON{
		ID:             r.ID,
		Interpretation: r.Interpretation,
		Rating:         encodeRating(r.Rating),
		Class:          r.Class,
		PropertyValues: r.PropertyValues,
		Timestamp:      r.Timestamp,
	}
	if r.EvaluationRatings != nil {
		out.EvaluationRatings = make(map[string]*float64, len(r.EvaluationRatings))
		for label, rating := range r.EvaluationRatings {
			out.EvaluationRatings[label] = encodeRating(rating)
		}
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes the result, mapping null ratings back to the
// not-rated sentinel.
func (r *InterpretationResult) UnmarshalJSON(data []byte) error {
	var in interpretationResultJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	r.ID = in.ID
	r.Interpretation = in.Interpretation
	r.Rating = decodeRating(in.Rating)
	r.Class = in.Class
	r.PropertyValues = in.PropertyValues
	r.Timestamp = in.Timestamp
	r.EvaluationRatings = nil
	if in.EvaluationRatings != nil {
		r.EvaluationRatings = make(map[string]float64, len(in.EvaluationRatings))
		for label, rating := range in.EvaluationRatings {
			r.EvaluationRatings[label] = decodeRating(rating)
		}
	}
	return nil
}

func encodeRating(r float64) *float64 {
	if IsNotRated(r) {
		return nil
	}
	return &r
}

func decodeRating(r *float64) float64 {
	if r == nil {
		return NotRated()
	}
	return *r
}
