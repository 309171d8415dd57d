package ast

// CurveKind identifies the interpolation method of an evaluation definition.
type CurveKind string

const (
	// CurveLinear is piecewise linear interpolation between control points.
	CurveLinear CurveKind = "linear"

	// CurveStep is piecewise constant: [p[i].X, p[i+1].X) takes p[i].Y.
	CurveStep CurveKind = "step"

	// CurveSpline is a natural cubic spline over the control points.
	CurveSpline CurveKind = "spline"

	// CurveSigmoid is a logistic curve derived from the first two control
	// points: center at their midpoint, steepness 4/width.
	CurveSigmoid CurveKind = "sigmoid"

	// CurveCrisp matches a categorical string value against a crisp
	// expression instead of interpolating.
	CurveCrisp CurveKind = "crisp"
)

// ControlPoint is one (x, y) pair of an evaluation curve. Y is a fuzzy
// membership value in [0,1].
type ControlPoint struct {
	X float64 `yaml:"x" json:"x"`
	Y float64 `yaml:"y" json:"y"`
}

// EvaluationDefinition describes how a single soil property is converted to a
// fuzzy rating. Control points are sorted ascending by X before evaluation;
// the catalog loader enforces the ordering.
type EvaluationDefinition struct {
	// ID is the reference id leaf nodes point at.
	ID int

	// Name is the evaluation display name.
	Name string

	// Property is the source property name resolved against PropertyData.
	Property string

	// Curve selects the interpolation method.
	Curve CurveKind

	// Points are the ordered control points.
	Points []ControlPoint

	// CrispExpression matches categorical values, e.g.
	// `="well drained" or "moderately well drained"`. Only consulted for
	// CurveCrisp definitions.
	CrispExpression string

	// Invert flips the rating to 1-r as the final step.
	Invert bool
}

// PropertyDefinition describes a soil property referenced by evaluations.
type PropertyDefinition struct {
	// Name is the property name, the PropertyData key.
	Name string

	// Unit is the measurement unit, informational only.
	Unit string

	// Min and Max bound plausible values when present.
	Min *float64
	Max *float64

	// Categorical marks string-valued properties.
	Categorical bool

	// Choices is the optional finite choice set for categorical properties.
	Choices []string
}
