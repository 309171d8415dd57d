package ast

// NodeKind identifies which variant of the rule-node union applies.
type NodeKind string

const (
	// NodeEvaluation is a leaf referencing an evaluation definition.
	NodeEvaluation NodeKind = "evaluation"

	// NodeOperator aggregates child ratings with an n-ary fuzzy operator.
	NodeOperator NodeKind = "operator"

	// NodeHedge applies a unary modifier to its single child's rating.
	NodeHedge NodeKind = "hedge"

	// NodeContainer groups children without an operator or hedge kind.
	// Its rating is the first child's rating, a pass-through.
	NodeContainer NodeKind = "container"
)

// OperatorKind identifies an n-ary fuzzy combinator.
type OperatorKind string

const (
	OperatorAnd        OperatorKind = "and"
	OperatorOr         OperatorKind = "or"
	OperatorProduct    OperatorKind = "product"
	OperatorAlpha      OperatorKind = "alpha"
	OperatorSum        OperatorKind = "sum"
	OperatorTimes      OperatorKind = "times"
	OperatorAverage    OperatorKind = "average"
	OperatorPlus       OperatorKind = "plus"
	OperatorMinus      OperatorKind = "minus"
	OperatorDivide     OperatorKind = "divide"
	OperatorNotNullAnd OperatorKind = "not_null_and"
)

// HedgeKind identifies a unary fuzzy modifier.
type HedgeKind string

const (
	HedgeNot          HedgeKind = "not"
	HedgeMultiply     HedgeKind = "multiply"
	HedgePower        HedgeKind = "power"
	HedgeLimit        HedgeKind = "limit"
	HedgeVery         HedgeKind = "very"
	HedgeSomewhat     HedgeKind = "somewhat"
	HedgeNullOr       HedgeKind = "null_or"
	HedgeNotNullAnd   HedgeKind = "not_null_and"
	HedgeNullNotRated HedgeKind = "null_not_rated"
)

// RuleNode is a classified node of a rule tree. Exactly one variant applies,
// selected by Kind; the variant-specific fields of the other kinds are zero.
//
// Invariants: operator, hedge, and container nodes carry at least one child in
// a well-formed tree. A violation is not a hard failure; the evaluator yields
// the not-rated sentinel and logs a warning.
type RuleNode struct {
	// Kind selects the variant.
	Kind NodeKind

	// Name is the display label used to key sub-evaluation ratings.
	Name string

	// RefID references an evaluation definition (NodeEvaluation only).
	RefID int

	// Operator is the combinator kind (NodeOperator only). It may hold a
	// kind outside the known set; the operator library falls back to AND.
	Operator OperatorKind

	// Hedge is the modifier kind (NodeHedge only).
	Hedge HedgeKind

	// Parameter is the optional numeric hedge parameter (NodeHedge only).
	// Nil means the hedge's default applies.
	Parameter *float64

	// Children holds the child nodes. Hedge nodes have exactly one.
	Children []*RuleNode
}

// Interpretation is a fully materialized rule tree bundled with the lookup
// tables it evaluates against. Built once by the catalog layer and treated as
// immutable for the duration of any evaluation or batch.
type Interpretation struct {
	// Name is the interpretation display name, e.g.
	// "Dwellings Without Basements".
	Name string

	// Root is the classified rule tree root.
	Root *RuleNode

	// Evaluations maps reference id to evaluation definition.
	Evaluations map[int]*EvaluationDefinition

	// Properties maps property name to property definition.
	Properties map[string]*PropertyDefinition
}
