package ast

import (
	"strconv"
	"strings"
)

// RawNode is the loosely shaped node form produced by the persistence layer
// before classification. Which fields are present decides the node kind;
// Classify performs that resolution exactly once.
type RawNode struct {
	// Type names an operator or hedge kind; empty for leaves and containers.
	Type string `yaml:"type,omitempty" json:"type,omitempty"`

	// RefID references an evaluation definition when the node is a leaf.
	RefID *int `yaml:"ref_id,omitempty" json:"ref_id,omitempty"`

	// Value carries the raw hedge parameter, when one is attached.
	Value string `yaml:"value,omitempty" json:"value,omitempty"`

	// Name is the display label.
	Name string `yaml:"name,omitempty" json:"name,omitempty"`

	// Children are the raw child nodes.
	Children []*RawNode `yaml:"children,omitempty" json:"children,omitempty"`
}

// operatorKinds is the set of known n-ary combinator kinds.
var operatorKinds = map[OperatorKind]bool{
	OperatorAnd:        true,
	OperatorOr:         true,
	OperatorProduct:    true,
	OperatorAlpha:      true,
	OperatorSum:        true,
	OperatorTimes:      true,
	OperatorAverage:    true,
	OperatorPlus:       true,
	OperatorMinus:      true,
	OperatorDivide:     true,
	OperatorNotNullAnd: true,
}

// unaryHedgeKinds is the set of kinds that are always hedges.
var unaryHedgeKinds = map[HedgeKind]bool{
	HedgeNot:          true,
	HedgeVery:         true,
	HedgeSomewhat:     true,
	HedgeNullOr:       true,
	HedgeNullNotRated: true,
}

// parameterHedgeKinds is the set of kinds that act as hedges when a numeric
// parameter is attached or the node has a single child, and as operators
// otherwise. The overlap is inherited from the source rule format.
var parameterHedgeKinds = map[HedgeKind]bool{
	HedgeMultiply: true,
	HedgePower:    true,
	HedgeLimit:    true,
}

// Classify resolves a raw node tree into the classified RuleNode union.
// Classification never fails: nodes that fit no variant become childless
// containers, which the evaluator reports as malformed with a not-rated
// rating rather than an error.
//
// Resolution of the operator/hedge overlap:
//   - multiply, power, limit: hedge when the raw value parses as a number or
//     the node has at most one child; otherwise an operator (multiply keeps
//     product semantics, power and limit fall to the unknown-operator path).
//   - not_null_and: operator with two or more children, hedge otherwise.
//   - an unrecognized type becomes a hedge with a single child and an
//     operator with more; the libraries handle the unknown kind downstream.
func Classify(raw *RawNode) *RuleNode {
	if raw == nil {
		return nil
	}

	node := &RuleNode{Name: raw.Name}
	for _, child := range raw.Children {
		if classified := Classify(child); classified != nil {
			node.Children = append(node.Children, classified)
		}
	}

	kind := normalizeKind(raw.Type)
	param := parseParameter(raw.Value)

	switch {
	case kind == "" && raw.RefID != nil && len(node.Children) == 0:
		node.Kind = NodeEvaluation
		node.RefID = *raw.RefID

	case kind == "":
		node.Kind = NodeContainer

	case unaryHedgeKinds[HedgeKind(kind)]:
		node.Kind = NodeHedge
		node.Hedge = HedgeKind(kind)
		node.Parameter = param

	case parameterHedgeKinds[HedgeKind(kind)]:
		if param != nil || len(node.Children) <= 1 {
			node.Kind = NodeHedge
			node.Hedge = HedgeKind(kind)
			node.Parameter = param
		} else {
			node.Kind = NodeOperator
			node.Operator = overlapOperator(HedgeKind(kind))
		}

	case kind == string(OperatorNotNullAnd):
		if len(node.Children) >= 2 {
			node.Kind = NodeOperator
			node.Operator = OperatorNotNullAnd
		} else {
			node.Kind = NodeHedge
			node.Hedge = HedgeNotNullAnd
		}

	case operatorKinds[OperatorKind(kind)]:
		node.Kind = NodeOperator
		node.Operator = OperatorKind(kind)

	case len(node.Children) == 1:
		node.Kind = NodeHedge
		node.Hedge = HedgeKind(kind)
		node.Parameter = param

	default:
		node.Kind = NodeOperator
		node.Operator = OperatorKind(kind)
	}

	return node
}

// overlapOperator maps a parameterless overlap kind to its operator reading.
// Multiply over children is a running product; power and limit have no n-ary
// meaning and keep their kind so the operator library can warn and fall back.
func overlapOperator(kind HedgeKind) OperatorKind {
	if kind == HedgeMultiply {
		return OperatorProduct
	}
	return OperatorKind(kind)
}

// normalizeKind canonicalizes a raw type string: lower case, trimmed, spaces
// and dashes collapsed to underscores ("Not Null And" -> "not_null_and").
func normalizeKind(s string) string {
	s = strings.TrimSpace(strings.ToLower(s))
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "-", "_")
	return s
}

// parseParameter parses the raw value field as a hedge parameter. A value
// that is empty or not numeric reads as no parameter.
func parseParameter(raw string) *float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &v
}
