package engine

import (
	"math"

	"tellus-hq/tellus/pkg/interp/ast"
)

// Hedge parameter defaults, applied when a node carries no raw value.
const (
	defaultMultiplyFactor = 1.0
	defaultPowerExponent  = 2.0
)

// ApplyHedge applies a unary fuzzy modifier to a child rating. The optional
// parameter comes from the node's raw value field; nil selects the hedge's
// default. The null-handling hedges (NULL_OR, NOT_NULL_AND, NULL_NOT_RATED)
// are the only ones that inspect the not-rated sentinel; every other hedge
// propagates it unchanged.
//
// An unknown kind returns an UnknownHedgeError; the evaluator logs it and
// yields not rated.
func ApplyHedge(kind ast.HedgeKind, x float64, parameter *float64) (float64, error) {
	switch kind {
	case ast.HedgeNot:
		return 1 - x, nil

	case ast.HedgeMultiply:
		return x * paramOr(parameter, defaultMultiplyFactor), nil

	case ast.HedgePower:
		return math.Pow(x, paramOr(parameter, defaultPowerExponent)), nil

	case ast.HedgeVery:
		return x * x, nil

	case ast.HedgeSomewhat:
		return math.Sqrt(x), nil

	case ast.HedgeLimit:
		return math.Max(0, math.Min(1, x)), nil

	case ast.HedgeNullOr:
		if IsNotRated(x) {
			return 1, nil
		}
		return 0, nil

	case ast.HedgeNotNullAnd:
		if IsNotRated(x) {
			return 0, nil
		}
		return 1, nil

	case ast.HedgeNullNotRated:
		if IsNotRated(x) {
			return NotRated(), nil
		}
		return 0, nil

	default:
		return NotRated(), &UnknownHedgeError{Kind: kind}
	}
}

// ApplyHedgeVec applies a hedge element-wise over a rating vector.
func ApplyHedgeVec(kind ast.HedgeKind, xs []float64, parameter *float64) ([]float64, error) {
	out := make([]float64, len(xs))
	for i, x := range xs {
		r, err := ApplyHedge(kind, x, parameter)
		if err != nil {
			return nil, err
		}
		out[i] = r
	}
	return out, nil
}

func paramOr(parameter *float64, fallback float64) float64 {
	if parameter != nil {
		return *parameter
	}
	return fallback
}
