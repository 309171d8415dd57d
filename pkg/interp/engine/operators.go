package engine

import (
	"math"

	"tellus-hq/tellus/pkg/interp/ast"
)

// ApplyOperator aggregates child ratings with an n-ary fuzzy combinator.
// Not-rated (NaN) inputs are filtered out before aggregation, so a single
// missing leaf only sinks the result where it is the decisive input; an
// operator over an empty or all-NaN input returns NaN. NOT_NULL_AND is the
// exception: it substitutes 1.0 for NaN inputs instead of filtering.
//
// An unknown kind returns an UnknownOperatorError; the evaluator logs it and
// falls back to AND.
func ApplyOperator(kind ast.OperatorKind, ratings []float64) (float64, error) {
	switch kind {
	case ast.OperatorAnd:
		return minRating(filterRated(ratings)), nil

	case ast.OperatorOr:
		return maxRating(filterRated(ratings)), nil

	case ast.OperatorProduct, ast.OperatorAlpha:
		return productRating(filterRated(ratings)), nil

	case ast.OperatorSum:
		return probabilisticSum(filterRated(ratings)), nil

	case ast.OperatorTimes:
		return boundedDifference(filterRated(ratings)), nil

	case ast.OperatorAverage:
		return meanRating(filterRated(ratings)), nil

	case ast.OperatorPlus:
		return boundedSum(filterRated(ratings)), nil

	case ast.OperatorMinus:
		return minusRating(filterRated(ratings)), nil

	case ast.OperatorDivide:
		return divideRating(filterRated(ratings)), nil

	case ast.OperatorNotNullAnd:
		return minRating(substituteRated(ratings, 1)), nil

	default:
		return NotRated(), &UnknownOperatorError{Kind: kind}
	}
}

// filterRated drops not-rated inputs.
func filterRated(ratings []float64) []float64 {
	rated := make([]float64, 0, len(ratings))
	for _, r := range ratings {
		if !IsNotRated(r) {
			rated = append(rated, r)
		}
	}
	return rated
}

// substituteRated replaces not-rated inputs with the given value. An empty
// input stays empty so the aggregate still reads not rated.
func substituteRated(ratings []float64, value float64) []float64 {
	rated := make([]float64, len(ratings))
	for i, r := range ratings {
		if IsNotRated(r) {
			rated[i] = value
		} else {
			rated[i] = r
		}
	}
	return rated
}

func minRating(ratings []float64) float64 {
	if len(ratings) == 0 {
		return NotRated()
	}
	m := ratings[0]
	for _, r := range ratings[1:] {
		m = math.Min(m, r)
	}
	return m
}

func maxRating(ratings []float64) float64 {
	if len(ratings) == 0 {
		return NotRated()
	}
	m := ratings[0]
	for _, r := range ratings[1:] {
		m = math.Max(m, r)
	}
	return m
}

func productRating(ratings []float64) float64 {
	if len(ratings) == 0 {
		return NotRated()
	}
	p := 1.0
	for _, r := range ratings {
		p *= r
	}
	return p
}

// probabilisticSum is 1 - prod(1-x_i).
func probabilisticSum(ratings []float64) float64 {
	if len(ratings) == 0 {
		return NotRated()
	}
	p := 1.0
	for _, r := range ratings {
		p *= 1 - r
	}
	return 1 - p
}

// boundedDifference is max(0, sum(x_i) - (n-1)).
func boundedDifference(ratings []float64) float64 {
	if len(ratings) == 0 {
		return NotRated()
	}
	sum := 0.0
	for _, r := range ratings {
		sum += r
	}
	return math.Max(0, sum-float64(len(ratings)-1))
}

func meanRating(ratings []float64) float64 {
	if len(ratings) == 0 {
		return NotRated()
	}
	sum := 0.0
	for _, r := range ratings {
		sum += r
	}
	return sum / float64(len(ratings))
}

// boundedSum is min(1, sum(x_i)).
func boundedSum(ratings []float64) float64 {
	if len(ratings) == 0 {
		return NotRated()
	}
	sum := 0.0
	for _, r := range ratings {
		sum += r
	}
	return math.Min(1, sum)
}

// minusRating is max(0, x_0 - sum(rest)).
func minusRating(ratings []float64) float64 {
	if len(ratings) == 0 {
		return NotRated()
	}
	result := ratings[0]
	for _, r := range ratings[1:] {
		result -= r
	}
	return math.Max(0, result)
}

// divideRating is min(1, x_0 / prod(rest)); a zero divisor is not rated.
func divideRating(ratings []float64) float64 {
	if len(ratings) == 0 {
		return NotRated()
	}
	divisor := 1.0
	for _, r := range ratings[1:] {
		divisor *= r
	}
	if divisor == 0 {
		return NotRated()
	}
	return math.Min(1, ratings[0]/divisor)
}
