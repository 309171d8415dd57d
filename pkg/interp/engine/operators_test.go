package engine

import (
	"errors"
	"testing"

	"tellus-hq/tellus/pkg/interp/ast"
)

// TestApplyOperator tests each combinator against known identities
func TestApplyOperator(t *testing.T) {
	tests := []struct {
		name    string
		kind    ast.OperatorKind
		ratings []float64
		want    float64
	}{
		{name: "and is min", kind: ast.OperatorAnd, ratings: []float64{0.8, 0.3, 0.5}, want: 0.3},
		{name: "or is max", kind: ast.OperatorOr, ratings: []float64{0.2, 0.9, 0.5}, want: 0.9},
		{name: "product", kind: ast.OperatorProduct, ratings: []float64{0.5, 0.5}, want: 0.25},
		{name: "alpha is product", kind: ast.OperatorAlpha, ratings: []float64{0.5, 0.4}, want: 0.2},
		{name: "sum is probabilistic", kind: ast.OperatorSum, ratings: []float64{0.5, 0.5}, want: 0.75},
		{name: "times is bounded difference", kind: ast.OperatorTimes, ratings: []float64{0.7, 0.8}, want: 0.5},
		{name: "times floors at zero", kind: ast.OperatorTimes, ratings: []float64{0.2, 0.3}, want: 0},
		{name: "average", kind: ast.OperatorAverage, ratings: []float64{0.2, 0.4, 0.6}, want: 0.4},
		{name: "plus is bounded sum", kind: ast.OperatorPlus, ratings: []float64{0.7, 0.8}, want: 1},
		{name: "plus below cap", kind: ast.OperatorPlus, ratings: []float64{0.2, 0.3}, want: 0.5},
		{name: "minus", kind: ast.OperatorMinus, ratings: []float64{0.9, 0.3, 0.2}, want: 0.4},
		{name: "minus floors at zero", kind: ast.OperatorMinus, ratings: []float64{0.2, 0.9}, want: 0},
		{name: "divide", kind: ast.OperatorDivide, ratings: []float64{0.3, 0.5}, want: 0.6},
		{name: "divide caps at one", kind: ast.OperatorDivide, ratings: []float64{0.9, 0.5}, want: 1},
		{name: "single input and", kind: ast.OperatorAnd, ratings: []float64{0.42}, want: 0.42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ApplyOperator(tt.kind, tt.ratings)
			if err != nil {
				t.Fatalf("ApplyOperator(%v) error: %v", tt.kind, err)
			}
			if !almostEqual(got, tt.want) {
				t.Errorf("ApplyOperator(%v, %v) = %v, want %v", tt.kind, tt.ratings, got, tt.want)
			}
		})
	}
}

// TestApplyOperator_NotRatedFiltering tests that NaN inputs drop out before
// aggregation
func TestApplyOperator_NotRatedFiltering(t *testing.T) {
	tests := []struct {
		name    string
		kind    ast.OperatorKind
		ratings []float64
		want    float64
	}{
		{name: "and ignores not rated", kind: ast.OperatorAnd, ratings: []float64{NotRated(), 0.9}, want: 0.9},
		{name: "or ignores not rated", kind: ast.OperatorOr, ratings: []float64{0.2, NotRated()}, want: 0.2},
		{name: "average over rated only", kind: ast.OperatorAverage, ratings: []float64{NotRated(), 0.4, 0.8}, want: 0.6},
		{name: "sum over rated only", kind: ast.OperatorSum, ratings: []float64{NotRated(), 0.5}, want: 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ApplyOperator(tt.kind, tt.ratings)
			if err != nil {
				t.Fatalf("ApplyOperator(%v) error: %v", tt.kind, err)
			}
			if !almostEqual(got, tt.want) {
				t.Errorf("ApplyOperator(%v, %v) = %v, want %v", tt.kind, tt.ratings, got, tt.want)
			}
		})
	}
}

// TestApplyOperator_AllNotRated tests the all-NaN and empty aggregates
func TestApplyOperator_AllNotRated(t *testing.T) {
	for _, kind := range []ast.OperatorKind{
		ast.OperatorAnd, ast.OperatorOr, ast.OperatorProduct, ast.OperatorSum,
		ast.OperatorTimes, ast.OperatorAverage, ast.OperatorPlus,
		ast.OperatorMinus, ast.OperatorDivide, ast.OperatorNotNullAnd,
	} {
		t.Run(string(kind), func(t *testing.T) {
			got, err := ApplyOperator(kind, nil)
			if err != nil {
				t.Fatalf("ApplyOperator(%v, nil) error: %v", kind, err)
			}
			if !IsNotRated(got) {
				t.Errorf("ApplyOperator(%v, nil) = %v, want not rated", kind, got)
			}
		})
	}

	got, err := ApplyOperator(ast.OperatorAnd, []float64{NotRated(), NotRated()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !IsNotRated(got) {
		t.Errorf("all-NaN and = %v, want not rated", got)
	}
}

// TestApplyOperator_NotNullAnd tests the substitution semantics
func TestApplyOperator_NotNullAnd(t *testing.T) {
	// NaN inputs substitute 1.0 instead of dropping out, so the rated
	// minimum governs.
	got, err := ApplyOperator(ast.OperatorNotNullAnd, []float64{NotRated(), 0.6, NotRated()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !almostEqual(got, 0.6) {
		t.Errorf("not_null_and = %v, want 0.6", got)
	}

	// All-NaN substitutes to all ones.
	got, err = ApplyOperator(ast.OperatorNotNullAnd, []float64{NotRated(), NotRated()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !almostEqual(got, 1) {
		t.Errorf("all-NaN not_null_and = %v, want 1", got)
	}
}

// TestApplyOperator_DivideByZero tests the zero-divisor degradation
func TestApplyOperator_DivideByZero(t *testing.T) {
	got, err := ApplyOperator(ast.OperatorDivide, []float64{0.5, 0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !IsNotRated(got) {
		t.Errorf("divide by zero = %v, want not rated", got)
	}
}

// TestApplyOperator_Unknown tests the unknown-kind error
func TestApplyOperator_Unknown(t *testing.T) {
	got, err := ApplyOperator(ast.OperatorKind("frobnicate"), []float64{0.5})
	if err == nil {
		t.Fatal("expected error for unknown operator")
	}
	var unknownErr *UnknownOperatorError
	if !errors.As(err, &unknownErr) {
		t.Errorf("error type = %T, want *UnknownOperatorError", err)
	}
	if !IsNotRated(got) {
		t.Errorf("unknown operator rating = %v, want not rated", got)
	}
}
