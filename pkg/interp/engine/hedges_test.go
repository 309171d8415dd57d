package engine

import (
	"errors"
	"testing"

	"tellus-hq/tellus/pkg/interp/ast"
)

func floatPtr(v float64) *float64 { return &v }

// TestApplyHedge tests each modifier against known identities
func TestApplyHedge(t *testing.T) {
	tests := []struct {
		name      string
		kind      ast.HedgeKind
		x         float64
		parameter *float64
		want      float64
	}{
		{name: "not", kind: ast.HedgeNot, x: 0.3, want: 0.7},
		{name: "not of zero", kind: ast.HedgeNot, x: 0, want: 1},
		{name: "very squares", kind: ast.HedgeVery, x: 0.5, want: 0.25},
		{name: "somewhat is sqrt", kind: ast.HedgeSomewhat, x: 0.25, want: 0.5},
		{name: "multiply default is identity", kind: ast.HedgeMultiply, x: 0.4, want: 0.4},
		{name: "multiply with factor", kind: ast.HedgeMultiply, x: 0.4, parameter: floatPtr(0.5), want: 0.2},
		{name: "power default squares", kind: ast.HedgePower, x: 0.5, want: 0.25},
		{name: "power with exponent", kind: ast.HedgePower, x: 0.25, parameter: floatPtr(0.5), want: 0.5},
		{name: "limit clamps high", kind: ast.HedgeLimit, x: 1.4, want: 1},
		{name: "limit clamps low", kind: ast.HedgeLimit, x: -0.2, want: 0},
		{name: "limit passes interior", kind: ast.HedgeLimit, x: 0.6, want: 0.6},
		{name: "null_or on rated", kind: ast.HedgeNullOr, x: 0.5, want: 0},
		{name: "null_or on not rated", kind: ast.HedgeNullOr, x: NotRated(), want: 1},
		{name: "not_null_and on rated", kind: ast.HedgeNotNullAnd, x: 0.5, want: 1},
		{name: "not_null_and on not rated", kind: ast.HedgeNotNullAnd, x: NotRated(), want: 0},
		{name: "null_not_rated on rated", kind: ast.HedgeNullNotRated, x: 0.5, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ApplyHedge(tt.kind, tt.x, tt.parameter)
			if err != nil {
				t.Fatalf("ApplyHedge(%v) error: %v", tt.kind, err)
			}
			if !almostEqual(got, tt.want) {
				t.Errorf("ApplyHedge(%v, %v) = %v, want %v", tt.kind, tt.x, got, tt.want)
			}
		})
	}
}

// TestApplyHedge_NotInvolution tests that double negation restores the input
func TestApplyHedge_NotInvolution(t *testing.T) {
	for _, x := range []float64{0, 0.25, 0.5, 0.9, 1} {
		once, err := ApplyHedge(ast.HedgeNot, x, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		twice, err := ApplyHedge(ast.HedgeNot, once, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !almostEqual(twice, x) {
			t.Errorf("not(not(%v)) = %v, want %v", x, twice, x)
		}
	}
}

// TestApplyHedge_NotRatedPropagation tests sentinel propagation through
// ordinary hedges
func TestApplyHedge_NotRatedPropagation(t *testing.T) {
	for _, kind := range []ast.HedgeKind{
		ast.HedgeNot, ast.HedgeVery, ast.HedgeSomewhat,
		ast.HedgeMultiply, ast.HedgePower,
	} {
		got, err := ApplyHedge(kind, NotRated(), nil)
		if err != nil {
			t.Fatalf("ApplyHedge(%v) error: %v", kind, err)
		}
		if !IsNotRated(got) {
			t.Errorf("ApplyHedge(%v, NaN) = %v, want not rated", kind, got)
		}
	}

	got, err := ApplyHedge(ast.HedgeNullNotRated, NotRated(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !IsNotRated(got) {
		t.Errorf("null_not_rated(NaN) = %v, want not rated", got)
	}
}

// TestApplyHedge_Unknown tests the unknown-kind error
func TestApplyHedge_Unknown(t *testing.T) {
	got, err := ApplyHedge(ast.HedgeKind("frobnicate"), 0.5, nil)
	if err == nil {
		t.Fatal("expected error for unknown hedge")
	}
	var unknownErr *UnknownHedgeError
	if !errors.As(err, &unknownErr) {
		t.Errorf("error type = %T, want *UnknownHedgeError", err)
	}
	if !IsNotRated(got) {
		t.Errorf("unknown hedge rating = %v, want not rated", got)
	}
}

// TestApplyHedgeVec tests element-wise application
func TestApplyHedgeVec(t *testing.T) {
	got, err := ApplyHedgeVec(ast.HedgeNot, []float64{0.1, 0.6, 1}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []float64{0.9, 0.4, 0}
	for i := range want {
		if !almostEqual(got[i], want[i]) {
			t.Errorf("element %d = %v, want %v", i, got[i], want[i])
		}
	}

	if _, err := ApplyHedgeVec(ast.HedgeKind("frobnicate"), []float64{0.5}, nil); err == nil {
		t.Error("expected error for unknown hedge kind")
	}
}
