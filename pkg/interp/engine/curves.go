package engine

import (
	"math"
	"strings"

	"tellus-hq/tellus/pkg/interp/ast"
)

// NotRated returns the not-rated sentinel rating.
func NotRated() float64 { return math.NaN() }

// IsNotRated reports whether a rating is the not-rated sentinel.
func IsNotRated(r float64) bool { return math.IsNaN(r) }

// EvaluateCurve maps a scalar input to a fuzzy rating using the given
// interpolation method over a non-empty, ascending-sorted control point set.
// Inputs outside [points[0].X, points[last].X] clamp to the boundary point's
// Y for every method; a single-point set returns that point's Y
// unconditionally. Invert flips the rating to 1-r as the last step.
//
// boundedSpline clamps spline output into [0,1]; cubic overshoot is otherwise
// passed through.
func EvaluateCurve(kind ast.CurveKind, x float64, points []ast.ControlPoint, invert, boundedSpline bool) float64 {
	r := evaluateCurve(kind, x, points, boundedSpline)
	if invert && !IsNotRated(r) {
		r = 1 - r
	}
	return r
}

func evaluateCurve(kind ast.CurveKind, x float64, points []ast.ControlPoint, boundedSpline bool) float64 {
	if len(points) == 0 || IsNotRated(x) {
		return NotRated()
	}
	if len(points) == 1 {
		return points[0].Y
	}

	// Boundary clamping is method-independent.
	if x <= points[0].X {
		return points[0].Y
	}
	if x >= points[len(points)-1].X {
		return points[len(points)-1].Y
	}

	switch kind {
	case ast.CurveStep:
		return stepValue(x, points)
	case ast.CurveSpline:
		return splineValue(x, points, boundedSpline)
	case ast.CurveSigmoid:
		return sigmoidValue(x, points)
	default:
		return linearValue(x, points)
	}
}

// linearValue interpolates linearly inside the bracketing segment.
func linearValue(x float64, points []ast.ControlPoint) float64 {
	i := segmentIndex(x, points)
	p1, p2 := points[i], points[i+1]
	dx := p2.X - p1.X
	if dx == 0 {
		return p1.Y
	}
	return p1.Y + (x-p1.X)*(p2.Y-p1.Y)/dx
}

// stepValue is piecewise constant: [p[i].X, p[i+1].X) takes p[i].Y.
func stepValue(x float64, points []ast.ControlPoint) float64 {
	return points[segmentIndex(x, points)].Y
}

// sigmoidValue evaluates the logistic curve 1/(1+e^{-k(x-center)}) with
// center and steepness derived from the first two control points: center is
// their midpoint and k = 4/width, which puts the curve within ~2% of its
// asymptotes at the two points.
func sigmoidValue(x float64, points []ast.ControlPoint) float64 {
	p1, p2 := points[0], points[1]
	width := p2.X - p1.X
	if width == 0 {
		return p1.Y
	}
	center := (p1.X + p2.X) / 2
	k := 4 / width
	return 1 / (1 + math.Exp(-k*(x-center)))
}

// splineValue evaluates the natural cubic spline through all control points.
// Fewer than 3 points degenerate to linear interpolation.
func splineValue(x float64, points []ast.ControlPoint, bounded bool) float64 {
	if len(points) < 3 {
		return linearValue(x, points)
	}

	m := splineSecondDerivatives(points)
	i := segmentIndex(x, points)
	p1, p2 := points[i], points[i+1]
	h := p2.X - p1.X
	if h == 0 {
		return p1.Y
	}

	a := (p2.X - x) / h
	b := 1 - a
	y := a*p1.Y + b*p2.Y + ((a*a*a-a)*m[i]+(b*b*b-b)*m[i+1])*h*h/6

	if bounded {
		y = math.Max(0, math.Min(1, y))
	}
	return y
}

// splineSecondDerivatives solves the natural-spline tridiagonal system for
// the second derivatives at each control point (Thomas algorithm). The
// natural boundary condition pins both end derivatives at zero.
func splineSecondDerivatives(points []ast.ControlPoint) []float64 {
	n := len(points)
	m := make([]float64, n)
	if n < 3 {
		return m
	}

	// Interior equations, i = 1..n-2:
	//   h[i-1]*m[i-1] + 2*(h[i-1]+h[i])*m[i] + h[i]*m[i+1] = rhs[i]
	diag := make([]float64, n)
	upper := make([]float64, n)
	rhs := make([]float64, n)
	for i := 1; i < n-1; i++ {
		h0 := points[i].X - points[i-1].X
		h1 := points[i+1].X - points[i].X
		diag[i] = 2 * (h0 + h1)
		upper[i] = h1
		rhs[i] = 6 * ((points[i+1].Y-points[i].Y)/h1 - (points[i].Y-points[i-1].Y)/h0)
	}

	// Forward elimination.
	for i := 2; i < n-1; i++ {
		lower := points[i].X - points[i-1].X
		factor := lower / diag[i-1]
		diag[i] -= factor * upper[i-1]
		rhs[i] -= factor * rhs[i-1]
	}

	// Back substitution; m[0] and m[n-1] stay zero.
	for i := n - 2; i >= 1; i-- {
		m[i] = (rhs[i] - upper[i]*m[i+1]) / diag[i]
	}
	return m
}

// segmentIndex returns i such that points[i].X <= x < points[i+1].X, assuming
// x is inside the control point range.
func segmentIndex(x float64, points []ast.ControlPoint) int {
	for i := 1; i < len(points)-1; i++ {
		if x < points[i].X {
			return i - 1
		}
	}
	return len(points) - 2
}

// MatchCrisp matches a categorical value against a crisp expression of the
// form `="v1"` or `="v1" or "v2" or ...`. It returns 1 on a match and 0
// otherwise; ok is false when the expression shape is unsupported, in which
// case the rating is 0. Matching is case-insensitive.
func MatchCrisp(expr, value string) (rating float64, ok bool) {
	rest := strings.TrimSpace(expr)
	if !strings.HasPrefix(rest, "=") {
		return 0, false
	}
	rest = strings.TrimSpace(rest[1:])

	var alternatives []string
	for {
		if !strings.HasPrefix(rest, `"`) {
			return 0, false
		}
		end := strings.Index(rest[1:], `"`)
		if end < 0 {
			return 0, false
		}
		alternatives = append(alternatives, rest[1:1+end])
		rest = strings.TrimSpace(rest[end+2:])
		if rest == "" {
			break
		}
		if len(rest) < 2 || !strings.EqualFold(rest[:2], "or") {
			return 0, false
		}
		rest = strings.TrimSpace(rest[2:])
	}

	trimmed := strings.TrimSpace(value)
	for _, alt := range alternatives {
		if strings.EqualFold(trimmed, strings.TrimSpace(alt)) {
			return 1, true
		}
	}
	return 0, true
}
