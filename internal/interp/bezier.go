package interp

import "github.com/weyl-labs/lattice/internal/timeline"

// bezierEase remaps the linear parameter t through a cubic bezier timing
// curve defined by the outgoing handle of the left keyframe and the
// incoming handle of the right keyframe.
//
// Handles live in normalized segment space: the curve runs from (0,0) to
// (1,1) with control points
//
//	P1 = (out.X, out.Y)
//	P2 = (1 + in.X, 1 + in.Y)
//
// so an incoming handle pointing "back" along the segment has negative X.
// Zero handles on both sides degenerate to the identity (pure linear).
//
// The x component must be monotonic for the curve to be a timing function,
// so control x values are clamped to [0, 1] before solving. The solve
// itself is Newton-Raphson with a bisection fallback, both fully
// deterministic.
func bezierEase(out, in timeline.Tangent, t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}

	x1 := clamp01(out.X)
	y1 := out.Y
	x2 := clamp01(1 + in.X)
	y2 := 1 + in.Y

	if x1 == 0 && y1 == 0 && x2 == 1 && y2 == 1 {
		return t
	}

	u := solveCurveX(x1, x2, t)
	return sampleCurve(y1, y2, u)
}

// sampleCurve evaluates the 1D cubic bezier with control values c1, c2
// (endpoints fixed at 0 and 1) at parameter u.
func sampleCurve(c1, c2, u float64) float64 {
	// Horner form of 3*c1*(1-u)^2*u + 3*c2*(1-u)*u^2 + u^3.
	a := 1.0 + 3.0*c1 - 3.0*c2
	b := 3.0*c2 - 6.0*c1
	c := 3.0 * c1
	return ((a*u+b)*u + c) * u
}

// sampleCurveDeriv is the derivative of sampleCurve with respect to u.
func sampleCurveDeriv(c1, c2, u float64) float64 {
	a := 1.0 + 3.0*c1 - 3.0*c2
	b := 3.0*c2 - 6.0*c1
	c := 3.0 * c1
	return (3.0*a*u+2.0*b)*u + c
}

// solveCurveX finds u such that sampleCurve(x1, x2, u) == x.
//
// Eight Newton iterations converge for every monotonic curve the clamped
// control points can produce; the bisection fallback handles the flat
// regions where the derivative vanishes.
func solveCurveX(x1, x2, x float64) float64 {
	const epsilon = 1e-7

	u := x
	for i := 0; i < 8; i++ {
		err := sampleCurve(x1, x2, u) - x
		if err < epsilon && err > -epsilon {
			return u
		}
		d := sampleCurveDeriv(x1, x2, u)
		if d < 1e-9 && d > -1e-9 {
			break
		}
		u -= err / d
	}

	lo, hi := 0.0, 1.0
	u = x
	for i := 0; i < 32; i++ {
		v := sampleCurve(x1, x2, u)
		if v-x < epsilon && x-v < epsilon {
			return u
		}
		if v < x {
			lo = u
		} else {
			hi = u
		}
		u = (lo + hi) / 2
	}
	return u
}
