package interp

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/weyl-labs/lattice/internal/timeline"
)

func TestBezierEase_ZeroHandlesAreLinear(t *testing.T) {
	for _, tc := range []float64{0, 0.1, 0.25, 0.5, 0.75, 0.9, 1} {
		assert.InDelta(t, tc, bezierEase(timeline.Tangent{}, timeline.Tangent{}, tc), 1e-9)
	}
}

func TestBezierEase_Endpoints(t *testing.T) {
	out := timeline.Tangent{X: 0.42, Y: 0}
	in := timeline.Tangent{X: -0.42, Y: 0}

	assert.Equal(t, 0.0, bezierEase(out, in, 0))
	assert.Equal(t, 1.0, bezierEase(out, in, 1))
}

func TestBezierEase_EaseInOutShape(t *testing.T) {
	// Ease-in-out: slow start, slow end, crosses the midpoint exactly.
	out := timeline.Tangent{X: 0.42, Y: 0}
	in := timeline.Tangent{X: -0.42, Y: 0}

	early := bezierEase(out, in, 0.1)
	mid := bezierEase(out, in, 0.5)
	late := bezierEase(out, in, 0.9)

	assert.Less(t, early, 0.1, "ease-in undershoots early")
	assert.InDelta(t, 0.5, mid, 1e-6, "symmetric curve crosses midpoint")
	assert.Greater(t, late, 0.9, "ease-out overshoots late")
}

func TestBezierEase_Monotonic(t *testing.T) {
	out := timeline.Tangent{X: 0.9, Y: 0.1}
	in := timeline.Tangent{X: -0.9, Y: -0.1}

	prev := -1.0
	for i := 0; i <= 100; i++ {
		u := float64(i) / 100
		v := bezierEase(out, in, u)
		assert.GreaterOrEqual(t, v, prev, "eased value regressed at t=%v", u)
		prev = v
	}
}

func TestBezierEase_Deterministic(t *testing.T) {
	out := timeline.Tangent{X: 0.3, Y: 0.7}
	in := timeline.Tangent{X: -0.2, Y: 0.1}

	first := bezierEase(out, in, 0.37)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, bezierEase(out, in, 0.37), "bit-identical on repeat")
	}
}

func TestEvaluateProperty_BezierSegment(t *testing.T) {
	// Bezier with ease handles still hits the keyframes exactly and
	// stays within the value range between them.
	p := timeline.NewAnimated(timeline.Scalar(0),
		timeline.Keyframe{
			Frame: 0, Value: timeline.Scalar(0),
			Interp:    timeline.InterpBezier,
			OutHandle: timeline.Tangent{X: 0.42, Y: 0},
		},
		timeline.Keyframe{
			Frame: 40, Value: timeline.Scalar(100),
			Interp:   timeline.InterpLinear,
			InHandle: timeline.Tangent{X: -0.42, Y: 0},
		},
	)

	assert.Equal(t, 0.0, scalarAt(t, p, 0))
	assert.Equal(t, 100.0, scalarAt(t, p, 40))

	mid := scalarAt(t, p, 20)
	assert.InDelta(t, 50.0, mid, 1e-3, "symmetric ease crosses the middle")

	early := scalarAt(t, p, 4)
	assert.Less(t, early, 10.0, "ease-in is slower than linear at the start")
}
