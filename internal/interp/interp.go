package interp

import (
	"sort"

	"github.com/weyl-labs/lattice/internal/timeline"
)

// EvaluateProperty resolves a property to a concrete value at a frame.
//
// Rules, in order:
//  1. Not animated, or no keyframes: the static value.
//  2. Malformed keyframe data (non-monotonic frames, missing values):
//     the static value.
//  3. frame <= first keyframe's frame: the first keyframe's value.
//  4. frame >= last keyframe's frame: the last keyframe's value.
//  5. Otherwise the bracketing pair (k_i, k_{i+1}) with
//     k_i.Frame <= frame < k_{i+1}.Frame is interpolated per k_i's mode.
//
// Expression overrides are the engine's concern, not the kernel's: the
// engine substitutes an externally evaluated result before calling here.
func EvaluateProperty(p *timeline.AnimatableProperty, frame int) timeline.Value {
	if p == nil {
		return timeline.Scalar(0)
	}
	if !p.Animated || len(p.Keyframes) == 0 {
		return fallback(p)
	}
	if !p.WellFormed() {
		return fallback(p)
	}

	kfs := p.Keyframes
	if frame <= kfs[0].Frame {
		return kfs[0].Value
	}
	last := kfs[len(kfs)-1]
	if frame >= last.Frame {
		return last.Value
	}

	i := bracket(kfs, frame)
	return interpolateSegment(kfs[i], kfs[i+1], frame)
}

// fallback returns the safest value a malformed property can yield:
// the static value when present, else the first keyframe's value, else
// scalar zero. Never nil, so evaluation stays total.
func fallback(p *timeline.AnimatableProperty) timeline.Value {
	if p.Static != nil {
		return p.Static
	}
	if len(p.Keyframes) > 0 && p.Keyframes[0].Value != nil {
		return p.Keyframes[0].Value
	}
	return timeline.Scalar(0)
}

// bracket finds i such that kfs[i].Frame <= frame < kfs[i+1].Frame.
// Callers guarantee frame is strictly inside the keyframe range.
func bracket(kfs []timeline.Keyframe, frame int) int {
	// sort.Search finds the first keyframe strictly past the frame.
	j := sort.Search(len(kfs), func(i int) bool {
		return kfs[i].Frame > frame
	})
	return j - 1
}

// interpolateSegment blends between two keyframes at an interior frame.
func interpolateSegment(a, b timeline.Keyframe, frame int) timeline.Value {
	if a.Interp == timeline.InterpHold {
		return a.Value
	}

	span := b.Frame - a.Frame
	t := float64(frame-a.Frame) / float64(span)
	t = clamp01(t)

	if a.Interp == timeline.InterpBezier {
		t = bezierEase(a.OutHandle, b.InHandle, t)
	}

	av := timeline.Components(a.Value)
	bv := timeline.Components(b.Value)
	if len(av) == 0 || len(av) != len(bv) || a.Value.Kind() != b.Value.Kind() {
		// Kind mismatch between adjacent keyframes: hold the left value.
		return a.Value
	}

	out := make([]float64, len(av))
	for i := range av {
		out[i] = lerp(av[i], bv[i], t)
	}
	v, err := timeline.FromComponents(a.Value.Kind(), out)
	if err != nil {
		return a.Value
	}
	return v
}

// lerp performs linear interpolation between a and b.
func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// clamp01 clamps t to [0, 1]. Floating error on the division can push t
// fractionally outside the unit interval; the contract requires clamping
// before any easing or blending sees it.
func clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}
