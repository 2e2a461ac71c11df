package eval

import (
	"github.com/weyl-labs/lattice/internal/interp"
	"github.com/weyl-labs/lattice/internal/timeline"
)

// Property names the engine presents to the ExpressionSource for the
// built-in channels. Type-specific channels use their own names.
const (
	PropPosition = "transform.position"
	PropRotation = "transform.rotation"
	PropScale    = "transform.scale"
	PropOrigin   = "transform.origin"
	PropOpacity  = "opacity"
)

// EvaluateLayer resolves one layer at one frame, memoized.
//
// A cache hit valid at the layer's current version is returned by
// identity - the same pointer every call - so callers can use reference
// equality to short-circuit re-render. A miss computes fresh, freezes,
// and caches under the CURRENT version before returning.
func (e *Engine) EvaluateLayer(l *timeline.Layer, frame int) *EvaluatedLayer {
	ver := e.tracker.LayerVersion(l.ID)
	if cached, ok := e.cache.Get(l.ID, ver, frame); ok {
		return cached
	}

	snap := e.evaluateLayerFresh(l, frame)
	e.cache.Set(l.ID, ver, frame, snap)
	return snap
}

// evaluateLayerFresh computes a layer snapshot without consulting the
// cache. Total over malformed input: every property resolution bottoms
// out in the kernel's static-value fallback.
func (e *Engine) evaluateLayerFresh(l *timeline.Layer, frame int) *EvaluatedLayer {
	inRange := frame >= l.InPoint && frame <= l.OutPoint

	snap := &EvaluatedLayer{
		id:        l.ID,
		name:      l.Name,
		layerType: l.Type,
		inRange:   inRange,
		visible:   l.Visible && inRange,
		opacity:   clampUnit(e.resolveScalar(l.ID, PropOpacity, l.Opacity, frame, 1)),
		transform: e.resolveTransform(l, frame),
	}

	// Type-specific channels, in sorted key order for determinism.
	for _, name := range l.PropertyNames() {
		snap.setProperty(name, e.resolveProperty(l.ID, name, l.Properties[name], frame))
	}

	return snap.freeze()
}

// resolveTransform collapses the transform bundle to numbers.
func (e *Engine) resolveTransform(l *timeline.Layer, frame int) ResolvedTransform {
	return ResolvedTransform{
		Position: e.resolveVec3(l.ID, PropPosition, l.Transform.Position, frame),
		Rotation: e.resolveScalar(l.ID, PropRotation, l.Transform.Rotation, frame, 0),
		Scale:    e.resolveVec2(l.ID, PropScale, l.Transform.Scale, frame),
		Origin:   e.resolveVec3(l.ID, PropOrigin, l.Transform.Origin, frame),
	}
}

// resolveProperty runs the expression override, then the kernel.
func (e *Engine) resolveProperty(layerID, name string, p *timeline.AnimatableProperty, frame int) timeline.Value {
	if p != nil && p.Expression != nil && p.Expression.Enabled && e.exprs != nil {
		if v, ok := e.exprs.ResolveExpression(layerID, name, frame); ok && v != nil {
			return v
		}
	}
	return interp.EvaluateProperty(p, frame)
}

// resolveScalar resolves a property expected to be scalar. Non-scalar
// values coerce to their first component; a nil property yields def.
func (e *Engine) resolveScalar(layerID, name string, p *timeline.AnimatableProperty, frame int, def float64) float64 {
	if p == nil {
		return def
	}
	c := timeline.Components(e.resolveProperty(layerID, name, p, frame))
	if len(c) == 0 {
		return def
	}
	return c[0]
}

// resolveVec2 resolves a property expected to be Vec2. A scalar broadcasts
// to both components (uniform scale); anything else falls back to identity
// scale semantics via the components present.
func (e *Engine) resolveVec2(layerID, name string, p *timeline.AnimatableProperty, frame int) timeline.Vec2 {
	if p == nil {
		return timeline.Vec2{X: 1, Y: 1}
	}
	v := e.resolveProperty(layerID, name, p, frame)
	switch val := v.(type) {
	case timeline.Vec2:
		return val
	case timeline.Scalar:
		return timeline.Vec2{X: float64(val), Y: float64(val)}
	case timeline.Vec3:
		return timeline.Vec2{X: val.X, Y: val.Y}
	default:
		return timeline.Vec2{X: 1, Y: 1}
	}
}

// resolveVec3 resolves a property expected to be Vec3. Vec2 promotes with
// z=0; scalars broadcast.
func (e *Engine) resolveVec3(layerID, name string, p *timeline.AnimatableProperty, frame int) timeline.Vec3 {
	if p == nil {
		return timeline.Vec3{}
	}
	v := e.resolveProperty(layerID, name, p, frame)
	switch val := v.(type) {
	case timeline.Vec3:
		return val
	case timeline.Vec2:
		return timeline.Vec3{X: val.X, Y: val.Y}
	case timeline.Scalar:
		return timeline.Vec3{X: float64(val), Y: float64(val), Z: float64(val)}
	default:
		return timeline.Vec3{}
	}
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
