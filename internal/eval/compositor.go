package eval

import (
	"math"

	"github.com/weyl-labs/lattice/internal/audio"
	"github.com/weyl-labs/lattice/internal/interp"
	"github.com/weyl-labs/lattice/internal/timeline"
)

// maxParentDepth bounds parent-chain traversal. Any chain longer than
// this is treated as cyclic and cut, matching the cycle rule below.
const maxParentDepth = 64

// Evaluate resolves the full composition at one frame: every layer in
// declared order (back-to-front, never re-sorted), parent transforms
// composed, audio state injected, camera resolved. The returned
// FrameState is frozen; layer snapshots inside it are shared by identity
// with the cache, so unchanged layers are reference-equal across calls.
//
// buf may be nil: the audio state is then deterministically
// {HasAudio: false, Amplitude: 0}.
func (e *Engine) Evaluate(frame int, p *timeline.Project, buf *audio.Buffer) *FrameState {
	fs := &FrameState{frame: frame}

	snaps := make(map[string]*EvaluatedLayer, len(p.Layers))
	for _, l := range p.Layers {
		snaps[l.ID] = e.EvaluateLayer(l, frame)
	}

	for _, l := range p.Layers {
		world := e.worldTransform(p, l, frame, snaps)
		fs.appendLayer(snaps[l.ID], world)
	}

	if !buf.Empty() {
		fs.audio = AudioState{HasAudio: true, Amplitude: buf.Amplitude(frame)}
	}

	if p.Camera != nil {
		fs.camera = &CameraState{
			Position: e.resolveVec3("", "camera.position", p.Camera.Position, frame),
			Zoom:     e.resolveScalar("", "camera.zoom", p.Camera.Zoom, frame, 1),
		}
	}

	return fs.freeze()
}

// EvaluateLayers resolves an ordered layer list at one frame, preserving
// input order. Single-layer counterpart of Evaluate for callers that do
// not need transform composition or audio.
func (e *Engine) EvaluateLayers(layers []*timeline.Layer, frame int) []*EvaluatedLayer {
	out := make([]*EvaluatedLayer, len(layers))
	for i, l := range layers {
		out[i] = e.EvaluateLayer(l, frame)
	}
	return out
}

// worldTransform composes the layer's local transform with its parent
// chain, root first. Dangling parent ids and cycles cut the chain at the
// point of detection - the layer is treated as parentless from there,
// never an error and never unbounded recursion.
func (e *Engine) worldTransform(p *timeline.Project, l *timeline.Layer, frame int, snaps map[string]*EvaluatedLayer) ResolvedTransform {
	// Collect the chain from the layer up to the root.
	chain := []*EvaluatedLayer{snaps[l.ID]}
	seen := map[string]bool{l.ID: true}

	cur := l
	for depth := 0; depth < maxParentDepth; depth++ {
		if cur.ParentID == "" {
			break
		}
		parent := p.LayerByID(cur.ParentID)
		if parent == nil || seen[parent.ID] {
			break // dangling reference or cycle: parentless from here
		}
		seen[parent.ID] = true
		snap, ok := snaps[parent.ID]
		if !ok {
			// Parent outside the evaluated list still contributes its
			// transform; evaluate through the cache like any layer.
			snap = e.EvaluateLayer(parent, frame)
		}
		chain = append(chain, snap)
		cur = parent
	}

	// Compose root-down: world = parent-world ∘ local.
	world := chain[len(chain)-1].Transform()
	for i := len(chain) - 2; i >= 0; i-- {
		world = composeTransform(world, chain[i].Transform())
	}
	return world
}

// composeTransform applies a parent transform to a child's local
// transform: the child's position is scaled by the parent's scale and
// rotated into the parent's frame, rotations add, scales multiply
// component-wise. Z composes additively (2.5D stack). The origin stays
// the child's own pivot - it is local by definition.
func composeTransform(parent, child ResolvedTransform) ResolvedTransform {
	rad := parent.Rotation * math.Pi / 180
	sin, cos := math.Sin(rad), math.Cos(rad)

	sx := child.Position.X * parent.Scale.X
	sy := child.Position.Y * parent.Scale.Y

	return ResolvedTransform{
		Position: timeline.Vec3{
			X: parent.Position.X + sx*cos - sy*sin,
			Y: parent.Position.Y + sx*sin + sy*cos,
			Z: parent.Position.Z + child.Position.Z,
		},
		Rotation: parent.Rotation + child.Rotation,
		Scale: timeline.Vec2{
			X: parent.Scale.X * child.Scale.X,
			Y: parent.Scale.Y * child.Scale.Y,
		},
		Origin: child.Origin,
	}
}

// EvaluatePropertyAt exposes raw kernel evaluation for hosts that need a
// single channel without a full layer snapshot (curve editors, UI
// scrubbers). Pure passthrough to the kernel.
func EvaluatePropertyAt(p *timeline.AnimatableProperty, frame int) timeline.Value {
	return interp.EvaluateProperty(p, frame)
}
