package eval

import (
	"encoding/json"

	"github.com/weyl-labs/lattice/internal/timeline"
)

// ResolvedTransform is a fully numeric transform: every animatable channel
// collapsed to concrete values for one frame. A plain value type - copies
// are free and callers cannot reach the snapshot's internals through it.
type ResolvedTransform struct {
	Position timeline.Vec3 `json:"position"`
	Rotation float64       `json:"rotation"` // degrees
	Scale    timeline.Vec2 `json:"scale"`
	Origin   timeline.Vec3 `json:"origin"`
}

// ResolvedProperty is one type-specific channel collapsed to a value.
type ResolvedProperty struct {
	Name  string
	Value timeline.Value
}

// EvaluatedLayer is the immutable result of evaluating one layer at one
// frame. Fields are unexported with accessor methods only: the snapshot
// is shared by identity through the cache, so there is nothing callers
// may legitimately write. The transform here is the layer's LOCAL
// transform; parent composition lives on FrameState, because a cached
// per-layer snapshot must not bake in parent state it is not versioned
// against.
type EvaluatedLayer struct {
	id        string
	name      string
	layerType timeline.LayerType
	visible   bool
	inRange   bool
	opacity   float64
	transform ResolvedTransform
	props     []ResolvedProperty // sorted by name
	frozen    bool
}

// ID returns the source layer's id.
func (l *EvaluatedLayer) ID() string { return l.id }

// Name returns the source layer's name.
func (l *EvaluatedLayer) Name() string { return l.name }

// Type returns the source layer's type.
func (l *EvaluatedLayer) Type() timeline.LayerType { return l.layerType }

// Visible reports whether the layer should be drawn: the authored
// visibility flag AND the frame being inside [InPoint, OutPoint].
func (l *EvaluatedLayer) Visible() bool { return l.visible }

// InRange reports whether the frame is inside [InPoint, OutPoint].
func (l *EvaluatedLayer) InRange() bool { return l.inRange }

// Opacity returns the resolved opacity in [0, 1].
func (l *EvaluatedLayer) Opacity() float64 { return l.opacity }

// Transform returns the resolved local transform.
func (l *EvaluatedLayer) Transform() ResolvedTransform { return l.transform }

// Properties returns the resolved type-specific channels, sorted by name.
// The slice is a defensive copy; the values inside are immutable.
func (l *EvaluatedLayer) Properties() []ResolvedProperty {
	if len(l.props) == 0 {
		return nil
	}
	out := make([]ResolvedProperty, len(l.props))
	copy(out, l.props)
	return out
}

// Property returns the resolved value for a named channel, or nil.
func (l *EvaluatedLayer) Property(name string) timeline.Value {
	for _, p := range l.props {
		if p.Name == name {
			return p.Value
		}
	}
	return nil
}

// freeze seals the snapshot. Construction-side only.
func (l *EvaluatedLayer) freeze() *EvaluatedLayer {
	l.frozen = true
	return l
}

// setProperty is the builder-side write path. Panics once frozen: writes
// after publication are caller bugs that must fail loudly.
func (l *EvaluatedLayer) setProperty(name string, v timeline.Value) {
	if l.frozen {
		panicFrozen("EvaluatedLayer", "setProperty")
	}
	l.props = append(l.props, ResolvedProperty{Name: name, Value: v})
}

// MarshalJSON renders the snapshot for diagnostics and golden files.
// Struct field order keeps the encoding deterministic.
func (l *EvaluatedLayer) MarshalJSON() ([]byte, error) {
	props := make(map[string][]float64, len(l.props))
	for _, p := range l.props {
		props[p.Name] = timeline.Components(p.Value)
	}
	return json.Marshal(struct {
		ID        string               `json:"id"`
		Name      string               `json:"name,omitempty"`
		Type      timeline.LayerType   `json:"type"`
		Visible   bool                 `json:"visible"`
		InRange   bool                 `json:"in_range"`
		Opacity   float64              `json:"opacity"`
		Transform ResolvedTransform    `json:"transform"`
		Props     map[string][]float64 `json:"properties,omitempty"`
	}{l.id, l.name, l.layerType, l.visible, l.inRange, l.opacity, l.transform, props})
}

// AudioState is the audio sample injected into a frame snapshot.
type AudioState struct {
	HasAudio  bool    `json:"has_audio"`
	Amplitude float64 `json:"amplitude"`
}

// CameraState is the composition camera resolved at a frame.
type CameraState struct {
	Position timeline.Vec3 `json:"position"`
	Zoom     float64       `json:"zoom"`
}

// FrameState is the immutable, fully resolved state of the composition at
// one frame: every layer's snapshot in back-to-front order, the composed
// world transforms, audio state, and the optional camera. One instance
// per Evaluate call; never reused or mutated across calls.
type FrameState struct {
	frame  int
	layers []*EvaluatedLayer
	worlds []ResolvedTransform // parallel to layers; parent-composed
	audio  AudioState
	camera *CameraState
	frozen bool
}

// Frame returns the evaluated frame number.
func (f *FrameState) Frame() int { return f.frame }

// Layers returns the evaluated layers in composition order. The slice
// header is a defensive copy so callers cannot reorder the composition;
// the snapshots themselves are shared by identity with the cache.
func (f *FrameState) Layers() []*EvaluatedLayer {
	out := make([]*EvaluatedLayer, len(f.layers))
	copy(out, f.layers)
	return out
}

// Layer returns the i-th evaluated layer, or nil if out of range.
func (f *FrameState) Layer(i int) *EvaluatedLayer {
	if i < 0 || i >= len(f.layers) {
		return nil
	}
	return f.layers[i]
}

// WorldTransform returns the parent-composed transform of the i-th layer.
func (f *FrameState) WorldTransform(i int) ResolvedTransform {
	if i < 0 || i >= len(f.worlds) {
		return ResolvedTransform{}
	}
	return f.worlds[i]
}

// Audio returns the injected audio state. Deterministically
// {false, 0} when no sample buffer was supplied.
func (f *FrameState) Audio() AudioState { return f.audio }

// Camera returns the resolved camera, or nil if the project has none.
// The returned struct is a copy.
func (f *FrameState) Camera() *CameraState {
	if f.camera == nil {
		return nil
	}
	c := *f.camera
	return &c
}

func (f *FrameState) freeze() *FrameState {
	f.frozen = true
	return f
}

// appendLayer is the builder-side write path; panics once frozen.
func (f *FrameState) appendLayer(l *EvaluatedLayer, world ResolvedTransform) {
	if f.frozen {
		panicFrozen("FrameState", "appendLayer")
	}
	f.layers = append(f.layers, l)
	f.worlds = append(f.worlds, world)
}

// MarshalJSON renders the frame for diagnostics and golden files.
func (f *FrameState) MarshalJSON() ([]byte, error) {
	type layerEntry struct {
		Layer *EvaluatedLayer   `json:"layer"`
		World ResolvedTransform `json:"world_transform"`
	}
	entries := make([]layerEntry, len(f.layers))
	for i, l := range f.layers {
		entries[i] = layerEntry{Layer: l, World: f.worlds[i]}
	}
	return json.Marshal(struct {
		Frame  int          `json:"frame"`
		Layers []layerEntry `json:"layers"`
		Audio  AudioState   `json:"audio"`
		Camera *CameraState `json:"camera,omitempty"`
	}{f.frame, entries, f.audio, f.camera})
}
