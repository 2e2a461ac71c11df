package timeline

import (
	"sort"

	"github.com/google/uuid"
)

// Interpolation selects how the segment starting at a keyframe is evaluated.
type Interpolation string

const (
	// InterpLinear blends linearly between the keyframe and its successor.
	InterpLinear Interpolation = "linear"
	// InterpBezier applies tangent-handle easing before blending.
	InterpBezier Interpolation = "bezier"
	// InterpHold keeps the keyframe's value until the next keyframe.
	InterpHold Interpolation = "hold"
)

// ControlMode describes how a keyframe's tangent handles are linked.
// It is authoring metadata: the kernel reads the handles themselves.
type ControlMode string

const (
	ControlSmooth ControlMode = "smooth"
	ControlCorner ControlMode = "corner"
	ControlAuto   ControlMode = "auto"
)

// Tangent is a bezier handle in normalized segment space.
// X is a fraction of the segment's frame span, Y a fraction of the value
// delta. The zero Tangent means "no influence" (linear in that direction).
type Tangent struct {
	X, Y float64
}

// Keyframe pins a value at a frame. Immutable once constructed by
// authoring; evaluation never writes to it.
type Keyframe struct {
	ID          string
	Frame       int // logical frame number, >= 0
	Value       Value
	Interp      Interpolation
	InHandle    Tangent
	OutHandle   Tangent
	ControlMode ControlMode
}

// Expression marks a property as driven by an external expression.
// The core never executes expression code: when Enabled, the engine asks
// its ExpressionSource for the evaluated result and substitutes it
// wholesale for the keyframe-derived value.
type Expression struct {
	Source  string // expression text, opaque to the core
	Enabled bool
}

// AnimatableProperty is a value channel on a layer: a static value,
// optionally overridden by keyframes and/or an expression.
type AnimatableProperty struct {
	Static     Value
	Animated   bool
	Keyframes  []Keyframe
	Expression *Expression
}

// NewStatic creates a non-animated property holding v.
func NewStatic(v Value) *AnimatableProperty {
	return &AnimatableProperty{Static: v}
}

// NewAnimated creates an animated property with the given keyframes.
// The static value doubles as the malformed-data fallback.
func NewAnimated(static Value, kfs ...Keyframe) *AnimatableProperty {
	return &AnimatableProperty{Static: static, Animated: true, Keyframes: kfs}
}

// WellFormed reports whether the keyframe list satisfies the ordering
// invariant: frames strictly ascending and every value of the same kind
// as the static value's kind (when both are present).
func (p *AnimatableProperty) WellFormed() bool {
	for i, kf := range p.Keyframes {
		if kf.Value == nil {
			return false
		}
		if i > 0 && kf.Frame <= p.Keyframes[i-1].Frame {
			return false
		}
	}
	return true
}

// LayerType identifies the renderer-facing kind of a layer.
type LayerType string

const (
	LayerImage     LayerType = "image"
	LayerText      LayerType = "text"
	LayerShape     LayerType = "shape"
	LayerParticles LayerType = "particles"
	LayerNull      LayerType = "null" // grouping-only layer, never drawn
)

// Transform is the animatable transform bundle every layer carries.
type Transform struct {
	Position *AnimatableProperty // Vec3
	Rotation *AnimatableProperty // Scalar, degrees
	Scale    *AnimatableProperty // Vec2, 1.0 = 100%
	Origin   *AnimatableProperty // Vec3, pivot point
}

// DefaultTransform returns an identity transform with static properties.
func DefaultTransform() Transform {
	return Transform{
		Position: NewStatic(Vec3{}),
		Rotation: NewStatic(Scalar(0)),
		Scale:    NewStatic(Vec2{X: 1, Y: 1}),
		Origin:   NewStatic(Vec3{}),
	}
}

// Layer is one element of a composition. Layers form a forest via
// ParentID (a back-reference with no ownership semantics).
type Layer struct {
	ID       string
	Name     string
	Type     LayerType
	Visible  bool
	InPoint  int
	OutPoint int
	ParentID string // empty = no parent

	Transform Transform
	Opacity   *AnimatableProperty // Scalar in [0, 1]

	// Properties holds type-specific animatable channels (text tracking,
	// particle emission rate, ...). Evaluated in sorted key order so the
	// resolved output is iteration-order independent.
	Properties map[string]*AnimatableProperty
}

// NewLayer creates a visible layer with an identity transform, full
// opacity, and the given in/out range.
func NewLayer(id, name string, typ LayerType, inPoint, outPoint int) *Layer {
	return &Layer{
		ID:        id,
		Name:      name,
		Type:      typ,
		Visible:   true,
		InPoint:   inPoint,
		OutPoint:  outPoint,
		Transform: DefaultTransform(),
		Opacity:   NewStatic(Scalar(1)),
	}
}

// PropertyNames returns the type-specific property keys in sorted order.
func (l *Layer) PropertyNames() []string {
	if len(l.Properties) == 0 {
		return nil
	}
	names := make([]string, 0, len(l.Properties))
	for name := range l.Properties {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Camera is the optional composition camera: an animatable position and
// zoom evaluated through the same kernel as layer properties.
type Camera struct {
	Position *AnimatableProperty // Vec3
	Zoom     *AnimatableProperty // Scalar, 1.0 = no zoom
}

// DefaultCamera returns a static camera at the origin with zoom 1.
func DefaultCamera() *Camera {
	return &Camera{
		Position: NewStatic(Vec3{}),
		Zoom:     NewStatic(Scalar(1)),
	}
}

// Meta carries project identity.
type Meta struct {
	ID   string
	Name string
}

// Default timeline dimensions for projects that do not specify them.
const (
	DefaultFrameCount = 81
	DefaultFPS        = 16
)

// Project is the root of the parsed project graph. Layers is ordered
// back-to-front; that order is meaningful and preserved by evaluation.
type Project struct {
	Meta       Meta
	FrameCount int
	FPS        int
	Layers     []*Layer
	Camera     *Camera // nil = no camera
}

// NewProject creates an empty project with default timeline dimensions.
func NewProject(id, name string) *Project {
	return &Project{
		Meta:       Meta{ID: id, Name: name},
		FrameCount: DefaultFrameCount,
		FPS:        DefaultFPS,
	}
}

// LayerByID returns the layer with the given id, or nil.
// Linear scan: layer counts are small and the result order of Layers
// must stay authoritative, so no index is maintained.
func (p *Project) LayerByID(id string) *Layer {
	for _, l := range p.Layers {
		if l.ID == id {
			return l
		}
	}
	return nil
}

// NewID returns a new unique identifier for layers, keyframes, and
// projects. UUIDv4; stable ids come from authoring, not evaluation.
func NewID() string {
	return uuid.NewString()
}
