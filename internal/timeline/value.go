package timeline

import "fmt"

// Value is a sealed interface over the animatable value types.
// Only Scalar, Vec2, Vec3, and Color implement it.
//
// All components are float64. Interpolation is defined component-wise
// between two values of the same kind; the kernel treats a kind mismatch
// between adjacent keyframes as malformed data.
type Value interface {
	value() // Sealed - only the types below implement it.
	Kind() ValueKind
}

// ValueKind identifies the concrete type behind a Value.
type ValueKind string

const (
	KindScalar ValueKind = "scalar"
	KindVec2   ValueKind = "vec2"
	KindVec3   ValueKind = "vec3"
	KindColor  ValueKind = "color"
)

// Scalar is a single float64 value (opacity, rotation, zoom, ...).
type Scalar float64

func (Scalar) value()          {}
func (Scalar) Kind() ValueKind { return KindScalar }

// Vec2 is a 2D vector (scale, anchor offsets).
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (Vec2) value()          {}
func (Vec2) Kind() ValueKind { return KindVec2 }

// Vec3 is a 3D vector (position, origin).
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

func (Vec3) value()          {}
func (Vec3) Kind() ValueKind { return KindVec3 }

// Color is an RGBA color with float64 channels in [0, 1].
type Color struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
	A float64 `json:"a"`
}

func (Color) value()          {}
func (Color) Kind() ValueKind { return KindColor }

// NewScalar creates a Scalar value.
func NewScalar(v float64) Scalar { return Scalar(v) }

// NewVec2 creates a Vec2 value.
func NewVec2(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

// NewVec3 creates a Vec3 value.
func NewVec3(x, y, z float64) Vec3 { return Vec3{X: x, Y: y, Z: z} }

// NewColor creates a Color value.
func NewColor(r, g, b, a float64) Color { return Color{R: r, G: g, B: b, A: a} }

// Components returns the value's components as a flat slice.
// Scalar → 1 element, Vec2 → 2, Vec3 → 3, Color → 4.
func Components(v Value) []float64 {
	switch val := v.(type) {
	case Scalar:
		return []float64{float64(val)}
	case Vec2:
		return []float64{val.X, val.Y}
	case Vec3:
		return []float64{val.X, val.Y, val.Z}
	case Color:
		return []float64{val.R, val.G, val.B, val.A}
	default:
		return nil
	}
}

// FromComponents reconstructs a Value of the given kind from components.
// Returns an error if the component count does not match the kind.
func FromComponents(kind ValueKind, c []float64) (Value, error) {
	switch kind {
	case KindScalar:
		if len(c) != 1 {
			return nil, fmt.Errorf("scalar needs 1 component, got %d", len(c))
		}
		return Scalar(c[0]), nil
	case KindVec2:
		if len(c) != 2 {
			return nil, fmt.Errorf("vec2 needs 2 components, got %d", len(c))
		}
		return Vec2{X: c[0], Y: c[1]}, nil
	case KindVec3:
		if len(c) != 3 {
			return nil, fmt.Errorf("vec3 needs 3 components, got %d", len(c))
		}
		return Vec3{X: c[0], Y: c[1], Z: c[2]}, nil
	case KindColor:
		if len(c) != 4 {
			return nil, fmt.Errorf("color needs 4 components, got %d", len(c))
		}
		return Color{R: c[0], G: c[1], B: c[2], A: c[3]}, nil
	default:
		return nil, fmt.Errorf("unknown value kind %q", kind)
	}
}
