package timeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnimatableProperty_WellFormed(t *testing.T) {
	good := NewAnimated(Scalar(0),
		Keyframe{Frame: 0, Value: Scalar(1)},
		Keyframe{Frame: 10, Value: Scalar(2)},
	)
	assert.True(t, good.WellFormed())

	empty := NewStatic(Scalar(1))
	assert.True(t, empty.WellFormed(), "no keyframes is trivially well-formed")

	unordered := NewAnimated(Scalar(0),
		Keyframe{Frame: 10, Value: Scalar(1)},
		Keyframe{Frame: 0, Value: Scalar(2)},
	)
	assert.False(t, unordered.WellFormed())

	duplicate := NewAnimated(Scalar(0),
		Keyframe{Frame: 5, Value: Scalar(1)},
		Keyframe{Frame: 5, Value: Scalar(2)},
	)
	assert.False(t, duplicate.WellFormed(), "frame values must be unique")

	missingValue := NewAnimated(Scalar(0),
		Keyframe{Frame: 0},
	)
	assert.False(t, missingValue.WellFormed())
}

func TestNewLayer_Defaults(t *testing.T) {
	l := NewLayer("l1", "hero", LayerImage, 0, 80)

	assert.True(t, l.Visible)
	assert.Equal(t, Scalar(1), l.Opacity.Static)
	assert.Equal(t, Vec2{X: 1, Y: 1}, l.Transform.Scale.Static)
	assert.Equal(t, Vec3{}, l.Transform.Position.Static)
	assert.Empty(t, l.ParentID)
}

func TestLayer_PropertyNames_Sorted(t *testing.T) {
	l := NewLayer("l1", "text", LayerText, 0, 80)
	l.Properties = map[string]*AnimatableProperty{
		"tracking":  NewStatic(Scalar(0)),
		"blur":      NewStatic(Scalar(0)),
		"font_size": NewStatic(Scalar(12)),
	}

	assert.Equal(t, []string{"blur", "font_size", "tracking"}, l.PropertyNames())
}

func TestProject_LayerByID(t *testing.T) {
	p := NewProject("p1", "demo")
	a := NewLayer("a", "a", LayerImage, 0, 80)
	b := NewLayer("b", "b", LayerImage, 0, 80)
	p.Layers = append(p.Layers, a, b)

	assert.Same(t, a, p.LayerByID("a"))
	assert.Same(t, b, p.LayerByID("b"))
	assert.Nil(t, p.LayerByID("missing"))
}

func TestNewProject_Defaults(t *testing.T) {
	p := NewProject("p1", "demo")

	assert.Equal(t, DefaultFrameCount, p.FrameCount)
	assert.Equal(t, DefaultFPS, p.FPS)
	assert.Nil(t, p.Camera)
}

func TestNewID_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewID()
		require.NotEmpty(t, id)
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}
