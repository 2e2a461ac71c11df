package testutil

import (
	"strconv"

	"github.com/weyl-labs/lattice/internal/timeline"
)

// LinearScalar builds an animated scalar property with linear keyframes
// at the given (frame, value) pairs.
func LinearScalar(static float64, pairs ...[2]float64) *timeline.AnimatableProperty {
	kfs := make([]timeline.Keyframe, len(pairs))
	for i, p := range pairs {
		kfs[i] = timeline.Keyframe{
			ID:     "kf-" + strconv.Itoa(i),
			Frame:  int(p[0]),
			Value:  timeline.Scalar(p[1]),
			Interp: timeline.InterpLinear,
		}
	}
	return timeline.NewAnimated(timeline.Scalar(static), kfs...)
}

// LinearVec3 builds an animated Vec3 property with linear keyframes.
func LinearVec3(static timeline.Vec3, frames []int, values []timeline.Vec3) *timeline.AnimatableProperty {
	kfs := make([]timeline.Keyframe, len(frames))
	for i := range frames {
		kfs[i] = timeline.Keyframe{
			ID:     "kf-" + strconv.Itoa(i),
			Frame:  frames[i],
			Value:  values[i],
			Interp: timeline.InterpLinear,
		}
	}
	return timeline.NewAnimated(static, kfs...)
}

// SimpleProject builds a one-layer project spanning the default timeline.
func SimpleProject(layerID string) (*timeline.Project, *timeline.Layer) {
	p := timeline.NewProject("proj-test", "test project")
	l := timeline.NewLayer(layerID, "layer "+layerID, timeline.LayerImage, 0, p.FrameCount-1)
	p.Layers = append(p.Layers, l)
	return p, l
}
