package loader

import (
	"fmt"

	"github.com/weyl-labs/lattice/internal/timeline"
)

// Document structs mirror the project JSON. Pointer fields distinguish
// "absent" from zero so defaults can be applied after decoding.

type projectDoc struct {
	Meta       *metaDoc   `json:"meta"`
	FrameCount *int       `json:"frameCount"`
	FPS        *int       `json:"fps"`
	Layers     []layerDoc `json:"layers"`
	Camera     *cameraDoc `json:"camera"`
}

type metaDoc struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type cameraDoc struct {
	Position *propertyDoc `json:"position"`
	Zoom     *propertyDoc `json:"zoom"`
}

type layerDoc struct {
	ID         string                  `json:"id"`
	Name       string                  `json:"name"`
	Type       string                  `json:"type"`
	Visible    *bool                   `json:"visible"`
	InPoint    *int                    `json:"inPoint"`
	OutPoint   *int                    `json:"outPoint"`
	ParentID   string                  `json:"parentId"`
	Transform  *transformDoc           `json:"transform"`
	Opacity    *propertyDoc            `json:"opacity"`
	Properties map[string]*propertyDoc `json:"properties"`
}

type transformDoc struct {
	Position *propertyDoc `json:"position"`
	Rotation *propertyDoc `json:"rotation"`
	Scale    *propertyDoc `json:"scale"`
	Origin   *propertyDoc `json:"origin"`
}

type propertyDoc struct {
	Kind       string         `json:"kind"`
	Static     []float64      `json:"static"`
	Animated   bool           `json:"animated"`
	Keyframes  []keyframeDoc  `json:"keyframes"`
	Expression *expressionDoc `json:"expression"`
}

type keyframeDoc struct {
	ID          string     `json:"id"`
	Frame       int        `json:"frame"`
	Value       []float64  `json:"value"`
	Interp      string     `json:"interp"`
	InHandle    tangentDoc `json:"inHandle"`
	OutHandle   tangentDoc `json:"outHandle"`
	ControlMode string     `json:"controlMode"`
}

type tangentDoc struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type expressionDoc struct {
	Source  string `json:"source"`
	Enabled bool   `json:"enabled"`
}

// toProject converts a validated document into the timeline graph,
// applying defaults for every absent field.
func (d *projectDoc) toProject() (*timeline.Project, error) {
	p := &timeline.Project{
		FrameCount: timeline.DefaultFrameCount,
		FPS:        timeline.DefaultFPS,
	}
	if d.Meta != nil {
		p.Meta = timeline.Meta{ID: d.Meta.ID, Name: d.Meta.Name}
	}
	if p.Meta.ID == "" {
		p.Meta.ID = timeline.NewID()
	}
	if d.FrameCount != nil {
		p.FrameCount = *d.FrameCount
	}
	if d.FPS != nil {
		p.FPS = *d.FPS
	}

	for i := range d.Layers {
		l, err := d.Layers[i].toLayer()
		if err != nil {
			return nil, fmt.Errorf("layer %d (%s): %w", i, d.Layers[i].ID, err)
		}
		p.Layers = append(p.Layers, l)
	}

	if d.Camera != nil {
		cam := timeline.DefaultCamera()
		var err error
		if cam.Position, err = toProperty(d.Camera.Position, timeline.KindVec3, cam.Position); err != nil {
			return nil, fmt.Errorf("camera position: %w", err)
		}
		if cam.Zoom, err = toProperty(d.Camera.Zoom, timeline.KindScalar, cam.Zoom); err != nil {
			return nil, fmt.Errorf("camera zoom: %w", err)
		}
		p.Camera = cam
	}

	return p, nil
}

func (d *layerDoc) toLayer() (*timeline.Layer, error) {
	typ := timeline.LayerType(d.Type)
	if d.Type == "" {
		typ = timeline.LayerImage
	}

	outPoint := timeline.DefaultFrameCount - 1
	if d.OutPoint != nil {
		outPoint = *d.OutPoint
	}
	inPoint := 0
	if d.InPoint != nil {
		inPoint = *d.InPoint
	}

	l := timeline.NewLayer(d.ID, d.Name, typ, inPoint, outPoint)
	l.ParentID = d.ParentID
	if d.Visible != nil {
		l.Visible = *d.Visible
	}

	var err error
	if d.Transform != nil {
		t := &l.Transform
		if t.Position, err = toProperty(d.Transform.Position, timeline.KindVec3, t.Position); err != nil {
			return nil, fmt.Errorf("transform.position: %w", err)
		}
		if t.Rotation, err = toProperty(d.Transform.Rotation, timeline.KindScalar, t.Rotation); err != nil {
			return nil, fmt.Errorf("transform.rotation: %w", err)
		}
		if t.Scale, err = toProperty(d.Transform.Scale, timeline.KindVec2, t.Scale); err != nil {
			return nil, fmt.Errorf("transform.scale: %w", err)
		}
		if t.Origin, err = toProperty(d.Transform.Origin, timeline.KindVec3, t.Origin); err != nil {
			return nil, fmt.Errorf("transform.origin: %w", err)
		}
	}
	if l.Opacity, err = toProperty(d.Opacity, timeline.KindScalar, l.Opacity); err != nil {
		return nil, fmt.Errorf("opacity: %w", err)
	}

	if len(d.Properties) > 0 {
		l.Properties = make(map[string]*timeline.AnimatableProperty, len(d.Properties))
		for name, pd := range d.Properties {
			prop, err := toProperty(pd, timeline.KindScalar, timeline.NewStatic(timeline.Scalar(0)))
			if err != nil {
				return nil, fmt.Errorf("property %q: %w", name, err)
			}
			l.Properties[name] = prop
		}
	}

	return l, nil
}

// toProperty decodes a property document. defKind drives component
// decoding when the document omits an explicit kind; def is returned for
// absent documents.
func toProperty(d *propertyDoc, defKind timeline.ValueKind, def *timeline.AnimatableProperty) (*timeline.AnimatableProperty, error) {
	if d == nil {
		return def, nil
	}

	kind := defKind
	if d.Kind != "" {
		kind = timeline.ValueKind(d.Kind)
	}

	p := &timeline.AnimatableProperty{Animated: d.Animated}
	if d.Static != nil {
		v, err := timeline.FromComponents(kind, d.Static)
		if err != nil {
			return nil, fmt.Errorf("static: %w", err)
		}
		p.Static = v
	} else if def != nil {
		p.Static = def.Static
	}

	for i, kd := range d.Keyframes {
		v, err := timeline.FromComponents(kind, kd.Value)
		if err != nil {
			return nil, fmt.Errorf("keyframe %d: %w", i, err)
		}
		interp := timeline.Interpolation(kd.Interp)
		if kd.Interp == "" {
			interp = timeline.InterpLinear
		}
		mode := timeline.ControlMode(kd.ControlMode)
		if kd.ControlMode == "" {
			mode = timeline.ControlSmooth
		}
		id := kd.ID
		if id == "" {
			id = timeline.NewID()
		}
		p.Keyframes = append(p.Keyframes, timeline.Keyframe{
			ID:          id,
			Frame:       kd.Frame,
			Value:       v,
			Interp:      interp,
			InHandle:    timeline.Tangent{X: kd.InHandle.X, Y: kd.InHandle.Y},
			OutHandle:   timeline.Tangent{X: kd.OutHandle.X, Y: kd.OutHandle.Y},
			ControlMode: mode,
		})
	}

	if d.Expression != nil {
		p.Expression = &timeline.Expression{
			Source:  d.Expression.Source,
			Enabled: d.Expression.Enabled,
		}
	}

	return p, nil
}
