package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weyl-labs/lattice/internal/timeline"
)

const validProjectJSON = `{
	"meta": {"id": "proj-1", "name": "demo"},
	"frameCount": 120,
	"fps": 24,
	"layers": [
		{
			"id": "hero",
			"name": "Hero",
			"type": "image",
			"transform": {
				"position": {
					"kind": "vec3",
					"animated": true,
					"keyframes": [
						{"frame": 0, "value": [0, 0, 0]},
						{"frame": 40, "value": [100, 50, 0], "interp": "bezier"}
					]
				}
			},
			"opacity": {"static": [0.8]}
		}
	]
}`

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_ValidDocument(t *testing.T) {
	path := writeTemp(t, "demo.json", validProjectJSON)

	p, errs := Load(path, LoadModeFailFast)
	require.Empty(t, errs)
	require.NotNil(t, p)

	assert.Equal(t, "proj-1", p.Meta.ID)
	assert.Equal(t, "demo", p.Meta.Name)
	assert.Equal(t, 120, p.FrameCount)
	assert.Equal(t, 24, p.FPS)

	require.Len(t, p.Layers, 1)
	hero := p.Layers[0]
	assert.Equal(t, timeline.LayerImage, hero.Type)
	assert.True(t, hero.Visible, "visibility defaults to true")
	assert.Equal(t, timeline.Scalar(0.8), hero.Opacity.Static)

	pos := hero.Transform.Position
	require.True(t, pos.Animated)
	require.Len(t, pos.Keyframes, 2)
	assert.Equal(t, timeline.InterpLinear, pos.Keyframes[0].Interp, "interp defaults to linear")
	assert.Equal(t, timeline.InterpBezier, pos.Keyframes[1].Interp)
	assert.Equal(t, timeline.NewVec3(100, 50, 0), pos.Keyframes[1].Value)
	assert.NotEmpty(t, pos.Keyframes[0].ID, "keyframe ids are assigned when absent")
}

func TestLoad_DefaultsApplied(t *testing.T) {
	path := writeTemp(t, "minimal.json", `{"layers": [{"id": "solo"}]}`)

	p, errs := Load(path, LoadModeFailFast)
	require.Empty(t, errs)

	assert.Equal(t, timeline.DefaultFrameCount, p.FrameCount)
	assert.Equal(t, timeline.DefaultFPS, p.FPS)
	assert.NotEmpty(t, p.Meta.ID, "project id is generated when absent")

	require.Len(t, p.Layers, 1)
	l := p.Layers[0]
	assert.Equal(t, timeline.LayerImage, l.Type, "layer type defaults to image")
	assert.Equal(t, 0, l.InPoint)
	assert.Equal(t, timeline.DefaultFrameCount-1, l.OutPoint)
	assert.Equal(t, timeline.Scalar(1), l.Opacity.Static)
	assert.Equal(t, timeline.NewVec2(1, 1), l.Transform.Scale.Static)
	assert.Nil(t, p.Camera)
}

func TestLoad_YAMLDocument(t *testing.T) {
	path := writeTemp(t, "demo.yaml", `
meta:
  id: yaml-proj
frameCount: 50
layers:
  - id: bg
    type: shape
    opacity:
      static: [0.5]
`)

	p, errs := Load(path, LoadModeFailFast)
	require.Empty(t, errs)

	assert.Equal(t, "yaml-proj", p.Meta.ID)
	assert.Equal(t, 50, p.FrameCount)
	require.Len(t, p.Layers, 1)
	assert.Equal(t, timeline.LayerShape, p.Layers[0].Type)
	assert.Equal(t, timeline.Scalar(0.5), p.Layers[0].Opacity.Static)
}

func TestLoad_NotFound(t *testing.T) {
	p, errs := Load(filepath.Join(t.TempDir(), "missing.json"), LoadModeFailFast)

	assert.Nil(t, p)
	require.Len(t, errs, 1)
	var le *LoadError
	require.ErrorAs(t, errs[0], &le)
	assert.Equal(t, ErrCodeNotFound, le.Code)
	assert.NotEmpty(t, le.Path)
}

func TestLoadBytes_SchemaViolation(t *testing.T) {
	doc := []byte(`{"layers": [{"id": "a", "inPoint": -5}]}`)

	p, errs := LoadBytes(doc, FormatJSON, LoadModeFailFast)

	assert.Nil(t, p)
	require.Len(t, errs, 1)
	var le *LoadError
	require.ErrorAs(t, errs[0], &le)
	assert.Equal(t, ErrCodeSchema, le.Code)
}

func TestLoadBytes_CollectAllReportsEveryViolation(t *testing.T) {
	doc := []byte(`{"frameCount": 0, "layers": [{"id": "a", "inPoint": -5}]}`)

	_, failFast := LoadBytes(doc, FormatJSON, LoadModeFailFast)
	_, collected := LoadBytes(doc, FormatJSON, LoadModeCollectAll)

	assert.Len(t, failFast, 1)
	assert.GreaterOrEqual(t, len(collected), 2)
	for _, err := range collected {
		var le *LoadError
		require.ErrorAs(t, err, &le)
		assert.Equal(t, ErrCodeSchema, le.Code)
	}
}

func TestLoadBytes_InvalidJSON(t *testing.T) {
	p, errs := LoadBytes([]byte(`{"layers": [`), FormatJSON, LoadModeFailFast)

	assert.Nil(t, p)
	require.Len(t, errs, 1)
	var le *LoadError
	require.ErrorAs(t, errs[0], &le)
	assert.Equal(t, ErrCodeDecode, le.Code)
}

func TestLoadBytes_InvalidYAML(t *testing.T) {
	p, errs := LoadBytes([]byte("layers:\n  - id: [unclosed"), FormatYAML, LoadModeFailFast)

	assert.Nil(t, p)
	require.Len(t, errs, 1)
	var le *LoadError
	require.ErrorAs(t, errs[0], &le)
	assert.Equal(t, ErrCodeDecode, le.Code)
}

func TestLoadBytes_ComponentCountMismatch(t *testing.T) {
	// Schema admits any number list; the kind check happens on conversion.
	doc := []byte(`{"layers": [{"id": "a", "opacity": {"static": [1, 2, 3]}}]}`)

	p, errs := LoadBytes(doc, FormatJSON, LoadModeFailFast)

	assert.Nil(t, p)
	require.Len(t, errs, 1)
	var le *LoadError
	require.ErrorAs(t, errs[0], &le)
	assert.Equal(t, ErrCodeConvert, le.Code)
}

func TestLoadBytes_NonMonotonicKeyframesStillLoad(t *testing.T) {
	// Keyframe ordering is an evaluation-time concern: the kernel falls
	// back to the static value rather than the loader rejecting the file.
	doc := []byte(`{
		"layers": [{
			"id": "a",
			"opacity": {
				"static": [0.4],
				"animated": true,
				"keyframes": [
					{"frame": 30, "value": [1]},
					{"frame": 10, "value": [0]}
				]
			}
		}]
	}`)

	p, errs := LoadBytes(doc, FormatJSON, LoadModeFailFast)
	require.Empty(t, errs)
	require.Len(t, p.Layers, 1)
	assert.False(t, p.Layers[0].Opacity.WellFormed())
}

func TestLoadBytes_CameraDecoded(t *testing.T) {
	doc := []byte(`{
		"layers": [],
		"camera": {
			"position": {"static": [10, 20, 0]},
			"zoom": {"static": [2]}
		}
	}`)

	p, errs := LoadBytes(doc, FormatJSON, LoadModeFailFast)
	require.Empty(t, errs)
	require.NotNil(t, p.Camera)
	assert.Equal(t, timeline.NewVec3(10, 20, 0), p.Camera.Position.Static)
	assert.Equal(t, timeline.Scalar(2), p.Camera.Zoom.Static)
}

func TestLoadBytes_ExpressionDecoded(t *testing.T) {
	doc := []byte(`{
		"layers": [{
			"id": "a",
			"opacity": {
				"static": [1],
				"expression": {"source": "audio.amplitude", "enabled": true}
			}
		}]
	}`)

	p, errs := LoadBytes(doc, FormatJSON, LoadModeFailFast)
	require.Empty(t, errs)

	expr := p.Layers[0].Opacity.Expression
	require.NotNil(t, expr)
	assert.True(t, expr.Enabled)
	assert.Equal(t, "audio.amplitude", expr.Source)
}

func TestFormatForPath(t *testing.T) {
	assert.Equal(t, FormatYAML, FormatForPath("project.yaml"))
	assert.Equal(t, FormatYAML, FormatForPath("project.YML"))
	assert.Equal(t, FormatJSON, FormatForPath("project.json"))
	assert.Equal(t, FormatJSON, FormatForPath("project"))
}

func TestLoad_AttachesPathToErrors(t *testing.T) {
	path := writeTemp(t, "bad.json", `{"frameCount": -1}`)

	_, errs := Load(path, LoadModeFailFast)
	require.Len(t, errs, 1)
	var le *LoadError
	require.ErrorAs(t, errs[0], &le)
	assert.Equal(t, path, le.Path)
	assert.Contains(t, le.Error(), path)
}
