package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Carmen-Shannon/oxy-tour/common"
	"github.com/Carmen-Shannon/oxy-tour/engine/camera"
	"github.com/Carmen-Shannon/oxy-tour/engine/game_object"
	"github.com/Carmen-Shannon/oxy-tour/engine/light"
	"github.com/Carmen-Shannon/oxy-tour/engine/mesh"
	"github.com/Carmen-Shannon/oxy-tour/engine/renderer"
	"github.com/Carmen-Shannon/oxy-tour/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-tour/engine/renderer/pipeline"
)

func newTestScene(t *testing.T) (Scene, common.MeshID) {
	t.Helper()
	r := renderer.NewRenderer(renderer.BackendTypeHeadless, nil, renderer.WithPipelines(pipeline.Defaults()...))
	t.Cleanup(r.Release)
	id, err := r.CreateMesh("sphere", mesh.Sphere(1, 8, 6))
	require.NoError(t, err)

	cam := camera.NewCamera(
		camera.WithPosition(common.Vec3{Z: 10}),
		camera.WithTarget(common.Vec3{}),
	)
	return NewScene("test", cam, r), id
}

func object(meshID common.MeshID, radius float32, pos common.Vec3, opts ...material.MaterialBuilderOption) game_object.GameObject {
	return game_object.NewGameObject(
		game_object.WithMesh(meshID, radius),
		game_object.WithMaterial(material.NewMaterial(opts...)),
		game_object.WithPosition(pos),
	)
}

func TestNewScenePanicsOnNilArgs(t *testing.T) {
	r := renderer.NewRenderer(renderer.BackendTypeHeadless, nil)
	defer r.Release()
	assert.Panics(t, func() { NewScene("x", nil, r) })
	assert.Panics(t, func() { NewScene("x", camera.NewCamera(), nil) })
}

func TestRegistry(t *testing.T) {
	s, meshID := newTestScene(t)

	a := s.Add(object(meshID, 1, common.Vec3{}))
	b := s.Add(object(meshID, 1, common.Vec3{}))
	assert.Equal(t, uint64(1), a)
	assert.Equal(t, uint64(2), b)
	assert.Equal(t, 2, s.Count())
	assert.NotNil(t, s.Get(a))

	s.Remove(a)
	s.Remove(a)
	assert.Nil(t, s.Get(a))
	assert.Equal(t, 1, s.Count())

	explicit := object(meshID, 1, common.Vec3{})
	explicit.SetID(10)
	s.Add(explicit)
	assert.Equal(t, uint64(11), s.Add(object(meshID, 1, common.Vec3{})))

	objs := s.Objects()
	require.Len(t, objs, 3)
	assert.Equal(t, uint64(2), objs[0].ID())
	assert.Equal(t, uint64(11), objs[2].ID())

	s.AddLight(light.NewLight(light.LightTypeAmbient))
	s.Clear()
	assert.Zero(t, s.Count())
	assert.Empty(t, s.Lights())
}

func TestBuildFrameOrdersAndCulls(t *testing.T) {
	s, meshID := newTestScene(t)

	opaque := object(meshID, 1, common.Vec3{})
	behind := object(meshID, 1, common.Vec3{Z: 50})
	near := object(meshID, 1, common.Vec3{Z: 5}, material.WithTransparent(), material.WithOpacity(0.5))
	far := object(meshID, 1, common.Vec3{Z: -20}, material.WithTransparent())
	stars := object(meshID, 0, common.Vec3{Z: 100}, material.WithPoints())
	disabled := object(meshID, 1, common.Vec3{})
	disabled.SetEnabled(false)
	for _, o := range []game_object.GameObject{near, opaque, behind, far, stars, disabled} {
		s.Add(o)
	}

	frame := s.BuildFrame()
	require.Len(t, frame.Items, 4)
	assert.Equal(t, material.PipelineKeyOpaque, frame.Items[0].PipelineKey)
	assert.Equal(t, material.PipelineKeyPoints, frame.Items[1].PipelineKey)
	assert.Equal(t, float32(-20), frame.Items[2].Model[14])
	assert.Equal(t, float32(5), frame.Items[3].Model[14])
	assert.Equal(t, float32(0.5), frame.Items[3].Material.Color[3])
	assert.Equal(t, float32(10), frame.CameraPos.Z)

	s.SetCullingDisabled(true)
	assert.Len(t, s.BuildFrame().Items, 5)
}

func TestBuildFrameLighting(t *testing.T) {
	s, _ := newTestScene(t)
	sun := light.NewLight(light.LightTypePoint, light.WithPosition(common.Vec3{X: -50}), light.WithIntensity(5), light.WithRange(150))
	s.AddLight(sun)
	s.AddLight(light.NewLight(light.LightTypeAmbient, light.WithColor(0x404040), light.WithIntensity(1.5)))

	frame := s.BuildFrame()
	assert.Equal(t, float32(1), frame.Lighting.Counts[0])
	assert.Equal(t, float32(-50), frame.Lighting.Points[0].PositionRange[0])

	s.RemoveLight(sun)
	assert.Len(t, s.Lights(), 1)
	assert.Zero(t, s.BuildFrame().Lighting.Counts[0])
}

func TestRenderDrawsThroughRenderer(t *testing.T) {
	s, meshID := newTestScene(t)
	s.SetClearColor(0x000010)
	s.Add(object(meshID, 1, common.Vec3{}))

	require.NoError(t, s.Render())
	stats := s.Renderer().Stats()
	assert.Equal(t, uint64(1), stats.Frames)
	assert.Equal(t, 1, stats.DrawCalls)

	s.SetActive(false)
	require.NoError(t, s.Render())
	assert.Equal(t, uint64(1), s.Renderer().Stats().Frames)
}
