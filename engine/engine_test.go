package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Carmen-Shannon/oxy-tour/common"
	"github.com/Carmen-Shannon/oxy-tour/engine/camera"
	"github.com/Carmen-Shannon/oxy-tour/engine/game_object"
	"github.com/Carmen-Shannon/oxy-tour/engine/mesh"
	"github.com/Carmen-Shannon/oxy-tour/engine/renderer"
	"github.com/Carmen-Shannon/oxy-tour/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-tour/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-tour/engine/scene"
)

func newScene(t *testing.T, name string) scene.Scene {
	t.Helper()
	r := renderer.NewRenderer(renderer.BackendTypeHeadless, nil, renderer.WithPipelines(pipeline.Defaults()...))
	t.Cleanup(r.Release)
	id, err := r.CreateMesh("sphere", mesh.Sphere(1, 8, 6))
	require.NoError(t, err)
	s := scene.NewScene(name, camera.NewCamera(), r)
	s.Add(game_object.NewGameObject(
		game_object.WithMesh(id, 1),
		game_object.WithMaterial(material.NewMaterial()),
		game_object.WithPosition(common.Vec3{}),
	))
	return s
}

func TestStepRunsSchedulerThenScenes(t *testing.T) {
	e := NewEngine()
	a := newScene(t, "a")
	b := newScene(t, "b")
	b.SetActive(false)
	e.AddScene(1, a)
	e.AddScene(0, b)

	var dts []float32
	e.Scheduler().OnFrame(func(dt float32) { dts = append(dts, dt) })

	now := time.Now()
	e.Step(now)
	e.Step(now.Add(16 * time.Millisecond))

	require.Len(t, dts, 2)
	assert.Zero(t, dts[0])
	assert.InDelta(t, 0.016, dts[1], 1e-6)
	assert.Equal(t, uint64(2), a.Renderer().Stats().Frames)
	assert.Zero(t, b.Renderer().Stats().Frames)
}

func TestSceneRegistry(t *testing.T) {
	s := newScene(t, "a")
	e := NewEngine(WithScene(3, s))
	assert.Equal(t, s, e.Scene(3))

	scenes := e.Scenes()
	delete(scenes, 3)
	assert.NotNil(t, e.Scene(3))

	e.RemoveScene(3)
	assert.Nil(t, e.Scene(3))
}

func TestQuitIsIdempotent(t *testing.T) {
	e := NewEngine()
	e.Quit()
	e.Quit()
	select {
	case <-e.Done():
	default:
		t.Fatal("Done not closed after Quit")
	}
}

func TestStepRecoversFromPanic(t *testing.T) {
	e := NewEngine()
	e.Scheduler().OnFrame(func(float32) { panic("boom") })

	assert.NotPanics(t, func() { e.Step(time.Now()) })
	select {
	case <-e.Done():
	default:
		t.Fatal("panic did not signal quit")
	}
}

func TestRunWithoutWindowPanics(t *testing.T) {
	assert.Panics(t, func() { NewEngine().Run() })
}

func TestSetRenderFrameLimit(t *testing.T) {
	e := NewEngine(WithRenderFrameLimit(50)).(*engine)
	assert.Equal(t, 20*time.Millisecond, e.renderFrameLimit)
	e.SetRenderFrameLimit(0)
	assert.Zero(t, e.renderFrameLimit)
}
