package renderer

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Carmen-Shannon/oxy-tour/common"
	"github.com/Carmen-Shannon/oxy-tour/engine/mesh"
	"github.com/Carmen-Shannon/oxy-tour/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-tour/engine/renderer/pipeline"
)

func newHeadless(t *testing.T) Renderer {
	t.Helper()
	r := NewRenderer(BackendTypeHeadless, nil, WithPipelines(pipeline.Defaults()...))
	t.Cleanup(r.Release)
	return r
}

func TestGPUTypeSizes(t *testing.T) {
	var f GPUFrameUniform
	var d GPUDrawData
	assert.Equal(t, 272, f.Size())
	assert.Equal(t, 112, d.Size())
	assert.Len(t, f.Marshal(), 272)
}

func TestMarshalDraws(t *testing.T) {
	var model [16]float32
	common.Identity(model[:])
	model[12] = 5
	items := []DrawItem{
		{Model: model, Material: material.GPUMaterial{Color: [4]float32{0.25, 0.5, 0.75, 1}}},
		{Model: model},
	}
	buf := marshalDraws(items)
	require.Len(t, buf, 224)

	f := func(off int) float32 { return math.Float32frombits(binary.LittleEndian.Uint32(buf[off:])) }
	assert.Equal(t, float32(5), f(12*4))
	assert.Equal(t, float32(0.5), f(64+4))
	assert.Equal(t, float32(1), f(112))
}

func TestRendererPipelines(t *testing.T) {
	r := newHeadless(t)
	assert.NotNil(t, r.Pipeline(material.PipelineKeyOpaque))
	assert.NotNil(t, r.Pipeline(material.PipelineKeyBlended))
	assert.NotNil(t, r.Pipeline(material.PipelineKeyPoints))
	assert.Nil(t, r.Pipeline("missing"))

	// Registering an existing key is a no-op.
	require.NoError(t, r.RegisterPipelines(pipeline.NewPipeline(material.PipelineKeyOpaque)))
}

func TestRendererMeshLifecycle(t *testing.T) {
	r := newHeadless(t)

	_, err := r.CreateMesh("empty", mesh.Geometry{})
	assert.Error(t, err)

	a, err := r.CreateMesh("sphere", mesh.Sphere(1, 8, 6))
	require.NoError(t, err)
	b, err := r.CreateMesh("ring", mesh.Ring(1, 2, 16))
	require.NoError(t, err)
	assert.NotZero(t, a)
	assert.NotEqual(t, a, b)
	assert.Equal(t, 2, r.Stats().Meshes)

	r.ReleaseMesh(a)
	r.ReleaseMesh(a)
	assert.Equal(t, 1, r.Stats().Meshes)
}

func TestRendererTextureValidation(t *testing.T) {
	r := newHeadless(t)

	_, err := r.CreateTexture("bad", common.TextureStagingData{Pixels: []byte{1, 2, 3}, Width: 1, Height: 1})
	assert.Error(t, err)

	id, err := r.CreateTexture("ok", common.TextureStagingData{Pixels: make([]byte, 16), Width: 2, Height: 2})
	require.NoError(t, err)
	assert.NotZero(t, id)
	assert.Equal(t, 1, r.Stats().Textures)

	r.ReleaseTexture(id)
	assert.Equal(t, 0, r.Stats().Textures)
}

func TestRendererDrawSkipsMissingResources(t *testing.T) {
	r := newHeadless(t)
	m, err := r.CreateMesh("sphere", mesh.Sphere(1, 8, 6))
	require.NoError(t, err)

	frame := &Frame{Items: []DrawItem{
		{Mesh: m, PipelineKey: material.PipelineKeyOpaque},
		{Mesh: m, PipelineKey: "unknown"},
		{Mesh: 999, PipelineKey: material.PipelineKeyOpaque},
	}}
	require.NoError(t, r.Draw(frame))
	assert.Equal(t, DefaultClearColor, frame.Clear)

	s := r.Stats()
	assert.Equal(t, uint64(1), s.Frames)
	assert.Equal(t, 1, s.DrawCalls)
}

func TestRendererReleased(t *testing.T) {
	r := NewRenderer(BackendTypeHeadless, nil)
	r.Release()
	r.Release()

	assert.ErrorIs(t, r.Draw(&Frame{}), ErrReleased)
	_, err := r.CreateMesh("late", mesh.Sphere(1, 4, 4))
	assert.ErrorIs(t, err, ErrReleased)
	r.Resize(10, 10)
}
