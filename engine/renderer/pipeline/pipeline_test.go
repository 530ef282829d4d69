package pipeline

import (
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Carmen-Shannon/oxy-tour/engine/renderer/material"
)

func TestDefaults(t *testing.T) {
	ps := Defaults()
	require.Len(t, ps, 3)

	byKey := map[string]Pipeline{}
	for _, p := range ps {
		byKey[p.PipelineKey()] = p
	}

	opaque := byKey[material.PipelineKeyOpaque]
	require.NotNil(t, opaque)
	assert.True(t, opaque.DepthWriteEnabled())
	assert.False(t, opaque.BlendEnabled())
	assert.Equal(t, wgpu.CullModeBack, opaque.CullMode())

	blended := byKey[material.PipelineKeyBlended]
	require.NotNil(t, blended)
	assert.False(t, blended.DepthWriteEnabled())
	assert.True(t, blended.BlendEnabled())
	assert.Equal(t, wgpu.CullModeNone, blended.CullMode())

	points := byKey[material.PipelineKeyPoints]
	require.NotNil(t, points)
	assert.Equal(t, wgpu.PrimitiveTopologyPointList, points.Topology())
}

func TestDescriptor(t *testing.T) {
	p := NewPipeline("test", WithBlendEnabled(true))
	d := p.Descriptor(nil, nil, wgpu.TextureFormatBGRA8Unorm, 4)

	assert.Equal(t, "test_pipeline", d.Label)
	assert.Equal(t, uint32(4), d.Multisample.Count)
	require.Len(t, d.Vertex.Buffers, 1)
	assert.Equal(t, uint64(32), d.Vertex.Buffers[0].ArrayStride)
	assert.Len(t, d.Vertex.Buffers[0].Attributes, 3)
	require.Len(t, d.Fragment.Targets, 1)
	assert.NotNil(t, d.Fragment.Targets[0].Blend)
	assert.Equal(t, wgpu.TextureFormatBGRA8Unorm, d.Fragment.Targets[0].Format)

	opaque := NewPipeline("opaque").Descriptor(nil, nil, wgpu.TextureFormatBGRA8Unorm, 1)
	assert.Nil(t, opaque.Fragment.Targets[0].Blend)
	assert.True(t, opaque.DepthStencil.DepthWriteEnabled)
}
