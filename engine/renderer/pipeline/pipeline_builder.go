package pipeline

import (
	"github.com/cogentcore/webgpu/wgpu"

	"github.com/Carmen-Shannon/oxy-tour/engine/renderer/material"
)

// PipelineBuilderOption is a functional option used to configure a Pipeline during construction.
type PipelineBuilderOption func(*pipeline)

// WithDepthWriteEnabled sets whether the pipeline writes depth. Depth testing is always on.
//
// Parameters:
//   - enabled: a boolean indicating whether depth writing should be enabled
//
// Returns:
//   - PipelineBuilderOption: a function that sets the depth write state for this pipeline
func WithDepthWriteEnabled(enabled bool) PipelineBuilderOption {
	return func(p *pipeline) {
		p.depthWriteEnabled = enabled
	}
}

// WithBlendEnabled sets whether standard alpha blending is applied to the color target.
//
// Parameters:
//   - enabled: a boolean indicating whether blending should be enabled
//
// Returns:
//   - PipelineBuilderOption: a function that sets the blend state for this pipeline
func WithBlendEnabled(enabled bool) PipelineBuilderOption {
	return func(p *pipeline) {
		p.blendEnabled = enabled
	}
}

// WithCullMode sets the face culling mode.
//
// Parameters:
//   - mode: the cull mode (e.g., wgpu.CullModeNone, wgpu.CullModeBack)
//
// Returns:
//   - PipelineBuilderOption: a function that sets the cull mode for this pipeline
func WithCullMode(mode wgpu.CullMode) PipelineBuilderOption {
	return func(p *pipeline) {
		p.cullMode = mode
	}
}

// WithTopology sets the primitive topology.
//
// Parameters:
//   - topology: the primitive topology (e.g., wgpu.PrimitiveTopologyPointList)
//
// Returns:
//   - PipelineBuilderOption: a function that sets the topology for this pipeline
func WithTopology(topology wgpu.PrimitiveTopology) PipelineBuilderOption {
	return func(p *pipeline) {
		p.topology = topology
	}
}

// Defaults returns the three pipeline variants materials can select by key:
// opaque lit triangles, blended double-sided triangles that skip depth writes, and blended points.
//
// Returns:
//   - []Pipeline: the pipeline variants in draw order
func Defaults() []Pipeline {
	return []Pipeline{
		NewPipeline(material.PipelineKeyOpaque),
		NewPipeline(material.PipelineKeyPoints,
			WithTopology(wgpu.PrimitiveTopologyPointList),
			WithCullMode(wgpu.CullModeNone),
			WithBlendEnabled(true),
			WithDepthWriteEnabled(false),
		),
		NewPipeline(material.PipelineKeyBlended,
			WithCullMode(wgpu.CullModeNone),
			WithBlendEnabled(true),
			WithDepthWriteEnabled(false),
		),
	}
}
