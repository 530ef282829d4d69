package renderer

import (
	"github.com/Carmen-Shannon/oxy-tour/common"
	"github.com/Carmen-Shannon/oxy-tour/engine/mesh"
	"github.com/Carmen-Shannon/oxy-tour/engine/renderer/pipeline"
)

// RendererBackendType identifies the backend implementation used by the Renderer.
type RendererBackendType int

const (
	// BackendTypeWGPU selects the WebGPU-based rendering backend.
	BackendTypeWGPU RendererBackendType = iota

	// BackendTypeHeadless selects a backend that keeps resource bookkeeping and counts draws
	// without touching a GPU. The surface target may be nil.
	BackendTypeHeadless
)

// PresentMode controls how rendered frames are presented to the display surface.
type PresentMode int

const (
	// PresentModeVSync waits for the next vertical blank before presenting, capping frame rate
	// to the monitor's refresh rate. Eliminates tearing.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents frames immediately without waiting for vertical blank.
	// May cause screen tearing but provides the lowest latency.
	PresentModeUncapped
)

// MSAASampleCount controls the number of samples used for multisample anti-aliasing (MSAA).
// WebGPU guarantees support for 1 (off) and 4.
type MSAASampleCount uint32

const (
	// MSAAOff disables multisample anti-aliasing (sample count 1).
	MSAAOff MSAASampleCount = 1

	// MSAA4x enables 4x multisample anti-aliasing. This is the default.
	MSAA4x MSAASampleCount = 4
)

// RendererBackend is the device-facing half of the Renderer. The Renderer owns ID allocation
// and the pipeline cache; the backend owns whatever GPU objects sit behind the IDs.
type RendererBackend interface {
	// ConfigureSurface (re)creates the swapchain and the size-dependent attachments.
	//
	// Parameters:
	//   - width: surface width in pixels
	//   - height: surface height in pixels
	ConfigureSurface(width, height int)

	// SetPresentMode stores the present mode applied on the next ConfigureSurface.
	//
	// Parameters:
	//   - mode: the PresentMode to use
	SetPresentMode(mode PresentMode)

	// RegisterRenderPipeline compiles the render pipeline described by p and stores it on p.
	//
	// Parameters:
	//   - p: the Pipeline to compile
	//
	// Returns:
	//   - error: an error if pipeline creation fails
	RegisterRenderPipeline(p pipeline.Pipeline) error

	// InitMesh uploads vertex and index buffers for the geometry under the given ID.
	//
	// Parameters:
	//   - id: the mesh ID allocated by the Renderer
	//   - label: debug label for the GPU buffers
	//   - g: the geometry to upload
	//
	// Returns:
	//   - error: an error if buffer creation fails
	InitMesh(id common.MeshID, label string, g mesh.Geometry) error

	// ReleaseMesh frees the buffers behind id. Unknown IDs are ignored.
	//
	// Parameters:
	//   - id: the mesh to free
	ReleaseMesh(id common.MeshID)

	// InitTexture uploads RGBA pixels and builds the sampler and bind group for the texture.
	//
	// Parameters:
	//   - id: the texture ID allocated by the Renderer
	//   - label: debug label for the GPU objects
	//   - data: the pixel data and optional sampler override
	//
	// Returns:
	//   - error: an error if texture creation fails
	InitTexture(id common.TextureID, label string, data common.TextureStagingData) error

	// ReleaseTexture frees the texture behind id. Unknown IDs are ignored.
	//
	// Parameters:
	//   - id: the texture to free
	ReleaseTexture(id common.TextureID)

	// DrawFrame uploads the frame data, encodes one draw per item and presents the result.
	//
	// Parameters:
	//   - frame: the frame to draw
	//   - pipelines: the compiled pipeline cache keyed by pipeline key
	//
	// Returns:
	//   - int: the number of draw calls encoded
	//   - error: an error if the surface could not be acquired
	DrawFrame(frame *Frame, pipelines map[string]pipeline.Pipeline) (int, error)

	// Release frees every GPU object owned by the backend.
	Release()
}
