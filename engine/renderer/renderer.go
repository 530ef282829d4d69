package renderer

import (
	"errors"
	"fmt"
	"sync"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/Carmen-Shannon/oxy-tour/common"
	"github.com/Carmen-Shannon/oxy-tour/engine/light"
	"github.com/Carmen-Shannon/oxy-tour/engine/mesh"
	"github.com/Carmen-Shannon/oxy-tour/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-tour/engine/renderer/pipeline"
)

// ErrReleased is returned by every Renderer operation after Release.
var ErrReleased = errors.New("renderer: released")

// DefaultClearColor is the color the render pass clears to when a Frame leaves Clear zeroed.
var DefaultClearColor = [4]float64{0, 0, 0, 1}

// SurfaceTarget is what a Renderer presents into. Window satisfies it.
type SurfaceTarget interface {
	SurfaceDescriptor() *wgpu.SurfaceDescriptor
	Width() int
	Height() int
}

// DrawItem is one object to draw: a mesh, its world transform, and its material block.
type DrawItem struct {
	Mesh        common.MeshID
	Texture     common.TextureID
	PipelineKey string
	Model       [16]float32
	Material    material.GPUMaterial
}

// Frame is everything the Renderer needs to draw one image. Items are drawn in order.
type Frame struct {
	ViewProj  [16]float32
	CameraPos common.Vec3
	Lighting  light.GPULighting
	Clear     [4]float64
	Items     []DrawItem
}

// Stats summarizes renderer activity for overlays and logs.
type Stats struct {
	Frames    uint64
	DrawCalls int
	Meshes    int
	Textures  int
}

// Renderer owns GPU resources behind small integer handles and draws Frames into a surface.
type Renderer interface {
	// RegisterPipelines compiles and caches the given pipelines. Keys already cached are skipped.
	//
	// Parameters:
	//   - pipelines: the pipelines to register
	//
	// Returns:
	//   - error: the first compilation error, if any
	RegisterPipelines(pipelines ...pipeline.Pipeline) error

	// Pipeline returns the cached pipeline for key, or nil.
	//
	// Parameters:
	//   - key: the pipeline key
	//
	// Returns:
	//   - pipeline.Pipeline: the cached pipeline or nil
	Pipeline(key string) pipeline.Pipeline

	// CreateMesh uploads geometry and returns its handle.
	//
	// Parameters:
	//   - label: debug label for the GPU buffers
	//   - g: the geometry to upload
	//
	// Returns:
	//   - common.MeshID: the new handle (never zero)
	//   - error: an error if the geometry is empty or the upload fails
	CreateMesh(label string, g mesh.Geometry) (common.MeshID, error)

	// ReleaseMesh frees a mesh. Items that still reference it are skipped when drawn.
	//
	// Parameters:
	//   - id: the mesh to free
	ReleaseMesh(id common.MeshID)

	// CreateTexture uploads RGBA pixels and returns the texture handle.
	//
	// Parameters:
	//   - label: debug label for the GPU objects
	//   - data: the pixel data
	//
	// Returns:
	//   - common.TextureID: the new handle (never zero)
	//   - error: an error if the pixel data is malformed or the upload fails
	CreateTexture(label string, data common.TextureStagingData) (common.TextureID, error)

	// ReleaseTexture frees a texture. Items that still reference it draw untextured.
	//
	// Parameters:
	//   - id: the texture to free
	ReleaseTexture(id common.TextureID)

	// Resize reconfigures the surface for a new drawable size. Zero sizes are ignored.
	//
	// Parameters:
	//   - width: the new width in pixels
	//   - height: the new height in pixels
	Resize(width, height int)

	// SetPresentMode sets the surface present mode. A call to Resize is required after changing
	// this for the new mode to take effect.
	//
	// Parameters:
	//   - mode: the PresentMode to use
	SetPresentMode(mode PresentMode)

	// Draw renders one frame.
	//
	// Parameters:
	//   - frame: the frame to draw
	//
	// Returns:
	//   - error: ErrReleased after Release, or an error from the backend
	Draw(frame *Frame) error

	// Stats returns activity counters.
	//
	// Returns:
	//   - Stats: a snapshot of the counters
	Stats() Stats

	// Release frees every GPU resource. Later calls are no-ops.
	Release()
}

type renderer struct {
	mu *sync.Mutex

	backendType RendererBackendType
	backend     RendererBackend

	pipelineCache map[string]pipeline.Pipeline

	meshes      map[common.MeshID]struct{}
	textures    map[common.TextureID]struct{}
	nextMesh    common.MeshID
	nextTexture common.TextureID

	frames    uint64
	drawCalls int
	released  bool

	// Builder-only state consumed during NewRenderer.
	forceFallbackAdapter bool
	pendingPresentMode   *PresentMode
	pendingMSAA          *MSAASampleCount
	pendingPipelines     []pipeline.Pipeline
}

var _ Renderer = &renderer{}

// NewRenderer creates a new Renderer with the specified backend type and surface target.
// The target is required for BackendTypeWGPU and may be nil for BackendTypeHeadless.
// Pipelines passed through WithPipelines are compiled before NewRenderer returns; compilation
// failures panic the same way device acquisition failures do.
//
// Parameters:
//   - backendType: the backend to construct
//   - target: the surface to present into
//   - options: optional builder options
//
// Returns:
//   - Renderer: the ready renderer
func NewRenderer(backendType RendererBackendType, target SurfaceTarget, options ...RendererBuilderOption) Renderer {
	r := &renderer{
		mu:            &sync.Mutex{},
		backendType:   backendType,
		pipelineCache: make(map[string]pipeline.Pipeline),
		meshes:        make(map[common.MeshID]struct{}),
		textures:      make(map[common.TextureID]struct{}),
		nextMesh:      1,
		nextTexture:   1,
	}

	// Apply options first so config flags (e.g. forceFallbackAdapter) are
	// available before the backend requests a GPU adapter.
	for _, opt := range options {
		opt(r)
	}

	msaa := MSAA4x
	if r.pendingMSAA != nil {
		msaa = *r.pendingMSAA
	}

	width, height := 1, 1
	switch backendType {
	case BackendTypeHeadless:
		r.backend = newHeadlessRendererBackend()
		if target != nil {
			width, height = target.Width(), target.Height()
		}
	case BackendTypeWGPU:
		fallthrough
	default:
		if target == nil {
			panic("renderer: surface target is required for the wgpu backend")
		}
		r.backend = newWGPURendererBackend(target.SurfaceDescriptor(), r.forceFallbackAdapter, msaa)
		width, height = target.Width(), target.Height()
	}

	if r.pendingPresentMode != nil {
		r.backend.SetPresentMode(*r.pendingPresentMode)
	}
	r.backend.ConfigureSurface(width, height)

	if len(r.pendingPipelines) > 0 {
		if err := r.RegisterPipelines(r.pendingPipelines...); err != nil {
			panic(err)
		}
		r.pendingPipelines = nil
	}
	return r
}

func (r *renderer) RegisterPipelines(pipelines ...pipeline.Pipeline) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.released {
		return ErrReleased
	}
	for _, p := range pipelines {
		key := p.PipelineKey()
		if _, exists := r.pipelineCache[key]; exists {
			continue
		}
		if err := r.backend.RegisterRenderPipeline(p); err != nil {
			return fmt.Errorf("register pipeline %q: %w", key, err)
		}
		r.pipelineCache[key] = p
	}
	return nil
}

func (r *renderer) Pipeline(key string) pipeline.Pipeline {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pipelineCache[key]
}

func (r *renderer) CreateMesh(label string, g mesh.Geometry) (common.MeshID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.released {
		return 0, ErrReleased
	}
	if len(g.Vertices) == 0 {
		return 0, fmt.Errorf("mesh %q: no vertices", label)
	}
	id := r.nextMesh
	if err := r.backend.InitMesh(id, label, g); err != nil {
		return 0, fmt.Errorf("mesh %q: %w", label, err)
	}
	r.nextMesh++
	r.meshes[id] = struct{}{}
	return id, nil
}

func (r *renderer) ReleaseMesh(id common.MeshID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.meshes[id]; !ok {
		return
	}
	delete(r.meshes, id)
	r.backend.ReleaseMesh(id)
}

func (r *renderer) CreateTexture(label string, data common.TextureStagingData) (common.TextureID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.released {
		return 0, ErrReleased
	}
	if !data.Valid() {
		return 0, fmt.Errorf("texture %q: %dx%d does not match %d bytes of pixels", label, data.Width, data.Height, len(data.Pixels))
	}
	id := r.nextTexture
	if err := r.backend.InitTexture(id, label, data); err != nil {
		return 0, fmt.Errorf("texture %q: %w", label, err)
	}
	r.nextTexture++
	r.textures[id] = struct{}{}
	return id, nil
}

func (r *renderer) ReleaseTexture(id common.TextureID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.textures[id]; !ok {
		return
	}
	delete(r.textures, id)
	r.backend.ReleaseTexture(id)
}

func (r *renderer) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.released {
		return
	}
	r.backend.ConfigureSurface(width, height)
}

func (r *renderer) SetPresentMode(mode PresentMode) {
	r.backend.SetPresentMode(mode)
}

func (r *renderer) Draw(frame *Frame) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.released {
		return ErrReleased
	}
	if frame == nil {
		return nil
	}
	if frame.Clear == [4]float64{} {
		frame.Clear = DefaultClearColor
	}
	n, err := r.backend.DrawFrame(frame, r.pipelineCache)
	if err != nil {
		return err
	}
	r.frames++
	r.drawCalls = n
	return nil
}

func (r *renderer) Stats() Stats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return Stats{
		Frames:    r.frames,
		DrawCalls: r.drawCalls,
		Meshes:    len(r.meshes),
		Textures:  len(r.textures),
	}
}

func (r *renderer) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.released {
		return
	}
	r.released = true
	for _, p := range r.pipelineCache {
		p.Release()
	}
	r.pipelineCache = make(map[string]pipeline.Pipeline)
	r.meshes = make(map[common.MeshID]struct{})
	r.textures = make(map[common.TextureID]struct{})
	r.backend.Release()
}
