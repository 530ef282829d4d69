package renderer

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-tour/common"
	"github.com/Carmen-Shannon/oxy-tour/engine/mesh"
	"github.com/Carmen-Shannon/oxy-tour/engine/renderer/pipeline"
)

type headlessRendererBackendImpl struct {
	mu *sync.Mutex

	width, height int
	presentMode   PresentMode

	meshes    map[common.MeshID]int
	textures  map[common.TextureID]struct{}
	pipelines map[string]struct{}
}

var _ RendererBackend = &headlessRendererBackendImpl{}

func newHeadlessRendererBackend() RendererBackend {
	return &headlessRendererBackendImpl{
		mu:        &sync.Mutex{},
		meshes:    make(map[common.MeshID]int),
		textures:  make(map[common.TextureID]struct{}),
		pipelines: make(map[string]struct{}),
	}
}

func (b *headlessRendererBackendImpl) ConfigureSurface(width, height int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.width, b.height = width, height
}

func (b *headlessRendererBackendImpl) SetPresentMode(mode PresentMode) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.presentMode = mode
}

func (b *headlessRendererBackendImpl) RegisterRenderPipeline(p pipeline.Pipeline) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.pipelines[p.PipelineKey()] = struct{}{}
	return nil
}

func (b *headlessRendererBackendImpl) InitMesh(id common.MeshID, label string, g mesh.Geometry) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.meshes[id] = len(g.Vertices)
	return nil
}

func (b *headlessRendererBackendImpl) ReleaseMesh(id common.MeshID) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.meshes, id)
}

func (b *headlessRendererBackendImpl) InitTexture(id common.TextureID, label string, data common.TextureStagingData) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.textures[id] = struct{}{}
	return nil
}

func (b *headlessRendererBackendImpl) ReleaseTexture(id common.TextureID) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.textures, id)
}

func (b *headlessRendererBackendImpl) DrawFrame(frame *Frame, pipelines map[string]pipeline.Pipeline) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.width <= 0 || b.height <= 0 {
		return 0, fmt.Errorf("headless surface has no size")
	}
	n := 0
	for _, it := range frame.Items {
		if _, ok := b.meshes[it.Mesh]; !ok {
			continue
		}
		if _, ok := pipelines[it.PipelineKey]; !ok {
			continue
		}
		n++
	}
	return n, nil
}

func (b *headlessRendererBackendImpl) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.meshes = make(map[common.MeshID]int)
	b.textures = make(map[common.TextureID]struct{})
	b.pipelines = make(map[string]struct{})
}
