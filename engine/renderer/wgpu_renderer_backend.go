package renderer

import (
	_ "embed"
	"fmt"
	"runtime"
	"sync"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/Carmen-Shannon/oxy-tour/common"
	"github.com/Carmen-Shannon/oxy-tour/engine/mesh"
	"github.com/Carmen-Shannon/oxy-tour/engine/renderer/pipeline"
)

//go:embed assets/tour.wgsl
var tourShaderSource string

type gpuMesh struct {
	vertexBuffer *wgpu.Buffer
	indexBuffer  *wgpu.Buffer
	vertexCount  uint32
	indexCount   uint32
}

func (m *gpuMesh) release() {
	if m.vertexBuffer != nil {
		m.vertexBuffer.Release()
	}
	if m.indexBuffer != nil {
		m.indexBuffer.Release()
	}
}

type gpuTexture struct {
	texture   *wgpu.Texture
	view      *wgpu.TextureView
	sampler   *wgpu.Sampler
	bindGroup *wgpu.BindGroup
}

func (t *gpuTexture) release() {
	if t.bindGroup != nil {
		t.bindGroup.Release()
	}
	if t.sampler != nil {
		t.sampler.Release()
	}
	if t.view != nil {
		t.view.Release()
	}
	if t.texture != nil {
		t.texture.Release()
	}
}

type wgpuRendererBackendImpl struct {
	mu     *sync.Mutex
	device *wgpu.Device
	queue  *wgpu.Queue

	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	surface  *wgpu.Surface

	surfaceFormat        *wgpu.TextureFormat
	msaaTexture          *wgpu.Texture
	msaaTextureView      *wgpu.TextureView
	depthTexture         *wgpu.Texture
	depthTextureView     *wgpu.TextureView
	renderPassDescriptor *wgpu.RenderPassDescriptor

	presentMode wgpu.PresentMode // defaults to PresentModeFifo (VSync)
	sampleCount MSAASampleCount  // MSAA sample count for the main render pass

	// Shared by every pipeline: one shader module and one two-group layout.
	shaderModule   *wgpu.ShaderModule
	frameLayout    *wgpu.BindGroupLayout
	textureLayout  *wgpu.BindGroupLayout
	pipelineLayout *wgpu.PipelineLayout

	frameBuffer    *wgpu.Buffer
	drawBuffer     *wgpu.Buffer
	drawCapacity   int
	frameBindGroup *wgpu.BindGroup

	defaultTexture *gpuTexture
	meshes         map[common.MeshID]*gpuMesh
	textures       map[common.TextureID]*gpuTexture
}

var _ RendererBackend = &wgpuRendererBackendImpl{}

func newWGPURendererBackend(surfaceDescriptor *wgpu.SurfaceDescriptor, forceFallbackAdapter bool, sampleCount MSAASampleCount) RendererBackend {
	runtime.LockOSThread()
	w := &wgpuRendererBackendImpl{
		mu:          &sync.Mutex{},
		instance:    wgpu.CreateInstance(nil),
		presentMode: wgpu.PresentModeFifo,
		sampleCount: sampleCount,
		meshes:      make(map[common.MeshID]*gpuMesh),
		textures:    make(map[common.TextureID]*gpuTexture),
	}
	w.surface = w.instance.CreateSurface(surfaceDescriptor)

	a, err := w.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: forceFallbackAdapter,
		CompatibleSurface:    w.surface,
	})
	if err != nil {
		panic(err)
	}
	w.adapter = a

	d, err := a.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Main Device",
	})
	if err != nil {
		panic(err)
	}
	w.device = d
	w.queue = d.GetQueue()

	if err := w.initSharedResources(); err != nil {
		panic(err)
	}
	return w
}

// initSharedResources builds the shader module, bind group layouts, frame buffers, and the
// 1x1 white texture bound for untextured draws.
func (b *wgpuRendererBackendImpl) initSharedResources() error {
	var err error
	b.shaderModule, err = b.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label: "tour.wgsl",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: tourShaderSource,
		},
	})
	if err != nil {
		return fmt.Errorf("shader module: %w", err)
	}

	var frameUniform GPUFrameUniform
	frameEntries := []wgpu.BindGroupLayoutEntry{
		{
			Binding:    0,
			Visibility: wgpu.ShaderStageVertex | wgpu.ShaderStageFragment,
		},
		{
			Binding:    1,
			Visibility: wgpu.ShaderStageVertex | wgpu.ShaderStageFragment,
		},
	}
	frameEntries[0].Buffer.Type = wgpu.BufferBindingTypeUniform
	frameEntries[0].Buffer.MinBindingSize = uint64(frameUniform.Size())
	frameEntries[1].Buffer.Type = wgpu.BufferBindingTypeReadOnlyStorage
	b.frameLayout, err = b.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label:   "Frame Layout",
		Entries: frameEntries,
	})
	if err != nil {
		return err
	}

	textureEntries := []wgpu.BindGroupLayoutEntry{
		{Binding: 0, Visibility: wgpu.ShaderStageFragment},
		{Binding: 1, Visibility: wgpu.ShaderStageFragment},
	}
	textureEntries[0].Texture.SampleType = wgpu.TextureSampleTypeFloat
	textureEntries[0].Texture.ViewDimension = wgpu.TextureViewDimension2D
	textureEntries[1].Sampler.Type = wgpu.SamplerBindingTypeFiltering
	b.textureLayout, err = b.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label:   "Texture Layout",
		Entries: textureEntries,
	})
	if err != nil {
		return err
	}

	b.pipelineLayout, err = b.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "Tour Pipeline Layout",
		BindGroupLayouts: []*wgpu.BindGroupLayout{b.frameLayout, b.textureLayout},
	})
	if err != nil {
		return err
	}

	b.frameBuffer, err = b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "Frame Uniform Buffer",
		Size:  uint64(frameUniform.Size()),
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return err
	}
	if err := b.ensureDrawCapacity(DefaultDrawCapacity); err != nil {
		return err
	}

	b.defaultTexture, err = b.createTexture("Default White", common.TextureStagingData{
		Pixels: []byte{0xFF, 0xFF, 0xFF, 0xFF},
		Width:  1,
		Height: 1,
	})
	return err
}

// ensureDrawCapacity grows the draw storage buffer to hold at least n records and rebuilds the
// frame bind group that references it.
func (b *wgpuRendererBackendImpl) ensureDrawCapacity(n int) error {
	if n <= b.drawCapacity && b.drawBuffer != nil {
		return nil
	}
	capacity := common.Coalesce(b.drawCapacity, DefaultDrawCapacity)
	for capacity < n {
		capacity *= 2
	}

	var record GPUDrawData
	buf, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "Draw Storage Buffer",
		Size:  uint64(capacity * record.Size()),
		Usage: wgpu.BufferUsageStorage | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return err
	}
	bg, err := b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "Frame Bind Group",
		Layout: b.frameLayout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: b.frameBuffer, Offset: 0, Size: wgpu.WholeSize},
			{Binding: 1, Buffer: buf, Offset: 0, Size: wgpu.WholeSize},
		},
	})
	if err != nil {
		buf.Release()
		return err
	}

	if b.frameBindGroup != nil {
		b.frameBindGroup.Release()
	}
	if b.drawBuffer != nil {
		b.drawBuffer.Release()
	}
	b.drawBuffer = buf
	b.frameBindGroup = bg
	b.drawCapacity = capacity
	return nil
}

func (b *wgpuRendererBackendImpl) ConfigureSurface(width, height int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if width <= 0 || height <= 0 {
		return
	}

	capabilities := b.surface.GetCapabilities(b.adapter)
	b.surfaceFormat = &capabilities.Formats[0]

	b.surface.Configure(b.adapter, b.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      *b.surfaceFormat,
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: b.presentMode,
		AlphaMode:   capabilities.AlphaModes[0],
	})

	b.releaseAttachments()

	count := uint32(b.sampleCount)
	msaaEnabled := count > 1
	size := wgpu.Extent3D{
		Width:              uint32(width),
		Height:             uint32(height),
		DepthOrArrayLayers: 1,
	}

	var err error
	if msaaEnabled {
		// The render pass draws into the MSAA texture and resolves into the swapchain view.
		b.msaaTexture, err = b.device.CreateTexture(&wgpu.TextureDescriptor{
			Label:         "MSAA Texture",
			Size:          size,
			MipLevelCount: 1,
			SampleCount:   count,
			Dimension:     wgpu.TextureDimension2D,
			Format:        *b.surfaceFormat,
			Usage:         wgpu.TextureUsageRenderAttachment,
		})
		if err != nil {
			panic(err)
		}
		b.msaaTextureView, err = b.msaaTexture.CreateView(nil)
		if err != nil {
			panic(err)
		}
	}

	// Depth texture sample count must match the color attachment.
	b.depthTexture, err = b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         "Depth Texture",
		Size:          size,
		MipLevelCount: 1,
		SampleCount:   count,
		Dimension:     wgpu.TextureDimension2D,
		Format:        wgpu.TextureFormatDepth24Plus,
		Usage:         wgpu.TextureUsageRenderAttachment,
	})
	if err != nil {
		panic(err)
	}
	b.depthTextureView, err = b.depthTexture.CreateView(nil)
	if err != nil {
		panic(err)
	}

	// When MSAA is enabled, View is the MSAA texture and ResolveTarget is set per-frame to the
	// swapchain view. When disabled, View is set per-frame and ResolveTarget stays nil.
	storeOp := wgpu.StoreOpStore
	if msaaEnabled {
		storeOp = wgpu.StoreOpDiscard
	}
	b.renderPassDescriptor = &wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:    b.msaaTextureView,
				LoadOp:  wgpu.LoadOpClear,
				StoreOp: storeOp,
			},
		},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            b.depthTextureView,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpDiscard,
			DepthClearValue: 1.0,
		},
	}
}

func (b *wgpuRendererBackendImpl) releaseAttachments() {
	if b.msaaTextureView != nil {
		b.msaaTextureView.Release()
		b.msaaTextureView = nil
	}
	if b.msaaTexture != nil {
		b.msaaTexture.Release()
		b.msaaTexture = nil
	}
	if b.depthTextureView != nil {
		b.depthTextureView.Release()
		b.depthTextureView = nil
	}
	if b.depthTexture != nil {
		b.depthTexture.Release()
		b.depthTexture = nil
	}
}

func (b *wgpuRendererBackendImpl) SetPresentMode(mode PresentMode) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch mode {
	case PresentModeUncapped:
		b.presentMode = wgpu.PresentModeImmediate
	case PresentModeVSync:
		fallthrough
	default:
		b.presentMode = wgpu.PresentModeFifo
	}
}

func (b *wgpuRendererBackendImpl) RegisterRenderPipeline(p pipeline.Pipeline) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.surfaceFormat == nil {
		return fmt.Errorf("surface not configured")
	}
	created, err := b.device.CreateRenderPipeline(p.Descriptor(b.pipelineLayout, b.shaderModule, *b.surfaceFormat, uint32(b.sampleCount)))
	if err != nil {
		return err
	}
	p.SetRenderPipeline(created)
	return nil
}

func (b *wgpuRendererBackendImpl) InitMesh(id common.MeshID, label string, g mesh.Geometry) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	m := &gpuMesh{
		vertexCount: uint32(len(g.Vertices)),
		indexCount:  uint32(len(g.Indices)),
	}

	vertexData := mesh.MarshalVertices(g.Vertices)
	buf, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label:            label + " Vertex Buffer",
		Size:             uint64(len(vertexData)),
		Usage:            wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
		MappedAtCreation: false,
	})
	if err != nil {
		return err
	}
	b.queue.WriteBuffer(buf, 0, vertexData)
	m.vertexBuffer = buf

	if len(g.Indices) > 0 {
		indexData := mesh.MarshalIndices(g.Indices)
		buf, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
			Label:            label + " Index Buffer",
			Size:             uint64(len(indexData)),
			Usage:            wgpu.BufferUsageIndex | wgpu.BufferUsageCopyDst,
			MappedAtCreation: false,
		})
		if err != nil {
			m.release()
			return err
		}
		b.queue.WriteBuffer(buf, 0, indexData)
		m.indexBuffer = buf
	}

	b.meshes[id] = m
	return nil
}

func (b *wgpuRendererBackendImpl) ReleaseMesh(id common.MeshID) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if m, ok := b.meshes[id]; ok {
		m.release()
		delete(b.meshes, id)
	}
}

func (b *wgpuRendererBackendImpl) InitTexture(id common.TextureID, label string, data common.TextureStagingData) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	t, err := b.createTexture(label, data)
	if err != nil {
		return err
	}
	b.textures[id] = t
	return nil
}

func (b *wgpuRendererBackendImpl) createTexture(label string, data common.TextureStagingData) (*gpuTexture, error) {
	t := &gpuTexture{}
	var err error
	t.texture, err = b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:     label + " Texture",
		Usage:     wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
		Dimension: wgpu.TextureDimension2D,
		Size: wgpu.Extent3D{
			Width:              data.Width,
			Height:             data.Height,
			DepthOrArrayLayers: 1,
		},
		Format:        wgpu.TextureFormatRGBA8UnormSrgb,
		MipLevelCount: 1,
		SampleCount:   1,
	})
	if err != nil {
		return nil, err
	}

	b.queue.WriteTexture(
		&wgpu.ImageCopyTexture{
			Texture:  t.texture,
			MipLevel: 0,
			Origin:   wgpu.Origin3D{},
			Aspect:   wgpu.TextureAspectAll,
		},
		data.Pixels,
		&wgpu.TextureDataLayout{
			Offset:       0,
			BytesPerRow:  data.Width * 4,
			RowsPerImage: data.Height,
		},
		&wgpu.Extent3D{
			Width:              data.Width,
			Height:             data.Height,
			DepthOrArrayLayers: 1,
		},
	)

	if t.view, err = t.texture.CreateView(nil); err != nil {
		t.release()
		return nil, err
	}

	s := common.DefaultSampler()
	if data.Sampler != nil {
		s = *data.Sampler
	}
	t.sampler, err = b.device.CreateSampler(&wgpu.SamplerDescriptor{
		Label:         label + " Sampler",
		AddressModeU:  common.Coalesce(s.AddressModeU, wgpu.AddressModeRepeat),
		AddressModeV:  common.Coalesce(s.AddressModeV, wgpu.AddressModeClampToEdge),
		AddressModeW:  common.Coalesce(s.AddressModeW, wgpu.AddressModeClampToEdge),
		MagFilter:     common.Coalesce(s.MagFilter, wgpu.FilterModeLinear),
		MinFilter:     common.Coalesce(s.MinFilter, wgpu.FilterModeLinear),
		MipmapFilter:  common.Coalesce(s.MipmapFilter, wgpu.MipmapFilterModeLinear),
		LodMinClamp:   common.Coalesce(s.LodMinClamp, 0.0),
		LodMaxClamp:   common.Coalesce(s.LodMaxClamp, 32.0),
		MaxAnisotropy: common.Coalesce(s.MaxAnisotropy, 1),
	})
	if err != nil {
		t.release()
		return nil, err
	}

	t.bindGroup, err = b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  label + " Bind Group",
		Layout: b.textureLayout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, TextureView: t.view},
			{Binding: 1, Sampler: t.sampler},
		},
	})
	if err != nil {
		t.release()
		return nil, err
	}
	return t, nil
}

func (b *wgpuRendererBackendImpl) ReleaseTexture(id common.TextureID) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if t, ok := b.textures[id]; ok {
		t.release()
		delete(b.textures, id)
	}
}

func (b *wgpuRendererBackendImpl) DrawFrame(frame *Frame, pipelines map[string]pipeline.Pipeline) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.renderPassDescriptor == nil {
		return 0, fmt.Errorf("surface not configured")
	}
	if err := b.ensureDrawCapacity(len(frame.Items)); err != nil {
		return 0, err
	}

	uniform := GPUFrameUniform{
		ViewProj:  frame.ViewProj,
		CameraPos: [4]float32{frame.CameraPos.X, frame.CameraPos.Y, frame.CameraPos.Z, 1},
		Lighting:  frame.Lighting,
	}
	b.queue.WriteBuffer(b.frameBuffer, 0, uniform.Marshal())
	if len(frame.Items) > 0 {
		b.queue.WriteBuffer(b.drawBuffer, 0, marshalDraws(frame.Items))
	}

	surfaceTexture, err := b.surface.GetCurrentTexture()
	if err != nil {
		return 0, err
	}
	defer surfaceTexture.Release()

	view, err := surfaceTexture.CreateView(nil)
	if err != nil {
		return 0, err
	}
	defer view.Release()

	encoder, err := b.device.CreateCommandEncoder(nil)
	if err != nil {
		return 0, err
	}
	defer encoder.Release()

	attachment := &b.renderPassDescriptor.ColorAttachments[0]
	if b.sampleCount > 1 {
		attachment.ResolveTarget = view
	} else {
		attachment.View = view
	}
	attachment.ClearValue = wgpu.Color{R: frame.Clear[0], G: frame.Clear[1], B: frame.Clear[2], A: frame.Clear[3]}

	pass := encoder.BeginRenderPass(b.renderPassDescriptor)
	pass.SetBindGroup(0, b.frameBindGroup, nil)

	drawn := 0
	var bound *wgpu.RenderPipeline
	for i, it := range frame.Items {
		m, ok := b.meshes[it.Mesh]
		if !ok {
			continue
		}
		p, ok := pipelines[it.PipelineKey]
		if !ok || p.RenderPipeline() == nil {
			continue
		}
		if rp := p.RenderPipeline(); rp != bound {
			pass.SetPipeline(rp)
			bound = rp
		}

		tex := b.defaultTexture
		if t, ok := b.textures[it.Texture]; ok {
			tex = t
		}
		pass.SetBindGroup(1, tex.bindGroup, nil)
		pass.SetVertexBuffer(0, m.vertexBuffer, 0, wgpu.WholeSize)

		// The instance index selects the item's record in the draw storage buffer.
		first := uint32(i)
		if m.indexBuffer != nil {
			pass.SetIndexBuffer(m.indexBuffer, wgpu.IndexFormatUint32, 0, wgpu.WholeSize)
			pass.DrawIndexed(m.indexCount, 1, 0, 0, first)
		} else {
			pass.Draw(m.vertexCount, 1, 0, first)
		}
		drawn++
	}
	pass.End()
	pass.Release()

	commandBuffer, err := encoder.Finish(nil)
	if err != nil {
		return 0, err
	}
	b.queue.Submit(commandBuffer)
	commandBuffer.Release()

	b.surface.Present()
	return drawn, nil
}

func (b *wgpuRendererBackendImpl) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for id, m := range b.meshes {
		m.release()
		delete(b.meshes, id)
	}
	for id, t := range b.textures {
		t.release()
		delete(b.textures, id)
	}
	if b.defaultTexture != nil {
		b.defaultTexture.release()
		b.defaultTexture = nil
	}
	b.releaseAttachments()
	if b.frameBindGroup != nil {
		b.frameBindGroup.Release()
	}
	if b.drawBuffer != nil {
		b.drawBuffer.Release()
	}
	if b.frameBuffer != nil {
		b.frameBuffer.Release()
	}
	if b.pipelineLayout != nil {
		b.pipelineLayout.Release()
	}
	if b.textureLayout != nil {
		b.textureLayout.Release()
	}
	if b.frameLayout != nil {
		b.frameLayout.Release()
	}
	if b.shaderModule != nil {
		b.shaderModule.Release()
	}
	if b.surface != nil {
		b.surface.Release()
	}
	if b.device != nil {
		b.device.Release()
	}
	if b.adapter != nil {
		b.adapter.Release()
	}
	if b.instance != nil {
		b.instance.Release()
	}
}
