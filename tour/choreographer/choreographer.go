// Package choreographer owns the 3D solar-system scene: camera, lights, planet actors, the
// moon, rings, the starfield and shooting stars. It maps a one-dimensional scroll progress to
// the camera pose and per-planet depth offsets, and runs the per-frame animation tick.
//
// All methods are expected to run on the scheduler's stepping goroutine. Surface callbacks,
// timer callbacks and the frame tick therefore never overlap, and the choreographer is the only
// writer of its scene.
package choreographer

import (
	"errors"
	"fmt"
	"log"
	"math/rand/v2"
	"path/filepath"
	"reflect"
	"sync"

	"github.com/Carmen-Shannon/oxy-tour/common"
	"github.com/Carmen-Shannon/oxy-tour/engine/camera"
	"github.com/Carmen-Shannon/oxy-tour/engine/game_object"
	"github.com/Carmen-Shannon/oxy-tour/engine/loader"
	"github.com/Carmen-Shannon/oxy-tour/engine/renderer"
	"github.com/Carmen-Shannon/oxy-tour/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-tour/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-tour/engine/scene"
	"github.com/Carmen-Shannon/oxy-tour/engine/scheduler"
	"github.com/Carmen-Shannon/oxy-tour/tour/catalog"
)

var (
	// ErrNoSurface is returned by InitScene when no drawable surface is supplied.
	ErrNoSurface = errors.New("choreographer: no render surface")
	// ErrAlreadyInitialized is returned by a second InitScene.
	ErrAlreadyInitialized = errors.New("choreographer: scene already initialized")
	// ErrDisposed is returned by InitScene after Dispose.
	ErrDisposed = errors.New("choreographer: disposed")
)

// RendererFactory creates the renderer bound to a surface.
type RendererFactory func(surface Surface) (renderer.Renderer, error)

// Choreographer is the scroll-driven scene controller.
type Choreographer interface {
	// InitScene builds the scene on surface and starts the frame loop. On error nothing is left
	// running.
	//
	// Parameters:
	//   - surface: the drawable to render into
	//
	// Returns:
	//   - error: ErrNoSurface for a nil surface, or a renderer/mesh creation error
	InitScene(surface Surface) error

	// UpdateCameraPosition maps scroll progress to the current planet, camera X and planet depth.
	// NaN is ignored; other values are clamped to [0,1]. No-op before InitScene.
	//
	// Parameters:
	//   - progress: the scroll fraction
	UpdateCameraPosition(progress float64)

	// CurrentPlanetIndex returns the index of the planet the camera is framing.
	CurrentPlanetIndex() int

	// SetPlanetChangeCallback registers cb to run whenever the current planet changes.
	//
	// Parameters:
	//   - cb: receives the new index (nil clears)
	SetPlanetChangeCallback(cb func(index int))

	// Planets returns the records the scene was built from.
	Planets() []catalog.PlanetRecord

	// Planet returns the actor for catalog index i, or nil before init or out of range.
	Planet(i int) game_object.GameObject

	// Moon returns the moon actor, or nil before init.
	Moon() game_object.GameObject

	// Stars returns the starfield actor, or nil before init.
	Stars() game_object.GameObject

	// ShootingStars returns a snapshot of the live shooting stars.
	ShootingStars() []ShootingStar

	// SpawnShootingStar adds one shooting star now. No-op before init or after dispose.
	SpawnShootingStar()

	// Camera returns the scene camera, or nil before init.
	Camera() camera.Camera

	// Controls returns the orbit control, or nil before init.
	Controls() camera.CameraController

	// Scene returns the scene, or nil before init.
	Scene() scene.Scene

	// Renderer returns the renderer, or nil before init.
	Renderer() renderer.Renderer

	// Dragging reports whether a primary-button drag is in progress.
	Dragging() bool

	// Initialized reports whether InitScene succeeded.
	Initialized() bool

	// Dispose stops the loop and the shooting-star timer, detaches from the surface, and releases
	// every GPU resource. Safe before InitScene and safe to call repeatedly.
	Dispose()

	// Disposed reports whether Dispose ran after a successful InitScene.
	Disposed() bool
}

type choreographer struct {
	mu *sync.Mutex

	sched           scheduler.Scheduler
	rendererFactory RendererFactory
	ldr             loader.Loader
	ownsLoader      bool
	assetRoot       string
	rng             *rand.Rand
	externalRender  bool
	starCount       int

	records []catalog.PlanetRecord
	maxSize float32

	initialized bool
	disposed    bool

	surface     Surface
	unsubscribe func()
	r           renderer.Renderer
	sc          scene.Scene
	cam         camera.Camera
	controls    camera.CameraController
	loop        scheduler.Loop
	spawner     scheduler.Registration

	viewWidth, viewHeight float32

	meshes   []common.MeshID
	textures []common.TextureID

	planets     []game_object.GameObject
	moon        *moonActor
	rings       []ringActor
	stars       game_object.GameObject
	shooting    []*ShootingStar
	cylinderSeq int

	currentIndex   int
	onPlanetChange func(int)

	dragging     bool
	orbiting     bool
	lastX, lastY float32
	mouseX       float32
	mouseY       float32
}

var _ Choreographer = &choreographer{}
var _ SurfaceListener = &choreographer{}

// New creates a choreographer driven by s. Panics if s is nil.
//
// Parameters:
//   - s: the scheduler that runs the frame loop, timers and texture completions
//   - options: functional options
//
// Returns:
//   - Choreographer: the choreographer, idle until InitScene
func New(s scheduler.Scheduler, options ...ChoreographerBuilderOption) Choreographer {
	if s == nil {
		panic("choreographer: New requires a non-nil Scheduler")
	}
	c := &choreographer{
		mu:              &sync.Mutex{},
		sched:           s,
		rendererFactory: defaultRendererFactory,
		rng:             rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		starCount:       StarCount,
		records:         catalog.Planets(),
	}
	for _, option := range options {
		option(c)
	}
	// The default loader is created by InitScene so an uninitialized choreographer holds no
	// decode workers.
	c.ownsLoader = c.ldr == nil
	c.maxSize = catalog.MaxSize(c.records)
	return c
}

// defaultRendererFactory builds a wgpu renderer with the tour's pipelines and 4x MSAA. A
// surface without a native handle is rejected here because wgpu aborts the process on it.
func defaultRendererFactory(surface Surface) (r renderer.Renderer, err error) {
	if surface.SurfaceDescriptor() == nil {
		return nil, ErrNoSurface
	}
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("create renderer: %v", rec)
		}
	}()
	return renderer.NewRenderer(renderer.BackendTypeWGPU, surface,
		renderer.WithPipelines(pipeline.Defaults()...),
		renderer.WithMSAA(renderer.MSAA4x),
	), nil
}

func (c *choreographer) InitScene(surface Surface) error {
	if isNilSurface(surface) {
		return ErrNoSurface
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.disposed {
		return ErrDisposed
	}
	if c.initialized {
		return ErrAlreadyInitialized
	}

	r, err := c.rendererFactory(surface)
	if errors.Is(err, ErrNoSurface) {
		return err
	}
	if err != nil {
		return fmt.Errorf("choreographer: %w", err)
	}
	if r.Pipeline(material.PipelineKeyOpaque) == nil {
		if err := r.RegisterPipelines(pipeline.Defaults()...); err != nil {
			r.Release()
			return fmt.Errorf("choreographer: %w", err)
		}
	}
	c.r = r
	c.surface = surface
	c.setViewportLocked(surface.Width(), surface.Height())

	c.cam = camera.NewCamera(
		camera.WithFovDegrees(CameraFov),
		camera.WithAspect(c.aspectLocked()),
		camera.WithClipPlanes(CameraNear, CameraFar),
		camera.WithPosition(common.Vec3{Z: CameraZ}),
		camera.WithTarget(common.Vec3{}),
	)
	c.sc = scene.NewScene("solar-system", c.cam, r, scene.WithClearColor(0x000000))
	for _, l := range newLights() {
		c.sc.AddLight(l)
	}

	if err := c.buildActorsLocked(); err != nil {
		c.releaseLocked()
		c.r, c.sc, c.cam = nil, nil, nil
		c.planets, c.moon, c.rings, c.stars = nil, nil, nil, nil
		return fmt.Errorf("choreographer: %w", err)
	}

	c.controls = camera.NewCameraController(camera.WithEnabled(false))
	c.currentIndex = 0

	if c.ldr == nil {
		c.ldr = loader.NewLoader(loader.BackendTypeImage, loader.WithScheduler(c.sched))
	}
	c.loadTexturesLocked()

	c.unsubscribe = surface.Subscribe(c)
	c.spawner = c.sched.Every(ShootingStarPeriod, c.SpawnShootingStar)
	c.loop = scheduler.NewLoop(c.sched, c.tick)
	c.loop.Start()
	c.initialized = true

	log.Printf("[choreographer] scene ready: %d planets, %d stars, %dx%d @%.1fx",
		len(c.planets), c.starCount, surface.Width(), surface.Height(), c.pixelRatioLocked())
	return nil
}

func (c *choreographer) pixelRatioLocked() float32 {
	if c.surface == nil {
		return 1
	}
	ratio := c.surface.PixelRatio()
	if ratio <= 0 {
		return 1
	}
	return min(ratio, MaxPixelRatio)
}

func (c *choreographer) setViewportLocked(width, height int) {
	ratio := c.pixelRatioLocked()
	c.viewWidth = float32(width) / ratio
	c.viewHeight = float32(height) / ratio
}

func (c *choreographer) aspectLocked() float32 {
	if c.viewWidth <= 0 || c.viewHeight <= 0 {
		return 1
	}
	return c.viewWidth / c.viewHeight
}

func (c *choreographer) texturePath(url string) string {
	if c.assetRoot == "" {
		return url
	}
	return filepath.Join(c.assetRoot, filepath.FromSlash(url))
}

func (c *choreographer) CurrentPlanetIndex() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.currentIndex
}

func (c *choreographer) SetPlanetChangeCallback(cb func(index int)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onPlanetChange = cb
}

func (c *choreographer) Planets() []catalog.PlanetRecord {
	out := make([]catalog.PlanetRecord, len(c.records))
	copy(out, c.records)
	return out
}

func (c *choreographer) Planet(i int) game_object.GameObject {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i < 0 || i >= len(c.planets) {
		return nil
	}
	return c.planets[i]
}

func (c *choreographer) Moon() game_object.GameObject {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.moon == nil {
		return nil
	}
	return c.moon.obj
}

func (c *choreographer) Stars() game_object.GameObject {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stars
}

func (c *choreographer) ShootingStars() []ShootingStar {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]ShootingStar, len(c.shooting))
	for i, s := range c.shooting {
		out[i] = *s
	}
	return out
}

func (c *choreographer) Camera() camera.Camera {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cam
}

func (c *choreographer) Controls() camera.CameraController {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.controls
}

func (c *choreographer) Scene() scene.Scene {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sc
}

func (c *choreographer) Renderer() renderer.Renderer {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.r
}

func (c *choreographer) Dragging() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dragging
}

func (c *choreographer) Initialized() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.initialized
}

func (c *choreographer) Disposed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.disposed
}

// tick is the per-frame animation step. It is registered through a scheduler.Loop and stops
// being called as soon as Dispose stops the loop.
func (c *choreographer) tick(dt float32) {
	c.mu.Lock()
	if !c.initialized || c.disposed {
		c.mu.Unlock()
		return
	}
	c.controls.Update(c.cam)
	c.spinPlanetsLocked()
	c.advanceMoonLocked()
	c.followRingsLocked()
	c.applyParallaxLocked()
	c.advanceShootingStarsLocked()
	sc := c.sc
	external := c.externalRender
	c.mu.Unlock()

	if external {
		return
	}
	if err := sc.Render(); err != nil {
		log.Printf("[choreographer] render: %v", err)
	}
}

func (c *choreographer) Dispose() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.initialized || c.disposed {
		return
	}
	c.disposed = true
	c.releaseLocked()
	if c.ownsLoader && c.ldr != nil {
		c.ldr.Close()
	}
	log.Printf("[choreographer] disposed")
}

// releaseLocked tears down everything InitScene may have created, in reverse order.
func (c *choreographer) releaseLocked() {
	if c.loop != nil {
		c.loop.Stop()
	}
	if c.spawner != nil {
		c.spawner.Cancel()
	}
	if c.unsubscribe != nil {
		c.unsubscribe()
		c.unsubscribe = nil
	}
	if c.controls != nil {
		c.controls.Dispose()
	}
	c.dragging, c.orbiting = false, false

	if c.r != nil {
		for _, s := range c.shooting {
			c.r.ReleaseMesh(s.mesh)
		}
		for _, id := range c.meshes {
			c.r.ReleaseMesh(id)
		}
		for _, id := range c.textures {
			c.r.ReleaseTexture(id)
		}
	}
	c.shooting = nil
	c.meshes = nil
	c.textures = nil

	if c.sc != nil {
		c.sc.Clear()
	}
	if c.r != nil {
		c.r.Release()
	}
	c.surface = nil
}

// isNilSurface reports whether s is nil or an interface holding a nil pointer.
func isNilSurface(s Surface) bool {
	if s == nil {
		return true
	}
	v := reflect.ValueOf(s)
	return v.Kind() == reflect.Pointer && v.IsNil()
}
