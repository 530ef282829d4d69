package scene

import (
	"sort"
	"sync"

	"github.com/Carmen-Shannon/oxy-tour/common"
	"github.com/Carmen-Shannon/oxy-tour/engine/camera"
	"github.com/Carmen-Shannon/oxy-tour/engine/game_object"
	"github.com/Carmen-Shannon/oxy-tour/engine/light"
	"github.com/Carmen-Shannon/oxy-tour/engine/renderer"
	"github.com/Carmen-Shannon/oxy-tour/engine/renderer/material"
)

// Scene manages a registry of GameObjects and the lights that illuminate them, with a Camera
// and Renderer for drawing. Opaque objects are drawn first in ID order, then translucent
// objects back to front. Thread-safe for concurrent access.
type Scene interface {
	// Name returns the scene's identifier.
	Name() string

	// SetName sets the scene's identifier.
	SetName(name string)

	// Active returns whether this scene is currently active for rendering.
	Active() bool

	// SetActive sets whether this scene is active for rendering.
	SetActive(active bool)

	// Camera returns the scene's camera.
	Camera() camera.Camera

	// SetCamera replaces the scene's camera.
	//
	// Parameters:
	//   - cam: the new camera
	SetCamera(cam camera.Camera)

	// Renderer returns the scene's renderer.
	Renderer() renderer.Renderer

	// SetRenderer replaces the scene's renderer.
	//
	// Parameters:
	//   - r: the new renderer
	SetRenderer(r renderer.Renderer)

	// Count returns the number of GameObjects in the scene's registry.
	//
	// Returns:
	//   - int: count of registered GameObjects
	Count() int

	// Add registers a GameObject and returns its ID. Objects without an ID are assigned the
	// next free one. Panics if obj is nil.
	//
	// Parameters:
	//   - obj: the GameObject to add
	//
	// Returns:
	//   - uint64: the assigned object ID
	Add(obj game_object.GameObject) uint64

	// Get retrieves a GameObject by its ID. Returns nil if not found.
	//
	// Parameters:
	//   - id: the object's unique ID
	//
	// Returns:
	//   - game_object.GameObject: the object or nil
	Get(id uint64) game_object.GameObject

	// Remove removes a GameObject from the registry by ID. Unknown IDs are ignored.
	// Does not release the object's mesh or texture.
	//
	// Parameters:
	//   - id: the object's unique ID
	Remove(id uint64)

	// Objects returns a snapshot of the registry ordered by ID.
	//
	// Returns:
	//   - []game_object.GameObject: the registered objects
	Objects() []game_object.GameObject

	// Clear removes all objects and lights from the scene.
	// Does not release GPU resources.
	Clear()

	// AddLight adds a light source to the scene.
	//
	// Parameters:
	//   - l: the light to add
	AddLight(l light.Light)

	// RemoveLight removes a light source from the scene by reference.
	//
	// Parameters:
	//   - l: the light to remove
	RemoveLight(l light.Light)

	// Lights returns all lights currently registered in the scene.
	//
	// Returns:
	//   - []light.Light: a copy of the light list
	Lights() []light.Light

	// ClearColor returns the background color.
	ClearColor() [4]float64

	// SetClearColor sets the background color from a packed 0xRRGGBB value.
	//
	// Parameters:
	//   - hex: the packed color
	SetClearColor(hex uint32)

	// CullingDisabled returns whether frustum culling is disabled for this scene.
	//
	// Returns:
	//   - bool: true if every enabled object is drawn regardless of visibility
	CullingDisabled() bool

	// SetCullingDisabled enables or disables frustum culling for this scene.
	//
	// Parameters:
	//   - disabled: true to draw every enabled object
	SetCullingDisabled(disabled bool)

	// BuildFrame updates the camera and collects the draw list for the current state.
	//
	// Returns:
	//   - renderer.Frame: the frame to hand to a Renderer
	BuildFrame() renderer.Frame

	// Render builds a frame and draws it. Inactive scenes draw nothing.
	//
	// Returns:
	//   - error: an error from the renderer
	Render() error
}

type scene struct {
	mu *sync.RWMutex

	name   string
	active bool

	registry map[uint64]game_object.GameObject
	nextID   uint64

	cam camera.Camera
	r   renderer.Renderer

	lights          []light.Light
	clearColor      [4]float64
	cullingDisabled bool

	// Reused each frame to avoid per-frame allocations.
	opaquePool      []sortedItem
	translucentPool []sortedItem
}

type sortedItem struct {
	item renderer.DrawItem
	id   uint64
	dist float32
}

// Ensure scene implements Scene interface.
var _ Scene = &scene{}

// NewScene creates a new Scene with the given camera and renderer. Both are required and
// NewScene panics if either is nil.
//
// Parameters:
//   - name: the scene's identifier
//   - cam: the camera to view the scene through
//   - r: the renderer to draw with
//   - options: optional builder options
//
// Returns:
//   - Scene: the new scene
func NewScene(name string, cam camera.Camera, r renderer.Renderer, options ...SceneBuilderOption) Scene {
	if cam == nil {
		panic("scene: NewScene requires a non-nil Camera")
	}
	if r == nil {
		panic("scene: NewScene requires a non-nil Renderer")
	}

	s := &scene{
		mu:         &sync.RWMutex{},
		name:       name,
		active:     true,
		cam:        cam,
		r:          r,
		registry:   make(map[uint64]game_object.GameObject),
		nextID:     1,
		clearColor: renderer.DefaultClearColor,
	}

	for _, option := range options {
		option(s)
	}
	return s
}

func (s *scene) Name() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.name
}

func (s *scene) SetName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.name = name
}

func (s *scene) Active() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

func (s *scene) SetActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = active
}

func (s *scene) Camera() camera.Camera {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cam
}

func (s *scene) SetCamera(cam camera.Camera) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cam = cam
}

func (s *scene) Renderer() renderer.Renderer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.r
}

func (s *scene) SetRenderer(r renderer.Renderer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.r = r
}

func (s *scene) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.registry)
}

func (s *scene) Add(obj game_object.GameObject) uint64 {
	if obj == nil {
		panic("scene: Add requires a non-nil GameObject")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.addLocked(obj)
	return obj.ID()
}

func (s *scene) addLocked(obj game_object.GameObject) {
	if obj.ID() == 0 {
		obj.SetID(s.nextID)
		s.nextID++
	} else if obj.ID() >= s.nextID {
		s.nextID = obj.ID() + 1
	}
	s.registry[obj.ID()] = obj
}

func (s *scene) Get(id uint64) game_object.GameObject {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.registry[id]
}

func (s *scene) Remove(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.registry, id)
}

func (s *scene) Objects() []game_object.GameObject {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]game_object.GameObject, 0, len(s.registry))
	for _, obj := range s.registry {
		out = append(out, obj)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out
}

func (s *scene) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.registry = make(map[uint64]game_object.GameObject)
	s.lights = nil
}

func (s *scene) AddLight(l light.Light) {
	if l == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lights = append(s.lights, l)
}

func (s *scene) RemoveLight(l light.Light) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.lights {
		if existing == l {
			s.lights = append(s.lights[:i], s.lights[i+1:]...)
			return
		}
	}
}

func (s *scene) Lights() []light.Light {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]light.Light, len(s.lights))
	copy(out, s.lights)
	return out
}

func (s *scene) ClearColor() [4]float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.clearColor
}

func (s *scene) SetClearColor(hex uint32) {
	c := common.HexColor(hex)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearColor = [4]float64{float64(c[0]), float64(c[1]), float64(c[2]), 1}
}

func (s *scene) CullingDisabled() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cullingDisabled
}

func (s *scene) SetCullingDisabled(disabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cullingDisabled = disabled
}

func (s *scene) BuildFrame() renderer.Frame {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cam.Update()
	frame := renderer.Frame{
		ViewProj:  s.cam.ViewProjectionMatrix(),
		CameraPos: s.cam.Position(),
		Lighting:  light.Summarize(s.lights),
		Clear:     s.clearColor,
	}
	frustum := s.cam.Frustum()
	eye := frame.CameraPos

	s.opaquePool = s.opaquePool[:0]
	s.translucentPool = s.translucentPool[:0]

	for id, obj := range s.registry {
		if !obj.Enabled() || obj.Mesh() == 0 {
			continue
		}
		mat := obj.Material()
		if mat == nil {
			continue
		}

		pos := obj.Position()
		if !s.cullingDisabled {
			if r := obj.BoundingRadius(); r > 0 {
				sc := obj.Scale()
				r *= max(sc.X, sc.Y, sc.Z)
				if !frustum.IntersectsSphere(pos, r) {
					continue
				}
			}
		}

		item := renderer.DrawItem{
			Mesh:        obj.Mesh(),
			Texture:     mat.Texture(),
			PipelineKey: mat.PipelineKey(),
			Model:       obj.ModelMatrix(),
			Material:    material.ToGPU(mat),
		}
		if item.PipelineKey == material.PipelineKeyOpaque {
			s.opaquePool = append(s.opaquePool, sortedItem{item: item, id: id})
			continue
		}
		s.translucentPool = append(s.translucentPool, sortedItem{
			item: item,
			id:   id,
			dist: pos.Sub(eye).Len(),
		})
	}

	sort.Slice(s.opaquePool, func(i, j int) bool { return s.opaquePool[i].id < s.opaquePool[j].id })
	sort.SliceStable(s.translucentPool, func(i, j int) bool {
		a, b := s.translucentPool[i], s.translucentPool[j]
		if a.dist != b.dist {
			return a.dist > b.dist
		}
		return a.id < b.id
	})

	frame.Items = make([]renderer.DrawItem, 0, len(s.opaquePool)+len(s.translucentPool))
	for _, o := range s.opaquePool {
		frame.Items = append(frame.Items, o.item)
	}
	for _, t := range s.translucentPool {
		frame.Items = append(frame.Items, t.item)
	}
	return frame
}

func (s *scene) Render() error {
	if !s.Active() {
		return nil
	}
	frame := s.BuildFrame()
	return s.Renderer().Draw(&frame)
}
