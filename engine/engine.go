package engine

import (
	"log"
	"sort"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-tour/engine/profiler"
	"github.com/Carmen-Shannon/oxy-tour/engine/scene"
	"github.com/Carmen-Shannon/oxy-tour/engine/scheduler"
	"github.com/Carmen-Shannon/oxy-tour/engine/window"
)

// engine implements the Engine interface.
// Everything runs on the goroutine that calls Run: window events, scheduled work, and drawing.
type engine struct {
	mu *sync.Mutex

	quitChannel chan struct{}
	quitOnce    sync.Once // Ensures quitChannel is only closed once

	window    window.Window
	scheduler scheduler.Scheduler

	profiler         *profiler.Profiler
	profilingEnabled bool

	scenes map[int]scene.Scene

	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped
}

// Engine is the main entry point for the engine.
// It owns the window, the scheduler that drives per-frame work, and the scenes drawn each frame.
type Engine interface {
	// Window returns the underlying window, or nil for a windowless engine.
	//
	// Returns:
	//   - window.Window: the engine's window
	Window() window.Window

	// Scheduler returns the scheduler stepped once per frame before scenes are drawn.
	//
	// Returns:
	//   - scheduler.Scheduler: the engine's scheduler
	Scheduler() scheduler.Scheduler

	// Profiler returns the frame profiler. Its snapshots update even when logging is off.
	//
	// Returns:
	//   - *profiler.Profiler: the engine's profiler
	Profiler() *profiler.Profiler

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetRenderFrameLimit sets an optional render frame rate cap in frames per second.
	// Pass 0 to uncap the render loop (default).
	//
	// Parameters:
	//   - fps: maximum render frames per second (0 = uncapped)
	SetRenderFrameLimit(fps float64)

	// AddScene registers a scene at the given z-index key.
	// Scenes are rendered in ascending key order.
	//
	// Parameters:
	//   - key: the z-index determining render order (lower renders first)
	//   - s: the Scene to register
	AddScene(key int, s scene.Scene)

	// RemoveScene removes the scene at the given z-index key.
	//
	// Parameters:
	//   - key: the z-index of the scene to remove
	RemoveScene(key int)

	// Scene retrieves the scene registered at the given z-index key.
	// Returns nil if no scene exists at that key.
	//
	// Parameters:
	//   - key: the z-index to look up
	//
	// Returns:
	//   - scene.Scene: the scene or nil
	Scene(key int) scene.Scene

	// Scenes returns a copy of all registered scenes keyed by z-index.
	//
	// Returns:
	//   - map[int]scene.Scene: the registered scenes
	Scenes() map[int]scene.Scene

	// Step runs one frame: the scheduler step followed by every active scene's Render.
	//
	// Parameters:
	//   - now: the frame timestamp
	Step(now time.Time)

	// Run drives frames from the window's message loop and blocks until the window closes or
	// Quit is called. Panics if the engine has no window.
	Run()

	// Quit signals the run loop to stop. Safe to call multiple times and from any goroutine.
	Quit()

	// Done is closed once Quit has been called.
	//
	// Returns:
	//   - <-chan struct{}: the quit channel
	Done() <-chan struct{}
}

// NewEngine creates a new Engine instance with the provided options.
// Options are applied directly to the engine struct via the option-builder pattern.
//
// Parameters:
//   - options: optional builder options
//
// Returns:
//   - Engine: the new engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		mu:          &sync.Mutex{},
		quitChannel: make(chan struct{}),
		scenes:      make(map[int]scene.Scene),
		profiler:    profiler.NewProfiler(),
	}

	for _, opt := range options {
		opt(e)
	}
	if e.scheduler == nil {
		e.scheduler = scheduler.NewScheduler()
	}
	e.profiler.SetLogging(e.profilingEnabled)
	return e
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Scheduler() scheduler.Scheduler {
	return e.scheduler
}

func (e *engine) Profiler() *profiler.Profiler {
	return e.profiler
}

func (e *engine) Run() {
	if e.window == nil {
		panic("engine: Run requires a window")
	}
	e.window.SetUpdateCallback(func() {
		select {
		case <-e.quitChannel:
			if e.window.IsRunning() {
				if err := e.window.Close(); err != nil {
					log.Printf("[engine] close window: %v", err)
				}
			}
			return
		default:
		}
		e.frame()
	})
	e.window.ProcessMessages()
	e.signalQuit()
}

// frame steps once and sleeps off the rest of the frame budget when a limit is set.
func (e *engine) frame() {
	start := time.Now()
	e.Step(start)

	if e.renderFrameLimit > 0 {
		if remaining := e.renderFrameLimit - time.Since(start); remaining > 0 {
			time.Sleep(remaining)
		}
	}
}

func (e *engine) Step(now time.Time) {
	// Recover so a panic inside one frame's callbacks shuts the engine down cleanly.
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[engine] frame recovered from panic: %v", r)
			e.signalQuit()
		}
	}()

	e.scheduler.Step(now)

	e.mu.Lock()
	keys := make([]int, 0, len(e.scenes))
	for k := range e.scenes {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	active := make([]scene.Scene, 0, len(keys))
	for _, k := range keys {
		if s := e.scenes[k]; s.Active() {
			active = append(active, s)
		}
	}
	e.mu.Unlock()

	draws := 0
	for _, s := range active {
		if err := s.Render(); err != nil {
			log.Printf("[engine] render scene %q: %v", s.Name(), err)
			continue
		}
		if r := s.Renderer(); r != nil {
			draws += r.Stats().DrawCalls
		}
	}
	e.profiler.Tick(now, draws)
}

// Quit signals the run loop to stop.
// Safe to call multiple times; subsequent calls are no-ops due to sync.Once.
func (e *engine) Quit() {
	e.signalQuit()
}

// signalQuit closes the quit channel to signal the run loop to exit.
// Uses sync.Once to ensure the channel is only closed once.
func (e *engine) signalQuit() {
	e.quitOnce.Do(func() {
		close(e.quitChannel)
	})
}

func (e *engine) Done() <-chan struct{} {
	return e.quitChannel
}

// EnableProfiler enables performance profiling output to the log.
func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
	e.profiler.SetLogging(true)
}

// DisableProfiler disables performance profiling output.
func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
	e.profiler.SetLogging(false)
}

// SetRenderFrameLimit sets an optional render frame rate cap.
// Pass 0 to uncap the render loop.
func (e *engine) SetRenderFrameLimit(fps float64) {
	if fps <= 0 {
		e.renderFrameLimit = 0
		return
	}
	e.renderFrameLimit = time.Duration(float64(time.Second) / fps)
}

func (e *engine) AddScene(key int, s scene.Scene) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.scenes[key] = s
}

func (e *engine) RemoveScene(key int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.scenes, key)
}

func (e *engine) Scene(key int) scene.Scene {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.scenes[key]
}

func (e *engine) Scenes() map[int]scene.Scene {
	e.mu.Lock()
	defer e.mu.Unlock()
	cp := make(map[int]scene.Scene, len(e.scenes))
	for k, v := range e.scenes {
		cp[k] = v
	}
	return cp
}
