// Package surface adapts an engine window to the tour: it exposes the window as a drawable
// choreographer.Surface, fans resize and pointer events out to subscribers, and converts wheel
// and keyboard input for the view controller.
package surface

import (
	"sort"
	"sync"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/Carmen-Shannon/oxy-tour/engine/window"
	"github.com/Carmen-Shannon/oxy-tour/tour/choreographer"
)

// WheelStep converts one wheel notch into page pixels. Wheel away from the user (positive
// offset) scrolls towards the start of the tour, so the sign is flipped.
const WheelStep = 100

// Host is the part of window.Window the adapter needs. The adapter takes over every callback
// slot it touches.
type Host interface {
	SetResizeCallback(callback func(width, height int))
	SetScrollCallback(callback func(dx, dy float64))
	SetKeyDownCallback(callback func(keyCode uint32))
	SetMouseDownCallback(callback func(button window.MouseButton, x, y float64))
	SetMouseUpCallback(callback func(button window.MouseButton, x, y float64))
	SetMouseMoveCallback(callback func(x, y float64))
	SetCursorLeaveCallback(callback func())
	SetContentScaleCallback(callback func(scale float32))
	SurfaceDescriptor() *wgpu.SurfaceDescriptor
	Width() int
	Height() int
	ContentScale() float32
}

var _ Host = window.Window(nil)

// Surface is a window-backed choreographer.Surface with wheel and key hooks.
type Surface interface {
	choreographer.Surface

	// SetScrollHandler registers the wheel handler. deltaY is positive when scrolling towards
	// the end of the tour.
	//
	// Parameters:
	//   - fn: the handler (nil clears)
	SetScrollHandler(fn func(deltaY float64))

	// SetKeyHandler registers the key-down handler.
	//
	// Parameters:
	//   - fn: the handler (nil clears)
	SetKeyHandler(fn func(keyCode uint32))

	// Listeners returns the number of subscribed listeners.
	Listeners() int

	// Detach clears every host callback the adapter installed and drops all subscribers.
	Detach()
}

type windowSurface struct {
	mu *sync.Mutex

	host      Host
	nextID    int
	listeners map[int]choreographer.SurfaceListener
	onScroll  func(deltaY float64)
	onKey     func(keyCode uint32)
	buttons   map[window.MouseButton]bool
}

var _ Surface = &windowSurface{}

// New wraps host and installs its input callbacks. Panics if host is nil.
//
// Parameters:
//   - host: the window to adapt
//
// Returns:
//   - Surface: the adapter
func New(host Host) Surface {
	if host == nil {
		panic("surface: New requires a non-nil Host")
	}
	s := &windowSurface{
		mu:        &sync.Mutex{},
		host:      host,
		listeners: make(map[int]choreographer.SurfaceListener),
		buttons:   make(map[window.MouseButton]bool),
	}
	host.SetResizeCallback(s.handleResize)
	host.SetScrollCallback(s.handleScroll)
	host.SetKeyDownCallback(s.handleKey)
	host.SetMouseDownCallback(s.handleMouseDown)
	host.SetMouseUpCallback(s.handleMouseUp)
	host.SetMouseMoveCallback(s.handleMouseMove)
	host.SetCursorLeaveCallback(s.handleLeave)
	host.SetContentScaleCallback(s.handleContentScale)
	return s
}

func (s *windowSurface) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return s.host.SurfaceDescriptor()
}

func (s *windowSurface) Width() int {
	return s.host.Width()
}

func (s *windowSurface) Height() int {
	return s.host.Height()
}

func (s *windowSurface) PixelRatio() float32 {
	r := s.host.ContentScale()
	if r <= 0 {
		return 1
	}
	return min(r, choreographer.MaxPixelRatio)
}

func (s *windowSurface) Subscribe(l choreographer.SurfaceListener) func() {
	if l == nil {
		return func() {}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	id := s.nextID
	s.listeners[id] = l
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

func (s *windowSurface) Listeners() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.listeners)
}

func (s *windowSurface) SetScrollHandler(fn func(deltaY float64)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onScroll = fn
}

func (s *windowSurface) SetKeyHandler(fn func(keyCode uint32)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onKey = fn
}

func (s *windowSurface) Detach() {
	s.host.SetResizeCallback(nil)
	s.host.SetScrollCallback(nil)
	s.host.SetKeyDownCallback(nil)
	s.host.SetMouseDownCallback(nil)
	s.host.SetMouseUpCallback(nil)
	s.host.SetMouseMoveCallback(nil)
	s.host.SetCursorLeaveCallback(nil)
	s.host.SetContentScaleCallback(nil)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = make(map[int]choreographer.SurfaceListener)
	s.onScroll = nil
	s.onKey = nil
}

// snapshot returns the listeners in subscription order so callbacks run without the lock held.
func (s *windowSurface) snapshot() []choreographer.SurfaceListener {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]int, 0, len(s.listeners))
	for id := range s.listeners {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	out := make([]choreographer.SurfaceListener, len(ids))
	for i, id := range ids {
		out[i] = s.listeners[id]
	}
	return out
}

func (s *windowSurface) handleResize(width, height int) {
	for _, l := range s.snapshot() {
		l.OnResize(width, height)
	}
}

// handleContentScale re-announces the current size so listeners pick up the new pixel ratio.
func (s *windowSurface) handleContentScale(float32) {
	s.handleResize(s.host.Width(), s.host.Height())
}

func (s *windowSurface) handleScroll(_, dy float64) {
	if dy == 0 {
		return
	}
	s.mu.Lock()
	fn := s.onScroll
	s.mu.Unlock()
	if fn != nil {
		fn(-dy * WheelStep)
	}
}

func (s *windowSurface) handleKey(keyCode uint32) {
	s.mu.Lock()
	fn := s.onKey
	s.mu.Unlock()
	if fn != nil {
		fn(keyCode)
	}
}

func pointerButton(b window.MouseButton) (choreographer.PointerButton, bool) {
	switch b {
	case window.MouseButtonLeft:
		return choreographer.PointerPrimary, true
	case window.MouseButtonRight:
		return choreographer.PointerSecondary, true
	}
	return 0, false
}

func (s *windowSurface) handleMouseDown(b window.MouseButton, x, y float64) {
	pb, ok := pointerButton(b)
	if !ok {
		return
	}
	s.mu.Lock()
	s.buttons[b] = true
	s.mu.Unlock()
	e := choreographer.PointerEvent{X: float32(x), Y: float32(y), Button: pb}
	for _, l := range s.snapshot() {
		l.OnPointerDown(e)
	}
}

func (s *windowSurface) handleMouseUp(b window.MouseButton, x, y float64) {
	pb, ok := pointerButton(b)
	if !ok {
		return
	}
	s.mu.Lock()
	delete(s.buttons, b)
	s.mu.Unlock()
	e := choreographer.PointerEvent{X: float32(x), Y: float32(y), Button: pb}
	for _, l := range s.snapshot() {
		l.OnPointerUp(e)
	}
}

func (s *windowSurface) handleMouseMove(x, y float64) {
	e := choreographer.PointerEvent{X: float32(x), Y: float32(y)}
	s.mu.Lock()
	if s.buttons[window.MouseButtonRight] && !s.buttons[window.MouseButtonLeft] {
		e.Button = choreographer.PointerSecondary
	}
	s.mu.Unlock()
	for _, l := range s.snapshot() {
		l.OnPointerMove(e)
	}
}

func (s *windowSurface) handleLeave() {
	s.mu.Lock()
	clear(s.buttons)
	s.mu.Unlock()
	for _, l := range s.snapshot() {
		l.OnPointerLeave()
	}
}
