package choreographer

import "github.com/Carmen-Shannon/oxy-tour/engine/renderer"

// MaxPixelRatio caps the device pixel ratio used for the drawable.
const MaxPixelRatio = 2

// PointerButton identifies which button started a pointer gesture.
type PointerButton int

const (
	// PointerPrimary is the left mouse button or a single touch. It drags the current planet.
	PointerPrimary PointerButton = iota
	// PointerSecondary is the right mouse button. It orbits the camera when orbit control is enabled.
	PointerSecondary
)

// PointerEvent is a mouse or touch event in logical viewport coordinates (origin top-left).
type PointerEvent struct {
	X, Y   float32
	Button PointerButton
	// Touches is the number of active touch points, 0 for mouse input.
	Touches int
}

// Surface is the drawable the choreographer renders into. Width and Height are drawable pixels;
// the logical viewport is the drawable size divided by PixelRatio.
type Surface interface {
	renderer.SurfaceTarget

	// PixelRatio returns drawable pixels per logical pixel. Values above MaxPixelRatio are capped
	// by the choreographer.
	PixelRatio() float32

	// Subscribe registers l for resize and pointer notifications.
	//
	// Parameters:
	//   - l: the listener to notify
	//
	// Returns:
	//   - func(): removes exactly this registration
	Subscribe(l SurfaceListener) func()
}

// SurfaceListener receives resize and pointer notifications from a Surface.
type SurfaceListener interface {
	// OnResize reports a new drawable size in pixels.
	OnResize(width, height int)
	OnPointerDown(e PointerEvent)
	OnPointerMove(e PointerEvent)
	OnPointerUp(e PointerEvent)
	// OnPointerLeave reports the pointer leaving the surface.
	OnPointerLeave()
}
