package camera

import "github.com/Carmen-Shannon/oxy-tour/common"

// CameraController is an orbit-style controller that rotates a Camera around a target point
// on a sphere, with damping and polar-angle limits. Zoom and pan are not supported.
//
// Rotation input is only accepted while the controller is enabled; pending rotation keeps
// decaying through Update even after it is disabled, so motion never stops abruptly.
type CameraController interface {
	// Enabled reports whether rotation input is accepted.
	//
	// Returns:
	//   - bool: true if enabled
	Enabled() bool

	// SetEnabled turns rotation input on or off. Ignored after Dispose.
	//
	// Parameters:
	//   - enabled: the new state
	SetEnabled(enabled bool)

	// Target returns the orbit pivot.
	//
	// Returns:
	//   - common.Vec3: the pivot point
	Target() common.Vec3

	// SetTarget moves the orbit pivot. The camera is not moved until rotation is applied.
	//
	// Parameters:
	//   - t: the new pivot
	SetTarget(t common.Vec3)

	// Rotate queues a rotation from a pointer delta in pixels. A drag across the full viewport
	// height rotates one full turn scaled by the rotate speed.
	//
	// Parameters:
	//   - dx, dy: pointer delta in pixels
	//   - viewportHeight: the viewport height in pixels
	Rotate(dx, dy, viewportHeight float32)

	// Update applies one damping step of the pending rotation to cam: the camera orbits the
	// target at its current distance, clamped to the polar bounds, and looks at the target.
	// Does nothing when no rotation is pending.
	//
	// Parameters:
	//   - cam: the camera to move
	//
	// Returns:
	//   - bool: true if the camera was moved
	Update(cam Camera) bool

	// Dispose disables the controller permanently and drops pending rotation.
	// Safe to call multiple times.
	Dispose()

	// Disposed reports whether Dispose has been called.
	//
	// Returns:
	//   - bool: true after Dispose
	Disposed() bool
}
