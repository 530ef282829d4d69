package camera

// CameraControllerOption is a functional option for configuring a CameraController.
type CameraControllerOption func(*cameraControllerImpl)

// WithEnabled sets whether the controller starts out accepting rotation input.
//
// Parameters:
//   - enabled: the initial state (default false)
//
// Returns:
//   - CameraControllerOption: option function to apply
func WithEnabled(enabled bool) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.enabled = enabled
	}
}

// WithDamping sets the fraction of pending rotation applied per Update.
// Values outside (0, 1] are ignored.
//
// Parameters:
//   - damping: the damping factor (default 0.05)
//
// Returns:
//   - CameraControllerOption: option function to apply
func WithDamping(damping float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		if damping > 0 && damping <= 1 {
			cc.damping = damping
		}
	}
}

// WithRotateSpeed scales pointer deltas passed to Rotate.
//
// Parameters:
//   - speed: the rotate speed (default 0.5)
//
// Returns:
//   - CameraControllerOption: option function to apply
func WithRotateSpeed(speed float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.rotateSpeed = speed
	}
}

// WithPolarLimits bounds the polar angle (radians from +Y).
//
// Parameters:
//   - minPolar: lower bound
//   - maxPolar: upper bound (must be >= minPolar)
//
// Returns:
//   - CameraControllerOption: option function to apply
func WithPolarLimits(minPolar, maxPolar float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		if maxPolar >= minPolar {
			cc.minPolar = minPolar
			cc.maxPolar = maxPolar
		}
	}
}
