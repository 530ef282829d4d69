package camera

import (
	"sync"

	"github.com/chewxy/math32"

	"github.com/Carmen-Shannon/oxy-tour/common"
)

// rotationEpsilon is the pending rotation, in radians, below which the controller is at rest.
const rotationEpsilon = 1e-6

// cameraControllerImpl is the single implementation of CameraController.
// Spherical angles follow the usual convention: theta around +Y measured from +Z, phi measured
// down from +Y.
type cameraControllerImpl struct {
	mu *sync.Mutex

	enabled  bool
	disposed bool

	target common.Vec3

	deltaTheta float32
	deltaPhi   float32

	damping     float32
	rotateSpeed float32
	minPolar    float32
	maxPolar    float32
}

// Compile-time interface compliance check
var _ CameraController = &cameraControllerImpl{}

// NewCameraController creates an orbit controller. Defaults: disabled, damping 0.05,
// rotate speed 0.5, polar angle limited to [pi/2.5, pi/1.5].
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - CameraController: the newly created controller
func NewCameraController(options ...CameraControllerOption) CameraController {
	cc := &cameraControllerImpl{
		mu:          &sync.Mutex{},
		damping:     0.05,
		rotateSpeed: 0.5,
		minPolar:    math32.Pi / 2.5,
		maxPolar:    math32.Pi / 1.5,
	}
	for _, option := range options {
		option(cc)
	}
	return cc
}

func (cc *cameraControllerImpl) Enabled() bool {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.enabled
}

func (cc *cameraControllerImpl) SetEnabled(enabled bool) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	if cc.disposed {
		return
	}
	cc.enabled = enabled
}

func (cc *cameraControllerImpl) Target() common.Vec3 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.target
}

func (cc *cameraControllerImpl) SetTarget(t common.Vec3) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.target = t
}

func (cc *cameraControllerImpl) Rotate(dx, dy, viewportHeight float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	if !cc.enabled || cc.disposed || viewportHeight <= 0 {
		return
	}
	cc.deltaTheta -= 2 * math32.Pi * dx / viewportHeight * cc.rotateSpeed
	cc.deltaPhi -= 2 * math32.Pi * dy / viewportHeight * cc.rotateSpeed
}

func (cc *cameraControllerImpl) Update(cam Camera) bool {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	if cc.disposed || cam == nil {
		return false
	}
	if math32.Abs(cc.deltaTheta) < rotationEpsilon && math32.Abs(cc.deltaPhi) < rotationEpsilon {
		cc.deltaTheta, cc.deltaPhi = 0, 0
		return false
	}

	offset := cam.Position().Sub(cc.target)
	radius := offset.Len()
	if radius == 0 {
		return false
	}
	theta := math32.Atan2(offset.X, offset.Z)
	phi := math32.Acos(common.Clamp(offset.Y/radius, -1, 1))

	theta += cc.deltaTheta * cc.damping
	phi = common.Clamp(phi+cc.deltaPhi*cc.damping, cc.minPolar, cc.maxPolar)

	sinPhi := math32.Sin(phi)
	cam.SetPosition(cc.target.Add(common.Vec3{
		X: radius * sinPhi * math32.Sin(theta),
		Y: radius * math32.Cos(phi),
		Z: radius * sinPhi * math32.Cos(theta),
	}))
	cam.LookAt(cc.target)

	cc.deltaTheta *= 1 - cc.damping
	cc.deltaPhi *= 1 - cc.damping
	return true
}

func (cc *cameraControllerImpl) Dispose() {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.disposed = true
	cc.enabled = false
	cc.deltaTheta, cc.deltaPhi = 0, 0
}

func (cc *cameraControllerImpl) Disposed() bool {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.disposed
}
