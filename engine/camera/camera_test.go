package camera

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"

	"github.com/Carmen-Shannon/oxy-tour/common"
)

func TestNewCameraDefaults(t *testing.T) {
	c := NewCamera()
	assert.InDelta(t, math32.Pi/3, c.Fov(), 1e-6)
	assert.Equal(t, float32(0.1), c.Near())
	assert.Equal(t, float32(1000), c.Far())
	assert.Equal(t, common.Vec3{Z: 4}, c.Position())
}

func TestSetAspectIgnoresInvalid(t *testing.T) {
	c := NewCamera(WithAspect(16.0 / 9.0))
	c.SetAspect(0)
	c.SetAspect(math32.NaN())
	assert.InDelta(t, 16.0/9.0, c.Aspect(), 1e-6)
	c.SetAspect(2)
	assert.Equal(t, float32(2), c.Aspect())
}

func TestUpdateProjectsTargetToScreenCenter(t *testing.T) {
	c := NewCamera(WithPosition(common.Vec3{X: 8, Z: 4}), WithTarget(common.Vec3{X: 8}))
	c.Update()

	vp := c.ViewProjectionMatrix()
	p := common.TransformPoint(vp[:], common.Vec3{X: 8})
	assert.InDelta(t, 0, p.X, 1e-5)
	assert.InDelta(t, 0, p.Y, 1e-5)
	assert.True(t, c.Frustum().IntersectsSphere(common.Vec3{X: 8}, 0.5))
	assert.False(t, c.Frustum().IntersectsSphere(common.Vec3{X: 80}, 0.5))
}

func TestControllerDisabledByDefaultIgnoresRotate(t *testing.T) {
	cc := NewCameraController()
	assert.False(t, cc.Enabled())

	cam := NewCamera()
	cc.Rotate(100, 0, 600)
	assert.False(t, cc.Update(cam))
	assert.Equal(t, common.Vec3{Z: 4}, cam.Position())
}

func TestControllerOrbitsAtConstantRadiusAndLooksAtTarget(t *testing.T) {
	target := common.Vec3{X: 8}
	cam := NewCamera(WithPosition(common.Vec3{X: 8, Z: 4}))
	cc := NewCameraController(WithEnabled(true))
	cc.SetTarget(target)

	cc.Rotate(200, 0, 600)
	moved := false
	for i := 0; i < 50; i++ {
		moved = cc.Update(cam) || moved
		assert.InDelta(t, 4, cam.Position().Sub(target).Len(), 1e-4)
		assert.Equal(t, target, cam.Target())
	}
	assert.True(t, moved)
	assert.NotEqual(t, float32(8), cam.Position().X)
}

func TestControllerDampingDecaysToRest(t *testing.T) {
	cam := NewCamera()
	cc := NewCameraController(WithEnabled(true))
	cc.Rotate(50, 0, 600)

	var prev common.Vec3
	steps := 0
	for cc.Update(cam) {
		steps++
		if steps > 1 {
			step := cam.Position().Sub(prev).Len()
			assert.Greater(t, step, float32(0))
		}
		prev = cam.Position()
		if steps > 10000 {
			t.Fatal("damping never settled")
		}
	}
	assert.Greater(t, steps, 1)
}

func TestControllerClampsPolarAngle(t *testing.T) {
	cam := NewCamera()
	cc := NewCameraController(WithEnabled(true), WithDamping(1))
	cc.Rotate(0, -10000, 600)
	cc.Update(cam)

	p := cam.Position()
	phi := math32.Acos(p.Y / p.Len())
	assert.InDelta(t, math32.Pi/1.5, phi, 1e-4)

	cc.Rotate(0, 20000, 600)
	cc.Update(cam)
	p = cam.Position()
	phi = math32.Acos(p.Y / p.Len())
	assert.InDelta(t, math32.Pi/2.5, phi, 1e-4)
}

func TestControllerDispose(t *testing.T) {
	cc := NewCameraController(WithEnabled(true))
	cc.Rotate(100, 0, 600)
	cc.Dispose()
	cc.Dispose()

	assert.True(t, cc.Disposed())
	assert.False(t, cc.Enabled())
	cc.SetEnabled(true)
	assert.False(t, cc.Enabled())
	assert.False(t, cc.Update(NewCamera()))
}
