package common

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
)

func TestDampConverges(t *testing.T) {
	x := float32(0)
	prev := math32.Abs(10 - x)
	for i := 0; i < 200; i++ {
		x = Damp(x, 10, 0.1)
		d := math32.Abs(10 - x)
		assert.LessOrEqual(t, d, prev)
		prev = d
	}
	assert.InDelta(t, 10, x, 1e-3)
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0.0, Clamp(-1.0, 0, 1))
	assert.Equal(t, 1.0, Clamp(2.0, 0, 1))
	assert.Equal(t, 0.25, Clamp(0.25, 0, 1))
	assert.Equal(t, 9, Clamp(12, 0, 9))
}

func TestMul4Identity(t *testing.T) {
	id := make([]float32, 16)
	Identity(id)
	m := make([]float32, 16)
	BuildModelMatrix(m, Vec3{1, 2, 3}, Vec3{0.3, 0.2, 0.1}, Vec3{2, 2, 2})

	out := make([]float32, 16)
	Mul4(out, id, m)
	assert.InDeltaSlice(t, m, out, 1e-6)
	Mul4(out, m, id)
	assert.InDeltaSlice(t, m, out, 1e-6)
}

func TestBuildModelMatrixTranslatesAndRotates(t *testing.T) {
	m := make([]float32, 16)
	BuildModelMatrix(m, Vec3{5, 0, 0}, Vec3{Y: math32.Pi / 2}, Vec3{1, 1, 1})

	// +X rotated a quarter turn about Y lands on -Z.
	p := TransformPoint(m, Vec3{X: 1})
	assert.InDelta(t, 5, p.X, 1e-5)
	assert.InDelta(t, 0, p.Y, 1e-5)
	assert.InDelta(t, -1, p.Z, 1e-5)
}

func TestLookAtMapsTargetOntoNegativeZ(t *testing.T) {
	view := make([]float32, 16)
	LookAt(view, Vec3{3, 0, 4}, Vec3{3, 0, 0}, Vec3{Y: 1})

	p := TransformPoint(view, Vec3{3, 0, 0})
	assert.InDelta(t, 0, p.X, 1e-5)
	assert.InDelta(t, 0, p.Y, 1e-5)
	assert.InDelta(t, -4, p.Z, 1e-5)
}

func TestFrustumIntersectsSphere(t *testing.T) {
	view := make([]float32, 16)
	proj := make([]float32, 16)
	vp := make([]float32, 16)
	LookAt(view, Vec3{0, 0, 4}, Vec3{}, Vec3{Y: 1})
	Perspective(proj, math32.Pi/3, 1, 0.1, 1000)
	Mul4(vp, proj, view)

	f := ExtractFrustum(vp)
	assert.True(t, f.IntersectsSphere(Vec3{}, 1))
	assert.False(t, f.IntersectsSphere(Vec3{0, 0, 10}, 1), "behind the camera")
	assert.False(t, f.IntersectsSphere(Vec3{100, 0, 0}, 1), "far to the right")
	assert.True(t, f.IntersectsSphere(Vec3{3, 0, 0}, 1), "edge sphere overlaps")
}

func TestHexColors(t *testing.T) {
	assert.Equal(t, uint32(0xFDB813), ParseHexColor("#FDB813"))
	assert.Equal(t, uint32(0x4a90e2), ParseHexColor("4a90e2"))
	assert.Equal(t, uint32(0xFFFFFF), ParseHexColor("#zzz"))

	c := HexColor(0xFF8000)
	assert.InDelta(t, 1, c[0], 1e-6)
	assert.InDelta(t, 128.0/255, c[1], 1e-6)
	assert.InDelta(t, 0, c[2], 1e-6)
}

func TestVec3Normalize(t *testing.T) {
	v := Vec3{3, 0, 4}.Normalize()
	assert.InDelta(t, 1, v.Len(), 1e-6)
	assert.Equal(t, Vec3{}, Vec3{}.Normalize())
}
