package common

import (
	"github.com/chewxy/math32"
)

// Vec3 is a plain 3-component float32 vector used for positions, rotations and directions.
type Vec3 struct {
	X, Y, Z float32
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }

// Scale returns v * s.
func (v Vec3) Scale(s float32) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

// Len returns the Euclidean length of v.
func (v Vec3) Len() float32 { return math32.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z) }

// Normalize returns v scaled to unit length. A zero vector is returned unchanged.
func (v Vec3) Normalize() Vec3 {
	l := v.Len()
	if l == 0 {
		return v
	}
	return v.Scale(1 / l)
}

// Array returns v as a fixed array, the layout GPU structs expect.
func (v Vec3) Array() [3]float32 { return [3]float32{v.X, v.Y, v.Z} }

// Damp moves current toward target by factor and returns the new value.
// This is a discrete low-pass step: current + (target - current) * factor.
//
// Parameters:
//   - current: the value being smoothed
//   - target: the value it converges to
//   - factor: fraction of the remaining distance covered per step, in (0, 1]
//
// Returns:
//   - float32: the smoothed value
func Damp(current, target, factor float32) float32 {
	return current + (target-current)*factor
}

// Clamp limits v to [lo, hi].
func Clamp[T ~float32 | ~float64 | ~int](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Identity resets a 4x4 matrix (flat slice) to the identity matrix.
// The matrix is stored in column-major order.
//
// Parameters:
//   - m: destination slice (must be at least 16 elements)
func Identity(m []float32) {
	clear(m[:16])
	m[0], m[5], m[10], m[15] = 1, 1, 1, 1
}

// Mul4 multiplies two 4x4 column-major matrices: out = a * b.
// out may alias a or b.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - a: left-hand matrix (16 elements)
//   - b: right-hand matrix (16 elements)
func Mul4(out, a, b []float32) {
	var buf [16]float32
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += a[k*4+row] * b[col*4+k]
			}
			buf[col*4+row] = sum
		}
	}
	copy(out, buf[:])
}

// Perspective writes a right-handed perspective projection mapping depth to the
// WebGPU clip range [0, 1].
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - fovY: vertical field of view in radians
//   - aspect: viewport aspect ratio (width/height)
//   - near: near clipping plane distance (must be > 0)
//   - far: far clipping plane distance (must be > near)
func Perspective(out []float32, fovY, aspect, near, far float32) {
	f := 1 / math32.Tan(fovY/2)
	clear(out[:16])
	out[0] = f / aspect
	out[5] = f
	out[10] = far / (near - far)
	out[11] = -1
	out[14] = (near * far) / (near - far)
}

// BuildModelMatrix writes a model matrix from a translation, Euler rotation and scale.
// Rotation is applied as Ry * Rx * Rz. All matrices are column-major.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - pos: translation in world space
//   - rot: rotation angles in radians around each axis
//   - scale: scale factors along each axis
func BuildModelMatrix(out []float32, pos, rot, scale Vec3) {
	cx, sx := math32.Cos(rot.X), math32.Sin(rot.X)
	cy, sy := math32.Cos(rot.Y), math32.Sin(rot.Y)
	cz, sz := math32.Cos(rot.Z), math32.Sin(rot.Z)

	out[0] = (cy*cz + sy*sx*sz) * scale.X
	out[1] = (cx * sz) * scale.X
	out[2] = (-sy*cz + cy*sx*sz) * scale.X
	out[3] = 0

	out[4] = (-cy*sz + sy*sx*cz) * scale.Y
	out[5] = (cx * cz) * scale.Y
	out[6] = (sy*sz + cy*sx*cz) * scale.Y
	out[7] = 0

	out[8] = (sy * cx) * scale.Z
	out[9] = -sx * scale.Z
	out[10] = (cy * cx) * scale.Z
	out[11] = 0

	out[12], out[13], out[14], out[15] = pos.X, pos.Y, pos.Z, 1
}

// TransformPoint applies a column-major 4x4 matrix to a point (w = 1), without the
// perspective divide.
func TransformPoint(m []float32, p Vec3) Vec3 {
	return Vec3{
		m[0]*p.X + m[4]*p.Y + m[8]*p.Z + m[12],
		m[1]*p.X + m[5]*p.Y + m[9]*p.Z + m[13],
		m[2]*p.X + m[6]*p.Y + m[10]*p.Z + m[14],
	}
}

// LookAt writes a view matrix for a camera at eye looking at center.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - eye: camera position in world space
//   - center: point the camera looks at
//   - up: up vector, usually +Y
func LookAt(out []float32, eye, center, up Vec3) {
	z := eye.Sub(center)
	if z.Len() == 0 {
		z = Vec3{Z: 1}
	}
	z = z.Normalize()

	x := Vec3{up.Y*z.Z - up.Z*z.Y, up.Z*z.X - up.X*z.Z, up.X*z.Y - up.Y*z.X}
	if x.Len() == 0 {
		x = Vec3{X: 1}
	}
	x = x.Normalize()

	y := Vec3{z.Y*x.Z - z.Z*x.Y, z.Z*x.X - z.X*x.Z, z.X*x.Y - z.Y*x.X}

	out[0], out[4], out[8], out[12] = x.X, x.Y, x.Z, -(x.X*eye.X + x.Y*eye.Y + x.Z*eye.Z)
	out[1], out[5], out[9], out[13] = y.X, y.Y, y.Z, -(y.X*eye.X + y.Y*eye.Y + y.Z*eye.Z)
	out[2], out[6], out[10], out[14] = z.X, z.Y, z.Z, -(z.X*eye.X + z.Y*eye.Y + z.Z*eye.Z)
	out[3], out[7], out[11], out[15] = 0, 0, 0, 1
}

// HexColor converts a 0xRRGGBB value to linear-ish RGB floats in [0, 1].
func HexColor(hex uint32) [3]float32 {
	return [3]float32{
		float32((hex>>16)&0xFF) / 255,
		float32((hex>>8)&0xFF) / 255,
		float32(hex&0xFF) / 255,
	}
}
