package common

import (
	"github.com/chewxy/math32"
)

// Plane represents a plane ax + by + cz + d = 0 where (a, b, c) is the normal.
type Plane struct {
	Normal   Vec3
	Distance float32
}

// Frustum holds the six clip planes of a view-projection matrix, oriented so the
// positive half-space is inside.
type Frustum struct {
	Planes [6]Plane // Left, Right, Bottom, Top, Near, Far
}

// ExtractFrustum extracts normalized frustum planes from a column-major
// view-projection matrix using the Gribb/Hartmann method. The near plane uses
// row 2 alone because WebGPU clip depth starts at 0.
//
// Parameters:
//   - viewProj: 16 float32 values (column-major)
//
// Returns:
//   - Frustum: the extracted frustum
func ExtractFrustum(viewProj []float32) Frustum {
	row := func(i int) [4]float32 {
		return [4]float32{viewProj[i], viewProj[4+i], viewProj[8+i], viewProj[12+i]}
	}
	r0, r1, r2, r3 := row(0), row(1), row(2), row(3)

	combos := [6][4]float32{}
	for k := 0; k < 4; k++ {
		combos[0][k] = r3[k] + r0[k]
		combos[1][k] = r3[k] - r0[k]
		combos[2][k] = r3[k] + r1[k]
		combos[3][k] = r3[k] - r1[k]
		combos[4][k] = r2[k]
		combos[5][k] = r3[k] - r2[k]
	}

	var f Frustum
	for i, c := range combos {
		n := Vec3{c[0], c[1], c[2]}
		l := n.Len()
		if l > 0 {
			f.Planes[i] = Plane{Normal: n.Scale(1 / l), Distance: c[3] / l}
		} else {
			f.Planes[i] = Plane{Normal: n, Distance: c[3]}
		}
	}
	return f
}

// IntersectsSphere reports whether a sphere overlaps the frustum.
//
// Parameters:
//   - center: sphere center in world space
//   - radius: sphere radius
//
// Returns:
//   - bool: false only when the sphere lies entirely outside one plane
func (f Frustum) IntersectsSphere(center Vec3, radius float32) bool {
	for _, p := range f.Planes {
		d := p.Normal.X*center.X + p.Normal.Y*center.Y + p.Normal.Z*center.Z + p.Distance
		if d < -math32.Abs(radius) {
			return false
		}
	}
	return true
}
