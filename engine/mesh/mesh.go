// Package mesh generates the CPU-side geometry the tour draws: UV spheres for planets, flat
// annuli for rings, thin cylinders for shooting stars, and point clouds for the starfield.
package mesh

import (
	"github.com/chewxy/math32"

	"github.com/Carmen-Shannon/oxy-tour/common"
)

// Topology selects how the renderer assembles vertices.
type Topology int

const (
	TopologyTriangles Topology = iota
	TopologyPoints
)

// Vertex is the interleaved vertex layout uploaded to the GPU (32 bytes).
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	UV       [2]float32
}

// VertexSize is the stride of Vertex in bytes.
const VertexSize = 32

// Geometry is indexed vertex data plus its topology. Point clouds carry no indices.
type Geometry struct {
	Vertices []Vertex
	Indices  []uint32
	Topology Topology
	// Radius bounds every vertex around the origin; used for culling.
	Radius float32
}

// Sphere builds a UV sphere centred on the origin. U wraps around +Y starting at -X and V runs
// from the north pole (0) to the south pole (1), matching equirectangular planet maps.
//
// Parameters:
//   - radius: sphere radius
//   - widthSegments: segments around the equator (minimum 3)
//   - heightSegments: segments pole to pole (minimum 2)
//
// Returns:
//   - Geometry: the triangle mesh
func Sphere(radius float32, widthSegments, heightSegments int) Geometry {
	widthSegments = max(widthSegments, 3)
	heightSegments = max(heightSegments, 2)

	g := Geometry{Topology: TopologyTriangles, Radius: radius}
	grid := make([][]uint32, heightSegments+1)
	for iy := 0; iy <= heightSegments; iy++ {
		v := float32(iy) / float32(heightSegments)
		theta := v * math32.Pi
		row := make([]uint32, widthSegments+1)
		for ix := 0; ix <= widthSegments; ix++ {
			u := float32(ix) / float32(widthSegments)
			phi := u * 2 * math32.Pi
			n := common.Vec3{
				X: -math32.Cos(phi) * math32.Sin(theta),
				Y: math32.Cos(theta),
				Z: math32.Sin(phi) * math32.Sin(theta),
			}
			row[ix] = uint32(len(g.Vertices))
			g.Vertices = append(g.Vertices, Vertex{
				Position: n.Scale(radius).Array(),
				Normal:   n.Array(),
				UV:       [2]float32{u, v},
			})
		}
		grid[iy] = row
	}

	for iy := 0; iy < heightSegments; iy++ {
		for ix := 0; ix < widthSegments; ix++ {
			a := grid[iy][ix+1]
			b := grid[iy][ix]
			c := grid[iy+1][ix]
			d := grid[iy+1][ix+1]
			if iy != 0 {
				g.Indices = append(g.Indices, a, b, d)
			}
			if iy != heightSegments-1 {
				g.Indices = append(g.Indices, b, c, d)
			}
		}
	}
	return g
}

// Ring builds a flat annulus in the XY plane facing +Z. U runs radially from the inner edge (0)
// to the outer edge (1) and V runs once around, so strip textures map across the ring.
//
// Parameters:
//   - inner: inner radius
//   - outer: outer radius (must be > inner)
//   - segments: segments around the ring (minimum 3)
//
// Returns:
//   - Geometry: the triangle mesh
func Ring(inner, outer float32, segments int) Geometry {
	segments = max(segments, 3)
	g := Geometry{Topology: TopologyTriangles, Radius: outer}
	normal := [3]float32{0, 0, 1}

	for i := 0; i <= segments; i++ {
		v := float32(i) / float32(segments)
		a := v * 2 * math32.Pi
		c, s := math32.Cos(a), math32.Sin(a)
		g.Vertices = append(g.Vertices,
			Vertex{Position: [3]float32{inner * c, inner * s, 0}, Normal: normal, UV: [2]float32{0, v}},
			Vertex{Position: [3]float32{outer * c, outer * s, 0}, Normal: normal, UV: [2]float32{1, v}},
		)
	}
	for i := 0; i < segments; i++ {
		in0, out0 := uint32(i*2), uint32(i*2+1)
		in1, out1 := in0+2, out0+2
		g.Indices = append(g.Indices, in0, out0, out1, in0, out1, in1)
	}
	return g
}

// Cylinder builds an open-ended cylinder along Y centred on the origin.
//
// Parameters:
//   - radiusTop: radius at +height/2
//   - radiusBottom: radius at -height/2
//   - height: total length along Y
//   - radialSegments: segments around the axis (minimum 3)
//
// Returns:
//   - Geometry: the triangle mesh
func Cylinder(radiusTop, radiusBottom, height float32, radialSegments int) Geometry {
	radialSegments = max(radialSegments, 3)
	half := height / 2
	g := Geometry{
		Topology: TopologyTriangles,
		Radius:   math32.Sqrt(half*half + max(radiusTop, radiusBottom)*max(radiusTop, radiusBottom)),
	}
	for i := 0; i <= radialSegments; i++ {
		u := float32(i) / float32(radialSegments)
		a := u * 2 * math32.Pi
		s, c := math32.Sin(a), math32.Cos(a)
		n := [3]float32{s, 0, c}
		g.Vertices = append(g.Vertices,
			Vertex{Position: [3]float32{radiusTop * s, half, radiusTop * c}, Normal: n, UV: [2]float32{u, 0}},
			Vertex{Position: [3]float32{radiusBottom * s, -half, radiusBottom * c}, Normal: n, UV: [2]float32{u, 1}},
		)
	}
	for i := 0; i < radialSegments; i++ {
		t0, b0 := uint32(i*2), uint32(i*2+1)
		t1, b1 := t0+2, b0+2
		g.Indices = append(g.Indices, t0, b0, b1, t0, b1, t1)
	}
	return g
}

// Points builds a point cloud from positions. Normals point away from the origin so the lit
// shader treats every point as facing the viewer at the centre.
//
// Parameters:
//   - positions: one entry per point
//
// Returns:
//   - Geometry: the point-list geometry
func Points(positions []common.Vec3) Geometry {
	g := Geometry{Topology: TopologyPoints, Vertices: make([]Vertex, len(positions))}
	for i, p := range positions {
		g.Vertices[i] = Vertex{Position: p.Array(), Normal: p.Normalize().Scale(-1).Array()}
		g.Radius = max(g.Radius, p.Len())
	}
	return g
}
