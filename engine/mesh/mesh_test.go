package mesh

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Carmen-Shannon/oxy-tour/common"
)

func TestSphere(t *testing.T) {
	g := Sphere(1.5, 16, 8)
	assert.Equal(t, TopologyTriangles, g.Topology)
	assert.Len(t, g.Vertices, 17*9)
	// the pole rows contribute one triangle per segment, the rest two
	assert.Len(t, g.Indices, (16*8*2-2*16)*3)

	for _, v := range g.Vertices {
		p := common.Vec3{X: v.Position[0], Y: v.Position[1], Z: v.Position[2]}
		n := common.Vec3{X: v.Normal[0], Y: v.Normal[1], Z: v.Normal[2]}
		assert.InDelta(t, 1.5, p.Len(), 1e-4)
		assert.InDelta(t, 1, n.Len(), 1e-4)
	}
	for _, idx := range g.Indices {
		require.Less(t, int(idx), len(g.Vertices))
	}
	assert.InDelta(t, 1.5, g.Vertices[0].Position[1], 1e-5, "first row is the north pole")
	assert.Zero(t, g.Vertices[0].UV[1])
}

func TestSphereClampsSegments(t *testing.T) {
	g := Sphere(1, 0, 0)
	assert.Len(t, g.Vertices, 4*3)
}

func TestRing(t *testing.T) {
	g := Ring(0.78, 0.82, 128)
	assert.Len(t, g.Vertices, 129*2)
	assert.Len(t, g.Indices, 128*6)
	assert.Equal(t, float32(0.82), g.Radius)

	for _, v := range g.Vertices {
		r := math.Hypot(float64(v.Position[0]), float64(v.Position[1]))
		assert.True(t, r > 0.779 && r < 0.821, "radius %f out of band", r)
		assert.Zero(t, v.Position[2])
	}
}

func TestCylinder(t *testing.T) {
	g := Cylinder(0.02, 0.02, 2, 8)
	assert.Len(t, g.Vertices, 9*2)
	assert.Len(t, g.Indices, 8*6)
	for _, v := range g.Vertices {
		assert.InDelta(t, 1, math.Abs(float64(v.Position[1])), 1e-6)
	}
}

func TestPoints(t *testing.T) {
	g := Points([]common.Vec3{{X: 3, Y: 4}, {Z: -2}})
	assert.Equal(t, TopologyPoints, g.Topology)
	assert.Empty(t, g.Indices)
	assert.Len(t, g.Vertices, 2)
	assert.InDelta(t, 5, g.Radius, 1e-6)
}

func TestMarshalVertices(t *testing.T) {
	buf := MarshalVertices([]Vertex{{Position: [3]float32{1, 2, 3}, UV: [2]float32{0.5, 0.25}}})
	require.Len(t, buf, VertexSize)
	assert.Equal(t, float32(2), math.Float32frombits(binary.LittleEndian.Uint32(buf[4:])))
	assert.Equal(t, float32(0.25), math.Float32frombits(binary.LittleEndian.Uint32(buf[28:])))

	idx := MarshalIndices([]uint32{7, 9})
	assert.Equal(t, uint32(9), binary.LittleEndian.Uint32(idx[4:]))
}
