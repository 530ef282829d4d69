package mesh

import (
	"encoding/binary"
	"math"
)

// MarshalVertices serializes vertices into the 32-byte interleaved layout the render pipeline
// declares: position (float32x3), normal (float32x3), uv (float32x2).
//
// Parameters:
//   - vertices: the vertices to serialize
//
// Returns:
//   - []byte: the little-endian vertex buffer contents
func MarshalVertices(vertices []Vertex) []byte {
	buf := make([]byte, len(vertices)*VertexSize)
	for i, v := range vertices {
		off := i * VertexSize
		put := func(j int, f float32) {
			binary.LittleEndian.PutUint32(buf[off+j*4:], math.Float32bits(f))
		}
		put(0, v.Position[0])
		put(1, v.Position[1])
		put(2, v.Position[2])
		put(3, v.Normal[0])
		put(4, v.Normal[1])
		put(5, v.Normal[2])
		put(6, v.UV[0])
		put(7, v.UV[1])
	}
	return buf
}

// MarshalIndices serializes uint32 indices little-endian.
//
// Parameters:
//   - indices: the indices to serialize
//
// Returns:
//   - []byte: the index buffer contents
func MarshalIndices(indices []uint32) []byte {
	buf := make([]byte, len(indices)*4)
	for i, idx := range indices {
		binary.LittleEndian.PutUint32(buf[i*4:], idx)
	}
	return buf
}
