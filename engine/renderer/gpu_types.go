package renderer

import (
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/Carmen-Shannon/oxy-tour/engine/light"
	"github.com/Carmen-Shannon/oxy-tour/engine/renderer/material"
)

// DefaultDrawCapacity is the number of draw records the storage buffer holds before it grows.
const DefaultDrawCapacity = 256

// GPUFrameUniform is the per-frame uniform block bound at group 0 binding 0.
// Matches the WGSL FrameData struct layout exactly (272 bytes).
type GPUFrameUniform struct {
	ViewProj  [16]float32       // offset   0: column-major view-projection
	CameraPos [4]float32        // offset  64: xyz eye position, w unused
	Lighting  light.GPULighting // offset  80
}

// Size returns the size of the GPUFrameUniform struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes (272)
func (g *GPUFrameUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the uniform into a freshly allocated byte slice.
//
// Returns:
//   - []byte: the little-endian uniform contents
func (g *GPUFrameUniform) Marshal() []byte {
	buf := make([]byte, g.Size())
	for i, v := range g.ViewProj {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	for i, v := range g.CameraPos {
		binary.LittleEndian.PutUint32(buf[64+i*4:], math.Float32bits(v))
	}
	g.Lighting.MarshalTo(buf[80:])
	return buf
}

// GPUDrawData is one element of the draw storage buffer, indexed by instance_index.
// Matches the WGSL DrawData struct layout exactly (112 bytes).
type GPUDrawData struct {
	Model    [16]float32          // offset  0
	Material material.GPUMaterial // offset 64
}

// Size returns the size of the GPUDrawData struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes (112)
func (g *GPUDrawData) Size() int {
	return int(unsafe.Sizeof(*g))
}

// MarshalTo writes the struct into buf, which must hold at least Size bytes.
//
// Parameters:
//   - buf: destination buffer
func (g *GPUDrawData) MarshalTo(buf []byte) {
	for i, v := range g.Model {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	g.Material.MarshalTo(buf[64:])
}

// marshalDraws packs the items of a frame into the draw storage layout.
func marshalDraws(items []DrawItem) []byte {
	var d GPUDrawData
	stride := d.Size()
	buf := make([]byte, len(items)*stride)
	for i, it := range items {
		d = GPUDrawData{Model: it.Model, Material: it.Material}
		d.MarshalTo(buf[i*stride:])
	}
	return buf
}
