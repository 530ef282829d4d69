package material

import (
	"encoding/binary"
	"math"
	"unsafe"
)

// GPUMaterial is the per-draw material block of the draw data storage buffer.
// Matches the WGSL MaterialData struct layout exactly (48 bytes, three vec4<f32>).
type GPUMaterial struct {
	Color    [4]float32 // offset  0: rgb base color, a opacity
	Emissive [4]float32 // offset 16: rgb emissive, w = 1 for unlit
	Params   [4]float32 // offset 32: x = has texture, y = roughness, z = metallic, w unused
}

// ToGPU packs the material's current state.
//
// Parameters:
//   - m: the material to pack
//
// Returns:
//   - GPUMaterial: the GPU-aligned block
func ToGPU(m Material) GPUMaterial {
	c := m.BaseColor()
	e := m.Emissive()
	g := GPUMaterial{
		Color:    [4]float32{c[0], c[1], c[2], m.Opacity()},
		Emissive: [4]float32{e[0], e[1], e[2], 0},
		Params:   [4]float32{0, m.Roughness(), m.Metallic(), 0},
	}
	if m.Unlit() {
		g.Emissive[3] = 1
	}
	if m.Texture() != 0 {
		g.Params[0] = 1
	}
	return g
}

// Size returns the size of the GPUMaterial struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes (48)
func (g *GPUMaterial) Size() int {
	return int(unsafe.Sizeof(*g))
}

// MarshalTo writes the struct into buf, which must hold at least Size bytes.
//
// Parameters:
//   - buf: destination buffer
func (g *GPUMaterial) MarshalTo(buf []byte) {
	for i, v := range [12]float32{
		g.Color[0], g.Color[1], g.Color[2], g.Color[3],
		g.Emissive[0], g.Emissive[1], g.Emissive[2], g.Emissive[3],
		g.Params[0], g.Params[1], g.Params[2], g.Params[3],
	} {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
}
