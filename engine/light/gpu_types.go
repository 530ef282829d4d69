package light

import (
	"encoding/binary"
	"math"
	"unsafe"
)

// MaxPointLights is the number of point lights the shader evaluates. Extra lights are dropped
// in scene order.
const MaxPointLights = 4

// GPUPointLight is one entry of the Lighting.points array (32 bytes).
type GPUPointLight struct {
	PositionRange [4]float32 // xyz position, w range (0 = unlimited)
	Color         [4]float32 // rgb color * intensity, w unused
}

// GPULighting is the GPU-aligned light summary uploaded with each frame.
// Matches the WGSL Lighting struct layout exactly (192 bytes).
type GPULighting struct {
	Ambient     [4]float32                    // offset  0: summed ambient rgb
	SkyColor    [4]float32                    // offset 16: hemisphere sky rgb * intensity
	GroundColor [4]float32                    // offset 32: hemisphere ground rgb * intensity
	Counts      [4]float32                    // offset 48: x = point light count
	Points      [MaxPointLights]GPUPointLight // offset 64
}

// Summarize folds the enabled lights into a GPULighting block: ambient lights are summed,
// hemisphere lights are summed, and the first MaxPointLights point lights are kept.
//
// Parameters:
//   - lights: the scene's lights
//
// Returns:
//   - GPULighting: the packed summary
func Summarize(lights []Light) GPULighting {
	var g GPULighting
	n := 0
	for _, l := range lights {
		if l == nil || !l.Enabled() {
			continue
		}
		c, k := l.Color(), l.Intensity()
		switch l.Type() {
		case LightTypeAmbient:
			for i := 0; i < 3; i++ {
				g.Ambient[i] += c[i] * k
			}
		case LightTypeHemisphere:
			gc := l.GroundColor()
			for i := 0; i < 3; i++ {
				g.SkyColor[i] += c[i] * k
				g.GroundColor[i] += gc[i] * k
			}
		case LightTypePoint:
			if n >= MaxPointLights {
				continue
			}
			p := l.Position()
			g.Points[n] = GPUPointLight{
				PositionRange: [4]float32{p.X, p.Y, p.Z, l.Range()},
				Color:         [4]float32{c[0] * k, c[1] * k, c[2] * k, 0},
			}
			n++
		}
	}
	g.Counts[0] = float32(n)
	return g
}

// Size returns the size of the GPULighting struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (192)
func (g *GPULighting) Size() int {
	return int(unsafe.Sizeof(*g))
}

// MarshalTo writes the struct into buf, which must hold at least Size bytes.
//
// Parameters:
//   - buf: destination buffer
func (g *GPULighting) MarshalTo(buf []byte) {
	vecs := make([][4]float32, 0, 4+MaxPointLights*2)
	vecs = append(vecs, g.Ambient, g.SkyColor, g.GroundColor, g.Counts)
	for _, p := range g.Points {
		vecs = append(vecs, p.PositionRange, p.Color)
	}
	for i, v := range vecs {
		for j := 0; j < 4; j++ {
			binary.LittleEndian.PutUint32(buf[(i*4+j)*4:], math.Float32bits(v[j]))
		}
	}
}
