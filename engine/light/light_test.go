package light

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Carmen-Shannon/oxy-tour/common"
)

func TestSummarize(t *testing.T) {
	lights := []Light{
		NewLight(LightTypeAmbient, WithColor(0x404040), WithIntensity(1.5)),
		NewLight(LightTypePoint, WithColor(0xFFFFFF), WithIntensity(5), WithRange(150), WithPosition(common.Vec3{X: -50})),
		NewLight(LightTypeHemisphere, WithColor(0xFFFFFF), WithGroundColor(0x444444), WithIntensity(1)),
	}
	g := Summarize(lights)

	assert.InDelta(t, 1.5*64.0/255, g.Ambient[0], 1e-5)
	assert.InDelta(t, 1, g.SkyColor[1], 1e-6)
	assert.InDelta(t, 68.0/255, g.GroundColor[2], 1e-6)
	assert.Equal(t, float32(1), g.Counts[0])
	assert.Equal(t, [4]float32{-50, 0, 0, 150}, g.Points[0].PositionRange)
	assert.Equal(t, float32(5), g.Points[0].Color[0])
}

func TestSummarizeSkipsDisabledAndCapsPoints(t *testing.T) {
	var lights []Light
	for i := 0; i < MaxPointLights+2; i++ {
		lights = append(lights, NewLight(LightTypePoint))
	}
	off := NewLight(LightTypeAmbient)
	off.SetEnabled(false)
	lights = append(lights, off, nil)

	g := Summarize(lights)
	assert.Equal(t, float32(MaxPointLights), g.Counts[0])
	assert.Zero(t, g.Ambient[0])
}

func TestGPULightingLayout(t *testing.T) {
	g := GPULighting{Counts: [4]float32{2, 0, 0, 0}}
	g.Points[1].Color = [4]float32{0.5, 0, 0, 0}
	assert.Equal(t, 192, g.Size())

	buf := make([]byte, g.Size())
	g.MarshalTo(buf)
	assert.Equal(t, float32(2), math.Float32frombits(binary.LittleEndian.Uint32(buf[48:])))
	// points[1].color starts at 64 + 32 + 16
	assert.Equal(t, float32(0.5), math.Float32frombits(binary.LittleEndian.Uint32(buf[112:])))
}
