package light

import "github.com/Carmen-Shannon/oxy-tour/common"

// LightType identifies the kind of light source.
type LightType int

const (
	// LightTypeAmbient lights every fragment uniformly regardless of orientation.
	LightTypeAmbient LightType = iota

	// LightTypePoint emits in all directions from a position and attenuates with
	// inverse-square falloff, reaching zero at its range.
	LightTypePoint

	// LightTypeHemisphere blends between a sky color (normals facing +Y) and a ground
	// color (normals facing -Y).
	LightTypeHemisphere
)

// lightImpl is the implementation of the Light interface.
type lightImpl struct {
	lightType   LightType
	position    common.Vec3
	color       [3]float32
	groundColor [3]float32
	intensity   float32
	lightRange  float32
	enabled     bool
}

// Light defines the interface for a light source in the scene.
//
// Lights are scene-level entities summarized into a single uniform block each frame
// (see Summarize). Type-specific properties return zero values when not applicable.
type Light interface {
	// Type returns the kind of light source.
	//
	// Returns:
	//   - LightType: the light type
	Type() LightType

	// Position returns the world-space position. Only meaningful for point lights.
	//
	// Returns:
	//   - common.Vec3: the position
	Position() common.Vec3

	// Color returns the RGB color. For hemisphere lights this is the sky color.
	//
	// Returns:
	//   - [3]float32: color as (r, g, b)
	Color() [3]float32

	// GroundColor returns the hemisphere ground color.
	//
	// Returns:
	//   - [3]float32: color as (r, g, b)
	GroundColor() [3]float32

	// Intensity returns the scalar intensity multiplier.
	//
	// Returns:
	//   - float32: the intensity value
	Intensity() float32

	// Range returns the distance at which a point light's contribution reaches zero.
	// Zero means unlimited.
	//
	// Returns:
	//   - float32: the range
	Range() float32

	// Enabled reports whether the light contributes to shading.
	//
	// Returns:
	//   - bool: true if enabled
	Enabled() bool

	// SetPosition moves the light.
	//
	// Parameters:
	//   - p: the new world-space position
	SetPosition(p common.Vec3)

	// SetIntensity sets the scalar intensity multiplier.
	//
	// Parameters:
	//   - intensity: the new intensity
	SetIntensity(intensity float32)

	// SetEnabled toggles the light.
	//
	// Parameters:
	//   - enabled: the new state
	SetEnabled(enabled bool)
}

var _ Light = &lightImpl{}

// NewLight creates a new Light of the given type. Defaults: white, intensity 1, enabled.
//
// Parameters:
//   - lightType: the kind of light
//   - opts: functional options to configure the light
//
// Returns:
//   - Light: the configured light
func NewLight(lightType LightType, opts ...LightBuilderOption) Light {
	l := &lightImpl{
		lightType: lightType,
		color:     [3]float32{1, 1, 1},
		intensity: 1,
		enabled:   true,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *lightImpl) Type() LightType {
	return l.lightType
}

func (l *lightImpl) Position() common.Vec3 {
	return l.position
}

func (l *lightImpl) Color() [3]float32 {
	return l.color
}

func (l *lightImpl) GroundColor() [3]float32 {
	return l.groundColor
}

func (l *lightImpl) Intensity() float32 {
	return l.intensity
}

func (l *lightImpl) Range() float32 {
	return l.lightRange
}

func (l *lightImpl) Enabled() bool {
	return l.enabled
}

func (l *lightImpl) SetPosition(p common.Vec3) {
	l.position = p
}

func (l *lightImpl) SetIntensity(intensity float32) {
	l.intensity = intensity
}

func (l *lightImpl) SetEnabled(enabled bool) {
	l.enabled = enabled
}
