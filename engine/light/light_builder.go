package light

import "github.com/Carmen-Shannon/oxy-tour/common"

// LightBuilderOption is a function that configures a Light instance during construction.
type LightBuilderOption func(*lightImpl)

// WithPosition is an option builder that sets the world-space position of the light.
//
// Parameters:
//   - p: the position
//
// Returns:
//   - LightBuilderOption: a function that applies the position option to a lightImpl
func WithPosition(p common.Vec3) LightBuilderOption {
	return func(l *lightImpl) {
		l.position = p
	}
}

// WithColor is an option builder that sets the light color from a packed 0xRRGGBB value.
//
// Parameters:
//   - hex: the packed color
//
// Returns:
//   - LightBuilderOption: a function that applies the color option to a lightImpl
func WithColor(hex uint32) LightBuilderOption {
	return func(l *lightImpl) {
		l.color = common.HexColor(hex)
	}
}

// WithGroundColor sets the hemisphere ground color from a packed 0xRRGGBB value.
//
// Parameters:
//   - hex: the packed color
//
// Returns:
//   - LightBuilderOption: a function that applies the ground color option to a lightImpl
func WithGroundColor(hex uint32) LightBuilderOption {
	return func(l *lightImpl) {
		l.groundColor = common.HexColor(hex)
	}
}

// WithIntensity is an option builder that sets the scalar intensity of the light.
//
// Parameters:
//   - intensity: the intensity multiplier
//
// Returns:
//   - LightBuilderOption: a function that applies the intensity option to a lightImpl
func WithIntensity(intensity float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.intensity = intensity
	}
}

// WithRange is an option builder that sets the cutoff distance of a point light.
//
// Parameters:
//   - lightRange: the distance at which the light reaches zero (0 = unlimited)
//
// Returns:
//   - LightBuilderOption: a function that applies the range option to a lightImpl
func WithRange(lightRange float32) LightBuilderOption {
	return func(l *lightImpl) {
		if lightRange >= 0 {
			l.lightRange = lightRange
		}
	}
}
