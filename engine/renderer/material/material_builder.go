package material

import "github.com/Carmen-Shannon/oxy-tour/common"

// MaterialBuilderOption is a function that configures a material instance during construction.
type MaterialBuilderOption func(*material)

// WithName is an option builder that sets the name of the material.
//
// Parameters:
//   - name: the identifier for the material
//
// Returns:
//   - MaterialBuilderOption: a function that applies the name option to a material
func WithName(name string) MaterialBuilderOption {
	return func(m *material) {
		m.name = name
	}
}

// WithColor sets the base color from a packed 0xRRGGBB value.
//
// Parameters:
//   - hex: the packed color
//
// Returns:
//   - MaterialBuilderOption: a function that applies the color to a material
func WithColor(hex uint32) MaterialBuilderOption {
	return func(m *material) {
		m.baseColor = common.HexColor(hex)
	}
}

// WithOpacity sets the initial opacity. Values below 1 do not switch pipelines on their own;
// combine with WithTransparent.
//
// Parameters:
//   - opacity: alpha multiplier in [0, 1]
//
// Returns:
//   - MaterialBuilderOption: a function that applies the opacity to a material
func WithOpacity(opacity float32) MaterialBuilderOption {
	return func(m *material) {
		m.opacity = common.Clamp(opacity, 0, 1)
	}
}

// WithTransparent draws the material with the alpha-blended, double-sided pipeline.
func WithTransparent() MaterialBuilderOption {
	return func(m *material) {
		m.pipelineKey = PipelineKeyBlended
	}
}

// WithPoints draws the material with the point-list pipeline.
func WithPoints() MaterialBuilderOption {
	return func(m *material) {
		m.pipelineKey = PipelineKeyPoints
	}
}

// WithEmissive sets an emitted color as a packed 0xRRGGBB value scaled by intensity.
//
// Parameters:
//   - hex: the packed emissive color
//   - intensity: the scale applied to the color
//
// Returns:
//   - MaterialBuilderOption: a function that applies the emissive color to a material
func WithEmissive(hex uint32, intensity float32) MaterialBuilderOption {
	return func(m *material) {
		c := common.HexColor(hex)
		m.emissive = [3]float32{c[0] * intensity, c[1] * intensity, c[2] * intensity}
	}
}

// WithRoughness sets the roughness factor.
//
// Parameters:
//   - roughness: 0 (mirror) to 1 (fully diffuse)
//
// Returns:
//   - MaterialBuilderOption: a function that applies the roughness to a material
func WithRoughness(roughness float32) MaterialBuilderOption {
	return func(m *material) {
		m.roughness = common.Clamp(roughness, 0, 1)
	}
}

// WithMetallic sets the metallic factor.
//
// Parameters:
//   - metallic: 0 (dielectric) to 1 (metal)
//
// Returns:
//   - MaterialBuilderOption: a function that applies the metallic factor to a material
func WithMetallic(metallic float32) MaterialBuilderOption {
	return func(m *material) {
		m.metallic = common.Clamp(metallic, 0, 1)
	}
}

// WithUnlit skips lighting so the surface renders at full base color.
func WithUnlit() MaterialBuilderOption {
	return func(m *material) {
		m.unlit = true
	}
}

// WithTexture binds an already-created texture.
func WithTexture(id common.TextureID) MaterialBuilderOption {
	return func(m *material) {
		m.texture = id
	}
}
