package material

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-tour/common"
)

// Pipeline keys understood by the renderer.
const (
	PipelineKeyOpaque  = "opaque"
	PipelineKeyBlended = "blended"
	PipelineKeyPoints  = "points"
)

// material is the implementation of the Material interface.
type material struct {
	mu *sync.Mutex

	name        string
	baseColor   [3]float32
	opacity     float32
	emissive    [3]float32
	roughness   float32
	metallic    float32
	unlit       bool
	texture     common.TextureID
	pipelineKey string
}

// Material defines the surface properties of a drawable: base color, opacity, optional texture,
// emissive tint and whether it ignores lighting.
//
// Opacity and texture are mutable after construction: textures arrive asynchronously and
// transient effects fade out over their lifetime.
type Material interface {
	// Name retrieves the material identifier.
	//
	// Returns:
	//   - string: the material name
	Name() string

	// BaseColor retrieves the RGB base color. Multiplied with the texture when one is bound.
	//
	// Returns:
	//   - [3]float32: the base color
	BaseColor() [3]float32

	// Opacity retrieves the alpha multiplier in [0, 1].
	//
	// Returns:
	//   - float32: the opacity
	Opacity() float32

	// SetOpacity sets the alpha multiplier, clamped to [0, 1].
	//
	// Parameters:
	//   - opacity: the new opacity
	SetOpacity(opacity float32)

	// Emissive retrieves the emitted RGB color, already scaled by intensity.
	//
	// Returns:
	//   - [3]float32: the emissive color
	Emissive() [3]float32

	// Roughness retrieves the roughness factor (0 = mirror, 1 = fully diffuse).
	//
	// Returns:
	//   - float32: the roughness
	Roughness() float32

	// Metallic retrieves the metallic factor.
	//
	// Returns:
	//   - float32: the metallic factor
	Metallic() float32

	// Unlit reports whether lighting is skipped and the base color is output directly.
	//
	// Returns:
	//   - bool: true for unlit materials
	Unlit() bool

	// Texture retrieves the bound texture, or zero when untextured.
	//
	// Returns:
	//   - common.TextureID: the texture handle
	Texture() common.TextureID

	// SetTexture binds a texture. Pass zero to fall back to the untextured base color.
	//
	// Parameters:
	//   - id: the texture handle
	SetTexture(id common.TextureID)

	// PipelineKey retrieves the key of the render pipeline this material draws with.
	//
	// Returns:
	//   - string: the pipeline key
	PipelineKey() string
}

var _ Material = &material{}

// NewMaterial creates a new Material. Defaults: white, opaque, lit, roughness 1, drawn with the
// opaque pipeline.
//
// Parameters:
//   - options: functional options to configure the material
//
// Returns:
//   - Material: the configured material
func NewMaterial(options ...MaterialBuilderOption) Material {
	m := &material{
		mu:          &sync.Mutex{},
		baseColor:   [3]float32{1, 1, 1},
		opacity:     1,
		roughness:   1,
		pipelineKey: PipelineKeyOpaque,
	}
	for _, opt := range options {
		opt(m)
	}
	return m
}

func (m *material) Name() string {
	return m.name
}

func (m *material) BaseColor() [3]float32 {
	return m.baseColor
}

func (m *material) Opacity() float32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.opacity
}

func (m *material) SetOpacity(opacity float32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.opacity = common.Clamp(opacity, 0, 1)
}

func (m *material) Emissive() [3]float32 {
	return m.emissive
}

func (m *material) Roughness() float32 {
	return m.roughness
}

func (m *material) Metallic() float32 {
	return m.metallic
}

func (m *material) Unlit() bool {
	return m.unlit
}

func (m *material) Texture() common.TextureID {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.texture
}

func (m *material) SetTexture(id common.TextureID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.texture = id
}

func (m *material) PipelineKey() string {
	return m.pipelineKey
}
