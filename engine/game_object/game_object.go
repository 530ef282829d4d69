package game_object

import (
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-tour/common"
	"github.com/Carmen-Shannon/oxy-tour/engine/renderer/material"
)

type gameObject struct {
	id       uint64
	enabled  atomic.Bool
	mesh     common.MeshID
	material material.Material
	radius   float32

	position      common.Vec3
	rotation      common.Vec3
	rotationSpeed common.Vec3
	scale         common.Vec3
}

// GameObject defines the interface for a drawable scene entity: a mesh handle, a material and
// a transform. Objects are owned by whoever created them and only referenced by the scene.
type GameObject interface {
	// ID returns the object's unique identifier. Zero until assigned by a scene.
	//
	// Returns:
	//   - uint64: the object ID
	ID() uint64

	// SetID sets the object's unique identifier.
	//
	// Parameters:
	//   - id: the ID to assign
	SetID(id uint64)

	// Enabled returns whether this object is drawn.
	//
	// Returns:
	//   - bool: true if enabled
	Enabled() bool

	// SetEnabled sets whether the object is drawn.
	//
	// Parameters:
	//   - enabled: true to enable
	SetEnabled(enabled bool)

	// Mesh returns the renderer mesh handle.
	//
	// Returns:
	//   - common.MeshID: the mesh, zero if unset
	Mesh() common.MeshID

	// Material returns the material, or nil if unset.
	//
	// Returns:
	//   - material.Material: the material
	Material() material.Material

	// BoundingRadius returns the mesh radius scaled by the largest scale component.
	//
	// Returns:
	//   - float32: the world-space bounding sphere radius
	BoundingRadius() float32

	// Position returns the world-space position.
	//
	// Returns:
	//   - common.Vec3: the position
	Position() common.Vec3

	// SetPosition sets the world-space position.
	//
	// Parameters:
	//   - p: the new position
	SetPosition(p common.Vec3)

	// Rotation returns the Euler rotation in radians.
	//
	// Returns:
	//   - common.Vec3: rotation around X, Y and Z
	Rotation() common.Vec3

	// SetRotation sets the Euler rotation in radians.
	//
	// Parameters:
	//   - r: rotation around X, Y and Z
	SetRotation(r common.Vec3)

	// Rotate adds delta to the current rotation.
	//
	// Parameters:
	//   - delta: radians to add around X, Y and Z
	Rotate(delta common.Vec3)

	// RotationSpeed returns the rotation added by each call to Spin.
	//
	// Returns:
	//   - common.Vec3: radians per spin step
	RotationSpeed() common.Vec3

	// SetRotationSpeed sets the rotation added by each call to Spin.
	//
	// Parameters:
	//   - s: radians per spin step
	SetRotationSpeed(s common.Vec3)

	// Spin advances the rotation by one step of RotationSpeed.
	Spin()

	// Scale returns the scale factors.
	//
	// Returns:
	//   - common.Vec3: scale along X, Y and Z
	Scale() common.Vec3

	// SetScale sets the scale factors.
	//
	// Parameters:
	//   - s: scale along X, Y and Z
	SetScale(s common.Vec3)

	// ModelMatrix builds the column-major model matrix from the transform.
	//
	// Returns:
	//   - [16]float32: the model matrix
	ModelMatrix() [16]float32
}

var _ GameObject = &gameObject{}

// NewGameObject creates a new GameObject. Defaults: enabled, unit scale, at the origin.
//
// Parameters:
//   - options: functional options to configure the object
//
// Returns:
//   - GameObject: the newly created object
func NewGameObject(options ...GameObjectBuilderOption) GameObject {
	obj := &gameObject{
		scale: common.Vec3{X: 1, Y: 1, Z: 1},
	}
	obj.enabled.Store(true)
	for _, option := range options {
		option(obj)
	}
	return obj
}

func (g *gameObject) ID() uint64 {
	return g.id
}

func (g *gameObject) SetID(id uint64) {
	g.id = id
}

func (g *gameObject) Enabled() bool {
	return g.enabled.Load()
}

func (g *gameObject) SetEnabled(enabled bool) {
	g.enabled.Store(enabled)
}

func (g *gameObject) Mesh() common.MeshID {
	return g.mesh
}

func (g *gameObject) Material() material.Material {
	return g.material
}

func (g *gameObject) BoundingRadius() float32 {
	return g.radius * max(g.scale.X, g.scale.Y, g.scale.Z)
}

func (g *gameObject) Position() common.Vec3 {
	return g.position
}

func (g *gameObject) SetPosition(p common.Vec3) {
	g.position = p
}

func (g *gameObject) Rotation() common.Vec3 {
	return g.rotation
}

func (g *gameObject) SetRotation(r common.Vec3) {
	g.rotation = r
}

func (g *gameObject) Rotate(delta common.Vec3) {
	g.rotation = g.rotation.Add(delta)
}

func (g *gameObject) RotationSpeed() common.Vec3 {
	return g.rotationSpeed
}

func (g *gameObject) SetRotationSpeed(s common.Vec3) {
	g.rotationSpeed = s
}

func (g *gameObject) Spin() {
	g.rotation = g.rotation.Add(g.rotationSpeed)
}

func (g *gameObject) Scale() common.Vec3 {
	return g.scale
}

func (g *gameObject) SetScale(s common.Vec3) {
	g.scale = s
}

func (g *gameObject) ModelMatrix() [16]float32 {
	var m [16]float32
	common.BuildModelMatrix(m[:], g.position, g.rotation, g.scale)
	return m
}
