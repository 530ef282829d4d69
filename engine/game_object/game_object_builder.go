package game_object

import (
	"github.com/Carmen-Shannon/oxy-tour/common"
	"github.com/Carmen-Shannon/oxy-tour/engine/renderer/material"
)

// GameObjectBuilderOption is a functional option for configuring a GameObject during construction.
type GameObjectBuilderOption func(*gameObject)

// WithEnabled sets whether the GameObject is drawn.
//
// Parameters:
//   - enabled: true to render the object, false to skip it
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the Enabled state
func WithEnabled(enabled bool) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.enabled.Store(enabled)
	}
}

// WithMesh sets the renderer mesh and its local bounding radius.
//
// Parameters:
//   - id: the mesh handle returned by the renderer
//   - radius: the mesh's bounding radius before scaling
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the mesh
func WithMesh(id common.MeshID, radius float32) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.mesh = id
		obj.radius = radius
	}
}

// WithMaterial sets the material.
//
// Parameters:
//   - m: the material
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the material
func WithMaterial(m material.Material) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.material = m
	}
}

// WithPosition sets the initial world-space position.
//
// Parameters:
//   - p: the position
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the position
func WithPosition(p common.Vec3) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.position = p
	}
}

// WithRotation sets the initial Euler rotation in radians.
//
// Parameters:
//   - r: the rotation
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the rotation
func WithRotation(r common.Vec3) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.rotation = r
	}
}

// WithRotationSpeed sets the rotation added per Spin call.
//
// Parameters:
//   - s: radians per spin step
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the rotation speed
func WithRotationSpeed(s common.Vec3) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.rotationSpeed = s
	}
}

// WithUniformScale scales the object equally along every axis.
//
// Parameters:
//   - s: the scale factor
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the scale
func WithUniformScale(s float32) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.scale = common.Vec3{X: s, Y: s, Z: s}
	}
}
