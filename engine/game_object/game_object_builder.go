package game_object

import "github.com/go-gl/mathgl/mgl32"

// GameObjectBuilderOption is a functional option for configuring a GameObject during construction.
type GameObjectBuilderOption func(*gameObject)

// WithID sets the ID of the GameObject.
//
// Parameters:
//   - id: unique identifier for the GameObject
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the ID
func WithID(id uint64) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.id = id
	}
}

// WithName sets the display name of the body.
func WithName(name string) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.name = name
	}
}

// WithColor sets the display color of the body as a hex string.
func WithColor(color string) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.color = color
	}
}

// WithEnabled sets whether the GameObject is enabled.
//
// Parameters:
//   - enabled: true to update and pick the object, false to skip it
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the Enabled state
func WithEnabled(enabled bool) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.enabled.Store(enabled)
	}
}

// WithAnchor sets the fixed point the body orbits.
//
// Parameters:
//   - anchor: world-space anchor
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the anchor
func WithAnchor(anchor mgl32.Vec3) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.anchor = anchor
	}
}

// WithSize sets the unscaled radius of the body.
//
// Parameters:
//   - size: radius in world units
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the size
func WithSize(size float32) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.size = size
	}
}

// WithOrbit sets the orbit around the anchor.
//
// Parameters:
//   - speed: angular speed in radians per second
//   - radius: distance from the anchor on the XZ plane
//   - phase: starting angle in radians
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the orbit
func WithOrbit(speed, radius, phase float32) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.orbitSpeed = speed
		obj.orbitRadius = radius
		obj.orbitAngle = phase
	}
}

// WithScale sets the starting uniform scale.
func WithScale(scale float32) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.scale = scale
	}
}
