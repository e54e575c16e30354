package camera

import "github.com/go-gl/mathgl/mgl32"

// CameraController defines the union interface for camera control systems.
// Controllers own positional state (position, target). Camera reads from controller
// and computes view/projection matrices. Embeds orbitCameraController,
// planarCameraController and autoRotateCameraController so orbit input, planar input
// and ambient rotation all operate on a single controller instance.
//
// User-input methods (orbit steps, drag, zoom, pan) are ignored while the controller is
// disabled. Programmatic setters (SetPose, SetTarget, SetPosition, SetAzimuth, ...) always
// apply; this is what lets a TransitionController steer the camera while input is locked.
type CameraController interface {
	orbitCameraController
	planarCameraController
	autoRotateCameraController

	// Position returns the camera's world-space position.
	//
	// Returns:
	//   - mgl32.Vec3: world-space camera position
	Position() mgl32.Vec3

	// Target returns the look-at point.
	//
	// Returns:
	//   - mgl32.Vec3: world-space target position
	Target() mgl32.Vec3

	// SetTarget sets the look-at/pivot point and recomputes position from spherical coordinates.
	//
	// Parameters:
	//   - target: world-space coordinates
	SetTarget(target mgl32.Vec3)

	// SetPosition sets the camera's world-space position directly and re-derives
	// the spherical coordinates relative to the current target.
	//
	// Parameters:
	//   - position: world-space coordinates
	SetPosition(position mgl32.Vec3)

	// SetPose sets position and target together and re-derives the spherical coordinates.
	// Radius and elevation bounds are not applied.
	//
	// Parameters:
	//   - position: world-space camera position
	//   - target: world-space look-at point
	SetPose(position, target mgl32.Vec3)

	// Zoom adjusts the camera's distance by modifying orbit radius.
	// Positive delta zooms in (closer to target). Ignored while disabled.
	//
	// Parameters:
	//   - delta: zoom amount scaled by ZoomSpeed
	Zoom(delta float32)

	// Enabled returns whether user input is applied to the camera.
	//
	// Returns:
	//   - bool: true if input methods are active
	Enabled() bool

	// SetEnabled enables or disables user input.
	//
	// Parameters:
	//   - enabled: false locks the camera against user input
	SetEnabled(enabled bool)

	// Update advances time-based behaviour (ambient auto-rotation) by deltaTime seconds.
	// Should be called once per frame.
	//
	// Parameters:
	//   - deltaTime: elapsed time in seconds
	Update(deltaTime float32)
}

// orbitCameraController defines orbit-specific control methods.
// Provides third-person orbit controls using spherical coordinates (radius, azimuth, elevation)
// relative to the target/pivot point.
type orbitCameraController interface {
	// OrbitLeft rotates the camera left around the target by one orbit speed step.
	OrbitLeft()

	// OrbitRight rotates the camera right around the target by one orbit speed step.
	OrbitRight()

	// OrbitUp tilts the camera upward by one orbit speed step, clamped to max elevation.
	OrbitUp()

	// OrbitDown tilts the camera downward by one orbit speed step, clamped to min elevation.
	OrbitDown()

	// Drag orbits the camera from a pointer drag in pixels, scaled by MouseSensitivity.
	//
	// Parameters:
	//   - dx: horizontal drag distance
	//   - dy: vertical drag distance
	Drag(dx, dy float32)

	// Radius returns the current orbit radius (distance from target).
	//
	// Returns:
	//   - float32: current distance from target
	Radius() float32

	// SetRadius sets the orbit radius directly, clamped to min/max bounds.
	//
	// Parameters:
	//   - radius: new distance from target
	SetRadius(radius float32)

	// MinRadius returns the minimum allowed orbit radius.
	MinRadius() float32

	// MaxRadius returns the maximum allowed orbit radius.
	MaxRadius() float32

	// Azimuth returns the current horizontal angle around the Y axis.
	//
	// Returns:
	//   - float32: azimuth in radians
	Azimuth() float32

	// SetAzimuth sets the horizontal angle directly and recomputes position.
	//
	// Parameters:
	//   - azimuth: new horizontal angle in radians
	SetAzimuth(azimuth float32)

	// Elevation returns the current vertical angle from the horizontal plane.
	//
	// Returns:
	//   - float32: elevation in radians
	Elevation() float32

	// SetElevation sets the vertical angle directly, clamped to min/max bounds.
	//
	// Parameters:
	//   - elevation: new vertical angle in radians
	SetElevation(elevation float32)

	// MinElevation returns the minimum allowed elevation angle.
	MinElevation() float32

	// MaxElevation returns the maximum allowed elevation angle.
	MaxElevation() float32

	// OrbitSpeed returns the keyboard orbit speed in radians per step.
	OrbitSpeed() float32

	// MouseSensitivity returns the mouse drag sensitivity multiplier.
	MouseSensitivity() float32

	// ZoomSpeed returns the zoom speed multiplier.
	ZoomSpeed() float32
}

// planarCameraController defines planar translation control methods.
// Panning shifts both position and target by the same offset, preserving the orbit
// relationship. Panning is off unless enabled with WithPanEnabled.
type planarCameraController interface {
	// PanRight translates the camera along its local right axis.
	//
	// Parameters:
	//   - delta: pan amount scaled by PanSpeed
	PanRight(delta float32)

	// PanUp translates the camera along its local up axis.
	//
	// Parameters:
	//   - delta: pan amount scaled by PanSpeed
	PanUp(delta float32)

	// PanForward translates the camera along its local forward axis (dolly).
	//
	// Parameters:
	//   - delta: pan amount scaled by PanSpeed
	PanForward(delta float32)

	// PanSpeed returns the pan speed multiplier.
	PanSpeed() float32

	// PanEnabled reports whether pan input is accepted.
	PanEnabled() bool
}

// autoRotateCameraController defines the ambient orbit applied by Update.
// Speed uses orbit-controls units: 2.0 completes one orbit every 30 seconds.
type autoRotateCameraController interface {
	// AutoRotate reports whether ambient rotation is active.
	AutoRotate() bool

	// SetAutoRotate starts or stops ambient rotation.
	//
	// Parameters:
	//   - enabled: true to orbit on every Update
	SetAutoRotate(enabled bool)

	// AutoRotateSpeed returns the ambient rotation speed.
	AutoRotateSpeed() float32

	// SetAutoRotateSpeed sets the ambient rotation speed.
	//
	// Parameters:
	//   - speed: rotation speed (2.0 = one orbit per 30 seconds)
	SetAutoRotateSpeed(speed float32)
}
