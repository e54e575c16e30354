package camera

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// TransitionOption is a functional option for configuring a TransitionController.
type TransitionOption func(*transitionControllerImpl)

// WithSteerableCamera attaches the camera the controller drives.
//
// Parameters:
//   - cam: the camera to steer
//
// Returns:
//   - TransitionOption: functional option to set the camera
func WithSteerableCamera(cam SteerableCamera) TransitionOption {
	return func(t *transitionControllerImpl) {
		t.camera = cam
	}
}

// WithFrameSource attaches the per-frame callback source.
//
// Parameters:
//   - frames: the frame source
//
// Returns:
//   - TransitionOption: functional option to set the frame source
func WithFrameSource(frames FrameSource) TransitionOption {
	return func(t *transitionControllerImpl) {
		t.frames = frames
	}
}

// WithSpinRotations sets how many full orbits the constant-speed spin makes.
//
// Parameters:
//   - rotations: number of full orbits
//
// Returns:
//   - TransitionOption: functional option to set the spin rotation count
func WithSpinRotations(rotations float32) TransitionOption {
	return func(t *transitionControllerImpl) {
		t.spinRotations = rotations
	}
}

// WithSpinDuration sets the length of the constant-speed spin.
func WithSpinDuration(d time.Duration) TransitionOption {
	return func(t *transitionControllerImpl) {
		t.spinDuration = d
	}
}

// WithDecelDuration sets the length of the deceleration after the spin.
func WithDecelDuration(d time.Duration) TransitionOption {
	return func(t *transitionControllerImpl) {
		t.decelDuration = d
	}
}

// WithTravelDuration sets the length of the flight to the standoff position.
func WithTravelDuration(d time.Duration) TransitionOption {
	return func(t *transitionControllerImpl) {
		t.travelDuration = d
	}
}

// WithSettleDuration sets the hold between arrival and re-enabling controls.
func WithSettleDuration(d time.Duration) TransitionOption {
	return func(t *transitionControllerImpl) {
		t.settleDuration = d
	}
}

// WithStandoff sets the offset from the target at which the camera comes to rest.
//
// Parameters:
//   - offset: world-space offset added to the target
//
// Returns:
//   - TransitionOption: functional option to set the standoff
func WithStandoff(offset mgl32.Vec3) TransitionOption {
	return func(t *transitionControllerImpl) {
		t.standoff = offset
	}
}

// WithIdleAutoRotateSpeed sets the ambient rotation speed restored when an animation ends.
//
// Parameters:
//   - speed: auto-rotate speed (2.0 = one orbit per 30 seconds)
//
// Returns:
//   - TransitionOption: functional option to set the idle rotation speed
func WithIdleAutoRotateSpeed(speed float32) TransitionOption {
	return func(t *transitionControllerImpl) {
		t.idleRotateSpeed = speed
	}
}

// WithLogger sets the logger used for phase changes. Defaults to a no-op logger.
//
// Parameters:
//   - logger: the zap logger
//
// Returns:
//   - TransitionOption: functional option to set the logger
func WithLogger(logger *zap.Logger) TransitionOption {
	return func(t *transitionControllerImpl) {
		if logger != nil {
			t.logger = logger
		}
	}
}
