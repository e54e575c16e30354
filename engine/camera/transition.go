package camera

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-universe/common"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// TransitionState is the phase a TransitionController is in.
type TransitionState int

const (
	// Idle means no animation is in flight and the camera auto-rotates.
	Idle TransitionState = iota
	// Spinning means the camera is orbiting rapidly, then decelerating.
	Spinning
	// Traveling means the camera is flying toward the target standoff.
	Traveling
	// Settling means the camera has arrived and is holding before control returns.
	Settling
)

func (s TransitionState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Spinning:
		return "spinning"
	case Traveling:
		return "traveling"
	case Settling:
		return "settling"
	default:
		return "unknown"
	}
}

const (
	// DefaultSpinRotations is the number of full orbits made during the constant-speed spin.
	DefaultSpinRotations float32 = 3
	// DefaultSpinDuration is the length of the constant-speed spin.
	DefaultSpinDuration = 1800 * time.Millisecond
	// DefaultDecelDuration is the length of the deceleration that follows the spin.
	DefaultDecelDuration = 800 * time.Millisecond
	// DefaultTravelDuration is the length of the flight to the standoff position.
	DefaultTravelDuration = 900 * time.Millisecond
	// DefaultSettleDuration is the pause between arrival and re-enabling controls.
	DefaultSettleDuration = 350 * time.Millisecond
)

// DefaultStandoff is the offset from the target at which the camera comes to rest.
var DefaultStandoff = mgl32.Vec3{0, 0, 8}

// SteerableCamera is the subset of CameraController a TransitionController drives.
// CameraController satisfies it.
type SteerableCamera interface {
	Position() mgl32.Vec3
	Target() mgl32.Vec3
	SetPose(position, target mgl32.Vec3)
	Azimuth() float32
	SetAzimuth(azimuth float32)
	SetEnabled(enabled bool)
	SetAutoRotate(enabled bool)
	SetAutoRotateSpeed(speed float32)
}

// FrameSource delivers a callback once per rendered frame with the elapsed time in seconds.
// *frame.Dispatcher satisfies it.
type FrameSource interface {
	// Register schedules cb on every subsequent frame until the returned cancel func is called.
	Register(cb func(deltaTime float32)) (cancel func())
}

// TransitionController animates a SteerableCamera toward a focus target in response to
// discrete requests. At most one animation is in flight; a new request preempts the
// current one. All motion happens inside frame callbacks registered on the FrameSource.
type TransitionController interface {
	// AnimateToTarget starts an animation that ends with the camera at target + standoff
	// looking at target. With spinFirst the camera first orbits rapidly and decelerates.
	// User control and ambient rotation are disabled until the animation ends.
	// Any in-flight animation is preempted.
	//
	// Parameters:
	//   - target: world-space focus point
	//   - spinFirst: true to open with the spin and deceleration phases
	//
	// Returns:
	//   - Animation: handle that resolves when the animation ends
	//   - error: ErrInvalidTarget or ErrNoActiveSurface; state is unchanged on error
	AnimateToTarget(target mgl32.Vec3, spinFirst bool) (Animation, error)

	// CancelAnimation stops any in-flight animation immediately, leaving the camera where
	// it is, and returns control and ambient rotation to the user. No-op when Idle.
	CancelAnimation()

	// State returns the current phase.
	//
	// Returns:
	//   - TransitionState: the current phase
	State() TransitionState

	// Active reports whether an animation is in flight.
	//
	// Returns:
	//   - bool: true unless Idle
	Active() bool

	// Current returns the in-flight animation, or nil when Idle.
	//
	// Returns:
	//   - Animation: the in-flight animation or nil
	Current() Animation

	// TotalDuration returns how long an uninterrupted animation takes.
	//
	// Parameters:
	//   - spinFirst: whether the spin and deceleration phases are included
	//
	// Returns:
	//   - time.Duration: the sum of the phase durations
	TotalDuration(spinFirst bool) time.Duration

	// SetCamera attaches the camera to steer. Passing nil cancels any in-flight animation.
	//
	// Parameters:
	//   - cam: the camera to steer, or nil to detach
	SetCamera(cam SteerableCamera)

	// SetFrameSource attaches the frame source. Passing nil cancels any in-flight animation.
	//
	// Parameters:
	//   - frames: the frame source, or nil to detach
	SetFrameSource(frames FrameSource)
}

type transitionControllerImpl struct {
	mu     *sync.Mutex
	logger *zap.Logger

	camera SteerableCamera
	frames FrameSource

	spinRotations   float32
	spinDuration    time.Duration
	decelDuration   time.Duration
	travelDuration  time.Duration
	settleDuration  time.Duration
	standoff        mgl32.Vec3
	idleRotateSpeed float32

	state      TransitionState
	generation uint64
	current    *animationImpl
	unregister func()

	// per-animation progress
	target       mgl32.Vec3
	travelStart  mgl32.Vec3
	travelEnd    mgl32.Vec3
	phaseElapsed float64
}

var _ TransitionController = &transitionControllerImpl{}

// NewTransitionController creates an idle TransitionController with the default timings.
// A camera and frame source must be attached (by option or setter) before AnimateToTarget succeeds.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - TransitionController: the newly created controller
func NewTransitionController(options ...TransitionOption) TransitionController {
	t := &transitionControllerImpl{
		mu:              &sync.Mutex{},
		logger:          zap.NewNop(),
		spinRotations:   DefaultSpinRotations,
		spinDuration:    DefaultSpinDuration,
		decelDuration:   DefaultDecelDuration,
		travelDuration:  DefaultTravelDuration,
		settleDuration:  DefaultSettleDuration,
		standoff:        DefaultStandoff,
		idleRotateSpeed: DefaultIdleAutoRotateSpeed,
		state:           Idle,
	}
	for _, option := range options {
		option(t)
	}
	return t
}

func (t *transitionControllerImpl) AnimateToTarget(target mgl32.Vec3, spinFirst bool) (Animation, error) {
	if !common.IsFiniteVec3(target) {
		return nil, fmt.Errorf("animate to %v: %w", target, ErrInvalidTarget)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.camera == nil || t.frames == nil {
		return nil, fmt.Errorf("animate to %v: %w", target, ErrNoActiveSurface)
	}

	if t.state != Idle {
		t.logger.Debug("preempting camera transition", zap.Uint64("generation", t.generation))
		t.stop(OutcomePreempted)
	}

	t.generation++
	gen := t.generation
	t.current = newAnimation(gen, target, spinFirst)
	t.target = target
	t.travelEnd = target.Add(t.standoff)
	t.phaseElapsed = 0

	t.camera.SetEnabled(false)
	t.camera.SetAutoRotate(false)

	if spinFirst {
		t.state = Spinning
	} else {
		t.enterTravel()
	}

	t.unregister = t.frames.Register(func(deltaTime float32) {
		t.onFrame(gen, deltaTime)
	})

	t.logger.Debug("camera transition started",
		zap.Uint64("generation", gen),
		zap.Bool("spin_first", spinFirst),
		zap.Float32s("target", target[:]),
	)
	return t.current, nil
}

func (t *transitionControllerImpl) CancelAnimation() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state == Idle {
		return
	}
	t.logger.Debug("camera transition cancelled", zap.Uint64("generation", t.generation), zap.Stringer("state", t.state))
	t.stop(OutcomeCancelled)
}

func (t *transitionControllerImpl) State() TransitionState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

func (t *transitionControllerImpl) Active() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state != Idle
}

func (t *transitionControllerImpl) Current() Animation {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.current == nil {
		return nil
	}
	return t.current
}

func (t *transitionControllerImpl) TotalDuration(spinFirst bool) time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	total := t.travelDuration + t.settleDuration
	if spinFirst {
		total += t.spinDuration + t.decelDuration
	}
	return total
}

func (t *transitionControllerImpl) SetCamera(cam SteerableCamera) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state != Idle && cam != t.camera {
		t.stop(OutcomeCancelled)
	}
	t.camera = cam
}

func (t *transitionControllerImpl) SetFrameSource(frames FrameSource) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state != Idle && frames != t.frames {
		t.stop(OutcomeCancelled)
	}
	t.frames = frames
}

// stop ends the in-flight animation with the given outcome and hands the camera back.
// Caller must hold the mutex and ensure state != Idle.
func (t *transitionControllerImpl) stop(outcome Outcome) {
	t.generation++
	if t.unregister != nil {
		t.unregister()
		t.unregister = nil
	}
	t.state = Idle
	t.phaseElapsed = 0

	if t.camera != nil {
		t.camera.SetEnabled(true)
		t.camera.SetAutoRotate(true)
		t.camera.SetAutoRotateSpeed(t.idleRotateSpeed)
	}

	if t.current != nil {
		t.current.resolve(outcome)
		t.current = nil
	}
}

// onFrame advances the animation by deltaTime seconds. Time left over when a phase ends
// carries into the next phase within the same frame.
func (t *transitionControllerImpl) onFrame(gen uint64, deltaTime float32) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if gen != t.generation || t.state == Idle || deltaTime < 0 {
		return
	}

	remaining := float64(deltaTime)
	for {
		var finished bool
		switch t.state {
		case Spinning:
			remaining, finished = t.stepSpin(remaining)
			if finished {
				t.enterTravel()
			}
		case Traveling:
			remaining, finished = t.stepTravel(remaining)
			if finished {
				t.state = Settling
				t.phaseElapsed = 0
				t.logger.Debug("camera transition settling", zap.Uint64("generation", gen))
			}
		case Settling:
			remaining, finished = t.stepSettle(remaining)
			if finished {
				t.logger.Debug("camera transition completed", zap.Uint64("generation", gen))
				t.stop(OutcomeCompleted)
				return
			}
		default:
			return
		}
		if !finished {
			return
		}
	}
}

// enterTravel captures the current camera position as the start of the flight.
// Caller must hold the mutex.
func (t *transitionControllerImpl) enterTravel() {
	t.state = Traveling
	t.phaseElapsed = 0
	t.travelStart = t.camera.Position()
}

// spinAngle returns the cumulative azimuth swept after elapsed seconds of the spin phase.
// The spin runs at constant angular velocity, then decays along 1 - easeOutCubic.
func (t *transitionControllerImpl) spinAngle(elapsed float64) float64 {
	spin := t.spinDuration.Seconds()
	decel := t.decelDuration.Seconds()
	if spin <= 0 {
		return 0
	}
	omega := float64(t.spinRotations) * 2 * math.Pi / spin

	if elapsed <= spin {
		return omega * elapsed
	}
	angle := omega * spin
	if decel > 0 {
		p := float32((elapsed - spin) / decel)
		angle += omega * decel * float64(common.EaseOutCubicIntegral(p))
	}
	return angle
}

// stepSpin advances the spin and deceleration phases.
// Caller must hold the mutex.
func (t *transitionControllerImpl) stepSpin(dt float64) (float64, bool) {
	total := t.spinDuration.Seconds() + t.decelDuration.Seconds()
	next := t.phaseElapsed + dt
	leftover := 0.0
	if next >= total {
		leftover = next - total
		next = total
	}

	delta := t.spinAngle(next) - t.spinAngle(t.phaseElapsed)
	if delta != 0 {
		t.camera.SetAzimuth(t.camera.Azimuth() + float32(delta))
	}
	t.phaseElapsed = next
	return leftover, next >= total
}

// stepTravel advances the flight from travelStart to travelEnd.
// Caller must hold the mutex.
func (t *transitionControllerImpl) stepTravel(dt float64) (float64, bool) {
	total := t.travelDuration.Seconds()
	next := t.phaseElapsed + dt
	leftover := 0.0
	if next >= total {
		leftover = next - total
		next = total
	}
	t.phaseElapsed = next

	if next >= total {
		t.camera.SetPose(t.travelEnd, t.target)
		return leftover, true
	}
	eased := common.EaseOutCubic(float32(next / total))
	t.camera.SetPose(common.LerpVec3(t.travelStart, t.travelEnd, eased), t.target)
	return 0, false
}

// stepSettle holds the final pose until the settle duration has elapsed.
// Caller must hold the mutex.
func (t *transitionControllerImpl) stepSettle(dt float64) (float64, bool) {
	total := t.settleDuration.Seconds()
	t.phaseElapsed += dt
	if t.phaseElapsed >= total {
		return t.phaseElapsed - total, true
	}
	return 0, false
}
