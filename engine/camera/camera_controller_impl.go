package camera

import (
	"math"
	"sync"

	"github.com/Carmen-Shannon/oxy-universe/common"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	// DefaultMinDistance is the closest the user may zoom toward the target.
	DefaultMinDistance float32 = 8
	// DefaultMaxDistance is the farthest the user may zoom away from the target.
	DefaultMaxDistance float32 = 30
	// DefaultZoomSpeed scales scroll input.
	DefaultZoomSpeed float32 = 0.8
	// DefaultIdleAutoRotateSpeed is the ambient orbit speed while no transition runs.
	DefaultIdleAutoRotateSpeed float32 = 0.5
)

// cameraControllerImpl is the single implementation of CameraController.
// Orbit methods modify spherical coordinates and recompute position; planar methods
// translate both position and target along local camera axes.
type cameraControllerImpl struct {
	mu *sync.Mutex

	// Camera position (computed from target + spherical coords)
	position mgl32.Vec3
	target   mgl32.Vec3

	// Spherical coordinates (offset from target)
	radius    float32
	azimuth   float32 // Horizontal angle around Y axis
	elevation float32 // Vertical angle from horizontal plane

	// Orbit constraints
	minRadius    float32
	maxRadius    float32
	minElevation float32
	maxElevation float32

	// Input settings
	orbitSpeed       float32
	mouseSensitivity float32
	zoomSpeed        float32
	panSpeed         float32
	panEnabled       bool
	enabled          bool

	autoRotate      bool
	autoRotateSpeed float32

	// initialPosition, when set by WithPosition, seeds the spherical coordinates.
	initialPosition *mgl32.Vec3
}

// Compile-time interface compliance check
var _ CameraController = &cameraControllerImpl{}

// NewCameraController creates a new camera controller.
// The default pose sits 15 units in front of the origin on +Z, with input enabled,
// panning disabled and ambient rotation running at DefaultIdleAutoRotateSpeed.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - CameraController: the newly created controller
func NewCameraController(options ...CameraControllerOption) CameraController {
	cc := &cameraControllerImpl{
		mu: &sync.Mutex{},

		radius:    15.0,
		azimuth:   0.0,
		elevation: 0.0,

		minRadius:    DefaultMinDistance,
		maxRadius:    DefaultMaxDistance,
		minElevation: -float32(math.Pi/2 - 0.01),
		maxElevation: float32(math.Pi/2 - 0.01),

		orbitSpeed:       0.03,
		mouseSensitivity: 0.005,
		zoomSpeed:        DefaultZoomSpeed,
		panSpeed:         1.0,
		enabled:          true,

		autoRotate:      true,
		autoRotateSpeed: DefaultIdleAutoRotateSpeed,
	}

	for _, option := range options {
		option(cc)
	}

	if cc.initialPosition != nil {
		cc.position = *cc.initialPosition
		cc.initialPosition = nil
		cc.syncSpherical()
	} else {
		cc.updatePosition()
	}
	return cc
}

// --- internal helpers ---

// updatePosition recomputes the camera position from spherical coordinates.
// Caller must hold the mutex.
func (cc *cameraControllerImpl) updatePosition() {
	cosElev := float32(math.Cos(float64(cc.elevation)))
	sinElev := float32(math.Sin(float64(cc.elevation)))
	cosAzim := float32(math.Cos(float64(cc.azimuth)))
	sinAzim := float32(math.Sin(float64(cc.azimuth)))

	cc.position = mgl32.Vec3{
		cc.target[0] + cc.radius*cosElev*sinAzim,
		cc.target[1] + cc.radius*sinElev,
		cc.target[2] + cc.radius*cosElev*cosAzim,
	}
}

// syncSpherical derives radius, azimuth and elevation from position - target.
// When position and target coincide the previous angles are kept and radius becomes 0.
// Caller must hold the mutex.
func (cc *cameraControllerImpl) syncSpherical() {
	d := cc.position.Sub(cc.target)
	r := d.Len()
	cc.radius = r
	if r < 1e-8 {
		return
	}
	cc.elevation = float32(math.Asin(float64(common.Clamp(d[1]/r, -1, 1))))
	cc.azimuth = float32(math.Atan2(float64(d[0]), float64(d[2])))
}

// localAxes computes the camera's local coordinate axes consistent with the LookAt matrix.
// If position and target coincide, all returned vectors are zero.
// Caller must hold the mutex.
func (cc *cameraControllerImpl) localAxes() (right, up, forward mgl32.Vec3) {
	back := cc.position.Sub(cc.target)
	if back.Len() < 1e-8 {
		return
	}
	back = back.Normalize()

	// right = normalize(cross(worldUp, backward)) where worldUp = (0, 1, 0)
	right = mgl32.Vec3{back[2], 0, -back[0]}
	if right.Len() < 1e-8 {
		return mgl32.Vec3{}, mgl32.Vec3{}, mgl32.Vec3{}
	}
	right = right.Normalize()
	up = back.Cross(right)
	forward = back.Mul(-1)
	return
}

func (cc *cameraControllerImpl) translate(offset mgl32.Vec3) {
	cc.target = cc.target.Add(offset)
	cc.position = cc.position.Add(offset)
}

func (cc *cameraControllerImpl) canPan() bool {
	return cc.enabled && cc.panEnabled
}

// --- CameraController shared methods ---

func (cc *cameraControllerImpl) Position() mgl32.Vec3 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.position
}

func (cc *cameraControllerImpl) SetPosition(position mgl32.Vec3) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.position = position
	cc.syncSpherical()
}

func (cc *cameraControllerImpl) Target() mgl32.Vec3 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.target
}

func (cc *cameraControllerImpl) SetTarget(target mgl32.Vec3) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.target = target
	cc.updatePosition()
}

func (cc *cameraControllerImpl) SetPose(position, target mgl32.Vec3) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.position = position
	cc.target = target
	cc.syncSpherical()
}

func (cc *cameraControllerImpl) Zoom(delta float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	if !cc.enabled {
		return
	}
	cc.radius = common.Clamp(cc.radius-delta*cc.zoomSpeed, cc.minRadius, cc.maxRadius)
	cc.updatePosition()
}

func (cc *cameraControllerImpl) Enabled() bool {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.enabled
}

func (cc *cameraControllerImpl) SetEnabled(enabled bool) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.enabled = enabled
}

func (cc *cameraControllerImpl) Update(deltaTime float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	if !cc.autoRotate || cc.autoRotateSpeed == 0 || deltaTime <= 0 {
		return
	}
	cc.azimuth += AutoRotateRadiansPerSecond(cc.autoRotateSpeed) * deltaTime
	cc.updatePosition()
}

// AutoRotateRadiansPerSecond converts an orbit-controls auto-rotate speed into an angular
// velocity. A speed of 2.0 completes one orbit every 30 seconds.
//
// Parameters:
//   - speed: auto-rotate speed
//
// Returns:
//   - float32: angular velocity in radians per second
func AutoRotateRadiansPerSecond(speed float32) float32 {
	return 2 * math.Pi * speed / 60
}

// --- orbitCameraController implementation ---

func (cc *cameraControllerImpl) OrbitLeft() {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	if !cc.enabled {
		return
	}
	cc.azimuth -= cc.orbitSpeed
	cc.updatePosition()
}

func (cc *cameraControllerImpl) OrbitRight() {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	if !cc.enabled {
		return
	}
	cc.azimuth += cc.orbitSpeed
	cc.updatePosition()
}

func (cc *cameraControllerImpl) OrbitUp() {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	if !cc.enabled {
		return
	}
	cc.elevation = min(cc.elevation+cc.orbitSpeed, cc.maxElevation)
	cc.updatePosition()
}

func (cc *cameraControllerImpl) OrbitDown() {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	if !cc.enabled {
		return
	}
	cc.elevation = max(cc.elevation-cc.orbitSpeed, cc.minElevation)
	cc.updatePosition()
}

func (cc *cameraControllerImpl) Drag(dx, dy float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	if !cc.enabled {
		return
	}
	cc.azimuth += dx * cc.mouseSensitivity
	cc.elevation = common.Clamp(cc.elevation-dy*cc.mouseSensitivity, cc.minElevation, cc.maxElevation)
	cc.updatePosition()
}

func (cc *cameraControllerImpl) Radius() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.radius
}

func (cc *cameraControllerImpl) SetRadius(radius float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.radius = common.Clamp(radius, cc.minRadius, cc.maxRadius)
	cc.updatePosition()
}

func (cc *cameraControllerImpl) MinRadius() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.minRadius
}

func (cc *cameraControllerImpl) MaxRadius() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.maxRadius
}

func (cc *cameraControllerImpl) Azimuth() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.azimuth
}

func (cc *cameraControllerImpl) SetAzimuth(azimuth float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.azimuth = azimuth
	cc.updatePosition()
}

func (cc *cameraControllerImpl) Elevation() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.elevation
}

func (cc *cameraControllerImpl) SetElevation(elevation float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.elevation = common.Clamp(elevation, cc.minElevation, cc.maxElevation)
	cc.updatePosition()
}

func (cc *cameraControllerImpl) MinElevation() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.minElevation
}

func (cc *cameraControllerImpl) MaxElevation() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.maxElevation
}

func (cc *cameraControllerImpl) OrbitSpeed() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.orbitSpeed
}

func (cc *cameraControllerImpl) MouseSensitivity() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.mouseSensitivity
}

func (cc *cameraControllerImpl) ZoomSpeed() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.zoomSpeed
}

// --- planarCameraController implementation ---

func (cc *cameraControllerImpl) PanRight(delta float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	if !cc.canPan() {
		return
	}
	right, _, _ := cc.localAxes()
	cc.translate(right.Mul(delta * cc.panSpeed))
}

func (cc *cameraControllerImpl) PanUp(delta float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	if !cc.canPan() {
		return
	}
	_, up, _ := cc.localAxes()
	cc.translate(up.Mul(delta * cc.panSpeed))
}

func (cc *cameraControllerImpl) PanForward(delta float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	if !cc.canPan() {
		return
	}
	_, _, forward := cc.localAxes()
	cc.translate(forward.Mul(delta * cc.panSpeed))
}

func (cc *cameraControllerImpl) PanSpeed() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.panSpeed
}

func (cc *cameraControllerImpl) PanEnabled() bool {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.panEnabled
}

// --- autoRotateCameraController implementation ---

func (cc *cameraControllerImpl) AutoRotate() bool {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.autoRotate
}

func (cc *cameraControllerImpl) SetAutoRotate(enabled bool) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.autoRotate = enabled
}

func (cc *cameraControllerImpl) AutoRotateSpeed() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.autoRotateSpeed
}

func (cc *cameraControllerImpl) SetAutoRotateSpeed(speed float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.autoRotateSpeed = speed
}
