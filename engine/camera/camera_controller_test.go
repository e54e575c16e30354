package camera

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestCameraControllerDefaults(t *testing.T) {
	cc := NewCameraController()

	assertVec3(t, mgl32.Vec3{0, 0, 15}, cc.Position())
	assertVec3(t, mgl32.Vec3{}, cc.Target())
	assert.Equal(t, DefaultMinDistance, cc.MinRadius())
	assert.Equal(t, DefaultMaxDistance, cc.MaxRadius())
	assert.Equal(t, DefaultZoomSpeed, cc.ZoomSpeed())
	assert.True(t, cc.Enabled())
	assert.True(t, cc.AutoRotate())
	assert.Equal(t, DefaultIdleAutoRotateSpeed, cc.AutoRotateSpeed())
	assert.False(t, cc.PanEnabled())
}

func TestCameraControllerAutoRotate(t *testing.T) {
	cc := NewCameraController(WithAutoRotate(true, 2))

	// Speed 2 completes an orbit in 30 seconds.
	cc.Update(7.5)
	assert.InDelta(t, math.Pi/2, float64(cc.Azimuth()), 1e-5)
	assertVec3(t, mgl32.Vec3{15, 0, 0}, cc.Position())

	cc.SetAutoRotate(false)
	cc.Update(10)
	assert.InDelta(t, math.Pi/2, float64(cc.Azimuth()), 1e-5)
}

func TestCameraControllerZoomClamps(t *testing.T) {
	cc := NewCameraController()

	cc.Zoom(100)
	assert.Equal(t, DefaultMinDistance, cc.Radius())

	cc.Zoom(-100)
	assert.Equal(t, DefaultMaxDistance, cc.Radius())
}

func TestCameraControllerDisabledIgnoresInput(t *testing.T) {
	cc := NewCameraController(WithPanEnabled(true))
	cc.SetEnabled(false)
	before := cc.Position()

	cc.Zoom(3)
	cc.OrbitLeft()
	cc.OrbitUp()
	cc.Drag(25, 25)
	cc.PanRight(2)
	assertVec3(t, before, cc.Position())

	// Programmatic setters still apply.
	cc.SetAzimuth(math.Pi)
	assertVec3(t, mgl32.Vec3{0, 0, -15}, cc.Position())
}

func TestCameraControllerPanRequiresOptIn(t *testing.T) {
	cc := NewCameraController()
	cc.PanRight(5)
	assertVec3(t, mgl32.Vec3{}, cc.Target())

	cc = NewCameraController(WithPanEnabled(true))
	cc.PanRight(5)
	assertVec3(t, mgl32.Vec3{5, 0, 0}, cc.Target())
	assertVec3(t, mgl32.Vec3{5, 0, 15}, cc.Position())
}

func TestCameraControllerSetPoseDerivesSpherical(t *testing.T) {
	cc := NewCameraController()

	// Poses set programmatically are not clamped to the zoom bounds.
	cc.SetPose(mgl32.Vec3{10, 5, 5}, mgl32.Vec3{10, 5, -3})
	assert.InDelta(t, 8, float64(cc.Radius()), 1e-5)
	assert.InDelta(t, 0, float64(cc.Azimuth()), 1e-5)
	assert.InDelta(t, 0, float64(cc.Elevation()), 1e-5)

	cc.SetPose(mgl32.Vec3{0, 0, 2}, mgl32.Vec3{})
	assert.InDelta(t, 2, float64(cc.Radius()), 1e-5)

	cc.SetPose(mgl32.Vec3{3, 4, 0}, mgl32.Vec3{})
	assert.InDelta(t, math.Pi/2, float64(cc.Azimuth()), 1e-5)
	assert.InDelta(t, math.Asin(0.8), float64(cc.Elevation()), 1e-5)

	// Orbiting after SetPose continues from the derived coordinates.
	cc.SetAzimuth(cc.Azimuth())
	assertVec3(t, mgl32.Vec3{3, 4, 0}, cc.Position())
}

func TestCameraControllerWithPosition(t *testing.T) {
	cc := NewCameraController(
		WithTarget(mgl32.Vec3{1, 0, 0}),
		WithPosition(mgl32.Vec3{1, 0, 11}),
	)
	assert.InDelta(t, 11, float64(cc.Radius()), 1e-5)
	assertVec3(t, mgl32.Vec3{1, 0, 11}, cc.Position())
}
