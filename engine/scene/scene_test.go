package scene

import (
	"errors"
	"testing"

	"github.com/Carmen-Shannon/oxy-universe/engine/camera"
	"github.com/Carmen-Shannon/oxy-universe/engine/game_object"
	"github.com/Carmen-Shannon/oxy-universe/engine/renderer"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRenderer struct {
	renderer.Renderer
	calls int
	err   error
	last  renderer.Frame
}

func (f *fakeRenderer) RenderFrame(frame renderer.Frame) error {
	f.calls++
	f.last = frame
	return f.err
}

// newTestScene returns an active scene whose camera sits at (0,0,15) looking at the origin
// with ambient rotation off.
func newTestScene(objs ...game_object.GameObject) Scene {
	ctrl := camera.NewCameraController(camera.WithAutoRotate(false, 0))
	cam := camera.NewCamera(camera.WithController(ctrl))
	return NewScene("test", cam, WithActive(true), WithUpdateWorkers(2), WithObjects(objs...))
}

func planetAt(name string, anchor mgl32.Vec3) game_object.GameObject {
	return game_object.NewGameObject(
		game_object.WithName(name),
		game_object.WithAnchor(anchor),
		game_object.WithSize(1),
	)
}

func TestNewSceneRequiresCamera(t *testing.T) {
	assert.Panics(t, func() { NewScene("broken", nil) })
}

func TestAddAssignsSequentialIDs(t *testing.T) {
	s := newTestScene()
	a := s.Add(planetAt("a", mgl32.Vec3{}))
	b := s.Add(planetAt("b", mgl32.Vec3{}))

	assert.Equal(t, uint64(1), a)
	assert.Equal(t, uint64(2), b)
	assert.Equal(t, 2, s.Count())
	assert.Equal(t, "b", s.Get(b).Name())

	s.Remove(a)
	assert.Nil(t, s.Get(a))
	assert.Equal(t, 1, s.Count())

	s.Clear()
	assert.Zero(t, s.Count())
}

func TestAddKeepsExplicitIDs(t *testing.T) {
	s := newTestScene()
	obj := game_object.NewGameObject(game_object.WithID(10))
	assert.Equal(t, uint64(10), s.Add(obj))
	assert.Equal(t, uint64(11), s.Add(planetAt("next", mgl32.Vec3{})))
}

func TestObjectsOrderedByID(t *testing.T) {
	s := newTestScene(planetAt("a", mgl32.Vec3{}), planetAt("b", mgl32.Vec3{}), planetAt("c", mgl32.Vec3{}))
	objs := s.Objects()
	require.Len(t, objs, 3)
	for i, obj := range objs {
		assert.Equal(t, uint64(i+1), obj.ID())
	}
}

func TestPrepareFrameAdvancesPlanets(t *testing.T) {
	orbiting := game_object.NewGameObject(game_object.WithOrbit(1, 4, 0))
	s := newTestScene(orbiting)

	s.PrepareFrame(0.5)

	assert.InDelta(t, 0.5, s.Elapsed(), 1e-6)
	assert.InDelta(t, 0.5, orbiting.OrbitAngle(), 1e-6)
}

func TestPrepareFrameSkipsDisabledPlanets(t *testing.T) {
	parked := game_object.NewGameObject(game_object.WithOrbit(1, 4, 0), game_object.WithEnabled(false))
	s := newTestScene(parked)

	s.PrepareFrame(0.5)

	assert.Zero(t, parked.OrbitAngle())
}

func TestPrepareFrameInactiveSceneIsIgnored(t *testing.T) {
	orbiting := game_object.NewGameObject(game_object.WithOrbit(1, 4, 0))
	s := newTestScene(orbiting)
	s.SetActive(false)

	s.PrepareFrame(0.5)

	assert.Zero(t, s.Elapsed())
	assert.Zero(t, orbiting.OrbitAngle())
}

func TestPrepareFrameDrivesAutoRotate(t *testing.T) {
	ctrl := camera.NewCameraController(camera.WithAutoRotate(true, 2))
	cam := camera.NewCamera(camera.WithController(ctrl))
	s := NewScene("spin", cam, WithActive(true))

	s.PrepareFrame(1)

	assert.InDelta(t, camera.AutoRotateRadiansPerSecond(2), ctrl.Azimuth(), 1e-5)
}

func TestPickReturnsNearestPlanet(t *testing.T) {
	near := planetAt("near", mgl32.Vec3{0, 0, 0})
	far := planetAt("far", mgl32.Vec3{0, 0, -6})
	s := newTestScene(far, near)

	hit := s.Pick(0, 0)
	require.NotNil(t, hit)
	assert.Equal(t, "near", hit.Name())
}

func TestPickMissesEmptySpace(t *testing.T) {
	s := newTestScene(planetAt("a", mgl32.Vec3{0, 0, 0}))
	assert.Nil(t, s.Pick(0.9, 0.9))
}

func TestPickIgnoresDisabledPlanets(t *testing.T) {
	hidden := planetAt("hidden", mgl32.Vec3{0, 0, 0})
	hidden.SetEnabled(false)
	s := newTestScene(hidden)
	assert.Nil(t, s.Pick(0, 0))
}

func TestHoverMarksOnlyTheHitPlanet(t *testing.T) {
	center := planetAt("center", mgl32.Vec3{0, 0, 0})
	side := planetAt("side", mgl32.Vec3{6, 0, 0})
	s := newTestScene(center, side)
	side.SetHovered(true)

	hit := s.Hover(0, 0)

	require.NotNil(t, hit)
	assert.True(t, center.Hovered())
	assert.False(t, side.Hovered())

	assert.Nil(t, s.Hover(0.95, -0.95))
	assert.False(t, center.Hovered())
}

func TestVisibleObjectsCullsOutsideFrustum(t *testing.T) {
	inside := planetAt("inside", mgl32.Vec3{0, 0, 0})
	offscreen := planetAt("offscreen", mgl32.Vec3{200, 0, 0})
	behind := planetAt("behind", mgl32.Vec3{0, 0, 40})
	s := newTestScene(inside, offscreen, behind)

	visible := s.VisibleObjects()
	require.Len(t, visible, 1)
	assert.Equal(t, "inside", visible[0].Name())
}

func TestRenderUsesRenderer(t *testing.T) {
	fr := &fakeRenderer{}
	s := newTestScene()
	assert.NoError(t, s.Render())

	s.SetRenderer(fr)
	require.NoError(t, s.Render())
	assert.Equal(t, 1, fr.calls)

	fr.err = errors.New("surface lost")
	assert.EqualError(t, s.Render(), "surface lost")

	s.SetActive(false)
	require.NoError(t, s.Render())
	assert.Equal(t, 2, fr.calls)
}

func TestRenderDrawsVisiblePlanets(t *testing.T) {
	red := game_object.NewGameObject(
		game_object.WithName("red"),
		game_object.WithColor("#ff0000"),
		game_object.WithAnchor(mgl32.Vec3{1, 0, 0}),
		game_object.WithSize(2),
		game_object.WithScale(1.5),
	)
	dim := game_object.NewGameObject(
		game_object.WithName("dim"),
		game_object.WithColor("not a color"),
		game_object.WithAnchor(mgl32.Vec3{-1, 0, 0}),
		game_object.WithSize(1),
	)
	dim.SetDimmed(true)
	offscreen := planetAt("offscreen", mgl32.Vec3{200, 0, 0})

	fr := &fakeRenderer{}
	s := newTestScene(red, dim, offscreen)
	s.SetRenderer(fr)
	require.NoError(t, s.Render())

	frame := fr.last
	assert.Equal(t, s.Camera().ViewProjectionMatrix(), frame.ViewProjection)
	assert.InDelta(t, 15, frame.CameraPosition.Len(), 1e-3)
	require.Len(t, frame.Planets, 2)

	byRadius := map[float32]renderer.PlanetInstance{}
	for _, p := range frame.Planets {
		byRadius[p.Radius] = p
	}
	r, ok := byRadius[3]
	require.True(t, ok)
	assert.Equal(t, mgl32.Vec3{1, 0, 0}, r.Center)
	assert.InDelta(t, 1, r.Color[0], 1e-6)
	assert.InDelta(t, 0, r.Color[1], 1e-6)
	assert.InDelta(t, 1, r.Color[3], 1e-6)

	d, ok := byRadius[1]
	require.True(t, ok)
	assert.Equal(t, [4]float32{1, 1, 1, 0.3}, d.Color)
}

func TestPlanetInstanceHighlight(t *testing.T) {
	obj := game_object.NewGameObject(game_object.WithColor("#000000"), game_object.WithSize(1))
	assert.Equal(t, float32(0), planetInstance(obj).Color[0])

	obj.SetHovered(true)
	lifted := planetInstance(obj).Color
	assert.Greater(t, lifted[0], float32(0))
	assert.Equal(t, lifted[0], lifted[1])
}

func TestRaySphere(t *testing.T) {
	dir := mgl32.Vec3{0, 0, -1}

	d, ok := raySphere(mgl32.Vec3{0, 0, 10}, dir, mgl32.Vec3{}, 1)
	require.True(t, ok)
	assert.InDelta(t, 9, d, 1e-5)

	_, ok = raySphere(mgl32.Vec3{0, 0, 10}, dir, mgl32.Vec3{5, 0, 0}, 1)
	assert.False(t, ok)

	_, ok = raySphere(mgl32.Vec3{0, 0, -10}, dir, mgl32.Vec3{}, 1)
	assert.False(t, ok, "sphere behind the origin")

	d, ok = raySphere(mgl32.Vec3{}, dir, mgl32.Vec3{}, 2)
	require.True(t, ok)
	assert.InDelta(t, 2, d, 1e-5)
}
