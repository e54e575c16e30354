package common

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func viewProjection(eye, center mgl32.Vec3) mgl32.Mat4 {
	view := mgl32.LookAtV(eye, center, mgl32.Vec3{0, 1, 0})
	return Perspective(math.Pi/3, 1, 0.1, 100).Mul4(view)
}

func TestPerspectiveDepthRange(t *testing.T) {
	proj := Perspective(math.Pi/3, 1, 0.1, 100)

	near := proj.Mul4x1(mgl32.Vec4{0, 0, -0.1, 1})
	far := proj.Mul4x1(mgl32.Vec4{0, 0, -100, 1})
	assert.InDelta(t, 0, near[2]/near[3], 1e-5)
	assert.InDelta(t, 1, far[2]/far[3], 1e-5)

	// 60 degree fov: a point 30 degrees above the axis lands on the top edge.
	edge := proj.Mul4x1(mgl32.Vec4{0, float32(math.Tan(math.Pi / 6)), -1, 1})
	assert.InDelta(t, 1, edge[1]/edge[3], 1e-5)
}

func TestUnprojectInvertsViewProjection(t *testing.T) {
	vp := viewProjection(mgl32.Vec3{3, 4, 12}, mgl32.Vec3{0, 1, 0})
	inv := vp.Inv()

	world := mgl32.Vec3{1, 2, -3}
	clip := vp.Mul4x1(world.Vec4(1))
	ndc := clip.Vec3().Mul(1 / clip[3])

	assert.True(t, ApproxEqualVec3(world, Unproject(inv, ndc), 1e-3))
}

func TestUnprojectZeroW(t *testing.T) {
	var m mgl32.Mat4
	m[0], m[5], m[10] = 1, 1, 1
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, Unproject(m, mgl32.Vec3{1, 2, 3}))
}

func TestFrustumContainsSphere(t *testing.T) {
	vp := viewProjection(mgl32.Vec3{0, 0, 10}, mgl32.Vec3{})
	f := ExtractFrustumFromMatrix(vp[:])

	assert.True(t, f.ContainsSphere(mgl32.Vec3{}, 1))
	assert.False(t, f.ContainsSphere(mgl32.Vec3{0, 0, 20}, 1), "behind the camera")
	assert.False(t, f.ContainsSphere(mgl32.Vec3{100, 0, 0}, 1), "far off to the side")
	assert.True(t, f.ContainsSphere(mgl32.Vec3{7, 0, 0}, 3), "straddling the right plane")
	assert.False(t, f.ContainsSphere(mgl32.Vec3{0, 0, -200}, 1), "past the far plane")
}

func TestVectorHelpers(t *testing.T) {
	assert.True(t, IsFiniteVec3(mgl32.Vec3{1, 2, 3}))
	assert.False(t, IsFiniteVec3(mgl32.Vec3{float32(math.NaN()), 0, 0}))
	assert.False(t, IsFiniteVec3(mgl32.Vec3{0, float32(math.Inf(1)), 0}))

	require.Equal(t, mgl32.Vec3{5, 10, -5}, LerpVec3(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{10, 20, -10}, 0.5))
	assert.True(t, ApproxEqualVec3(mgl32.Vec3{1, 1, 1}, mgl32.Vec3{1.0005, 1, 0.9995}, 1e-3))
	assert.False(t, ApproxEqualVec3(mgl32.Vec3{1, 1, 1}, mgl32.Vec3{1.1, 1, 1}, 1e-3))
}
