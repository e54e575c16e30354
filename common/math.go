package common

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Perspective creates a right-handed perspective projection for WebGPU clip space, which maps
// view depth into [0, 1]. mgl32.Perspective targets the OpenGL [-1, 1] depth range.
//
// Parameters:
//   - fovY: vertical field of view in radians
//   - aspect: viewport aspect ratio (width/height)
//   - near: near clipping plane distance (must be > 0)
//   - far: far clipping plane distance (must be > near)
//
// Returns:
//   - mgl32.Mat4: the column-major projection matrix
func Perspective(fovY, aspect, near, far float32) mgl32.Mat4 {
	f := 1 / float32(math.Tan(float64(fovY)/2))
	return mgl32.Mat4{
		f / aspect, 0, 0, 0,
		0, f, 0, 0,
		0, 0, far / (near - far), -1,
		0, 0, (near * far) / (near - far), 0,
	}
}

// Unproject multiplies the homogeneous point (p, 1) by m and performs the perspective divide.
// A zero resulting w leaves the point undivided.
//
// Parameters:
//   - m: the matrix to apply, typically an inverse view-projection
//   - p: the point to transform
//
// Returns:
//   - mgl32.Vec3: the transformed point
func Unproject(m mgl32.Mat4, p mgl32.Vec3) mgl32.Vec3 {
	out := m.Mul4x1(p.Vec4(1))
	if out[3] == 0 {
		return out.Vec3()
	}
	return out.Vec3().Mul(1 / out[3])
}
