package common

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// IsFiniteVec3 reports whether every component of v is a finite number (not NaN or ±Inf).
//
// Parameters:
//   - v: the vector to check
//
// Returns:
//   - bool: true if all three components are finite
func IsFiniteVec3(v mgl32.Vec3) bool {
	for _, c := range v {
		f := float64(c)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}

// LerpVec3 blends from a to b by t independently per axis. t is not clamped.
func LerpVec3(a, b mgl32.Vec3, t float32) mgl32.Vec3 {
	return mgl32.Vec3{
		a[0] + (b[0]-a[0])*t,
		a[1] + (b[1]-a[1])*t,
		a[2] + (b[2]-a[2])*t,
	}
}

// ApproxEqualVec3 reports whether a and b differ by at most epsilon on every axis.
func ApproxEqualVec3(a, b mgl32.Vec3, epsilon float32) bool {
	for i := range 3 {
		if d := a[i] - b[i]; d > epsilon || d < -epsilon {
			return false
		}
	}
	return true
}
