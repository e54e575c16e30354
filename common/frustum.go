package common

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Plane represents a plane in 3D space using the equation: ax + by + cz + d = 0
// where (a, b, c) is the normal and d is the distance from origin.
type Plane struct {
	Normal   mgl32.Vec3
	Distance float32
}

// Frustum represents the six planes of a view frustum for culling.
// Planes are oriented so that positive half-space is inside the frustum.
type Frustum struct {
	Planes [6]Plane // Left, Right, Bottom, Top, Near, Far
}

// FrustumPlane indices for clarity
const (
	FrustumLeft   = 0
	FrustumRight  = 1
	FrustumBottom = 2
	FrustumTop    = 3
	FrustumNear   = 4
	FrustumFar    = 5
)

// ExtractFrustumFromMatrix extracts frustum planes from a view-projection matrix.
// The matrix should be the combined View * Projection matrix.
// Uses the Gribb/Hartmann method for plane extraction. The near plane uses row2 alone
// because the projection maps depth to the WebGPU clip range [0, 1].
//
// Reference: https://www8.cs.umu.se/kurser/5DV051/HT12/lab/plane_extraction.pdf
//
// Parameters:
//   - viewProj: 16 float32 values representing the view-projection matrix (column-major)
//
// Returns:
//   - Frustum: the extracted frustum with normalized planes
func ExtractFrustumFromMatrix(viewProj []float32) Frustum {
	// For column-major matrix M, row i is (M[i], M[4+i], M[8+i], M[12+i]).
	row := func(i int) [4]float32 {
		return [4]float32{viewProj[i], viewProj[4+i], viewProj[8+i], viewProj[12+i]}
	}
	r0, r1, r2, r3 := row(0), row(1), row(2), row(3)

	combine := func(a [4]float32, b [4]float32, sign float32) Plane {
		return Plane{
			Normal:   mgl32.Vec3{a[0] + sign*b[0], a[1] + sign*b[1], a[2] + sign*b[2]},
			Distance: a[3] + sign*b[3],
		}
	}

	var f Frustum
	f.Planes[FrustumLeft] = combine(r3, r0, 1)
	f.Planes[FrustumRight] = combine(r3, r0, -1)
	f.Planes[FrustumBottom] = combine(r3, r1, 1)
	f.Planes[FrustumTop] = combine(r3, r1, -1)
	f.Planes[FrustumNear] = Plane{Normal: mgl32.Vec3{r2[0], r2[1], r2[2]}, Distance: r2[3]}
	f.Planes[FrustumFar] = combine(r3, r2, -1)

	for i := range f.Planes {
		f.normalizePlane(i)
	}
	return f
}

// ContainsSphere reports whether a sphere intersects or lies inside the frustum.
//
// Parameters:
//   - center: world-space sphere center
//   - radius: sphere radius
//
// Returns:
//   - bool: false only if the sphere is fully outside at least one plane
func (f *Frustum) ContainsSphere(center mgl32.Vec3, radius float32) bool {
	for _, p := range f.Planes {
		if p.Normal.Dot(center)+p.Distance < -radius {
			return false
		}
	}
	return true
}

// normalizePlane normalizes a frustum plane so that the normal has unit length.
func (f *Frustum) normalizePlane(index int) {
	p := &f.Planes[index]
	length := float32(math.Sqrt(float64(p.Normal.Dot(p.Normal))))
	if length > 0 {
		invLen := 1.0 / length
		p.Normal = p.Normal.Mul(invLen)
		p.Distance *= invLen
	}
}
