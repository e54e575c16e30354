package renderer

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	// SphereStacks is the number of latitude bands in the planet mesh.
	SphereStacks = 24
	// SphereSlices is the number of longitude bands in the planet mesh.
	SphereSlices = 32
)

// NewSphereMesh builds a unit UV sphere with counter-clockwise outward-facing triangles.
// The seam column is duplicated, and the degenerate triangles at the poles are left out.
//
// Parameters:
//   - stacks: latitude bands, at least 2
//   - slices: longitude bands, at least 3
//
// Returns:
//   - []SphereVertex: (stacks+1)*(slices+1) vertices, pole to pole
//   - []uint32: triangle list indices
func NewSphereMesh(stacks, slices int) ([]SphereVertex, []uint32) {
	stacks = max(stacks, 2)
	slices = max(slices, 3)

	vertices := make([]SphereVertex, 0, (stacks+1)*(slices+1))
	for i := 0; i <= stacks; i++ {
		phi := math.Pi * float64(i) / float64(stacks)
		sinPhi, cosPhi := math.Sincos(phi)
		for j := 0; j <= slices; j++ {
			theta := 2 * math.Pi * float64(j) / float64(slices)
			sinTheta, cosTheta := math.Sincos(theta)
			p := mgl32.Vec3{
				float32(sinPhi * sinTheta),
				float32(cosPhi),
				float32(sinPhi * cosTheta),
			}
			vertices = append(vertices, SphereVertex{Position: p, Normal: p})
		}
	}

	row := uint32(slices + 1)
	indices := make([]uint32, 0, slices*(stacks-1)*6)
	for i := 0; i < stacks; i++ {
		for j := 0; j < slices; j++ {
			a := uint32(i)*row + uint32(j) // upper left
			b := a + row                   // lower left
			c := b + 1                     // lower right
			d := a + 1                     // upper right
			if i != stacks-1 {
				indices = append(indices, a, b, c)
			}
			if i != 0 {
				indices = append(indices, a, c, d)
			}
		}
	}
	return vertices, indices
}
