package renderer

import (
	_ "embed"
	"encoding/binary"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// PlanetShaderSource is the WGSL program that draws instanced planets.
//
//go:embed assets/planet.wgsl
var PlanetShaderSource string

const (
	// frameUniformsSize matches FrameUniforms in planet.wgsl.
	frameUniformsSize = 96
	// planetInstanceSize matches Planet in planet.wgsl.
	planetInstanceSize = 32
	// sphereVertexSize matches VertexInput in planet.wgsl.
	sphereVertexSize = 24
)

// DefaultLightDirection points from the planets toward the light.
var DefaultLightDirection = mgl32.Vec3{0.4, 0.8, 0.45}

// PlanetInstance is one planet as drawn: a sphere of Radius at Center, tinted Color.
// Color[3] is the opacity; dimmed planets are drawn translucent.
type PlanetInstance struct {
	Center mgl32.Vec3
	Radius float32
	Color  [4]float32
}

// Marshal serializes the instance into the std430 layout of the Planet struct.
//
// Returns:
//   - []byte: 32-byte buffer ready for GPU upload
func (p PlanetInstance) Marshal() []byte {
	buf := make([]byte, planetInstanceSize)
	putFloats(buf, p.Center[0], p.Center[1], p.Center[2], p.Radius,
		p.Color[0], p.Color[1], p.Color[2], p.Color[3])
	return buf
}

// Frame is everything one RenderFrame call draws.
type Frame struct {
	ViewProjection [16]float32
	CameraPosition mgl32.Vec3
	Planets        []PlanetInstance
}

// marshalUniforms serializes the per-frame uniforms into the FrameUniforms layout.
func (f Frame) marshalUniforms(lightDir mgl32.Vec3) []byte {
	buf := make([]byte, frameUniformsSize)
	putFloats(buf, f.ViewProjection[:]...)
	putFloats(buf[64:], f.CameraPosition[0], f.CameraPosition[1], f.CameraPosition[2], 1)
	putFloats(buf[80:], lightDir[0], lightDir[1], lightDir[2], 0)
	return buf
}

// SphereVertex is one vertex of the unit sphere mesh. For a unit sphere the normal equals the position.
type SphereVertex struct {
	Position mgl32.Vec3
	Normal   mgl32.Vec3
}

// marshalVertices packs vertices back to back in the VertexInput layout.
func marshalVertices(vertices []SphereVertex) []byte {
	buf := make([]byte, len(vertices)*sphereVertexSize)
	for i, v := range vertices {
		putFloats(buf[i*sphereVertexSize:], v.Position[0], v.Position[1], v.Position[2],
			v.Normal[0], v.Normal[1], v.Normal[2])
	}
	return buf
}

// marshalIndices packs uint32 indices little-endian.
func marshalIndices(indices []uint32) []byte {
	buf := make([]byte, len(indices)*4)
	for i, idx := range indices {
		binary.LittleEndian.PutUint32(buf[i*4:], idx)
	}
	return buf
}

func putFloats(buf []byte, values ...float32) {
	for i, v := range values {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
}
