package renderer

import (
	"encoding/binary"
	"errors"
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-universe/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-universe/engine/renderer/shader"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBackend struct {
	calls      []string
	clearColor ClearColor
	beginErr   error
	writeErr   error
	width      int
	height     int

	pipeline      pipeline.Pipeline
	indexCount    int
	uniforms      []byte
	instances     []byte
	drawInstances uint32
}

func (f *fakeBackend) ConfigureSurface(width, height int) {
	f.width, f.height = width, height
	f.calls = append(f.calls, "configure")
}
func (f *fakeBackend) SetPresentMode(PresentMode)     { f.calls = append(f.calls, "present-mode") }
func (f *fakeBackend) SetClearColor(color ClearColor) { f.clearColor = color }
func (f *fakeBackend) RegisterRenderPipeline(p pipeline.Pipeline) error {
	f.calls = append(f.calls, "register")
	f.pipeline = p
	return nil
}
func (f *fakeBackend) InitMesh(_, _ []byte, indexCount int) error {
	f.calls = append(f.calls, "mesh")
	f.indexCount = indexCount
	return nil
}
func (f *fakeBackend) WriteFrame(uniforms, instances []byte) error {
	f.calls = append(f.calls, "write")
	f.uniforms, f.instances = uniforms, instances
	return f.writeErr
}
func (f *fakeBackend) BeginFrame() error {
	f.calls = append(f.calls, "begin")
	return f.beginErr
}
func (f *fakeBackend) Draw(_ pipeline.Pipeline, instanceCount uint32) {
	f.calls = append(f.calls, "draw")
	f.drawInstances = instanceCount
}
func (f *fakeBackend) EndFrame() { f.calls = append(f.calls, "end") }
func (f *fakeBackend) Present()  { f.calls = append(f.calls, "present") }
func (f *fakeBackend) Release()  { f.calls = append(f.calls, "release") }

func floatAt(buf []byte, index int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(buf[index*4:]))
}

func TestRendererRegistersPlanetPipeline(t *testing.T) {
	backend := &fakeBackend{}
	_, err := NewRenderer(BackendTypeWGPU, nil, WithBackend(backend))
	require.NoError(t, err)

	require.NotNil(t, backend.pipeline)
	assert.Equal(t, "planet", backend.pipeline.PipelineKey())
	assert.True(t, backend.pipeline.BlendEnabled())
	require.NotNil(t, backend.pipeline.Shader(shader.ShaderTypeVertex))
	require.NotNil(t, backend.pipeline.Shader(shader.ShaderTypeFragment))
	assert.Equal(t, "vs_main", backend.pipeline.Shader(shader.ShaderTypeVertex).EntryPoint())
	assert.Equal(t, "fs_main", backend.pipeline.Shader(shader.ShaderTypeFragment).EntryPoint())

	_, indices := NewSphereMesh(SphereStacks, SphereSlices)
	assert.Equal(t, len(indices), backend.indexCount)
	assert.Equal(t, []string{"register", "mesh"}, backend.calls)
}

func TestRendererFrameLifecycle(t *testing.T) {
	backend := &fakeBackend{}
	r, err := NewRenderer(BackendTypeWGPU, nil, WithBackend(backend), WithPresentMode(PresentModeVSync))
	require.NoError(t, err)
	assert.Equal(t, DefaultClearColor, backend.clearColor)
	backend.calls = nil

	frame := Frame{
		ViewProjection: [16]float32(mgl32.Ident4()),
		Planets: []PlanetInstance{
			{Center: mgl32.Vec3{1, 0, 0}, Radius: 1, Color: [4]float32{1, 1, 1, 1}},
			{Center: mgl32.Vec3{5, 0, 0}, Radius: 1, Color: [4]float32{1, 1, 1, 1}},
		},
	}
	require.NoError(t, r.RenderFrame(frame))
	assert.Equal(t, []string{"write", "begin", "draw", "end", "present"}, backend.calls)
	assert.Equal(t, uint32(2), backend.drawInstances)
	assert.Len(t, backend.uniforms, frameUniformsSize)
	assert.Len(t, backend.instances, 2*planetInstanceSize)
	assert.Equal(t, uint64(1), r.Frames())

	r.Resize(800, 600)
	assert.Equal(t, 800, backend.width)
	assert.Equal(t, 600, backend.height)
}

func TestRendererSkipsDrawWithoutPlanets(t *testing.T) {
	backend := &fakeBackend{}
	r, err := NewRenderer(BackendTypeWGPU, nil, WithBackend(backend))
	require.NoError(t, err)
	backend.calls = nil

	require.NoError(t, r.RenderFrame(Frame{}))
	assert.Equal(t, []string{"write", "begin", "end", "present"}, backend.calls)
	assert.Empty(t, backend.instances)
}

func TestRendererSortsPlanetsBackToFront(t *testing.T) {
	backend := &fakeBackend{}
	r, err := NewRenderer(BackendTypeWGPU, nil, WithBackend(backend))
	require.NoError(t, err)

	frame := Frame{
		CameraPosition: mgl32.Vec3{0, 0, 10},
		Planets: []PlanetInstance{
			{Center: mgl32.Vec3{0, 0, 8}, Radius: 1, Color: [4]float32{1, 0, 0, 1}},
			{Center: mgl32.Vec3{0, 0, -20}, Radius: 2, Color: [4]float32{0, 1, 0, 0.3}},
			{Center: mgl32.Vec3{0, 0, 0}, Radius: 3, Color: [4]float32{0, 0, 1, 1}},
		},
	}
	require.NoError(t, r.RenderFrame(frame))
	require.Len(t, backend.instances, 3*planetInstanceSize)

	// Center z is the third float of each 8-float instance.
	assert.Equal(t, float32(-20), floatAt(backend.instances, 2))
	assert.Equal(t, float32(0), floatAt(backend.instances, 8+2))
	assert.Equal(t, float32(8), floatAt(backend.instances, 16+2))
	assert.Equal(t, float32(0.3), floatAt(backend.instances, 7))

	// The caller's slice keeps its order.
	assert.Equal(t, float32(8), frame.Planets[0].Center.Z())
}

func TestRendererUniformLayout(t *testing.T) {
	backend := &fakeBackend{}
	r, err := NewRenderer(BackendTypeWGPU, nil, WithBackend(backend))
	require.NoError(t, err)

	vp := mgl32.Translate3D(1, 2, 3)
	require.NoError(t, r.RenderFrame(Frame{ViewProjection: [16]float32(vp), CameraPosition: mgl32.Vec3{4, 5, 6}}))

	assert.Equal(t, float32(1), floatAt(backend.uniforms, 12))
	assert.Equal(t, float32(2), floatAt(backend.uniforms, 13))
	assert.Equal(t, float32(3), floatAt(backend.uniforms, 14))
	assert.Equal(t, []float32{4, 5, 6, 1}, []float32{
		floatAt(backend.uniforms, 16), floatAt(backend.uniforms, 17),
		floatAt(backend.uniforms, 18), floatAt(backend.uniforms, 19),
	})
	assert.Equal(t, DefaultLightDirection.X(), floatAt(backend.uniforms, 20))
	assert.Equal(t, float32(0), floatAt(backend.uniforms, 23))
}

func TestRendererDropsFrameWhenBeginFails(t *testing.T) {
	backend := &fakeBackend{beginErr: errFrameInFlight}
	r, err := NewRenderer(BackendTypeWGPU, nil, WithBackend(backend))
	require.NoError(t, err)

	err = r.RenderFrame(Frame{Planets: []PlanetInstance{{Radius: 1}}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errFrameInFlight))
	assert.Equal(t, uint64(0), r.Frames())
	assert.Equal(t, uint64(1), r.Dropped())
	assert.NotContains(t, backend.calls, "draw")
	assert.NotContains(t, backend.calls, "present")
}

func TestRendererDropsFrameWhenUploadFails(t *testing.T) {
	backend := &fakeBackend{writeErr: errors.New("device lost")}
	r, err := NewRenderer(BackendTypeWGPU, nil, WithBackend(backend))
	require.NoError(t, err)

	require.Error(t, r.RenderFrame(Frame{}))
	assert.Equal(t, uint64(1), r.Dropped())
	assert.NotContains(t, backend.calls, "begin")
}

func TestRendererClearColor(t *testing.T) {
	backend := &fakeBackend{}
	r, err := NewRenderer(BackendTypeWGPU, nil, WithBackend(backend), WithClearColor(ClearColor{R: 1, A: 1}))
	require.NoError(t, err)
	assert.Equal(t, ClearColor{R: 1, A: 1}, backend.clearColor)

	r.SetClearColor(ClearColor{B: 1, A: 1})
	assert.Equal(t, ClearColor{B: 1, A: 1}, r.ClearColor())
	assert.Equal(t, ClearColor{B: 1, A: 1}, backend.clearColor)
}

func TestRendererRequiresWindowWithoutBackend(t *testing.T) {
	_, err := NewRenderer(BackendTypeWGPU, nil)
	require.Error(t, err)
}

func TestPlanetInstanceMarshal(t *testing.T) {
	buf := PlanetInstance{Center: mgl32.Vec3{1, 2, 3}, Radius: 4, Color: [4]float32{0.5, 0.25, 0.125, 1}}.Marshal()
	require.Len(t, buf, planetInstanceSize)
	for i, want := range []float32{1, 2, 3, 4, 0.5, 0.25, 0.125, 1} {
		assert.Equal(t, want, floatAt(buf, i), "float %d", i)
	}
}
