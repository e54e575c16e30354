package renderer

import (
	"errors"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-universe/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-universe/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-universe/engine/window"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu     *sync.Mutex
	logger *zap.Logger

	backendType RendererBackendType
	backend     RendererBackend

	planetPipeline pipeline.Pipeline
	lightDirection mgl32.Vec3

	frames  atomic.Uint64
	dropped atomic.Uint64

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	pendingPresentMode   *PresentMode
	clearColor           ClearColor
}

// Renderer defines the interface for the rendering system.
//
// Every planet is the same unit sphere mesh, so a frame is a clear to the backdrop color,
// one instanced draw of all visible planets and a present. The Renderer owns the frame
// lifecycle and hides the backend API behind RendererBackend.
type Renderer interface {
	// Resize configures the underlying backend to handle a new surface size.
	// This should be called when re-sizing the window or when the surface size should change.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	Resize(width, height int)

	// SetPresentMode changes how frames are presented. Takes effect on the next Resize.
	//
	// Parameters:
	//   - mode: the PresentMode to use
	SetPresentMode(mode PresentMode)

	// ClearColor returns the backdrop color.
	//
	// Returns:
	//   - ClearColor: the current clear color
	ClearColor() ClearColor

	// SetClearColor changes the backdrop color for subsequent frames.
	//
	// Parameters:
	//   - color: the new clear color
	SetClearColor(color ClearColor)

	// RenderFrame draws the frame's planets back to front and presents the result.
	// A frame the backend cannot acquire is counted as dropped and reported as an error.
	//
	// Parameters:
	//   - frame: camera matrices and the planets to draw
	//
	// Returns:
	//   - error: error if the surface texture could not be acquired or the frame could not be uploaded
	RenderFrame(frame Frame) error

	// Frames returns the number of frames presented.
	Frames() uint64

	// Dropped returns the number of frames the backend failed to begin.
	Dropped() uint64

	// Release frees GPU resources. The renderer must not be used afterwards.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates a new Renderer for the given window using the selected backend.
// The window's surface descriptor is used to create the GPU surface, which is then
// configured to the window's current size.
//
// Parameters:
//   - backendType: the type of rendering backend to use (e.g., WGPU)
//   - win: the window providing the surface descriptor and initial size
//   - options: variadic list of RendererBuilderOption functions to configure the Renderer
//
// Returns:
//   - Renderer: a new instance of Renderer configured with the specified backend and options
//   - error: error if the GPU adapter or device could not be acquired
func NewRenderer(backendType RendererBackendType, win window.Window, options ...RendererBuilderOption) (Renderer, error) {
	r := &renderer{
		mu:             &sync.Mutex{},
		logger:         zap.NewNop(),
		backendType:    backendType,
		clearColor:     DefaultClearColor,
		lightDirection: DefaultLightDirection,
	}

	// Apply options first so config flags (e.g. forceFallbackAdapter) are
	// available before the backend requests a GPU adapter.
	for _, opt := range options {
		opt(r)
	}

	if r.backend == nil {
		if win == nil {
			return nil, errors.New("renderer: a window is required to create a backend")
		}
		switch backendType {
		case BackendTypeWGPU:
			fallthrough
		default:
			backend, err := newWGPURendererBackend(win.SurfaceDescriptor(), r.forceFallbackAdapter)
			if err != nil {
				return nil, err
			}
			r.backend = backend
		}
	}

	if r.pendingPresentMode != nil {
		r.backend.SetPresentMode(*r.pendingPresentMode)
	}
	r.backend.SetClearColor(r.clearColor)

	if win != nil {
		r.backend.ConfigureSurface(win.Width(), win.Height())
	}

	if err := r.initPlanetPipeline(); err != nil {
		r.backend.Release()
		return nil, err
	}
	return r, nil
}

// initPlanetPipeline compiles the planet shader and uploads the shared sphere mesh.
func (r *renderer) initPlanetPipeline() error {
	vs, err := shader.NewShader("planet_vs", shader.ShaderTypeVertex, PlanetShaderSource)
	if err != nil {
		return fmt.Errorf("failed to parse planet vertex shader: %w", err)
	}
	fs, err := shader.NewShader("planet_fs", shader.ShaderTypeFragment, PlanetShaderSource)
	if err != nil {
		return fmt.Errorf("failed to parse planet fragment shader: %w", err)
	}

	p := pipeline.NewPipeline("planet",
		pipeline.WithVertexShader(vs),
		pipeline.WithFragmentShader(fs),
		pipeline.WithBlendEnabled(true),
		pipeline.WithCullMode(wgpu.CullModeBack),
	)
	if err := r.backend.RegisterRenderPipeline(p); err != nil {
		return fmt.Errorf("failed to register planet pipeline: %w", err)
	}

	vertices, indices := NewSphereMesh(SphereStacks, SphereSlices)
	if err := r.backend.InitMesh(marshalVertices(vertices), marshalIndices(indices), len(indices)); err != nil {
		return fmt.Errorf("failed to upload sphere mesh: %w", err)
	}
	r.planetPipeline = p
	r.logger.Debug("planet pipeline ready", zap.Int("vertices", len(vertices)), zap.Int("indices", len(indices)))
	return nil
}

func (r *renderer) Resize(width, height int) {
	r.logger.Debug("resizing surface", zap.Int("width", width), zap.Int("height", height))
	r.backend.ConfigureSurface(width, height)
}

func (r *renderer) SetPresentMode(mode PresentMode) {
	r.backend.SetPresentMode(mode)
}

func (r *renderer) ClearColor() ClearColor {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.clearColor
}

func (r *renderer) SetClearColor(color ClearColor) {
	r.mu.Lock()
	r.clearColor = color
	r.mu.Unlock()
	r.backend.SetClearColor(color)
}

func (r *renderer) RenderFrame(frame Frame) error {
	planets := sortBackToFront(frame.CameraPosition, frame.Planets)
	instances := make([]byte, 0, len(planets)*planetInstanceSize)
	for _, p := range planets {
		instances = append(instances, p.Marshal()...)
	}
	if err := r.backend.WriteFrame(frame.marshalUniforms(r.lightDirection), instances); err != nil {
		r.dropped.Add(1)
		return fmt.Errorf("failed to upload frame: %w", err)
	}

	if err := r.backend.BeginFrame(); err != nil {
		if r.dropped.Add(1) == 1 {
			r.logger.Warn("dropping frame", zap.Error(err))
		}
		return fmt.Errorf("failed to begin frame: %w", err)
	}
	if len(planets) > 0 {
		r.backend.Draw(r.planetPipeline, uint32(len(planets)))
	}
	r.backend.EndFrame()
	r.backend.Present()
	r.frames.Add(1)
	return nil
}

func (r *renderer) Frames() uint64 {
	return r.frames.Load()
}

func (r *renderer) Dropped() uint64 {
	return r.dropped.Load()
}

func (r *renderer) Release() {
	r.backend.Release()
}

// sortBackToFront returns a copy of planets ordered farthest first from eye, so
// translucent planets blend over the ones behind them.
func sortBackToFront(eye mgl32.Vec3, planets []PlanetInstance) []PlanetInstance {
	sorted := slices.Clone(planets)
	slices.SortStableFunc(sorted, func(a, b PlanetInstance) int {
		va, vb := a.Center.Sub(eye), b.Center.Sub(eye)
		da, db := va.Dot(va), vb.Dot(vb)
		switch {
		case da > db:
			return -1
		case da < db:
			return 1
		}
		return 0
	})
	return sorted
}
