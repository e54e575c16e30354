package renderer

import "github.com/Carmen-Shannon/oxy-universe/engine/renderer/pipeline"

// RendererBackendType identifies the GPU backend implementation used by the Renderer.
type RendererBackendType int

const (
	// BackendTypeWGPU selects the WebGPU-based rendering backend.
	BackendTypeWGPU RendererBackendType = iota
)

// PresentMode controls how rendered frames are presented to the display surface.
type PresentMode int

const (
	// PresentModeVSync waits for the next vertical blank before presenting, capping frame rate
	// to the monitor's refresh rate. Eliminates tearing.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents frames immediately without waiting for vertical blank.
	// May cause screen tearing but provides the lowest latency.
	PresentModeUncapped
)

// ClearColor is the linear RGBA color the frame is cleared to.
type ClearColor struct {
	R, G, B, A float64
}

// DefaultClearColor is the deep-space backdrop behind the planets.
var DefaultClearColor = ClearColor{R: 0.02, G: 0.02, B: 0.06, A: 1}

// RendererBackend is the GPU-facing half of the Renderer. A frame is bracketed by
// BeginFrame and EndFrame, then handed to the display with Present. Draw calls are
// recorded between BeginFrame and EndFrame.
type RendererBackend interface {
	// ConfigureSurface (re)creates the swapchain and depth buffer for the given size in pixels.
	ConfigureSurface(width, height int)

	// SetPresentMode selects vsync or uncapped presentation. Applied on the next ConfigureSurface.
	SetPresentMode(mode PresentMode)

	// SetClearColor sets the color the next frame is cleared to.
	SetClearColor(color ClearColor)

	// RegisterRenderPipeline compiles the pipeline's shaders and creates its GPU pipeline.
	// Bind group 0 of the pipeline holds the frame uniforms and the instance storage.
	RegisterRenderPipeline(p pipeline.Pipeline) error

	// InitMesh uploads the shared instance mesh.
	InitMesh(vertexData, indexData []byte, indexCount int) error

	// WriteFrame uploads the frame uniforms and the instance array, growing the
	// instance buffer when needed.
	WriteFrame(uniforms, instances []byte) error

	// BeginFrame acquires the next surface texture and opens a clearing render pass.
	BeginFrame() error

	// Draw records an instanced draw of the mesh with the given pipeline.
	Draw(p pipeline.Pipeline, instanceCount uint32)

	// EndFrame closes the render pass and submits the recorded commands.
	EndFrame()

	// Present shows the acquired surface texture and releases per-frame resources.
	Present()

	// Release frees the device and surface. The backend is unusable afterwards.
	Release()
}
