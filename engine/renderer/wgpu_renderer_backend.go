package renderer

import (
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/Carmen-Shannon/oxy-universe/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-universe/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

type wgpuRendererBackendImpl struct {
	mu     *sync.Mutex
	device *wgpu.Device
	queue  *wgpu.Queue

	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	surface  *wgpu.Surface

	surfaceFormat        wgpu.TextureFormat
	renderPassDescriptor *wgpu.RenderPassDescriptor
	clearColor           ClearColor
	configured           bool

	presentMode wgpu.PresentMode // defaults to PresentModeImmediate (Uncapped)

	depthTexture *wgpu.Texture
	depthView    *wgpu.TextureView

	// Mesh and per-frame buffers shared by every draw
	vertexBuffer     *wgpu.Buffer
	indexBuffer      *wgpu.Buffer
	indexCount       uint32
	uniformBuffer    *wgpu.Buffer
	instanceBuffer   *wgpu.Buffer
	instanceCapacity uint64
	frameLayout      *wgpu.BindGroupLayout
	frameBindGroup   *wgpu.BindGroup
	pipelines        []pipeline.Pipeline

	// Frame state between BeginFrame and Present
	frameEncoder *wgpu.CommandEncoder
	framePass    *wgpu.RenderPassEncoder
	frameSurface *wgpu.Texture
	frameView    *wgpu.TextureView
}

var _ RendererBackend = &wgpuRendererBackendImpl{}

// errFrameInFlight is returned by BeginFrame when the previous surface texture has not been presented.
var errFrameInFlight = errors.New("previous frame surface not yet presented")

// minInstanceBufferSize is the smallest instance storage buffer, in bytes.
const minInstanceBufferSize = 64 * planetInstanceSize

func newWGPURendererBackend(surfaceDescriptor *wgpu.SurfaceDescriptor, forceFallbackAdapter bool) (*wgpuRendererBackendImpl, error) {
	runtime.LockOSThread()
	w := &wgpuRendererBackendImpl{
		mu:          &sync.Mutex{},
		instance:    wgpu.CreateInstance(nil),
		presentMode: wgpu.PresentModeImmediate,
		clearColor:  DefaultClearColor,
	}
	w.surface = w.instance.CreateSurface(surfaceDescriptor)

	a, err := w.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: forceFallbackAdapter,
		CompatibleSurface:    w.surface,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to request adapter: %w", err)
	}
	w.adapter = a

	d, err := a.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Universe Device",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to request device: %w", err)
	}
	w.device = d
	w.queue = d.GetQueue()
	w.surfaceFormat = w.surface.GetCapabilities(a).Formats[0]

	return w, nil
}

func (b *wgpuRendererBackendImpl) ConfigureSurface(width, height int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if width <= 0 || height <= 0 {
		// Minimized windows report a zero size; keep the old swapchain.
		return
	}

	capabilities := b.surface.GetCapabilities(b.adapter)

	b.surface.Configure(b.adapter, b.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      b.surfaceFormat,
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: b.presentMode,
		AlphaMode:   capabilities.AlphaModes[0],
	})

	depthTexture, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label: "Depth Texture",
		Size: wgpu.Extent3D{
			Width:              uint32(width),
			Height:             uint32(height),
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        wgpu.TextureFormatDepth24Plus,
		Usage:         wgpu.TextureUsageRenderAttachment,
	})
	if err != nil {
		panic(err)
	}
	depthView, err := depthTexture.CreateView(nil)
	if err != nil {
		panic(err)
	}
	b.releaseDepth()
	b.depthTexture = depthTexture
	b.depthView = depthView

	// The swapchain view is attached per frame in BeginFrame.
	b.renderPassDescriptor = &wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				LoadOp:  wgpu.LoadOpClear,
				StoreOp: wgpu.StoreOpStore,
			},
		},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            b.depthView,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpDiscard,
			DepthClearValue: 1.0,
		},
	}
	b.configured = true
}

func (b *wgpuRendererBackendImpl) SetPresentMode(mode PresentMode) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch mode {
	case PresentModeVSync:
		b.presentMode = wgpu.PresentModeFifo
	case PresentModeUncapped:
		fallthrough
	default:
		b.presentMode = wgpu.PresentModeImmediate
	}
}

func (b *wgpuRendererBackendImpl) SetClearColor(color ClearColor) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.clearColor = color
}

func (b *wgpuRendererBackendImpl) RegisterRenderPipeline(p pipeline.Pipeline) error {
	vertexShader := p.Shader(shader.ShaderTypeVertex)
	fragmentShader := p.Shader(shader.ShaderTypeFragment)
	if vertexShader == nil || fragmentShader == nil {
		return errors.New("both vertex and fragment shaders must be set to create a render pipeline")
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	vs, err := b.device.CreateShaderModule(vertexShader.Module())
	if err != nil {
		return fmt.Errorf("failed to create vertex shader module: %w", err)
	}
	defer vs.Release()
	fs, err := b.device.CreateShaderModule(fragmentShader.Module())
	if err != nil {
		return fmt.Errorf("failed to create fragment shader module: %w", err)
	}
	defer fs.Release()

	merged := shader.MergeBindGroupLayouts(vertexShader.BindGroupLayoutDescriptors(), fragmentShader.BindGroupLayoutDescriptors())
	maxGroup := -1
	for g := range merged {
		maxGroup = max(maxGroup, g)
	}
	bindGroupLayouts := make([]*wgpu.BindGroupLayout, maxGroup+1)
	for g, desc := range merged {
		layout, layoutErr := b.device.CreateBindGroupLayout(&desc)
		if layoutErr != nil {
			return fmt.Errorf("failed to create bind group layout for group %d: %w", g, layoutErr)
		}
		bindGroupLayouts[g] = layout
	}
	if len(bindGroupLayouts) == 0 || bindGroupLayouts[0] == nil {
		return errors.New("render pipeline must declare bind group 0")
	}

	pipelineLayout, err := b.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            p.PipelineKey(),
		BindGroupLayouts: bindGroupLayouts,
	})
	if err != nil {
		return fmt.Errorf("failed to create pipeline layout: %w", err)
	}
	defer pipelineLayout.Release()

	colorTarget := wgpu.ColorTargetState{
		Format:    b.surfaceFormat,
		WriteMask: p.WriteMask(),
	}
	if p.BlendEnabled() {
		colorTarget.Blend = p.BlendState()
	}
	depthCompare := wgpu.CompareFunctionLess
	if !p.DepthTestEnabled() {
		depthCompare = wgpu.CompareFunctionAlways
	}

	created, err := b.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  p.PipelineKey() + " Render Pipeline",
		Layout: pipelineLayout,
		Vertex: wgpu.VertexState{
			Module:     vs,
			EntryPoint: vertexShader.EntryPoint(),
			Buffers:    vertexShader.VertexLayouts(),
		},
		Fragment: &wgpu.FragmentState{
			Module:     fs,
			EntryPoint: fragmentShader.EntryPoint(),
			Targets:    []wgpu.ColorTargetState{colorTarget},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  p.Topology(),
			FrontFace: p.FrontFace(),
			CullMode:  p.CullMode(),
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
		DepthStencil: &wgpu.DepthStencilState{
			Format:            wgpu.TextureFormatDepth24Plus,
			DepthWriteEnabled: p.DepthWriteEnabled(),
			DepthCompare:      depthCompare,
			StencilFront: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
			StencilBack: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create render pipeline: %w", err)
	}

	p.SetRenderPipeline(created)
	b.pipelines = append(b.pipelines, p)

	// The frame bind group is rebuilt against the new layout on the next WriteFrame.
	if b.frameLayout != nil {
		b.frameLayout.Release()
	}
	b.frameLayout = bindGroupLayouts[0]
	for _, layout := range bindGroupLayouts[1:] {
		if layout != nil {
			layout.Release()
		}
	}
	b.releaseBindGroup()
	return nil
}

func (b *wgpuRendererBackendImpl) InitMesh(vertexData, indexData []byte, indexCount int) error {
	if len(vertexData) == 0 || len(indexData) == 0 {
		return errors.New("mesh requires vertex and index data")
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	vertexBuffer, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "Planet Vertex Buffer",
		Size:  uint64(len(vertexData)),
		Usage: wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("failed to create vertex buffer: %w", err)
	}
	indexBuffer, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "Planet Index Buffer",
		Size:  uint64(len(indexData)),
		Usage: wgpu.BufferUsageIndex | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		vertexBuffer.Release()
		return fmt.Errorf("failed to create index buffer: %w", err)
	}
	b.queue.WriteBuffer(vertexBuffer, 0, vertexData)
	b.queue.WriteBuffer(indexBuffer, 0, indexData)

	releaseBuffer(&b.vertexBuffer)
	releaseBuffer(&b.indexBuffer)
	b.vertexBuffer = vertexBuffer
	b.indexBuffer = indexBuffer
	b.indexCount = uint32(indexCount)
	return nil
}

func (b *wgpuRendererBackendImpl) WriteFrame(uniforms, instances []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.frameLayout == nil {
		return errors.New("no render pipeline registered")
	}

	if b.uniformBuffer == nil {
		buf, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
			Label: "Frame Uniforms",
			Size:  frameUniformsSize,
			Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
		})
		if err != nil {
			return fmt.Errorf("failed to create uniform buffer: %w", err)
		}
		b.uniformBuffer = buf
		b.releaseBindGroup()
	}

	if need := uint64(len(instances)); b.instanceBuffer == nil || need > b.instanceCapacity {
		capacity := max(b.instanceCapacity*2, need, minInstanceBufferSize)
		buf, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
			Label: "Planet Instances",
			Size:  capacity,
			Usage: wgpu.BufferUsageStorage | wgpu.BufferUsageCopyDst,
		})
		if err != nil {
			return fmt.Errorf("failed to create instance buffer: %w", err)
		}
		releaseBuffer(&b.instanceBuffer)
		b.instanceBuffer = buf
		b.instanceCapacity = capacity
		b.releaseBindGroup()
	}

	if b.frameBindGroup == nil {
		bindGroup, err := b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
			Label:  "Frame Bind Group",
			Layout: b.frameLayout,
			Entries: []wgpu.BindGroupEntry{
				{Binding: 0, Buffer: b.uniformBuffer, Offset: 0, Size: wgpu.WholeSize},
				{Binding: 1, Buffer: b.instanceBuffer, Offset: 0, Size: wgpu.WholeSize},
			},
		})
		if err != nil {
			return fmt.Errorf("failed to create frame bind group: %w", err)
		}
		b.frameBindGroup = bindGroup
	}

	b.queue.WriteBuffer(b.uniformBuffer, 0, uniforms)
	if len(instances) > 0 {
		b.queue.WriteBuffer(b.instanceBuffer, 0, instances)
	}
	return nil
}

func (b *wgpuRendererBackendImpl) BeginFrame() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.configured {
		return errors.New("surface not configured")
	}
	if b.frameSurface != nil {
		return errFrameInFlight
	}

	surfaceTexture, err := b.surface.GetCurrentTexture()
	if err != nil {
		return err
	}

	view, err := surfaceTexture.CreateView(nil)
	if err != nil {
		surfaceTexture.Release()
		return err
	}

	encoder, err := b.device.CreateCommandEncoder(nil)
	if err != nil {
		view.Release()
		surfaceTexture.Release()
		return err
	}

	attachment := &b.renderPassDescriptor.ColorAttachments[0]
	attachment.View = view
	attachment.ClearValue = wgpu.Color{R: b.clearColor.R, G: b.clearColor.G, B: b.clearColor.B, A: b.clearColor.A}

	b.frameEncoder = encoder
	b.framePass = encoder.BeginRenderPass(b.renderPassDescriptor)
	b.frameSurface = surfaceTexture
	b.frameView = view

	return nil
}

func (b *wgpuRendererBackendImpl) Draw(p pipeline.Pipeline, instanceCount uint32) {
	b.mu.Lock()
	defer b.mu.Unlock()

	renderPipeline := p.RenderPipeline()
	if b.framePass == nil || renderPipeline == nil || b.frameBindGroup == nil || b.vertexBuffer == nil {
		return
	}
	b.framePass.SetPipeline(renderPipeline)
	b.framePass.SetBindGroup(0, b.frameBindGroup, nil)
	b.framePass.SetVertexBuffer(0, b.vertexBuffer, 0, wgpu.WholeSize)
	b.framePass.SetIndexBuffer(b.indexBuffer, wgpu.IndexFormatUint32, 0, wgpu.WholeSize)
	b.framePass.DrawIndexed(b.indexCount, instanceCount, 0, 0, 0)
}

func (b *wgpuRendererBackendImpl) EndFrame() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.framePass == nil {
		return
	}
	b.framePass.End()
	b.framePass.Release()
	b.framePass = nil

	commandBuffer, err := b.frameEncoder.Finish(nil)
	b.frameEncoder.Release()
	b.frameEncoder = nil
	if err != nil {
		b.releaseFrame()
		return
	}

	b.queue.Submit(commandBuffer)
	commandBuffer.Release()
}

func (b *wgpuRendererBackendImpl) Present() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.frameSurface == nil {
		return
	}
	b.surface.Present()
	b.releaseFrame()
}

func (b *wgpuRendererBackendImpl) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.releaseFrame()
	b.releaseBindGroup()
	releaseBuffer(&b.instanceBuffer)
	releaseBuffer(&b.uniformBuffer)
	releaseBuffer(&b.indexBuffer)
	releaseBuffer(&b.vertexBuffer)
	for _, p := range b.pipelines {
		if rp := p.RenderPipeline(); rp != nil {
			rp.Release()
			p.SetRenderPipeline(nil)
		}
	}
	b.pipelines = nil
	if b.frameLayout != nil {
		b.frameLayout.Release()
		b.frameLayout = nil
	}
	b.releaseDepth()
	if b.queue != nil {
		b.queue.Release()
		b.queue = nil
	}
	if b.device != nil {
		b.device.Release()
		b.device = nil
	}
	if b.adapter != nil {
		b.adapter.Release()
		b.adapter = nil
	}
	if b.surface != nil {
		b.surface.Release()
		b.surface = nil
	}
	if b.instance != nil {
		b.instance.Release()
		b.instance = nil
	}
	b.configured = false
}

// releaseFrame drops the per-frame surface texture and view.
// Caller must hold the mutex.
func (b *wgpuRendererBackendImpl) releaseFrame() {
	if b.frameView != nil {
		b.frameView.Release()
		b.frameView = nil
	}
	if b.frameSurface != nil {
		b.frameSurface.Release()
		b.frameSurface = nil
	}
}

// releaseDepth drops the depth texture and its view.
// Caller must hold the mutex.
func (b *wgpuRendererBackendImpl) releaseDepth() {
	if b.depthView != nil {
		b.depthView.Release()
		b.depthView = nil
	}
	if b.depthTexture != nil {
		b.depthTexture.Release()
		b.depthTexture = nil
	}
}

// releaseBindGroup drops the frame bind group so the next WriteFrame rebuilds it.
// Caller must hold the mutex.
func (b *wgpuRendererBackendImpl) releaseBindGroup() {
	if b.frameBindGroup != nil {
		b.frameBindGroup.Release()
		b.frameBindGroup = nil
	}
}

func releaseBuffer(buf **wgpu.Buffer) {
	if *buf != nil {
		(*buf).Release()
		*buf = nil
	}
}
