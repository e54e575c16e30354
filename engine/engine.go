package engine

import (
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/oxy-universe/engine/frame"
	"github.com/Carmen-Shannon/oxy-universe/engine/profiler"
	"github.com/Carmen-Shannon/oxy-universe/engine/scene"
	"github.com/Carmen-Shannon/oxy-universe/engine/window"
	"go.uber.org/zap"
)

// engine implements the Engine interface.
// Coordinates engine, render, and window threads.
type engine struct {
	mu     *sync.Mutex
	logger *zap.Logger

	tickRateChannel chan time.Duration // Channel for dynamic tick rate updates

	running bool
	wg      sync.WaitGroup

	quitChannel chan struct{}
	quitOnce    sync.Once // Ensures quitChannel is only closed once

	window window.Window
	frames *frame.Dispatcher

	profiler         *profiler.Profiler
	profilingEnabled bool

	engineTickRate time.Duration
	tickCallback   func(deltaTime float32)
	renderCallback func(deltaTime float32)

	scenes map[int]scene.Scene

	renderFrameLimit atomic.Int64 // minimum frame duration in nanoseconds; 0 = uncapped
}

// Engine is the main entry point for the engine.
// It orchestrates the engine loop, render loop, and window management.
//
// Each engine tick dispatches the frame dispatcher first, so camera transitions advance
// before scenes recompute their camera matrices for the same frame.
type Engine interface {
	// Window returns the underlying window, or nil for a headless engine.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// Frames returns the per-frame callback dispatcher driven by the engine tick.
	//
	// Returns:
	//   - *frame.Dispatcher: the dispatcher
	Frames() *frame.Dispatcher

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetTickRate sets the engine tick rate in frames per second.
	// The tick callback will be called at this rate for game logic updates.
	//
	// Parameters:
	//   - fps: target frames per second (defaults to 60 if <= 0)
	SetTickRate(fps float64)

	// SetTickCallback registers the function called each engine tick, after frame callbacks
	// and scene updates have run.
	//
	// Parameters:
	//   - callback: function to call at the configured tick rate, receiving the delta time in seconds
	SetTickCallback(callback func(deltaTime float32))

	// SetRenderCallback registers the function called each render frame.
	//
	// Parameters:
	//   - callback: function to call each render frame, receiving the delta time in seconds
	SetRenderCallback(callback func(deltaTime float32))

	// SetRenderFrameLimit sets an optional render frame rate cap in frames per second.
	// Pass 0 to uncap the render loop (default).
	//
	// Parameters:
	//   - fps: maximum render frames per second (0 = uncapped)
	SetRenderFrameLimit(fps float64)

	// AddScene registers a scene at the given z-index key.
	// Scenes are updated and rendered in ascending key order.
	//
	// Parameters:
	//   - key: the z-index determining order (lower first)
	//   - s: the Scene to register
	AddScene(key int, s scene.Scene)

	// RemoveScene removes the scene at the given z-index key.
	//
	// Parameters:
	//   - key: the z-index of the scene to remove
	RemoveScene(key int)

	// Scene retrieves the scene registered at the given z-index key.
	// Returns nil if no scene exists at that key.
	//
	// Parameters:
	//   - key: the z-index of the scene to retrieve
	//
	// Returns:
	//   - scene.Scene: the scene at the key, or nil if not found
	Scene(key int) scene.Scene

	// Scenes returns a copy of all registered scenes keyed by z-index.
	//
	// Returns:
	//   - map[int]scene.Scene: a copy of the scenes map
	Scenes() map[int]scene.Scene

	// Tick runs one engine tick synchronously: frame callbacks, scene updates, then the tick callback.
	// Run calls this from the engine goroutine; headless drivers may call it directly.
	//
	// Parameters:
	//   - deltaTime: elapsed time since the previous tick in seconds
	Tick(deltaTime float32)

	// Render runs one render frame synchronously: every active scene renders, then the render callback.
	//
	// Parameters:
	//   - deltaTime: elapsed time since the previous frame in seconds
	Render(deltaTime float32)

	// Run starts the engine goroutines and blocks until the window closes or Quit is called.
	// Without a window only the engine tick loop runs.
	Run()

	// Quit signals all engine goroutines to stop and shuts down the engine.
	// Safe to call multiple times; subsequent calls are no-ops.
	Quit()

	// Done returns a channel closed once Quit has been called.
	Done() <-chan struct{}
}

// NewEngine creates a new Engine instance with the provided options.
// Options are applied directly to the engine struct via the option-builder pattern.
//
// Parameters:
//   - options: functional options for engine configuration (profiling, tick rate, etc.)
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		mu:               &sync.Mutex{},
		logger:           zap.NewNop(),
		tickRateChannel:  make(chan time.Duration, 1),
		quitChannel:      make(chan struct{}),
		scenes:           make(map[int]scene.Scene),
		running:          false,
		wg:               sync.WaitGroup{},
		profilingEnabled: false,
		engineTickRate:   time.Second / 60,
	}

	for _, opt := range options {
		opt(e)
	}

	if e.frames == nil {
		e.frames = frame.NewDispatcher()
	}
	if e.profiler == nil {
		e.profiler = profiler.NewProfiler(profiler.WithLogger(e.logger.Named("profiler")))
	}

	if e.window != nil {
		e.window.SetResizeCallback(func(width, height int) {
			if height <= 0 {
				return
			}
			for _, s := range e.Scenes() {
				if r := s.Renderer(); r != nil {
					r.Resize(width, height)
				}
				if c := s.Camera(); c != nil {
					c.SetAspect(float32(width) / float32(height))
				}
			}
		})
	}

	return e
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Frames() *frame.Dispatcher {
	return e.frames
}

func (e *engine) Done() <-chan struct{} {
	return e.quitChannel
}

func (e *engine) Run() {
	e.mu.Lock()
	e.running = true
	e.mu.Unlock()

	e.handle()
	if e.window != nil {
		e.window.ProcessMessages()
		e.signalQuit()
	}
	e.wg.Wait()

	// The platform window must be destroyed on the goroutine that created it.
	if e.window != nil {
		if err := e.window.Close(); err != nil {
			e.logger.Warn("failed to close window", zap.Error(err))
		}
	}
}

// Quit signals all engine goroutines to stop and shuts down the engine.
// Safe to call multiple times; subsequent calls are no-ops due to sync.Once.
func (e *engine) Quit() {
	e.signalQuit()
}

// signalQuit closes the quit channel to signal all goroutines to exit.
// Uses sync.Once to ensure the channel is only closed once.
func (e *engine) signalQuit() {
	e.quitOnce.Do(func() {
		e.mu.Lock()
		e.running = false
		e.mu.Unlock()
		close(e.quitChannel)
		if e.window != nil {
			e.window.RequestClose()
		}
	})
}

// handle launches the engine goroutine, plus the render goroutine when a window is attached.
// Each goroutine is tracked by the engine's WaitGroup.
func (e *engine) handle() {
	e.wg.Add(1)
	go e.handleEngine()
	if e.window != nil {
		e.wg.Add(1)
		go e.handleRender()
	}
}

// recoverLoop converts a panic in an engine goroutine into a logged error and a quit.
func (e *engine) recoverLoop(loop string) {
	if r := recover(); r != nil {
		e.logger.Error("goroutine recovered from panic",
			zap.String("loop", loop),
			zap.Error(fmt.Errorf("%v", r)),
		)
		e.signalQuit()
	}
}

// handleEngine runs the fixed-rate engine tick loop in its own goroutine.
// Listens for dynamic rate changes via tickRateChannel. Exits when the quit channel is closed.
func (e *engine) handleEngine() {
	defer e.wg.Done()
	defer e.recoverLoop("engine")

	ticker := time.NewTicker(e.engineTickRate)
	defer ticker.Stop()

	lastTick := time.Now()

	for {
		select {
		case <-e.quitChannel:
			return
		case <-ticker.C:
			now := time.Now()
			dt := float32(now.Sub(lastTick).Seconds())
			lastTick = now
			e.Tick(dt)
		case newRate := <-e.tickRateChannel:
			ticker.Reset(newRate)
			e.engineTickRate = newRate
		}
	}
}

func (e *engine) Tick(deltaTime float32) {
	e.frames.Dispatch(deltaTime)

	for _, s := range e.activeScenes() {
		s.PrepareFrame(deltaTime)
	}

	e.mu.Lock()
	cb := e.tickCallback
	e.mu.Unlock()
	if cb != nil {
		cb(deltaTime)
	}
}

// handleRender runs the uncapped (or frame-limited) render loop in its own goroutine.
// Recovers from panics to avoid crashing the process and signals quit on recovery.
func (e *engine) handleRender() {
	defer e.wg.Done()
	defer e.recoverLoop("render")

	lastRender := time.Now()

	for {
		select {
		case <-e.quitChannel:
			return
		default:
			now := time.Now()
			dt := float32(now.Sub(lastRender).Seconds())
			lastRender = now

			e.Render(dt)

			// Frame rate limiting
			if limit := time.Duration(e.renderFrameLimit.Load()); limit > 0 {
				elapsed := time.Since(lastRender)
				if remaining := limit - elapsed; remaining > 0 {
					time.Sleep(remaining)
				}
			}
		}
	}
}

func (e *engine) Render(deltaTime float32) {
	for _, s := range e.activeScenes() {
		if err := s.Render(); err != nil {
			e.logger.Debug("frame dropped", zap.String("scene", s.Name()), zap.Error(err))
		}
	}

	e.mu.Lock()
	cb := e.renderCallback
	profiling := e.profilingEnabled
	e.mu.Unlock()

	if cb != nil {
		cb(deltaTime)
	}
	if profiling {
		e.profiler.Tick()
	}
}

// activeScenes returns the active scenes in ascending z-index order.
func (e *engine) activeScenes() []scene.Scene {
	e.mu.Lock()
	defer e.mu.Unlock()

	keys := make([]int, 0, len(e.scenes))
	for k := range e.scenes {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	active := make([]scene.Scene, 0, len(keys))
	for _, k := range keys {
		if s := e.scenes[k]; s.Active() {
			active = append(active, s)
		}
	}
	return active
}

// EnableProfiler enables performance profiling output to the log.
func (e *engine) EnableProfiler() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.profilingEnabled = true
}

// DisableProfiler disables performance profiling output.
func (e *engine) DisableProfiler() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.profilingEnabled = false
}

// SetTickRate sets the engine tick rate in frames per second.
// If the engine is running, the change takes effect immediately.
func (e *engine) SetTickRate(fps float64) {
	if fps <= 0 {
		fps = 60
	}
	newRate := time.Duration(float64(time.Second) / fps)

	e.mu.Lock()
	running := e.running
	if !running {
		e.engineTickRate = newRate
	}
	e.mu.Unlock()

	if running {
		// Non-blocking send - if channel is full, replace the pending value
		select {
		case e.tickRateChannel <- newRate:
		default:
			select {
			case <-e.tickRateChannel:
			default:
			}
			e.tickRateChannel <- newRate
		}
	}
}

// SetTickCallback registers the function called each engine tick.
func (e *engine) SetTickCallback(callback func(deltaTime float32)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.tickCallback = callback
}

// SetRenderCallback registers the function called each render frame.
func (e *engine) SetRenderCallback(callback func(deltaTime float32)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.renderCallback = callback
}

// SetRenderFrameLimit sets an optional render frame rate cap.
// Pass 0 to uncap the render loop. Safe to call while the render loop runs.
func (e *engine) SetRenderFrameLimit(fps float64) {
	e.renderFrameLimit.Store(int64(frameDuration(fps)))
}

// frameDuration converts a frame rate cap into the minimum frame duration; fps <= 0 is uncapped.
func frameDuration(fps float64) time.Duration {
	if fps <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / fps)
}

func (e *engine) AddScene(key int, s scene.Scene) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.scenes[key] = s
}

func (e *engine) RemoveScene(key int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.scenes, key)
}

func (e *engine) Scene(key int) scene.Scene {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.scenes[key]
}

func (e *engine) Scenes() map[int]scene.Scene {
	e.mu.Lock()
	defer e.mu.Unlock()
	cp := make(map[int]scene.Scene, len(e.scenes))
	for k, v := range e.scenes {
		cp[k] = v
	}
	return cp
}
