package scene

import (
	"math"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-universe/common"
	"github.com/Carmen-Shannon/oxy-universe/engine/camera"
	"github.com/Carmen-Shannon/oxy-universe/engine/game_object"
	"github.com/Carmen-Shannon/oxy-universe/engine/renderer"
	"github.com/lucasb-eyer/go-colorful"
	"go.uber.org/zap"
)

// Scene manages the planets of one universe view together with the Camera that looks at
// them and an optional Renderer that presents frames.
// Scenes can be hot-swapped via the Active flag to switch between different views.
// Thread-safe for concurrent access.
type Scene interface {
	// Name returns the scene's identifier.
	Name() string

	// SetName sets the scene's identifier.
	SetName(name string)

	// Active returns whether this scene is currently active for updates and rendering.
	Active() bool

	// SetActive sets whether this scene is active.
	SetActive(active bool)

	// Camera returns the scene's camera.
	Camera() camera.Camera

	// SetCamera replaces the scene's camera.
	//
	// Parameters:
	//   - cam: the new camera
	SetCamera(cam camera.Camera)

	// Renderer returns the scene's renderer, or nil when the scene is headless.
	Renderer() renderer.Renderer

	// SetRenderer replaces the scene's renderer.
	//
	// Parameters:
	//   - r: the new renderer, or nil for a headless scene
	SetRenderer(r renderer.Renderer)

	// Count returns the number of planets in the scene.
	//
	// Returns:
	//   - int: count of registered objects
	Count() int

	// Add registers a planet with the scene. Objects without an ID are assigned the next free one.
	//
	// Parameters:
	//   - obj: the GameObject to add
	//
	// Returns:
	//   - uint64: the object's ID
	Add(obj game_object.GameObject) uint64

	// Get retrieves a planet by its ID. Returns nil if not found.
	//
	// Parameters:
	//   - id: the object's unique ID
	//
	// Returns:
	//   - game_object.GameObject: the object or nil
	Get(id uint64) game_object.GameObject

	// Remove removes a planet by ID.
	//
	// Parameters:
	//   - id: the object's unique ID
	Remove(id uint64)

	// Objects returns every planet ordered by ID.
	//
	// Returns:
	//   - []game_object.GameObject: the registered objects
	Objects() []game_object.GameObject

	// Clear removes all planets from the scene.
	Clear()

	// Elapsed returns the scene time accumulated by PrepareFrame in seconds.
	Elapsed() float32

	// PrepareFrame advances the camera's ambient rotation, updates every enabled planet on the
	// worker pool and recomputes the camera matrices. Inactive scenes are skipped.
	//
	// Parameters:
	//   - deltaTime: elapsed time since the last frame in seconds
	PrepareFrame(deltaTime float32)

	// VisibleObjects returns the enabled planets whose bounding spheres intersect the camera frustum.
	//
	// Returns:
	//   - []game_object.GameObject: visible objects ordered by ID
	VisibleObjects() []game_object.GameObject

	// Pick returns the nearest enabled planet under a point in normalized device coordinates,
	// or nil if the ray misses every planet.
	//
	// Parameters:
	//   - ndcX: horizontal NDC coordinate in [-1, 1]
	//   - ndcY: vertical NDC coordinate in [-1, 1], +Y up
	//
	// Returns:
	//   - game_object.GameObject: the hit object or nil
	Pick(ndcX, ndcY float32) game_object.GameObject

	// Hover picks at the given point and marks the hit planet as hovered, clearing the flag on all others.
	//
	// Parameters:
	//   - ndcX: horizontal NDC coordinate in [-1, 1]
	//   - ndcY: vertical NDC coordinate in [-1, 1], +Y up
	//
	// Returns:
	//   - game_object.GameObject: the hovered object or nil
	Hover(ndcX, ndcY float32) game_object.GameObject

	// Render draws the visible planets through the scene's renderer, each as a sphere of its
	// bounding radius tinted by its color and opacity. No-op for headless scenes.
	//
	// Returns:
	//   - error: error if the frame could not be presented
	Render() error
}

type scene struct {
	mu     *sync.RWMutex
	logger *zap.Logger

	name   string
	active bool

	registry map[uint64]game_object.GameObject
	nextID   uint64
	elapsed  float32

	cam camera.Camera
	r   renderer.Renderer

	// updatePool fans planet updates out across a bounded set of reusable goroutines.
	// Workers persist across frames, avoiding per-frame goroutine spawn/teardown overhead.
	updatePool    worker.DynamicWorkerPool
	updateWorkers int
}

// Ensure scene implements Scene interface.
var _ Scene = &scene{}

// NewScene creates a new Scene looking through the given camera. The camera is required
// and NewScene panics if it is nil. A renderer is optional and attached with WithRenderer.
//
// Parameters:
//   - name: the name of the scene
//   - cam: the camera to attach (must not be nil)
//   - options: functional options to further configure the scene
//
// Returns:
//   - Scene: the newly created scene
func NewScene(name string, cam camera.Camera, options ...SceneBuilderOption) Scene {
	if cam == nil {
		panic("scene: NewScene requires a non-nil Camera")
	}

	s := &scene{
		mu:            &sync.RWMutex{},
		logger:        zap.NewNop(),
		name:          name,
		active:        false,
		cam:           cam,
		registry:      make(map[uint64]game_object.GameObject),
		nextID:        1,
		updateWorkers: max(runtime.NumCPU()-1, 1),
	}

	for _, option := range options {
		option(s)
	}

	// Initialize the pool after options so WithUpdateWorkers can override the default.
	// Queue size of 256 comfortably covers a universe's planet count.
	s.updatePool = worker.NewDynamicWorkerPool(s.updateWorkers, 256, 1*time.Second)
	s.logger.Debug("scene created",
		zap.String("scene", name),
		zap.Int("workers", s.updateWorkers),
		zap.Int("objects", len(s.registry)),
	)

	return s
}

func (s *scene) Name() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.name
}

func (s *scene) SetName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.name = name
}

func (s *scene) Active() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

func (s *scene) SetActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = active
}

func (s *scene) Camera() camera.Camera {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cam
}

func (s *scene) SetCamera(cam camera.Camera) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cam = cam
}

func (s *scene) Renderer() renderer.Renderer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.r
}

func (s *scene) SetRenderer(r renderer.Renderer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.r = r
}

func (s *scene) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.registry)
}

func (s *scene) Add(obj game_object.GameObject) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.add(obj)
}

// add registers obj, assigning an ID when it has none.
// Caller must hold the write lock or own the scene exclusively.
func (s *scene) add(obj game_object.GameObject) uint64 {
	id := obj.ID()
	if id == 0 {
		id = s.nextID
		obj.SetID(id)
	}
	if id >= s.nextID {
		s.nextID = id + 1
	}
	s.registry[id] = obj
	return id
}

func (s *scene) Get(id uint64) game_object.GameObject {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.registry[id]
}

func (s *scene) Remove(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.registry, id)
}

func (s *scene) Objects() []game_object.GameObject {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sortedObjects()
}

// sortedObjects returns the registry ordered by ID.
// Caller must hold at least the read lock.
func (s *scene) sortedObjects() []game_object.GameObject {
	objs := make([]game_object.GameObject, 0, len(s.registry))
	for _, obj := range s.registry {
		objs = append(objs, obj)
	}
	sort.Slice(objs, func(i, j int) bool { return objs[i].ID() < objs[j].ID() })
	return objs
}

func (s *scene) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.registry = make(map[uint64]game_object.GameObject)
}

func (s *scene) Elapsed() float32 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.elapsed
}

func (s *scene) PrepareFrame(deltaTime float32) {
	s.mu.Lock()
	if !s.active {
		s.mu.Unlock()
		return
	}
	s.elapsed += deltaTime
	elapsed := s.elapsed
	cam := s.cam
	objs := make([]game_object.GameObject, 0, len(s.registry))
	for _, obj := range s.registry {
		if obj.Enabled() {
			objs = append(objs, obj)
		}
	}
	s.mu.Unlock()

	if cam != nil {
		if ctrl := cam.Controller(); ctrl != nil {
			ctrl.Update(deltaTime)
		}
	}

	// Fan planet updates out to the pool. A WaitGroup provides the per-frame barrier
	// since pool.Wait() blocks until workers idle-exit.
	var wg sync.WaitGroup
	for i, obj := range objs {
		wg.Add(1)
		s.updatePool.SubmitTask(worker.Task{
			ID: i,
			Do: func() (any, error) {
				defer wg.Done()
				obj.Update(deltaTime, elapsed)
				return nil, nil
			},
		})
	}
	wg.Wait()

	if cam != nil {
		cam.Update()
	}
}

func (s *scene) VisibleObjects() []game_object.GameObject {
	s.mu.RLock()
	defer s.mu.RUnlock()

	objs := s.sortedObjects()
	if s.cam == nil {
		return nil
	}
	vp := s.cam.ViewProjectionMatrix()
	frustum := common.ExtractFrustumFromMatrix(vp[:])

	visible := objs[:0]
	for _, obj := range objs {
		if obj.Enabled() && frustum.ContainsSphere(obj.Position(), obj.BoundingRadius()) {
			visible = append(visible, obj)
		}
	}
	return visible
}

func (s *scene) Pick(ndcX, ndcY float32) game_object.GameObject {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pick(ndcX, ndcY)
}

// pick casts a ray through the camera and returns the nearest enabled object it hits.
// Caller must hold at least the read lock.
func (s *scene) pick(ndcX, ndcY float32) game_object.GameObject {
	if s.cam == nil {
		return nil
	}
	origin, dir := s.cam.Ray(ndcX, ndcY)

	var hit game_object.GameObject
	nearest := float32(math.MaxFloat32)
	for _, obj := range s.sortedObjects() {
		if !obj.Enabled() {
			continue
		}
		if t, ok := raySphere(origin, dir, obj.Position(), obj.BoundingRadius()); ok && t < nearest {
			nearest = t
			hit = obj
		}
	}
	return hit
}

func (s *scene) Hover(ndcX, ndcY float32) game_object.GameObject {
	s.mu.RLock()
	defer s.mu.RUnlock()

	hit := s.pick(ndcX, ndcY)
	for _, obj := range s.registry {
		obj.SetHovered(obj == hit)
	}
	return hit
}

func (s *scene) Render() error {
	s.mu.RLock()
	r := s.r
	active := s.active
	cam := s.cam
	s.mu.RUnlock()

	if r == nil || !active || cam == nil {
		return nil
	}

	frame := renderer.Frame{ViewProjection: cam.ViewProjectionMatrix()}
	if ctrl := cam.Controller(); ctrl != nil {
		frame.CameraPosition = ctrl.Position()
	}
	visible := s.VisibleObjects()
	frame.Planets = make([]renderer.PlanetInstance, 0, len(visible))
	for _, obj := range visible {
		frame.Planets = append(frame.Planets, planetInstance(obj))
	}
	return r.RenderFrame(frame)
}

// highlightBlend is how far hovered and selected planets are lifted toward white.
const highlightBlend = 0.3

// planetInstance converts a planet into its GPU instance. Unparseable colors draw white.
func planetInstance(obj game_object.GameObject) renderer.PlanetInstance {
	c, err := colorful.Hex(obj.Color())
	if err != nil {
		c = colorful.Color{R: 1, G: 1, B: 1}
	}
	if obj.Hovered() || obj.Selected() {
		c = c.BlendRgb(colorful.Color{R: 1, G: 1, B: 1}, highlightBlend)
	}
	r, g, b := c.LinearRgb()
	return renderer.PlanetInstance{
		Center: obj.Position(),
		Radius: obj.BoundingRadius(),
		Color:  [4]float32{float32(r), float32(g), float32(b), obj.Opacity()},
	}
}
