package game_object

import (
	"math"
	"sync"
	"sync/atomic"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	// HighlightScale is the scale a hovered or selected body grows toward.
	HighlightScale float32 = 1.15
	// ScaleLerpFactor is the fraction of the remaining scale gap closed each frame.
	ScaleLerpFactor float32 = 0.1
	// FloatAmplitude is the height of the vertical bob in world units.
	FloatAmplitude float32 = 0.3
	// FloatFrequency is the angular frequency of the vertical bob in radians per second.
	FloatFrequency float32 = 0.5
	// SpinSpeed is the self-rotation rate about Y in radians per second.
	SpinSpeed float32 = 0.2

	dimmedOpacity float32 = 0.3
)

type gameObject struct {
	mu *sync.Mutex

	id      uint64
	enabled atomic.Bool
	name    string
	color   string

	anchor      mgl32.Vec3
	size        float32
	orbitSpeed  float32
	orbitRadius float32

	orbitAngle float32
	position   mgl32.Vec3
	rotation   mgl32.Vec3
	scale      float32

	hovered  bool
	selected bool
	dimmed   bool
}

// GameObject defines a planet body in the universe scene. A body circles its anchor on
// the XZ plane, bobs vertically, spins about Y and grows when hovered or selected.
// All accessors are safe for concurrent use; Update is called from the scene's worker pool.
type GameObject interface {
	// ID returns the object's unique identifier.
	//
	// Returns:
	//   - uint64: the object ID
	ID() uint64

	// SetID sets the object's unique identifier.
	//
	// Parameters:
	//   - id: the ID to assign
	SetID(id uint64)

	// Name returns the display name of the body.
	Name() string

	// Color returns the body's display color as a hex string.
	Color() string

	// Enabled returns whether this object is enabled for updates, culling and picking.
	//
	// Returns:
	//   - bool: true if enabled
	Enabled() bool

	// SetEnabled sets whether the object is enabled.
	//
	// Parameters:
	//   - enabled: true to enable
	SetEnabled(enabled bool)

	// Anchor returns the fixed point the body orbits. Camera transitions focus on the anchor.
	//
	// Returns:
	//   - mgl32.Vec3: the anchor in world space
	Anchor() mgl32.Vec3

	// Position returns the body's current world-space position.
	//
	// Returns:
	//   - mgl32.Vec3: the current position
	Position() mgl32.Vec3

	// Rotation returns the body's current Euler rotation in radians.
	Rotation() mgl32.Vec3

	// Scale returns the body's current uniform scale.
	Scale() float32

	// Size returns the unscaled radius of the body.
	Size() float32

	// BoundingRadius returns the radius used for culling and picking (size * scale).
	//
	// Returns:
	//   - float32: the scaled radius
	BoundingRadius() float32

	// OrbitAngle returns the current angle around the anchor in radians.
	OrbitAngle() float32

	// OrbitSpeed returns the orbit angular speed in radians per second.
	OrbitSpeed() float32

	// OrbitRadius returns the distance from the anchor on the XZ plane.
	OrbitRadius() float32

	// Hovered reports whether the pointer is over the body.
	Hovered() bool

	// SetHovered sets the hover flag.
	//
	// Parameters:
	//   - hovered: true while the pointer is over the body
	SetHovered(hovered bool)

	// Selected reports whether the body is the current selection.
	Selected() bool

	// SetSelected sets the selection flag.
	//
	// Parameters:
	//   - selected: true if the body is selected
	SetSelected(selected bool)

	// Dimmed reports whether the body is faded because another body is selected.
	Dimmed() bool

	// SetDimmed sets the dimmed flag.
	//
	// Parameters:
	//   - dimmed: true to fade the body
	SetDimmed(dimmed bool)

	// Opacity returns 0.3 for dimmed bodies and 1 otherwise.
	Opacity() float32

	// Update advances orbit, bob, spin and highlight scale.
	//
	// Parameters:
	//   - deltaTime: elapsed time since the last update in seconds
	//   - elapsed: total scene time in seconds, drives the vertical bob
	Update(deltaTime, elapsed float32)
}

var _ GameObject = &gameObject{}

// NewGameObject creates a new body configured with the given options.
// The body starts enabled at unit scale, placed on its orbit at the configured phase.
//
// Parameters:
//   - options: functional options to configure the object
//
// Returns:
//   - GameObject: the newly created object
func NewGameObject(options ...GameObjectBuilderOption) GameObject {
	obj := &gameObject{
		mu:    &sync.Mutex{},
		size:  1,
		scale: 1,
	}
	obj.enabled.Store(true)
	for _, option := range options {
		option(obj)
	}
	obj.place(0)
	return obj
}

// place recomputes position from the orbit angle and bob phase.
// Caller must hold the mutex or own the object exclusively.
func (g *gameObject) place(elapsed float32) {
	sin, cos := math.Sincos(float64(g.orbitAngle))
	g.position = mgl32.Vec3{
		g.anchor[0] + float32(cos)*g.orbitRadius,
		g.anchor[1] + float32(math.Sin(float64(elapsed*FloatFrequency)))*FloatAmplitude,
		g.anchor[2] + float32(sin)*g.orbitRadius,
	}
}

func (g *gameObject) ID() uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.id
}

func (g *gameObject) SetID(id uint64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.id = id
}

func (g *gameObject) Name() string {
	return g.name
}

func (g *gameObject) Color() string {
	return g.color
}

func (g *gameObject) Enabled() bool {
	return g.enabled.Load()
}

func (g *gameObject) SetEnabled(enabled bool) {
	g.enabled.Store(enabled)
}

func (g *gameObject) Anchor() mgl32.Vec3 {
	return g.anchor
}

func (g *gameObject) Position() mgl32.Vec3 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.position
}

func (g *gameObject) Rotation() mgl32.Vec3 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rotation
}

func (g *gameObject) Scale() float32 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.scale
}

func (g *gameObject) Size() float32 {
	return g.size
}

func (g *gameObject) BoundingRadius() float32 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.size * g.scale
}

func (g *gameObject) OrbitAngle() float32 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.orbitAngle
}

func (g *gameObject) OrbitSpeed() float32 {
	return g.orbitSpeed
}

func (g *gameObject) OrbitRadius() float32 {
	return g.orbitRadius
}

func (g *gameObject) Hovered() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.hovered
}

func (g *gameObject) SetHovered(hovered bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.hovered = hovered
}

func (g *gameObject) Selected() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.selected
}

func (g *gameObject) SetSelected(selected bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.selected = selected
}

func (g *gameObject) Dimmed() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.dimmed
}

func (g *gameObject) SetDimmed(dimmed bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.dimmed = dimmed
}

func (g *gameObject) Opacity() float32 {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.dimmed {
		return dimmedOpacity
	}
	return 1
}

func (g *gameObject) Update(deltaTime, elapsed float32) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.orbitAngle += g.orbitSpeed * deltaTime
	g.place(elapsed)
	g.rotation[1] += deltaTime * SpinSpeed

	target := float32(1)
	if g.hovered || g.selected {
		target = HighlightScale
	}
	g.scale += (target - g.scale) * ScaleLerpFactor
}
