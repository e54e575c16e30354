package game_object

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestGameObjectOrbitAndFloat(t *testing.T) {
	obj := NewGameObject(
		WithAnchor(mgl32.Vec3{-8, 4, -5}),
		WithOrbit(0.5, 2, 0),
	)
	assert.InDelta(t, -6, obj.Position()[0], 1e-5)
	assert.True(t, obj.Enabled())

	// A quarter orbit takes pi seconds at 0.5 rad/s.
	obj.Update(math.Pi, math.Pi)

	pos := obj.Position()
	assert.InDelta(t, -8, pos[0], 1e-4)
	assert.InDelta(t, -3, pos[2], 1e-4)
	assert.InDelta(t, 4+math.Sin(math.Pi*0.5)*0.3, pos[1], 1e-4)
	assert.InDelta(t, math.Pi*0.2, obj.Rotation()[1], 1e-4)
	assert.Equal(t, mgl32.Vec3{-8, 4, -5}, obj.Anchor())
}

func TestGameObjectHighlightScale(t *testing.T) {
	obj := NewGameObject(WithSize(0.8))

	obj.SetHovered(true)
	obj.Update(0.016, 0)
	assert.InDelta(t, 1.015, obj.Scale(), 1e-5)

	for range 200 {
		obj.Update(0.016, 0)
	}
	assert.InDelta(t, HighlightScale, obj.Scale(), 1e-3)
	assert.InDelta(t, 0.8*HighlightScale, obj.BoundingRadius(), 1e-3)

	obj.SetHovered(false)
	obj.SetSelected(true)
	obj.Update(0.016, 0)
	assert.InDelta(t, HighlightScale, obj.Scale(), 1e-3)

	obj.SetSelected(false)
	for range 200 {
		obj.Update(0.016, 0)
	}
	assert.InDelta(t, 1, obj.Scale(), 1e-3)
}

func TestGameObjectOpacity(t *testing.T) {
	obj := NewGameObject(WithName("Tech Pioneers"), WithColor("#8B5CF6"))
	assert.Equal(t, float32(1), obj.Opacity())

	obj.SetDimmed(true)
	assert.Equal(t, float32(0.3), obj.Opacity())
	assert.Equal(t, "Tech Pioneers", obj.Name())
	assert.Equal(t, "#8B5CF6", obj.Color())
}
