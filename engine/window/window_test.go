package window

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToNDC(t *testing.T) {
	x, y := ToNDC(0, 0, 100, 100)
	assert.InDelta(t, -0.99, x, 1e-5)
	assert.InDelta(t, 0.99, y, 1e-5)

	x, y = ToNDC(99, 99, 100, 100)
	assert.InDelta(t, 0.99, x, 1e-5)
	assert.InDelta(t, -0.99, y, 1e-5)

	x, y = ToNDC(640, 360, 1280, 720)
	assert.InDelta(t, 0, x, 2e-3)
	assert.InDelta(t, 0, y, 3e-3)

	x, y = ToNDC(10, 10, 0, 0)
	assert.Zero(t, x)
	assert.Zero(t, y)
}

func TestWindowOptions(t *testing.T) {
	w := newEngineWindow()
	assert.Equal(t, "Universe", w.title)
	assert.Equal(t, 1280, w.width)
	assert.Equal(t, 720, w.height)

	w = newEngineWindow(WithTitle("Communities"), WithWidth(1920), WithHeight(1080))
	assert.Equal(t, "Communities", w.title)
	assert.Equal(t, 1920, w.width)
	assert.Equal(t, 1080, w.height)
}

func TestWindowOptionsKeepUsableSize(t *testing.T) {
	w := newEngineWindow(WithTitle(""), WithWidth(0), WithHeight(-5))
	assert.Equal(t, "Universe", w.title)
	assert.Equal(t, 1280, w.width)
	assert.Equal(t, 720, w.height)

	w = newEngineWindow(WithWidth(100), WithHeight(50))
	assert.Equal(t, MinWidth, w.width)
	assert.Equal(t, MinHeight, w.height)
}
