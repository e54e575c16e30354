package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEaseOutCubic(t *testing.T) {
	assert.Equal(t, float32(0), EaseOutCubic(0))
	assert.Equal(t, float32(1), EaseOutCubic(1))
	assert.InDelta(t, 0.875, EaseOutCubic(0.5), 1e-6)

	// clamped
	assert.Equal(t, float32(0), EaseOutCubic(-2))
	assert.Equal(t, float32(1), EaseOutCubic(3))

	prev := float32(0)
	for i := 1; i <= 100; i++ {
		v := EaseOutCubic(float32(i) / 100)
		assert.GreaterOrEqual(t, v, prev)
		prev = v
	}
}

func TestEaseOutCubicIntegral(t *testing.T) {
	assert.Equal(t, float32(0), EaseOutCubicIntegral(0))
	assert.InDelta(t, 0.25, EaseOutCubicIntegral(1), 1e-6)
	assert.InDelta(t, 0.25, EaseOutCubicIntegral(4), 1e-6)
	assert.InDelta(t, (1-0.0625)/4, EaseOutCubicIntegral(0.5), 1e-6)

	// Riemann sum of 1 - EaseOutCubic over [0, 0.5]
	const steps = 10000
	sum := float32(0)
	for i := 0; i < steps; i++ {
		u := (float32(i) + 0.5) / steps * 0.5
		sum += (1 - EaseOutCubic(u)) * 0.5 / steps
	}
	assert.InDelta(t, EaseOutCubicIntegral(0.5), sum, 1e-3)
}

func TestClamp(t *testing.T) {
	assert.Equal(t, float32(0.5), Clamp01(0.5))
	assert.Equal(t, float32(0), Clamp01(-0.1))
	assert.Equal(t, float32(1), Clamp01(1.1))

	assert.Equal(t, 5, Clamp(7, 1, 5))
	assert.Equal(t, 1, Clamp(-3, 1, 5))
	assert.Equal(t, 3, Clamp(3, 1, 5))
}

func TestCoalesce(t *testing.T) {
	assert.Equal(t, "b", Coalesce("", "b", "c"))
	assert.Equal(t, "", Coalesce("", ""))
	assert.Equal(t, 2, Coalesce(0, 2))
}

func TestDigitIndex(t *testing.T) {
	assert.Equal(t, 0, DigitIndex(Key1))
	assert.Equal(t, 8, DigitIndex(Key9))
	assert.Equal(t, -1, DigitIndex(Key0))
	assert.Equal(t, -1, DigitIndex(KeyEsc))
}
