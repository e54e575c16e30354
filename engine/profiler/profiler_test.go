package profiler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time { return c.t }

func TestTickReportsOncePerInterval(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	clock := &fakeClock{t: time.Unix(0, 0)}
	p := NewProfiler(WithLogger(zap.New(core)), withClock(clock.now))

	for i := 0; i < 29; i++ {
		clock.t = clock.t.Add(time.Second / 60)
		assert.False(t, p.Tick())
	}
	clock.t = clock.t.Add(600 * time.Millisecond)
	require.True(t, p.Tick())

	assert.InDelta(t, 30/(29.0/60+0.6), p.Last().FPS, 1e-4)
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "profiler", logs.All()[0].Message)
	assert.Contains(t, logs.All()[0].ContextMap(), "fps")
}

func TestCustomInterval(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	p := NewProfiler(WithInterval(100*time.Millisecond), withClock(clock.now))

	clock.t = clock.t.Add(100 * time.Millisecond)
	assert.True(t, p.Tick())
	assert.InDelta(t, 10, p.Last().FPS, 1e-9)
}
