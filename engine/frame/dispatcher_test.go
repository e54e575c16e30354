package frame

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDispatcherRunsInRegistrationOrder(t *testing.T) {
	d := NewDispatcher()
	var order []int
	for i := range 3 {
		d.Register(func(float32) { order = append(order, i) })
	}

	d.Dispatch(0.016)
	assert.Equal(t, []int{0, 1, 2}, order)
	assert.Equal(t, uint64(1), d.Frames())
}

func TestDispatcherCancel(t *testing.T) {
	d := NewDispatcher()
	calls := 0
	cancel := d.Register(func(float32) { calls++ })

	d.Dispatch(1)
	cancel()
	cancel()
	d.Dispatch(1)

	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, d.Len())
}

func TestDispatcherCallbackCancelsAnother(t *testing.T) {
	d := NewDispatcher()
	secondCalls := 0
	var cancelSecond func()
	d.Register(func(float32) { cancelSecond() })
	cancelSecond = d.Register(func(float32) { secondCalls++ })

	d.Dispatch(1)
	assert.Equal(t, 0, secondCalls)
	assert.Equal(t, 1, d.Len())
}

func TestDispatcherRegisterDuringDispatchRunsNextFrame(t *testing.T) {
	d := NewDispatcher()
	var got []float32
	var cancel func()
	cancel = d.Register(func(float32) {
		cancel()
		d.Register(func(dt float32) { got = append(got, dt) })
	})

	d.Dispatch(1)
	assert.Empty(t, got)

	d.Dispatch(2)
	assert.Equal(t, []float32{2}, got)
}
