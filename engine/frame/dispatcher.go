// Package frame provides the per-frame callback registry that stands in for a
// render surface's "next frame" notification. Callbacks are registered with a
// ticket and cancelled through the returned function.
package frame

import (
	"sort"
	"sync"
)

// Callback is invoked once per dispatched frame with the elapsed time in seconds.
type Callback func(deltaTime float32)

// Dispatcher fans a frame tick out to every registered callback.
// Safe for concurrent use: callbacks may register new callbacks or cancel any
// registration (including their own) while a dispatch is in progress.
type Dispatcher struct {
	mu        *sync.Mutex
	nextID    uint64
	callbacks map[uint64]Callback
	frames    uint64
}

// NewDispatcher creates an empty Dispatcher.
//
// Returns:
//   - *Dispatcher: the newly created dispatcher
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		mu:        &sync.Mutex{},
		callbacks: make(map[uint64]Callback),
	}
}

// Register adds a callback to be invoked on every subsequent Dispatch.
// The returned cancel function removes the registration; calling it more than once is a no-op.
//
// Parameters:
//   - cb: the callback to register
//
// Returns:
//   - func(): cancels the registration
func (d *Dispatcher) Register(cb func(deltaTime float32)) (cancel func()) {
	d.mu.Lock()
	d.nextID++
	id := d.nextID
	d.callbacks[id] = cb
	d.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			d.mu.Lock()
			delete(d.callbacks, id)
			d.mu.Unlock()
		})
	}
}

// Dispatch invokes every callback registered before the call, in registration order.
// A callback cancelled by an earlier callback in the same dispatch is skipped.
// Callbacks registered during the dispatch first run on the next one.
//
// Parameters:
//   - deltaTime: elapsed time since the previous frame in seconds
func (d *Dispatcher) Dispatch(deltaTime float32) {
	d.mu.Lock()
	d.frames++
	ids := make([]uint64, 0, len(d.callbacks))
	for id := range d.callbacks {
		ids = append(ids, id)
	}
	d.mu.Unlock()

	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, id := range ids {
		d.mu.Lock()
		cb, ok := d.callbacks[id]
		d.mu.Unlock()
		if !ok {
			continue
		}
		cb(deltaTime)
	}
}

// Len returns the number of live registrations.
func (d *Dispatcher) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.callbacks)
}

// Frames returns the number of Dispatch calls made so far.
func (d *Dispatcher) Frames() uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.frames
}
