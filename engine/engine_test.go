package engine

import (
	"sync"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-universe/engine/frame"
	"github.com/Carmen-Shannon/oxy-universe/engine/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

// recordingScene logs its lifecycle calls into a shared journal.
type recordingScene struct {
	scene.Scene
	name    string
	active  bool
	journal *[]string
}

func (s *recordingScene) Name() string { return s.name }
func (s *recordingScene) Active() bool { return s.active }
func (s *recordingScene) Render() error {
	*s.journal = append(*s.journal, "render "+s.name)
	return nil
}
func (s *recordingScene) PrepareFrame(float32) {
	*s.journal = append(*s.journal, "prepare "+s.name)
}

func TestTickOrder(t *testing.T) {
	var journal []string
	d := frame.NewDispatcher()
	e := NewEngine(
		WithFrameDispatcher(d),
		WithScene(2, &recordingScene{name: "b", active: true, journal: &journal}),
		WithScene(1, &recordingScene{name: "a", active: true, journal: &journal}),
		WithScene(3, &recordingScene{name: "off", active: false, journal: &journal}),
	)
	require.Same(t, d, e.Frames())

	d.Register(func(float32) { journal = append(journal, "frame") })
	e.SetTickCallback(func(float32) { journal = append(journal, "tick") })

	e.Tick(1.0 / 60)

	assert.Equal(t, []string{"frame", "prepare a", "prepare b", "tick"}, journal)
}

func TestRenderOrder(t *testing.T) {
	var journal []string
	e := NewEngine(
		WithScene(5, &recordingScene{name: "top", active: true, journal: &journal}),
		WithScene(0, &recordingScene{name: "base", active: true, journal: &journal}),
	)
	e.SetRenderCallback(func(float32) { journal = append(journal, "callback") })

	e.Render(1.0 / 60)

	assert.Equal(t, []string{"render base", "render top", "callback"}, journal)
}

func TestSceneRegistry(t *testing.T) {
	e := NewEngine()
	s := &recordingScene{name: "a"}
	e.AddScene(1, s)
	assert.Equal(t, s, e.Scene(1))

	scenes := e.Scenes()
	delete(scenes, 1)
	assert.NotNil(t, e.Scene(1), "Scenes returns a copy")

	e.RemoveScene(1)
	assert.Nil(t, e.Scene(1))
}

func TestHeadlessRunTicksUntilQuit(t *testing.T) {
	defer goleak.VerifyNone(t)

	e := NewEngine(WithTickRate(200))

	var mu sync.Mutex
	ticks := 0
	e.SetTickCallback(func(float32) {
		mu.Lock()
		defer mu.Unlock()
		ticks++
		if ticks == 3 {
			e.Quit()
		}
	})

	done := make(chan struct{})
	go func() {
		e.Run()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("engine did not stop after Quit")
	}

	mu.Lock()
	defer mu.Unlock()
	assert.GreaterOrEqual(t, ticks, 3)
	select {
	case <-e.Done():
	default:
		t.Fatal("Done not closed")
	}
}

func TestQuitIsIdempotent(t *testing.T) {
	e := NewEngine()
	assert.NotPanics(t, func() {
		e.Quit()
		e.Quit()
	})
}

func TestPanicInTickStopsEngine(t *testing.T) {
	defer goleak.VerifyNone(t)

	e := NewEngine(WithTickRate(200))
	e.SetTickCallback(func(float32) { panic("boom") })

	done := make(chan struct{})
	go func() {
		e.Run()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("engine did not recover from panic")
	}
}

func TestSetRenderFrameLimitWhileRendering(t *testing.T) {
	defer goleak.VerifyNone(t)

	var journal []string
	e := NewEngine(
		WithRenderFrameLimit(1000),
		WithScene(0, &recordingScene{name: "s", active: false, journal: &journal}),
	).(*engine)
	assert.Equal(t, time.Millisecond, time.Duration(e.renderFrameLimit.Load()))

	e.wg.Add(1)
	go e.handleRender()

	for i := range 50 {
		e.SetRenderFrameLimit(float64(500 + i))
		time.Sleep(100 * time.Microsecond)
	}
	e.SetRenderFrameLimit(0)
	assert.Equal(t, int64(0), e.renderFrameLimit.Load())

	e.Quit()
	e.wg.Wait()
}

func TestFrameDuration(t *testing.T) {
	assert.Equal(t, time.Duration(0), frameDuration(0))
	assert.Equal(t, time.Duration(0), frameDuration(-30))
	assert.Equal(t, 20*time.Millisecond, frameDuration(50))
}
