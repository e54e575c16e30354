package tui

import (
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-universe/engine"
	"github.com/Carmen-Shannon/oxy-universe/engine/camera"
	"github.com/Carmen-Shannon/oxy-universe/universe"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type harness struct {
	eng     engine.Engine
	session universe.Session
	model   Model
	clock   time.Time
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	communities := []universe.Community{
		{Name: "Tech Pioneers", Category: "Technology", Members: 45230, Anchor: mgl32.Vec3{-8, 4, -5}},
		{Name: "Gaming Nebula", Category: "Gaming", Members: 67890, Anchor: mgl32.Vec3{10, 5, -3}},
		{Name: "Code Cluster", Category: "Technology", Members: 52300, Anchor: mgl32.Vec3{-10, -6, 0}},
	}
	eng := engine.NewEngine()
	cam := camera.NewCameraController()
	transition := camera.NewTransitionController(
		camera.WithSteerableCamera(cam),
		camera.WithFrameSource(eng.Frames()),
	)
	session := universe.NewSession(communities, transition)
	eng.SetTickCallback(session.Update)

	h := &harness{
		eng:     eng,
		session: session,
		model:   NewModel(eng, session, cam, 60),
		clock:   time.Unix(1000, 0),
	}
	h.send(frameMsg{at: h.clock})
	return h
}

func (h *harness) send(msg tea.Msg) tea.Cmd {
	next, cmd := h.model.Update(msg)
	h.model = next.(Model)
	return cmd
}

func (h *harness) advance(d time.Duration) {
	h.clock = h.clock.Add(d)
	h.send(frameMsg{at: h.clock})
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestFrameMessagesTickEngine(t *testing.T) {
	h := newHarness(t)
	before := h.eng.Frames().Frames()

	cmd := h.send(frameMsg{at: h.clock.Add(16 * time.Millisecond)})

	assert.NotNil(t, cmd, "each frame schedules the next")
	assert.Equal(t, before+1, h.eng.Frames().Frames())
}

func TestDigitClicksPlanet(t *testing.T) {
	h := newHarness(t)

	h.send(runes("2"))

	idx, ok := h.session.Selected()
	require.True(t, ok)
	assert.Equal(t, 1, idx)
	assert.Equal(t, camera.Traveling, h.session.Transition().State())
	assert.Contains(t, h.model.statusMsg, "Gaming Nebula")

	h.send(runes("1"))
	assert.Equal(t, "Hold on, still flying", h.model.statusMsg)

	for i := 0; i < 6; i++ {
		h.advance(250 * time.Millisecond)
	}
	assert.Equal(t, camera.Idle, h.session.Transition().State())
}

func TestSearchSelectsSuggestionWithSpin(t *testing.T) {
	h := newHarness(t)

	h.send(runes("/"))
	require.True(t, h.model.searching)
	h.send(runes("code"))
	assert.Equal(t, "code", h.session.Query())

	h.advance(210 * time.Millisecond)
	require.Len(t, h.session.Suggestions(), 1)

	h.send(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 0, h.model.cursor)
	h.send(tea.KeyMsg{Type: tea.KeyEnter})

	assert.False(t, h.model.searching)
	assert.Equal(t, camera.Spinning, h.session.Transition().State())
	idx, _ := h.session.Selected()
	assert.Equal(t, 2, idx)
}

func TestEscapeReturnsToUniverse(t *testing.T) {
	h := newHarness(t)
	h.send(runes("1"))
	h.advance(100 * time.Millisecond)

	h.send(tea.KeyMsg{Type: tea.KeyEsc})

	assert.Equal(t, camera.Idle, h.session.Transition().State())
	_, ok := h.session.Selected()
	assert.False(t, ok)
	assert.False(t, h.session.Locked())
}

func TestQuitKey(t *testing.T) {
	h := newHarness(t)
	cmd := h.send(runes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestViewShowsPlanetsAndCamera(t *testing.T) {
	h := newHarness(t)
	h.send(tea.WindowSizeMsg{Width: 120, Height: 40})
	h.send(runes("3"))

	view := h.model.View()
	assert.Contains(t, view, "UNIVERSE")
	assert.Contains(t, view, "Tech Pioneers")
	assert.Contains(t, view, "traveling")
	assert.Contains(t, view, "Centered on Code Cluster. Press Escape to return.")
}
