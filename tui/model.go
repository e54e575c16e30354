// Package tui is a terminal front-end for the universe: a planet list, a search box and
// a live readout of the camera as focus animations run.
package tui

import (
	"errors"
	"fmt"
	"time"

	"github.com/Carmen-Shannon/oxy-universe/engine"
	"github.com/Carmen-Shannon/oxy-universe/engine/camera"
	"github.com/Carmen-Shannon/oxy-universe/universe"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// maxFrameDelta caps the time fed to the engine after a stall, such as a suspended terminal.
const maxFrameDelta = 0.25

// Model is the root bubbletea model. The engine is ticked from frame messages so the
// camera transition advances on the same clock the terminal redraws on.
type Model struct {
	eng     engine.Engine
	session universe.Session
	cam     camera.CameraController

	frameInterval time.Duration
	lastFrame     time.Time

	// UI state
	input     textinput.Model
	searching bool
	cursor    int
	width     int
	height    int

	// Status
	statusMsg string
	err       error
}

// frameMsg drives one engine tick.
type frameMsg struct {
	at time.Time
}

// NewModel creates a terminal model.
//
// Parameters:
//   - eng: a headless engine whose Tick advances frames and scenes
//   - session: the universe session receiving selections
//   - cam: the orbit camera shown in the readout
//   - tickRate: frames per second (<= 0 means 60)
//
// Returns:
//   - Model: the model
func NewModel(eng engine.Engine, session universe.Session, cam camera.CameraController, tickRate float64) Model {
	if tickRate <= 0 {
		tickRate = 60
	}
	ti := textinput.New()
	ti.Placeholder = "Search communities..."
	ti.CharLimit = 64
	ti.Width = 32
	ti.Prompt = "/ "

	return Model{
		eng:           eng,
		session:       session,
		cam:           cam,
		frameInterval: time.Duration(float64(time.Second) / tickRate),
		cursor:        -1,
		input:         ti,
		statusMsg:     fmt.Sprintf("%d communities", len(session.Communities())),
	}
}

func (m Model) Init() tea.Cmd {
	return m.nextFrame()
}

func (m Model) nextFrame() tea.Cmd {
	return tea.Tick(m.frameInterval, func(t time.Time) tea.Msg {
		return frameMsg{at: t}
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case frameMsg:
		if !m.lastFrame.IsZero() {
			dt := min(msg.at.Sub(m.lastFrame).Seconds(), maxFrameDelta)
			if dt > 0 {
				m.eng.Tick(float32(dt))
			}
		}
		m.lastFrame = msg.at
		m.clampCursor()
		return m, m.nextFrame()

	case tea.KeyMsg:
		if m.searching {
			return m.handleSearchKey(msg)
		}
		return m.handleKey(msg)
	}

	return m, nil
}

// handleKey routes keys while the search box is closed.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	switch key {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "esc":
		m.escape()
		return m, nil

	case "/":
		m.searching = true
		m.cursor = -1
		return m, m.input.Focus()

	case "left":
		m.cam.OrbitLeft()
	case "right":
		m.cam.OrbitRight()
	case "up":
		m.cam.OrbitUp()
	case "down":
		m.cam.OrbitDown()
	case "+", "=":
		m.cam.Zoom(1)
	case "-":
		m.cam.Zoom(-1)

	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		index := int(key[0] - '1')
		_, err := m.session.PlanetClick(index)
		m.report(err, "Flying to")
	}
	return m, nil
}

// handleSearchKey routes keys while the search box has focus.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "esc":
		m.escape()
		return m, nil

	case "down":
		if n := len(m.session.Suggestions()); m.cursor < n-1 {
			m.cursor++
		}
		return m, nil

	case "up":
		if m.cursor >= 0 {
			m.cursor--
		}
		return m, nil

	case "enter":
		suggestions := m.session.Suggestions()
		if m.cursor < 0 || m.cursor >= len(suggestions) {
			return m, nil
		}
		_, err := m.session.SearchSelect(suggestions[m.cursor].Index)
		m.report(err, "Spinning to")
		if err == nil {
			m.closeSearch()
		}
		return m, nil
	}

	var cmd tea.Cmd
	before := m.input.Value()
	m.input, cmd = m.input.Update(msg)
	if after := m.input.Value(); after != before {
		m.session.SetQuery(after)
		m.cursor = -1
	}
	return m, cmd
}

// escape cancels any animation, clears the selection and closes the search box.
func (m *Model) escape() {
	m.session.Escape()
	m.closeSearch()
	m.err = nil
	m.statusMsg = "Returned to the universe"
}

func (m *Model) closeSearch() {
	m.searching = false
	m.cursor = -1
	m.input.SetValue("")
	m.input.Blur()
}

// clampCursor keeps the suggestion cursor inside the current suggestions.
func (m *Model) clampCursor() {
	if n := len(m.session.Suggestions()); m.cursor >= n {
		m.cursor = n - 1
	}
}

// report records the outcome of a selection in the status bar.
func (m *Model) report(err error, verb string) {
	switch {
	case err == nil:
		m.err = nil
		if idx, ok := m.session.Selected(); ok {
			m.statusMsg = fmt.Sprintf("%s %s", verb, m.session.Communities()[idx].Name)
		} else {
			m.statusMsg = "Selection cleared"
		}
	case errors.Is(err, universe.ErrLocked):
		m.err = nil
		m.statusMsg = "Hold on, still flying"
	default:
		m.err = err
	}
}
