package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

type hint struct {
	key  string
	desc string
}

func (m Model) View() string {
	header := renderHeader(&m)
	body := lipgloss.JoinHorizontal(lipgloss.Top, renderPlanets(&m), renderCamera(&m))
	sections := []string{header, body}
	if m.searching {
		sections = append(sections, renderSearch(&m))
	}
	if a := m.session.Announcement(); a != "" {
		sections = append(sections, statusStyle.Render(a))
	}
	sections = append(sections, renderFooter(&m))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderHeader produces the top bar:
//
//	UNIVERSE │ traveling │ Gaming Nebula
func renderHeader(m *Model) string {
	sep := headerSepStyle.Render(" │ ")
	parts := []string{
		headerBrandStyle.Render("UNIVERSE"),
		sep,
		headerMetaStyle.Render(m.session.Transition().State().String()),
	}
	if idx, ok := m.session.Selected(); ok {
		parts = append(parts, sep, headerMetaStyle.Render(m.session.Communities()[idx].Name))
	}
	bar := headerBarStyle
	if m.width > 0 {
		bar = bar.Width(m.width)
	}
	return bar.Render(strings.Join(parts, ""))
}

func renderPlanets(m *Model) string {
	selected, hasSelection := m.session.Selected()

	var b strings.Builder
	b.WriteString(panelTitleStyle.Render("Communities"))
	b.WriteString("\n")
	for i, c := range m.session.Communities() {
		key := " "
		if i < 9 {
			key = fmt.Sprintf("%d", i+1)
		}
		line := fmt.Sprintf("%s  %-18s %-14s %6d", key, c.Name, c.Category, c.Members)
		switch {
		case hasSelection && i == selected:
			line = planetSelectedStyle.Render("▸ " + line)
		case hasSelection:
			line = planetDimmedStyle.Render("  " + line)
		default:
			line = planetStyle.Render("  " + line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return panelStyle.Render(strings.TrimRight(b.String(), "\n"))
}

func renderCamera(m *Model) string {
	pos := m.cam.Position()
	target := m.cam.Target()
	rows := [][2]string{
		{"state", m.session.Transition().State().String()},
		{"position", fmt.Sprintf("%6.2f %6.2f %6.2f", pos[0], pos[1], pos[2])},
		{"target", fmt.Sprintf("%6.2f %6.2f %6.2f", target[0], target[1], target[2])},
		{"distance", fmt.Sprintf("%.2f", m.cam.Radius())},
		{"controls", onOff(m.cam.Enabled())},
		{"auto-rotate", fmt.Sprintf("%s @ %.2f", onOff(m.cam.AutoRotate()), m.cam.AutoRotateSpeed())},
	}

	var b strings.Builder
	b.WriteString(panelTitleStyle.Render("Camera"))
	for _, r := range rows {
		b.WriteString("\n")
		b.WriteString(labelStyle.Render(fmt.Sprintf("%-12s", r[0])))
		b.WriteString(valueStyle.Render(r[1]))
	}
	if m.session.Locked() {
		b.WriteString("\n")
		b.WriteString(lockStyle.Render(fmt.Sprintf("locked %s", m.session.LockRemaining().Round(10*time.Millisecond))))
	}
	return panelStyle.Render(b.String())
}

func renderSearch(m *Model) string {
	lines := []string{m.input.View()}
	for i, s := range m.session.Suggestions() {
		text := fmt.Sprintf(" %s · %s ", s.Community.Name, s.Community.Category)
		if i == m.cursor {
			lines = append(lines, suggestionActiveStyle.Render(text))
		} else {
			lines = append(lines, suggestionStyle.Render(text))
		}
	}
	return panelStyle.Render(strings.Join(lines, "\n"))
}

// renderFooter produces the status line and keyboard hints.
func renderFooter(m *Model) string {
	var left string
	if m.err != nil {
		left = errorStyle.Render(fmt.Sprintf("Error: %v", m.err))
	} else {
		left = statusStyle.Render(m.statusMsg)
	}

	var hints []hint
	if m.searching {
		hints = []hint{{"↑↓", "choose"}, {"enter", "fly"}, {"esc", "close"}}
	} else {
		hints = []hint{{"1-9", "visit"}, {"/", "search"}, {"←→↑↓", "orbit"}, {"+/-", "zoom"}, {"esc", "return"}, {"q", "quit"}}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", renderHints(hints))
}

func renderHints(hints []hint) string {
	var parts []string
	for _, h := range hints {
		parts = append(parts, hintKeyStyle.Render(h.key)+" "+hintDescStyle.Render(h.desc))
	}
	return strings.Join(parts, hintDescStyle.Render("  "))
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
