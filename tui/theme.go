package tui

import "github.com/charmbracelet/lipgloss"

// Palette taken from the universe's planet colors.
var (
	colorBgSurface = lipgloss.Color("#0b1020")
	colorText      = lipgloss.Color("#e6edf3")
	colorTextDim   = lipgloss.Color("#747c88")
	colorTextMuted = lipgloss.Color("#3a4250")
	colorAqua      = lipgloss.Color("#28f5cc")
	colorJade      = lipgloss.Color("#04ad7b")
	colorAmber     = lipgloss.Color("#d29922")
	colorRed       = lipgloss.Color("#f85149")
	colorDivider   = lipgloss.Color("#2a3444")
)

// Header and footer
var (
	headerBarStyle = lipgloss.NewStyle().
			Background(colorBgSurface).
			Foreground(colorText).
			Padding(0, 1)

	headerBrandStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorAqua)

	headerSepStyle = lipgloss.NewStyle().
			Foreground(colorTextMuted)

	headerMetaStyle = lipgloss.NewStyle().
			Foreground(colorTextDim)

	statusStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Padding(0, 1)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorRed).
			Padding(0, 1)

	hintKeyStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Bold(true)

	hintDescStyle = lipgloss.NewStyle().
			Foreground(colorTextMuted)
)

// Panels
var (
	panelStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorDivider)

	panelTitleStyle = lipgloss.NewStyle().
			Foreground(colorAqua).
			Bold(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(colorJade)

	valueStyle = lipgloss.NewStyle().
			Foreground(colorText)
)

// Planet list
var (
	planetStyle = lipgloss.NewStyle().
			Foreground(colorText)

	planetSelectedStyle = lipgloss.NewStyle().
				Foreground(colorAqua).
				Bold(true)

	planetDimmedStyle = lipgloss.NewStyle().
				Foreground(colorTextMuted)

	suggestionStyle = lipgloss.NewStyle().
			Foreground(colorTextDim)

	suggestionActiveStyle = lipgloss.NewStyle().
				Foreground(colorBgSurface).
				Background(colorAqua)

	lockStyle = lipgloss.NewStyle().
			Foreground(colorAmber)
)
