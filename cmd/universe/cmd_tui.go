package main

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-universe/engine"
	"github.com/Carmen-Shannon/oxy-universe/tui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Browse the universe in the terminal",
	Long: `Runs the universe headless and shows the planets, the search box and a live
camera readout in the terminal. Frames are driven by the terminal's tick.`,
	RunE: runTUI,
}

func runTUI(cmd *cobra.Command, args []string) error {
	// The alt screen owns stdout; keep logs off it unless asked for.
	if !verbose {
		logger = zap.NewNop()
	}

	rig := buildUniverse(cfg, joinedOnly, logger)
	defer rig.shutdown()

	eng := engine.NewEngine(
		engine.WithFrameDispatcher(rig.frames),
		engine.WithScene(0, rig.scene),
		engine.WithLogger(logger.Named("engine")),
	)
	eng.SetTickCallback(rig.session.Update)

	model := tui.NewModel(eng, rig.session, rig.controller, cfg.Engine.TickRate)
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run terminal UI: %w", err)
	}
	return nil
}
