package main

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-universe/common"
	"github.com/Carmen-Shannon/oxy-universe/engine"
	"github.com/Carmen-Shannon/oxy-universe/engine/renderer"
	"github.com/Carmen-Shannon/oxy-universe/engine/window"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var forceSoftware bool

var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Open the universe in a desktop window",
	Long: `Opens a GLFW window presenting through WebGPU.

Controls:
  1-9           search-select a community (spin, then fly)
  left click    fly to the planet under the cursor; click it again to deselect
  middle drag   orbit the camera
  scroll        zoom
  Esc           cancel the flight and return to the universe`,
	RunE: runView,
}

func init() {
	viewCmd.Flags().BoolVar(&forceSoftware, "software", false, "Force the software (fallback) GPU adapter")
}

func runView(cmd *cobra.Command, args []string) error {
	win, err := window.NewWindow(
		window.WithTitle(cfg.Window.Title),
		window.WithWidth(cfg.Window.Width),
		window.WithHeight(cfg.Window.Height),
	)
	if err != nil {
		return err
	}

	r, err := renderer.NewRenderer(renderer.BackendTypeWGPU, win,
		renderer.WithForceSoftwareRenderer(forceSoftware),
		renderer.WithLogger(logger.Named("renderer")),
	)
	if err != nil {
		_ = win.Close()
		return fmt.Errorf("failed to create renderer: %w", err)
	}
	defer r.Release()

	rig := buildUniverse(cfg, joinedOnly, logger)
	defer rig.shutdown()
	rig.scene.SetRenderer(r)
	rig.camera.SetAspect(float32(win.Width()) / float32(win.Height()))

	eng := engine.NewEngine(
		engine.WithWindow(win),
		engine.WithFrameDispatcher(rig.frames),
		engine.WithTickRate(cfg.Engine.TickRate),
		engine.WithRenderFrameLimit(cfg.Engine.RenderFrameLimit),
		engine.WithProfiling(cfg.Engine.Profiling),
		engine.WithScene(0, rig.scene),
		engine.WithLogger(logger.Named("engine")),
	)
	eng.SetTickCallback(rig.session.Update)

	setupInput(eng, rig)

	logger.Info("universe window open",
		zap.Int("communities", len(rig.communities)),
		zap.Bool("joined_only", joinedOnly),
	)
	eng.Run()
	return nil
}

// setupInput wires selection keys, planet picking, middle-mouse orbit and scroll zoom.
// Window callbacks run on the main thread; the session and controllers are mutex-guarded.
func setupInput(eng engine.Engine, rig *universeRig) {
	win := eng.Window()

	win.SetKeyDownCallback(func(keyCode uint32) {
		switch keyCode {
		case common.KeyEsc:
			rig.session.Escape()
			logger.Debug("escape")
			return
		}
		if i := common.DigitIndex(keyCode); i >= 0 {
			if _, err := rig.session.SearchSelect(i); err != nil {
				logger.Debug("search select rejected", zap.Int("index", i), zap.Error(err))
				return
			}
			logger.Info(rig.session.Announcement())
		}
	})

	var dragging bool
	var lastX, lastY int32

	win.SetMouseDownCallback(func(button window.MouseButton, x, y int32) {
		switch button {
		case window.MouseButtonMiddle:
			dragging = true
			lastX, lastY = x, y
		case window.MouseButtonLeft:
			ndcX, ndcY := window.ToNDC(x, y, win.Width(), win.Height())
			hit := rig.scene.Pick(ndcX, ndcY)
			if hit == nil {
				return
			}
			i := rig.planetIndex(hit)
			if _, err := rig.session.PlanetClick(i); err != nil {
				logger.Debug("planet click rejected", zap.String("planet", hit.Name()), zap.Error(err))
				return
			}
			if a := rig.session.Announcement(); a != "" {
				logger.Info(a)
			}
		}
	})

	win.SetMouseUpCallback(func(button window.MouseButton, _, _ int32) {
		if button == window.MouseButtonMiddle {
			dragging = false
		}
	})

	win.SetMouseMoveCallback(func(x, y int32) {
		if dragging {
			rig.controller.Drag(float32(x-lastX), float32(y-lastY))
			lastX, lastY = x, y
			return
		}
		ndcX, ndcY := window.ToNDC(x, y, win.Width(), win.Height())
		rig.scene.Hover(ndcX, ndcY)
	})

	win.SetScrollCallback(func(delta float32) {
		rig.controller.Zoom(delta)
	})
}
