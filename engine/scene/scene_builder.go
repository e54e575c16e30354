package scene

import (
	"github.com/Carmen-Shannon/oxy-universe/engine/game_object"
	"github.com/Carmen-Shannon/oxy-universe/engine/renderer"
	"go.uber.org/zap"
)

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithActive sets whether the scene is active for updates and rendering.
//
// Parameters:
//   - active: whether the scene is active
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithActive(active bool) SceneBuilderOption {
	return func(s *scene) {
		s.active = active
	}
}

// WithObjects adds initial planets to the scene.
// Objects without IDs will be assigned new IDs.
//
// Parameters:
//   - objects: the objects to add
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithObjects(objects ...game_object.GameObject) SceneBuilderOption {
	return func(s *scene) {
		for _, obj := range objects {
			s.add(obj)
		}
	}
}

// WithRenderer attaches a renderer so Render presents frames.
//
// Parameters:
//   - r: the renderer to attach
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithRenderer(r renderer.Renderer) SceneBuilderOption {
	return func(s *scene) {
		s.r = r
	}
}

// WithUpdateWorkers sets the number of worker goroutines used to update planets
// during PrepareFrame. Defaults to runtime.NumCPU()-1.
//
// Parameters:
//   - n: the number of update workers (minimum 1)
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithUpdateWorkers(n int) SceneBuilderOption {
	return func(s *scene) {
		if n < 1 {
			n = 1
		}
		s.updateWorkers = n
	}
}

// WithLogger sets the scene's logger. Defaults to a no-op logger.
func WithLogger(logger *zap.Logger) SceneBuilderOption {
	return func(s *scene) {
		if logger != nil {
			s.logger = logger
		}
	}
}
