package universe

import (
	"time"

	"github.com/Carmen-Shannon/oxy-universe/engine/game_object"
	"go.uber.org/zap"
)

// SessionOption is a functional option for configuring a Session.
type SessionOption func(*sessionImpl)

// WithPlanets attaches the planet bodies whose selected and dimmed flags follow the selection.
// planets[i] must correspond to communities[i].
//
// Parameters:
//   - planets: the planet bodies in community order
//
// Returns:
//   - SessionOption: option function to apply
func WithPlanets(planets ...game_object.GameObject) SessionOption {
	return func(s *sessionImpl) {
		s.planets = planets
	}
}

// WithSearchLockout sets how long selections are blocked after a search selection.
func WithSearchLockout(d time.Duration) SessionOption {
	return func(s *sessionImpl) {
		s.searchLockout = d
	}
}

// WithClickLockout sets how long selections are blocked after a planet click.
func WithClickLockout(d time.Duration) SessionOption {
	return func(s *sessionImpl) {
		s.clickLockout = d
	}
}

// WithSearchDebounce sets the quiet period before a search runs.
func WithSearchDebounce(d time.Duration) SessionOption {
	return func(s *sessionImpl) {
		s.searchDebounce = d
	}
}

// WithMaxSuggestions caps the number of search results.
func WithMaxSuggestions(n int) SessionOption {
	return func(s *sessionImpl) {
		if n > 0 {
			s.maxSuggestions = n
		}
	}
}

// WithSessionLogger sets the session's logger. Defaults to a no-op logger.
func WithSessionLogger(logger *zap.Logger) SessionOption {
	return func(s *sessionImpl) {
		if logger != nil {
			s.logger = logger
		}
	}
}
