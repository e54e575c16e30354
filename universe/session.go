package universe

import (
	"fmt"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-universe/engine/camera"
	"github.com/Carmen-Shannon/oxy-universe/engine/game_object"
	"go.uber.org/zap"
)

const (
	// DefaultSearchLockout blocks new selections after a search selection.
	// It ends 150ms before the spin-path animation does, so a selection made in that
	// window preempts the settle.
	DefaultSearchLockout = 3700 * time.Millisecond

	// DefaultClickLockout blocks new selections after a planet click.
	// It matches the direct-path animation length.
	DefaultClickLockout = 1250 * time.Millisecond
)

// Session is the user-facing state of one universe view: which planet is selected,
// whether input is locked out by a running animation, and the search box.
// Indices refer to the communities the session was created with.
// Thread-safe for concurrent access.
type Session interface {
	// Communities returns the communities shown by this session.
	Communities() []Community

	// Selected returns the selected community index.
	//
	// Returns:
	//   - int: the index, -1 when nothing is selected
	//   - bool: whether a community is selected
	Selected() (int, bool)

	// Locked reports whether selections are currently rejected.
	Locked() bool

	// LockRemaining returns how long the current lockout has left.
	LockRemaining() time.Duration

	// SearchSelect focuses a community chosen from search: the camera spins before travelling.
	//
	// Parameters:
	//   - index: community index
	//
	// Returns:
	//   - camera.Animation: the started animation
	//   - error: ErrLocked, ErrIndexOutOfRange, or the transition controller's error
	SearchSelect(index int) (camera.Animation, error)

	// PlanetClick focuses a clicked community with a direct flight. Clicking the
	// selected community deselects it and starts no animation.
	//
	// Parameters:
	//   - index: community index
	//
	// Returns:
	//   - camera.Animation: the started animation, nil when deselecting
	//   - error: ErrLocked, ErrIndexOutOfRange, or the transition controller's error
	PlanetClick(index int) (camera.Animation, error)

	// Escape cancels any animation, clears the selection, the lockout and the search box.
	// Always succeeds regardless of the transition state.
	Escape()

	// Update advances the lockout and the search debounce by frame time.
	//
	// Parameters:
	//   - deltaTime: elapsed time in seconds
	Update(deltaTime float32)

	// SetQuery records search input. Suggestions refresh once typing pauses.
	//
	// Parameters:
	//   - term: the search box contents
	SetQuery(term string)

	// Query returns the current search box contents.
	Query() string

	// Suggestions returns the latest debounced search results.
	Suggestions() []Suggestion

	// Announcement returns the status line read to assistive technology.
	//
	// Returns:
	//   - string: "Centered on <name>. Press Escape to return." or "" with no selection
	Announcement() string

	// Transition returns the controller the session drives.
	Transition() camera.TransitionController
}

type sessionImpl struct {
	mu     *sync.Mutex
	logger *zap.Logger

	communities []Community
	planets     []game_object.GameObject
	transition  camera.TransitionController

	selected int
	lockout  time.Duration

	searchLockout  time.Duration
	clickLockout   time.Duration
	searchDebounce time.Duration
	maxSuggestions int

	debouncer   *Debouncer
	query       string
	suggestions []Suggestion
}

var _ Session = &sessionImpl{}

// NewSession creates a session over communities, steering the camera through transition.
//
// Parameters:
//   - communities: the communities shown, in planet order
//   - transition: the camera transition controller
//   - options: functional options to configure the session
//
// Returns:
//   - Session: the newly created session
func NewSession(communities []Community, transition camera.TransitionController, options ...SessionOption) Session {
	s := &sessionImpl{
		mu:             &sync.Mutex{},
		logger:         zap.NewNop(),
		communities:    communities,
		transition:     transition,
		selected:       -1,
		searchLockout:  DefaultSearchLockout,
		clickLockout:   DefaultClickLockout,
		searchDebounce: DefaultSearchDebounce,
		maxSuggestions: DefaultMaxSuggestions,
	}
	for _, option := range options {
		option(s)
	}
	s.debouncer = NewDebouncer(s.searchDebounce, s.runSearch)
	return s
}

func (s *sessionImpl) Communities() []Community {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Community, len(s.communities))
	copy(out, s.communities)
	return out
}

func (s *sessionImpl) Selected() (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected, s.selected >= 0
}

func (s *sessionImpl) Locked() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.locked()
}

func (s *sessionImpl) locked() bool {
	return s.lockout > 0
}

func (s *sessionImpl) LockRemaining() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lockout
}

func (s *sessionImpl) SearchSelect(index int) (camera.Animation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	anim, err := s.focus(index, true, s.searchLockout)
	if err != nil {
		return nil, err
	}
	s.query = ""
	s.suggestions = nil
	s.debouncer.Cancel()
	return anim, nil
}

func (s *sessionImpl) PlanetClick(index int) (camera.Animation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.locked() {
		return nil, ErrLocked
	}
	if index == s.selected && index >= 0 {
		s.selected = -1
		s.applyHighlights()
		s.logger.Debug("planet deselected", zap.Int("index", index))
		return nil, nil
	}
	return s.focus(index, false, s.clickLockout)
}

// focus starts an animation toward a community and locks input.
// Caller must hold the mutex.
func (s *sessionImpl) focus(index int, spinFirst bool, lockout time.Duration) (camera.Animation, error) {
	if s.locked() {
		return nil, ErrLocked
	}
	if index < 0 || index >= len(s.communities) {
		return nil, fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, index, len(s.communities))
	}

	c := s.communities[index]
	anim, err := s.transition.AnimateToTarget(c.Anchor, spinFirst)
	if err != nil {
		return nil, fmt.Errorf("failed to focus %s: %w", c.Name, err)
	}

	s.selected = index
	s.lockout = lockout
	s.applyHighlights()
	s.logger.Info("community focused",
		zap.String("name", c.Name),
		zap.Bool("spin", spinFirst),
		zap.Duration("lockout", lockout),
	)
	return anim, nil
}

func (s *sessionImpl) Escape() {
	// Held across the cancel so a concurrent selection lands wholly before or after it.
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transition.CancelAnimation()
	s.selected = -1
	s.lockout = 0
	s.query = ""
	s.suggestions = nil
	s.debouncer.Cancel()
	s.applyHighlights()
}

// applyHighlights marks the selected planet and dims the others while a selection exists.
// Caller must hold the mutex.
func (s *sessionImpl) applyHighlights() {
	for i, p := range s.planets {
		p.SetSelected(i == s.selected)
		p.SetDimmed(s.selected >= 0 && i != s.selected)
	}
}

func (s *sessionImpl) Update(deltaTime float32) {
	s.mu.Lock()
	if s.lockout > 0 {
		s.lockout -= time.Duration(float64(deltaTime) * float64(time.Second))
		if s.lockout < 0 {
			s.lockout = 0
		}
	}
	s.mu.Unlock()

	s.debouncer.Update(deltaTime)
}

func (s *sessionImpl) SetQuery(term string) {
	s.mu.Lock()
	s.query = term
	s.mu.Unlock()

	s.debouncer.Input(term)
}

// runSearch is the debouncer callback.
func (s *sessionImpl) runSearch(term string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.suggestions = Search(s.communities, term, s.maxSuggestions)
}

func (s *sessionImpl) Query() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.query
}

func (s *sessionImpl) Suggestions() []Suggestion {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Suggestion, len(s.suggestions))
	copy(out, s.suggestions)
	return out
}

func (s *sessionImpl) Announcement() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selected < 0 {
		return ""
	}
	return fmt.Sprintf("Centered on %s. Press Escape to return.", s.communities[s.selected].Name)
}

func (s *sessionImpl) Transition() camera.TransitionController {
	return s.transition
}
