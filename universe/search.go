package universe

import (
	"strings"
	"sync"
	"time"
)

// DefaultMaxSuggestions caps the number of search results.
const DefaultMaxSuggestions = 6

// DefaultSearchDebounce is how long typing must pause before a search runs.
const DefaultSearchDebounce = 200 * time.Millisecond

// Suggestion is one search hit: the community and its index in the searched slice.
type Suggestion struct {
	Index     int
	Community Community
}

// Search returns communities whose name or category contains term, case-insensitively,
// in slice order and at most limit long. A blank term matches nothing.
//
// Parameters:
//   - communities: the communities to search
//   - term: the query text
//   - limit: maximum number of results (<= 0 means DefaultMaxSuggestions)
//
// Returns:
//   - []Suggestion: the matches
func Search(communities []Community, term string, limit int) []Suggestion {
	if strings.TrimSpace(term) == "" {
		return nil
	}
	if limit <= 0 {
		limit = DefaultMaxSuggestions
	}
	needle := strings.ToLower(term)

	var out []Suggestion
	for i, c := range communities {
		if strings.Contains(strings.ToLower(c.Name), needle) || strings.Contains(strings.ToLower(c.Category), needle) {
			out = append(out, Suggestion{Index: i, Community: c})
			if len(out) == limit {
				break
			}
		}
	}
	return out
}

// Debouncer delays a query until input has been quiet for a fixed amount of frame time.
// Every Input restarts the wait. Time advances only through Update, so behaviour
// is deterministic under a fixed-step clock.
type Debouncer struct {
	mu      *sync.Mutex
	delay   float64
	waited  float64
	pending bool
	term    string
	fire    func(term string)
}

// NewDebouncer creates a Debouncer that calls fire with the latest term once delay has elapsed.
//
// Parameters:
//   - delay: quiet period before firing
//   - fire: callback receiving the settled term
//
// Returns:
//   - *Debouncer: the debouncer
func NewDebouncer(delay time.Duration, fire func(term string)) *Debouncer {
	return &Debouncer{
		mu:    &sync.Mutex{},
		delay: delay.Seconds(),
		fire:  fire,
	}
}

// Input records a new term and restarts the wait.
func (d *Debouncer) Input(term string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.term = term
	d.waited = 0
	d.pending = true
}

// Pending reports whether a term is waiting to fire.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending
}

// Cancel drops any pending term.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.pending = false
}

// Update advances the wait and fires once the delay has elapsed. The callback runs
// without the lock held.
func (d *Debouncer) Update(deltaTime float32) {
	d.mu.Lock()
	if !d.pending {
		d.mu.Unlock()
		return
	}
	d.waited += float64(deltaTime)
	if d.waited+1e-9 < d.delay {
		d.mu.Unlock()
		return
	}
	d.pending = false
	term := d.term
	fire := d.fire
	d.mu.Unlock()

	if fire != nil {
		fire(term)
	}
}
