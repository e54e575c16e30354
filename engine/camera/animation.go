package camera

import (
	"context"
	"sync"

	"github.com/go-gl/mathgl/mgl32"
)

// Outcome describes how an animation ended.
type Outcome int

const (
	// OutcomePending means the animation is still running.
	OutcomePending Outcome = iota
	// OutcomeCompleted means the animation reached the end of its settle phase.
	OutcomeCompleted
	// OutcomeCancelled means CancelAnimation stopped the animation.
	OutcomeCancelled
	// OutcomePreempted means a newer AnimateToTarget call replaced the animation.
	OutcomePreempted
)

func (o Outcome) String() string {
	switch o {
	case OutcomePending:
		return "pending"
	case OutcomeCompleted:
		return "completed"
	case OutcomeCancelled:
		return "cancelled"
	case OutcomePreempted:
		return "preempted"
	default:
		return "unknown"
	}
}

// Animation is the handle returned by TransitionController.AnimateToTarget.
// It resolves exactly once, when the animation completes, is cancelled, or is preempted.
type Animation interface {
	// ID returns the generation number assigned when the animation started.
	//
	// Returns:
	//   - uint64: the generation number
	ID() uint64

	// Target returns the world-space point the animation flies toward.
	//
	// Returns:
	//   - mgl32.Vec3: the focus target
	Target() mgl32.Vec3

	// SpinFirst reports whether the animation opened with the spin phase.
	SpinFirst() bool

	// Done returns a channel that is closed once the animation has resolved.
	//
	// Returns:
	//   - <-chan struct{}: closed on resolution
	Done() <-chan struct{}

	// Outcome returns the current outcome. OutcomePending until Done is closed.
	//
	// Returns:
	//   - Outcome: the outcome
	Outcome() Outcome

	// Wait blocks until the animation resolves or ctx is done.
	//
	// Parameters:
	//   - ctx: context bounding the wait
	//
	// Returns:
	//   - Outcome: the resolved outcome, or OutcomePending if ctx ended first
	//   - error: ctx.Err() if ctx ended first
	Wait(ctx context.Context) (Outcome, error)
}

type animationImpl struct {
	mu        *sync.Mutex
	id        uint64
	target    mgl32.Vec3
	spinFirst bool
	outcome   Outcome
	done      chan struct{}
}

var _ Animation = &animationImpl{}

func newAnimation(id uint64, target mgl32.Vec3, spinFirst bool) *animationImpl {
	return &animationImpl{
		mu:        &sync.Mutex{},
		id:        id,
		target:    target,
		spinFirst: spinFirst,
		outcome:   OutcomePending,
		done:      make(chan struct{}),
	}
}

// resolve records the outcome and closes Done. Only the first call has an effect.
func (a *animationImpl) resolve(outcome Outcome) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.outcome != OutcomePending {
		return
	}
	a.outcome = outcome
	close(a.done)
}

func (a *animationImpl) ID() uint64 {
	return a.id
}

func (a *animationImpl) Target() mgl32.Vec3 {
	return a.target
}

func (a *animationImpl) SpinFirst() bool {
	return a.spinFirst
}

func (a *animationImpl) Done() <-chan struct{} {
	return a.done
}

func (a *animationImpl) Outcome() Outcome {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.outcome
}

func (a *animationImpl) Wait(ctx context.Context) (Outcome, error) {
	select {
	case <-a.done:
		return a.Outcome(), nil
	case <-ctx.Done():
		return OutcomePending, ctx.Err()
	}
}
