// Package throttle rate-limits notifications with a leading and trailing
// edge.
//
// The first [Throttle.Trigger] after a quiet period fires at once and opens
// a window. Triggers inside the window replace a single pending value; when
// the window closes the latest pending value fires and a new window opens.
// When a window closes with nothing pending the throttle goes idle.
package throttle

import (
	"sync"
	"time"
)

// Timer is a cancellable pending call.
type Timer interface {
	Stop() bool
}

// Clock schedules f to run after d.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type realClock struct{}

func (realClock) AfterFunc(d time.Duration, f func()) Timer { return time.AfterFunc(d, f) }

// Throttle delivers values of type T to a callback at most once per
// interval. It is safe for concurrent use. The callback runs without any
// lock held, on the caller's goroutine for leading calls and on a timer
// goroutine for trailing calls.
type Throttle[T any] struct {
	interval time.Duration
	fire     func(T)
	clock    Clock

	mu      sync.Mutex
	timer   Timer
	open    bool
	pending bool
	value   T
	gen     uint64
}

// Option configures a Throttle.
type Option[T any] func(*Throttle[T])

// WithClock replaces the timer source.
func WithClock[T any](c Clock) Option[T] {
	return func(t *Throttle[T]) { t.clock = c }
}

// New returns a throttle calling fire at most once per interval. A
// non-positive interval disables throttling.
func New[T any](interval time.Duration, fire func(T), opts ...Option[T]) *Throttle[T] {
	t := &Throttle[T]{interval: interval, fire: fire, clock: realClock{}}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Trigger submits v.
func (t *Throttle[T]) Trigger(v T) {
	if t.interval <= 0 {
		t.fire(v)
		return
	}

	t.mu.Lock()
	if t.open {
		t.value, t.pending = v, true
		t.mu.Unlock()
		return
	}
	t.open = true
	t.schedule()
	t.mu.Unlock()

	t.fire(v)
}

// Cancel drops any pending value and closes the window, so the next
// Trigger fires immediately.
func (t *Throttle[T]) Cancel() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	var zero T
	t.value, t.pending, t.open = zero, false, false
	t.gen++
}

// Pending reports whether a trailing call is waiting for the window to close.
func (t *Throttle[T]) Pending() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.pending
}

// schedule opens a new window. Callers hold t.mu.
func (t *Throttle[T]) schedule() {
	t.gen++
	gen := t.gen
	t.timer = t.clock.AfterFunc(t.interval, func() { t.expire(gen) })
}

func (t *Throttle[T]) expire(gen uint64) {
	t.mu.Lock()
	if gen != t.gen {
		// Cancelled or superseded.
		t.mu.Unlock()
		return
	}
	if !t.pending {
		t.open, t.timer = false, nil
		t.mu.Unlock()
		return
	}
	v := t.value
	var zero T
	t.value, t.pending = zero, false
	t.schedule()
	t.mu.Unlock()

	t.fire(v)
}
