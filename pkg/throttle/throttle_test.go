package throttle

import (
	"slices"
	"sync"
	"testing"
	"time"
)

// fakeClock runs scheduled callbacks only when Advance is called.
type fakeClock struct {
	mu     sync.Mutex
	now    time.Duration
	timers []*fakeTimer
}

type fakeTimer struct {
	at      time.Duration
	f       func()
	stopped bool
}

func (t *fakeTimer) Stop() bool {
	was := !t.stopped
	t.stopped = true
	return was
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{at: c.now + d, f: f}
	c.timers = append(c.timers, t)
	return t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now += d
	var due []*fakeTimer
	rest := c.timers[:0]
	for _, t := range c.timers {
		if t.at <= c.now {
			due = append(due, t)
		} else {
			rest = append(rest, t)
		}
	}
	c.timers = rest
	c.mu.Unlock()

	for _, t := range due {
		if !t.stopped {
			t.f()
		}
	}
}

type recorder struct {
	mu  sync.Mutex
	got []int
}

func (r *recorder) fire(v int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.got = append(r.got, v)
}

func (r *recorder) values() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.got)
}

func newTest(interval time.Duration) (*Throttle[int], *fakeClock, *recorder) {
	clock := &fakeClock{}
	rec := &recorder{}
	return New(interval, rec.fire, WithClock[int](clock)), clock, rec
}

func TestLeadingAndTrailing(t *testing.T) {
	th, clock, rec := newTest(100 * time.Millisecond)

	th.Trigger(1)
	if got := rec.values(); !slices.Equal(got, []int{1}) {
		t.Fatalf("leading call not delivered: %v", got)
	}

	th.Trigger(2)
	th.Trigger(3)
	if !th.Pending() {
		t.Error("Pending() should be true inside the window")
	}
	if got := rec.values(); len(got) != 1 {
		t.Fatalf("calls inside the window must wait: %v", got)
	}

	clock.Advance(100 * time.Millisecond)
	if got := rec.values(); !slices.Equal(got, []int{1, 3}) {
		t.Errorf("trailing call should deliver the latest value: %v", got)
	}

	// The trailing call opened a new window which closes empty.
	clock.Advance(100 * time.Millisecond)
	th.Trigger(4)
	if got := rec.values(); !slices.Equal(got, []int{1, 3, 4}) {
		t.Errorf("idle throttle should fire immediately: %v", got)
	}
}

func TestCancel(t *testing.T) {
	th, clock, rec := newTest(time.Second)

	th.Trigger(1)
	th.Trigger(2)
	th.Cancel()
	if th.Pending() {
		t.Error("Cancel() should drop the pending value")
	}

	th.Trigger(5)
	clock.Advance(time.Second)
	clock.Advance(time.Second)
	if got := rec.values(); !slices.Equal(got, []int{1, 5}) {
		t.Errorf("values = %v, want [1 5]", got)
	}
}

func TestZeroIntervalPassesThrough(t *testing.T) {
	th, _, rec := newTest(0)
	for i := range 3 {
		th.Trigger(i)
	}
	if got := rec.values(); !slices.Equal(got, []int{0, 1, 2}) {
		t.Errorf("values = %v", got)
	}
}

func TestRealClock(t *testing.T) {
	done := make(chan int, 2)
	th := New(10*time.Millisecond, func(v int) { done <- v })
	th.Trigger(1)
	th.Trigger(2)

	for _, want := range []int{1, 2} {
		select {
		case got := <-done:
			if got != want {
				t.Errorf("got %d, want %d", got, want)
			}
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for throttled call")
		}
	}
}
