// Package scheduler provides the deferred follow-up mechanism for state
// machine continuations that happen "after a short pause" (next customer
// spawn, next day start). Callbacks fire exactly once, after the scheduling
// transition has fully committed.
package scheduler

import (
	"sync"
	"time"
)

// Scheduler defers a callback. Implementations must invoke it at most once.
type Scheduler interface {
	Defer(delay time.Duration, fn func())
	Stop()
}

// Timer is the production scheduler backed by time.AfterFunc.
type Timer struct {
	mu     sync.Mutex
	wg     sync.WaitGroup
	timers []*time.Timer
	closed bool
}

// NewTimer creates a timer-backed scheduler.
func NewTimer() *Timer {
	return &Timer{}
}

// Defer runs fn after the delay. Calls after Stop are dropped.
func (t *Timer) Defer(delay time.Duration, fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return
	}
	t.wg.Add(1)
	timer := time.AfterFunc(delay, func() {
		defer t.wg.Done()
		t.mu.Lock()
		closed := t.closed
		t.mu.Unlock()
		if !closed {
			fn()
		}
	})
	t.timers = append(t.timers, timer)
}

// Stop cancels pending callbacks and waits for in-flight ones.
func (t *Timer) Stop() {
	t.mu.Lock()
	t.closed = true
	for _, timer := range t.timers {
		if timer.Stop() {
			t.wg.Done()
		}
	}
	t.timers = nil
	t.mu.Unlock()
	t.wg.Wait()
}

// Sync runs callbacks immediately on the calling goroutine. Tests use it so
// follow-ups commit before assertions run.
type Sync struct{}

// NewSync creates a synchronous scheduler.
func NewSync() *Sync { return &Sync{} }

// Defer invokes fn inline.
func (s *Sync) Defer(_ time.Duration, fn func()) { fn() }

// Stop is a no-op.
func (s *Sync) Stop() {}
