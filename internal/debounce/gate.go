// Package debounce provides a cancellable coalescing timer: a burst of
// rapidly arriving values collapses into a single emission of the last value
// once input has been quiet for a fixed interval.
package debounce

import (
	"sync"
	"time"
)

// DefaultQuiet is the quiet interval used when a gate is built with a
// non-positive delay.
const DefaultQuiet = 300 * time.Millisecond

// Gate coalesces values. Notify schedules emit(value) after the quiet
// interval measured from the most recent call; an earlier pending emission
// is cancelled and the timer restarts with the new value. At most one
// emission is pending per gate. Close cancels permanently.
type Gate[T any] struct {
	mu     sync.Mutex
	quiet  time.Duration
	timer  *time.Timer
	gen    uint64
	emit   func(T)
	closed bool
}

// NewGate builds a gate that calls emit with the surviving value of each
// burst. emit runs on the timer goroutine.
func NewGate[T any](quiet time.Duration, emit func(T)) *Gate[T] {
	if quiet <= 0 {
		quiet = DefaultQuiet
	}
	return &Gate[T]{quiet: quiet, emit: emit}
}

// Notify schedules value for emission, replacing any pending value.
func (g *Gate[T]) Notify(value T) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed {
		return
	}
	if g.timer != nil {
		g.timer.Stop()
	}
	// Stop cannot unblock a callback that already fired and is waiting on
	// the mutex, so each scheduling gets a generation; a callback whose
	// generation was superseded emits nothing.
	g.gen++
	gen := g.gen
	g.timer = time.AfterFunc(g.quiet, func() {
		g.mu.Lock()
		if g.closed || gen != g.gen {
			g.mu.Unlock()
			return
		}
		g.timer = nil
		g.mu.Unlock()
		g.emit(value)
	})
}

// Cancel drops any pending emission without closing the gate.
func (g *Gate[T]) Cancel() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.gen++
	if g.timer != nil {
		g.timer.Stop()
		g.timer = nil
	}
}

// Close cancels any pending emission and rejects further notifications.
func (g *Gate[T]) Close() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.closed = true
	g.gen++
	if g.timer != nil {
		g.timer.Stop()
		g.timer = nil
	}
}
