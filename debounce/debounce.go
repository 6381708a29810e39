// Package debounce coalesces rapid successive updates into a single delayed
// emission. The editor uses it to turn keystroke-level configuration changes
// into infrequent autosave writes.
package debounce

import (
	"sync"
	"time"
)

// Debouncer delivers the most recent value passed to Set on C once a quiet
// period of the configured delay has elapsed with no further Set calls.
// Intermediate values observed during the quiet window are dropped; only the
// latest matters.
type Debouncer[T any] struct {
	// C receives settled values. The channel is buffered so a slow consumer
	// never blocks the timer goroutine; an unread settled value is replaced
	// by the next one.
	C <-chan T

	delay   time.Duration
	out     chan T
	mu      sync.Mutex
	timer   *time.Timer
	pending T
	stopped bool
}

// New creates a debouncer with the given quiet period.
func New[T any](delay time.Duration) *Debouncer[T] {
	out := make(chan T, 1)
	return &Debouncer[T]{
		C:     out,
		delay: delay,
		out:   out,
	}
}

// Set records a new value and (re)starts the quiet-period timer. Any timer
// already pending is cancelled, so a burst of calls within the delay window
// collapses into one emission of the final value.
func (d *Debouncer[T]) Set(value T) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}

	d.pending = value
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, d.fire)
}

func (d *Debouncer[T]) fire() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}

	// Drop an unconsumed previous emission in favor of the latest value.
	select {
	case <-d.out:
	default:
	}
	d.out <- d.pending
}

// Stop cancels any pending emission and prevents future ones. It is safe to
// call multiple times. Values already delivered on C remain readable.
func (d *Debouncer[T]) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
