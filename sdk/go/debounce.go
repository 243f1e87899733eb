package voicesdk

import (
	"sync"
	"time"
)

// DefaultDebounceDelay matches the search-as-you-type delay used by the
// employee picker.
const DefaultDebounceDelay = 300 * time.Millisecond

// Debouncer coalesces bursts of calls into a single trailing invocation.
// Each Call resets the timer; only the last function passed within a burst
// runs, once the delay elapses with no further calls.
type Debouncer struct {
	mu    sync.Mutex
	delay time.Duration
	timer *time.Timer
}

// NewDebouncer creates a debouncer. A non-positive delay falls back to
// DefaultDebounceDelay.
func NewDebouncer(delay time.Duration) *Debouncer {
	if delay <= 0 {
		delay = DefaultDebounceDelay
	}
	return &Debouncer{delay: delay}
}

// Call schedules fn to run after the delay, cancelling any invocation still
// pending from an earlier Call.
func (d *Debouncer) Call(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, fn)
}

// Stop cancels any pending invocation.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
