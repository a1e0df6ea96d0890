package core

// debounce.go implements the quiet-window scheduling used for search input.
//
// Each Schedule call cancels the task that is still pending and arms a new one.
// Only a task that survives a full quiet window runs. Every scheduled task
// reports exactly once on its channel: true when it ran, false when it was
// cancelled by a later Schedule or by Stop.

import (
	"sync"
	"time"
)

// DefaultDebounceWindow is the quiet window for search input.
const DefaultDebounceWindow = 200 * time.Millisecond

// Debouncer runs only the last of a burst of scheduled tasks.
type Debouncer struct {
	window time.Duration

	mu      sync.Mutex
	timer   *time.Timer
	pending chan bool
}

// NewDebouncer creates a debouncer with the given quiet window.
func NewDebouncer(window time.Duration) *Debouncer {
	if window <= 0 {
		window = DefaultDebounceWindow
	}
	return &Debouncer{window: window}
}

// Window returns the quiet window.
func (d *Debouncer) Window() time.Duration {
	return d.window
}

// Schedule cancels any pending task and arms fn to run after the quiet window.
// The returned channel receives true after fn has run, or false if fn was cancelled.
func (d *Debouncer) Schedule(fn func()) <-chan bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.cancelLocked()

	done := make(chan bool, 1)
	var t *time.Timer
	t = time.AfterFunc(d.window, func() {
		d.mu.Lock()
		if d.timer != t {
			// Replaced between firing and taking the lock.
			d.mu.Unlock()
			done <- false
			return
		}
		d.timer = nil
		d.pending = nil
		d.mu.Unlock()

		fn()
		done <- true
	})
	d.timer = t
	d.pending = done
	return done
}

// Stop cancels the pending task, if any.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cancelLocked()
}

// Pending reports whether a task is waiting for its window to elapse.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}

func (d *Debouncer) cancelLocked() {
	if d.timer == nil {
		return
	}
	if d.timer.Stop() {
		d.pending <- false
	}
	// When Stop fails the callback is already waiting on mu; it will see the
	// timer was replaced and report false itself.
	d.timer = nil
	d.pending = nil
}
