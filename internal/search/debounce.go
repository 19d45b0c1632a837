package search

import (
	"sync"
	"time"
)

// Debouncer runs the most recently scheduled task once the quiet period has
// passed without another Schedule call. Each Schedule issues a new token; a
// timer only runs its task if its token is still the latest when it fires.
type Debouncer struct {
	delay time.Duration

	mu      sync.Mutex
	token   uint64
	timer   *time.Timer
	stopped bool
}

// NewDebouncer creates a debouncer with the given quiet period
func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

// Schedule cancels any pending task and arms fn. It returns the task's token.
func (d *Debouncer) Schedule(fn func()) uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return d.token
	}
	if d.timer != nil {
		d.timer.Stop()
	}

	d.token++
	token := d.token
	d.timer = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		current := d.token == token && !d.stopped
		if current {
			d.timer = nil
		}
		d.mu.Unlock()

		if current {
			fn()
		}
	})
	return token
}

// Pending reports whether a task is armed and has not fired
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}

// Cancel drops the pending task, if any
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cancelLocked()
}

// Stop cancels the pending task and refuses new ones
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cancelLocked()
	d.stopped = true
}

func (d *Debouncer) cancelLocked() {
	// Bumping the token makes a timer that already fired but has not yet
	// taken the lock a no-op.
	d.token++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
