// Package watch re-runs work when requirement manifests change on disk.
package watch

import (
	"sync"
	"time"
)

// Debouncer coalesces rapid change events into a single callback carrying
// the most recent event.
type Debouncer struct {
	window   time.Duration
	mu       sync.Mutex
	timer    *time.Timer
	pending  ChangeEvent
	callback func(ChangeEvent)
}

// NewDebouncer creates a debouncer with the given window duration.
func NewDebouncer(window time.Duration, callback func(ChangeEvent)) *Debouncer {
	return &Debouncer{
		window:   window,
		callback: callback,
	}
}

// Trigger records e and restarts the window. The callback fires once the
// window elapses with no further triggers.
func (d *Debouncer) Trigger(e ChangeEvent) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.pending = e
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.window, d.fire)
}

func (d *Debouncer) fire() {
	d.mu.Lock()
	e := d.pending
	d.mu.Unlock()

	if d.callback != nil {
		d.callback(e)
	}
}

// Stop cancels any pending callback.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
}
