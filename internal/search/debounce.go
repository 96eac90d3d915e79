package search

import (
	"sync"
	"time"
)

// DefaultDebounce is the pause after the last keystroke before a query runs
const DefaultDebounce = 300 * time.Millisecond

// Debouncer delays query evaluation until input has been quiet for a while.
// Each Submit cancels the pending evaluation, so only the latest query runs.
type Debouncer struct {
	mu      sync.Mutex
	delay   time.Duration
	fn      func(query string)
	timer   *time.Timer
	pending uint64
}

// NewDebouncer creates a Debouncer that calls fn with the latest query once
// delay has passed without another Submit. fn runs on its own goroutine.
func NewDebouncer(delay time.Duration, fn func(query string)) *Debouncer {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	return &Debouncer{delay: delay, fn: fn}
}

// Submit schedules query, replacing any evaluation still waiting
func (d *Debouncer) Submit(query string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}

	d.pending++
	id := d.pending
	d.timer = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		if id != d.pending {
			// superseded after the timer already fired
			d.mu.Unlock()
			return
		}
		d.timer = nil
		d.mu.Unlock()

		d.fn(query)
	})
}

// Stop cancels the pending evaluation, if any. Submit may be called again
// afterwards.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.pending++
}
