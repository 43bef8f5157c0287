// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"sync"
	"time"
)

// Debouncer coalesces repeated triggers per key into one call of fn after a
// quiet period. Each Schedule cancels the pending call for that key and
// starts the wait again.
type Debouncer struct {
	delay time.Duration
	fn    func(key string)

	mu     sync.Mutex
	timers map[string]*time.Timer
}

func NewDebouncer(delay time.Duration, fn func(key string)) *Debouncer {
	return &Debouncer{
		delay:  delay,
		fn:     fn,
		timers: make(map[string]*time.Timer),
	}
}

// Schedule (re)starts the quiet period for key.
func (d *Debouncer) Schedule(key string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if t, ok := d.timers[key]; ok {
		t.Stop()
	}

	var t *time.Timer
	t = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		// A later Schedule or Cancel replaced this timer.
		if d.timers[key] != t {
			d.mu.Unlock()
			return
		}
		delete(d.timers, key)
		d.mu.Unlock()

		d.fn(key)
	})
	d.timers[key] = t
}

// Cancel drops the pending call for key. It reports whether one was pending.
func (d *Debouncer) Cancel(key string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	t, ok := d.timers[key]
	if !ok {
		return false
	}
	t.Stop()
	delete(d.timers, key)
	return true
}

// Flush runs every pending call now, on the calling goroutine.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	keys := make([]string, 0, len(d.timers))
	for key, t := range d.timers {
		t.Stop()
		keys = append(keys, key)
	}
	clear(d.timers)
	d.mu.Unlock()

	for _, key := range keys {
		d.fn(key)
	}
}

// Pending returns the number of scheduled calls.
func (d *Debouncer) Pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()

	return len(d.timers)
}
