package watcher

import (
	"sync"
	"time"
)

// DefaultDebounceDuration coalesces the burst of events editors and atomic
// renames produce for a single save.
const DefaultDebounceDuration = 200 * time.Millisecond

// Debouncer runs the most recently triggered func once the triggers have
// been quiet for its duration.
type Debouncer struct {
	d     time.Duration
	mu    sync.Mutex
	timer *time.Timer
	gen   uint64
}

// NewDebouncer returns a debouncer. Non-positive d means the default.
func NewDebouncer(d time.Duration) *Debouncer {
	if d <= 0 {
		d = DefaultDebounceDuration
	}
	return &Debouncer{d: d}
}

// Duration returns the quiet period.
func (b *Debouncer) Duration() time.Duration { return b.d }

// Trigger schedules fn, replacing anything still pending.
func (b *Debouncer) Trigger(fn func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.timer != nil {
		b.timer.Stop()
	}
	b.gen++
	gen := b.gen
	b.timer = time.AfterFunc(b.d, func() {
		b.mu.Lock()
		current := gen == b.gen
		b.mu.Unlock()
		if current {
			fn()
		}
	})
}

// Cancel drops any pending call.
func (b *Debouncer) Cancel() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
	b.gen++
}
