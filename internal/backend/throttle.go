package backend

import (
	"sync"
	"time"
)

// throttle ensures a minimum interval between successive progress reports.
type throttle struct {
	interval time.Duration
	now      func() time.Time

	mu   sync.Mutex
	next time.Time
}

func newThrottle(interval time.Duration) *throttle {
	if interval <= 0 {
		return &throttle{now: time.Now}
	}
	return &throttle{interval: interval, now: time.Now}
}

// allow reports whether an event may be emitted now and, if so, starts the
// next interval.
func (t *throttle) allow() bool {
	if t == nil || t.interval <= 0 {
		return true
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	now := t.now()
	if now.Before(t.next) {
		return false
	}
	t.next = now.Add(t.interval)
	return true
}

// reset lets the next call to allow succeed immediately.
func (t *throttle) reset() {
	if t == nil {
		return
	}
	t.mu.Lock()
	t.next = time.Time{}
	t.mu.Unlock()
}
