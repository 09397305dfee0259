package backend

import (
	"testing"
	"time"
)

func TestThrottleAllowsOncePerInterval(t *testing.T) {
	now := time.Unix(0, 0)
	th := newThrottle(100 * time.Millisecond)
	th.now = func() time.Time { return now }

	if !th.allow() {
		t.Fatalf("expected first call allowed")
	}
	if th.allow() {
		t.Fatalf("expected second call within interval to be throttled")
	}
	now = now.Add(100 * time.Millisecond)
	if !th.allow() {
		t.Fatalf("expected call after interval allowed")
	}
	th.reset()
	if !th.allow() {
		t.Fatalf("expected call after reset allowed")
	}
}

func TestThrottleDisabled(t *testing.T) {
	th := newThrottle(0)
	for i := 0; i < 3; i++ {
		if !th.allow() {
			t.Fatalf("expected zero interval to never throttle")
		}
	}
	var nilThrottle *throttle
	if !nilThrottle.allow() {
		t.Fatalf("expected nil throttle to allow")
	}
}
