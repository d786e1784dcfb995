package ratelimit

import (
	"net/http/httptest"
	"testing"
	"time"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestLimiter() (*Limiter, *fakeClock) {
	clock := &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	return New(&Config{
		MaxAttempts: 3,
		Lockout:     5 * time.Minute,
		Window:      time.Hour,
		Clock:       clock,
	}), clock
}

func TestLockoutAfterMaxFailures(t *testing.T) {
	limiter, _ := newTestLimiter()

	for i := 0; i < 2; i++ {
		if locked := limiter.RecordFailure("10.0.0.1"); locked {
			t.Fatalf("locked out after %d failures", i+1)
		}
		if !limiter.Allow("10.0.0.1") {
			t.Fatalf("blocked after %d failures", i+1)
		}
	}

	if locked := limiter.RecordFailure("10.0.0.1"); !locked {
		t.Error("third failure should trigger lockout")
	}
	if limiter.Allow("10.0.0.1") {
		t.Error("locked-out IP allowed")
	}
	if !limiter.Allow("10.0.0.2") {
		t.Error("unrelated IP blocked")
	}
}

func TestLockoutExpires(t *testing.T) {
	limiter, clock := newTestLimiter()

	for i := 0; i < 3; i++ {
		limiter.RecordFailure("10.0.0.1")
	}
	if limiter.Allow("10.0.0.1") {
		t.Fatal("expected lockout")
	}

	clock.advance(5 * time.Minute)
	if !limiter.Allow("10.0.0.1") {
		t.Error("lockout should have expired")
	}
}

func TestWindowResetsCount(t *testing.T) {
	limiter, clock := newTestLimiter()

	limiter.RecordFailure("10.0.0.1")
	limiter.RecordFailure("10.0.0.1")
	clock.advance(time.Hour)

	if locked := limiter.RecordFailure("10.0.0.1"); locked {
		t.Error("stale failures should not count toward lockout")
	}
	if !limiter.Allow("10.0.0.1") {
		t.Error("blocked after window expiry")
	}
}

func TestResetClearsFailures(t *testing.T) {
	limiter, _ := newTestLimiter()

	limiter.RecordFailure("10.0.0.1")
	limiter.RecordFailure("10.0.0.1")
	limiter.Reset("10.0.0.1")

	if locked := limiter.RecordFailure("10.0.0.1"); locked {
		t.Error("reset should clear the failure count")
	}
}

func TestClientIP(t *testing.T) {
	r := httptest.NewRequest("POST", "/login", nil)
	r.RemoteAddr = "192.0.2.7:51234"
	if got := ClientIP(r); got != "192.0.2.7" {
		t.Errorf("ClientIP = %q", got)
	}

	r.RemoteAddr = "192.0.2.8"
	if got := ClientIP(r); got != "192.0.2.8" {
		t.Errorf("ClientIP without port = %q", got)
	}
}
