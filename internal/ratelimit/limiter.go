// Package ratelimit throttles failed admin login attempts per client IP.
package ratelimit

import (
	"crypto/sha256"
	"encoding/hex"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

// Clock interface for testing time-dependent behavior.
type Clock interface {
	Now() time.Time
}

// realClock implements Clock using the system time.
type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// Config holds rate limit configuration.
type Config struct {
	MaxAttempts int           // Failed attempts before lockout
	Lockout     time.Duration // Lockout duration after max attempts
	Window      time.Duration // Counting window for failed attempts

	// Clock for testing (nil uses real time)
	Clock Clock
}

// DefaultConfig returns production-ready defaults.
func DefaultConfig() *Config {
	return &Config{
		MaxAttempts: 5,
		Lockout:     5 * time.Minute,
		Window:      time.Hour,
	}
}

// entry tracks failed attempts from one client.
type entry struct {
	count    int
	firstAt  time.Time
	lastAt   time.Time
	lockedAt time.Time // zero if not locked
}

// Limiter tracks failed login attempts keyed by hashed client IP.
type Limiter struct {
	config *Config
	clock  Clock
	mu     sync.Mutex
	byIP   map[string]*entry
}

// New creates a new rate limiter with the given config.
func New(cfg *Config) *Limiter {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	clock := cfg.Clock
	if clock == nil {
		clock = realClock{}
	}
	return &Limiter{
		config: cfg,
		clock:  clock,
		byIP:   make(map[string]*entry),
	}
}

// Allow reports whether a login attempt from the given IP may proceed.
func (l *Limiter) Allow(ip string) bool {
	now := l.clock.Now()
	key := hashKey(ip)

	l.mu.Lock()
	defer l.mu.Unlock()

	e := l.byIP[key]
	if e == nil {
		return true
	}
	if !e.lockedAt.IsZero() {
		if now.Sub(e.lockedAt) < l.config.Lockout {
			return false
		}
		// Lockout expired
		delete(l.byIP, key)
		return true
	}
	if now.Sub(e.firstAt) >= l.config.Window {
		delete(l.byIP, key)
		return true
	}
	return e.count < l.config.MaxAttempts
}

// RecordFailure records a failed login attempt, returning true when the
// attempt triggered a lockout.
func (l *Limiter) RecordFailure(ip string) (lockedOut bool) {
	now := l.clock.Now()
	key := hashKey(ip)

	l.mu.Lock()
	defer l.mu.Unlock()

	e := l.byIP[key]
	if e == nil || now.Sub(e.firstAt) >= l.config.Window {
		l.byIP[key] = &entry{count: 1, firstAt: now, lastAt: now}
		return false
	}

	e.count++
	e.lastAt = now
	if e.count >= l.config.MaxAttempts && e.lockedAt.IsZero() {
		e.lockedAt = now
		lockedOut = true
	}
	return lockedOut
}

// Reset clears the failure counter after a successful login.
func (l *Limiter) Reset(ip string) {
	key := hashKey(ip)
	l.mu.Lock()
	delete(l.byIP, key)
	l.mu.Unlock()
}

func hashKey(ip string) string {
	hash := sha256.Sum256([]byte(strings.TrimSpace(ip)))
	return hex.EncodeToString(hash[:8])
}

// ClientIP extracts the client IP from a request's RemoteAddr. Forwarding
// headers are ignored: the server is expected to face clients directly.
func ClientIP(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
