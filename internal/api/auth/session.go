// internal/api/auth/session.go
package auth

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"net/http"
	"sync"
	"time"
)

const (
	sessionCookieName      = "rounders_session"
	sessionTTL             = 8 * time.Hour
	sessionTokenBytes      = 32
	sessionCleanupInterval = 15 * time.Minute
)

var (
	sessionMu sync.RWMutex
	// In-memory sessions are intentionally ephemeral: there is exactly one
	// admin account, and a restart just means logging in again.
	sessionStore       = make(map[string]time.Time)
	sessionCleanupOnce sync.Once
)

func isSecureCookie() bool {
	return appConfig == nil || appConfig.App.Environment != "development"
}

// CreateSession mints a session token for the admin and sets the cookie.
func CreateSession(w http.ResponseWriter) error {
	if w == nil {
		return errors.New("session requires response writer")
	}

	startSessionCleanup()

	token, err := newSessionToken()
	if err != nil {
		return err
	}

	expiresAt := time.Now().Add(sessionTTL)
	sessionMu.Lock()
	sessionStore[token] = expiresAt
	sessionMu.Unlock()

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   isSecureCookie(),
		SameSite: http.SameSiteLaxMode,
		Expires:  expiresAt,
		MaxAge:   int(sessionTTL.Seconds()),
	})

	return nil
}

// ClearSession drops the server-side session and expires the cookie.
func ClearSession(w http.ResponseWriter, r *http.Request) {
	if r != nil {
		if cookie, err := r.Cookie(sessionCookieName); err == nil {
			deleteSession(cookie.Value)
		}
	}

	if w == nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   isSecureCookie(),
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
	})
}

// IsAuthenticated reports whether the request carries a live admin session.
func IsAuthenticated(r *http.Request) bool {
	if r == nil {
		return false
	}

	cookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		return false
	}

	sessionMu.RLock()
	expiresAt, ok := sessionStore[cookie.Value]
	sessionMu.RUnlock()
	if !ok {
		return false
	}

	if expiresAt.Before(time.Now()) {
		deleteSession(cookie.Value)
		return false
	}
	return true
}

func newSessionToken() (string, error) {
	token := make([]byte, sessionTokenBytes)
	if _, err := rand.Read(token); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(token), nil
}

func startSessionCleanup() {
	sessionCleanupOnce.Do(func() {
		// Lazy-start cleanup only when sessions are first used.
		go func() {
			ticker := time.NewTicker(sessionCleanupInterval)
			defer ticker.Stop()
			for range ticker.C {
				pruneExpiredSessions()
			}
		}()
	})
}

func pruneExpiredSessions() {
	now := time.Now()
	sessionMu.Lock()
	for token, expiresAt := range sessionStore {
		if expiresAt.Before(now) {
			delete(sessionStore, token)
		}
	}
	sessionMu.Unlock()
}

func deleteSession(token string) {
	sessionMu.Lock()
	delete(sessionStore, token)
	sessionMu.Unlock()
}
