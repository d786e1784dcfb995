// internal/api/apiutil/flash.go
package apiutil

import (
	"encoding/base64"
	"net/http"
	"strings"
)

const flashCookieName = "rounders_flash"

// SetFlash stores a one-shot user-visible message in a cookie. The value is
// base64-encoded so punctuation survives cookie encoding rules.
func SetFlash(w http.ResponseWriter, message string) {
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    base64.RawURLEncoding.EncodeToString([]byte(message)),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// PopFlash returns the pending flash message, if any, and clears it.
func PopFlash(w http.ResponseWriter, r *http.Request) string {
	cookie, err := r.Cookie(flashCookieName)
	if err != nil {
		return ""
	}

	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})

	message, err := base64.RawURLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return ""
	}
	return string(message)
}

// RedirectWithFlash sets a flash message and redirects with 303 so the
// browser re-requests with GET.
func RedirectWithFlash(w http.ResponseWriter, r *http.Request, url, message string) {
	SetFlash(w, message)
	http.Redirect(w, r, url, http.StatusSeeOther)
}

// NextURL resolves the caller-specified post-action redirect target. Only
// site-local paths are honored; anything else falls back.
func NextURL(r *http.Request, fallback string) string {
	next := r.URL.Query().Get("next")
	if next == "" {
		next = r.FormValue("next")
	}
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") {
		return fallback
	}
	return next
}
