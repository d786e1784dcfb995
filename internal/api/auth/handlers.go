// internal/api/auth/handlers.go
package auth

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/tamarside/rounders/internal/api/apiutil"
	"github.com/tamarside/rounders/internal/ratelimit"
	"github.com/tamarside/rounders/internal/templates/layouts"
	"github.com/tamarside/rounders/internal/templates/pages"
)

var loginLimiter = ratelimit.New(nil)

// GET /login
func HandleLoginPage(w http.ResponseWriter, r *http.Request) {
	flash := apiutil.PopFlash(w, r)
	page := layouts.Base("Admin Login", flash, pages.LoginPage())
	apiutil.RenderHTMLComponent(r.Context(), w, page,
		"Failed to render login page", "Failed to render page")
}

// POST /login
func HandleLogin(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	ip := ratelimit.ClientIP(r)
	if !loginLimiter.Allow(ip) {
		logger.Warn().Str("ip", ip).Msg("Login rate limited")
		apiutil.RedirectWithFlash(w, r, "/login", "Too many attempts, try again later")
		return
	}

	if err := r.ParseForm(); err != nil {
		apiutil.RedirectWithFlash(w, r, "/login", "Invalid login")
		return
	}

	username := r.PostFormValue("username")
	password := r.PostFormValue("password")
	if !VerifyAdmin(username, password) {
		if lockedOut := loginLimiter.RecordFailure(ip); lockedOut {
			logger.Warn().Str("ip", ip).Msg("Login lockout triggered")
		}
		logger.Warn().Str("username", username).Msg("Rejected login attempt")
		apiutil.RedirectWithFlash(w, r, "/login", "Invalid login")
		return
	}
	loginLimiter.Reset(ip)

	if err := CreateSession(w); err != nil {
		logger.Error().Err(err).Msg("Failed to create session")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	apiutil.RedirectWithFlash(w, r, "/", "Logged in")
}

// GET /logout
func HandleLogout(w http.ResponseWriter, r *http.Request) {
	ClearSession(w, r)
	apiutil.RedirectWithFlash(w, r, "/", "Logged out")
}
