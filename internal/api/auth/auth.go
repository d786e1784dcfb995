// internal/api/auth/auth.go
package auth

import (
	"net/http"

	"github.com/tamarside/rounders/internal/api/apiutil"
	"github.com/tamarside/rounders/internal/config"
)

var appConfig *config.Config

// Init must be called during server startup before handling requests.
func Init(cfg *config.Config) {
	appConfig = cfg
}

// VerifyAdmin checks the single admin credential. The username is a fixed
// literal; the password is compared against the bcrypt hash from the
// environment. An unset hash means nobody can log in.
func VerifyAdmin(username, password string) bool {
	if appConfig == nil || appConfig.AdminPasswordHash == "" {
		return false
	}
	if username != config.AdminUsername {
		return false
	}
	return VerifyPassword(appConfig.AdminPasswordHash, password)
}

// RequireAdmin gates mutating routes behind an authenticated session,
// redirecting to the login page otherwise.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !IsAuthenticated(r) {
			apiutil.RedirectWithFlash(w, r, "/login", "Please log in")
			return
		}
		next.ServeHTTP(w, r)
	})
}
