// cmd/server/server.go
package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/tamarside/rounders/internal/api"
	"github.com/tamarside/rounders/internal/api/auth"
	"github.com/tamarside/rounders/internal/api/blog"
	"github.com/tamarside/rounders/internal/api/home"
	"github.com/tamarside/rounders/internal/api/matches"
	"github.com/tamarside/rounders/internal/api/players"
	"github.com/tamarside/rounders/internal/api/teams"
	"github.com/tamarside/rounders/internal/config"
)

func newServer(cfg *config.Config) *http.Server {
	router := http.NewServeMux()

	handler := api.ChainMiddleware(
		router,
		api.WithLogging,
		api.WithRecovery,
		api.WithRequestID,
	)

	registerRoutes(router, cfg)

	return &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

func registerRoutes(mux *http.ServeMux, cfg *config.Config) {
	// JSON API
	mux.HandleFunc("GET /api/teams", teams.HandleTeamsList)
	mux.HandleFunc("GET /api/teams/{id}", teams.HandleTeamGet)
	mux.HandleFunc("GET /api/teams/{id}/members", teams.HandleTeamMembers)
	mux.HandleFunc("GET /api/players", players.HandlePlayersList)
	mux.HandleFunc("GET /api/players/{id}", players.HandlePlayerGet)
	mux.HandleFunc("GET /api/matches", matches.HandleMatchesList)
	mux.HandleFunc("GET /api/matches/{id}", matches.HandleMatchGet)

	// HTML pages
	mux.HandleFunc("GET /{$}", home.HandleHomePage)
	mux.HandleFunc("GET /rules", home.HandleRulesPage)
	mux.HandleFunc("GET /teams", teams.HandleTeamsPage)
	mux.HandleFunc("GET /teams/{id}", teams.HandleTeamDetailPage)
	mux.HandleFunc("GET /matches", matches.HandleMatchesPage)
	mux.HandleFunc("GET /matches/{id}", matches.HandleMatchDetailPage)
	mux.HandleFunc("GET /blog", blog.HandleBlogPage)

	// Session
	mux.HandleFunc("GET /login", auth.HandleLoginPage)
	mux.HandleFunc("POST /login", auth.HandleLogin)
	mux.HandleFunc("GET /logout", auth.HandleLogout)

	// Admin mutations
	mux.Handle("POST /teams/create", auth.RequireAdmin(http.HandlerFunc(teams.HandleCreateTeam)))
	mux.Handle("POST /teams/{id}/edit", auth.RequireAdmin(http.HandlerFunc(teams.HandleEditTeam)))
	mux.Handle("POST /teams/delete", auth.RequireAdmin(http.HandlerFunc(teams.HandleDeleteTeams)))
	mux.Handle("POST /matches/create", auth.RequireAdmin(http.HandlerFunc(matches.HandleCreateMatch)))
	mux.Handle("POST /matches/{id}/edit", auth.RequireAdmin(http.HandlerFunc(matches.HandleEditMatch)))
	mux.Handle("POST /matches/delete", auth.RequireAdmin(http.HandlerFunc(matches.HandleDeleteMatches)))
	mux.Handle("POST /blog/create", auth.RequireAdmin(http.HandlerFunc(blog.HandleCreateEntry)))
	mux.Handle("POST /blog/{id}/delete", auth.RequireAdmin(http.HandlerFunc(blog.HandleDeleteEntry)))

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Static assets and uploaded photos
	staticDir := os.Getenv("STATIC_DIR")
	if staticDir == "" {
		staticDir = "static"
	}
	mux.Handle("GET /static/",
		http.StripPrefix("/static/", http.FileServer(http.Dir(staticDir))))
	mux.Handle("GET /uploads/",
		http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.Uploads.Dir))))
}
