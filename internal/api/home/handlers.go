// internal/api/home/handlers.go
package home

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/tamarside/rounders/internal/api/apiutil"
	"github.com/tamarside/rounders/internal/config"
	appdb "github.com/tamarside/rounders/internal/db"
	"github.com/tamarside/rounders/internal/league"
	"github.com/tamarside/rounders/internal/templates/layouts"
	"github.com/tamarside/rounders/internal/templates/pages"
)

const homeQueryTimeout = 5 * time.Second

var (
	database  *appdb.DB
	appConfig *config.Config
)

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(db *appdb.DB, cfg *config.Config) {
	database = db
	appConfig = cfg
}

// GET /
func HandleHomePage(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), homeQueryTimeout)
	defer cancel()

	year := appConfig.League.LastSeasonYear
	teams, err := database.Queries.ListTeamsByYear(ctx, year)
	if err != nil {
		logger.Error().Err(err).Int64("year", year).Msg("Failed to list teams")
		http.Error(w, "Failed to load standings", http.StatusInternalServerError)
		return
	}

	matches, err := database.Queries.ListSeasonMatches(ctx, year)
	if err != nil {
		logger.Error().Err(err).Int64("year", year).Msg("Failed to list season matches")
		http.Error(w, "Failed to load standings", http.StatusInternalServerError)
		return
	}

	standings := league.Compute(teams, matches)
	league.Sort(standings, r.URL.Query().Get("sortby"))

	flash := apiutil.PopFlash(w, r)
	page := layouts.Base(fmt.Sprintf("Standings %d", year), flash,
		pages.Home(year, standings))
	apiutil.RenderHTMLComponent(r.Context(), w, page,
		"Failed to render standings page", "Failed to render page")
}

// GET /rules
func HandleRulesPage(w http.ResponseWriter, r *http.Request) {
	flash := apiutil.PopFlash(w, r)
	page := layouts.Base("Rules", flash, pages.RulesPage())
	apiutil.RenderHTMLComponent(r.Context(), w, page,
		"Failed to render rules page", "Failed to render page")
}
