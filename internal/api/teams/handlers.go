// internal/api/teams/handlers.go
package teams

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/tamarside/rounders/internal/api/apiutil"
	"github.com/tamarside/rounders/internal/api/auth"
	"github.com/tamarside/rounders/internal/config"
	appdb "github.com/tamarside/rounders/internal/db"
	"github.com/tamarside/rounders/internal/league"
	"github.com/tamarside/rounders/internal/models"
	"github.com/tamarside/rounders/internal/templates/layouts"
	"github.com/tamarside/rounders/internal/templates/pages"
)

const teamQueryTimeout = 5 * time.Second

var (
	database  *appdb.DB
	appConfig *config.Config
)

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(db *appdb.DB, cfg *config.Config) {
	database = db
	appConfig = cfg
}

// GET /api/teams
func HandleTeamsList(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	year, err := apiutil.QueryInt64(r, "year")
	if err != nil {
		apiutil.WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	params := apiutil.PageParamsFromRequest(r,
		appConfig.Pagination.DefaultPageSize, appConfig.Pagination.MaxPageSize)

	ctx, cancel := context.WithTimeout(r.Context(), teamQueryTimeout)
	defer cancel()

	// Fetch one row beyond the page to detect a next page.
	teams, err := database.Queries.ListTeams(ctx, appdb.ListTeamsParams{
		Year:   year,
		Limit:  params.PerPage + 1,
		Offset: params.Offset(),
	})
	if err != nil {
		logger.Error().Err(err).Msg("Failed to list teams")
		apiutil.WriteJSONError(w, http.StatusInternalServerError, "Failed to list teams")
		return
	}

	hasNext := len(teams) > params.PerPage
	if hasNext {
		teams = teams[:params.PerPage]
	}
	if teams == nil {
		teams = []models.Team{}
	}

	_ = apiutil.WriteJSON(w, http.StatusOK, apiutil.Envelope{
		Data:       teams,
		Pagination: apiutil.PageOf(params, hasNext),
	})
}

// GET /api/teams/{id}
func HandleTeamGet(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	id, err := apiutil.PathID(r)
	if err != nil {
		apiutil.WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), teamQueryTimeout)
	defer cancel()

	team, err := database.Queries.GetTeam(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			apiutil.WriteJSONError(w, http.StatusNotFound, "team not found")
			return
		}
		logger.Error().Err(err).Int64("team_id", id).Msg("Failed to get team")
		apiutil.WriteJSONError(w, http.StatusInternalServerError, "Failed to get team")
		return
	}

	_ = apiutil.WriteJSON(w, http.StatusOK, team)
}

// GET /api/teams/{id}/members
func HandleTeamMembers(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	id, err := apiutil.PathID(r)
	if err != nil {
		apiutil.WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	params := apiutil.PageParamsFromRequest(r,
		appConfig.Pagination.DefaultPageSize, appConfig.Pagination.MaxPageSize)

	ctx, cancel := context.WithTimeout(r.Context(), teamQueryTimeout)
	defer cancel()

	if _, err := database.Queries.GetTeam(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			apiutil.WriteJSONError(w, http.StatusNotFound, "team not found")
			return
		}
		logger.Error().Err(err).Int64("team_id", id).Msg("Failed to get team")
		apiutil.WriteJSONError(w, http.StatusInternalServerError, "Failed to get team")
		return
	}

	players, err := database.Queries.ListTeamMembers(ctx, id, params.PerPage+1, params.Offset())
	if err != nil {
		logger.Error().Err(err).Int64("team_id", id).Msg("Failed to list team members")
		apiutil.WriteJSONError(w, http.StatusInternalServerError, "Failed to list team members")
		return
	}

	hasNext := len(players) > params.PerPage
	if hasNext {
		players = players[:params.PerPage]
	}
	if players == nil {
		players = []models.Player{}
	}

	_ = apiutil.WriteJSON(w, http.StatusOK, apiutil.Envelope{
		Data:       players,
		Pagination: apiutil.PageOf(params, hasNext),
	})
}

// GET /teams
func HandleTeamsPage(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	year, err := apiutil.QueryInt64(r, "year")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), teamQueryTimeout)
	defer cancel()

	teams, err := database.Queries.ListTeams(ctx, appdb.ListTeamsParams{
		Year:  year,
		Limit: appConfig.Pagination.MaxPageSize,
	})
	if err != nil {
		logger.Error().Err(err).Msg("Failed to list teams")
		http.Error(w, "Failed to load teams", http.StatusInternalServerError)
		return
	}

	flash := apiutil.PopFlash(w, r)
	page := layouts.Base("Teams", flash, pages.TeamsPage(teams, auth.IsAuthenticated(r)))
	apiutil.RenderHTMLComponent(r.Context(), w, page,
		"Failed to render teams page", "Failed to render page")
}

// GET /teams/{id}
func HandleTeamDetailPage(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	id, err := apiutil.PathID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), teamQueryTimeout)
	defer cancel()

	team, err := database.Queries.GetTeam(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.NotFound(w, r)
			return
		}
		logger.Error().Err(err).Int64("team_id", id).Msg("Failed to get team")
		http.Error(w, "Failed to load team", http.StatusInternalServerError)
		return
	}

	roster, err := database.Queries.ListTeamMembers(ctx, id, appConfig.Pagination.MaxPageSize, 0)
	if err != nil {
		logger.Error().Err(err).Int64("team_id", id).Msg("Failed to list roster")
		http.Error(w, "Failed to load team", http.StatusInternalServerError)
		return
	}

	matches, err := database.Queries.ListTeamMatches(ctx, id)
	if err != nil {
		logger.Error().Err(err).Int64("team_id", id).Msg("Failed to list team matches")
		http.Error(w, "Failed to load team", http.StatusInternalServerError)
		return
	}
	league.SortMatchesByDateDesc(matches)

	rows, err := matchRows(ctx, matches)
	if err != nil {
		logger.Error().Err(err).Int64("team_id", id).Msg("Failed to resolve match teams")
		http.Error(w, "Failed to load team", http.StatusInternalServerError)
		return
	}

	flash := apiutil.PopFlash(w, r)
	page := layouts.Base(team.Name, flash,
		pages.TeamDetailPage(team, roster, rows, auth.IsAuthenticated(r)))
	apiutil.RenderHTMLComponent(r.Context(), w, page,
		"Failed to render team page", "Failed to render page")
}

// POST /teams/create
func HandleCreateTeam(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())
	next := apiutil.NextURL(r, "/teams")

	if err := r.ParseForm(); err != nil {
		apiutil.RedirectWithFlash(w, r, next, "Invalid form submission")
		return
	}

	name := r.PostFormValue("name")
	if name == "" {
		apiutil.RedirectWithFlash(w, r, next, "Invalid team name")
		return
	}

	yearValue, err := apiutil.QueryInt64(r, "year")
	if err != nil {
		apiutil.RedirectWithFlash(w, r, next, "Invalid year specified")
		return
	}
	if yearValue == nil {
		parsed, err := apiutil.ParseIDList([]string{r.PostFormValue("year")})
		if err != nil || len(parsed) != 1 {
			apiutil.RedirectWithFlash(w, r, next, "Invalid year specified")
			return
		}
		yearValue = &parsed[0]
	}

	names, err := parsePlayerNames(r.PostFormValue("players"))
	if err != nil {
		apiutil.RedirectWithFlash(w, r, next, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), teamQueryTimeout)
	defer cancel()

	// The team and its roster commit together or not at all.
	err = database.RunInTx(ctx, func(tx *appdb.DB) error {
		team, err := tx.Queries.CreateTeam(ctx, name, *yearValue)
		if err != nil {
			return err
		}
		for _, pn := range names {
			player, err := tx.Queries.CreatePlayer(ctx, pn.first, pn.last)
			if err != nil {
				return err
			}
			if err := tx.Queries.AddMember(ctx, player.ID, team.ID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		logger.Error().Err(err).Str("name", name).Msg("Failed to create team")
		apiutil.RedirectWithFlash(w, r, next, "Could not create team")
		return
	}

	apiutil.RedirectWithFlash(w, r, next, fmt.Sprintf("Created team '%s'", name))
}

// POST /teams/{id}/edit
func HandleEditTeam(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	id, err := apiutil.PathID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	next := apiutil.NextURL(r, fmt.Sprintf("/teams/%d", id))

	if err := r.ParseForm(); err != nil {
		apiutil.RedirectWithFlash(w, r, next, "Invalid form submission")
		return
	}
	name := r.PostFormValue("name")
	if name == "" {
		apiutil.RedirectWithFlash(w, r, next, "Invalid team name")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), teamQueryTimeout)
	defer cancel()

	if _, err := database.Queries.GetTeam(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.NotFound(w, r)
			return
		}
		logger.Error().Err(err).Int64("team_id", id).Msg("Failed to get team")
		http.Error(w, "Failed to update team", http.StatusInternalServerError)
		return
	}

	if err := database.Queries.UpdateTeamName(ctx, id, name); err != nil {
		logger.Error().Err(err).Int64("team_id", id).Msg("Failed to update team")
		http.Error(w, "Failed to update team", http.StatusInternalServerError)
		return
	}

	apiutil.RedirectWithFlash(w, r, next, "Team updated")
}

// POST /teams/delete
func HandleDeleteTeams(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())
	next := apiutil.NextURL(r, "/teams")

	if err := r.ParseForm(); err != nil {
		apiutil.RedirectWithFlash(w, r, next, "Invalid form submission")
		return
	}

	ids, err := apiutil.ParseIDList(r.PostForm["teams"])
	if err != nil {
		apiutil.RedirectWithFlash(w, r, next, "Invalid team selection")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), teamQueryTimeout)
	defer cancel()

	existing, err := database.Queries.ListTeamsByIDs(ctx, ids)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to look up teams")
		http.Error(w, "Failed to remove teams", http.StatusInternalServerError)
		return
	}
	if len(existing) == 0 {
		apiutil.RedirectWithFlash(w, r, next, "No teams removed")
		return
	}

	// Dependent matches, then members, then the teams themselves: the order
	// keeps foreign keys satisfied at every step of the transaction.
	err = database.RunInTx(ctx, func(tx *appdb.DB) error {
		if err := tx.Queries.DeleteMatchesByTeamIDs(ctx, ids); err != nil {
			return err
		}
		if err := tx.Queries.DeleteMembersByTeamIDs(ctx, ids); err != nil {
			return err
		}
		_, err := tx.Queries.DeleteTeams(ctx, ids)
		return err
	})
	if err != nil {
		logger.Error().Err(err).Msg("Failed to remove teams")
		http.Error(w, "Failed to remove teams", http.StatusInternalServerError)
		return
	}

	apiutil.RedirectWithFlash(w, r, next, fmt.Sprintf("%d team(s) removed", len(existing)))
}

type playerName struct {
	first string
	last  string
}

// parsePlayerNames splits a textarea of roster names, one per line. The last
// word is the surname; everything before it is the first name.
func parsePlayerNames(raw string) ([]playerName, error) {
	var names []playerName
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		words := strings.Fields(line)
		if len(words) < 2 {
			return nil, fmt.Errorf("player %q needs a first and last name", line)
		}
		names = append(names, playerName{
			first: strings.Join(words[:len(words)-1], " "),
			last:  words[len(words)-1],
		})
	}
	return names, nil
}

// matchRows resolves team display names for a set of matches.
func matchRows(ctx context.Context, matches []models.Match) ([]pages.MatchRow, error) {
	idSet := make(map[int64]struct{})
	for _, m := range matches {
		idSet[m.Team1ID] = struct{}{}
		idSet[m.Team2ID] = struct{}{}
	}
	ids := make([]int64, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}

	teams, err := database.Queries.ListTeamsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	names := make(map[int64]string, len(teams))
	for _, t := range teams {
		names[t.ID] = t.Name
	}

	rows := make([]pages.MatchRow, 0, len(matches))
	for _, m := range matches {
		rows = append(rows, pages.MatchRow{
			Match:     m,
			Team1Name: names[m.Team1ID],
			Team2Name: names[m.Team2ID],
		})
	}
	return rows, nil
}
