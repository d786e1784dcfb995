// internal/api/matches/handlers.go
package matches

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strconv"
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

const matchQueryTimeout = 5 * time.Second

var (
	database  *appdb.DB
	appConfig *config.Config
)

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(db *appdb.DB, cfg *config.Config) {
	database = db
	appConfig = cfg
}

// GET /api/matches
func HandleMatchesList(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	teamID, err := apiutil.QueryInt64(r, "teamid")
	if err != nil {
		apiutil.WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	before, err := apiutil.QueryInt64(r, "before")
	if err != nil {
		apiutil.WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	after, err := apiutil.QueryInt64(r, "after")
	if err != nil {
		apiutil.WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	params := apiutil.PageParamsFromRequest(r,
		appConfig.Pagination.DefaultPageSize, appConfig.Pagination.MaxPageSize)

	ctx, cancel := context.WithTimeout(r.Context(), matchQueryTimeout)
	defer cancel()

	matches, err := database.Queries.ListMatches(ctx, appdb.ListMatchesParams{
		TeamID: teamID,
		Before: before,
		After:  after,
		Limit:  params.PerPage + 1,
		Offset: params.Offset(),
	})
	if err != nil {
		logger.Error().Err(err).Msg("Failed to list matches")
		apiutil.WriteJSONError(w, http.StatusInternalServerError, "Failed to list matches")
		return
	}

	hasNext := len(matches) > params.PerPage
	if hasNext {
		matches = matches[:params.PerPage]
	}
	if matches == nil {
		matches = []models.Match{}
	}

	_ = apiutil.WriteJSON(w, http.StatusOK, apiutil.Envelope{
		Data:       matches,
		Pagination: apiutil.PageOf(params, hasNext),
	})
}

// GET /api/matches/{id}
func HandleMatchGet(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	id, err := apiutil.PathID(r)
	if err != nil {
		apiutil.WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), matchQueryTimeout)
	defer cancel()

	match, err := database.Queries.GetMatch(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			apiutil.WriteJSONError(w, http.StatusNotFound, "match not found")
			return
		}
		logger.Error().Err(err).Int64("match_id", id).Msg("Failed to get match")
		apiutil.WriteJSONError(w, http.StatusInternalServerError, "Failed to get match")
		return
	}

	_ = apiutil.WriteJSON(w, http.StatusOK, match)
}

// GET /matches
func HandleMatchesPage(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), matchQueryTimeout)
	defer cancel()

	year := appConfig.League.LastSeasonYear
	matches, err := database.Queries.ListSeasonMatches(ctx, year)
	if err != nil {
		logger.Error().Err(err).Int64("year", year).Msg("Failed to list season matches")
		http.Error(w, "Failed to load matches", http.StatusInternalServerError)
		return
	}

	teams, err := database.Queries.ListTeamsByYear(ctx, year)
	if err != nil {
		logger.Error().Err(err).Int64("year", year).Msg("Failed to list teams")
		http.Error(w, "Failed to load matches", http.StatusInternalServerError)
		return
	}
	names := make(map[int64]string, len(teams))
	for _, t := range teams {
		names[t.ID] = t.Name
	}

	weeks := make([]pages.MatchWeek, 0)
	for _, group := range league.GroupByWeek(matches) {
		rows := make([]pages.MatchRow, 0, len(group.Matches))
		for _, m := range group.Matches {
			rows = append(rows, pages.MatchRow{
				Match:     m,
				Team1Name: names[m.Team1ID],
				Team2Name: names[m.Team2ID],
			})
		}
		weeks = append(weeks, pages.MatchWeek{
			Heading: weekHeading(group.WeekStart),
			Matches: rows,
		})
	}

	flash := apiutil.PopFlash(w, r)
	page := layouts.Base("Matches", flash,
		pages.MatchesPage(weeks, teams, auth.IsAuthenticated(r)))
	apiutil.RenderHTMLComponent(r.Context(), w, page,
		"Failed to render matches page", "Failed to render page")
}

// GET /matches/{id}
func HandleMatchDetailPage(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	id, err := apiutil.PathID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), matchQueryTimeout)
	defer cancel()

	match, err := database.Queries.GetMatch(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.NotFound(w, r)
			return
		}
		logger.Error().Err(err).Int64("match_id", id).Msg("Failed to get match")
		http.Error(w, "Failed to load match", http.StatusInternalServerError)
		return
	}

	rows, err := matchRows(ctx, []models.Match{match})
	if err != nil {
		logger.Error().Err(err).Int64("match_id", id).Msg("Failed to resolve match teams")
		http.Error(w, "Failed to load match", http.StatusInternalServerError)
		return
	}

	title := fmt.Sprintf("%s vs %s", rows[0].Team1Name, rows[0].Team2Name)
	flash := apiutil.PopFlash(w, r)
	page := layouts.Base(title, flash,
		pages.MatchDetailPage(rows[0], auth.IsAuthenticated(r)))
	apiutil.RenderHTMLComponent(r.Context(), w, page,
		"Failed to render match page", "Failed to render page")
}

// POST /matches/create
func HandleCreateMatch(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())
	next := apiutil.NextURL(r, "/matches")

	if err := r.ParseForm(); err != nil {
		apiutil.RedirectWithFlash(w, r, next, "Invalid form submission")
		return
	}

	team1, err1 := strconv.ParseInt(r.PostFormValue("team1"), 10, 64)
	team2, err2 := strconv.ParseInt(r.PostFormValue("team2"), 10, 64)
	if err1 != nil || err2 != nil {
		apiutil.RedirectWithFlash(w, r, next, "Invalid team selection")
		return
	}
	if team1 == team2 {
		apiutil.RedirectWithFlash(w, r, next, "A team cannot play itself")
		return
	}

	playDate, err := parsePlayDate(r.PostFormValue("date"), r.PostFormValue("time"))
	if err != nil {
		apiutil.RedirectWithFlash(w, r, next, "Invalid date or time")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), matchQueryTimeout)
	defer cancel()

	for _, teamID := range []int64{team1, team2} {
		if _, err := database.Queries.GetTeam(ctx, teamID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				apiutil.RedirectWithFlash(w, r, next, "Invalid team selection")
				return
			}
			logger.Error().Err(err).Int64("team_id", teamID).Msg("Failed to get team")
			http.Error(w, "Failed to create match", http.StatusInternalServerError)
			return
		}
	}

	if _, err := database.Queries.CreateMatch(ctx, appdb.CreateMatchParams{
		Team1ID:  team1,
		Team2ID:  team2,
		PlayDate: playDate,
	}); err != nil {
		logger.Error().Err(err).Msg("Failed to create match")
		http.Error(w, "Failed to create match", http.StatusInternalServerError)
		return
	}

	apiutil.RedirectWithFlash(w, r, next, "Match created")
}

// POST /matches/{id}/edit
func HandleEditMatch(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	id, err := apiutil.PathID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	next := apiutil.NextURL(r, fmt.Sprintf("/matches/%d", id))

	if err := r.ParseForm(); err != nil {
		apiutil.RedirectWithFlash(w, r, next, "Invalid form submission")
		return
	}

	var innings [4]*float64
	for i, field := range []string{"score1_in1", "score1_in2", "score2_in1", "score2_in2"} {
		value, err := parseInning(r.PostFormValue(field))
		if err != nil {
			apiutil.RedirectWithFlash(w, r, next, "Invalid score")
			return
		}
		innings[i] = value
	}

	playDate, err := parsePlayDate(r.PostFormValue("date"), r.PostFormValue("time"))
	if err != nil {
		apiutil.RedirectWithFlash(w, r, next, "Invalid date or time")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), matchQueryTimeout)
	defer cancel()

	if _, err := database.Queries.GetMatch(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.NotFound(w, r)
			return
		}
		logger.Error().Err(err).Int64("match_id", id).Msg("Failed to get match")
		http.Error(w, "Failed to update match", http.StatusInternalServerError)
		return
	}

	err = database.Queries.UpdateMatch(ctx, appdb.UpdateMatchParams{
		ID:        id,
		Score1:    models.ScoreFromInnings(innings[0], innings[1]),
		Score2:    models.ScoreFromInnings(innings[2], innings[3]),
		Score1In1: innings[0],
		Score2In1: innings[2],
		PlayDate:  playDate,
	})
	if err != nil {
		logger.Error().Err(err).Int64("match_id", id).Msg("Failed to update match")
		http.Error(w, "Failed to update match", http.StatusInternalServerError)
		return
	}

	apiutil.RedirectWithFlash(w, r, next, "Match updated")
}

// POST /matches/delete
func HandleDeleteMatches(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())
	next := apiutil.NextURL(r, "/matches")

	if err := r.ParseForm(); err != nil {
		apiutil.RedirectWithFlash(w, r, next, "Invalid form submission")
		return
	}

	ids, err := apiutil.ParseIDList(r.PostForm["matches"])
	if err != nil {
		apiutil.RedirectWithFlash(w, r, next, "Invalid match selection")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), matchQueryTimeout)
	defer cancel()

	removed, err := database.Queries.DeleteMatches(ctx, ids)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to remove matches")
		http.Error(w, "Failed to remove matches", http.StatusInternalServerError)
		return
	}
	if removed == 0 {
		apiutil.RedirectWithFlash(w, r, next, "No matches removed")
		return
	}

	apiutil.RedirectWithFlash(w, r, next, fmt.Sprintf("%d match(es) removed", removed))
}

// parsePlayDate combines the form's date and time fields into a Unix
// timestamp. An empty date leaves the match unscheduled; an empty time
// defaults to midnight.
func parsePlayDate(date, clock string) (*int64, error) {
	if date == "" {
		return nil, nil
	}
	if clock == "" {
		clock = "00:00"
	}
	t, err := time.ParseInLocation("2006-01-02 15:04", date+" "+clock, time.UTC)
	if err != nil {
		return nil, err
	}
	ts := t.Unix()
	return &ts, nil
}

func parseInning(raw string) (*float64, error) {
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil || value < 0 {
		return nil, fmt.Errorf("invalid score %q", raw)
	}
	return &value, nil
}

func weekHeading(weekStart *int64) string {
	if weekStart == nil {
		return "Unscheduled"
	}
	return "Week of " + time.Unix(*weekStart, 0).UTC().Format("Monday 2 January 2006")
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
