package home

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/tamarside/rounders/internal/config"
	appdb "github.com/tamarside/rounders/internal/db"
	"github.com/tamarside/rounders/internal/testutil"
)

func fp(v float64) *float64 { return &v }

func setup(t *testing.T) *appdb.DB {
	t.Helper()

	database := testutil.NewTestDB(t)
	cfg := &config.Config{
		League: config.LeagueConfig{LastSeasonYear: 2025},
	}
	InitHandlers(database, cfg)
	return database
}

func TestHomePageRendersStandings(t *testing.T) {
	database := setup(t)
	ctx := context.Background()

	herons, err := database.Queries.CreateTeam(ctx, "Herons", 2025)
	if err != nil {
		t.Fatalf("seed team: %v", err)
	}
	otters, err := database.Queries.CreateTeam(ctx, "Otters", 2025)
	if err != nil {
		t.Fatalf("seed team: %v", err)
	}
	_, err = database.Queries.CreateMatch(ctx, appdb.CreateMatchParams{
		Team1ID: herons.ID, Team2ID: otters.ID, Score1: fp(12), Score2: fp(9),
	})
	if err != nil {
		t.Fatalf("seed match: %v", err)
	}

	w := httptest.NewRecorder()
	HandleHomePage(w, httptest.NewRequest("GET", "/", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "Standings 2025") {
		t.Error("missing standings heading")
	}

	// The winner sorts above the loser under the default ordering.
	heronsAt := strings.Index(body, "Herons")
	ottersAt := strings.Index(body, "Otters")
	if heronsAt < 0 || ottersAt < 0 {
		t.Fatal("team names missing from the table")
	}
	if heronsAt > ottersAt {
		t.Error("points leader not listed first")
	}
}

func TestHomePageSortByName(t *testing.T) {
	database := setup(t)
	ctx := context.Background()

	database.Queries.CreateTeam(ctx, "Zebras", 2025)
	database.Queries.CreateTeam(ctx, "Ants", 2025)

	w := httptest.NewRecorder()
	HandleHomePage(w, httptest.NewRequest("GET", "/?sortby=name", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	body := w.Body.String()
	if strings.Index(body, "Ants") > strings.Index(body, "Zebras") {
		t.Error("name sort not applied")
	}
}

func TestRulesPage(t *testing.T) {
	setup(t)

	w := httptest.NewRecorder()
	HandleRulesPage(w, httptest.NewRequest("GET", "/rules", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.Contains(ct, "text/html") {
		t.Errorf("content type = %q", ct)
	}
}
