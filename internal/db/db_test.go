package db_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/tamarside/rounders/internal/db"
	"github.com/tamarside/rounders/internal/testutil"
)

func fp(v float64) *float64 { return &v }
func ip(v int64) *int64     { return &v }

func TestTeamLifecycle(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()

	team, err := database.Queries.CreateTeam(ctx, "Herons", 2025)
	if err != nil {
		t.Fatalf("create team: %v", err)
	}
	if team.ID == 0 {
		t.Fatal("created team has no id")
	}

	got, err := database.Queries.GetTeam(ctx, team.ID)
	if err != nil {
		t.Fatalf("get team: %v", err)
	}
	if got.Name != "Herons" || got.Year != 2025 {
		t.Errorf("got %+v", got)
	}

	if err := database.Queries.UpdateTeamName(ctx, team.ID, "Grey Herons"); err != nil {
		t.Fatalf("update team: %v", err)
	}
	got, err = database.Queries.GetTeam(ctx, team.ID)
	if err != nil {
		t.Fatalf("get team after rename: %v", err)
	}
	if got.Name != "Grey Herons" {
		t.Errorf("name = %q after rename", got.Name)
	}

	if _, err := database.Queries.GetTeam(ctx, 9999); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("unknown id error = %v, want sql.ErrNoRows", err)
	}
}

func TestListTeamsYearFilter(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()

	for _, seed := range []struct {
		name string
		year int64
	}{{"A", 2024}, {"B", 2025}, {"C", 2025}} {
		if _, err := database.Queries.CreateTeam(ctx, seed.name, seed.year); err != nil {
			t.Fatalf("seed team: %v", err)
		}
	}

	teams, err := database.Queries.ListTeams(ctx, db.ListTeamsParams{Year: ip(2025), Limit: 10})
	if err != nil {
		t.Fatalf("list teams: %v", err)
	}
	if len(teams) != 2 {
		t.Errorf("got %d teams for 2025, want 2", len(teams))
	}

	all, err := database.Queries.ListTeams(ctx, db.ListTeamsParams{Limit: 10})
	if err != nil {
		t.Fatalf("list all teams: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("got %d teams, want 3", len(all))
	}

	paged, err := database.Queries.ListTeams(ctx, db.ListTeamsParams{Limit: 2, Offset: 2})
	if err != nil {
		t.Fatalf("list teams offset: %v", err)
	}
	if len(paged) != 1 {
		t.Errorf("got %d teams past offset 2, want 1", len(paged))
	}
}

func TestRosterMembership(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()

	team, err := database.Queries.CreateTeam(ctx, "Herons", 2025)
	if err != nil {
		t.Fatalf("create team: %v", err)
	}
	alice, err := database.Queries.CreatePlayer(ctx, "Alice", "Adams")
	if err != nil {
		t.Fatalf("create player: %v", err)
	}
	bob, err := database.Queries.CreatePlayer(ctx, "Bob", "Brown")
	if err != nil {
		t.Fatalf("create player: %v", err)
	}

	for _, id := range []int64{alice.ID, bob.ID} {
		if err := database.Queries.AddMember(ctx, id, team.ID); err != nil {
			t.Fatalf("add member: %v", err)
		}
	}

	roster, err := database.Queries.ListTeamMembers(ctx, team.ID, 10, 0)
	if err != nil {
		t.Fatalf("list members: %v", err)
	}
	if len(roster) != 2 {
		t.Fatalf("roster size = %d, want 2", len(roster))
	}

	// Unknown player id must be rejected by the foreign key.
	if err := database.Queries.AddMember(ctx, 9999, team.ID); err == nil {
		t.Error("member insert with unknown player id succeeded")
	}
}

func TestListMatchesFilters(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()

	t1, _ := database.Queries.CreateTeam(ctx, "A", 2025)
	t2, _ := database.Queries.CreateTeam(ctx, "B", 2025)
	t3, _ := database.Queries.CreateTeam(ctx, "C", 2025)

	seed := []db.CreateMatchParams{
		{Team1ID: t1.ID, Team2ID: t2.ID, PlayDate: ip(100)},
		{Team1ID: t2.ID, Team2ID: t3.ID, PlayDate: ip(200)},
		{Team1ID: t3.ID, Team2ID: t1.ID, PlayDate: ip(300)},
		{Team1ID: t1.ID, Team2ID: t3.ID}, // unscheduled
	}
	for _, params := range seed {
		if _, err := database.Queries.CreateMatch(ctx, params); err != nil {
			t.Fatalf("create match: %v", err)
		}
	}

	before, err := database.Queries.ListMatches(ctx, db.ListMatchesParams{Before: ip(250), Limit: 10})
	if err != nil {
		t.Fatalf("list before: %v", err)
	}
	if len(before) != 2 {
		t.Errorf("before=250 returned %d matches, want 2", len(before))
	}

	after, err := database.Queries.ListMatches(ctx, db.ListMatchesParams{After: ip(200), Limit: 10})
	if err != nil {
		t.Fatalf("list after: %v", err)
	}
	if len(after) != 2 {
		t.Errorf("after=200 returned %d matches, want 2", len(after))
	}

	team, err := database.Queries.ListMatches(ctx, db.ListMatchesParams{TeamID: &t1.ID, Limit: 10})
	if err != nil {
		t.Fatalf("list by team: %v", err)
	}
	if len(team) != 3 {
		t.Errorf("team filter returned %d matches, want 3", len(team))
	}

	window, err := database.Queries.ListMatches(ctx, db.ListMatchesParams{
		After: ip(150), Before: ip(250), TeamID: &t2.ID, Limit: 10,
	})
	if err != nil {
		t.Fatalf("list window: %v", err)
	}
	if len(window) != 1 || *window[0].PlayDate != 200 {
		t.Errorf("combined filters returned %+v", window)
	}
}

func TestUpdateMatchScores(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()

	t1, _ := database.Queries.CreateTeam(ctx, "A", 2025)
	t2, _ := database.Queries.CreateTeam(ctx, "B", 2025)
	match, err := database.Queries.CreateMatch(ctx, db.CreateMatchParams{
		Team1ID: t1.ID, Team2ID: t2.ID,
	})
	if err != nil {
		t.Fatalf("create match: %v", err)
	}

	err = database.Queries.UpdateMatch(ctx, db.UpdateMatchParams{
		ID:        match.ID,
		Score1:    fp(14.5),
		Score2:    fp(12),
		Score1In1: fp(8),
		Score2In1: fp(5),
		PlayDate:  ip(500),
	})
	if err != nil {
		t.Fatalf("update match: %v", err)
	}

	got, err := database.Queries.GetMatch(ctx, match.ID)
	if err != nil {
		t.Fatalf("get match: %v", err)
	}
	if got.Score1 == nil || *got.Score1 != 14.5 || got.Score1In1 == nil || *got.Score1In1 != 8 {
		t.Errorf("scores not persisted: %+v", got)
	}
	if got.PlayDate == nil || *got.PlayDate != 500 {
		t.Errorf("play date not persisted: %+v", got)
	}
}

func TestSeasonMatchesRequireBothSidesInYear(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()

	old, _ := database.Queries.CreateTeam(ctx, "Old", 2024)
	t1, _ := database.Queries.CreateTeam(ctx, "A", 2025)
	t2, _ := database.Queries.CreateTeam(ctx, "B", 2025)

	database.Queries.CreateMatch(ctx, db.CreateMatchParams{Team1ID: t1.ID, Team2ID: t2.ID})
	database.Queries.CreateMatch(ctx, db.CreateMatchParams{Team1ID: t1.ID, Team2ID: old.ID})

	matches, err := database.Queries.ListSeasonMatches(ctx, 2025)
	if err != nil {
		t.Fatalf("list season matches: %v", err)
	}
	if len(matches) != 1 {
		t.Errorf("got %d season matches, want 1", len(matches))
	}
}

func TestCascadingTeamDelete(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()

	doomed, _ := database.Queries.CreateTeam(ctx, "Doomed", 2025)
	keeper, _ := database.Queries.CreateTeam(ctx, "Keeper", 2025)

	player, _ := database.Queries.CreatePlayer(ctx, "Alice", "Adams")
	if err := database.Queries.AddMember(ctx, player.ID, doomed.ID); err != nil {
		t.Fatalf("add member: %v", err)
	}
	database.Queries.CreateMatch(ctx, db.CreateMatchParams{Team1ID: doomed.ID, Team2ID: keeper.ID})

	ids := []int64{doomed.ID}
	err := database.RunInTx(ctx, func(tx *db.DB) error {
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
		t.Fatalf("cascade delete: %v", err)
	}

	if _, err := database.Queries.GetTeam(ctx, doomed.ID); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("deleted team still readable: %v", err)
	}
	if _, err := database.Queries.GetTeam(ctx, keeper.ID); err != nil {
		t.Errorf("unrelated team lost: %v", err)
	}

	matches, err := database.Queries.ListTeamMatches(ctx, keeper.ID)
	if err != nil {
		t.Fatalf("list keeper matches: %v", err)
	}
	if len(matches) != 0 {
		t.Errorf("matches referencing the deleted team survived: %d", len(matches))
	}
}

func TestRunInTxRollsBack(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()

	sentinel := errors.New("boom")
	err := database.RunInTx(ctx, func(tx *db.DB) error {
		if _, err := tx.Queries.CreateTeam(ctx, "Ghost", 2025); err != nil {
			return err
		}
		return sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("RunInTx error = %v, want sentinel", err)
	}

	teams, err := database.Queries.ListTeams(ctx, db.ListTeamsParams{Limit: 10})
	if err != nil {
		t.Fatalf("list teams: %v", err)
	}
	if len(teams) != 0 {
		t.Errorf("rolled-back team visible: %+v", teams)
	}
}

func TestBlogEntries(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()

	text := "First session of the season."
	entry, err := database.Queries.CreateEntry(ctx, "Opening day", &text, 1000)
	if err != nil {
		t.Fatalf("create entry: %v", err)
	}
	if _, err := database.Queries.CreateEntry(ctx, "Later post", nil, 2000); err != nil {
		t.Fatalf("create entry: %v", err)
	}

	if _, err := database.Queries.CreateAttachment(ctx, &entry.ID, "photo.jpg"); err != nil {
		t.Fatalf("create attachment: %v", err)
	}

	entries, err := database.Queries.ListEntries(ctx, 10, 0)
	if err != nil {
		t.Fatalf("list entries: %v", err)
	}
	if len(entries) != 2 || entries[0].Title != "Later post" {
		t.Errorf("entries not newest first: %+v", entries)
	}

	attachments, err := database.Queries.ListAttachmentsByEntry(ctx, entry.ID)
	if err != nil {
		t.Fatalf("list attachments: %v", err)
	}
	if len(attachments) != 1 || attachments[0].Name != "photo.jpg" {
		t.Errorf("attachments = %+v", attachments)
	}

	if err := database.Queries.DeleteAttachmentsByEntry(ctx, entry.ID); err != nil {
		t.Fatalf("delete attachments: %v", err)
	}
	if err := database.Queries.DeleteEntry(ctx, entry.ID); err != nil {
		t.Fatalf("delete entry: %v", err)
	}
	if _, err := database.Queries.GetEntry(ctx, entry.ID); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("deleted entry still readable: %v", err)
	}
}
