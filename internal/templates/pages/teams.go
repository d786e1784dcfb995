// internal/templates/pages/teams.go
package pages

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/tamarside/rounders/internal/models"
)

// TeamsPage lists teams, with admin create/delete forms when logged in.
func TeamsPage(teams []models.Team, isAdmin bool) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, "<h1>Teams</h1>\n"); err != nil {
			return err
		}

		if isAdmin {
			if _, err := io.WriteString(w, `<form method="post" action="/teams/delete?next=/teams">
`); err != nil {
				return err
			}
		}

		if _, err := io.WriteString(w, "<ul class=\"teams\">\n"); err != nil {
			return err
		}
		for _, t := range teams {
			checkbox := ""
			if isAdmin {
				checkbox = fmt.Sprintf(`<input type="checkbox" name="teams" value="%d"> `, t.ID)
			}
			if _, err := fmt.Fprintf(w, `<li>%s<a href="/teams/%d">%s</a> (%d)</li>
`, checkbox, t.ID, templ.EscapeString(t.Name), t.Year); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, "</ul>\n"); err != nil {
			return err
		}

		if isAdmin {
			if _, err := io.WriteString(w, `<button type="submit">Remove selected</button>
</form>
<h2>Create team</h2>
<form method="post" action="/teams/create?next=/teams">
<label>Name <input name="name" required></label>
<label>Year <input name="year" type="number" required></label>
<label>Players <textarea name="players" placeholder="one per line, first and last name"></textarea></label>
<button type="submit">Create</button>
</form>
`); err != nil {
				return err
			}
		}
		return nil
	})
}

// TeamDetailPage shows one team's roster and match history.
func TeamDetailPage(team models.Team, roster []models.Player, matches []MatchRow, isAdmin bool) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<h1>%s (%d)</h1>
<h2>Roster</h2>
<ul class="roster">
`, templ.EscapeString(team.Name), team.Year); err != nil {
			return err
		}
		for _, p := range roster {
			if _, err := fmt.Fprintf(w, "<li>%s %s</li>\n",
				templ.EscapeString(p.NameFirst), templ.EscapeString(p.NameLast)); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, "</ul>\n<h2>Matches</h2>\n"); err != nil {
			return err
		}
		if err := matchTable(w, matches); err != nil {
			return err
		}

		if isAdmin {
			if _, err := fmt.Fprintf(w, `<h2>Rename team</h2>
<form method="post" action="/teams/%d/edit?next=/teams/%d">
<label>Name <input name="name" value="%s" required></label>
<button type="submit">Save</button>
</form>
`, team.ID, team.ID, templ.EscapeString(team.Name)); err != nil {
				return err
			}
		}
		return nil
	})
}

// MatchRow pairs a match with the display names of both sides.
type MatchRow struct {
	models.Match
	Team1Name string
	Team2Name string
}

func matchTable(w io.Writer, matches []MatchRow) error {
	if _, err := io.WriteString(w, "<table class=\"matches\">\n<tbody>\n"); err != nil {
		return err
	}
	for _, m := range matches {
		if _, err := fmt.Fprintf(w,
			`<tr><td>%s %s</td><td><a href="/teams/%d">%s</a></td><td>%s &ndash; %s</td><td><a href="/teams/%d">%s</a></td></tr>
`,
			formatDate(m.PlayDate), formatTime(m.PlayDate),
			m.Team1ID, templ.EscapeString(m.Team1Name),
			formatScore(m.Score1), formatScore(m.Score2),
			m.Team2ID, templ.EscapeString(m.Team2Name)); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "</tbody>\n</table>\n")
	return err
}
