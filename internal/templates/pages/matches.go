// internal/templates/pages/matches.go
package pages

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/tamarside/rounders/internal/models"
)

// MatchWeek is a rendered week bucket; Heading is "Unscheduled" or the
// formatted Monday starting the week.
type MatchWeek struct {
	Heading string
	Matches []MatchRow
}

// MatchesPage renders the fixture list grouped by week, newest first, with
// admin edit forms inline when logged in.
func MatchesPage(weeks []MatchWeek, teams []models.Team, isAdmin bool) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, "<h1>Matches</h1>\n"); err != nil {
			return err
		}

		if isAdmin {
			if err := createMatchForm(w, teams); err != nil {
				return err
			}
			if _, err := io.WriteString(w, `<form method="post" action="/matches/delete?next=/matches">
`); err != nil {
				return err
			}
		}

		for _, week := range weeks {
			if _, err := fmt.Fprintf(w, "<h2>%s</h2>\n",
				templ.EscapeString(week.Heading)); err != nil {
				return err
			}
			if isAdmin {
				if err := adminMatchTable(w, week.Matches); err != nil {
					return err
				}
				continue
			}
			if err := matchTable(w, week.Matches); err != nil {
				return err
			}
		}

		if isAdmin {
			if _, err := io.WriteString(w, `<button type="submit">Remove selected</button>
</form>
`); err != nil {
				return err
			}
		}
		return nil
	})
}

func createMatchForm(w io.Writer, teams []models.Team) error {
	if _, err := io.WriteString(w, `<h2>Create match</h2>
<form method="post" action="/matches/create?next=/matches">
`); err != nil {
		return err
	}
	for _, field := range []string{"team1", "team2"} {
		if _, err := fmt.Fprintf(w, `<select name="%s" required>
`, field); err != nil {
			return err
		}
		for _, t := range teams {
			if _, err := fmt.Fprintf(w, `<option value="%d">%s (%d)</option>
`, t.ID, templ.EscapeString(t.Name), t.Year); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, "</select>\n"); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, `<label>Date <input name="date" type="date"></label>
<label>Time <input name="time" type="time"></label>
<button type="submit">Create</button>
</form>
`)
	return err
}

func adminMatchTable(w io.Writer, matches []MatchRow) error {
	if _, err := io.WriteString(w, "<table class=\"matches\">\n<tbody>\n"); err != nil {
		return err
	}
	for _, m := range matches {
		if _, err := fmt.Fprintf(w,
			`<tr><td><input type="checkbox" name="matches" value="%d"></td><td>%s %s</td><td>%s</td><td>%s &ndash; %s</td><td>%s</td><td><a href="/matches/%d">edit</a></td></tr>
`,
			m.ID,
			formatDate(m.PlayDate), formatTime(m.PlayDate),
			templ.EscapeString(m.Team1Name),
			formatScore(m.Score1), formatScore(m.Score2),
			templ.EscapeString(m.Team2Name),
			m.ID); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "</tbody>\n</table>\n")
	return err
}

// MatchDetailPage shows one match with the admin score/date edit form.
func MatchDetailPage(m MatchRow, isAdmin bool) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<h1>%s vs %s</h1>
<p>%s %s</p>
<p class="score">%s &ndash; %s</p>
`,
			templ.EscapeString(m.Team1Name), templ.EscapeString(m.Team2Name),
			formatDate(m.PlayDate), formatTime(m.PlayDate),
			formatScore(m.Score1), formatScore(m.Score2)); err != nil {
			return err
		}

		if !isAdmin {
			return nil
		}

		_, err := fmt.Fprintf(w, `<h2>Edit result</h2>
<form method="post" action="/matches/%d/edit?next=/matches/%d">
<label>%s first inning <input name="score1_in1" type="number" step="0.5" value="%s"></label>
<label>%s second inning <input name="score1_in2" type="number" step="0.5" value="%s"></label>
<label>%s first inning <input name="score2_in1" type="number" step="0.5" value="%s"></label>
<label>%s second inning <input name="score2_in2" type="number" step="0.5" value="%s"></label>
<label>Date <input name="date" type="date" value="%s"></label>
<label>Time <input name="time" type="time" value="%s"></label>
<button type="submit">Save</button>
</form>
`,
			m.ID, m.ID,
			templ.EscapeString(m.Team1Name), inningInputValue(m.Score1In1),
			templ.EscapeString(m.Team1Name), inningInputValue(m.Score1In2()),
			templ.EscapeString(m.Team2Name), inningInputValue(m.Score2In1),
			templ.EscapeString(m.Team2Name), inningInputValue(m.Score2In2()),
			dateInputValue(m.PlayDate), timeInputValue(m.PlayDate))
		return err
	})
}

func inningInputValue(s *float64) string {
	if s == nil {
		return ""
	}
	return formatScore(s)
}
