// internal/templates/pages/home.go
package pages

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/tamarside/rounders/internal/league"
)

// Home renders the standings table for a season. Column headers link back
// with a sortby query so the table can be reordered.
func Home(year int64, standings []league.Standing) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<h1>Standings %d</h1>
<table class="standings">
<thead><tr>
<th><a href="/?sortby=name">Team</a></th>
<th><a href="/?sortby=played">Played</a></th>
<th><a href="/?sortby=wins">Won</a></th>
<th><a href="/?sortby=draws">Drawn</a></th>
<th><a href="/?sortby=losses">Lost</a></th>
<th><a href="/?sortby=points">Points</a></th>
<th><a href="/?sortby=scored">Scored</a></th>
<th><a href="/?sortby=conceded">Conceded</a></th>
<th><a href="/?sortby=difference">Net</a></th>
</tr></thead>
<tbody>
`, year); err != nil {
			return err
		}

		for _, s := range standings {
			if _, err := fmt.Fprintf(w,
				`<tr><td><a href="/teams/%d">%s</a></td><td>%d</td><td>%d</td><td>%d</td><td>%d</td><td>%d</td><td>%s</td><td>%s</td><td>%s</td></tr>
`,
				s.TeamID, templ.EscapeString(s.TeamName),
				s.Played, s.Wins, s.Draws, s.Losses, s.Points,
				formatAverage(s.Scored), formatAverage(s.Conceded),
				formatAverage(s.Difference)); err != nil {
				return err
			}
		}

		_, err := io.WriteString(w, "</tbody>\n</table>\n")
		return err
	})
}
