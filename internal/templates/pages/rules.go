// internal/templates/pages/rules.go
package pages

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// RulesPage renders the static league rules.
func RulesPage() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<h1>League Rules</h1>
<ul class="rules">
<li>Matches are two innings a side; the team with the higher total score wins.</li>
<li>A win is worth two points, a draw one, a loss none.</li>
<li>Standings ties are broken by net score per match.</li>
<li>A team that fails to field a side concedes the match by walkover.</li>
<li>Unscheduled fixtures are listed first until a date is agreed.</li>
</ul>
`)
		return err
	})
}
