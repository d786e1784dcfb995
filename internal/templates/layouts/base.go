// internal/templates/layouts/base.go
package layouts

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// Base wraps page content in the site chrome: head, navigation, and the
// one-shot flash banner.
func Base(title, flash string, content templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w,
			`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>%s</title>
<link rel="stylesheet" href="/static/style.css">
</head>
<body>
<nav class="site-nav">
<a href="/">Standings</a>
<a href="/teams">Teams</a>
<a href="/matches">Matches</a>
<a href="/blog">Blog</a>
<a href="/rules">Rules</a>
</nav>
`, templ.EscapeString(title)); err != nil {
			return err
		}

		if flash != "" {
			if _, err := fmt.Fprintf(w, `<div class="flash">%s</div>`+"\n",
				templ.EscapeString(flash)); err != nil {
				return err
			}
		}

		if _, err := io.WriteString(w, `<main>`+"\n"); err != nil {
			return err
		}
		if content != nil {
			if err := content.Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "\n</main>\n</body>\n</html>\n")
		return err
	})
}
