// internal/templates/pages/blog.go
package pages

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/tamarside/rounders/internal/models"
)

// EntryView pairs a blog entry with its attachments.
type EntryView struct {
	models.Entry
	Attachments []models.Attachment
}

// BlogPage renders the photo-blog, newest entry first.
func BlogPage(entries []EntryView, isAdmin bool) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, "<h1>Blog</h1>\n"); err != nil {
			return err
		}

		if isAdmin {
			if _, err := io.WriteString(w, `<h2>New post</h2>
<form method="post" action="/blog/create?next=/blog" enctype="multipart/form-data">
<label>Title <input name="title" required></label>
<label>Text <textarea name="text"></textarea></label>
<label>Photos <input name="photos" type="file" accept=".png,.jpg,.jpeg" multiple></label>
<button type="submit">Post</button>
</form>
`); err != nil {
				return err
			}
		}

		for _, e := range entries {
			date := e.Date
			if _, err := fmt.Fprintf(w, `<article class="entry">
<h2>%s</h2>
<p class="date">%s</p>
`, templ.EscapeString(e.Title), formatDate(&date)); err != nil {
				return err
			}
			if e.Text != nil {
				if _, err := fmt.Fprintf(w, "<p>%s</p>\n",
					templ.EscapeString(*e.Text)); err != nil {
					return err
				}
			}
			for _, a := range e.Attachments {
				name := templ.EscapeString(a.Name)
				if _, err := fmt.Fprintf(w,
					`<a href="/uploads/%s"><img src="/uploads/thumb_%s" alt="%s"></a>
`, name, name, name); err != nil {
					return err
				}
			}
			if isAdmin {
				if _, err := fmt.Fprintf(w, `<form method="post" action="/blog/%d/delete?next=/blog">
<button type="submit">Delete post</button>
</form>
`, e.ID); err != nil {
					return err
				}
			}
			if _, err := io.WriteString(w, "</article>\n"); err != nil {
				return err
			}
		}
		return nil
	})
}
