// internal/templates/pages/login.go
package pages

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// LoginPage renders the admin login form.
func LoginPage() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<h1>Admin Login</h1>
<form method="post" action="/login">
<label>Username <input name="username" required></label>
<label>Password <input name="password" type="password" required></label>
<button type="submit">Log in</button>
</form>
`)
		return err
	})
}
