package handler

import (
	"bytes"
	"html/template"
)

// The page flow keeps the original storefront's server-rendered signup and
// login forms.  They are intentionally minimal; the single-page frontend
// talks to the JSON routes instead.

const signupFormPage = `<!DOCTYPE html>
<html>
<head><title>Carbon Bazar - Sign Up</title></head>
<body>
  <h1>Create your Carbon Bazar account</h1>
  <form method="POST" action="/signup">
    <input name="name" placeholder="Name" required>
    <input name="email" type="email" placeholder="Email" required>
    <input name="password" type="password" placeholder="Password" required>
    <input name="phone" placeholder="Phone" required>
    <input name="location" placeholder="Location" required>
    <input name="organization" placeholder="Organization (optional)">
    <select name="role">
      <option value="Buyer">Buyer</option>
      <option value="Supplier">Supplier</option>
    </select>
    <button type="submit">Sign Up</button>
  </form>
  <a href="/login-form">Already registered? Log in</a>
</body>
</html>`

const loginFormPage = `<!DOCTYPE html>
<html>
<head><title>Carbon Bazar - Login</title></head>
<body>
  <h1>Log in to Carbon Bazar</h1>
  <form method="POST" action="/login">
    <input name="email" type="email" placeholder="Email" required>
    <input name="password" type="password" placeholder="Password" required>
    <button type="submit">Login</button>
  </form>
  <a href="/signup-form">New here? Sign up</a>
</body>
</html>`

var homeTmpl = template.Must(template.New("home").Parse(`<!DOCTYPE html>
<html>
<head><title>Carbon Bazar - Home</title></head>
<body>
  <h1>Welcome, {{.Name}}</h1>
  <p>Signed in as {{.Email}} ({{.Role}})</p>
  <p>Organization: {{.Organization}}</p>
  <a href="/logout">Logout</a>
</body>
</html>`))

// renderHome executes the home template for the given identity.  Template
// execution over a fixed struct cannot realistically fail, but the error is
// still propagated rather than ignored.
func renderHome(data any) (string, error) {
	var buf bytes.Buffer
	if err := homeTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
