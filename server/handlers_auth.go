package server

import (
	"crypto/subtle"
	"html/template"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

const contentTypeHTML = "text/html; charset=utf-8"

const loginPageTemplate = `<!DOCTYPE html>
<html>
<head><title>{{.AppName}} - Login</title></head>
<body>
  <h1>{{.AppName}}</h1>
  {{if .Error}}<p class="error">{{.Error}}</p>{{end}}
  <form method="post" action="/auth/login">
    <input type="hidden" name="redirectedFrom" value="{{.RedirectedFrom}}">
    <label>Username <input type="text" name="username" value="{{.Username}}"></label>
    <label>Password <input type="password" name="password"></label>
    <button type="submit">Sign in</button>
  </form>
</body>
</html>`

// LoginPageData contains data for rendering the login page
type LoginPageData struct {
	AppName        string
	Error          string
	Username       string // Preserve username on error
	RedirectedFrom string
}

// LoginPageHandler displays the login page (GET /login)
func (s *Server) LoginPageHandler() http.HandlerFunc {
	loginTmpl := template.Must(template.New("login").Parse(loginPageTemplate))

	return func(w http.ResponseWriter, r *http.Request) {
		data := LoginPageData{
			AppName:        s.appName,
			Error:          loginErrorMessage(r.URL.Query().Get("error")),
			Username:       r.URL.Query().Get("username"),
			RedirectedFrom: r.URL.Query().Get(redirectedFromParam),
		}

		w.Header().Set("Content-Type", contentTypeHTML)
		if err := loginTmpl.Execute(w, data); err != nil {
			log.Err(err).Msg("failed to render login template")
		}
	}
}

// LoginSubmissionHandler processes the login form submission
func (s *Server) LoginSubmissionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}

		username := r.FormValue("username")
		password := r.FormValue("password")
		redirectedFrom := r.FormValue(redirectedFromParam)

		if username == "" || password == "" {
			s.redirectLoginError(w, r, "missing_credentials", username, redirectedFrom)
			return
		}

		// Both checks always run so a bad username costs the same as a
		// bad password.
		usernameOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.adminUsername)) == 1
		passwordOK := bcrypt.CompareHashAndPassword([]byte(s.adminPasswordHash), []byte(password)) == nil
		if !usernameOK || !passwordOK {
			s.redirectLoginError(w, r, "invalid_credentials", username, redirectedFrom)
			return
		}

		if err := s.sessions.Create(w, username); err != nil {
			log.Err(err).Msg("failed to create session")
			s.redirectLoginError(w, r, "session_error", username, redirectedFrom)
			return
		}

		http.Redirect(w, r, postLoginTarget(redirectedFrom), http.StatusSeeOther)
	}
}

// LogoutHandler ends the user session
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.sessions.Delete(w)
		http.Redirect(w, r, RouteLogin, http.StatusSeeOther)
	}
}

func (s *Server) redirectLoginError(w http.ResponseWriter, r *http.Request, errorCode, username, redirectedFrom string) {
	params := url.Values{}
	params.Set("error", errorCode)
	if username != "" {
		params.Set("username", username)
	}
	if redirectedFrom != "" {
		params.Set(redirectedFromParam, redirectedFrom)
	}
	http.Redirect(w, r, RouteLogin+"?"+params.Encode(), http.StatusSeeOther)
}

// postLoginTarget returns the page to land on after login. Only local
// absolute paths are honoured so the redirect cannot leave the site.
func postLoginTarget(redirectedFrom string) string {
	if strings.HasPrefix(redirectedFrom, "/") && !strings.HasPrefix(redirectedFrom, "//") {
		return redirectedFrom
	}
	return RouteDashboard
}

func loginErrorMessage(errorCode string) string {
	switch errorCode {
	case "missing_credentials":
		return "Username and password are required"
	case "invalid_credentials":
		return "Invalid username or password"
	case "session_error":
		return "Could not start a session. Please try again."
	default:
		return ""
	}
}
