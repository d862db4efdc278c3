package server_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/eventdesk/eventdesk/googlecal/flowfake"
	"github.com/eventdesk/eventdesk/internal/config"
	"github.com/eventdesk/eventdesk/server"
	"github.com/eventdesk/eventdesk/sessions"
	"github.com/eventdesk/eventdesk/tokenstore/storefakes"
)

const (
	testSecret   = "0123456789abcdef0123456789abcdef"
	testUsername = "admin"
	testPassword = "password123"
)

// testFixture holds the server under test and its injected collaborators
type testFixture struct {
	server   *server.Server
	sessions *sessions.Manager
	store    *storefakes.FakeRepo
	google   *flowfake.FakeExchanger
}

func newTestFixture(t *testing.T) *testFixture {
	t.Helper()

	codec, err := sessions.NewCodec(testSecret)
	require.NoError(t, err)
	sessionManager := sessions.NewManager(codec, false)

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)

	cfg := &config.Config{
		Env:                "TEST",
		Port:               ":8080",
		AppName:            "EventDesk",
		BaseURL:            "https://app.example.com",
		SessionSecret:      testSecret,
		AdminUsername:      testUsername,
		AdminPasswordHash:  string(passwordHash),
		GoogleClientID:     "client-id",
		GoogleClientSecret: "client-secret",
		DatabasePath:       ":memory:",
	}

	store := &storefakes.FakeRepo{}
	google := &flowfake.FakeExchanger{}

	return &testFixture{
		server:   server.New(cfg, sessionManager, store, google),
		sessions: sessionManager,
		store:    store,
		google:   google,
	}
}

// loginCookie returns a valid session cookie for the test principal.
func (f *testFixture) loginCookie(t *testing.T) *http.Cookie {
	t.Helper()

	w := httptest.NewRecorder()
	require.NoError(t, f.sessions.Create(w, testUsername))
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == sessions.CookieName {
			return cookie
		}
	}
	t.Fatal("session cookie was not set")
	return nil
}

func (f *testFixture) get(t *testing.T, target string, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	r := httptest.NewRequest(http.MethodGet, target, nil)
	if cookie != nil {
		r.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	f.server.ServeHTTP(w, r)
	return w
}

func (f *testFixture) postForm(t *testing.T, target string, form url.Values, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	r := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if cookie != nil {
		r.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	f.server.ServeHTTP(w, r)
	return w
}
