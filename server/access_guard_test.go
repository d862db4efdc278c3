package server_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/eventdesk/eventdesk/server"
)

func TestAccessGuard_ProtectedPaths(t *testing.T) {
	f := newTestFixture(t)

	t.Run("no session redirects to login with the requested path", func(t *testing.T) {
		for _, path := range []string{
			"/dashboard",
			"/events",
			"/calendar",
			"/prospects",
			"/sales-funnel",
			"/payments",
			"/financials",
		} {
			w := f.get(t, path, nil)
			require.Equal(t, http.StatusFound, w.Code, path)

			location, err := w.Result().Location()
			require.NoError(t, err)
			require.Equal(t, server.RouteLogin, location.Path)
			require.Equal(t, path, location.Query().Get("redirectedFrom"))
		}
	})

	t.Run("nested protected path", func(t *testing.T) {
		w := f.get(t, "/events/123/edit", nil)
		require.Equal(t, http.StatusFound, w.Code)

		location, err := w.Result().Location()
		require.NoError(t, err)
		require.Equal(t, "/events/123/edit", location.Query().Get("redirectedFrom"))
	})

	t.Run("valid session passes through", func(t *testing.T) {
		w := f.get(t, "/dashboard", f.loginCookie(t))
		require.Equal(t, http.StatusOK, w.Code)
	})
}

func TestAccessGuard_LoginPath(t *testing.T) {
	f := newTestFixture(t)

	t.Run("without session the login page is served", func(t *testing.T) {
		w := f.get(t, server.RouteLogin, nil)
		require.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("with session the login page bounces to the dashboard", func(t *testing.T) {
		w := f.get(t, server.RouteLogin, f.loginCookie(t))
		require.Equal(t, http.StatusFound, w.Code)

		location, err := w.Result().Location()
		require.NoError(t, err)
		require.Equal(t, server.RouteDashboard, location.Path)
	})
}

func TestAccessGuard_UncheckedPaths(t *testing.T) {
	f := newTestFixture(t)

	t.Run("api routes never redirect", func(t *testing.T) {
		w := f.get(t, server.RouteGoogleStatus, nil)
		require.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("asset suffixes never redirect", func(t *testing.T) {
		w := f.get(t, "/favicon.ico", nil)
		require.NotEqual(t, http.StatusFound, w.Code)
	})

	t.Run("unprotected pages pass without a session", func(t *testing.T) {
		for _, path := range []string{server.RouteSettings, server.RouteHealthz} {
			w := f.get(t, path, nil)
			require.Equal(t, http.StatusOK, w.Code, path)
		}
	})
}

func TestAccessGuard_RedirectTargetsDoNotLoop(t *testing.T) {
	f := newTestFixture(t)

	// the login redirect issued for a protected path must itself pass
	w := f.get(t, "/dashboard", nil)
	location, err := w.Result().Location()
	require.NoError(t, err)

	w = f.get(t, location.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)

	// and the dashboard redirect issued for /login with a session passes too
	cookie := f.loginCookie(t)
	w = f.get(t, server.RouteLogin, cookie)
	location, err = w.Result().Location()
	require.NoError(t, err)

	w = f.get(t, location.String(), cookie)
	require.Equal(t, http.StatusOK, w.Code)
}
