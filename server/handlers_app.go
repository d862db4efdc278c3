package server

import (
	"fmt"
	"net/http"
)

// IndexHandler sends the root path to the dashboard; the access guard
// turns that into a login redirect for unauthenticated visitors.
func (s *Server) IndexHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		http.Redirect(w, r, RouteDashboard, http.StatusFound)
	}
}

// AppPageHandler serves a placeholder page for an application surface.
// The real screens are data-entry glue outside this service's scope; the
// pages exist so the access guard has concrete routes to protect.
func (s *Server) AppPageHandler(path string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", contentTypeHTML)
		fmt.Fprintf(w, "<!DOCTYPE html><html><body><h1>%s - %s</h1></body></html>", s.appName, path)
	}
}

// HealthzHandler reports process liveness
func (s *Server) HealthzHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}
}
