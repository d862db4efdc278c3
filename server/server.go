package server

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/eventdesk/eventdesk/googlecal"
	"github.com/eventdesk/eventdesk/internal/config"
	"github.com/eventdesk/eventdesk/sessions"
	"github.com/eventdesk/eventdesk/tokenstore"
)

// Server wires the session manager, token store and delegation flow
// behind an http.Handler. All collaborators are injected at construction;
// nothing reads ambient state after boot.
type Server struct {
	env     string
	appName string
	mux     *http.ServeMux
	routes  []string
	handler http.HandlerFunc

	adminUsername     string
	adminPasswordHash string

	sessions *sessions.Manager
	tokens   tokenstore.Repo
	google   googlecal.Exchanger
}

func New(cfg *config.Config, sessionManager *sessions.Manager, tokenRepo tokenstore.Repo, google googlecal.Exchanger) *Server {
	s := &Server{
		env:               cfg.Env,
		appName:           cfg.AppName,
		mux:               http.NewServeMux(),
		adminUsername:     cfg.AdminUsername,
		adminPasswordHash: cfg.AdminPasswordHash,
		sessions:          sessionManager,
		tokens:            tokenRepo,
		google:            google,
	}

	s.initRoutes()
	s.logRoutes()

	// The access guard runs innermost so it sees every request exactly
	// once, after logging and panic recovery are in place.
	s.handler = ChainMiddleware(s.mux.ServeHTTP, s.LoggingMiddleware, s.RecoverMiddleware, s.AccessGuard)

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler(w, r)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		log.Debug().Str("route", route).Msg("registered route")
	}
}
