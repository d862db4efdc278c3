package server

func (s *Server) initRoutes() {
	s.RegisterRouteFunc("GET /", s.IndexHandler())

	// LOGIN
	s.RegisterRouteFunc("GET "+RouteLogin, s.LoginPageHandler())
	s.RegisterRouteFunc("POST "+RouteAuthLogin, s.LoginSubmissionHandler())
	s.RegisterRouteFunc("GET "+RouteAuthLogout, s.LogoutHandler())

	// Google OAuth delegation
	s.RegisterRouteFunc("GET "+RouteGoogleAuthorize, s.GoogleAuthorizeHandler())
	s.RegisterRouteFunc("GET "+RouteGoogleCallback, s.GoogleCallbackHandler())
	s.RegisterRouteFunc("GET "+RouteGoogleStatus, s.GoogleStatusHandler())

	// App surfaces (placeholders; access enforced by the guard)
	for _, prefix := range protectedPrefixes {
		s.RegisterRouteFunc("GET "+prefix, s.AppPageHandler(prefix))
		s.RegisterRouteFunc("GET "+prefix+"/", s.AppPageHandler(prefix))
	}
	s.RegisterRouteFunc("GET "+RouteSettings, s.AppPageHandler(RouteSettings))

	s.RegisterRouteFunc("GET "+RouteHealthz, s.HealthzHandler())
}
