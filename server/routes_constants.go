package server

import "github.com/eventdesk/eventdesk/googlecal"

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	// Auth Routes - Login & Logout
	RouteLogin      = "/login"
	RouteAuthLogin  = "/auth/login"
	RouteAuthLogout = "/auth/logout"

	// App Routes
	RouteDashboard = "/dashboard"
	RouteSettings  = "/settings"

	// Google OAuth Routes
	RouteGoogleAuthorize = "/api/auth/google"
	RouteGoogleCallback  = googlecal.CallbackPath
	RouteGoogleStatus    = "/api/auth/status"

	// Ops Routes
	RouteHealthz = "/healthz"
)

// protectedPrefixes are the path prefixes the access guard requires a
// session for. Consumed as configuration-level constants by the guard.
var protectedPrefixes = []string{
	RouteDashboard,
	"/events",
	"/calendar",
	"/prospects",
	"/sales-funnel",
	"/payments",
	"/financials",
}
