package server

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/eventdesk/eventdesk/tokenstore"
)

// Machine-readable flags attached to the settings redirect so the
// settings page can explain the outcome of a connection attempt.
const (
	FlagAuthFailed       = "google_auth_failed"
	FlagPermissionDenied = "google_permission_denied"
	FlagCodeMissing      = "google_code_missing"
	FlagTokenMissing     = "google_token_missing"
	FlagExchangeFailed   = "google_token_exchange_failed"
	FlagConnected        = "google_connected"
)

// GoogleAuthorizeHandler starts the delegation flow by redirecting to
// Google's consent screen (GET /api/auth/google).
func (s *Server) GoogleAuthorizeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authURL, err := s.google.AuthCodeURL()
		if err != nil {
			log.Err(err).Msg("failed to build Google authorization URL")
			s.redirectToSettings(w, r, "error", FlagAuthFailed)
			return
		}
		http.Redirect(w, r, authURL, http.StatusFound)
	}
}

// GoogleCallbackHandler completes the delegation flow
// (GET /api/oauth2callback). Every outcome is a redirect to the settings
// page; no provider or store error ever reaches the browser raw.
func (s *Server) GoogleCallbackHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()

		if errorParam := query.Get("error"); errorParam != "" {
			log.Warn().Str("error", errorParam).Msg("Google consent denied")
			s.redirectToSettings(w, r, "error", FlagPermissionDenied)
			return
		}

		code := query.Get("code")
		if code == "" {
			log.Warn().Msg("Google callback without authorization code")
			s.redirectToSettings(w, r, "error", FlagCodeMissing)
			return
		}

		token, err := s.google.Exchange(r.Context(), code)
		if err != nil {
			log.Err(err).Msg("failed to exchange authorization code")
			s.redirectToSettings(w, r, "error", FlagExchangeFailed)
			return
		}

		// An incomplete token response is a failure; nothing is persisted.
		if token.AccessToken == "" || token.RefreshToken == "" {
			log.Error().Msg("Google token response missing access or refresh token")
			s.redirectToSettings(w, r, "error", FlagTokenMissing)
			return
		}

		var expiryDate *int64
		if !token.Expiry.IsZero() {
			millis := token.Expiry.UnixMilli()
			expiryDate = &millis
		}

		session := s.sessions.Get(w, r)
		err = s.tokens.Save(r.Context(), session, tokenstore.Tokens{
			AccessToken:  token.AccessToken,
			RefreshToken: token.RefreshToken,
			ExpiryDate:   expiryDate,
		})
		if err != nil {
			log.Err(err).Msg("failed to store Google tokens")
			s.redirectToSettings(w, r, "error", FlagAuthFailed)
			return
		}

		s.redirectToSettings(w, r, "success", FlagConnected)
	}
}

type connectionStatus struct {
	IsConnected bool `json:"isConnected"`
}

// GoogleStatusHandler reports whether a usable delegated credential
// exists (GET /api/auth/status). A usable credential is a stored record
// with a non-empty refresh token. Internal failures report "not
// connected" rather than an error body; the caller only needs a boolean.
func (s *Server) GoogleStatusHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		session := s.sessions.Get(w, r)
		record, err := s.tokens.Get(r.Context(), session)
		if err != nil {
			log.Err(err).Msg("failed to read stored Google tokens")
			w.WriteHeader(http.StatusInternalServerError)
			_ = json.NewEncoder(w).Encode(connectionStatus{IsConnected: false})
			return
		}

		isConnected := record != nil && record.RefreshToken != ""
		_ = json.NewEncoder(w).Encode(connectionStatus{IsConnected: isConnected})
	}
}

func (s *Server) redirectToSettings(w http.ResponseWriter, r *http.Request, key, flag string) {
	http.Redirect(w, r, RouteSettings+"?"+key+"="+flag, http.StatusFound)
}
