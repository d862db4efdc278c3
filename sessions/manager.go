package sessions

import (
	"net/http"
)

// CookieName is the name of the session cookie.
const CookieName = "session"

// Manager is the single source of truth for whether a request is
// authenticated, and as whom. Session state lives entirely in the signed
// client-held cookie; the server keeps no session table, so the hottest
// path (every request) needs no storage dependency. The trade-off is
// that a session cannot be revoked before its embedded expiry, which is
// acceptable for the single-admin trust model.
type Manager struct {
	codec  *Codec
	secure bool
}

// NewManager creates a session manager. secureCookies should be true in
// production so the cookie is only sent over HTTPS.
func NewManager(codec *Codec, secureCookies bool) *Manager {
	return &Manager{codec: codec, secure: secureCookies}
}

// Create issues a session for the principal and sets it as the session
// cookie. The cookie expiry matches the session expiry.
func (m *Manager) Create(w http.ResponseWriter, principal string) error {
	expiresAt := NowTimeFunc().Add(TokenValidity)
	token, err := m.codec.Encode(Payload{Principal: principal, ExpiresAt: expiresAt})
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
		Expires:  expiresAt,
	})
	return nil
}

// Get reads and verifies the session cookie. A missing, tampered or
// expired cookie yields nil; a cookie that failed verification is also
// deleted so it does not linger on subsequent requests.
func (m *Manager) Get(w http.ResponseWriter, r *http.Request) *Payload {
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}

	payload := m.codec.Decode(cookie.Value)
	if payload != nil && payload.ExpiresAt.After(NowTimeFunc()) {
		return payload
	}

	m.Delete(w)
	return nil
}

// Delete removes the session cookie. Deleting an absent cookie is not an
// error.
func (m *Manager) Delete(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}
