package googlecal

import (
	"context"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	calendar "google.golang.org/api/calendar/v3"

	"github.com/eventdesk/eventdesk/internal/errors"
)

// CallbackPath is the fixed OAuth2 callback path registered with Google.
const CallbackPath = "/api/oauth2callback"

// Exchanger models the provider leg of the three-legged authorization
// code flow. The server depends on this interface so handlers can be
// tested without reaching the provider's token endpoint.
type Exchanger interface {
	// AuthCodeURL builds the provider consent screen URL.
	AuthCodeURL() (string, error)

	// Exchange trades an authorization code for access/refresh tokens.
	Exchange(ctx context.Context, code string) (*oauth2.Token, error)
}

// Service is the Google Calendar implementation of Exchanger.
type Service struct {
	clientID     string
	clientSecret string
	baseURL      string
}

var _ Exchanger = (*Service)(nil)

// NewService creates a delegation flow service for the given OAuth client
// credentials. Credentials are re-checked per operation so a partially
// configured service degrades to a configuration error instead of a
// malformed provider request.
func NewService(clientID, clientSecret, baseURL string) *Service {
	return &Service{
		clientID:     clientID,
		clientSecret: clientSecret,
		baseURL:      baseURL,
	}
}

// AuthCodeURL builds the consent screen URL. Offline access is requested
// so a refresh token is issued, and consent is forced so the provider
// re-issues the refresh token even on repeat authorizations.
func (s *Service) AuthCodeURL() (string, error) {
	conf, err := s.oauthConfig()
	if err != nil {
		return "", err
	}
	return conf.AuthCodeURL("state",
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"),
	), nil
}

// Exchange trades the authorization code for tokens at Google's token
// endpoint. No retries; a failure surfaces immediately to the caller.
func (s *Service) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	conf, err := s.oauthConfig()
	if err != nil {
		return nil, err
	}
	token, err := conf.Exchange(ctx, code)
	if err != nil {
		return nil, errors.Wrapf(err, "googlecal: code exchange failed")
	}
	return token, nil
}

func (s *Service) oauthConfig() (*oauth2.Config, error) {
	if s.clientID == "" || s.clientSecret == "" || s.baseURL == "" {
		return nil, errors.Wrapf(errors.ErrMissingConfiguration,
			"googlecal: client id, client secret and base URL must all be set")
	}
	return &oauth2.Config{
		ClientID:     s.clientID,
		ClientSecret: s.clientSecret,
		Endpoint:     google.Endpoint,
		RedirectURL:  s.baseURL + CallbackPath,
		Scopes:       []string{calendar.CalendarScope},
	}, nil
}
