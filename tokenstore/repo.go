package tokenstore

import (
	"context"
	"time"

	"github.com/eventdesk/eventdesk/sessions"
)

// RecordID is the fixed credential record id for the single-admin
// deployment model. A multi-principal deployment would key records by
// principal instead; nothing else in the store assumes the fixed key.
const RecordID = "admin_google_tokens"

// Tokens is the subset of a provider token response the store persists.
type Tokens struct {
	AccessToken string

	// RefreshToken is optional on update: providers omit it on
	// non-consent re-authorizations, and an empty value must never
	// overwrite a stored one.
	RefreshToken string

	// ExpiryDate is the access token expiry in epoch milliseconds, nil
	// when the provider omits it.
	ExpiryDate *int64
}

// DelegatedCredential is the durable OAuth credential record.
type DelegatedCredential struct {
	ID           string `gorm:"primaryKey"`
	UserID       string // owning principal, informational only
	AccessToken  string
	RefreshToken string
	ExpiryDate   *int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Repo is the durable upsert/read surface for the delegated credential.
type Repo interface {
	// Save upserts the credential record. It fails with
	// errors.ErrNotAuthenticated when no session is supplied; tokens are
	// never persisted without attribution.
	Save(ctx context.Context, session *sessions.Payload, tokens Tokens) error

	// Get returns the stored record, or nil when none exists or there is
	// no session.
	Get(ctx context.Context, session *sessions.Payload) (*DelegatedCredential, error)
}
