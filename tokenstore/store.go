package tokenstore

import (
	"context"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/eventdesk/eventdesk/internal/errors"
	"github.com/eventdesk/eventdesk/sessions"
)

// Store is the gorm-backed Repo implementation.
type Store struct {
	db *gorm.DB
}

var _ Repo = (*Store)(nil)

// New migrates the credential table and returns a store bound to db.
func New(db *gorm.DB) (*Store, error) {
	if err := db.AutoMigrate(&DelegatedCredential{}); err != nil {
		return nil, errors.Wrapf(err, "tokenstore: migration failed")
	}
	return &Store{db: db}, nil
}

// Save upserts the credential record. The check-then-write runs in a
// transaction so retried callback completions cannot interleave between
// the existence check and the write.
func (s *Store) Save(ctx context.Context, session *sessions.Payload, tokens Tokens) error {
	if session == nil || session.Principal == "" {
		return errors.Wrapf(errors.ErrNotAuthenticated, "tokenstore: cannot save tokens")
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing DelegatedCredential
		err := tx.Where("id = ?", RecordID).First(&existing).Error
		switch {
		case err == nil:
			updates := map[string]any{
				"access_token": tokens.AccessToken,
				"expiry_date":  tokens.ExpiryDate,
			}
			// a stored refresh token is only replaced when the provider
			// explicitly supplied a new one
			if tokens.RefreshToken != "" {
				updates["refresh_token"] = tokens.RefreshToken
			}
			return tx.Model(&DelegatedCredential{}).Where("id = ?", RecordID).Updates(updates).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			record := DelegatedCredential{
				ID:           RecordID,
				UserID:       session.Principal,
				AccessToken:  tokens.AccessToken,
				RefreshToken: tokens.RefreshToken,
				ExpiryDate:   tokens.ExpiryDate,
			}
			return tx.Create(&record).Error
		default:
			return errors.Wrapf(err, "tokenstore: failed to read credential record")
		}
	})
}

// Get returns the stored credential record. A missing record or a
// missing session yields nil without error; read failures propagate.
func (s *Store) Get(ctx context.Context, session *sessions.Payload) (*DelegatedCredential, error) {
	if session == nil || session.Principal == "" {
		log.Warn().Msg("tokenstore: token read without an authenticated session")
		return nil, nil
	}

	var record DelegatedCredential
	err := s.db.WithContext(ctx).Where("id = ?", RecordID).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "tokenstore: failed to read credential record")
	}
	return &record, nil
}
