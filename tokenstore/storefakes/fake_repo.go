package storefakes

import (
	"context"
	"sync"

	"github.com/eventdesk/eventdesk/internal/errors"
	"github.com/eventdesk/eventdesk/sessions"
	"github.com/eventdesk/eventdesk/tokenstore"
)

var _ tokenstore.Repo = (*FakeRepo)(nil)

// FakeRepo is an in-memory Repo for handler tests.
type FakeRepo struct {
	SaveErr error
	GetErr  error

	lock   sync.Mutex
	record *tokenstore.DelegatedCredential
	saves  int
}

func (f *FakeRepo) Save(_ context.Context, session *sessions.Payload, tokens tokenstore.Tokens) error {
	if session == nil || session.Principal == "" {
		return errors.ErrNotAuthenticated
	}

	f.lock.Lock()
	defer f.lock.Unlock()

	if f.SaveErr != nil {
		return f.SaveErr
	}

	f.saves++
	if f.record != nil {
		f.record.AccessToken = tokens.AccessToken
		f.record.ExpiryDate = tokens.ExpiryDate
		if tokens.RefreshToken != "" {
			f.record.RefreshToken = tokens.RefreshToken
		}
		return nil
	}

	f.record = &tokenstore.DelegatedCredential{
		ID:           tokenstore.RecordID,
		UserID:       session.Principal,
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		ExpiryDate:   tokens.ExpiryDate,
	}
	return nil
}

func (f *FakeRepo) Get(_ context.Context, session *sessions.Payload) (*tokenstore.DelegatedCredential, error) {
	if session == nil || session.Principal == "" {
		return nil, nil
	}

	f.lock.Lock()
	defer f.lock.Unlock()

	if f.GetErr != nil {
		return nil, f.GetErr
	}
	if f.record == nil {
		return nil, nil
	}
	record := *f.record
	return &record, nil
}

// SetRecord seeds the fake with an existing credential record.
func (f *FakeRepo) SetRecord(record *tokenstore.DelegatedCredential) {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.record = record
}

// Saves reports how many successful Save calls were made.
func (f *FakeRepo) Saves() int {
	f.lock.Lock()
	defer f.lock.Unlock()
	return f.saves
}
