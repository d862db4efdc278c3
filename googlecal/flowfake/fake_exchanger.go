package flowfake

import (
	"context"
	"sync"

	"golang.org/x/oauth2"

	"github.com/eventdesk/eventdesk/googlecal"
)

var _ googlecal.Exchanger = (*FakeExchanger)(nil)

// FakeExchanger is a canned-response Exchanger for handler tests.
type FakeExchanger struct {
	AuthURL     string
	AuthURLErr  error
	Token       *oauth2.Token
	ExchangeErr error

	lock           sync.Mutex
	exchangedCodes []string
}

func (f *FakeExchanger) AuthCodeURL() (string, error) {
	if f.AuthURLErr != nil {
		return "", f.AuthURLErr
	}
	return f.AuthURL, nil
}

func (f *FakeExchanger) Exchange(_ context.Context, code string) (*oauth2.Token, error) {
	f.lock.Lock()
	defer f.lock.Unlock()

	f.exchangedCodes = append(f.exchangedCodes, code)
	if f.ExchangeErr != nil {
		return nil, f.ExchangeErr
	}
	return f.Token, nil
}

// ExchangedCodes returns the codes passed to Exchange, in order.
func (f *FakeExchanger) ExchangedCodes() []string {
	f.lock.Lock()
	defer f.lock.Unlock()

	codes := make([]string, len(f.exchangedCodes))
	copy(codes, f.exchangedCodes)
	return codes
}
