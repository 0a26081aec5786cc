// Package accounts provides in-memory lookup over the user's accounts.
// The authoritative account list lives with the remote ledger; a session
// works from a snapshot, supplied by the caller or loaded from
// accounts.csv for headless use.
package accounts

import (
	"fmt"
	"os"

	"github.com/ledgerdesk-dev/ledgerdesk/internal/model"
)

// Service provides in-memory lookup over an account snapshot.
type Service struct {
	accounts []model.Account
	byID     map[string]model.Account
}

// NewService creates a Service from a slice of accounts.
func NewService(accounts []model.Account) *Service {
	byID := make(map[string]model.Account, len(accounts))
	for _, a := range accounts {
		byID[a.ID] = a
	}
	return &Service{accounts: accounts, byID: byID}
}

// Load reads an accounts.csv snapshot and returns a Service.
func Load(path string) (*Service, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening accounts snapshot: %w", err)
	}
	defer f.Close()

	accts, err := ReadAccounts(f)
	if err != nil {
		return nil, fmt.Errorf("reading accounts snapshot: %w", err)
	}
	return NewService(accts), nil
}

// All returns all accounts in snapshot order.
func (s *Service) All() []model.Account {
	return s.accounts
}

// Get returns an account by ID.
func (s *Service) Get(id string) (model.Account, bool) {
	a, ok := s.byID[id]
	return a, ok
}

// Exists reports whether an account ID exists.
func (s *Service) Exists(id string) bool {
	_, ok := s.byID[id]
	return ok
}

// FirstActive returns the first active account, or the first account when
// none is active. Used to default drafted rows.
func (s *Service) FirstActive() (model.Account, bool) {
	for _, a := range s.accounts {
		if a.Active {
			return a, true
		}
	}
	if len(s.accounts) > 0 {
		return s.accounts[0], true
	}
	return model.Account{}, false
}

// ByCurrency returns all accounts denominated in a currency.
func (s *Service) ByCurrency(cur string) []model.Account {
	var result []model.Account
	for _, a := range s.accounts {
		if a.Currency == cur {
			result = append(result, a)
		}
	}
	return result
}

// Save writes the snapshot to path.
func (s *Service) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating accounts snapshot: %w", err)
	}
	defer f.Close()

	if err := WriteAccounts(f, s.accounts); err != nil {
		return fmt.Errorf("writing accounts snapshot: %w", err)
	}
	return nil
}
