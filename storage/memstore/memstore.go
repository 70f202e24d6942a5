// Package memstore is an in-memory implementation of the account and
// second-factor storage interfaces. It is meant for development and tests;
// data is lost when the process exits.
package memstore

import (
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/dmitrymomot/authkit/pkg/auth"
	"github.com/dmitrymomot/authkit/svc/mfa"
)

// Store keeps accounts and second-factor settings in maps.
// All reads and writes copy records so callers cannot mutate stored state.
type Store struct {
	mu       sync.RWMutex
	accounts map[uuid.UUID]auth.Account
	byEmail  map[string]uuid.UUID
	settings map[uuid.UUID]*mfa.Settings
}

// New returns an empty store.
func New() *Store {
	return &Store{
		accounts: make(map[uuid.UUID]auth.Account),
		byEmail:  make(map[string]uuid.UUID),
		settings: make(map[uuid.UUID]*mfa.Settings),
	}
}

// CreateAccount stores a new account. The email must be unique.
func (s *Store) CreateAccount(_ context.Context, account *auth.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byEmail[account.Email]; ok {
		return auth.ErrEmailAlreadyExists
	}
	s.accounts[account.ID] = copyAccount(*account)
	s.byEmail[account.Email] = account.ID
	return nil
}

// GetAccountByID returns a copy of the account.
func (s *Store) GetAccountByID(_ context.Context, id uuid.UUID) (*auth.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.accounts[id]
	if !ok {
		return nil, auth.ErrAccountNotFound
	}
	c := copyAccount(a)
	return &c, nil
}

// GetAccountByEmail returns a copy of the account with the given normalized email.
func (s *Store) GetAccountByEmail(_ context.Context, email string) (*auth.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byEmail[email]
	if !ok {
		return nil, auth.ErrAccountNotFound
	}
	c := copyAccount(s.accounts[id])
	return &c, nil
}

// GetSettings returns a copy of the account's second-factor record.
func (s *Store) GetSettings(_ context.Context, accountID uuid.UUID) (*mfa.Settings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.settings[accountID]
	if !ok {
		return nil, mfa.ErrSettingsNotFound
	}
	return rec.Clone(), nil
}

// PutSettings creates or replaces the account's second-factor record.
func (s *Store) PutSettings(_ context.Context, settings *mfa.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.settings[settings.AccountID] = settings.Clone()
	return nil
}

// DeleteSettings removes the record if present.
func (s *Store) DeleteSettings(_ context.Context, accountID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.settings, accountID)
	return nil
}

// Ping always succeeds; it lets the store serve as a readiness check.
func (s *Store) Ping(context.Context) error {
	return nil
}

func copyAccount(a auth.Account) auth.Account {
	a.PasswordHash = slices.Clone(a.PasswordHash)
	return a
}
