// Package redisstore stores accounts and second-factor settings in Redis as
// JSON documents. Email uniqueness is enforced with SETNX on an index key.
package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/authkit/pkg/auth"
	"github.com/dmitrymomot/authkit/svc/mfa"
)

// DefaultPrefix namespaces every key written by the store.
const DefaultPrefix = "authkit"

// Store implements auth.PasswordStorage and mfa.SettingsStorage.
type Store struct {
	client redis.UniversalClient
	prefix string
}

// Option configures a Store.
type Option func(*Store)

// WithPrefix sets the key namespace.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		if prefix != "" {
			s.prefix = prefix
		}
	}
}

// New wraps a connected client.
func New(client redis.UniversalClient, opts ...Option) *Store {
	s := &Store{client: client, prefix: DefaultPrefix}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Ping checks the connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// accountRecord is the stored form of auth.Account, which hides the hash from JSON.
type accountRecord struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash []byte    `json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
}

func (s *Store) accountKey(id uuid.UUID) string { return s.prefix + ":account:" + id.String() }
func (s *Store) emailKey(email string) string   { return s.prefix + ":account:email:" + email }
func (s *Store) settingsKey(id uuid.UUID) string {
	return s.prefix + ":mfa:" + id.String()
}

func (s *Store) CreateAccount(ctx context.Context, account *auth.Account) error {
	data, err := json.Marshal(accountRecord{
		ID:           account.ID,
		Email:        account.Email,
		PasswordHash: account.PasswordHash,
		CreatedAt:    account.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("marshal account: %w", err)
	}

	claimed, err := s.client.SetNX(ctx, s.emailKey(account.Email), account.ID.String(), 0).Result()
	if err != nil {
		return fmt.Errorf("claim email: %w", err)
	}
	if !claimed {
		return auth.ErrEmailAlreadyExists
	}

	if err := s.client.Set(ctx, s.accountKey(account.ID), data, 0).Err(); err != nil {
		// Release the email so a retry can succeed.
		_ = s.client.Del(context.WithoutCancel(ctx), s.emailKey(account.Email)).Err()
		return fmt.Errorf("save account: %w", err)
	}
	return nil
}

func (s *Store) GetAccountByID(ctx context.Context, id uuid.UUID) (*auth.Account, error) {
	data, err := s.client.Get(ctx, s.accountKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, auth.ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get account: %w", err)
	}

	var rec accountRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("unmarshal account: %w", err)
	}
	return &auth.Account{
		ID:           rec.ID,
		Email:        rec.Email,
		PasswordHash: rec.PasswordHash,
		CreatedAt:    rec.CreatedAt,
	}, nil
}

func (s *Store) GetAccountByEmail(ctx context.Context, email string) (*auth.Account, error) {
	raw, err := s.client.Get(ctx, s.emailKey(email)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, auth.ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get email index: %w", err)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse account id: %w", err)
	}
	return s.GetAccountByID(ctx, id)
}

func (s *Store) GetSettings(ctx context.Context, accountID uuid.UUID) (*mfa.Settings, error) {
	data, err := s.client.Get(ctx, s.settingsKey(accountID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, mfa.ErrSettingsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get mfa settings: %w", err)
	}

	var rec mfa.Settings
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("unmarshal mfa settings: %w", err)
	}
	return &rec, nil
}

func (s *Store) PutSettings(ctx context.Context, settings *mfa.Settings) error {
	data, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("marshal mfa settings: %w", err)
	}
	if err := s.client.Set(ctx, s.settingsKey(settings.AccountID), data, 0).Err(); err != nil {
		return fmt.Errorf("save mfa settings: %w", err)
	}
	return nil
}

func (s *Store) DeleteSettings(ctx context.Context, accountID uuid.UUID) error {
	if err := s.client.Del(ctx, s.settingsKey(accountID)).Err(); err != nil {
		return fmt.Errorf("delete mfa settings: %w", err)
	}
	return nil
}
