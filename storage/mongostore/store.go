// Package mongostore stores accounts and second-factor settings in MongoDB.
package mongostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/dmitrymomot/authkit/pkg/auth"
	"github.com/dmitrymomot/authkit/svc/mfa"
)

const (
	accountsCollection = "accounts"
	settingsCollection = "mfa_settings"
)

// Store implements auth.PasswordStorage and mfa.SettingsStorage.
type Store struct {
	db       *mongo.Database
	accounts *mongo.Collection
	settings *mongo.Collection
}

// New wraps a database handle.
func New(db *mongo.Database) *Store {
	return &Store{
		db:       db,
		accounts: db.Collection(accountsCollection),
		settings: db.Collection(settingsCollection),
	}
}

// EnsureIndexes creates the unique email index. It is safe to call on every start.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.accounts.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("email_unique"),
	})
	if err != nil {
		return fmt.Errorf("create email index: %w", err)
	}
	return nil
}

// Ping checks the connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.Client().Ping(ctx, nil)
}

type accountDoc struct {
	ID           string    `bson:"_id"`
	Email        string    `bson:"email"`
	PasswordHash []byte    `bson:"password_hash"`
	CreatedAt    time.Time `bson:"created_at"`
}

type settingsDoc struct {
	AccountID        string     `bson:"_id"`
	EncryptedSecret  string     `bson:"encrypted_secret"`
	Enabled          bool       `bson:"enabled"`
	Verified         bool       `bson:"verified"`
	BackupCodeHashes []string   `bson:"backup_code_hashes"`
	FailedAttempts   int        `bson:"failed_attempts"`
	LockedUntil      *time.Time `bson:"locked_until,omitempty"`
	CreatedAt        time.Time  `bson:"created_at"`
	UpdatedAt        time.Time  `bson:"updated_at"`
}

func (s *Store) CreateAccount(ctx context.Context, account *auth.Account) error {
	_, err := s.accounts.InsertOne(ctx, accountDoc{
		ID:           account.ID.String(),
		Email:        account.Email,
		PasswordHash: account.PasswordHash,
		CreatedAt:    account.CreatedAt,
	})
	if mongo.IsDuplicateKeyError(err) {
		return auth.ErrEmailAlreadyExists
	}
	if err != nil {
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}

func (s *Store) GetAccountByID(ctx context.Context, id uuid.UUID) (*auth.Account, error) {
	return s.findAccount(ctx, bson.D{{Key: "_id", Value: id.String()}})
}

func (s *Store) GetAccountByEmail(ctx context.Context, email string) (*auth.Account, error) {
	return s.findAccount(ctx, bson.D{{Key: "email", Value: email}})
}

func (s *Store) findAccount(ctx context.Context, filter bson.D) (*auth.Account, error) {
	var doc accountDoc
	err := s.accounts.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, auth.ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find account: %w", err)
	}

	id, err := uuid.Parse(doc.ID)
	if err != nil {
		return nil, fmt.Errorf("parse account id: %w", err)
	}
	return &auth.Account{
		ID:           id,
		Email:        doc.Email,
		PasswordHash: doc.PasswordHash,
		CreatedAt:    doc.CreatedAt.UTC(),
	}, nil
}

func (s *Store) GetSettings(ctx context.Context, accountID uuid.UUID) (*mfa.Settings, error) {
	var doc settingsDoc
	err := s.settings.FindOne(ctx, bson.D{{Key: "_id", Value: accountID.String()}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, mfa.ErrSettingsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find mfa settings: %w", err)
	}

	return &mfa.Settings{
		AccountID:        accountID,
		EncryptedSecret:  doc.EncryptedSecret,
		Enabled:          doc.Enabled,
		Verified:         doc.Verified,
		BackupCodeHashes: doc.BackupCodeHashes,
		FailedAttempts:   doc.FailedAttempts,
		LockedUntil:      doc.LockedUntil,
		CreatedAt:        doc.CreatedAt.UTC(),
		UpdatedAt:        doc.UpdatedAt.UTC(),
	}, nil
}

func (s *Store) PutSettings(ctx context.Context, r *mfa.Settings) error {
	doc := settingsDoc{
		AccountID:        r.AccountID.String(),
		EncryptedSecret:  r.EncryptedSecret,
		Enabled:          r.Enabled,
		Verified:         r.Verified,
		BackupCodeHashes: r.BackupCodeHashes,
		FailedAttempts:   r.FailedAttempts,
		LockedUntil:      r.LockedUntil,
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	}
	_, err := s.settings.ReplaceOne(ctx,
		bson.D{{Key: "_id", Value: doc.AccountID}},
		doc,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("upsert mfa settings: %w", err)
	}
	return nil
}

func (s *Store) DeleteSettings(ctx context.Context, accountID uuid.UUID) error {
	if _, err := s.settings.DeleteOne(ctx, bson.D{{Key: "_id", Value: accountID.String()}}); err != nil {
		return fmt.Errorf("delete mfa settings: %w", err)
	}
	return nil
}
