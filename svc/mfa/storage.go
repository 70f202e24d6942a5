package mfa

import (
	"context"

	"github.com/google/uuid"
)

// SettingsStorage persists second-factor records, one per account.
type SettingsStorage interface {
	// GetSettings returns ErrSettingsNotFound when the account has no record.
	GetSettings(ctx context.Context, accountID uuid.UUID) (*Settings, error)
	// PutSettings creates or replaces the record.
	PutSettings(ctx context.Context, settings *Settings) error
	// DeleteSettings removes the record; deleting a missing record is not an error.
	DeleteSettings(ctx context.Context, accountID uuid.UUID) error
}

// Cipher protects TOTP secrets at rest.
type Cipher interface {
	EncryptString(plaintext string) (string, error)
	DecryptString(encoded string) (string, error)
}

// QRRenderer turns an enrollment URI into an image data URI.
type QRRenderer interface {
	DataURI(content string) (string, error)
}
