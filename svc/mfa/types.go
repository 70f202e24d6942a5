package mfa

import (
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/authkit/pkg/statemachine"
)

// Lifecycle states and events.
const (
	StateNotConfigured statemachine.State = "not_configured"
	StatePending       statemachine.State = "pending_verification"
	StateActive        statemachine.State = "active"

	EventSetup   statemachine.Event = "setup"
	EventVerify  statemachine.Event = "verify"
	EventDisable statemachine.Event = "disable"
)

// Settings is the per-account second-factor record.
//
// Enabled implies Verified. FailedAttempts counts wrong TOTP codes since the
// last success; it and LockedUntil are recorded but not enforced.
type Settings struct {
	AccountID        uuid.UUID  `json:"account_id"`
	EncryptedSecret  string     `json:"encrypted_secret"`
	Enabled          bool       `json:"enabled"`
	Verified         bool       `json:"verified"`
	BackupCodeHashes []string   `json:"backup_code_hashes"`
	FailedAttempts   int        `json:"failed_attempts"`
	LockedUntil      *time.Time `json:"locked_until,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// StateOf derives the lifecycle state of a record; nil means not configured.
func StateOf(s *Settings) statemachine.State {
	switch {
	case s == nil:
		return StateNotConfigured
	case s.Enabled && s.Verified:
		return StateActive
	default:
		return StatePending
	}
}

// Clone returns a deep copy.
func (s *Settings) Clone() *Settings {
	if s == nil {
		return nil
	}
	c := *s
	c.BackupCodeHashes = append([]string(nil), s.BackupCodeHashes...)
	if s.LockedUntil != nil {
		t := *s.LockedUntil
		c.LockedUntil = &t
	}
	return &c
}

// Status is a read-only snapshot of an account's second factor.
type Status struct {
	Enabled       bool `json:"enabled"`
	Verified      bool `json:"verified"`
	SetupRequired bool `json:"setupRequired"`
}

// Instructions are shown to the user next to the enrollment QR code.
type Instructions struct {
	Step1 string `json:"step1"`
	Step2 string `json:"step2"`
	Step3 string `json:"step3"`
}

// DefaultInstructions is the enrollment guidance returned by Setup.
var DefaultInstructions = Instructions{
	Step1: "Install an authenticator app such as Google Authenticator on your phone",
	Step2: "Scan the QR code or enter the manual key",
	Step3: "Enter the 6-digit code from the app to verify setup",
}

// SetupResult carries enrollment material. The plaintext secret and backup
// codes are returned exactly once and never stored in clear.
type SetupResult struct {
	URI          string       `json:"uri"`
	ManualKey    string       `json:"manualEntryKey"`
	QRCode       string       `json:"qrCode"`
	BackupCodes  []string     `json:"backupCodes"`
	Instructions Instructions `json:"instructions"`
}
