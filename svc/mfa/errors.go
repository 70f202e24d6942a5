package mfa

import "errors"

var (
	// ErrNotSetUp means the account has no second-factor settings.
	ErrNotSetUp = errors.New("mfa: second factor is not set up")
	// ErrInvalidCode means a submitted TOTP or backup code did not match.
	ErrInvalidCode = errors.New("mfa: invalid code")
	// ErrAlreadyEnabled is returned by Setup for an account whose second factor is active.
	ErrAlreadyEnabled = errors.New("mfa: second factor is already enabled")
	// ErrSecretUnavailable hides cipher failures from callers; details are logged.
	ErrSecretUnavailable = errors.New("mfa: stored secret is unavailable")
	// ErrSetupFailed means enrollment material could not be produced; nothing was stored.
	ErrSetupFailed = errors.New("mfa: setup failed")
	// ErrSettingsNotFound is returned by SettingsStorage when no record exists.
	ErrSettingsNotFound = errors.New("mfa: settings not found")
)
