// Package mfa manages the TOTP second factor of an account.
//
// A record moves through three states:
//
//	not_configured --setup--> pending_verification --verify--> active
//	any state --disable--> not_configured
//
// Setup from the active state fails with ErrAlreadyEnabled; the second factor
// must be disabled first. Repeating setup while pending replaces the secret
// and backup codes. Secrets are stored encrypted through a Cipher and backup
// codes are stored as SHA-256 hashes; the plaintext values are returned once
// by Setup.
//
// Basic usage:
//
//	svc := mfa.NewService(store, cipher, totp.New(totp.DefaultConfig()),
//		mfa.WithLogger(log),
//	)
//	res, err := svc.Setup(ctx, accountID, "alice@example.com")
//	// show res.QRCode and res.BackupCodes to the user
//	err = svc.Verify(ctx, accountID, "123456")
//
// Mutating operations are serialized per account. Wrong codes increment a
// failed-attempt counter that is stored but not enforced.
package mfa
