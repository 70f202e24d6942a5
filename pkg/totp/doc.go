// Package totp generates and validates Time-based One-Time Passwords (RFC 6238)
// and the single-use backup codes that accompany them.
//
// Code computation is delegated to github.com/pquerna/otp; this package adds
// the pieces an application needs around it: an Engine bound to one set of
// settings, provisioning URIs for authenticator apps, and backup code
// generation and hashing.
//
// # Verification window
//
// Engine.Verify accepts a code from any step within Window steps of the
// current one (default 5 steps of 30 seconds, i.e. ±150s). This tolerates
// generous clock drift on user devices at the cost of a larger guessing
// surface. Set TOTP_WINDOW to narrow it.
//
// # Usage
//
//	engine := totp.New(totp.Config{Issuer: "Acme"})
//
//	key, err := engine.GenerateSecret("alice@example.com")
//	if err != nil {
//	    return err
//	}
//	// show key.URI as a QR code, store key.Secret encrypted
//
//	ok, err := engine.Verify(key.Secret, "123456")
//
//	codes, _ := engine.GenerateBackupCodes()
//	hashes := totp.HashBackupCodes(codes) // persist hashes only
//
// # Error Handling
//
// A malformed secret is reported as ErrInvalidSecret, never as a plain
// mismatch. A malformed code is a mismatch (false, nil).
package totp
