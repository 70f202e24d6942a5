// Package auth implements password-based account registration and login.
//
// Passwords are hashed with bcrypt (cost 10 by default) and never stored or
// logged in clear. Emails are normalized (trimmed, lowercased) before they
// are validated or looked up, so "Alice@Example.com" and "alice@example.com"
// name the same account.
//
// Authenticate reports every failure (unknown email, wrong password, storage
// error) as ErrInvalidCredentials and spends comparable bcrypt work on each
// path, so responses do not reveal which emails are registered.
//
// Storage is injected through PasswordStorage; see the storage/ packages for
// in-memory, PostgreSQL, Redis and MongoDB implementations.
package auth
