// Package pgstore stores accounts and second-factor settings in PostgreSQL.
package pgstore

import (
	"context"
	"embed"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/authkit/pkg/auth"
	"github.com/dmitrymomot/authkit/pkg/pg"
	"github.com/dmitrymomot/authkit/svc/mfa"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Store implements auth.PasswordStorage and mfa.SettingsStorage.
type Store struct {
	pool *pgxpool.Pool
}

// New wraps a connected pool.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Migrate brings the schema up to date.
func (s *Store) Migrate(ctx context.Context, cfg pg.Config, log *slog.Logger) error {
	return pg.Migrate(ctx, s.pool, migrations, "migrations", cfg, log)
}

// Ping checks the connection.
func (s *Store) Ping(ctx context.Context) error {
	return pg.Check(s.pool, 0)(ctx)
}

const accountColumns = `id, email, password_hash, created_at`

func (s *Store) CreateAccount(ctx context.Context, account *auth.Account) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO accounts (`+accountColumns+`) VALUES ($1, $2, $3, $4)`,
		account.ID, account.Email, account.PasswordHash, account.CreatedAt,
	)
	if pg.IsUniqueViolation(err) {
		return auth.ErrEmailAlreadyExists
	}
	if err != nil {
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}

func (s *Store) GetAccountByID(ctx context.Context, id uuid.UUID) (*auth.Account, error) {
	return s.getAccount(ctx, `SELECT `+accountColumns+` FROM accounts WHERE id = $1`, id)
}

func (s *Store) GetAccountByEmail(ctx context.Context, email string) (*auth.Account, error) {
	return s.getAccount(ctx, `SELECT `+accountColumns+` FROM accounts WHERE email = $1`, email)
}

func (s *Store) getAccount(ctx context.Context, query string, arg any) (*auth.Account, error) {
	var a auth.Account
	err := s.pool.QueryRow(ctx, query, arg).Scan(&a.ID, &a.Email, &a.PasswordHash, &a.CreatedAt)
	if pg.IsNoRows(err) {
		return nil, auth.ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select account: %w", err)
	}
	return &a, nil
}

const settingsColumns = `account_id, encrypted_secret, enabled, verified, backup_code_hashes,
	failed_attempts, locked_until, created_at, updated_at`

func (s *Store) GetSettings(ctx context.Context, accountID uuid.UUID) (*mfa.Settings, error) {
	var r mfa.Settings
	err := s.pool.QueryRow(ctx,
		`SELECT `+settingsColumns+` FROM mfa_settings WHERE account_id = $1`, accountID,
	).Scan(
		&r.AccountID, &r.EncryptedSecret, &r.Enabled, &r.Verified, &r.BackupCodeHashes,
		&r.FailedAttempts, &r.LockedUntil, &r.CreatedAt, &r.UpdatedAt,
	)
	if pg.IsNoRows(err) {
		return nil, mfa.ErrSettingsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select mfa settings: %w", err)
	}
	return &r, nil
}

func (s *Store) PutSettings(ctx context.Context, r *mfa.Settings) error {
	hashes := r.BackupCodeHashes
	if hashes == nil {
		hashes = []string{}
	}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO mfa_settings (`+settingsColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (account_id) DO UPDATE SET
			encrypted_secret   = EXCLUDED.encrypted_secret,
			enabled            = EXCLUDED.enabled,
			verified           = EXCLUDED.verified,
			backup_code_hashes = EXCLUDED.backup_code_hashes,
			failed_attempts    = EXCLUDED.failed_attempts,
			locked_until       = EXCLUDED.locked_until,
			updated_at         = EXCLUDED.updated_at`,
		r.AccountID, r.EncryptedSecret, r.Enabled, r.Verified, hashes,
		r.FailedAttempts, r.LockedUntil, r.CreatedAt, r.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert mfa settings: %w", err)
	}
	return nil
}

func (s *Store) DeleteSettings(ctx context.Context, accountID uuid.UUID) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM mfa_settings WHERE account_id = $1`, accountID); err != nil {
		return fmt.Errorf("delete mfa settings: %w", err)
	}
	return nil
}
