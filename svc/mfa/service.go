package mfa

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/authkit/pkg/keylock"
	"github.com/dmitrymomot/authkit/pkg/logger"
	"github.com/dmitrymomot/authkit/pkg/qrcode"
	"github.com/dmitrymomot/authkit/pkg/sanitizer"
	"github.com/dmitrymomot/authkit/pkg/statemachine"
	"github.com/dmitrymomot/authkit/pkg/totp"
)

// Service manages the TOTP second factor of accounts.
type Service struct {
	store        SettingsStorage
	cipher       Cipher
	engine       *totp.Engine
	qr           QRRenderer
	locks        *keylock.Locker
	logger       *slog.Logger
	now          func() time.Time
	instructions Instructions
	def          *statemachine.Definition
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the service logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithQRRenderer replaces the default PNG renderer.
func WithQRRenderer(r QRRenderer) Option {
	return func(s *Service) {
		if r != nil {
			s.qr = r
		}
	}
}

// WithClock overrides the time source used for code checks and timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLocker shares a per-key locker with other components.
func WithLocker(l *keylock.Locker) Option {
	return func(s *Service) {
		if l != nil {
			s.locks = l
		}
	}
}

// WithInstructions replaces the enrollment guidance returned by Setup.
func WithInstructions(in Instructions) Option {
	return func(s *Service) {
		s.instructions = in
	}
}

// NewService creates a second-factor service.
func NewService(store SettingsStorage, cipher Cipher, engine *totp.Engine, opts ...Option) *Service {
	if engine == nil {
		engine = totp.New(totp.DefaultConfig())
	}
	s := &Service{
		store:        store,
		cipher:       cipher,
		engine:       engine,
		qr:           qrcode.NewRenderer(),
		locks:        keylock.New(),
		logger:       logger.Discard(),
		now:          time.Now,
		instructions: DefaultInstructions,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.def = s.lifecycle()
	return s
}

// Setup starts (or restarts) enrollment and returns the one-time material.
// Nothing is stored unless every step succeeds.
func (s *Service) Setup(ctx context.Context, accountID uuid.UUID, label string) (*SetupResult, error) {
	unlock, err := s.locks.LockContext(ctx, accountID.String())
	if err != nil {
		return nil, err
	}
	defer unlock()

	current, err := s.load(ctx, accountID)
	if err != nil {
		return nil, err
	}

	m := s.def.Start(StateOf(current))
	if !m.CanFire(ctx, EventSetup, nil) {
		return nil, ErrAlreadyEnabled
	}

	key, err := s.engine.GenerateSecret(label)
	if err != nil {
		return nil, s.setupFailed(ctx, accountID, "generate secret", err)
	}
	encrypted, err := s.cipher.EncryptString(key.Secret)
	if err != nil {
		return nil, s.setupFailed(ctx, accountID, "encrypt secret", err)
	}
	codes, err := s.engine.GenerateBackupCodes()
	if err != nil {
		return nil, s.setupFailed(ctx, accountID, "generate backup codes", err)
	}
	qr, err := s.qr.DataURI(key.URI)
	if err != nil {
		return nil, s.setupFailed(ctx, accountID, "render qr code", err)
	}

	now := s.now().UTC()
	rec := &Settings{
		AccountID:        accountID,
		EncryptedSecret:  encrypted,
		BackupCodeHashes: totp.HashBackupCodes(codes),
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if current != nil {
		rec.CreatedAt = current.CreatedAt
	}

	if err := m.Fire(ctx, EventSetup, rec); err != nil {
		return nil, s.setupFailed(ctx, accountID, "save settings", err)
	}

	s.logger.InfoContext(ctx, "second factor setup started",
		logger.AccountID(accountID.String()),
		logger.MFAState(string(m.Current())),
		logger.Component("mfa"),
	)

	return &SetupResult{
		URI:          key.URI,
		ManualKey:    key.Secret,
		QRCode:       qr,
		BackupCodes:  codes,
		Instructions: s.instructions,
	}, nil
}

// Verify checks a TOTP code. The first success activates a pending second
// factor; later successes keep it active.
func (s *Service) Verify(ctx context.Context, accountID uuid.UUID, code string) error {
	unlock, err := s.locks.LockContext(ctx, accountID.String())
	if err != nil {
		return err
	}
	defer unlock()

	current, err := s.load(ctx, accountID)
	if err != nil {
		return err
	}

	m := s.def.Start(StateOf(current))
	if !m.CanFire(ctx, EventVerify, nil) {
		return ErrNotSetUp
	}

	secret, err := s.cipher.DecryptString(current.EncryptedSecret)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to decrypt second factor secret",
			logger.AccountID(accountID.String()),
			logger.Error(err),
			logger.Component("mfa"),
		)
		return ErrSecretUnavailable
	}

	ok, err := s.engine.VerifyAt(secret, sanitizer.NormalizeCode(code), s.now())
	if err != nil {
		return fmt.Errorf("mfa: %w", err)
	}

	if !ok {
		s.recordFailure(ctx, current)
		return ErrInvalidCode
	}

	next := current.Clone()
	next.UpdatedAt = s.now().UTC()
	next.Enabled = true
	next.Verified = true
	next.FailedAttempts = 0
	next.LockedUntil = nil

	if err := m.Fire(ctx, EventVerify, next); err != nil {
		return fmt.Errorf("mfa: failed to save settings: %w", err)
	}

	if StateOf(current) != StateActive {
		s.logger.InfoContext(ctx, "second factor activated",
			logger.AccountID(accountID.String()),
			logger.MFAState(string(m.Current())),
			logger.Component("mfa"),
		)
	}
	return nil
}

// Status reports the second-factor state of an account.
func (s *Service) Status(ctx context.Context, accountID uuid.UUID) (Status, error) {
	rec, err := s.load(ctx, accountID)
	if err != nil {
		return Status{}, err
	}
	if rec == nil {
		return Status{SetupRequired: true}, nil
	}
	return Status{Enabled: rec.Enabled, Verified: rec.Verified}, nil
}

// Disable removes the second factor. Disabling an account without one succeeds.
func (s *Service) Disable(ctx context.Context, accountID uuid.UUID) error {
	unlock, err := s.locks.LockContext(ctx, accountID.String())
	if err != nil {
		return err
	}
	defer unlock()

	current, err := s.load(ctx, accountID)
	if err != nil {
		return err
	}

	m := s.def.Start(StateOf(current))
	if err := m.Fire(ctx, EventDisable, accountID); err != nil {
		return fmt.Errorf("mfa: failed to delete settings: %w", err)
	}

	if current != nil {
		s.logger.InfoContext(ctx, "second factor disabled",
			logger.AccountID(accountID.String()),
			logger.Component("mfa"),
		)
	}
	return nil
}

// IsSecondFactorRequired reports whether login must present a code.
func (s *Service) IsSecondFactorRequired(ctx context.Context, accountID uuid.UUID) (bool, error) {
	rec, err := s.load(ctx, accountID)
	if err != nil {
		return false, err
	}
	return StateOf(rec) == StateActive, nil
}

// load returns nil settings, not an error, when the account has no record.
func (s *Service) load(ctx context.Context, accountID uuid.UUID) (*Settings, error) {
	rec, err := s.store.GetSettings(ctx, accountID)
	if errors.Is(err, ErrSettingsNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("mfa: failed to load settings: %w", err)
	}
	return rec, nil
}

// recordFailure counts a rejected TOTP or backup code. The counter is kept for
// reporting and is not enforced.
func (s *Service) recordFailure(ctx context.Context, current *Settings) {
	next := current.Clone()
	next.FailedAttempts++
	next.UpdatedAt = s.now().UTC()
	if err := s.store.PutSettings(ctx, next); err != nil {
		s.logger.ErrorContext(ctx, "failed to record failed attempt",
			logger.AccountID(current.AccountID.String()),
			logger.Error(err),
			logger.Component("mfa"),
		)
	}
}

func (s *Service) setupFailed(ctx context.Context, accountID uuid.UUID, step string, err error) error {
	s.logger.ErrorContext(ctx, "second factor setup failed",
		logger.AccountID(accountID.String()),
		logger.Event(step),
		logger.Error(err),
		logger.Component("mfa"),
	)
	return fmt.Errorf("%w: %s", ErrSetupFailed, step)
}
