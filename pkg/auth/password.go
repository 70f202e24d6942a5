package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrymomot/authkit/pkg/logger"
	"github.com/dmitrymomot/authkit/pkg/sanitizer"
	"github.com/dmitrymomot/authkit/pkg/validator"
)

const (
	// DefaultBcryptCost is the work factor used unless overridden.
	DefaultBcryptCost = 10

	// maxPasswordLength is the most bcrypt will accept.
	maxPasswordLength = 72
)

// PasswordAuthenticator defines password-based authentication operations
type PasswordAuthenticator interface {
	Register(ctx context.Context, email, password string) (*Account, error)
	Authenticate(ctx context.Context, email, password string) (*Account, error)
}

// PasswordStorage defines the storage operations required for password authentication.
// CreateAccount must fail with ErrEmailAlreadyExists when the email is taken;
// lookups return ErrAccountNotFound when nothing matches.
type PasswordStorage interface {
	CreateAccount(ctx context.Context, account *Account) error
	GetAccountByID(ctx context.Context, id uuid.UUID) (*Account, error)
	GetAccountByEmail(ctx context.Context, email string) (*Account, error)
}

// passwordService registers accounts and verifies their passwords
type passwordService struct {
	storage           PasswordStorage
	bcryptCost        int
	minPasswordLength int
	logger            *slog.Logger

	dummyOnce sync.Once
	dummyHash []byte

	// Hooks for extending password authentication behavior
	afterRegister func(ctx context.Context, account *Account) error
	afterLogin    func(ctx context.Context, account *Account) error
}

type PasswordOption func(*passwordService)

// WithPasswordLogger sets a custom logger for the service
func WithPasswordLogger(logger *slog.Logger) PasswordOption {
	return func(s *passwordService) {
		s.logger = logger
	}
}

// WithBcryptCost sets the bcrypt cost for password hashing
func WithBcryptCost(cost int) PasswordOption {
	return func(s *passwordService) {
		s.bcryptCost = cost
	}
}

// WithMinPasswordLength sets the shortest accepted password. The default of 1
// only rejects empty passwords.
func WithMinPasswordLength(n int) PasswordOption {
	return func(s *passwordService) {
		if n > 0 {
			s.minPasswordLength = n
		}
	}
}

// WithAfterRegister sets a hook that runs after successful registration
func WithAfterRegister(fn func(context.Context, *Account) error) PasswordOption {
	return func(s *passwordService) {
		s.afterRegister = fn
	}
}

// WithAfterLogin sets a hook that runs after a successful password check
func WithAfterLogin(fn func(context.Context, *Account) error) PasswordOption {
	return func(s *passwordService) {
		s.afterLogin = fn
	}
}

// NewPasswordService creates a new password authentication service
func NewPasswordService(storage PasswordStorage, opts ...PasswordOption) PasswordAuthenticator {
	s := &passwordService{
		storage:           storage,
		bcryptCost:        DefaultBcryptCost,
		minPasswordLength: 1,
		logger:            logger.Discard(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Register creates a new account with email and password
func (s *passwordService) Register(ctx context.Context, email, password string) (*Account, error) {
	email = sanitizer.NormalizeEmail(email)

	if err := validator.Apply(
		validator.Required("email", email),
		validator.ValidEmail("email", email),
		validator.Required("password", password),
		validator.MinLen("password", password, s.minPasswordLength),
		validator.MaxBytes("password", password, maxPasswordLength),
	); err != nil {
		return nil, err
	}

	_, err := s.storage.GetAccountByEmail(ctx, email)
	if err == nil {
		return nil, ErrEmailAlreadyExists
	}
	if !errors.Is(err, ErrAccountNotFound) {
		return nil, fmt.Errorf("failed to check existing account: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	account := &Account{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}

	// The store enforces uniqueness too; a concurrent registration loses here.
	if err := s.storage.CreateAccount(ctx, account); err != nil {
		if errors.Is(err, ErrEmailAlreadyExists) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	s.logger.InfoContext(ctx, "account registered",
		logger.AccountID(account.ID.String()),
		logger.Component("password"),
	)

	s.runHook("afterRegister", s.afterRegister, account)

	return account, nil
}

// Authenticate verifies email and password, returns the account if valid.
// Returns generic ErrInvalidCredentials for any failure to prevent account enumeration.
func (s *passwordService) Authenticate(ctx context.Context, email, password string) (*Account, error) {
	email = sanitizer.NormalizeEmail(email)

	account, err := s.storage.GetAccountByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, ErrAccountNotFound) {
			s.logger.ErrorContext(ctx, "account lookup failed",
				logger.Error(err),
				logger.Component("password"),
			)
		}
		// Spend the same bcrypt work as a real comparison.
		_ = bcrypt.CompareHashAndPassword(s.dummy(), []byte(password))
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword(account.PasswordHash, []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	s.runHook("afterLogin", s.afterLogin, account)

	return account, nil
}

func (s *passwordService) dummy() []byte {
	s.dummyOnce.Do(func() {
		hash, err := bcrypt.GenerateFromPassword([]byte("dummy-password-for-timing"), s.bcryptCost)
		if err == nil {
			s.dummyHash = hash
		}
	})
	return s.dummyHash
}

func (s *passwordService) runHook(name string, hook func(context.Context, *Account) error, account *Account) {
	if hook == nil {
		return
	}

	go func() {
		defer func() {
			if r := recover(); r != nil {
				s.logger.Error(name+" hook panicked",
					logger.AccountID(account.ID.String()),
					slog.Any("panic", r),
					logger.Component("password"),
				)
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := hook(ctx, account); err != nil {
			s.logger.Error(name+" hook failed",
				logger.AccountID(account.ID.String()),
				logger.Error(err),
				logger.Component("password"),
			)
		}
	}()
}
