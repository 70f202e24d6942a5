package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/dmitrymomot/authkit/pkg/auth"
	"github.com/dmitrymomot/authkit/pkg/logger"
	"github.com/dmitrymomot/authkit/pkg/sanitizer"
	"github.com/dmitrymomot/authkit/pkg/totp"
	"github.com/dmitrymomot/authkit/svc/mfa"
)

// SecondFactor is the part of the MFA service used during login.
type SecondFactor interface {
	IsSecondFactorRequired(ctx context.Context, accountID uuid.UUID) (bool, error)
	Verify(ctx context.Context, accountID uuid.UUID, code string) error
	RedeemBackupCode(ctx context.Context, accountID uuid.UUID, code string) error
	Status(ctx context.Context, accountID uuid.UUID) (mfa.Status, error)
}

// TokenIssuer mints session tokens.
type TokenIssuer interface {
	Issue(accountID uuid.UUID, email string) (string, error)
}

// AccountReader loads accounts by id.
type AccountReader interface {
	GetAccountByID(ctx context.Context, id uuid.UUID) (*auth.Account, error)
}

// LoginInput is what a client submits to log in. Code may hold a TOTP code
// or a backup code.
type LoginInput struct {
	Email    string
	Password string
	Code     string
}

// LoginResult is the outcome of a login attempt that passed the password check.
// When SecondFactorRequired is set, Token is empty and the client must retry
// with a code.
type LoginResult struct {
	Token                string
	Account              *auth.Account
	SecondFactorRequired bool
	SecondFactorEnabled  bool
}

// Profile describes the authenticated account.
type Profile struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	TOTPEnabled  bool      `json:"totpEnabled"`
	TOTPVerified bool      `json:"totpVerified"`
}

// Service composes password, second-factor and token components into login.
type Service struct {
	passwords auth.PasswordAuthenticator
	accounts  AccountReader
	mfa       SecondFactor
	tokens    TokenIssuer
	logger    *slog.Logger
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

// NewService creates a login service.
func NewService(passwords auth.PasswordAuthenticator, accounts AccountReader, second SecondFactor, tokens TokenIssuer, opts ...Option) *Service {
	s := &Service{
		passwords: passwords,
		accounts:  accounts,
		mfa:       second,
		tokens:    tokens,
		logger:    logger.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register creates an account.
func (s *Service) Register(ctx context.Context, email, password string) (*auth.Account, error) {
	return s.passwords.Register(ctx, email, password)
}

// Login checks the password, then the second factor when the account has one,
// and issues a token.
func (s *Service) Login(ctx context.Context, in LoginInput) (*LoginResult, error) {
	account, err := s.passwords.Authenticate(ctx, in.Email, in.Password)
	if err != nil {
		return nil, err
	}

	required, err := s.mfa.IsSecondFactorRequired(ctx, account.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check second factor: %w", err)
	}

	if required {
		code := sanitizer.NormalizeCode(in.Code)
		if code == "" {
			return &LoginResult{Account: account, SecondFactorRequired: true}, nil
		}
		if err := s.checkCode(ctx, account.ID, code); err != nil {
			s.logger.WarnContext(ctx, "second factor rejected",
				logger.AccountID(account.ID.String()),
				logger.Component("login"),
			)
			return nil, err
		}
	}

	token, err := s.tokens.Issue(account.ID, account.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	s.logger.InfoContext(ctx, "account logged in",
		logger.AccountID(account.ID.String()),
		slog.Bool("second_factor", required),
		logger.Component("login"),
	)

	return &LoginResult{
		Token:               token,
		Account:             account,
		SecondFactorEnabled: required,
	}, nil
}

// checkCode routes backup-code-shaped input to redemption and everything else
// to TOTP verification.
func (s *Service) checkCode(ctx context.Context, accountID uuid.UUID, code string) error {
	if totp.LooksLikeBackupCode(code) {
		return s.mfa.RedeemBackupCode(ctx, accountID, code)
	}
	return s.mfa.Verify(ctx, accountID, code)
}

// Profile returns the account and its second-factor flags.
func (s *Service) Profile(ctx context.Context, accountID uuid.UUID) (*Profile, error) {
	account, err := s.accounts.GetAccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, auth.ErrAccountNotFound) {
			return nil, auth.ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to load account: %w", err)
	}

	status, err := s.mfa.Status(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to load second factor status: %w", err)
	}

	return &Profile{
		ID:           account.ID,
		Email:        account.Email,
		TOTPEnabled:  status.Enabled,
		TOTPVerified: status.Verified,
	}, nil
}
