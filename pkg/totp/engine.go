package totp

import (
	"errors"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

// Key is a freshly generated shared secret together with its provisioning URI.
type Key struct {
	Secret string // Base32, no padding
	URI    string // otpauth:// URI for authenticator apps
}

// Engine generates and checks RFC 6238 codes with HMAC-SHA1.
// It holds no mutable state and is safe for concurrent use.
type Engine struct {
	cfg Config
}

// New returns an Engine; zero-valued Config fields get defaults.
func New(cfg Config) *Engine {
	return &Engine{cfg: cfg.withDefaults()}
}

// Config returns the effective settings.
func (e *Engine) Config() Config {
	return e.cfg
}

func (e *Engine) opts() totp.ValidateOpts {
	return totp.ValidateOpts{
		Period:    e.cfg.Period,
		Skew:      e.cfg.Window,
		Digits:    otp.Digits(e.cfg.Digits),
		Algorithm: otp.AlgorithmSHA1,
	}
}

// GenerateSecret creates a random secret for accountName and the URI that
// enrolls it in an authenticator app.
func (e *Engine) GenerateSecret(accountName string) (Key, error) {
	if accountName == "" {
		return Key{}, ErrMissingAccountName
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      e.cfg.Issuer,
		AccountName: accountName,
		Period:      e.cfg.Period,
		SecretSize:  e.cfg.SecretSize,
		Digits:      otp.Digits(e.cfg.Digits),
		Algorithm:   otp.AlgorithmSHA1,
	})
	if err != nil {
		return Key{}, errors.Join(ErrFailedToGenerateSecretKey, err)
	}

	uri, err := GetTOTPURI(TOTPParams{
		Secret:      key.Secret(),
		AccountName: accountName,
		Issuer:      e.cfg.Issuer,
		Digits:      e.cfg.Digits,
		Period:      int(e.cfg.Period),
	})
	if err != nil {
		return Key{}, errors.Join(ErrFailedToGenerateSecretKey, err)
	}

	return Key{Secret: key.Secret(), URI: uri}, nil
}

// CurrentCode returns the code for the step containing now.
func (e *Engine) CurrentCode(secret string) (string, error) {
	return e.CodeAt(secret, time.Now())
}

// CodeAt returns the code for the step containing t.
func (e *Engine) CodeAt(secret string, t time.Time) (string, error) {
	secret, ok := normalizeSecret(secret)
	if !ok {
		return "", ErrInvalidSecret
	}

	code, err := totp.GenerateCodeCustom(secret, t, e.opts())
	if err != nil {
		if errors.Is(err, otp.ErrValidateSecretInvalidBase32) {
			return "", errors.Join(ErrInvalidSecret, err)
		}
		return "", errors.Join(ErrFailedToGenerateTOTP, err)
	}
	return code, nil
}

// Verify reports whether code matches secret within the configured window
// around now.
func (e *Engine) Verify(secret, code string) (bool, error) {
	return e.VerifyAt(secret, code, time.Now())
}

// VerifyAt reports whether code matches any step in
// [t - Window*Period, t + Window*Period].
//
// A malformed secret is an error (ErrInvalidSecret). A malformed code is
// simply not a match.
func (e *Engine) VerifyAt(secret, code string, t time.Time) (bool, error) {
	secret, ok := normalizeSecret(secret)
	if !ok {
		return false, ErrInvalidSecret
	}

	if !isDigits(code, e.cfg.Digits) {
		return false, nil
	}

	valid, err := totp.ValidateCustom(code, secret, t, e.opts())
	if err != nil {
		if errors.Is(err, otp.ErrValidateSecretInvalidBase32) {
			return false, errors.Join(ErrInvalidSecret, err)
		}
		return false, nil
	}
	return valid, nil
}

// LooksLikeCode reports whether s has the shape of a TOTP code.
func (e *Engine) LooksLikeCode(s string) bool {
	return isDigits(s, e.cfg.Digits)
}

func isDigits(s string, n int) bool {
	if len(s) != n {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
