package totp_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authkit/pkg/totp"
)

func TestEngine_GenerateSecret(t *testing.T) {
	t.Parallel()

	engine := totp.New(totp.Config{Issuer: "TestApp"})

	key, err := engine.GenerateSecret("test@example.com")
	require.NoError(t, err)
	assert.Regexp(t, totp.ValidateSecretKeyRegex, key.Secret)
	assert.Len(t, key.Secret, 32) // 20 bytes, base32 without padding
	assert.True(t, strings.HasPrefix(key.URI, "otpauth://totp/TestApp:test@example.com?"))
	assert.Contains(t, key.URI, "secret="+key.Secret)
	assert.Contains(t, key.URI, "issuer=TestApp")

	other, err := engine.GenerateSecret("test@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, key.Secret, other.Secret)

	_, err = engine.GenerateSecret("")
	assert.ErrorIs(t, err, totp.ErrMissingAccountName)
}

func TestEngine_RoundTrip(t *testing.T) {
	t.Parallel()

	engine := totp.New(totp.DefaultConfig())
	key, err := engine.GenerateSecret("alice@example.com")
	require.NoError(t, err)

	code, err := engine.CurrentCode(key.Secret)
	require.NoError(t, err)
	assert.Len(t, code, totp.DefaultDigits)

	ok, err := engine.Verify(key.Secret, code)
	require.NoError(t, err)
	assert.True(t, ok)

	// Lowercase secrets are accepted.
	ok, err = engine.Verify(strings.ToLower(key.Secret), code)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestEngine_KnownVector(t *testing.T) {
	t.Parallel()

	// RFC 6238 appendix B, SHA1 seed "12345678901234567890", truncated to 6 digits.
	secret := "GEZDGNBVGY3TQOJQGEZDGNBVGY3TQOJQ"
	engine := totp.New(totp.Config{Window: 1})

	code, err := engine.CodeAt(secret, time.Unix(59, 0).UTC())
	require.NoError(t, err)
	assert.Equal(t, "287082", code)

	code, err = engine.CodeAt(secret, time.Unix(1111111109, 0).UTC())
	require.NoError(t, err)
	assert.Equal(t, "081804", code)
}

func TestEngine_VerifyWindow(t *testing.T) {
	t.Parallel()

	engine := totp.New(totp.Config{Window: 5})
	key, err := engine.GenerateSecret("alice@example.com")
	require.NoError(t, err)

	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	step := engine.Config().StepDuration()

	tests := []struct {
		name   string
		offset time.Duration
		want   bool
	}{
		{"current step", 0, true},
		{"4 steps ahead", 4 * step, true},
		{"5 steps behind", -5 * step, true},
		{"5 steps ahead", 5 * step, true},
		{"6 steps ahead", 6 * step, false},
		{"31 steps ahead", 31 * step, false},
		{"31 steps behind", -31 * step, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			code, err := engine.CodeAt(key.Secret, now.Add(tt.offset))
			require.NoError(t, err)

			ok, err := engine.VerifyAt(key.Secret, code, now)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
		})
	}
}

func TestEngine_VerifyMalformedInput(t *testing.T) {
	t.Parallel()

	engine := totp.New(totp.DefaultConfig())
	key, err := engine.GenerateSecret("alice@example.com")
	require.NoError(t, err)

	t.Run("malformed secret is an error", func(t *testing.T) {
		t.Parallel()
		for _, secret := range []string{"", "not-base32!", "18901890", "A"} {
			ok, err := engine.Verify(secret, "123456")
			assert.ErrorIs(t, err, totp.ErrInvalidSecret, secret)
			assert.False(t, ok)

			_, err = engine.CurrentCode(secret)
			assert.ErrorIs(t, err, totp.ErrInvalidSecret, secret)
		}
	})

	t.Run("malformed code is rejected", func(t *testing.T) {
		t.Parallel()
		for _, code := range []string{"", "12345", "1234567", "abcdef", "12 456"} {
			ok, err := engine.Verify(key.Secret, code)
			require.NoError(t, err, code)
			assert.False(t, ok, code)
		}
	})
}

func TestEngine_Defaults(t *testing.T) {
	t.Parallel()

	cfg := totp.New(totp.DefaultConfig()).Config()
	assert.Equal(t, totp.DefaultIssuer, cfg.Issuer)
	assert.Equal(t, uint(totp.DefaultWindow), cfg.Window)
	assert.Equal(t, uint(totp.DefaultPeriod), cfg.Period)
	assert.Equal(t, totp.DefaultDigits, cfg.Digits)
	assert.Equal(t, uint(totp.DefaultSecretSize), cfg.SecretSize)
	assert.Equal(t, totp.DefaultBackupCodeCount, cfg.BackupCodeCount)
	assert.Equal(t, 30*time.Second, cfg.StepDuration())
}

func TestEngine_LooksLikeCode(t *testing.T) {
	t.Parallel()

	engine := totp.New(totp.DefaultConfig())
	assert.True(t, engine.LooksLikeCode("012345"))
	assert.False(t, engine.LooksLikeCode("01234"))
	assert.False(t, engine.LooksLikeCode("A1B2C3"))
}

func TestEngine_ZeroWindow(t *testing.T) {
	t.Parallel()

	engine := totp.New(totp.Config{Window: 0})
	assert.Equal(t, uint(0), engine.Config().Window)

	key, err := engine.GenerateSecret("alice@example.com")
	require.NoError(t, err)

	now := time.Date(2024, 1, 1, 12, 0, 15, 0, time.UTC)
	step := engine.Config().StepDuration()

	tests := []struct {
		name   string
		offset time.Duration
		want   bool
	}{
		{"current step", 0, true},
		{"1 step ahead", step, false},
		{"1 step behind", -step, false},
		{"5 steps ahead", 5 * step, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			code, err := engine.CodeAt(key.Secret, now.Add(tt.offset))
			require.NoError(t, err)

			ok, err := engine.VerifyAt(key.Secret, code, now)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
		})
	}
}

func TestEngine_SecretSizeFloor(t *testing.T) {
	t.Parallel()

	for _, size := range []uint{0, 1, 10, totp.DefaultSecretSize - 1} {
		engine := totp.New(totp.Config{SecretSize: size})
		assert.Equal(t, uint(totp.DefaultSecretSize), engine.Config().SecretSize, size)

		key, err := engine.GenerateSecret("alice@example.com")
		require.NoError(t, err)
		assert.GreaterOrEqual(t, len(key.Secret)*5, 160, size)
	}

	engine := totp.New(totp.Config{SecretSize: 32})
	assert.Equal(t, uint(32), engine.Config().SecretSize)
}
