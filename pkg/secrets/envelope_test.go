package secrets_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authkit/pkg/secrets"
)

func TestParseEnvelope(t *testing.T) {
	t.Parallel()

	t.Run("encrypted variant", func(t *testing.T) {
		t.Parallel()

		env, err := secrets.ParseEnvelope("0a0b:0c0d0e")
		require.NoError(t, err)
		assert.Equal(t, secrets.KindEncrypted, env.Kind)
		assert.Equal(t, []byte{0x0a, 0x0b}, env.IV)
		assert.Equal(t, []byte{0x0c, 0x0d, 0x0e}, env.Ciphertext)
		assert.Equal(t, "0a0b:0c0d0e", env.Encode())
	})

	t.Run("plain fallback variant", func(t *testing.T) {
		t.Parallel()

		env, err := secrets.ParseEnvelope("aGVsbG8=")
		require.NoError(t, err)
		assert.Equal(t, secrets.KindPlainFallback, env.Kind)
		assert.Equal(t, "hello", env.Plain)
		assert.Equal(t, "aGVsbG8=", env.Encode())
	})

	t.Run("invalid", func(t *testing.T) {
		t.Parallel()

		for _, s := range []string{"", ":", "a:b:c", "xyz:00", "00:xyz", "%%%"} {
			_, err := secrets.ParseEnvelope(s)
			assert.ErrorIs(t, err, secrets.ErrInvalidEnvelope, s)
		}
	})
}

func TestKind_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "encrypted", secrets.KindEncrypted.String())
	assert.Equal(t, "plain_fallback", secrets.KindPlainFallback.String())
	assert.Equal(t, "unknown", secrets.Kind(0).String())
	assert.Empty(t, secrets.Envelope{}.Encode())
}
