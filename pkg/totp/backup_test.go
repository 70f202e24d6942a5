package totp_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authkit/pkg/totp"
)

func TestGenerateBackupCodes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		count   int
		wantErr bool
	}{
		{name: "Generate 8 codes", count: 8},
		{name: "Generate 1 code", count: 1},
		{name: "Generate 0 codes", count: 0, wantErr: true},
		{name: "Generate negative codes", count: -1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			codes, err := totp.GenerateBackupCodes(tt.count)
			if tt.wantErr {
				assert.ErrorIs(t, err, totp.ErrInvalidBackupCodeCount)
				assert.Nil(t, codes)
				return
			}

			require.NoError(t, err)
			assert.Len(t, codes, tt.count)

			seen := make(map[string]bool)
			for _, code := range codes {
				assert.Len(t, code, totp.BackupCodeLength)
				assert.Regexp(t, "^[0-9A-F]+$", code)
				assert.False(t, seen[code], "duplicate code %s", code)
				seen[code] = true
			}
		})
	}
}

func TestEngine_GenerateBackupCodes(t *testing.T) {
	t.Parallel()

	codes, err := totp.New(totp.Config{}).GenerateBackupCodes()
	require.NoError(t, err)
	assert.Len(t, codes, totp.DefaultBackupCodeCount)

	codes, err = totp.New(totp.Config{BackupCodeCount: 3}).GenerateBackupCodes()
	require.NoError(t, err)
	assert.Len(t, codes, 3)
}

func TestHashBackupCode(t *testing.T) {
	t.Parallel()

	codes, err := totp.GenerateBackupCodes(8)
	require.NoError(t, err)
	hashes := totp.HashBackupCodes(codes)
	require.Len(t, hashes, len(codes))

	for i, code := range codes {
		assert.Len(t, hashes[i], 64)
		assert.NotEqual(t, code, hashes[i])
		assert.Equal(t, hashes[i], totp.HashBackupCode(code), "re-hashing must reproduce the stored hash")
		assert.True(t, totp.VerifyBackupCode(code, hashes[i]))
	}

	assert.False(t, totp.VerifyBackupCode("0000000000000000", hashes[0]))
}

func TestNormalizeBackupCode(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "ABCDEF0123456789", totp.NormalizeBackupCode(" abcd-ef01 2345-6789 "))
	assert.Equal(t, totp.HashBackupCode("ABCDEF0123456789"), totp.HashBackupCode("abcd-ef01-2345-6789"))

	assert.True(t, totp.LooksLikeBackupCode("abcd-ef01-2345-6789"))
	assert.False(t, totp.LooksLikeBackupCode("123456"))
	assert.False(t, totp.LooksLikeBackupCode("ZZZZZZZZZZZZZZZZ"))
}

func TestMatchBackupCode(t *testing.T) {
	t.Parallel()

	codes := []string{"AAAAAAAAAAAAAAAA", "BBBBBBBBBBBBBBBB", "CCCCCCCCCCCCCCCC"}
	hashes := totp.HashBackupCodes(codes)

	assert.Equal(t, 1, totp.MatchBackupCode("bbbb-bbbb-bbbb-bbbb", hashes))
	assert.Equal(t, -1, totp.MatchBackupCode("DDDDDDDDDDDDDDDD", hashes))
	assert.Equal(t, -1, totp.MatchBackupCode("AAAAAAAAAAAAAAAA", nil))
}
