package memstore_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authkit/pkg/auth"
	"github.com/dmitrymomot/authkit/storage/memstore"
	"github.com/dmitrymomot/authkit/svc/mfa"
)

func TestStore_Accounts(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := memstore.New()

	acc := &auth.Account{
		ID:           uuid.New(),
		Email:        "alice@example.com",
		PasswordHash: []byte("hash"),
		CreatedAt:    time.Now().UTC(),
	}
	require.NoError(t, s.CreateAccount(ctx, acc))

	t.Run("duplicate email", func(t *testing.T) {
		t.Parallel()
		dup := &auth.Account{ID: uuid.New(), Email: "alice@example.com"}
		assert.ErrorIs(t, s.CreateAccount(ctx, dup), auth.ErrEmailAlreadyExists)
	})

	t.Run("lookup by email and id", func(t *testing.T) {
		t.Parallel()
		byEmail, err := s.GetAccountByEmail(ctx, "alice@example.com")
		require.NoError(t, err)
		assert.Equal(t, acc.ID, byEmail.ID)

		byID, err := s.GetAccountByID(ctx, acc.ID)
		require.NoError(t, err)
		assert.Equal(t, acc.Email, byID.Email)
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()
		_, err := s.GetAccountByEmail(ctx, "bob@example.com")
		assert.ErrorIs(t, err, auth.ErrAccountNotFound)
		_, err = s.GetAccountByID(ctx, uuid.New())
		assert.ErrorIs(t, err, auth.ErrAccountNotFound)
	})

	t.Run("returns copies", func(t *testing.T) {
		t.Parallel()
		got, err := s.GetAccountByID(ctx, acc.ID)
		require.NoError(t, err)
		got.PasswordHash[0] = 'X'

		again, err := s.GetAccountByID(ctx, acc.ID)
		require.NoError(t, err)
		assert.Equal(t, []byte("hash"), again.PasswordHash)
	})
}

func TestStore_Settings(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := memstore.New()
	id := uuid.New()

	_, err := s.GetSettings(ctx, id)
	require.ErrorIs(t, err, mfa.ErrSettingsNotFound)

	rec := &mfa.Settings{
		AccountID:        id,
		EncryptedSecret:  "aa:bb",
		BackupCodeHashes: []string{"h1", "h2"},
	}
	require.NoError(t, s.PutSettings(ctx, rec))

	rec.BackupCodeHashes[0] = "changed"
	got, err := s.GetSettings(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, []string{"h1", "h2"}, got.BackupCodeHashes)

	got.Enabled = true
	got.Verified = true
	require.NoError(t, s.PutSettings(ctx, got))

	got, err = s.GetSettings(ctx, id)
	require.NoError(t, err)
	assert.True(t, got.Enabled)

	require.NoError(t, s.DeleteSettings(ctx, id))
	require.NoError(t, s.DeleteSettings(ctx, id))
	_, err = s.GetSettings(ctx, id)
	assert.ErrorIs(t, err, mfa.ErrSettingsNotFound)
}
