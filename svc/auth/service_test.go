package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authkit/pkg/auth"
	"github.com/dmitrymomot/authkit/pkg/jwt"
	"github.com/dmitrymomot/authkit/pkg/secrets"
	"github.com/dmitrymomot/authkit/pkg/totp"
	"github.com/dmitrymomot/authkit/storage/memstore"
	authsvc "github.com/dmitrymomot/authkit/svc/auth"
	"github.com/dmitrymomot/authkit/svc/mfa"
)

var fixedNow = time.Unix(1_700_000_000, 0).UTC()

type harness struct {
	svc    *authsvc.Service
	mfa    *mfa.Service
	tokens *jwt.Service
	engine *totp.Engine
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	clock := func() time.Time { return fixedNow }
	store := memstore.New()

	cipher, err := secrets.NewCipher("login-test-key")
	require.NoError(t, err)
	engine := totp.New(totp.DefaultConfig())
	second := mfa.NewService(store, cipher, engine, mfa.WithClock(clock))

	tokens, err := jwt.New([]byte("login-test-signing-key"), jwt.WithClock(clock))
	require.NoError(t, err)

	passwords := auth.NewPasswordService(store, auth.WithBcryptCost(4))

	return &harness{
		svc:    authsvc.NewService(passwords, store, second, tokens),
		mfa:    second,
		tokens: tokens,
		engine: engine,
	}
}

func (h *harness) enroll(t *testing.T, accountID uuid.UUID) *mfa.SetupResult {
	t.Helper()
	ctx := context.Background()
	res, err := h.mfa.Setup(ctx, accountID, "alice@example.com")
	require.NoError(t, err)
	code, err := h.engine.CodeAt(res.ManualKey, fixedNow)
	require.NoError(t, err)
	require.NoError(t, h.mfa.Verify(ctx, accountID, code))
	return res
}

func TestService_LoginWithoutSecondFactor(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	h := newHarness(t)

	acc, err := h.svc.Register(ctx, "Alice@Example.com", "pw123456")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", acc.Email)

	res, err := h.svc.Login(ctx, authsvc.LoginInput{Email: "alice@example.com", Password: "pw123456"})
	require.NoError(t, err)
	assert.False(t, res.SecondFactorRequired)
	assert.False(t, res.SecondFactorEnabled)
	require.NotEmpty(t, res.Token)

	claims, err := h.tokens.Verify(res.Token)
	require.NoError(t, err)
	assert.Equal(t, acc.ID.String(), claims.AccountID)
	assert.Equal(t, "alice@example.com", claims.Email)

	_, err = h.svc.Login(ctx, authsvc.LoginInput{Email: "alice@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	_, err = h.svc.Login(ctx, authsvc.LoginInput{Email: "nobody@example.com", Password: "pw123456"})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestService_RegisterDuplicate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	h := newHarness(t)

	_, err := h.svc.Register(ctx, "alice@example.com", "pw123456")
	require.NoError(t, err)
	_, err = h.svc.Register(ctx, "alice@example.com", "other")
	assert.ErrorIs(t, err, auth.ErrEmailAlreadyExists)
}

func TestService_LoginWithSecondFactor(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	h := newHarness(t)

	acc, err := h.svc.Register(ctx, "alice@example.com", "pw123456")
	require.NoError(t, err)
	enrolled := h.enroll(t, acc.ID)

	in := authsvc.LoginInput{Email: "alice@example.com", Password: "pw123456"}

	t.Run("code missing", func(t *testing.T) {
		res, err := h.svc.Login(ctx, in)
		require.NoError(t, err)
		assert.True(t, res.SecondFactorRequired)
		assert.Empty(t, res.Token)
	})

	t.Run("wrong code", func(t *testing.T) {
		bad := in
		bad.Code = "000000"
		valid, err := h.engine.VerifyAt(enrolled.ManualKey, bad.Code, fixedNow)
		require.NoError(t, err)
		if valid {
			t.Skip("generated secret happens to accept 000000")
		}
		_, err = h.svc.Login(ctx, bad)
		assert.ErrorIs(t, err, mfa.ErrInvalidCode)
	})

	t.Run("totp code", func(t *testing.T) {
		code, err := h.engine.CodeAt(enrolled.ManualKey, fixedNow)
		require.NoError(t, err)

		ok := in
		ok.Code = code
		res, err := h.svc.Login(ctx, ok)
		require.NoError(t, err)
		assert.NotEmpty(t, res.Token)
		assert.True(t, res.SecondFactorEnabled)
	})

	t.Run("backup code is single use", func(t *testing.T) {
		withBackup := in
		withBackup.Code = enrolled.BackupCodes[0]

		res, err := h.svc.Login(ctx, withBackup)
		require.NoError(t, err)
		assert.NotEmpty(t, res.Token)

		_, err = h.svc.Login(ctx, withBackup)
		assert.ErrorIs(t, err, mfa.ErrInvalidCode)
	})

	t.Run("wrong password short-circuits", func(t *testing.T) {
		bad := in
		bad.Password = "nope"
		_, err := h.svc.Login(ctx, bad)
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})
}

func TestService_LoginAfterDisable(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	h := newHarness(t)

	acc, err := h.svc.Register(ctx, "alice@example.com", "pw123456")
	require.NoError(t, err)
	h.enroll(t, acc.ID)
	require.NoError(t, h.mfa.Disable(ctx, acc.ID))

	res, err := h.svc.Login(ctx, authsvc.LoginInput{Email: "alice@example.com", Password: "pw123456"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.False(t, res.SecondFactorEnabled)
}

func TestService_PendingSetupDoesNotGateLogin(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	h := newHarness(t)

	acc, err := h.svc.Register(ctx, "alice@example.com", "pw123456")
	require.NoError(t, err)
	_, err = h.mfa.Setup(ctx, acc.ID, acc.Email)
	require.NoError(t, err)

	res, err := h.svc.Login(ctx, authsvc.LoginInput{Email: "alice@example.com", Password: "pw123456"})
	require.NoError(t, err)
	assert.False(t, res.SecondFactorRequired)
	assert.NotEmpty(t, res.Token)
}

func TestService_Profile(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	h := newHarness(t)

	acc, err := h.svc.Register(ctx, "alice@example.com", "pw123456")
	require.NoError(t, err)

	p, err := h.svc.Profile(ctx, acc.ID)
	require.NoError(t, err)
	assert.Equal(t, &authsvc.Profile{ID: acc.ID, Email: "alice@example.com"}, p)

	h.enroll(t, acc.ID)
	p, err = h.svc.Profile(ctx, acc.ID)
	require.NoError(t, err)
	assert.True(t, p.TOTPEnabled)
	assert.True(t, p.TOTPVerified)

	_, err = h.svc.Profile(ctx, uuid.New())
	assert.ErrorIs(t, err, auth.ErrAccountNotFound)
}

func TestAccountContext(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	assert.Nil(t, authsvc.GetAccountFromContext(ctx))

	acc := &auth.Account{ID: uuid.New()}
	ctx = authsvc.SetAccountToContext(ctx, acc)
	assert.Same(t, acc, authsvc.GetAccountFromContext(ctx))
}
