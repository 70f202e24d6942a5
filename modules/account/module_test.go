package account_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authkit/modules/account"
	"github.com/dmitrymomot/authkit/pkg/auth"
	"github.com/dmitrymomot/authkit/pkg/jwt"
	"github.com/dmitrymomot/authkit/pkg/secrets"
	"github.com/dmitrymomot/authkit/pkg/totp"
	"github.com/dmitrymomot/authkit/storage/memstore"
	authsvc "github.com/dmitrymomot/authkit/svc/auth"
	"github.com/dmitrymomot/authkit/svc/mfa"
)

type api struct {
	t      *testing.T
	server *httptest.Server
	engine *totp.Engine
}

func newAPI(t *testing.T) *api {
	t.Helper()

	store := memstore.New()
	cipher, err := secrets.NewCipher("module-test-key")
	require.NoError(t, err)
	engine := totp.New(totp.DefaultConfig())
	second := mfa.NewService(store, cipher, engine)
	tokens, err := jwt.New([]byte("module-test-signing-key"), jwt.WithTTL(time.Hour))
	require.NoError(t, err)

	passwords := auth.NewPasswordService(store, auth.WithBcryptCost(4))
	svc := authsvc.NewService(passwords, store, second, tokens)

	r := chi.NewRouter()
	r.Mount("/api", account.New(svc, second, store, tokens).Routes())

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return &api{t: t, server: srv, engine: engine}
}

func (a *api) do(method, path, token string, body any) (int, map[string]any) {
	a.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, a.server.URL+path, &buf)
	require.NoError(a.t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(a.t, err)
	defer resp.Body.Close()

	out := map[string]any{}
	require.NoError(a.t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func (a *api) currentCode(secret string) string {
	a.t.Helper()
	code, err := a.engine.CurrentCode(secret)
	require.NoError(a.t, err)
	return code
}

var creds = map[string]string{"email": "alice@example.com", "password": "pw123456"}

func TestRegister(t *testing.T) {
	t.Parallel()
	a := newAPI(t)

	status, body := a.do(http.MethodPost, "/api/auth/register", "", creds)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["success"])
	assert.NotEmpty(t, body["userId"])

	status, body = a.do(http.MethodPost, "/api/auth/register", "", creds)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "User already exists", body["error"])

	status, _ = a.do(http.MethodPost, "/api/auth/register", "", map[string]string{"email": "bob@example.com"})
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = a.do(http.MethodPost, "/api/auth/register", "", map[string]string{"email": "not-an-email", "password": "x"})
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestLoginAndProfile(t *testing.T) {
	t.Parallel()
	a := newAPI(t)

	a.do(http.MethodPost, "/api/auth/register", "", creds)

	status, body := a.do(http.MethodPost, "/api/auth/login", "", map[string]string{"email": "alice@example.com", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Invalid credentials", body["error"])

	status, body = a.do(http.MethodPost, "/api/auth/login", "", creds)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, false, body["totpEnabled"])
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)

	status, body = a.do(http.MethodGet, "/api/user/me", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "alice@example.com", body["email"])
	assert.Equal(t, false, body["totpEnabled"])
}

func TestProtectedRoutes(t *testing.T) {
	t.Parallel()
	a := newAPI(t)

	status, body := a.do(http.MethodGet, "/api/mfa/totp/status", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Access token required", body["error"])

	status, body = a.do(http.MethodGet, "/api/user/me", "garbage", nil)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "Invalid token", body["error"])
}

func TestTOTPFlow(t *testing.T) {
	t.Parallel()
	a := newAPI(t)

	a.do(http.MethodPost, "/api/auth/register", "", creds)
	_, body := a.do(http.MethodPost, "/api/auth/login", "", creds)
	token := body["token"].(string)

	status, body := a.do(http.MethodGet, "/api/mfa/totp/status", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, map[string]any{"enabled": false, "verified": false, "setupRequired": true}, body)

	status, setup := a.do(http.MethodPost, "/api/mfa/totp/setup", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, setup["success"])
	assert.Contains(t, setup["qrCode"], "data:image/png;base64,")
	assert.Len(t, setup["backupCodes"], totp.DefaultBackupCodeCount)
	secret := setup["manualEntryKey"].(string)

	status, body = a.do(http.MethodPost, "/api/mfa/totp/verify", token, map[string]string{})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "TOTP code required", body["error"])

	status, body = a.do(http.MethodPost, "/api/mfa/totp/verify", token, map[string]string{"code": "12345"})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Invalid code", body["error"])

	status, body = a.do(http.MethodPost, "/api/mfa/totp/verify", token, map[string]string{"code": a.currentCode(secret)})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "TOTP verified", body["message"])

	status, _ = a.do(http.MethodPost, "/api/mfa/totp/setup", token, nil)
	assert.Equal(t, http.StatusConflict, status)

	status, body = a.do(http.MethodPost, "/api/auth/login", "", creds)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["requiresTOTP"])
	assert.Nil(t, body["token"])

	withCode := map[string]string{"email": creds["email"], "password": creds["password"], "totpCode": a.currentCode(secret)}
	status, body = a.do(http.MethodPost, "/api/auth/login", "", withCode)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["totpEnabled"])
	assert.NotEmpty(t, body["token"])

	backup := setup["backupCodes"].([]any)[0].(string)
	withBackup := map[string]string{"email": creds["email"], "password": creds["password"], "totpCode": backup}
	status, _ = a.do(http.MethodPost, "/api/auth/login", "", withBackup)
	assert.Equal(t, http.StatusOK, status)
	status, body = a.do(http.MethodPost, "/api/auth/login", "", withBackup)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Invalid code", body["error"])

	status, body = a.do(http.MethodGet, "/api/user/me", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["totpEnabled"])
	assert.Equal(t, true, body["totpVerified"])

	status, body = a.do(http.MethodPost, "/api/mfa/totp/disable", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "TOTP disabled successfully", body["message"])

	_, body = a.do(http.MethodGet, "/api/mfa/totp/status", token, nil)
	assert.Equal(t, true, body["setupRequired"])

	status, body = a.do(http.MethodPost, "/api/mfa/totp/verify", token, map[string]string{"code": a.currentCode(secret)})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "TOTP not set up", body["error"])
}
