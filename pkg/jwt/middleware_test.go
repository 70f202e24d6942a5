package jwt_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authkit/pkg/jwt"
)

func TestMiddleware(t *testing.T) {
	t.Parallel()

	svc, err := jwt.New(testKey)
	require.NoError(t, err)

	id := uuid.New()
	token, err := svc.Issue(id, "alice@example.com")
	require.NoError(t, err)

	handler := jwt.Middleware(svc)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := jwt.GetClaims(r.Context())
		require.True(t, ok)
		raw, ok := jwt.GetToken(r.Context())
		require.True(t, ok)
		assert.Equal(t, token, raw)
		_, _ = w.Write([]byte(claims.Email))
	}))

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{"valid token", "Bearer " + token, http.StatusOK},
		{"lowercase scheme", "bearer " + token, http.StatusOK},
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized},
		{"scheme without token", "Bearer ", http.StatusUnauthorized},
		{"invalid token", "Bearer invalid.token.value", http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(http.MethodGet, "/api/user/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, "alice@example.com", rec.Body.String())
			}
		})
	}
}

func TestMiddlewareWithConfig_ErrorHandler(t *testing.T) {
	t.Parallel()

	svc, err := jwt.New(testKey)
	require.NoError(t, err)

	var gotStatus int
	mw := jwt.MiddlewareWithConfig(jwt.MiddlewareConfig{
		Service: svc,
		ErrorHandler: func(w http.ResponseWriter, _ *http.Request, status int, _ error) {
			gotStatus = status
			w.WriteHeader(http.StatusTeapot)
		},
	})

	rec := httptest.NewRecorder()
	mw(http.NotFoundHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, gotStatus)
	assert.Equal(t, http.StatusTeapot, rec.Code)
}

func TestContextHelpers(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, ok := jwt.GetClaims(req.Context())
	assert.False(t, ok)
	_, ok = jwt.GetToken(req.Context())
	assert.False(t, ok)

	ctx := jwt.SetClaims(req.Context(), &jwt.Claims{Email: "a@example.com"})
	claims, ok := jwt.GetClaims(ctx)
	require.True(t, ok)
	assert.Equal(t, "a@example.com", claims.Email)
}
