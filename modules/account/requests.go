package account

import (
	"net/http"

	"github.com/dmitrymomot/authkit/pkg/binder"
)

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	TOTPCode string `json:"totpCode"`
}

type verifyRequest struct {
	Code string `json:"code"`
}

// empty is the request type of endpoints without input.
type empty struct{}

// bindJSON decodes bodies for endpoints with input and skips the rest.
func bindJSON[R any]() func(r *http.Request, v any) error {
	var zero R
	if _, ok := any(zero).(empty); ok {
		return func(*http.Request, any) error { return nil }
	}
	return binder.JSON(binder.WithEmptyBody())
}
