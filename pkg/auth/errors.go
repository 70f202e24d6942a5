package auth

import (
	"errors"

	"github.com/dmitrymomot/authkit/pkg/validator"
)

var (
	ErrAccountNotFound    = errors.New("account not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ErrValidation matches rejected registration input. The concrete error is
// validator.ValidationErrors, which carries the per-field messages.
var ErrValidation = validator.ErrValidationFailed
