package jwt

import "errors"

var (
	ErrMissingSigningKey = errors.New("jwt: signing key is required")
	ErrMissingToken      = errors.New("jwt: token is missing")
	ErrInvalidToken      = errors.New("jwt: invalid token")
	ErrExpiredToken      = errors.New("jwt: token expired")
	ErrSigningFailed     = errors.New("jwt: failed to sign token")
)
