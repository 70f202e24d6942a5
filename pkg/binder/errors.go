package binder

import "errors"

// Sentinel errors returned by binders. Handlers map them to HTTP statuses.
var (
	ErrMissingContentType   = errors.New("binder: missing content type")
	ErrUnsupportedMediaType = errors.New("binder: unsupported media type")
	ErrBodyTooLarge         = errors.New("binder: request body too large")
	ErrInvalidJSON          = errors.New("binder: invalid JSON body")
)
