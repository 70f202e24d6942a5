// Package binder decodes HTTP request bodies into typed request structs.
//
// JSON checks the content type, enforces a size limit and rejects trailing
// data after the object. Errors wrap the package sentinels so callers can
// map them to status codes with errors.Is.
//
//	h := handler.Wrap(login, handler.WithBinders[LoginRequest](binder.JSON()))
package binder
