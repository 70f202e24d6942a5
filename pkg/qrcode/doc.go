// Package qrcode renders enrollment QR codes as PNG bytes or as data URIs
// that clients can display without a second request.
//
// It wraps github.com/skip2/go-qrcode with input validation and a small
// Renderer type so services can inject their preferred size and error
// correction level.
//
//	r := qrcode.NewRenderer(qrcode.WithSize(200))
//	uri, err := r.DataURI("otpauth://totp/Acme:alice@example.com?secret=...")
//
// Errors are package-level sentinels (ErrEmptyContent, ErrFailedToGenerate)
// and can be compared with errors.Is.
package qrcode
