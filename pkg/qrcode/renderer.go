package qrcode

import (
	"encoding/base64"
	"errors"
	"strings"

	skipqrcode "github.com/skip2/go-qrcode"
)

const (
	// DefaultSize is the image size in pixels used when none is given.
	DefaultSize = 256

	dataURIPrefix = "data:image/png;base64,"
)

// Renderer turns provisioning URIs into PNG images.
type Renderer struct {
	size  int
	level skipqrcode.RecoveryLevel
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithSize sets the image size in pixels. Non-positive values are ignored.
func WithSize(size int) Option {
	return func(r *Renderer) {
		if size > 0 {
			r.size = size
		}
	}
}

// WithHighRecovery raises error correction so partially obscured codes still scan.
func WithHighRecovery() Option {
	return func(r *Renderer) {
		r.level = skipqrcode.High
	}
}

// NewRenderer returns a Renderer with medium error correction.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{size: DefaultSize, level: skipqrcode.Medium}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// PNG encodes content as a PNG image.
func (r *Renderer) PNG(content string) ([]byte, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}
	png, err := skipqrcode.Encode(content, r.level, r.size)
	if err != nil {
		return nil, errors.Join(ErrFailedToGenerate, err)
	}
	return png, nil
}

// DataURI encodes content as a base64 PNG data URI, ready for an <img src>.
func (r *Renderer) DataURI(content string) (string, error) {
	png, err := r.PNG(content)
	if err != nil {
		return "", err
	}
	return dataURIPrefix + base64.StdEncoding.EncodeToString(png), nil
}

// Generate creates a QR code PNG of the given size with the default renderer settings.
func Generate(content string, size int) ([]byte, error) {
	return NewRenderer(WithSize(size)).PNG(content)
}

// GenerateBase64Image creates a data URI for content with the default renderer settings.
func GenerateBase64Image(content string, size int) (string, error) {
	return NewRenderer(WithSize(size)).DataURI(content)
}
