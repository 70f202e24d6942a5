package sanitizer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/authkit/pkg/sanitizer"
)

func TestNormalizeEmail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, want string
	}{
		{"alice@example.com", "alice@example.com"},
		{"  Alice@Example.COM \n", "alice@example.com"},
		{"first.last@example.com", "first.last@example.com"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, sanitizer.NormalizeEmail(tt.in), tt.in)
	}
}

func TestExtractEmailDomain(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "example.com", sanitizer.ExtractEmailDomain("alice@Example.com"))
	assert.Empty(t, sanitizer.ExtractEmailDomain("alice"))
}

func TestNormalizeCode(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "123456", sanitizer.NormalizeCode(" 123 456\t"))
	assert.Equal(t, "ABCD-EF01", sanitizer.NormalizeCode("ABCD-EF01"))
	assert.Empty(t, sanitizer.NormalizeCode("   "))
}
