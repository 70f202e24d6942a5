package validator

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"
)

// Required rejects values that are empty after trimming whitespace.
func Required(field, value string) Rule {
	return rule(field, "required", "field is required", func() bool {
		return strings.TrimSpace(value) != ""
	})
}

// MinLen counts runes, not bytes.
func MinLen(field, value string, n int) Rule {
	return rule(field, "min_length", fmt.Sprintf("must be at least %d characters long", n), func() bool {
		return utf8.RuneCountInString(value) >= n
	})
}

// MaxBytes limits the encoded length, which is what bcrypt cares about.
func MaxBytes(field, value string, n int) Rule {
	return rule(field, "max_length", fmt.Sprintf("must be at most %d bytes long", n), func() bool {
		return len(value) <= n
	})
}

// ValidEmail accepts a bare address (RFC 5322 addr-spec) with a dotted
// domain. Display names such as "Alice <a@b.c>" are rejected.
func ValidEmail(field, value string) Rule {
	return rule(field, "email", "must be a valid email address", func() bool {
		addr, err := mail.ParseAddress(value)
		if err != nil || addr.Address != value {
			return false
		}

		local, domain, ok := strings.Cut(addr.Address, "@")
		if !ok || local == "" {
			return false
		}
		if !strings.Contains(domain, ".") {
			return false
		}
		for part := range strings.SplitSeq(domain, ".") {
			if part == "" {
				return false
			}
		}
		return true
	})
}
