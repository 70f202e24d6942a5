package secrets

import (
	"encoding/base64"
	"encoding/hex"
	"errors"
	"strings"
)

// envelopeDelimiter separates the IV from the ciphertext. It never appears in
// hex or base64 output.
const envelopeDelimiter = ":"

// Kind tells which variant an Envelope holds.
type Kind int

const (
	// KindEncrypted is an AES-256-GCM ciphertext with its IV.
	KindEncrypted Kind = iota + 1
	// KindPlainFallback is a legacy value stored as base64 plaintext.
	KindPlainFallback
)

func (k Kind) String() string {
	switch k {
	case KindEncrypted:
		return "encrypted"
	case KindPlainFallback:
		return "plain_fallback"
	default:
		return "unknown"
	}
}

// Envelope is the stored form of a protected secret.
// Exactly one of (IV, Ciphertext) or Plain is meaningful, depending on Kind.
type Envelope struct {
	Kind       Kind
	IV         []byte
	Ciphertext []byte
	Plain      string
}

// PlainEnvelope wraps text in the legacy fallback variant.
func PlainEnvelope(text string) Envelope {
	return Envelope{Kind: KindPlainFallback, Plain: text}
}

// Encode renders the envelope for storage.
// Encrypted: hex(iv) + ":" + hex(ciphertext). Plain fallback: base64(text).
func (e Envelope) Encode() string {
	switch e.Kind {
	case KindEncrypted:
		return hex.EncodeToString(e.IV) + envelopeDelimiter + hex.EncodeToString(e.Ciphertext)
	case KindPlainFallback:
		return base64.StdEncoding.EncodeToString([]byte(e.Plain))
	default:
		return ""
	}
}

// ParseEnvelope decodes a stored value. Values containing the delimiter are
// treated as ciphertext; anything else is the legacy base64 fallback.
func ParseEnvelope(s string) (Envelope, error) {
	if s == "" {
		return Envelope{}, ErrInvalidEnvelope
	}

	if !strings.Contains(s, envelopeDelimiter) {
		plain, err := base64.StdEncoding.DecodeString(s)
		if err != nil {
			return Envelope{}, errors.Join(ErrInvalidEnvelope, err)
		}
		return PlainEnvelope(string(plain)), nil
	}

	parts := strings.Split(s, envelopeDelimiter)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return Envelope{}, ErrInvalidEnvelope
	}

	iv, err := hex.DecodeString(parts[0])
	if err != nil {
		return Envelope{}, errors.Join(ErrInvalidEnvelope, err)
	}
	ciphertext, err := hex.DecodeString(parts[1])
	if err != nil {
		return Envelope{}, errors.Join(ErrInvalidEnvelope, err)
	}

	return Envelope{Kind: KindEncrypted, IV: iv, Ciphertext: ciphertext}, nil
}
