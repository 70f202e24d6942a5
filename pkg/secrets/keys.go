package secrets

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"io"

	"golang.org/x/crypto/hkdf"
)

const (
	// KeySize is the cipher key size for AES-256.
	KeySize = 32

	// derivationInfo provides domain separation for HKDF.
	derivationInfo = "authkit-totp-secrets-v1"
)

// DeriveKey turns configured key material of any length into a 32-byte cipher key.
//
// Material that is already exactly KeySize bytes is used as is. A 64-character
// hex string is decoded. Anything else is stretched with HKDF-SHA256, so the
// same material always yields the same key.
func DeriveKey(material string) []byte {
	if len(material) == KeySize {
		return []byte(material)
	}

	if len(material) == hex.EncodedLen(KeySize) {
		if decoded, err := hex.DecodeString(material); err == nil {
			return decoded
		}
	}

	key := make([]byte, KeySize)
	reader := hkdf.New(sha256.New, []byte(material), nil, []byte(derivationInfo))
	// HKDF-SHA256 can produce up to 255*32 bytes; 32 never fails.
	_, _ = io.ReadFull(reader, key)
	return key
}

// GenerateKey creates a new random 32-byte key.
func GenerateKey() ([]byte, error) {
	key := make([]byte, KeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, errors.Join(ErrKeyGenerationFailed, err)
	}
	return key, nil
}

// GenerateHexKey creates a random key encoded as 64 hex characters,
// the form DeriveKey decodes without hashing.
func GenerateHexKey() (string, error) {
	key, err := GenerateKey()
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(key), nil
}

// GenerateEncodedKey creates a random key encoded as base64, suitable for
// signing keys and other opaque configuration values.
func GenerateEncodedKey() (string, error) {
	key, err := GenerateKey()
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(key), nil
}

// clearBytes zeros out a byte slice holding key or plaintext material.
func clearBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
