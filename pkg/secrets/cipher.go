package secrets

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"io"
)

// Cipher encrypts and decrypts TOTP secrets with AES-256-GCM under a key
// derived from the configured master key. It is safe for concurrent use.
type Cipher struct {
	aead cipher.AEAD
}

// NewCipher builds a Cipher from master key material.
// An empty master key is a configuration error; no default is substituted.
func NewCipher(masterKey string) (*Cipher, error) {
	if masterKey == "" {
		return nil, ErrMissingMasterKey
	}

	key := DeriveKey(masterKey)
	defer clearBytes(key)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, errors.Join(ErrEncryptionFailed, err)
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, errors.Join(ErrEncryptionFailed, err)
	}

	return &Cipher{aead: aead}, nil
}

// NewCipherFromConfig builds a Cipher from Config.
func NewCipherFromConfig(cfg Config) (*Cipher, error) {
	return NewCipher(cfg.MasterKey)
}

// Encrypt seals plaintext under a fresh random IV.
func (c *Cipher) Encrypt(plaintext string) (Envelope, error) {
	iv := make([]byte, c.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return Envelope{}, errors.Join(ErrEncryptionFailed, err)
	}

	ciphertext := c.aead.Seal(nil, iv, []byte(plaintext), nil)

	return Envelope{Kind: KindEncrypted, IV: iv, Ciphertext: ciphertext}, nil
}

// Decrypt opens an envelope produced by Encrypt, or returns the text held by
// a legacy plain fallback envelope.
func (c *Cipher) Decrypt(env Envelope) (string, error) {
	switch env.Kind {
	case KindPlainFallback:
		return env.Plain, nil
	case KindEncrypted:
		if len(env.IV) != c.aead.NonceSize() {
			return "", errors.Join(ErrDecryptionFailed, ErrInvalidEnvelope)
		}
		plaintext, err := c.aead.Open(nil, env.IV, env.Ciphertext, nil)
		if err != nil {
			return "", errors.Join(ErrDecryptionFailed, err)
		}
		return string(plaintext), nil
	default:
		return "", errors.Join(ErrDecryptionFailed, ErrInvalidEnvelope)
	}
}

// EncryptString encrypts plaintext and returns the encoded envelope.
func (c *Cipher) EncryptString(plaintext string) (string, error) {
	env, err := c.Encrypt(plaintext)
	if err != nil {
		return "", err
	}
	return env.Encode(), nil
}

// DecryptString parses an encoded envelope and decrypts it.
func (c *Cipher) DecryptString(encoded string) (string, error) {
	env, err := ParseEnvelope(encoded)
	if err != nil {
		return "", errors.Join(ErrDecryptionFailed, err)
	}
	return c.Decrypt(env)
}
