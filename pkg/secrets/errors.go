package secrets

import "errors"

var (
	// Configuration errors
	ErrMissingMasterKey = errors.New("secrets: master key is not configured")

	// Encryption/decryption errors
	ErrEncryptionFailed = errors.New("secrets: encryption failed")
	ErrDecryptionFailed = errors.New("secrets: decryption failed")
	ErrInvalidEnvelope  = errors.New("secrets: invalid envelope format")

	// Key generation errors
	ErrKeyGenerationFailed = errors.New("secrets: key generation failed")
)
