// Package secrets protects TOTP shared secrets at rest.
//
// A Cipher is built from a configured master key. Key material that is already
// 32 bytes long, or 64 hex characters, is used directly; any other pass-phrase
// is stretched to 32 bytes with HKDF-SHA256. Secrets are sealed with AES-256-GCM
// under a fresh random IV for every call.
//
// # Envelope
//
// The stored form is an Envelope, a tagged variant with two cases:
//
//   - KindEncrypted encodes as hex(iv) + ":" + hex(ciphertext).
//   - KindPlainFallback encodes as base64(plaintext). It exists only to read
//     values written by older deployments that stored secrets without
//     encryption; Encrypt never produces it.
//
// ParseEnvelope picks the variant by the presence of the delimiter, which
// cannot occur in either encoding.
//
// # Usage
//
//	c, err := secrets.NewCipher(os.Getenv("TOTP_ENCRYPTION_KEY"))
//	if err != nil {
//	    // missing key: refuse to start
//	}
//
//	stored, _ := c.EncryptString("JBSWY3DPEHPK3PXP")
//	plain, err := c.DecryptString(stored)
//
// # Error Handling
//
// ErrMissingMasterKey signals a configuration error. Every decryption failure,
// including malformed envelopes, matches ErrDecryptionFailed via errors.Is.
package secrets
