package totp

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

// BackupCodeLength is the length of a generated backup code.
const BackupCodeLength = 16

// GenerateBackupCodes creates cryptographically secure single-use backup codes.
// Each code is a 16-character uppercase hexadecimal string (64 bits of entropy).
func GenerateBackupCodes(count int) ([]string, error) {
	if count < 1 {
		return nil, ErrInvalidBackupCodeCount
	}

	codes := make([]string, 0, count)
	seen := make(map[string]struct{}, count)
	for len(codes) < count {
		codeBytes := make([]byte, BackupCodeLength/2)
		if _, err := rand.Read(codeBytes); err != nil {
			return nil, errors.Join(ErrFailedToGenerateBackupCode, err)
		}
		code := fmt.Sprintf("%X", codeBytes)
		if _, dup := seen[code]; dup {
			continue
		}
		seen[code] = struct{}{}
		codes = append(codes, code)
	}
	return codes, nil
}

// GenerateBackupCodes creates the configured number of backup codes.
func (e *Engine) GenerateBackupCodes() ([]string, error) {
	return GenerateBackupCodes(e.cfg.BackupCodeCount)
}

// NormalizeBackupCode trims, uppercases and strips separators users tend to type.
func NormalizeBackupCode(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	return strings.NewReplacer("-", "", " ", "").Replace(code)
}

// LooksLikeBackupCode reports whether code has the shape of a backup code
// after normalization.
func LooksLikeBackupCode(code string) bool {
	code = NormalizeBackupCode(code)
	if len(code) != BackupCodeLength {
		return false
	}
	_, err := hex.DecodeString(code)
	return err == nil
}

// HashBackupCode creates a SHA-256 hash of the normalized code for storage.
func HashBackupCode(code string) string {
	hash := sha256.Sum256([]byte(NormalizeBackupCode(code)))
	return hex.EncodeToString(hash[:])
}

// HashBackupCodes hashes every code in order.
func HashBackupCodes(codes []string) []string {
	hashes := make([]string, len(codes))
	for i, code := range codes {
		hashes[i] = HashBackupCode(code)
	}
	return hashes
}

// VerifyBackupCode compares code against a stored hash in constant time.
func VerifyBackupCode(code, hashedCode string) bool {
	computedHash := HashBackupCode(code)
	return subtle.ConstantTimeCompare(
		[]byte(computedHash),
		[]byte(hashedCode),
	) == 1
}

// MatchBackupCode returns the index of the hash matching code, or -1.
// Every hash is compared so timing does not reveal the position.
func MatchBackupCode(code string, hashes []string) int {
	match := -1
	computed := []byte(HashBackupCode(code))
	for i, h := range hashes {
		if subtle.ConstantTimeCompare(computed, []byte(h)) == 1 && match < 0 {
			match = i
		}
	}
	return match
}
