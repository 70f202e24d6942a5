package secrets

// Config holds the master key used to protect TOTP secrets at rest.
type Config struct {
	MasterKey string `env:"TOTP_ENCRYPTION_KEY,required"` // Raw pass-phrase, 32-byte string, or 64 hex characters
}
