package totp

import "time"

const (
	DefaultDigits          = 6      // Standard 6-digit TOTP codes
	DefaultPeriod          = 30     // 30-second step (RFC 6238 standard)
	DefaultAlgorithm       = "SHA1" // HMAC-SHA1 algorithm (RFC 6238 standard)
	DefaultWindow          = 5      // Steps accepted on either side of the current one
	DefaultSecretSize      = 20     // 160-bit secret (RFC 4226 recommendation)
	DefaultBackupCodeCount = 8
	DefaultIssuer          = "authkit"
)

// Config holds TOTP engine settings.
type Config struct {
	Issuer          string `env:"TOTP_ISSUER" envDefault:"authkit"`
	Window          uint   `env:"TOTP_WINDOW" envDefault:"5"`
	Period          uint   `env:"TOTP_PERIOD" envDefault:"30"`
	Digits          int    `env:"TOTP_DIGITS" envDefault:"6"`
	SecretSize      uint   `env:"TOTP_SECRET_SIZE" envDefault:"20"`
	BackupCodeCount int    `env:"TOTP_BACKUP_CODE_COUNT" envDefault:"8"`
}

// withDefaults fills zero-valued fields. Window is left alone: zero is a valid
// setting that accepts only the current step. SecretSize is raised to at least
// DefaultSecretSize so secrets never drop below 160 bits.
func (c Config) withDefaults() Config {
	if c.Issuer == "" {
		c.Issuer = DefaultIssuer
	}
	if c.Period == 0 {
		c.Period = DefaultPeriod
	}
	if c.Digits != 6 && c.Digits != 8 {
		c.Digits = DefaultDigits
	}
	if c.SecretSize < DefaultSecretSize {
		c.SecretSize = DefaultSecretSize
	}
	if c.BackupCodeCount < 1 {
		c.BackupCodeCount = DefaultBackupCodeCount
	}
	return c
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() Config {
	return Config{Window: DefaultWindow}.withDefaults()
}

// StepDuration returns the length of one time step.
func (c Config) StepDuration() time.Duration {
	return time.Duration(c.withDefaults().Period) * time.Second
}
