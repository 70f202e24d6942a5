package auth

// Config holds password authenticator settings.
type Config struct {
	BcryptCost        int `env:"AUTH_BCRYPT_COST" envDefault:"10"`
	MinPasswordLength int `env:"AUTH_MIN_PASSWORD_LENGTH" envDefault:"1"`
}

// WithConfig applies every non-zero field of cfg.
func WithConfig(cfg Config) PasswordOption {
	return func(s *passwordService) {
		if cfg.BcryptCost > 0 {
			s.bcryptCost = cfg.BcryptCost
		}
		if cfg.MinPasswordLength > 0 {
			s.minPasswordLength = cfg.MinPasswordLength
		}
	}
}
