package jwt

import "time"

// DefaultTTL is how long issued tokens stay valid unless configured otherwise.
const DefaultTTL = 24 * time.Hour

// Config holds token issuer settings.
type Config struct {
	SigningKey string        `env:"JWT_SECRET,required"`
	TTL        time.Duration `env:"JWT_TTL" envDefault:"24h"`
	Issuer     string        `env:"JWT_ISSUER"`
}
