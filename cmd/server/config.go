package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/dmitrymomot/authkit/pkg/environment"
	"github.com/dmitrymomot/authkit/pkg/secrets"
)

// Storage drivers selectable through STORAGE_DRIVER.
const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
	DriverMongo    = "mongo"
)

var (
	ErrUnknownDriver          = errors.New("unknown storage driver")
	ErrInsecureInProduction   = errors.New("insecure defaults are not allowed in production")
	ErrFailedToGenerateSecret = errors.New("failed to generate development secret")
)

type appConfig struct {
	Env                   string `env:"APP_ENV" envDefault:"development"`
	Name                  string `env:"APP_NAME" envDefault:"authkit"`
	StorageDriver         string `env:"STORAGE_DRIVER" envDefault:"memory"`
	AllowInsecureDefaults bool   `env:"ALLOW_INSECURE_DEFAULTS" envDefault:"false"`
}

func (c appConfig) environment() environment.Environment {
	return environment.Parse(c.Env)
}

// applyInsecureDefaults fills missing key material with random values so a
// development instance starts without setup. Keys generated here change on
// every restart.
func applyInsecureDefaults(ctx context.Context, cfg appConfig, log *slog.Logger) error {
	if !cfg.AllowInsecureDefaults {
		return nil
	}
	if cfg.environment().IsProduction() {
		return ErrInsecureInProduction
	}

	generators := []struct {
		name string
		gen  func() (string, error)
	}{
		{"TOTP_ENCRYPTION_KEY", secrets.GenerateHexKey},
		{"JWT_SECRET", secrets.GenerateEncodedKey},
	}
	for _, g := range generators {
		if os.Getenv(g.name) != "" {
			continue
		}
		v, err := g.gen()
		if err != nil {
			return errors.Join(ErrFailedToGenerateSecret, err)
		}
		if err := os.Setenv(g.name, v); err != nil {
			return fmt.Errorf("set %s: %w", g.name, err)
		}
		log.WarnContext(ctx, "using a random development key; sessions and TOTP secrets will not survive a restart",
			slog.String("variable", g.name),
		)
	}
	return nil
}
