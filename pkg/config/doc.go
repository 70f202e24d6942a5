// Package config loads typed configuration from environment variables and
// optional .env files (github.com/caarlos0/env and github.com/joho/godotenv).
//
// Every package that needs settings declares its own Config struct with
// `env` tags; the binary loads them with Load. Missing required values are
// reported as ErrParsingConfig, which callers treat as fatal at startup.
package config
