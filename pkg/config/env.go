package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/saturnines/kvizclient/pkg/auth"
)

// Environment keys read by FromEnv.
const (
	EnvBaseURL   = "API_URL"
	EnvDebug     = "API_DEBUG"
	EnvAuthToken = "API_TOKEN"
	EnvTokenType = "API_TOKEN_TYPE"
)

// LoadDotEnv loads .env files into the process environment. With no
// arguments it loads ".env" from the working directory.
func LoadDotEnv(files ...string) error {
	return godotenv.Load(files...)
}

// FromEnv builds a Client from the process environment.
func (l *Loader) FromEnv() (*Client, error) {
	return l.FromLookup(os.Getenv)
}

// FromDotEnv builds a Client from a .env file without touching the process
// environment.
func (l *Loader) FromDotEnv(path string) (*Client, error) {
	values, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read env file: %w", err)
	}
	return l.FromLookup(func(key string) string { return values[key] })
}

// FromLookup builds a Client from the API_* keys returned by getenv.
func (l *Loader) FromLookup(getenv func(string) string) (*Client, error) {
	cfg := &Client{
		BaseURL:   getenv(EnvBaseURL),
		AuthToken: getenv(EnvAuthToken),
		TokenType: auth.TokenType(getenv(EnvTokenType)),
	}

	if raw := getenv(EnvDebug); raw != "" {
		debug, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, ValidationError{Field: EnvDebug, Message: fmt.Sprintf("not a boolean: %q", raw)}
		}
		cfg.Debug = debug
	}

	return l.finish(cfg)
}
