package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/saturnines/kvizclient/pkg/auth"
	"github.com/saturnines/kvizclient/pkg/errors"
)

type ValidationError struct {
	Field   string
	Message string
}

// Returns the string representation of validation error
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

type Validator interface {
	Validate(cfg *Client) []ValidationError
}

// DefaultValueSetter fills in unset values after decoding
type DefaultValueSetter interface {
	SetDefaults(cfg *Client)
}

// VariableExpander defines the interface for expanding variables
type VariableExpander interface {
	Expand(data []byte) []byte
}

// EnvExpander implements VariableExpander using environment variables
type EnvExpander struct{}

// Expand expands environment variables with the given data
func (e *EnvExpander) Expand(data []byte) []byte {
	expanded := os.Expand(string(data), os.Getenv)
	return []byte(expanded)
}

// Loader produces validated Client configs from yaml or key/value sources.
type Loader struct {
	expander      VariableExpander
	validators    []Validator
	defaultSetter DefaultValueSetter
}

// NewLoader creates a new Loader with the given components
func NewLoader(
	expander VariableExpander,
	defaultSetter DefaultValueSetter,
	validators ...Validator,
) *Loader {
	return &Loader{
		expander:      expander,
		validators:    validators,
		defaultSetter: defaultSetter,
	}
}

// DefaultLoader expands ${VAR} references, applies ClientDefaults and runs
// every validator in this package.
func DefaultLoader() *Loader {
	return NewLoader(
		&EnvExpander{},
		&ClientDefaults{},
		&RequiredFieldValidator{},
		&AuthValidator{},
	)
}

// Load a client config from a YAML file
func (l *Loader) Load(path string) (*Client, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	return l.Parse(data)
}

// Parse parses a yaml config
func (l *Loader) Parse(data []byte) (*Client, error) {
	if l.expander != nil {
		data = l.expander.Expand(data)
	}

	var cfg Client
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.WrapError(err, errors.ErrConfiguration, "failed to parse YAML")
	}

	return l.finish(&cfg)
}

func (l *Loader) finish(cfg *Client) (*Client, error) {
	if l.defaultSetter != nil {
		l.defaultSetter.SetDefaults(cfg)
	}

	var allErrors []ValidationError
	for _, validator := range l.validators {
		allErrors = append(allErrors, validator.Validate(cfg)...)
	}

	if len(allErrors) > 0 {
		return nil, errors.WrapError(
			fmt.Errorf("%v", allErrors),
			errors.ErrValidation,
			"invalid client config",
		)
	}

	return cfg, nil
}

// ClientDefaults implements DefaultValueSetter for Client
type ClientDefaults struct{}

// SetDefaults sets JSON content negotiation headers when none are configured
// and a cache TTL when the query cache is on without one.
func (d *ClientDefaults) SetDefaults(cfg *Client) {
	if cfg.Headers == nil {
		cfg.Headers = map[string]string{
			"Accept":       "application/json",
			"Content-Type": "application/json",
		}
	}

	if cfg.Query.CacheEnabled && cfg.Query.CacheTTL <= 0 {
		cfg.Query.CacheTTL = DefaultCacheTTL
	}
}

// RequiredFieldValidator checks that all required fields are present
type RequiredFieldValidator struct{}

// Validate checks required fields
func (v *RequiredFieldValidator) Validate(cfg *Client) []ValidationError {
	var errs []ValidationError

	if cfg.BaseURL == "" {
		errs = append(errs, ValidationError{Field: "base_url", Message: "is required"})
	}

	return errs
}

// AuthValidator handles authentication validation
type AuthValidator struct{}

// Validate checks that the token type is one of the supported schemes
func (v *AuthValidator) Validate(cfg *Client) []ValidationError {
	var errs []ValidationError

	if _, err := auth.ParseTokenType(string(cfg.TokenType)); err != nil {
		errs = append(errs, ValidationError{
			Field:   "token_type",
			Message: fmt.Sprintf("must be %s or %s, got %q", auth.TokenTypeBasic, auth.TokenTypeBearer, cfg.TokenType),
		})
	}

	return errs
}
