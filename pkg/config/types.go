package config

import (
	"time"

	"github.com/saturnines/kvizclient/pkg/auth"
)

// DefaultCacheTTL applies when the query cache is enabled without a TTL.
const DefaultCacheTTL = 5 * time.Minute

// Client is everything needed to build the REST and query clients.
type Client struct {
	BaseURL   string            `yaml:"base_url"`             // Required: API origin, paths are appended verbatim
	AuthToken string            `yaml:"auth_token,omitempty"` // Optional token
	TokenType auth.TokenType    `yaml:"token_type,omitempty"` // Basic or Bearer
	Headers   map[string]string `yaml:"headers,omitempty"`    // Default headers for every REST call
	Debug     bool              `yaml:"debug,omitempty"`      // Log every call

	// OmitEmptyAuth drops the Authorization header when no token is set
	// instead of sending "<type>: undefined".
	OmitEmptyAuth bool `yaml:"omit_empty_auth,omitempty"`

	Query   Query   `yaml:"query,omitempty"`
	Metrics Metrics `yaml:"metrics,omitempty"`
}

// Query configures the default query mechanism.
type Query struct {
	CacheEnabled   bool          `yaml:"cache_enabled,omitempty"`
	CacheTTL       time.Duration `yaml:"cache_ttl,omitempty"`
	ForwardHeaders bool          `yaml:"forward_headers,omitempty"` // Send default + auth headers on queries
}

// Metrics configures Prometheus metrics.
type Metrics struct {
	Enabled   bool   `yaml:"enabled,omitempty"`
	Namespace string `yaml:"namespace,omitempty"`
}
