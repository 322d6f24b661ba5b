package auth

import (
	"fmt"

	"github.com/saturnines/kvizclient/pkg/errors"
	"github.com/saturnines/kvizclient/pkg/headers"
)

// TokenType is the scheme written in front of the token.
type TokenType string

const (
	TokenTypeBasic  TokenType = "Basic"
	TokenTypeBearer TokenType = "Bearer"
)

// HeaderName is the header the derived credentials are written to.
const HeaderName = "Authorization"

// Undefined stands in for a token type or token that was never configured.
const Undefined = "undefined"

// ParseTokenType accepts the empty string (no type configured) or one of the
// supported schemes.
func ParseTokenType(s string) (TokenType, error) {
	switch t := TokenType(s); t {
	case "", TokenTypeBasic, TokenTypeBearer:
		return t, nil
	}
	return "", errors.WrapError(
		fmt.Errorf("unsupported token type: %s", s),
		errors.ErrConfiguration,
		"parse token type",
	)
}

// TokenAuth derives the Authorization header for every request.
type TokenAuth struct {
	Type  TokenType
	Token string
	// OmitEmpty drops the header when no token is configured instead of
	// sending the "undefined" placeholder.
	OmitEmpty bool
}

// NewTokenAuth creates a new token authentication handler
func NewTokenAuth(tokenType TokenType, token string, omitEmpty bool) *TokenAuth {
	return &TokenAuth{
		Type:      tokenType,
		Token:     token,
		OmitEmpty: omitEmpty,
	}
}

// Value renders "<type>: <token>". Missing parts are rendered as Undefined.
func (a *TokenAuth) Value() string {
	return fmt.Sprintf("%s: %s", orUndefined(string(a.Type)), orUndefined(a.Token))
}

// Headers returns the derived auth headers. The bag is empty only when
// OmitEmpty is set and there is no token.
func (a *TokenAuth) Headers() headers.Bag {
	if a.OmitEmpty && a.Token == "" {
		return headers.Bag{}
	}
	return headers.Bag{HeaderName: a.Value()}
}

// String returns a string representation of this auth method for logs
func (a *TokenAuth) String() string {
	if a.Token == "" {
		return fmt.Sprintf("TokenAuth(type: %s, token: none)", orUndefined(string(a.Type)))
	}
	return fmt.Sprintf("TokenAuth(type: %s, token: [REDACTED])", orUndefined(string(a.Type)))
}

func orUndefined(s string) string {
	if s == "" {
		return Undefined
	}
	return s
}
