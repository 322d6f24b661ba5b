package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/saturnines/kvizclient/pkg/auth"
	"github.com/saturnines/kvizclient/pkg/errors"
	"github.com/saturnines/kvizclient/pkg/headers"
)

// Request describes one verb call before it is sent. Body is nil for GET,
// HEAD and DELETE and holds the JSON payload otherwise.
type Request struct {
	Path    string
	Method  string
	Headers headers.Bag
	Body    []byte
}

// Builder turns calls into Requests and Requests into *http.Request.
// It only holds configuration fixed at construction.
type Builder struct {
	BaseURL string
	Headers headers.Bag
	Auth    *auth.TokenAuth
}

// NewBuilder constructs a Builder. A nil authHandler derives the placeholder
// header of an unconfigured token.
func NewBuilder(baseURL string, defaults headers.Bag, authHandler *auth.TokenAuth) *Builder {
	if authHandler == nil {
		authHandler = auth.NewTokenAuth("", "", false)
	}
	return &Builder{
		BaseURL: baseURL,
		Headers: defaults.Clone(),
		Auth:    authHandler,
	}
}

// HasBody reports whether method carries a payload.
func HasBody(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		return true
	}
	return false
}

// Describe builds the Request for a call. The payload is ignored for methods
// without a body and JSON encoded otherwise.
func (b *Builder) Describe(method, path string, payload any, override headers.Bag) (*Request, error) {
	req := &Request{
		Path:    path,
		Method:  method,
		Headers: headers.Compose(b.Headers, b.Auth.Headers(), override),
	}
	if !HasBody(method) {
		return req, nil
	}

	body, err := marshalPayload(payload)
	if err != nil {
		return nil, &errors.SerializationError{Method: method, Path: path, Err: err}
	}
	req.Body = body
	return req, nil
}

// Prepare returns a copy of req ready to send: req.Headers is applied as the
// override on top of the defaults and the derived auth header, and the body
// is dropped for methods that carry none. req is not modified.
func (b *Builder) Prepare(req *Request) *Request {
	out := &Request{
		Path:    req.Path,
		Method:  req.Method,
		Headers: headers.Compose(b.Headers, b.Auth.Headers(), req.Headers),
	}
	if HasBody(req.Method) {
		out.Body = req.Body
	}
	return out
}

// URL returns the full URL of req. No separator normalization is done.
func (b *Builder) URL(req *Request) string {
	return b.BaseURL + req.Path
}

// Build creates an HTTP request.
func (b *Builder) Build(ctx context.Context, req *Request) (*http.Request, error) {
	return NewHTTPRequest(ctx, req.Method, b.BaseURL, req.Path, req.Headers, req.Body)
}

// marshalPayload encodes payload as compact JSON without HTML escaping.
func marshalPayload(payload any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(payload); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
