// Package rest dispatches verb-based HTTP calls against a fixed base URL.
package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/saturnines/kvizclient/pkg/auth"
	"github.com/saturnines/kvizclient/pkg/debug"
	"github.com/saturnines/kvizclient/pkg/headers"
	"github.com/saturnines/kvizclient/pkg/metrics"
)

// Client sends GET, HEAD, DELETE, POST, PUT and PATCH requests. It holds no
// mutable state and is safe for concurrent use.
//
// Responses are returned to the caller untouched and unread; closing the
// body is the caller's job.
type Client struct {
	baseURL  string
	defaults headers.Bag
	auth     *auth.TokenAuth
	doer     HTTPDoer
	debug    *debug.Instrument
	metrics  *metrics.Collector

	builder *Builder
}

// ClientOption configures a Client
type ClientOption func(*Client)

// NewClient creates a Client for baseURL with the given options
func NewClient(baseURL string, options ...ClientOption) *Client {
	c := &Client{
		baseURL: baseURL,
		doer:    http.DefaultClient,
		debug:   debug.Disabled(),
	}

	for _, option := range options {
		option(c)
	}

	c.builder = NewBuilder(c.baseURL, c.defaults, c.auth)
	return c
}

// WithHTTPDoer swaps the transport primitive.
func WithHTTPDoer(doer HTTPDoer) ClientOption {
	return func(c *Client) {
		c.doer = doer
	}
}

// WithHeaders sets the default headers sent with every request.
func WithHeaders(h headers.Bag) ClientOption {
	return func(c *Client) {
		c.defaults = h.Clone()
	}
}

// WithAuth sets the handler that derives the Authorization header.
func WithAuth(a *auth.TokenAuth) ClientOption {
	return func(c *Client) {
		c.auth = a
	}
}

// WithDebug sets the debug instrument.
func WithDebug(inst *debug.Instrument) ClientOption {
	return func(c *Client) {
		if inst != nil {
			c.debug = inst
		}
	}
}

// WithMetrics records every dispatched call on m.
func WithMetrics(m *metrics.Collector) ClientOption {
	return func(c *Client) {
		c.metrics = m
	}
}

// BaseURL returns the URL every path is appended to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Get performs a GET request. override may be nil.
func (c *Client) Get(ctx context.Context, path string, override headers.Bag) (*http.Response, error) {
	return c.call(ctx, http.MethodGet, path, nil, override)
}

// Head performs a HEAD request. override may be nil.
func (c *Client) Head(ctx context.Context, path string, override headers.Bag) (*http.Response, error) {
	return c.call(ctx, http.MethodHead, path, nil, override)
}

// Delete performs a DELETE request. override may be nil.
func (c *Client) Delete(ctx context.Context, path string, override headers.Bag) (*http.Response, error) {
	return c.call(ctx, http.MethodDelete, path, nil, override)
}

// Post performs a POST request with payload encoded as JSON.
func (c *Client) Post(ctx context.Context, path string, payload any, override headers.Bag) (*http.Response, error) {
	return c.call(ctx, http.MethodPost, path, payload, override)
}

// Put performs a PUT request with payload encoded as JSON.
func (c *Client) Put(ctx context.Context, path string, payload any, override headers.Bag) (*http.Response, error) {
	return c.call(ctx, http.MethodPut, path, payload, override)
}

// Patch performs a PATCH request with payload encoded as JSON.
func (c *Client) Patch(ctx context.Context, path string, payload any, override headers.Bag) (*http.Response, error) {
	return c.call(ctx, http.MethodPatch, path, payload, override)
}

func (c *Client) call(ctx context.Context, method, path string, payload any, override headers.Bag) (*http.Response, error) {
	req, err := c.builder.Describe(method, path, payload, override)
	if err != nil {
		return nil, err
	}
	return c.send(ctx, req)
}

// Do sends a request described by the caller. req.Headers acts as the
// per-call override and req.Body must already be encoded; it is not sent
// for GET, HEAD and DELETE. The transport's response and error are returned
// exactly as produced.
func (c *Client) Do(ctx context.Context, req *Request) (*http.Response, error) {
	return c.send(ctx, c.builder.Prepare(req))
}

func (c *Client) send(ctx context.Context, req *Request) (*http.Response, error) {
	httpReq, err := c.builder.Build(ctx, req)
	if err != nil {
		return nil, err
	}

	trace := c.debug.Request(req.Method, c.builder.URL(req), req.Body, req.Headers)
	started := time.Now()

	resp, err := c.doer.Do(httpReq)

	c.metrics.RecordCall("http", req.Method, err, time.Since(started))
	if err != nil {
		trace.Failure(err)
		return resp, err
	}
	trace.Response(resp)
	return resp, nil
}
