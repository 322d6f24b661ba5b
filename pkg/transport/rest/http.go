package rest

import (
	"bytes"
	"context"
	"io"
	"net/http"

	"github.com/saturnines/kvizclient/pkg/headers"
)

// HTTPDoer is the transport primitive: it performs one HTTP exchange.
// *http.Client satisfies it.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// HTTPDoerFunc adapts a function to HTTPDoer.
type HTTPDoerFunc func(*http.Request) (*http.Response, error)

// Do calls f(req).
func (f HTTPDoerFunc) Do(req *http.Request) (*http.Response, error) {
	return f(req)
}

// NewHTTPRequest creates the request for method on baseURL + endpoint with
// exactly the given headers. A nil body produces a request without a body.
func NewHTTPRequest(
	ctx context.Context,
	method string,
	baseURL string,
	endpoint string,
	hdr headers.Bag,
	body []byte,
) (*http.Request, error) {
	var bodyReader io.Reader
	if body != nil {
		bodyReader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, baseURL+endpoint, bodyReader)
	if err != nil {
		return nil, err
	}

	hdr.Apply(req.Header)

	return req, nil
}
