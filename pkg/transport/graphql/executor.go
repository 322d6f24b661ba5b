// Package graphql runs query documents against the fixed "/graphql"
// endpoint of a base URL.
//
// The Executor does not execute queries itself. It delegates to a Mechanism
// (a genqlient client by default) and only adds the endpoint binding, debug
// traces and metrics around it. Responses and errors come back exactly as
// the mechanism produced them.
package graphql

import (
	"context"
	"net/http"
	"time"

	gql "github.com/Khan/genqlient/graphql"
	"github.com/vektah/gqlparser/v2/gqlerror"

	"github.com/saturnines/kvizclient/pkg/debug"
	"github.com/saturnines/kvizclient/pkg/metrics"
)

// EndpointPath is appended to the base URL to form the query endpoint.
const EndpointPath = "/graphql"

// Query is one query call.
type Query struct {
	Document      string
	Variables     map[string]any
	OperationName string
}

// Response is the mechanism's result: data plus optional errors.
type Response = gql.Response

// Executor sends queries to a fixed endpoint. Safe for concurrent use.
type Executor struct {
	endpoint     string
	mechanism    Mechanism
	newMechanism MechanismFunc
	debug        *debug.Instrument
	metrics      *metrics.Collector
}

// NewExecutor binds an Executor to baseURL + EndpointPath.
func NewExecutor(baseURL string, opts ...ExecutorOption) *Executor {
	e := &Executor{
		endpoint:     baseURL + EndpointPath,
		newMechanism: NewMechanism(http.DefaultClient, MechanismConfig{}),
		debug:        debug.Disabled(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.mechanism = e.newMechanism(e.endpoint)
	return e
}

// Endpoint returns the endpoint fixed at construction.
func (e *Executor) Endpoint() string {
	return e.endpoint
}

// Close releases resources held by the mechanism, such as a result cache's
// cleanup goroutine. Mechanisms without a Close method are left alone.
func (e *Executor) Close() {
	if c, ok := e.mechanism.(interface{ Close() }); ok {
		c.Close()
	}
}

// Query hands q to the mechanism, decoding the "data" member into data
// (a pointer, or nil to discard it).
func (e *Executor) Query(ctx context.Context, q Query, data any) (*Response, error) {
	req := &gql.Request{
		Query:  q.Document,
		OpName: q.OperationName,
	}
	if len(q.Variables) > 0 {
		req.Variables = q.Variables
	}
	resp := &Response{Data: data}

	trace := e.debug.Query(e.endpoint, q.Document, q.Variables)
	started := time.Now()

	err := e.mechanism.MakeRequest(ctx, req, resp)

	e.metrics.RecordCall("graphql", "QUERY", err, time.Since(started))
	trace.Settled(err)
	return resp, err
}

// Result is a typed query result.
type Result[T any] struct {
	Data       T
	Errors     gqlerror.List
	Extensions map[string]any
}

// Fetch runs q and decodes its data into a T.
func Fetch[T any](ctx context.Context, e *Executor, q Query) (*Result[T], error) {
	res := &Result[T]{}
	resp, err := e.Query(ctx, q, &res.Data)
	if resp != nil {
		res.Errors = resp.Errors
		res.Extensions = resp.Extensions
	}
	return res, err
}
