package graphql

import (
	"net/http"
	"time"

	gql "github.com/Khan/genqlient/graphql"

	"github.com/saturnines/kvizclient/pkg/headers"
	"github.com/saturnines/kvizclient/pkg/metrics"
)

// HTTPDoer is the same minimal interface used by the rest package.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Mechanism executes query documents against the endpoint it was built for.
// genqlient's graphql.Client satisfies it.
type Mechanism = gql.Client

// MechanismFunc builds a Mechanism bound to endpoint. The Executor calls it
// exactly once.
type MechanismFunc func(endpoint string) Mechanism

// MechanismConfig configures the default query mechanism.
type MechanismConfig struct {
	// Headers are set on every query HTTP request. Leave nil to send only
	// what genqlient sets itself.
	Headers headers.Bag

	CacheEnabled bool
	CacheTTL     time.Duration

	Metrics *metrics.Collector
}

// NewMechanism returns a MechanismFunc producing a genqlient client over doer,
// optionally forwarding headers and caching results.
func NewMechanism(doer HTTPDoer, cfg MechanismConfig) MechanismFunc {
	if doer == nil {
		doer = http.DefaultClient
	}
	return func(endpoint string) Mechanism {
		var d gql.Doer = doer
		if len(cfg.Headers) > 0 {
			d = &headerDoer{headers: cfg.Headers.Clone(), wrapped: doer}
		}
		var m Mechanism = gql.NewClient(endpoint, d)
		if cfg.CacheEnabled {
			m = NewCachedClient(m, cfg.CacheTTL, cfg.Metrics)
		}
		return m
	}
}

// headerDoer sets a fixed header set on each request it forwards.
type headerDoer struct {
	headers headers.Bag
	wrapped HTTPDoer
}

// Do clones the request before modifying headers, since the caller still
// owns the original.
func (d *headerDoer) Do(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	d.headers.Apply(req.Header)
	return d.wrapped.Do(req)
}
