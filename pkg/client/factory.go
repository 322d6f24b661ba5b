// Package client builds the REST and query clients from one config.
package client

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/saturnines/kvizclient/pkg/auth"
	"github.com/saturnines/kvizclient/pkg/config"
	"github.com/saturnines/kvizclient/pkg/debug"
	"github.com/saturnines/kvizclient/pkg/headers"
	"github.com/saturnines/kvizclient/pkg/metrics"
	"github.com/saturnines/kvizclient/pkg/transport/graphql"
	"github.com/saturnines/kvizclient/pkg/transport/rest"
)

// Instance holds the two clients built from one config. They share the base
// URL and debug switch and nothing mutable.
type Instance struct {
	REST    *rest.Client
	Query   *graphql.Executor
	Metrics *metrics.Collector
}

// Close stops background work started by Build, currently the query result
// cache's cleanup goroutine. The clients must not be used afterwards.
func (i *Instance) Close() {
	i.Query.Close()
}

type buildOptions struct {
	doer       rest.HTTPDoer
	logger     zerolog.Logger
	mechanism  graphql.MechanismFunc
	metrics    *metrics.Collector
	registerer prometheus.Registerer
}

// Option customizes Build.
type Option func(*buildOptions)

// WithHTTPDoer sets the transport primitive used by both clients.
func WithHTTPDoer(doer rest.HTTPDoer) Option {
	return func(o *buildOptions) { o.doer = doer }
}

// WithLogger sets the debug sink. Without it debug output is discarded.
// Traces are written at debug level or at l's level, whichever is higher.
func WithLogger(l zerolog.Logger) Option {
	return func(o *buildOptions) { o.logger = l }
}

// WithMechanism replaces the default genqlient query mechanism.
func WithMechanism(f graphql.MechanismFunc) Option {
	return func(o *buildOptions) { o.mechanism = f }
}

// WithMetrics records calls on m regardless of the config's metrics section.
func WithMetrics(m *metrics.Collector) Option {
	return func(o *buildOptions) { o.metrics = m }
}

// WithRegisterer sets where a config-enabled collector is registered.
// Defaults to prometheus.DefaultRegisterer.
func WithRegisterer(r prometheus.Registerer) Option {
	return func(o *buildOptions) { o.registerer = r }
}

// Build creates both clients from cfg. cfg is not validated; use a
// config.Loader for that. Maps in cfg are copied, so later changes to cfg do
// not reach the clients.
func Build(cfg config.Client, opts ...Option) *Instance {
	o := &buildOptions{
		doer:       http.DefaultClient,
		logger:     zerolog.Nop(),
		registerer: prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(o)
	}

	if o.metrics == nil && cfg.Metrics.Enabled {
		o.metrics = metrics.NewCollector(o.registerer, cfg.Metrics.Namespace)
	}

	defaults := headers.Bag(cfg.Headers).Clone()
	tokenAuth := auth.NewTokenAuth(cfg.TokenType, cfg.AuthToken, cfg.OmitEmptyAuth)
	inst := debug.New(cfg.Debug, o.logger)

	restClient := rest.NewClient(cfg.BaseURL,
		rest.WithHTTPDoer(o.doer),
		rest.WithHeaders(defaults),
		rest.WithAuth(tokenAuth),
		rest.WithDebug(inst),
		rest.WithMetrics(o.metrics),
	)

	mechanism := o.mechanism
	if mechanism == nil {
		mc := graphql.MechanismConfig{
			CacheEnabled: cfg.Query.CacheEnabled,
			CacheTTL:     cfg.Query.CacheTTL,
			Metrics:      o.metrics,
		}
		if cfg.Query.ForwardHeaders {
			mc.Headers = headers.Compose(defaults, tokenAuth.Headers(), nil)
		}
		mechanism = graphql.NewMechanism(o.doer, mc)
	}

	queryClient := graphql.NewExecutor(cfg.BaseURL,
		graphql.WithMechanism(mechanism),
		graphql.WithDebug(inst),
		graphql.WithMetrics(o.metrics),
	)

	return &Instance{
		REST:    restClient,
		Query:   queryClient,
		Metrics: o.metrics,
	}
}
