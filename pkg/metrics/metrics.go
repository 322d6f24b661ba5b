// Package metrics exposes Prometheus counters for REST and query calls.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Collector records call metrics. It is safe for concurrent use and a nil
// Collector records nothing.
type Collector struct {
	callsTotal   *prometheus.CounterVec
	callDuration *prometheus.HistogramVec
	cacheHits    prometheus.Counter
	cacheMisses  prometheus.Counter
}

// NewCollector registers the collector's metrics on registry under namespace.
func NewCollector(registry prometheus.Registerer, namespace string) *Collector {
	if namespace == "" {
		namespace = "kvizclient"
	}
	factory := promauto.With(registry)
	return &Collector{
		callsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "calls_total",
				Help:      "Total number of dispatched REST and query calls",
			},
			[]string{"kind", "method", "outcome"},
		),
		callDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "call_duration_seconds",
				Help:      "Duration of dispatched calls in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"kind", "method"},
		),
		cacheHits: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "query_cache_hits_total",
			Help:      "Total number of queries answered from the result cache",
		}),
		cacheMisses: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "query_cache_misses_total",
			Help:      "Total number of queries that missed the result cache",
		}),
	}
}

// RecordCall records one settled call.
func (c *Collector) RecordCall(kind, method string, err error, elapsed time.Duration) {
	if c == nil {
		return
	}
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeFailure
	}
	c.callsTotal.WithLabelValues(kind, method, outcome).Inc()
	c.callDuration.WithLabelValues(kind, method).Observe(elapsed.Seconds())
}

// RecordCacheHit counts a query served from cache.
func (c *Collector) RecordCacheHit() {
	if c == nil {
		return
	}
	c.cacheHits.Inc()
}

// RecordCacheMiss counts a query that went to the server.
func (c *Collector) RecordCacheMiss() {
	if c == nil {
		return
	}
	c.cacheMisses.Inc()
}
