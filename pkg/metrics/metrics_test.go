package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCollector_RecordCall(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg, "test")

	c.RecordCall("http", "GET", nil, 10*time.Millisecond)
	c.RecordCall("http", "GET", nil, 10*time.Millisecond)
	c.RecordCall("http", "POST", errors.New("refused"), time.Millisecond)

	if got := testutil.ToFloat64(c.callsTotal.WithLabelValues("http", "GET", OutcomeSuccess)); got != 2 {
		t.Errorf("Expected 2 successful GETs, got %v", got)
	}
	if got := testutil.ToFloat64(c.callsTotal.WithLabelValues("http", "POST", OutcomeFailure)); got != 1 {
		t.Errorf("Expected 1 failed POST, got %v", got)
	}
	if got := testutil.CollectAndCount(c.callDuration); got != 2 {
		t.Errorf("Expected 2 duration series, got %d", got)
	}
}

func TestCollector_Cache(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg, "")

	c.RecordCacheHit()
	c.RecordCacheMiss()
	c.RecordCacheMiss()

	if got := testutil.ToFloat64(c.cacheHits); got != 1 {
		t.Errorf("Expected 1 hit, got %v", got)
	}
	if got := testutil.ToFloat64(c.cacheMisses); got != 2 {
		t.Errorf("Expected 2 misses, got %v", got)
	}
}

func TestCollector_Nil(t *testing.T) {
	var c *Collector
	c.RecordCall("http", "GET", nil, time.Second)
	c.RecordCacheHit()
	c.RecordCacheMiss()
}
