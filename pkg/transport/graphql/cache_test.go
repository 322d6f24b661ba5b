package graphql

import (
	"context"
	"strings"
	"testing"
	"time"

	gql "github.com/Khan/genqlient/graphql"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/saturnines/kvizclient/pkg/metrics"
)

type pingData struct {
	Ping string `json:"ping"`
}

func newCachedExecutor(t *testing.T, server *testServer, m *metrics.Collector) *Executor {
	t.Helper()
	return NewExecutor(server.URL, WithMechanism(NewMechanism(server.Client(), MechanismConfig{
		CacheEnabled: true,
		CacheTTL:     time.Minute,
		Metrics:      m,
	})))
}

func TestCachedClient_QueriesServedFromCache(t *testing.T) {
	server := newTestServer(t)
	e := newCachedExecutor(t, server, nil)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		res, err := Fetch[pingData](ctx, e, Query{Document: "{ ping }"})
		if err != nil {
			t.Fatalf("Fetch failed: %v", err)
		}
		if res.Data.Ping != "pong" {
			t.Errorf("Expected 'pong', got '%s'", res.Data.Ping)
		}
	}
	if got := server.hits.Load(); got != 1 {
		t.Errorf("Expected 1 server hit, got %d", got)
	}
}

func TestCachedClient_KeyIncludesVariables(t *testing.T) {
	server := newTestServer(t)
	e := newCachedExecutor(t, server, nil)
	doc := "query Quiz($id: ID!) { quiz(id: $id) { title } }"

	e.Query(context.Background(), Query{Document: doc, Variables: map[string]any{"id": "1"}}, nil)
	e.Query(context.Background(), Query{Document: doc, Variables: map[string]any{"id": "2"}}, nil)
	e.Query(context.Background(), Query{Document: doc, Variables: map[string]any{"id": "1"}}, nil)

	if got := server.hits.Load(); got != 2 {
		t.Errorf("Expected 2 server hits, got %d", got)
	}
}

func TestCachedClient_MutationsBypassCache(t *testing.T) {
	server := newTestServer(t)
	e := newCachedExecutor(t, server, nil)
	doc := `mutation { createQuiz(title: "Rivers") { id } }`

	e.Query(context.Background(), Query{Document: doc}, nil)
	e.Query(context.Background(), Query{Document: doc}, nil)

	if got := server.hits.Load(); got != 2 {
		t.Errorf("Expected 2 server hits, got %d", got)
	}
}

func TestCachedClient_ErrorsNotCached(t *testing.T) {
	server := newTestServer(t)
	e := newCachedExecutor(t, server, nil)

	for i := 0; i < 2; i++ {
		if _, err := e.Query(context.Background(), Query{Document: "{ nope }"}, nil); err == nil {
			t.Fatal("Expected an error")
		}
	}
	if got := server.hits.Load(); got != 2 {
		t.Errorf("Expected 2 server hits, got %d", got)
	}
}

func TestCachedClient_Clear(t *testing.T) {
	server := newTestServer(t)
	inner := gql.NewClient(server.URL+EndpointPath, server.Client())
	c := NewCachedClient(inner, 0, nil)
	defer c.Close()

	req := &gql.Request{Query: "{ ping }"}
	var data pingData
	if err := c.MakeRequest(context.Background(), req, &gql.Response{Data: &data}); err != nil {
		t.Fatalf("MakeRequest failed: %v", err)
	}
	c.Clear()
	if err := c.MakeRequest(context.Background(), req, &gql.Response{Data: &data}); err != nil {
		t.Fatalf("MakeRequest failed: %v", err)
	}
	if got := server.hits.Load(); got != 2 {
		t.Errorf("Expected 2 server hits after Clear, got %d", got)
	}
}

func TestCachedClient_Metrics(t *testing.T) {
	server := newTestServer(t)
	reg := prometheus.NewRegistry()
	m := metrics.NewCollector(reg, "test")
	e := newCachedExecutor(t, server, m)

	e.Query(context.Background(), Query{Document: "{ ping }"}, nil)
	e.Query(context.Background(), Query{Document: "{ ping }"}, nil)

	expected := `
# HELP test_query_cache_hits_total Total number of queries answered from the result cache
# TYPE test_query_cache_hits_total counter
test_query_cache_hits_total 1
# HELP test_query_cache_misses_total Total number of queries that missed the result cache
# TYPE test_query_cache_misses_total counter
test_query_cache_misses_total 1
`
	if err := testutil.GatherAndCompare(reg, strings.NewReader(expected),
		"test_query_cache_hits_total", "test_query_cache_misses_total"); err != nil {
		t.Error(err)
	}
}
