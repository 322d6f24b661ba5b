package graphql

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	gql "github.com/Khan/genqlient/graphql"
	"github.com/akyoto/cache"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"

	"github.com/saturnines/kvizclient/pkg/metrics"
)

// DefaultCacheTTL is used when a cache is enabled without a TTL.
const DefaultCacheTTL = 5 * time.Minute

// CachedClient answers repeated queries from memory (cache-first). Only
// query operations that settled without error are stored; mutations,
// subscriptions and documents that fail to parse always reach the wrapped
// client.
type CachedClient struct {
	inner   Mechanism
	store   *cache.Cache
	ttl     time.Duration
	metrics *metrics.Collector

	closeOnce sync.Once
}

type cacheEntry struct {
	data       json.RawMessage
	extensions map[string]any
}

// NewCachedClient wraps inner with an in-memory result cache.
func NewCachedClient(inner Mechanism, ttl time.Duration, m *metrics.Collector) *CachedClient {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &CachedClient{
		inner:   inner,
		store:   cache.New(ttl),
		ttl:     ttl,
		metrics: m,
	}
}

// MakeRequest implements genqlient's graphql.Client.
func (c *CachedClient) MakeRequest(ctx context.Context, req *gql.Request, resp *gql.Response) error {
	key, ok := cacheKey(req)
	if !ok {
		return c.inner.MakeRequest(ctx, req, resp)
	}

	if v, found := c.store.Get(key); found {
		c.metrics.RecordCacheHit()
		entry := v.(cacheEntry)
		resp.Extensions = entry.extensions
		return decodeData(entry.data, resp.Data)
	}
	c.metrics.RecordCacheMiss()

	var raw json.RawMessage
	innerResp := &gql.Response{Data: &raw}
	err := c.inner.MakeRequest(ctx, req, innerResp)

	resp.Errors = innerResp.Errors
	resp.Extensions = innerResp.Extensions
	if derr := decodeData(raw, resp.Data); derr != nil && err == nil {
		err = derr
	}
	if err != nil {
		return err
	}

	c.store.Set(key, cacheEntry{data: raw, extensions: innerResp.Extensions}, c.ttl)
	return nil
}

// Clear drops every cached result.
func (c *CachedClient) Clear() {
	c.store.Range(func(key, _ interface{}) bool {
		c.store.Delete(key)
		return true
	})
}

// Close stops the cache's cleanup goroutine. Calls after the first are
// no-ops.
func (c *CachedClient) Close() {
	c.closeOnce.Do(c.store.Close)
}

func decodeData(raw json.RawMessage, into any) error {
	if len(raw) == 0 || into == nil {
		return nil
	}
	return json.Unmarshal(raw, into)
}

// cacheKey returns a key for cacheable requests: the selected operation must
// be a query.
func cacheKey(req *gql.Request) (string, bool) {
	doc, err := parser.ParseQuery(&ast.Source{Input: req.Query})
	if err != nil {
		return "", false
	}
	op := selectOperation(doc, req.OpName)
	if op == nil || op.Operation != ast.Query {
		return "", false
	}

	key, jerr := json.Marshal(struct {
		Query     string      `json:"q"`
		OpName    string      `json:"o,omitempty"`
		Variables interface{} `json:"v,omitempty"`
	}{req.Query, req.OpName, req.Variables})
	if jerr != nil {
		return "", false
	}
	return string(key), true
}

func selectOperation(doc *ast.QueryDocument, name string) *ast.OperationDefinition {
	if name == "" {
		if len(doc.Operations) == 1 {
			return doc.Operations[0]
		}
		return nil
	}
	return doc.Operations.ForName(name)
}
