package graphql

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	gqlgo "github.com/graph-gophers/graphql-go"
	"github.com/graph-gophers/graphql-go/relay"
)

const testSchema = `
schema {
	query: Query
	mutation: Mutation
}
type Query {
	ping: String!
	quiz(id: ID!): Quiz
}
type Mutation {
	createQuiz(title: String!): Quiz!
}
type Quiz {
	id: ID!
	title: String!
}
`

type testResolver struct{}

func (testResolver) Ping() string { return "pong" }

func (testResolver) Quiz(args struct{ ID gqlgo.ID }) *quizResolver {
	if args.ID != "1" {
		return nil
	}
	return &quizResolver{id: "1", title: "Capitals"}
}

func (testResolver) CreateQuiz(args struct{ Title string }) *quizResolver {
	return &quizResolver{id: "2", title: args.Title}
}

type quizResolver struct {
	id    gqlgo.ID
	title string
}

func (q *quizResolver) ID() gqlgo.ID   { return q.id }
func (q *quizResolver) Title() string { return q.title }

// testServer serves testSchema on /graphql and counts the requests it sees.
type testServer struct {
	*httptest.Server
	hits        atomic.Int32
	lastHeaders atomic.Value
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	schema := gqlgo.MustParseSchema(testSchema, &testResolver{})

	ts := &testServer{}
	mux := http.NewServeMux()
	handler := &relay.Handler{Schema: schema}
	mux.HandleFunc(EndpointPath, func(w http.ResponseWriter, r *http.Request) {
		ts.hits.Add(1)
		ts.lastHeaders.Store(r.Header.Clone())
		handler.ServeHTTP(w, r)
	})
	ts.Server = httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return ts
}

func (ts *testServer) header(name string) string {
	h, _ := ts.lastHeaders.Load().(http.Header)
	return h.Get(name)
}
