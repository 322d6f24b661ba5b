// Package debug logs the lifecycle of outgoing calls when debug mode is on.
//
// An Instrument emits exactly two events per dispatched call: one just before
// the call reaches the transport and one once it has settled. It never
// touches the request or the outcome. When disabled it emits nothing.
package debug

import (
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/saturnines/kvizclient/pkg/headers"
)

// Instrument writes call traces to a zerolog sink.
type Instrument struct {
	enabled bool
	log     zerolog.Logger
	level   zerolog.Level
}

// New creates an Instrument. The switch is read once here.
//
// Events are written at debug level, or at the logger's own level when that
// is higher, so a logger set to info still receives every trace.
func New(enabled bool, log zerolog.Logger) *Instrument {
	return &Instrument{enabled: enabled, log: log, level: eventLevel(log)}
}

// Disabled returns an Instrument that never logs.
func Disabled() *Instrument {
	return &Instrument{log: zerolog.Nop(), level: zerolog.Disabled}
}

func eventLevel(log zerolog.Logger) zerolog.Level {
	if lvl := log.GetLevel(); lvl > zerolog.DebugLevel {
		return lvl
	}
	return zerolog.DebugLevel
}

// Enabled reports whether the instrument logs.
func (i *Instrument) Enabled() bool {
	return i != nil && i.enabled
}

// Call is the trace handle of a single dispatched call. A nil Call is valid
// and logs nothing.
type Call struct {
	log     zerolog.Logger
	level   zerolog.Level
	started time.Time
}

// Request logs a verb call that is about to be dispatched.
func (i *Instrument) Request(method, url string, body []byte, hdr headers.Bag) *Call {
	if !i.Enabled() {
		return nil
	}
	c := i.begin("http", method, url)
	c.emit(func(l *zerolog.Logger) {
		e := l.WithLevel(c.level).Interface("headers", hdr)
		if body != nil {
			e = e.Bytes("body", body)
		}
		e.Msgf("%s %s", method, url)
	})
	return c
}

// Query logs a query that is about to be handed to the query mechanism.
func (i *Instrument) Query(endpoint, document string, variables map[string]any) *Call {
	if !i.Enabled() {
		return nil
	}
	c := i.begin("graphql", "QUERY", endpoint)
	c.emit(func(l *zerolog.Logger) {
		e := l.WithLevel(c.level).Str("query", document)
		if len(variables) > 0 {
			e = e.Interface("variables", variables)
		}
		e.Msgf("Querying %s for %s", endpoint, document)
	})
	return c
}

func (i *Instrument) begin(kind, method, url string) *Call {
	return &Call{
		log: i.log.With().
			Str("call_id", uuid.NewString()).
			Str("kind", kind).
			Str("method", method).
			Str("url", url).
			Logger(),
		level:   i.level,
		started: time.Now(),
	}
}

// Response logs a successful verb call.
func (c *Call) Response(resp *http.Response) {
	if c == nil {
		return
	}
	c.emit(func(l *zerolog.Logger) {
		e := l.WithLevel(c.level).Dur("elapsed", time.Since(c.started))
		if resp != nil {
			e = e.Int("status", resp.StatusCode).Interface("response_headers", resp.Header)
		}
		e.Msg("response")
	})
}

// Failure logs a call that settled with an error.
func (c *Call) Failure(err error) {
	if c == nil {
		return
	}
	c.emit(func(l *zerolog.Logger) {
		l.WithLevel(c.level).
			Dur("elapsed", time.Since(c.started)).
			Err(err).
			Str("error_type", fmt.Sprintf("%T", err)).
			Str("error_value", fmt.Sprintf("%+v", err)).
			Msg("request failed")
	})
}

// Settled logs the outcome of a query.
func (c *Call) Settled(err error) {
	if err != nil {
		c.Failure(err)
		return
	}
	if c == nil {
		return
	}
	c.emit(func(l *zerolog.Logger) {
		l.WithLevel(c.level).Dur("elapsed", time.Since(c.started)).Msg("query settled")
	})
}

// emit runs fn and drops anything the sink panics with, so a broken sink can
// never replace the result of the call being traced.
func (c *Call) emit(fn func(l *zerolog.Logger)) {
	defer func() { _ = recover() }()
	fn(&c.log)
}
