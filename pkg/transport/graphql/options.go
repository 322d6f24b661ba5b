package graphql

import (
	"github.com/saturnines/kvizclient/pkg/debug"
	"github.com/saturnines/kvizclient/pkg/metrics"
)

// ExecutorOption configures the Executor.
type ExecutorOption func(*Executor)

// WithMechanism sets how the query mechanism is built.
func WithMechanism(f MechanismFunc) ExecutorOption {
	return func(e *Executor) {
		if f != nil {
			e.newMechanism = f
		}
	}
}

// WithDebug sets the debug instrument.
func WithDebug(inst *debug.Instrument) ExecutorOption {
	return func(e *Executor) {
		if inst != nil {
			e.debug = inst
		}
	}
}

// WithMetrics records every query on m.
func WithMetrics(m *metrics.Collector) ExecutorOption {
	return func(e *Executor) {
		e.metrics = m
	}
}
