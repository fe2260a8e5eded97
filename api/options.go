// File: api/options.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package api

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// DefaultPollInterval is the bounded wait slice used while establishing a
// connection. Cancellation latency during connect is capped at one slice.
const DefaultPollInterval = 100 * time.Millisecond

// Options carries per-open knobs shared by all protocol backends.
// A nil *Options is equivalent to DefaultOptions().
type Options struct {
	// Interrupt, when non-nil, is polled at the cancellation checkpoints of
	// connection establishment.
	Interrupt InterruptFunc

	// Logger overrides the backend's default logger for this open call.
	Logger *logrus.Logger

	// PollInterval is the bounded wait slice during connect.
	// Zero or negative selects DefaultPollInterval.
	PollInterval time.Duration

	// ConnectTimeout bounds the whole establishment across all candidate
	// addresses. Zero means no overall deadline.
	ConnectTimeout time.Duration
}

// DefaultOptions returns the options used when the caller supplies none.
func DefaultOptions() *Options {
	return &Options{PollInterval: DefaultPollInterval}
}

// Slice returns the effective bounded wait interval.
func (o *Options) Slice() time.Duration {
	if o == nil || o.PollInterval <= 0 {
		return DefaultPollInterval
	}
	return o.PollInterval
}

// ShouldAbort reports whether the caller asked to abandon establishment,
// either through the context or the interrupt predicate. Backends consult it
// at every cancellation checkpoint.
func (o *Options) ShouldAbort(ctx context.Context) bool {
	if ctx != nil && ctx.Err() != nil {
		return true
	}
	return o != nil && o.Interrupt != nil && o.Interrupt()
}

// Log returns the logger to use, falling back to def.
func (o *Options) Log(def *logrus.Logger) *logrus.Logger {
	if o != nil && o.Logger != nil {
		return o.Logger
	}
	if def != nil {
		return def
	}
	return logrus.StandardLogger()
}
