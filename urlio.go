// File: urlio.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Open/read/write/close surface over the protocol-backend registry.

package urlio

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/momentics/urlio/api"
	"github.com/momentics/urlio/pool"
)

// Option adjusts one open call.
type Option func(*api.Options)

// WithInterrupt installs the cooperative cancellation predicate polled at
// the checkpoints of connection establishment.
func WithInterrupt(fn api.InterruptFunc) Option {
	return func(o *api.Options) { o.Interrupt = fn }
}

// WithLogger routes the backend's diagnostics for this call to l.
func WithLogger(l *logrus.Logger) Option {
	return func(o *api.Options) { o.Logger = l }
}

// WithPollInterval overrides the bounded wait slice used during connect.
// The slice caps cancellation latency, so shorter means more responsive
// aborts at the cost of more wakeups.
func WithPollInterval(d time.Duration) Option {
	return func(o *api.Options) { o.PollInterval = d }
}

// WithConnectTimeout bounds the whole establishment across all candidate
// addresses.
func WithConnectTimeout(d time.Duration) Option {
	return func(o *api.Options) { o.ConnectTimeout = d }
}

// Handle is one open stream. It has a single owner; Close must be called
// exactly once.
type Handle struct {
	stream api.Stream
	uri    string
}

// Open opens uri as a byte stream using the backend registered for its
// scheme. See OpenContext.
func Open(uri string, flags api.OpenFlags, opts ...Option) (*Handle, error) {
	return OpenContext(context.Background(), uri, flags, opts...)
}

// OpenContext splits uri, validates the scheme and dispatches to the
// registered backend. A malformed URI or an unregistered scheme yields
// ErrInvalidArgument. Cancelling ctx during establishment yields ErrAborted.
func OpenContext(ctx context.Context, uri string, flags api.OpenFlags, opts ...Option) (*Handle, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return nil, api.NewError(api.ErrCodeInvalidArgument, fmt.Sprintf("malformed uri %q", uri), err)
	}
	if u.Scheme == "" {
		return nil, api.NewError(api.ErrCodeInvalidArgument, fmt.Sprintf("missing scheme in %q", uri), nil)
	}
	p, ok := Lookup(u.Scheme)
	if !ok {
		return nil, api.NewError(api.ErrCodeInvalidArgument, fmt.Sprintf("unsupported scheme %q", u.Scheme), nil)
	}
	o := api.DefaultOptions()
	for _, fn := range opts {
		fn(o)
	}
	s, err := p.Open(ctx, u, flags, o)
	if err != nil {
		return nil, err
	}
	return &Handle{stream: s, uri: uri}, nil
}

// Read fills p from the stream. A zero count with io.EOF means the peer
// shut down in an orderly fashion.
func (h *Handle) Read(p []byte) (int, error) {
	return h.stream.Read(p)
}

// Write sends p to the stream.
func (h *Handle) Write(p []byte) (int, error) {
	return h.stream.Write(p)
}

// Close releases the stream and its descriptor. Exactly once per handle.
func (h *Handle) Close() error {
	return h.stream.Close()
}

// NativeHandle exposes the raw descriptor for external readiness
// multiplexing. Ownership stays with the handle. Handles are not seekable.
func (h *Handle) NativeHandle() uintptr {
	return h.stream.NativeHandle()
}

// URI returns the string the handle was opened with.
func (h *Handle) URI() string {
	return h.uri
}

// copyPool backs the Copy helper.
var copyPool = pool.NewBytePool(32 * 1024)

// Copy pumps src into dst with a pooled buffer until EOF, returning the
// number of bytes moved.
func Copy(dst io.Writer, src io.Reader) (int64, error) {
	buf := copyPool.GetBuffer()
	defer copyPool.PutBuffer(buf)

	var written int64
	for {
		n, rerr := src.Read(buf)
		if n > 0 {
			wn, werr := dst.Write(buf[:n])
			written += int64(wn)
			if werr != nil {
				return written, werr
			}
			if wn < n {
				return written, io.ErrShortWrite
			}
		}
		if rerr == io.EOF {
			return written, nil
		}
		if rerr != nil {
			return written, rerr
		}
	}
}
