// File: api/stream.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Core stream and protocol-backend contracts for the urlio library.
// A Stream is one open byte stream over some transport; a Protocol is the
// per-scheme backend that knows how to establish one.

package api

import (
	"context"
	"net/url"
)

// OpenFlags adjust how an opened stream performs I/O.
type OpenFlags int

const (
	// FlagNonBlock makes Read/Write issue the OS call immediately instead
	// of waiting for descriptor readiness first. Callers multiplexing the
	// descriptor externally (see Stream.NativeHandle) want this.
	FlagNonBlock OpenFlags = 1 << iota
)

// InterruptFunc is polled at cancellation checkpoints while a connection is
// being established. Returning true abandons the operation and surfaces
// ErrAborted. It is never consulted again once the stream is connected.
type InterruptFunc func() bool

// Stream is a single established byte stream. Streams are not seekable.
//
// A Stream owns exactly one OS descriptor for its entire lifetime. Close
// releases it; the owner must not share the stream across goroutines without
// external synchronization.
type Stream interface {
	Read(p []byte) (int, error)
	Write(p []byte) (int, error)
	Close() error

	// NativeHandle exposes the raw descriptor for external readiness
	// multiplexing. Ownership is not transferred; closing or duplicating
	// the returned descriptor is a caller bug.
	NativeHandle() uintptr
}

// Protocol is one scheme backend behind the generic open surface.
type Protocol interface {
	// Scheme returns the URL scheme this backend serves, e.g. "tcp".
	Scheme() string

	// Open establishes a stream for the given pre-split URL.
	Open(ctx context.Context, u *url.URL, flags OpenFlags, opts *Options) (Stream, error)
}
