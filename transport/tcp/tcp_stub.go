//go:build !linux

// File: transport/tcp/tcp_stub.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Stub for platforms without poll(2) descriptor semantics.

package tcp

import (
	"context"

	"github.com/momentics/urlio/api"
)

func (p *Protocol) open(ctx context.Context, host string, port int, listen bool, flags api.OpenFlags, opts *api.Options) (api.Stream, error) {
	return nil, api.NewError(api.ErrCodeNotSupported, "tcp transport is not supported on this platform", nil)
}
