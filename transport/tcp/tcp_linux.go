//go:build linux

// File: transport/tcp/tcp_linux.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package tcp

import (
	"context"

	"github.com/momentics/urlio/api"
)

// open resolves the host and hands the candidates to the connector, or to
// the one-shot acceptor in listen mode.
func (p *Protocol) open(ctx context.Context, host string, port int, listen bool, flags api.OpenFlags, opts *api.Options) (api.Stream, error) {
	cands, err := resolve(ctx, host, port)
	if err != nil {
		opts.Log(p.log).WithError(err).Error("tcp name resolution failed")
		return nil, err
	}
	if listen {
		return p.acceptOne(ctx, &cands[0], flags, opts)
	}
	return p.dial(ctx, cands, flags, opts)
}
