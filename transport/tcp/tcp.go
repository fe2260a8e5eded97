// File: transport/tcp/tcp.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Package tcp implements the TCP byte-stream backend behind the urlio
// protocol surface. URLs take the form tcp://host:port, with an optional
// listen query option (tcp://host:port?listen=1) that accepts exactly one
// inbound connection instead of dialing out.
package tcp

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/momentics/urlio/api"
)

// Protocol is the tcp:// backend.
type Protocol struct {
	log *logrus.Logger
}

// Ensure compliance with api.Protocol.
var _ api.Protocol = (*Protocol)(nil)

// New creates the TCP backend with the default logger.
func New() *Protocol {
	return &Protocol{log: logrus.StandardLogger()}
}

// SetLogger replaces the backend's default logger.
func (p *Protocol) SetLogger(l *logrus.Logger) {
	if l != nil {
		p.log = l
	}
}

// Scheme returns "tcp".
func (p *Protocol) Scheme() string { return "tcp" }

// Open validates the URL and establishes a stream. The port must be an
// integer in 1..65535; anything else is an invalid argument, as is a foreign
// scheme. The listen query option flips the backend into accept mode for
// this one call.
func (p *Protocol) Open(ctx context.Context, u *url.URL, flags api.OpenFlags, opts *api.Options) (api.Stream, error) {
	if u == nil {
		return nil, api.NewError(api.ErrCodeInvalidArgument, "nil url", nil)
	}
	if u.Scheme != "tcp" {
		return nil, api.NewError(api.ErrCodeInvalidArgument, fmt.Sprintf("unsupported scheme %q", u.Scheme), nil)
	}
	host := u.Hostname()
	if host == "" {
		return nil, api.NewError(api.ErrCodeInvalidArgument, "missing host", nil)
	}
	port, err := strconv.Atoi(u.Port())
	if err != nil {
		return nil, api.NewError(api.ErrCodeInvalidArgument, fmt.Sprintf("missing or malformed port in %q", u.Host), err)
	}
	if port < 1 || port > 65535 {
		return nil, api.NewError(api.ErrCodeInvalidArgument, fmt.Sprintf("port %d out of range", port), nil)
	}
	listen := u.Query().Has("listen")
	if opts == nil {
		opts = api.DefaultOptions()
	}
	return p.open(ctx, host, port, listen, flags, opts)
}
