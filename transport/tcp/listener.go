//go:build linux

// File: transport/tcp/listener.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Listen-mode establishment: bind the first candidate, listen with a
// backlog of one, accept a single inbound connection and close the
// listening socket. The accept wait uses the same bounded slice and abort
// checkpoints as outbound connects, so listen mode is just as cancellable.

package tcp

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"

	"github.com/momentics/urlio/api"
	"github.com/momentics/urlio/internal/poll"
)

// acceptOne binds cand and accepts exactly one inbound connection. Binding
// needs one concrete local address, so only the first candidate is used.
func (p *Protocol) acceptOne(ctx context.Context, cand *Candidate, flags api.OpenFlags, opts *api.Options) (*Conn, error) {
	log := opts.Log(p.log)

	fd, err := unix.Socket(cand.Family, unix.SOCK_STREAM|unix.SOCK_CLOEXEC, unix.IPPROTO_TCP)
	if err != nil {
		return nil, api.NewError(api.ErrCodeConnectFailed, "socket", err)
	}
	// Allows immediate rebinding of a recently used local address.
	_ = unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_REUSEADDR, 1)
	if err := unix.SetNonblock(fd, true); err != nil {
		unix.Close(fd)
		return nil, api.NewError(api.ErrCodeConnectFailed, "set nonblock", err)
	}
	if err := unix.Bind(fd, cand.Addr); err != nil {
		unix.Close(fd)
		return nil, api.NewError(api.ErrCodeConnectFailed, fmt.Sprintf("bind %s", cand), err)
	}
	if err := unix.Listen(fd, 1); err != nil {
		unix.Close(fd)
		return nil, api.NewError(api.ErrCodeConnectFailed, fmt.Sprintf("listen %s", cand), err)
	}
	log.WithFields(logrus.Fields{"addr": cand.String()}).Debug("tcp listening for one connection")

	slice := opts.Slice()
	for {
		if opts.ShouldAbort(ctx) {
			unix.Close(fd)
			return nil, api.NewError(api.ErrCodeAborted, "accept aborted", ctx.Err())
		}
		ready, werr := poll.Wait(fd, poll.In, slice)
		if werr != nil {
			unix.Close(fd)
			return nil, api.NewError(api.ErrCodeConnectFailed, fmt.Sprintf("accept wait %s", cand), werr)
		}
		if !ready {
			continue
		}
		nfd, _, aerr := unix.Accept(fd)
		if aerr != nil {
			// The pending connection can vanish between poll and accept.
			if aerr == unix.EINTR || aerr == unix.EAGAIN || aerr == unix.EWOULDBLOCK || aerr == unix.ECONNABORTED {
				continue
			}
			unix.Close(fd)
			return nil, api.NewError(api.ErrCodeConnectFailed, fmt.Sprintf("accept %s", cand), aerr)
		}
		// One connection is all this mode serves; the listening socket is
		// done and must not accept anything further.
		unix.Close(fd)
		unix.CloseOnExec(nfd)
		if err := unix.SetNonblock(nfd, true); err != nil {
			unix.Close(nfd)
			return nil, api.NewError(api.ErrCodeConnectFailed, "set nonblock", err)
		}
		return newConn(nfd, flags), nil
	}
}
