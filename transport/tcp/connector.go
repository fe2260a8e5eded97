//go:build linux

// File: transport/tcp/connector.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Non-blocking connection establishment over an ordered candidate list.
//
// The state machine per candidate: create socket, force non-blocking,
// issue connect (EINTR re-issues in place), then wait for writability in
// bounded slices, checking the abort predicate before the attempt and
// before every slice. Writability is confirmed with SO_ERROR; a non-zero
// pending error fails the candidate and advances to the next one. An abort
// abandons all remaining candidates immediately.

package tcp

import (
	"context"
	"fmt"
	"time"

	"github.com/eapache/queue"
	"github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"

	"github.com/momentics/urlio/api"
	"github.com/momentics/urlio/internal/poll"
)

// dial walks candidates in resolver order until one connects. Candidates
// are consumed strictly left to right; there are no parallel attempts.
func (p *Protocol) dial(ctx context.Context, cands []Candidate, flags api.OpenFlags, opts *api.Options) (*Conn, error) {
	log := opts.Log(p.log)

	pending := queue.New()
	for i := range cands {
		pending.Add(&cands[i])
	}

	var deadline time.Time
	if opts.ConnectTimeout > 0 {
		deadline = time.Now().Add(opts.ConnectTimeout)
	}

	var lastErr error
	for pending.Length() > 0 {
		cand := pending.Remove().(*Candidate)

		// Checkpoint before every attempt.
		if opts.ShouldAbort(ctx) {
			return nil, api.NewError(api.ErrCodeAborted, "connect aborted", ctx.Err())
		}

		conn, err := dialCandidate(ctx, cand, flags, opts, deadline)
		if err == nil {
			log.WithFields(logrus.Fields{"addr": cand.String()}).Debug("tcp connected")
			return conn, nil
		}
		if isAbort(err) {
			return nil, err
		}
		log.WithFields(logrus.Fields{"addr": cand.String()}).WithError(err).Error("tcp connection attempt failed")
		lastErr = err
	}
	return nil, api.NewError(api.ErrCodeConnectFailed, "all resolved addresses failed", lastErr)
}

// dialCandidate runs one establishment attempt. Every failure path closes
// the descriptor it created before returning.
func dialCandidate(ctx context.Context, cand *Candidate, flags api.OpenFlags, opts *api.Options, deadline time.Time) (*Conn, error) {
	fd, err := unix.Socket(cand.Family, unix.SOCK_STREAM|unix.SOCK_CLOEXEC, unix.IPPROTO_TCP)
	if err != nil {
		return nil, api.NewError(api.ErrCodeConnectFailed, "socket", err)
	}
	// Establishment is always non-blocking, independent of the caller's
	// FlagNonBlock preference, which only affects Read/Write later.
	if err := unix.SetNonblock(fd, true); err != nil {
		unix.Close(fd)
		return nil, api.NewError(api.ErrCodeConnectFailed, "set nonblock", err)
	}

	for {
		err = unix.Connect(fd, cand.Addr)
		if err != unix.EINTR {
			break
		}
		// A signal interrupted the attempt; re-issue it against the same
		// socket. This is the only retry that does not advance candidates.
		if opts.ShouldAbort(ctx) {
			unix.Close(fd)
			return nil, api.NewError(api.ErrCodeAborted, "connect aborted", ctx.Err())
		}
	}
	if err != nil && err != unix.EINPROGRESS && err != unix.EAGAIN && err != unix.EALREADY {
		unix.Close(fd)
		return nil, api.NewError(api.ErrCodeConnectFailed, fmt.Sprintf("connect %s", cand), err)
	}

	// Wait for writability in bounded slices so an abort is observed within
	// one slice instead of an OS connect timeout.
	slice := opts.Slice()
	for {
		if opts.ShouldAbort(ctx) {
			unix.Close(fd)
			return nil, api.NewError(api.ErrCodeAborted, "connect aborted", ctx.Err())
		}
		// The last slice before the deadline is shortened so the timeout
		// never overshoots by a full poll interval.
		wait := slice
		if !deadline.IsZero() {
			remaining := time.Until(deadline)
			if remaining <= 0 {
				unix.Close(fd)
				return nil, api.NewError(api.ErrCodeConnectFailed, fmt.Sprintf("connect %s", cand), unix.ETIMEDOUT)
			}
			if remaining < wait {
				wait = remaining
			}
		}
		ready, werr := poll.Wait(fd, poll.Out, wait)
		if werr != nil {
			unix.Close(fd)
			return nil, api.NewError(api.ErrCodeConnectFailed, fmt.Sprintf("connect wait %s", cand), werr)
		}
		if ready {
			break
		}
	}

	// The socket became writable; read the pending error to learn whether
	// the connect actually succeeded.
	soerr, err := unix.GetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_ERROR)
	if err != nil {
		unix.Close(fd)
		return nil, api.NewError(api.ErrCodeConnectFailed, fmt.Sprintf("getsockopt %s", cand), err)
	}
	if soerr != 0 {
		unix.Close(fd)
		return nil, api.NewError(api.ErrCodeConnectFailed, fmt.Sprintf("connect %s", cand), unix.Errno(soerr))
	}
	return newConn(fd, flags), nil
}

func isAbort(err error) bool {
	e, ok := err.(*api.Error)
	return ok && e.Code == api.ErrCodeAborted
}
