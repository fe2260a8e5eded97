//go:build linux

// File: transport/tcp/conn.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Conn is the established-connection context: sole owner of one socket
// descriptor from creation to Close.

package tcp

import (
	"io"
	"net"

	"golang.org/x/sys/unix"

	"github.com/momentics/urlio/api"
	"github.com/momentics/urlio/internal/poll"
)

// Conn is one established TCP stream over a raw descriptor.
//
// A Conn is produced only for a fully connected socket; callers never see a
// partially constructed one. The descriptor has exactly one owner (this
// Conn) and is released exactly once by Close. Conn performs no internal
// locking; it is meant for a single calling goroutine.
type Conn struct {
	fd       int
	nonblock bool
}

// Ensure compliance with api.Stream.
var _ api.Stream = (*Conn)(nil)

func newConn(fd int, flags api.OpenFlags) *Conn {
	return &Conn{fd: fd, nonblock: flags&api.FlagNonBlock != 0}
}

// Read fills p with received bytes. In blocking mode it first suspends
// until the descriptor is readable, with no timeout. A zero count with
// io.EOF means the peer shut down in an orderly fashion.
func (c *Conn) Read(p []byte) (int, error) {
	if c.fd < 0 {
		return 0, api.ErrClosed
	}
	if !c.nonblock {
		if _, err := poll.Wait(c.fd, poll.In, -1); err != nil {
			return 0, api.NewError(api.ErrCodeIO, "read wait", err)
		}
	}
	n, err := unix.Read(c.fd, p)
	if err != nil {
		if err == unix.EAGAIN || err == unix.EWOULDBLOCK {
			return 0, api.NewError(api.ErrCodeIO, "read", api.ErrWouldBlock)
		}
		return 0, api.NewError(api.ErrCodeIO, "read", err)
	}
	if n == 0 && len(p) > 0 {
		return 0, io.EOF
	}
	return n, nil
}

// Write sends p. In blocking mode it first suspends until the descriptor is
// writable, with no timeout. Short writes are reported through the returned
// count, never retried internally.
func (c *Conn) Write(p []byte) (int, error) {
	if c.fd < 0 {
		return 0, api.ErrClosed
	}
	if !c.nonblock {
		if _, err := poll.Wait(c.fd, poll.Out, -1); err != nil {
			return 0, api.NewError(api.ErrCodeIO, "write wait", err)
		}
	}
	n, err := unix.Write(c.fd, p)
	if err != nil {
		if err == unix.EAGAIN || err == unix.EWOULDBLOCK {
			return 0, api.NewError(api.ErrCodeIO, "write", api.ErrWouldBlock)
		}
		return 0, api.NewError(api.ErrCodeIO, "write", err)
	}
	return n, nil
}

// Close releases the descriptor. The Conn is unusable afterwards; further
// calls return ErrClosed rather than touching a recycled descriptor number.
func (c *Conn) Close() error {
	if c.fd < 0 {
		return api.ErrClosed
	}
	fd := c.fd
	c.fd = -1
	if err := unix.Close(fd); err != nil {
		return api.NewError(api.ErrCodeIO, "close", err)
	}
	return nil
}

// NativeHandle exposes the raw descriptor for external readiness
// multiplexing. Ownership stays with the Conn.
func (c *Conn) NativeHandle() uintptr {
	return uintptr(c.fd)
}

// RemoteAddr reports the peer address, nil once closed or on lookup failure.
func (c *Conn) RemoteAddr() net.Addr {
	if c.fd < 0 {
		return nil
	}
	sa, err := unix.Getpeername(c.fd)
	if err != nil {
		return nil
	}
	return sockaddrToTCPAddr(sa)
}

// LocalAddr reports the local address, nil once closed or on lookup failure.
func (c *Conn) LocalAddr() net.Addr {
	if c.fd < 0 {
		return nil
	}
	sa, err := unix.Getsockname(c.fd)
	if err != nil {
		return nil
	}
	return sockaddrToTCPAddr(sa)
}

func sockaddrToTCPAddr(sa unix.Sockaddr) net.Addr {
	switch a := sa.(type) {
	case *unix.SockaddrInet4:
		return &net.TCPAddr{IP: append(net.IP(nil), a.Addr[:]...), Port: a.Port}
	case *unix.SockaddrInet6:
		return &net.TCPAddr{IP: append(net.IP(nil), a.Addr[:]...), Port: a.Port}
	default:
		return nil
	}
}
