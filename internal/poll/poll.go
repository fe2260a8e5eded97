//go:build linux

// File: internal/poll/poll.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Readiness waits over poll(2) for descriptor-level transports. Bounded
// waits are used as cancellation slices during connection establishment;
// unbounded waits implement blocking read/write semantics.

package poll

import (
	"time"

	"golang.org/x/sys/unix"
)

// Event masks accepted by Wait.
const (
	In  = unix.POLLIN
	Out = unix.POLLOUT
)

// Wait polls fd for the given events. A negative timeout blocks until the
// descriptor is ready or the wait itself fails.
//
// For bounded waits a signal interruption is folded into "not ready"; the
// caller loops and re-checks its cancellation predicate, which is the whole
// point of the bounded slice. For unbounded waits EINTR is retried, so a
// blocked Read/Write does not fail just because a signal landed.
func Wait(fd int, events int16, timeout time.Duration) (bool, error) {
	ms := -1
	if timeout >= 0 {
		ms = int(timeout.Milliseconds())
		// Sub-millisecond timeouts would truncate to a zero-timeout poll
		// and spin; round them up to the resolution of poll(2).
		if ms == 0 && timeout > 0 {
			ms = 1
		}
	}
	pfd := []unix.PollFd{{Fd: int32(fd), Events: events}}
	for {
		n, err := unix.Poll(pfd, ms)
		if err == unix.EINTR {
			if timeout >= 0 {
				return false, nil
			}
			continue
		}
		if err != nil {
			return false, err
		}
		// POLLERR/POLLHUP count as ready: the caller issues the OS call
		// (or reads SO_ERROR) and observes the real failure there.
		return n > 0, nil
	}
}
