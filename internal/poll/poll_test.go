//go:build linux

// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package poll

import (
	"testing"
	"time"

	"golang.org/x/sys/unix"
)

func makePipe(t *testing.T) (r, w int) {
	t.Helper()
	fds := make([]int, 2)
	if err := unix.Pipe(fds); err != nil {
		t.Fatalf("pipe: %v", err)
	}
	t.Cleanup(func() {
		unix.Close(fds[0])
		unix.Close(fds[1])
	})
	return fds[0], fds[1]
}

func TestWaitReadableWithPendingData(t *testing.T) {
	r, w := makePipe(t)
	if _, err := unix.Write(w, []byte("x")); err != nil {
		t.Fatalf("write: %v", err)
	}
	ready, err := Wait(r, In, 100*time.Millisecond)
	if err != nil {
		t.Fatalf("wait: %v", err)
	}
	if !ready {
		t.Error("expected read readiness with pending data")
	}
}

func TestWaitBoundedSliceExpires(t *testing.T) {
	r, _ := makePipe(t)
	start := time.Now()
	ready, err := Wait(r, In, 50*time.Millisecond)
	if err != nil {
		t.Fatalf("wait: %v", err)
	}
	if ready {
		t.Error("empty pipe reported readable")
	}
	if elapsed := time.Since(start); elapsed < 40*time.Millisecond {
		t.Errorf("bounded wait returned after %v, expected roughly the slice", elapsed)
	}
}

func TestWaitSubMillisecondTimeoutStillWaits(t *testing.T) {
	r, _ := makePipe(t)
	start := time.Now()
	ready, err := Wait(r, In, 200*time.Microsecond)
	if err != nil {
		t.Fatalf("wait: %v", err)
	}
	if ready {
		t.Error("empty pipe reported readable")
	}
	// poll(2) rounds up, so the wait must consume at least a millisecond
	// instead of degenerating into a zero-timeout spin.
	if elapsed := time.Since(start); elapsed < time.Millisecond {
		t.Errorf("sub-millisecond timeout returned after %v, want >= 1ms", elapsed)
	}
}

func TestWaitWritable(t *testing.T) {
	_, w := makePipe(t)
	ready, err := Wait(w, Out, 100*time.Millisecond)
	if err != nil {
		t.Fatalf("wait: %v", err)
	}
	if !ready {
		t.Error("empty pipe write end should be writable")
	}
}
