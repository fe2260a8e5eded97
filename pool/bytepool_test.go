// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package pool

import "testing"

func TestBytePoolBufferSize(t *testing.T) {
	bp := NewBytePool(128)
	b := bp.GetBuffer()
	if len(b) != 128 {
		t.Errorf("buffer length = %d, want 128", len(b))
	}
	bp.PutBuffer(b)
	b2 := bp.GetBuffer()
	if len(b2) != 128 {
		t.Errorf("recycled buffer length = %d, want 128", len(b2))
	}
}

func TestBytePoolRejectsForeignBuffers(t *testing.T) {
	bp := NewBytePool(256)
	// Undersized buffers are dropped, never handed back out short.
	bp.PutBuffer(make([]byte, 16))
	if got := len(bp.GetBuffer()); got != 256 {
		t.Errorf("buffer length = %d, want 256", got)
	}
}

func TestBytePoolSize(t *testing.T) {
	if got := NewBytePool(64).Size(); got != 64 {
		t.Errorf("Size() = %d, want 64", got)
	}
}
