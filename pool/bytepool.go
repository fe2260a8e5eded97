// File: pool/bytepool.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

// Package pool provides a fixed-size byte buffer pool for stream pump
// loops, so steady-state copying allocates nothing.
package pool

import "sync"

// BytePool hands out buffers of a fixed size.
type BytePool struct {
	size int
	p    sync.Pool
}

// NewBytePool creates a pool of size-byte buffers.
func NewBytePool(size int) *BytePool {
	bp := &BytePool{size: size}
	bp.p.New = func() any {
		return make([]byte, size)
	}
	return bp
}

// GetBuffer returns a buffer from the pool.
func (b *BytePool) GetBuffer() []byte {
	return b.p.Get().([]byte)
}

// PutBuffer returns a buffer to the pool. Buffers of a foreign size are
// dropped rather than poisoning the pool.
func (b *BytePool) PutBuffer(buf []byte) {
	if cap(buf) < b.size {
		return
	}
	b.p.Put(buf[:b.size])
}

// Size reports the buffer size this pool hands out.
func (b *BytePool) Size() int {
	return b.size
}
