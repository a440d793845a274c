// Package mempool implements a fixed-capacity pool of fixed-size packet
// buffers. All buffer memory is carved out of one contiguous arena allocated
// up front, so the hot path never touches the allocator and neighbouring
// buffers stay cache-local.
package mempool

import (
	"fmt"

	"github.com/bhanukaranwal/Quantum-Arb/internal/core"
)

// Buffer is one fixed-size slot of the pool arena. A buffer is either free in
// the pool or checked out to exactly one consumer; Release returns it for
// immediate reuse.
type Buffer struct {
	data   []byte // full slot, len == pool buffer size
	length int    // bytes of the current frame
	index  int    // slot position in the arena
}

// Data returns the full writable slot, for filling by a ring.
func (b *Buffer) Data() []byte { return b.data }

// Bytes returns the current frame contents.
func (b *Buffer) Bytes() []byte { return b.data[:b.length] }

// SetLength records the frame length after the slot has been filled.
func (b *Buffer) SetLength(n int) {
	if n > len(b.data) {
		n = len(b.data)
	}
	b.length = n
}

// Pool hands out buffers without allocating and without blocking. It is
// single-consumer by construction: exactly one polling goroutine touches a
// given pool, so no locking is needed. Introducing additional consumers
// requires a sharded or lock-free redesign, not a mutex here.
type Pool struct {
	arena       []byte
	buffers     []Buffer
	free        []int // stack of free slot indices
	outstanding []bool
	bufSize     int
}

// New creates a pool of capacity buffers of bufSize bytes each, backed by a
// single contiguous region of capacity*bufSize bytes.
func New(capacity, bufSize int) (*Pool, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: pool capacity must be positive, got %d", core.ErrConfigInvalid, capacity)
	}
	if bufSize <= 0 {
		return nil, fmt.Errorf("%w: pool buffer size must be positive, got %d", core.ErrConfigInvalid, bufSize)
	}

	p := &Pool{
		arena:       make([]byte, capacity*bufSize),
		buffers:     make([]Buffer, capacity),
		free:        make([]int, capacity),
		outstanding: make([]bool, capacity),
		bufSize:     bufSize,
	}
	for i := range p.buffers {
		p.buffers[i] = Buffer{
			data:  p.arena[i*bufSize : (i+1)*bufSize],
			index: i,
		}
		p.free[i] = capacity - 1 - i
	}
	return p, nil
}

// Acquire returns a free buffer or core.ErrPoolExhausted when none remain.
// It never blocks and never allocates.
func (p *Pool) Acquire() (*Buffer, error) {
	if len(p.free) == 0 {
		return nil, core.ErrPoolExhausted
	}
	idx := p.free[len(p.free)-1]
	p.free = p.free[:len(p.free)-1]
	p.outstanding[idx] = true
	return &p.buffers[idx], nil
}

// Release returns a buffer to the free set. Releasing a buffer that is not
// outstanding is a programming error, not a recoverable condition, so it
// panics rather than corrupting the free set.
func (p *Pool) Release(b *Buffer) {
	if b == nil || b.index < 0 || b.index >= len(p.buffers) || &p.buffers[b.index] != b {
		panic("mempool: release of buffer not owned by this pool")
	}
	if !p.outstanding[b.index] {
		panic(fmt.Sprintf("mempool: double release of buffer %d", b.index))
	}
	p.outstanding[b.index] = false
	b.length = 0
	p.free = append(p.free, b.index)
}

// Free reports the number of buffers currently in the free set.
func (p *Pool) Free() int { return len(p.free) }

// Cap reports the total pool capacity.
func (p *Pool) Cap() int { return len(p.buffers) }

// BufferSize reports the fixed per-buffer size in bytes.
func (p *Pool) BufferSize() int { return p.bufSize }
