package mempool

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bhanukaranwal/Quantum-Arb/internal/core"
)

func TestPoolAcquireReleaseCycle(t *testing.T) {
	p, err := New(8, 256)
	require.NoError(t, err)

	// Capacity rounds of acquire-then-release must never exhaust the pool.
	for i := 0; i < p.Cap(); i++ {
		buf, err := p.Acquire()
		require.NoError(t, err, "cycle %d", i)
		p.Release(buf)
	}
	assert.Equal(t, 8, p.Free())
}

func TestPoolExhaustion(t *testing.T) {
	p, err := New(4, 128)
	require.NoError(t, err)

	held := make([]*Buffer, 0, 4)
	for i := 0; i < 4; i++ {
		buf, err := p.Acquire()
		require.NoError(t, err)
		held = append(held, buf)
	}

	// The (capacity+1)-th outstanding acquire fails without blocking.
	_, err = p.Acquire()
	assert.ErrorIs(t, err, core.ErrPoolExhausted)
	assert.Equal(t, 0, p.Free())

	// Releasing one buffer makes it immediately reusable.
	p.Release(held[0])
	buf, err := p.Acquire()
	assert.NoError(t, err)
	assert.NotNil(t, buf)
}

func TestPoolDoubleReleasePanics(t *testing.T) {
	p, err := New(2, 64)
	require.NoError(t, err)

	buf, err := p.Acquire()
	require.NoError(t, err)
	p.Release(buf)

	assert.Panics(t, func() { p.Release(buf) })
}

func TestPoolForeignBufferPanics(t *testing.T) {
	p1, err := New(2, 64)
	require.NoError(t, err)
	p2, err := New(2, 64)
	require.NoError(t, err)

	buf, err := p2.Acquire()
	require.NoError(t, err)

	assert.Panics(t, func() { p1.Release(buf) })
}

func TestPoolBuffersAreContiguousAndFixedSize(t *testing.T) {
	const capacity, bufSize = 16, 512
	p, err := New(capacity, bufSize)
	require.NoError(t, err)

	held := make([]*Buffer, 0, capacity)
	for i := 0; i < capacity; i++ {
		buf, err := p.Acquire()
		require.NoError(t, err)
		assert.Equal(t, bufSize, len(buf.Data()))
		held = append(held, buf)
	}

	// Every slot is a distinct window into the same arena.
	seen := make(map[*byte]bool)
	for _, buf := range held {
		first := &buf.Data()[0]
		assert.False(t, seen[first], "buffers must not alias")
		seen[first] = true
	}

	for _, buf := range held {
		p.Release(buf)
	}
	assert.Equal(t, capacity, p.Free())
}

func TestPoolLengthClamp(t *testing.T) {
	p, err := New(1, 64)
	require.NoError(t, err)

	buf, err := p.Acquire()
	require.NoError(t, err)

	buf.SetLength(1024)
	assert.Equal(t, 64, len(buf.Bytes()))

	buf.SetLength(10)
	assert.Equal(t, 10, len(buf.Bytes()))
}

func TestPoolRejectsBadSizing(t *testing.T) {
	_, err := New(0, 64)
	assert.Error(t, err)

	_, err = New(8, 0)
	assert.Error(t, err)
}
