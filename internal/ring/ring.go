// Package ring provides receive-ring implementations for the capture engine:
// a live AF_PACKET ring and a pcap file replay ring behind one interface.
package ring

import "github.com/bhanukaranwal/Quantum-Arb/internal/mempool"

// Ring is the capture engine's view of a receive queue. Frames are delivered
// strictly in arrival order; a poll on an empty ring returns zero immediately
// rather than blocking.
//
// A ring has exactly one consumer. Concurrent PollBurst calls on the same
// ring are undefined.
type Ring interface {
	// PollBurst drains up to len(out) newly arrived frames, each copied into
	// a buffer acquired from the ring's pool, and returns the number drained.
	// Ownership of the filled buffers passes to the caller, which must
	// release every one back to the pool. A replay ring returns io.EOF once
	// the recorded stream is exhausted; any frames drained in the same call
	// are still valid.
	PollBurst(out []*mempool.Buffer) (int, error)

	// Close stops the underlying device and then releases its resources.
	// The ring must not be polled after Close.
	Close() error
}
