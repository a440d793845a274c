package ring

import (
	"errors"
	"fmt"
	"io"

	"github.com/google/gopacket/pcap"

	"github.com/bhanukaranwal/Quantum-Arb/internal/mempool"
)

// FileRing replays a recorded pcap capture through the Ring interface, so the
// capture engine can be driven from historical market data instead of a live
// NIC. Replay is as-fast-as-possible; pacing belongs to the consumer.
type FileRing struct {
	handle *pcap.Handle
	pool   *mempool.Pool
	drops  uint64
}

// OpenFile opens a pcap file for replay.
func OpenFile(path string, pool *mempool.Pool) (*FileRing, error) {
	handle, err := pcap.OpenOffline(path)
	if err != nil {
		return nil, fmt.Errorf("open capture file %s: %w", path, err)
	}
	return &FileRing{handle: handle, pool: pool}, nil
}

// PollBurst reads up to len(out) recorded frames into pool buffers. Once the
// file is exhausted it returns io.EOF alongside any frames read in the same
// call.
func (r *FileRing) PollBurst(out []*mempool.Buffer) (int, error) {
	n := 0
	for n < len(out) {
		data, _, err := r.handle.ReadPacketData()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return n, io.EOF
			}
			return n, err
		}

		buf, err := r.pool.Acquire()
		if err != nil {
			r.drops++
			return n, nil
		}
		copied := copy(buf.Data(), data)
		buf.SetLength(copied)
		out[n] = buf
		n++
	}
	return n, nil
}

// Drops reports frames lost to pool exhaustion during replay.
func (r *FileRing) Drops() uint64 { return r.drops }

// Close releases the pcap handle.
func (r *FileRing) Close() error {
	r.handle.Close()
	return nil
}
