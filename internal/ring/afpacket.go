package ring

import (
	"errors"
	"fmt"
	"os"

	"github.com/google/gopacket/afpacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcap"
	"golang.org/x/net/bpf"

	"github.com/bhanukaranwal/Quantum-Arb/internal/mempool"
)

// AFPacketConfig describes a live AF_PACKET receive ring.
type AFPacketConfig struct {
	Device       string
	SnapLen      int
	BufferSizeMB int
	TimeoutMs    int
	FanoutID     uint16
	BPFFilter    string
}

// AFPacketRing drains frames from a TPACKET_V3 memory-mapped ring. The kernel
// fills the mapped blocks directly, so the only per-frame work on our side is
// one copy into a pool buffer.
type AFPacketRing struct {
	handle *afpacket.TPacket
	pool   *mempool.Pool
	drops  uint64
}

// OpenAFPacket maps a receive ring on the configured device. Any failure here
// is an initialisation error: the caller cannot proceed without the ring and
// should treat it as fatal.
func OpenAFPacket(cfg AFPacketConfig, pool *mempool.Pool) (*AFPacketRing, error) {
	frameSize, blockSize, numBlocks, err := computeRingGeometry(cfg.BufferSizeMB, cfg.SnapLen, os.Getpagesize())
	if err != nil {
		return nil, fmt.Errorf("ring geometry for %s: %w", cfg.Device, err)
	}

	tp, err := afpacket.NewTPacket(
		afpacket.OptInterface(cfg.Device),
		afpacket.OptFrameSize(frameSize),
		afpacket.OptBlockSize(blockSize),
		afpacket.OptNumBlocks(numBlocks),
		afpacket.OptPollTimeout(cfg.TimeoutMs),
		afpacket.SocketRaw,
		afpacket.TPacketVersion3,
	)
	if err != nil {
		return nil, fmt.Errorf("open AF_PACKET ring on %s: %w", cfg.Device, err)
	}

	if cfg.FanoutID > 0 {
		if err := tp.SetFanout(afpacket.FanoutHashWithDefrag, cfg.FanoutID); err != nil {
			tp.Close()
			return nil, fmt.Errorf("set fanout on %s: %w", cfg.Device, err)
		}
	}

	if cfg.BPFFilter != "" {
		pcapBPF, err := pcap.CompileBPFFilter(layers.LinkTypeEthernet, frameSize, cfg.BPFFilter)
		if err != nil {
			tp.Close()
			return nil, fmt.Errorf("compile BPF filter %q: %w", cfg.BPFFilter, err)
		}
		rawBPF := make([]bpf.RawInstruction, len(pcapBPF))
		for i, inst := range pcapBPF {
			rawBPF[i] = bpf.RawInstruction{
				Op: inst.Code,
				Jt: inst.Jt,
				Jf: inst.Jf,
				K:  inst.K,
			}
		}
		if err := tp.SetBPF(rawBPF); err != nil {
			tp.Close()
			return nil, fmt.Errorf("attach BPF filter on %s: %w", cfg.Device, err)
		}
	}

	return &AFPacketRing{handle: tp, pool: pool}, nil
}

// PollBurst copies up to len(out) frames from the mapped ring into pool
// buffers. An empty ring surfaces as the poll timeout and yields a zero
// burst; the caller just polls again.
func (r *AFPacketRing) PollBurst(out []*mempool.Buffer) (int, error) {
	n := 0
	for n < len(out) {
		data, _, err := r.handle.ZeroCopyReadPacketData()
		if err != nil {
			if errors.Is(err, afpacket.ErrTimeout) {
				return n, nil
			}
			return n, err
		}

		buf, err := r.pool.Acquire()
		if err != nil {
			// The frame was already consumed from the mapped ring; with no
			// buffer to land it in, it is a drop.
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

// Drops reports frames lost to pool exhaustion since the ring was opened.
func (r *AFPacketRing) Drops() uint64 { return r.drops }

// Close stops the socket and unmaps the ring.
func (r *AFPacketRing) Close() error {
	r.handle.Close()
	return nil
}
