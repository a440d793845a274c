package capture

import (
	"github.com/bhanukaranwal/Quantum-Arb/internal/core"
)

const ethernetHeaderLen = 14

// parseFrame reads the Ethernet header fields the strategy layer needs:
// destination MAC, source MAC, and the frame length. Anything above the link
// layer is left to downstream consumers, so the payload is handed over as an
// opaque slice.
func parseFrame(data []byte) (core.Frame, error) {
	if len(data) < ethernetHeaderLen {
		return core.Frame{}, core.ErrFrameTooShort
	}

	var f core.Frame
	copy(f.DstMAC[:], data[0:6])
	copy(f.SrcMAC[:], data[6:12])
	f.Length = len(data)
	f.Payload = data[ethernetHeaderLen:]
	return f, nil
}
