// Package core defines core data structures with zero external dependencies.
package core

// Frame is the link-layer view of one captured frame, handed to a FrameSink.
// Payload is a zero-copy handle into pool-owned memory and is only valid for
// the duration of the sink call; sinks that need the bytes longer must copy.
type Frame struct {
	SrcMAC  [6]byte
	DstMAC  [6]byte
	Length  int    // full frame length in bytes, including the header
	Payload []byte // bytes after the Ethernet header, zero-copy slice
}

// Tick pairs one price sample with the indicator value it produced.
type Tick struct {
	Instrument string `json:"instrument"`
	Seq        uint64 `json:"seq"`
	Price      uint64 `json:"price"`
	SMA        uint64 `json:"sma"`
	Warm       bool   `json:"warm"`
}
