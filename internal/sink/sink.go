// Package sink defines the boundary to the downstream strategy layer and
// provides console and Kafka implementations. Strategy logic itself lives
// outside this repository; sinks only deliver.
package sink

import (
	"context"

	"github.com/bhanukaranwal/Quantum-Arb/internal/core"
)

// FrameSink receives the link-layer tuple for each captured frame. The
// frame's payload handle is only valid for the duration of the call.
// A non-nil error marks the frame as rejected; capture continues regardless.
type FrameSink interface {
	OnFrame(f core.Frame) error
}

// TickSink receives indicator outputs, one per input sample. Unlike frame
// delivery, tick delivery may cross a network, so it carries a context.
type TickSink interface {
	OnTick(ctx context.Context, t core.Tick) error
	// Close flushes anything buffered and releases the sink.
	Close() error
}

// FrameSinkFunc adapts a function to the FrameSink interface.
type FrameSinkFunc func(f core.Frame) error

func (fn FrameSinkFunc) OnFrame(f core.Frame) error { return fn(f) }
