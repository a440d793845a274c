// Package indicator implements fixed-window streaming indicators over
// unsigned integer price streams. Every update runs in O(1) time against a
// fixed memory footprint, one output per input.
package indicator

import (
	"fmt"

	"github.com/bhanukaranwal/Quantum-Arb/internal/core"
)

// DefaultWindow is the window size used when none is configured.
const DefaultWindow = 10

// SMA is a simple moving average over the last N samples: a circular sample
// buffer, a running sum, and a cursor marking the next slot to overwrite.
//
// The running sum equals the sum of the window contents after every update.
// Before N samples have arrived the average is taken over zero-initialised
// slots, so early outputs are biased low; that matches the upstream hardware
// semantics and is deliberately not masked here. Callers that only want true
// N-sample averages use UpdateWarm and drop outputs until Warm reports true.
//
// Overflow is a parameterisation contract: choose the sample magnitude so
// that max price * N fits in uint64. The engine does not check at runtime.
//
// An SMA instance belongs to a single logical stream. Updates must be applied
// in arrival order by one goroutine; independent instruments each get their
// own instance.
type SMA struct {
	samples []uint64
	sum     uint64
	cursor  int
	seen    uint64
}

// NewSMA creates an SMA with a window of n samples, all initialised to zero.
func NewSMA(n int) (*SMA, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: window size must be positive, got %d", core.ErrConfigInvalid, n)
	}
	return &SMA{samples: make([]uint64, n)}, nil
}

// Update folds one sample into the window and returns the current average
// with truncating unsigned division.
//
// The eviction read runs unconditionally on every call. Do not add an
// is-the-window-full branch around it: downstream relies on each update
// costing the same regardless of sample history.
func (s *SMA) Update(x uint64) uint64 {
	evicted := s.samples[s.cursor]
	s.sum = s.sum - evicted + x
	s.samples[s.cursor] = x
	if s.cursor == len(s.samples)-1 {
		s.cursor = 0
	} else {
		s.cursor++
	}
	s.seen++
	return s.sum / uint64(len(s.samples))
}

// UpdateWarm is Update plus a flag reporting whether the window has received
// at least N samples, so callers can suppress the biased pre-warm outputs.
func (s *SMA) UpdateWarm(x uint64) (uint64, bool) {
	v := s.Update(x)
	return v, s.Warm()
}

// Warm reports whether at least N samples have been folded in.
func (s *SMA) Warm() bool { return s.seen >= uint64(len(s.samples)) }

// Window returns the configured window size N.
func (s *SMA) Window() int { return len(s.samples) }
