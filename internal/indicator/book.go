package indicator

// Book tracks one independently owned SMA per instrument. Instruments share
// no mutable state, so multiplying instruments never couples their windows.
// Like SMA itself, a Book is driven by a single goroutine.
type Book struct {
	window      int
	emitPreWarm bool
	instruments map[string]*SMA
}

// NewBook creates an empty book. emitPreWarm selects whether Update reports
// the biased pre-warm averages or suppresses outputs until the window is warm.
func NewBook(window int, emitPreWarm bool) (*Book, error) {
	if _, err := NewSMA(window); err != nil {
		return nil, err
	}
	return &Book{
		window:      window,
		emitPreWarm: emitPreWarm,
		instruments: make(map[string]*SMA),
	}, nil
}

// Result is the outcome of folding one sample into a window.
type Result struct {
	Value uint64 // current average for the instrument's window
	Warm  bool   // window has received at least N samples
	Emit  bool   // output should be emitted under the pre-warm policy
}

// Update folds a price sample into the instrument's window, creating the
// window on first sight of the instrument.
func (b *Book) Update(instrument string, price uint64) Result {
	s, ok := b.instruments[instrument]
	if !ok {
		s, _ = NewSMA(b.window)
		b.instruments[instrument] = s
	}
	v, warm := s.UpdateWarm(price)
	return Result{Value: v, Warm: warm, Emit: warm || b.emitPreWarm}
}

// Len reports the number of tracked instruments.
func (b *Book) Len() int { return len(b.instruments) }
