package indicator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSMAScenario(t *testing.T) {
	s, err := NewSMA(10)
	require.NoError(t, err)

	// Feed 1..10; after the tenth sample the window holds exactly 1..10.
	var out uint64
	for x := uint64(1); x <= 10; x++ {
		out = s.Update(x)
	}
	assert.Equal(t, uint64(5), out, "floor(55/10)")
	assert.True(t, s.Warm())

	// Eleventh sample evicts the 1: sum = 55 - 1 + 20 = 74.
	out = s.Update(20)
	assert.Equal(t, uint64(7), out, "floor(74/10)")
}

func TestSMAWarmMatchesLastNInputs(t *testing.T) {
	const n = 7
	s, err := NewSMA(n)
	require.NoError(t, err)

	inputs := []uint64{3, 9, 27, 81, 243, 729, 2187, 6561, 19683, 4, 12, 100, 7, 7, 7, 9999}
	for k, x := range inputs {
		out := s.Update(x)
		if k+1 < n {
			continue
		}
		var sum uint64
		for _, v := range inputs[k+1-n : k+1] {
			sum += v
		}
		assert.Equal(t, sum/n, out, "sample %d", k)
	}
}

func TestSMAConstantInputConverges(t *testing.T) {
	const v = uint64(150)
	s, err := NewSMA(10)
	require.NoError(t, err)

	var out uint64
	for i := 0; i < 10; i++ {
		out = s.Update(v)
	}
	assert.Equal(t, v, out, "constant input for N samples converges exactly")

	// And stays there.
	for i := 0; i < 25; i++ {
		assert.Equal(t, v, s.Update(v))
	}
}

func TestSMASumInvariant(t *testing.T) {
	s, err := NewSMA(5)
	require.NoError(t, err)

	inputs := []uint64{10, 0, 42, 42, 1, 999999, 5, 0, 0, 77, 3, 3, 3, 1 << 40}
	for k, x := range inputs {
		s.Update(x)

		// Recompute the sum independently from the window contents.
		var sum uint64
		for _, v := range s.samples {
			sum += v
		}
		if sum != s.sum {
			t.Fatalf("after sample %d: running sum %d != window sum %d", k, s.sum, sum)
		}
		if s.cursor < 0 || s.cursor >= len(s.samples) {
			t.Fatalf("after sample %d: cursor %d out of range", k, s.cursor)
		}
	}
}

func TestSMAPreWarmBias(t *testing.T) {
	// Before N samples the divisor is still N, so early averages are taken
	// over zero-initialised slots.
	s, err := NewSMA(4)
	require.NoError(t, err)

	assert.Equal(t, uint64(25), s.Update(100), "floor(100/4), three zero slots")
	assert.False(t, s.Warm())

	v, warm := s.UpdateWarm(100)
	assert.Equal(t, uint64(50), v)
	assert.False(t, warm)

	s.Update(100)
	v, warm = s.UpdateWarm(100)
	assert.Equal(t, uint64(100), v)
	assert.True(t, warm, "warm after exactly N samples")
}

func TestSMATruncatingDivision(t *testing.T) {
	s, err := NewSMA(3)
	require.NoError(t, err)

	s.Update(1)
	s.Update(1)
	out := s.Update(2)
	assert.Equal(t, uint64(1), out, "floor(4/3)")
}

func TestSMARejectsBadWindow(t *testing.T) {
	_, err := NewSMA(0)
	assert.Error(t, err)

	_, err = NewSMA(-3)
	assert.Error(t, err)
}

func TestBookIndependentInstruments(t *testing.T) {
	b, err := NewBook(2, true)
	require.NoError(t, err)

	b.Update("AAA", 10)
	res := b.Update("AAA", 30)
	assert.Equal(t, uint64(20), res.Value)
	assert.True(t, res.Warm)

	// A new instrument starts cold regardless of the first one's state.
	res = b.Update("BBB", 100)
	assert.Equal(t, uint64(50), res.Value)
	assert.False(t, res.Warm)
	assert.Equal(t, 2, b.Len())
}

func TestBookPreWarmPolicy(t *testing.T) {
	emit, err := NewBook(3, true)
	require.NoError(t, err)
	suppress, err := NewBook(3, false)
	require.NoError(t, err)

	for i, price := range []uint64{30, 30, 30} {
		re := emit.Update("X", price)
		rs := suppress.Update("X", price)

		assert.True(t, re.Emit, "emit policy always reports")
		warm := i == 2
		assert.Equal(t, warm, rs.Emit, "suppress policy reports only once warm")
		assert.Equal(t, re.Value, rs.Value, "policy changes emission, never the value")
	}
}
