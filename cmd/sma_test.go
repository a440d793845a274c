package cmd

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bhanukaranwal/Quantum-Arb/internal/config"
	"github.com/bhanukaranwal/Quantum-Arb/internal/core"
)

type captureTicks struct {
	ticks []core.Tick
}

func (c *captureTicks) OnTick(_ context.Context, t core.Tick) error {
	c.ticks = append(c.ticks, t)
	return nil
}

func (c *captureTicks) Close() error { return nil }

func indicatorConfig(window int, emitPreWarm bool) *config.Config {
	return &config.Config{
		Indicator: config.IndicatorConfig{
			WindowSize:  window,
			EmitPreWarm: emitPreWarm,
		},
	}
}

func TestRunIndicatorEmitsOneTickPerSample(t *testing.T) {
	in := strings.NewReader("1\n2\n3\n4\n5\n6\n7\n8\n9\n10\n20\n")
	out := &captureTicks{}

	err := runIndicator(context.Background(), indicatorConfig(10, true), in, out)
	require.NoError(t, err)

	require.Len(t, out.ticks, 11)
	assert.Equal(t, uint64(5), out.ticks[9].SMA, "floor(55/10) after ten samples")
	assert.True(t, out.ticks[9].Warm)
	assert.Equal(t, uint64(7), out.ticks[10].SMA, "floor(74/10) after eviction")
	assert.False(t, out.ticks[0].Warm)
}

func TestRunIndicatorSuppressesPreWarm(t *testing.T) {
	in := strings.NewReader("100\n100\n100\n100\n")
	out := &captureTicks{}

	err := runIndicator(context.Background(), indicatorConfig(3, false), in, out)
	require.NoError(t, err)

	require.Len(t, out.ticks, 2, "first N-1 outputs suppressed")
	for _, tick := range out.ticks {
		assert.True(t, tick.Warm)
		assert.Equal(t, uint64(100), tick.SMA)
	}
}

func TestRunIndicatorPerInstrumentWindows(t *testing.T) {
	in := strings.NewReader("AAA,10\nBBB,1000\nAAA,30\nBBB,2000\n")
	out := &captureTicks{}

	err := runIndicator(context.Background(), indicatorConfig(2, true), in, out)
	require.NoError(t, err)

	require.Len(t, out.ticks, 4)
	assert.Equal(t, "AAA", out.ticks[2].Instrument)
	assert.Equal(t, uint64(20), out.ticks[2].SMA)
	assert.Equal(t, "BBB", out.ticks[3].Instrument)
	assert.Equal(t, uint64(1500), out.ticks[3].SMA)
}

func TestRunIndicatorSkipsMalformedLines(t *testing.T) {
	in := strings.NewReader("# header comment\n10\nnot-a-price\n\n30\n-5\n")
	out := &captureTicks{}

	err := runIndicator(context.Background(), indicatorConfig(2, true), in, out)
	require.NoError(t, err)

	require.Len(t, out.ticks, 2, "malformed and negative samples are skipped")
	assert.Equal(t, uint64(20), out.ticks[1].SMA)
}
