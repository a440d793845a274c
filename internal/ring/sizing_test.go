package ring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeRingGeometryAlignment(t *testing.T) {
	const pageSize = 4096

	cases := []struct {
		name     string
		budgetMB int
		snapLen  int
	}{
		{"typical", 64, 2048},
		{"small snap", 16, 128},
		{"jumbo snap", 128, 9000},
		{"tiny budget", 1, 1500},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			frameSize, blockSize, numBlocks, err := computeRingGeometry(tc.budgetMB, tc.snapLen, pageSize)
			require.NoError(t, err)

			assert.Equal(t, 0, frameSize%16, "frame size aligned to TPACKET_ALIGNMENT")
			assert.GreaterOrEqual(t, frameSize, tc.snapLen, "frame holds header plus snapped packet")
			assert.Equal(t, 0, blockSize%pageSize, "block size is a page multiple")
			assert.Equal(t, 0, blockSize%frameSize, "block holds whole frames")
			assert.GreaterOrEqual(t, numBlocks, 1)

			// The mapped region stays near the requested budget.
			budget := tc.budgetMB * 1024 * 1024
			assert.LessOrEqual(t, blockSize*numBlocks, budget+blockSize)
		})
	}
}

func TestComputeRingGeometryRejectsBadInput(t *testing.T) {
	_, _, _, err := computeRingGeometry(0, 2048, 4096)
	assert.Error(t, err)

	_, _, _, err = computeRingGeometry(64, 0, 4096)
	assert.Error(t, err)

	_, _, _, err = computeRingGeometry(64, 2048, 1000) // not 16-aligned
	assert.Error(t, err)
}
