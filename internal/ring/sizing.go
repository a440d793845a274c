package ring

import "fmt"

// AF_PACKET PACKET_MMAP alignment rules: frames align to TPACKET_ALIGNMENT,
// blocks are page-sized multiples, and each block holds a whole number of
// frames. computeRingGeometry derives a frame/block/count triple that honours
// those rules while keeping the mapped region close to the requested budget.
func computeRingGeometry(budgetMB, snapLen, pageSize int) (frameSize, blockSize, numBlocks int, err error) {
	const tpacketAlignment = 16
	const tpacketHdrLen = 52 // TPACKET3_HDRLEN, approximate
	const maxBlockSize = 4 * 1024 * 1024

	if budgetMB <= 0 {
		return 0, 0, 0, fmt.Errorf("ring buffer budget must be positive, got %dMB", budgetMB)
	}
	if snapLen <= 0 {
		return 0, 0, 0, fmt.Errorf("snap length must be positive, got %d", snapLen)
	}
	if pageSize <= 0 || pageSize%tpacketAlignment != 0 {
		return 0, 0, 0, fmt.Errorf("page size must be a positive multiple of %d, got %d", tpacketAlignment, pageSize)
	}

	budget := budgetMB * 1024 * 1024

	// Frame holds the TPACKET header plus the snapped packet, aligned up.
	frameSize = alignUp(tpacketHdrLen+snapLen, tpacketAlignment)

	// Smallest block satisfying both page and frame alignment is their LCM;
	// cap it at 4MB and fall back to page multiples when the LCM is huge.
	blockSize = lcm(pageSize, frameSize)
	if blockSize < pageSize {
		blockSize = pageSize
	}
	if blockSize < frameSize {
		blockSize = frameSize
	}
	if blockSize > maxBlockSize {
		blockSize = (maxBlockSize / pageSize) * pageSize
	}

	numBlocks = budget / blockSize
	if numBlocks < 1 {
		numBlocks = 1
	}

	if blockSize%frameSize != 0 {
		framesPerBlock := blockSize / frameSize
		if framesPerBlock < 1 {
			framesPerBlock = 1
		}
		blockSize = alignUp(framesPerBlock*frameSize, pageSize)
	}

	return frameSize, blockSize, numBlocks, nil
}

func alignUp(n, align int) int {
	return ((n + align - 1) / align) * align
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func lcm(a, b int) int {
	if a == 0 || b == 0 {
		return 0
	}
	return (a * b) / gcd(a, b)
}
