// SPDX-License-Identifier: Apache-2.0
// Source: github.com/krzymod/zopfli

package zopfli

// smoothHistogramStandard nudges zero and near-zero counts upward
// before Huffman code construction, the same trick
// original_source/src/zopfli/deflate.c's OptimizeHuffmanForRle performs:
// a histogram with many isolated zero-runs produces a dynamic Huffman
// header that RLE-codes poorly (every run boundary needs its own
// repeat-length code), so nonzero counts "bleed" across short zero
// gaps to make the header itself cheaper to encode, at a negligible
// cost to the body's optimality.
func smoothHistogramStandard(counts []uint32) {
	length := len(counts)
	for length > 0 && counts[length-1] == 0 {
		length--
	}
	if length == 0 {
		return
	}

	goodForRLE := make([]uint32, length)

	// Pass 1: mark runs of length >= 5 zeros, or runs of length >= 7 of
	// a single repeated nonzero value, as "already RLE-friendly" so
	// they're excluded from smoothing.
	var symbol uint32
	var stride int
	for i := 0; i <= length; i++ {
		if i == length || counts[i] != symbol {
			if symbol == 0 && stride >= 5 {
				for k := i - stride; k < i; k++ {
					goodForRLE[k] = 1
				}
			} else if stride >= 7 {
				for k := i - stride; k < i; k++ {
					goodForRLE[k] = 1
				}
			}
			stride = 1
			if i < length {
				symbol = counts[i]
			}
		} else {
			stride++
		}
	}

	// Pass 2: for runs not already good, set every position to the
	// ceiling of the run's average — smoothing the run toward a single
	// repeated value without changing its total weight enough to matter.
	limit := uint32(1) << 31
	runStart := 0
	for runStart < length {
		if goodForRLE[runStart] != 0 {
			runStart++
			continue
		}
		runEnd := runStart
		var sum uint64
		for runEnd < length && goodForRLE[runEnd] == 0 {
			sum += uint64(counts[runEnd])
			runEnd++
		}
		n := runEnd - runStart
		if n == 0 {
			break
		}
		avg := uint32((sum + uint64(n) - 1) / uint64(n))
		if avg > limit {
			avg = limit
		}
		for k := runStart; k < runEnd; k++ {
			if counts[k] != 0 || avg > 0 {
				counts[k] = avg
			}
		}
		runStart = runEnd
	}
}

// smoothHistogramBrotli is the alternative smoothing strategy
// deflate.c's OptimizeHuffmanForRleBrotli implements: it takes a single
// moving average of radius 2 (five counts wide, narrower at the edges)
// over a 24.8 fixed-point copy of the counts, then rounds back to
// integers, keeping every nonzero count at least 1.
func smoothHistogramBrotli(counts []uint32) {
	length := len(counts)
	for length > 0 && counts[length-1] == 0 {
		length--
	}
	if length == 0 {
		return
	}

	const fixedPointShift = 8
	fixed := make([]uint64, length)
	for i, c := range counts[:length] {
		fixed[i] = uint64(c) << fixedPointShift
	}

	windowRadius := 2
	smoothed := make([]uint64, length)
	for i := 0; i < length; i++ {
		lo := i - windowRadius
		if lo < 0 {
			lo = 0
		}
		hi := i + windowRadius
		if hi >= length {
			hi = length - 1
		}
		var sum uint64
		for k := lo; k <= hi; k++ {
			sum += fixed[k]
		}
		smoothed[i] = sum / uint64(hi-lo+1)
	}

	for i, v := range smoothed {
		rounded := (v + (1 << (fixedPointShift - 1))) >> fixedPointShift
		if counts[i] != 0 && rounded == 0 {
			rounded = 1
		}
		counts[i] = uint32(rounded)
	}
}
