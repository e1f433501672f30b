// SPDX-License-Identifier: Apache-2.0
// Source: github.com/krzymod/zopfli

package zopfli

import "math"

// costModel assigns a bit cost to a literal or a length/distance match.
// The optimizer calls it on every edge of the shortest-path graph, so
// implementations must be allocation-free and branch-light.
type costModel interface {
	literalCost(b byte) float64
	matchCost(length, dist int) float64
}

// fixedCostModel prices tokens as if they'll be emitted with the RFC
// 1951 fixed Huffman tree (§4.5.1, used for optimal_fixed and as the
// first iteration's seed before any real statistics exist).
type fixedCostModel struct{}

func (fixedCostModel) literalCost(b byte) float64 {
	if b <= 143 {
		return 8
	}
	return 9
}

func (fixedCostModel) matchCost(length, dist int) float64 {
	lsym, lextra, _ := lengthSymbol(length)
	dsym, dextra, _ := distanceSymbol(dist)
	litBits := 7.0
	if lsym >= 280 {
		litBits = 8
	}
	_ = dsym
	return litBits + float64(lextra) + 5 + float64(dextra)
}

// statsCostModel prices tokens from a smoothed symbol-frequency
// histogram, following the classic Shannon-entropy estimate
// -log2(p) used throughout Zopfli's cost.c. Frequencies of 0 are
// treated as extremely unlikely rather than impossible, so every
// symbol always has a finite (if large) price — this is what lets the
// optimizer route around new symbols it hasn't seen yet.
type statsCostModel struct {
	llBits [numLLSymbols]float64
	dBits  [numDSymbols]float64
}

func newStatsCostModel(llCounts []uint32, dCounts []uint32) *statsCostModel {
	m := &statsCostModel{}
	fillSymbolBits(m.llBits[:], llCounts)
	fillSymbolBits(m.dBits[:], dCounts)
	return m
}

// fillSymbolBits converts a histogram into approximate per-symbol bit
// costs: bits(i) = -log2(count[i] / total), with an escape cost for
// symbols that never occurred.
func fillSymbolBits(bits []float64, counts []uint32) {
	var total uint64
	for _, c := range counts {
		total += uint64(c)
	}
	if total == 0 {
		for i := range bits {
			bits[i] = math.Log2(float64(len(bits)))
		}
		return
	}
	logTotal := math.Log2(float64(total))
	const unseenPenalty = 1e-2
	for i, c := range counts {
		if c == 0 {
			bits[i] = logTotal + -math.Log2(unseenPenalty/float64(total))
			continue
		}
		bits[i] = logTotal - math.Log2(float64(c))
	}
}

func (m *statsCostModel) literalCost(b byte) float64 {
	return m.llBits[b]
}

func (m *statsCostModel) matchCost(length, dist int) float64 {
	lsym, lextra, _ := lengthSymbol(length)
	dsym, dextra, _ := distanceSymbol(dist)
	return m.llBits[lsym] + float64(lextra) + m.dBits[dsym] + float64(dextra)
}
