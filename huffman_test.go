// SPDX-License-Identifier: Apache-2.0
// Source: github.com/krzymod/zopfli

package zopfli

import "testing"

func TestBuildHuffmanTree_RespectsLengthLimit(t *testing.T) {
	// A skewed histogram (powers of two counts) is the classic case
	// that makes an unbounded Huffman tree exceed 15 bits deep.
	counts := make([]uint32, 32)
	counts[0] = 1
	for i := 1; i < len(counts); i++ {
		counts[i] = counts[i-1] * 2
	}
	tree := buildHuffmanTree(counts, maxBitLength, false)
	for sym, l := range tree.lengths {
		if int(l) > maxBitLength {
			t.Fatalf("symbol %d: length %d exceeds limit %d", sym, l, maxBitLength)
		}
	}
}

func TestBuildHuffmanTree_SingleSymbol(t *testing.T) {
	counts := make([]uint32, 8)
	counts[3] = 100
	tree := buildHuffmanTree(counts, maxBitLength, false)
	if tree.lengths[3] == 0 {
		t.Fatal("the only nonzero symbol must get a nonzero code length")
	}
}

func TestAssignCodes_PrefixFree(t *testing.T) {
	lengths := []uint8{2, 2, 3, 3, 3, 3, 0}
	codes := assignCodes(lengths)

	type cw struct {
		code uint32
		len  uint8
	}
	var words []cw
	for sym, l := range lengths {
		if l == 0 {
			continue
		}
		words = append(words, cw{code: codes[sym], len: l})
	}

	for i := range words {
		for j := range words {
			if i == j {
				continue
			}
			a, b := words[i], words[j]
			minLen := a.len
			if b.len < minLen {
				minLen = b.len
			}
			if a.len != b.len && a.code>>(a.len-minLen) == b.code>>(b.len-minLen) {
				t.Fatalf("code %d (%b, len %d) is a prefix of code %d (%b, len %d)", i, a.code, a.len, j, b.code, b.len)
			}
			if a.len == b.len && a.code == b.code {
				t.Fatalf("codes %d and %d collide: both %b (len %d)", i, j, a.code, a.len)
			}
		}
	}
}

func TestPatchDistanceCodesForBuggyDecoders_EnsuresTwoCodes(t *testing.T) {
	tree := huffmanTree{lengths: make([]uint8, numDSymbols)}
	tree.lengths[5] = 3
	patchDistanceCodesForBuggyDecoders(&tree)

	count := 0
	for _, l := range tree.lengths {
		if l != 0 {
			count++
		}
	}
	if count < 2 {
		t.Fatalf("expected at least 2 nonzero-length distance codes after patch, got %d", count)
	}
}
