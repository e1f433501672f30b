// SPDX-License-Identifier: Apache-2.0
// Source: github.com/krzymod/zopfli

package zopfli

import "sort"

// maxBitLength is DEFLATE's hard cap on a single Huffman code's length
// (RFC 1951 §3.2.7: 15 bits for literal/length and distance codes).
const maxBitLength = 15

// huffmanTree is a built, length-limited canonical Huffman code: for
// each symbol, a bit length and (once assigned) a codeword.
type huffmanTree struct {
	lengths []uint8
	codes   []uint32
}

// buildHuffmanTree constructs a length-limited canonical code for the
// given symbol histogram via package-merge (coin-collector's problem),
// the same algorithm Larmore & Hirschberg describe and that
// deflate.c's dynamic-length search assumes as its building block.
// Unlike a plain Huffman-tree-then-truncate approach, package-merge is
// optimal under the length limit rather than merely close to it.
// revCounts reverses the tie-break order among equal-weight symbols
// (highest symbol index first instead of lowest); by default ties are
// broken by ascending symbol index, so which symbol among equals ends
// up on the shallower side of a length boundary is a free choice
// deflate.c's own dynamic-length search explores both ways of (§4.4,
// §6 Options.RevCounts).
func buildHuffmanTree(counts []uint32, maxLength int, revCounts bool) huffmanTree {
	n := len(counts)
	lengths := make([]uint8, n)

	type leaf struct {
		symbol int
		weight uint64
	}
	var leaves []leaf
	for i, c := range counts {
		if c > 0 {
			leaves = append(leaves, leaf{symbol: i, weight: uint64(c)})
		}
	}

	switch len(leaves) {
	case 0:
		return huffmanTree{lengths: lengths}
	case 1:
		lengths[leaves[0].symbol] = 1
		return huffmanTree{lengths: lengths}
	}

	sort.Slice(leaves, func(i, j int) bool {
		if leaves[i].weight != leaves[j].weight {
			return leaves[i].weight < leaves[j].weight
		}
		if revCounts {
			return leaves[i].symbol > leaves[j].symbol
		}
		return leaves[i].symbol < leaves[j].symbol
	})

	// Package-merge: at each of maxLength levels, "packages" are formed
	// by pairing adjacent items (sorted by weight) from the previous
	// level's list merged with the original leaves, then the cheapest
	// 2*(len(leaves)-1) items across all levels determine each leaf's
	// bit length (how many levels it survives into).
	type item struct {
		weight uint64
		// symbols contributing to this item, used only at the base level;
		// packages reference their two children's symbol sets by index.
		syms []int
	}

	base := make([]item, len(leaves))
	for i, l := range leaves {
		base[i] = item{weight: l.weight, syms: []int{l.symbol}}
	}

	lists := make([][]item, maxLength)
	lists[0] = base

	for level := 1; level < maxLength; level++ {
		prev := lists[level-1]
		var packaged []item
		for i := 0; i+1 < len(prev); i += 2 {
			merged := append(append([]int(nil), prev[i].syms...), prev[i+1].syms...)
			packaged = append(packaged, item{weight: prev[i].weight + prev[i+1].weight, syms: merged})
		}
		merged := append(append([]item(nil), packaged...), base...)
		// SliceStable so ties inherit the base list's revCounts ordering
		// instead of an arbitrary one reshuffled at every level.
		sort.SliceStable(merged, func(i, j int) bool { return merged[i].weight < merged[j].weight })
		lists[level] = merged
	}

	take := 2 * (len(leaves) - 1)
	final := lists[maxLength-1]
	if take > len(final) {
		take = len(final)
	}

	symCount := make(map[int]int, len(leaves))
	for _, it := range final[:take] {
		for _, s := range it.syms {
			symCount[s]++
		}
	}
	for _, l := range leaves {
		depth := symCount[l.symbol]
		if depth < 1 {
			depth = 1
		}
		if depth > maxLength {
			depth = maxLength
		}
		lengths[l.symbol] = uint8(depth)
	}

	return huffmanTree{lengths: lengths}
}

// assignCodes fills in canonical codewords from bit lengths, following
// RFC 1951 §3.2.2's algorithm: symbols are assigned codes in order of
// (length, symbol index), each length's first code one more than the
// previous length's last code, shifted left.
func assignCodes(lengths []uint8) []uint32 {
	codes := make([]uint32, len(lengths))

	var blCount [maxBitLength + 1]int
	for _, l := range lengths {
		if l > 0 {
			blCount[l]++
		}
	}

	var nextCode [maxBitLength + 1]uint32
	var code uint32
	for bits := 1; bits <= maxBitLength; bits++ {
		code = (code + uint32(blCount[bits-1])) << 1
		nextCode[bits] = code
	}

	for sym, l := range lengths {
		if l == 0 {
			continue
		}
		codes[sym] = nextCode[l]
		nextCode[l]++
	}

	return codes
}

// buildCanonicalHuffman is the public entry point combining
// buildHuffmanTree and assignCodes, optionally with RLE-friendly
// histogram smoothing applied beforehand (§4.4).
func buildCanonicalHuffman(counts []uint32, maxLength int, opts *Options) huffmanTree {
	smoothed := append([]uint32(nil), counts...)
	if opts.UseBrotli {
		smoothHistogramBrotli(smoothed)
	} else {
		smoothHistogramStandard(smoothed)
	}

	t := buildHuffmanTree(smoothed, maxLength, opts.RevCounts)
	t.codes = assignCodes(t.lengths)
	return t
}
