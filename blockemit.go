// SPDX-License-Identifier: Apache-2.0
// Source: github.com/krzymod/zopfli

package zopfli

// writeBlockHeader writes the 3-bit block header: BFINAL then 2-bit
// BTYPE, per RFC 1951 §3.2.3.
func writeBlockHeader(w *bitWriter, isLast bool, bt blockType) {
	if isLast {
		w.writeBit(1)
	} else {
		w.writeBit(0)
	}
	w.writeBits(uint32(bt), 2)
}

// writeStoredBlock emits a BTYPE=00 block containing raw (uncompressed)
// bytes, aligning to a byte boundary first as RFC 1951 §3.2.4 requires.
func writeStoredBlock(w *bitWriter, data []byte, isLast bool) {
	writeBlockHeader(w, isLast, blockStored)
	w.align()
	n := uint16(len(data))
	w.out = append(w.out, byte(n), byte(n>>8), byte(^n), byte(^n>>8))
	w.out = append(w.out, data...)
}

// writeStoredRange emits tokens [from,to) of store as a stored block by
// re-expanding matches back into their literal bytes. Used only when
// the split/cost search decides a stored block beats both fixed and
// dynamic Huffman for this range (typically already-incompressible
// data, where fixed/dynamic overhead exceeds the 00-block's 5-byte tax).
func writeStoredRange(w *bitWriter, store *lz77Store, from, to int, isLast bool) {
	var raw []byte
	for i := from; i < to; i++ {
		if store.dists[i] == 0 {
			raw = append(raw, byte(store.litlens[i]))
			continue
		}
		length := int(store.litlens[i])
		dist := int(store.dists[i])
		start := len(raw) - dist
		for j := 0; j < length; j++ {
			raw = append(raw, raw[start+j])
		}
	}
	writeStoredBlock(w, raw, isLast)
}

// writeFixedBlock emits tokens [from,to) of store using RFC 1951's
// hardwired fixed Huffman tree (BTYPE=01), with no header cost at all.
func writeFixedBlock(w *bitWriter, store *lz77Store, from, to int, isLast bool) {
	writeBlockHeader(w, isLast, blockFixed)
	llLen, dLen := fixedLLLengths(), fixedDLengths()
	llCodes := assignCodes(llLen[:])
	dCodes := assignCodes(dLen[:])
	writeTokens(w, store, from, to, llLen[:], llCodes, dLen[:], dCodes)
	w.writeHuffmanBits(llCodes[endOfBlockSymbol], int(llLen[endOfBlockSymbol]))
}

// writeDynamicBlock emits tokens [from,to) using a custom canonical
// Huffman tree described by a dynamic header (BTYPE=10), built from
// ll/d trees already chosen by bestDynamicEncoding.
func writeDynamicBlock(w *bitWriter, store *lz77Store, from, to int, isLast bool, llTree, dTree huffmanTree, variant headerVariant) {
	writeBlockHeader(w, isLast, blockDynamic)
	writeDynamicHeader(w, llTree, dTree, variant)
	writeTokens(w, store, from, to, llTree.lengths, llTree.codes, dTree.lengths, dTree.codes)
	w.writeHuffmanBits(llTree.codes[endOfBlockSymbol], int(llTree.lengths[endOfBlockSymbol]))
}

// writeTokens emits the literal/match body of a block under the given
// trees; the end-of-block symbol is written separately by the caller
// so fixed and dynamic paths share this helper.
func writeTokens(w *bitWriter, store *lz77Store, from, to int, llLen []uint8, llCodes []uint32, dLen []uint8, dCodes []uint32) {
	for i := from; i < to; i++ {
		if store.dists[i] == 0 {
			sym := store.litlens[i]
			w.writeHuffmanBits(llCodes[sym], int(llLen[sym]))
			continue
		}
		_, lextra, lvalue := lengthSymbol(int(store.litlens[i]))
		_, dextra, dvalue := distanceSymbol(int(store.dists[i]))
		lsym := store.llSymbol[i]
		dsym := store.dSymbol[i]
		w.writeHuffmanBits(llCodes[lsym], int(llLen[lsym]))
		w.writeBits(uint32(lvalue), lextra)
		w.writeHuffmanBits(dCodes[dsym], int(dLen[dsym]))
		w.writeBits(uint32(dvalue), dextra)
	}
}

// headerVariant is one of the 8 (or, with Options.OptimizeHuffmanHeader,
// 32) variant indices bestDynamicEncoding tries for encoding the
// ll+distance code-length sequence, after deflate.c's AddDynamicTree.
// Only fuseB changes the encoding (see buildTreeHeader); patchDistanceCodes
// and fuseA are set from the index but never read, and unused distance
// codes are always patched for decoders that reject a header with zero
// distance codes (§4.6.2, §9 "Buggy decoder compatibility").
type headerVariant struct {
	patchDistanceCodes bool
	fuseA, fuseB       bool
}

// bestDynamicEncoding builds a ll+distance canonical Huffman pair from
// counts and picks the header variant (among 8, or 32 if
// opts.OptimizeHuffmanHeader; only v&4 alters the header, see
// headerVariant) that minimizes total header+body bits,
// returning that cost alongside the trees so the caller can compare it
// against the fixed/stored alternatives without rebuilding anything.
func bestDynamicEncoding(llCounts, dCounts []uint32, opts *Options) (cost float64, llTree, dTree huffmanTree, variant headerVariant) {
	llTree = buildCanonicalHuffman(llCounts, maxBitLength, opts)
	dTree = buildCanonicalHuffman(dCounts, maxBitLength, opts)
	patchDistanceCodesForBuggyDecoders(&dTree)

	bodyBits := bodyCost(llCounts, dCounts, llTree, dTree)

	variants := 8
	if opts.OptimizeHuffmanHeader {
		variants = 32
	}

	bestCost := infCost
	var best headerVariant
	for v := 0; v < variants; v++ {
		cand := headerVariant{
			patchDistanceCodes: v&1 != 0,
			fuseA:              v&2 != 0,
			fuseB:              v&4 != 0,
		}
		headerBits := float64(treeHeaderSize(llTree, dTree, cand))
		total := headerBits + bodyBits
		if total < bestCost {
			bestCost = total
			best = cand
		}
	}

	return bestCost, llTree, dTree, best
}

// bodyCost sums, over a histogram, sym-count * code-length for both
// trees.
func bodyCost(llCounts, dCounts []uint32, llTree, dTree huffmanTree) float64 {
	var bits float64
	for sym, c := range llCounts {
		if c == 0 {
			continue
		}
		bits += float64(c) * float64(llTree.lengths[sym])
		if sym >= 257 {
			_, extra, _ := lengthSymbol(int(lengthBase[sym-257]))
			bits += float64(c) * float64(extra)
		}
	}
	for sym, c := range dCounts {
		if c == 0 {
			continue
		}
		bits += float64(c) * float64(dTree.lengths[sym])
		bits += float64(c) * float64(distanceExtraBits[sym])
	}
	return bits
}

// patchDistanceCodesForBuggyDecoders ensures the distance tree always
// has at least two codes with nonzero length, even when the data uses
// one distance symbol or none: RFC 1951 technically allows a
// single-code (or empty) distance tree, but some widely deployed
// decoders reject it outright, so the reference encoder always pads to
// two codes. Mirrors deflate.c's PatchDistanceCodesForBuggyDecoders.
func patchDistanceCodesForBuggyDecoders(dTree *huffmanTree) {
	nonzero := 0
	last := -1
	for i, l := range dTree.lengths {
		if l != 0 {
			nonzero++
			last = i
		}
	}
	if nonzero >= 2 {
		return
	}
	if nonzero == 0 {
		dTree.lengths[0] = 1
		dTree.lengths[1] = 1
	} else if last == 0 {
		dTree.lengths[1] = 1
	} else {
		dTree.lengths[0] = 1
	}
	dTree.codes = assignCodes(dTree.lengths)
}
