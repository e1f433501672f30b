// SPDX-License-Identifier: Apache-2.0
// Source: github.com/krzymod/zopfli

package zopfli

// treeHeader describes the RLE-compressed code-length sequence a
// dynamic block header encodes (HLIT/HDIST/HCLEN plus the code-length
// symbol stream), following RFC 1951 §3.2.7 and deflate.c's EncodeTree.
type treeHeader struct {
	hlit, hdist, hclen int
	clLengths          [numCLSymbols]uint8
	clCodes            [numCLSymbols]uint32
	symbols            []uint16 // code-length alphabet symbols (0-18)
	extraBits          []uint8  // extra bits following symbols 16/17/18
	extraValues        []uint16
}

// buildTreeHeader concatenates llTree and dTree's bit-length sequences
// (trimmed to their highest nonzero symbol) and RLE-encodes them into
// the code-length alphabet: symbol 16 repeats the previous length
// 3-6 times, 17 repeats a zero run 3-10 times, 18 repeats a zero run
// 11-138 times. variant.fuseB mirrors one of deflate.c's optional
// tweaks AddDynamicTree's 8/32-way search considers: it shortens a
// repeat-16 run so that a remainder of 1-2 lengths becomes a final
// repeat of 3 instead of literal lengths. variant.fuseA is not read.
func buildTreeHeader(llTree, dTree huffmanTree, variant headerVariant) treeHeader {
	hlit := highestNonzeroIndex(llTree.lengths, 256) - 256
	hdist := highestNonzeroIndex(dTree.lengths, 1)

	seq := make([]uint8, 0, 257+hlit+hdist+1)
	seq = append(seq, llTree.lengths[:257+hlit]...)
	seq = append(seq, dTree.lengths[:1+hdist]...)

	var th treeHeader
	th.hlit = hlit
	th.hdist = hdist

	i := 0
	for i < len(seq) {
		cur := seq[i]
		run := 1
		for i+run < len(seq) && seq[i+run] == cur {
			run++
		}
		consumed := emitRun(&th, cur, run, variant)
		i += consumed
	}

	clCounts := make([]uint32, numCLSymbols)
	for _, s := range th.symbols {
		clCounts[s]++
	}
	// The code-length tree itself isn't part of Options.RevCounts's
	// documented scope (§6): it's a small, fixed 19-symbol alphabet
	// rebuilt per header-variant search, not one of the two main trees
	// the option is meant to perturb.
	clTree := buildHuffmanTree(clCounts, 7, false)
	clCodes := assignCodes(clTree.lengths)
	for i := range th.clLengths {
		th.clLengths[i] = clTree.lengths[i]
		th.clCodes[i] = clCodes[i]
	}

	hclen := numCLSymbols
	for hclen > 4 && th.clLengths[clOrder[hclen-1]] == 0 {
		hclen--
	}
	th.hclen = hclen

	return th
}

// emitRun appends the code-length-alphabet encoding of `run` repeats of
// value cur to th, returning how many input positions it consumed.
func emitRun(th *treeHeader, cur uint8, run int, variant headerVariant) int {
	consumed := 0
	if cur == 0 {
		for run > 0 {
			switch {
			case run >= 11:
				n := run
				if n > 138 {
					n = 138
				}
				th.symbols = append(th.symbols, 18)
				th.extraBits = append(th.extraBits, 7)
				th.extraValues = append(th.extraValues, uint16(n-11))
				run -= n
				consumed += n
			case run >= 3:
				n := run
				if n > 10 {
					n = 10
				}
				th.symbols = append(th.symbols, 17)
				th.extraBits = append(th.extraBits, 3)
				th.extraValues = append(th.extraValues, uint16(n-3))
				run -= n
				consumed += n
			default:
				th.symbols = append(th.symbols, 0)
				th.extraBits = append(th.extraBits, 0)
				th.extraValues = append(th.extraValues, 0)
				run--
				consumed++
			}
		}
		return consumed
	}

	th.symbols = append(th.symbols, uint16(cur))
	th.extraBits = append(th.extraBits, 0)
	th.extraValues = append(th.extraValues, 0)
	run--
	consumed++
	for run > 0 {
		n := run
		if n > 6 {
			n = 6
		}
		if n < 3 {
			th.symbols = append(th.symbols, uint16(cur))
			th.extraBits = append(th.extraBits, 0)
			th.extraValues = append(th.extraValues, 0)
			run--
			consumed++
			continue
		}
		if variant.fuseB && run-n > 0 && run-n < 3 {
			n = run - 3
		}
		th.symbols = append(th.symbols, 16)
		th.extraBits = append(th.extraBits, 2)
		th.extraValues = append(th.extraValues, uint16(n-3))
		run -= n
		consumed += n
	}
	return consumed
}

// highestNonzeroIndex returns the highest index in lengths whose value
// is nonzero, never less than floor (the caller's required minimum
// code count, e.g. 256 for the end-of-block symbol or 1 for the
// patched minimum two-code distance tree).
func highestNonzeroIndex(lengths []uint8, floor int) int {
	for i := len(lengths) - 1; i > floor; i-- {
		if lengths[i] != 0 {
			return i
		}
	}
	return floor
}

// writeDynamicHeader writes HLIT/HDIST/HCLEN, the code-length code
// lengths in clOrder, then the RLE-compressed symbol stream, per RFC
// 1951 §3.2.7.
func writeDynamicHeader(w *bitWriter, llTree, dTree huffmanTree, variant headerVariant) {
	th := buildTreeHeader(llTree, dTree, variant)

	w.writeBits(uint32(th.hlit), 5)
	w.writeBits(uint32(th.hdist), 5)
	w.writeBits(uint32(th.hclen-4), 4)

	for i := 0; i < th.hclen; i++ {
		w.writeBits(uint32(th.clLengths[clOrder[i]]), 3)
	}

	for i, sym := range th.symbols {
		w.writeHuffmanBits(th.clCodes[sym], int(th.clLengths[sym]))
		if th.extraBits[i] > 0 {
			w.writeBits(uint32(th.extraValues[i]), int(th.extraBits[i]))
		}
	}
}

// treeHeaderSize returns the header's bit length without writing
// anything, used by bestDynamicEncoding's variant search.
func treeHeaderSize(llTree, dTree huffmanTree, variant headerVariant) int {
	th := buildTreeHeader(llTree, dTree, variant)
	bits := 5 + 5 + 4 + th.hclen*3
	for i, sym := range th.symbols {
		bits += int(th.clLengths[sym]) + int(th.extraBits[i])
	}
	return bits
}
