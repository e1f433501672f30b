// SPDX-License-Identifier: Apache-2.0
// Source: github.com/krzymod/zopfli

package zopfli

import "fmt"

// Deflate compresses the whole of data into a single DEFLATE stream
// under opts (nil selects DefaultOptions). It is the top-level entry
// point for callers that don't need restore points, multi-threading
// across blocks, or a container wrapper.
func Deflate(data []byte, opts *Options) ([]byte, error) {
	return DeflatePart(data, 0, len(data), opts)
}

// DeflatePart compresses data[start:end] as one master block and
// returns a complete DEFLATE stream: its last block always has BFINAL
// set, and the output is padded to a byte boundary. Matches may refer
// back to data before start (within the 32 KiB window), so when start
// is above 0 the result decodes correctly only with that preceding data
// already in the decoder's window.
func DeflatePart(data []byte, start, end int, opts *Options) (out []byte, err error) {
	return deflatePart(data, start, end, true, opts)
}

// deflatePart is DeflatePart generalized with an explicit isLastPart,
// so a caller splitting one logical stream across several independent
// calls (the thread pool in threadpool.go) can set BFINAL only on the
// actual final part instead of on every part.
func deflatePart(data []byte, start, end int, isLastPart bool, opts *Options) (out []byte, err error) {
	o := normalized(opts)
	if start < 0 || end > len(data) || start > end {
		return nil, fmt.Errorf("zopfli: %w: invalid range [%d,%d) over %d bytes", ErrInternal, start, end, len(data))
	}

	// An allocation failure inside the hash/cache/store setup (out of
	// memory for a very large master block) surfaces as a panic from
	// make(); that's the one fatal category (§7.1), so it unwinds here
	// into a normal returned error rather than propagating further.
	defer func() {
		if r := recover(); r != nil {
			out = nil
			err = fmt.Errorf("zopfli: %w: %v", ErrOutOfMemory, r)
		}
	}()

	if o.TryAll {
		return tryAllVariants(data, start, end, isLastPart, o)
	}

	w := newBitWriter()
	if e := deflateRange(w, data, start, end, isLastPart, o); e != nil {
		return nil, e
	}
	w.align()
	return w.bytes(), nil
}

// tryAllVariants runs deflateRange under all 16 combinations of
// {OptimizeHuffmanHeader, RevCounts, UseBrotli, LazyMatching} (§6
// Options.TryAll) and keeps the smallest resulting stream, the way
// deflate.c's ZopfliCompress with numiterations try-everything mode
// brute-forces the same four-way option space. The choice is made once
// for the whole range [start,end), not separately for each block.
func tryAllVariants(data []byte, start, end int, isLastPart bool, o *Options) ([]byte, error) {
	var best []byte
	for mask := 0; mask < 16; mask++ {
		variant := *o
		variant.TryAll = false
		variant.OptimizeHuffmanHeader = mask&1 != 0
		variant.RevCounts = mask&2 != 0
		variant.UseBrotli = mask&4 != 0
		variant.LazyMatching = mask&8 != 0

		w := newBitWriter()
		if err := deflateRange(w, data, start, end, isLastPart, &variant); err != nil {
			return nil, err
		}
		w.align()
		out := w.bytes()
		if best == nil || len(out) < len(best) {
			best = out
		}
	}
	return best, nil
}

// deflateRange runs the C6 pipeline over one master block: build a
// matchFinder + cache, run the split-first strategy if enabled,
// optimize each resulting piece, optionally re-split the combined
// token stream ("split last", keeping the new partition only when it
// is cheaper; the tokens themselves are not re-optimized after the
// re-split), then emit every final piece as its own DEFLATE block,
// with isLastPart controlling the final block's BFINAL bit.
func deflateRange(w *bitWriter, data []byte, start, end int, isLastPart bool, opts *Options) error {
	if end == start {
		if isLastPart {
			writeFixedBlock(w, newLZ77Store(), 0, 0, true)
		}
		return nil
	}

	cache := newMatchCache(end-start, opts.MaxCacheMemory)
	mf := newMatchFinder(data, opts, cache)

	splitAt := splitPoints(func(a, b int) float64 {
		return estimateRangeCost(mf, start+a, start+b, opts)
	}, end-start, opts)

	bounds := boundariesFromSplits(splitAt, end-start)

	full := newLZ77Store()
	pieceRanges := make([][2]int, 0, len(bounds)-1)
	for i := 0; i+1 < len(bounds); i++ {
		pieceStart := start + bounds[i]
		pieceEnd := start + bounds[i+1]
		piece := optimal(mf, pieceStart, pieceEnd, opts, opts.interrupted)
		full.appendRange(piece, 0, piece.size())
		pieceRanges = append(pieceRanges, [2]int{full.size() - piece.size(), full.size()})
	}

	if !opts.NoBlockSplittingLast && opts.BlockSplitting {
		bestCost := partitionCost(full, pieceRanges, opts)
		for p := 0; p <= opts.Pass; p++ {
			resplit := splitPoints(func(a, b int) float64 {
				return estimateStoreCost(full, a, b, opts)
			}, full.size(), opts)
			candidate := tokenBoundariesFromSplits(resplit, full.size())
			candidateCost := partitionCost(full, candidate, opts)
			if candidateCost < bestCost {
				pieceRanges = candidate
				bestCost = candidateCost
			}
		}
	}

	for i, r := range pieceRanges {
		isLast := isLastPart && i == len(pieceRanges)-1
		emitBlock(w, full, r[0], r[1], isLast, opts)
	}

	return nil
}

// boundariesFromSplits turns a sorted list of split offsets within
// [0,length) into a full list of [0, p1, p2, ..., length] boundaries.
func boundariesFromSplits(splits []int, length int) []int {
	b := make([]int, 0, len(splits)+2)
	b = append(b, 0)
	b = append(b, splits...)
	b = append(b, length)
	return b
}

// tokenBoundariesFromSplits is boundariesFromSplits specialized to
// produce [start,end) token-index ranges instead of a flat offset list.
func tokenBoundariesFromSplits(splits []int, length int) [][2]int {
	b := boundariesFromSplits(splits, length)
	out := make([][2]int, 0, len(b)-1)
	for i := 0; i+1 < len(b); i++ {
		out = append(out, [2]int{b[i], b[i+1]})
	}
	return out
}

// estimateRangeCost prices a raw byte range by running optimalFixed
// over it and summing fixed-tree costs — cheap enough to call O(log n)
// times during block-split search without dominating total runtime.
func estimateRangeCost(mf *matchFinder, start, end int, opts *Options) float64 {
	store := optimalFixed(mf, start, end, opts.interrupted)
	return estimateCost(store, fixedCostModel{})
}

// estimateStoreCost prices an already-tokenized sub-range [from,to) of
// store by building a fresh stats cost model from that sub-range's own
// histogram, used by the split-last pass.
func estimateStoreCost(store *lz77Store, from, to int, opts *Options) float64 {
	var ll [numLLSymbols]uint32
	var d [numDSymbols]uint32
	for i := from; i < to; i++ {
		if store.dists[i] == 0 {
			ll[store.litlens[i]]++
		} else {
			ll[store.llSymbol[i]]++
			d[store.dSymbol[i]]++
		}
	}
	model := newStatsCostModel(ll[:], d[:])
	var total float64
	for i := from; i < to; i++ {
		if store.dists[i] == 0 {
			total += model.literalCost(byte(store.litlens[i]))
		} else {
			total += model.matchCost(int(store.litlens[i]), int(store.dists[i]))
		}
	}
	return total
}

// blockEncodingCosts computes the stored/fixed/dynamic bit costs for
// tokens [from,to) of store, shared by emitBlock (which also needs the
// dynamic tree it priced) and partitionCost (which only needs the
// minimum to compare candidate splits against each other).
func blockEncodingCosts(store *lz77Store, from, to int, opts *Options) (storedCost, fixedCost, dynamicCost float64, llTree, dTree huffmanTree, variant headerVariant) {
	var ll [numLLSymbols]uint32
	var d [numDSymbols]uint32
	var rawLen int
	for i := from; i < to; i++ {
		if store.dists[i] == 0 {
			ll[store.litlens[i]]++
			rawLen++
		} else {
			ll[store.llSymbol[i]]++
			d[store.dSymbol[i]]++
			rawLen += int(store.litlens[i])
		}
	}
	ll[endOfBlockSymbol]++

	dynamicCost, llTree, dTree, variant = bestDynamicEncoding(ll[:], d[:], opts)
	fixedCost = fixedBlockCost(store, from, to)
	storedCost = float64((rawLen+4)*8) + 3
	return
}

// emitBlock picks the cheapest of stored/fixed/dynamic encodings for
// tokens [from,to) of store and writes it, per §4.6.1's
// AddLZ77BlockAutoType equivalent.
func emitBlock(w *bitWriter, store *lz77Store, from, to int, isLast bool, opts *Options) {
	storedCost, fixedCost, dynamicCost, llTree, dTree, variant := blockEncodingCosts(store, from, to, opts)

	switch {
	case storedCost <= fixedCost && storedCost <= dynamicCost:
		writeStoredRange(w, store, from, to, isLast)
	case fixedCost <= dynamicCost:
		writeFixedBlock(w, store, from, to, isLast)
	default:
		writeDynamicBlock(w, store, from, to, isLast, llTree, dTree, variant)
	}
}

// partitionCost sums each range's minimum stored/fixed/dynamic cost,
// giving a model-independent total the split-last pass (§4.6.3 step 4)
// uses to accept a re-split only on strict improvement over the
// previous partition.
func partitionCost(store *lz77Store, ranges [][2]int, opts *Options) float64 {
	var total float64
	for _, r := range ranges {
		storedCost, fixedCost, dynamicCost, _, _, _ := blockEncodingCosts(store, r[0], r[1], opts)
		cost := storedCost
		if fixedCost < cost {
			cost = fixedCost
		}
		if dynamicCost < cost {
			cost = dynamicCost
		}
		total += cost
	}
	return total
}

func fixedBlockCost(store *lz77Store, from, to int) float64 {
	llLen, dLen := fixedLLLengths(), fixedDLengths()
	var bits float64 = 3
	for i := from; i < to; i++ {
		if store.dists[i] == 0 {
			lsym := store.litlens[i]
			bits += float64(llLen[lsym])
		} else {
			lsym, lextra, _ := lengthSymbol(int(store.litlens[i]))
			dsym, dextra, _ := distanceSymbol(int(store.dists[i]))
			bits += float64(llLen[lsym]) + float64(lextra) + float64(dLen[dsym]) + float64(dextra)
		}
	}
	bits += float64(llLen[endOfBlockSymbol])
	return bits
}
