// SPDX-License-Identifier: Apache-2.0
// Source: github.com/krzymod/zopfli

package zopfli

// shortestPath runs a single forward cost-relaxation pass over
// data[start:end] under the given cost model, then traces the
// predecessor chain back into out. This is the core of C5: every byte
// position is a graph node, a literal or a match is an edge to the
// next position, and the total price is additive, so the lowest-cost
// path from start to end is exactly the optimal token sequence for
// that cost model (§4.5.2).
func shortestPath(mf *matchFinder, start, end int, model costModel, cancel *cancelFlag, out *lz77Store) {
	n := end - start
	if n == 0 {
		return
	}

	costs := make([]float64, n+1)
	// predLen[i]/predDist[i] describe the edge arriving at position
	// start+i on the cheapest known path; predDist==0 means a literal.
	predLen := make([]int, n+1)
	predDist := make([]int, n+1)
	for i := 1; i <= n; i++ {
		costs[i] = infCost
	}

	mf.warmup(start, end)

	for i := 0; i < n; i++ {
		pos := start + i
		base := costs[i]
		if base >= infCost {
			mf.advance(pos, end)
			continue
		}

		litCost := base + model.literalCost(mf.data[pos])
		if litCost < costs[i+1] {
			costs[i+1] = litCost
			predLen[i+1] = 1
			predDist[i+1] = 0
		}

		res := mf.findLongestMatch(pos, end, true)
		if res.length >= minMatch {
			maxLen := res.length
			if maxLen > n-i {
				maxLen = n - i
			}
			for length := minMatch; length <= maxLen; length++ {
				dist := res.dist
				if res.sublen != nil && length-minMatch < len(res.sublen) && res.sublen[length-minMatch] != 0 {
					dist = int(res.sublen[length-minMatch])
				}
				if dist == 0 {
					continue
				}
				c := base + model.matchCost(length, dist)
				if c < costs[i+length] {
					costs[i+length] = c
					predLen[i+length] = length
					predDist[i+length] = dist
				}
			}
		}

		mf.advance(pos, end)
	}

	// Traceback: walk predecessors from n back to 0, collecting tokens
	// in reverse, then append to out in forward order.
	type tok struct {
		length, dist, pos int
	}
	var toks []tok
	for i := n; i > 0; {
		l := predLen[i]
		if l == 0 {
			l = 1
		}
		toks = append(toks, tok{length: l, dist: predDist[i], pos: start + i - l})
		i -= l
	}
	for i := len(toks) - 1; i >= 0; i-- {
		t := toks[i]
		if t.dist == 0 {
			out.appendLiteral(mf.data[t.pos], t.pos)
		} else {
			out.appendMatch(uint16(t.length), uint16(t.dist), t.pos)
		}
	}
}

const infCost = 1e30

// optimalFixed runs a single shortest-path pass under the fixed
// Huffman cost model. Its only caller is estimateRangeCost, which uses
// it to price candidate ranges during block splitting; a block's final
// type is chosen from the encoding costs of optimal's tokens instead
// (§4.1, §4.6.1).
func optimalFixed(mf *matchFinder, start, end int, cancel *cancelFlag) *lz77Store {
	out := newLZ77Store()
	shortestPath(mf, start, end, fixedCostModel{}, cancel, out)
	return out
}

// optimal is the iterative refinement loop (§4.5.4): seed with greedy,
// then repeatedly derive a statistics cost model from the previous
// iteration's token histogram, re-run shortestPath, and keep the
// smallest result seen, stopping after opts.NumIterations or
// opts.MaxFailIterations consecutive non-improving iterations,
// whichever comes first. One RNG per call perturbs the copied
// histogram from the second iteration on, so the search doesn't stall
// at the first local optimum.
func optimal(mf *matchFinder, start, end int, opts *Options, cancel *cancelFlag) *lz77Store {
	seed := newLZ77Store()
	greedy(newMatchFinder(mf.data, opts, nil), start, end, opts, seed)

	best := seed
	bestCost := realBitCost(seed, opts)

	rng := newRandGen(opts)
	failStreak := 0

	for iter := 1; iter <= opts.NumIterations; iter++ {
		if cancel.requested() {
			break
		}

		llCounts := append([]uint32(nil), best.llCounts...)
		dCounts := append([]uint32(nil), best.dCounts...)
		if iter > 1 {
			rng.perturbCounts(llCounts, opts.StatImportance)
			rng.perturbCounts(dCounts, opts.StatImportance)
		}
		model := newStatsCostModel(llCounts, dCounts)

		candidate := newLZ77Store()
		cacheForIter := newMatchCache(end-start, opts.MaxCacheMemory)
		shortestPath(newMatchFinder(mf.data, opts, cacheForIter), start, end, model, cancel, candidate)

		// Acceptance is decided on the candidate's actual compressed bit
		// count (stored/fixed/dynamic, whichever is cheapest), not on the
		// statsCostModel estimate used to steer the search — that model
		// changes shape every iteration (fresh histogram, fresh RNG
		// perturbation), so comparing two iterations' estimated costs
		// under two different models would not be a meaningful
		// improvement test (§4.5.4).
		cost := realBitCost(candidate, opts)
		if cost < bestCost {
			bestCost = cost
			best = candidate
			failStreak = 0
		} else {
			failStreak++
		}

		reportProgress(opts, start, iter, int(bestCost))

		if opts.MaxFailIterations > 0 && failStreak >= opts.MaxFailIterations {
			break
		}
	}

	return best
}

// realBitCost prices an entire candidate token store as a single block
// would actually be emitted: the minimum of its stored/fixed/dynamic
// encodings (the same decision emitBlock makes), giving a stable,
// model-independent yardstick for comparing candidates from different
// iterations against each other.
func realBitCost(s *lz77Store, opts *Options) float64 {
	storedCost, fixedCost, dynamicCost, _, _, _ := blockEncodingCosts(s, 0, s.size(), opts)
	cost := storedCost
	if fixedCost < cost {
		cost = fixedCost
	}
	if dynamicCost < cost {
		cost = dynamicCost
	}
	return cost
}

// estimateCost sums the model's price for every token already in s,
// used to compare candidate token sequences without re-running the
// shortest-path search.
func estimateCost(s *lz77Store, model costModel) float64 {
	var total float64
	for i, l := range s.litlens {
		if s.dists[i] == 0 {
			total += model.literalCost(byte(l))
		} else {
			total += model.matchCost(int(l), int(s.dists[i]))
		}
	}
	return total
}
