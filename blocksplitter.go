// SPDX-License-Identifier: Apache-2.0
// Source: github.com/krzymod/zopfli

package zopfli

import "sort"

// splitCostFunc estimates the total bit cost of encoding [start,end) as
// a single block, used by findMinimum to score candidate split points
// without running the full optimizer on every candidate.
type splitCostFunc func(start, end int) float64

// findMinimumRec recursively searches for the split point in [start,end)
// that minimizes cost(start,split)+cost(split,end), sampling
// opts.FindMinimumRec candidates per level rather than every byte
// offset — the same amortization original_source/src/zopfli/blocksplitter.c's
// FindMinimum performs, trading exactness for O(n log n) instead of
// O(n^2) total work across the whole recursive split.
func findMinimumRec(cost splitCostFunc, start, end, samples int) int {
	if end-start < 2*minMatch {
		return -1
	}
	if samples >= end-start {
		best := -1
		var bestCost float64 = infCost
		for p := start + 1; p < end; p++ {
			c := cost(start, p) + cost(p, end)
			if c < bestCost {
				bestCost = c
				best = p
			}
		}
		return best
	}

	lo, hi := start, end
	for hi-lo > 1 {
		step := (hi - lo) / (samples + 1)
		if step < 1 {
			step = 1
		}
		type sample struct {
			pos  int
			cost float64
		}
		var pts []sample
		for p := lo + step; p < hi; p += step {
			pts = append(pts, sample{pos: p, cost: cost(lo, p) + cost(p, hi)})
		}
		if len(pts) == 0 {
			break
		}
		sort.Slice(pts, func(i, j int) bool { return pts[i].cost < pts[j].cost })
		best := pts[0].pos
		newLo := best - step
		if newLo < lo {
			newLo = lo
		}
		newHi := best + step
		if newHi > hi {
			newHi = hi
		}
		if newLo == lo && newHi == hi {
			return best
		}
		lo, hi = newLo, newHi
	}
	return lo + 1
}

// splitPoints recursively partitions [0,length) into at most
// opts.BlockSplittingMax pieces (0 meaning unlimited), stopping when a
// candidate split's combined cost is not meaningfully better than
// leaving the range whole. Used for both the "split first" (raw bytes)
// and "split last" (already-tokenized store) strategies; the caller
// supplies the appropriate cost function (§4.6.3).
func splitPoints(cost splitCostFunc, length int, opts *Options) []int {
	if !opts.BlockSplitting || length == 0 {
		return nil
	}

	var points []int
	type task struct{ start, end int }
	queue := []task{{0, length}}

	maxBlocks := opts.BlockSplittingMax
	for len(queue) > 0 {
		if maxBlocks > 0 && len(points)+1 >= maxBlocks {
			break
		}
		t := queue[0]
		queue = queue[1:]

		split := findMinimumRec(cost, t.start, t.end, opts.FindMinimumRec)
		if split <= t.start || split >= t.end {
			continue
		}

		whole := cost(t.start, t.end)
		split3 := cost(t.start, split) + cost(split, t.end)
		if split3 >= whole {
			continue
		}

		points = append(points, split)
		queue = append(queue, task{t.start, split}, task{split, t.end})
	}

	sort.Ints(points)
	return points
}
