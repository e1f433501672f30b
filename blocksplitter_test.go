// SPDX-License-Identifier: Apache-2.0
// Source: github.com/krzymod/zopfli

package zopfli

import "testing"

func TestSplitPoints_DisabledReturnsNil(t *testing.T) {
	cost := func(a, b int) float64 { return float64(b - a) }
	pts := splitPoints(cost, 1000, &Options{BlockSplitting: false, FindMinimumRec: 9})
	if pts != nil {
		t.Fatalf("expected no split points when BlockSplitting is false, got %v", pts)
	}
}

func TestSplitPoints_RespectsMaxBlocks(t *testing.T) {
	// A cost function with a cheap two-region structure (left half
	// expensive, right half cheap) encourages repeated splitting.
	cost := func(a, b int) float64 {
		var sum float64
		for i := a; i < b; i++ {
			if i < 500 {
				sum += 3
			} else {
				sum += 0.1
			}
		}
		return sum
	}

	pts := splitPoints(cost, 1000, &Options{BlockSplitting: true, BlockSplittingMax: 3, FindMinimumRec: 9})
	if len(pts) > 2 {
		t.Fatalf("expected at most 2 split points for BlockSplittingMax=3, got %d: %v", len(pts), pts)
	}
}

func TestFindMinimumRec_FindsCheaperSplitPoint(t *testing.T) {
	// cost(a,b) = (b-a)^2; splitting near the midpoint always
	// beats the whole range for a convex cost function like this.
	cost := func(a, b int) float64 {
		d := float64(b - a)
		return d * d
	}
	split := findMinimumRec(cost, 0, 100, 9)
	if split <= 0 || split >= 100 {
		t.Fatalf("expected an interior split point, got %d", split)
	}
	whole := cost(0, 100)
	withSplit := cost(0, split) + cost(split, 100)
	if withSplit >= whole {
		t.Fatalf("chosen split %d did not reduce cost: whole=%f split=%f", split, whole, withSplit)
	}
}
