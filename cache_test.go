// SPDX-License-Identifier: Apache-2.0
// Source: github.com/krzymod/zopfli

package zopfli

import "testing"

func TestMatchCache_SublenRoundTrip(t *testing.T) {
	// dense[length-minMatch] = distance actually achievable at that length
	dense := []uint16{10, 10, 10, 5, 5, 3, 3, 3, 3, 1}
	triples := sublenToCache(dense, defaultCacheK)

	maxLen := len(dense) + minMatch - 1
	got := cacheToSublen(triples, maxLen)

	if len(got) != len(dense) {
		t.Fatalf("length mismatch: got %d want %d", len(got), len(dense))
	}
	for i := range dense {
		if got[i] != dense[i] {
			t.Fatalf("index %d: got %d want %d", i, got[i], dense[i])
		}
	}
}

func TestMatchCache_DegradesGracefullyUnderMemoryPressure(t *testing.T) {
	c := newMatchCache(1000, 1) // tiny budget forces k down to 1
	if c.k != 1 {
		t.Fatalf("expected k=1 under tight memory budget, got %d", c.k)
	}

	c.store(0, 10, 5, []uint16{5, 5, 5, 5, 5, 5, 5, 5})
	length, dist := c.bestAt(0)
	if length != 10 || dist != 5 {
		t.Fatalf("best length/dist lost even though sublen degraded: got (%d,%d)", length, dist)
	}
	if len(c.sublen[0]) != 0 {
		t.Fatal("expected no sublen cached when k==1")
	}
}

func TestMatchCache_HasReflectsSentinel(t *testing.T) {
	c := newMatchCache(4, 0)
	if c.has(0) {
		t.Fatal("fresh cache entry should report not-yet-computed")
	}
	c.store(0, 3, 1, nil)
	if !c.has(0) {
		t.Fatal("stored entry should report computed")
	}
}
