// SPDX-License-Identifier: Apache-2.0
// Source: github.com/krzymod/zopfli

package zopfli

import "testing"

func TestLengthSymbol_CoversFullRange(t *testing.T) {
	for length := minMatch; length <= maxMatch; length++ {
		sym, extra, value := lengthSymbol(length)
		if sym < 257 || sym > 285 {
			t.Fatalf("length %d: symbol %d out of range", length, sym)
		}
		got := int(lengthBase[sym-257]) + value
		if got != length {
			t.Fatalf("length %d: reconstructed %d (base=%d value=%d extra=%d)", length, got, lengthBase[sym-257], value, extra)
		}
	}
}

func TestDistanceSymbol_CoversFullRange(t *testing.T) {
	samples := []int{1, 2, 3, 4, 5, 100, 1000, 4096, 16384, 32768}
	for _, dist := range samples {
		sym, _, value := distanceSymbol(dist)
		if sym < 0 || sym > 29 {
			t.Fatalf("dist %d: symbol %d out of range", dist, sym)
		}
		got := int(distanceBase[sym]) + value
		if got != dist {
			t.Fatalf("dist %d: reconstructed %d", dist, got)
		}
	}
}

func TestFixedLengths_MatchRFC1951(t *testing.T) {
	ll := fixedLLLengths()
	if ll[0] != 8 || ll[143] != 8 || ll[144] != 9 || ll[255] != 9 {
		t.Fatal("literal fixed lengths don't match RFC 1951 boundaries")
	}
	if ll[256] != 7 || ll[279] != 7 || ll[280] != 8 || ll[287] != 8 {
		t.Fatal("length-code fixed lengths don't match RFC 1951 boundaries")
	}
	d := fixedDLengths()
	for i, l := range d {
		if l != 5 {
			t.Fatalf("distance code %d: expected fixed length 5, got %d", i, l)
		}
	}
}
