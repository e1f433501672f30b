// SPDX-License-Identifier: Apache-2.0
// Source: github.com/krzymod/zopfli

package zopfli

import "testing"

func TestMatchHash_FindsExactRepeat(t *testing.T) {
	data := []byte("abcdefgh" + "abcdefgh")
	h := newMatchHash()
	h.warmup(data, 0, len(data))
	for i := 0; i < len(data); i++ {
		h.update(data, i, len(data))
	}

	hv := h.hval[8&windowMask]
	pos := h.prev[h.head[hv]&windowMask]
	if pos != 0 {
		t.Fatalf("expected the hash chain from the repeat at 8 to link back to position 0, got %d", pos)
	}
}

func TestMatchFinder_FindsLongestMatchAcrossWindow(t *testing.T) {
	data := append(bytes1000(), []byte("needle-sequence-xyz")...)
	data = append(data, []byte("needle-sequence-xyz")...)

	mf := newMatchFinder(data, DefaultOptions(), nil)
	mf.warmup(0, len(data))
	for i := 0; i < len(data)-19; i++ {
		mf.advance(i, len(data))
	}

	res := mf.findLongestMatch(len(data)-19, len(data), false)
	if res.length < minMatch {
		t.Fatalf("expected a match of at least %d, got %d", minMatch, res.length)
	}
}

func bytes1000() []byte {
	out := make([]byte, 1000)
	for i := range out {
		out[i] = byte(i % 251)
	}
	return out
}
