// SPDX-License-Identifier: Apache-2.0
// Source: github.com/krzymod/zopfli

package zopfli

import (
	"bytes"
	"compress/flate"
	"io"
	"testing"
)

// testInputSet mirrors the teacher's own testInputSet helper: a fixed
// set of small, round-trip-relevant byte slices exercised against
// every level/option combination below.
func testInputSet() []struct {
	name string
	data []byte
} {
	return []struct {
		name string
		data []byte
	}{
		{name: "nil", data: nil},
		{name: "empty", data: []byte{}},
		{name: "single-byte", data: []byte{0xAB}},
		{name: "short-text", data: []byte("hello world, zopfli test")},
		{name: "repeated-pattern", data: bytes.Repeat([]byte("abc123"), 2000)},
		{name: "long-run", data: bytes.Repeat([]byte{0xFF}, 12000)},
		{name: "byte-cycle", data: bytes.Repeat([]byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, 1200)},
		{name: "random-ish", data: pseudoRandomBytes(4096)},
	}
}

// pseudoRandomBytes generates deterministic filler that doesn't
// compress well, to exercise the stored-block fallback path.
func pseudoRandomBytes(n int) []byte {
	out := make([]byte, n)
	var x uint32 = 0x2545F491
	for i := range out {
		x ^= x << 13
		x ^= x >> 17
		x ^= x << 5
		out[i] = byte(x)
	}
	return out
}

func inflate(t *testing.T, compressed []byte) []byte {
	t.Helper()
	r := flate.NewReader(bytes.NewReader(compressed))
	defer r.Close()
	out, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("stdlib flate failed to decode our stream: %v", err)
	}
	return out
}

func TestDeflate_RoundTrip(t *testing.T) {
	optsList := []*Options{
		nil,
		{NumIterations: 1, BlockSplitting: false},
		{NumIterations: 5, BlockSplitting: true, LazyMatching: true},
		{NumIterations: 3, BlockSplitting: true, OptimizeHuffmanHeader: true, UseBrotli: true},
	}

	for _, in := range testInputSet() {
		for oi, opts := range optsList {
			t.Run(in.name+"/opts", func(t *testing.T) {
				out, err := Deflate(in.data, opts)
				if err != nil {
					t.Fatalf("Deflate failed: %v", err)
				}
				got := inflate(t, out)
				if !bytes.Equal(got, in.data) {
					t.Fatalf("opts[%d]: round-trip mismatch: got %d bytes, want %d", oi, len(got), len(in.data))
				}
			})
		}
	}
}

func TestCompress_NeverGrowsBeyondStoredFallback(t *testing.T) {
	for _, in := range testInputSet() {
		t.Run(in.name, func(t *testing.T) {
			out, err := Compress(in.data, &Options{NumIterations: 1})
			if err != nil {
				t.Fatalf("Compress failed: %v", err)
			}
			if len(out) > storedFallbackSize(len(in.data)) {
				t.Fatalf("compressed size %d exceeds stored fallback bound %d", len(out), storedFallbackSize(len(in.data)))
			}
			got := inflate(t, out)
			if !bytes.Equal(got, in.data) {
				t.Fatalf("round-trip mismatch after fallback check")
			}
		})
	}
}

func TestOptimal_MoreIterationsNeverWorsensCost(t *testing.T) {
	data := bytes.Repeat([]byte("the quick brown fox jumps over the lazy dog. "), 200)

	prevSize := -1
	for _, iters := range []int{1, 2, 5, 10} {
		out, err := Deflate(data, &Options{NumIterations: iters, BlockSplitting: true})
		if err != nil {
			t.Fatalf("Deflate(iterations=%d) failed: %v", iters, err)
		}
		if prevSize != -1 && len(out) > prevSize {
			t.Fatalf("iterations=%d regressed size: %d vs previous %d", iters, len(out), prevSize)
		}
		prevSize = len(out)
	}
}

func TestDeflate_Deterministic(t *testing.T) {
	data := bytes.Repeat([]byte("deterministic output across calls"), 100)
	opts := &Options{NumIterations: 4, BlockSplitting: true, RanStateW: 7, RanStateZ: 13}

	a, err := Deflate(data, opts)
	if err != nil {
		t.Fatalf("first Deflate failed: %v", err)
	}
	b, err := Deflate(data, opts)
	if err != nil {
		t.Fatalf("second Deflate failed: %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Fatal("Deflate is not deterministic for identical input and options")
	}
}

func TestDeflatePart_ConcatenatesAcrossMasterBlocks(t *testing.T) {
	data := bytes.Repeat([]byte("multi-part master block splitting test data "), 50)
	mid := len(data) / 2

	w := newBitWriter()
	if err := deflateRange(w, data, 0, mid, false, DefaultOptions()); err != nil {
		t.Fatalf("first part failed: %v", err)
	}
	if err := deflateRange(w, data, mid, len(data), true, DefaultOptions()); err != nil {
		t.Fatalf("second part failed: %v", err)
	}
	w.align()

	got := inflate(t, w.bytes())
	if !bytes.Equal(got, data) {
		t.Fatalf("multi-part round-trip mismatch: got %d bytes want %d", len(got), len(data))
	}
}
