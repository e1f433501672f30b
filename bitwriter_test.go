// SPDX-License-Identifier: Apache-2.0
// Source: github.com/krzymod/zopfli

package zopfli

import "testing"

func TestBitWriter_BitsRoundTripLSBFirst(t *testing.T) {
	w := newBitWriter()
	w.writeBits(0b10110, 5)
	w.align()

	if len(w.out) != 1 {
		t.Fatalf("expected 1 byte, got %d", len(w.out))
	}
	if w.out[0] != 0b00010110 {
		t.Fatalf("got %08b, want %08b", w.out[0], 0b00010110)
	}
}

func TestBitWriter_HuffmanBitsMSBFirst(t *testing.T) {
	w := newBitWriter()
	w.writeHuffmanBits(0b101, 3)
	w.align()

	if w.out[0] != 0b00000101 {
		t.Fatalf("got %08b, want %08b", w.out[0], 0b00000101)
	}
}

func TestBitWriter_BitLengthTracksWrites(t *testing.T) {
	w := newBitWriter()
	if w.bitLength() != 0 {
		t.Fatalf("fresh writer should report 0 bits, got %d", w.bitLength())
	}
	w.writeBits(1, 3)
	if w.bitLength() != 3 {
		t.Fatalf("expected 3 bits written, got %d", w.bitLength())
	}
	w.writeBits(1, 10)
	if w.bitLength() != 13 {
		t.Fatalf("expected 13 bits written, got %d", w.bitLength())
	}
}
