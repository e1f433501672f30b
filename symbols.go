// SPDX-License-Identifier: Apache-2.0
// Source: github.com/krzymod/zopfli

package zopfli

// RFC 1951 constant tables (§4.1 / C1). These never change at runtime;
// every encoder needs the same base+extra-bits breakdown of the
// length/distance alphabets, so they are plain package-level arrays
// rather than a generated or loaded table.
const (
	minMatch     = 3
	maxMatch     = 258
	windowSize   = 32768
	windowMask   = windowSize - 1
	numLLSymbols = 288 // 0-255 literals, 256 end-of-block, 257-285 lengths
	numDSymbols  = 32  // only 0-29 are ever used, 30/31 are reserved
	numCLSymbols = 19  // code-length alphabet

	endOfBlockSymbol = 256
)

// blockType mirrors the 2-bit BTYPE field of a DEFLATE block header.
type blockType uint8

const (
	blockStored blockType = iota
	blockFixed
	blockDynamic
)

// lengthBase and lengthExtraBits give, for length symbol 257+i, the base
// match length and number of extra bits that follow it in the bitstream.
var lengthBase = [29]uint16{
	3, 4, 5, 6, 7, 8, 9, 10, 11, 13,
	15, 17, 19, 23, 27, 31, 35, 43, 51, 59,
	67, 83, 99, 115, 131, 163, 195, 227, 258,
}

var lengthExtraBits = [29]uint8{
	0, 0, 0, 0, 0, 0, 0, 0, 1, 1,
	1, 1, 2, 2, 2, 2, 3, 3, 3, 3,
	4, 4, 4, 4, 5, 5, 5, 5, 0,
}

// distanceBase and distanceExtraBits give, for distance symbol i, the
// base distance and number of extra bits that follow it.
var distanceBase = [30]uint16{
	1, 2, 3, 4, 5, 7, 9, 13, 17, 25,
	33, 49, 65, 97, 129, 193, 257, 385, 513, 769,
	1025, 1537, 2049, 3073, 4097, 6145, 8193, 12289, 16385, 24577,
}

var distanceExtraBits = [30]uint8{
	0, 0, 0, 0, 1, 1, 2, 2, 3, 3,
	4, 4, 5, 5, 6, 6, 7, 7, 8, 8,
	9, 9, 10, 10, 11, 11, 12, 12, 13, 13,
}

// clOrder is the order in which code-length code lengths are stored in a
// dynamic Huffman block header (RFC 1951 §3.2.7).
var clOrder = [numCLSymbols]uint8{
	16, 17, 18, 0, 8, 7, 9, 6, 10, 5,
	11, 4, 12, 3, 13, 2, 14, 1, 15,
}

// lengthSymbol returns the literal/length alphabet symbol (257-285) and
// the number of extra-bit value bits for a match of the given length.
// length must be in [3,258].
func lengthSymbol(length int) (symbol int, extraBits int, extraValue int) {
	for i := len(lengthBase) - 1; i >= 0; i-- {
		if length >= int(lengthBase[i]) {
			return 257 + i, int(lengthExtraBits[i]), length - int(lengthBase[i])
		}
	}
	return 257, 0, 0
}

// distanceSymbol returns the distance alphabet symbol (0-29) and the
// number of extra-bit value bits for a match of the given distance.
// dist must be in [1,32768].
func distanceSymbol(dist int) (symbol int, extraBits int, extraValue int) {
	for i := len(distanceBase) - 1; i >= 0; i-- {
		if dist >= int(distanceBase[i]) {
			return i, int(distanceExtraBits[i]), dist - int(distanceBase[i])
		}
	}
	return 0, 0, 0
}

// fixedLLLengths and fixedDLengths are the code lengths RFC 1951 §3.2.6
// hardwires for BTYPE=1 (fixed Huffman) blocks.
func fixedLLLengths() [numLLSymbols]uint8 {
	var l [numLLSymbols]uint8
	for i := 0; i <= 143; i++ {
		l[i] = 8
	}
	for i := 144; i <= 255; i++ {
		l[i] = 9
	}
	for i := 256; i <= 279; i++ {
		l[i] = 7
	}
	for i := 280; i <= 287; i++ {
		l[i] = 8
	}
	return l
}

func fixedDLengths() [numDSymbols]uint8 {
	var d [numDSymbols]uint8
	for i := range d {
		d[i] = 5
	}
	return d
}
