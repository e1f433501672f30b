// SPDX-License-Identifier: Apache-2.0
// Source: github.com/krzymod/zopfli

package zopfli

// Compress is the simplest entry point: it deflates data with opts (nil
// for defaults) and, following the teacher's "never grow" guarantee in
// its own Compress, falls back to stored blocks if the optimized
// result would somehow be larger than the trivial stored encoding (§8
// Testable Properties: never-grow-fallback).
func Compress(data []byte, opts *Options) ([]byte, error) {
	out, err := Deflate(data, opts)
	if err != nil {
		return nil, err
	}

	if stored := storedFallbackSize(len(data)); len(out) > stored {
		w := newBitWriter()
		emitAllStored(w, data)
		return w.bytes(), nil
	}
	return out, nil
}

// storedFallbackSize is the size of data re-encoded as back-to-back
// stored blocks, each capped at 65535 bytes (the stored block length
// field is 16 bits).
func storedFallbackSize(n int) int {
	const maxStored = 65535
	blocks := (n + maxStored - 1) / maxStored
	if blocks == 0 {
		blocks = 1
	}
	return blocks*5 + n
}

// emitAllStored writes data as one or more BTYPE=00 blocks.
func emitAllStored(w *bitWriter, data []byte) {
	const maxStored = 65535
	if len(data) == 0 {
		writeStoredBlock(w, nil, true)
		return
	}
	for start := 0; start < len(data); start += maxStored {
		end := start + maxStored
		if end > len(data) {
			end = len(data)
		}
		writeStoredBlock(w, data[start:end], end == len(data))
	}
}
