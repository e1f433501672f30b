// SPDX-License-Identifier: Apache-2.0
// Source: github.com/krzymod/zopfli

package zopfli

import (
	"github.com/cespare/xxhash/v2"
	"github.com/dgryski/go-tinylfu"
)

// subBlockKey identifies a sub-block by the content it covers, not its
// position: archives and scanline-based formats often repeat identical
// runs (duplicate files, repeated rows), and those should only be
// optimized once by the thread pool regardless of where they land.
type subBlockKey struct {
	hash   uint64
	length int
}

// subBlockResult is what blockCache memoizes for a given key: the
// finished token store for that sub-block plus its measured bit cost,
// so a cache hit can skip straight to emission.
type subBlockResult struct {
	store *lz77Store
	cost  float64
}

// blockCache is the sub-block memoizer the thread-pool coordinator
// consults before handing a piece to a worker (§5, SPEC_FULL.md
// Domain Stack). It is an admission-policy cache, not a correctness
// cache: a miss simply means the optimizer runs as normal, so there is
// no eviction-safety concern the way there is for matchCache.
type blockCache struct {
	lfu *tinylfu.T[subBlockKey, subBlockResult]
}

// newBlockCache sizes the cache to hold roughly capacity sub-block
// results, following the teacher pack's own nBlock/nBlock*10
// size/samples ratio for tinylfu.New.
func newBlockCache(capacity int) *blockCache {
	if capacity <= 0 {
		capacity = 256
	}
	return &blockCache{
		lfu: tinylfu.New[subBlockKey, subBlockResult](capacity, capacity*10, hashSubBlockKey),
	}
}

func hashSubBlockKey(k subBlockKey) uint64 {
	var buf [16]byte
	for i := 0; i < 8; i++ {
		buf[i] = byte(k.hash >> (8 * i))
	}
	for i := 0; i < 8; i++ {
		buf[8+i] = byte(uint64(k.length) >> (8 * i))
	}
	return xxhash.Sum64(buf[:])
}

// keyFor derives a subBlockKey for data[start:end].
func keyFor(data []byte, start, end int) subBlockKey {
	return subBlockKey{hash: xxhash.Sum64(data[start:end]), length: end - start}
}

func (c *blockCache) get(data []byte, start, end int) (subBlockResult, bool) {
	return c.lfu.Get(keyFor(data, start, end))
}

func (c *blockCache) put(data []byte, start, end int, res subBlockResult) {
	c.lfu.Add(keyFor(data, start, end), res)
}
