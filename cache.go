// SPDX-License-Identifier: Apache-2.0
// Source: github.com/krzymod/zopfli

package zopfli

// matchCache memoizes, for every input position considered at least
// once by the optimizer, the best match length/distance found plus a
// compact sublen triple list (one (length, dist%256, dist>>8%256)
// triple per distinct length bucket actually tried), so a second
// iteration over the same position does not repeat the hash-chain
// walk. Triple encoding and reconstruction follow
// original_source/src/zopfli/cache.c's ZopfliSublenToCache /
// ZopfliCacheToSublen exactly; this is what keeps the cache's memory
// proportional to distinct lengths rather than to maxMatch.
type matchCache struct {
	length []uint16
	dist   []uint16
	sublen [][]uint8 // each entry is a flat triple list, 3 bytes per cached length
	k      int       // per-position cap on cached sublen entries; degrades to 1 under memory pressure
}

// defaultCacheK is cache.c's own default cache_length: 8 sublen
// triples per position, not the full maxMatch range — most positions
// never need more than a handful of distinct-length buckets cached.
const defaultCacheK = 8

// defaultMaxCacheMemory is the MAX_CACHE_MEMORY-equivalent byte budget
// newMatchCache degrades k against when a caller doesn't supply its own
// (maxCacheBytes <= 0). 64 MiB comfortably covers multi-megabyte master
// blocks at the default k before degradation kicks in.
const defaultMaxCacheMemory = 64 << 20

// newMatchCache allocates a cache for an input of the given length. If
// the cache at defaultCacheK (one slot per byte, each capable of storing
// up to defaultCacheK sublen entries) would exceed maxCacheBytes, k is
// halved — mirroring cache.c's ZopfliInitCache loop that halves
// cache_length under MAX_CACHE_MEMORY pressure — down to a floor of 1
// (length/dist only, no sublen list at all). maxCacheBytes <= 0 selects
// defaultMaxCacheMemory rather than "unlimited".
func newMatchCache(inputLen int, maxCacheBytes int64) *matchCache {
	if maxCacheBytes <= 0 {
		maxCacheBytes = defaultMaxCacheMemory
	}
	k := defaultCacheK
	for k > 1 {
		bytesNeeded := int64(inputLen) * int64(k) * 3
		if bytesNeeded <= maxCacheBytes {
			break
		}
		k /= 2
	}

	c := &matchCache{
		length: make([]uint16, inputLen),
		dist:   make([]uint16, inputLen),
		sublen: make([][]uint8, inputLen),
		k:      k,
	}
	for i := range c.length {
		c.length[i] = 1 // sentinel: "not yet computed" per cache.c's init
		c.dist[i] = 0
	}
	return c
}

func (c *matchCache) has(pos int) bool {
	return c.length[pos] != 1 || c.dist[pos] != 0
}

func (c *matchCache) bestAt(pos int) (length, dist uint16) {
	return c.length[pos], c.dist[pos]
}

func (c *matchCache) store(pos int, length, dist uint16, sublen []uint16) {
	c.length[pos] = length
	c.dist[pos] = dist
	if sublen == nil || c.k <= 1 {
		return
	}
	c.sublen[pos] = sublenToCache(sublen, c.k)
}

// maxCachedSublen returns the greatest length present in pos's cached
// sublen triple list, or 0 if no sublen list was cached.
func (c *matchCache) maxCachedSublen(pos int) int {
	t := c.sublen[pos]
	if len(t) == 0 {
		return 0
	}
	return int(t[len(t)-3]) + 3
}

// cachedDistFor returns the distance cached for a match of exactly
// length at pos, reconstructed from the run-filled triple list, or 0
// if length exceeds what was cached.
func (c *matchCache) cachedDistFor(pos int, length int) uint16 {
	sub := cacheToSublen(c.sublen[pos], c.maxCachedSublen(pos))
	if length-minMatch >= len(sub) {
		return 0
	}
	return sub[length-minMatch]
}

// sublenToCache compresses a dense sublen[3..maxMatch] array (indexed
// by length) into a run-length triple list, capped at k triples: a new
// triple is only emitted when the distance changes, per cache.c.
func sublenToCache(sublen []uint16, k int) []uint8 {
	out := make([]uint8, 0, k*3)
	var count int
	maxLen := len(sublen) + minMatch - 1
	for length := minMatch; length <= maxLen && count < k; length++ {
		d := sublen[length-minMatch]
		if length == maxLen || d != sublen[length+1-minMatch] {
			out = append(out, uint8(length-3), uint8(d%256), uint8((d>>8)%256))
			count++
		}
	}
	return out
}

// cacheToSublen expands a triple list back into a dense
// sublen[3..maxLength] array by filling each run with its stored
// distance, per cache.c's ZopfliCacheToSublen.
func cacheToSublen(cache []uint8, maxLength int) []uint16 {
	if len(cache) == 0 || maxLength < minMatch {
		return nil
	}
	out := make([]uint16, maxLength-minMatch+1)
	prevLength := minMatch - 1
	for i := 0; i+2 < len(cache)+1 && i+2 <= len(cache); i += 3 {
		length := int(cache[i]) + 3
		dist := uint16(cache[i+1]) + uint16(cache[i+2])*256
		for l := prevLength + 1; l <= length; l++ {
			if l-minMatch < len(out) {
				out[l-minMatch] = dist
			}
		}
		prevLength = length
	}
	return out
}
