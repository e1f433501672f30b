// SPDX-License-Identifier: Apache-2.0
// Source: github.com/krzymod/zopfli

package zopfli

// maxChainHits bounds how many positions a single findLongestMatch call
// walks down a hash chain before giving up and returning the best match
// seen so far. Without this bound, pathological inputs (long runs of a
// single repeated byte) make every match lookup linear in the window
// size instead of amortized constant, the same concern the teacher's
// hcMatch3Table addresses with its own chain-length cap.
const maxChainHits = 8192

// matchFinder wraps a matchHash and an optional matchCache and answers
// "what's the best match at pos" queries, generalizing the teacher's
// match.go advance/search split (initMatcher / advanceMatchFinder /
// adjustMatchForOffsetClass) from LZO's fixed 3-class offset encoding
// to Zopfli's uniform distance alphabet.
type matchFinder struct {
	data  []byte
	hash  *matchHash
	cache *matchCache

	lengthScoreMax int
}

func newMatchFinder(data []byte, opts *Options, cache *matchCache) *matchFinder {
	return &matchFinder{
		data:           data,
		hash:           newMatchHash(),
		cache:          cache,
		lengthScoreMax: opts.LengthScoreMax,
	}
}

// warmup primes the rolling hash for a scan starting at pos, inserting
// the windowSize bytes immediately before pos (if any) so chains are
// populated for matches that reach backward across a block boundary.
func (mf *matchFinder) warmup(pos, end int) {
	start := pos - windowSize
	if start < 0 {
		start = 0
	}
	mf.hash.warmup(mf.data, start, end)
	for i := start; i < pos; i++ {
		mf.hash.update(mf.data, i, end)
	}
}

// matchResult is the outcome of a findLongestMatch call: the best
// length/distance pair plus, optionally, a dense sublen array (indexed
// by length-minMatch) recording the shortest distance achievable for
// every length up to the best one — needed by the optimal parser to
// consider non-greedy shorter matches at cheaper distances.
type matchResult struct {
	length int
	dist   int
	sublen []uint16 // nil unless the caller asked for it via wantSublen
}

// findLongestMatch walks both hash chains from pos, returning the
// longest match under end, capped at maxChainHits probes. If the
// position was already cached, the cached result is returned directly
// (recording prior work, not re-walking the chain) unless the caller
// requests a longer sublen list than what's cached. Positions at or
// beyond the cache's length are looked up and searched without it.
func (mf *matchFinder) findLongestMatch(pos, end int, wantSublen bool) matchResult {
	cache := mf.cache
	if cache != nil && pos >= len(cache.length) {
		cache = nil
	}
	if cache != nil && cache.has(pos) {
		length, dist := cache.bestAt(pos)
		if !wantSublen || int(length) <= cache.maxCachedSublen(pos) {
			return matchResult{length: int(length), dist: int(dist)}
		}
	}

	limit := end - pos
	if limit > maxMatch {
		limit = maxMatch
	}

	var sublen []uint16
	if wantSublen && limit >= minMatch {
		sublen = make([]uint16, limit-minMatch+1)
	}

	bestLength := 0
	bestDist := 0
	hits := 0

	tryChain := func(head int32, prev []int32) {
		cur := head
		for cur != -1 && hits < maxChainHits {
			hits++
			candPos := int(cur)
			if candPos >= pos {
				break
			}
			dist := pos - candPos
			if dist > windowSize {
				break
			}
			length := mf.matchLength(candPos, pos, limit)
			if length >= minMatch {
				if sublen != nil {
					for l := minMatch; l <= length; l++ {
						if sublen[l-minMatch] == 0 || dist < int(sublen[l-minMatch]) {
							sublen[l-minMatch] = uint16(dist)
						}
					}
				}
				if length > bestLength || (length == bestLength && dist < bestDist) {
					bestLength = length
					bestDist = dist
				}
			}
			if length >= limit {
				break
			}
			next := prev[candPos&windowMask]
			if next == cur {
				break
			}
			cur = next
		}
	}

	// pos is not inserted yet, so derive its chain keys the way update will.
	var c byte
	if pos+minMatch <= end {
		c = mf.data[pos+minMatch-1]
	}
	hv := updateVal(mf.hash.val, c)
	tryChain(mf.hash.head[hv], mf.hash.prev)
	var run uint16
	if pos > 0 && mf.hash.same[(pos-1)&windowMask] > 1 && pos+int(mf.hash.same[(pos-1)&windowMask]) < end {
		run = mf.hash.same[(pos-1)&windowMask] - 1
	}
	for pos+int(run) < end && run < 0xFFFF && mf.data[pos] == mf.data[pos+int(run)] {
		run++
	}
	hv2 := (int32(run-minMatch) & 255) ^ hv
	tryChain(mf.hash.head2[hv2], mf.hash.prev2)

	if cache != nil {
		cache.store(pos, uint16(bestLength), uint16(bestDist), sublen)
	}

	return matchResult{length: bestLength, dist: bestDist, sublen: sublen}
}

// matchLength returns how many bytes match between data[a:] and
// data[b:], capped at limit. Scans forward byte by byte; unlike the
// teacher's countEqualBytes this does not use unsafe+bits.TrailingZeros64
// word-at-a-time comparison, because match limits here are at most 258
// bytes (DEFLATE's maxMatch) rather than LZO's unbounded runs, so the
// constant-factor win would not offset the added complexity.
func (mf *matchFinder) matchLength(a, b, limit int) int {
	n := 0
	for n < limit && mf.data[a+n] == mf.data[b+n] {
		n++
	}
	return n
}

// advance inserts pos into the hash index. Call once per byte as the
// scan moves forward, after findLongestMatch has used the chains built
// from all earlier positions.
func (mf *matchFinder) advance(pos, end int) {
	mf.hash.update(mf.data, pos, end)
}
