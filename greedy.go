// SPDX-License-Identifier: Apache-2.0
// Source: github.com/krzymod/zopfli

package zopfli

// greedy produces a fast, locally-optimal (not globally cost-optimal)
// LZ77 token sequence for data[start:end], used as the optimizer's
// warm-start seed before the first real iteration (§4.5.5). When
// opts.LazyMatching is set, a match is deferred one byte if the next
// position yields a strictly longer one, the same one-step lookahead
// the teacher's compress_1x_999.go findBetterMatch performs before
// committing to a match.
func greedy(mf *matchFinder, start, end int, opts *Options, out *lz77Store) {
	pos := start
	var prevLength, prevDist, prevPos int
	havePrev := false

	for pos < end {
		res := mf.findLongestMatch(pos, end, false)
		length, dist := res.length, res.dist

		if opts.LazyMatching && havePrev {
			if lengthScore(prevLength, prevDist, opts.LengthScoreMax) >= lengthScore(length, dist, opts.LengthScoreMax) {
				out.appendMatch(uint16(prevLength), uint16(prevDist), prevPos)
				for i := 0; i < prevLength && pos < end; i++ {
					mf.advance(pos, end)
					pos++
				}
				havePrev = false
				continue
			}
		}

		if length >= minMatch {
			if opts.LazyMatching && pos+1 < end {
				mf.advance(pos, end)
				next := mf.findLongestMatch(pos+1, end, false)
				if lengthScore(next.length, next.dist, opts.LengthScoreMax) > lengthScore(length, dist, opts.LengthScoreMax) {
					out.appendLiteral(mf.data[pos], pos)
					pos++
					prevLength, prevDist, prevPos, havePrev = next.length, next.dist, pos, true
					continue
				}
				out.appendMatch(uint16(length), uint16(dist), pos)
				pos++
				for i := 1; i < length && pos < end; i++ {
					mf.advance(pos, end)
					pos++
				}
				havePrev = false
				continue
			}

			out.appendMatch(uint16(length), uint16(dist), pos)
			for i := 0; i < length && pos < end; i++ {
				mf.advance(pos, end)
				pos++
			}
			havePrev = false
			continue
		}

		out.appendLiteral(mf.data[pos], pos)
		mf.advance(pos, end)
		pos++
		havePrev = false
	}
}

// lengthScore ranks a candidate match the way the teacher's
// findBetterMatch tie-breaks offset classes: a longer match wins
// outright, but a match whose distance exceeds lengthScoreMax is
// penalized so the optimizer prefers a shorter, cheaper-to-encode
// distance when the length difference is marginal.
func lengthScore(length, dist, lengthScoreMax int) int {
	if length == 0 {
		return 0
	}
	if dist > lengthScoreMax {
		return length - 1
	}
	return length
}
