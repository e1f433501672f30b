// SPDX-License-Identifier: Apache-2.0
// Source: github.com/krzymod/zopfli

package zopfli

// lz77Store holds a sequence of literal/length-distance tokens plus the
// cumulative symbol histograms needed to cost and emit them, following
// the teacher's parallel-slice style (hcMatch3Table keeps litlen/dist in
// lockstep arrays rather than a slice of structs, to keep the hot loop
// allocation-free).
type lz77Store struct {
	litlens []uint16 // literal byte value, or match length (3-258)
	dists   []uint16 // 0 for a literal, match distance otherwise
	pos     []int    // source byte offset each token starts at

	llSymbol []uint16 // literal/length alphabet symbol, memoized
	dSymbol  []uint16 // distance alphabet symbol, memoized

	llCounts []uint32 // running literal/length histogram, numLLSymbols wide
	dCounts  []uint32 // running distance histogram, numDSymbols wide
}

func newLZ77Store() *lz77Store {
	return &lz77Store{
		llCounts: make([]uint32, numLLSymbols),
		dCounts:  make([]uint32, numDSymbols),
	}
}

func (s *lz77Store) size() int { return len(s.litlens) }

func (s *lz77Store) reset() {
	s.litlens = s.litlens[:0]
	s.dists = s.dists[:0]
	s.pos = s.pos[:0]
	s.llSymbol = s.llSymbol[:0]
	s.dSymbol = s.dSymbol[:0]
	for i := range s.llCounts {
		s.llCounts[i] = 0
	}
	for i := range s.dCounts {
		s.dCounts[i] = 0
	}
}

// appendLiteral adds a single literal byte token at source offset pos.
func (s *lz77Store) appendLiteral(b byte, pos int) {
	s.litlens = append(s.litlens, uint16(b))
	s.dists = append(s.dists, 0)
	s.pos = append(s.pos, pos)
	s.llSymbol = append(s.llSymbol, uint16(b))
	s.dSymbol = append(s.dSymbol, 0)
	s.llCounts[b]++
}

// appendMatch adds a length/distance token at source offset pos.
func (s *lz77Store) appendMatch(length, dist uint16, pos int) {
	s.litlens = append(s.litlens, length)
	s.dists = append(s.dists, dist)
	s.pos = append(s.pos, pos)

	lsym, _, _ := lengthSymbol(int(length))
	dsym, _, _ := distanceSymbol(int(dist))
	s.llSymbol = append(s.llSymbol, uint16(lsym))
	s.dSymbol = append(s.dSymbol, uint16(dsym))
	s.llCounts[lsym]++
	s.dCounts[dsym]++
}

// append copies one token from src at index i, keeping histograms in
// sync. Used when splicing greedy/optimal results across block
// boundaries.
func (s *lz77Store) append(src *lz77Store, i int) {
	if src.dists[i] == 0 {
		s.appendLiteral(byte(src.litlens[i]), src.pos[i])
		return
	}
	s.appendMatch(src.litlens[i], src.dists[i], src.pos[i])
}

// appendRange copies tokens [from,to) from src.
func (s *lz77Store) appendRange(src *lz77Store, from, to int) {
	for i := from; i < to; i++ {
		s.append(src, i)
	}
}

// byteRange returns the [start,end) input byte offsets covered by
// tokens [from,to). end is exclusive and computed from the following
// token's pos, or is totalInputLen when the range reaches the final
// token.
func (s *lz77Store) byteRange(from, to int, totalInputLen int) (start, end int) {
	start = s.pos[from]
	if to >= s.size() {
		end = totalInputLen
		return
	}
	end = s.pos[to]
	return
}
