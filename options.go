// SPDX-License-Identifier: Apache-2.0
// Source: github.com/krzymod/zopfli

package zopfli

// RNGKind selects the pseudo-random generator used to perturb histogram
// statistics between iterations of the LZ77 optimizer (§4.5.4).
type RNGKind int

const (
	// RNGLehmer is a Lehmer-style multiplicative generator (default).
	RNGLehmer RNGKind = iota
	// RNGCMWC is a complementary-multiply-with-carry generator.
	RNGCMWC
)

// ProgressEvent reports optimizer progress to an optional caller-supplied
// callback. It never itself logs or writes anything (see SPEC_FULL.md §1
// Ambient Stack / Logging).
type ProgressEvent struct {
	// BlockIndex is the 0-based index of the master block being processed.
	BlockIndex int
	// Iteration is the 1-based iteration count within the current block's
	// LZ77 refinement loop. Events are reported only from that loop,
	// not during block splitting.
	Iteration int
	// BestSizeBits is the best compressed size (in bits) found so far for
	// the current block.
	BestSizeBits int
}

// Options configures the compressor. All fields are orthogonal (§6).
// A nil *Options is equivalent to DefaultOptions().
type Options struct {
	// NumIterations upper-bounds the number of LZ77 refinement iterations
	// per block (§4.5.4). Good values: 10-15 for small inputs, 5 for
	// multi-megabyte inputs.
	NumIterations int

	// MaxFailIterations stops a block's refinement after this many
	// iterations without improvement (0 = no early exit beyond
	// NumIterations).
	MaxFailIterations int

	// BlockSplitting enables the first-split strategy (split raw bytes,
	// then optimize each piece).
	BlockSplitting bool

	// NoBlockSplittingLast disables the split-last strategy (re-partition
	// the already-optimized LZ77 store into blocks; the tokens are not
	// re-optimized afterwards). Split-last runs only when BlockSplitting
	// is also set. This is the
	// authoritative split-last disable switch; the historical
	// "blocksplittinglast" option is ignored (spec.md §9 Design Notes;
	// see DESIGN.md Open Questions).
	NoBlockSplittingLast bool

	// BlockSplittingMax caps the number of blocks the splitter may
	// produce (0 = unlimited).
	BlockSplittingMax int

	// LengthScoreMax is the distance threshold above which the greedy
	// seed's length score of a match is one less than its length; the
	// score is compared only when choosing between lazy-matching
	// candidates (glossary: "length score").
	LengthScoreMax int

	// LazyMatching enables one-step lazy matching in the greedy seed
	// (§4.5.5).
	LazyMatching bool

	// OptimizeHuffmanHeader expands the tree-encoding search from 8 to 32
	// variant indices (§4.6.2). Indices 8-31 repeat the flag settings of
	// 0-7, so the wider search picks the same header as the narrower one.
	OptimizeHuffmanHeader bool

	// UseBrotli selects Brotli-style (24.8 fixed-point) histogram
	// smoothing instead of the standard smoothing (§4.4).
	UseBrotli bool

	// RevCounts selects reverse index tie-breaking in the Huffman
	// length-limited code construction (§4.4).
	RevCounts bool

	// Pass is the number of additional split-last re-runs after the
	// initial split (§4.6.3, §4.6.5).
	Pass int

	// FindMinimumRec is the number of samples per recursion level in the
	// split-point search find_minimum (§4.6.3). Default 9.
	FindMinimumRec int

	// RanStateW, RanStateZ seed the Lehmer-style RNG (§4.5.4).
	RanStateW uint16
	RanStateZ uint16

	// RNG selects which generator RanStateW/RanStateZ seed.
	RNG RNGKind

	// StatImportance (as a percentage) sets the step of the random
	// histogram perturbation between iterations: an upward nudge adds
	// StatImportance/100 + 1 to a count (§4.5.4). Successive iterations'
	// statistics are not blended.
	StatImportance int

	// TryAll tries all 16 combinations of
	// {OptimizeHuffmanHeader, RevCounts, UseBrotli, LazyMatching} and
	// keeps the smallest result. The combination is chosen once for the
	// whole input (or DeflatePart range), not separately for each block.
	TryAll bool

	// NumThreads is the worker count for the thread pool described in §5
	// (1 = sequential, no pool spun up).
	NumThreads int

	// MaxCacheMemory bounds the longest-match cache's sublen storage in
	// bytes (0 selects defaultMaxCacheMemory); newMatchCache halves its
	// per-position cache width until the budget is met, down to a floor
	// of length/dist only (§3/§5 MAX_CACHE_MEMORY).
	MaxCacheMemory int64

	// Progress, if non-nil, is invoked with optimizer progress updates.
	// It must not block or retain the passed-in ProgressEvent's owner
	// goroutine.
	Progress func(ProgressEvent)

	// interrupted is set by RequestCancel (§5 Cancellation); it is not a
	// caller-visible field but lives here so Options can be copied by
	// value elsewhere before interrupted is wired in (see interrupt.go).
	interrupted *cancelFlag
}

// DefaultOptions returns the option set zopfli_bin.c initializes via
// ZopfliInitOptions (original_source/src/zopfli/util.c), translated to Go
// defaults (verbose is dropped in favor of the Progress callback).
func DefaultOptions() *Options {
	return &Options{
		NumIterations:         15,
		MaxFailIterations:     0,
		BlockSplitting:        true,
		NoBlockSplittingLast:  false,
		BlockSplittingMax:     15,
		LengthScoreMax:        1024,
		LazyMatching:          false,
		OptimizeHuffmanHeader: false,
		UseBrotli:             false,
		RevCounts:             false,
		Pass:                  0,
		FindMinimumRec:        9,
		RanStateW:             1,
		RanStateZ:             2,
		RNG:                   RNGLehmer,
		StatImportance:        100,
		TryAll:                false,
		NumThreads:            1,
		MaxCacheMemory:        defaultMaxCacheMemory,
	}
}

// normalized returns a copy of opts (or DefaultOptions() if opts is nil)
// with all fields clamped to a safe range, the way the teacher's Compress
// clamps Level to [0,9] rather than rejecting out-of-range values.
func normalized(opts *Options) *Options {
	var o Options
	if opts == nil {
		o = *DefaultOptions()
	} else {
		o = *opts
	}

	if o.NumIterations < 1 {
		o.NumIterations = 1
	}
	if o.MaxFailIterations < 0 {
		o.MaxFailIterations = 0
	}
	if o.BlockSplittingMax < 0 {
		o.BlockSplittingMax = 0
	}
	if o.FindMinimumRec < 2 {
		o.FindMinimumRec = 2
	}
	if o.StatImportance <= 0 {
		o.StatImportance = 100
	}
	if o.NumThreads < 1 {
		o.NumThreads = 1
	}
	if o.LengthScoreMax <= 0 {
		o.LengthScoreMax = 1024
	}
	if o.MaxCacheMemory <= 0 {
		o.MaxCacheMemory = defaultMaxCacheMemory
	}

	return &o
}

// ValidateOptions rejects option values that have no safe default
// interpretation (§7.3). Callers that want hard validation instead of
// silent clamping call this before Compress; Compress itself always
// clamps via normalized and never returns ErrInvalidOption.
func ValidateOptions(opts *Options) error {
	if opts == nil {
		return nil
	}
	if opts.NumIterations < 1 {
		return ErrInvalidOption
	}
	if opts.NumThreads < 1 {
		return ErrInvalidOption
	}
	if opts.BlockSplittingMax < 0 {
		return ErrInvalidOption
	}
	return nil
}
