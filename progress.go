// SPDX-License-Identifier: Apache-2.0
// Source: github.com/krzymod/zopfli

package zopfli

// reportProgress invokes opts.Progress if set, doing nothing otherwise.
// Centralized so call sites never need a nil check of their own, the
// same way the teacher centralizes its error wrapping in one place
// rather than repeating a pattern at every call site.
func reportProgress(opts *Options, blockIndex, iteration, bestSizeBits int) {
	if opts == nil || opts.Progress == nil {
		return
	}
	opts.Progress(ProgressEvent{
		BlockIndex:   blockIndex,
		Iteration:    iteration,
		BestSizeBits: bestSizeBits,
	})
}
