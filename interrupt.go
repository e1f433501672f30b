// SPDX-License-Identifier: Apache-2.0
// Source: github.com/krzymod/zopfli

package zopfli

import "sync/atomic"

// cancelFlag is a single one-shot interrupt signal checked between
// optimizer iterations (never inside an inner loop), per the Design
// Notes' threading section. A second RequestCancel after the flag is
// already set is a no-op. Compress and DeflatePart never return
// ErrAborted: a cancelled run stops refining and returns the best
// result found so far. CompressConcurrent returns ErrAborted when the
// flag was set before one of its master blocks started.
type cancelFlag struct {
	set atomic.Bool
}

// newCancelFlag returns a fresh, unset cancellation flag.
func newCancelFlag() *cancelFlag {
	return &cancelFlag{}
}

// requested reports whether cancellation has been requested.
func (c *cancelFlag) requested() bool {
	if c == nil {
		return false
	}
	return c.set.Load()
}

// request sets the flag. Idempotent.
func (c *cancelFlag) request() {
	c.set.Store(true)
}

// Canceler is returned by WithCancel and lets a caller running Compress
// in another goroutine request early termination.
type Canceler struct {
	flag *cancelFlag
}

// RequestCancel asks the in-flight compression to abort at the next
// iteration boundary. It never blocks and may be called more than once.
func (c *Canceler) RequestCancel() {
	if c == nil || c.flag == nil {
		return
	}
	c.flag.request()
}

// WithCancel attaches a Canceler to opts, returning a copy of opts (opts
// itself is not mutated) and the Canceler to hand to another goroutine.
// If opts is nil, DefaultOptions is used as the base.
func WithCancel(opts *Options) (*Options, *Canceler) {
	o := *normalized(opts)
	flag := newCancelFlag()
	o.interrupted = flag
	return &o, &Canceler{flag: flag}
}
