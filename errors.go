// SPDX-License-Identifier: Apache-2.0
// Source: github.com/krzymod/zopfli

package zopfli

import "errors"

// Sentinel errors for compression and container framing.
var (
	// ErrInternal is returned when an internal invariant is violated
	// (e.g. a cached match length disagrees with its distance). Callers
	// can use errors.Is(err, zopfli.ErrInternal).
	ErrInternal = errors.New("zopfli: internal invariant violation")

	// ErrOutOfMemory is returned when the hash index, cache, or LZ77
	// store cannot be allocated. This is the only fatal category (§7.1).
	ErrOutOfMemory = errors.New("zopfli: out of memory")

	// ErrInvalidOption is returned by ValidateOptions for an option value
	// that has no safe default interpretation (§7.3).
	ErrInvalidOption = errors.New("zopfli: invalid option value")

	// ErrRestorePointMismatch is returned when a restore-point file's
	// magic, payload length or xxhash64 checksum does not match, or its
	// payload does not decode; the caller should discard it and start
	// fresh (§6, §7.3). The format carries no size_t width markers.
	ErrRestorePointMismatch = errors.New("zopfli: restore point mismatch")

	// ErrAborted is returned by CompressConcurrent when cancellation was
	// requested before one of its master blocks started (§5
	// Cancellation); no partial output is returned in that case. Compress
	// and DeflatePart never return it.
	ErrAborted = errors.New("zopfli: aborted by cancellation")
)
