// SPDX-License-Identifier: Apache-2.0
// Source: github.com/krzymod/zopfli

/*
Package zopfli implements a maximum-ratio, exhaustive-search compressor
producing RFC 1951 (DEFLATE) bitstreams, optionally wrapped in RFC 1950
(zlib), RFC 1952 (gzip), or PKZIP container envelopes.

It trades CPU time for density: the cost-directed LZ77 optimizer and
length-limited Huffman builder search for a near-optimal split of the
input into literal/match tokens and block boundaries, typically landing
3-8% smaller than a single-pass DEFLATE encoder at orders of magnitude
more compute.

# Compress

Options may be nil (uses DefaultOptions, equivalent to -15 iterations,
block splitting on):

	out, err := zopfli.Compress(data, nil)
	out, err := zopfli.Compress(data, &zopfli.Options{NumIterations: 5})

# Containers

The core only emits raw DEFLATE. Use the container wrappers to produce a
decoder-compatible file:

	out, err := zopfli.CompressGzip(data, nil, "")
	out, err := zopfli.CompressZlib(data, nil)

There is no decompression API and no incremental/streaming core API;
callers that need back-pressure chunk the input into master blocks
themselves (DeflatePart accepts an arbitrary byte range).
*/
package zopfli
