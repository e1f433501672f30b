// SPDX-License-Identifier: Apache-2.0
// Source: github.com/krzymod/zopfli

package zopfli

import "hash/adler32"

// CompressZlib wraps a DEFLATE stream in an RFC 1950 zlib container:
// a 2-byte CMF/FLG header followed by the deflate payload and a
// trailing 4-byte big-endian Adler-32 checksum of the uncompressed
// data. Grounded on original_source/src/zopfli/zlib_container.c; the
// core Deflate call stays decoder-format-agnostic, exactly as §1
// scopes it — this file only adds the framing bytes.
func CompressZlib(data []byte, opts *Options) ([]byte, error) {
	payload, err := Deflate(data, opts)
	if err != nil {
		return nil, err
	}

	// CMF: CM=8 (deflate), CINFO=7 (32K window). FLG: FCHECK makes
	// (CMF<<8|FLG) a multiple of 31, FDICT=0, FLEVEL=2 (default).
	const cmf = 0x78
	flg := byte(0x9c)
	if rem := (int(cmf)*256 + int(flg)) % 31; rem != 0 {
		flg += byte(31 - rem)
	}

	out := make([]byte, 0, 2+len(payload)+4)
	out = append(out, cmf, flg)
	out = append(out, payload...)

	sum := adler32.Checksum(data)
	out = append(out, byte(sum>>24), byte(sum>>16), byte(sum>>8), byte(sum))
	return out, nil
}
