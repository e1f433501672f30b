// SPDX-License-Identifier: Apache-2.0
// Source: github.com/krzymod/zopfli

package zopfli

import "hash/crc32"

// CompressGzip wraps a DEFLATE stream in an RFC 1952 gzip container:
// the 10-byte fixed header, an optional NUL-terminated original
// filename, the deflate payload, then a trailing CRC-32 and ISIZE (mod
// 2^32 uncompressed length), both little-endian. Grounded on
// original_source/src/zopfli/gzip_container.c's ZopfliGzipCompress.
func CompressGzip(data []byte, opts *Options, filename string) ([]byte, error) {
	payload, err := Deflate(data, opts)
	if err != nil {
		return nil, err
	}

	const (
		id1 = 0x1f
		id2 = 0x8b
		cm  = 8 // deflate
		xfl = 2 // "maximum compression" flag, matches the reference tool's own choice
		os  = 3 // unix, matches gzip_container.c's hardcoded OS byte
	)

	var flg byte
	if filename != "" {
		flg |= 0x08 // FNAME
	}

	out := make([]byte, 0, 10+len(filename)+1+len(payload)+8)
	out = append(out, id1, id2, cm, flg, 0, 0, 0, 0, xfl, os)
	if filename != "" {
		out = append(out, []byte(filename)...)
		out = append(out, 0)
	}
	out = append(out, payload...)

	crc := crc32.ChecksumIEEE(data)
	isize := uint32(len(data))
	out = append(out, byte(crc), byte(crc>>8), byte(crc>>16), byte(crc>>24))
	out = append(out, byte(isize), byte(isize>>8), byte(isize>>16), byte(isize>>24))
	return out, nil
}
