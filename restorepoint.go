// SPDX-License-Identifier: Apache-2.0
// Source: github.com/krzymod/zopfli

package zopfli

import (
	"encoding/binary"
	"fmt"
	"os"

	"github.com/cespare/xxhash/v2"
)

// restorePointMagic identifies this module's restore-point format; it
// deliberately differs from the C tool's own magic bytes since the
// serialized layout below is not byte-compatible with it (§6, §7.3
// "mismatch -> fresh run").
var restorePointMagic = [8]byte{'Z', 'R', 'P', 'T', 0, 2, 0, 1}

// restorePoint is the binary state LoadRestorePoint/SaveRestorePoint persist so
// a long-running compression of a large master block can resume after
// an interruption instead of restarting the whole optimizer loop.
// Grounded on original_source/src/zopfli/deflate.c's
// LoadRestore/SaveRestore/Verifysize_t/ErrorRestore.
type restorePoint struct {
	Mode        uint8 // which optimizer phase was in flight
	Iteration   int
	TotalCost   float64
	SplitPoints []int
	StorePrefix *lz77Store // tokens already committed for this block
}

const (
	restoreModeGreedySeed uint8 = iota
	restoreModeOptimalIteration
	restoreModeSplitLast
)

// SaveRestorePoint atomically writes rp to path: it writes to path+".tmp"
// then renames over path, so a crash mid-write never leaves a
// half-written file that LoadRestorePoint could misread as valid.
// Integrity is checked with an xxhash64 stamp over the payload rather
// than a CRC, since this file is never read by anything but this
// module (the RFC checksums in the container writers stay CRC-32/
// Adler-32 because those ARE read by third-party decoders).
func SaveRestorePoint(path string, rp *restorePoint) error {
	payload := encodeRestorePoint(rp)
	sum := xxhash.Sum64(payload)

	buf := make([]byte, 0, 8+8+4+len(payload))
	buf = append(buf, restorePointMagic[:]...)
	var sumBytes [8]byte
	binary.LittleEndian.PutUint64(sumBytes[:], sum)
	buf = append(buf, sumBytes[:]...)
	var sizeBytes [4]byte
	binary.LittleEndian.PutUint32(sizeBytes[:], uint32(len(payload)))
	buf = append(buf, sizeBytes[:]...)
	buf = append(buf, payload...)

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, buf, 0o600); err != nil {
		return fmt.Errorf("zopfli: writing restore point: %w", err)
	}
	return os.Rename(tmp, path)
}

// LoadRestorePoint reads and validates a restore point written by
// SaveRestorePoint. A magic, size, or checksum mismatch returns
// ErrRestorePointMismatch so the caller discards it and starts fresh,
// rather than an error that implies the file is merely unreadable.
func LoadRestorePoint(path string) (*restorePoint, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("zopfli: reading restore point: %w", err)
	}
	if len(raw) < 20 {
		return nil, ErrRestorePointMismatch
	}
	if string(raw[:8]) != string(restorePointMagic[:]) {
		return nil, ErrRestorePointMismatch
	}
	wantSum := binary.LittleEndian.Uint64(raw[8:16])
	size := binary.LittleEndian.Uint32(raw[16:20])
	payload := raw[20:]
	if uint32(len(payload)) != size {
		return nil, ErrRestorePointMismatch
	}
	if xxhash.Sum64(payload) != wantSum {
		return nil, ErrRestorePointMismatch
	}

	return decodeRestorePoint(payload)
}

// RemoveRestorePoint deletes path after a block finishes successfully;
// a missing file is not an error (the caller may call this
// defensively even when no restore point was ever written).
func RemoveRestorePoint(path string) error {
	err := os.Remove(path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func encodeRestorePoint(rp *restorePoint) []byte {
	var buf []byte
	buf = append(buf, rp.Mode)

	var itBytes [8]byte
	binary.LittleEndian.PutUint64(itBytes[:], uint64(rp.Iteration))
	buf = append(buf, itBytes[:]...)

	var costBytes [8]byte
	binary.LittleEndian.PutUint64(costBytes[:], uint64(int64(rp.TotalCost*1e6)))
	buf = append(buf, costBytes[:]...)

	var nSplits [4]byte
	binary.LittleEndian.PutUint32(nSplits[:], uint32(len(rp.SplitPoints)))
	buf = append(buf, nSplits[:]...)
	for _, s := range rp.SplitPoints {
		var b [8]byte
		binary.LittleEndian.PutUint64(b[:], uint64(s))
		buf = append(buf, b[:]...)
	}

	if rp.StorePrefix != nil {
		buf = append(buf, encodeLZ77StorePrefix(rp.StorePrefix)...)
	}

	return buf
}

func decodeRestorePoint(buf []byte) (*restorePoint, error) {
	if len(buf) < 1+8+8+4 {
		return nil, ErrRestorePointMismatch
	}
	rp := &restorePoint{Mode: buf[0]}
	off := 1
	rp.Iteration = int(binary.LittleEndian.Uint64(buf[off : off+8]))
	off += 8
	rp.TotalCost = float64(int64(binary.LittleEndian.Uint64(buf[off:off+8]))) / 1e6
	off += 8
	n := int(binary.LittleEndian.Uint32(buf[off : off+4]))
	off += 4
	if off+n*8 > len(buf) {
		return nil, ErrRestorePointMismatch
	}
	rp.SplitPoints = make([]int, n)
	for i := 0; i < n; i++ {
		rp.SplitPoints[i] = int(binary.LittleEndian.Uint64(buf[off : off+8]))
		off += 8
	}

	if off < len(buf) {
		store, err := decodeLZ77StorePrefix(buf[off:])
		if err != nil {
			return nil, err
		}
		rp.StorePrefix = store
	}

	return rp, nil
}

// encodeLZ77StorePrefix serializes the committed token slices of s as
// a flat sequence of (litlen, dist, pos) triples.
func encodeLZ77StorePrefix(s *lz77Store) []byte {
	buf := make([]byte, 4, 4+s.size()*8)
	binary.LittleEndian.PutUint32(buf[0:4], uint32(s.size()))
	for i := range s.litlens {
		var t [8]byte
		binary.LittleEndian.PutUint16(t[0:2], s.litlens[i])
		binary.LittleEndian.PutUint16(t[2:4], s.dists[i])
		binary.LittleEndian.PutUint32(t[4:8], uint32(s.pos[i]))
		buf = append(buf, t[:]...)
	}
	return buf
}

func decodeLZ77StorePrefix(buf []byte) (*lz77Store, error) {
	if len(buf) < 4 {
		return nil, ErrRestorePointMismatch
	}
	n := int(binary.LittleEndian.Uint32(buf[0:4]))
	if len(buf) < 4+n*8 {
		return nil, ErrRestorePointMismatch
	}
	s := newLZ77Store()
	off := 4
	for i := 0; i < n; i++ {
		litlen := binary.LittleEndian.Uint16(buf[off : off+2])
		dist := binary.LittleEndian.Uint16(buf[off+2 : off+4])
		pos := int(binary.LittleEndian.Uint32(buf[off+4 : off+8]))
		off += 8
		if dist == 0 {
			s.appendLiteral(byte(litlen), pos)
		} else {
			s.appendMatch(litlen, dist, pos)
		}
	}
	return s, nil
}
