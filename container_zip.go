// SPDX-License-Identifier: Apache-2.0
// Source: github.com/krzymod/zopfli

package zopfli

import (
	"encoding/binary"
	"hash/crc32"
	"time"
)

// ZipEntry is one file to add to a zip archive built by CompressZip.
type ZipEntry struct {
	Name     string
	Data     []byte
	Modified time.Time
}

// CompressZip builds a PKZIP archive containing entries, each deflated
// independently under opts (nil for defaults): a local file header +
// deflated data per entry, followed by the central directory and the
// end-of-central-directory record. Grounded on
// original_source/src/zopfli/zip_container.c's per-file local/central
// header layout (this module writes plain PKZIP, not ZIP64 — callers
// with per-file or archive sizes beyond 4 GiB need a different writer).
func CompressZip(entries []ZipEntry, opts *Options) ([]byte, error) {
	var out []byte
	type centralRecord struct {
		name           string
		crc            uint32
		compSize       uint32
		uncompSize     uint32
		localHeaderOff uint32
		dosTime        uint16
		dosDate        uint16
	}
	var central []centralRecord

	for _, e := range entries {
		payload, err := Deflate(e.Data, opts)
		if err != nil {
			return nil, err
		}
		crc := crc32.ChecksumIEEE(e.Data)
		dosTime, dosDate := dosDateTime(e.Modified)

		offset := uint32(len(out))
		var local [30]byte
		binary.LittleEndian.PutUint32(local[0:], 0x04034b50)
		binary.LittleEndian.PutUint16(local[4:], 20) // version needed
		binary.LittleEndian.PutUint16(local[6:], 0)  // flags
		binary.LittleEndian.PutUint16(local[8:], 8)  // method: deflate
		binary.LittleEndian.PutUint16(local[10:], dosTime)
		binary.LittleEndian.PutUint16(local[12:], dosDate)
		binary.LittleEndian.PutUint32(local[14:], crc)
		binary.LittleEndian.PutUint32(local[18:], uint32(len(payload)))
		binary.LittleEndian.PutUint32(local[22:], uint32(len(e.Data)))
		binary.LittleEndian.PutUint16(local[26:], uint16(len(e.Name)))
		binary.LittleEndian.PutUint16(local[28:], 0)

		out = append(out, local[:]...)
		out = append(out, []byte(e.Name)...)
		out = append(out, payload...)

		central = append(central, centralRecord{
			name:           e.Name,
			crc:            crc,
			compSize:       uint32(len(payload)),
			uncompSize:     uint32(len(e.Data)),
			localHeaderOff: offset,
			dosTime:        dosTime,
			dosDate:        dosDate,
		})
	}

	centralStart := uint32(len(out))
	for _, c := range central {
		var hdr [46]byte
		binary.LittleEndian.PutUint32(hdr[0:], 0x02014b50)
		binary.LittleEndian.PutUint16(hdr[4:], 20)
		binary.LittleEndian.PutUint16(hdr[6:], 20)
		binary.LittleEndian.PutUint16(hdr[8:], 0)
		binary.LittleEndian.PutUint16(hdr[10:], 8)
		binary.LittleEndian.PutUint16(hdr[12:], c.dosTime)
		binary.LittleEndian.PutUint16(hdr[14:], c.dosDate)
		binary.LittleEndian.PutUint32(hdr[16:], c.crc)
		binary.LittleEndian.PutUint32(hdr[20:], c.compSize)
		binary.LittleEndian.PutUint32(hdr[24:], c.uncompSize)
		binary.LittleEndian.PutUint16(hdr[28:], uint16(len(c.name)))
		binary.LittleEndian.PutUint32(hdr[42:], c.localHeaderOff)

		out = append(out, hdr[:]...)
		out = append(out, []byte(c.name)...)
	}
	centralSize := uint32(len(out)) - centralStart

	var eocd [22]byte
	binary.LittleEndian.PutUint32(eocd[0:], 0x06054b50)
	binary.LittleEndian.PutUint16(eocd[8:], uint16(len(central)))
	binary.LittleEndian.PutUint16(eocd[10:], uint16(len(central)))
	binary.LittleEndian.PutUint32(eocd[12:], centralSize)
	binary.LittleEndian.PutUint32(eocd[16:], centralStart)
	out = append(out, eocd[:]...)

	return out, nil
}

// dosDateTime converts t to the MS-DOS date/time pair PKZIP headers
// use; a zero Time encodes as the PKZIP epoch (1980-01-01).
func dosDateTime(t time.Time) (dosTime, dosDate uint16) {
	if t.IsZero() {
		t = time.Date(1980, 1, 1, 0, 0, 0, 0, time.UTC)
	}
	dosTime = uint16(t.Hour()<<11 | t.Minute()<<5 | t.Second()/2)
	year := t.Year() - 1980
	if year < 0 {
		year = 0
	}
	dosDate = uint16(year<<9 | int(t.Month())<<5 | t.Day())
	return
}
