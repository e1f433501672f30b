// SPDX-License-Identifier: Apache-2.0
// Source: github.com/krzymod/zopfli

package zopfli

import (
	"archive/zip"
	"bytes"
	"compress/gzip"
	"compress/zlib"
	"io"
	"testing"
)

func TestCompressZlib_RoundTrip(t *testing.T) {
	for _, in := range testInputSet() {
		t.Run(in.name, func(t *testing.T) {
			out, err := CompressZlib(in.data, &Options{NumIterations: 2})
			if err != nil {
				t.Fatalf("CompressZlib failed: %v", err)
			}
			r, err := zlib.NewReader(bytes.NewReader(out))
			if err != nil {
				t.Fatalf("stdlib zlib rejected our container: %v", err)
			}
			defer r.Close()
			got, err := io.ReadAll(r)
			if err != nil {
				t.Fatalf("stdlib zlib failed to decode: %v", err)
			}
			if !bytes.Equal(got, in.data) {
				t.Fatalf("round-trip mismatch: got %d want %d", len(got), len(in.data))
			}
		})
	}
}

func TestCompressGzip_RoundTrip(t *testing.T) {
	for _, in := range testInputSet() {
		t.Run(in.name, func(t *testing.T) {
			out, err := CompressGzip(in.data, &Options{NumIterations: 2}, "test.bin")
			if err != nil {
				t.Fatalf("CompressGzip failed: %v", err)
			}
			r, err := gzip.NewReader(bytes.NewReader(out))
			if err != nil {
				t.Fatalf("stdlib gzip rejected our container: %v", err)
			}
			defer r.Close()
			got, err := io.ReadAll(r)
			if err != nil {
				t.Fatalf("stdlib gzip failed to decode: %v", err)
			}
			if !bytes.Equal(got, in.data) {
				t.Fatalf("round-trip mismatch: got %d want %d", len(got), len(in.data))
			}
			if r.Name != "test.bin" {
				t.Fatalf("filename not preserved: got %q", r.Name)
			}
		})
	}
}

func TestCompressZip_RoundTrip(t *testing.T) {
	entries := []ZipEntry{
		{Name: "a.txt", Data: bytes.Repeat([]byte("aaaa"), 500)},
		{Name: "dir/b.txt", Data: []byte("short file")},
		{Name: "empty.txt", Data: nil},
	}

	out, err := CompressZip(entries, &Options{NumIterations: 2})
	if err != nil {
		t.Fatalf("CompressZip failed: %v", err)
	}

	zr, err := zip.NewReader(bytes.NewReader(out), int64(len(out)))
	if err != nil {
		t.Fatalf("stdlib zip rejected our archive: %v", err)
	}
	if len(zr.File) != len(entries) {
		t.Fatalf("got %d entries, want %d", len(zr.File), len(entries))
	}
	for i, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("opening entry %q: %v", f.Name, err)
		}
		got, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("reading entry %q: %v", f.Name, err)
		}
		if f.Name != entries[i].Name {
			t.Fatalf("entry %d name mismatch: got %q want %q", i, f.Name, entries[i].Name)
		}
		if !bytes.Equal(got, entries[i].Data) {
			t.Fatalf("entry %q content mismatch", f.Name)
		}
	}
}
