// SPDX-License-Identifier: Apache-2.0
// Source: github.com/krzymod/zopfli

package zopfli

import (
	"archive/zip"
	"bytes"
	"testing"
	"testing/fstest"
)

func TestCompressDirToZip_FiltersByGlob(t *testing.T) {
	fsys := fstest.MapFS{
		"src/main.go":     &fstest.MapFile{Data: []byte("package main")},
		"src/util.go":     &fstest.MapFile{Data: []byte("package main // util")},
		"README.md":       &fstest.MapFile{Data: []byte("# readme")},
		"vendor/lib/x.go": &fstest.MapFile{Data: []byte("package lib")},
	}

	out, err := CompressDirToZip(fsys, []string{"**/*.go"}, &Options{NumIterations: 1})
	if err != nil {
		t.Fatalf("CompressDirToZip failed: %v", err)
	}

	zr, err := zip.NewReader(bytes.NewReader(out), int64(len(out)))
	if err != nil {
		t.Fatalf("stdlib zip rejected archive: %v", err)
	}

	names := map[string]bool{}
	for _, f := range zr.File {
		names[f.Name] = true
	}
	for _, want := range []string{"src/main.go", "src/util.go", "vendor/lib/x.go"} {
		if !names[want] {
			t.Errorf("expected %q in archive, got %v", want, names)
		}
	}
	if names["README.md"] {
		t.Error("README.md should have been filtered out by the glob")
	}
}
