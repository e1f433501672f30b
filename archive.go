// SPDX-License-Identifier: Apache-2.0
// Source: github.com/krzymod/zopfli

package zopfli

import (
	"io/fs"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
)

// CompressDirToZip walks root (an os.DirFS or any fs.FS), keeping only
// files whose slash-separated path matches one of patterns (doublestar
// glob syntax; a nil or empty patterns list matches everything), and
// deflates each into a PKZIP archive. This is the Go-idiomatic
// replacement for original_source/src/zopfli/zopfli_bin.c's
// usescandir option, which walked a directory with the C scandir
// call and a hand-rolled pattern matcher; doublestar gives the same
// "pick files by shell-style glob" behavior without reimplementing
// glob matching.
func CompressDirToZip(root fs.FS, patterns []string, opts *Options) ([]byte, error) {
	var entries []ZipEntry

	walkErr := doublestar.GlobWalk(root, "**", func(path string, d fs.DirEntry) error {
		if d.IsDir() {
			return nil
		}
		if len(patterns) > 0 && !matchesAny(path, patterns) {
			return nil
		}
		data, err := fs.ReadFile(root, path)
		if err != nil {
			return err
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		entries = append(entries, ZipEntry{
			Name:     filepath.ToSlash(path),
			Data:     data,
			Modified: info.ModTime(),
		})
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}

	return CompressZip(entries, opts)
}

func matchesAny(path string, patterns []string) bool {
	for _, p := range patterns {
		if ok, err := doublestar.Match(p, path); err == nil && ok {
			return true
		}
	}
	return false
}
