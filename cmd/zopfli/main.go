// SPDX-License-Identifier: Apache-2.0
// Source: github.com/krzymod/zopfli

// Command zopfli compresses a file (or stdin when no file is given)
// with the zopfli package and writes the result to the path given by
// -o, or to stdout when -o is not given.
// This front-end does no compression logic of its own; it only wires
// flags to package zopfli's exported API, the way a teacher library
// with a thin separate CLI keeps the library itself free of os.Args
// and flag parsing.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/krzymod/zopfli"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "zopfli:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("zopfli", flag.ContinueOnError)
	format := fs.String("format", "gzip", "output container: deflate, zlib, gzip, or zip")
	out := fs.String("o", "", "output path (default: stdout)")
	iterations := fs.Int("i", 15, "number of LZ77 optimizer iterations")
	threads := fs.Int("threads", 1, "Options.NumThreads value; every -format here compresses single-threaded")
	noSplit := fs.Bool("nosplit", false, "disable block splitting")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var data []byte
	var err error
	var inputName string
	if fs.NArg() == 0 {
		data, err = readAll(os.Stdin)
	} else {
		inputName = fs.Arg(0)
		data, err = os.ReadFile(inputName)
	}
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	opts := zopfli.DefaultOptions()
	opts.NumIterations = *iterations
	opts.NumThreads = *threads
	opts.BlockSplitting = !*noSplit

	var result []byte
	switch *format {
	case "deflate":
		result, err = zopfli.Deflate(data, opts)
	case "zlib":
		result, err = zopfli.CompressZlib(data, opts)
	case "gzip":
		result, err = zopfli.CompressGzip(data, opts, filepath.Base(inputName))
	case "zip":
		name := inputName
		if name == "" {
			name = "stdin"
		}
		result, err = zopfli.CompressZip([]zopfli.ZipEntry{{Name: filepath.Base(name), Data: data}}, opts)
	default:
		return fmt.Errorf("unknown -format %q", *format)
	}
	if err != nil {
		return fmt.Errorf("compressing: %w", err)
	}

	if *out == "" {
		_, err = os.Stdout.Write(result)
		return err
	}
	return os.WriteFile(*out, result, 0o644)
}

func readAll(f *os.File) ([]byte, error) {
	var buf []byte
	chunk := make([]byte, 64*1024)
	for {
		n, err := f.Read(chunk)
		buf = append(buf, chunk[:n]...)
		if err != nil {
			if err == io.EOF {
				return buf, nil
			}
			return buf, err
		}
	}
}
