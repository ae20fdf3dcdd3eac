// Package fqio opens FASTQ streams, transparently handling gzip and zstd
// compression.
package fqio

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/klauspost/pgzip"
)

// Compression identifies a stream compression format.
type Compression uint8

// Supported compression formats.
const (
	None Compression = iota
	Gzip
	Zstd
)

func (c Compression) String() string {
	switch c {
	case Gzip:
		return "gzip"
	case Zstd:
		return "zstd"
	default:
		return "none"
	}
}

var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
)

const bufferSize = 1 << 20

// Detect peeks at the start of br and reports its compression.
func Detect(br *bufio.Reader) (Compression, error) {
	header, err := br.Peek(len(zstdMagic))
	if err != nil && !errors.Is(err, io.EOF) {
		return None, err
	}
	switch {
	case bytes.HasPrefix(header, gzipMagic):
		return Gzip, nil
	case bytes.HasPrefix(header, zstdMagic):
		return Zstd, nil
	}
	return None, nil
}

// ForPath returns the compression implied by a file name suffix.
func ForPath(path string) Compression {
	lower := strings.ToLower(path)
	switch {
	case strings.HasSuffix(lower, ".gz"):
		return Gzip
	case strings.HasSuffix(lower, ".zst"):
		return Zstd
	}
	return None
}

// Open opens path for reading; "" and "-" mean stdin. Compressed input is
// detected by magic bytes. The returned cleanup closes everything Open opened.
func Open(path string) (io.Reader, func(), error) {
	if path == "" || path == "-" {
		return Wrap(os.Stdin, func() {})
	}

	f, err := os.Open(path) //nolint:gosec // CLI tool needs to open user-specified files
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open input: %w", err)
	}
	return Wrap(f, func() { _ = f.Close() })
}

// Wrap decompresses in if it starts with gzip or zstd magic bytes.
// closeInput is called by the returned cleanup, or immediately on error.
func Wrap(in io.Reader, closeInput func()) (io.Reader, func(), error) {
	br := bufio.NewReaderSize(in, bufferSize)
	comp, err := Detect(br)
	if err != nil {
		closeInput()
		return nil, nil, fmt.Errorf("cannot inspect input: %w", err)
	}

	switch comp {
	case Gzip:
		gz, err := gzip.NewReader(br)
		if err != nil {
			closeInput()
			return nil, nil, fmt.Errorf("cannot open gzip input: %w", err)
		}
		return gz, func() {
			_ = gz.Close()
			closeInput()
		}, nil
	case Zstd:
		zr, err := zstd.NewReader(br)
		if err != nil {
			closeInput()
			return nil, nil, fmt.Errorf("cannot open zstd input: %w", err)
		}
		return zr, func() {
			zr.Close()
			closeInput()
		}, nil
	}

	return br, closeInput, nil
}

// Create opens path for writing; "" and "-" mean stdout. A ".gz" or ".zst"
// suffix selects compression. Output is buffered; the cleanup flushes and
// closes it and reports the first error.
func Create(path string) (io.Writer, func() error, error) {
	if path == "" || path == "-" {
		bw := bufio.NewWriterSize(os.Stdout, bufferSize)
		return bw, bw.Flush, nil
	}

	f, err := os.Create(path) //nolint:gosec // CLI tool needs to create user-specified files
	if err != nil {
		return nil, nil, fmt.Errorf("cannot create output: %w", err)
	}
	w, closeW, err := NewWriter(f, ForPath(path))
	if err != nil {
		_ = f.Close()
		return nil, nil, err
	}
	return w, func() error {
		return errors.Join(closeW(), f.Close())
	}, nil
}

// NewWriter wraps w with a buffered compressor. Gzip output is compressed in
// parallel blocks. The returned close function flushes everything to w but
// does not close w itself.
func NewWriter(w io.Writer, comp Compression) (io.Writer, func() error, error) {
	bw := bufio.NewWriterSize(w, bufferSize)

	switch comp {
	case Gzip:
		gz := pgzip.NewWriter(bw)
		return gz, func() error {
			return errors.Join(gz.Close(), bw.Flush())
		}, nil
	case Zstd:
		zw, err := zstd.NewWriter(bw, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			return nil, nil, fmt.Errorf("creating zstd encoder: %w", err)
		}
		return zw, func() error {
			return errors.Join(zw.Close(), bw.Flush())
		}, nil
	}

	return bw, bw.Flush, nil
}
