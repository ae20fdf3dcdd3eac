package fqio

import (
	"bufio"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fastq = "@r1\nACGT\n+\n!!!!\n"

func TestCreateOpenRoundTrip(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"reads.fastq", "reads.fastq.gz", "reads.fastq.zst"} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), name)
			w, done, err := Create(path)
			require.NoError(t, err)
			_, err = io.WriteString(w, fastq)
			require.NoError(t, err)
			require.NoError(t, done())

			r, cleanup, err := Open(path)
			require.NoError(t, err)
			defer cleanup()

			got, err := io.ReadAll(r)
			require.NoError(t, err)
			assert.Equal(t, fastq, string(got))
		})
	}
}

func TestOpenDetectsByMagicNotSuffix(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for _, comp := range []Compression{Gzip, Zstd} {
		var buf bytes.Buffer
		w, done, err := NewWriter(&buf, comp)
		require.NoError(t, err)
		_, err = io.WriteString(w, fastq)
		require.NoError(t, err)
		require.NoError(t, done())

		path := filepath.Join(dir, comp.String()+".bin")
		require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))

		r, cleanup, err := Open(path)
		require.NoError(t, err)
		got, err := io.ReadAll(r)
		cleanup()
		require.NoError(t, err)
		assert.Equal(t, fastq, string(got), comp.String())
	}
}

func TestOpenMissingFile(t *testing.T) {
	t.Parallel()

	_, _, err := Open(filepath.Join(t.TempDir(), "missing.fq"))
	assert.Error(t, err)
}

func TestWrapEmptyInput(t *testing.T) {
	t.Parallel()

	closed := false
	r, cleanup, err := Wrap(strings.NewReader(""), func() { closed = true })
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Empty(t, got)

	cleanup()
	assert.True(t, closed)
}

func TestDetect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input []byte
		want  Compression
	}{
		{[]byte{0x1f, 0x8b, 0x08}, Gzip},
		{[]byte{0x28, 0xb5, 0x2f, 0xfd, 0x00}, Zstd},
		{[]byte("@r1"), None},
		{[]byte{0x1f}, None},
		{nil, None},
	}

	for _, tt := range tests {
		got, err := Detect(bufio.NewReader(bytes.NewReader(tt.input)))
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "%x", tt.input)
	}
}

func TestForPath(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Gzip, ForPath("a.fq.GZ"))
	assert.Equal(t, Zstd, ForPath("a.fq.zst"))
	assert.Equal(t, None, ForPath("a.fq"))
}
