// Package parser provides fast FASTQ file parsing.
package parser

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/vertti/seqcheck/internal/bioerr"
)

// Errors for malformed records.
var (
	ErrMissingHeader    = errors.New("invalid FASTQ: header line must start with @")
	ErrMissingSeparator = errors.New("invalid FASTQ: separator line must start with +")
)

// Record represents a single FASTQ record.
type Record struct {
	Header   []byte // Header line without the leading '@'
	Sequence []byte // Sequence line
	PlusLine []byte // Separator payload after '+', usually empty
	Quality  []byte // Quality characters, encoding not yet known
}

// Write writes the record in FASTQ form.
func (r *Record) Write(w io.Writer) error {
	var buf bytes.Buffer
	buf.Grow(len(r.Header) + len(r.Sequence) + len(r.PlusLine) + len(r.Quality) + 6)
	buf.WriteByte('@')
	buf.Write(r.Header)
	buf.WriteByte('\n')
	buf.Write(r.Sequence)
	buf.WriteString("\n+")
	buf.Write(r.PlusLine)
	buf.WriteByte('\n')
	buf.Write(r.Quality)
	buf.WriteByte('\n')
	_, err := w.Write(buf.Bytes())
	return err
}

// Parser reads FASTQ records from an input stream.
type Parser struct {
	reader *bufio.Reader
	line   []byte // reusable buffer for reading lines
	n      int    // records read so far
}

// New creates a new FASTQ parser.
func New(r io.Reader) *Parser {
	return &Parser{
		reader: bufio.NewReaderSize(r, 1<<20), // 1MB buffer
		line:   make([]byte, 0, 512),
	}
}

// Next reads and returns the next FASTQ record.
// Returns io.EOF when no more records are available.
func (p *Parser) Next() (*Record, error) {
	rec := &Record{}
	if _, err := p.nextInto(rec, nil); err != nil {
		return nil, err
	}
	return rec, nil
}

// NextBatch reads up to n records into a batch.
// If fewer than n records are available, returns what's available; io.EOF is
// only returned once nothing is left. n must be in [1, 1<<20].
func (p *Parser) NextBatch(n int) ([]*Record, error) {
	if n < 1 || n > maxBatch {
		return nil, fmt.Errorf("batch size: %w", &bioerr.OutOfRangeError{Given: n, Min: 1, Max: maxBatch})
	}
	batch := NewRecordBatch(n)
	if err := p.ReadBatch(batch); err != nil {
		return nil, err
	}
	out := make([]*Record, batch.Len())
	for i := range out {
		out[i] = &batch.Records[i]
	}
	return out, nil
}

// RecordBatch is a reusable set of records backed by one data buffer.
type RecordBatch struct {
	Records []Record
	data    []byte
	size    int
}

// maxBatch is the largest batch size accepted.
const maxBatch = 1 << 20

// NewRecordBatch creates a batch holding up to n records. ReadBatch rejects a
// batch created with n outside [1, 1<<20].
func NewRecordBatch(n int) *RecordBatch {
	if n < 1 || n > maxBatch {
		return &RecordBatch{size: n}
	}
	return &RecordBatch{
		Records: make([]Record, 0, n),
		// Typical Illumina reads are ~150bp, so estimate 300 bytes per record (seq+qual).
		data: make([]byte, 0, n*300),
		size: n,
	}
}

// Len returns the number of records in the batch.
func (b *RecordBatch) Len() int {
	return len(b.Records)
}

// ReadBatch refills batch with up to its capacity of records. Records from the
// previous call are overwritten. Returns io.EOF when no records were read.
func (p *Parser) ReadBatch(batch *RecordBatch) error {
	if batch.size < 1 || batch.size > maxBatch {
		return fmt.Errorf("batch size: %w", &bioerr.OutOfRangeError{Given: batch.size, Min: 1, Max: maxBatch})
	}
	batch.Records = batch.Records[:0]
	batch.data = batch.data[:0]

	for len(batch.Records) < batch.size {
		var rec Record
		var err error
		batch.data, err = p.nextInto(&rec, batch.data)
		if err != nil {
			if errors.Is(err, io.EOF) && len(batch.Records) > 0 {
				return nil
			}
			return err
		}
		batch.Records = append(batch.Records, rec)
	}
	return nil
}

// carve appends line to dataBuf and returns a capacity-limited view of it.
// A nil dataBuf gives the record its own allocation.
func carve(dataBuf, line []byte) ([]byte, []byte) {
	if dataBuf == nil {
		out := make([]byte, len(line))
		copy(out, line)
		return nil, out
	}
	start := len(dataBuf)
	dataBuf = append(dataBuf, line...)
	return dataBuf, dataBuf[start:len(dataBuf):len(dataBuf)]
}

// nextInto parses a FASTQ record into rec, appending its data to dataBuf and
// slicing from it. Returns the updated dataBuf.
//
// Appending may reallocate dataBuf; views carved earlier keep pointing at
// the old array, which stays valid.
func (p *Parser) nextInto(rec *Record, dataBuf []byte) ([]byte, error) {
	// Line 1: Header (starts with @)
	line, err := p.readLine()
	if err != nil {
		return dataBuf, err
	}
	if len(line) == 0 || line[0] != '@' {
		return dataBuf, fmt.Errorf("record %d: %w", p.n+1, ErrMissingHeader)
	}
	dataBuf, rec.Header = carve(dataBuf, line[1:])

	// Line 2: Sequence
	line, err = p.readLine()
	if err != nil {
		return dataBuf, truncated(err)
	}
	dataBuf, rec.Sequence = carve(dataBuf, line)

	// Line 3: Plus line, optional payload kept for round-tripping
	line, err = p.readLine()
	if err != nil {
		return dataBuf, truncated(err)
	}
	if len(line) == 0 || line[0] != '+' {
		return dataBuf, fmt.Errorf("record %d: %w", p.n+1, ErrMissingSeparator)
	}
	dataBuf, rec.PlusLine = carve(dataBuf, line[1:])

	// Line 4: Quality scores
	line, err = p.readLine()
	if err != nil {
		return dataBuf, truncated(err)
	}
	dataBuf, rec.Quality = carve(dataBuf, line)

	p.n++
	if len(rec.Sequence) != len(rec.Quality) {
		return dataBuf, fmt.Errorf("record %d (%s): sequence and quality: %w", p.n, rec.Header,
			&bioerr.LengthMismatchError{Left: len(rec.Sequence), Right: len(rec.Quality)})
	}

	return dataBuf, nil
}

func truncated(err error) error {
	if errors.Is(err, io.EOF) {
		return io.ErrUnexpectedEOF
	}
	return err
}

// readLine reads a line from the input, stripping the newline.
// Reuses an internal buffer to minimize allocations.
func (p *Parser) readLine() ([]byte, error) {
	p.line = p.line[:0]

	for {
		segment, isPrefix, err := p.reader.ReadLine()
		if err != nil {
			return nil, err
		}

		p.line = append(p.line, segment...)

		if !isPrefix {
			break
		}
	}

	// Trim any trailing CR (for Windows line endings)
	p.line = bytes.TrimSuffix(p.line, []byte{'\r'})

	return p.line, nil
}
