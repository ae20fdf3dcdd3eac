// Package seqcheck provides a high-level API for validating and recoding
// nucleotide sequences and FASTQ quality strings.
//
// Example usage:
//
//	enc := seqcheck.DetectEncoding([][]byte{qual})
//	if err := seqcheck.Recode(qual, enc, seqcheck.Phred33); err != nil {
//	    log.Fatal(err)
//	}
//
//	q20, err := seqcheck.Threshold(20, seqcheck.Phred33)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	share, err := seqcheck.PercentAtLeast(qual, q20.Char())
package seqcheck

import (
	"context"
	"io"

	"github.com/vertti/seqcheck/internal/bioerr"
	"github.com/vertti/seqcheck/internal/charset"
	"github.com/vertti/seqcheck/internal/check"
	"github.com/vertti/seqcheck/internal/encoder"
	"github.com/vertti/seqcheck/internal/parser"
	"github.com/vertti/seqcheck/internal/qc"
	"github.com/vertti/seqcheck/internal/random"
	"github.com/vertti/seqcheck/internal/stats"
	"github.com/vertti/seqcheck/internal/value"
)

// Re-export types for convenience
type (
	Charset         = charset.Tag
	QualityEncoding = encoder.QualityEncoding
	Percent         = value.Percent
	QualityScore    = value.QualityScore
	Record          = parser.Record
	QCConfig        = qc.Config
	QCResult        = qc.Result
	QCSummary       = qc.Summary
	Source          = random.Source

	OutOfRangeError      = bioerr.OutOfRangeError
	NotInDomainError     = bioerr.NotInDomainError
	LengthMismatchError  = bioerr.LengthMismatchError
	ScoreOutOfRangeError = bioerr.ScoreOutOfRangeError
)

// Sentinel errors, for use with errors.Is.
var (
	ErrOutOfRange      = bioerr.ErrOutOfRange
	ErrNotInDomain     = bioerr.ErrNotInDomain
	ErrEmptyInput      = bioerr.ErrEmptyInput
	ErrLengthMismatch  = bioerr.ErrLengthMismatch
	ErrScoreOutOfRange = bioerr.ErrScoreOutOfRange
)

// Charsets
const (
	DNA             = charset.DNA
	DNAMixedN       = charset.DNAMixedN
	RNA             = charset.RNA
	IUPACNucleotide = charset.IUPACNucleotide
	IUPACAminoAcid  = charset.IUPACAminoAcid
	Sanger          = charset.Sanger
)

// Quality encodings
const (
	Phred33 = encoder.EncodingPhred33
	Phred64 = encoder.EncodingPhred64
	Solexa  = encoder.EncodingSolexa
)

// LookupCharset resolves a charset name, ignoring case.
func LookupCharset(name string) (Charset, bool) { return charset.Lookup(name) }

// ParseEncoding resolves a quality encoding name, ignoring case.
func ParseEncoding(name string) (QualityEncoding, error) { return encoder.ParseEncoding(name) }

// NewPercent returns a Percent for a value in [0, 100].
func NewPercent(v int) (Percent, error) { return value.NewPercent(v) }

// IsAll reports whether every byte of s is in cs.
func IsAll(s []byte, cs Charset) bool { return check.IsAll(s, cs) }

// HasAny reports whether any byte of s is in cs.
func HasAny(s []byte, cs Charset) bool { return check.HasAny(s, cs) }

// Validate returns a *NotInDomainError for the first byte of s outside cs.
func Validate(s []byte, cs Charset) error { return check.Validate(s, cs) }

// IsHomopolymer reports whether all bytes of s are identical.
func IsHomopolymer(s []byte) bool { return check.IsHomopolymer(s) }

// PercentHomopolymerPassing reports whether the most frequent byte makes up
// at least threshold percent of s.
func PercentHomopolymerPassing(s []byte, threshold Percent) (bool, error) {
	return check.PercentHomopolymerPassing(s, threshold)
}

// Decode returns the score of a single quality character.
func Decode(b byte, enc QualityEncoding) (int, error) { return encoder.Decode(b, enc) }

// Encode returns the quality character for score.
func Encode(score int, enc QualityEncoding) (byte, error) { return encoder.Encode(score, enc) }

// Threshold returns the validated quality character for score in enc, for
// use as a QCConfig.MinQuality or a PercentAtLeast threshold.
func Threshold(score int, enc QualityEncoding) (QualityScore, error) {
	return encoder.Threshold(score, enc)
}

// Recode converts qual in-place between encodings.
func Recode(qual []byte, from, to QualityEncoding) error { return encoder.Recode(qual, from, to) }

// DetectEncoding guesses the encoding of a sample of quality strings.
func DetectEncoding(qualities [][]byte) QualityEncoding { return encoder.DetectEncoding(qualities) }

// ReverseComplement returns the reverse complement of seq.
func ReverseComplement(seq []byte) ([]byte, error) { return encoder.ReverseComplement(seq) }

// Mean returns the floor of the mean byte value of s.
func Mean(s []byte) (int, error) { return stats.Mean(s) }

// Mode returns the most frequent byte of s.
func Mode(s []byte) (byte, error) { return stats.Mode(s) }

// PercentAtLeast returns the share of bytes of s that are >= threshold.
func PercentAtLeast(s []byte, threshold byte) (Percent, error) {
	return stats.PercentAtLeast(s, threshold)
}

// HammingDistance returns the number of differing positions of a and b.
func HammingDistance(a, b []byte) (int, error) { return stats.HammingDistance(a, b) }

// NewRand returns a seeded generator for the random functions.
func NewRand(seed uint64) Source { return random.New(seed) }

// RandomSequence returns n uniform draws from cs.
func RandomSequence(cs Charset, n int, rng Source) ([]byte, error) {
	return random.Sequence(cs, n, rng)
}

// ResolveAmbiguous replaces IUPAC ambiguity codes in seq with concrete bases.
func ResolveAmbiguous(seq []byte, rng Source) (int, error) {
	return random.ResolveAmbiguous(seq, rng)
}

// Shuffle permutes seq in-place, keeping its composition.
func Shuffle(seq []byte, rng Source) { random.Shuffle(seq, rng) }

// DefaultQC returns permissive read QC thresholds.
func DefaultQC() QCConfig { return qc.DefaultConfig() }

// StrictQC returns high-confidence read QC thresholds.
func StrictQC() QCConfig { return qc.StrictConfig() }

// CheckFASTQ runs read QC over every record in r. emit, when non-nil, sees
// each record and its result in input order.
func CheckFASTQ(ctx context.Context, r io.Reader, cfg QCConfig, emit func(*Record, QCResult) error) (QCSummary, error) {
	return qc.Pipeline{Config: cfg}.Run(ctx, parser.New(r), emit)
}
