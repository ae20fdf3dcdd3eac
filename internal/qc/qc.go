// Package qc classifies FASTQ reads against alphabet, length, N-content,
// homopolymer and quality thresholds.
package qc

import (
	"errors"
	"fmt"

	"github.com/vertti/seqcheck/internal/charset"
	"github.com/vertti/seqcheck/internal/check"
	"github.com/vertti/seqcheck/internal/encoder"
	"github.com/vertti/seqcheck/internal/parser"
	"github.com/vertti/seqcheck/internal/stats"
	"github.com/vertti/seqcheck/internal/value"
)

// ErrInvalidConfig is returned for thresholds that cannot be applied.
var ErrInvalidConfig = errors.New("invalid qc config")

// Config holds the thresholds a read must meet.
type Config struct {
	Alphabet charset.Tag
	Encoding encoder.QualityEncoding
	// MinQuality is the per-base quality counted as passing. It must be
	// built for Encoding, e.g. with encoder.Threshold.
	MinQuality value.QualityScore
	// MinPassPercent is the share of bases that must reach MinQuality.
	MinPassPercent value.Percent
	// MaxHomopolymerPercent is the largest share one symbol may take.
	// 100 disables the check.
	MaxHomopolymerPercent value.Percent
	MinLength             int
	// MaxN is the most N/n bases allowed; negative means unlimited.
	MaxN int
}

// DefaultConfig returns permissive thresholds for short-read data.
func DefaultConfig() Config {
	return Config{
		Alphabet:              charset.DNAMixedN,
		Encoding:              encoder.EncodingPhred33,
		MinQuality:            phred33(20),
		MinPassPercent:        value.MustPercent(80),
		MaxHomopolymerPercent: value.MustPercent(90),
		MinLength:             20,
		MaxN:                  5,
	}
}

// StrictConfig returns thresholds for high-confidence reads.
func StrictConfig() Config {
	return Config{
		Alphabet:              charset.DNA,
		Encoding:              encoder.EncodingPhred33,
		MinQuality:            phred33(30),
		MinPassPercent:        value.MustPercent(90),
		MaxHomopolymerPercent: value.MustPercent(75),
		MinLength:             50,
		MaxN:                  0,
	}
}

func phred33(score int) value.QualityScore {
	q, err := value.Phred33FromScore(score)
	if err != nil {
		panic(err)
	}
	return q
}

// Validate reports whether c can be applied.
func (c Config) Validate() error {
	if c.Alphabet.Len() == 0 {
		return fmt.Errorf("%w: unknown alphabet %d", ErrInvalidConfig, c.Alphabet)
	}
	if c.MinQuality.IsZero() {
		return fmt.Errorf("%w: min quality not set", ErrInvalidConfig)
	}
	if c.MinQuality.Offset() != c.Encoding.Offset() || !c.Encoding.Domain().Contains(c.MinQuality.Char()) {
		return fmt.Errorf("%w: min quality %s is not a %s quality", ErrInvalidConfig, c.MinQuality, c.Encoding)
	}
	if c.MinLength < 0 {
		return fmt.Errorf("%w: negative min length %d", ErrInvalidConfig, c.MinLength)
	}
	return nil
}

// Reason says why a read failed; ReasonNone means it passed.
type Reason uint8

// Failure reasons, in the order they are checked.
const (
	ReasonNone Reason = iota
	ReasonEmpty
	ReasonAlphabet
	ReasonQualityDomain
	ReasonTooShort
	ReasonTooManyN
	ReasonHomopolymer
	ReasonLowQuality
	numReasons
)

var reasonNames = [numReasons]string{
	ReasonNone:          "pass",
	ReasonEmpty:         "empty",
	ReasonAlphabet:      "alphabet",
	ReasonQualityDomain: "quality-domain",
	ReasonTooShort:      "too-short",
	ReasonTooManyN:      "too-many-n",
	ReasonHomopolymer:   "homopolymer",
	ReasonLowQuality:    "low-quality",
}

func (r Reason) String() string {
	if r >= numReasons {
		return "unknown"
	}
	return reasonNames[r]
}

// Reasons returns every reason in check order.
func Reasons() []Reason {
	out := make([]Reason, numReasons)
	for i := range out {
		out[i] = Reason(i)
	}
	return out
}

// Result is the outcome of checking one read. Metrics are only filled in
// once the read has passed the domain checks.
type Result struct {
	Passed         bool
	Reason         Reason
	MeanScore      int
	PercentPassing value.Percent
	Homopolymer    value.Percent
}

func fail(r Reason) Result { return Result{Reason: r} }

// Check classifies rec against c. Reads that violate a threshold or a
// domain are reported through Result.Reason; an error means c is invalid.
func (c Config) Check(rec *parser.Record) (Result, error) {
	if err := c.Validate(); err != nil {
		return Result{}, err
	}
	return c.check(rec), nil
}

func (c Config) check(rec *parser.Record) Result {
	if len(rec.Sequence) == 0 {
		return fail(ReasonEmpty)
	}
	if !check.IsAll(rec.Sequence, c.Alphabet) {
		return fail(ReasonAlphabet)
	}
	if !check.IsAll(rec.Quality, c.Encoding.Domain()) || len(rec.Quality) != len(rec.Sequence) {
		return fail(ReasonQualityDomain)
	}

	// Inputs are non-empty and in-domain from here on, so the metric
	// helpers cannot fail.
	mean, _ := stats.Mean(rec.Quality)
	passing, _ := stats.PercentAtLeast(rec.Quality, c.MinQuality.Char())
	homo, _ := check.HomopolymerPercent(rec.Sequence)

	res := Result{
		MeanScore:      mean - c.Encoding.Offset(),
		PercentPassing: passing,
		Homopolymer:    homo,
	}

	switch {
	case len(rec.Sequence) < c.MinLength:
		res.Reason = ReasonTooShort
	case c.MaxN >= 0 && check.CountN(rec.Sequence) > c.MaxN:
		res.Reason = ReasonTooManyN
	case homo.Value() > c.MaxHomopolymerPercent.Value():
		res.Reason = ReasonHomopolymer
	case !passing.AtLeast(c.MinPassPercent):
		res.Reason = ReasonLowQuality
	default:
		res.Passed = true
	}
	return res
}

// Summary counts results by reason.
type Summary struct {
	Total    int
	Passed   int
	ByReason map[Reason]int
}

// Failed returns the number of reads that did not pass.
func (s Summary) Failed() int { return s.Total - s.Passed }

// Add records one result.
func (s *Summary) Add(r Result) {
	if s.ByReason == nil {
		s.ByReason = make(map[Reason]int)
	}
	s.Total++
	if r.Passed {
		s.Passed++
		return
	}
	s.ByReason[r.Reason]++
}
