// Package random draws pseudo-random sequences from registry alphabets and
// replaces ambiguous or invalid bytes with concrete ones.
//
// The generator is always passed in by the caller, so output is reproducible
// under a seeded source.
package random

import (
	"fmt"
	"math/rand/v2"

	"github.com/vertti/seqcheck/internal/bioerr"
	"github.com/vertti/seqcheck/internal/charset"
	"github.com/vertti/seqcheck/internal/check"
	"github.com/vertti/seqcheck/internal/encoder"
)

// Source yields uniform integers in [0, n). *rand.Rand implements it.
type Source interface {
	IntN(n int) int
}

// New returns a PCG generator seeded with seed.
func New(seed uint64) *rand.Rand {
	//nolint:gosec // intentionally using math/rand for reproducibility, not security
	return rand.New(rand.NewPCG(seed, seed))
}

// Sequence returns n independent uniform draws from the alphabet t.
func Sequence(t charset.Tag, n int, rng Source) ([]byte, error) {
	if n < 0 {
		return nil, &bioerr.OutOfRangeError{Given: n, Min: 0, Max: int(^uint(0) >> 1)}
	}
	sym := t.Symbols()
	if sym == "" {
		return nil, fmt.Errorf("random sequence from %s: %w", t, bioerr.ErrEmptyInput)
	}
	out := make([]byte, n)
	for i := range out {
		out[i] = sym[rng.IntN(len(sym))]
	}
	return out, nil
}

// Quality returns n quality characters of enc with scores drawn uniformly
// from [minScore, maxScore].
func Quality(enc encoder.QualityEncoding, n, minScore, maxScore int, rng Source) ([]byte, error) {
	if n < 0 {
		return nil, &bioerr.OutOfRangeError{Given: n, Min: 0, Max: int(^uint(0) >> 1)}
	}
	lo, hi := enc.ScoreRange()
	switch {
	case minScore < lo || minScore > hi:
		return nil, &bioerr.ScoreOutOfRangeError{Score: minScore, Min: lo, Max: hi, Encoding: enc.String()}
	case maxScore < lo || maxScore > hi:
		return nil, &bioerr.ScoreOutOfRangeError{Score: maxScore, Min: lo, Max: hi, Encoding: enc.String()}
	case minScore > maxScore:
		// Max reports the requested maximum.
		return nil, &bioerr.ScoreOutOfRangeError{Score: minScore, Min: lo, Max: maxScore, Encoding: enc.String()}
	}
	out := make([]byte, n)
	span := maxScore - minScore + 1
	for i := range out {
		c, err := encoder.Encode(minScore+rng.IntN(span), enc)
		if err != nil {
			return nil, err
		}
		out[i] = c
	}
	return out, nil
}

// ResolveAmbiguous replaces every ambiguous IUPAC code in seq (including N
// and gaps) with a base drawn uniformly from the bases the code stands for.
// It returns the number of bytes replaced. seq must only contain IUPAC
// nucleotide symbols; otherwise it is left unchanged and a
// *bioerr.NotInDomainError is returned.
func ResolveAmbiguous(seq []byte, rng Source) (int, error) {
	if err := check.Validate(seq, charset.IUPACNucleotide); err != nil {
		return 0, err
	}
	replaced := 0
	for i, b := range seq {
		if !charset.IsAmbiguous(b) {
			continue
		}
		bases, _ := charset.Expand(b)
		seq[i] = bases[rng.IntN(len(bases))]
		replaced++
	}
	return replaced, nil
}

// ReplaceInvalid replaces every byte of seq outside t with a uniform draw
// from t and returns the number of bytes replaced.
func ReplaceInvalid(seq []byte, t charset.Tag, rng Source) (int, error) {
	sym := t.Symbols()
	if sym == "" {
		return 0, fmt.Errorf("replace invalid with %s: %w", t, bioerr.ErrEmptyInput)
	}
	replaced := 0
	for i, b := range seq {
		if t.Contains(b) {
			continue
		}
		seq[i] = sym[rng.IntN(len(sym))]
		replaced++
	}
	return replaced, nil
}

// Shuffle permutes seq in-place with a Fisher-Yates shuffle, keeping its
// composition.
func Shuffle(seq []byte, rng Source) {
	for i := len(seq) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		seq[i], seq[j] = seq[j], seq[i]
	}
}
