// Package check classifies byte sequences against the charset registry.
//
// All functions are read-only over their input and safe to call concurrently
// on shared slices.
package check

import (
	"fmt"

	"github.com/vertti/seqcheck/internal/bioerr"
	"github.com/vertti/seqcheck/internal/charset"
	"github.com/vertti/seqcheck/internal/value"
)

// IsAll reports whether every byte of s is in t. An empty slice is vacuously
// contained in every charset.
func IsAll(s []byte, t charset.Tag) bool {
	return FirstNotIn(s, t) < 0
}

// HasAny reports whether at least one byte of s is in t. An empty slice has
// no members.
func HasAny(s []byte, t charset.Tag) bool {
	for _, b := range s {
		if t.Contains(b) {
			return true
		}
	}
	return false
}

// FirstNotIn returns the index of the first byte of s outside t, or -1.
func FirstNotIn(s []byte, t charset.Tag) int {
	for i, b := range s {
		if !t.Contains(b) {
			return i
		}
	}
	return -1
}

// Validate returns a *bioerr.NotInDomainError for the first byte of s outside t.
func Validate(s []byte, t charset.Tag) error {
	if i := FirstNotIn(s, t); i >= 0 {
		return &bioerr.NotInDomainError{Byte: s[i], Position: i, Domain: t.String()}
	}
	return nil
}

// IsHomopolymer reports whether all bytes of s are identical. Empty and
// single-byte slices are homopolymers.
func IsHomopolymer(s []byte) bool {
	for i := 1; i < len(s); i++ {
		if s[i] != s[0] {
			return false
		}
	}
	return true
}

// IsHomopolymerOf reports whether s is a homopolymer of b. An empty slice has
// no repeated byte and is not a homopolymer of anything.
func IsHomopolymerOf(s []byte, b byte) bool {
	return len(s) > 0 && s[0] == b && IsHomopolymer(s)
}

// PercentHomopolymerPassing reports whether the most frequent byte of s makes
// up at least threshold percent of s, with the percentage rounded half up.
func PercentHomopolymerPassing(s []byte, threshold value.Percent) (bool, error) {
	p, err := HomopolymerPercent(s)
	if err != nil {
		return false, err
	}
	return p.AtLeast(threshold), nil
}

// HomopolymerPercent returns the share of the most frequent byte of s.
func HomopolymerPercent(s []byte) (value.Percent, error) {
	if len(s) == 0 {
		return value.Percent{}, fmt.Errorf("homopolymer percent: %w", bioerr.ErrEmptyInput)
	}
	var counts [256]int
	maxCount := 0
	for _, b := range s {
		counts[b]++
		if counts[b] > maxCount {
			maxCount = counts[b]
		}
	}
	return value.PercentOf(maxCount, len(s))
}

// HasGap reports whether s contains a gap symbol ('-' or '.').
func HasGap(s []byte) bool {
	for _, b := range s {
		if b == '-' || b == '.' {
			return true
		}
	}
	return false
}

// HasN reports whether s contains N in either case.
func HasN(s []byte) bool {
	return CountN(s) > 0
}

// CountN returns the number of N bases in s, in either case.
func CountN(s []byte) int {
	n := 0
	for _, b := range s {
		if b == 'N' || b == 'n' {
			n++
		}
	}
	return n
}

// IsDNA reports whether s only uses A, C, G and T in either case.
func IsDNA(s []byte) bool { return IsAll(s, charset.DNAMixed) }

// IsRNA reports whether s only uses A, C, G and U in either case.
func IsRNA(s []byte) bool { return IsAll(s, charset.RNAMixed) }

// IsNucleotide reports whether s only uses IUPAC nucleotide symbols.
func IsNucleotide(s []byte) bool { return IsAll(s, charset.IUPACNucleotide) }

// IsAminoAcid reports whether s only uses IUPAC amino acid symbols.
func IsAminoAcid(s []byte) bool { return IsAll(s, charset.IUPACAminoAcid) }

// The quality predicates require every byte to be in the window.

// IsPhred33 reports whether every byte of s is in the Phred33 window.
func IsPhred33(s []byte) bool { return IsAll(s, charset.Phred33) }

// IsPhred64 reports whether every byte of s is in the Phred64 window.
func IsPhred64(s []byte) bool { return IsAll(s, charset.Phred64) }

// IsSolexa reports whether every byte of s is in the Solexa window.
func IsSolexa(s []byte) bool { return IsAll(s, charset.Solexa) }

// IsSanger reports whether every byte of s is in the Sanger window.
func IsSanger(s []byte) bool { return IsAll(s, charset.Sanger) }
