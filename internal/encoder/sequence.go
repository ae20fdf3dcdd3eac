package encoder

import (
	"github.com/vertti/seqcheck/internal/bioerr"
	"github.com/vertti/seqcheck/internal/charset"
)

// complementTable maps each supported nucleotide symbol to its complement.
// Zero marks an unsupported byte.
var complementTable [256]byte

func init() {
	pairs := []struct{ from, to byte }{
		{'A', 'T'}, {'T', 'A'}, {'C', 'G'}, {'G', 'C'},
		{'U', 'A'},
		{'R', 'Y'}, {'Y', 'R'}, {'K', 'M'}, {'M', 'K'},
		{'B', 'V'}, {'V', 'B'}, {'D', 'H'}, {'H', 'D'},
		{'S', 'S'}, {'W', 'W'}, {'N', 'N'},
	}
	for _, p := range pairs {
		complementTable[p.from] = p.to
		complementTable[p.from+('a'-'A')] = p.to + ('a' - 'A')
	}
	complementTable['-'] = '-'
	complementTable['.'] = '.'
}

// ComplementBase returns the complement of a single nucleotide symbol.
func ComplementBase(b byte) (byte, error) {
	c := complementTable[b]
	if c == 0 {
		return 0, &bioerr.NotInDomainError{Byte: b, Position: -1, Domain: charset.IUPACNucleotide.String()}
	}
	return c, nil
}

func validateNucleotides(seq []byte) error {
	for i, b := range seq {
		if complementTable[b] == 0 {
			return &bioerr.NotInDomainError{Byte: b, Position: i, Domain: charset.IUPACNucleotide.String()}
		}
	}
	return nil
}

// Complement returns the base-wise complement of seq, preserving case.
func Complement(seq []byte) ([]byte, error) {
	out := make([]byte, len(seq))
	copy(out, seq)
	if err := ComplementInPlace(out); err != nil {
		return nil, err
	}
	return out, nil
}

// ComplementInPlace complements seq in-place. seq is unchanged on error.
func ComplementInPlace(seq []byte) error {
	if err := validateNucleotides(seq); err != nil {
		return err
	}
	for i, b := range seq {
		seq[i] = complementTable[b]
	}
	return nil
}

// ReverseComplement returns the reverse complement of seq, preserving case.
// Bytes outside the IUPAC nucleotide alphabet are reported, never replaced.
func ReverseComplement(seq []byte) ([]byte, error) {
	if err := validateNucleotides(seq); err != nil {
		return nil, err
	}
	n := len(seq)
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		out[i] = complementTable[seq[n-1-i]]
	}
	return out, nil
}

// ReverseComplementInPlace reverse complements seq in-place. seq is unchanged
// on error.
func ReverseComplementInPlace(seq []byte) error {
	if err := validateNucleotides(seq); err != nil {
		return err
	}
	for i, j := 0, len(seq)-1; i <= j; i, j = i+1, j-1 {
		seq[i], seq[j] = complementTable[seq[j]], complementTable[seq[i]]
	}
	return nil
}
