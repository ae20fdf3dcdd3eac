// Package charset is the registry of the fixed byte alphabets used for
// nucleotide, amino acid and quality data.
//
// Every Tag maps to exactly one immutable set of bytes. The tables behind the
// tags are built once in init and only read afterwards, so they are safe for
// concurrent use without locking.
package charset

import "strings"

// Tag names one alphabet of the registry. The set of tags is closed; values
// outside it (reachable only through an explicit conversion) contain no bytes.
type Tag uint8

// Registry tags.
const (
	UpperLetters Tag = iota
	LowerLetters
	Letters

	DNA
	DNALower
	DNAMixed
	DNAN
	DNAMixedN
	DNAGapN

	RNA
	RNALower
	RNAMixed
	RNAN
	RNAMixedN
	RNAGapN

	IUPACNucleotide
	IUPACAminoAcid

	Phred33
	Phred64
	Solexa
	Sanger

	Percent

	// NumTags is the number of registered tags.
	NumTags
)

// ASCII windows of the quality alphabets (inclusive).
const (
	Phred33Min = 33
	Phred33Max = 73
	Phred64Min = 64
	Phred64Max = 126
	SolexaMin  = 59
	SolexaMax  = 126
	SangerMin  = 33
	SangerMax  = 126
	PercentMax = 100
)

var names = [NumTags]string{
	UpperLetters:    "UpperLetters",
	LowerLetters:    "LowerLetters",
	Letters:         "Letters",
	DNA:             "DNA",
	DNALower:        "DNALower",
	DNAMixed:        "DNAMixed",
	DNAN:            "DNAN",
	DNAMixedN:       "DNAMixedN",
	DNAGapN:         "DNAGapN",
	RNA:             "RNA",
	RNALower:        "RNALower",
	RNAMixed:        "RNAMixed",
	RNAN:            "RNAN",
	RNAMixedN:       "RNAMixedN",
	RNAGapN:         "RNAGapN",
	IUPACNucleotide: "IUPACNucleotide",
	IUPACAminoAcid:  "IUPACAminoAcid",
	Phred33:         "Phred33",
	Phred64:         "Phred64",
	Solexa:          "Solexa",
	Sanger:          "Sanger",
	Percent:         "Percent",
}

const (
	upper       = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	lower       = "abcdefghijklmnopqrstuvwxyz"
	iupacUpper  = "ACGTURYSWKMBDHVN"
	aminoUpper  = "ACDEFGHIKLMNPQRSTVWYX"
	gapSymbols  = "-."
	dnaSymbols  = "ACGT"
	rnaSymbols  = "ACGU"
	nSymbol     = "N"
	gapSymbol   = "-"
	lowerOffset = 'a' - 'A'
)

var (
	symbols [NumTags]string
	members [NumTags][256]bool
)

func init() {
	symbols = [NumTags]string{
		UpperLetters:    upper,
		LowerLetters:    lower,
		Letters:         upper + lower,
		DNA:             dnaSymbols,
		DNALower:        toLower(dnaSymbols),
		DNAMixed:        dnaSymbols + toLower(dnaSymbols),
		DNAN:            dnaSymbols + nSymbol,
		DNAMixedN:       dnaSymbols + nSymbol + toLower(dnaSymbols+nSymbol),
		DNAGapN:         dnaSymbols + nSymbol + gapSymbol,
		RNA:             rnaSymbols,
		RNALower:        toLower(rnaSymbols),
		RNAMixed:        rnaSymbols + toLower(rnaSymbols),
		RNAN:            rnaSymbols + nSymbol,
		RNAMixedN:       rnaSymbols + nSymbol + toLower(rnaSymbols+nSymbol),
		RNAGapN:         rnaSymbols + nSymbol + gapSymbol,
		IUPACNucleotide: iupacUpper + toLower(iupacUpper) + gapSymbols,
		IUPACAminoAcid:  aminoUpper + toLower(aminoUpper),
		Phred33:         byteRange(Phred33Min, Phred33Max),
		Phred64:         byteRange(Phred64Min, Phred64Max),
		Solexa:          byteRange(SolexaMin, SolexaMax),
		Sanger:          byteRange(SangerMin, SangerMax),
		Percent:         byteRange(0, PercentMax),
	}

	for tag, s := range symbols {
		for i := 0; i < len(s); i++ {
			members[tag][s[i]] = true
		}
	}

	initExpansions()
}

func byteRange(lo, hi int) string {
	var b strings.Builder
	b.Grow(hi - lo + 1)
	for c := lo; c <= hi; c++ {
		b.WriteByte(byte(c))
	}
	return b.String()
}

// toLower lowercases ASCII letters only; the quality windows must not pass
// through here.
func toLower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + lowerOffset
		}
	}
	return string(b)
}

func (t Tag) valid() bool {
	return t < NumTags
}

// String returns the registry name of the tag.
func (t Tag) String() string {
	if !t.valid() {
		return "Unknown"
	}
	return names[t]
}

// Symbols returns the bytes of the alphabet in registry order. The returned
// string shares the registry's storage; no allocation happens.
func (t Tag) Symbols() string {
	if !t.valid() {
		return ""
	}
	return symbols[t]
}

// Bytes returns a fresh copy of the alphabet that the caller may modify.
func (t Tag) Bytes() []byte {
	return []byte(t.Symbols())
}

// Len returns the number of symbols in the alphabet.
func (t Tag) Len() int {
	return len(t.Symbols())
}

// Contains reports whether b is a member of the alphabet.
func (t Tag) Contains(b byte) bool {
	if !t.valid() {
		return false
	}
	return members[t][b]
}

// Tags returns every registered tag in declaration order.
func Tags() []Tag {
	tags := make([]Tag, 0, NumTags)
	for t := Tag(0); t < NumTags; t++ {
		tags = append(tags, t)
	}
	return tags
}

// Lookup resolves a registry name, ignoring case. It is meant for flags and
// request fields; code inside the module uses the constants directly.
func Lookup(name string) (Tag, bool) {
	for t := Tag(0); t < NumTags; t++ {
		if strings.EqualFold(names[t], name) {
			return t, true
		}
	}
	return NumTags, false
}
