package charset

// IUPAC nucleotide codes and the concrete DNA bases each one stands for.
// Gaps and N stand for any base.
var iupacBases = map[byte]string{
	'A': "A", 'C': "C", 'G': "G", 'T': "T", 'U': "U",
	'R': "AG", 'Y': "CT", 'S': "CG", 'W': "AT",
	'K': "GT", 'M': "AC", 'B': "CGT", 'D': "AGT",
	'H': "ACT", 'V': "ACG", 'N': "ACGT",
	'-': "ACGT", '.': "ACGT",
}

var expansions [256]string

func initExpansions() {
	for code, bases := range iupacBases {
		expansions[code] = bases
		if code >= 'A' && code <= 'Z' {
			expansions[code+lowerOffset] = toLower(bases)
		}
	}
}

// Expand returns the concrete bases an IUPAC nucleotide code stands for, in
// the case of the code. Gap symbols expand to uppercase ACGT.
func Expand(b byte) (string, bool) {
	s := expansions[b]
	return s, s != ""
}

// IsAmbiguous reports whether b is an IUPAC nucleotide code that stands for
// more than one base, including N and the gap symbols.
func IsAmbiguous(b byte) bool {
	return len(expansions[b]) > 1
}
