package check

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vertti/seqcheck/internal/bioerr"
	"github.com/vertti/seqcheck/internal/charset"
	"github.com/vertti/seqcheck/internal/value"
)

func TestIsAll(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		seq  string
		tag  charset.Tag
		want bool
	}{
		{"empty is vacuously contained", "", charset.DNA, true},
		{"pure DNA", "ACGTTGCA", charset.DNA, true},
		{"lowercase not in upper DNA", "acgt", charset.DNA, false},
		{"lowercase in mixed DNA", "acgtACGT", charset.DNAMixed, true},
		{"N not in DNA", "ACGN", charset.DNA, false},
		{"N in DNAN", "ACGN", charset.DNAN, true},
		{"gap in IUPAC", "AC-GRY.n", charset.IUPACNucleotide, true},
		{"U not in DNA", "ACGU", charset.DNA, false},
		{"U in RNA", "ACGU", charset.RNA, true},
		{"phred33 range", "!5?I", charset.Phred33, true},
		{"J beyond phred33 alphabet", "IIJ", charset.Phred33, false},
		{"sanger accepts J", "IIJ~", charset.Sanger, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, IsAll([]byte(tt.seq), tt.tag))
		})
	}
}

func TestIsAllIsPure(t *testing.T) {
	t.Parallel()

	seq := []byte("ACGTN")
	first := IsAll(seq, charset.DNAN)
	for range 5 {
		assert.Equal(t, first, IsAll(seq, charset.DNAN))
	}
	assert.Equal(t, []byte("ACGTN"), seq)
}

func TestHasAny(t *testing.T) {
	t.Parallel()

	assert.False(t, HasAny(nil, charset.DNA))
	assert.False(t, HasAny([]byte{}, charset.DNA))
	assert.True(t, HasAny([]byte("XXA"), charset.DNA))
	assert.False(t, HasAny([]byte("XYZ"), charset.DNA))
}

func TestValidate(t *testing.T) {
	t.Parallel()

	require.NoError(t, Validate([]byte("ACGT"), charset.DNA))
	require.NoError(t, Validate(nil, charset.DNA))

	err := Validate([]byte("ACXT"), charset.DNA)
	require.ErrorIs(t, err, bioerr.ErrNotInDomain)

	var nid *bioerr.NotInDomainError
	require.True(t, errors.As(err, &nid))
	assert.Equal(t, byte('X'), nid.Byte)
	assert.Equal(t, 2, nid.Position)
	assert.Equal(t, "DNA", nid.Domain)

	assert.Equal(t, 2, FirstNotIn([]byte("ACXT"), charset.DNA))
	assert.Equal(t, -1, FirstNotIn([]byte("ACGT"), charset.DNA))
}

func TestIsHomopolymer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		seq  string
		want bool
	}{
		{"", true},
		{"A", true},
		{"AA", true},
		{"AT", false},
		{"AAAAAAAT", false},
		{"TAAAAAAA", false},
		{"GGGGGGGG", true},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, IsHomopolymer([]byte(tt.seq)), "%q", tt.seq)
	}
}

func TestIsHomopolymerOf(t *testing.T) {
	t.Parallel()

	assert.False(t, IsHomopolymerOf(nil, 'A'))
	assert.True(t, IsHomopolymerOf([]byte("A"), 'A'))
	assert.True(t, IsHomopolymerOf([]byte("AAAA"), 'A'))
	assert.False(t, IsHomopolymerOf([]byte("AAAA"), 'T'))
	assert.False(t, IsHomopolymerOf([]byte("AAAT"), 'A'))
}

func TestPercentHomopolymerPassing(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		seq       string
		threshold int
		want      bool
	}{
		{"pure homopolymer", "AAAA", 100, true},
		{"three of four", "AAAT", 75, true},
		{"three of four below 76", "AAAT", 76, false},
		{"two of three rounds to 67", "AAT", 67, true},
		{"two of three not 68", "AAT", 68, false},
		{"one of eight rounds to 13", "ACGTRYKM", 13, true},
		{"zero threshold always passes", "ACGT", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := PercentHomopolymerPassing([]byte(tt.seq), value.MustPercent(tt.threshold))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPercentHomopolymerPassingEmpty(t *testing.T) {
	t.Parallel()

	_, err := PercentHomopolymerPassing(nil, value.MustPercent(50))
	assert.ErrorIs(t, err, bioerr.ErrEmptyInput)
}

func TestGapAndN(t *testing.T) {
	t.Parallel()

	assert.True(t, HasGap([]byte("AC-GT")))
	assert.True(t, HasGap([]byte("AC.GT")))
	assert.False(t, HasGap([]byte("ACGT")))

	assert.True(t, HasN([]byte("ACnT")))
	assert.False(t, HasN([]byte("ACGT")))
	assert.Equal(t, 3, CountN([]byte("NNAn")))
}

func TestQualityPredicatesRequireEveryByte(t *testing.T) {
	t.Parallel()

	// One Phred64 byte in an otherwise Phred33 string must not qualify.
	mixed := []byte("!!!h")
	assert.False(t, IsPhred64(mixed))
	assert.True(t, IsSanger(mixed))
	assert.False(t, IsPhred33(mixed))

	assert.True(t, IsPhred64([]byte("@@hh")))
	assert.True(t, IsSolexa([]byte(";;hh")))
	assert.False(t, IsSolexa([]byte("::hh")))
}

func TestAlphabetPredicates(t *testing.T) {
	t.Parallel()

	assert.True(t, IsDNA([]byte("ACGTacgt")))
	assert.False(t, IsDNA([]byte("ACGU")))
	assert.True(t, IsRNA([]byte("ACGUacgu")))
	assert.True(t, IsNucleotide([]byte("ACGTRYN-")))
	assert.True(t, IsAminoAcid([]byte("MKWVTFISLLX")))
	assert.False(t, IsAminoAcid([]byte("MKW*")))
}

func BenchmarkIsAll(b *testing.B) {
	seq := make([]byte, 152)
	for i := range seq {
		seq[i] = "ACGT"[i%4]
	}
	b.SetBytes(int64(len(seq)))

	for i := 0; i < b.N; i++ {
		IsAll(seq, charset.DNAN)
	}
}
