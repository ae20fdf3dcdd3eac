package random

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vertti/seqcheck/internal/bioerr"
	"github.com/vertti/seqcheck/internal/charset"
	"github.com/vertti/seqcheck/internal/check"
	"github.com/vertti/seqcheck/internal/encoder"
)

func TestSequenceDrawsFromCharset(t *testing.T) {
	t.Parallel()

	for _, tag := range []charset.Tag{charset.DNA, charset.RNAMixedN, charset.IUPACAminoAcid, charset.Phred33} {
		seq, err := Sequence(tag, 500, New(1))
		require.NoError(t, err)
		assert.Len(t, seq, 500)
		assert.True(t, check.IsAll(seq, tag), tag.String())
	}
}

func TestSequenceIsReproducible(t *testing.T) {
	t.Parallel()

	a, err := Sequence(charset.DNA, 100, New(42))
	require.NoError(t, err)
	b, err := Sequence(charset.DNA, 100, New(42))
	require.NoError(t, err)
	c, err := Sequence(charset.DNA, 100, New(43))
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestSequenceCoversAlphabet(t *testing.T) {
	t.Parallel()

	seq, err := Sequence(charset.DNA, 1000, New(7))
	require.NoError(t, err)
	for _, b := range charset.DNA.Bytes() {
		assert.Contains(t, string(seq), string(b))
	}
}

func TestSequenceErrors(t *testing.T) {
	t.Parallel()

	_, err := Sequence(charset.DNA, -1, New(1))
	assert.ErrorIs(t, err, bioerr.ErrOutOfRange)

	_, err = Sequence(charset.NumTags, 4, New(1))
	assert.ErrorIs(t, err, bioerr.ErrEmptyInput)

	seq, err := Sequence(charset.DNA, 0, New(1))
	require.NoError(t, err)
	assert.Empty(t, seq)
}

func TestQuality(t *testing.T) {
	t.Parallel()

	qual, err := Quality(encoder.EncodingPhred33, 300, 20, 40, New(3))
	require.NoError(t, err)
	require.Len(t, qual, 300)
	for _, c := range qual {
		assert.GreaterOrEqual(t, c, byte('5'))
		assert.LessOrEqual(t, c, byte('I'))
	}

}

func TestQualityReportsOffendingBound(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		enc       encoder.QualityEncoding
		min, max  int
		wantScore int
		wantMin   int
		wantMax   int
	}{
		{"max above phred64 range", encoder.EncodingPhred64, 0, 63, 63, 0, 62},
		{"min below phred33 range", encoder.EncodingPhred33, -1, 40, -1, 0, 93},
		{"min above range", encoder.EncodingPhred33, 94, 95, 94, 0, 93},
		{"max below solexa floor", encoder.EncodingSolexa, -5, -6, -6, -5, 62},
		{"min above max", encoder.EncodingPhred64, 30, 20, 30, 0, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Quality(tt.enc, 10, tt.min, tt.max, New(3))
			require.ErrorIs(t, err, bioerr.ErrScoreOutOfRange)

			var sor *bioerr.ScoreOutOfRangeError
			require.ErrorAs(t, err, &sor)
			assert.Equal(t, tt.wantScore, sor.Score)
			assert.Equal(t, tt.wantMin, sor.Min)
			assert.Equal(t, tt.wantMax, sor.Max)
			assert.Equal(t, tt.enc.String(), sor.Encoding)
		})
	}
}

func TestResolveAmbiguous(t *testing.T) {
	t.Parallel()

	seq := []byte("ACRTnG-Y")
	n, err := ResolveAmbiguous(seq, New(9))
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	assert.Equal(t, byte('A'), seq[0])
	assert.Contains(t, "AG", string(seq[2]))
	assert.Contains(t, "acgt", string(seq[4]))
	assert.Contains(t, "ACGT", string(seq[6]))
	assert.Contains(t, "CT", string(seq[7]))
	assert.True(t, check.IsDNA(seq))
}

func TestResolveAmbiguousIsUniformish(t *testing.T) {
	t.Parallel()

	rng := New(11)
	counts := map[byte]int{}
	for range 4000 {
		seq := []byte("R")
		_, err := ResolveAmbiguous(seq, rng)
		require.NoError(t, err)
		counts[seq[0]]++
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, string(k))
	}
	sort.Strings(keys)
	assert.Equal(t, []string{"A", "G"}, keys)
	assert.InDelta(t, 2000, counts['A'], 200)
}

func TestResolveAmbiguousRejectsWithoutMutation(t *testing.T) {
	t.Parallel()

	seq := []byte("NNXN")
	_, err := ResolveAmbiguous(seq, New(1))
	require.ErrorIs(t, err, bioerr.ErrNotInDomain)
	assert.Equal(t, []byte("NNXN"), seq)
}

func TestReplaceInvalid(t *testing.T) {
	t.Parallel()

	seq := []byte("AC?T!!G")
	n, err := ReplaceInvalid(seq, charset.DNA, New(5))
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.True(t, check.IsAll(seq, charset.DNA))
	assert.Equal(t, byte('A'), seq[0])
	assert.Equal(t, byte('G'), seq[6])

	_, err = ReplaceInvalid(seq, charset.NumTags, New(5))
	assert.ErrorIs(t, err, bioerr.ErrEmptyInput)
}

func TestShufflePreservesComposition(t *testing.T) {
	t.Parallel()

	seq := []byte("AAAACCCGGT")
	Shuffle(seq, New(2))

	sorted := []byte(string(seq))
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	assert.Equal(t, "AAAACCCGGT", string(sorted))
}

// recordingSource returns 0 and records every bound it is asked for.
type recordingSource struct {
	bounds []int
}

func (r *recordingSource) IntN(n int) int {
	r.bounds = append(r.bounds, n)
	return 0
}

func TestShuffleAcceptsAnySource(t *testing.T) {
	t.Parallel()

	tests := []struct {
		seq        string
		want       string
		wantBounds []int
	}{
		{"", "", nil},
		{"A", "A", nil},
		{"AC", "CA", []int{2}},
		{"ABCD", "BCDA", []int{4, 3, 2}},
	}

	for _, tt := range tests {
		src := &recordingSource{}
		seq := []byte(tt.seq)
		Shuffle(seq, src)
		assert.Equal(t, tt.want, string(seq), "seq %q", tt.seq)
		assert.Equal(t, tt.wantBounds, src.bounds, "seq %q", tt.seq)
	}
}

func TestShuffleIsReproducible(t *testing.T) {
	t.Parallel()

	a := []byte("ACGTACGTACGTNNRY")
	b := []byte(string(a))
	Shuffle(a, New(9))
	Shuffle(b, New(9))
	assert.Equal(t, a, b)
}

func BenchmarkSequence(b *testing.B) {
	rng := New(1)
	b.SetBytes(152)

	for i := 0; i < b.N; i++ {
		_, _ = Sequence(charset.DNA, 152, rng)
	}
}
