package stats

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vertti/seqcheck/internal/bioerr"
	"github.com/vertti/seqcheck/internal/encoder"
)

func TestMean(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input []byte
		want  int
	}{
		{"single", []byte{7}, 7},
		{"exact", []byte{2, 4, 6}, 4},
		{"floors", []byte{1, 2}, 1},
		{"floors just below next", []byte{0, 0, 2}, 0},
		{"high bytes do not overflow", []byte{255, 255, 255, 255}, 255},
		{"quality chars", []byte("!!II"), (33*2 + 73*2) / 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Mean(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  byte
	}{
		{"single", "A", 'A'},
		{"clear winner", "ACCCG", 'C'},
		{"tie goes to first encountered", "GGAA", 'G'},
		{"tie goes to first encountered reversed", "AAGG", 'A'},
		{"tie with interleaving", "ATAT", 'A'},
		{"later winner beats earlier", "ATTG", 'T'},
		{"three-way tie", "CAGCAG", 'C'},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Mode([]byte(tt.input))
			require.NoError(t, err)
			assert.Equal(t, string(tt.want), string(got))
		})
	}
}

func TestEmptyInput(t *testing.T) {
	t.Parallel()

	_, err := Mean(nil)
	assert.ErrorIs(t, err, bioerr.ErrEmptyInput)

	_, err = Mode([]byte{})
	assert.ErrorIs(t, err, bioerr.ErrEmptyInput)

	_, _, err = MinMax(nil)
	assert.ErrorIs(t, err, bioerr.ErrEmptyInput)

	_, err = PercentAtLeast(nil, '!')
	assert.ErrorIs(t, err, bioerr.ErrEmptyInput)

	_, err = GCPercent(nil)
	assert.ErrorIs(t, err, bioerr.ErrEmptyInput)

	_, err = RoundPercent(0, 0)
	assert.ErrorIs(t, err, bioerr.ErrEmptyInput)

	assert.Zero(t, CountAtLeast(nil, 0))
}

func TestCountAndPercentAtLeast(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     string
		threshold byte
		count     int
		percent   int
	}{
		{"three of five", "ABCDE", 'C', 3, 60},
		{"one of three", "ABC", 'C', 1, 33},
		{"two of three", "ABC", 'B', 2, 67},
		{"one of eight ties up", "ABCDEFGH", 'H', 1, 13},
		{"all pass", "IIII", 'I', 4, 100},
		{"none pass", "!!!!", '"', 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.count, CountAtLeast([]byte(tt.input), tt.threshold))
			p, err := PercentAtLeast([]byte(tt.input), tt.threshold)
			require.NoError(t, err)
			assert.Equal(t, tt.percent, p.Value())
		})
	}
}

func TestRoundPercentBoundaries(t *testing.T) {
	t.Parallel()

	// (100*1 + 3/2) / 3 = 101/3 = 33 with integer division.
	p, err := RoundPercent(1, 3)
	require.NoError(t, err)
	assert.Equal(t, 33, p.Value())

	// 12.5 is an exact half and rounds up.
	p, err = RoundPercent(1, 8)
	require.NoError(t, err)
	assert.Equal(t, 13, p.Value())

	// 0.5 rounds up to 1.
	p, err = RoundPercent(1, 200)
	require.NoError(t, err)
	assert.Equal(t, 1, p.Value())

	_, err = RoundPercent(5, 4)
	assert.ErrorIs(t, err, bioerr.ErrOutOfRange)
}

func TestQualityThresholdScenario(t *testing.T) {
	t.Parallel()

	qual := []byte("!!!!") // Phred+33, score 0 everywhere

	zero, err := encoder.Encode(0, encoder.EncodingPhred33)
	require.NoError(t, err)
	p, err := PercentAtLeast(qual, zero)
	require.NoError(t, err)
	assert.Equal(t, 100, p.Value())

	one, err := encoder.Encode(1, encoder.EncodingPhred33)
	require.NoError(t, err)
	p, err = PercentAtLeast(qual, one)
	require.NoError(t, err)
	assert.Equal(t, 0, p.Value())
}

func TestHammingDistance(t *testing.T) {
	t.Parallel()

	d, err := HammingDistance([]byte("AAAA"), []byte("AAAA"))
	require.NoError(t, err)
	assert.Equal(t, 0, d)

	d, err = HammingDistance([]byte("AAAA"), []byte("AAAT"))
	require.NoError(t, err)
	assert.Equal(t, 1, d)

	d, err = HammingDistance(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, d)

	_, err = HammingDistance([]byte("AAA"), []byte("AA"))
	var lm *bioerr.LengthMismatchError
	require.ErrorAs(t, err, &lm)
	assert.Equal(t, 3, lm.Left)
	assert.Equal(t, 2, lm.Right)
	assert.ErrorIs(t, err, bioerr.ErrLengthMismatch)
}

func TestMinMaxAndGC(t *testing.T) {
	t.Parallel()

	lo, hi, err := MinMax([]byte("5!I?"))
	require.NoError(t, err)
	assert.Equal(t, byte('!'), lo)
	assert.Equal(t, byte('I'), hi)

	p, err := GCPercent([]byte("ACGTgcNN"))
	require.NoError(t, err)
	assert.Equal(t, 50, p.Value())

	counts := Counts([]byte("AACG"))
	assert.Equal(t, 2, counts['A'])
	assert.Equal(t, 0, counts['T'])
}

func BenchmarkPercentAtLeast(b *testing.B) {
	qual := []byte(strings.Repeat("5?I#", 38))
	b.SetBytes(int64(len(qual)))

	for i := 0; i < b.N; i++ {
		_, _ = PercentAtLeast(qual, '5')
	}
}
