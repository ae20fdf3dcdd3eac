// Package value provides validated value objects for percentages and quality
// scores. Values can only be built through constructors that check the range,
// so functions taking them never see an out-of-range input.
package value

import (
	"fmt"

	"github.com/vertti/seqcheck/internal/bioerr"
	"github.com/vertti/seqcheck/internal/charset"
)

// Percent bounds (inclusive).
const (
	PercentMin = 0
	PercentMax = charset.PercentMax
)

// Percent is an integer percentage in [0, 100].
type Percent struct {
	v uint8
}

// NewPercent validates raw as a percentage.
func NewPercent(raw int) (Percent, error) {
	if raw < PercentMin || raw > PercentMax {
		return Percent{}, &bioerr.OutOfRangeError{Given: raw, Min: PercentMin, Max: PercentMax}
	}
	return Percent{v: uint8(raw)}, nil //nolint:gosec // bounded above
}

// MustPercent is NewPercent for constants known at compile time.
func MustPercent(raw int) Percent {
	p, err := NewPercent(raw)
	if err != nil {
		panic(err)
	}
	return p
}

// Value returns the percentage as an int.
func (p Percent) Value() int {
	return int(p.v)
}

// AtLeast reports whether p >= threshold.
func (p Percent) AtLeast(threshold Percent) bool {
	return p.v >= threshold.v
}

func (p Percent) String() string {
	return fmt.Sprintf("%d%%", p.v)
}

// Quality score windows. The character window is the printable ASCII range an
// encoding may use; the score window is the character window minus the offset.
const (
	Phred33Offset   = 33
	Phred64Offset   = 64
	Phred33CharMin  = charset.SangerMin
	Phred33CharMax  = charset.SangerMax
	Phred64CharMin  = charset.Phred64Min
	Phred64CharMax  = charset.Phred64Max
	SolexaCharMin   = charset.SolexaMin
	SolexaCharMax   = charset.SolexaMax
	Phred33ScoreMax = Phred33CharMax - Phred33Offset // 93
	Phred64ScoreMax = Phred64CharMax - Phred64Offset // 62
	SolexaScoreMin  = SolexaCharMin - Phred64Offset  // -5
	SolexaScoreMax  = SolexaCharMax - Phred64Offset  // 62
)

// QualityScore is a single quality character validated against the window of
// its encoding.
type QualityScore struct {
	char   byte
	offset uint8
}

// NewPhred33 validates char as a Phred+33 quality character.
func NewPhred33(char byte) (QualityScore, error) {
	return newQuality(char, Phred33Offset, Phred33CharMin, Phred33CharMax)
}

// NewPhred64 validates char as a Phred+64 quality character.
func NewPhred64(char byte) (QualityScore, error) {
	return newQuality(char, Phred64Offset, Phred64CharMin, Phred64CharMax)
}

// NewSolexa validates char as a Solexa quality character.
func NewSolexa(char byte) (QualityScore, error) {
	return newQuality(char, Phred64Offset, SolexaCharMin, SolexaCharMax)
}

// Phred33FromScore builds a Phred+33 quality from a score in [0, 93].
func Phred33FromScore(score int) (QualityScore, error) {
	return fromScore(score, Phred33Offset, 0, Phred33ScoreMax)
}

// Phred64FromScore builds a Phred+64 quality from a score in [0, 62].
func Phred64FromScore(score int) (QualityScore, error) {
	return fromScore(score, Phred64Offset, 0, Phred64ScoreMax)
}

// SolexaFromScore builds a Solexa quality from a score in [-5, 62].
func SolexaFromScore(score int) (QualityScore, error) {
	return fromScore(score, Phred64Offset, SolexaScoreMin, SolexaScoreMax)
}

func newQuality(char byte, offset uint8, lo, hi int) (QualityScore, error) {
	if int(char) < lo || int(char) > hi {
		return QualityScore{}, &bioerr.OutOfRangeError{Given: int(char), Min: lo, Max: hi}
	}
	return QualityScore{char: char, offset: offset}, nil
}

func fromScore(score int, offset uint8, lo, hi int) (QualityScore, error) {
	if score < lo || score > hi {
		return QualityScore{}, &bioerr.OutOfRangeError{Given: score, Min: lo, Max: hi}
	}
	return QualityScore{char: byte(score + int(offset)), offset: offset}, nil //nolint:gosec // bounded above
}

// IsZero reports whether q was never built by a constructor.
func (q QualityScore) IsZero() bool {
	return q.offset == 0
}

// Char returns the encoded quality character.
func (q QualityScore) Char() byte {
	return q.char
}

// Score returns the quality score, i.e. the character minus the offset.
func (q QualityScore) Score() int {
	return int(q.char) - int(q.offset)
}

// Offset returns the ASCII offset of the encoding (33 or 64, 64 for Solexa).
func (q QualityScore) Offset() int {
	return int(q.offset)
}

func (q QualityScore) String() string {
	return fmt.Sprintf("Q%d(%q)", q.Score(), q.char)
}

// PercentOf returns count as a percentage of total, rounded half up:
// (100*count + total/2) / total. A zero total is reported as
// bioerr.ErrEmptyInput.
func PercentOf(count, total int) (Percent, error) {
	if total <= 0 {
		return Percent{}, fmt.Errorf("percent of %d items: %w", total, bioerr.ErrEmptyInput)
	}
	return NewPercent((100*count + total/2) / total)
}
