// Package encoder converts quality characters to scores and back, and maps
// nucleotide sequences to their complements.
package encoder

import (
	"fmt"
	"math"
	"strings"

	"github.com/vertti/seqcheck/internal/bioerr"
	"github.com/vertti/seqcheck/internal/charset"
	"github.com/vertti/seqcheck/internal/value"
)

// Phred encoding offsets.
const (
	Phred33Offset = value.Phred33Offset
	Phred64Offset = value.Phred64Offset
	SolexaOffset  = 64
)

// QualityEncoding represents the quality score encoding scheme.
type QualityEncoding uint8

// Quality encoding schemes.
const (
	EncodingPhred33 QualityEncoding = iota // Sanger/Illumina 1.8+ (offset 33)
	EncodingPhred64                        // Illumina 1.3-1.7 (offset 64)
	EncodingSolexa                         // Solexa/Illumina 1.0 (offset 64, scores from -5)
)

// EncodingSanger is the Sanger name for Phred+33.
const EncodingSanger = EncodingPhred33

var encodingNames = map[QualityEncoding]string{
	EncodingPhred33: "Phred33",
	EncodingPhred64: "Phred64",
	EncodingSolexa:  "Solexa",
}

func (e QualityEncoding) String() string {
	if name, ok := encodingNames[e]; ok {
		return name
	}
	return fmt.Sprintf("QualityEncoding(%d)", uint8(e))
}

// ParseEncoding resolves an encoding name, ignoring case. "sanger" is accepted
// as Phred33.
func ParseEncoding(name string) (QualityEncoding, error) {
	switch strings.ToLower(name) {
	case "phred33", "sanger":
		return EncodingPhred33, nil
	case "phred64":
		return EncodingPhred64, nil
	case "solexa":
		return EncodingSolexa, nil
	}
	return 0, fmt.Errorf("unknown quality encoding %q (want phred33, phred64 or solexa)", name)
}

// Offset returns the ASCII offset of the encoding.
func (e QualityEncoding) Offset() int {
	switch e {
	case EncodingPhred64:
		return Phred64Offset
	case EncodingSolexa:
		return SolexaOffset
	default:
		return Phred33Offset
	}
}

// Domain returns the charset of characters the encoding may produce.
func (e QualityEncoding) Domain() charset.Tag {
	switch e {
	case EncodingPhred64:
		return charset.Phred64
	case EncodingSolexa:
		return charset.Solexa
	default:
		return charset.Sanger
	}
}

// ScoreRange returns the inclusive range of scores the encoding can represent.
func (e QualityEncoding) ScoreRange() (lo, hi int) {
	d := e.Domain()
	sym := d.Symbols()
	return int(sym[0]) - e.Offset(), int(sym[len(sym)-1]) - e.Offset()
}

// Decode returns the score encoded by the quality character b.
func Decode(b byte, enc QualityEncoding) (int, error) {
	if !enc.Domain().Contains(b) {
		return 0, &bioerr.NotInDomainError{Byte: b, Position: -1, Domain: enc.String()}
	}
	return int(b) - enc.Offset(), nil
}

// Encode returns the quality character for score.
func Encode(score int, enc QualityEncoding) (byte, error) {
	lo, hi := enc.ScoreRange()
	if score < lo || score > hi {
		return 0, &bioerr.ScoreOutOfRangeError{Score: score, Min: lo, Max: hi, Encoding: enc.String()}
	}
	return byte(score + enc.Offset()), nil //nolint:gosec // bounded by ScoreRange
}

// Threshold builds the validated quality character for score in enc. Scores
// outside the encoding's range fail with a *bioerr.ScoreOutOfRangeError.
func Threshold(score int, enc QualityEncoding) (value.QualityScore, error) {
	var (
		q   value.QualityScore
		err error
	)
	switch enc {
	case EncodingPhred33:
		q, err = value.Phred33FromScore(score)
	case EncodingPhred64:
		q, err = value.Phred64FromScore(score)
	case EncodingSolexa:
		q, err = value.SolexaFromScore(score)
	default:
		return q, fmt.Errorf("threshold: unknown encoding %s", enc)
	}
	if err != nil {
		lo, hi := enc.ScoreRange()
		return q, &bioerr.ScoreOutOfRangeError{Score: score, Min: lo, Max: hi, Encoding: enc.String()}
	}
	return q, nil
}

// DecodeAll decodes every character of qual.
func DecodeAll(qual []byte, enc QualityEncoding) ([]int, error) {
	scores := make([]int, len(qual))
	for i, b := range qual {
		s, err := Decode(b, enc)
		if err != nil {
			return nil, atPosition(err, i)
		}
		scores[i] = s
	}
	return scores, nil
}

// EncodeAll encodes every score.
func EncodeAll(scores []int, enc QualityEncoding) ([]byte, error) {
	qual := make([]byte, len(scores))
	for i, s := range scores {
		b, err := Encode(s, enc)
		if err != nil {
			return nil, fmt.Errorf("position %d: %w", i, err)
		}
		qual[i] = b
	}
	return qual, nil
}

func atPosition(err error, pos int) error {
	if nid, ok := err.(*bioerr.NotInDomainError); ok {
		nid.Position = pos
		return nid
	}
	return err
}

// validate checks every byte of qual against the encoding's domain.
func validate(qual []byte, enc QualityEncoding) error {
	d := enc.Domain()
	for i, b := range qual {
		if !d.Contains(b) {
			return &bioerr.NotInDomainError{Byte: b, Position: i, Domain: enc.String()}
		}
	}
	return nil
}

// DetectEncoding scans quality bytes and returns the likely encoding.
// If any quality byte < 59 (';'), it's definitely Phred+33.
// If minimum byte >= 64 ('@'), it's Phred+64.
// Otherwise (ambiguous 59-63 range), defaults to Phred+33.
func DetectEncoding(qualities [][]byte) QualityEncoding {
	minByte := byte(255)

	for _, qual := range qualities {
		for _, b := range qual {
			if b < minByte {
				minByte = b
			}
			// Early exit: anything below ASCII 59 is definitely Phred+33
			if b < 59 {
				return EncodingPhred33
			}
		}
	}

	// If we found no bytes, default to Phred+33
	if minByte == 255 {
		return EncodingPhred33
	}

	// If minimum is >= 64 ('@'), it's Phred+64
	if minByte >= 64 {
		return EncodingPhred64
	}

	// Ambiguous range (59-63), default to Phred+33
	return EncodingPhred33
}

// NormalizeQuality converts Phred quality bytes to 0-based scores in-place.
// The whole slice is validated first; on error qual is left untouched.
// Solexa scores can be negative and are not representable as bytes.
func NormalizeQuality(qual []byte, enc QualityEncoding) error {
	if enc == EncodingSolexa {
		return fmt.Errorf("normalize %s: negative scores are not representable", enc)
	}
	if err := validate(qual, enc); err != nil {
		return err
	}

	offset := byte(enc.Offset()) //nolint:gosec // offsets are 33 or 64
	for i := range qual {
		qual[i] -= offset
	}
	return nil
}

// DenormalizeQuality converts 0-based scores back to ASCII in-place.
// The whole slice is validated first; on error qual is left untouched.
func DenormalizeQuality(qual []byte, enc QualityEncoding) error {
	if enc == EncodingSolexa {
		return fmt.Errorf("denormalize %s: negative scores are not representable", enc)
	}
	_, hi := enc.ScoreRange()
	for i, s := range qual {
		if int(s) > hi {
			return fmt.Errorf("position %d: %w", i,
				&bioerr.ScoreOutOfRangeError{Score: int(s), Min: 0, Max: hi, Encoding: enc.String()})
		}
	}

	offset := byte(enc.Offset()) //nolint:gosec // offsets are 33 or 64
	for i := range qual {
		qual[i] += offset
	}
	return nil
}

// SolexaToPhred converts a Solexa score to the nearest Phred score:
// Q_phred = 10*log10(10^(Q_solexa/10) + 1).
func SolexaToPhred(score int) int {
	return int(math.Round(10 * math.Log10(math.Pow(10, float64(score)/10)+1)))
}

// PhredToSolexa converts a Phred score to the nearest Solexa score:
// Q_solexa = 10*log10(10^(Q_phred/10) - 1). Results below the Solexa floor
// are clamped to -5: Phred 0 has no finite Solexa equivalent, and Phred 1
// converts to about -5.9. Recoding Phred data to Solexa therefore maps
// both Phred 0 and Phred 1 to ';' and is not reversible for those scores.
func PhredToSolexa(score int) int {
	if score <= 0 {
		return -5
	}
	q := int(math.Round(10 * math.Log10(math.Pow(10, float64(score)/10)-1)))
	if q < -5 {
		return -5
	}
	return q
}

func convertScore(score int, from, to QualityEncoding) int {
	switch {
	case from == EncodingSolexa && to != EncodingSolexa:
		return SolexaToPhred(score)
	case from != EncodingSolexa && to == EncodingSolexa:
		return PhredToSolexa(score)
	default:
		return score
	}
}

// Recode rewrites qual in-place from one encoding to another. Every byte is
// decoded and re-encoded before anything is written, so qual is unchanged
// when an error is returned.
func Recode(qual []byte, from, to QualityEncoding) error {
	if from == to {
		return validate(qual, from)
	}

	out := make([]byte, len(qual))
	for i, b := range qual {
		s, err := Decode(b, from)
		if err != nil {
			return atPosition(err, i)
		}
		c, err := Encode(convertScore(s, from, to), to)
		if err != nil {
			return fmt.Errorf("position %d: %w", i, err)
		}
		out[i] = c
	}
	copy(qual, out)
	return nil
}
