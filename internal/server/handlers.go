package server

import (
	"fmt"
	"net/http"

	"github.com/vertti/seqcheck/internal/charset"
	"github.com/vertti/seqcheck/internal/check"
	"github.com/vertti/seqcheck/internal/encoder"
	"github.com/vertti/seqcheck/internal/parser"
	"github.com/vertti/seqcheck/internal/qc"
	"github.com/vertti/seqcheck/internal/stats"
)

// CharsetInfo describes one registry alphabet.
type CharsetInfo struct {
	Name    string `json:"name"`
	Size    int    `json:"size"`
	Symbols string `json:"symbols"`
}

func charsetsHandler(w http.ResponseWriter, _ *http.Request) {
	tags := charset.Tags()
	out := make([]CharsetInfo, 0, len(tags))
	for _, t := range tags {
		out = append(out, CharsetInfo{Name: t.String(), Size: t.Len(), Symbols: t.Symbols()})
	}
	writeJSON(w, http.StatusOK, out)
}

// CheckRequest asks whether a sequence belongs to an alphabet.
type CheckRequest struct {
	Sequence string `json:"sequence"`
	Charset  string `json:"charset"`
}

// CheckResponse reports membership and homopolymer content.
type CheckResponse struct {
	Charset            string `json:"charset"`
	IsAll              bool   `json:"is_all"`
	HasAny             bool   `json:"has_any"`
	FirstInvalid       int    `json:"first_invalid"`
	Homopolymer        bool   `json:"homopolymer"`
	HomopolymerPercent *int   `json:"homopolymer_percent,omitempty"`
}

func lookupCharset(w http.ResponseWriter, name string) (charset.Tag, bool) {
	t, ok := charset.Lookup(name)
	if !ok {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown charset %q", name))
	}
	return t, ok
}

func checkHandler(w http.ResponseWriter, r *http.Request) {
	var req CheckRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	t, ok := lookupCharset(w, req.Charset)
	if !ok {
		return
	}

	seq := []byte(req.Sequence)
	resp := CheckResponse{
		Charset:      t.String(),
		IsAll:        check.IsAll(seq, t),
		HasAny:       check.HasAny(seq, t),
		FirstInvalid: check.FirstNotIn(seq, t),
		Homopolymer:  check.IsHomopolymer(seq),
	}
	if p, err := check.HomopolymerPercent(seq); err == nil {
		v := p.Value()
		resp.HomopolymerPercent = &v
	}
	writeJSON(w, http.StatusOK, resp)
}

// QualityRequest carries an encoded quality string.
type QualityRequest struct {
	Quality  string `json:"quality"`
	Encoding string `json:"encoding,omitempty"` // defaults to phred33
	MinScore int    `json:"min_score,omitempty"`
}

func parseEncoding(w http.ResponseWriter, name string) (encoder.QualityEncoding, bool) {
	if name == "" {
		return encoder.EncodingPhred33, true
	}
	enc, err := encoder.ParseEncoding(name)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return 0, false
	}
	return enc, true
}

// DecodeResponse holds decoded scores and their summary.
type DecodeResponse struct {
	Encoding string `json:"encoding"`
	Scores   []int  `json:"scores"`
	Mean     int    `json:"mean"`
	Mode     int    `json:"mode"`
	Min      int    `json:"min"`
	Max      int    `json:"max"`
}

func decodeHandler(w http.ResponseWriter, r *http.Request) {
	var req QualityRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	enc, ok := parseEncoding(w, req.Encoding)
	if !ok {
		return
	}
	if req.Quality == "" {
		writeError(w, http.StatusBadRequest, "quality is required")
		return
	}

	qual := []byte(req.Quality)
	scores, err := encoder.DecodeAll(qual, enc)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	// qual is non-empty and in-domain, so the summaries cannot fail.
	mean, _ := stats.Mean(qual)
	mode, _ := stats.Mode(qual)
	lo, hi, _ := stats.MinMax(qual)
	off := enc.Offset()

	writeJSON(w, http.StatusOK, DecodeResponse{
		Encoding: enc.String(),
		Scores:   scores,
		Mean:     mean - off,
		Mode:     int(mode) - off,
		Min:      int(lo) - off,
		Max:      int(hi) - off,
	})
}

// PercentResponse is a whole-number percentage.
type PercentResponse struct {
	Percent int `json:"percent"`
}

func percentHandler(w http.ResponseWriter, r *http.Request) {
	var req QualityRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	enc, ok := parseEncoding(w, req.Encoding)
	if !ok {
		return
	}
	qual := []byte(req.Quality)
	if err := check.Validate(qual, enc.Domain()); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	threshold, err := encoder.Threshold(req.MinScore, enc)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	p, err := stats.PercentAtLeast(qual, threshold.Char())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, PercentResponse{Percent: p.Value()})
}

// RecodeRequest converts a quality string between encodings.
type RecodeRequest struct {
	Quality string `json:"quality"`
	From    string `json:"from"`
	To      string `json:"to"`
}

// RecodeResponse holds the converted quality string.
type RecodeResponse struct {
	Quality string `json:"quality"`
}

func recodeHandler(w http.ResponseWriter, r *http.Request) {
	var req RecodeRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	from, ok := parseEncoding(w, req.From)
	if !ok {
		return
	}
	to, ok := parseEncoding(w, req.To)
	if !ok {
		return
	}
	qual := []byte(req.Quality)
	if err := encoder.Recode(qual, from, to); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, RecodeResponse{Quality: string(qual)})
}

// SequenceRequest carries a nucleotide sequence.
type SequenceRequest struct {
	Sequence string `json:"sequence"`
}

// SequenceResponse carries a transformed sequence.
type SequenceResponse struct {
	Sequence string `json:"sequence"`
}

func reverseComplementHandler(w http.ResponseWriter, r *http.Request) {
	var req SequenceRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	rc, err := encoder.ReverseComplement([]byte(req.Sequence))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, SequenceResponse{Sequence: string(rc)})
}

func gcContentHandler(w http.ResponseWriter, r *http.Request) {
	var req SequenceRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	p, err := stats.GCPercent([]byte(req.Sequence))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, PercentResponse{Percent: p.Value()})
}

// QCRequest checks a single read against a preset.
type QCRequest struct {
	Sequence string `json:"sequence"`
	Quality  string `json:"quality"`
	Preset   string `json:"preset,omitempty"` // "default" or "strict"
}

// QCResponse reports the outcome of a read check.
type QCResponse struct {
	Passed             bool   `json:"passed"`
	Reason             string `json:"reason"`
	MeanScore          int    `json:"mean_score"`
	PercentPassing     int    `json:"percent_passing"`
	HomopolymerPercent int    `json:"homopolymer_percent"`
}

func qcHandler(w http.ResponseWriter, r *http.Request) {
	var req QCRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	var cfg qc.Config
	switch req.Preset {
	case "", "default":
		cfg = qc.DefaultConfig()
	case "strict":
		cfg = qc.StrictConfig()
	default:
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown preset %q", req.Preset))
		return
	}

	res, err := cfg.Check(&parser.Record{Sequence: []byte(req.Sequence), Quality: []byte(req.Quality)})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, QCResponse{
		Passed:             res.Passed,
		Reason:             res.Reason.String(),
		MeanScore:          res.MeanScore,
		PercentPassing:     res.PercentPassing.Value(),
		HomopolymerPercent: res.Homopolymer.Value(),
	})
}
