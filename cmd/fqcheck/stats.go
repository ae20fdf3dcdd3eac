package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/vertti/seqcheck/internal/check"
	"github.com/vertti/seqcheck/internal/encoder"
	"github.com/vertti/seqcheck/internal/fqio"
	"github.com/vertti/seqcheck/internal/parser"
	"github.com/vertti/seqcheck/internal/value"
)

// detectBatch is the number of leading records used to guess the encoding.
const detectBatch = 1000

type statsConfig struct {
	inputFile string
	encoding  string
}

func statsCommand(logger *logrus.Logger) *cobra.Command {
	var cfg statsConfig

	cmd := &cobra.Command{
		Use:   "stats [input.fq]",
		Short: "Print read and quality statistics",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inputArg(&cfg.inputFile, args)
			return runStats(cfg, cmd.OutOrStdout(), logger)
		},
	}
	cmd.Flags().StringVarP(&cfg.inputFile, "input", "i", "", "input FASTQ (default: stdin)")
	cmd.Flags().StringVar(&cfg.encoding, "encoding", "auto", "quality encoding, or auto to detect")
	return cmd
}

// fileStats accumulates byte histograms over a whole file.
type fileStats struct {
	reads   int
	bases   int
	minLen  int
	maxLen  int
	seq     [256]int
	quality [256]int
}

// add validates rec's quality string against enc and counts it.
func (s *fileStats) add(rec *parser.Record, enc encoder.QualityEncoding) error {
	if err := check.Validate(rec.Quality, enc.Domain()); err != nil {
		return fmt.Errorf("record %d (%s): %w", s.reads+1, rec.Header, err)
	}
	n := len(rec.Sequence)
	if s.reads == 0 || n < s.minLen {
		s.minLen = n
	}
	if n > s.maxLen {
		s.maxLen = n
	}
	s.reads++
	s.bases += n
	for _, b := range rec.Sequence {
		s.seq[b]++
	}
	for _, b := range rec.Quality {
		s.quality[b]++
	}
	return nil
}

func (s *fileStats) percentAtLeast(score int, enc encoder.QualityEncoding) (value.Percent, error) {
	threshold, err := encoder.Threshold(score, enc)
	if err != nil {
		return value.Percent{}, err
	}
	count := 0
	for c := int(threshold.Char()); c < len(s.quality); c++ {
		count += s.quality[c]
	}
	return value.PercentOf(count, s.bases)
}

func (s *fileStats) meanScore(enc encoder.QualityEncoding) int {
	sum := 0
	for c, n := range s.quality {
		sum += (c - enc.Offset()) * n
	}
	return sum / s.bases
}

func (s *fileStats) write(w io.Writer, enc encoder.QualityEncoding) error {
	if s.reads == 0 {
		_, err := fmt.Fprintln(w, "reads\t0")
		return err
	}
	if s.bases == 0 {
		_, err := fmt.Fprintf(w, "reads\t%d\nbases\t0\n", s.reads)
		return err
	}

	gc, err := value.PercentOf(s.seq['G']+s.seq['C']+s.seq['g']+s.seq['c'], s.bases)
	if err != nil {
		return err
	}
	n, err := value.PercentOf(s.seq['N']+s.seq['n'], s.bases)
	if err != nil {
		return err
	}
	q20, err := s.percentAtLeast(20, enc)
	if err != nil {
		return err
	}
	q30, err := s.percentAtLeast(30, enc)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(w,
		"reads\t%d\nbases\t%d\nmin_length\t%d\nmax_length\t%d\nencoding\t%s\nmean_quality\t%d\ngc\t%s\nn\t%s\nq20\t%s\nq30\t%s\n",
		s.reads, s.bases, s.minLen, s.maxLen, enc, s.meanScore(enc), gc, n, q20, q30)
	return err
}

// readWithEncoding reads a leading batch, resolves the encoding from it when
// name is "auto", and returns the batch for the caller to process first.
func readWithEncoding(p *parser.Parser, name string) ([]*parser.Record, encoder.QualityEncoding, error) {
	first, err := p.NextBatch(detectBatch)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, 0, err
	}

	if name != "auto" {
		enc, err := encoder.ParseEncoding(name)
		return first, enc, err
	}

	quals := make([][]byte, len(first))
	for i, rec := range first {
		quals[i] = rec.Quality
	}
	return first, encoder.DetectEncoding(quals), nil
}

func runStats(cfg statsConfig, w io.Writer, logger logrus.FieldLogger) error {
	input, cleanup, err := fqio.Open(cfg.inputFile)
	if err != nil {
		return err
	}
	defer cleanup()

	p := parser.New(input)
	first, enc, err := readWithEncoding(p, cfg.encoding)
	if err != nil {
		return err
	}
	logger.WithField("encoding", enc).Debug("quality encoding")

	var s fileStats
	for _, rec := range first {
		if err := s.add(rec, enc); err != nil {
			return err
		}
	}
	for {
		rec, err := p.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}
		if err := s.add(rec, enc); err != nil {
			return err
		}
	}

	return s.write(w, enc)
}
