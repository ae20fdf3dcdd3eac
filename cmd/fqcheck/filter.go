package main

import (
	"context"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/vertti/seqcheck/internal/charset"
	"github.com/vertti/seqcheck/internal/encoder"
	"github.com/vertti/seqcheck/internal/fqio"
	"github.com/vertti/seqcheck/internal/parser"
	"github.com/vertti/seqcheck/internal/qc"
	"github.com/vertti/seqcheck/internal/value"
)

type filterConfig struct {
	inputFile      string
	outputFile     string
	failedFile     string
	preset         string
	alphabet       string
	encoding       string
	minScore       int
	minPassPercent int
	maxHomopolymer int
	minLength      int
	maxN           int
	workers        int
	batchSize      int
}

func filterCommand(logger *logrus.Logger) *cobra.Command {
	var cfg filterConfig

	cmd := &cobra.Command{
		Use:   "filter [input.fq]",
		Short: "Keep reads that pass quality control",
		Long: `Check every read against a preset and optional threshold overrides.
Passing reads are written to --output; failing reads go to --failed when set.
A per-reason summary is logged when the input is exhausted.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inputArg(&cfg.inputFile, args)
			qcCfg, err := cfg.qcConfig(cmd)
			if err != nil {
				return err
			}
			return runFilter(cmd.Context(), cfg, qcCfg, logger)
		},
	}

	defaults := qc.DefaultConfig()
	f := cmd.Flags()
	f.StringVarP(&cfg.inputFile, "input", "i", "", "input FASTQ (default: stdin)")
	f.StringVarP(&cfg.outputFile, "output", "o", "", "passing reads (default: stdout)")
	f.StringVar(&cfg.failedFile, "failed", "", "failing reads (default: discarded)")
	f.StringVarP(&cfg.preset, "preset", "p", "default", "threshold preset: default or strict")
	f.StringVar(&cfg.alphabet, "alphabet", defaults.Alphabet.String(), "sequence charset")
	f.StringVar(&cfg.encoding, "encoding", defaults.Encoding.String(), "quality encoding")
	f.IntVar(&cfg.minScore, "min-score", defaults.MinQuality.Score(), "score counted as passing")
	f.IntVar(&cfg.minPassPercent, "min-pass", defaults.MinPassPercent.Value(), "percent of bases that must reach --min-score")
	f.IntVar(&cfg.maxHomopolymer, "max-homopolymer", defaults.MaxHomopolymerPercent.Value(), "largest percent one base may take (100 disables)")
	f.IntVar(&cfg.minLength, "min-length", defaults.MinLength, "minimum read length")
	f.IntVar(&cfg.maxN, "max-n", defaults.MaxN, "maximum N bases (-1 for unlimited)")
	f.IntVarP(&cfg.workers, "workers", "w", 0, "worker goroutines (default: NumCPU)")
	f.IntVarP(&cfg.batchSize, "batch", "b", qc.DefaultBatchSize, "records per batch")

	return cmd
}

// qcConfig starts from the preset and applies only the flags the user set.
func (c filterConfig) qcConfig(cmd *cobra.Command) (qc.Config, error) {
	var out qc.Config
	switch c.preset {
	case "default":
		out = qc.DefaultConfig()
	case "strict":
		out = qc.StrictConfig()
	default:
		return out, fmt.Errorf("unknown preset %q (want default or strict)", c.preset)
	}

	changed := cmd.Flags().Changed
	if changed("alphabet") {
		t, ok := charset.Lookup(c.alphabet)
		if !ok {
			return out, fmt.Errorf("unknown alphabet %q", c.alphabet)
		}
		out.Alphabet = t
	}
	if changed("encoding") {
		enc, err := encoder.ParseEncoding(c.encoding)
		if err != nil {
			return out, err
		}
		out.Encoding = enc
	}
	score := out.MinQuality.Score()
	if changed("min-score") {
		score = c.minScore
	}
	var err error
	if out.MinQuality, err = encoder.Threshold(score, out.Encoding); err != nil {
		return out, fmt.Errorf("--min-score: %w", err)
	}
	if changed("min-pass") {
		if out.MinPassPercent, err = value.NewPercent(c.minPassPercent); err != nil {
			return out, fmt.Errorf("--min-pass: %w", err)
		}
	}
	if changed("max-homopolymer") {
		if out.MaxHomopolymerPercent, err = value.NewPercent(c.maxHomopolymer); err != nil {
			return out, fmt.Errorf("--max-homopolymer: %w", err)
		}
	}
	if changed("min-length") {
		out.MinLength = c.minLength
	}
	if changed("max-n") {
		out.MaxN = c.maxN
	}
	return out, out.Validate()
}

func runFilter(ctx context.Context, cfg filterConfig, qcCfg qc.Config, logger *logrus.Logger) (err error) {
	input, cleanup, err := fqio.Open(cfg.inputFile)
	if err != nil {
		return err
	}
	defer cleanup()

	passed, done, err := fqio.Create(cfg.outputFile)
	if err != nil {
		return err
	}
	defer closeOutput(done, &err)

	var failed io.Writer
	if cfg.failedFile != "" {
		var doneFailed func() error
		failed, doneFailed, err = fqio.Create(cfg.failedFile)
		if err != nil {
			return err
		}
		defer closeOutput(doneFailed, &err)
	}

	logger.WithFields(logrus.Fields{
		"input":    cfg.inputFile,
		"alphabet": qcCfg.Alphabet,
		"encoding": qcCfg.Encoding,
	}).Debug("filtering")

	pl := qc.Pipeline{Config: qcCfg, Workers: cfg.workers, BatchSize: cfg.batchSize}
	summary, err := pl.Run(ctx, parser.New(input), func(rec *parser.Record, res qc.Result) error {
		if res.Passed {
			return rec.Write(passed)
		}
		if failed != nil {
			return rec.Write(failed)
		}
		return nil
	})
	if err != nil {
		return err
	}

	logSummary(logger, summary)
	return nil
}

func logSummary(logger logrus.FieldLogger, s qc.Summary) {
	fields := logrus.Fields{
		"total":  s.Total,
		"passed": s.Passed,
		"failed": s.Failed(),
	}
	for _, r := range qc.Reasons() {
		if n := s.ByReason[r]; n > 0 {
			fields[r.String()] = n
		}
	}
	logger.WithFields(fields).Info("filter complete")
}
