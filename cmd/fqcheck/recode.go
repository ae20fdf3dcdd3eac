package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/vertti/seqcheck/internal/encoder"
	"github.com/vertti/seqcheck/internal/fqio"
	"github.com/vertti/seqcheck/internal/parser"
)

type recodeConfig struct {
	inputFile  string
	outputFile string
	from       string
	to         string
}

func recodeCommand(logger *logrus.Logger) *cobra.Command {
	var cfg recodeConfig

	cmd := &cobra.Command{
		Use:   "recode [input.fq]",
		Short: "Convert quality strings between encodings",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			inputArg(&cfg.inputFile, args)
			return runRecode(cfg, logger)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&cfg.inputFile, "input", "i", "", "input FASTQ (default: stdin)")
	f.StringVarP(&cfg.outputFile, "output", "o", "", "output FASTQ (default: stdout)")
	f.StringVar(&cfg.from, "from", "auto", "source encoding, or auto to detect")
	f.StringVar(&cfg.to, "to", "phred33", "target encoding")
	return cmd
}

func runRecode(cfg recodeConfig, logger logrus.FieldLogger) (err error) {
	to, err := encoder.ParseEncoding(cfg.to)
	if err != nil {
		return err
	}

	input, cleanup, err := fqio.Open(cfg.inputFile)
	if err != nil {
		return err
	}
	defer cleanup()

	p := parser.New(input)
	first, from, err := readWithEncoding(p, cfg.from)
	if err != nil {
		return err
	}

	output, done, err := fqio.Create(cfg.outputFile)
	if err != nil {
		return err
	}
	defer closeOutput(done, &err)

	logger.WithFields(logrus.Fields{"from": from, "to": to}).Info("recoding")

	n := 0
	recode := func(rec *parser.Record) error {
		n++
		if err := encoder.Recode(rec.Quality, from, to); err != nil {
			return fmt.Errorf("record %d (%s): %w", n, rec.Header, err)
		}
		return rec.Write(output)
	}

	for _, rec := range first {
		if err := recode(rec); err != nil {
			return err
		}
	}
	for {
		rec, err := p.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := recode(rec); err != nil {
			return err
		}
	}
}
