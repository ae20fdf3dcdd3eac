// fqcheck validates, filters, summarizes and generates FASTQ files.
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var version = "dev"

const (
	exitSuccess = 0
	exitError   = 1
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)

	root := newRootCommand(logger)
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return exitError
	}
	return exitSuccess
}

func newRootCommand(logger *logrus.Logger) *cobra.Command {
	var logLevel string

	root := &cobra.Command{
		Use:   "fqcheck",
		Short: "FASTQ validation and quality control",
		Long: `fqcheck checks FASTQ reads against sequence alphabets and quality
thresholds. Input may be plain, gzip or zstd compressed; output is compressed
when the file name ends in .gz or .zst.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			level, err := logrus.ParseLevel(logLevel)
			if err != nil {
				return err
			}
			logger.SetLevel(level)
			return nil
		},
	}
	root.CompletionOptions.DisableDefaultCmd = true
	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (trace, debug, info, warn, error)")

	root.AddCommand(filterCommand(logger))
	root.AddCommand(statsCommand(logger))
	root.AddCommand(recodeCommand(logger))
	root.AddCommand(randomCommand(logger))
	root.AddCommand(scrambleCommand(logger))
	root.AddCommand(serveCommand(logger))
	return root
}

// inputArg takes the input path from the first positional argument when the
// flag was left empty.
func inputArg(path *string, args []string) {
	if *path == "" && len(args) > 0 {
		*path = args[0]
	}
}

// closeOutput runs an output cleanup and keeps the first error.
func closeOutput(done func() error, err *error) {
	if cerr := done(); cerr != nil && *err == nil {
		*err = fmt.Errorf("closing output: %w", cerr)
	}
}
