package qc

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/vertti/seqcheck/internal/parser"
)

// DefaultBatchSize is the number of records handed to a worker at once.
const DefaultBatchSize = 10000

// EmitFunc receives each record with its result, in input order.
// Returning an error stops the pipeline.
type EmitFunc func(rec *parser.Record, res Result) error

// Pipeline checks records from a parser in parallel.
type Pipeline struct {
	Config    Config
	Workers   int // defaults to runtime.NumCPU()
	BatchSize int // defaults to DefaultBatchSize
}

type batchJob struct {
	seqNum  int
	records []*parser.Record
}

type batchResult struct {
	seqNum  int
	records []*parser.Record
	results []Result
}

// Run reads every record from p, checks it and calls emit in input order.
// emit may be nil.
func (pl Pipeline) Run(ctx context.Context, p *parser.Parser, emit EmitFunc) (Summary, error) {
	summary := Summary{ByReason: make(map[Reason]int)}
	if err := pl.Config.Validate(); err != nil {
		return summary, err
	}

	workers := pl.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	batchSize := pl.BatchSize
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	jobs := make(chan batchJob, workers*2)
	results := make(chan batchResult, workers*2)

	g, ctx := errgroup.WithContext(ctx)

	// Producer
	g.Go(func() error {
		defer close(jobs)
		return produceBatches(ctx, p, batchSize, jobs)
	})

	// Workers
	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		g.Go(func() error {
			defer wg.Done()
			return runWorker(ctx, pl.Config, jobs, results)
		})
	}
	g.Go(func() error {
		wg.Wait()
		close(results)
		return nil
	})

	// Collector: emit results in order
	g.Go(func() error {
		return collectResults(results, emit, &summary)
	})

	if err := g.Wait(); err != nil {
		return summary, err
	}
	return summary, nil
}

func produceBatches(ctx context.Context, p *parser.Parser, batchSize int, jobs chan<- batchJob) error {
	for seqNum := 0; ; seqNum++ {
		records, err := p.NextBatch(batchSize)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("parsing batch %d: %w", seqNum, err)
		}
		select {
		case jobs <- batchJob{seqNum: seqNum, records: records}:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func runWorker(ctx context.Context, cfg Config, jobs <-chan batchJob, results chan<- batchResult) error {
	for job := range jobs {
		res := batchResult{
			seqNum:  job.seqNum,
			records: job.records,
			results: make([]Result, len(job.records)),
		}
		for i, rec := range job.records {
			res.results[i] = cfg.check(rec)
		}
		select {
		case results <- res:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

func collectResults(results <-chan batchResult, emit EmitFunc, summary *Summary) error {
	pending := make(map[int]batchResult)
	nextSeqNum := 0

	for result := range results {
		pending[result.seqNum] = result

		// Emit all sequential batches available
		for {
			batch, ok := pending[nextSeqNum]
			if !ok {
				break
			}
			for i, rec := range batch.records {
				summary.Add(batch.results[i])
				if emit == nil {
					continue
				}
				if err := emit(rec, batch.results[i]); err != nil {
					return fmt.Errorf("emitting batch %d: %w", nextSeqNum, err)
				}
			}
			delete(pending, nextSeqNum)
			nextSeqNum++
		}
	}

	return nil
}
