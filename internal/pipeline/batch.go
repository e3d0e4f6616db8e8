package pipeline

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/nao1215/sitecheck/internal/config"
	"github.com/nao1215/sitecheck/internal/model"
	"golang.org/x/sync/errgroup"
)

// BatchProcessor handles concurrent validation of multiple site roots.
// It uses errgroup to manage goroutines and respect concurrency limits.
//
// Design decision: We use a separate BatchProcessor rather than adding batch
// functionality to Pipeline because:
// 1. It keeps the Pipeline focused on single-run execution
// 2. It allows different batch strategies (e.g., rate limiting, retries)
// 3. It provides cleaner separation of concerns
type BatchProcessor struct {
	// pipelineFactory creates a new pipeline for each run.
	// We use a factory to ensure each run gets a fresh pipeline instance.
	pipelineFactory func() *Pipeline

	// rules holds the shared validation rules applied to every root.
	rules *config.Rules

	// concurrency is the maximum number of concurrent runs.
	concurrency int

	// logger is used for batch-level logging.
	logger *slog.Logger

	// results stores completed reports.
	// Access is synchronized via mutex.
	results []*model.Report
	mu      sync.Mutex
}

// BatchOption configures a BatchProcessor.
type BatchOption func(*BatchProcessor)

// WithBatchLogger sets a custom logger for batch processing.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *BatchProcessor) {
		b.logger = logger
	}
}

// WithConcurrency sets the maximum number of concurrent runs.
// Default is config.DefaultBatchSize if not specified.
func WithConcurrency(n int) BatchOption {
	return func(b *BatchProcessor) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// NewBatchProcessor creates a new BatchProcessor.
//
// The pipelineFactory function is called for each root to create a fresh
// pipeline instance. This ensures that pipeline state doesn't leak between
// runs and allows for per-run customization if needed.
func NewBatchProcessor(pipelineFactory func() *Pipeline, rules *config.Rules, opts ...BatchOption) *BatchProcessor {
	bp := &BatchProcessor{
		pipelineFactory: pipelineFactory,
		rules:           rules,
		concurrency:     config.DefaultBatchSize,
		results:         make([]*model.Report, 0),
	}

	for _, opt := range opts {
		opt(bp)
	}

	if bp.logger == nil {
		bp.logger = slog.Default()
	}

	return bp
}

// ProcessBatch validates multiple site roots concurrently.
// It respects the configured concurrency limit and context cancellation.
//
// Design decision: We use errgroup.SetLimit rather than a worker pool
// because it's simpler and errgroup handles the concurrency correctly.
// Each root gets its own goroutine, but only 'concurrency' goroutines
// run simultaneously.
//
// Returns all reports in input order, even for roots that failed to load.
// The error return indicates if the batch was cancelled.
func (bp *BatchProcessor) ProcessBatch(ctx context.Context, roots []string) ([]*model.Report, error) {
	bp.logger.Info("starting batch validation",
		"total_roots", len(roots),
		"concurrency", bp.concurrency,
	)

	startTime := time.Now()

	// Pre-allocate results slice to maintain order
	bp.results = make([]*model.Report, len(roots))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(bp.concurrency)

	for i, root := range roots {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			bp.logger.Info("validating root",
				"root", root,
				"index", i+1,
				"total", len(roots),
			)

			run := NewRun(root, bp.rules)
			p := bp.pipelineFactory()
			err := p.Execute(ctx, run)

			// Store the report regardless of error; it carries the error
			// information if the run failed.
			bp.mu.Lock()
			bp.results[i] = run.Report
			bp.mu.Unlock()

			if err != nil {
				bp.logger.Warn("validation failed",
					"root", root,
					"error", err,
				)
				// Don't return the error to errgroup - remaining roots
				// should still be validated.
				return nil
			}

			bp.logger.Info("validation completed",
				"root", root,
				"pass", run.Report.PassCount,
				"fail", run.Report.FailCount,
			)

			return nil
		})
	}

	err := g.Wait()

	elapsed := time.Since(startTime)
	bp.logger.Info("batch validation complete",
		"total_roots", len(roots),
		"elapsed", elapsed,
	)

	return bp.results, err
}

// ProcessBatchWithCallback validates multiple roots and calls a callback
// for each completed run. This is useful for streaming results while still
// collecting the full report set.
//
// The callback receives the report and the index of the root in the
// original slice. The callback is called from the goroutine that completed
// the run, so it should be thread-safe if it accesses shared state.
//
// Like ProcessBatch, all reports are returned in input order once the
// batch completes.
func (bp *BatchProcessor) ProcessBatchWithCallback(
	ctx context.Context,
	roots []string,
	callback func(report *model.Report, index int),
) ([]*model.Report, error) {
	bp.logger.Info("starting batch validation with callback",
		"total_roots", len(roots),
		"concurrency", bp.concurrency,
	)

	// Pre-allocate results slice to maintain order
	bp.results = make([]*model.Report, len(roots))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(bp.concurrency)

	for i, root := range roots {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			run := NewRun(root, bp.rules)
			p := bp.pipelineFactory()
			_ = p.Execute(ctx, run) //nolint:errcheck // Error is stored in the report

			bp.mu.Lock()
			bp.results[i] = run.Report
			bp.mu.Unlock()

			callback(run.Report, i)

			return nil
		})
	}

	err := g.Wait()
	return bp.results, err
}
