package pipeline

import (
	"context"
	"sync"
	"testing"

	"github.com/nao1215/sitecheck/internal/config"
	"github.com/nao1215/sitecheck/internal/model"
)

// TestBatchProcessorNew tests the BatchProcessor constructor.
func TestBatchProcessorNew(t *testing.T) {
	t.Parallel()

	t.Run("creates processor with defaults", func(t *testing.T) {
		t.Parallel()

		bp := NewBatchProcessor(func() *Pipeline { return New() }, config.DefaultRules())

		if bp == nil {
			t.Fatal("expected non-nil processor")
		}
		if bp.concurrency != config.DefaultBatchSize {
			t.Errorf("concurrency = %d, want %d", bp.concurrency, config.DefaultBatchSize)
		}
	})

	t.Run("applies WithConcurrency option", func(t *testing.T) {
		t.Parallel()

		bp := NewBatchProcessor(
			func() *Pipeline { return New() },
			config.DefaultRules(),
			WithConcurrency(2),
		)

		if bp.concurrency != 2 {
			t.Errorf("concurrency = %d, want 2", bp.concurrency)
		}
	})

	t.Run("ignores non-positive concurrency", func(t *testing.T) {
		t.Parallel()

		bp := NewBatchProcessor(
			func() *Pipeline { return New() },
			config.DefaultRules(),
			WithConcurrency(0),
		)

		if bp.concurrency != config.DefaultBatchSize {
			t.Errorf("concurrency = %d, want %d", bp.concurrency, config.DefaultBatchSize)
		}
	})
}

// TestBatchProcessorProcessBatch tests concurrent validation of roots.
func TestBatchProcessorProcessBatch(t *testing.T) {
	t.Parallel()

	t.Run("returns reports in input order", func(t *testing.T) {
		t.Parallel()

		roots := []string{
			writeFixtureSite(t),
			writeFixtureSite(t),
			writeFixtureSite(t),
		}

		bp := NewBatchProcessor(
			func() *Pipeline { return DefaultPipeline(WithLogger(discardLogger())) },
			config.DefaultRules(),
			WithBatchLogger(discardLogger()),
			WithConcurrency(2),
		)

		reports, err := bp.ProcessBatch(context.Background(), roots)
		if err != nil {
			t.Fatalf("ProcessBatch() error: %v", err)
		}

		if len(reports) != len(roots) {
			t.Fatalf("len(reports) = %d, want %d", len(reports), len(roots))
		}
		for i, report := range reports {
			if report == nil {
				t.Fatalf("reports[%d] is nil", i)
			}
			if report.Root != roots[i] {
				t.Errorf("reports[%d].Root = %q, want %q", i, report.Root, roots[i])
			}
			if report.FailCount != 0 {
				t.Errorf("reports[%d].FailCount = %d, want 0", i, report.FailCount)
			}
		}
	})

	t.Run("failed root yields a report with error", func(t *testing.T) {
		t.Parallel()

		roots := []string{
			writeFixtureSite(t),
			"/nonexistent/site/root",
		}

		bp := NewBatchProcessor(
			func() *Pipeline { return DefaultPipeline(WithLogger(discardLogger())) },
			config.DefaultRules(),
			WithBatchLogger(discardLogger()),
		)

		reports, err := bp.ProcessBatch(context.Background(), roots)
		if err != nil {
			t.Fatalf("ProcessBatch() error: %v", err)
		}

		if reports[0].Error != nil {
			t.Errorf("reports[0].Error = %v, want nil", reports[0].Error)
		}
		if reports[1].Error == nil {
			t.Error("reports[1].Error is nil, want load failure")
		}
	})

	t.Run("callback receives every report", func(t *testing.T) {
		t.Parallel()

		roots := []string{
			writeFixtureSite(t),
			writeFixtureSite(t),
		}

		bp := NewBatchProcessor(
			func() *Pipeline { return DefaultPipeline(WithLogger(discardLogger())) },
			config.DefaultRules(),
			WithBatchLogger(discardLogger()),
		)

		var mu sync.Mutex
		got := make(map[int]*model.Report)

		reports, err := bp.ProcessBatchWithCallback(context.Background(), roots,
			func(report *model.Report, index int) {
				mu.Lock()
				defer mu.Unlock()
				got[index] = report
			})
		if err != nil {
			t.Fatalf("ProcessBatchWithCallback() error: %v", err)
		}

		if len(got) != len(roots) {
			t.Fatalf("callback invocations = %d, want %d", len(got), len(roots))
		}
		for i, root := range roots {
			if got[i] == nil || got[i].Root != root {
				t.Errorf("callback report for index %d does not match root %q", i, root)
			}
		}

		if len(reports) != len(roots) {
			t.Fatalf("len(reports) = %d, want %d", len(reports), len(roots))
		}
		for i, root := range roots {
			if reports[i] == nil || reports[i].Root != root {
				t.Errorf("reports[%d] does not match root %q", i, root)
			}
			if reports[i] != got[i] {
				t.Errorf("reports[%d] is not the report passed to the callback", i)
			}
		}
	})
}
