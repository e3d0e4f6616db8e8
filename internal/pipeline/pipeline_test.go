package pipeline

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/nao1215/sitecheck/internal/config"
)

// mockStep is a test helper that implements the Step interface.
type mockStep struct {
	name      string
	doFunc    func(ctx context.Context, run *Run) error
	callCount int
}

// Do implements Step.Do.
func (m *mockStep) Do(ctx context.Context, run *Run) error {
	m.callCount++
	if m.doFunc != nil {
		return m.doFunc(ctx, run)
	}
	return nil
}

// Name implements Step.Name.
func (m *mockStep) Name() string {
	return m.name
}

// newTestRun creates a run against a nonexistent root for step mocking.
func newTestRun() *Run {
	return NewRun("testdata/site", config.DefaultRules())
}

// discardLogger silences pipeline logging in tests.
func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// TestPipelineNew tests the Pipeline constructor.
func TestPipelineNew(t *testing.T) {
	t.Parallel()

	t.Run("creates pipeline with default settings", func(t *testing.T) {
		t.Parallel()

		p := New()

		if p == nil {
			t.Fatal("expected non-nil pipeline")
		}
		if p.StepCount() != 0 {
			t.Errorf("expected 0 steps, got %d", p.StepCount())
		}
	})

	t.Run("applies WithContinueOnError option", func(t *testing.T) {
		t.Parallel()

		p := New(WithContinueOnError(true))

		if !p.continueOnError {
			t.Error("expected continueOnError to be true")
		}
	})
}

// TestPipelineAddStep tests adding steps to the pipeline.
func TestPipelineAddStep(t *testing.T) {
	t.Parallel()

	t.Run("adds single step", func(t *testing.T) {
		t.Parallel()

		p := New()
		p.AddStep(&mockStep{name: "test-step"})

		if p.StepCount() != 1 {
			t.Errorf("expected 1 step, got %d", p.StepCount())
		}
	})

	t.Run("adds multiple steps in order", func(t *testing.T) {
		t.Parallel()

		p := New()
		p.AddSteps(&mockStep{name: "first"}, &mockStep{name: "second"})

		names := p.StepNames()
		if len(names) != 2 || names[0] != "first" || names[1] != "second" {
			t.Errorf("unexpected step order: %v", names)
		}
	})
}

// TestPipelineExecute tests step execution semantics.
func TestPipelineExecute(t *testing.T) {
	t.Parallel()

	t.Run("executes steps in order", func(t *testing.T) {
		t.Parallel()

		var order []string
		p := New(WithLogger(discardLogger()))
		for _, name := range []string{"one", "two", "three"} {
			p.AddStep(&mockStep{
				name: name,
				doFunc: func(_ context.Context, _ *Run) error {
					order = append(order, name)
					return nil
				},
			})
		}

		if err := p.Execute(context.Background(), newTestRun()); err != nil {
			t.Fatalf("Execute() error: %v", err)
		}

		if len(order) != 3 || order[0] != "one" || order[1] != "two" || order[2] != "three" {
			t.Errorf("unexpected execution order: %v", order)
		}
	})

	t.Run("stops on first error by default", func(t *testing.T) {
		t.Parallel()

		wantErr := errors.New("load failed")
		failing := &mockStep{
			name:   "failing",
			doFunc: func(_ context.Context, _ *Run) error { return wantErr },
		}
		skipped := &mockStep{name: "skipped"}

		p := New(WithLogger(discardLogger()))
		p.AddSteps(failing, skipped)

		run := newTestRun()
		if err := p.Execute(context.Background(), run); !errors.Is(err, wantErr) {
			t.Errorf("Execute() error = %v, want %v", err, wantErr)
		}
		if skipped.callCount != 0 {
			t.Error("step after failure should not execute")
		}
		if run.Report.ErrorMessage != wantErr.Error() {
			t.Errorf("ErrorMessage = %q, want %q", run.Report.ErrorMessage, wantErr.Error())
		}
	})

	t.Run("continues after error when configured", func(t *testing.T) {
		t.Parallel()

		failing := &mockStep{
			name:   "failing",
			doFunc: func(_ context.Context, _ *Run) error { return errors.New("load failed") },
		}
		next := &mockStep{name: "next"}

		p := New(WithLogger(discardLogger()), WithContinueOnError(true))
		p.AddSteps(failing, next)

		if err := p.Execute(context.Background(), newTestRun()); err != nil {
			t.Errorf("Execute() error = %v, want nil", err)
		}
		if next.callCount != 1 {
			t.Error("step after failure should execute with continueOnError")
		}
	})

	t.Run("respects context cancellation between steps", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())

		first := &mockStep{
			name: "first",
			doFunc: func(_ context.Context, _ *Run) error {
				cancel()
				return nil
			},
		}
		second := &mockStep{name: "second"}

		p := New(WithLogger(discardLogger()))
		p.AddSteps(first, second)

		run := newTestRun()
		if err := p.Execute(ctx, run); !errors.Is(err, context.Canceled) {
			t.Errorf("Execute() error = %v, want context.Canceled", err)
		}
		if second.callCount != 0 {
			t.Error("step after cancellation should not execute")
		}
		if run.Report.Error == nil {
			t.Error("cancellation should be recorded in the report")
		}
	})
}
