package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nao1215/sitecheck/internal/checker"
	"github.com/nao1215/sitecheck/internal/site"
)

// LoadStep reads the site's pages and stylesheet from disk and parses
// them. Missing files are recorded on the loaded site rather than treated
// as a step failure; the existence checker reports them individually.
//
// Design decision: Loading is a separate step because:
// 1. A bad site root is a hard error, a missing page is a check failure
// 2. The loaded site is shared by every checker, so it is built once
// 3. History-only commands can reuse the pipeline without the check step
type LoadStep struct {
	// logger for structured logging.
	logger *slog.Logger
}

// LoadStepOption configures a LoadStep.
type LoadStepOption func(*LoadStep)

// WithLoadLogger sets a custom logger for the load step.
func WithLoadLogger(logger *slog.Logger) LoadStepOption {
	return func(s *LoadStep) {
		s.logger = logger
	}
}

// NewLoadStep creates a new site loading step.
func NewLoadStep(opts ...LoadStepOption) *LoadStep {
	s := &LoadStep{
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Name returns the step name.
func (s *LoadStep) Name() string {
	return "load"
}

// Do executes the load step.
func (s *LoadStep) Do(_ context.Context, run *Run) error {
	loaded, err := site.Load(run.Root, run.Rules.Pages, run.Rules.Stylesheet)
	if err != nil {
		return fmt.Errorf("failed to load site %s: %w", run.Root, err)
	}
	run.Site = loaded

	missing := 0
	for _, page := range loaded.Pages {
		if page.Missing {
			missing++
		}
	}

	s.logger.Info("site loaded",
		"root", run.Root,
		"pages", len(loaded.Pages),
		"missing", missing,
	)

	return nil
}

// CheckStep runs the full check battery against the loaded site.
// Check failures are recorded in the run's report; the step itself only
// fails on cancellation or when the load step never ran.
type CheckStep struct {
	// logger for structured logging.
	logger *slog.Logger
}

// CheckStepOption configures a CheckStep.
type CheckStepOption func(*CheckStep)

// WithCheckLogger sets a custom logger for the check step.
func WithCheckLogger(logger *slog.Logger) CheckStepOption {
	return func(s *CheckStep) {
		s.logger = logger
	}
}

// NewCheckStep creates a new checking step.
func NewCheckStep(opts ...CheckStepOption) *CheckStep {
	s := &CheckStep{
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Name returns the step name.
func (s *CheckStep) Name() string {
	return "check"
}

// Do executes the check step.
func (s *CheckStep) Do(ctx context.Context, run *Run) error {
	if run.Site == nil {
		return fmt.Errorf("site for %s is not loaded", run.Root)
	}

	runner := checker.NewRunner(run.Rules, checker.WithLogger(s.logger))
	target := &checker.Target{Site: run.Site, Rules: run.Rules}

	if err := runner.Run(ctx, target, run.Report); err != nil {
		return err
	}

	s.logger.Info("checks completed",
		"root", run.Root,
		"pass", run.Report.PassCount,
		"fail", run.Report.FailCount,
		"skip", run.Report.SkipCount,
		"warn", run.Report.WarnCount,
	)

	return nil
}

// DefaultPipeline creates a pipeline with the standard steps configured.
// This is the pipeline used for a full validation run: load the site,
// then run the check battery.
//
// Design decision: We provide a default pipeline because:
// 1. Most callers want the full validation
// 2. Reduces boilerplate in the CLI
// 3. Ensures consistent ordering
func DefaultPipeline(opts ...Option) *Pipeline {
	p := New(opts...)

	p.AddSteps(
		NewLoadStep(WithLoadLogger(p.logger)),
		NewCheckStep(WithCheckLogger(p.logger)),
	)

	return p
}
