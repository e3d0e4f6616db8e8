package checker

import (
	"context"
	"log/slog"

	"github.com/nao1215/sitecheck/internal/config"
	"github.com/nao1215/sitecheck/internal/model"
	"github.com/nao1215/sitecheck/internal/site"
)

// Target contains all data available to checks.
//
// Design decision: We pass data in a single struct rather than multiple
// parameters because not all checkers need all data, and adding new data
// does not change checker signatures.
type Target struct {
	// Site is the loaded site snapshot.
	Site *site.Site

	// Rules are the validation rules in effect for this run.
	Rules *config.Rules
}

// Checker defines the interface for individual check batteries.
// Each checker focuses on one category of assertion.
//
// Design decision: Check returns results rather than an error: every
// failure is a recorded CheckResult, never a propagated error. This keeps
// the run total (it always completes and always produces a report).
type Checker interface {
	// Name returns the checker's name for logging and reporting.
	Name() string

	// Category returns the check category the results belong to.
	Category() string

	// Check runs the battery against the target.
	Check(ctx context.Context, target *Target) []model.CheckResult
}

// Runner executes registered checkers in a fixed order and aggregates
// their results into a report.
type Runner struct {
	// checkers is the ordered list of registered checkers.
	checkers []Checker

	// logger is used for per-check progress logging.
	logger *slog.Logger
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithLogger sets a custom logger for the runner.
func WithLogger(logger *slog.Logger) RunnerOption {
	return func(r *Runner) {
		r.logger = logger
	}
}

// NewRunner creates a Runner with all built-in checkers registered,
// omitting categories disabled in the rules.
func NewRunner(rules *config.Rules, opts ...RunnerOption) *Runner {
	r := &Runner{checkers: make([]Checker, 0)}

	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}

	// Built-in checkers in execution order. Existence runs first so that
	// skip diagnostics for missing pages follow the failure that explains them.
	builtins := []Checker{
		NewExistenceChecker(),
		NewStructureChecker(),
		NewNavigationChecker(),
		NewLinkChecker(),
		NewSemanticsChecker(),
		NewFormChecker(),
		NewAccessibilityChecker(),
		NewStylesheetChecker(),
		NewAssetChecker(),
	}
	for _, c := range builtins {
		if rules != nil && rules.Disabled(c.Category()) {
			continue
		}
		r.Register(c)
	}

	return r
}

// Register adds a checker to the execution list.
func (r *Runner) Register(c Checker) {
	r.checkers = append(r.checkers, c)
}

// Checkers returns the names of registered checkers in execution order.
func (r *Runner) Checkers() []string {
	names := make([]string, len(r.checkers))
	for i, c := range r.checkers {
		names[i] = c.Name()
	}
	return names
}

// Run executes all registered checkers against the target, folding results
// into the report and logging each result as it is produced. Cancellation
// is honored between checkers; results already collected stay in the report.
func (r *Runner) Run(ctx context.Context, target *Target, report *model.Report) error {
	for _, c := range r.checkers {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		results := c.Check(ctx, target)
		for _, result := range results {
			report.Add(result)
			r.logger.Info("check completed",
				"check", result.Name,
				"status", result.Status.String(),
				"page", result.Page,
				"detail", result.Detail,
			)
		}

		report.PerformedChecks = append(report.PerformedChecks, c.Name())
	}

	return nil
}

// skipPage emits a single skipped result standing in for a checker's
// per-page battery when the page is missing.
func skipPage(category, name string, page *site.Page) model.CheckResult {
	return model.Skip(category, name, page.Name, "page is missing, checks skipped")
}
