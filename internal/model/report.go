package model

import "time"

// Report is the aggregated outcome of one validation run against a single
// site root. It holds the ordered list of all results plus running counters.
//
// Design decision: The original validation flow accumulated pass/fail totals
// in shared mutable counters. We instead thread an explicit Report value
// through the run: each check returns results, the runner folds them in via
// Add, and the final counters determine the process exit code. This keeps
// every check independently testable.
type Report struct {
	// Root is the site root directory that was validated.
	Root string `json:"root"`

	// DateChecked is the timestamp when the run was performed.
	DateChecked time.Time `json:"date_checked"`

	// Results is the ordered list of all check results.
	Results []CheckResult `json:"results"`

	// PassCount is the number of passed checks.
	PassCount int `json:"pass_count"`

	// FailCount is the number of failed checks.
	FailCount int `json:"fail_count"`

	// SkipCount is the number of skipped checks.
	SkipCount int `json:"skip_count"`

	// WarnCount is the number of advisory findings.
	WarnCount int `json:"warn_count"`

	// PerformedChecks lists the checker names that actually ran.
	PerformedChecks []string `json:"performed_checks,omitempty"`

	// Error contains any hard error that occurred outside the check battery.
	// Check failures are never stored here; they live in Results.
	Error error `json:"-"` // Excluded from JSON

	// ErrorMessage is the string representation of Error for serialization.
	ErrorMessage string `json:"error,omitempty"` //nolint:tagliatelle // error is conventional
}

// NewReport creates a new report for the given site root.
func NewReport(root string) *Report {
	return &Report{
		Root:        root,
		DateChecked: time.Now(),
		Results:     make([]CheckResult, 0),
	}
}

// Add appends a result and updates the matching counter.
func (r *Report) Add(result CheckResult) {
	r.Results = append(r.Results, result)

	switch result.Status {
	case StatusPass:
		r.PassCount++
	case StatusFail:
		r.FailCount++
	case StatusSkip:
		r.SkipCount++
	case StatusWarn:
		r.WarnCount++
	}
}

// AddAll appends multiple results.
func (r *Report) AddAll(results []CheckResult) {
	for _, result := range results {
		r.Add(result)
	}
}

// Failed returns the failed results in the order they were recorded.
func (r *Report) Failed() []CheckResult {
	var failed []CheckResult
	for _, result := range r.Results {
		if result.Status == StatusFail {
			failed = append(failed, result)
		}
	}
	return failed
}

// ResultsForPage returns all results recorded against the given page.
func (r *Report) ResultsForPage(page string) []CheckResult {
	var results []CheckResult
	for _, result := range r.Results {
		if result.Page == page {
			results = append(results, result)
		}
	}
	return results
}

// TotalChecks returns the total number of recorded results.
func (r *Report) TotalChecks() int {
	return len(r.Results)
}

// AllPassed reports whether no check failed.
// Skips and warnings do not count as failures.
func (r *Report) AllPassed() bool {
	return r.FailCount == 0
}

// ExitCode returns the process exit status for this run:
// 0 when every check passed, 1 otherwise.
func (r *Report) ExitCode() int {
	if r.AllPassed() {
		return 0
	}
	return 1
}
