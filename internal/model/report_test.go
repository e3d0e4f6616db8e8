package model

import "testing"

// TestStatusString tests status string conversion.
func TestStatusString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		status Status
		want   string
	}{
		{StatusPass, "PASS"},
		{StatusFail, "FAIL"},
		{StatusSkip, "SKIP"},
		{StatusWarn, "WARN"},
		{Status(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		if got := tt.status.String(); got != tt.want {
			t.Errorf("Status(%d).String() = %q, want %q", tt.status, got, tt.want)
		}
	}
}

// TestReportAdd tests counter maintenance.
func TestReportAdd(t *testing.T) {
	t.Parallel()

	report := NewReport("/srv/www")

	report.Add(Pass(CategoryStructure, "doctype declared", "index.html"))
	report.Add(Pass(CategoryStructure, "title is non-empty", "index.html"))
	report.Add(Fail(CategoryLinks, "internal link resolves: services.html", "index.html", "file not found"))
	report.Add(Skip(CategoryForm, "form element present", "contact.html", "contact.html is missing"))
	report.Add(Warn(CategoryAssets, "image free of EXIF metadata", "about.html", "1 tag found"))

	if report.PassCount != 2 {
		t.Errorf("PassCount = %d, want 2", report.PassCount)
	}
	if report.FailCount != 1 {
		t.Errorf("FailCount = %d, want 1", report.FailCount)
	}
	if report.SkipCount != 1 {
		t.Errorf("SkipCount = %d, want 1", report.SkipCount)
	}
	if report.WarnCount != 1 {
		t.Errorf("WarnCount = %d, want 1", report.WarnCount)
	}
	if report.TotalChecks() != 5 {
		t.Errorf("TotalChecks() = %d, want 5", report.TotalChecks())
	}
}

// TestReportExitCode tests that only failures flip the exit code.
func TestReportExitCode(t *testing.T) {
	t.Parallel()

	t.Run("all pass", func(t *testing.T) {
		t.Parallel()

		report := NewReport(".")
		report.Add(Pass(CategoryStructure, "doctype declared", "index.html"))
		report.Add(Warn(CategoryAssets, "image free of EXIF metadata", "index.html", "EXIF present"))
		report.Add(Skip(CategoryForm, "form element present", "contact.html", "missing"))

		if !report.AllPassed() {
			t.Error("expected AllPassed() to be true")
		}
		if code := report.ExitCode(); code != 0 {
			t.Errorf("ExitCode() = %d, want 0", code)
		}
	})

	t.Run("one failure", func(t *testing.T) {
		t.Parallel()

		report := NewReport(".")
		report.Add(Fail(CategoryNavigation, "nav element present", "about.html", "no <nav> found"))

		if report.AllPassed() {
			t.Error("expected AllPassed() to be false")
		}
		if code := report.ExitCode(); code != 1 {
			t.Errorf("ExitCode() = %d, want 1", code)
		}
	})
}

// TestReportFailed tests failed-result extraction preserves order.
func TestReportFailed(t *testing.T) {
	t.Parallel()

	report := NewReport(".")
	report.Add(Fail(CategoryLinks, "internal link resolves: a.html", "", "file not found"))
	report.Add(Pass(CategoryLinks, "internal link resolves: index.html", ""))
	report.Add(Fail(CategoryLinks, "internal link resolves: b.html", "", "file not found"))

	failed := report.Failed()
	if len(failed) != 2 {
		t.Fatalf("len(Failed()) = %d, want 2", len(failed))
	}
	if failed[0].Name != "internal link resolves: a.html" {
		t.Errorf("first failure = %q, want a.html check", failed[0].Name)
	}
	if failed[1].Name != "internal link resolves: b.html" {
		t.Errorf("second failure = %q, want b.html check", failed[1].Name)
	}
}

// TestResultsForPage tests per-page grouping.
func TestResultsForPage(t *testing.T) {
	t.Parallel()

	report := NewReport(".")
	report.Add(Pass(CategoryStructure, "doctype declared", "index.html"))
	report.Add(Pass(CategoryStructure, "doctype declared", "about.html"))
	report.Add(Fail(CategorySemantics, "footer element present", "about.html", "no <footer> found"))

	results := report.ResultsForPage("about.html")
	if len(results) != 2 {
		t.Fatalf("len(ResultsForPage) = %d, want 2", len(results))
	}
	for _, r := range results {
		if r.Page != "about.html" {
			t.Errorf("unexpected page %q in results", r.Page)
		}
	}
}
