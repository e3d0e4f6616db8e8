package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/sitecheck/internal/model"
)

// ConsoleWriter outputs human-readable text reports.
// This format is designed for terminal display with ASCII status markers
// and clear section formatting.
//
// Design decision: We use plain text with ASCII formatting rather than
// ANSI colors by default because:
// 1. It works in all terminals without compatibility issues
// 2. It's easier to pipe to files or other tools
// 3. Color can be added as an option later if needed
type ConsoleWriter struct {
	baseWriter

	// showPassing controls whether passing checks are listed individually.
	// When false, only the summary counts and non-passing checks are shown.
	showPassing bool

	// verbose enables diagnostic detail on every listed check.
	verbose bool
}

// ConsoleWriterOption configures a ConsoleWriter.
type ConsoleWriterOption func(*ConsoleWriter)

// WithShowPassing configures the writer to list passing checks.
func WithShowPassing(show bool) ConsoleWriterOption {
	return func(w *ConsoleWriter) {
		w.showPassing = show
	}
}

// WithVerbose enables verbose output with additional details.
func WithVerbose(verbose bool) ConsoleWriterOption {
	return func(w *ConsoleWriter) {
		w.verbose = verbose
	}
}

// NewConsoleWriter creates a ConsoleWriter that outputs to the given writer.
func NewConsoleWriter(output io.Writer, opts ...ConsoleWriterOption) *ConsoleWriter {
	w := &ConsoleWriter{
		baseWriter:  newBaseWriter(output),
		showPassing: true,
		verbose:     false,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the full report in human-readable format.
func (w *ConsoleWriter) Write(report *model.Report) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, report)
	w.writeResults(&sb, report)
	w.writeFailures(&sb, report)
	w.writeSummary(&sb, report)

	return w.output.Write([]byte(sb.String()))
}

// writeHeader writes the report header with run information.
func (w *ConsoleWriter) writeHeader(sb *strings.Builder, report *model.Report) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("                         SITECHECK REPORT\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("Site Root:    %s\n", report.Root))
	sb.WriteString(fmt.Sprintf("Check Date:   %s\n", report.DateChecked.Format("2006-01-02 15:04:05 MST")))
	sb.WriteString(fmt.Sprintf("Total Checks: %d\n", report.TotalChecks()))

	switch {
	case report.ErrorMessage != "":
		sb.WriteString(fmt.Sprintf("Status:       ERROR - %s\n", report.ErrorMessage))
	case report.AllPassed():
		sb.WriteString("Status:       PASS\n")
	default:
		sb.WriteString("Status:       FAIL\n")
	}

	sb.WriteString("\n")
}

// writeResults writes all results grouped by category.
func (w *ConsoleWriter) writeResults(sb *strings.Builder, report *model.Report) {
	grouped := resultsByCategory(report)

	for _, category := range categoryOrder {
		results := grouped[category]
		if len(results) == 0 {
			continue
		}

		listed := results
		if !w.showPassing {
			listed = nil
			for _, r := range results {
				if r.Status != model.StatusPass {
					listed = append(listed, r)
				}
			}
			if len(listed) == 0 {
				continue
			}
		}

		sb.WriteString(strings.Repeat("-", 70))
		sb.WriteString("\n")
		sb.WriteString(strings.ToUpper(category))
		sb.WriteString("\n")
		sb.WriteString(strings.Repeat("-", 70))
		sb.WriteString("\n")

		for _, r := range listed {
			w.writeResult(sb, r)
		}
		sb.WriteString("\n")
	}
}

// writeResult writes a single check line with its status marker.
func (w *ConsoleWriter) writeResult(sb *strings.Builder, r model.CheckResult) {
	location := r.Page
	if location == "" {
		location = "site"
	}

	sb.WriteString(fmt.Sprintf("  [%s] %s (%s)\n", r.Status.Marker(), r.Name, location))

	if w.verbose && r.Detail != "" {
		sb.WriteString(fmt.Sprintf("      %s\n", r.Detail))
	}
}

// writeFailures itemizes every failed check with its diagnostic.
// Failures are always listed with detail, regardless of verbosity, because
// they are the reason the run is failing.
func (w *ConsoleWriter) writeFailures(sb *strings.Builder, report *model.Report) {
	failed := report.Failed()
	if len(failed) == 0 {
		return
	}

	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("FAILED CHECKS\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")

	for _, r := range failed {
		location := r.Page
		if location == "" {
			location = "site"
		}
		sb.WriteString(fmt.Sprintf("  * %s (%s)\n", r.Name, location))
		if r.Detail != "" {
			sb.WriteString(fmt.Sprintf("    %s\n", r.Detail))
		}
	}
	sb.WriteString("\n")
}

// writeSummary writes the closing counters.
func (w *ConsoleWriter) writeSummary(sb *strings.Builder, report *model.Report) {
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("  PASS: %d   FAIL: %d   SKIP: %d   WARN: %d\n",
		report.PassCount, report.FailCount, report.SkipCount, report.WarnCount))
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
}
