package report

import (
	"io"
	"strconv"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/nao1215/sitecheck/internal/model"
)

// MarkdownWriter outputs reports in Markdown format.
// This format is designed for documentation, CI job summaries, and sharing.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and code blocks
// 3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	baseWriter

	// titleCaser renders category names as section headings.
	titleCaser cases.Caser
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
		titleCaser: cases.Title(language.English),
	}
}

// Write outputs the full report in Markdown format.
func (w *MarkdownWriter) Write(report *model.Report) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, report)
	w.writeSummary(md, report)
	w.writeResults(md, report)

	return len(md.String()), md.Build()
}

// writeHeader writes the report header with run information.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, report *model.Report) {
	md.H1("Sitecheck Report")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Site Root", "`" + report.Root + "`"},
			{"Check Date", report.DateChecked.Format("2006-01-02 15:04:05 MST")},
			{"Total Checks", strconv.Itoa(report.TotalChecks())},
			{"Status", w.statusText(report)},
		},
	})
	md.PlainText("")
}

// statusText returns the status text based on report state.
func (w *MarkdownWriter) statusText(report *model.Report) string {
	if report.ErrorMessage != "" {
		return "❌ Error - " + report.ErrorMessage
	}
	if !report.AllPassed() {
		return "❌ Fail"
	}
	return "✅ Pass"
}

// writeSummary writes the status summary section.
func (w *MarkdownWriter) writeSummary(md *markdown.Markdown, report *model.Report) {
	md.H2("Summary")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Status", "Count"},
		Rows: [][]string{
			{"✅ Pass", strconv.Itoa(report.PassCount)},
			{"❌ Fail", strconv.Itoa(report.FailCount)},
			{"⏭️ Skip", strconv.Itoa(report.SkipCount)},
			{"⚠️ Warn", strconv.Itoa(report.WarnCount)},
			{"**Total**", "**" + strconv.Itoa(report.TotalChecks()) + "**"},
		},
	})
	md.PlainText("")

	if report.TotalChecks() > 0 {
		w.writePieChart(md, report)
	}

	w.writeAlert(md, report)
}

// writePieChart writes a mermaid pie chart for the status distribution.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, report *model.Report) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Check Status Distribution"),
		piechart.WithShowData(true),
	)

	if report.PassCount > 0 {
		chart.LabelAndIntValue("Pass", uint64(report.PassCount))
	}
	if report.FailCount > 0 {
		chart.LabelAndIntValue("Fail", uint64(report.FailCount))
	}
	if report.SkipCount > 0 {
		chart.LabelAndIntValue("Skip", uint64(report.SkipCount))
	}
	if report.WarnCount > 0 {
		chart.LabelAndIntValue("Warn", uint64(report.WarnCount))
	}

	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeAlert writes an appropriate alert based on the result counts.
func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, report *model.Report) {
	switch {
	case report.ErrorMessage != "":
		md.Cautionf("The run did not complete: %s", report.ErrorMessage)
	case report.FailCount > 0:
		md.Cautionf("%d check(s) failed. The site does not meet its validation rules.", report.FailCount)
	case report.WarnCount > 0:
		md.Warningf("All checks passed, but %d advisory finding(s) deserve attention.", report.WarnCount)
	default:
		md.Tip("All checks passed.")
	}
	md.PlainText("")
}

// writeResults writes all results grouped by category.
func (w *MarkdownWriter) writeResults(md *markdown.Markdown, report *model.Report) {
	md.H2("Results")
	md.PlainText("")

	if report.TotalChecks() == 0 {
		md.PlainText("No checks were performed.")
		md.PlainText("")
		return
	}

	grouped := resultsByCategory(report)

	for _, category := range categoryOrder {
		results := grouped[category]
		if len(results) == 0 {
			continue
		}

		md.H3(w.titleCaser.String(category))
		md.PlainText("")
		w.writeResultsTable(md, results)
	}
}

// writeResultsTable writes a table of results with details.
func (w *MarkdownWriter) writeResultsTable(md *markdown.Markdown, results []model.CheckResult) {
	rows := make([][]string, len(results))
	for i, r := range results {
		page := r.Page
		if page == "" {
			page = "-"
		}
		detail := r.Detail
		if detail == "" {
			detail = "-"
		}

		rows[i] = []string{
			w.statusCell(r.Status),
			r.Name,
			page,
			truncateString(detail, 80),
		}
	}

	md.Table(markdown.TableSet{
		Header: []string{"Status", "Check", "Page", "Detail"},
		Rows:   rows,
	})
	md.PlainText("")
}

// statusCell returns the table cell text for a status.
func (w *MarkdownWriter) statusCell(status model.Status) string {
	switch status {
	case model.StatusPass:
		return "✅ PASS"
	case model.StatusFail:
		return "❌ FAIL"
	case model.StatusSkip:
		return "⏭️ SKIP"
	case model.StatusWarn:
		return "⚠️ WARN"
	default:
		return status.String()
	}
}

// truncateString shortens a string to maxLen characters, appending an
// ellipsis when truncation occurred.
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
