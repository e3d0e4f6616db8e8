package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/nao1215/sitecheck/internal/config"
	"github.com/nao1215/sitecheck/internal/database"
	"github.com/nao1215/sitecheck/internal/model"
	"github.com/spf13/cobra"
)

// Constants for diff direction and summary messages.
const (
	diffDirectionImproved  = "improved"
	diffDirectionRegressed = "regressed"
	diffDirectionUnchanged = "unchanged"
)

// NewHistoryCmd creates the history command.
// This command inspects validation runs stored in the history database.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history [site-root]",
		Short: "Inspect validation run history",
		Long: `History lists past validation runs for a site root and compares runs.

Run results are saved to the history database by 'sitecheck check' unless
--no-save is given. The site root argument must match the root used at
check time (relative paths are resolved against the current directory).

Examples:
  # List run history for a site
  sitecheck history ./public

  # List all site roots present in the database
  sitecheck history --roots

  # Compare the two most recent runs
  sitecheck history --diff ./public

  # Compare the latest run with a specific historical run by ID
  sitecheck history --diff --with-run-id 5 ./public

  # Output the comparison in JSON format
  sitecheck history --diff --json ./public`,
		Args: cobra.MaximumNArgs(1),
		RunE: runHistoryCmd,
	}

	cmd.Flags().BoolP("roots", "R", false,
		"List all site roots recorded in the database")
	cmd.Flags().IntP("limit", "n", 0,
		"Limit the number of history entries shown (0 = all)")
	cmd.Flags().BoolP("diff", "d", false,
		"Compare the latest run with the previous one")
	cmd.Flags().Int64P("with-run-id", "i", 0,
		"Compare with a specific run by ID (use the list to see available IDs)")
	cmd.Flags().BoolP("json", "j", false,
		"Output in JSON format")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, args []string) error {
	listRoots, err := cmd.Flags().GetBool("roots")
	if err != nil {
		return err
	}

	// Validate arguments before opening the database so a usage error
	// never leaves a lock behind.
	var root string
	if !listRoots {
		if len(args) == 0 {
			return errors.New("site root is required (use --roots to see recorded roots)")
		}
		root, err = normalizeRoot(args[0])
		if err != nil {
			return err
		}
	}

	db, err := database.Open(config.XDGDataDir(), database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open history database: %w", err)
	}
	defer db.Close()

	ctx := cmd.Context()

	if listRoots {
		return listCheckedRoots(ctx, db)
	}

	diff, err := cmd.Flags().GetBool("diff")
	if err != nil {
		return err
	}
	jsonOutput, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}

	if diff {
		withRunID, err := cmd.Flags().GetInt64("with-run-id")
		if err != nil {
			return err
		}
		return runDiff(ctx, db, root, withRunID, jsonOutput)
	}

	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}
	return listRunHistory(ctx, db, root, limit, jsonOutput)
}

// normalizeRoot resolves a site root argument to the absolute form used
// as the database key.
func normalizeRoot(arg string) (string, error) {
	abs, err := filepath.Abs(arg)
	if err != nil {
		return "", fmt.Errorf("invalid site root %s: %w", arg, err)
	}
	return abs, nil
}

// listCheckedRoots lists all site roots that have run records.
func listCheckedRoots(ctx context.Context, db *database.RunDB) error {
	roots, err := db.ListCheckedRoots(ctx)
	if err != nil {
		return fmt.Errorf("failed to list roots: %w", err)
	}

	if len(roots) == 0 {
		fmt.Println("No validation runs found in the database.")
		fmt.Println("\nUse 'sitecheck check <site-root>' to validate a site.")
		return nil
	}

	fmt.Printf("Checked site roots (%d):\n\n", len(roots))
	for _, r := range roots {
		fmt.Printf("  • %s\n", r)
	}
	fmt.Println("\nUse 'sitecheck history <site-root>' to see runs for a site.")

	return nil
}

// listRunHistory lists run records for a specific site root.
func listRunHistory(ctx context.Context, db *database.RunDB, root string, limit int, jsonOutput bool) error {
	runs, err := db.GetRunHistoryWithMetadata(ctx, root, limit)
	if err != nil {
		return fmt.Errorf("failed to get run history: %w", err)
	}

	if len(runs) == 0 {
		fmt.Printf("No run history found for %s\n", root)
		fmt.Println("\nUse 'sitecheck check' to validate this site.")
		return nil
	}

	if jsonOutput {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(runs)
	}

	fmt.Printf("Run history for %s (%d runs):\n\n", root, len(runs))
	fmt.Printf("  %-6s  %-20s  %s\n", "ID", "Date", "Results")
	fmt.Println("  " + strings.Repeat("-", 60))

	for _, meta := range runs {
		fmt.Printf("  %-6d  %-20s  %s\n",
			meta.ID,
			meta.Timestamp.Format("2006-01-02 15:04:05"),
			formatRunSummary(meta),
		)
	}

	fmt.Println("\nUse 'sitecheck history --diff <site-root>' to compare the latest two runs.")

	return nil
}

// formatRunSummary formats run counters into a compact summary string.
func formatRunSummary(meta database.RunMetadata) string {
	parts := []string{
		fmt.Sprintf("pass:%d", meta.PassCount),
		fmt.Sprintf("fail:%d", meta.FailCount),
	}
	if meta.SkipCount > 0 {
		parts = append(parts, fmt.Sprintf("skip:%d", meta.SkipCount))
	}
	if meta.WarnCount > 0 {
		parts = append(parts, fmt.Sprintf("warn:%d", meta.WarnCount))
	}
	return strings.Join(parts, " ")
}

// runDiff compares the latest run with a previous one and prints the result.
func runDiff(ctx context.Context, db *database.RunDB, root string, withRunID int64, jsonOutput bool) error {
	reports, err := db.GetRunHistory(ctx, root, 2)
	if err != nil {
		return fmt.Errorf("failed to get run history: %w", err)
	}
	if len(reports) == 0 {
		return fmt.Errorf("no run history found for %s", root)
	}

	current := reports[0]

	var previous *model.Report
	if withRunID > 0 {
		previous, err = db.GetReportByID(ctx, withRunID)
		if err != nil {
			return fmt.Errorf("failed to get run with ID %d: %w", withRunID, err)
		}
		if previous == nil {
			return fmt.Errorf("run with ID %d not found", withRunID)
		}
		if previous.Root != root {
			return fmt.Errorf("run ID %d belongs to %s, not %s", withRunID, previous.Root, root)
		}
	} else {
		if len(reports) < 2 {
			return fmt.Errorf("at least 2 runs are required for comparison (found %d)", len(reports))
		}
		previous = reports[1]
	}

	diff := diffReports(previous, current)

	if jsonOutput {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(diff)
	}
	return outputDiffText(diff)
}

// DiffResult holds the result of comparing two validation runs.
type DiffResult struct {
	// Root is the validated site root.
	Root string `json:"root"`

	// PreviousRun contains metadata about the older run.
	PreviousRun RunSummary `json:"previous_run"`

	// CurrentRun contains metadata about the newer run.
	CurrentRun RunSummary `json:"current_run"`

	// NewFailures contains checks that fail now but did not before.
	NewFailures []model.CheckResult `json:"new_failures,omitempty"`

	// FixedFailures contains checks that failed before but pass or are gone now.
	FixedFailures []model.CheckResult `json:"fixed_failures,omitempty"`

	// UnchangedFailures is the number of failures present in both runs.
	UnchangedFailures int `json:"unchanged_failures"`

	// Direction is "improved", "regressed", or "unchanged".
	Direction string `json:"direction"`

	// FailDelta is the change in failing check count.
	FailDelta int `json:"fail_delta"`
}

// RunSummary contains run metadata for comparison display.
type RunSummary struct {
	// DateChecked is when the run was performed.
	DateChecked time.Time `json:"date_checked"`

	// TotalChecks is the total number of check results in the run.
	TotalChecks int `json:"total_checks"`

	// PassCount is the number of passing checks.
	PassCount int `json:"pass_count"`

	// FailCount is the number of failing checks.
	FailCount int `json:"fail_count"`
}

// diffReports compares two run reports and generates a diff result.
// Failures are matched by check name and page so a failure that moves
// between pages counts as fixed in one place and new in the other.
func diffReports(previous, current *model.Report) *DiffResult {
	result := &DiffResult{
		Root: current.Root,
		PreviousRun: RunSummary{
			DateChecked: previous.DateChecked,
			TotalChecks: previous.TotalChecks(),
			PassCount:   previous.PassCount,
			FailCount:   previous.FailCount,
		},
		CurrentRun: RunSummary{
			DateChecked: current.DateChecked,
			TotalChecks: current.TotalChecks(),
			PassCount:   current.PassCount,
			FailCount:   current.FailCount,
		},
	}

	previousFailures := make(map[string]model.CheckResult)
	for _, r := range previous.Failed() {
		previousFailures[failureKey(r)] = r
	}
	currentFailures := make(map[string]model.CheckResult)
	for _, r := range current.Failed() {
		currentFailures[failureKey(r)] = r
	}

	for key, r := range currentFailures {
		if _, exists := previousFailures[key]; !exists {
			result.NewFailures = append(result.NewFailures, r)
		}
	}
	for key, r := range previousFailures {
		if _, exists := currentFailures[key]; !exists {
			result.FixedFailures = append(result.FixedFailures, r)
		} else {
			result.UnchangedFailures++
		}
	}

	result.FailDelta = current.FailCount - previous.FailCount
	switch {
	case result.FailDelta < 0:
		result.Direction = diffDirectionImproved
	case result.FailDelta > 0:
		result.Direction = diffDirectionRegressed
	default:
		result.Direction = diffDirectionUnchanged
	}

	return result
}

// failureKey generates a unique key for a check result for diffing.
func failureKey(r model.CheckResult) string {
	return r.Name + "|" + r.Page
}

// outputDiffText prints the diff result in human-readable text format.
func outputDiffText(result *DiffResult) error {
	fmt.Printf("Run Comparison: %s\n", result.Root)
	fmt.Println(strings.Repeat("=", 60))

	fmt.Printf("\nStatus: %s\n", formatDiffDirection(result.Direction))

	fmt.Printf("\nPrevious run: %s\n", result.PreviousRun.DateChecked.Format("2006-01-02 15:04:05"))
	fmt.Printf("Current run:  %s\n", result.CurrentRun.DateChecked.Format("2006-01-02 15:04:05"))

	fmt.Println("\nCheck Summary:")
	fmt.Printf("  %-10s  %-10s  %-10s  %-10s\n", "Status", "Previous", "Current", "Change")
	fmt.Println("  " + strings.Repeat("-", 45))
	fmt.Printf("  %-10s  %-10d  %-10d  %-10s\n", "Pass",
		result.PreviousRun.PassCount, result.CurrentRun.PassCount,
		formatDelta(result.CurrentRun.PassCount-result.PreviousRun.PassCount))
	fmt.Printf("  %-10s  %-10d  %-10d  %-10s\n", "Fail",
		result.PreviousRun.FailCount, result.CurrentRun.FailCount,
		formatDelta(result.FailDelta))
	fmt.Println("  " + strings.Repeat("-", 45))
	fmt.Printf("  %-10s  %-10d  %-10d  %-10s\n", "Total",
		result.PreviousRun.TotalChecks, result.CurrentRun.TotalChecks,
		formatDelta(result.CurrentRun.TotalChecks-result.PreviousRun.TotalChecks))

	if len(result.NewFailures) > 0 {
		fmt.Printf("\nNew Failures (%d):\n", len(result.NewFailures))
		for _, r := range result.NewFailures {
			fmt.Printf("  [+] %s (%s)\n", r.Name, locationOf(r))
			if r.Detail != "" {
				fmt.Printf("      %s\n", r.Detail)
			}
		}
	}

	if len(result.FixedFailures) > 0 {
		fmt.Printf("\nFixed Failures (%d):\n", len(result.FixedFailures))
		for _, r := range result.FixedFailures {
			fmt.Printf("  [-] %s (%s)\n", r.Name, locationOf(r))
		}
	}

	if result.UnchangedFailures > 0 {
		fmt.Printf("\nStill failing: %d checks\n", result.UnchangedFailures)
	}

	return nil
}

// locationOf returns the page a result belongs to, or "site" for
// site-level checks.
func locationOf(r model.CheckResult) string {
	if r.Page == "" {
		return "site"
	}
	return r.Page
}

// formatDiffDirection formats the diff direction for display.
func formatDiffDirection(direction string) string {
	switch direction {
	case diffDirectionImproved:
		return "IMPROVED (fewer failing checks)"
	case diffDirectionRegressed:
		return "REGRESSED (more failing checks)"
	default:
		return "UNCHANGED"
	}
}

// formatDelta formats a numeric delta with sign for display.
func formatDelta(delta int) string {
	if delta > 0 {
		return "+" + strconv.Itoa(delta)
	}
	return strconv.Itoa(delta)
}
