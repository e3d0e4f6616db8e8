package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"

	"github.com/nao1215/sitecheck/internal/config"
	"github.com/nao1215/sitecheck/internal/database"
	"github.com/nao1215/sitecheck/internal/log"
	"github.com/nao1215/sitecheck/internal/model"
	"github.com/nao1215/sitecheck/internal/pipeline"
	"github.com/nao1215/sitecheck/internal/report"
	"github.com/spf13/cobra"
)

// errChecksFailed is returned when at least one site has failing checks,
// so that Execute exits with a non-zero status.
var errChecksFailed = errors.New("validation failed")

// NewCheckCmd creates the check command.
func NewCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [site-root...]",
		Short: "Validate static site directories",
		Long: `Check runs the full validation battery against one or more site roots.

Each site root is a directory containing the site's HTML pages, stylesheet,
and image assets. Rules are read from a .sitecheck file in the site root
(or the current/home directory), falling back to built-in defaults for the
conventional index/about/contact layout.

The command exits with status 1 when any check fails. Skipped checks
(missing page preconditions) and advisory warnings do not affect the
exit status.

Examples:
  # Validate the current directory
  sitecheck check

  # Validate a specific site root
  sitecheck check ./public

  # Validate several sites concurrently
  sitecheck check ./site-a ./site-b ./site-c

  # Write a JSON report to a file
  sitecheck check --json -o report.json ./public

  # Use an explicit rules file
  sitecheck check -c rules.yaml ./public`,
		RunE: runCheckCmd,
	}

	// Rules configuration
	cmd.Flags().StringP("config", "c", "",
		"Path to the rules file (default: .sitecheck in site root, cwd, or home)")

	// Output format flags
	cmd.Flags().BoolP("json", "j", false,
		"Output report in JSON format")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output report in Markdown format")
	cmd.Flags().StringP("output", "o", "",
		"Write the report to a file instead of stdout")

	// Execution flags
	cmd.Flags().IntP("batch", "b", config.DefaultBatchSize,
		"Number of concurrent validations when multiple roots are given")
	cmd.Flags().Bool("no-save", false,
		"Do not save run results to the history database")

	return cmd
}

// runCheckCmd executes the check command.
func runCheckCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	// Progress lines go to stderr when a machine-readable report is written
	// to stdout, so the report stream stays clean.
	progressOut := io.Writer(os.Stdout)
	if (cfg.JSONReport || cfg.MarkdownReport) && cfg.ReportFile == "" {
		progressOut = os.Stderr
	}
	logger := log.NewCheckLogger(progressOut, os.Stderr, cfg.Verbose)

	// Handle Ctrl+C and SIGTERM gracefully.
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			logger.Warn("interrupted, stopping")
			cancel()
		case <-ctx.Done():
		}
	}()

	reports, err := runChecks(ctx, cfg, logger)
	if err != nil {
		return err
	}

	if err := outputReports(cfg, reports); err != nil {
		return err
	}

	if cfg.SaveToDB {
		saveReports(ctx, cfg, logger, reports)
	}

	failedSites := 0
	for _, r := range reports {
		if r.Error != nil || r.ExitCode() != 0 {
			failedSites++
		}
	}
	if failedSites > 0 {
		return fmt.Errorf("%w: %d of %d site(s) have failing checks",
			errChecksFailed, failedSites, len(reports))
	}
	return nil
}

// buildConfig builds the run configuration from command flags and arguments.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()

	roots := args
	if len(roots) == 0 {
		roots = []string{"."}
	}
	// Roots are stored absolute so history database keys are stable
	// regardless of the working directory at check time.
	cfg.Roots = make([]string, 0, len(roots))
	for _, r := range roots {
		abs, err := filepath.Abs(r)
		if err != nil {
			return nil, fmt.Errorf("invalid site root %s: %w", r, err)
		}
		cfg.Roots = append(cfg.Roots, abs)
	}

	rulesPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	cfg.RulesFilePath = rulesPath

	if cfg.JSONReport, err = cmd.Flags().GetBool("json"); err != nil {
		return nil, err
	}
	if cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown"); err != nil {
		return nil, err
	}
	if cfg.ReportFile, err = cmd.Flags().GetString("output"); err != nil {
		return nil, err
	}
	if cfg.BatchSize, err = cmd.Flags().GetInt("batch"); err != nil {
		return nil, err
	}

	noSave, err := cmd.Flags().GetBool("no-save")
	if err != nil {
		return nil, err
	}
	cfg.SaveToDB = !noSave

	cfg.Verbose = getVerboseFlag(cmd)

	if err := loadRules(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadRules resolves and loads the rules file into the configuration.
// An explicit --config path that does not exist is an error; a missing
// default .sitecheck silently falls back to the built-in rules.
func loadRules(cfg *config.Config) error {
	siteRoot := ""
	if len(cfg.Roots) == 1 {
		siteRoot = cfg.Roots[0]
	}

	found := config.FindRulesFile(cfg.RulesFilePath, siteRoot)
	if found == "" {
		if cfg.RulesFilePath != "" {
			return fmt.Errorf("rules file not found: %s", cfg.RulesFilePath)
		}
		cfg.Rules = config.DefaultRules()
		return nil
	}

	rules, err := config.LoadRulesFile(found)
	if err != nil {
		return fmt.Errorf("failed to load rules file %s: %w", found, err)
	}
	cfg.Rules = rules
	return nil
}

// getVerboseFlag reads the persistent verbose flag, falling back to the
// root command's flag set when the command is run in isolation.
func getVerboseFlag(cmd *cobra.Command) bool {
	if v, err := cmd.Flags().GetBool("verbose"); err == nil {
		return v
	}
	if root := cmd.Root(); root != nil {
		if v, err := root.PersistentFlags().GetBool("verbose"); err == nil {
			return v
		}
	}
	return false
}

// runChecks validates every configured site root and returns one report
// per root, in input order. A single root runs sequentially; multiple
// roots run through the batch processor.
func runChecks(ctx context.Context, cfg *config.Config, logger *slog.Logger) ([]*model.Report, error) {
	factory := func() *pipeline.Pipeline {
		return pipeline.DefaultPipeline(pipeline.WithLogger(logger))
	}

	if len(cfg.Roots) == 1 {
		run := pipeline.NewRun(cfg.Roots[0], cfg.Rules)
		if err := factory().Execute(ctx, run); err != nil {
			logger.Error("validation run failed", "root", cfg.Roots[0], "error", err)
		}
		return []*model.Report{run.Report}, nil
	}

	processor := pipeline.NewBatchProcessor(factory, cfg.Rules,
		pipeline.WithBatchLogger(logger),
		pipeline.WithConcurrency(cfg.BatchSize),
	)

	var mu sync.Mutex
	done := 0
	total := len(cfg.Roots)
	reports, err := processor.ProcessBatchWithCallback(ctx, cfg.Roots,
		func(r *model.Report, _ int) {
			mu.Lock()
			defer mu.Unlock()
			done++
			logger.Info("site validated", "progress",
				fmt.Sprintf("[%d/%d]", done, total), "root", r.Root)
		})
	if err != nil {
		return nil, fmt.Errorf("batch validation failed: %w", err)
	}
	return reports, nil
}

// outputReports writes every report using the configured format and
// destination. Reports for multiple roots are written sequentially to
// the same destination.
func outputReports(cfg *config.Config, reports []*model.Report) error {
	output := io.Writer(os.Stdout)
	if cfg.ReportFile != "" {
		if dir := filepath.Dir(cfg.ReportFile); dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create report directory: %w", err)
			}
		}
		f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("failed to create report file: %w", err)
		}
		defer f.Close()
		output = f
	}

	var w report.Writer
	switch {
	case cfg.JSONReport:
		w = report.NewFullJSONWriter(output, getVersion(), report.WithPrettyPrint())
	case cfg.MarkdownReport:
		w = report.NewMarkdownWriter(output)
	default:
		w = report.NewConsoleWriter(output, report.WithVerbose(cfg.Verbose))
	}

	for _, r := range reports {
		if _, err := w.Write(r); err != nil {
			return fmt.Errorf("failed to write report for %s: %w", r.Root, err)
		}
	}
	return nil
}

// saveReports stores run results in the history database. Persistence is
// best-effort: a database failure is logged but never fails the run.
func saveReports(ctx context.Context, cfg *config.Config, logger *slog.Logger, reports []*model.Report) {
	db, err := database.Open(cfg.DBDir, database.DefaultOptions())
	if err != nil {
		logger.Warn("failed to open history database", "dir", cfg.DBDir, "error", err)
		return
	}
	defer db.Close()

	for _, r := range reports {
		if err := db.SaveReport(ctx, r); err != nil {
			logger.Warn("failed to save report", "root", r.Root, "error", err)
		}
	}
}
