package config

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// DefaultBatchSize of 4 concurrent site validations balances throughput
	// with deterministic, readable output ordering for typical invocations.
	DefaultBatchSize = 4

	// AppName is the application name used for XDG directory paths.
	AppName = "sitecheck"
)

// Config holds all run-level options for sitecheck.
// This struct is populated from CLI flags and passed through the application
// via dependency injection rather than global state.
type Config struct {
	// Roots is the list of site root directories to validate.
	// Each root is validated independently with its own report.
	Roots []string

	// RulesFilePath is the path to the .sitecheck rules file.
	// If empty, the tool searches the site root, the current directory,
	// and the user's home directory.
	RulesFilePath string

	// Rules holds the validation rules loaded from the rules file,
	// or the built-in defaults when no file is present.
	Rules *Rules

	// JSONReport enables JSON report output instead of human-readable format.
	// Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport enables Markdown report output.
	// Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile is the output file path for the report.
	// When set, the report is written to this file instead of stdout.
	ReportFile string

	// BatchSize is the number of concurrent validations when multiple
	// site roots are given. A single root always runs sequentially.
	BatchSize int

	// Verbose enables detailed log output using slog.LevelDebug.
	Verbose bool

	// SaveToDB indicates whether to save run reports to the history database.
	SaveToDB bool

	// DBDir is the directory path for storing the SQLite history database.
	// Defaults to the XDG data directory.
	DBDir string
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		BatchSize: DefaultBatchSize,
		Rules:     DefaultRules(),
		SaveToDB:  true,
		DBDir:     XDGDataDir(),
	}
}

// XDGDataDir returns the XDG data directory for sitecheck.
// On Linux: ~/.local/share/sitecheck
// On macOS: ~/Library/Application Support/sitecheck
// On Windows: %LOCALAPPDATA%\sitecheck
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for sitecheck.
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns the first error found rather than collecting all errors
// because fixing one error often makes others irrelevant.
func (c *Config) Validate() error {
	if len(c.Roots) == 0 {
		return ErrNoRoot
	}
	if c.BatchSize <= 0 {
		return ErrInvalidBatchSize
	}
	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}
	if c.Rules == nil {
		c.Rules = DefaultRules()
	}
	return c.Rules.Validate()
}
