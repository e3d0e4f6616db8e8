package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and Rules.Validate() and
// provide specific information about what is wrong with the configuration.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances at each validation site. This allows callers
// to use errors.Is() for programmatic error handling while still providing
// human-readable messages.
var (
	// ErrNoRoot is returned when no site root is configured.
	ErrNoRoot = errors.New("no site root specified: provide a directory argument")

	// ErrInvalidBatchSize is returned when the batch size is not positive.
	ErrInvalidBatchSize = errors.New("invalid batch size: must be positive")

	// ErrConflictingReportFormats is returned when both --json and --markdown
	// are specified. Only one output format can be used at a time.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")

	// ErrNoPages is returned when the rules define an empty page set.
	ErrNoPages = errors.New("no pages configured: the page set must not be empty")

	// ErrNoStylesheet is returned when the rules define an empty stylesheet path.
	ErrNoStylesheet = errors.New("no stylesheet configured: the stylesheet path must not be empty")

	// ErrFormPageUnknown is returned when the form page is not part of the page set.
	ErrFormPageUnknown = errors.New("form page is not in the configured page set")

	// ErrRulesNotFound is returned when an explicitly specified rules file does not exist.
	ErrRulesNotFound = errors.New("rules file not found")
)
