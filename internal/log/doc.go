// Package log provides progress-aware logging built on top of the standard
// slog package.
//
// The CheckHandler intercepts the runner's per-check records and renders
// them as human-readable progress lines ("[PASS] title is non-empty
// (index.html)") while passing every other record to a wrapped structured
// handler. This keeps the checkers free of presentation concerns: they log
// through *slog.Logger like every other component, and the CLI decides how
// progress is displayed.
//
// # Usage
//
//	logger := log.NewCheckLogger(os.Stdout, os.Stderr, verbose)
//	runner := checker.NewRunner(rules, checker.WithLogger(logger))
package log
