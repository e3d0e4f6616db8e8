// Package model defines the core data structures used throughout sitecheck.
//
// This package contains the following main types:
//   - Status: The outcome of a single check (pass, fail, skip, warn)
//   - CheckResult: A single assertion about a page or resource
//   - Report: The aggregated outcome of one validation run
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. Multiple packages (site, checker, report) need to use these
// types, so centralizing them prevents import cycles.
//
// The models are designed to be serializable to JSON for report output and
// history storage.
package model
